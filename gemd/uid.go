package gemd

import "github.com/google/uuid"

// PlatformScope is the identity scope the platform assigns ids under.
// Links prefer this scope when an object carries more than one key.
const PlatformScope = "id"

// ClientScope is the identity scope the SDK assigns ids under when an
// object reaches registration with no identity key of its own.
const ClientScope = "auto"

// tempScopePrefix marks identity scopes that are private to a single
// registration call and must never leak into persisted objects.
const tempScopePrefix = "tmp-"

// NewTempScope generates a fresh private identity scope. Each dry-run
// registration call uses its own scope so concurrent unrelated calls
// cannot collide, and so temporary keys are recognizable for stripping
// afterwards.
func NewTempScope() string {
	return tempScopePrefix + uuid.NewString()
}

// IsTempScope reports whether a scope was produced by NewTempScope.
func IsTempScope(scope string) bool {
	return len(scope) > len(tempScopePrefix) && scope[:len(tempScopePrefix)] == tempScopePrefix
}

// RegisterUID ensures the object carries an identity key under the
// given scope, generating a UUID when absent, and returns the id.
// Server responses are correlated back to in-memory objects by identity
// key, so every object needs at least one before submission.
func RegisterUID(obj DataObject, scope string) string {
	if id, ok := obj.UIDs()[scope]; ok {
		return id
	}
	id := uuid.NewString()
	obj.AddUID(scope, id)
	return id
}

// StripTempUIDs removes every temporary-scoped identity key from the
// object, returning it to its pre-dry-run identity state.
func StripTempUIDs(obj DataObject) {
	var doomed []string
	for scope := range obj.UIDs() {
		if IsTempScope(scope) {
			doomed = append(doomed, scope)
		}
	}
	for _, scope := range doomed {
		obj.RemoveUID(scope)
	}
}
