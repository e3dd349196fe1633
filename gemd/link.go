package gemd

import "fmt"

// LinkByUID is a lightweight reference to a data object: a (scope, id)
// pair standing in for the object without embedding its content. Two
// links are equal iff both scope and id match, which makes the value
// usable directly as a map key.
type LinkByUID struct {
	Scope string `json:"scope"`
	ID    string `json:"id"`
}

// NewLink creates a link for the given scope and id.
func NewLink(scope, id string) LinkByUID {
	return LinkByUID{Scope: scope, ID: id}
}

// String returns a human-readable form of the link, e.g. "id::a1b2".
func (l LinkByUID) String() string {
	return fmt.Sprintf("%s::%s", l.Scope, l.ID)
}

// IsZero returns true if the link carries neither scope nor id.
func (l LinkByUID) IsZero() bool {
	return l.Scope == "" && l.ID == ""
}

// Links implements Ref. A link's only identity is itself.
func (l LinkByUID) Links() []LinkByUID {
	return []LinkByUID{l}
}

// Ref is a reference to a data object: either a full DataObject or a
// LinkByUID standing in for one. Links returns every identity link the
// referent is known by; resolution against a collection goes through
// Index.
type Ref interface {
	Links() []LinkByUID
}
