package gemd

import (
	"fmt"
	"reflect"
	"sort"
)

// wireTypeLink is the wire discriminator for a serialized LinkByUID.
const wireTypeLink = "link_by_uid"

// ToWire serializes a data object into its wire dictionary. Every
// embedded object reference is substituted by a {scope, id} link dict
// rather than the full nested object, which bounds payload size and
// avoids transmitting shared dependencies once per referrer.
//
// Serialization fails if a referenced object carries no identity key,
// since a link cannot be formed for it; callers are expected to assign
// identity keys (see RegisterUID) before serializing.
func ToWire(obj DataObject) (map[string]any, error) {
	fields, err := obj.wireFields()
	if err != nil {
		return nil, fmt.Errorf("serializing %s %q: %w", obj.TypeTag(), obj.Name(), err)
	}

	uids := make(map[string]string, len(obj.UIDs()))
	for scope, id := range obj.UIDs() {
		uids[scope] = id
	}

	w := map[string]any{
		"type": obj.TypeTag().String(),
		"name": obj.Name(),
		"uids": uids,
	}
	if tags := obj.Tags(); len(tags) > 0 {
		w["tags"] = append([]string{}, tags...)
	}
	for k, v := range fields {
		w[k] = v
	}
	return w, nil
}

// FromWire deserializes a wire dictionary into a data object. Object
// references come back as LinkByUID refs, never embedded objects.
func FromWire(w map[string]any) (DataObject, error) {
	rawType, _ := w["type"].(string)
	typ, err := ParseObjectType(rawType)
	if err != nil {
		return nil, err
	}
	name, _ := w["name"].(string)

	var obj DataObject
	switch typ {
	case TypePropertyTemplate:
		o := NewPropertyTemplate(name)
		o.Bounds, _ = w["bounds"].(map[string]any)
		obj = o
	case TypeConditionTemplate:
		o := NewConditionTemplate(name)
		o.Bounds, _ = w["bounds"].(map[string]any)
		obj = o
	case TypeParameterTemplate:
		o := NewParameterTemplate(name)
		o.Bounds, _ = w["bounds"].(map[string]any)
		obj = o
	case TypeMaterialTemplate:
		o := NewMaterialTemplate(name)
		o.Properties = wireRefList(w, "properties")
		obj = o
	case TypeProcessTemplate:
		o := NewProcessTemplate(name)
		o.Conditions = wireRefList(w, "conditions")
		o.Parameters = wireRefList(w, "parameters")
		obj = o
	case TypeMeasurementTemplate:
		o := NewMeasurementTemplate(name)
		o.Properties = wireRefList(w, "properties")
		o.Conditions = wireRefList(w, "conditions")
		o.Parameters = wireRefList(w, "parameters")
		obj = o
	case TypeProcessSpec:
		o := NewProcessSpec(name)
		o.Template = wireRef(w, "template")
		obj = o
	case TypeMaterialSpec:
		o := NewMaterialSpec(name)
		o.Template = wireRef(w, "template")
		o.Process = wireRef(w, "process")
		obj = o
	case TypeMeasurementSpec:
		o := NewMeasurementSpec(name)
		o.Template = wireRef(w, "template")
		obj = o
	case TypeProcessRun:
		o := NewProcessRun(name)
		o.Spec = wireRef(w, "spec")
		obj = o
	case TypeMaterialRun:
		o := NewMaterialRun(name)
		o.Spec = wireRef(w, "spec")
		o.Process = wireRef(w, "process")
		obj = o
	case TypeMeasurementRun:
		o := NewMeasurementRun(name)
		o.Spec = wireRef(w, "spec")
		o.Material = wireRef(w, "material")
		obj = o
	case TypeIngredientSpec:
		o := NewIngredientSpec(name)
		o.Material = wireRef(w, "material")
		o.Process = wireRef(w, "process")
		obj = o
	case TypeIngredientRun:
		o := NewIngredientRun(name)
		o.Spec = wireRef(w, "spec")
		o.Material = wireRef(w, "material")
		o.Process = wireRef(w, "process")
		obj = o
	}

	if uids, ok := w["uids"].(map[string]string); ok {
		for scope, id := range uids {
			obj.AddUID(scope, id)
		}
	} else if uids, ok := w["uids"].(map[string]any); ok {
		for scope, id := range uids {
			if s, ok := id.(string); ok {
				obj.AddUID(scope, s)
			}
		}
	}
	obj.SetTags(wireTags(w))
	return obj, nil
}

// Equal reports whether two data objects are value-equal: same type,
// same identity keys, same content, same references. Replicates that
// share an identity key but are not Equal are colliding objects.
func Equal(a, b DataObject) bool {
	return reflect.DeepEqual(a, b)
}

// PreferredLink returns the link a reference should serialize as. The
// platform scope wins when present; otherwise the lexicographically
// first scope keeps the choice deterministic.
func PreferredLink(r Ref) (LinkByUID, error) {
	links := r.Links()
	if len(links) == 0 {
		if obj, ok := r.(DataObject); ok {
			return LinkByUID{}, fmt.Errorf("referenced %s %q has no identity keys", obj.TypeTag(), obj.Name())
		}
		return LinkByUID{}, fmt.Errorf("reference has no identity keys")
	}
	for _, l := range links {
		if l.Scope == PlatformScope {
			return l, nil
		}
	}
	return links[0], nil
}

func linkDict(l LinkByUID) map[string]any {
	return map[string]any{"type": wireTypeLink, "scope": l.Scope, "id": l.ID}
}

func parseLinkDict(v any) (LinkByUID, bool) {
	m, ok := v.(map[string]any)
	if !ok || m["type"] != wireTypeLink {
		return LinkByUID{}, false
	}
	scope, _ := m["scope"].(string)
	id, _ := m["id"].(string)
	return LinkByUID{Scope: scope, ID: id}, scope != "" || id != ""
}

func wireRef(w map[string]any, key string) Ref {
	if l, ok := parseLinkDict(w[key]); ok {
		return l
	}
	return nil
}

func wireRefList(w map[string]any, key string) []Ref {
	raw, ok := w[key].([]any)
	if !ok {
		return nil
	}
	var refs []Ref
	for _, v := range raw {
		if l, ok := parseLinkDict(v); ok {
			refs = append(refs, l)
		}
	}
	return refs
}

func wireTags(w map[string]any) []string {
	switch raw := w["tags"].(type) {
	case []string:
		return append([]string{}, raw...)
	case []any:
		var tags []string
		for _, v := range raw {
			if s, ok := v.(string); ok {
				tags = append(tags, s)
			}
		}
		return tags
	default:
		return nil
	}
}

// refFields serializes single-valued reference fields, omitting nils.
func refFields(refs map[string]Ref) (map[string]any, error) {
	fields := make(map[string]any, len(refs))
	for key, r := range refs {
		if r == nil {
			continue
		}
		l, err := PreferredLink(r)
		if err != nil {
			return nil, fmt.Errorf("field %q: %w", key, err)
		}
		fields[key] = linkDict(l)
	}
	return fields, nil
}

// refListFields serializes list-valued reference fields, omitting
// empty lists.
func refListFields(refs map[string][]Ref) (map[string]any, error) {
	fields := make(map[string]any, len(refs))
	for key, list := range refs {
		if len(list) == 0 {
			continue
		}
		out := make([]any, 0, len(list))
		for _, r := range list {
			l, err := PreferredLink(r)
			if err != nil {
				return nil, fmt.Errorf("field %q: %w", key, err)
			}
			out = append(out, linkDict(l))
		}
		fields[key] = out
	}
	return fields, nil
}

// presentRefs filters out nil references.
func presentRefs(refs ...Ref) []Ref {
	var out []Ref
	for _, r := range refs {
		if r != nil {
			out = append(out, r)
		}
	}
	return out
}

// uidLinks converts a uid map into links in scope-sorted order.
func uidLinks(uids map[string]string) []LinkByUID {
	scopes := make([]string, 0, len(uids))
	for scope := range uids {
		scopes = append(scopes, scope)
	}
	sort.Strings(scopes)
	links := make([]LinkByUID, 0, len(scopes))
	for _, scope := range scopes {
		links = append(links, LinkByUID{Scope: scope, ID: uids[scope]})
	}
	return links
}
