package gemd

// Index maps every identity link seen across a collection to its owning
// object. It is the lookup the dependency batcher and the registration
// machinery use to resolve references in-collection.
type Index map[LinkByUID]DataObject

// MakeIndex builds an index over the given objects. When two objects
// share an identity key, the first one wins; replicate consistency is
// the batcher's concern, not the index's.
func MakeIndex(objs []DataObject) Index {
	ix := make(Index)
	for _, obj := range objs {
		for _, l := range obj.Links() {
			if _, seen := ix[l]; !seen {
				ix[l] = obj
			}
		}
	}
	return ix
}

// Resolve looks up the object a reference points at, trying each of the
// reference's identity links in order. Returns false if no link is
// known to the index.
func (ix Index) Resolve(r Ref) (DataObject, bool) {
	for _, l := range r.Links() {
		if obj, ok := ix[l]; ok {
			return obj, true
		}
	}
	return nil, false
}
