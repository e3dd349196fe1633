package gemd

// Flatten expands the given roots into every data object reachable from
// them through embedded references, in breadth-first order with roots
// first. Link references cannot be expanded and are skipped; duplicates
// (by pointer or by shared identity key) are collected once.
func Flatten(roots ...DataObject) []DataObject {
	var out []DataObject
	seenObj := make(map[DataObject]bool)
	seenLink := make(map[LinkByUID]bool)

	queue := append([]DataObject{}, roots...)
	for len(queue) > 0 {
		obj := queue[0]
		queue = queue[1:]
		if obj == nil || seenObj[obj] {
			continue
		}
		known := false
		for _, l := range obj.Links() {
			if seenLink[l] {
				known = true
			}
		}
		seenObj[obj] = true
		if known {
			continue
		}
		for _, l := range obj.Links() {
			seenLink[l] = true
		}
		out = append(out, obj)
		for _, dep := range obj.Dependencies() {
			if child, ok := dep.(DataObject); ok {
				queue = append(queue, child)
			}
		}
	}
	return out
}
