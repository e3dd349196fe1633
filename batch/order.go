package batch

import "github.com/matgraph/sdk/gemd"

// Order assigns a write priority to each object type; lower values must
// be written first. It is injectable so tests and callers can supply a
// custom priority table, but WriteOrder is correct for the platform.
type Order func(gemd.ObjectType) int

var writeOrder = func() map[gemd.ObjectType]int {
	m := make(map[gemd.ObjectType]int, len(gemd.AllObjectTypes))
	for i, t := range gemd.AllObjectTypes {
		m[t] = i
	}
	return m
}()

// WriteOrder is the platform's type-priority table: attribute templates
// before object templates, templates before specs, specs before runs,
// ingredients last. A batch sequence ordered this way is always
// dependency-safe, since references only ever point at equal or lower
// priority types. Unknown types sort last.
func WriteOrder(t gemd.ObjectType) int {
	if p, ok := writeOrder[t]; ok {
		return p
	}
	return len(gemd.AllObjectTypes)
}

// GroupByType buckets objects by type tag, preserving input order
// within each bucket, and returns the buckets sorted by the given
// priority order. Empty input yields no buckets.
func GroupByType(objs []gemd.DataObject, order Order) [][]gemd.DataObject {
	if order == nil {
		order = WriteOrder
	}
	buckets := make(map[gemd.ObjectType][]gemd.DataObject)
	var tags []gemd.ObjectType
	for _, obj := range objs {
		tag := obj.TypeTag()
		if _, seen := buckets[tag]; !seen {
			tags = append(tags, tag)
		}
		buckets[tag] = append(buckets[tag], obj)
	}

	// Insertion-order sort; the tag list is small (14 types at most).
	for i := 1; i < len(tags); i++ {
		for j := i; j > 0 && order(tags[j-1]) > order(tags[j]); j-- {
			tags[j-1], tags[j] = tags[j], tags[j-1]
		}
	}

	groups := make([][]gemd.DataObject, 0, len(tags))
	for _, tag := range tags {
		groups = append(groups, buckets[tag])
	}
	return groups
}
