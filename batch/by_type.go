package batch

import "github.com/matgraph/sdk/gemd"

// Batcher partitions a collection of data objects into batches of at
// most batchSize objects each. Batchers are pure and stateless; they
// never mutate the objects they are given.
type Batcher interface {
	Batch(objs []gemd.DataObject, batchSize int) ([][]gemd.DataObject, error)
}

// ByType batches objects grouped by type, in write-priority order.
//
// This is the batcher for the normal bulk-write path: the backend
// enforces referential integrity across sequential submissions, so it
// suffices that templates land before the specs that reference them,
// specs before runs, and so on. Within that constraint small adjacent
// batches are coalesced to cut down round trips.
type ByType struct {
	// Order overrides the type-priority table. Nil means WriteOrder.
	Order Order
}

// Batch deduplicates replicates, groups the survivors by type in
// priority order, chunks each group at batchSize, and then merges
// adjacent batches backward wherever the merge stays within the size
// cap. Merging only ever joins neighbors, so the priority order of the
// batch sequence is preserved.
//
// Returns a CollisionError if two value-unequal objects share an
// identity key.
func (b ByType) Batch(objs []gemd.DataObject, batchSize int) ([][]gemd.DataObject, error) {
	if batchSize < 1 {
		return nil, ErrInvalidBatchSize
	}

	unique, err := dedupe(objs)
	if err != nil {
		return nil, err
	}

	var batches [][]gemd.DataObject
	for _, group := range GroupByType(unique, b.Order) {
		for start := 0; start < len(group); start += batchSize {
			end := start + batchSize
			if end > len(group) {
				end = len(group)
			}
			batches = append(batches, group[start:end:end])
		}
	}

	// Backward coalescing pass. Scanning from the tail means a merge
	// can cascade: a small batch absorbed into its predecessor may make
	// that predecessor mergeable in turn.
	for i := len(batches) - 2; i >= 0; i-- {
		if len(batches[i])+len(batches[i+1]) <= batchSize {
			merged := append(append([]gemd.DataObject{}, batches[i]...), batches[i+1]...)
			batches[i] = merged
			batches = append(batches[:i+1], batches[i+2:]...)
		}
	}
	return batches, nil
}

// dedupe collapses replicates, keeping first occurrences, and fails on
// value-unequal objects that claim the same identity key. Objects with
// no identity keys cannot be deduplicated and always pass through.
func dedupe(objs []gemd.DataObject) ([]gemd.DataObject, error) {
	seen := make(map[gemd.LinkByUID]gemd.DataObject)
	var unique []gemd.DataObject
	for _, obj := range objs {
		replicate := false
		for _, l := range obj.Links() {
			prior, ok := seen[l]
			if !ok {
				continue
			}
			if prior != obj && !gemd.Equal(prior, obj) {
				return nil, &CollisionError{Link: l, First: prior.Name(), Second: obj.Name()}
			}
			replicate = true
		}
		if replicate {
			continue
		}
		for _, l := range obj.Links() {
			seen[l] = obj
		}
		unique = append(unique, obj)
	}
	return unique, nil
}
