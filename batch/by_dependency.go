package batch

import "github.com/matgraph/sdk/gemd"

// ByDependency batches objects into self-contained clusters.
//
// This is the batcher for the dry-run validation path: each batch is
// validated in isolation, without cross-batch context, so every
// object's full transitive dependency closure (restricted to the input
// collection) must travel in the same batch. Clusters are grown
// greedily from the highest-context objects to keep the cluster count
// low while never exceeding the size cap.
type ByDependency struct {
	// Order overrides the type-priority table. Nil means WriteOrder.
	Order Order
}

// Batch partitions the objects into dependency-closed clusters of at
// most batchSize objects each. Every object appears in at least one
// cluster, and every in-collection dependency of a clustered object is
// in that same cluster; shared context objects may repeat across
// clusters when the size cap forces a split. Clusters are independently
// valid; their relative order carries no meaning.
//
// Returns an OversizedError if any single object's closure (including
// itself) exceeds batchSize — that object cannot be validated at this
// batch size no matter how the collection is split. Returns a
// CycleError for malformed cyclic input.
func (b ByDependency) Batch(objs []gemd.DataObject, batchSize int) ([][]gemd.DataObject, error) {
	if batchSize < 1 {
		return nil, ErrInvalidBatchSize
	}

	unique, err := dedupe(objs)
	if err != nil {
		return nil, err
	}
	groups := GroupByType(unique, b.Order)

	c := &closures{
		index:       gemd.MakeIndex(unique),
		closure:     make(map[gemd.DataObject][]gemd.DataObject),
		supportedBy: make(map[gemd.DataObject][]gemd.DataObject),
		onStack:     make(map[gemd.DataObject]bool),
	}

	// Closure pass in priority order: dependencies are lower-priority
	// types, so each object's closure is memoized before its dependents
	// ask for it. The reverse index records, for every object, which
	// dependents pull it into their closures.
	for _, group := range groups {
		for _, obj := range group {
			cl, err := c.of(obj)
			if err != nil {
				return nil, err
			}
			if len(cl)+1 > batchSize {
				return nil, &OversizedError{
					Type:        obj.TypeTag(),
					Name:        obj.Name(),
					ClosureSize: len(cl) + 1,
					BatchSize:   batchSize,
				}
			}
			for _, dep := range cl {
				c.supportedBy[dep] = append(c.supportedBy[dep], obj)
			}
		}
	}

	// Cluster pass in reverse priority order: the most-dependent types
	// carry the deepest closures, so seeding from them pulls shared
	// context together instead of fragmenting it.
	clustered := make(map[gemd.DataObject]bool)
	var clusters [][]gemd.DataObject
	for gi := len(groups) - 1; gi >= 0; gi-- {
		for _, seed := range groups[gi] {
			if clustered[seed] {
				continue
			}
			cluster := c.grow(seed, batchSize, clustered)
			for _, m := range cluster {
				clustered[m] = true
			}
			clusters = append(clusters, cluster)
		}
	}
	return clusters, nil
}

// closures carries the per-call closure and reverse-index state.
type closures struct {
	index       gemd.Index
	closure     map[gemd.DataObject][]gemd.DataObject
	supportedBy map[gemd.DataObject][]gemd.DataObject
	onStack     map[gemd.DataObject]bool
}

// of returns the object's transitive dependency closure, restricted to
// the indexed collection and excluding the object itself. Memoized;
// fails on cycles instead of recursing forever.
func (c *closures) of(obj gemd.DataObject) ([]gemd.DataObject, error) {
	if cl, done := c.closure[obj]; done {
		return cl, nil
	}
	if c.onStack[obj] {
		return nil, &CycleError{Type: obj.TypeTag(), Name: obj.Name()}
	}
	c.onStack[obj] = true
	defer delete(c.onStack, obj)

	members := make(map[gemd.DataObject]bool)
	var cl []gemd.DataObject
	for _, ref := range obj.Dependencies() {
		dep, ok := c.index.Resolve(ref)
		if !ok || dep == obj || members[dep] {
			continue
		}
		members[dep] = true
		cl = append(cl, dep)
		sub, err := c.of(dep)
		if err != nil {
			return nil, err
		}
		for _, d := range sub {
			if d != obj && !members[d] {
				members[d] = true
				cl = append(cl, d)
			}
		}
	}
	c.closure[obj] = cl
	return cl, nil
}

// grow builds one cluster: the seed plus its closure, then a frontier
// expansion over everything that depends on a cluster member, merging
// each candidate (with its own closure) whenever the merge stays within
// the size cap.
func (c *closures) grow(seed gemd.DataObject, batchSize int, clustered map[gemd.DataObject]bool) []gemd.DataObject {
	inCluster := map[gemd.DataObject]bool{seed: true}
	cluster := []gemd.DataObject{seed}
	queue := []gemd.DataObject{seed}
	for _, dep := range c.closure[seed] {
		inCluster[dep] = true
		cluster = append(cluster, dep)
		queue = append(queue, dep)
	}

	for len(queue) > 0 {
		member := queue[0]
		queue = queue[1:]
		for _, cand := range c.supportedBy[member] {
			if clustered[cand] || inCluster[cand] {
				continue
			}
			var novel []gemd.DataObject
			novel = append(novel, cand)
			for _, dep := range c.closure[cand] {
				if !inCluster[dep] {
					novel = append(novel, dep)
				}
			}
			if len(cluster)+len(novel) > batchSize {
				continue
			}
			for _, m := range novel {
				inCluster[m] = true
				cluster = append(cluster, m)
				queue = append(queue, m)
			}
		}
	}
	return cluster
}
