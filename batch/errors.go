package batch

import (
	"errors"
	"fmt"

	"github.com/matgraph/sdk/gemd"
)

// ErrInvalidBatchSize indicates a batch size below 1 was requested.
var ErrInvalidBatchSize = errors.New("batch size must be at least 1")

// CollisionError indicates two value-unequal objects claimed the same
// identity key within a single submission. Replicates must be
// value-equal; anything else is a caller bug that would corrupt the
// submission, so batching fails before any network call is made.
type CollisionError struct {
	// Link is the identity key both objects claimed.
	Link gemd.LinkByUID

	// First and Second name the colliding objects.
	First  string
	Second string
}

func (e *CollisionError) Error() string {
	return fmt.Sprintf("colliding objects for %s: %q vs %q", e.Link, e.First, e.Second)
}

// OversizedError indicates a single object's dependency closure
// (including the object itself) exceeds the batch size, so no
// self-contained cluster can hold it. The caller must either raise the
// batch size or break up the object's dependencies.
type OversizedError struct {
	// Type and Name identify the offending object.
	Type gemd.ObjectType
	Name string

	// ClosureSize is the object's closure size including itself.
	ClosureSize int

	// BatchSize is the cap that was exceeded.
	BatchSize int
}

func (e *OversizedError) Error() string {
	return fmt.Sprintf("%s %q needs %d objects in one batch but the batch size is %d",
		e.Type, e.Name, e.ClosureSize, e.BatchSize)
}

// CycleError indicates the dependency graph contains a cycle.
// Provenance graphs are acyclic by construction, so a cycle means
// malformed input; closure computation fails rather than looping.
type CycleError struct {
	// Type and Name identify an object on the cycle.
	Type gemd.ObjectType
	Name string
}

func (e *CycleError) Error() string {
	return fmt.Sprintf("dependency cycle through %s %q", e.Type, e.Name)
}
