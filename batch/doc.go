// Package batch partitions collections of interlinked GEMD data
// objects into size-bounded batches for bulk registration.
//
// Two strategies are provided:
//
//   - ByType: batches hold objects of like type, emitted in
//     write-priority order (templates, then specs, then runs, then
//     ingredients). Safe for the sequential bulk-write path, where the
//     backend resolves references against everything already written.
//   - ByDependency: batches are self-contained clusters carrying each
//     member's full transitive dependency closure. Required for the
//     dry-run validation path, where each batch is checked without
//     cross-batch context.
//
// Both batchers collapse replicates (objects sharing an identity key)
// down to a single occurrence, and fail fast — before any network
// traffic — on identity collisions, oversized dependency closures, and
// cyclic input.
package batch
