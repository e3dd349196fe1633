// Package dataset orchestrates bulk registration and deletion of GEMD
// object graphs against one platform dataset.
//
// RegisterAll turns an arbitrary collection of interlinked objects into
// an ordered sequence of network round trips: identity keys are
// assigned where missing, the collection is partitioned by a batcher
// (type-ordered batches for writes, self-contained clusters for dry
// runs), every embedded reference is serialized as a lightweight link,
// and batches are submitted strictly one at a time so that later
// batches may reference earlier ones. Server-assigned identity comes
// back in the RegisterResult and is merged onto caller objects only
// through an explicit Apply.
//
// BatchDelete submits one asynchronous deletion job for a
// heterogeneous list of identifiers and polls it to completion,
// reporting per-object failures as data rather than errors.
package dataset
