// Package gemd provides the typed object model for GEMD-style materials
// provenance graphs: templates, specs, runs, and ingredients, plus the
// lightweight links that reference them.
//
// # Core Types
//
//   - DataObject: the node contract every concrete object implements —
//     a type tag, scoped identity keys, and direct dependencies
//   - LinkByUID: an immutable (scope, id) reference standing in for an
//     object without embedding its content
//   - ObjectType: the closed discriminator enum over all fourteen GEMD
//     object kinds
//   - Index: identity-key lookup over a collection of objects
//
// # Graph Shape
//
// Dependencies point from dependents to their prerequisites: runs
// reference their specs, specs reference their templates, ingredients
// reference the materials and processes they bind. Provenance graphs
// are acyclic by construction.
//
// # Serialization
//
// ToWire serializes an object with every embedded reference rewritten
// as a link dict, and FromWire reverses it. Objects referenced by
// others must carry at least one identity key before serialization;
// RegisterUID assigns platform-scoped UUIDs where keys are missing.
package gemd
