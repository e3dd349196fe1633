// Package sdk provides the official Go client for the MatGraph
// materials-informatics platform.
//
// The SDK models GEMD-style provenance graphs — templates, specs,
// runs, and the ingredients binding them — and registers, validates,
// and deletes those graphs in bulk against platform datasets.
//
// # Core Concepts
//
// The SDK is organized around several key concepts:
//
//   - Data objects: typed nodes of the provenance graph (package gemd)
//   - Links: lightweight (scope, id) references between objects
//   - Datasets: the platform containers objects are registered into
//   - Batchers: strategies that partition object graphs into
//     dependency-safe, size-bounded submissions (package batch)
//
// # Getting Started
//
// Create a client and register an object graph from its roots:
//
//	client, err := sdk.NewClient(
//	    sdk.WithHost("https://api.matgraph.io"),
//	    sdk.WithAPIKey(os.Getenv("MATGRAPH_API_KEY")),
//	)
//	if err != nil {
//	    log.Fatal(err)
//	}
//
//	ds := client.Dataset("my-dataset")
//	result, err := ds.RegisterAll(ctx, []gemd.DataObject{run},
//	    dataset.WithIncludeNested(true))
//	if err != nil {
//	    log.Fatal(err)
//	}
//	result.Apply() // merge server-assigned ids onto your objects
//
// Validation without persistence uses the same call with
// dataset.WithDryRun(true); each submitted batch is then a
// self-contained dependency cluster the platform can check in
// isolation.
package sdk
