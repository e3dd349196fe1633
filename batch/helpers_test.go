package batch

import (
	"fmt"

	"github.com/matgraph/sdk/gemd"
)

// provenanceChain builds n objects of repeated linear triples: a
// process template, a spec referencing it, and a run referencing the
// spec. Objects are emitted most-dependent first (run, spec, template)
// so tests exercise reordering. Every object carries a platform uid.
func provenanceChain(n int) []gemd.DataObject {
	var out []gemd.DataObject
	for i := 0; len(out) < n; i++ {
		tmpl := gemd.NewProcessTemplate(fmt.Sprintf("template-%d", i)).
			WithUID(gemd.PlatformScope, fmt.Sprintf("t-%d", i))
		spec := gemd.NewProcessSpec(fmt.Sprintf("spec-%d", i)).
			WithUID(gemd.PlatformScope, fmt.Sprintf("s-%d", i)).
			WithTemplate(tmpl)
		run := gemd.NewProcessRun(fmt.Sprintf("run-%d", i)).
			WithUID(gemd.PlatformScope, fmt.Sprintf("r-%d", i)).
			WithSpec(spec)
		for _, obj := range []gemd.DataObject{run, spec, tmpl} {
			if len(out) < n {
				out = append(out, obj)
			}
		}
	}
	return out
}

// linkedChain builds a single connected provenance chain of n objects:
// one process template, then repeated [process spec, material spec,
// ingredient spec] triples where each ingredient points at the next
// triple's process. Every object depends, directly or transitively, on
// the objects after it in the returned slice.
func linkedChain(n int) []gemd.DataObject {
	tmpl := gemd.NewProcessTemplate("template-0").
		WithUID(gemd.PlatformScope, "t-0")
	out := []gemd.DataObject{tmpl}
	var prevIngredient *gemd.IngredientSpec
	for i := 0; len(out) < n; i++ {
		proc := gemd.NewProcessSpec(fmt.Sprintf("proc-%d", i)).
			WithUID(gemd.PlatformScope, fmt.Sprintf("p-%d", i))
		if i == 0 {
			proc.WithTemplate(tmpl)
		}
		if prevIngredient != nil {
			prevIngredient.WithProcess(proc)
		}
		mat := gemd.NewMaterialSpec(fmt.Sprintf("mat-%d", i)).
			WithUID(gemd.PlatformScope, fmt.Sprintf("m-%d", i)).
			WithProcess(proc)
		ing := gemd.NewIngredientSpec(fmt.Sprintf("ing-%d", i)).
			WithUID(gemd.PlatformScope, fmt.Sprintf("i-%d", i)).
			WithMaterial(mat)
		prevIngredient = ing
		for _, obj := range []gemd.DataObject{proc, mat, ing} {
			if len(out) < n {
				out = append(out, obj)
			}
		}
	}
	return out
}

// flattenBatches concatenates batches back into one slice.
func flattenBatches(batches [][]gemd.DataObject) []gemd.DataObject {
	var out []gemd.DataObject
	for _, b := range batches {
		out = append(out, b...)
	}
	return out
}

// containsObject reports whether the slice holds the given object.
func containsObject(objs []gemd.DataObject, want gemd.DataObject) bool {
	for _, obj := range objs {
		if obj == want {
			return true
		}
	}
	return false
}
