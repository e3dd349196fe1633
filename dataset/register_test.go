package dataset

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/url"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/matgraph/sdk/batch"
	"github.com/matgraph/sdk/gemd"
	"github.com/matgraph/sdk/jobs"
)

// fakeTransport is a scripted platform: it echoes registered objects
// back with a platform id attached, and replays configured delete jobs.
type fakeTransport struct {
	putCalls   []putCall
	putErrOn   int // 1-based call number that fails; 0 means never
	nextID     int
	deleteBody any
	jobID      string
	postErr    error
	snapshots  []jobs.Job
	jobFetches int
	listPages  []map[string]any
	listCalls  []url.Values
	listErr    error
}

type putCall struct {
	path   string
	objs   []map[string]any
	params url.Values
}

func (f *fakeTransport) PutBatch(ctx context.Context, path string, objs []map[string]any, params url.Values) ([]map[string]any, error) {
	f.putCalls = append(f.putCalls, putCall{path: path, objs: objs, params: params})
	if f.putErrOn != 0 && len(f.putCalls) == f.putErrOn {
		return nil, errors.New("transport exploded")
	}
	out := make([]map[string]any, 0, len(objs))
	for _, obj := range objs {
		built := make(map[string]any, len(obj))
		for k, v := range obj {
			built[k] = v
		}
		uids := make(map[string]any)
		if prior, ok := obj["uids"].(map[string]string); ok {
			for scope, id := range prior {
				uids[scope] = id
			}
		}
		f.nextID++
		uids[gemd.PlatformScope] = fmt.Sprintf("srv-%d", f.nextID)
		built["uids"] = uids
		out = append(out, built)
	}
	return out, nil
}

func (f *fakeTransport) PostDelete(ctx context.Context, path string, body any) (string, error) {
	f.deleteBody = body
	if f.postErr != nil {
		return "", f.postErr
	}
	return f.jobID, nil
}

func (f *fakeTransport) GetJob(ctx context.Context, path, jobID string) (jobs.Job, error) {
	if f.jobFetches < len(f.snapshots) {
		f.jobFetches++
	}
	return f.snapshots[f.jobFetches-1], nil
}

func (f *fakeTransport) GetJSON(ctx context.Context, path string, params url.Values, out any) error {
	f.listCalls = append(f.listCalls, params)
	if f.listErr != nil {
		return f.listErr
	}
	page := map[string]any{}
	if n := len(f.listCalls) - 1; n < len(f.listPages) {
		page = f.listPages[n]
	}
	raw, err := json.Marshal(page)
	if err != nil {
		return err
	}
	return json.Unmarshal(raw, out)
}

// triples builds n [template, spec, run] triples with client-scope
// identity keys.
func triples(n int) []gemd.DataObject {
	var out []gemd.DataObject
	for i := 0; i < n; i++ {
		tmpl := gemd.NewProcessTemplate(fmt.Sprintf("template-%d", i)).
			WithUID(gemd.ClientScope, fmt.Sprintf("t-%d", i))
		spec := gemd.NewProcessSpec(fmt.Sprintf("spec-%d", i)).
			WithUID(gemd.ClientScope, fmt.Sprintf("s-%d", i)).
			WithTemplate(tmpl)
		run := gemd.NewProcessRun(fmt.Sprintf("run-%d", i)).
			WithUID(gemd.ClientScope, fmt.Sprintf("r-%d", i)).
			WithSpec(spec)
		out = append(out, run, spec, tmpl)
	}
	return out
}

func TestRegisterAll_SubmitsOrderedBatchesAndReturnsIdentity(t *testing.T) {
	transport := &fakeTransport{}
	d := New("d1", transport)
	objs := triples(4) // 12 objects across three types

	result, err := d.RegisterAll(context.Background(), objs, WithBatchSize(4))
	require.NoError(t, err)

	// Three type groups of four, none coalescible at batch size four.
	require.Len(t, transport.putCalls, 3)
	assert.Equal(t, 3, result.BatchesSubmitted)
	for _, call := range transport.putCalls {
		assert.Equal(t, "/datasets/d1/objects/batch", call.path)
		assert.Equal(t, "false", call.params.Get("dry_run"))
		assert.Len(t, call.objs, 4)
	}

	// Templates land before specs, specs before runs.
	assert.Equal(t, "process_template", transport.putCalls[0].objs[0]["type"])
	assert.Equal(t, "process_spec", transport.putCalls[1].objs[0]["type"])
	assert.Equal(t, "process_run", transport.putCalls[2].objs[0]["type"])

	require.Len(t, result.Registered, 12)
	require.Len(t, result.Updated, 12)

	// Caller objects untouched until Apply.
	assert.NotContains(t, objs[0].UIDs(), gemd.PlatformScope)
	result.Apply()
	for _, obj := range objs {
		assert.Contains(t, obj.UIDs(), gemd.PlatformScope, "%s missing platform id", obj.Name())
	}
}

func TestRegisterAll_AssignsIdentityWhereMissing(t *testing.T) {
	transport := &fakeTransport{}
	d := New("d1", transport)
	spec := gemd.NewProcessSpec("anonymous")

	result, err := d.RegisterAll(context.Background(), []gemd.DataObject{spec})
	require.NoError(t, err)

	require.Len(t, transport.putCalls, 1)
	uids, ok := transport.putCalls[0].objs[0]["uids"].(map[string]string)
	require.True(t, ok)
	assert.NotEmpty(t, uids[gemd.ClientScope])
	assert.Len(t, result.Updated, 1)
}

func TestRegisterAll_SerializesReferencesAsLinks(t *testing.T) {
	transport := &fakeTransport{}
	d := New("d1", transport)

	_, err := d.RegisterAll(context.Background(), triples(1))
	require.NoError(t, err)

	require.Len(t, transport.putCalls, 1) // three objects coalesce into one batch
	for _, obj := range transport.putCalls[0].objs {
		for _, field := range []string{"spec", "template"} {
			if ref, ok := obj[field]; ok {
				link, ok := ref.(map[string]any)
				require.True(t, ok, "field %s is not a link dict", field)
				assert.Equal(t, "link_by_uid", link["type"])
				assert.NotContains(t, link, "uids", "embedded object leaked into %s", field)
			}
		}
	}
}

func TestRegisterAll_IncludeNestedFlattensGraph(t *testing.T) {
	transport := &fakeTransport{}
	d := New("d1", transport)
	objs := triples(1)
	run := objs[0] // run references spec references template

	result, err := d.RegisterAll(context.Background(), []gemd.DataObject{run}, WithIncludeNested(true))
	require.NoError(t, err)

	assert.Len(t, result.Objects, 3)
	assert.Len(t, result.Registered, 3)
}

func TestRegisterAll_DryRunUsesSelfContainedBatchesAndLeaksNoIdentity(t *testing.T) {
	transport := &fakeTransport{}
	d := New("d1", transport)
	spec := gemd.NewProcessSpec("lonely-spec") // no identity keys at all

	result, err := d.RegisterAll(context.Background(), []gemd.DataObject{spec}, WithDryRun(true))
	require.NoError(t, err)

	require.Len(t, transport.putCalls, 1)
	assert.Equal(t, "true", transport.putCalls[0].params.Get("dry_run"))

	// The correlation key was assigned under a private scope...
	uids, ok := transport.putCalls[0].objs[0]["uids"].(map[string]string)
	require.True(t, ok)
	require.Len(t, uids, 1)
	for scope := range uids {
		assert.True(t, gemd.IsTempScope(scope))
	}

	// ...and stripped from both inputs and outputs afterwards.
	assert.Empty(t, spec.UIDs())
	require.Len(t, result.Registered, 1)
	for scope := range result.Registered[0].UIDs() {
		assert.False(t, gemd.IsTempScope(scope), "temporary scope leaked: %s", scope)
	}
	assert.Len(t, result.Updated, 1)
}

func TestRegisterAll_DryRunBatchesAreDependencyClosed(t *testing.T) {
	transport := &fakeTransport{}
	d := New("d1", transport)
	objs := triples(2) // two disjoint three-object chains

	_, err := d.RegisterAll(context.Background(), objs, WithDryRun(true), WithBatchSize(3))
	require.NoError(t, err)

	require.Len(t, transport.putCalls, 2)
	for _, call := range transport.putCalls {
		// Each submitted cluster holds one whole chain: every link
		// reference resolves inside the same payload.
		ids := make(map[string]bool)
		for _, obj := range call.objs {
			for _, id := range obj["uids"].(map[string]string) {
				ids[id] = true
			}
		}
		for _, obj := range call.objs {
			for _, field := range []string{"spec", "template"} {
				if ref, ok := obj[field].(map[string]any); ok {
					assert.True(t, ids[ref["id"].(string)],
						"%v references outside its cluster", obj["name"])
				}
			}
		}
	}
}

func TestRegisterAll_BatchingErrorsPrecedeNetworkCalls(t *testing.T) {
	transport := &fakeTransport{}
	d := New("d1", transport)
	a := gemd.NewProcessSpec("left").WithUID(gemd.ClientScope, "shared")
	b := gemd.NewProcessSpec("right").WithUID(gemd.ClientScope, "shared")

	_, err := d.RegisterAll(context.Background(), []gemd.DataObject{a, b})

	var collision *batch.CollisionError
	require.ErrorAs(t, err, &collision)
	assert.Empty(t, transport.putCalls, "network was touched despite a batching error")
}

func TestRegisterAll_HaltsOnTransportFailureKeepingEarlierBatches(t *testing.T) {
	transport := &fakeTransport{putErrOn: 2}
	d := New("d1", transport)
	objs := triples(4)

	result, err := d.RegisterAll(context.Background(), objs, WithBatchSize(4))
	require.Error(t, err)
	require.NotNil(t, result)

	assert.Equal(t, 1, result.BatchesSubmitted)
	assert.Len(t, transport.putCalls, 2, "submission continued past the failure")
	assert.Len(t, result.Registered, 4, "first batch results were lost")

	// The merge map covers exactly the acknowledged batch.
	result.Apply()
	withID := 0
	for _, obj := range objs {
		if _, ok := obj.UIDs()[gemd.PlatformScope]; ok {
			withID++
		}
	}
	assert.Equal(t, 4, withID)
}

func TestRegisterAll_ReplicatesRegisterOnce(t *testing.T) {
	transport := &fakeTransport{}
	d := New("d1", transport)
	objs := triples(1)
	doubled := append(append([]gemd.DataObject{}, objs...), objs...)

	result, err := d.RegisterAll(context.Background(), doubled)
	require.NoError(t, err)
	assert.Len(t, result.Registered, 3)
}

func TestRegisterAll_EmptyInput(t *testing.T) {
	transport := &fakeTransport{}
	d := New("d1", transport)

	result, err := d.RegisterAll(context.Background(), nil)
	require.NoError(t, err)
	assert.Empty(t, result.Registered)
	assert.Empty(t, transport.putCalls)
}
