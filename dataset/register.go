package dataset

import (
	"context"
	"net/url"
	"strconv"

	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"

	"github.com/matgraph/sdk/batch"
	"github.com/matgraph/sdk/gemd"
)

// DefaultBatchSize is the number of objects submitted per round trip
// when the caller does not override it.
const DefaultBatchSize = 50

// RegisterOption configures a RegisterAll call.
type RegisterOption func(*registerConfig)

type registerConfig struct {
	dryRun        bool
	includeNested bool
	batchSize     int
}

// WithDryRun makes the call validation-only: batches are self-contained
// dependency clusters, identity keys assigned for correlation are
// private to the call, and nothing is persisted server-side.
func WithDryRun(dryRun bool) RegisterOption {
	return func(c *registerConfig) {
		c.dryRun = dryRun
	}
}

// WithIncludeNested expands the given objects to everything reachable
// from them before registration, so a whole object graph can be
// registered from its roots.
func WithIncludeNested(nested bool) RegisterOption {
	return func(c *registerConfig) {
		c.includeNested = nested
	}
}

// WithBatchSize overrides the maximum objects per round trip.
func WithBatchSize(size int) RegisterOption {
	return func(c *registerConfig) {
		c.batchSize = size
	}
}

// RegisterResult reports the outcome of a RegisterAll call. The SDK
// never silently mutates caller-owned objects; server-assigned
// identity is returned here and merged only when the caller invokes
// Apply.
type RegisterResult struct {
	// Objects is the processed collection: the caller's objects, plus
	// everything reached through them when nested registration was
	// requested.
	Objects []gemd.DataObject

	// Registered holds the platform's built objects in submission
	// order.
	Registered []gemd.DataObject

	// Updated maps each processed object to its built counterpart,
	// matched by identity key.
	Updated map[gemd.DataObject]gemd.DataObject

	// BatchesSubmitted counts the batches the platform acknowledged.
	// On a mid-stream failure this tells the caller how far execution
	// got; acknowledged batches are not rolled back.
	BatchesSubmitted int
}

// Apply merges server-assigned identity keys and normalized tags from
// each built object back onto the corresponding original. This is the
// only way a RegisterAll call touches caller-owned data.
func (r *RegisterResult) Apply() {
	for orig, built := range r.Updated {
		for scope, id := range built.UIDs() {
			orig.AddUID(scope, id)
		}
		if tags := built.Tags(); len(tags) > 0 {
			orig.SetTags(tags)
		}
	}
}

// RegisterAll registers a collection of interlinked objects in
// dependency-safe order.
//
// Objects are deduplicated, given identity keys where they lack them,
// partitioned into batches (type-ordered batches for writes,
// self-contained clusters for dry runs), and submitted strictly one
// batch at a time: batch N starts only after batch N-1 is acknowledged,
// which is what lets later batches reference earlier objects.
//
// Batching errors (identity collisions, oversized dependency closures,
// cyclic input) surface before any network call. A transport failure
// halts submission; the returned result still reports the batches that
// were acknowledged, and those are not rolled back.
func (d *Dataset) RegisterAll(ctx context.Context, objs []gemd.DataObject, opts ...RegisterOption) (*RegisterResult, error) {
	cfg := registerConfig{batchSize: DefaultBatchSize}
	for _, opt := range opts {
		opt(&cfg)
	}

	ctx, span := d.tracer.Start(ctx, "dataset.register_all", trace.WithAttributes(
		attribute.String("dataset.id", d.id),
		attribute.Bool("dry_run", cfg.dryRun),
		attribute.Int("batch_size", cfg.batchSize),
	))
	defer span.End()

	processed := append([]gemd.DataObject{}, objs...)
	if cfg.includeNested {
		processed = gemd.Flatten(processed...)
	}

	// Correlating server responses back onto these objects needs every
	// object to carry at least one identity key. Dry runs assign keys
	// under a scope private to this call so validation leaks nothing.
	scope := gemd.ClientScope
	if cfg.dryRun {
		scope = gemd.NewTempScope()
	}
	for _, obj := range processed {
		if len(obj.UIDs()) == 0 {
			gemd.RegisterUID(obj, scope)
		}
	}
	if cfg.dryRun {
		defer func() {
			for _, obj := range processed {
				gemd.StripTempUIDs(obj)
			}
		}()
	}

	var batcher batch.Batcher
	if cfg.dryRun {
		batcher = batch.ByDependency{}
	} else {
		batcher = batch.ByType{}
	}
	batches, err := batcher.Batch(processed, cfg.batchSize)
	if err != nil {
		return nil, err
	}

	index := gemd.MakeIndex(processed)
	params := url.Values{"dry_run": []string{strconv.FormatBool(cfg.dryRun)}}
	result := &RegisterResult{
		Objects: processed,
		Updated: make(map[gemd.DataObject]gemd.DataObject),
	}

	for i, b := range batches {
		serialized := make([]map[string]any, 0, len(b))
		for _, obj := range b {
			w, err := gemd.ToWire(obj)
			if err != nil {
				return result, err
			}
			serialized = append(serialized, w)
		}

		d.logger.DebugContext(ctx, "submitting batch",
			"dataset", d.id, "batch", i+1, "of", len(batches), "objects", len(b))
		resp, err := d.transport.PutBatch(ctx, d.batchPath(), serialized, params)
		if err != nil {
			return result, err
		}
		result.BatchesSubmitted++

		for _, w := range resp {
			built, err := gemd.FromWire(w)
			if err != nil {
				return result, err
			}
			// Correlate before stripping: the temporary key may be the
			// only link back to the original.
			if orig, ok := index.Resolve(built); ok {
				result.Updated[orig] = built
			}
			if cfg.dryRun {
				gemd.StripTempUIDs(built)
			}
			result.Registered = append(result.Registered, built)
		}
	}
	return result, nil
}
