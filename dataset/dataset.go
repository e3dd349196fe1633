package dataset

import (
	"context"
	"log/slog"
	"net/url"

	"go.opentelemetry.io/otel/trace"
	"go.opentelemetry.io/otel/trace/noop"

	"github.com/matgraph/sdk/jobs"
)

// Transport is the network collaborator a Dataset submits work to.
// *rest.Session satisfies it; tests substitute fakes.
type Transport interface {
	// PutBatch writes one batch of serialized objects and returns the
	// platform's built objects in submission order.
	PutBatch(ctx context.Context, path string, objs []map[string]any, params url.Values) ([]map[string]any, error)

	// PostDelete starts an asynchronous deletion job.
	PostDelete(ctx context.Context, path string, body any) (string, error)

	// GetJob fetches a snapshot of an asynchronous job.
	GetJob(ctx context.Context, path, jobID string) (jobs.Job, error)

	// GetJSON fetches a listing page into out.
	GetJSON(ctx context.Context, path string, params url.Values, out any) error
}

// Dataset is a handle on one platform dataset, the container GEMD
// objects are registered into and deleted from.
type Dataset struct {
	id        string
	transport Transport
	logger    *slog.Logger
	tracer    trace.Tracer
}

// Option configures a Dataset.
type Option func(*Dataset)

// WithLogger sets a custom logger. If not provided, logging is
// discarded.
func WithLogger(logger *slog.Logger) Option {
	return func(d *Dataset) {
		d.logger = logger
	}
}

// WithTracer sets an OpenTelemetry tracer for operation spans.
func WithTracer(tracer trace.Tracer) Option {
	return func(d *Dataset) {
		d.tracer = tracer
	}
}

// New creates a handle on the dataset with the given id.
func New(id string, transport Transport, opts ...Option) *Dataset {
	d := &Dataset{id: id, transport: transport}
	for _, opt := range opts {
		opt(d)
	}
	if d.logger == nil {
		d.logger = slog.New(slog.DiscardHandler)
	}
	if d.tracer == nil {
		d.tracer = noop.NewTracerProvider().Tracer("matgraph-sdk")
	}
	return d
}

// ID returns the dataset's identifier.
func (d *Dataset) ID() string {
	return d.id
}

func (d *Dataset) batchPath() string {
	return "/datasets/" + url.PathEscape(d.id) + "/objects/batch"
}

func (d *Dataset) deletePath() string {
	return "/datasets/" + url.PathEscape(d.id) + "/objects/delete"
}

func (d *Dataset) jobsPath() string {
	return "/datasets/" + url.PathEscape(d.id) + "/jobs"
}

func (d *Dataset) objectsPath() string {
	return "/datasets/" + url.PathEscape(d.id) + "/objects"
}
