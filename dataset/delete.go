package dataset

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"

	"github.com/matgraph/sdk/gemd"
	"github.com/matgraph/sdk/jobs"
)

// DeleteFailure reports one object the platform could not delete, with
// the platform's stated cause. Per-object failures are data, not
// errors: a partially failed deletion is a normal outcome.
type DeleteFailure struct {
	ID    gemd.LinkByUID
	Cause string
}

func (f DeleteFailure) String() string {
	return fmt.Sprintf("%s: %s", f.ID, f.Cause)
}

// DeleteOption configures a BatchDelete call.
type DeleteOption func(*deleteConfig)

type deleteConfig struct {
	timeout time.Duration
	delay   time.Duration
}

// WithTimeout bounds the total wait for the deletion job.
func WithTimeout(timeout time.Duration) DeleteOption {
	return func(c *deleteConfig) {
		c.timeout = timeout
	}
}

// WithPollingDelay sets the pause between job status fetches.
func WithPollingDelay(delay time.Duration) DeleteOption {
	return func(c *deleteConfig) {
		c.delay = delay
	}
}

// BatchDelete deletes a heterogeneous collection of objects: elements
// may be platform id strings, uuid.UUIDs, gemd.LinkByUID links, or
// full data objects. One asynchronous deletion job is submitted and
// polled to completion.
//
// Object-level failures never raise; they come back as the returned
// slice, and an empty slice means everything was deleted. BatchDelete
// returns an error only for unsupported identifier types, a fatal
// submission or job failure, or a polling timeout.
func (d *Dataset) BatchDelete(ctx context.Context, ids []any, opts ...DeleteOption) ([]DeleteFailure, error) {
	cfg := deleteConfig{timeout: jobs.DefaultTimeout, delay: jobs.DefaultDelay}
	for _, opt := range opts {
		opt(&cfg)
	}

	links, err := normalizeIDs(ids)
	if err != nil {
		return nil, err
	}

	ctx, span := d.tracer.Start(ctx, "dataset.batch_delete", trace.WithAttributes(
		attribute.String("dataset.id", d.id),
		attribute.Int("objects", len(links)),
	))
	defer span.End()

	body := map[string]any{"ids": linkDicts(links)}
	jobID, err := d.transport.PostDelete(ctx, d.deletePath(), body)
	if err != nil {
		return nil, err
	}
	d.logger.DebugContext(ctx, "deletion job submitted",
		"dataset", d.id, "job", jobID, "objects", len(links))

	poller := jobs.Poller{Timeout: cfg.timeout, Delay: cfg.delay}
	job, err := poller.Wait(ctx, func(ctx context.Context) (jobs.Job, error) {
		return d.transport.GetJob(ctx, d.jobsPath(), jobID)
	})
	if err != nil {
		return nil, err
	}
	if job.Status == jobs.StatusFailed {
		return nil, fmt.Errorf("deletion job %s failed", jobID)
	}

	failures := make([]DeleteFailure, 0, len(job.Failures))
	for _, f := range job.Failures {
		failures = append(failures, DeleteFailure{
			ID:    gemd.NewLink(gemd.PlatformScope, f.ID),
			Cause: f.Cause,
		})
	}
	return failures, nil
}

// normalizeIDs converts the caller's heterogeneous identifiers into a
// uniform scoped-link representation.
func normalizeIDs(ids []any) ([]gemd.LinkByUID, error) {
	links := make([]gemd.LinkByUID, 0, len(ids))
	for i, id := range ids {
		switch v := id.(type) {
		case string:
			links = append(links, gemd.NewLink(gemd.PlatformScope, v))
		case uuid.UUID:
			links = append(links, gemd.NewLink(gemd.PlatformScope, v.String()))
		case gemd.LinkByUID:
			links = append(links, v)
		case gemd.DataObject:
			l, err := gemd.PreferredLink(v)
			if err != nil {
				return nil, fmt.Errorf("ids[%d]: %w", i, err)
			}
			links = append(links, l)
		default:
			return nil, fmt.Errorf("ids[%d]: unsupported identifier type %T", i, id)
		}
	}
	return links, nil
}

func linkDicts(links []gemd.LinkByUID) []map[string]any {
	out := make([]map[string]any, 0, len(links))
	for _, l := range links {
		out = append(out, map[string]any{"scope": l.Scope, "id": l.ID})
	}
	return out
}
