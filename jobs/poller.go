package jobs

import (
	"context"
	"fmt"
	"time"
)

// Default polling parameters, matching the platform's guidance for
// deletion jobs.
const (
	DefaultTimeout = 2 * time.Minute
	DefaultDelay   = time.Second
)

// TimeoutError indicates a job did not reach a terminal state before
// the polling deadline. The job may still complete server-side; the
// error only means the SDK stopped waiting.
type TimeoutError struct {
	// JobID identifies the job that was being awaited.
	JobID string

	// Timeout is the deadline that elapsed.
	Timeout time.Duration
}

func (e *TimeoutError) Error() string {
	return fmt.Sprintf("job %s did not finish within %s", e.JobID, e.Timeout)
}

// Poller repeatedly fetches a job snapshot until the job reaches a
// terminal state, the wall-clock timeout elapses, or the context is
// cancelled.
type Poller struct {
	// Timeout bounds the total wait. Zero means DefaultTimeout.
	Timeout time.Duration

	// Delay is the pause between fetches. Zero means DefaultDelay.
	Delay time.Duration
}

// Wait polls the job until it is terminal. Returns the final snapshot,
// a *TimeoutError past the deadline, the context's error on
// cancellation, or any error the fetch itself produced.
func (p Poller) Wait(ctx context.Context, fetch func(ctx context.Context) (Job, error)) (Job, error) {
	timeout := p.Timeout
	if timeout <= 0 {
		timeout = DefaultTimeout
	}
	delay := p.Delay
	if delay <= 0 {
		delay = DefaultDelay
	}
	deadline := time.Now().Add(timeout)

	for {
		job, err := fetch(ctx)
		if err != nil {
			return Job{}, err
		}
		if job.Status.Terminal() {
			return job, nil
		}
		if !time.Now().Add(delay).Before(deadline) {
			return Job{}, &TimeoutError{JobID: job.ID, Timeout: timeout}
		}
		timer := time.NewTimer(delay)
		select {
		case <-ctx.Done():
			timer.Stop()
			return Job{}, ctx.Err()
		case <-timer.C:
		}
	}
}
