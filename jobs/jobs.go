// Package jobs models the platform's asynchronous server-side jobs and
// provides the polling loop the SDK uses to await them.
package jobs

import "fmt"

// Status is the execution state of a server-side job.
type Status string

const (
	// StatusPending means the job is queued but not yet running.
	StatusPending Status = "pending"

	// StatusRunning means the job is executing.
	StatusRunning Status = "running"

	// StatusSucceeded means the job finished; individual tasks may
	// still have failed (see Job.Failures).
	StatusSucceeded Status = "succeeded"

	// StatusFailed means the job as a whole failed.
	StatusFailed Status = "failed"
)

// String returns the wire representation of the status.
func (s Status) String() string {
	return string(s)
}

// IsValid returns true if the status is one of the defined constants.
func (s Status) IsValid() bool {
	switch s {
	case StatusPending, StatusRunning, StatusSucceeded, StatusFailed:
		return true
	default:
		return false
	}
}

// Terminal reports whether the job has reached a final state and will
// not change again.
func (s Status) Terminal() bool {
	return s == StatusSucceeded || s == StatusFailed
}

// TaskFailure reports one object-level failure inside a job.
type TaskFailure struct {
	// ID identifies the object the task operated on.
	ID string `json:"id"`

	// Cause is the platform's reason for the failure.
	Cause string `json:"cause"`
}

func (f TaskFailure) String() string {
	return fmt.Sprintf("%s: %s", f.ID, f.Cause)
}

// Job is a snapshot of an asynchronous server-side job.
type Job struct {
	// ID is the platform-assigned job identifier.
	ID string `json:"job_id"`

	// Status is the job's state at snapshot time.
	Status Status `json:"status"`

	// Failures lists per-object failures reported by the job.
	Failures []TaskFailure `json:"failures,omitempty"`
}
