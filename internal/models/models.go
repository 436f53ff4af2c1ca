package models

import (
	"time"
)

type JobState string

const (
	JobStateQueued   JobState = "QUEUED"
	JobStateRunning  JobState = "RUNNING"
	JobStateComplete JobState = "COMPLETE"
	JobStateFailed   JobState = "FAILED"
)

// Job is one transfer job as the agent service reports it.
type Job struct {
	ID         string   `json:"id"`
	Name       string   `json:"name"`
	Source     string   `json:"source"`
	Target     string   `json:"target"`
	State      JobState `json:"state"`
	BytesTotal int64    `json:"bytes_total"`
	BytesMoved int64    `json:"bytes_moved"`
	CreatedTS  int64    `json:"created_timestamp"`
}

func (j Job) CreatedAt() time.Time { return time.Unix(j.CreatedTS, 0) }

// JobSpec is the caller-supplied payload for creating a job.
type JobSpec struct {
	Name   string `json:"name"`
	Source string `json:"source,omitempty"`
	Target string `json:"target,omitempty"`
}

// JobPage is the service's conventional list envelope.
type JobPage struct {
	Data []Job `json:"data"`
}

// RunState is a snapshot of continuous-mode progress for the dashboard.
type RunState struct {
	IsRunning   bool       `json:"is_running"`
	LastRound   *time.Time `json:"last_round,omitempty"`
	RoundCount  int        `json:"round_count"`
	JobsFetched int        `json:"jobs_fetched"`
	JobsDeleted int        `json:"jobs_deleted"`
	ErrorCount  int        `json:"error_count"`
	LastError   *string    `json:"last_error,omitempty"`
}
