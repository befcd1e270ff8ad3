// Package appcore defines the job lifecycle contract shared by the
// in-process task runner and the Redis-backed queue. Both accept the
// same request shape and report progress through the same stages.
package appcore

import (
	"context"
	"time"
)

// JobRequest describes one clip pipeline run for a persisted task.
type JobRequest struct {
	TaskId      string
	Link        string
	Language    string
	Category    string
	CampaignId  int64
	TargetCount int
}

type JobStage uint8

const (
	JobStageQueued JobStage = iota + 1
	JobStageProcessing
	JobStageSucceeded
	JobStageFailed
	JobStageCanceled
)

func (s JobStage) String() string {
	switch s {
	case JobStageQueued:
		return "queued"
	case JobStageProcessing:
		return "processing"
	case JobStageSucceeded:
		return "succeeded"
	case JobStageFailed:
		return "failed"
	case JobStageCanceled:
		return "canceled"
	default:
		return "unknown"
	}
}

func (s JobStage) IsTerminal() bool {
	return s == JobStageSucceeded || s == JobStageFailed || s == JobStageCanceled
}

type JobEvent struct {
	TaskId     string
	Stage      JobStage
	Message    string
	Err        error
	OccurredAt time.Time
}

type JobResult struct {
	TaskId     string
	Stage      JobStage
	StartedAt  time.Time
	FinishedAt time.Time
	Err        error
}

// JobHandle lets a submitter observe or cancel a running job. Events and
// Result are closed once the job reaches a terminal stage.
type JobHandle interface {
	ID() string
	Events() <-chan JobEvent
	Result() <-chan JobResult
	Cancel() error
}

type Runner interface {
	Submit(ctx context.Context, req JobRequest) (JobHandle, error)
}
