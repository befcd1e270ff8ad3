package service

import (
	"context"
	"errors"
	"os"

	"clip-automator/internal/appcore"
	"clip-automator/internal/storage"
	"clip-automator/internal/types"
	apperrors "clip-automator/pkg/errors"
)

// pipelineDispatcher, when set, takes over background execution of
// accepted tasks. Server startup wires it to the in-process task runner
// or the Redis queue; without it runPipeline runs on a plain goroutine.
var pipelineDispatcher func(appcore.JobRequest) error

func SetPipelineDispatcher(d func(appcore.JobRequest) error) {
	pipelineDispatcher = d
}

// ResumeClipPipeline runs the full pipeline synchronously for a task
// that StartClipPipeline already persisted. Workers call it so failures
// propagate into their retry machinery.
func (s Service) ResumeClipPipeline(ctx context.Context, job appcore.JobRequest) error {
	taskPtr, err := storage.GetTask(job.TaskId)
	if err != nil {
		return apperrors.Wrap(apperrors.CodeNotFound, "Task not found", err)
	}

	link := job.Link
	if link == "" {
		link = taskPtr.VideoSrc
	}

	taskBasePath, err := resolveTaskDir(job.TaskId)
	if err != nil {
		return apperrors.Wrap(apperrors.CodeUnknown, "Failed to resolve task directory", err)
	}
	if err = os.MkdirAll(taskBasePath, os.ModePerm); err != nil {
		return apperrors.Wrap(apperrors.CodeFileWriteError, "Failed to create task directory", err)
	}

	taskPtr.Status = types.ClipTaskStatusProcessing
	taskPtr.FailReason = ""

	stepParam := &types.ClipTaskStepParam{
		TaskId:       job.TaskId,
		TaskPtr:      taskPtr,
		TaskBasePath: taskBasePath,
		Link:         link,
		Language:     job.Language,
		Category:     job.Category,
		CampaignId:   taskPtr.CampaignId,
		TargetCount:  job.TargetCount,
	}

	s.runPipeline(ctx, stepParam)

	if taskPtr.Status == types.ClipTaskStatusFailed {
		return errors.New(taskPtr.FailReason)
	}
	return nil
}
