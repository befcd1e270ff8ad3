package queue

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/hibiken/asynq"
	"go.uber.org/zap"

	"clip-automator/internal/appcore"
	"clip-automator/internal/dto"
	"clip-automator/internal/service"
	"clip-automator/log"
)

// TaskHandlers provides handlers for different task types.
type TaskHandlers struct {
	service *service.Service
}

func NewTaskHandlers(svc *service.Service) *TaskHandlers {
	return &TaskHandlers{service: svc}
}

// HandleClipPipelineTask runs the full pipeline in the worker
// goroutine. Returning an error hands the job back to Asynq for retry.
func (h *TaskHandlers) HandleClipPipelineTask(ctx context.Context, t *asynq.Task) error {
	var payload ClipPipelinePayload
	if err := json.Unmarshal(t.Payload(), &payload); err != nil {
		return fmt.Errorf("failed to unmarshal payload: %w", err)
	}

	log.GetLogger().Info("[Queue] Processing clip pipeline",
		zap.String("task_id", payload.TaskID),
		zap.String("url", payload.URL))

	err := h.service.ResumeClipPipeline(ctx, appcore.JobRequest{
		TaskId:      payload.TaskID,
		Link:        payload.URL,
		Language:    payload.Language,
		Category:    payload.Category,
		CampaignId:  payload.CampaignID,
		TargetCount: payload.TargetCount,
	})
	if err != nil {
		return err
	}

	log.GetLogger().Info("[Queue] Clip pipeline completed",
		zap.String("task_id", payload.TaskID))
	return nil
}

// HandleTwitchIntakeTask sweeps a channel's recent top clips and starts
// pipelines for the new ones.
func (h *TaskHandlers) HandleTwitchIntakeTask(ctx context.Context, t *asynq.Task) error {
	var payload TwitchIntakePayload
	if err := json.Unmarshal(t.Payload(), &payload); err != nil {
		return fmt.Errorf("failed to unmarshal payload: %w", err)
	}

	log.GetLogger().Info("[Queue] Processing twitch intake",
		zap.String("channel", payload.Channel))

	started, err := h.service.IntakeTwitchChannel(dto.TwitchIntakeReq{
		Channel:    payload.Channel,
		Days:       payload.Days,
		First:      payload.First,
		CampaignId: payload.CampaignID,
		Category:   payload.Category,
	})
	if err != nil {
		return err
	}

	log.GetLogger().Info("[Queue] Twitch intake completed",
		zap.String("channel", payload.Channel),
		zap.Int("started", started))
	return nil
}

// RegisterHandlers registers all task handlers with the Asynq server
// mux.
func (h *TaskHandlers) RegisterHandlers(mux *asynq.ServeMux) {
	mux.HandleFunc(TypeClipPipeline, h.HandleClipPipelineTask)
	mux.HandleFunc(TypeTwitchIntake, h.HandleTwitchIntakeTask)
}

// StartWorker starts the Asynq worker with registered handlers.
func StartWorker(q *Queue, svc *service.Service) error {
	handlers := NewTaskHandlers(svc)

	mux := asynq.NewServeMux()
	handlers.RegisterHandlers(mux)

	log.GetLogger().Info("[Queue] Starting worker",
		zap.String("redis_addr", q.config.RedisAddr),
		zap.Int("concurrency", q.config.Concurrency))

	return q.server.Run(mux)
}
