// Package queue provides Redis-backed background processing using
// Asynq. It carries the same jobs as the in-process task runner but
// survives restarts and retries failed pipelines with backoff.
package queue

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/hibiken/asynq"
	"go.uber.org/zap"

	"clip-automator/config"
	"clip-automator/internal/appcore"
	"clip-automator/log"
)

// Task type names
const (
	TypeClipPipeline = "clip:pipeline"
	TypeTwitchIntake = "twitch:intake"
)

// ClipPipelinePayload carries the fields of a pipeline job that are not
// persisted on the task record.
type ClipPipelinePayload struct {
	TaskID      string `json:"task_id"`
	URL         string `json:"url"`
	Language    string `json:"language,omitempty"`
	Category    string `json:"category,omitempty"`
	CampaignID  int64  `json:"campaign_id,omitempty"`
	TargetCount int    `json:"target_count,omitempty"`
}

// TwitchIntakePayload describes a channel sweep job.
type TwitchIntakePayload struct {
	Channel    string `json:"channel"`
	Days       int    `json:"days,omitempty"`
	First      int    `json:"first,omitempty"`
	CampaignID int64  `json:"campaign_id,omitempty"`
	Category   string `json:"category,omitempty"`
}

// QueueConfig holds Redis configuration for Asynq.
type QueueConfig struct {
	RedisAddr     string
	RedisPassword string
	RedisDB       int
	Concurrency   int
}

// ConfigFromApp builds queue settings from the loaded app config.
func ConfigFromApp() QueueConfig {
	cfg := QueueConfig{
		RedisAddr:     config.Conf.Queue.RedisAddr,
		RedisPassword: config.Conf.Queue.RedisPassword,
		RedisDB:       config.Conf.Queue.RedisDB,
		Concurrency:   config.Conf.Queue.Concurrency,
	}
	if cfg.Concurrency <= 0 {
		cfg.Concurrency = 2
	}
	return cfg
}

// Queue manages task enqueueing and processing.
type Queue struct {
	client *asynq.Client
	server *asynq.Server
	config QueueConfig
}

// NewQueue creates a new Queue instance.
func NewQueue(cfg QueueConfig) *Queue {
	redisOpt := asynq.RedisClientOpt{
		Addr:     cfg.RedisAddr,
		Password: cfg.RedisPassword,
		DB:       cfg.RedisDB,
	}

	client := asynq.NewClient(redisOpt)

	server := asynq.NewServer(
		redisOpt,
		asynq.Config{
			Concurrency: cfg.Concurrency,
			Queues: map[string]int{
				"critical": 6,
				"default":  3,
				"low":      1,
			},
			RetryDelayFunc: func(n int, e error, t *asynq.Task) time.Duration {
				// Exponential backoff: 10s, 20s, 40s, 80s, ...
				return time.Duration(10<<uint(n)) * time.Second
			},
			ErrorHandler: asynq.ErrorHandlerFunc(func(ctx context.Context, task *asynq.Task, err error) {
				log.GetLogger().Error("Task failed",
					zap.String("type", task.Type()),
					zap.ByteString("payload", task.Payload()),
					zap.Error(err))
			}),
		},
	)

	return &Queue{
		client: client,
		server: server,
		config: cfg,
	}
}

// EnqueueClipPipeline adds a clip pipeline job to the queue.
func (q *Queue) EnqueueClipPipeline(payload ClipPipelinePayload) error {
	data, err := json.Marshal(payload)
	if err != nil {
		return fmt.Errorf("failed to marshal payload: %w", err)
	}

	task := asynq.NewTask(TypeClipPipeline, data,
		asynq.MaxRetry(3),
		asynq.Timeout(45*time.Minute),
		asynq.Queue("default"),
	)

	info, err := q.client.Enqueue(task)
	if err != nil {
		return fmt.Errorf("failed to enqueue task: %w", err)
	}

	log.GetLogger().Info("Task enqueued",
		zap.String("task_id", payload.TaskID),
		zap.String("queue_id", info.ID),
		zap.String("queue", info.Queue))

	return nil
}

// Dispatch adapts EnqueueClipPipeline to the service dispatcher
// signature.
func (q *Queue) Dispatch(req appcore.JobRequest) error {
	return q.EnqueueClipPipeline(ClipPipelinePayload{
		TaskID:      req.TaskId,
		URL:         req.Link,
		Language:    req.Language,
		Category:    req.Category,
		CampaignID:  req.CampaignId,
		TargetCount: req.TargetCount,
	})
}

// EnqueueTwitchIntake adds a channel sweep job to the low-priority
// queue.
func (q *Queue) EnqueueTwitchIntake(payload TwitchIntakePayload) error {
	data, err := json.Marshal(payload)
	if err != nil {
		return fmt.Errorf("failed to marshal payload: %w", err)
	}

	task := asynq.NewTask(TypeTwitchIntake, data,
		asynq.MaxRetry(2),
		asynq.Timeout(10*time.Minute),
		asynq.Queue("low"),
	)

	info, err := q.client.Enqueue(task)
	if err != nil {
		return fmt.Errorf("failed to enqueue task: %w", err)
	}

	log.GetLogger().Info("Twitch intake enqueued",
		zap.String("channel", payload.Channel),
		zap.String("queue_id", info.ID))

	return nil
}

// Close gracefully shuts down the queue.
func (q *Queue) Close() error {
	if err := q.client.Close(); err != nil {
		return err
	}
	q.server.Shutdown()
	return nil
}

// Client returns the underlying Asynq client for advanced usage.
func (q *Queue) Client() *asynq.Client {
	return q.client
}

// Server returns the underlying Asynq server for advanced usage.
func (q *Queue) Server() *asynq.Server {
	return q.server
}
