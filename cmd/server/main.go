package main

import (
	"os"

	"github.com/robfig/cron/v3"
	"go.uber.org/zap"

	"clip-automator/config"
	"clip-automator/internal/deps"
	"clip-automator/internal/dto"
	"clip-automator/internal/queue"
	"clip-automator/internal/server"
	"clip-automator/internal/service"
	"clip-automator/internal/storage"
	"clip-automator/internal/taskrunner"
	"clip-automator/log"
)

func main() {
	log.InitLogger()
	defer log.GetLogger().Sync()

	if _, err := config.LoadOrCreateConfig(); err != nil {
		log.GetLogger().Error("failed to load config", zap.Error(err))
		return
	}
	if err := config.CheckConfig(); err != nil {
		log.GetLogger().Error("invalid config", zap.Error(err))
		return
	}

	storage.InitDB()

	// Zombie cleanup: tasks left processing by a previous run can never
	// finish.
	if count, err := storage.MarkStaleTasks(); err != nil {
		log.GetLogger().Warn("failed to mark stale tasks", zap.Error(err))
	} else if count > 0 {
		log.GetLogger().Info("marked stale tasks as failed", zap.Int64("count", count))
	}

	states := deps.ResolveDependencyInventory(config.Conf.Download.FfmpegPath, config.Conf.Download.YtdlpPath)
	log.GetLogger().Info("dependency check\n" + deps.FormatDependencyReport(states))
	deps.ApplyResolvedPaths(states)
	if err := deps.CheckMustDependencies(states); err != nil {
		log.GetLogger().Error("missing required dependencies", zap.Error(err))
		return
	}

	svc := service.NewService()

	if config.Conf.Queue.RedisAddr != "" {
		q := queue.NewQueue(queue.ConfigFromApp())
		defer q.Close()
		service.SetPipelineDispatcher(q.Dispatch)

		go func() {
			if err := queue.StartWorker(q, svc); err != nil {
				log.GetLogger().Error("queue worker stopped", zap.Error(err))
			}
		}()

		startIntakeCron(func(req dto.TwitchIntakeReq) {
			if err := q.EnqueueTwitchIntake(queue.TwitchIntakePayload{
				Channel:    req.Channel,
				CampaignID: req.CampaignId,
			}); err != nil {
				log.GetLogger().Warn("failed to enqueue twitch intake",
					zap.String("channel", req.Channel), zap.Error(err))
			}
		})
	} else {
		runner := taskrunner.New(svc, taskrunner.DefaultConfig())
		defer runner.Close()
		service.SetPipelineDispatcher(runner.Dispatch)

		startIntakeCron(func(req dto.TwitchIntakeReq) {
			if _, err := svc.IntakeTwitchChannel(req); err != nil {
				log.GetLogger().Warn("twitch intake sweep failed",
					zap.String("channel", req.Channel), zap.Error(err))
			}
		})
	}

	if err := server.StartBackend(); err != nil {
		log.GetLogger().Error("backend failed", zap.Error(err))
		os.Exit(1)
	}
}

// startIntakeCron sweeps active campaigns every six hours, treating the
// campaign's influencer field as a Twitch login.
func startIntakeCron(intake func(dto.TwitchIntakeReq)) {
	if config.Conf.Twitch.ClientId == "" {
		return
	}

	c := cron.New()
	_, err := c.AddFunc("0 */6 * * *", func() {
		campaigns, err := storage.ListCampaigns(false)
		if err != nil {
			log.GetLogger().Warn("intake sweep: failed to list campaigns", zap.Error(err))
			return
		}
		for _, campaign := range campaigns {
			if campaign.Influencer == "" {
				continue
			}
			intake(dto.TwitchIntakeReq{
				Channel:    campaign.Influencer,
				CampaignId: campaign.Id,
			})
		}
	})
	if err != nil {
		log.GetLogger().Warn("failed to schedule intake sweep", zap.Error(err))
		return
	}
	c.Start()
}
