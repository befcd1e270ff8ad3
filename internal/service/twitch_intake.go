package service

import (
	"clip-automator/internal/dto"
	"clip-automator/internal/storage"
	"clip-automator/log"
	apperrors "clip-automator/pkg/errors"

	"go.uber.org/zap"
)

// FetchTwitchClips lists a channel's top clips so they can be fed into the
// pipeline as additional sources.
func (s Service) FetchTwitchClips(req dto.TwitchClipsReq) (*dto.TwitchClipsResData, error) {
	if s.TwitchClient == nil {
		return nil, apperrors.New(apperrors.CodeTwitchAuthFailed, "Twitch credentials not configured")
	}

	user, err := s.TwitchClient.GetUserByLogin(req.Channel)
	if err != nil {
		return nil, err
	}

	days := req.Days
	if days <= 0 {
		days = 7
	}
	clips, err := s.TwitchClient.GetTopClips(user.ID, days, req.First)
	if err != nil {
		return nil, err
	}

	log.GetLogger().Info("twitch clips fetched",
		zap.String("channel", req.Channel), zap.Int("count", len(clips)))
	return &dto.TwitchClipsResData{Channel: user.Login, Clips: clips}, nil
}

// IntakeTwitchChannel pulls a channel's top clips and starts a pipeline
// for every clip that has not been processed before. Returns how many
// pipelines were started.
func (s Service) IntakeTwitchChannel(req dto.TwitchIntakeReq) (int, error) {
	data, err := s.FetchTwitchClips(dto.TwitchClipsReq{
		Channel: req.Channel,
		Days:    req.Days,
		First:   req.First,
	})
	if err != nil {
		return 0, err
	}

	started := 0
	for _, clip := range data.Clips {
		// The derived MP4 asset skips the clip page extraction step and
		// doubles as the dedupe key.
		link := clip.DownloadURL()
		exists, err := storage.HasTaskForSource(link)
		if err != nil {
			return started, apperrors.Wrap(apperrors.CodeDBError, "Failed to check existing tasks", err)
		}
		if exists {
			continue
		}

		if _, err := s.StartClipPipeline(dto.StartPipelineReq{
			Url:        link,
			CampaignId: req.CampaignId,
			Category:   req.Category,
		}); err != nil {
			log.GetLogger().Warn("twitch intake skipped clip",
				zap.String("clip", link), zap.Error(err))
			continue
		}
		started++
	}

	log.GetLogger().Info("twitch intake done",
		zap.String("channel", req.Channel),
		zap.Int("clips", len(data.Clips)),
		zap.Int("started", started))
	return started, nil
}
