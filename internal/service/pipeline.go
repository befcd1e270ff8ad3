package service

import (
	"context"
	"os"
	"runtime"
	"strings"

	"clip-automator/config"
	"clip-automator/internal/appcore"
	"clip-automator/internal/dto"
	"clip-automator/internal/highlight"
	"clip-automator/internal/storage"
	"clip-automator/internal/types"
	"clip-automator/log"
	apperrors "clip-automator/pkg/errors"

	"github.com/google/uuid"
	"github.com/samber/lo"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"
)

// StartClipPipeline validates the request, persists a task record and
// launches the pipeline in the background. The returned task id can be
// polled or watched over the websocket endpoint.
func (s Service) StartClipPipeline(req dto.StartPipelineReq) (*dto.StartPipelineResData, error) {
	link := strings.TrimSpace(req.Url)
	switch {
	case isLocalSource(link):
		localPath, err := resolveLocalSource(link)
		if err != nil {
			return nil, apperrors.Wrap(apperrors.CodeUnsupportedURL, "Invalid local video source", err)
		}
		if _, err := os.Stat(localPath); err != nil {
			return nil, apperrors.WrapWithDetail(apperrors.CodeVideoNotFound,
				"Local video not found", localPath, err)
		}
	case strings.HasPrefix(link, "http://"), strings.HasPrefix(link, "https://"):
	default:
		return nil, apperrors.WrapWithDetail(apperrors.CodeUnsupportedURL,
			"Only http(s) links and local: upload paths are supported", link, nil)
	}

	taskId := strings.ReplaceAll(uuid.NewString(), "-", "")[:16]

	taskBasePath, err := resolveTaskDir(taskId)
	if err != nil {
		return nil, apperrors.Wrap(apperrors.CodeUnknown, "Failed to resolve task directory", err)
	}
	if err = os.MkdirAll(taskBasePath, os.ModePerm); err != nil {
		log.GetLogger().Error("StartClipPipeline MkdirAll err", zap.String("path", taskBasePath), zap.Error(err))
		return nil, apperrors.Wrap(apperrors.CodeFileWriteError, "Failed to create task directory", err)
	}

	taskPtr := &types.ClipTask{
		TaskId:     taskId,
		VideoSrc:   link,
		Status:     types.ClipTaskStatusProcessing,
		StatusMsg:  "queued",
		CampaignId: req.CampaignId,
	}
	if err = storage.SaveTask(taskPtr); err != nil {
		log.GetLogger().Error("StartClipPipeline SaveTask err", zap.Error(err))
		return nil, apperrors.Wrap(apperrors.CodeDBError, "Failed to save task", err)
	}

	stepParam := &types.ClipTaskStepParam{
		TaskId:       taskId,
		TaskPtr:      taskPtr,
		TaskBasePath: taskBasePath,
		Link:         link,
		Language:     req.Language,
		Category:     req.Category,
		CampaignId:   req.CampaignId,
		TargetCount:  req.TargetCount,
	}

	log.GetLogger().Info("clip pipeline accepted", zap.String("taskId", taskId), zap.String("link", link))

	if pipelineDispatcher != nil {
		job := appcore.JobRequest{
			TaskId:      taskId,
			Link:        link,
			Language:    req.Language,
			Category:    req.Category,
			CampaignId:  req.CampaignId,
			TargetCount: req.TargetCount,
		}
		if err = pipelineDispatcher(job); err != nil {
			taskPtr.Status = types.ClipTaskStatusFailed
			taskPtr.FailReason = err.Error()
			_ = storage.SaveTask(taskPtr)
			return nil, apperrors.Wrap(apperrors.CodeUnknown, "Failed to dispatch task", err)
		}
	} else {
		go s.runPipeline(context.Background(), stepParam)
	}

	return &dto.StartPipelineResData{TaskId: taskId}, nil
}

func (s Service) runPipeline(ctx context.Context, stepParam *types.ClipTaskStepParam) {
	defer func() {
		if r := recover(); r != nil {
			const size = 64 << 10
			buf := make([]byte, size)
			buf = buf[:runtime.Stack(buf, false)]
			log.GetLogger().Error("clip pipeline panic", zap.Any("panic", r), zap.ByteString("stack", buf))
			stepParam.TaskPtr.Status = types.ClipTaskStatusFailed
			stepParam.TaskPtr.FailReason = "internal error"
			_ = storage.SaveTask(stepParam.TaskPtr)
		}
	}()

	taskPtr := stepParam.TaskPtr
	fail := func(step string, err error) {
		log.GetLogger().Error("clip pipeline failed",
			zap.String("taskId", stepParam.TaskId), zap.String("step", step), zap.Error(err))
		taskPtr.Status = types.ClipTaskStatusFailed
		taskPtr.FailReason = err.Error()
		taskPtr.StatusMsg = step + " failed"
		_ = storage.SaveTask(taskPtr)
	}
	progress := func(msg string, pct uint8) {
		taskPtr.StatusMsg = msg
		taskPtr.ProcessPct = pct
		_ = storage.SaveTask(taskPtr)
	}

	log.GetLogger().Info("clip pipeline start", zap.String("taskId", stepParam.TaskId))

	progress("fetching metadata", 5)
	if err := s.getVideoInfo(ctx, stepParam); err != nil {
		fail("metadata", err)
		return
	}
	_ = storage.SaveTask(taskPtr)

	progress("downloading video", 10)
	if err := s.downloadVideo(ctx, stepParam); err != nil {
		fail("download", err)
		return
	}

	progress("extracting audio", 35)
	if err := s.extractAudio(ctx, stepParam); err != nil {
		fail("audio extraction", err)
		return
	}

	progress("analyzing audio and transcribing", 45)
	language := stepParam.Language
	if language == "" {
		language = config.Conf.Transcribe.Language
	}

	var energy []highlight.EnergyPoint
	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		var err error
		energy, err = s.analyzeEnergy(gctx, stepParam.AudioPath)
		return err
	})
	g.Go(func() error {
		segments, err := s.Transcriber.Transcribe(gctx, stepParam.AudioPath, language)
		if err != nil {
			return err
		}
		stepParam.Segments = segments
		return nil
	})
	if err := g.Wait(); err != nil {
		fail("analysis", err)
		return
	}

	progress("selecting highlights", 65)
	windows, err := highlight.Select(buildSelectorInput(stepParam, energy), buildSelectorConfig(stepParam.TargetCount))
	if err != nil {
		fail("highlight selection", err)
		return
	}
	log.GetLogger().Info("highlights selected",
		zap.String("taskId", stepParam.TaskId), zap.Int("count", len(windows)))

	for i, window := range windows {
		seq := i + 1
		progress("rendering clips", uint8(70+25*i/len(windows)))

		headline := s.buildHeadline(stepParam, window)
		clipPath, err := s.renderClip(ctx, stepParam, window, seq, headline)
		if err != nil {
			fail("rendering", err)
			return
		}

		servedPath, err := resolveTaskDownloadPath(clipPath)
		if err != nil {
			servedPath = clipPath
		}

		category := stepParam.Category
		if category == "" {
			category = config.Conf.Headline.Category
		}
		record := &types.ClipRecord{
			TaskRef:    stepParam.TaskId,
			CampaignId: stepParam.CampaignId,
			Seq:        seq,
			StartSec:   window.Start,
			EndSec:     window.End,
			Score:      window.Score,
			FilePath:   servedPath,
			Headline:   headline,
			Category:   category,
			SourceUrl:  stepParam.Link,
		}
		if err = storage.SaveClipRecord(record); err != nil {
			fail("saving clip", apperrors.Wrap(apperrors.CodeDBError, "Failed to save clip record", err))
			return
		}
	}

	taskPtr.Status = types.ClipTaskStatusCompleted
	taskPtr.StatusMsg = "completed"
	taskPtr.ProcessPct = 100
	_ = storage.SaveTask(taskPtr)

	log.GetLogger().Info("clip pipeline end",
		zap.String("taskId", stepParam.TaskId), zap.Int("clips", len(windows)))
}

func buildSelectorInput(stepParam *types.ClipTaskStepParam, energy []highlight.EnergyPoint) highlight.Input {
	in := highlight.Input{
		Duration: stepParam.TaskPtr.Duration,
		Energy:   energy,
		Segments: lo.Map(stepParam.Segments, func(seg types.TranscribedSegment, _ int) highlight.Segment {
			return highlight.Segment{Start: seg.Start, End: seg.End, Text: seg.Text}
		}),
	}
	if stepParam.VideoInfo != nil {
		in.Chapters = lo.Map(stepParam.VideoInfo.Chapters, func(ch types.ChapterInfo, _ int) highlight.Chapter {
			return highlight.Chapter{Start: ch.StartTime, End: ch.EndTime, Title: ch.Title}
		})
	}
	return in
}

func buildSelectorConfig(targetCount int) highlight.Config {
	if targetCount <= 0 {
		targetCount = config.Conf.Clip.Count
	}
	return highlight.Config{
		MinDuration:          config.Conf.Clip.MinDurationSec,
		MaxDuration:          config.Conf.Clip.MaxDurationSec,
		TargetDuration:       config.Conf.Clip.TargetDurationSec,
		TargetCount:          targetCount,
		PeakStddevFactor:     config.Conf.Selector.PeakStddevFactor,
		MergeOverlapFraction: config.Conf.Selector.MergeOverlapFraction,
		EnergyWeight:         config.Conf.Selector.EnergyWeight,
		KeywordWeight:        config.Conf.Selector.KeywordWeight,
		ChapterWeight:        config.Conf.Selector.ChapterWeight,
		Keywords:             config.Conf.Selector.Keywords,
	}
}
