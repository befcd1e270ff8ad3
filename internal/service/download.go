package service

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"os/exec"
	"path/filepath"
	"strconv"
	"strings"

	"clip-automator/config"
	"clip-automator/internal/storage"
	"clip-automator/internal/types"
	"clip-automator/log"
	apperrors "clip-automator/pkg/errors"

	"go.uber.org/zap"
)

// ytdlpVideoInfo mirrors the subset of yt-dlp's --dump-json output the
// pipeline needs.
type ytdlpVideoInfo struct {
	ID          string  `json:"id"`
	Title       string  `json:"title"`
	Channel     string  `json:"channel"`
	Uploader    string  `json:"uploader"`
	Description string  `json:"description"`
	Duration    float64 `json:"duration"`
	Chapters    []struct {
		StartTime float64 `json:"start_time"`
		EndTime   float64 `json:"end_time"`
		Title     string  `json:"title"`
	} `json:"chapters"`
}

func ytdlpBaseArgs() []string {
	var args []string
	if config.Conf.App.Proxy != "" {
		args = append(args, "--proxy", config.Conf.App.Proxy)
	}
	if config.Conf.Download.CookiesFile != "" {
		args = append(args, "--cookies", config.Conf.Download.CookiesFile)
	}
	return args
}

// localSourcePrefix marks a video source that is already on disk, as
// returned by the upload endpoint.
const localSourcePrefix = "local:"

func isLocalSource(link string) bool {
	return strings.HasPrefix(link, localSourcePrefix)
}

// resolveLocalSource maps a local: link to a file path. Relative paths
// are anchored at the output dir, so "local:uploads/video.mp4" finds an
// uploaded file; absolute paths are taken as-is.
func resolveLocalSource(link string) (string, error) {
	raw := strings.TrimSpace(strings.TrimPrefix(link, localSourcePrefix))
	if raw == "" {
		return "", fmt.Errorf("local source path is empty")
	}
	cleaned := filepath.Clean(filepath.FromSlash(raw))
	if filepath.IsAbs(cleaned) {
		return cleaned, nil
	}
	if cleaned == ".." || strings.HasPrefix(cleaned, ".."+string(filepath.Separator)) {
		return "", fmt.Errorf("local source path %q escapes the output dir", raw)
	}

	dirs, err := appDirsResolver()
	if err != nil {
		return "", err
	}
	outputRoot := strings.TrimSpace(dirs.OutputDir)
	if outputRoot == "" {
		outputRoot = "."
	}
	return filepath.Join(outputRoot, cleaned), nil
}

// getVideoInfo fetches metadata (including chapters) without downloading
// the media itself. Local sources skip yt-dlp and get probed instead.
func (s Service) getVideoInfo(ctx context.Context, stepParam *types.ClipTaskStepParam) error {
	if isLocalSource(stepParam.Link) {
		return s.probeLocalSource(ctx, stepParam)
	}

	cmdArgs := append([]string{"--skip-download", "--dump-json", "--no-playlist"}, ytdlpBaseArgs()...)
	cmdArgs = append(cmdArgs, stepParam.Link)

	cmd := exec.CommandContext(ctx, storage.YtdlpPath, cmdArgs...)
	output, err := cmd.Output()
	if err != nil {
		log.GetLogger().Error("yt-dlp dump-json failed", zap.String("link", stepParam.Link), zap.Error(err))
		return apperrors.Wrap(apperrors.CodeVideoDownload, "Failed to fetch video metadata", err)
	}

	var raw ytdlpVideoInfo
	if err = json.Unmarshal(output, &raw); err != nil {
		// Playlists emit one JSON document per line; take the first.
		for _, line := range strings.Split(string(output), "\n") {
			if len(line) > 2 && json.Unmarshal([]byte(line), &raw) == nil {
				break
			}
		}
	}
	if raw.ID == "" {
		return apperrors.WrapWithDetail(apperrors.CodeVideoNotFound,
			"Video metadata unavailable", stepParam.Link, nil)
	}

	channel := raw.Channel
	if channel == "" {
		channel = raw.Uploader
	}

	info := &types.VideoInfo{
		Id:          raw.ID,
		Title:       raw.Title,
		Channel:     channel,
		Description: raw.Description,
		Duration:    raw.Duration,
	}
	for _, ch := range raw.Chapters {
		info.Chapters = append(info.Chapters, types.ChapterInfo{
			StartTime: ch.StartTime,
			EndTime:   ch.EndTime,
			Title:     ch.Title,
		})
	}

	maxDuration := float64(config.Conf.Download.MaxDurationMins) * 60
	if maxDuration > 0 && info.Duration > maxDuration {
		return apperrors.WrapWithDetail(apperrors.CodeVideoTooLong,
			"Video exceeds the configured duration limit",
			fmt.Sprintf("%.0fs > %.0fs", info.Duration, maxDuration), nil)
	}

	stepParam.VideoInfo = info
	stepParam.TaskPtr.VideoId = info.Id
	stepParam.TaskPtr.Title = info.Title
	stepParam.TaskPtr.Channel = info.Channel
	stepParam.TaskPtr.Duration = info.Duration

	log.GetLogger().Info("video info fetched",
		zap.String("taskId", stepParam.TaskId),
		zap.String("video id", info.Id),
		zap.Float64("duration", info.Duration),
		zap.Int("chapters", len(info.Chapters)))
	return nil
}

// probeLocalSource fills the metadata for an uploaded file: ffprobe
// supplies the duration, the file name stands in for id and title.
func (s Service) probeLocalSource(ctx context.Context, stepParam *types.ClipTaskStepParam) error {
	localPath, err := resolveLocalSource(stepParam.Link)
	if err != nil {
		return apperrors.Wrap(apperrors.CodeUnsupportedURL, "Invalid local video source", err)
	}
	if _, err = os.Stat(localPath); err != nil {
		return apperrors.WrapWithDetail(apperrors.CodeVideoNotFound, "Local video not found", localPath, err)
	}

	duration, err := probeDuration(ctx, localPath)
	if err != nil {
		return err
	}

	base := filepath.Base(localPath)
	name := strings.TrimSuffix(base, filepath.Ext(base))
	info := &types.VideoInfo{
		Id:       name,
		Title:    name,
		Duration: duration,
	}

	maxDuration := float64(config.Conf.Download.MaxDurationMins) * 60
	if maxDuration > 0 && info.Duration > maxDuration {
		return apperrors.WrapWithDetail(apperrors.CodeVideoTooLong,
			"Video exceeds the configured duration limit",
			fmt.Sprintf("%.0fs > %.0fs", info.Duration, maxDuration), nil)
	}

	stepParam.VideoInfo = info
	stepParam.TaskPtr.VideoId = info.Id
	stepParam.TaskPtr.Title = info.Title
	stepParam.TaskPtr.Duration = info.Duration

	log.GetLogger().Info("local video probed",
		zap.String("taskId", stepParam.TaskId),
		zap.String("path", localPath),
		zap.Float64("duration", info.Duration))
	return nil
}

func probeDuration(ctx context.Context, mediaPath string) (float64, error) {
	cmd := exec.CommandContext(ctx, storage.FfprobePath,
		"-v", "error",
		"-show_entries", "format=duration",
		"-of", "default=noprint_wrappers=1:nokey=1",
		mediaPath)
	output, err := cmd.Output()
	if err != nil {
		log.GetLogger().Error("ffprobe duration failed", zap.String("path", mediaPath), zap.Error(err))
		return 0, apperrors.Wrap(apperrors.CodeVideoDownload, "Failed to probe video duration", err)
	}
	duration, err := strconv.ParseFloat(strings.TrimSpace(string(output)), 64)
	if err != nil {
		return 0, apperrors.Wrap(apperrors.CodeVideoDownload, "Failed to parse probed duration", err)
	}
	return duration, nil
}

// downloadVideo pulls the source media into the task directory as mp4.
// Local sources are copied so the upload stays reusable.
func (s Service) downloadVideo(ctx context.Context, stepParam *types.ClipTaskStepParam) error {
	videoPath := filepath.Join(stepParam.TaskBasePath, "source.mp4")
	if _, err := os.Stat(videoPath); err == nil {
		log.GetLogger().Info("source video already downloaded", zap.String("path", videoPath))
		stepParam.VideoPath = videoPath
		return nil
	}

	if isLocalSource(stepParam.Link) {
		localPath, err := resolveLocalSource(stepParam.Link)
		if err != nil {
			return apperrors.Wrap(apperrors.CodeUnsupportedURL, "Invalid local video source", err)
		}
		if err = copyFile(localPath, videoPath); err != nil {
			return apperrors.Wrap(apperrors.CodeFileWriteError, "Failed to copy local video", err)
		}
		stepParam.VideoPath = videoPath
		return nil
	}

	cmdArgs := append([]string{
		"-f", "bv*[ext=mp4]+ba[ext=m4a]/b[ext=mp4]/b",
		"--merge-output-format", "mp4",
		"--no-playlist",
		"-o", videoPath,
	}, ytdlpBaseArgs()...)
	cmdArgs = append(cmdArgs, stepParam.Link)

	cmd := exec.CommandContext(ctx, storage.YtdlpPath, cmdArgs...)
	output, err := cmd.CombinedOutput()
	if err != nil {
		log.GetLogger().Error("yt-dlp download failed",
			zap.String("link", stepParam.Link), zap.String("output", string(output)), zap.Error(err))
		return apperrors.Wrap(apperrors.CodeVideoDownload, "Failed to download video", err)
	}

	stepParam.VideoPath = videoPath
	return nil
}

func copyFile(srcPath, dstPath string) error {
	src, err := os.Open(srcPath)
	if err != nil {
		return err
	}
	defer src.Close()

	dst, err := os.Create(dstPath)
	if err != nil {
		return err
	}
	if _, err = io.Copy(dst, src); err != nil {
		dst.Close()
		return err
	}
	return dst.Close()
}

// extractAudio produces the mono 16k audio file the energy analysis and
// transcription both consume.
func (s Service) extractAudio(ctx context.Context, stepParam *types.ClipTaskStepParam) error {
	audioPath := filepath.Join(stepParam.TaskBasePath, "audio_mono_16k.wav")

	cmdArgs := []string{
		"-y",
		"-i", stepParam.VideoPath,
		"-vn",
		"-ac", "1",
		"-ar", "16000",
		audioPath,
	}
	cmd := exec.CommandContext(ctx, storage.FfmpegPath, cmdArgs...)
	output, err := cmd.CombinedOutput()
	if err != nil {
		log.GetLogger().Error("audio extraction failed",
			zap.String("video", stepParam.VideoPath), zap.String("output", string(output)), zap.Error(err))
		return apperrors.Wrap(apperrors.CodeAudioExtract, "Failed to extract audio", err)
	}

	stepParam.AudioPath = audioPath
	return nil
}
