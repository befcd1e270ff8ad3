package service

import (
	"context"
	"fmt"
	"os"
	"os/exec"
	"path/filepath"
	"strings"

	"clip-automator/config"
	"clip-automator/internal/highlight"
	"clip-automator/internal/storage"
	"clip-automator/internal/types"
	"clip-automator/log"
	apperrors "clip-automator/pkg/errors"
	"clip-automator/pkg/util"

	"go.uber.org/zap"
)

// renderClip turns one selected window into a finished vertical clip:
// cut, blur-pad to portrait, burn subtitles and draw the headline banner.
func (s Service) renderClip(ctx context.Context, stepParam *types.ClipTaskStepParam, window highlight.ClipWindow, seq int, headline string) (string, error) {
	clipDir := filepath.Join(stepParam.TaskBasePath, "clips")
	if err := os.MkdirAll(clipDir, os.ModePerm); err != nil {
		return "", apperrors.Wrap(apperrors.CodeFileWriteError, "Failed to create clip directory", err)
	}

	cutPath := filepath.Join(clipDir, fmt.Sprintf("clip_%03d_cut.mp4", seq))
	if err := cutSegment(ctx, stepParam.VideoPath, cutPath, window.Start, window.End-window.Start); err != nil {
		return "", err
	}

	verticalPath := filepath.Join(clipDir, fmt.Sprintf("clip_%03d_vertical.mp4", seq))
	if err := convertToVertical(ctx, cutPath, verticalPath); err != nil {
		return "", err
	}

	srtPath := filepath.Join(clipDir, fmt.Sprintf("clip_%03d.srt", seq))
	subtitleCount, err := writeClipSrt(stepParam.Segments, window, srtPath, config.Conf.Subtitle.MaxCharsPerLine)
	if err != nil {
		return "", err
	}

	finalPath := filepath.Join(clipDir, fmt.Sprintf("clip_%03d.mp4", seq))
	category := stepParam.Category
	if category == "" {
		category = config.Conf.Headline.Category
	}
	if err := finalizeClip(ctx, stepParam.TaskId, seq, verticalPath, finalPath, srtPath, subtitleCount > 0, category, headline); err != nil {
		return "", err
	}

	// Intermediates are only useful for debugging failed renders.
	_ = os.Remove(cutPath)
	_ = os.Remove(verticalPath)

	log.GetLogger().Info("clip rendered",
		zap.String("taskId", stepParam.TaskId),
		zap.Int("seq", seq),
		zap.Float64("start", window.Start),
		zap.Float64("end", window.End),
		zap.String("path", finalPath))
	return finalPath, nil
}

// cutSegment re-encodes so cut points land exactly on the window bounds
// instead of the previous keyframe.
func cutSegment(ctx context.Context, inputPath, outputPath string, start, duration float64) error {
	cmdArgs := []string{
		"-y",
		"-ss", fmt.Sprintf("%.3f", start),
		"-i", inputPath,
		"-t", fmt.Sprintf("%.3f", duration),
		"-c:v", "libx264",
		"-preset", "fast",
		"-c:a", "aac",
		"-b:a", "192k",
		outputPath,
	}
	cmd := exec.CommandContext(ctx, storage.FfmpegPath, cmdArgs...)
	output, err := cmd.CombinedOutput()
	if err != nil {
		log.GetLogger().Error("clip cut failed",
			zap.String("input", inputPath), zap.String("output", string(output)), zap.Error(err))
		return apperrors.Wrap(apperrors.CodeClipCutFailed, "Failed to cut clip", err)
	}
	return nil
}

// convertToVertical letterboxes the clip into a portrait frame over a
// blurred, zoomed copy of itself.
func convertToVertical(ctx context.Context, inputPath, outputPath string) error {
	width := config.Conf.Output.Width
	height := config.Conf.Output.Height
	fps := config.Conf.Output.Fps

	filter := fmt.Sprintf(
		"[0:v]scale=%d:%d:force_original_aspect_ratio=increase,crop=%d:%d,boxblur=20:5[bg];"+
			"[0:v]scale=%d:-2[fg];"+
			"[bg][fg]overlay=(W-w)/2:(H-h)/2[v]",
		width, height, width, height, width)

	cmdArgs := []string{
		"-y",
		"-i", inputPath,
		"-filter_complex", filter,
		"-map", "[v]",
		"-map", "0:a?",
		"-r", fmt.Sprintf("%d", fps),
		"-c:v", "libx264",
		"-preset", "fast",
		"-c:a", "aac",
		"-b:a", "192k",
		outputPath,
	}
	cmd := exec.CommandContext(ctx, storage.FfmpegPath, cmdArgs...)
	output, err := cmd.CombinedOutput()
	if err != nil {
		log.GetLogger().Error("vertical conversion failed",
			zap.String("input", inputPath), zap.String("output", string(output)), zap.Error(err))
		return apperrors.Wrap(apperrors.CodeVerticalFailed, "Failed to convert clip to vertical", err)
	}
	return nil
}

// writeClipSrt extracts the transcript lines inside the window into an SRT
// file with clip-relative timestamps. Returns the number of entries.
func writeClipSrt(segments []types.TranscribedSegment, window highlight.ClipWindow, srtPath string, maxChars int) (int, error) {
	var sb strings.Builder
	count := 0
	for _, seg := range segments {
		if seg.End <= window.Start || seg.Start >= window.End {
			continue
		}

		start := seg.Start - window.Start
		if start < 0 {
			start = 0
		}
		end := seg.End - window.Start
		if end > window.End-window.Start {
			end = window.End - window.Start
		}

		text := strings.TrimSpace(seg.Text)
		if text == "" {
			continue
		}

		count++
		sb.WriteString(fmt.Sprintf("%d\n", count))
		sb.WriteString(fmt.Sprintf("%s --> %s\n", util.FormatSrtTime(start), util.FormatSrtTime(end)))
		sb.WriteString(strings.Join(util.WrapSubtitleText(text, maxChars), "\n"))
		sb.WriteString("\n\n")
	}

	if count == 0 {
		return 0, nil
	}
	if err := os.WriteFile(srtPath, []byte(sb.String()), 0o644); err != nil {
		return 0, apperrors.Wrap(apperrors.CodeFileWriteError, "Failed to write subtitle file", err)
	}
	return count, nil
}

// burnStep is swapped in tests.
var burnStep = burnOverlays

// finalizeClip burns the overlays onto the vertical cut. A failed burn
// still delivers the clip: the unstyled cut is promoted to the final
// path so one broken font or filter does not fail the whole task.
func finalizeClip(ctx context.Context, taskId string, seq int, verticalPath, finalPath, srtPath string, hasSubtitles bool, category, headline string) error {
	err := burnStep(ctx, verticalPath, finalPath, srtPath, hasSubtitles, category, headline)
	if err == nil {
		return nil
	}

	log.GetLogger().Warn("overlay burn failed, delivering unstyled clip",
		zap.String("taskId", taskId), zap.Int("seq", seq), zap.Error(err))
	if renameErr := os.Rename(verticalPath, finalPath); renameErr != nil {
		return apperrors.Wrap(apperrors.CodeFileWriteError, "Failed to finalize clip", renameErr)
	}
	return nil
}

// subtitleAlignment maps the configured position to an ASS alignment code.
func subtitleAlignment(position string) int {
	switch position {
	case "top":
		return 8
	case "bottom":
		return 2
	default:
		return 10 // middle center
	}
}

// burnOverlays applies the subtitle track and the headline banner in one
// encoding pass.
func burnOverlays(ctx context.Context, inputPath, outputPath, srtPath string, hasSubtitles bool, category, headline string) error {
	var filters []string

	if hasSubtitles {
		style := fmt.Sprintf("FontSize=%d,Outline=%d,Alignment=%d,Bold=1",
			config.Conf.Subtitle.FontSize,
			config.Conf.Subtitle.OutlineWidth,
			subtitleAlignment(config.Conf.Subtitle.Position))
		filters = append(filters, fmt.Sprintf("subtitles=%s:force_style='%s'", srtPath, style))
	}

	if headline != "" {
		bannerHeight := config.Conf.Headline.FontSize*2 + 60
		filters = append(filters,
			fmt.Sprintf("drawbox=y=0:h=%d:c=black@0.85:t=fill", bannerHeight),
			fmt.Sprintf("drawtext=text='%s':x=(w-text_w)/2:y=30:fontsize=%d:fontcolor=red",
				util.EscapeFfmpegText(category), config.Conf.Headline.FontSize/2),
			fmt.Sprintf("drawtext=text='%s':x=(w-text_w)/2:y=%d:fontsize=%d:fontcolor=white",
				util.EscapeFfmpegText(headline), 40+config.Conf.Headline.FontSize/2, config.Conf.Headline.FontSize),
		)
	}

	if len(filters) == 0 {
		// Nothing to draw, finalize with a rename.
		if err := os.Rename(inputPath, outputPath); err != nil {
			return apperrors.Wrap(apperrors.CodeFileWriteError, "Failed to finalize clip", err)
		}
		return nil
	}

	cmdArgs := []string{
		"-y",
		"-i", inputPath,
		"-vf", strings.Join(filters, ","),
		"-c:v", "libx264",
		"-preset", "fast",
		"-c:a", "copy",
		outputPath,
	}
	cmd := exec.CommandContext(ctx, storage.FfmpegPath, cmdArgs...)
	output, err := cmd.CombinedOutput()
	if err != nil {
		log.GetLogger().Error("overlay burn failed",
			zap.String("input", inputPath), zap.String("output", string(output)), zap.Error(err))
		return apperrors.Wrap(apperrors.CodeCaptionFailed, "Failed to burn subtitles and headline", err)
	}
	return nil
}
