package openai

import (
	"context"

	"clip-automator/internal/types"
	"clip-automator/log"
	apperrors "clip-automator/pkg/errors"

	"github.com/sashabaranov/go-openai"
	"go.uber.org/zap"
)

// Transcribe sends the audio file to the Whisper API and returns timed
// transcript segments. language may be empty for auto-detection.
func (c *Client) Transcribe(ctx context.Context, audioFile, language string) ([]types.TranscribedSegment, error) {
	req := openai.AudioRequest{
		Model:    openai.Whisper1,
		FilePath: audioFile,
		Format:   openai.AudioResponseFormatVerboseJSON,
		Language: language,
	}

	resp, err := c.client.CreateTranscription(ctx, req)
	if err != nil {
		log.GetLogger().Error("whisper transcription failed",
			zap.String("audio file", audioFile), zap.Error(err))
		return nil, apperrors.Wrap(apperrors.CodeTranscribeFailed, "Transcription request failed", err)
	}

	segments := make([]types.TranscribedSegment, 0, len(resp.Segments))
	for _, seg := range resp.Segments {
		segments = append(segments, types.TranscribedSegment{
			Start: seg.Start,
			End:   seg.End,
			Text:  seg.Text,
		})
	}

	log.GetLogger().Info("whisper transcription done",
		zap.String("audio file", audioFile), zap.Int("segments", len(segments)))
	return segments, nil
}
