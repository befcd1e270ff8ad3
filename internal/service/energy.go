package service

import (
	"context"
	"encoding/binary"
	"math"
	"os/exec"

	"clip-automator/internal/highlight"
	"clip-automator/internal/storage"
	"clip-automator/log"
	apperrors "clip-automator/pkg/errors"

	"go.uber.org/zap"
)

const (
	energySampleRate = 16000
	// One energy point per second keeps the timeline small while still
	// resolving individual shouts and laughs.
	energyWindowSec = 1.0
)

// analyzeEnergy decodes the task audio to raw PCM and computes an RMS
// loudness timeline.
func (s Service) analyzeEnergy(ctx context.Context, audioPath string) ([]highlight.EnergyPoint, error) {
	cmdArgs := []string{
		"-i", audioPath,
		"-ac", "1",
		"-ar", "16000",
		"-f", "s16le",
		"-",
	}
	cmd := exec.CommandContext(ctx, storage.FfmpegPath, cmdArgs...)
	pcm, err := cmd.Output()
	if err != nil {
		log.GetLogger().Error("pcm decode failed", zap.String("audio", audioPath), zap.Error(err))
		return nil, apperrors.Wrap(apperrors.CodeAudioExtract, "Failed to decode audio for analysis", err)
	}

	points := energyTimeline(pcm, energySampleRate, energyWindowSec)
	log.GetLogger().Info("energy timeline computed",
		zap.String("audio", audioPath), zap.Int("points", len(points)))
	return points, nil
}

// energyTimeline computes windowed RMS over little-endian 16-bit mono PCM.
func energyTimeline(pcm []byte, sampleRate int, windowSec float64) []highlight.EnergyPoint {
	samplesPerWindow := int(float64(sampleRate) * windowSec)
	if samplesPerWindow <= 0 || len(pcm) < 2 {
		return nil
	}

	totalSamples := len(pcm) / 2
	var points []highlight.EnergyPoint
	for offset := 0; offset < totalSamples; offset += samplesPerWindow {
		end := offset + samplesPerWindow
		if end > totalSamples {
			end = totalSamples
		}

		var sum float64
		for i := offset; i < end; i++ {
			sample := float64(int16(binary.LittleEndian.Uint16(pcm[i*2 : i*2+2])))
			sum += sample * sample
		}
		rms := math.Sqrt(sum/float64(end-offset)) / math.MaxInt16

		points = append(points, highlight.EnergyPoint{
			Time:   float64(offset) / float64(sampleRate),
			Energy: rms,
		})
	}
	return points
}
