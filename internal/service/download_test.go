package service

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"clip-automator/internal/dto"
	"clip-automator/internal/types"
	apperrors "clip-automator/pkg/errors"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestResolveLocalSource(t *testing.T) {
	outputDir := stubAppDirs(t)

	got, err := resolveLocalSource("local:uploads/video.mp4")
	require.NoError(t, err)
	assert.Equal(t, filepath.Join(outputDir, "uploads", "video.mp4"), got)

	abs := filepath.Join(t.TempDir(), "direct.mp4")
	got, err = resolveLocalSource("local:" + abs)
	require.NoError(t, err)
	assert.Equal(t, abs, got)

	_, err = resolveLocalSource("local:")
	assert.Error(t, err)

	_, err = resolveLocalSource("local:../outside/video.mp4")
	assert.Error(t, err)
}

func TestStartClipPipelineRejectsMissingLocalFile(t *testing.T) {
	stubAppDirs(t)
	var s Service

	_, err := s.StartClipPipeline(dto.StartPipelineReq{Url: "local:uploads/nao-existe.mp4"})
	require.Error(t, err)
	assert.Equal(t, apperrors.CodeVideoNotFound, apperrors.GetCode(err))
}

func TestDownloadVideoCopiesLocalSource(t *testing.T) {
	outputDir := stubAppDirs(t)

	uploadDir := filepath.Join(outputDir, "uploads")
	require.NoError(t, os.MkdirAll(uploadDir, 0o755))
	require.NoError(t, os.WriteFile(filepath.Join(uploadDir, "video.mp4"), []byte("conteudo"), 0o644))

	taskBase := t.TempDir()
	stepParam := &types.ClipTaskStepParam{
		TaskId:       "t1",
		TaskBasePath: taskBase,
		Link:         "local:uploads/video.mp4",
	}

	var s Service
	require.NoError(t, s.downloadVideo(context.Background(), stepParam))

	assert.Equal(t, filepath.Join(taskBase, "source.mp4"), stepParam.VideoPath)
	content, err := os.ReadFile(stepParam.VideoPath)
	require.NoError(t, err)
	assert.Equal(t, "conteudo", string(content))

	// The upload itself stays in place for reuse.
	_, err = os.Stat(filepath.Join(uploadDir, "video.mp4"))
	assert.NoError(t, err)
}
