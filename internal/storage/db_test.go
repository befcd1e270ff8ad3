package storage

import (
	"path/filepath"
	"testing"

	"clip-automator/internal/appdirs"
	"clip-automator/internal/types"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

func TestResolveDBPathUsesCacheDir(t *testing.T) {
	originalResolver := appDirsResolver
	t.Cleanup(func() {
		appDirsResolver = originalResolver
	})

	tempDir := t.TempDir()
	cacheDir := filepath.Join(tempDir, "cache-root")
	appDirsResolver = func() (appdirs.Paths, error) {
		return appdirs.Paths{
			OutputDir: filepath.Join(tempDir, "output-root"),
			CacheDir:  cacheDir,
		}, nil
	}

	got, err := resolveDBPath()
	require.NoError(t, err)
	assert.Equal(t, filepath.Join(cacheDir, "clips.db"), got)
}

// openTestDB swaps the package DB for an in-memory database.
func openTestDB(t *testing.T) {
	t.Helper()

	original := DB
	t.Cleanup(func() { DB = original })

	db, err := gorm.Open(sqlite.Open("file::memory:"), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)
	require.NoError(t, db.AutoMigrate(&types.ClipTask{}, &types.ClipRecord{}, &types.Campaign{}))
	DB = db
}

func TestSaveTaskUpsert(t *testing.T) {
	openTestDB(t)

	task := &types.ClipTask{
		TaskId:   "abc123",
		VideoSrc: "https://www.youtube.com/watch?v=xyz",
		Status:   types.ClipTaskStatusProcessing,
	}
	require.NoError(t, SaveTask(task))
	firstId := task.Id

	task.Status = types.ClipTaskStatusCompleted
	task.StatusMsg = "done"
	require.NoError(t, SaveTask(task))
	assert.Equal(t, firstId, task.Id)

	got, err := GetTask("abc123")
	require.NoError(t, err)
	assert.Equal(t, types.ClipTaskStatusCompleted, got.Status)
	assert.Equal(t, "done", got.StatusMsg)

	var count int64
	DB.Model(&types.ClipTask{}).Count(&count)
	assert.Equal(t, int64(1), count)
}

func TestGetTaskPreloadsClips(t *testing.T) {
	openTestDB(t)

	require.NoError(t, SaveTask(&types.ClipTask{TaskId: "t1", Status: types.ClipTaskStatusCompleted}))
	require.NoError(t, SaveClipRecord(&types.ClipRecord{TaskRef: "t1", Seq: 1, StartSec: 10, EndSec: 40}))
	require.NoError(t, SaveClipRecord(&types.ClipRecord{TaskRef: "t1", Seq: 2, StartSec: 100, EndSec: 130}))

	got, err := GetTask("t1")
	require.NoError(t, err)
	require.Len(t, got.Clips, 2)
	assert.Equal(t, 1, got.Clips[0].Seq)
}

func TestMarkStaleTasks(t *testing.T) {
	openTestDB(t)

	require.NoError(t, SaveTask(&types.ClipTask{TaskId: "running", Status: types.ClipTaskStatusProcessing}))
	require.NoError(t, SaveTask(&types.ClipTask{TaskId: "finished", Status: types.ClipTaskStatusCompleted}))

	affected, err := MarkStaleTasks()
	require.NoError(t, err)
	assert.Equal(t, int64(1), affected)

	stale, err := GetTask("running")
	require.NoError(t, err)
	assert.Equal(t, types.ClipTaskStatusFailed, stale.Status)
	assert.NotEmpty(t, stale.FailReason)

	done, err := GetTask("finished")
	require.NoError(t, err)
	assert.Equal(t, types.ClipTaskStatusCompleted, done.Status)
}

func TestDeleteTaskRemovesClips(t *testing.T) {
	openTestDB(t)

	require.NoError(t, SaveTask(&types.ClipTask{TaskId: "t2", Status: types.ClipTaskStatusCompleted}))
	require.NoError(t, SaveClipRecord(&types.ClipRecord{TaskRef: "t2", Seq: 1}))

	require.NoError(t, DeleteTask("t2"))

	_, err := GetTask("t2")
	assert.ErrorIs(t, err, gorm.ErrRecordNotFound)

	clips, err := GetClipsByTask("t2")
	require.NoError(t, err)
	assert.Empty(t, clips)
}

func TestUninitializedDB(t *testing.T) {
	original := DB
	t.Cleanup(func() { DB = original })
	DB = nil

	assert.Error(t, SaveTask(&types.ClipTask{TaskId: "x"}))
	_, err := GetTask("x")
	assert.Error(t, err)
	_, err = MarkStaleTasks()
	assert.Error(t, err)
	assert.Error(t, CreateCampaign(&types.Campaign{Name: "c"}))
}
