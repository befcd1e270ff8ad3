package storage

import (
	"errors"

	"clip-automator/internal/types"

	"gorm.io/gorm"
)

func SaveTask(task *types.ClipTask) error {
	if DB == nil {
		return errors.New("database not initialized")
	}
	// TaskId is the external identifier; keep the row's primary key stable
	// across status updates.
	var existing types.ClipTask
	result := DB.Where("task_id = ?", task.TaskId).First(&existing)

	if result.Error == nil {
		task.Id = existing.Id
		return DB.Save(task).Error
	} else if errors.Is(result.Error, gorm.ErrRecordNotFound) {
		return DB.Create(task).Error
	}
	return result.Error
}

func GetTask(taskId string) (*types.ClipTask, error) {
	if DB == nil {
		return nil, errors.New("database not initialized")
	}
	var task types.ClipTask
	if err := DB.Preload("Clips").Where("task_id = ?", taskId).First(&task).Error; err != nil {
		return nil, err
	}
	return &task, nil
}

func GetTaskHistory(limit int) ([]types.ClipTask, error) {
	if DB == nil {
		return nil, errors.New("database not initialized")
	}
	var tasks []types.ClipTask
	if err := DB.Preload("Clips").Order("create_time desc").Limit(limit).Find(&tasks).Error; err != nil {
		return nil, err
	}
	return tasks, nil
}

// HasTaskForSource reports whether any task was already created for the
// given video source, so intake jobs do not reprocess the same clip.
func HasTaskForSource(videoSrc string) (bool, error) {
	if DB == nil {
		return false, errors.New("database not initialized")
	}
	var count int64
	if err := DB.Model(&types.ClipTask{}).Where("video_src = ?", videoSrc).Count(&count).Error; err != nil {
		return false, err
	}
	return count > 0, nil
}

func DeleteTask(taskId string) error {
	if DB == nil {
		return errors.New("database not initialized")
	}
	return DB.Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("task_ref = ?", taskId).Delete(&types.ClipRecord{}).Error; err != nil {
			return err
		}
		return tx.Where("task_id = ?", taskId).Delete(&types.ClipTask{}).Error
	})
}

// MarkStaleTasks fails every task still marked processing. Called on
// startup so tasks interrupted by a crash or restart do not stay stuck.
func MarkStaleTasks() (int64, error) {
	if DB == nil {
		return 0, errors.New("database not initialized")
	}
	result := DB.Model(&types.ClipTask{}).
		Where("status = ?", types.ClipTaskStatusProcessing).
		Updates(map[string]interface{}{
			"status":      types.ClipTaskStatusFailed,
			"fail_reason": "task interrupted by server restart",
			"status_msg":  "interrupted",
		})
	return result.RowsAffected, result.Error
}
