package storage

import (
	"errors"
	"time"

	"clip-automator/internal/types"
)

func SaveClipRecord(clip *types.ClipRecord) error {
	if DB == nil {
		return errors.New("database not initialized")
	}
	return DB.Save(clip).Error
}

func GetClipsByTask(taskId string) ([]types.ClipRecord, error) {
	if DB == nil {
		return nil, errors.New("database not initialized")
	}
	var clips []types.ClipRecord
	if err := DB.Where("task_ref = ?", taskId).Order("seq asc").Find(&clips).Error; err != nil {
		return nil, err
	}
	return clips, nil
}

func GetClipRecord(id int64) (*types.ClipRecord, error) {
	if DB == nil {
		return nil, errors.New("database not initialized")
	}
	var clip types.ClipRecord
	if err := DB.First(&clip, id).Error; err != nil {
		return nil, err
	}
	return &clip, nil
}

// SetClipPostedLink records where a clip was published on one platform.
func SetClipPostedLink(id int64, platform, url string) error {
	if DB == nil {
		return errors.New("database not initialized")
	}
	clip, err := GetClipRecord(id)
	if err != nil {
		return err
	}
	if clip.PostedLinks == nil {
		clip.PostedLinks = map[string]string{}
	}
	clip.PostedLinks[platform] = url
	return DB.Save(clip).Error
}

// MarkClipSubmitted flags a clip as submitted to its campaign's platform.
func MarkClipSubmitted(id int64) error {
	if DB == nil {
		return errors.New("database not initialized")
	}
	return DB.Model(&types.ClipRecord{}).
		Where("id = ?", id).
		Updates(map[string]interface{}{
			"submitted":    true,
			"submitted_at": time.Now().Unix(),
		}).Error
}
