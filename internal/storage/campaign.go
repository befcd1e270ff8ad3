package storage

import (
	"errors"

	"clip-automator/internal/types"
)

// CampaignSummary aggregates a campaign's clip production numbers.
type CampaignSummary struct {
	Campaign       types.Campaign `json:"campaign"`
	ClipCount      int64          `json:"clip_count"`
	SubmittedCount int64          `json:"submitted_count"`
}

func CreateCampaign(c *types.Campaign) error {
	if DB == nil {
		return errors.New("database not initialized")
	}
	if c.Status == "" {
		c.Status = types.CampaignStatusActive
	}
	return DB.Create(c).Error
}

func GetCampaign(id int64) (*types.Campaign, error) {
	if DB == nil {
		return nil, errors.New("database not initialized")
	}
	var c types.Campaign
	if err := DB.Preload("Clips").First(&c, id).Error; err != nil {
		return nil, err
	}
	return &c, nil
}

func ListCampaigns(includeArchived bool) ([]types.Campaign, error) {
	if DB == nil {
		return nil, errors.New("database not initialized")
	}
	q := DB.Order("create_time desc")
	if !includeArchived {
		q = q.Where("status = ?", types.CampaignStatusActive)
	}
	var campaigns []types.Campaign
	if err := q.Find(&campaigns).Error; err != nil {
		return nil, err
	}
	return campaigns, nil
}

func UpdateCampaign(c *types.Campaign) error {
	if DB == nil {
		return errors.New("database not initialized")
	}
	return DB.Save(c).Error
}

func ArchiveCampaign(id int64) error {
	if DB == nil {
		return errors.New("database not initialized")
	}
	return DB.Model(&types.Campaign{}).
		Where("id = ?", id).
		Update("status", types.CampaignStatusArchived).Error
}

// AttachClipsToCampaign links every clip of a task to a campaign.
func AttachClipsToCampaign(taskId string, campaignId int64) (int64, error) {
	if DB == nil {
		return 0, errors.New("database not initialized")
	}
	result := DB.Model(&types.ClipRecord{}).
		Where("task_ref = ?", taskId).
		Update("campaign_id", campaignId)
	return result.RowsAffected, result.Error
}

func GetCampaignSummary(id int64) (*CampaignSummary, error) {
	if DB == nil {
		return nil, errors.New("database not initialized")
	}
	var c types.Campaign
	if err := DB.First(&c, id).Error; err != nil {
		return nil, err
	}

	var total, submitted int64
	if err := DB.Model(&types.ClipRecord{}).Where("campaign_id = ?", id).Count(&total).Error; err != nil {
		return nil, err
	}
	if err := DB.Model(&types.ClipRecord{}).
		Where("campaign_id = ? AND submitted = ?", id, true).Count(&submitted).Error; err != nil {
		return nil, err
	}

	return &CampaignSummary{Campaign: c, ClipCount: total, SubmittedCount: submitted}, nil
}
