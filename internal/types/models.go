package types

// ClipTask is one pipeline run over a single source video.
type ClipTask struct {
	Id         int64  `json:"-" gorm:"primaryKey;autoIncrement"`
	TaskId     string `json:"task_id" gorm:"uniqueIndex;size:64"`
	VideoSrc   string `json:"video_src"`
	VideoId    string `json:"video_id" gorm:"index;size:64"`
	Title      string `json:"title"`
	Channel    string `json:"channel"`
	Duration   float64 `json:"duration"`
	Status     uint8  `json:"status"`
	StatusMsg  string `json:"status_msg"`
	FailReason string `json:"fail_reason"`
	ProcessPct uint8  `json:"process_percent"`
	CampaignId int64  `json:"campaign_id"`
	CreateTime int64  `json:"create_time" gorm:"autoCreateTime"`
	UpdateTime int64  `json:"update_time" gorm:"autoUpdateTime"`

	Clips []ClipRecord `json:"clips" gorm:"foreignKey:TaskRef;references:TaskId"`
}

// ClipRecord is one rendered clip window, optionally attached to a campaign.
type ClipRecord struct {
	Id          int64             `json:"id" gorm:"primaryKey;autoIncrement"`
	TaskRef     string            `json:"task_id" gorm:"index;size:64"`
	CampaignId  int64             `json:"campaign_id" gorm:"index"`
	Seq         int               `json:"seq"`
	StartSec    float64           `json:"start_sec"`
	EndSec      float64           `json:"end_sec"`
	Score       float64           `json:"score"`
	FilePath    string            `json:"file_path"`
	Headline    string            `json:"headline"`
	Category    string            `json:"category"`
	SourceUrl   string            `json:"source_url"`
	PostedLinks map[string]string `json:"posted_links" gorm:"serializer:json"`
	Submitted   bool              `json:"submitted"`
	SubmittedAt int64             `json:"submitted_at"`
	CreateTime  int64             `json:"create_time" gorm:"autoCreateTime"`
}

// Campaign is a paid influencer clip campaign.
type Campaign struct {
	Id            int64   `json:"id" gorm:"primaryKey;autoIncrement"`
	Name          string  `json:"name"`
	Influencer    string  `json:"influencer"`
	PlatformUrl   string  `json:"platform_url"`
	PayPer1kViews float64 `json:"pay_per_1k_views"`
	MinViews      int     `json:"min_views"`
	Status        string  `json:"status"`
	CreateTime    int64   `json:"create_time" gorm:"autoCreateTime"`

	Clips []ClipRecord `json:"clips" gorm:"foreignKey:CampaignId"`
}

const (
	CampaignStatusActive   = "active"
	CampaignStatusArchived = "archived"
)
