package dto

type CreateCampaignReq struct {
	Name          string  `json:"name" binding:"required"`
	Influencer    string  `json:"influencer"`
	PlatformUrl   string  `json:"platform_url"`
	PayPer1kViews float64 `json:"pay_per_1k_views"`
	MinViews      int     `json:"min_views"`
}

type UpdateCampaignReq struct {
	Name          string  `json:"name"`
	Influencer    string  `json:"influencer"`
	PlatformUrl   string  `json:"platform_url"`
	PayPer1kViews float64 `json:"pay_per_1k_views"`
	MinViews      int     `json:"min_views"`
	Status        string  `json:"status"`
}

// AttachClipsReq links all clips of a finished task to a campaign.
type AttachClipsReq struct {
	TaskId string `json:"task_id" binding:"required"`
}

// ClipLinkReq records where a clip was published.
type ClipLinkReq struct {
	Platform string `json:"platform" binding:"required"`
	Url      string `json:"url" binding:"required"`
}
