package dto

import "clip-automator/internal/types"

// StartPipelineReq kicks off a full download-analyze-cut run for one URL.
type StartPipelineReq struct {
	Url        string `json:"url" binding:"required"`
	Language   string `json:"language"`
	CampaignId int64  `json:"campaign_id"`

	// Overrides; zero values fall back to the configured defaults.
	TargetCount int    `json:"target_count"`
	Category    string `json:"category"`
}

type StartPipelineResData struct {
	TaskId string `json:"task_id"`
}

type StartPipelineRes struct {
	Error int32                 `json:"error"`
	Msg   string                `json:"msg"`
	Data  *StartPipelineResData `json:"data"`
}

type GetTaskReq struct {
	TaskId string `form:"taskId" binding:"required"`
}

type GetTaskResData struct {
	TaskId         string             `json:"task_id"`
	Title          string             `json:"title"`
	Status         uint8              `json:"status"`
	StatusMsg      string             `json:"status_msg"`
	FailReason     string             `json:"fail_reason"`
	ProcessPercent uint8              `json:"process_percent"`
	Clips          []types.ClipRecord `json:"clips"`
}

type GetTaskRes struct {
	Error int32           `json:"error"`
	Msg   string          `json:"msg"`
	Data  *GetTaskResData `json:"data"`
}
