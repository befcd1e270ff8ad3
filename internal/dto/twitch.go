package dto

import "clip-automator/pkg/twitch"

type TwitchClipsReq struct {
	Channel string `form:"channel" binding:"required"`
	Days    int    `form:"days"`
	First   int    `form:"first"`
}

type TwitchClipsResData struct {
	Channel string        `json:"channel"`
	Clips   []twitch.Clip `json:"clips"`
}

type TwitchIntakeReq struct {
	Channel    string `json:"channel" binding:"required"`
	Days       int    `json:"days"`
	First      int    `json:"first"`
	CampaignId int64  `json:"campaign_id"`
	Category   string `json:"category"`
}

type TwitchIntakeResData struct {
	Channel string `json:"channel"`
	Started int    `json:"started"`
}
