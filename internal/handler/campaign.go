package handler

import (
	"strconv"

	"clip-automator/internal/dto"
	"clip-automator/internal/response"
	"clip-automator/internal/storage"
	"clip-automator/internal/types"
	apperrors "clip-automator/pkg/errors"

	"github.com/gin-gonic/gin"
)

func campaignIdParam(c *gin.Context) (int64, bool) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil || id <= 0 {
		response.ErrorResponse(c, apperrors.New(apperrors.CodeInvalidParams, "Invalid campaign id"))
		return 0, false
	}
	return id, true
}

func (h *Handler) CreateCampaign(c *gin.Context) {
	var req dto.CreateCampaignReq
	if err := c.ShouldBindJSON(&req); err != nil {
		response.ErrorResponse(c, apperrors.Wrap(apperrors.CodeInvalidParams, "Invalid parameters", err))
		return
	}

	campaign := &types.Campaign{
		Name:          req.Name,
		Influencer:    req.Influencer,
		PlatformUrl:   req.PlatformUrl,
		PayPer1kViews: req.PayPer1kViews,
		MinViews:      req.MinViews,
	}
	if err := storage.CreateCampaign(campaign); err != nil {
		response.ErrorResponse(c, apperrors.Wrap(apperrors.CodeDBError, "Failed to create campaign", err))
		return
	}
	response.Success(c, campaign)
}

func (h *Handler) ListCampaigns(c *gin.Context) {
	includeArchived := c.Query("all") == "true"
	campaigns, err := storage.ListCampaigns(includeArchived)
	if err != nil {
		response.ErrorResponse(c, apperrors.Wrap(apperrors.CodeDBError, "Failed to list campaigns", err))
		return
	}
	response.Success(c, campaigns)
}

func (h *Handler) GetCampaign(c *gin.Context) {
	id, ok := campaignIdParam(c)
	if !ok {
		return
	}

	summary, err := storage.GetCampaignSummary(id)
	if err != nil {
		response.ErrorResponse(c, apperrors.Wrap(apperrors.CodeCampaignNotFound, "Campaign not found", err))
		return
	}
	response.Success(c, summary)
}

func (h *Handler) UpdateCampaign(c *gin.Context) {
	id, ok := campaignIdParam(c)
	if !ok {
		return
	}

	var req dto.UpdateCampaignReq
	if err := c.ShouldBindJSON(&req); err != nil {
		response.ErrorResponse(c, apperrors.Wrap(apperrors.CodeInvalidParams, "Invalid parameters", err))
		return
	}

	campaign, err := storage.GetCampaign(id)
	if err != nil {
		response.ErrorResponse(c, apperrors.Wrap(apperrors.CodeCampaignNotFound, "Campaign not found", err))
		return
	}

	if req.Name != "" {
		campaign.Name = req.Name
	}
	if req.Influencer != "" {
		campaign.Influencer = req.Influencer
	}
	if req.PlatformUrl != "" {
		campaign.PlatformUrl = req.PlatformUrl
	}
	if req.PayPer1kViews > 0 {
		campaign.PayPer1kViews = req.PayPer1kViews
	}
	if req.MinViews > 0 {
		campaign.MinViews = req.MinViews
	}
	if req.Status == types.CampaignStatusActive || req.Status == types.CampaignStatusArchived {
		campaign.Status = req.Status
	}

	if err = storage.UpdateCampaign(campaign); err != nil {
		response.ErrorResponse(c, apperrors.Wrap(apperrors.CodeDBError, "Failed to update campaign", err))
		return
	}
	response.Success(c, campaign)
}

func (h *Handler) ArchiveCampaign(c *gin.Context) {
	id, ok := campaignIdParam(c)
	if !ok {
		return
	}
	if err := storage.ArchiveCampaign(id); err != nil {
		response.ErrorResponse(c, apperrors.Wrap(apperrors.CodeDBError, "Failed to archive campaign", err))
		return
	}
	response.Success(c, nil)
}

// AttachClips links a finished task's clips to a campaign.
func (h *Handler) AttachClips(c *gin.Context) {
	id, ok := campaignIdParam(c)
	if !ok {
		return
	}

	var req dto.AttachClipsReq
	if err := c.ShouldBindJSON(&req); err != nil {
		response.ErrorResponse(c, apperrors.Wrap(apperrors.CodeInvalidParams, "Invalid parameters", err))
		return
	}

	affected, err := storage.AttachClipsToCampaign(req.TaskId, id)
	if err != nil {
		response.ErrorResponse(c, apperrors.Wrap(apperrors.CodeDBError, "Failed to attach clips", err))
		return
	}
	response.Success(c, gin.H{"attached": affected})
}

// SetClipLink stores the published URL of a clip on one platform.
func (h *Handler) SetClipLink(c *gin.Context) {
	clipId, err := strconv.ParseInt(c.Param("clipId"), 10, 64)
	if err != nil || clipId <= 0 {
		response.ErrorResponse(c, apperrors.New(apperrors.CodeInvalidParams, "Invalid clip id"))
		return
	}

	var req dto.ClipLinkReq
	if err = c.ShouldBindJSON(&req); err != nil {
		response.ErrorResponse(c, apperrors.Wrap(apperrors.CodeInvalidParams, "Invalid parameters", err))
		return
	}

	if err = storage.SetClipPostedLink(clipId, req.Platform, req.Url); err != nil {
		response.ErrorResponse(c, apperrors.Wrap(apperrors.CodeClipNotFound, "Failed to record clip link", err))
		return
	}
	response.Success(c, nil)
}

// SubmitClip marks a clip as submitted to its campaign's platform.
func (h *Handler) SubmitClip(c *gin.Context) {
	clipId, err := strconv.ParseInt(c.Param("clipId"), 10, 64)
	if err != nil || clipId <= 0 {
		response.ErrorResponse(c, apperrors.New(apperrors.CodeInvalidParams, "Invalid clip id"))
		return
	}

	if err = storage.MarkClipSubmitted(clipId); err != nil {
		response.ErrorResponse(c, apperrors.Wrap(apperrors.CodeClipNotFound, "Failed to mark clip submitted", err))
		return
	}
	response.Success(c, nil)
}
