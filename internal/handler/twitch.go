package handler

import (
	"clip-automator/internal/dto"
	"clip-automator/internal/response"
	apperrors "clip-automator/pkg/errors"

	"github.com/gin-gonic/gin"
)

// GetTwitchClips lists a channel's top clips for manual intake.
func (h *Handler) GetTwitchClips(c *gin.Context) {
	var req dto.TwitchClipsReq
	if err := c.ShouldBindQuery(&req); err != nil {
		response.ErrorResponse(c, apperrors.Wrap(apperrors.CodeInvalidParams, "Invalid parameters", err))
		return
	}

	h.refreshServiceIfNeeded()

	data, err := h.Service.FetchTwitchClips(req)
	if err != nil {
		response.ErrorResponse(c, err)
		return
	}
	response.Success(c, data)
}

// StartTwitchIntake sweeps a channel's recent top clips and starts a
// pipeline for each new one.
func (h *Handler) StartTwitchIntake(c *gin.Context) {
	var req dto.TwitchIntakeReq
	if err := c.ShouldBindJSON(&req); err != nil {
		response.ErrorResponse(c, apperrors.Wrap(apperrors.CodeInvalidParams, "Invalid parameters", err))
		return
	}

	h.refreshServiceIfNeeded()

	started, err := h.Service.IntakeTwitchChannel(req)
	if err != nil {
		response.ErrorResponse(c, err)
		return
	}
	response.Success(c, dto.TwitchIntakeResData{Channel: req.Channel, Started: started})
}
