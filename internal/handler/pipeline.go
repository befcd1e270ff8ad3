package handler

import (
	"os"

	"clip-automator/internal/dto"
	"clip-automator/internal/response"
	"clip-automator/internal/storage"
	"clip-automator/log"
	apperrors "clip-automator/pkg/errors"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

func (h *Handler) StartPipeline(c *gin.Context) {
	var req dto.StartPipelineReq
	if err := c.ShouldBindJSON(&req); err != nil {
		log.GetLogger().Error("StartPipeline ShouldBindJSON err", zap.Error(err))
		response.ErrorResponse(c, apperrors.Wrap(apperrors.CodeInvalidParams, "Invalid parameters", err))
		return
	}
	log.GetLogger().Info("StartPipeline received request", zap.Any("req", req))

	h.refreshServiceIfNeeded()

	data, err := h.Service.StartClipPipeline(req)
	if err != nil {
		response.ErrorResponse(c, err)
		return
	}
	response.Success(c, data)
}

func (h *Handler) GetTask(c *gin.Context) {
	var req dto.GetTaskReq
	if err := c.ShouldBindQuery(&req); err != nil {
		response.ErrorResponse(c, apperrors.Wrap(apperrors.CodeInvalidParams, "Invalid parameters", err))
		return
	}

	task, err := storage.GetTask(req.TaskId)
	if err != nil {
		response.ErrorResponse(c, apperrors.Wrap(apperrors.CodeNotFound, "Task not found", err))
		return
	}

	response.Success(c, dto.GetTaskResData{
		TaskId:         task.TaskId,
		Title:          task.Title,
		Status:         task.Status,
		StatusMsg:      task.StatusMsg,
		FailReason:     task.FailReason,
		ProcessPercent: task.ProcessPct,
		Clips:          task.Clips,
	})
}

func (h *Handler) GetTaskHistory(c *gin.Context) {
	tasks, err := storage.GetTaskHistory(200)
	if err != nil {
		response.ErrorResponse(c, apperrors.Wrap(apperrors.CodeDBError, "Failed to load task history", err))
		return
	}
	response.Success(c, tasks)
}

func (h *Handler) DeleteTask(c *gin.Context) {
	taskId := c.Param("taskId")
	if taskId == "" {
		response.ErrorResponse(c, apperrors.New(apperrors.CodeInvalidParams, "taskId is required"))
		return
	}

	// Remove the task's on-disk artifacts first; a failure here should not
	// keep the record around.
	for _, dir := range taskDirCandidates(taskId) {
		if err := os.RemoveAll(dir); err != nil {
			log.GetLogger().Error("DeleteTask RemoveAll err", zap.String("path", dir), zap.Error(err))
		}
	}

	if err := storage.DeleteTask(taskId); err != nil {
		response.ErrorResponse(c, apperrors.Wrap(apperrors.CodeDBError, "Failed to delete task", err))
		return
	}
	response.Success(c, nil)
}
