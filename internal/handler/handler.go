package handler

import (
	"clip-automator/config"
	"clip-automator/internal/response"
	"clip-automator/internal/service"
	"clip-automator/log"
	apperrors "clip-automator/pkg/errors"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

type Handler struct {
	Service *service.Service
}

func NewHandler() *Handler {
	return &Handler{
		Service: service.NewService(),
	}
}

// configUpdated flags that the API changed the config and provider
// clients must be rebuilt before the next task starts.
var configUpdated bool

func (h *Handler) refreshServiceIfNeeded() {
	if !configUpdated {
		return
	}
	log.GetLogger().Info("config changed, reinitializing service")
	h.Service = service.NewService()
	configUpdated = false
}

func (h *Handler) GetConfig(c *gin.Context) {
	response.Success(c, config.Conf)
}

func (h *Handler) UpdateConfig(c *gin.Context) {
	var newConf config.Config
	if err := c.ShouldBindJSON(&newConf); err != nil {
		response.ErrorResponse(c, apperrors.Wrap(apperrors.CodeInvalidParams, "Invalid parameters", err))
		return
	}

	// A rejected update must not leave the candidate config active.
	previous := config.Conf
	config.Conf = newConf
	if err := config.CheckConfig(); err != nil {
		config.Conf = previous
		response.ErrorResponse(c, apperrors.Wrap(apperrors.CodeInvalidParams, "Invalid configuration", err))
		return
	}
	if err := config.SaveConfig(); err != nil {
		config.Conf = previous
		log.GetLogger().Error("UpdateConfig SaveConfig err", zap.Error(err))
		response.ErrorResponse(c, apperrors.Wrap(apperrors.CodeFileWriteError, "Failed to save configuration", err))
		return
	}

	configUpdated = true
	response.Success(c, nil)
}
