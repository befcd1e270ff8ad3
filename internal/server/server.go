package server

import (
	"fmt"

	"clip-automator/config"
	"clip-automator/internal/router"
	"clip-automator/log"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// StartBackend runs the HTTP API until the process exits.
func StartBackend() error {
	gin.SetMode(gin.ReleaseMode)
	engine := gin.New()
	engine.Use(gin.Recovery())

	router.SetupRouter(engine)

	addr := fmt.Sprintf("%s:%d", config.Conf.Server.Host, config.Conf.Server.Port)
	log.GetLogger().Info("backend listening", zap.String("addr", addr))
	return engine.Run(addr)
}
