package router

import (
	"os"

	"clip-automator/internal/handler"
	"clip-automator/log"

	"github.com/gin-gonic/gin"
)

func SetupRouter(r *gin.Engine) {
	api := r.Group("/api")

	hdl := handler.NewHandler()
	{
		api.POST("/pipeline", hdl.StartPipeline)
		api.GET("/pipeline", hdl.GetTask)
		api.GET("/task", hdl.GetTask)
		api.GET("/task/:taskId/ws", hdl.TaskProgressSocket)
		api.GET("/history", hdl.GetTaskHistory)
		api.DELETE("/task/:taskId", hdl.DeleteTask)

		api.POST("/file", hdl.UploadFile)
		api.GET("/file/*filepath", hdl.DownloadFile)
		api.HEAD("/file/*filepath", hdl.DownloadFile)

		api.GET("/config", hdl.GetConfig)
		api.POST("/config", hdl.UpdateConfig)

		api.POST("/campaign", hdl.CreateCampaign)
		api.GET("/campaign", hdl.ListCampaigns)
		api.GET("/campaigns", hdl.ListCampaigns)
		api.GET("/campaign/:id", hdl.GetCampaign)
		api.POST("/campaign/:id", hdl.UpdateCampaign)
		api.POST("/campaign/:id/archive", hdl.ArchiveCampaign)
		api.POST("/campaign/:id/clips", hdl.AttachClips)
		api.POST("/clip/:clipId/link", hdl.SetClipLink)
		api.POST("/clip/:clipId/submit", hdl.SubmitClip)

		api.GET("/twitch/clips", hdl.GetTwitchClips)
		api.POST("/twitch/intake", hdl.StartTwitchIntake)
	}

	if _, err := os.Stat("static"); err == nil {
		log.GetLogger().Info("Using local static directory")
		r.Static("/static", "static")
	}
}
