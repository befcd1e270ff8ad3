package handler

import (
	"net/http"
	"time"

	"clip-automator/internal/storage"
	"clip-automator/internal/types"
	"clip-automator/log"

	"github.com/gin-gonic/gin"
	"github.com/gorilla/websocket"
	"go.uber.org/zap"
)

var taskProgressUpgrader = websocket.Upgrader{
	ReadBufferSize:  1024,
	WriteBufferSize: 1024,
	CheckOrigin: func(r *http.Request) bool {
		return true
	},
}

type taskProgressMessage struct {
	TaskId         string `json:"task_id"`
	Status         uint8  `json:"status"`
	StatusMsg      string `json:"status_msg"`
	ProcessPercent uint8  `json:"process_percent"`
	FailReason     string `json:"fail_reason,omitempty"`
}

// TaskProgressSocket streams progress updates for one task until it
// finishes or the client disconnects.
func (h *Handler) TaskProgressSocket(c *gin.Context) {
	taskId := c.Param("taskId")
	if taskId == "" {
		c.JSON(http.StatusBadRequest, gin.H{"msg": "taskId is required"})
		return
	}

	conn, err := taskProgressUpgrader.Upgrade(c.Writer, c.Request, nil)
	if err != nil {
		log.GetLogger().Error("TaskProgressSocket upgrade failed", zap.String("taskId", taskId), zap.Error(err))
		return
	}
	defer conn.Close()

	// Discard client frames, surface close as a cancel signal.
	done := make(chan struct{})
	go func() {
		defer close(done)
		for {
			if _, _, err := conn.ReadMessage(); err != nil {
				return
			}
		}
	}()

	ticker := time.NewTicker(time.Second)
	defer ticker.Stop()

	lastPercent := uint8(255)
	for {
		task, err := storage.GetTask(taskId)
		if err != nil {
			_ = conn.WriteJSON(gin.H{"msg": "task not found", "task_id": taskId})
			return
		}

		if task.ProcessPct != lastPercent || task.Status != types.ClipTaskStatusProcessing {
			lastPercent = task.ProcessPct
			msg := taskProgressMessage{
				TaskId:         task.TaskId,
				Status:         task.Status,
				StatusMsg:      task.StatusMsg,
				ProcessPercent: task.ProcessPct,
				FailReason:     task.FailReason,
			}
			if err := conn.WriteJSON(msg); err != nil {
				return
			}
		}

		if task.Status != types.ClipTaskStatusProcessing {
			_ = conn.WriteMessage(websocket.CloseMessage,
				websocket.FormatCloseMessage(websocket.CloseNormalClosure, "task finished"))
			return
		}

		select {
		case <-done:
			return
		case <-ticker.C:
		}
	}
}
