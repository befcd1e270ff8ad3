package handler

import (
	"net/http"
	"os"
	"path/filepath"

	"clip-automator/internal/response"
	"clip-automator/log"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// UploadFile stores multipart files under the upload root and returns
// local: paths that StartPipeline accepts as a video source.
func (h *Handler) UploadFile(c *gin.Context) {
	form, err := c.MultipartForm()
	if err != nil {
		response.R(c, response.Response{
			Error: -1,
			Msg:   "failed to read multipart form",
		})
		return
	}

	files := form.File["file"]
	if len(files) == 0 {
		response.R(c, response.Response{
			Error: -1,
			Msg:   "no file uploaded",
		})
		return
	}

	uploadRoot := preferredUploadRoot()
	if err := os.MkdirAll(uploadRoot, 0o755); err != nil {
		log.GetLogger().Error("UploadFile create upload dir failed", zap.Error(err))
		response.R(c, response.Response{
			Error: -1,
			Msg:   "failed to prepare upload directory",
		})
		return
	}

	var savedFiles []string
	for _, file := range files {
		name := filepath.Base(file.Filename)
		savePath := filepath.Join(uploadRoot, name)
		if err := c.SaveUploadedFile(file, savePath); err != nil {
			log.GetLogger().Error("UploadFile save failed", zap.String("file", name), zap.Error(err))
			response.R(c, response.Response{
				Error: -1,
				Msg:   "failed to save file: " + name,
			})
			return
		}
		savedFiles = append(savedFiles, "local:"+filepath.ToSlash(filepath.Join("uploads", name)))
	}

	response.R(c, response.Response{
		Error: 0,
		Msg:   "upload complete",
		Data:  gin.H{"file_path": savedFiles},
	})
}

func (h *Handler) DownloadFile(c *gin.Context) {
	requestedFile := c.Param("filepath")
	if requestedFile == "" || requestedFile == "/" {
		c.JSON(http.StatusNotFound, response.Response{
			Error: -1,
			Msg:   "file path is empty",
		})
		return
	}

	if hasParentTraversal(requestedFile) {
		c.JSON(http.StatusForbidden, response.Response{
			Error: -1,
			Msg:   "path not allowed",
		})
		return
	}

	localFilePath, ok := resolveDownloadPath(requestedFile)
	if !ok {
		c.JSON(http.StatusForbidden, response.Response{
			Error: -1,
			Msg:   "path not allowed",
		})
		return
	}

	info, err := os.Stat(localFilePath)
	if err != nil || info.IsDir() {
		c.JSON(http.StatusNotFound, response.Response{
			Error: -1,
			Msg:   "file not found",
		})
		return
	}

	c.FileAttachment(localFilePath, filepath.Base(localFilePath))
}
