package router

import (
	"github.com/gin-gonic/gin"

	"tubescribe/internal/handler"
)

func SetupRouter(r *gin.Engine) {
	api := r.Group("/api")

	hdl := handler.NewHandler()
	{
		api.POST("/capability/transcriptionTask", hdl.StartTranscriptionTask)
		api.GET("/capability/transcriptionTask", hdl.GetTranscriptionTask)
		api.GET("/capability/history", hdl.GetTaskHistory)
		api.DELETE("/capability/task/:taskId", hdl.DeleteTask)
		api.POST("/capability/task/:taskId/retry", hdl.RetryTask)
		api.GET("/file/*filepath", hdl.DownloadFile)
		api.HEAD("/file/*filepath", hdl.DownloadFile)
		api.GET("/config", hdl.GetConfig)
		api.POST("/config", hdl.UpdateConfig)
		// Cookie Management Routes
		api.GET("/cookie/status", hdl.GetCookieStatus)
		api.POST("/cookie/upload", hdl.UploadCookie)
		api.POST("/cookie/validate", hdl.ValidateCookie)
	}
}
