package routes

import (
	"github.com/gin-gonic/gin"

	"voicescribe/internal/api/v1/handlers"
)

// RegisterRoutes mounts the v1 API.
func RegisterRoutes(rg *gin.RouterGroup, h *handlers.TranscriptionHandler) {
	transcriptions := rg.Group("/transcriptions")
	{
		transcriptions.POST("", h.Create)
		transcriptions.GET("", h.List)
		transcriptions.GET("/:id", h.Get)
		transcriptions.GET("/:id/srt", h.GetSRT)
		transcriptions.DELETE("", h.Clear)
	}

	rg.GET("/export/text", h.ExportText)
	rg.GET("/session/status", h.Status)
}
