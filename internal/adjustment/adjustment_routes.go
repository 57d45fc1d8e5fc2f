package adjustment

import (
	"github.com/gin-gonic/gin"
)

func RegisterRoutes(r *gin.RouterGroup, h *Handler) {
	adjustments := r.Group("/adjustments")
	{
		adjustments.GET("", h.GetByRange)
		adjustments.POST("", h.Create)
		adjustments.DELETE("/:id", h.Delete)
	}
}
