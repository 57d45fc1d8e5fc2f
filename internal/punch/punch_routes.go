package punch

import (
	"github.com/gin-gonic/gin"
)

func RegisterRoutes(r *gin.RouterGroup, h *Handler) {
	punches := r.Group("/punches")
	{
		punches.POST("/import", h.Import)
		punches.GET("", h.GetByEmployee)
	}
}
