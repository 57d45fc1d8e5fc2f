package rule

import (
	"github.com/gin-gonic/gin"
)

func RegisterRoutes(r *gin.RouterGroup, h *Handler) {
	rules := r.Group("/rules")
	{
		rules.GET("", h.GetAll)
		rules.POST("", h.Create)
		rules.DELETE("/:id", h.Delete)
	}
}
