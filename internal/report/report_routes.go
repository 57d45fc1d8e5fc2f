package report

import (
	"github.com/gin-gonic/gin"
)

func RegisterRoutes(r *gin.RouterGroup, h *Handler) {
	grp := r.Group("/reports/attendance")
	{
		grp.GET("/detail", h.Detail)
		grp.GET("/summary", h.Summary)
	}
}
