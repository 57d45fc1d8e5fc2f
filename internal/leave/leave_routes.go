package leave

import (
	"github.com/gin-gonic/gin"
)

func RegisterRoutes(r *gin.RouterGroup, h *Handler) {
	leaves := r.Group("/leaves")
	{
		leaves.GET("", h.GetByRange)
		leaves.POST("", h.Create)
		leaves.DELETE("/:id", h.Delete)
	}

	holidays := r.Group("/holidays")
	{
		holidays.GET("", h.GetHolidays)
		holidays.POST("", h.CreateHoliday)
		holidays.DELETE("/:id", h.DeleteHoliday)
	}
}
