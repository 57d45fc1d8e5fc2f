package attendance

import (
	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"

	"go-attendance/internal/middleware"
)

func RegisterRoutes(r *gin.RouterGroup, h *Handler, rdb *redis.Client) {
	grp := r.Group("/attendance")
	{
		grp.GET("", h.GetAll)
		grp.POST("/process", middleware.Idempotency(rdb), h.Process)
	}
}
