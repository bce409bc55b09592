package leave

import (
	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"

	"go-timeoff/internal/middleware"
)

func RegisterRoutes(
	r *gin.RouterGroup,
	handler *Handler,
	enforcer middleware.Enforcer,
	rdb *redis.Client,
) {
	leaves := r.Group("/leaves")
	leaves.Use(middleware.AuthMiddleware())
	{
		leaves.GET("", middleware.Authorize(enforcer, "leave", "read"), handler.GetMy)
		leaves.GET("/pending", middleware.Authorize(enforcer, "leave", "decide"), handler.ListPending)
		leaves.GET("/:id", middleware.Authorize(enforcer, "leave", "read"), handler.GetById)
		leaves.POST("",
			middleware.Authorize(enforcer, "leave", "request"),
			middleware.Idempotency(rdb),
			handler.Create,
		)
		leaves.POST("/:id/approve", middleware.Authorize(enforcer, "leave", "decide"), handler.Approve)
		leaves.POST("/:id/reject", middleware.Authorize(enforcer, "leave", "decide"), handler.Reject)
		leaves.POST("/:id/cancel", middleware.Authorize(enforcer, "leave", "request"), handler.Cancel)
		leaves.POST("/:id/revoke", middleware.Authorize(enforcer, "leave", "request"), handler.Revoke)
	}
}
