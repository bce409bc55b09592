package comment

import (
	"github.com/gin-gonic/gin"

	"go-timeoff/internal/middleware"
)

func RegisterRoutes(
	r *gin.RouterGroup,
	handler *Handler,
	enforcer middleware.Enforcer,
) {
	comments := r.Group("/leaves/:id/comments")
	comments.Use(middleware.AuthMiddleware())
	{
		comments.GET("", middleware.Authorize(enforcer, "leave", "read"), handler.ListForLeave)
		comments.POST("", middleware.Authorize(enforcer, "leave", "read"), handler.AddToLeave)
	}
}
