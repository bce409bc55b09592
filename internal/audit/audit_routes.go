package audit

import (
	"github.com/gin-gonic/gin"

	"go-timeoff/internal/middleware"
)

func RegisterRoutes(
	r *gin.RouterGroup,
	handler *Handler,
	enforcer middleware.Enforcer,
) {
	audits := r.Group("/notification-audits")
	audits.Use(middleware.AuthMiddleware())
	{
		audits.GET("", middleware.Authorize(enforcer, "audit", "read"), handler.List)
	}
}
