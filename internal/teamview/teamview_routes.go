package teamview

import (
	"github.com/gin-gonic/gin"

	"go-timeoff/internal/middleware"
)

func RegisterRoutes(
	r *gin.RouterGroup,
	handler *Handler,
	enforcer middleware.Enforcer,
) {
	team := r.Group("/team-view")
	team.Use(middleware.AuthMiddleware())
	{
		team.GET("", middleware.Authorize(enforcer, "teamview", "read"), handler.Month)
	}
}
