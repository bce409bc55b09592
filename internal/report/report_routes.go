package report

import (
	"github.com/gin-gonic/gin"

	"go-timeoff/internal/middleware"
)

func RegisterRoutes(
	r *gin.RouterGroup,
	handler *Handler,
	enforcer middleware.Enforcer,
) {
	reports := r.Group("/reports")
	reports.Use(middleware.AuthMiddleware())
	{
		reports.GET("/allowance", middleware.Authorize(enforcer, "report", "read"), handler.Allowance)
		reports.GET("/absence", middleware.Authorize(enforcer, "report", "read"), handler.Absence)
	}
}
