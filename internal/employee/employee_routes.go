package employee

import (
	"github.com/gin-gonic/gin"

	"go-timeoff/internal/middleware"
)

func RegisterRoutes(
	r *gin.RouterGroup,
	handler *Handler,
	enforcer middleware.Enforcer,
) {
	employees := r.Group("/employees")
	employees.Use(middleware.AuthMiddleware())
	{
		employees.GET("", middleware.Authorize(enforcer, "employee", "read"), handler.GetAll)
		employees.GET("/:id", middleware.Authorize(enforcer, "employee", "read"), handler.GetById)
		employees.POST("", middleware.Authorize(enforcer, "employee", "manage"), handler.Create)
		employees.PUT("/:id/end-date", middleware.Authorize(enforcer, "employee", "manage"), handler.SetEndDate)
		employees.DELETE("/:id", middleware.Authorize(enforcer, "employee", "manage"), handler.Remove)
	}
}
