package department

import (
	"github.com/gin-gonic/gin"

	"go-timeoff/internal/middleware"
)

func RegisterRoutes(
	r *gin.RouterGroup,
	handler *Handler,
	enforcer middleware.Enforcer,
) {
	departments := r.Group("/departments")
	departments.Use(middleware.AuthMiddleware())
	{
		departments.GET("", middleware.Authorize(enforcer, "department", "read"), handler.GetAll)
		departments.GET("/:id", middleware.Authorize(enforcer, "department", "read"), handler.GetByID)
		departments.POST("", middleware.Authorize(enforcer, "department", "manage"), handler.Create)
		departments.PUT("/:id/manager", middleware.Authorize(enforcer, "department", "manage"), handler.SetManager)
		departments.POST("/:id/supervisors", middleware.Authorize(enforcer, "department", "manage"), handler.AddSupervisor)
	}
}
