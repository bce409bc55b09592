package schedule

import (
	"github.com/gin-gonic/gin"

	"go-timeoff/internal/middleware"
)

func RegisterRoutes(
	r *gin.RouterGroup,
	handler *Handler,
	enforcer middleware.Enforcer,
) {
	schedules := r.Group("/schedules")
	schedules.Use(middleware.AuthMiddleware())
	{
		schedules.PUT("", middleware.Authorize(enforcer, "schedule", "manage"), handler.Upsert)
		schedules.DELETE("/employees/:employeeId", middleware.Authorize(enforcer, "schedule", "manage"), handler.RemoveEmployeeOverride)
		schedules.GET("/holidays", middleware.Authorize(enforcer, "schedule", "read"), handler.ListHolidays)
		schedules.POST("/holidays", middleware.Authorize(enforcer, "schedule", "manage"), handler.CreateHoliday)
	}
}
