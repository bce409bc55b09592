package allowance

import (
	"github.com/gin-gonic/gin"

	"go-timeoff/internal/middleware"
)

func RegisterRoutes(
	r *gin.RouterGroup,
	handler *Handler,
	enforcer middleware.Enforcer,
) {
	allowances := r.Group("/allowances")
	allowances.Use(middleware.AuthMiddleware())
	{
		allowances.GET("/:employeeId", middleware.Authorize(enforcer, "allowance", "read"), handler.GetBalance)
		allowances.POST("/adjustments", middleware.Authorize(enforcer, "allowance", "manage"), handler.CreateAdjustment)
	}
}
