package auth

import (
	"github.com/gin-gonic/gin"
	"golang.org/x/time/rate"

	"go-timeoff/internal/middleware"
)

func RegisterRoutes(r *gin.RouterGroup, handler *Handler) {
	auth := r.Group("/auth")
	{
		// Credential endpoints are the brute-force surface, so they get a
		// per-IP limiter on top of the global one.
		limited := auth.Group("")
		limited.Use(middleware.RateLimitByIP(rate.Limit(1), 5))
		{
			limited.POST("/register", handler.Register)
			limited.POST("/login", handler.Login)
		}

		auth.POST("/refresh", handler.Refresh)
		auth.GET("/me", middleware.AuthMiddleware(), handler.Me)
	}
}
