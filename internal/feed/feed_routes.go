package feed

import (
	"github.com/gin-gonic/gin"

	"go-timeoff/internal/middleware"
)

func RegisterRoutes(
	r *gin.RouterGroup,
	handler *Handler,
	enforcer middleware.Enforcer,
) {
	feeds := r.Group("/feeds")
	{
		// The .ics endpoint carries its own credential in the token.
		feeds.GET("/:token", handler.Serve)

		feeds.POST("/rotate",
			middleware.AuthMiddleware(),
			middleware.Authorize(enforcer, "feed", "manage"),
			handler.Rotate,
		)
	}
}
