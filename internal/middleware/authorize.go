package middleware

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"go-timeoff/internal/shared/response"
)

// Enforcer is a local interface so the middleware does not depend on the
// casbin wiring directly; anything with a compatible Enforce method fits.
type Enforcer interface {
	Enforce(rvals ...interface{}) (bool, error)
}

// Authorize checks the principal's role against the route's resource/action
// pair. This is the coarse route-level gate; record-level capability checks
// (who may approve whose leave) live in the authz predicate.
func Authorize(enforcer Enforcer, resource, action string) gin.HandlerFunc {
	return func(c *gin.Context) {
		role := c.GetString("role")
		if role == "" {
			response.Error(c, http.StatusUnauthorized, "UNAUTHORIZED", "missing auth context", nil)
			c.Abort()
			return
		}

		allowed, err := enforcer.Enforce(role, resource, action)
		if err != nil {
			response.Error(c, http.StatusInternalServerError, "INTERNAL_ERROR", "authorization check failed", nil)
			c.Abort()
			return
		}

		if !allowed {
			response.Error(c, http.StatusForbidden, "FORBIDDEN",
				"You do not have permission to access this resource",
				resource+":"+action)
			c.Abort()
			return
		}
		c.Next()
	}
}
