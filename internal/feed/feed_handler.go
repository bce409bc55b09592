package feed

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"go-timeoff/internal/shared/apperror"
	"go-timeoff/internal/shared/response"
)

type Handler struct {
	service Service
	logger  *zap.Logger
}

func NewHandler(service Service, logger ...*zap.Logger) *Handler {
	l := zap.L().Named("feed.handler")
	if len(logger) > 0 && logger[0] != nil {
		l = logger[0].Named("feed.handler")
	}
	return &Handler{service: service, logger: l}
}

type rotateRequest struct {
	Type string `json:"type" binding:"required"`
}

func (h *Handler) Rotate(c *gin.Context) {
	companyID := c.GetString("company_id")
	employeeID := c.GetString("employee_id")

	var req rotateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httpErr := apperror.ToHTTP(apperror.MapValidationError(err))
		response.Error(c, httpErr.Status, httpErr.Code, httpErr.Message, httpErr.Details)
		return
	}

	resp, err := h.service.Rotate(c.Request.Context(), companyID, employeeID, req.Type)
	if err != nil {
		httpErr := apperror.ToHTTP(err)
		h.logger.Warn("rotate feed token failed", zap.Error(err))
		response.Error(c, httpErr.Status, httpErr.Code, httpErr.Message, httpErr.Details)
		return
	}

	response.Success(c, http.StatusCreated, resp, nil)
}

// Serve is unauthenticated: the token in the URL is the credential, the way
// calendar clients expect.
func (h *Handler) Serve(c *gin.Context) {
	token := strings.TrimSuffix(c.Param("token"), ".ics")

	body, err := h.service.Render(c.Request.Context(), token)
	if err != nil {
		httpErr := apperror.ToHTTP(err)
		h.logger.Warn("serve feed failed", zap.Error(err))
		response.Error(c, httpErr.Status, httpErr.Code, httpErr.Message, httpErr.Details)
		return
	}

	c.Header("Content-Type", "text/calendar; charset=utf-8")
	c.String(http.StatusOK, body)
}
