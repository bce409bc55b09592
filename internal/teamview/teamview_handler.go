package teamview

import (
	"net/http"
	"time"

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
	l := zap.L().Named("teamview.handler")
	if len(logger) > 0 && logger[0] != nil {
		l = logger[0].Named("teamview.handler")
	}
	return &Handler{service: service, logger: l}
}

func (h *Handler) Month(c *gin.Context) {
	companyID := c.GetString("company_id")
	actorID := c.GetString("employee_id")

	month := c.Query("month")
	if month == "" {
		month = time.Now().UTC().Format("2006-01")
	}

	resp, err := h.service.Month(c.Request.Context(), companyID, actorID, month, c.Query("department_id"))
	if err != nil {
		httpErr := apperror.ToHTTP(err)
		h.logger.Warn("team view failed",
			zap.String("month", month),
			zap.Int("status", httpErr.Status),
			zap.Error(err),
		)
		response.Error(c, httpErr.Status, httpErr.Code, httpErr.Message, httpErr.Details)
		return
	}

	response.Success(c, http.StatusOK, resp, nil)
}
