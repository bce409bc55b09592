package audit

import (
	"context"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

type AuditResponse struct {
	ID         uuid.UUID `json:"id"`
	EmployeeID uuid.UUID `json:"employee_id"`
	Channel    string    `json:"channel"`
	EventType  string    `json:"event_type"`
	Subject    string    `json:"subject"`
	CreatedAt  string    `json:"created_at"`
}

type Service interface {
	Record(ctx context.Context, a *NotificationAudit) error
	List(ctx context.Context, companyID string, page, pageSize int) ([]AuditResponse, int64, error)
}

type service struct {
	repo   Repository
	logger *zap.Logger
}

func NewService(repo Repository, logger ...*zap.Logger) Service {
	l := zap.L().Named("audit.service")
	if len(logger) > 0 && logger[0] != nil {
		l = logger[0].Named("audit.service")
	}
	return &service{repo: repo, logger: l}
}

func (s *service) Record(ctx context.Context, a *NotificationAudit) error {
	if a.ID == uuid.Nil {
		a.ID = uuid.New()
	}
	return s.repo.Create(ctx, a)
}

func (s *service) List(ctx context.Context, companyID string, page, pageSize int) ([]AuditResponse, int64, error) {
	if page < 1 {
		page = 1
	}
	if pageSize < 1 || pageSize > 100 {
		pageSize = 25
	}

	audits, total, err := s.repo.FindByCompany(ctx, companyID, pageSize, (page-1)*pageSize)
	if err != nil {
		return nil, 0, err
	}

	out := make([]AuditResponse, 0, len(audits))
	for _, a := range audits {
		out = append(out, AuditResponse{
			ID:         a.ID,
			EmployeeID: a.EmployeeID,
			Channel:    a.Channel,
			EventType:  a.EventType,
			Subject:    a.Subject,
			CreatedAt:  a.CreatedAt.UTC().Format("2006-01-02T15:04:05Z"),
		})
	}
	return out, total, nil
}
