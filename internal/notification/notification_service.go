package notification

import (
	"context"
	"fmt"

	"go.uber.org/zap"

	"go-timeoff/internal/audit"
	"go-timeoff/internal/authz"
	"go-timeoff/internal/employee"
	"go-timeoff/internal/events"
)

const channelEmail = "email"

// Service fans a leave lifecycle event out to the people who should hear
// about it and records each notification in the audit log. Actual delivery
// is out of scope here; the audit row is the source of truth for what was
// sent.
type Service interface {
	HandleLeaveEvent(ctx context.Context, event events.LeaveLifecycleEvent) error
}

type service struct {
	auditService audit.Service
	empRepo      employee.Repository
	predicate    *authz.Predicate
	logger       *zap.Logger
}

func NewService(
	auditService audit.Service,
	empRepo employee.Repository,
	predicate *authz.Predicate,
	logger ...*zap.Logger,
) Service {
	l := zap.L().Named("notification.service")
	if len(logger) > 0 && logger[0] != nil {
		l = logger[0].Named("notification.service")
	}
	return &service{
		auditService: auditService,
		empRepo:      empRepo,
		predicate:    predicate,
		logger:       l,
	}
}

func (s *service) HandleLeaveEvent(ctx context.Context, event events.LeaveLifecycleEvent) error {
	emp, err := s.empRepo.FindByIDAndCompany(ctx, event.CompanyID, event.EmployeeID)
	if err != nil {
		return err
	}
	if emp == nil {
		s.logger.Warn("leave event for unknown employee, skipping",
			zap.String("employee_id", event.EmployeeID),
		)
		return nil
	}

	recipients, err := s.recipients(ctx, emp, event)
	if err != nil {
		return err
	}

	subject := subjectFor(emp, event)
	body := fmt.Sprintf("%s to %s (%s)", event.DateStart, event.DateEnd, event.Status)

	for _, rcpt := range recipients {
		entry := &audit.NotificationAudit{
			CompanyID:  emp.CompanyID,
			EmployeeID: rcpt.ID,
			Channel:    channelEmail,
			EventType:  event.EventType,
			Subject:    subject,
			Body:       body,
		}
		if err := s.auditService.Record(ctx, entry); err != nil {
			return err
		}
	}

	s.logger.Info("leave notification recorded",
		zap.String("leave_id", event.LeaveID),
		zap.String("event_type", event.EventType),
		zap.Int("recipients", len(recipients)),
	)
	return nil
}

// recipients picks who is told: the requester's supervisors for a new
// request or pended revoke, the requester for everything else.
func (s *service) recipients(ctx context.Context, emp *employee.Employee, event events.LeaveLifecycleEvent) ([]employee.Employee, error) {
	switch event.EventType {
	case events.LeaveRequested, events.LeavePendedRevoke:
		supervisors, err := s.predicate.SupervisorsOf(ctx, emp)
		if err != nil {
			return nil, err
		}
		if len(supervisors) > 0 {
			return supervisors, nil
		}
		// Nobody supervises this employee; keep the audit trail anyway.
		return []employee.Employee{*emp}, nil
	default:
		return []employee.Employee{*emp}, nil
	}
}

func subjectFor(emp *employee.Employee, event events.LeaveLifecycleEvent) string {
	switch event.EventType {
	case events.LeaveRequested:
		return fmt.Sprintf("New leave request from %s", emp.FullName())
	case events.LeaveApproved:
		return "Your leave request was approved"
	case events.LeaveRejected:
		return "Your leave request was rejected"
	case events.LeaveCanceled:
		return "Your leave request was canceled"
	case events.LeavePendedRevoke:
		return fmt.Sprintf("%s asks to revoke an approved leave", emp.FullName())
	case events.LeaveRevoked:
		return "Your leave was revoked"
	default:
		return fmt.Sprintf("Leave update for %s", emp.FullName())
	}
}
