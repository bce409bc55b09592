package leave

import (
	"context"
	"database/sql"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"go.uber.org/zap"

	"go-timeoff/internal/authz"
	"go-timeoff/internal/company"
	"go-timeoff/internal/employee"
	"go-timeoff/internal/events"
	"go-timeoff/internal/leavetype"
	"go-timeoff/internal/schedule"

	employeeerrors "go-timeoff/internal/employee/errors"
	leaveerrors "go-timeoff/internal/leave/errors"
	leavetypeerrors "go-timeoff/internal/leavetype/errors"
)

// BalanceSource computes the days an employee still has available for one
// leave type in one year. Implemented by the allowance engine.
type BalanceSource interface {
	Remaining(ctx context.Context, cache *schedule.Cache, emp *employee.Employee, leaveTypeID string, year int) (decimal.Decimal, error)
}

// EventRecorder persists a lifecycle event inside the caller's transaction.
type EventRecorder interface {
	RecordTx(ctx context.Context, tx *sql.Tx, topic, aggregateType, aggregateID, eventType string, payload interface{}) error
}

type Service interface {
	Create(ctx context.Context, companyID, employeeID string, req CreateLeaveRequest) (LeaveResponse, error)
	GetMy(ctx context.Context, companyID, employeeID string) ([]LeaveResponse, error)
	GetByID(ctx context.Context, companyID, actorID, id string) (LeaveResponse, error)
	ListPendingForApprover(ctx context.Context, companyID, actorID string) ([]LeaveResponse, error)
	Approve(ctx context.Context, companyID, actorID, id string, req DecisionRequest) (LeaveResponse, error)
	Reject(ctx context.Context, companyID, actorID, id string, req DecisionRequest) (LeaveResponse, error)
	Cancel(ctx context.Context, companyID, actorID, id string) (LeaveResponse, error)
	Revoke(ctx context.Context, companyID, actorID, id string) (LeaveResponse, error)
}

type service struct {
	db          *sql.DB
	repo        Repository
	empRepo     employee.Repository
	companyRepo company.Repository
	typeRepo    leavetype.Repository
	resolver    schedule.Resolver
	predicate   *authz.Predicate
	balance     BalanceSource
	recorder    EventRecorder
	logger      *zap.Logger
}

func NewService(
	db *sql.DB,
	repo Repository,
	empRepo employee.Repository,
	companyRepo company.Repository,
	typeRepo leavetype.Repository,
	resolver schedule.Resolver,
	predicate *authz.Predicate,
	balance BalanceSource,
	recorder EventRecorder,
	logger ...*zap.Logger,
) Service {
	l := zap.L().Named("leave.service")
	if len(logger) > 0 && logger[0] != nil {
		l = logger[0].Named("leave.service")
	}
	return &service{
		db:          db,
		repo:        repo,
		empRepo:     empRepo,
		companyRepo: companyRepo,
		typeRepo:    typeRepo,
		resolver:    resolver,
		predicate:   predicate,
		balance:     balance,
		recorder:    recorder,
		logger:      l,
	}
}

func (s *service) Create(ctx context.Context, companyID, employeeID string, req CreateLeaveRequest) (LeaveResponse, error) {
	comp, err := s.companyRepo.FindByID(ctx, companyID)
	if err != nil {
		return LeaveResponse{}, err
	}
	if comp.Mode == company.ModeReadonlyHolidays {
		return LeaveResponse{}, leaveerrors.ErrCompanyReadOnly
	}

	dateStart, dateEnd, err := parseRange(req.DateStart, req.DateEnd)
	if err != nil {
		return LeaveResponse{}, err
	}
	partStart, partEnd, err := parseDayParts(req.DayPartStart, req.DayPartEnd)
	if err != nil {
		return LeaveResponse{}, err
	}

	emp, err := s.empRepo.FindByIDAndCompany(ctx, companyID, employeeID)
	if err != nil {
		return LeaveResponse{}, err
	}
	if emp == nil {
		return LeaveResponse{}, employeeerrors.ErrEmployeeNotFound
	}

	lt, err := s.typeRepo.FindByIDAndCompany(ctx, companyID, req.LeaveTypeID)
	if err != nil {
		return LeaveResponse{}, err
	}
	if lt == nil {
		return LeaveResponse{}, leavetypeerrors.ErrLeaveTypeNotFound
	}

	overlaps, err := s.repo.FindBlockingOverlaps(ctx, employeeID, dateStart, dateEnd)
	if err != nil {
		return LeaveResponse{}, err
	}
	if len(overlaps) > 0 {
		return LeaveResponse{}, leaveerrors.ErrOverlappingLeave
	}

	l := &Leave{
		ID:              uuid.New(),
		CompanyID:       comp.ID,
		EmployeeID:      emp.ID,
		LeaveTypeID:     lt.ID,
		Status:          StatusNew,
		DateStart:       dateStart,
		DateEnd:         dateEnd,
		DayPartStart:    partStart,
		DayPartEnd:      partEnd,
		EmployeeComment: req.Comment,
	}

	eventType := events.LeaveRequested
	if emp.AutoApprove || lt.AutoApprove {
		now := time.Now().UTC()
		l.Status = StatusApproved
		l.ApproverID = &emp.ID
		l.DecidedAt = &now
		eventType = events.LeaveApproved
	}

	cache := schedule.NewCache(s.resolver)
	cal, err := cache.Resolve(ctx, companyID, employeeID)
	if err != nil {
		return LeaveResponse{}, err
	}

	// A request covering only non-working days deducts nothing and is
	// accepted as-is.
	deducted := DeductedDays(l, cal)

	var warning string
	if lt.UseAllowance && s.balance != nil {
		remaining, err := s.balance.Remaining(ctx, cache, emp, lt.ID.String(), dateStart.Year())
		if err != nil {
			return LeaveResponse{}, err
		}
		if deducted.GreaterThan(remaining) {
			warning = "requested days exceed the remaining allowance"
			s.logger.Warn("leave exceeds remaining allowance",
				zap.String("employee_id", employeeID),
				zap.String("leave_type_id", lt.ID.String()),
				zap.String("deducted", deducted.String()),
				zap.String("remaining", remaining.String()),
			)
		}
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return LeaveResponse{}, err
	}
	defer tx.Rollback()

	if err := s.repo.WithTx(tx).Create(ctx, l); err != nil {
		return LeaveResponse{}, err
	}
	s.record(ctx, tx, l, employeeID, eventType)

	if err := tx.Commit(); err != nil {
		return LeaveResponse{}, err
	}

	s.logger.Info("leave requested",
		zap.String("leave_id", l.ID.String()),
		zap.String("employee_id", employeeID),
		zap.String("status", StatusName(l.Status)),
	)

	resp := toLeaveResponse(l, deducted)
	resp.Warning = warning
	return resp, nil
}

func (s *service) GetMy(ctx context.Context, companyID, employeeID string) ([]LeaveResponse, error) {
	leaves, err := s.repo.FindByEmployee(ctx, employeeID)
	if err != nil {
		return nil, err
	}

	cache := schedule.NewCache(s.resolver)
	out := make([]LeaveResponse, 0, len(leaves))
	for i := range leaves {
		cal, err := cache.Resolve(ctx, companyID, employeeID)
		if err != nil {
			return nil, err
		}
		out = append(out, toLeaveResponse(&leaves[i], DeductedDays(&leaves[i], cal)))
	}
	return out, nil
}

func (s *service) GetByID(ctx context.Context, companyID, actorID, id string) (LeaveResponse, error) {
	l, actor, err := s.loadLeaveAndActor(ctx, companyID, actorID, id)
	if err != nil {
		return LeaveResponse{}, err
	}

	if actor.ID != l.EmployeeID {
		target, err := s.empRepo.FindByIDAndCompany(ctx, companyID, l.EmployeeID.String())
		if err != nil {
			return LeaveResponse{}, err
		}
		if target == nil {
			return LeaveResponse{}, leaveerrors.ErrLeaveNotFound
		}
		can, err := s.predicate.CanManage(ctx, actor, target)
		if err != nil {
			return LeaveResponse{}, err
		}
		if !can {
			return LeaveResponse{}, leaveerrors.ErrLeaveNotFound
		}
	}

	cache := schedule.NewCache(s.resolver)
	cal, err := cache.Resolve(ctx, companyID, l.EmployeeID.String())
	if err != nil {
		return LeaveResponse{}, err
	}
	return toLeaveResponse(l, DeductedDays(l, cal)), nil
}

// ListPendingForApprover returns the new and pended-revoke requests of every
// employee the actor supervises.
func (s *service) ListPendingForApprover(ctx context.Context, companyID, actorID string) ([]LeaveResponse, error) {
	actor, err := s.empRepo.FindByIDAndCompany(ctx, companyID, actorID)
	if err != nil {
		return nil, err
	}
	if actor == nil {
		return nil, employeeerrors.ErrEmployeeNotFound
	}

	visible, err := s.predicate.VisibleEmployees(ctx, actor)
	if err != nil {
		return nil, err
	}
	ids := make([]string, 0, len(visible))
	for _, e := range visible {
		if e.ID != actor.ID {
			ids = append(ids, e.ID.String())
		}
	}

	cache := schedule.NewCache(s.resolver)
	var out []LeaveResponse
	for _, status := range []int{StatusNew, StatusPendedRevoke} {
		leaves, err := s.repo.FindByEmployeesAndStatus(ctx, ids, status)
		if err != nil {
			return nil, err
		}
		for i := range leaves {
			cal, err := cache.Resolve(ctx, companyID, leaves[i].EmployeeID.String())
			if err != nil {
				return nil, err
			}
			out = append(out, toLeaveResponse(&leaves[i], DeductedDays(&leaves[i], cal)))
		}
	}
	return out, nil
}

func (s *service) Approve(ctx context.Context, companyID, actorID, id string, req DecisionRequest) (LeaveResponse, error) {
	return s.decide(ctx, companyID, actorID, id, ActionApprove, req.Comment)
}

func (s *service) Reject(ctx context.Context, companyID, actorID, id string, req DecisionRequest) (LeaveResponse, error) {
	return s.decide(ctx, companyID, actorID, id, ActionReject, req.Comment)
}

func (s *service) decide(ctx context.Context, companyID, actorID, id string, action Action, comment string) (LeaveResponse, error) {
	l, actor, err := s.loadLeaveAndActor(ctx, companyID, actorID, id)
	if err != nil {
		return LeaveResponse{}, err
	}

	if actor.ID == l.EmployeeID {
		return LeaveResponse{}, leaveerrors.ErrSelfApproval
	}
	target, err := s.empRepo.FindByIDAndCompany(ctx, companyID, l.EmployeeID.String())
	if err != nil {
		return LeaveResponse{}, err
	}
	if target == nil {
		return LeaveResponse{}, leaveerrors.ErrLeaveNotFound
	}
	can, err := s.predicate.CanManage(ctx, actor, target)
	if err != nil {
		return LeaveResponse{}, err
	}
	if !can {
		return LeaveResponse{}, leaveerrors.ErrNotAuthorizedToDecide
	}

	prev := l.Status
	next, err := nextStatus(action, prev)
	if err != nil {
		return LeaveResponse{}, err
	}

	now := time.Now().UTC()
	l.Status = next
	// Rejecting a pended revoke restores the original approval, so the
	// recorded approver stays untouched.
	if (next == StatusApproved && prev == StatusNew) || next == StatusRevoked {
		l.ApproverID = &actor.ID
	}
	if comment != "" {
		l.ApproverComment = comment
	}
	l.DecidedAt = &now

	if err := s.persistTransition(ctx, l, actorID, eventTypeFor(next)); err != nil {
		return LeaveResponse{}, err
	}

	cache := schedule.NewCache(s.resolver)
	cal, err := cache.Resolve(ctx, companyID, l.EmployeeID.String())
	if err != nil {
		return LeaveResponse{}, err
	}
	resp := toLeaveResponse(l, DeductedDays(l, cal))

	// The transition is committed; a failed recomputation only costs the
	// caller the balance figure.
	if next == StatusApproved {
		remaining, err := s.balance.Remaining(ctx, cache, target, l.LeaveTypeID.String(), l.DateStart.Year())
		if err != nil {
			s.logger.Warn("remaining recomputation failed",
				zap.String("leave_id", id),
				zap.Error(err),
			)
		} else {
			resp.Remaining = &remaining
		}
	}
	return resp, nil
}

func (s *service) Cancel(ctx context.Context, companyID, actorID, id string) (LeaveResponse, error) {
	l, actor, err := s.loadLeaveAndActor(ctx, companyID, actorID, id)
	if err != nil {
		return LeaveResponse{}, err
	}
	if actor.ID != l.EmployeeID {
		return LeaveResponse{}, leaveerrors.ErrNotLeaveOwner
	}

	next, err := nextStatus(ActionCancel, l.Status)
	if err != nil {
		return LeaveResponse{}, err
	}
	return s.applyTransition(ctx, companyID, l, actorID, next)
}

// Revoke asks to undo an approved leave. The owner, or anyone who manages
// them, may ask; the request goes back through the supervisor unless the
// owner is auto-approved, in which case the leave is revoked outright.
func (s *service) Revoke(ctx context.Context, companyID, actorID, id string) (LeaveResponse, error) {
	l, actor, err := s.loadLeaveAndActor(ctx, companyID, actorID, id)
	if err != nil {
		return LeaveResponse{}, err
	}

	owner := actor
	if actor.ID != l.EmployeeID {
		owner, err = s.empRepo.FindByIDAndCompany(ctx, companyID, l.EmployeeID.String())
		if err != nil {
			return LeaveResponse{}, err
		}
		if owner == nil {
			return LeaveResponse{}, leaveerrors.ErrLeaveNotFound
		}
		can, err := s.predicate.CanManage(ctx, actor, owner)
		if err != nil {
			return LeaveResponse{}, err
		}
		if !can {
			return LeaveResponse{}, leaveerrors.ErrNotLeaveOwner
		}
	}

	next, err := nextStatus(ActionRevoke, l.Status)
	if err != nil {
		return LeaveResponse{}, err
	}
	if next == StatusPendedRevoke {
		lt, err := s.typeRepo.FindByIDAndCompany(ctx, companyID, l.LeaveTypeID.String())
		if err != nil {
			return LeaveResponse{}, err
		}
		// Auto-approval follows the owner of the leave, not the actor.
		if owner.AutoApprove || (lt != nil && lt.AutoApprove) {
			next = StatusRevoked
		}
	}
	return s.applyTransition(ctx, companyID, l, actorID, next)
}

func (s *service) applyTransition(ctx context.Context, companyID string, l *Leave, actorID string, next int) (LeaveResponse, error) {
	now := time.Now().UTC()
	l.Status = next
	l.DecidedAt = &now

	if err := s.persistTransition(ctx, l, actorID, eventTypeFor(next)); err != nil {
		return LeaveResponse{}, err
	}

	cache := schedule.NewCache(s.resolver)
	cal, err := cache.Resolve(ctx, companyID, l.EmployeeID.String())
	if err != nil {
		return LeaveResponse{}, err
	}
	return toLeaveResponse(l, DeductedDays(l, cal)), nil
}

func (s *service) loadLeaveAndActor(ctx context.Context, companyID, actorID, id string) (*Leave, *employee.Employee, error) {
	l, err := s.repo.FindByIDAndCompany(ctx, companyID, id)
	if err != nil {
		return nil, nil, err
	}
	if l == nil {
		return nil, nil, leaveerrors.ErrLeaveNotFound
	}
	actor, err := s.empRepo.FindByIDAndCompany(ctx, companyID, actorID)
	if err != nil {
		return nil, nil, err
	}
	if actor == nil {
		return nil, nil, employeeerrors.ErrEmployeeNotFound
	}
	return l, actor, nil
}

func (s *service) persistTransition(ctx context.Context, l *Leave, actorID, eventType string) error {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	defer tx.Rollback()

	if err := s.repo.WithTx(tx).UpdateDecision(ctx, l); err != nil {
		return err
	}
	s.record(ctx, tx, l, actorID, eventType)

	if err := tx.Commit(); err != nil {
		return err
	}

	s.logger.Info("leave transitioned",
		zap.String("leave_id", l.ID.String()),
		zap.String("status", StatusName(l.Status)),
		zap.String("actor_id", actorID),
	)
	return nil
}

// record enqueues the notification event. Losing a notification must not
// fail the state change, so errors are only logged.
func (s *service) record(ctx context.Context, tx *sql.Tx, l *Leave, actorID, eventType string) {
	if s.recorder == nil {
		return
	}
	event := events.LeaveLifecycleEvent{
		EventType:  eventType,
		LeaveID:    l.ID.String(),
		CompanyID:  l.CompanyID.String(),
		EmployeeID: l.EmployeeID.String(),
		ActorID:    actorID,
		Status:     StatusName(l.Status),
		DateStart:  l.DateStart.Format("2006-01-02"),
		DateEnd:    l.DateEnd.Format("2006-01-02"),
		OccurredAt: time.Now().UTC(),
	}
	err := s.recorder.RecordTx(ctx, tx, events.LeaveLifecycleTopic, "leave", l.ID.String(), eventType, event)
	if err != nil {
		s.logger.Warn("enqueue leave lifecycle event failed",
			zap.String("leave_id", l.ID.String()),
			zap.String("event_type", eventType),
			zap.Error(err),
		)
	}
}

func eventTypeFor(status int) string {
	switch status {
	case StatusApproved:
		return events.LeaveApproved
	case StatusRejected:
		return events.LeaveRejected
	case StatusCanceled:
		return events.LeaveCanceled
	case StatusPendedRevoke:
		return events.LeavePendedRevoke
	case StatusRevoked:
		return events.LeaveRevoked
	default:
		return events.LeaveRequested
	}
}

func parseRange(start, end string) (time.Time, time.Time, error) {
	dateStart, err := time.Parse("2006-01-02", start)
	if err != nil {
		return time.Time{}, time.Time{}, leaveerrors.ErrInvalidDateRange
	}
	dateEnd, err := time.Parse("2006-01-02", end)
	if err != nil {
		return time.Time{}, time.Time{}, leaveerrors.ErrInvalidDateRange
	}
	if dateEnd.Before(dateStart) {
		return time.Time{}, time.Time{}, leaveerrors.ErrInvalidDateRange
	}
	return dateStart, dateEnd, nil
}

func parseDayParts(start, end string) (string, string, error) {
	if start == "" {
		start = DayPartAllDay
	}
	if end == "" {
		end = DayPartAllDay
	}
	if !ValidDayPart(start) || !ValidDayPart(end) {
		return "", "", leaveerrors.ErrInvalidDayPart
	}
	return start, end, nil
}
