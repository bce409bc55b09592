package report

import (
	"context"
	"fmt"
	"time"

	"go.uber.org/zap"
	"golang.org/x/sync/singleflight"

	"go-timeoff/internal/allowance"
	"go-timeoff/internal/authz"
	"go-timeoff/internal/comment"
	"go-timeoff/internal/employee"
	"go-timeoff/internal/leave"
	"go-timeoff/internal/leavetype"
	"go-timeoff/internal/schedule"

	employeeerrors "go-timeoff/internal/employee/errors"
	leaveerrors "go-timeoff/internal/leave/errors"
)

type Service interface {
	// Allowance summarizes balances for every visible employee and every
	// allowance-consuming leave type.
	Allowance(ctx context.Context, companyID, actorID string, year int) (AllowanceReport, error)
	// Absence lists the leaves of visible employees in a date range, with
	// their comment threads attached. A non-empty departmentID narrows
	// the listing to that department.
	Absence(ctx context.Context, companyID, actorID, from, to, departmentID string) (AbsenceReport, error)
}

type service struct {
	engine      *allowance.Engine
	leaveRepo   leave.Repository
	empRepo     employee.Repository
	typeRepo    leavetype.Repository
	commentRepo comment.Repository
	resolver    schedule.Resolver
	predicate   *authz.Predicate
	sf          singleflight.Group
	logger      *zap.Logger
}

func NewService(
	engine *allowance.Engine,
	leaveRepo leave.Repository,
	empRepo employee.Repository,
	typeRepo leavetype.Repository,
	commentRepo comment.Repository,
	resolver schedule.Resolver,
	predicate *authz.Predicate,
	logger ...*zap.Logger,
) Service {
	l := zap.L().Named("report.service")
	if len(logger) > 0 && logger[0] != nil {
		l = logger[0].Named("report.service")
	}
	return &service{
		engine:      engine,
		leaveRepo:   leaveRepo,
		empRepo:     empRepo,
		typeRepo:    typeRepo,
		commentRepo: commentRepo,
		resolver:    resolver,
		predicate:   predicate,
		logger:      l,
	}
}

// Allowance is expensive (one balance per employee per type), so identical
// concurrent requests collapse into a single computation.
func (s *service) Allowance(ctx context.Context, companyID, actorID string, year int) (AllowanceReport, error) {
	key := fmt.Sprintf("allowance:%s:%s:%d", companyID, actorID, year)
	result, err, _ := s.sf.Do(key, func() (interface{}, error) {
		return s.buildAllowance(ctx, companyID, actorID, year)
	})
	if err != nil {
		return AllowanceReport{}, err
	}
	return result.(AllowanceReport), nil
}

func (s *service) buildAllowance(ctx context.Context, companyID, actorID string, year int) (AllowanceReport, error) {
	visible, err := s.visibleFor(ctx, companyID, actorID)
	if err != nil {
		return AllowanceReport{}, err
	}

	types, err := s.typeRepo.FindAllByCompany(ctx, companyID)
	if err != nil {
		return AllowanceReport{}, err
	}

	cache := schedule.NewCache(s.resolver)
	report := AllowanceReport{Year: year}
	for i := range visible {
		emp := &visible[i]
		for _, lt := range types {
			if !lt.UseAllowance {
				continue
			}
			b, err := s.engine.ComputeBalance(ctx, cache, emp, lt.ID.String(), year)
			if err != nil {
				return AllowanceReport{}, err
			}
			report.Rows = append(report.Rows, AllowanceRow{
				EmployeeID:    emp.ID,
				EmployeeName:  emp.FullName(),
				LeaveTypeID:   lt.ID,
				LeaveTypeName: lt.Name,
				Allowance:     b.Allowance(),
				Consumed:      b.Consumed,
				Remaining:     b.Remaining,
			})
		}
	}
	return report, nil
}

func (s *service) Absence(ctx context.Context, companyID, actorID, from, to, departmentID string) (AbsenceReport, error) {
	dateFrom, err := time.Parse("2006-01-02", from)
	if err != nil {
		return AbsenceReport{}, leaveerrors.ErrInvalidDateRange
	}
	dateTo, err := time.Parse("2006-01-02", to)
	if err != nil {
		return AbsenceReport{}, leaveerrors.ErrInvalidDateRange
	}
	if dateTo.Before(dateFrom) {
		return AbsenceReport{}, leaveerrors.ErrInvalidDateRange
	}

	visible, err := s.visibleFor(ctx, companyID, actorID)
	if err != nil {
		return AbsenceReport{}, err
	}
	if departmentID != "" {
		filtered := visible[:0]
		for _, e := range visible {
			if e.DepartmentID.String() == departmentID {
				filtered = append(filtered, e)
			}
		}
		visible = filtered
	}

	ids := make([]string, 0, len(visible))
	names := make(map[string]string, len(visible))
	for _, e := range visible {
		ids = append(ids, e.ID.String())
		names[e.ID.String()] = e.FullName()
	}

	leaves, err := s.leaveRepo.FindByEmployeesWithin(ctx, ids, dateFrom, dateTo)
	if err != nil {
		return AbsenceReport{}, err
	}

	leaveIDs := make([]string, 0, len(leaves))
	for _, l := range leaves {
		leaveIDs = append(leaveIDs, l.ID.String())
	}
	commentsByLeave, err := s.commentRepo.FindByEntities(ctx, comment.EntityLeave, leaveIDs)
	if err != nil {
		return AbsenceReport{}, err
	}

	cache := schedule.NewCache(s.resolver)
	report := AbsenceReport{From: from, To: to}
	for i := range leaves {
		l := &leaves[i]
		cal, err := cache.Resolve(ctx, companyID, l.EmployeeID.String())
		if err != nil {
			return AbsenceReport{}, err
		}

		row := AbsenceRow{
			LeaveID:      l.ID,
			EmployeeID:   l.EmployeeID,
			EmployeeName: names[l.EmployeeID.String()],
			LeaveTypeID:  l.LeaveTypeID,
			Status:       leave.StatusName(l.Status),
			DateStart:    l.DateStart.Format("2006-01-02"),
			DateEnd:      l.DateEnd.Format("2006-01-02"),
			DeductedDays: leave.DeductedDaysWithin(l, cal, dateFrom, dateTo),
		}
		for _, c := range commentsByLeave[l.ID.String()] {
			row.Comments = append(row.Comments, AbsenceComment{
				AuthorID: c.AuthorID,
				Body:     c.Body,
			})
		}
		report.Rows = append(report.Rows, row)
	}
	return report, nil
}

func (s *service) visibleFor(ctx context.Context, companyID, actorID string) ([]employee.Employee, error) {
	actor, err := s.empRepo.FindByIDAndCompany(ctx, companyID, actorID)
	if err != nil {
		return nil, err
	}
	if actor == nil {
		return nil, employeeerrors.ErrEmployeeNotFound
	}
	return s.predicate.VisibleEmployees(ctx, actor)
}
