package teamview

import (
	"context"
	"time"

	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"go-timeoff/internal/authz"
	"go-timeoff/internal/employee"
	"go-timeoff/internal/leave"
	"go-timeoff/internal/schedule"

	employeeerrors "go-timeoff/internal/employee/errors"
	leaveerrors "go-timeoff/internal/leave/errors"
)

// maxConcurrentRows bounds the schedule and expansion work done in parallel
// for one team view request.
const maxConcurrentRows = 10

type Service interface {
	// Month renders the calendar grid for every employee the actor may
	// see, for the month given as YYYY-MM. A non-empty departmentID
	// narrows the rows to that department.
	Month(ctx context.Context, companyID, actorID, month, departmentID string) (MonthView, error)
}

type service struct {
	leaveRepo leave.Repository
	empRepo   employee.Repository
	resolver  schedule.Resolver
	predicate *authz.Predicate
	logger    *zap.Logger
}

func NewService(
	leaveRepo leave.Repository,
	empRepo employee.Repository,
	resolver schedule.Resolver,
	predicate *authz.Predicate,
	logger ...*zap.Logger,
) Service {
	l := zap.L().Named("teamview.service")
	if len(logger) > 0 && logger[0] != nil {
		l = logger[0].Named("teamview.service")
	}
	return &service{
		leaveRepo: leaveRepo,
		empRepo:   empRepo,
		resolver:  resolver,
		predicate: predicate,
		logger:    l,
	}
}

func (s *service) Month(ctx context.Context, companyID, actorID, month, departmentID string) (MonthView, error) {
	from, err := time.Parse("2006-01", month)
	if err != nil {
		return MonthView{}, leaveerrors.ErrInvalidDateRange
	}
	to := from.AddDate(0, 1, -1)

	actor, err := s.empRepo.FindByIDAndCompany(ctx, companyID, actorID)
	if err != nil {
		return MonthView{}, err
	}
	if actor == nil {
		return MonthView{}, employeeerrors.ErrEmployeeNotFound
	}

	visible, err := s.predicate.VisibleEmployees(ctx, actor)
	if err != nil {
		return MonthView{}, err
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
	for _, e := range visible {
		ids = append(ids, e.ID.String())
	}
	leaves, err := s.leaveRepo.FindByEmployeesWithin(ctx, ids, from, to)
	if err != nil {
		return MonthView{}, err
	}
	byEmployee := make(map[string][]leave.Leave, len(visible))
	for _, l := range leaves {
		key := l.EmployeeID.String()
		byEmployee[key] = append(byEmployee[key], l)
	}

	// Rows are built concurrently but land at their employee's index, so
	// the response keeps the repository's ordering.
	rows := make([]Row, len(visible))
	cache := schedule.NewCache(s.resolver)

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(maxConcurrentRows)
	for i := range visible {
		g.Go(func() error {
			emp := &visible[i]
			cal, err := cache.Resolve(gctx, companyID, emp.ID.String())
			if err != nil {
				return err
			}
			rows[i] = buildRow(emp, byEmployee[emp.ID.String()], cal, from, to)
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return MonthView{}, err
	}

	return MonthView{Month: month, Rows: rows}, nil
}

func buildRow(emp *employee.Employee, leaves []leave.Leave, cal schedule.Resolved, from, to time.Time) Row {
	type half struct {
		morning   *CellLeave
		afternoon *CellLeave
	}
	occupied := make(map[string]half)

	row := Row{
		EmployeeID:   emp.ID,
		Name:         emp.FullName(),
		DepartmentID: emp.DepartmentID,
	}

	for li := range leaves {
		l := &leaves[li]
		cell := CellLeave{
			LeaveID:     l.ID,
			LeaveTypeID: l.LeaveTypeID,
			Status:      leave.StatusName(l.Status),
		}
		for unit := range leave.Expand(l, cal) {
			if unit.Date.Before(from) || unit.Date.After(to) {
				continue
			}
			key := unit.Date.Format("2006-01-02")
			h := occupied[key]
			if unit.Morning {
				c := cell
				h.morning = &c
			}
			if unit.Afternoon {
				c := cell
				h.afternoon = &c
			}
			occupied[key] = h
			row.DaysOff = row.DaysOff.Add(unit.Weight())
		}
	}

	row.Days = make([]DayCell, 0, int(to.Sub(from).Hours()/24)+1)
	for d := from; !d.After(to); d = d.AddDate(0, 0, 1) {
		key := d.Format("2006-01-02")
		h := occupied[key]
		row.Days = append(row.Days, DayCell{
			Date:      key,
			Working:   cal.IsWorkingDay(d),
			Morning:   h.morning,
			Afternoon: h.afternoon,
		})
	}
	return row
}
