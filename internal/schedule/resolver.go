package schedule

import (
	"context"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	scheduleerrors "go-timeoff/internal/schedule/errors"
)

// Resolved is the effective work calendar for one employee: the weekday mask
// of the winning schedule row plus the company's bank holidays.
type Resolved struct {
	workdays [7]bool
	holidays map[string]struct{}
}

func (r Resolved) IsWorkingDay(date time.Time) bool {
	if !r.workdays[int(date.Weekday())] {
		return false
	}
	_, holiday := r.holidays[date.Format("2006-01-02")]
	return !holiday
}

// NewResolved builds a Resolved calendar directly; used by tests and by the
// resolver itself.
func NewResolved(s *Schedule, holidays []BankHoliday) Resolved {
	res := Resolved{holidays: make(map[string]struct{}, len(holidays))}
	for d := time.Sunday; d <= time.Saturday; d++ {
		res.workdays[int(d)] = s.worksOn(d)
	}
	for _, h := range holidays {
		res.holidays[h.Date.Format("2006-01-02")] = struct{}{}
	}
	return res
}

type Resolver interface {
	Resolve(ctx context.Context, companyID, employeeID string) (Resolved, error)
}

type resolver struct {
	repo   Repository
	logger *zap.Logger
}

func NewResolver(repo Repository, logger ...*zap.Logger) Resolver {
	l := zap.L().Named("schedule.resolver")
	if len(logger) > 0 && logger[0] != nil {
		l = logger[0].Named("schedule.resolver")
	}
	return &resolver{repo: repo, logger: l}
}

// Resolve applies the schedule precedence policy: no rows means the company
// never defined one, so a Mon-Fri default is synthesized and persisted; one
// row is the company default; two rows means a personal override exists and
// wins. Any other shape violates the storage invariant.
func (r *resolver) Resolve(ctx context.Context, companyID, employeeID string) (Resolved, error) {
	rows, err := r.repo.FindForEmployee(ctx, companyID, employeeID)
	if err != nil {
		return Resolved{}, err
	}

	var winner *Schedule
	switch len(rows) {
	case 0:
		companyUUID, err := uuid.Parse(companyID)
		if err != nil {
			return Resolved{}, err
		}
		def := DefaultFor(companyUUID)
		if err := r.repo.Create(ctx, def); err != nil {
			return Resolved{}, err
		}
		r.logger.Info("synthesized default schedule",
			zap.String("company_id", companyID),
		)
		winner = def
	case 1:
		winner = &rows[0]
	case 2:
		for i := range rows {
			if rows[i].IsEmployeeSpecific() {
				winner = &rows[i]
			}
		}
		if winner == nil {
			r.logger.Error("two schedule rows but no employee override",
				zap.String("company_id", companyID),
				zap.String("employee_id", employeeID),
			)
			return Resolved{}, scheduleerrors.ErrScheduleInconsistency
		}
	default:
		r.logger.Error("unexpected schedule row count",
			zap.String("company_id", companyID),
			zap.String("employee_id", employeeID),
			zap.Int("count", len(rows)),
		)
		return Resolved{}, scheduleerrors.ErrScheduleInconsistency
	}

	holidays, err := r.repo.FindHolidays(ctx, companyID)
	if err != nil {
		return Resolved{}, err
	}

	return NewResolved(winner, holidays), nil
}
