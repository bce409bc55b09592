package allowance

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"go.uber.org/zap"

	"go-timeoff/internal/company"
	"go-timeoff/internal/employee"
	"go-timeoff/internal/leave"
	"go-timeoff/internal/leavetype"
	"go-timeoff/internal/schedule"

	allowanceerrors "go-timeoff/internal/allowance/errors"
)

// Balance is the yearly allowance picture for one employee and leave type.
// Remaining may go negative when an admin shrinks the allowance after leaves
// were approved.
type Balance struct {
	Year        int
	Base        decimal.Decimal
	CarriedOver decimal.Decimal
	Adjustments decimal.Decimal
	Consumed    decimal.Decimal
	Remaining   decimal.Decimal
}

func (b Balance) Allowance() decimal.Decimal {
	return b.Base.Add(b.CarriedOver).Add(b.Adjustments)
}

// Engine derives balances from leave types, adjustments and booked leaves.
// Nothing is cached between calls; a balance is always recomputed from the
// rows that exist right now.
type Engine struct {
	adjRepo     Repository
	typeRepo    leavetype.Repository
	leaveRepo   leave.Repository
	companyRepo company.Repository
	logger      *zap.Logger
}

func NewEngine(
	adjRepo Repository,
	typeRepo leavetype.Repository,
	leaveRepo leave.Repository,
	companyRepo company.Repository,
	logger ...*zap.Logger,
) *Engine {
	l := zap.L().Named("allowance.engine")
	if len(logger) > 0 && logger[0] != nil {
		l = logger[0].Named("allowance.engine")
	}
	return &Engine{
		adjRepo:     adjRepo,
		typeRepo:    typeRepo,
		leaveRepo:   leaveRepo,
		companyRepo: companyRepo,
		logger:      l,
	}
}

func (e *Engine) ComputeBalance(ctx context.Context, cache *schedule.Cache, emp *employee.Employee, leaveTypeID string, year int) (Balance, error) {
	if year < 2000 || year > 2200 {
		return Balance{}, allowanceerrors.ErrInvalidYear
	}

	lt, err := e.typeRepo.FindByIDAndCompany(ctx, emp.CompanyID.String(), leaveTypeID)
	if err != nil {
		return Balance{}, err
	}
	if lt == nil {
		return Balance{}, allowanceerrors.ErrLeaveTypeMismatch
	}

	yearStart := time.Date(year, time.January, 1, 0, 0, 0, 0, time.UTC)
	yearEnd := time.Date(year, time.December, 31, 0, 0, 0, 0, time.UTC)

	base := decimal.Zero
	if lt.UseAllowance {
		base = prorate(lt.AllowanceDays, emp, yearStart, yearEnd)
	}

	adjustments, err := e.adjRepo.FindForEmployeeYear(ctx, emp.ID.String(), leaveTypeID, year)
	if err != nil {
		return Balance{}, err
	}

	comp, err := e.companyRepo.FindByID(ctx, emp.CompanyID.String())
	if err != nil {
		return Balance{}, err
	}

	carried := decimal.Zero
	manual := decimal.Zero
	for _, a := range adjustments {
		if a.CarriedOver {
			carried = carried.Add(a.Days)
		} else {
			manual = manual.Add(a.Days)
		}
	}
	if comp.CarryOverCapDays.GreaterThan(decimal.Zero) && carried.GreaterThan(comp.CarryOverCapDays) {
		carried = comp.CarryOverCapDays
	}

	consumed, err := e.consumed(ctx, cache, emp, leaveTypeID, yearStart, yearEnd)
	if err != nil {
		return Balance{}, err
	}

	b := Balance{
		Year:        year,
		Base:        base,
		CarriedOver: carried,
		Adjustments: manual,
		Consumed:    consumed,
	}
	b.Remaining = b.Allowance().Sub(consumed)
	return b, nil
}

// Remaining implements the balance lookup used when new leaves are requested.
func (e *Engine) Remaining(ctx context.Context, cache *schedule.Cache, emp *employee.Employee, leaveTypeID string, year int) (decimal.Decimal, error) {
	b, err := e.ComputeBalance(ctx, cache, emp, leaveTypeID, year)
	if err != nil {
		return decimal.Zero, err
	}
	return b.Remaining, nil
}

// consumed sums the day weights of new, approved and pended-revoke leaves of
// the given type, counting only the day units inside the year. A leave
// straddling a year boundary contributes to both years, each counting its
// own portion.
func (e *Engine) consumed(ctx context.Context, cache *schedule.Cache, emp *employee.Employee, leaveTypeID string, yearStart, yearEnd time.Time) (decimal.Decimal, error) {
	leaves, err := e.leaveRepo.FindConsumingByType(ctx, emp.ID.String(), leaveTypeID, yearStart, yearEnd)
	if err != nil {
		return decimal.Zero, err
	}

	total := decimal.Zero
	for i := range leaves {
		cal, err := cache.Resolve(ctx, emp.CompanyID.String(), emp.ID.String())
		if err != nil {
			return decimal.Zero, err
		}
		total = total.Add(leave.DeductedDaysWithin(&leaves[i], cal, yearStart, yearEnd))
	}
	return total, nil
}

// CarryOver materializes the unused balance of fromYear as a carried-over
// adjustment for the next year, capped by the company setting. Safe to run
// repeatedly: employees that already have a carry-over row are skipped.
func (e *Engine) CarryOver(ctx context.Context, cache *schedule.Cache, comp *company.Company, employees []employee.Employee, fromYear int) error {
	types, err := e.typeRepo.FindAllByCompany(ctx, comp.ID.String())
	if err != nil {
		return err
	}

	for i := range employees {
		emp := &employees[i]
		for _, lt := range types {
			if !lt.UseAllowance {
				continue
			}

			exists, err := e.adjRepo.HasCarryOver(ctx, emp.ID.String(), lt.ID.String(), fromYear+1)
			if err != nil {
				return err
			}
			if exists {
				continue
			}

			b, err := e.ComputeBalance(ctx, cache, emp, lt.ID.String(), fromYear)
			if err != nil {
				return err
			}
			if !b.Remaining.GreaterThan(decimal.Zero) {
				continue
			}

			days := b.Remaining
			if comp.CarryOverCapDays.GreaterThan(decimal.Zero) && days.GreaterThan(comp.CarryOverCapDays) {
				days = comp.CarryOverCapDays
			}

			adj := &Adjustment{
				ID:          uuid.New(),
				CompanyID:   comp.ID,
				EmployeeID:  emp.ID,
				LeaveTypeID: lt.ID,
				Year:        fromYear + 1,
				Days:        days,
				CarriedOver: true,
				Reason:      fmt.Sprintf("carried over from %d", fromYear),
			}
			if err := e.adjRepo.Create(ctx, adj); err != nil {
				return err
			}

			e.logger.Info("allowance carried over",
				zap.String("employee_id", emp.ID.String()),
				zap.String("leave_type_id", lt.ID.String()),
				zap.Int("year", fromYear+1),
				zap.String("days", days.String()),
			)
		}
	}
	return nil
}

// prorate scales the yearly allowance to the fraction of the year the
// employee is actually employed, rounded to the nearest half day.
func prorate(full decimal.Decimal, emp *employee.Employee, yearStart, yearEnd time.Time) decimal.Decimal {
	activeFrom := yearStart
	if emp.StartDate.After(yearStart) {
		activeFrom = emp.StartDate
	}
	activeTo := yearEnd
	if emp.EndDate != nil && emp.EndDate.Before(yearEnd) {
		activeTo = *emp.EndDate
	}
	if activeFrom.After(activeTo) {
		return decimal.Zero
	}

	activeDays := activeTo.Sub(activeFrom).Hours()/24 + 1
	totalDays := yearEnd.Sub(yearStart).Hours()/24 + 1

	scaled := full.
		Mul(decimal.NewFromFloat(activeDays)).
		Div(decimal.NewFromFloat(totalDays))
	return roundToHalf(scaled)
}

func roundToHalf(d decimal.Decimal) decimal.Decimal {
	return d.Mul(decimal.NewFromInt(2)).Round(0).Div(decimal.NewFromInt(2))
}
