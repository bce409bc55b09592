package allowance

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"

	"go-timeoff/internal/company"
	"go-timeoff/internal/employee"
	"go-timeoff/internal/leave"
	"go-timeoff/internal/leavetype"
	"go-timeoff/internal/schedule"

	allowanceerrors "go-timeoff/internal/allowance/errors"
)

type fakeAdjRepo struct {
	Repository
	adjustments  []Adjustment
	created      []*Adjustment
	hasCarryOver bool
}

func (f *fakeAdjRepo) FindForEmployeeYear(ctx context.Context, employeeID, leaveTypeID string, year int) ([]Adjustment, error) {
	return f.adjustments, nil
}

func (f *fakeAdjRepo) HasCarryOver(ctx context.Context, employeeID, leaveTypeID string, year int) (bool, error) {
	return f.hasCarryOver, nil
}

func (f *fakeAdjRepo) Create(ctx context.Context, a *Adjustment) error {
	f.created = append(f.created, a)
	return nil
}

type fakeTypeRepo struct {
	leavetype.Repository
	lt *leavetype.LeaveType
}

func (f *fakeTypeRepo) FindByIDAndCompany(ctx context.Context, companyID, id string) (*leavetype.LeaveType, error) {
	return f.lt, nil
}

func (f *fakeTypeRepo) FindAllByCompany(ctx context.Context, companyID string) ([]leavetype.LeaveType, error) {
	if f.lt == nil {
		return nil, nil
	}
	return []leavetype.LeaveType{*f.lt}, nil
}

type fakeLeaveRepo struct {
	leave.Repository
	leaves []leave.Leave
}

func (f *fakeLeaveRepo) FindConsumingByType(ctx context.Context, employeeID, leaveTypeID string, from, to time.Time) ([]leave.Leave, error) {
	return f.leaves, nil
}

type fakeCompanyRepo struct {
	company.Repository
	comp *company.Company
}

func (f *fakeCompanyRepo) FindByID(ctx context.Context, id string) (*company.Company, error) {
	return f.comp, nil
}

type fixedResolver struct{}

func (fixedResolver) Resolve(ctx context.Context, companyID, employeeID string) (schedule.Resolved, error) {
	return schedule.NewResolved(&schedule.Schedule{
		ID:     uuid.New(),
		Monday: true, Tuesday: true, Wednesday: true, Thursday: true, Friday: true,
	}, nil), nil
}

type engineFixture struct {
	engine   *Engine
	adjRepo  *fakeAdjRepo
	typeRepo *fakeTypeRepo
	comp     *company.Company
	emp      *employee.Employee
	lt       *leavetype.LeaveType
	cache    *schedule.Cache
}

func newEngineFixture(t *testing.T) *engineFixture {
	t.Helper()

	companyID := uuid.New()
	comp := &company.Company{
		ID:               companyID,
		Name:             "Acme",
		CarryOverCapDays: decimal.NewFromInt(5),
	}
	emp := &employee.Employee{
		ID:        uuid.New(),
		CompanyID: companyID,
		StartDate: time.Date(2020, 1, 1, 0, 0, 0, 0, time.UTC),
	}
	lt := &leavetype.LeaveType{
		ID:            uuid.New(),
		CompanyID:     companyID,
		Name:          "Holiday",
		UseAllowance:  true,
		AllowanceDays: decimal.NewFromInt(20),
	}

	adjRepo := &fakeAdjRepo{}
	typeRepo := &fakeTypeRepo{lt: lt}

	return &engineFixture{
		engine:   NewEngine(adjRepo, typeRepo, &fakeLeaveRepo{}, &fakeCompanyRepo{comp: comp}),
		adjRepo:  adjRepo,
		typeRepo: typeRepo,
		comp:     comp,
		emp:      emp,
		lt:       lt,
		cache:    schedule.NewCache(fixedResolver{}),
	}
}

func (f *engineFixture) withConsumed(leaves ...leave.Leave) {
	f.engine = NewEngine(f.adjRepo, f.typeRepo, &fakeLeaveRepo{leaves: leaves}, &fakeCompanyRepo{comp: f.comp})
}

func approvedLeave(emp *employee.Employee, lt *leavetype.LeaveType, start, end time.Time) leave.Leave {
	return leave.Leave{
		ID:           uuid.New(),
		CompanyID:    emp.CompanyID,
		EmployeeID:   emp.ID,
		LeaveTypeID:  lt.ID,
		Status:       leave.StatusApproved,
		DateStart:    start,
		DateEnd:      end,
		DayPartStart: leave.DayPartAllDay,
		DayPartEnd:   leave.DayPartAllDay,
	}
}

func TestEngine_ComputeBalance(t *testing.T) {
	t.Run("full year with one booked week", func(t *testing.T) {
		f := newEngineFixture(t)
		f.withConsumed(approvedLeave(f.emp, f.lt,
			time.Date(2025, 6, 2, 0, 0, 0, 0, time.UTC),
			time.Date(2025, 6, 6, 0, 0, 0, 0, time.UTC),
		))

		b, err := f.engine.ComputeBalance(context.Background(), f.cache, f.emp, f.lt.ID.String(), 2025)

		assert.NoError(t, err)
		assert.True(t, b.Base.Equal(decimal.NewFromInt(20)), "base %s", b.Base)
		assert.True(t, b.Consumed.Equal(decimal.NewFromInt(5)), "consumed %s", b.Consumed)
		assert.True(t, b.Remaining.Equal(decimal.NewFromInt(15)), "remaining %s", b.Remaining)
	})

	t.Run("mid-year starter is prorated to the nearest half day", func(t *testing.T) {
		f := newEngineFixture(t)
		// 155 employed days of 365: 20 * 155/365 rounds to 8.5.
		f.emp.StartDate = time.Date(2025, 7, 30, 0, 0, 0, 0, time.UTC)

		b, err := f.engine.ComputeBalance(context.Background(), f.cache, f.emp, f.lt.ID.String(), 2025)

		assert.NoError(t, err)
		assert.True(t, b.Base.Equal(decimal.NewFromFloat(8.5)), "base %s", b.Base)
	})

	t.Run("employee leaving before the year starts has no allowance", func(t *testing.T) {
		f := newEngineFixture(t)
		gone := time.Date(2024, 3, 1, 0, 0, 0, 0, time.UTC)
		f.emp.EndDate = &gone

		b, err := f.engine.ComputeBalance(context.Background(), f.cache, f.emp, f.lt.ID.String(), 2025)

		assert.NoError(t, err)
		assert.True(t, b.Base.IsZero())
	})

	t.Run("carried-over days are capped by the company setting", func(t *testing.T) {
		f := newEngineFixture(t)
		f.adjRepo.adjustments = []Adjustment{
			{Days: decimal.NewFromInt(8), CarriedOver: true},
		}

		b, err := f.engine.ComputeBalance(context.Background(), f.cache, f.emp, f.lt.ID.String(), 2025)

		assert.NoError(t, err)
		assert.True(t, b.CarriedOver.Equal(decimal.NewFromInt(5)), "carried %s", b.CarriedOver)
	})

	t.Run("zero cap passes carry-over through untouched", func(t *testing.T) {
		f := newEngineFixture(t)
		f.comp.CarryOverCapDays = decimal.Zero
		f.adjRepo.adjustments = []Adjustment{
			{Days: decimal.NewFromInt(8), CarriedOver: true},
		}

		b, err := f.engine.ComputeBalance(context.Background(), f.cache, f.emp, f.lt.ID.String(), 2025)

		assert.NoError(t, err)
		assert.True(t, b.CarriedOver.Equal(decimal.NewFromInt(8)))
	})

	t.Run("manual adjustments can drive the balance negative", func(t *testing.T) {
		f := newEngineFixture(t)
		f.adjRepo.adjustments = []Adjustment{
			{Days: decimal.NewFromInt(-25)},
		}

		b, err := f.engine.ComputeBalance(context.Background(), f.cache, f.emp, f.lt.ID.String(), 2025)

		assert.NoError(t, err)
		assert.True(t, b.Remaining.Equal(decimal.NewFromInt(-5)), "remaining %s", b.Remaining)
	})

	t.Run("non-allowance type has zero base", func(t *testing.T) {
		f := newEngineFixture(t)
		f.lt.UseAllowance = false

		b, err := f.engine.ComputeBalance(context.Background(), f.cache, f.emp, f.lt.ID.String(), 2025)

		assert.NoError(t, err)
		assert.True(t, b.Base.IsZero())
	})

	t.Run("unknown leave type", func(t *testing.T) {
		f := newEngineFixture(t)
		f.typeRepo.lt = nil

		_, err := f.engine.ComputeBalance(context.Background(), f.cache, f.emp, uuid.NewString(), 2025)

		assert.ErrorIs(t, err, allowanceerrors.ErrLeaveTypeMismatch)
	})

	t.Run("year out of range", func(t *testing.T) {
		f := newEngineFixture(t)

		_, err := f.engine.ComputeBalance(context.Background(), f.cache, f.emp, f.lt.ID.String(), 1999)

		assert.ErrorIs(t, err, allowanceerrors.ErrInvalidYear)
	})

	t.Run("leave straddling the year boundary counts each side separately", func(t *testing.T) {
		f := newEngineFixture(t)
		// Mon 2025-12-29 through Fri 2026-01-02: three days fall in 2025.
		f.withConsumed(approvedLeave(f.emp, f.lt,
			time.Date(2025, 12, 29, 0, 0, 0, 0, time.UTC),
			time.Date(2026, 1, 2, 0, 0, 0, 0, time.UTC),
		))

		b2025, err := f.engine.ComputeBalance(context.Background(), f.cache, f.emp, f.lt.ID.String(), 2025)
		assert.NoError(t, err)
		assert.True(t, b2025.Consumed.Equal(decimal.NewFromInt(3)), "2025 consumed %s", b2025.Consumed)

		b2026, err := f.engine.ComputeBalance(context.Background(), f.cache, f.emp, f.lt.ID.String(), 2026)
		assert.NoError(t, err)
		assert.True(t, b2026.Consumed.Equal(decimal.NewFromInt(2)), "2026 consumed %s", b2026.Consumed)
	})
}

func TestEngine_CarryOver(t *testing.T) {
	t.Run("materializes the capped remainder as next year's adjustment", func(t *testing.T) {
		f := newEngineFixture(t)
		// Nothing consumed: remaining 20, cap 5.

		err := f.engine.CarryOver(context.Background(), f.cache, f.comp, []employee.Employee{*f.emp}, 2025)

		assert.NoError(t, err)
		if assert.Len(t, f.adjRepo.created, 1) {
			adj := f.adjRepo.created[0]
			assert.Equal(t, 2026, adj.Year)
			assert.True(t, adj.CarriedOver)
			assert.True(t, adj.Days.Equal(decimal.NewFromInt(5)), "days %s", adj.Days)
			assert.Equal(t, "carried over from 2025", adj.Reason)
		}
	})

	t.Run("does not double up on a second run", func(t *testing.T) {
		f := newEngineFixture(t)
		f.adjRepo.hasCarryOver = true

		err := f.engine.CarryOver(context.Background(), f.cache, f.comp, []employee.Employee{*f.emp}, 2025)

		assert.NoError(t, err)
		assert.Empty(t, f.adjRepo.created)
	})

	t.Run("skips exhausted balances", func(t *testing.T) {
		f := newEngineFixture(t)
		f.adjRepo.adjustments = []Adjustment{{Days: decimal.NewFromInt(-20)}}

		err := f.engine.CarryOver(context.Background(), f.cache, f.comp, []employee.Employee{*f.emp}, 2025)

		assert.NoError(t, err)
		assert.Empty(t, f.adjRepo.created)
	})

	t.Run("skips non-allowance types", func(t *testing.T) {
		f := newEngineFixture(t)
		f.lt.UseAllowance = false

		err := f.engine.CarryOver(context.Background(), f.cache, f.comp, []employee.Employee{*f.emp}, 2025)

		assert.NoError(t, err)
		assert.Empty(t, f.adjRepo.created)
	})
}
