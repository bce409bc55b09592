package schedule

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"

	scheduleerrors "go-timeoff/internal/schedule/errors"
)

type fakeRepo struct {
	Repository
	findForEmployeeFn func(ctx context.Context, companyID, employeeID string) ([]Schedule, error)
	createFn          func(ctx context.Context, s *Schedule) error
	findHolidaysFn    func(ctx context.Context, companyID string) ([]BankHoliday, error)
}

func (f *fakeRepo) FindForEmployee(ctx context.Context, companyID, employeeID string) ([]Schedule, error) {
	return f.findForEmployeeFn(ctx, companyID, employeeID)
}

func (f *fakeRepo) Create(ctx context.Context, s *Schedule) error {
	if f.createFn != nil {
		return f.createFn(ctx, s)
	}
	return nil
}

func (f *fakeRepo) FindHolidays(ctx context.Context, companyID string) ([]BankHoliday, error) {
	if f.findHolidaysFn != nil {
		return f.findHolidaysFn(ctx, companyID)
	}
	return nil, nil
}

func companyRow(companyID uuid.UUID) Schedule {
	return Schedule{
		ID:        uuid.New(),
		CompanyID: &companyID,
		Monday:    true, Tuesday: true, Wednesday: true, Thursday: true, Friday: true,
	}
}

func employeeRow(employeeID uuid.UUID) Schedule {
	return Schedule{
		ID:         uuid.New(),
		EmployeeID: &employeeID,
		Monday:     true, Tuesday: true, Wednesday: true, Thursday: true,
		Friday: false, Saturday: true,
	}
}

func TestResolver_Resolve(t *testing.T) {
	companyID := uuid.New()
	employeeID := uuid.New()

	t.Run("no rows synthesizes and persists a weekday default", func(t *testing.T) {
		var created *Schedule
		repo := &fakeRepo{
			findForEmployeeFn: func(ctx context.Context, _, _ string) ([]Schedule, error) {
				return nil, nil
			},
			createFn: func(ctx context.Context, s *Schedule) error {
				created = s
				return nil
			},
		}

		res, err := NewResolver(repo).Resolve(context.Background(), companyID.String(), employeeID.String())

		assert.NoError(t, err)
		assert.NotNil(t, created)
		assert.Equal(t, companyID, *created.CompanyID)
		assert.Nil(t, created.EmployeeID)

		mon := time.Date(2025, 6, 2, 0, 0, 0, 0, time.UTC)
		sat := time.Date(2025, 6, 7, 0, 0, 0, 0, time.UTC)
		sun := time.Date(2025, 6, 8, 0, 0, 0, 0, time.UTC)
		assert.True(t, res.IsWorkingDay(mon))
		assert.False(t, res.IsWorkingDay(sat))
		assert.False(t, res.IsWorkingDay(sun))
	})

	t.Run("single row is the company default", func(t *testing.T) {
		row := companyRow(companyID)
		row.Friday = false
		repo := &fakeRepo{
			findForEmployeeFn: func(ctx context.Context, _, _ string) ([]Schedule, error) {
				return []Schedule{row}, nil
			},
		}

		res, err := NewResolver(repo).Resolve(context.Background(), companyID.String(), employeeID.String())

		assert.NoError(t, err)
		fri := time.Date(2025, 6, 6, 0, 0, 0, 0, time.UTC)
		assert.False(t, res.IsWorkingDay(fri))
	})

	t.Run("employee override wins over the company default", func(t *testing.T) {
		repo := &fakeRepo{
			findForEmployeeFn: func(ctx context.Context, _, _ string) ([]Schedule, error) {
				return []Schedule{companyRow(companyID), employeeRow(employeeID)}, nil
			},
		}

		res, err := NewResolver(repo).Resolve(context.Background(), companyID.String(), employeeID.String())

		assert.NoError(t, err)
		fri := time.Date(2025, 6, 6, 0, 0, 0, 0, time.UTC)
		sat := time.Date(2025, 6, 7, 0, 0, 0, 0, time.UTC)
		assert.False(t, res.IsWorkingDay(fri))
		assert.True(t, res.IsWorkingDay(sat))
	})

	t.Run("order of rows does not matter", func(t *testing.T) {
		repo := &fakeRepo{
			findForEmployeeFn: func(ctx context.Context, _, _ string) ([]Schedule, error) {
				return []Schedule{employeeRow(employeeID), companyRow(companyID)}, nil
			},
		}

		res, err := NewResolver(repo).Resolve(context.Background(), companyID.String(), employeeID.String())

		assert.NoError(t, err)
		sat := time.Date(2025, 6, 7, 0, 0, 0, 0, time.UTC)
		assert.True(t, res.IsWorkingDay(sat))
	})

	t.Run("two company rows is an inconsistency", func(t *testing.T) {
		repo := &fakeRepo{
			findForEmployeeFn: func(ctx context.Context, _, _ string) ([]Schedule, error) {
				return []Schedule{companyRow(companyID), companyRow(companyID)}, nil
			},
		}

		_, err := NewResolver(repo).Resolve(context.Background(), companyID.String(), employeeID.String())

		assert.ErrorIs(t, err, scheduleerrors.ErrScheduleInconsistency)
	})

	t.Run("three rows is an inconsistency", func(t *testing.T) {
		repo := &fakeRepo{
			findForEmployeeFn: func(ctx context.Context, _, _ string) ([]Schedule, error) {
				return []Schedule{companyRow(companyID), companyRow(companyID), employeeRow(employeeID)}, nil
			},
		}

		_, err := NewResolver(repo).Resolve(context.Background(), companyID.String(), employeeID.String())

		assert.ErrorIs(t, err, scheduleerrors.ErrScheduleInconsistency)
	})

	t.Run("bank holiday overrides a working weekday", func(t *testing.T) {
		holiday := time.Date(2025, 12, 25, 0, 0, 0, 0, time.UTC)
		repo := &fakeRepo{
			findForEmployeeFn: func(ctx context.Context, _, _ string) ([]Schedule, error) {
				return []Schedule{companyRow(companyID)}, nil
			},
			findHolidaysFn: func(ctx context.Context, _ string) ([]BankHoliday, error) {
				return []BankHoliday{{ID: uuid.New(), CompanyID: companyID, Name: "Christmas", Date: holiday}}, nil
			},
		}

		res, err := NewResolver(repo).Resolve(context.Background(), companyID.String(), employeeID.String())

		assert.NoError(t, err)
		assert.False(t, res.IsWorkingDay(holiday))
	})

	t.Run("repository error is propagated", func(t *testing.T) {
		dbErr := errors.New("connection reset")
		repo := &fakeRepo{
			findForEmployeeFn: func(ctx context.Context, _, _ string) ([]Schedule, error) {
				return nil, dbErr
			},
		}

		_, err := NewResolver(repo).Resolve(context.Background(), companyID.String(), employeeID.String())

		assert.ErrorIs(t, err, dbErr)
	})
}

func TestCache_ResolvesOnce(t *testing.T) {
	companyID := uuid.New()
	employeeID := uuid.New()

	calls := 0
	repo := &fakeRepo{
		findForEmployeeFn: func(ctx context.Context, _, _ string) ([]Schedule, error) {
			calls++
			return []Schedule{companyRow(companyID)}, nil
		},
	}

	cache := NewCache(NewResolver(repo))

	for i := 0; i < 3; i++ {
		_, err := cache.Resolve(context.Background(), companyID.String(), employeeID.String())
		assert.NoError(t, err)
	}

	assert.Equal(t, 1, calls)
}
