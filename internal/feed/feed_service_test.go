package feed

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"

	"go-timeoff/internal/authz"
	"go-timeoff/internal/company"
	"go-timeoff/internal/department"
	"go-timeoff/internal/employee"
	"go-timeoff/internal/leave"
	"go-timeoff/internal/schedule"

	employeeerrors "go-timeoff/internal/employee/errors"
)

type fakeFeedRepo struct {
	Repository
	byToken  map[string]*Token
	upserted []*Token
}

func (f *fakeFeedRepo) Upsert(ctx context.Context, t *Token) error {
	f.upserted = append(f.upserted, t)
	return nil
}

func (f *fakeFeedRepo) FindByToken(ctx context.Context, token string) (*Token, error) {
	return f.byToken[token], nil
}

type fakeLeaveRepo struct {
	leave.Repository
	leaves []leave.Leave
}

func (f *fakeLeaveRepo) FindByEmployeesWithin(ctx context.Context, employeeIDs []string, from, to time.Time) ([]leave.Leave, error) {
	return f.leaves, nil
}

type fakeEmployeeRepo struct {
	employee.Repository
	byID    map[string]*employee.Employee
	company []employee.Employee
}

func (f *fakeEmployeeRepo) FindByIDAndCompany(ctx context.Context, companyID, id string) (*employee.Employee, error) {
	return f.byID[id], nil
}

func (f *fakeEmployeeRepo) FindActiveByCompany(ctx context.Context, companyID string) ([]employee.Employee, error) {
	return f.company, nil
}

type fakeCompanyRepo struct {
	company.Repository
	comp *company.Company
}

func (f *fakeCompanyRepo) FindByID(ctx context.Context, id string) (*company.Company, error) {
	return f.comp, nil
}

type fakeScheduleRepo struct {
	schedule.Repository
	holidays []schedule.BankHoliday
}

func (f *fakeScheduleRepo) FindHolidays(ctx context.Context, companyID string) ([]schedule.BankHoliday, error) {
	return f.holidays, nil
}

type fakeDeptRepo struct {
	department.Repository
}

func (f *fakeDeptRepo) SupervisedDepartmentIDs(ctx context.Context, employeeID string) ([]uuid.UUID, error) {
	return nil, nil
}

type fixedResolver struct{}

func (fixedResolver) Resolve(ctx context.Context, companyID, employeeID string) (schedule.Resolved, error) {
	return schedule.NewResolved(&schedule.Schedule{
		ID:     uuid.New(),
		Monday: true, Tuesday: true, Wednesday: true, Thursday: true, Friday: true,
	}, nil), nil
}

type serviceFixture struct {
	svc      Service
	repo     *fakeFeedRepo
	comp     *company.Company
	owner    *employee.Employee
	leaves   *fakeLeaveRepo
	holidays *fakeScheduleRepo
}

func newServiceFixture(t *testing.T) *serviceFixture {
	t.Helper()

	companyID := uuid.New()
	comp := &company.Company{
		ID:   companyID,
		Name: "Acme",
		Mode: company.ModeNormal,
	}
	owner := &employee.Employee{
		ID:           uuid.New(),
		CompanyID:    companyID,
		DepartmentID: uuid.New(),
		FirstName:    "Ana",
		LastName:     "Ferreira",
		Admin:        true,
		StartDate:    time.Date(2021, 3, 15, 0, 0, 0, 0, time.UTC),
	}

	repo := &fakeFeedRepo{byToken: map[string]*Token{}}
	leaveRepo := &fakeLeaveRepo{}
	schedRepo := &fakeScheduleRepo{}
	empRepo := &fakeEmployeeRepo{
		byID:    map[string]*employee.Employee{owner.ID.String(): owner},
		company: []employee.Employee{*owner},
	}

	return &serviceFixture{
		svc: NewService(
			repo,
			leaveRepo,
			empRepo,
			&fakeCompanyRepo{comp: comp},
			schedRepo,
			fixedResolver{},
			authz.NewPredicate(&fakeDeptRepo{}, empRepo),
		),
		repo:     repo,
		comp:     comp,
		owner:    owner,
		leaves:   leaveRepo,
		holidays: schedRepo,
	}
}

func (f *serviceFixture) issueToken(feedType string) string {
	token := &Token{
		ID:         uuid.New(),
		CompanyID:  f.comp.ID,
		EmployeeID: f.owner.ID,
		Type:       feedType,
		Token:      "deadbeef",
	}
	f.repo.byToken[token.Token] = token
	return token.Token
}

func TestService_Rotate(t *testing.T) {
	t.Run("issues a fresh hex token with an ics path", func(t *testing.T) {
		f := newServiceFixture(t)

		resp, err := f.svc.Rotate(context.Background(), f.comp.ID.String(), f.owner.ID.String(), TypeCalendar)

		assert.NoError(t, err)
		assert.Equal(t, TypeCalendar, resp.Type)
		assert.Len(t, resp.Token, 48)
		assert.Equal(t, "/feeds/"+resp.Token+".ics", resp.Path)
		if assert.Len(t, f.repo.upserted, 1) {
			assert.Equal(t, f.owner.ID, f.repo.upserted[0].EmployeeID)
			assert.Equal(t, TypeCalendar, f.repo.upserted[0].Type)
		}
	})

	t.Run("rejects unknown feed types", func(t *testing.T) {
		f := newServiceFixture(t)

		_, err := f.svc.Rotate(context.Background(), f.comp.ID.String(), f.owner.ID.String(), "rss")

		assert.ErrorIs(t, err, ErrInvalidFeedType)
	})

	t.Run("rejects employees outside the company", func(t *testing.T) {
		f := newServiceFixture(t)

		_, err := f.svc.Rotate(context.Background(), f.comp.ID.String(), uuid.NewString(), TypeCalendar)

		assert.ErrorIs(t, err, employeeerrors.ErrEmployeeNotFound)
	})
}

func TestService_Render(t *testing.T) {
	t.Run("unknown token", func(t *testing.T) {
		f := newServiceFixture(t)

		_, err := f.svc.Render(context.Background(), "nope")

		assert.ErrorIs(t, err, ErrFeedNotFound)
	})

	t.Run("calendar feed renders half days against the 9-to-5 grid", func(t *testing.T) {
		f := newServiceFixture(t)
		f.leaves.leaves = []leave.Leave{{
			ID:           uuid.New(),
			CompanyID:    f.comp.ID,
			EmployeeID:   f.owner.ID,
			LeaveTypeID:  uuid.New(),
			Status:       leave.StatusApproved,
			DateStart:    time.Date(2025, 6, 2, 0, 0, 0, 0, time.UTC),
			DateEnd:      time.Date(2025, 6, 3, 0, 0, 0, 0, time.UTC),
			DayPartStart: leave.DayPartAfternoon,
			DayPartEnd:   leave.DayPartAllDay,
		}}
		token := f.issueToken(TypeCalendar)

		out, err := f.svc.Render(context.Background(), token)

		assert.NoError(t, err)
		// Monday afternoon half is a timed event.
		assert.Contains(t, out, "20250602T130000Z")
		assert.Contains(t, out, "20250602T170000Z")
		// Tuesday is fully off, so it renders as an all-day event.
		assert.Contains(t, out, "DTSTART;VALUE=DATE:20250603")
		assert.Contains(t, out, "DTEND;VALUE=DATE:20250604")
		assert.Contains(t, out, "Ana Ferreira off")
		assert.Contains(t, out, "Status: approved")
	})

	t.Run("holiday-only companies never expose leaves", func(t *testing.T) {
		f := newServiceFixture(t)
		f.comp.Mode = company.ModeReadonlyHolidays
		f.holidays.holidays = []schedule.BankHoliday{{
			ID:        uuid.New(),
			CompanyID: f.comp.ID,
			Name:      "Liberation Day",
			Date:      time.Date(2025, 4, 25, 0, 0, 0, 0, time.UTC),
		}}
		f.leaves.leaves = []leave.Leave{{
			ID:           uuid.New(),
			CompanyID:    f.comp.ID,
			EmployeeID:   f.owner.ID,
			LeaveTypeID:  uuid.New(),
			Status:       leave.StatusApproved,
			DateStart:    time.Date(2025, 6, 2, 0, 0, 0, 0, time.UTC),
			DateEnd:      time.Date(2025, 6, 2, 0, 0, 0, 0, time.UTC),
			DayPartStart: leave.DayPartAllDay,
			DayPartEnd:   leave.DayPartAllDay,
		}}
		token := f.issueToken(TypeCalendar)

		out, err := f.svc.Render(context.Background(), token)

		assert.NoError(t, err)
		assert.Contains(t, out, "Liberation Day")
		assert.NotContains(t, out, "Ana Ferreira off")
	})

	t.Run("anniversary feed recurs yearly", func(t *testing.T) {
		f := newServiceFixture(t)
		token := f.issueToken(TypeAnniversary)

		out, err := f.svc.Render(context.Background(), token)

		assert.NoError(t, err)
		assert.Contains(t, out, "Ana Ferreira work anniversary")
		assert.Contains(t, out, "FREQ=YEARLY")
	})
}
