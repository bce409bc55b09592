package leave

import (
	"context"
	"database/sql"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"

	"go-timeoff/internal/authz"
	"go-timeoff/internal/company"
	"go-timeoff/internal/department"
	"go-timeoff/internal/employee"
	"go-timeoff/internal/events"
	"go-timeoff/internal/leavetype"
	"go-timeoff/internal/schedule"

	leaveerrors "go-timeoff/internal/leave/errors"
)

type fakeLeaveRepo struct {
	Repository
	createFn                   func(ctx context.Context, l *Leave) error
	findByIDAndCompanyFn       func(ctx context.Context, companyID, id string) (*Leave, error)
	findBlockingOverlapsFn     func(ctx context.Context, employeeID string, from, to time.Time) ([]Leave, error)
	findByEmployeesAndStatusFn func(ctx context.Context, employeeIDs []string, status int) ([]Leave, error)
	updateDecisionFn           func(ctx context.Context, l *Leave) error
}

func (f *fakeLeaveRepo) WithTx(tx *sql.Tx) Repository { return f }

func (f *fakeLeaveRepo) Create(ctx context.Context, l *Leave) error {
	if f.createFn != nil {
		return f.createFn(ctx, l)
	}
	return nil
}

func (f *fakeLeaveRepo) FindByIDAndCompany(ctx context.Context, companyID, id string) (*Leave, error) {
	return f.findByIDAndCompanyFn(ctx, companyID, id)
}

func (f *fakeLeaveRepo) FindBlockingOverlaps(ctx context.Context, employeeID string, from, to time.Time) ([]Leave, error) {
	if f.findBlockingOverlapsFn != nil {
		return f.findBlockingOverlapsFn(ctx, employeeID, from, to)
	}
	return nil, nil
}

func (f *fakeLeaveRepo) FindByEmployeesAndStatus(ctx context.Context, employeeIDs []string, status int) ([]Leave, error) {
	if f.findByEmployeesAndStatusFn != nil {
		return f.findByEmployeesAndStatusFn(ctx, employeeIDs, status)
	}
	return nil, nil
}

func (f *fakeLeaveRepo) UpdateDecision(ctx context.Context, l *Leave) error {
	if f.updateDecisionFn != nil {
		return f.updateDecisionFn(ctx, l)
	}
	return nil
}

type fakeEmployeeRepo struct {
	employee.Repository
	byID map[string]*employee.Employee
}

func (f *fakeEmployeeRepo) FindByIDAndCompany(ctx context.Context, companyID, id string) (*employee.Employee, error) {
	return f.byID[id], nil
}

type fakeCompanyRepo struct {
	company.Repository
	comp *company.Company
}

func (f *fakeCompanyRepo) FindByID(ctx context.Context, id string) (*company.Company, error) {
	return f.comp, nil
}

type fakeTypeRepo struct {
	leavetype.Repository
	lt *leavetype.LeaveType
}

func (f *fakeTypeRepo) FindByIDAndCompany(ctx context.Context, companyID, id string) (*leavetype.LeaveType, error) {
	return f.lt, nil
}

type fakeDeptRepo struct {
	department.Repository
	supervised []uuid.UUID
}

func (f *fakeDeptRepo) SupervisedDepartmentIDs(ctx context.Context, employeeID string) ([]uuid.UUID, error) {
	return f.supervised, nil
}

type fixedResolver struct {
	cal schedule.Resolved
}

func (f fixedResolver) Resolve(ctx context.Context, companyID, employeeID string) (schedule.Resolved, error) {
	return f.cal, nil
}

type balanceFn func() (decimal.Decimal, error)

func (f balanceFn) Remaining(ctx context.Context, cache *schedule.Cache, emp *employee.Employee, leaveTypeID string, year int) (decimal.Decimal, error) {
	return f()
}

type recordedEvent struct {
	topic     string
	eventType string
}

type fakeRecorder struct {
	events []recordedEvent
}

func (f *fakeRecorder) RecordTx(ctx context.Context, tx *sql.Tx, topic, aggregateType, aggregateID, eventType string, payload interface{}) error {
	f.events = append(f.events, recordedEvent{topic: topic, eventType: eventType})
	return nil
}

func weekdayResolved() schedule.Resolved {
	return schedule.NewResolved(&schedule.Schedule{
		ID:     uuid.New(),
		Monday: true, Tuesday: true, Wednesday: true, Thursday: true, Friday: true,
	}, nil)
}

type serviceFixture struct {
	service  Service
	mock     sqlmock.Sqlmock
	leaves   *fakeLeaveRepo
	recorder *fakeRecorder

	companyID  uuid.UUID
	requester  *employee.Employee
	supervisor *employee.Employee
	leaveType  *leavetype.LeaveType
}

func newServiceFixture(t *testing.T, remaining decimal.Decimal) *serviceFixture {
	t.Helper()

	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatal(err)
	}
	t.Cleanup(func() { db.Close() })

	companyID := uuid.New()
	deptID := uuid.New()
	requester := &employee.Employee{
		ID: uuid.New(), CompanyID: companyID, DepartmentID: deptID,
		FirstName: "Ana", LastName: "Ferreira",
		StartDate: time.Date(2020, 1, 1, 0, 0, 0, 0, time.UTC),
	}
	supervisor := &employee.Employee{
		ID: uuid.New(), CompanyID: companyID, DepartmentID: deptID,
		FirstName: "Rui", LastName: "Costa",
		StartDate: time.Date(2018, 1, 1, 0, 0, 0, 0, time.UTC),
	}
	lt := &leavetype.LeaveType{
		ID: uuid.New(), CompanyID: companyID, Name: "Holiday",
		UseAllowance: true, AllowanceDays: decimal.NewFromInt(20),
	}

	leaves := &fakeLeaveRepo{}
	recorder := &fakeRecorder{}

	empRepo := &fakeEmployeeRepo{byID: map[string]*employee.Employee{
		requester.ID.String():  requester,
		supervisor.ID.String(): supervisor,
	}}
	predicate := authz.NewPredicate(&fakeDeptRepo{supervised: []uuid.UUID{deptID}}, empRepo)

	svc := NewService(
		db,
		leaves,
		empRepo,
		&fakeCompanyRepo{comp: &company.Company{ID: companyID, Mode: company.ModeNormal}},
		&fakeTypeRepo{lt: lt},
		fixedResolver{cal: weekdayResolved()},
		predicate,
		balanceFn(func() (decimal.Decimal, error) { return remaining, nil }),
		recorder,
	)

	return &serviceFixture{
		service:    svc,
		mock:       mock,
		leaves:     leaves,
		recorder:   recorder,
		companyID:  companyID,
		requester:  requester,
		supervisor: supervisor,
		leaveType:  lt,
	}
}

func (f *serviceFixture) createRequest() CreateLeaveRequest {
	return CreateLeaveRequest{
		LeaveTypeID: f.leaveType.ID.String(),
		DateStart:   "2025-06-02",
		DateEnd:     "2025-06-06",
	}
}

func TestService_Create(t *testing.T) {
	t.Run("books a working week as a new request", func(t *testing.T) {
		f := newServiceFixture(t, decimal.NewFromInt(20))
		f.mock.ExpectBegin()
		f.mock.ExpectCommit()

		resp, err := f.service.Create(context.Background(), f.companyID.String(), f.requester.ID.String(), f.createRequest())

		assert.NoError(t, err)
		assert.Equal(t, "new", resp.Status)
		assert.True(t, resp.DeductedDays.Equal(decimal.NewFromInt(5)))
		assert.Empty(t, resp.Warning)
		if assert.Len(t, f.recorder.events, 1) {
			assert.Equal(t, events.LeaveRequested, f.recorder.events[0].eventType)
			assert.Equal(t, events.LeaveLifecycleTopic, f.recorder.events[0].topic)
		}
		assert.NoError(t, f.mock.ExpectationsWereMet())
	})

	t.Run("readonly company rejects new requests", func(t *testing.T) {
		f := newServiceFixture(t, decimal.NewFromInt(20))
		f.service = NewService(
			nil, f.leaves, &fakeEmployeeRepo{},
			&fakeCompanyRepo{comp: &company.Company{ID: f.companyID, Mode: company.ModeReadonlyHolidays}},
			&fakeTypeRepo{lt: f.leaveType}, fixedResolver{cal: weekdayResolved()},
			authz.NewPredicate(&fakeDeptRepo{}, &fakeEmployeeRepo{}), nil, nil,
		)

		_, err := f.service.Create(context.Background(), f.companyID.String(), f.requester.ID.String(), f.createRequest())

		assert.ErrorIs(t, err, leaveerrors.ErrCompanyReadOnly)
	})

	t.Run("end before start is rejected", func(t *testing.T) {
		f := newServiceFixture(t, decimal.NewFromInt(20))
		req := f.createRequest()
		req.DateStart = "2025-06-06"
		req.DateEnd = "2025-06-02"

		_, err := f.service.Create(context.Background(), f.companyID.String(), f.requester.ID.String(), req)

		assert.ErrorIs(t, err, leaveerrors.ErrInvalidDateRange)
	})

	t.Run("unknown day part is rejected", func(t *testing.T) {
		f := newServiceFixture(t, decimal.NewFromInt(20))
		req := f.createRequest()
		req.DayPartStart = "lunchtime"

		_, err := f.service.Create(context.Background(), f.companyID.String(), f.requester.ID.String(), req)

		assert.ErrorIs(t, err, leaveerrors.ErrInvalidDayPart)
	})

	t.Run("blocking overlap is rejected", func(t *testing.T) {
		f := newServiceFixture(t, decimal.NewFromInt(20))
		f.leaves.findBlockingOverlapsFn = func(ctx context.Context, employeeID string, from, to time.Time) ([]Leave, error) {
			return []Leave{{ID: uuid.New(), Status: StatusApproved}}, nil
		}

		_, err := f.service.Create(context.Background(), f.companyID.String(), f.requester.ID.String(), f.createRequest())

		assert.ErrorIs(t, err, leaveerrors.ErrOverlappingLeave)
	})

	t.Run("exceeding the allowance warns but still books", func(t *testing.T) {
		f := newServiceFixture(t, decimal.NewFromInt(2))
		f.mock.ExpectBegin()
		f.mock.ExpectCommit()

		resp, err := f.service.Create(context.Background(), f.companyID.String(), f.requester.ID.String(), f.createRequest())

		assert.NoError(t, err)
		assert.NotEmpty(t, resp.Warning)
		assert.Equal(t, "new", resp.Status)
		assert.NoError(t, f.mock.ExpectationsWereMet())
	})

	t.Run("weekend-only request books zero days without warning", func(t *testing.T) {
		f := newServiceFixture(t, decimal.Zero)
		f.mock.ExpectBegin()
		f.mock.ExpectCommit()

		req := f.createRequest()
		req.DateStart = "2025-06-07"
		req.DateEnd = "2025-06-08"

		resp, err := f.service.Create(context.Background(), f.companyID.String(), f.requester.ID.String(), req)

		assert.NoError(t, err)
		assert.True(t, resp.DeductedDays.IsZero())
		assert.Empty(t, resp.Warning)
	})

	t.Run("auto-approved employee skips the approval step", func(t *testing.T) {
		f := newServiceFixture(t, decimal.NewFromInt(20))
		f.requester.AutoApprove = true
		f.mock.ExpectBegin()
		f.mock.ExpectCommit()

		resp, err := f.service.Create(context.Background(), f.companyID.String(), f.requester.ID.String(), f.createRequest())

		assert.NoError(t, err)
		assert.Equal(t, "approved", resp.Status)
		assert.Equal(t, f.requester.ID, *resp.ApproverID)
		if assert.Len(t, f.recorder.events, 1) {
			assert.Equal(t, events.LeaveApproved, f.recorder.events[0].eventType)
		}
	})
}

func TestService_Decide(t *testing.T) {
	pending := func(f *serviceFixture, status int) *Leave {
		l := &Leave{
			ID:          uuid.New(),
			CompanyID:   f.companyID,
			EmployeeID:  f.requester.ID,
			LeaveTypeID: f.leaveType.ID,
			Status:      status,
			DateStart:   time.Date(2025, 6, 2, 0, 0, 0, 0, time.UTC),
			DateEnd:     time.Date(2025, 6, 6, 0, 0, 0, 0, time.UTC),
			DayPartStart: DayPartAllDay,
			DayPartEnd:   DayPartAllDay,
		}
		f.leaves.findByIDAndCompanyFn = func(ctx context.Context, companyID, id string) (*Leave, error) {
			return l, nil
		}
		return l
	}

	t.Run("supervisor approves a new request", func(t *testing.T) {
		f := newServiceFixture(t, decimal.NewFromInt(20))
		l := pending(f, StatusNew)
		f.mock.ExpectBegin()
		f.mock.ExpectCommit()

		resp, err := f.service.Approve(context.Background(), f.companyID.String(), f.supervisor.ID.String(), l.ID.String(), DecisionRequest{Comment: "enjoy"})

		assert.NoError(t, err)
		assert.Equal(t, "approved", resp.Status)
		assert.Equal(t, "enjoy", l.ApproverComment)
		assert.Equal(t, f.supervisor.ID, *l.ApproverID)
		if assert.Len(t, f.recorder.events, 1) {
			assert.Equal(t, events.LeaveApproved, f.recorder.events[0].eventType)
		}
	})

	t.Run("owner cannot decide their own request", func(t *testing.T) {
		f := newServiceFixture(t, decimal.NewFromInt(20))
		l := pending(f, StatusNew)

		_, err := f.service.Approve(context.Background(), f.companyID.String(), f.requester.ID.String(), l.ID.String(), DecisionRequest{})

		assert.ErrorIs(t, err, leaveerrors.ErrSelfApproval)
	})

	t.Run("approving a rejected request fails", func(t *testing.T) {
		f := newServiceFixture(t, decimal.NewFromInt(20))
		l := pending(f, StatusRejected)

		_, err := f.service.Approve(context.Background(), f.companyID.String(), f.supervisor.ID.String(), l.ID.String(), DecisionRequest{})

		assert.ErrorIs(t, err, leaveerrors.ErrInvalidTransition)
		assert.Empty(t, f.recorder.events)
	})

	t.Run("rejecting a pended revoke restores approval", func(t *testing.T) {
		f := newServiceFixture(t, decimal.NewFromInt(20))
		l := pending(f, StatusPendedRevoke)
		originalApprover := uuid.New()
		l.ApproverID = &originalApprover
		f.mock.ExpectBegin()
		f.mock.ExpectCommit()

		resp, err := f.service.Reject(context.Background(), f.companyID.String(), f.supervisor.ID.String(), l.ID.String(), DecisionRequest{})

		assert.NoError(t, err)
		assert.Equal(t, "approved", resp.Status)
		// The original approval stands, decider included.
		assert.Equal(t, originalApprover, *l.ApproverID)
	})

	t.Run("missing leave maps to not found", func(t *testing.T) {
		f := newServiceFixture(t, decimal.NewFromInt(20))
		f.leaves.findByIDAndCompanyFn = func(ctx context.Context, companyID, id string) (*Leave, error) {
			return nil, nil
		}

		_, err := f.service.Approve(context.Background(), f.companyID.String(), f.supervisor.ID.String(), uuid.NewString(), DecisionRequest{})

		assert.ErrorIs(t, err, leaveerrors.ErrLeaveNotFound)
	})
}

func TestService_OwnerTransitions(t *testing.T) {
	owned := func(f *serviceFixture, status int) *Leave {
		l := &Leave{
			ID:          uuid.New(),
			CompanyID:   f.companyID,
			EmployeeID:  f.requester.ID,
			LeaveTypeID: f.leaveType.ID,
			Status:      status,
			DateStart:   time.Date(2025, 6, 2, 0, 0, 0, 0, time.UTC),
			DateEnd:     time.Date(2025, 6, 6, 0, 0, 0, 0, time.UTC),
			DayPartStart: DayPartAllDay,
			DayPartEnd:   DayPartAllDay,
		}
		f.leaves.findByIDAndCompanyFn = func(ctx context.Context, companyID, id string) (*Leave, error) {
			return l, nil
		}
		return l
	}

	t.Run("owner cancels a new request", func(t *testing.T) {
		f := newServiceFixture(t, decimal.NewFromInt(20))
		l := owned(f, StatusNew)
		f.mock.ExpectBegin()
		f.mock.ExpectCommit()

		resp, err := f.service.Cancel(context.Background(), f.companyID.String(), f.requester.ID.String(), l.ID.String())

		assert.NoError(t, err)
		assert.Equal(t, "canceled", resp.Status)
	})

	t.Run("someone else cannot cancel", func(t *testing.T) {
		f := newServiceFixture(t, decimal.NewFromInt(20))
		l := owned(f, StatusNew)

		_, err := f.service.Cancel(context.Background(), f.companyID.String(), f.supervisor.ID.String(), l.ID.String())

		assert.ErrorIs(t, err, leaveerrors.ErrNotLeaveOwner)
	})

	t.Run("revoking an approved leave pends the revocation", func(t *testing.T) {
		f := newServiceFixture(t, decimal.NewFromInt(20))
		l := owned(f, StatusApproved)
		f.mock.ExpectBegin()
		f.mock.ExpectCommit()

		resp, err := f.service.Revoke(context.Background(), f.companyID.String(), f.requester.ID.String(), l.ID.String())

		assert.NoError(t, err)
		assert.Equal(t, "pended_revoke", resp.Status)
		if assert.Len(t, f.recorder.events, 1) {
			assert.Equal(t, events.LeavePendedRevoke, f.recorder.events[0].eventType)
		}
	})

	t.Run("supervisor can request revocation for a subordinate", func(t *testing.T) {
		f := newServiceFixture(t, decimal.NewFromInt(20))
		l := owned(f, StatusApproved)
		f.mock.ExpectBegin()
		f.mock.ExpectCommit()

		resp, err := f.service.Revoke(context.Background(), f.companyID.String(), f.supervisor.ID.String(), l.ID.String())

		assert.NoError(t, err)
		assert.Equal(t, "pended_revoke", resp.Status)
	})

	t.Run("supervisor-initiated revoke follows the owner's auto-approval", func(t *testing.T) {
		f := newServiceFixture(t, decimal.NewFromInt(20))
		f.requester.AutoApprove = true
		l := owned(f, StatusApproved)
		f.mock.ExpectBegin()
		f.mock.ExpectCommit()

		resp, err := f.service.Revoke(context.Background(), f.companyID.String(), f.supervisor.ID.String(), l.ID.String())

		assert.NoError(t, err)
		assert.Equal(t, "revoked", resp.Status)
	})

	t.Run("unrelated employee cannot request revocation", func(t *testing.T) {
		f := newServiceFixture(t, decimal.NewFromInt(20))
		outsider := &employee.Employee{
			ID: uuid.New(), CompanyID: f.companyID, DepartmentID: uuid.New(),
			FirstName: "Marta", LastName: "Lopes",
		}
		f.service = NewService(
			nil, f.leaves,
			&fakeEmployeeRepo{byID: map[string]*employee.Employee{
				f.requester.ID.String(): f.requester,
				outsider.ID.String():    outsider,
			}},
			&fakeCompanyRepo{comp: &company.Company{ID: f.companyID, Mode: company.ModeNormal}},
			&fakeTypeRepo{lt: f.leaveType}, fixedResolver{cal: weekdayResolved()},
			authz.NewPredicate(&fakeDeptRepo{}, &fakeEmployeeRepo{}), nil, nil,
		)
		l := owned(f, StatusApproved)

		_, err := f.service.Revoke(context.Background(), f.companyID.String(), outsider.ID.String(), l.ID.String())

		assert.ErrorIs(t, err, leaveerrors.ErrNotLeaveOwner)
	})

	t.Run("auto-approved employee revokes outright", func(t *testing.T) {
		f := newServiceFixture(t, decimal.NewFromInt(20))
		f.requester.AutoApprove = true
		l := owned(f, StatusApproved)
		f.mock.ExpectBegin()
		f.mock.ExpectCommit()

		resp, err := f.service.Revoke(context.Background(), f.companyID.String(), f.requester.ID.String(), l.ID.String())

		assert.NoError(t, err)
		assert.Equal(t, "revoked", resp.Status)
	})

	t.Run("canceling an approved leave fails", func(t *testing.T) {
		f := newServiceFixture(t, decimal.NewFromInt(20))
		l := owned(f, StatusApproved)

		_, err := f.service.Cancel(context.Background(), f.companyID.String(), f.requester.ID.String(), l.ID.String())

		assert.ErrorIs(t, err, leaveerrors.ErrInvalidTransition)
	})
}
