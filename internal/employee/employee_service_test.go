package employee

import (
	"context"
	"database/sql"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/stretchr/testify/assert"
	"gorm.io/gorm"

	employeeerrors "go-timeoff/internal/employee/errors"
)

type fakeRepo struct {
	Repository
	byID      map[string]*Employee
	byEmail   map[string]*Employee
	createErr error
	cascaded  []string
}

func (f *fakeRepo) WithTx(tx *sql.Tx) Repository { return f }

func (f *fakeRepo) Create(ctx context.Context, e *Employee) error {
	return f.createErr
}

func (f *fakeRepo) FindByIDAndCompany(ctx context.Context, companyID, id string) (*Employee, error) {
	return f.byID[id], nil
}

func (f *fakeRepo) FindByEmail(ctx context.Context, email string) (*Employee, error) {
	if e, ok := f.byEmail[email]; ok {
		return e, nil
	}
	return nil, gorm.ErrRecordNotFound
}

func (f *fakeRepo) SetEndDate(ctx context.Context, companyID, id string, endDate time.Time) error {
	return nil
}

func (f *fakeRepo) DeleteCascade(ctx context.Context, companyID, id string) error {
	f.cascaded = append(f.cascaded, id)
	return nil
}

type fakeDeptDirectory struct {
	exists     bool
	supervised []uuid.UUID
}

func (f *fakeDeptDirectory) ExistsInCompany(ctx context.Context, companyID, id string) (bool, error) {
	return f.exists, nil
}

func (f *fakeDeptDirectory) SupervisedDepartmentIDs(ctx context.Context, employeeID string) ([]uuid.UUID, error) {
	return f.supervised, nil
}

type serviceFixture struct {
	svc    Service
	repo   *fakeRepo
	depts  *fakeDeptDirectory
	dbMock sqlmock.Sqlmock
	comp   uuid.UUID
	deptID uuid.UUID
}

func newServiceFixture(t *testing.T) *serviceFixture {
	t.Helper()

	db, dbMock, err := sqlmock.New()
	assert.NoError(t, err)
	t.Cleanup(func() { db.Close() })

	repo := &fakeRepo{
		byID:    map[string]*Employee{},
		byEmail: map[string]*Employee{},
	}
	depts := &fakeDeptDirectory{exists: true}

	return &serviceFixture{
		svc:    NewService(db, repo, depts),
		repo:   repo,
		depts:  depts,
		dbMock: dbMock,
		comp:   uuid.New(),
		deptID: uuid.New(),
	}
}

func (f *serviceFixture) addEmployee(e Employee) *Employee {
	f.repo.byID[e.ID.String()] = &e
	f.repo.byEmail[e.Email] = &e
	return &e
}

func validCreateRequest(f *serviceFixture) CreateEmployeeRequest {
	return CreateEmployeeRequest{
		DepartmentID: f.deptID.String(),
		FirstName:    "Ana",
		LastName:     "Ferreira",
		Email:        "ana@acme.test",
		Password:     "correct horse",
		StartDate:    "2025-03-01",
	}
}

func TestService_Create(t *testing.T) {
	t.Run("creates an active employee", func(t *testing.T) {
		f := newServiceFixture(t)

		resp, err := f.svc.Create(context.Background(), f.comp.String(), validCreateRequest(f))

		assert.NoError(t, err)
		assert.Equal(t, "Ana Ferreira", resp.FullName)
		assert.Equal(t, "2025-03-01", resp.StartDate)
		assert.Nil(t, resp.EndDate)
	})

	t.Run("department must belong to the company", func(t *testing.T) {
		f := newServiceFixture(t)
		f.depts.exists = false
		req := validCreateRequest(f)
		req.DepartmentID = uuid.NewString()

		_, err := f.svc.Create(context.Background(), f.comp.String(), req)

		assert.ErrorIs(t, err, employeeerrors.ErrDepartmentNotInCompany)
	})

	t.Run("malformed department id is rejected before any lookup", func(t *testing.T) {
		f := newServiceFixture(t)
		req := validCreateRequest(f)
		req.DepartmentID = "engineering"

		_, err := f.svc.Create(context.Background(), f.comp.String(), req)

		assert.ErrorIs(t, err, employeeerrors.ErrInvalidDepartmentID)
	})

	t.Run("duplicate email is rejected up front", func(t *testing.T) {
		f := newServiceFixture(t)
		f.addEmployee(Employee{ID: uuid.New(), CompanyID: f.comp, Email: "ana@acme.test"})

		_, err := f.svc.Create(context.Background(), f.comp.String(), validCreateRequest(f))

		assert.ErrorIs(t, err, employeeerrors.ErrEmailTaken)
	})

	t.Run("unique violation on insert maps to the same error", func(t *testing.T) {
		f := newServiceFixture(t)
		f.repo.createErr = &pgconn.PgError{Code: "23505", ConstraintName: "idx_employees_email"}

		_, err := f.svc.Create(context.Background(), f.comp.String(), validCreateRequest(f))

		assert.ErrorIs(t, err, employeeerrors.ErrEmailTaken)
	})

	t.Run("bad start date", func(t *testing.T) {
		f := newServiceFixture(t)
		req := validCreateRequest(f)
		req.StartDate = "01/03/2025"

		_, err := f.svc.Create(context.Background(), f.comp.String(), req)

		assert.ErrorIs(t, err, employeeerrors.ErrInvalidDateFormat)
	})
}

func TestService_SetEndDate(t *testing.T) {
	t.Run("sets the employment end", func(t *testing.T) {
		f := newServiceFixture(t)
		e := f.addEmployee(Employee{ID: uuid.New(), CompanyID: f.comp, Email: "ana@acme.test"})

		resp, err := f.svc.SetEndDate(context.Background(), f.comp.String(), e.ID.String(), SetEndDateRequest{EndDate: "2025-12-31"})

		assert.NoError(t, err)
		if assert.NotNil(t, resp.EndDate) {
			assert.Equal(t, "2025-12-31", *resp.EndDate)
		}
	})

	t.Run("unknown employee", func(t *testing.T) {
		f := newServiceFixture(t)

		_, err := f.svc.SetEndDate(context.Background(), f.comp.String(), uuid.NewString(), SetEndDateRequest{EndDate: "2025-12-31"})

		assert.ErrorIs(t, err, employeeerrors.ErrEmployeeNotFound)
	})
}

func TestService_Remove(t *testing.T) {
	t.Run("cascades inside one transaction", func(t *testing.T) {
		f := newServiceFixture(t)
		e := f.addEmployee(Employee{ID: uuid.New(), CompanyID: f.comp, Email: "ana@acme.test"})
		f.dbMock.ExpectBegin()
		f.dbMock.ExpectCommit()

		err := f.svc.Remove(context.Background(), f.comp.String(), e.ID.String())

		assert.NoError(t, err)
		assert.Equal(t, []string{e.ID.String()}, f.repo.cascaded)
		assert.NoError(t, f.dbMock.ExpectationsWereMet())
	})

	t.Run("admins cannot be removed", func(t *testing.T) {
		f := newServiceFixture(t)
		e := f.addEmployee(Employee{ID: uuid.New(), CompanyID: f.comp, Email: "boss@acme.test", Admin: true})

		err := f.svc.Remove(context.Background(), f.comp.String(), e.ID.String())

		assert.ErrorIs(t, err, employeeerrors.ErrCannotRemoveAdmin)
		assert.Empty(t, f.repo.cascaded)
	})

	t.Run("supervisors cannot be removed", func(t *testing.T) {
		f := newServiceFixture(t)
		e := f.addEmployee(Employee{ID: uuid.New(), CompanyID: f.comp, Email: "sup@acme.test"})
		f.depts.supervised = []uuid.UUID{f.deptID}

		err := f.svc.Remove(context.Background(), f.comp.String(), e.ID.String())

		assert.ErrorIs(t, err, employeeerrors.ErrCannotRemoveSupervisor)
		assert.Empty(t, f.repo.cascaded)
	})

	t.Run("unknown employee", func(t *testing.T) {
		f := newServiceFixture(t)

		err := f.svc.Remove(context.Background(), f.comp.String(), uuid.NewString())

		assert.ErrorIs(t, err, employeeerrors.ErrEmployeeNotFound)
	})
}
