package employee

import (
	"context"
	"database/sql"
	"errors"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"

	employeeerrors "go-timeoff/internal/employee/errors"
)

// DepartmentDirectory is the slice of the department store this service
// needs. Satisfied by department.Repository.
type DepartmentDirectory interface {
	ExistsInCompany(ctx context.Context, companyID, id string) (bool, error)
	SupervisedDepartmentIDs(ctx context.Context, employeeID string) ([]uuid.UUID, error)
}

type Service interface {
	Create(ctx context.Context, companyID string, req CreateEmployeeRequest) (EmployeeResponse, error)
	GetAll(ctx context.Context, companyID string) ([]EmployeeResponse, error)
	GetByID(ctx context.Context, companyID, id string) (EmployeeResponse, error)
	SetEndDate(ctx context.Context, companyID, id string, req SetEndDateRequest) (EmployeeResponse, error)
	Remove(ctx context.Context, companyID, id string) error
}

type service struct {
	db          *sql.DB
	repo        Repository
	departments DepartmentDirectory
	logger      *zap.Logger
}

func NewService(db *sql.DB, repo Repository, departments DepartmentDirectory, logger ...*zap.Logger) Service {
	l := zap.L().Named("employee.service")
	if len(logger) > 0 && logger[0] != nil {
		l = logger[0].Named("employee.service")
	}
	return &service{db: db, repo: repo, departments: departments, logger: l}
}

func (s *service) Create(ctx context.Context, companyID string, req CreateEmployeeRequest) (EmployeeResponse, error) {
	s.logger.Debug("create employee requested",
		zap.String("company_id", companyID),
		zap.String("department_id", req.DepartmentID),
		zap.String("email", req.Email),
	)

	companyUUID, err := uuid.Parse(companyID)
	if err != nil {
		return EmployeeResponse{}, employeeerrors.ErrInvalidCompanyID
	}
	departmentUUID, err := uuid.Parse(req.DepartmentID)
	if err != nil {
		return EmployeeResponse{}, employeeerrors.ErrInvalidDepartmentID
	}
	startDate, err := time.Parse("2006-01-02", req.StartDate)
	if err != nil {
		return EmployeeResponse{}, employeeerrors.ErrInvalidDateFormat
	}

	ok, err := s.departments.ExistsInCompany(ctx, companyID, req.DepartmentID)
	if err != nil {
		return EmployeeResponse{}, err
	}
	if !ok {
		return EmployeeResponse{}, employeeerrors.ErrDepartmentNotInCompany
	}

	if existing, err := s.repo.FindByEmail(ctx, req.Email); err == nil && existing != nil {
		return EmployeeResponse{}, employeeerrors.ErrEmailTaken
	} else if err != nil && !errors.Is(err, gorm.ErrRecordNotFound) {
		return EmployeeResponse{}, err
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)
	if err != nil {
		return EmployeeResponse{}, err
	}

	e := &Employee{
		ID:           uuid.New(),
		CompanyID:    companyUUID,
		DepartmentID: departmentUUID,
		FirstName:    req.FirstName,
		LastName:     req.LastName,
		Email:        req.Email,
		PasswordHash: string(hash),
		StartDate:    startDate,
		Admin:        req.Admin,
		AutoApprove:  req.AutoApprove,
	}

	if err := s.repo.Create(ctx, e); err != nil {
		s.logger.Error("create employee persist failed", zap.Error(err))
		return EmployeeResponse{}, mapCreateError(err)
	}

	s.logger.Info("create employee success",
		zap.String("employee_id", e.ID.String()),
		zap.String("company_id", companyID),
	)
	return mapToResponse(*e), nil
}

func (s *service) GetAll(ctx context.Context, companyID string) ([]EmployeeResponse, error) {
	employees, err := s.repo.FindActiveByCompany(ctx, companyID)
	if err != nil {
		return nil, err
	}
	resp := make([]EmployeeResponse, len(employees))
	for i, e := range employees {
		resp[i] = mapToResponse(e)
	}
	return resp, nil
}

func (s *service) GetByID(ctx context.Context, companyID, id string) (EmployeeResponse, error) {
	e, err := s.repo.FindByIDAndCompany(ctx, companyID, id)
	if err != nil {
		return EmployeeResponse{}, err
	}
	if e == nil {
		return EmployeeResponse{}, employeeerrors.ErrEmployeeNotFound
	}
	return mapToResponse(*e), nil
}

func (s *service) SetEndDate(ctx context.Context, companyID, id string, req SetEndDateRequest) (EmployeeResponse, error) {
	endDate, err := time.Parse("2006-01-02", req.EndDate)
	if err != nil {
		return EmployeeResponse{}, employeeerrors.ErrInvalidDateFormat
	}

	e, err := s.repo.FindByIDAndCompany(ctx, companyID, id)
	if err != nil {
		return EmployeeResponse{}, err
	}
	if e == nil {
		return EmployeeResponse{}, employeeerrors.ErrEmployeeNotFound
	}

	if err := s.repo.SetEndDate(ctx, companyID, id, endDate); err != nil {
		s.logger.Error("set end date persist failed",
			zap.String("employee_id", id),
			zap.Error(err),
		)
		return EmployeeResponse{}, err
	}

	e.EndDate = &endDate
	s.logger.Info("employee end date set",
		zap.String("employee_id", id),
		zap.String("end_date", req.EndDate),
	)
	return mapToResponse(*e), nil
}

// Remove hard-deletes an employee and every dependent record. Administrators
// and employees still supervising a department cannot be removed.
func (s *service) Remove(ctx context.Context, companyID, id string) error {
	e, err := s.repo.FindByIDAndCompany(ctx, companyID, id)
	if err != nil {
		return err
	}
	if e == nil {
		return employeeerrors.ErrEmployeeNotFound
	}

	if e.Admin {
		return employeeerrors.ErrCannotRemoveAdmin
	}

	supervised, err := s.departments.SupervisedDepartmentIDs(ctx, id)
	if err != nil {
		return err
	}
	if len(supervised) > 0 {
		return employeeerrors.ErrCannotRemoveSupervisor
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		s.logger.Error("remove employee begin tx failed", zap.Error(err))
		return err
	}
	defer tx.Rollback()

	if err := s.repo.WithTx(tx).DeleteCascade(ctx, companyID, id); err != nil {
		s.logger.Error("remove employee cascade failed",
			zap.String("employee_id", id),
			zap.Error(err),
		)
		return err
	}

	if err := tx.Commit(); err != nil {
		s.logger.Error("remove employee commit failed", zap.Error(err))
		return err
	}

	s.logger.Info("employee removed",
		zap.String("employee_id", id),
		zap.String("company_id", companyID),
	)
	return nil
}

func mapToResponse(e Employee) EmployeeResponse {
	resp := EmployeeResponse{
		ID:           e.ID.String(),
		CompanyID:    e.CompanyID.String(),
		DepartmentID: e.DepartmentID.String(),
		FirstName:    e.FirstName,
		LastName:     e.LastName,
		FullName:     e.FullName(),
		Email:        e.Email,
		StartDate:    e.StartDate.Format("2006-01-02"),
		Admin:        e.Admin,
		AutoApprove:  e.AutoApprove,
	}
	if e.EndDate != nil {
		v := e.EndDate.Format("2006-01-02")
		resp.EndDate = &v
	}
	return resp
}
