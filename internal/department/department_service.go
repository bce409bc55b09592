package department

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"go.uber.org/zap"
	"gorm.io/gorm"

	departmenterrors "go-timeoff/internal/department/errors"
	"go-timeoff/internal/employee"
)

type Service interface {
	Create(ctx context.Context, companyID string, req CreateDepartmentRequest) (DepartmentResponse, error)
	GetAll(ctx context.Context, companyID string) ([]DepartmentResponse, error)
	GetByID(ctx context.Context, companyID, id string) (DepartmentResponse, error)
	SetManager(ctx context.Context, companyID, id string, req SetManagerRequest) (DepartmentResponse, error)
	AddSupervisor(ctx context.Context, companyID, id string, req AddSupervisorRequest) error
}

type service struct {
	repo      Repository
	employees employee.Repository
	logger    *zap.Logger
}

func NewService(repo Repository, employees employee.Repository, logger ...*zap.Logger) Service {
	l := zap.L().Named("department.service")
	if len(logger) > 0 && logger[0] != nil {
		l = logger[0].Named("department.service")
	}
	return &service{repo: repo, employees: employees, logger: l}
}

func (s *service) Create(ctx context.Context, companyID string, req CreateDepartmentRequest) (DepartmentResponse, error) {
	companyUUID, err := uuid.Parse(companyID)
	if err != nil {
		return DepartmentResponse{}, err
	}

	d := &Department{
		ID:        uuid.New(),
		Name:      req.Name,
		CompanyID: companyUUID,
	}

	if req.ManagerID != "" {
		managerUUID, err := s.employeeInCompany(ctx, companyID, req.ManagerID, departmenterrors.ErrManagerNotInCompany)
		if err != nil {
			return DepartmentResponse{}, err
		}
		d.ManagerID = &managerUUID
	}

	if err := s.repo.Create(ctx, d); err != nil {
		s.logger.Error("create department persist failed", zap.Error(err))
		return DepartmentResponse{}, err
	}

	s.logger.Info("department created",
		zap.String("department_id", d.ID.String()),
		zap.String("company_id", companyID),
	)
	return mapToResponse(*d), nil
}

func (s *service) GetAll(ctx context.Context, companyID string) ([]DepartmentResponse, error) {
	departments, err := s.repo.FindAllByCompany(ctx, companyID)
	if err != nil {
		return nil, err
	}
	resp := make([]DepartmentResponse, len(departments))
	for i, d := range departments {
		resp[i] = mapToResponse(d)
	}
	return resp, nil
}

func (s *service) GetByID(ctx context.Context, companyID, id string) (DepartmentResponse, error) {
	d, err := s.repo.FindByIDAndCompany(ctx, companyID, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return DepartmentResponse{}, departmenterrors.ErrDepartmentNotFound
		}
		return DepartmentResponse{}, err
	}
	return mapToResponse(*d), nil
}

func (s *service) SetManager(ctx context.Context, companyID, id string, req SetManagerRequest) (DepartmentResponse, error) {
	d, err := s.repo.FindByIDAndCompany(ctx, companyID, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return DepartmentResponse{}, departmenterrors.ErrDepartmentNotFound
		}
		return DepartmentResponse{}, err
	}

	managerUUID, err := s.employeeInCompany(ctx, companyID, req.ManagerID, departmenterrors.ErrManagerNotInCompany)
	if err != nil {
		return DepartmentResponse{}, err
	}

	if err := s.repo.SetManager(ctx, companyID, id, managerUUID); err != nil {
		s.logger.Error("set manager persist failed",
			zap.String("department_id", id),
			zap.Error(err),
		)
		return DepartmentResponse{}, err
	}

	d.ManagerID = &managerUUID
	s.logger.Info("department manager set",
		zap.String("department_id", id),
		zap.String("manager_id", req.ManagerID),
	)
	return mapToResponse(*d), nil
}

func (s *service) AddSupervisor(ctx context.Context, companyID, id string, req AddSupervisorRequest) error {
	if _, err := s.repo.FindByIDAndCompany(ctx, companyID, id); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return departmenterrors.ErrDepartmentNotFound
		}
		return err
	}

	employeeUUID, err := s.employeeInCompany(ctx, companyID, req.EmployeeID, departmenterrors.ErrSupervisorNotInCompany)
	if err != nil {
		return err
	}

	sup := &DepartmentSupervisor{
		ID:           uuid.New(),
		DepartmentID: uuid.MustParse(id),
		EmployeeID:   employeeUUID,
	}
	if err := s.repo.AddSupervisor(ctx, sup); err != nil {
		s.logger.Error("add supervisor persist failed",
			zap.String("department_id", id),
			zap.Error(err),
		)
		return err
	}

	s.logger.Info("department supervisor added",
		zap.String("department_id", id),
		zap.String("employee_id", req.EmployeeID),
	)
	return nil
}

func (s *service) employeeInCompany(ctx context.Context, companyID, employeeID string, notFound error) (uuid.UUID, error) {
	e, err := s.employees.FindByIDAndCompany(ctx, companyID, employeeID)
	if err != nil {
		return uuid.Nil, err
	}
	if e == nil {
		return uuid.Nil, notFound
	}
	return e.ID, nil
}

func mapToResponse(d Department) DepartmentResponse {
	resp := DepartmentResponse{
		ID:        d.ID.String(),
		Name:      d.Name,
		CompanyID: d.CompanyID.String(),
	}
	if d.ManagerID != nil {
		v := d.ManagerID.String()
		resp.ManagerID = &v
	}
	return resp
}
