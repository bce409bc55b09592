package allowance

import (
	"context"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"go-timeoff/internal/authz"
	"go-timeoff/internal/employee"
	"go-timeoff/internal/schedule"

	employeeerrors "go-timeoff/internal/employee/errors"
	leaveerrors "go-timeoff/internal/leave/errors"
)

type Service interface {
	CreateAdjustment(ctx context.Context, companyID, actorID string, req CreateAdjustmentRequest) (AdjustmentResponse, error)
	// GetBalance answers for the employee themselves, or for anyone the
	// actor supervises.
	GetBalance(ctx context.Context, companyID, actorID, employeeID, leaveTypeID string, year int) (BalanceResponse, error)
}

type service struct {
	engine    *Engine
	repo      Repository
	empRepo   employee.Repository
	resolver  schedule.Resolver
	predicate *authz.Predicate
	logger    *zap.Logger
}

func NewService(
	engine *Engine,
	repo Repository,
	empRepo employee.Repository,
	resolver schedule.Resolver,
	predicate *authz.Predicate,
	logger ...*zap.Logger,
) Service {
	l := zap.L().Named("allowance.service")
	if len(logger) > 0 && logger[0] != nil {
		l = logger[0].Named("allowance.service")
	}
	return &service{
		engine:    engine,
		repo:      repo,
		empRepo:   empRepo,
		resolver:  resolver,
		predicate: predicate,
		logger:    l,
	}
}

func (s *service) CreateAdjustment(ctx context.Context, companyID, actorID string, req CreateAdjustmentRequest) (AdjustmentResponse, error) {
	emp, err := s.empRepo.FindByIDAndCompany(ctx, companyID, req.EmployeeID)
	if err != nil {
		return AdjustmentResponse{}, err
	}
	if emp == nil {
		return AdjustmentResponse{}, employeeerrors.ErrEmployeeNotFound
	}

	actorUUID, err := uuid.Parse(actorID)
	if err != nil {
		return AdjustmentResponse{}, err
	}
	leaveTypeUUID, err := uuid.Parse(req.LeaveTypeID)
	if err != nil {
		return AdjustmentResponse{}, err
	}

	adj := &Adjustment{
		ID:          uuid.New(),
		CompanyID:   emp.CompanyID,
		EmployeeID:  emp.ID,
		LeaveTypeID: leaveTypeUUID,
		Year:        req.Year,
		Days:        req.Days,
		Reason:      req.Reason,
		CreatedBy:   &actorUUID,
	}
	if err := s.repo.Create(ctx, adj); err != nil {
		return AdjustmentResponse{}, err
	}

	s.logger.Info("allowance adjusted",
		zap.String("employee_id", req.EmployeeID),
		zap.Int("year", req.Year),
		zap.String("days", req.Days.String()),
	)
	return toAdjustmentResponse(adj), nil
}

func (s *service) GetBalance(ctx context.Context, companyID, actorID, employeeID, leaveTypeID string, year int) (BalanceResponse, error) {
	emp, err := s.empRepo.FindByIDAndCompany(ctx, companyID, employeeID)
	if err != nil {
		return BalanceResponse{}, err
	}
	if emp == nil {
		return BalanceResponse{}, employeeerrors.ErrEmployeeNotFound
	}

	if actorID != employeeID {
		actor, err := s.empRepo.FindByIDAndCompany(ctx, companyID, actorID)
		if err != nil {
			return BalanceResponse{}, err
		}
		if actor == nil {
			return BalanceResponse{}, employeeerrors.ErrEmployeeNotFound
		}
		can, err := s.predicate.CanManage(ctx, actor, emp)
		if err != nil {
			return BalanceResponse{}, err
		}
		if !can {
			return BalanceResponse{}, leaveerrors.ErrNotAuthorizedToDecide
		}
	}

	cache := schedule.NewCache(s.resolver)
	b, err := s.engine.ComputeBalance(ctx, cache, emp, leaveTypeID, year)
	if err != nil {
		return BalanceResponse{}, err
	}
	return toBalanceResponse(leaveTypeID, b), nil
}
