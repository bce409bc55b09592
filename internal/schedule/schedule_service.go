package schedule

import (
	"context"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	scheduleerrors "go-timeoff/internal/schedule/errors"
)

type Service interface {
	// Upsert replaces the company-wide schedule, or the employee override
	// when req.EmployeeID is set.
	Upsert(ctx context.Context, companyID string, req UpsertScheduleRequest) (ScheduleResponse, error)
	RemoveEmployeeOverride(ctx context.Context, employeeID string) error
	ListHolidays(ctx context.Context, companyID string) ([]HolidayResponse, error)
	CreateHoliday(ctx context.Context, companyID string, req CreateHolidayRequest) (HolidayResponse, error)
}

type service struct {
	repo   Repository
	logger *zap.Logger
}

func NewService(repo Repository, logger ...*zap.Logger) Service {
	l := zap.L().Named("schedule.service")
	if len(logger) > 0 && logger[0] != nil {
		l = logger[0].Named("schedule.service")
	}
	return &service{repo: repo, logger: l}
}

func (s *service) Upsert(ctx context.Context, companyID string, req UpsertScheduleRequest) (ScheduleResponse, error) {
	companyUUID, err := uuid.Parse(companyID)
	if err != nil {
		return ScheduleResponse{}, err
	}

	sched := &Schedule{
		ID:        uuid.New(),
		Monday:    req.Monday,
		Tuesday:   req.Tuesday,
		Wednesday: req.Wednesday,
		Thursday:  req.Thursday,
		Friday:    req.Friday,
		Saturday:  req.Saturday,
		Sunday:    req.Sunday,
	}

	if req.EmployeeID != "" {
		employeeUUID, err := uuid.Parse(req.EmployeeID)
		if err != nil {
			return ScheduleResponse{}, err
		}
		// Replace any existing override so an employee never accumulates
		// more than one personal row.
		if err := s.repo.DeleteEmployeeSchedule(ctx, req.EmployeeID); err != nil {
			return ScheduleResponse{}, err
		}
		sched.EmployeeID = &employeeUUID
	} else {
		sched.CompanyID = &companyUUID
	}

	if err := s.repo.Create(ctx, sched); err != nil {
		return ScheduleResponse{}, err
	}

	s.logger.Info("schedule upserted",
		zap.String("company_id", companyID),
		zap.Bool("employee_specific", sched.IsEmployeeSpecific()),
	)
	return toScheduleResponse(sched), nil
}

func (s *service) RemoveEmployeeOverride(ctx context.Context, employeeID string) error {
	return s.repo.DeleteEmployeeSchedule(ctx, employeeID)
}

func (s *service) ListHolidays(ctx context.Context, companyID string) ([]HolidayResponse, error) {
	holidays, err := s.repo.FindHolidays(ctx, companyID)
	if err != nil {
		return nil, err
	}
	out := make([]HolidayResponse, 0, len(holidays))
	for i := range holidays {
		out = append(out, toHolidayResponse(&holidays[i]))
	}
	return out, nil
}

func (s *service) CreateHoliday(ctx context.Context, companyID string, req CreateHolidayRequest) (HolidayResponse, error) {
	companyUUID, err := uuid.Parse(companyID)
	if err != nil {
		return HolidayResponse{}, err
	}
	date, err := time.Parse("2006-01-02", req.Date)
	if err != nil {
		return HolidayResponse{}, scheduleerrors.ErrInvalidHolidayDate
	}

	holiday := &BankHoliday{
		ID:        uuid.New(),
		CompanyID: companyUUID,
		Name:      req.Name,
		Date:      date,
	}
	if err := s.repo.CreateHoliday(ctx, holiday); err != nil {
		return HolidayResponse{}, err
	}
	return toHolidayResponse(holiday), nil
}
