package feed

import (
	"context"
	"crypto/rand"
	"encoding/hex"
	"fmt"
	"net/http"
	"time"

	ics "github.com/arran4/golang-ical"
	"github.com/google/uuid"
	"go.uber.org/zap"

	"go-timeoff/internal/authz"
	"go-timeoff/internal/company"
	"go-timeoff/internal/employee"
	"go-timeoff/internal/leave"
	"go-timeoff/internal/schedule"
	"go-timeoff/internal/shared/apperror"

	employeeerrors "go-timeoff/internal/employee/errors"
)

// Times used for ICS events. Halves split a 9-to-5 day at 13:00.
const (
	dayStartHour = 9
	midDayHour   = 13
	dayEndHour   = 17
)

var (
	ErrFeedNotFound = apperror.New(
		apperror.CodeNotFound,
		"feed not found",
		http.StatusNotFound,
	)
	ErrInvalidFeedType = apperror.New(
		apperror.CodeInvalidInput,
		"feed type must be calendar, teamview or anniversary",
		http.StatusBadRequest,
	)
)

type TokenResponse struct {
	Type  string `json:"type"`
	Token string `json:"token"`
	Path  string `json:"path"`
}

type Service interface {
	// Rotate issues a fresh token for the feed type, replacing any
	// previous one.
	Rotate(ctx context.Context, companyID, employeeID, feedType string) (TokenResponse, error)
	// Render resolves a token and produces the ICS document.
	Render(ctx context.Context, token string) (string, error)
}

type service struct {
	repo        Repository
	leaveRepo   leave.Repository
	empRepo     employee.Repository
	companyRepo company.Repository
	schedRepo   schedule.Repository
	resolver    schedule.Resolver
	predicate   *authz.Predicate
	logger      *zap.Logger
}

func NewService(
	repo Repository,
	leaveRepo leave.Repository,
	empRepo employee.Repository,
	companyRepo company.Repository,
	schedRepo schedule.Repository,
	resolver schedule.Resolver,
	predicate *authz.Predicate,
	logger ...*zap.Logger,
) Service {
	l := zap.L().Named("feed.service")
	if len(logger) > 0 && logger[0] != nil {
		l = logger[0].Named("feed.service")
	}
	return &service{
		repo:        repo,
		leaveRepo:   leaveRepo,
		empRepo:     empRepo,
		companyRepo: companyRepo,
		schedRepo:   schedRepo,
		resolver:    resolver,
		predicate:   predicate,
		logger:      l,
	}
}

func (s *service) Rotate(ctx context.Context, companyID, employeeID, feedType string) (TokenResponse, error) {
	if !ValidType(feedType) {
		return TokenResponse{}, ErrInvalidFeedType
	}

	emp, err := s.empRepo.FindByIDAndCompany(ctx, companyID, employeeID)
	if err != nil {
		return TokenResponse{}, err
	}
	if emp == nil {
		return TokenResponse{}, employeeerrors.ErrEmployeeNotFound
	}

	raw := make([]byte, 24)
	if _, err := rand.Read(raw); err != nil {
		return TokenResponse{}, err
	}

	t := &Token{
		ID:         uuid.New(),
		CompanyID:  emp.CompanyID,
		EmployeeID: emp.ID,
		Type:       feedType,
		Token:      hex.EncodeToString(raw),
	}
	if err := s.repo.Upsert(ctx, t); err != nil {
		return TokenResponse{}, err
	}

	s.logger.Info("feed token rotated",
		zap.String("employee_id", employeeID),
		zap.String("type", feedType),
	)
	return TokenResponse{
		Type:  feedType,
		Token: t.Token,
		Path:  fmt.Sprintf("/feeds/%s.ics", t.Token),
	}, nil
}

func (s *service) Render(ctx context.Context, token string) (string, error) {
	t, err := s.repo.FindByToken(ctx, token)
	if err != nil {
		return "", err
	}
	if t == nil {
		return "", ErrFeedNotFound
	}

	comp, err := s.companyRepo.FindByID(ctx, t.CompanyID.String())
	if err != nil {
		return "", err
	}
	emp, err := s.empRepo.FindByIDAndCompany(ctx, t.CompanyID.String(), t.EmployeeID.String())
	if err != nil {
		return "", err
	}
	if emp == nil {
		return "", ErrFeedNotFound
	}

	cal := ics.NewCalendar()
	cal.SetMethod(ics.MethodPublish)
	cal.SetProductId("-//go-timeoff//feeds//EN")

	// Companies publishing holidays only never expose leave data through
	// feeds, whatever the token type.
	if comp.Mode == company.ModeReadonlyHolidays {
		if err := s.addHolidayEvents(ctx, cal, comp); err != nil {
			return "", err
		}
		return cal.Serialize(), nil
	}

	switch t.Type {
	case TypeCalendar:
		err = s.addLeaveEvents(ctx, cal, comp, []employee.Employee{*emp})
	case TypeTeamView:
		var visible []employee.Employee
		visible, err = s.predicate.VisibleEmployees(ctx, emp)
		if err == nil {
			err = s.addLeaveEvents(ctx, cal, comp, visible)
		}
	case TypeAnniversary:
		var visible []employee.Employee
		visible, err = s.predicate.VisibleEmployees(ctx, emp)
		if err == nil {
			addAnniversaryEvents(cal, visible)
		}
	default:
		err = ErrInvalidFeedType
	}
	if err != nil {
		return "", err
	}

	return cal.Serialize(), nil
}

// addLeaveEvents renders every occupied day unit of the employees' leaves in
// a window around today. Mornings run 09:00 to 13:00, afternoons 13:00 to
// 17:00; fully occupied days are emitted as all-day events.
func (s *service) addLeaveEvents(ctx context.Context, cal *ics.Calendar, comp *company.Company, employees []employee.Employee) error {
	now := time.Now().UTC()
	from := now.AddDate(0, -3, 0)
	to := now.AddDate(1, 0, 0)

	ids := make([]string, 0, len(employees))
	names := make(map[string]string, len(employees))
	for _, e := range employees {
		ids = append(ids, e.ID.String())
		names[e.ID.String()] = e.FullName()
	}

	leaves, err := s.leaveRepo.FindByEmployeesWithin(ctx, ids, from, to)
	if err != nil {
		return err
	}

	cache := schedule.NewCache(s.resolver)
	for i := range leaves {
		l := &leaves[i]
		res, err := cache.Resolve(ctx, comp.ID.String(), l.EmployeeID.String())
		if err != nil {
			return err
		}

		summary := names[l.EmployeeID.String()] + " off"
		for unit := range leave.Expand(l, res) {
			uid := fmt.Sprintf("%s-%s@go-timeoff", l.ID, unit.Date.Format("20060102"))
			ev := cal.AddEvent(uid)
			ev.SetDtStampTime(now)
			switch {
			case unit.Morning && unit.Afternoon:
				ev.SetAllDayStartAt(unit.Date)
				ev.SetAllDayEndAt(unit.Date.AddDate(0, 0, 1))
			case unit.Morning:
				ev.SetStartAt(unit.Date.Add(dayStartHour * time.Hour))
				ev.SetEndAt(unit.Date.Add(midDayHour * time.Hour))
			default:
				ev.SetStartAt(unit.Date.Add(midDayHour * time.Hour))
				ev.SetEndAt(unit.Date.Add(dayEndHour * time.Hour))
			}
			ev.SetSummary(summary)
			ev.SetDescription("Status: " + leave.StatusName(l.Status))
		}
	}
	return nil
}

func (s *service) addHolidayEvents(ctx context.Context, cal *ics.Calendar, comp *company.Company) error {
	holidays, err := s.schedRepo.FindHolidays(ctx, comp.ID.String())
	if err != nil {
		return err
	}
	now := time.Now().UTC()
	for _, h := range holidays {
		uid := fmt.Sprintf("holiday-%s@go-timeoff", h.ID)
		ev := cal.AddEvent(uid)
		ev.SetDtStampTime(now)
		ev.SetAllDayStartAt(h.Date)
		ev.SetAllDayEndAt(h.Date.AddDate(0, 0, 1))
		ev.SetSummary(h.Name)
	}
	return nil
}

// addAnniversaryEvents emits one yearly recurring event per employee on
// their start date.
func addAnniversaryEvents(cal *ics.Calendar, employees []employee.Employee) {
	now := time.Now().UTC()
	for _, e := range employees {
		uid := fmt.Sprintf("anniversary-%s@go-timeoff", e.ID)
		ev := cal.AddEvent(uid)
		ev.SetDtStampTime(now)
		ev.SetAllDayStartAt(e.StartDate)
		ev.SetAllDayEndAt(e.StartDate.AddDate(0, 0, 1))
		ev.SetSummary(e.FullName() + " work anniversary")
		ev.AddRrule("FREQ=YEARLY")
	}
}
