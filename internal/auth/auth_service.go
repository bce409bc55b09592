package auth

import (
	"context"
	"database/sql"
	"errors"
	"os"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"

	"go-timeoff/internal/company"
	"go-timeoff/internal/department"
	"go-timeoff/internal/employee"
	"go-timeoff/internal/leavetype"
	"go-timeoff/internal/schedule"

	autherrors "go-timeoff/internal/auth/errors"
)

// Roles encoded in the access token. The role is recomputed at login from
// the employee record, never stored.
const (
	RoleAdmin      = "admin"
	RoleSupervisor = "supervisor"
	RoleEmployee   = "employee"
)

const (
	accessTokenTTL  = 15 * time.Minute
	refreshTokenTTL = 7 * 24 * time.Hour
)

type Service interface {
	// Register provisions a whole company: the company row, a General
	// department, the admin account, a Mon-Fri schedule and the two
	// starter leave types.
	Register(ctx context.Context, req RegisterRequest) (AuthResponse, error)
	Login(ctx context.Context, req LoginRequest) (accessToken, refreshToken string, resp AuthResponse, err error)
	Refresh(ctx context.Context, refreshToken string) (newAccess, newRefresh string, resp AuthResponse, err error)
	GetMe(ctx context.Context, companyID, employeeID string) (AuthResponse, error)
}

type service struct {
	db          *sql.DB
	empRepo     employee.Repository
	companyRepo company.Repository
	deptRepo    department.Repository
	typeRepo    leavetype.Repository
	schedRepo   schedule.Repository
	logger      *zap.Logger
}

func NewService(
	db *sql.DB,
	empRepo employee.Repository,
	companyRepo company.Repository,
	deptRepo department.Repository,
	typeRepo leavetype.Repository,
	schedRepo schedule.Repository,
	logger ...*zap.Logger,
) Service {
	l := zap.L().Named("auth.service")
	if len(logger) > 0 && logger[0] != nil {
		l = logger[0].Named("auth.service")
	}
	return &service{
		db:          db,
		empRepo:     empRepo,
		companyRepo: companyRepo,
		deptRepo:    deptRepo,
		typeRepo:    typeRepo,
		schedRepo:   schedRepo,
		logger:      l,
	}
}

func (s *service) Register(ctx context.Context, req RegisterRequest) (AuthResponse, error) {
	if _, err := s.empRepo.FindByEmail(ctx, req.Email); err == nil {
		return AuthResponse{}, autherrors.ErrEmailAlreadyRegistered
	} else if !errors.Is(err, gorm.ErrRecordNotFound) {
		return AuthResponse{}, err
	}

	hashed, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)
	if err != nil {
		return AuthResponse{}, err
	}

	timezone := req.Timezone
	if timezone == "" {
		timezone = "UTC"
	}

	comp := &company.Company{
		ID:               uuid.New(),
		Name:             req.CompanyName,
		Timezone:         timezone,
		Mode:             company.ModeNormal,
		DateFormat:       "2006-01-02",
		CarryOverCapDays: decimal.NewFromInt(5),
	}
	dept := &department.Department{
		ID:        uuid.New(),
		Name:      "General",
		CompanyID: comp.ID,
	}
	admin := &employee.Employee{
		ID:           uuid.New(),
		CompanyID:    comp.ID,
		DepartmentID: dept.ID,
		FirstName:    req.FirstName,
		LastName:     req.LastName,
		Email:        req.Email,
		PasswordHash: string(hashed),
		StartDate:    time.Now().UTC().Truncate(24 * time.Hour),
		Admin:        true,
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return AuthResponse{}, err
	}
	defer tx.Rollback()

	if err := s.companyRepo.WithTx(tx).Create(ctx, comp); err != nil {
		return AuthResponse{}, err
	}
	if err := s.deptRepo.WithTx(tx).Create(ctx, dept); err != nil {
		return AuthResponse{}, err
	}
	if err := s.empRepo.WithTx(tx).Create(ctx, admin); err != nil {
		return AuthResponse{}, err
	}
	if err := s.deptRepo.WithTx(tx).SetManager(ctx, comp.ID.String(), dept.ID.String(), admin.ID); err != nil {
		return AuthResponse{}, err
	}
	if err := s.schedRepo.WithTx(tx).Create(ctx, schedule.DefaultFor(comp.ID)); err != nil {
		return AuthResponse{}, err
	}

	for _, lt := range starterLeaveTypes(comp.ID) {
		if err := s.typeRepo.WithTx(tx).Create(ctx, lt); err != nil {
			return AuthResponse{}, err
		}
	}

	if err := tx.Commit(); err != nil {
		return AuthResponse{}, err
	}

	s.logger.Info("company registered",
		zap.String("company_id", comp.ID.String()),
		zap.String("admin_id", admin.ID.String()),
	)

	return AuthResponse{
		EmployeeID: admin.ID.String(),
		CompanyID:  comp.ID.String(),
		Email:      admin.Email,
		Name:       admin.FullName(),
		Role:       RoleAdmin,
	}, nil
}

func starterLeaveTypes(companyID uuid.UUID) []*leavetype.LeaveType {
	return []*leavetype.LeaveType{
		{
			ID:            uuid.New(),
			CompanyID:     companyID,
			Name:          "Holiday",
			Color:         "#22aa66",
			UseAllowance:  true,
			AllowanceDays: decimal.NewFromInt(20),
			SortOrder:     1,
		},
		{
			ID:            uuid.New(),
			CompanyID:     companyID,
			Name:          "Sick Leave",
			Color:         "#aa6622",
			UseAllowance:  false,
			AllowanceDays: decimal.Zero,
			SortOrder:     2,
		},
	}
}

func (s *service) Login(ctx context.Context, req LoginRequest) (string, string, AuthResponse, error) {
	emp, err := s.empRepo.FindByEmail(ctx, req.Email)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return "", "", AuthResponse{}, autherrors.ErrInvalidCredentials
		}
		return "", "", AuthResponse{}, err
	}
	if !emp.IsActive(time.Now().UTC()) {
		return "", "", AuthResponse{}, autherrors.ErrAccountInactive
	}

	if err := bcrypt.CompareHashAndPassword([]byte(emp.PasswordHash), []byte(req.Password)); err != nil {
		return "", "", AuthResponse{}, autherrors.ErrInvalidCredentials
	}

	role, err := s.roleOf(ctx, emp)
	if err != nil {
		return "", "", AuthResponse{}, err
	}

	access, err := s.generateToken(emp, role, accessTokenTTL)
	if err != nil {
		return "", "", AuthResponse{}, err
	}
	refresh, err := s.generateToken(emp, role, refreshTokenTTL)
	if err != nil {
		return "", "", AuthResponse{}, err
	}

	return access, refresh, AuthResponse{
		EmployeeID: emp.ID.String(),
		CompanyID:  emp.CompanyID.String(),
		Email:      emp.Email,
		Name:       emp.FullName(),
		Role:       role,
	}, nil
}

func (s *service) Refresh(ctx context.Context, refreshToken string) (string, string, AuthResponse, error) {
	token, err := jwt.Parse(refreshToken, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, autherrors.ErrInvalidToken
		}
		return []byte(os.Getenv("JWT_SECRET")), nil
	})
	if err != nil || !token.Valid {
		return "", "", AuthResponse{}, autherrors.ErrInvalidToken
	}

	claims, ok := token.Claims.(jwt.MapClaims)
	if !ok {
		return "", "", AuthResponse{}, autherrors.ErrInvalidToken
	}
	employeeID, _ := claims["employee_id"].(string)
	companyID, _ := claims["company_id"].(string)
	if employeeID == "" || companyID == "" {
		return "", "", AuthResponse{}, autherrors.ErrInvalidToken
	}

	emp, err := s.empRepo.FindByIDAndCompany(ctx, companyID, employeeID)
	if err != nil {
		return "", "", AuthResponse{}, err
	}
	if emp == nil {
		return "", "", AuthResponse{}, autherrors.ErrInvalidToken
	}
	if !emp.IsActive(time.Now().UTC()) {
		return "", "", AuthResponse{}, autherrors.ErrAccountInactive
	}

	role, err := s.roleOf(ctx, emp)
	if err != nil {
		return "", "", AuthResponse{}, err
	}

	access, err := s.generateToken(emp, role, accessTokenTTL)
	if err != nil {
		return "", "", AuthResponse{}, err
	}
	refresh, err := s.generateToken(emp, role, refreshTokenTTL)
	if err != nil {
		return "", "", AuthResponse{}, err
	}

	return access, refresh, AuthResponse{
		EmployeeID: emp.ID.String(),
		CompanyID:  emp.CompanyID.String(),
		Email:      emp.Email,
		Name:       emp.FullName(),
		Role:       role,
	}, nil
}

func (s *service) GetMe(ctx context.Context, companyID, employeeID string) (AuthResponse, error) {
	emp, err := s.empRepo.FindByIDAndCompany(ctx, companyID, employeeID)
	if err != nil {
		return AuthResponse{}, err
	}
	if emp == nil {
		return AuthResponse{}, autherrors.ErrAccountInactive
	}

	role, err := s.roleOf(ctx, emp)
	if err != nil {
		return AuthResponse{}, err
	}

	return AuthResponse{
		EmployeeID: emp.ID.String(),
		CompanyID:  emp.CompanyID.String(),
		Email:      emp.Email,
		Name:       emp.FullName(),
		Role:       role,
	}, nil
}

func (s *service) roleOf(ctx context.Context, emp *employee.Employee) (string, error) {
	if emp.Admin {
		return RoleAdmin, nil
	}
	deptIDs, err := s.deptRepo.SupervisedDepartmentIDs(ctx, emp.ID.String())
	if err != nil {
		return "", err
	}
	if len(deptIDs) > 0 {
		return RoleSupervisor, nil
	}
	return RoleEmployee, nil
}

func (s *service) generateToken(emp *employee.Employee, role string, ttl time.Duration) (string, error) {
	claims := jwt.MapClaims{
		"employee_id": emp.ID.String(),
		"company_id":  emp.CompanyID.String(),
		"role":        role,
		"exp":         time.Now().Add(ttl).Unix(),
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString([]byte(os.Getenv("JWT_SECRET")))
}
