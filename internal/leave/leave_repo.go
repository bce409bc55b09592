package leave

import (
	"context"
	"database/sql"
	"errors"
	"time"

	"gorm.io/gorm"

	"go-timeoff/internal/tenant"
)

type Repository interface {
	WithTx(tx *sql.Tx) Repository
	Create(ctx context.Context, l *Leave) error
	FindByIDAndCompany(ctx context.Context, companyID, id string) (*Leave, error)
	FindByEmployee(ctx context.Context, employeeID string) ([]Leave, error)
	// FindBlockingOverlaps returns leaves of the employee that still occupy
	// dates (new, approved or pended revoke) and intersect [from, to].
	FindBlockingOverlaps(ctx context.Context, employeeID string, from, to time.Time) ([]Leave, error)
	// FindConsumingByType returns the employee's allowance-consuming leaves
	// of one type intersecting [from, to].
	FindConsumingByType(ctx context.Context, employeeID, leaveTypeID string, from, to time.Time) ([]Leave, error)
	FindByEmployeesWithin(ctx context.Context, employeeIDs []string, from, to time.Time) ([]Leave, error)
	FindByEmployeesAndStatus(ctx context.Context, employeeIDs []string, status int) ([]Leave, error)
	FindByCompanyWithin(ctx context.Context, companyID string, from, to time.Time) ([]Leave, error)
	UpdateDecision(ctx context.Context, l *Leave) error
}

type repository struct {
	db *gorm.DB
	tx *sql.Tx
}

func NewRepository(db *gorm.DB) Repository {
	return &repository{db: db}
}

func (r *repository) WithTx(tx *sql.Tx) Repository {
	return &repository{db: r.db, tx: tx}
}

func (r *repository) Create(ctx context.Context, l *Leave) error {
	if r.tx != nil {
		query := `
			INSERT INTO leaves (
				id, company_id, employee_id, approver_id, leave_type_id, status,
				date_start, date_end, day_part_start, day_part_end,
				employee_comment, approver_comment, decided_at, created_at, updated_at
			) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, now(), now())
		`
		_, err := r.tx.ExecContext(ctx, query,
			l.ID, l.CompanyID, l.EmployeeID, l.ApproverID, l.LeaveTypeID, l.Status,
			l.DateStart, l.DateEnd, l.DayPartStart, l.DayPartEnd,
			l.EmployeeComment, l.ApproverComment, l.DecidedAt)
		return err
	}
	return r.db.WithContext(ctx).Create(l).Error
}

func (r *repository) FindByIDAndCompany(ctx context.Context, companyID, id string) (*Leave, error) {
	var l Leave
	err := r.db.WithContext(ctx).
		Scopes(tenant.Scope(companyID)).
		Where("id = ?", id).
		First(&l).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &l, nil
}

func (r *repository) FindByEmployee(ctx context.Context, employeeID string) ([]Leave, error) {
	var leaves []Leave
	err := r.db.WithContext(ctx).
		Where("employee_id = ?", employeeID).
		Order("date_start DESC").
		Find(&leaves).Error
	return leaves, err
}

func blockingStatuses() []int {
	return []int{StatusNew, StatusApproved, StatusPendedRevoke}
}

func (r *repository) FindBlockingOverlaps(ctx context.Context, employeeID string, from, to time.Time) ([]Leave, error) {
	var leaves []Leave
	err := r.db.WithContext(ctx).
		Where("employee_id = ?", employeeID).
		Where("status IN ?", blockingStatuses()).
		Where("date_start <= ? AND date_end >= ?", to, from).
		Find(&leaves).Error
	return leaves, err
}

func (r *repository) FindConsumingByType(ctx context.Context, employeeID, leaveTypeID string, from, to time.Time) ([]Leave, error) {
	var leaves []Leave
	err := r.db.WithContext(ctx).
		Where("employee_id = ? AND leave_type_id = ?", employeeID, leaveTypeID).
		Where("status IN ?", blockingStatuses()).
		Where("date_start <= ? AND date_end >= ?", to, from).
		Order("date_start ASC").
		Find(&leaves).Error
	return leaves, err
}

func (r *repository) FindByEmployeesWithin(ctx context.Context, employeeIDs []string, from, to time.Time) ([]Leave, error) {
	if len(employeeIDs) == 0 {
		return nil, nil
	}
	var leaves []Leave
	err := r.db.WithContext(ctx).
		Where("employee_id IN ?", employeeIDs).
		Where("status IN ?", blockingStatuses()).
		Where("date_start <= ? AND date_end >= ?", to, from).
		Order("date_start ASC").
		Find(&leaves).Error
	return leaves, err
}

func (r *repository) FindByEmployeesAndStatus(ctx context.Context, employeeIDs []string, status int) ([]Leave, error) {
	if len(employeeIDs) == 0 {
		return nil, nil
	}
	var leaves []Leave
	err := r.db.WithContext(ctx).
		Where("employee_id IN ?", employeeIDs).
		Where("status = ?", status).
		Order("created_at ASC").
		Find(&leaves).Error
	return leaves, err
}

func (r *repository) FindByCompanyWithin(ctx context.Context, companyID string, from, to time.Time) ([]Leave, error) {
	var leaves []Leave
	err := r.db.WithContext(ctx).
		Scopes(tenant.Scope(companyID)).
		Where("date_start <= ? AND date_end >= ?", to, from).
		Order("date_start ASC").
		Find(&leaves).Error
	return leaves, err
}

func (r *repository) UpdateDecision(ctx context.Context, l *Leave) error {
	if r.tx != nil {
		query := `
			UPDATE leaves
			SET status = $1, approver_id = $2, approver_comment = $3,
			    decided_at = $4, updated_at = now()
			WHERE id = $5
		`
		_, err := r.tx.ExecContext(ctx, query,
			l.Status, l.ApproverID, l.ApproverComment, l.DecidedAt, l.ID)
		return err
	}
	return r.db.WithContext(ctx).Model(l).
		Select("status", "approver_id", "approver_comment", "decided_at").
		Updates(l).Error
}
