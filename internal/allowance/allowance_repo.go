package allowance

import (
	"context"
	"database/sql"

	"gorm.io/gorm"

	"go-timeoff/internal/tenant"
)

type Repository interface {
	WithTx(tx *sql.Tx) Repository
	Create(ctx context.Context, a *Adjustment) error
	FindForEmployeeYear(ctx context.Context, employeeID, leaveTypeID string, year int) ([]Adjustment, error)
	FindByCompanyYear(ctx context.Context, companyID string, year int) ([]Adjustment, error)
	// HasCarryOver tells whether a carried-over row already exists, so the
	// year-end job can run more than once without doubling balances.
	HasCarryOver(ctx context.Context, employeeID, leaveTypeID string, year int) (bool, error)
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

func (r *repository) Create(ctx context.Context, a *Adjustment) error {
	if r.tx != nil {
		query := `
			INSERT INTO allowance_adjustments (
				id, company_id, employee_id, leave_type_id,
				year, days, carried_over, reason, created_by, created_at
			) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, now())
		`
		_, err := r.tx.ExecContext(ctx, query,
			a.ID, a.CompanyID, a.EmployeeID, a.LeaveTypeID,
			a.Year, a.Days, a.CarriedOver, a.Reason, a.CreatedBy)
		return err
	}
	return r.db.WithContext(ctx).Create(a).Error
}

func (r *repository) FindForEmployeeYear(ctx context.Context, employeeID, leaveTypeID string, year int) ([]Adjustment, error) {
	var adjustments []Adjustment
	err := r.db.WithContext(ctx).
		Where("employee_id = ? AND leave_type_id = ? AND year = ?", employeeID, leaveTypeID, year).
		Order("created_at ASC").
		Find(&adjustments).Error
	return adjustments, err
}

func (r *repository) FindByCompanyYear(ctx context.Context, companyID string, year int) ([]Adjustment, error) {
	var adjustments []Adjustment
	err := r.db.WithContext(ctx).
		Scopes(tenant.Scope(companyID)).
		Where("year = ?", year).
		Find(&adjustments).Error
	return adjustments, err
}

func (r *repository) HasCarryOver(ctx context.Context, employeeID, leaveTypeID string, year int) (bool, error) {
	var count int64
	err := r.db.WithContext(ctx).
		Model(&Adjustment{}).
		Where("employee_id = ? AND leave_type_id = ? AND year = ? AND carried_over = true",
			employeeID, leaveTypeID, year).
		Count(&count).Error
	return count > 0, err
}
