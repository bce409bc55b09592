package employee

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
	Create(ctx context.Context, e *Employee) error
	// FindByIDAndCompany returns (nil, nil) when no such employee exists.
	FindByIDAndCompany(ctx context.Context, companyID, id string) (*Employee, error)
	FindByEmail(ctx context.Context, email string) (*Employee, error)
	FindActiveByCompany(ctx context.Context, companyID string) ([]Employee, error)
	FindActiveByDepartments(ctx context.Context, companyID string, departmentIDs []string) ([]Employee, error)
	SetEndDate(ctx context.Context, companyID, id string, endDate time.Time) error
	// DeleteCascade removes the employee together with every dependent row:
	// leaves, employee-specific schedules, comments, feed tokens, allowance
	// adjustments and notification audits. One enumerated procedure instead of
	// per-model delete hooks, so the set of affected tables is auditable.
	DeleteCascade(ctx context.Context, companyID, id string) error
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

func (r *repository) Create(ctx context.Context, e *Employee) error {
	if r.tx != nil {
		query := `
			INSERT INTO employees (
				id, company_id, department_id, first_name, last_name, email,
				password_hash, start_date, end_date, admin, auto_approve, created_at, updated_at
			) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, now(), now())
		`
		_, err := r.tx.ExecContext(ctx, query,
			e.ID, e.CompanyID, e.DepartmentID, e.FirstName, e.LastName, e.Email,
			e.PasswordHash, e.StartDate, e.EndDate, e.Admin, e.AutoApprove)
		return err
	}
	return r.db.WithContext(ctx).Create(e).Error
}

func (r *repository) FindByIDAndCompany(ctx context.Context, companyID, id string) (*Employee, error) {
	var e Employee
	err := r.db.WithContext(ctx).
		Scopes(tenant.Scope(companyID)).
		First(&e, "id = ?", id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &e, nil
}

func (r *repository) FindByEmail(ctx context.Context, email string) (*Employee, error) {
	var e Employee
	err := r.db.WithContext(ctx).
		Scopes(activeScope()).
		First(&e, "email = ?", email).Error
	return &e, err
}

func (r *repository) FindActiveByCompany(ctx context.Context, companyID string) ([]Employee, error) {
	var employees []Employee
	err := r.db.WithContext(ctx).
		Scopes(tenant.Scope(companyID), activeScope()).
		Order("last_name ASC").
		Find(&employees).Error
	return employees, err
}

func (r *repository) FindActiveByDepartments(ctx context.Context, companyID string, departmentIDs []string) ([]Employee, error) {
	if len(departmentIDs) == 0 {
		return nil, nil
	}
	var employees []Employee
	err := r.db.WithContext(ctx).
		Scopes(tenant.Scope(companyID), activeScope()).
		Where("department_id IN ?", departmentIDs).
		Order("last_name ASC").
		Find(&employees).Error
	return employees, err
}

func (r *repository) SetEndDate(ctx context.Context, companyID, id string, endDate time.Time) error {
	if r.tx != nil {
		query := `UPDATE employees SET end_date = $1, updated_at = now() WHERE id = $2 AND company_id = $3`
		_, err := r.tx.ExecContext(ctx, query, endDate, id, companyID)
		return err
	}
	return r.db.WithContext(ctx).
		Model(&Employee{}).
		Scopes(tenant.Scope(companyID)).
		Where("id = ?", id).
		Update("end_date", endDate).Error
}

func (r *repository) DeleteCascade(ctx context.Context, companyID, id string) error {
	if r.tx == nil {
		return sql.ErrTxDone
	}

	statements := []string{
		`DELETE FROM comments WHERE by_employee_id = $1`,
		`DELETE FROM leaves WHERE employee_id = $1`,
		`DELETE FROM schedules WHERE employee_id = $1`,
		`DELETE FROM feed_tokens WHERE employee_id = $1`,
		`DELETE FROM allowance_adjustments WHERE employee_id = $1`,
		`DELETE FROM notification_audits WHERE employee_id = $1`,
	}
	for _, stmt := range statements {
		if _, err := r.tx.ExecContext(ctx, stmt, id); err != nil {
			return err
		}
	}

	_, err := r.tx.ExecContext(ctx,
		`DELETE FROM employees WHERE id = $1 AND company_id = $2`, id, companyID)
	return err
}

// activeScope keeps employees whose employment has not ended yet.
func activeScope() func(db *gorm.DB) *gorm.DB {
	return func(db *gorm.DB) *gorm.DB {
		return db.Where("end_date IS NULL OR end_date >= CURRENT_DATE")
	}
}
