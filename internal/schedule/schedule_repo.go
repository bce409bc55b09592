package schedule

import (
	"context"
	"database/sql"

	"gorm.io/gorm"

	"go-timeoff/internal/tenant"
)

type Repository interface {
	WithTx(tx *sql.Tx) Repository
	// FindForEmployee returns every schedule row that could apply to the
	// employee: the personal override and the company default.
	FindForEmployee(ctx context.Context, companyID, employeeID string) ([]Schedule, error)
	Create(ctx context.Context, s *Schedule) error
	DeleteEmployeeSchedule(ctx context.Context, employeeID string) error
	FindHolidays(ctx context.Context, companyID string) ([]BankHoliday, error)
	CreateHoliday(ctx context.Context, h *BankHoliday) error
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

func (r *repository) FindForEmployee(ctx context.Context, companyID, employeeID string) ([]Schedule, error) {
	var schedules []Schedule
	err := r.db.WithContext(ctx).
		Where("employee_id = ? OR company_id = ?", employeeID, companyID).
		Find(&schedules).Error
	return schedules, err
}

func (r *repository) Create(ctx context.Context, s *Schedule) error {
	if r.tx != nil {
		query := `
			INSERT INTO schedules (
				id, company_id, employee_id,
				monday, tuesday, wednesday, thursday, friday, saturday, sunday,
				created_at, updated_at
			) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, now(), now())
		`
		_, err := r.tx.ExecContext(ctx, query,
			s.ID, s.CompanyID, s.EmployeeID,
			s.Monday, s.Tuesday, s.Wednesday, s.Thursday, s.Friday, s.Saturday, s.Sunday)
		return err
	}
	return r.db.WithContext(ctx).Create(s).Error
}

func (r *repository) DeleteEmployeeSchedule(ctx context.Context, employeeID string) error {
	return r.db.WithContext(ctx).
		Where("employee_id = ?", employeeID).
		Delete(&Schedule{}).Error
}

func (r *repository) FindHolidays(ctx context.Context, companyID string) ([]BankHoliday, error) {
	var holidays []BankHoliday
	err := r.db.WithContext(ctx).
		Scopes(tenant.Scope(companyID)).
		Order("date ASC").
		Find(&holidays).Error
	return holidays, err
}

func (r *repository) CreateHoliday(ctx context.Context, h *BankHoliday) error {
	return r.db.WithContext(ctx).Create(h).Error
}
