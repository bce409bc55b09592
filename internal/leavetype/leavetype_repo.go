package leavetype

import (
	"context"
	"database/sql"
	"errors"

	"gorm.io/gorm"

	"go-timeoff/internal/tenant"
)

type Repository interface {
	WithTx(tx *sql.Tx) Repository
	Create(ctx context.Context, lt *LeaveType) error
	FindByIDAndCompany(ctx context.Context, companyID, id string) (*LeaveType, error)
	FindAllByCompany(ctx context.Context, companyID string) ([]LeaveType, error)
	Update(ctx context.Context, lt *LeaveType) error
	Delete(ctx context.Context, companyID, id string) error
	CountLeaves(ctx context.Context, id string) (int64, error)
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

func (r *repository) Create(ctx context.Context, lt *LeaveType) error {
	if r.tx != nil {
		query := `
			INSERT INTO leave_types (
				id, company_id, name, color, use_allowance, allowance_days,
				"limit", auto_approve, sort_order, created_at, updated_at
			) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, now(), now())
		`
		_, err := r.tx.ExecContext(ctx, query,
			lt.ID, lt.CompanyID, lt.Name, lt.Color, lt.UseAllowance,
			lt.AllowanceDays, lt.Limit, lt.AutoApprove, lt.SortOrder)
		return err
	}
	return r.db.WithContext(ctx).Create(lt).Error
}

func (r *repository) FindByIDAndCompany(ctx context.Context, companyID, id string) (*LeaveType, error) {
	var lt LeaveType
	err := r.db.WithContext(ctx).
		Scopes(tenant.Scope(companyID)).
		Where("id = ?", id).
		First(&lt).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &lt, nil
}

func (r *repository) FindAllByCompany(ctx context.Context, companyID string) ([]LeaveType, error) {
	var types []LeaveType
	err := r.db.WithContext(ctx).
		Scopes(tenant.Scope(companyID)).
		Order("sort_order ASC, name ASC").
		Find(&types).Error
	return types, err
}

func (r *repository) Update(ctx context.Context, lt *LeaveType) error {
	return r.db.WithContext(ctx).Save(lt).Error
}

func (r *repository) Delete(ctx context.Context, companyID, id string) error {
	return r.db.WithContext(ctx).
		Scopes(tenant.Scope(companyID)).
		Where("id = ?", id).
		Delete(&LeaveType{}).Error
}

func (r *repository) CountLeaves(ctx context.Context, id string) (int64, error) {
	var count int64
	err := r.db.WithContext(ctx).
		Table("leaves").
		Where("leave_type_id = ?", id).
		Count(&count).Error
	return count, err
}
