package audit

import (
	"context"

	"gorm.io/gorm"

	"go-timeoff/internal/tenant"
)

type Repository interface {
	Create(ctx context.Context, a *NotificationAudit) error
	FindByCompany(ctx context.Context, companyID string, limit, offset int) ([]NotificationAudit, int64, error)
}

type repository struct {
	db *gorm.DB
}

func NewRepository(db *gorm.DB) Repository {
	return &repository{db: db}
}

func (r *repository) Create(ctx context.Context, a *NotificationAudit) error {
	return r.db.WithContext(ctx).Create(a).Error
}

func (r *repository) FindByCompany(ctx context.Context, companyID string, limit, offset int) ([]NotificationAudit, int64, error) {
	var total int64
	if err := r.db.WithContext(ctx).
		Model(&NotificationAudit{}).
		Scopes(tenant.Scope(companyID)).
		Count(&total).Error; err != nil {
		return nil, 0, err
	}

	var audits []NotificationAudit
	err := r.db.WithContext(ctx).
		Scopes(tenant.Scope(companyID)).
		Order("created_at DESC").
		Limit(limit).
		Offset(offset).
		Find(&audits).Error
	return audits, total, err
}
