package feed

import (
	"context"
	"errors"

	"gorm.io/gorm"
)

type Repository interface {
	Upsert(ctx context.Context, t *Token) error
	FindByToken(ctx context.Context, token string) (*Token, error)
}

type repository struct {
	db *gorm.DB
}

func NewRepository(db *gorm.DB) Repository {
	return &repository{db: db}
}

// Upsert replaces the employee's existing token of the same type.
func (r *repository) Upsert(ctx context.Context, t *Token) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.
			Where("employee_id = ? AND type = ?", t.EmployeeID, t.Type).
			Delete(&Token{}).Error; err != nil {
			return err
		}
		return tx.Create(t).Error
	})
}

func (r *repository) FindByToken(ctx context.Context, token string) (*Token, error) {
	var t Token
	err := r.db.WithContext(ctx).Where("token = ?", token).First(&t).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &t, nil
}
