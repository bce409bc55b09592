package company

import (
	"context"
	"database/sql"

	"gorm.io/gorm"
)

type Repository interface {
	WithTx(tx *sql.Tx) Repository
	Create(ctx context.Context, c *Company) error
	FindByID(ctx context.Context, id string) (*Company, error)
	FindAll(ctx context.Context) ([]Company, error)
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

func (r *repository) Create(ctx context.Context, c *Company) error {
	if r.tx != nil {
		query := `
			INSERT INTO companies (id, name, timezone, mode, date_format, carry_over_cap_days, created_at, updated_at)
			VALUES ($1, $2, $3, $4, $5, $6, now(), now())
		`
		_, err := r.tx.ExecContext(ctx, query,
			c.ID, c.Name, c.Timezone, c.Mode, c.DateFormat, c.CarryOverCapDays)
		return err
	}
	return r.db.WithContext(ctx).Create(c).Error
}

func (r *repository) FindByID(ctx context.Context, id string) (*Company, error) {
	var c Company
	err := r.db.WithContext(ctx).First(&c, "id = ?", id).Error
	return &c, err
}

func (r *repository) FindAll(ctx context.Context) ([]Company, error) {
	var companies []Company
	err := r.db.WithContext(ctx).Order("name ASC").Find(&companies).Error
	return companies, err
}
