package comment

import (
	"context"

	"gorm.io/gorm"
)

type Repository interface {
	Create(ctx context.Context, c *Comment) error
	FindByEntity(ctx context.Context, entityType, entityID string) ([]Comment, error)
	// FindByEntities returns comments for many records at once, keyed by
	// entity id. Used when reports enrich whole result sets.
	FindByEntities(ctx context.Context, entityType string, entityIDs []string) (map[string][]Comment, error)
}

type repository struct {
	db *gorm.DB
}

func NewRepository(db *gorm.DB) Repository {
	return &repository{db: db}
}

func (r *repository) Create(ctx context.Context, c *Comment) error {
	return r.db.WithContext(ctx).Create(c).Error
}

func (r *repository) FindByEntity(ctx context.Context, entityType, entityID string) ([]Comment, error) {
	var comments []Comment
	err := r.db.WithContext(ctx).
		Where("entity_type = ? AND entity_id = ?", entityType, entityID).
		Order("created_at ASC").
		Find(&comments).Error
	return comments, err
}

func (r *repository) FindByEntities(ctx context.Context, entityType string, entityIDs []string) (map[string][]Comment, error) {
	if len(entityIDs) == 0 {
		return map[string][]Comment{}, nil
	}
	var comments []Comment
	err := r.db.WithContext(ctx).
		Where("entity_type = ? AND entity_id IN ?", entityType, entityIDs).
		Order("created_at ASC").
		Find(&comments).Error
	if err != nil {
		return nil, err
	}

	out := make(map[string][]Comment, len(entityIDs))
	for _, c := range comments {
		key := c.EntityID.String()
		out[key] = append(out[key], c)
	}
	return out, nil
}
