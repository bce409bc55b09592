package comment

import (
	"time"

	"github.com/google/uuid"
)

// Comment is free text attached to a record, currently only leaves. The
// entity type is kept in the row so other record kinds can be commented on
// without a schema change.
const EntityLeave = "leave"

type Comment struct {
	ID         uuid.UUID `gorm:"type:uuid;primaryKey"`
	CompanyID  uuid.UUID `gorm:"type:uuid;not null;index"`
	EntityType string    `gorm:"size:32;not null"`
	EntityID   uuid.UUID `gorm:"type:uuid;not null;index"`
	AuthorID   uuid.UUID `gorm:"type:uuid;not null"`
	Body       string    `gorm:"type:text;not null"`
	CreatedAt  time.Time
}
