package audit

import (
	"time"

	"github.com/google/uuid"
)

// NotificationAudit records every notification the system produced, whether
// or not delivery succeeded downstream.
type NotificationAudit struct {
	ID         uuid.UUID `gorm:"type:uuid;primaryKey"`
	CompanyID  uuid.UUID `gorm:"type:uuid;not null;index"`
	EmployeeID uuid.UUID `gorm:"type:uuid;not null;index"`
	Channel    string    `gorm:"size:32;not null"`
	EventType  string    `gorm:"size:64;not null"`
	Subject    string    `gorm:"size:500;not null"`
	Body       string    `gorm:"type:text"`
	CreatedAt  time.Time
}

func (NotificationAudit) TableName() string {
	return "notification_audits"
}
