package company

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

const (
	// ModeReadonlyHolidays marks companies that only publish their holiday
	// calendar; calendar feeds for their employees are disabled.
	ModeNormal           = "normal"
	ModeReadonlyHolidays = "readonly_holidays"
)

type Company struct {
	ID       uuid.UUID `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	Name     string    `gorm:"type:varchar(150);not null"`
	Timezone string    `gorm:"type:varchar(64);not null;default:'UTC'"`
	Mode     string    `gorm:"type:varchar(30);not null;default:'normal'"`

	DateFormat       string          `gorm:"type:varchar(20);not null;default:'2006-01-02'"`
	CarryOverCapDays decimal.Decimal `gorm:"type:numeric(5,1);not null;default:0"`

	CreatedAt time.Time
	UpdatedAt time.Time
	DeletedAt gorm.DeletedAt `gorm:"index"`
}

func (Company) TableName() string {
	return "companies"
}
