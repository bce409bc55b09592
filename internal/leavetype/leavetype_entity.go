package leavetype

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// LeaveType is a company-defined category of absence, e.g. Holiday or
// Sick Leave.
type LeaveType struct {
	ID        uuid.UUID `gorm:"type:uuid;primaryKey"`
	CompanyID uuid.UUID `gorm:"type:uuid;not null;index"`
	Name      string    `gorm:"size:255;not null"`
	Color     string    `gorm:"size:32;not null;default:'#ffffff'"`

	// UseAllowance marks whether leaves of this type consume the yearly
	// allowance. Sick leave typically does not.
	UseAllowance  bool            `gorm:"not null;default:true"`
	AllowanceDays decimal.Decimal `gorm:"type:numeric(5,1);not null;default:0"`

	// Limit caps how many days of this type can be booked per year;
	// zero means unlimited.
	Limit       int  `gorm:"not null;default:0"`
	AutoApprove bool `gorm:"not null;default:false"`
	SortOrder   int  `gorm:"not null;default:0"`

	CreatedAt time.Time
	UpdatedAt time.Time
	DeletedAt gorm.DeletedAt `gorm:"index"`
}
