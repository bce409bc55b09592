package allowance

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// Adjustment is a signed correction to an employee's yearly allowance for
// one leave type. Carry-over from the previous year is materialized as an
// adjustment row flagged CarriedOver.
type Adjustment struct {
	ID          uuid.UUID `gorm:"type:uuid;primaryKey"`
	CompanyID   uuid.UUID `gorm:"type:uuid;not null;index"`
	EmployeeID  uuid.UUID `gorm:"type:uuid;not null;index"`
	LeaveTypeID uuid.UUID `gorm:"type:uuid;not null;index"`

	Year        int             `gorm:"not null;index"`
	Days        decimal.Decimal `gorm:"type:numeric(5,1);not null"`
	CarriedOver bool            `gorm:"not null;default:false"`
	Reason      string          `gorm:"size:500"`

	CreatedBy *uuid.UUID `gorm:"type:uuid"`
	CreatedAt time.Time
}

func (Adjustment) TableName() string {
	return "allowance_adjustments"
}
