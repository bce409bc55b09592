package schedule

import (
	"time"

	"github.com/google/uuid"
)

// Schedule defines which weekdays count as working days. A row is scoped
// either to a whole company (CompanyID set) or to a single employee
// (EmployeeID set) overriding the company default.
type Schedule struct {
	ID         uuid.UUID  `gorm:"type:uuid;primaryKey"`
	CompanyID  *uuid.UUID `gorm:"type:uuid;index"`
	EmployeeID *uuid.UUID `gorm:"type:uuid;index"`

	Monday    bool `gorm:"not null;default:true"`
	Tuesday   bool `gorm:"not null;default:true"`
	Wednesday bool `gorm:"not null;default:true"`
	Thursday  bool `gorm:"not null;default:true"`
	Friday    bool `gorm:"not null;default:true"`
	Saturday  bool `gorm:"not null;default:false"`
	Sunday    bool `gorm:"not null;default:false"`

	CreatedAt time.Time
	UpdatedAt time.Time
}

func (s *Schedule) IsEmployeeSpecific() bool {
	return s.EmployeeID != nil
}

func (s *Schedule) worksOn(day time.Weekday) bool {
	switch day {
	case time.Monday:
		return s.Monday
	case time.Tuesday:
		return s.Tuesday
	case time.Wednesday:
		return s.Wednesday
	case time.Thursday:
		return s.Thursday
	case time.Friday:
		return s.Friday
	case time.Saturday:
		return s.Saturday
	default:
		return s.Sunday
	}
}

// DefaultFor builds the Mon-Fri company-wide schedule that is synthesized
// when a company has no schedule rows at all.
func DefaultFor(companyID uuid.UUID) *Schedule {
	return &Schedule{
		ID:        uuid.New(),
		CompanyID: &companyID,
		Monday:    true,
		Tuesday:   true,
		Wednesday: true,
		Thursday:  true,
		Friday:    true,
	}
}

// BankHoliday is a company-wide non-working date on top of the weekday mask.
type BankHoliday struct {
	ID        uuid.UUID `gorm:"type:uuid;primaryKey"`
	CompanyID uuid.UUID `gorm:"type:uuid;not null;index"`
	Name      string    `gorm:"size:255;not null"`
	Date      time.Time `gorm:"type:date;not null"`
	CreatedAt time.Time
}
