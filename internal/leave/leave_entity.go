package leave

import (
	"time"

	"github.com/google/uuid"
)

// Leave status lifecycle. Stored as small ints, matching the order in which
// a request moves through the system.
const (
	StatusNew          = 1
	StatusApproved     = 2
	StatusRejected     = 3
	StatusPendedRevoke = 4
	StatusCanceled     = 5
	StatusRevoked      = 6
)

// Day parts for the first and last day of a leave.
const (
	DayPartAllDay    = "all_day"
	DayPartMorning   = "morning"
	DayPartAfternoon = "afternoon"
)

type Leave struct {
	ID          uuid.UUID  `gorm:"type:uuid;primaryKey"`
	CompanyID   uuid.UUID  `gorm:"type:uuid;not null;index"`
	EmployeeID  uuid.UUID  `gorm:"type:uuid;not null;index"`
	ApproverID  *uuid.UUID `gorm:"type:uuid"`
	LeaveTypeID uuid.UUID  `gorm:"type:uuid;not null;index"`

	Status int `gorm:"not null;default:1"`

	DateStart    time.Time `gorm:"type:date;not null"`
	DateEnd      time.Time `gorm:"type:date;not null"`
	DayPartStart string    `gorm:"size:16;not null;default:'all_day'"`
	DayPartEnd   string    `gorm:"size:16;not null;default:'all_day'"`

	EmployeeComment string `gorm:"type:text"`
	ApproverComment string `gorm:"type:text"`

	DecidedAt *time.Time
	CreatedAt time.Time
	UpdatedAt time.Time
}

// CountsTowardConsumption reports whether this leave eats into the yearly
// allowance. Pending and approved leaves both count so an employee cannot
// double-book the same days while a request is in flight.
func (l *Leave) CountsTowardConsumption() bool {
	switch l.Status {
	case StatusNew, StatusApproved, StatusPendedRevoke:
		return true
	default:
		return false
	}
}

// Blocks reports whether this leave occupies its dates for overlap checks.
func (l *Leave) Blocks() bool {
	return l.CountsTowardConsumption()
}

func StatusName(status int) string {
	switch status {
	case StatusNew:
		return "new"
	case StatusApproved:
		return "approved"
	case StatusRejected:
		return "rejected"
	case StatusPendedRevoke:
		return "pended_revoke"
	case StatusCanceled:
		return "canceled"
	case StatusRevoked:
		return "revoked"
	default:
		return "unknown"
	}
}

func ValidDayPart(part string) bool {
	switch part {
	case DayPartAllDay, DayPartMorning, DayPartAfternoon:
		return true
	default:
		return false
	}
}
