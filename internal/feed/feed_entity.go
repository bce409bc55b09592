package feed

import (
	"time"

	"github.com/google/uuid"
)

// Feed kinds. Each employee holds at most one token per kind; rotating a
// token invalidates the previous URL.
const (
	TypeCalendar    = "calendar"
	TypeTeamView    = "teamview"
	TypeAnniversary = "anniversary"
)

type Token struct {
	ID         uuid.UUID `gorm:"type:uuid;primaryKey"`
	CompanyID  uuid.UUID `gorm:"type:uuid;not null;index"`
	EmployeeID uuid.UUID `gorm:"type:uuid;not null;index"`
	Type       string    `gorm:"size:16;not null"`
	Token      string    `gorm:"size:64;not null;uniqueIndex"`
	CreatedAt  time.Time
}

func (Token) TableName() string {
	return "feed_tokens"
}

func ValidType(t string) bool {
	switch t {
	case TypeCalendar, TypeTeamView, TypeAnniversary:
		return true
	default:
		return false
	}
}
