package department

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type Department struct {
	ID        uuid.UUID  `gorm:"type:uuid;primaryKey"`
	Name      string     `gorm:"size:255;not null"`
	CompanyID uuid.UUID  `gorm:"type:uuid;not null;index"`
	ManagerID *uuid.UUID `gorm:"type:uuid"`
	CreatedAt time.Time  `gorm:"autoCreateTime"`
	UpdatedAt time.Time  `gorm:"autoUpdateTime"`
	DeletedAt gorm.DeletedAt `gorm:"index"`
}

// DepartmentSupervisor grants an additional employee approval rights over a
// department, on top of the department manager.
type DepartmentSupervisor struct {
	ID           uuid.UUID `gorm:"type:uuid;primaryKey"`
	DepartmentID uuid.UUID `gorm:"type:uuid;not null;index"`
	EmployeeID   uuid.UUID `gorm:"type:uuid;not null;index"`
	CreatedAt    time.Time
}
