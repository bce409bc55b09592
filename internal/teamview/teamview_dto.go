package teamview

import (
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// CellLeave marks one half of a day as covered by a leave.
type CellLeave struct {
	LeaveID     uuid.UUID `json:"leave_id"`
	LeaveTypeID uuid.UUID `json:"leave_type_id"`
	Status      string    `json:"status"`
}

type DayCell struct {
	Date      string     `json:"date"`
	Working   bool       `json:"working"`
	Morning   *CellLeave `json:"morning,omitempty"`
	Afternoon *CellLeave `json:"afternoon,omitempty"`
}

type Row struct {
	EmployeeID   uuid.UUID       `json:"employee_id"`
	Name         string          `json:"name"`
	DepartmentID uuid.UUID       `json:"department_id"`
	Days         []DayCell       `json:"days"`
	DaysOff      decimal.Decimal `json:"days_off"`
}

type MonthView struct {
	Month string `json:"month"`
	Rows  []Row  `json:"rows"`
}
