package report

import (
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

type AllowanceRow struct {
	EmployeeID    uuid.UUID       `json:"employee_id"`
	EmployeeName  string          `json:"employee_name"`
	LeaveTypeID   uuid.UUID       `json:"leave_type_id"`
	LeaveTypeName string          `json:"leave_type_name"`
	Allowance     decimal.Decimal `json:"allowance"`
	Consumed      decimal.Decimal `json:"consumed"`
	Remaining     decimal.Decimal `json:"remaining"`
}

type AllowanceReport struct {
	Year int            `json:"year"`
	Rows []AllowanceRow `json:"rows"`
}

type AbsenceComment struct {
	AuthorID uuid.UUID `json:"author_id"`
	Body     string    `json:"body"`
}

type AbsenceRow struct {
	LeaveID      uuid.UUID        `json:"leave_id"`
	EmployeeID   uuid.UUID        `json:"employee_id"`
	EmployeeName string           `json:"employee_name"`
	LeaveTypeID  uuid.UUID        `json:"leave_type_id"`
	Status       string           `json:"status"`
	DateStart    string           `json:"date_start"`
	DateEnd      string           `json:"date_end"`
	DeductedDays decimal.Decimal  `json:"deducted_days"`
	Comments     []AbsenceComment `json:"comments,omitempty"`
}

type AbsenceReport struct {
	From string       `json:"from"`
	To   string       `json:"to"`
	Rows []AbsenceRow `json:"rows"`
}
