package leave

import (
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

type CreateLeaveRequest struct {
	LeaveTypeID  string `json:"leave_type_id" binding:"required,uuid"`
	DateStart    string `json:"date_start" binding:"required"`
	DateEnd      string `json:"date_end" binding:"required"`
	DayPartStart string `json:"day_part_start"`
	DayPartEnd   string `json:"day_part_end"`
	Comment      string `json:"comment" binding:"max=2000"`
}

type DecisionRequest struct {
	Comment string `json:"comment" binding:"max=2000"`
}

type LeaveResponse struct {
	ID           uuid.UUID       `json:"id"`
	EmployeeID   uuid.UUID       `json:"employee_id"`
	ApproverID   *uuid.UUID      `json:"approver_id,omitempty"`
	LeaveTypeID  uuid.UUID       `json:"leave_type_id"`
	Status       string          `json:"status"`
	DateStart    string          `json:"date_start"`
	DateEnd      string          `json:"date_end"`
	DayPartStart string          `json:"day_part_start"`
	DayPartEnd   string          `json:"day_part_end"`
	Comment      string          `json:"comment,omitempty"`
	DeductedDays decimal.Decimal `json:"deducted_days"`

	// Warning is set when the request was accepted but exceeds the
	// remaining allowance.
	Warning string `json:"warning,omitempty"`

	// Remaining carries the recomputed allowance balance after an approval.
	Remaining *decimal.Decimal `json:"remaining,omitempty"`
}

func toLeaveResponse(l *Leave, deducted decimal.Decimal) LeaveResponse {
	return LeaveResponse{
		ID:           l.ID,
		EmployeeID:   l.EmployeeID,
		ApproverID:   l.ApproverID,
		LeaveTypeID:  l.LeaveTypeID,
		Status:       StatusName(l.Status),
		DateStart:    l.DateStart.Format("2006-01-02"),
		DateEnd:      l.DateEnd.Format("2006-01-02"),
		DayPartStart: l.DayPartStart,
		DayPartEnd:   l.DayPartEnd,
		Comment:      l.EmployeeComment,
		DeductedDays: deducted,
	}
}
