package allowance

import (
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

type CreateAdjustmentRequest struct {
	EmployeeID  string          `json:"employee_id" binding:"required,uuid"`
	LeaveTypeID string          `json:"leave_type_id" binding:"required,uuid"`
	Year        int             `json:"year" binding:"required"`
	Days        decimal.Decimal `json:"days" binding:"required"`
	Reason      string          `json:"reason" binding:"max=500"`
}

type AdjustmentResponse struct {
	ID          uuid.UUID       `json:"id"`
	EmployeeID  uuid.UUID       `json:"employee_id"`
	LeaveTypeID uuid.UUID       `json:"leave_type_id"`
	Year        int             `json:"year"`
	Days        decimal.Decimal `json:"days"`
	CarriedOver bool            `json:"carried_over"`
	Reason      string          `json:"reason,omitempty"`
}

type BalanceResponse struct {
	Year        int             `json:"year"`
	LeaveTypeID string          `json:"leave_type_id"`
	Base        decimal.Decimal `json:"base"`
	CarriedOver decimal.Decimal `json:"carried_over"`
	Adjustments decimal.Decimal `json:"adjustments"`
	Allowance   decimal.Decimal `json:"allowance"`
	Consumed    decimal.Decimal `json:"consumed"`
	Remaining   decimal.Decimal `json:"remaining"`
}

func toAdjustmentResponse(a *Adjustment) AdjustmentResponse {
	return AdjustmentResponse{
		ID:          a.ID,
		EmployeeID:  a.EmployeeID,
		LeaveTypeID: a.LeaveTypeID,
		Year:        a.Year,
		Days:        a.Days,
		CarriedOver: a.CarriedOver,
		Reason:      a.Reason,
	}
}

func toBalanceResponse(leaveTypeID string, b Balance) BalanceResponse {
	return BalanceResponse{
		Year:        b.Year,
		LeaveTypeID: leaveTypeID,
		Base:        b.Base,
		CarriedOver: b.CarriedOver,
		Adjustments: b.Adjustments,
		Allowance:   b.Allowance(),
		Consumed:    b.Consumed,
		Remaining:   b.Remaining,
	}
}
