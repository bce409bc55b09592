package leavetype

import (
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

type CreateLeaveTypeRequest struct {
	Name          string          `json:"name" binding:"required,min=1,max=255"`
	Color         string          `json:"color" binding:"omitempty,max=32"`
	UseAllowance  *bool           `json:"use_allowance"`
	AllowanceDays decimal.Decimal `json:"allowance_days"`
	Limit         int             `json:"limit" binding:"omitempty,min=0"`
	AutoApprove   bool            `json:"auto_approve"`
	SortOrder     int             `json:"sort_order"`
}

type UpdateLeaveTypeRequest struct {
	Name          string          `json:"name" binding:"required,min=1,max=255"`
	Color         string          `json:"color" binding:"omitempty,max=32"`
	UseAllowance  *bool           `json:"use_allowance"`
	AllowanceDays decimal.Decimal `json:"allowance_days"`
	Limit         int             `json:"limit" binding:"omitempty,min=0"`
	AutoApprove   bool            `json:"auto_approve"`
	SortOrder     int             `json:"sort_order"`
}

type LeaveTypeResponse struct {
	ID            uuid.UUID       `json:"id"`
	Name          string          `json:"name"`
	Color         string          `json:"color"`
	UseAllowance  bool            `json:"use_allowance"`
	AllowanceDays decimal.Decimal `json:"allowance_days"`
	Limit         int             `json:"limit"`
	AutoApprove   bool            `json:"auto_approve"`
	SortOrder     int             `json:"sort_order"`
}

func toLeaveTypeResponse(lt *LeaveType) LeaveTypeResponse {
	return LeaveTypeResponse{
		ID:            lt.ID,
		Name:          lt.Name,
		Color:         lt.Color,
		UseAllowance:  lt.UseAllowance,
		AllowanceDays: lt.AllowanceDays,
		Limit:         lt.Limit,
		AutoApprove:   lt.AutoApprove,
		SortOrder:     lt.SortOrder,
	}
}
