package events

import "time"

const LeaveLifecycleTopic = "timeoff.leave.lifecycle.v1"

// Event types carried on the leave lifecycle topic.
const (
	LeaveRequested    = "leave_requested"
	LeaveApproved     = "leave_approved"
	LeaveRejected     = "leave_rejected"
	LeaveCanceled     = "leave_canceled"
	LeavePendedRevoke = "leave_pended_revoke"
	LeaveRevoked      = "leave_revoked"
)

type LeaveLifecycleEvent struct {
	EventType  string    `json:"event_type"`
	LeaveID    string    `json:"leave_id"`
	CompanyID  string    `json:"company_id"`
	EmployeeID string    `json:"employee_id"`
	ActorID    string    `json:"actor_id"`
	Status     string    `json:"status"`
	DateStart  string    `json:"date_start"`
	DateEnd    string    `json:"date_end"`
	OccurredAt time.Time `json:"occurred_at"`
}
