package leave

import leaveerrors "go-timeoff/internal/leave/errors"

// Action is something an actor does to a leave request.
type Action string

const (
	ActionApprove Action = "approve"
	ActionReject  Action = "reject"
	ActionCancel  Action = "cancel"
	ActionRevoke  Action = "revoke"
)

// nextStatus is the leave state machine. Approving a pended revoke finalizes
// the revocation; rejecting it puts the leave back to approved. Any pair not
// listed here leaves the request untouched.
func nextStatus(action Action, current int) (int, error) {
	switch action {
	case ActionApprove:
		switch current {
		case StatusNew:
			return StatusApproved, nil
		case StatusPendedRevoke:
			return StatusRevoked, nil
		}
	case ActionReject:
		switch current {
		case StatusNew:
			return StatusRejected, nil
		case StatusPendedRevoke:
			return StatusApproved, nil
		}
	case ActionCancel:
		if current == StatusNew {
			return StatusCanceled, nil
		}
	case ActionRevoke:
		if current == StatusApproved {
			return StatusPendedRevoke, nil
		}
	}
	return current, leaveerrors.ErrInvalidTransition
}
