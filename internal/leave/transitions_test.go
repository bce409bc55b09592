package leave

import (
	"testing"

	"github.com/stretchr/testify/assert"

	leaveerrors "go-timeoff/internal/leave/errors"
)

func TestNextStatus(t *testing.T) {
	cases := []struct {
		name    string
		action  Action
		current int
		want    int
		wantErr bool
	}{
		{"approve new", ActionApprove, StatusNew, StatusApproved, false},
		{"approve pended revoke finalizes revocation", ActionApprove, StatusPendedRevoke, StatusRevoked, false},
		{"approve approved fails", ActionApprove, StatusApproved, StatusApproved, true},
		{"approve rejected fails", ActionApprove, StatusRejected, StatusRejected, true},
		{"reject new", ActionReject, StatusNew, StatusRejected, false},
		{"reject pended revoke restores approval", ActionReject, StatusPendedRevoke, StatusApproved, false},
		{"reject canceled fails", ActionReject, StatusCanceled, StatusCanceled, true},
		{"cancel new", ActionCancel, StatusNew, StatusCanceled, false},
		{"cancel approved fails", ActionCancel, StatusApproved, StatusApproved, true},
		{"revoke approved pends the revocation", ActionRevoke, StatusApproved, StatusPendedRevoke, false},
		{"revoke new fails", ActionRevoke, StatusNew, StatusNew, true},
		{"revoke revoked fails", ActionRevoke, StatusRevoked, StatusRevoked, true},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			got, err := nextStatus(tc.action, tc.current)

			assert.Equal(t, tc.want, got)
			if tc.wantErr {
				assert.ErrorIs(t, err, leaveerrors.ErrInvalidTransition)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}

func TestCountsTowardConsumption(t *testing.T) {
	counting := []int{StatusNew, StatusApproved, StatusPendedRevoke}
	for _, status := range counting {
		l := &Leave{Status: status}
		assert.True(t, l.CountsTowardConsumption(), StatusName(status))
		assert.True(t, l.Blocks(), StatusName(status))
	}

	terminal := []int{StatusRejected, StatusCanceled, StatusRevoked}
	for _, status := range terminal {
		l := &Leave{Status: status}
		assert.False(t, l.CountsTowardConsumption(), StatusName(status))
		assert.False(t, l.Blocks(), StatusName(status))
	}
}
