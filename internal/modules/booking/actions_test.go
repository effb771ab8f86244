package booking

import (
	"testing"

	"gigboard/internal/domain"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAvailableActionsTable(t *testing.T) {
	cases := []struct {
		status domain.EntryStatus
		role   domain.Role
		want   []ActionOption
	}{
		{domain.StatusInquiry, domain.RoleArtist, nil},
		{domain.StatusInquiry, domain.RoleVenue, []ActionOption{
			{ActionPropose, domain.StatusPending},
			{ActionPass, domain.StatusDeclined},
		}},
		{domain.StatusPending, domain.RoleArtist, []ActionOption{
			{ActionAccept, domain.StatusConfirmed},
			{ActionDecline, domain.StatusDeclined},
			{ActionRequestHold, domain.StatusHoldRequested},
		}},
		{domain.StatusPending, domain.RoleVenue, []ActionOption{
			{ActionWithdraw, domain.StatusCancelled},
		}},
		{domain.StatusHoldRequested, domain.RoleArtist, []ActionOption{
			{ActionCancelRequest, domain.StatusPending},
		}},
		{domain.StatusHoldRequested, domain.RoleVenue, []ActionOption{
			{ActionApproveHold, domain.StatusHold},
			{ActionDenyHold, domain.StatusPending},
		}},
		{domain.StatusHold, domain.RoleArtist, []ActionOption{
			{ActionAccept, domain.StatusConfirmed},
			{ActionDecline, domain.StatusDeclined},
			{ActionReleaseHold, domain.StatusPending},
		}},
		{domain.StatusHold, domain.RoleVenue, nil},
		{domain.StatusConfirmed, domain.RoleArtist, []ActionOption{
			{ActionCancel, domain.StatusCancelled},
		}},
		{domain.StatusConfirmed, domain.RoleVenue, []ActionOption{
			{ActionCancel, domain.StatusCancelled},
		}},
		{domain.StatusDeclined, domain.RoleArtist, nil},
		{domain.StatusDeclined, domain.RoleVenue, nil},
		{domain.StatusCancelled, domain.RoleArtist, nil},
		{domain.StatusCancelled, domain.RoleVenue, nil},
	}

	for _, tc := range cases {
		got := AvailableActions(tc.status, tc.role)
		assert.Equal(t, tc.want, got, "status=%s role=%s", tc.status, tc.role)
	}
}

func TestResolveActionRejectsIllegalMove(t *testing.T) {
	// A venue cannot accept; only the artist side can.
	_, err := resolveAction(domain.StatusPending, domain.RoleVenue, ActionAccept)
	assert.ErrorIs(t, err, ErrInvalidTransition)

	// Terminal statuses expose nothing at all.
	_, err = resolveAction(domain.StatusCancelled, domain.RoleArtist, ActionAccept)
	assert.ErrorIs(t, err, ErrInvalidTransition)
}

func TestResolveActionTo(t *testing.T) {
	action, err := resolveActionTo(domain.StatusPending, domain.RoleArtist, domain.StatusConfirmed)
	require.NoError(t, err)
	assert.Equal(t, ActionAccept, action)

	_, err = resolveActionTo(domain.StatusPending, domain.RoleVenue, domain.StatusConfirmed)
	assert.ErrorIs(t, err, ErrInvalidTransition)
}

func TestValidAction(t *testing.T) {
	assert.True(t, ValidAction(ActionRequestHold))
	assert.False(t, ValidAction(Action("shred")))
}
