package booking

import "gigboard/internal/domain"

// Action is the closed vocabulary of negotiation moves. The wire accepts
// exactly these strings and nothing else.
type Action string

const (
	ActionPropose       Action = "propose"
	ActionPass          Action = "pass"
	ActionAccept        Action = "accept"
	ActionDecline       Action = "decline"
	ActionRequestHold   Action = "request_hold"
	ActionCancelRequest Action = "cancel_request"
	ActionApproveHold   Action = "approve_hold"
	ActionDenyHold      Action = "deny_hold"
	ActionReleaseHold   Action = "release_hold"
	ActionWithdraw      Action = "withdraw"
	ActionCancel        Action = "cancel"
)

// ActionOption pairs a legal action with the status it transitions to.
type ActionOption struct {
	Action Action             `json:"action"`
	Next   domain.EntryStatus `json:"next_status"`
}

// AvailableActions returns the ordered action menu for one side of the
// negotiation at a given status. The menu is role-asymmetric: the side that
// does not hold the ball can only react. Every (status, role) combination is
// enumerated here; extending the status set without updating this switch is
// a bug this function's tests catch.
func AvailableActions(status domain.EntryStatus, role domain.Role) []ActionOption {
	switch status {
	case domain.StatusInquiry:
		if role == domain.RoleVenue {
			return []ActionOption{
				{ActionPropose, domain.StatusPending},
				{ActionPass, domain.StatusDeclined},
			}
		}
		return nil

	case domain.StatusPending:
		if role == domain.RoleArtist {
			return []ActionOption{
				{ActionAccept, domain.StatusConfirmed},
				{ActionDecline, domain.StatusDeclined},
				{ActionRequestHold, domain.StatusHoldRequested},
			}
		}
		return []ActionOption{
			{ActionWithdraw, domain.StatusCancelled},
		}

	case domain.StatusHoldRequested:
		if role == domain.RoleArtist {
			return []ActionOption{
				{ActionCancelRequest, domain.StatusPending},
			}
		}
		return []ActionOption{
			{ActionApproveHold, domain.StatusHold},
			{ActionDenyHold, domain.StatusPending},
		}

	case domain.StatusHold:
		if role == domain.RoleArtist {
			return []ActionOption{
				{ActionAccept, domain.StatusConfirmed},
				{ActionDecline, domain.StatusDeclined},
				{ActionReleaseHold, domain.StatusPending},
			}
		}
		return nil

	case domain.StatusConfirmed:
		return []ActionOption{
			{ActionCancel, domain.StatusCancelled},
		}

	case domain.StatusDeclined, domain.StatusCancelled:
		return nil

	default:
		return nil
	}
}

// resolveAction validates an attempted action against the menu and returns
// the resulting status.
func resolveAction(status domain.EntryStatus, role domain.Role, action Action) (domain.EntryStatus, error) {
	for _, opt := range AvailableActions(status, role) {
		if opt.Action == action {
			return opt.Next, nil
		}
	}
	return "", ErrInvalidTransition
}

// resolveActionTo finds the action that moves status to target for the
// given role. The mutation surface accepts either an action name or an
// explicit target status; both funnel through the same menu.
func resolveActionTo(status domain.EntryStatus, role domain.Role, target domain.EntryStatus) (Action, error) {
	for _, opt := range AvailableActions(status, role) {
		if opt.Next == target {
			return opt.Action, nil
		}
	}
	return "", ErrInvalidTransition
}

// ValidAction reports whether a is part of the wire vocabulary at all,
// regardless of current status.
func ValidAction(a Action) bool {
	switch a {
	case ActionPropose, ActionPass, ActionAccept, ActionDecline,
		ActionRequestHold, ActionCancelRequest, ActionApproveHold,
		ActionDenyHold, ActionReleaseHold, ActionWithdraw, ActionCancel:
		return true
	}
	return false
}
