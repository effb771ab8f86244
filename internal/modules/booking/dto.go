package booking

import (
	"encoding/json"

	"gigboard/internal/domain"
)

type CreateDateRequest struct {
	Date      string          `json:"date" binding:"required"`
	ArtistID  int64           `json:"artist_id"`
	VenueID   int64           `json:"venue_id"`
	Billing   string          `json:"billing"`
	SetLength int             `json:"set_length"`
	Deal      *domain.Deal    `json:"deal"`
	Details   json.RawMessage `json:"details"`
	Notes     string          `json:"notes"`
}

// ActionRequest moves an entry through the state machine. Exactly one of
// Action or Status must be set; Status is resolved to the matching legal
// action before the transition runs. Updated terms may ride along and land
// atomically with the status change.
type ActionRequest struct {
	Action string `json:"action"`
	Status string `json:"status"`
	Note   string `json:"note"`

	Deal      *domain.Deal    `json:"deal"`
	Billing   *string         `json:"billing"`
	SetLength *int            `json:"set_length"`
	Details   json.RawMessage `json:"details"`

	// request_hold / approve_hold only.
	HoldReason string `json:"hold_reason"`
	HoldDays   int    `json:"hold_days"`
}

type UpdateDateRequest struct {
	Deal      *domain.Deal    `json:"deal"`
	Billing   *string         `json:"billing"`
	SetLength *int            `json:"set_length"`
	Details   json.RawMessage `json:"details"`
	Note      string          `json:"note"`
}

type PayoutRequest struct {
	Revenue float64 `json:"revenue" binding:"required"`
}

type EntryResponse struct {
	Entry   *domain.DateEntry `json:"entry"`
	Terms   string            `json:"terms"`
	Actions []ActionOption    `json:"actions"`
}

func toEntryResponse(e *domain.DateEntry, viewer Viewer) EntryResponse {
	return EntryResponse{
		Entry:   e,
		Terms:   e.Deal.Format(),
		Actions: AvailableActions(e.Status, viewer.Role),
	}
}
