package domain

import (
	"encoding/json"
	"time"
)

type EntryStatus string

const (
	StatusInquiry       EntryStatus = "INQUIRY"
	StatusPending       EntryStatus = "PENDING"
	StatusHoldRequested EntryStatus = "HOLD_REQUESTED"
	StatusHold          EntryStatus = "HOLD"
	StatusConfirmed     EntryStatus = "CONFIRMED"
	StatusDeclined      EntryStatus = "DECLINED"
	StatusCancelled     EntryStatus = "CANCELLED"
)

// ValidStatus reports whether s is one of the closed status vocabulary.
func ValidStatus(s EntryStatus) bool {
	switch s {
	case StatusInquiry, StatusPending, StatusHoldRequested, StatusHold,
		StatusConfirmed, StatusDeclined, StatusCancelled:
		return true
	}
	return false
}

// Terminal reports whether no further negotiation actions exist for s.
// CANCELLED is still reachable from CONFIRMED, so CONFIRMED is not terminal.
func (s EntryStatus) Terminal() bool {
	return s == StatusDeclined || s == StatusCancelled
}

// OnHold reports whether s carries hold fields.
func (s EntryStatus) OnHold() bool {
	return s == StatusHold || s == StatusHoldRequested
}

type Role string

const (
	RoleArtist Role = "artist"
	RoleVenue  Role = "venue"
)

type Billing string

const (
	BillingHeadliner    Billing = "headliner"
	BillingCoHeadliner  Billing = "co-headliner"
	BillingSupport      Billing = "support"
	BillingOpener       Billing = "opener"
	BillingLocalSupport Billing = "local-support"
)

func ValidBilling(b Billing) bool {
	switch b {
	case BillingHeadliner, BillingCoHeadliner, BillingSupport, BillingOpener, BillingLocalSupport:
		return true
	}
	return false
}

// NegotiationSource records which side created the entry.
type NegotiationSource string

const (
	SourceArtistRequest NegotiationSource = "artist_request"
	SourceVenueOffer    NegotiationSource = "venue_offer"
)

// DateEntry is one artist/venue/date negotiation record — the atomic unit
// the booking engine operates on. Dates are calendar dates ("2006-01-02"),
// no time component.
type DateEntry struct {
	ID       string            `json:"id"`
	Date     string            `json:"date"`
	ArtistID int64             `json:"artist_id"`
	VenueID  int64             `json:"venue_id"`
	Source   NegotiationSource `json:"source"`
	Status   EntryStatus       `json:"status"`

	Billing    Billing `json:"billing,omitempty"`
	SetLength  int     `json:"set_length,omitempty"` // minutes
	Deal       *Deal   `json:"deal,omitempty"`
	HoldReason string  `json:"hold_reason,omitempty"`

	// Hold fields are present only while Status is HOLD or HOLD_REQUESTED.
	// Positions for one (artist, date) are dense starting at 1.
	HoldPosition int        `json:"hold_position,omitempty"`
	HeldAt       *time.Time `json:"held_at,omitempty"`
	HeldUntil    *time.Time `json:"held_until,omitempty"`

	// Details is an opaque show-logistics blob (load-in, doors, curfew,
	// capacity, pricing, hospitality, backline). The engine passes it through.
	Details json.RawMessage `json:"details,omitempty"`
	Notes   string          `json:"notes,omitempty"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`

	// Joined for display, not stored on the entry itself.
	ArtistName string `json:"artist_name,omitempty"`
	VenueName  string `json:"venue_name,omitempty"`
}

// ClearHold drops all hold state. Called whenever an entry leaves
// HOLD/HOLD_REQUESTED for any other status.
func (e *DateEntry) ClearHold() {
	e.HoldPosition = 0
	e.HeldAt = nil
	e.HeldUntil = nil
	e.HoldReason = ""
}

// HoldExpired reports whether the entry's hold window has passed.
// The boundary is inclusive: heldUntil == now counts as expired.
func (e *DateEntry) HoldExpired(now time.Time) bool {
	return e.Status.OnHold() && e.HeldUntil != nil && !e.HeldUntil.After(now)
}
