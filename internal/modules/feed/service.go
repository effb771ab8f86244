package feed

import (
	"context"

	"gigboard/internal/domain"
	"gigboard/internal/modules/booking"
)

// EntryEvent is pushed to both parties whenever a negotiation commits a
// change. It carries enough for a client to refresh the affected group.
type EntryEvent struct {
	Type    string             `json:"type"`
	EntryID string             `json:"entry_id"`
	Date    string             `json:"date"`
	Status  domain.EntryStatus `json:"status"`
	Action  string             `json:"action,omitempty"`
}

// Service implements the booking engine's EventSender over the hub.
// Delivery is best-effort; offline parties simply miss the push and see
// the change on their next query.
type Service struct {
	hub *Hub
}

func NewService(hub *Hub) *Service {
	return &Service{hub: hub}
}

func (s *Service) NotifyEntryChanged(_ context.Context, e *domain.DateEntry, action booking.Action) error {
	event := EntryEvent{
		Type:    "entry_changed",
		EntryID: e.ID,
		Date:    e.Date,
		Status:  e.Status,
		Action:  string(action),
	}
	_ = s.hub.SendToParty(domain.RoleArtist, e.ArtistID, event)
	_ = s.hub.SendToParty(domain.RoleVenue, e.VenueID, event)
	return nil
}
