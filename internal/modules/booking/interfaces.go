package booking

import (
	"context"

	"gigboard/internal/domain"
)

// EntryRepository is the persistence boundary for date entries. The store
// must provide atomic read-modify-write scoped to one (artist, date) sibling
// group: WithGroupTx opens a transaction, locks that group, and runs fn with
// a context whose reads and writes go through the transaction.
type EntryRepository interface {
	WithGroupTx(ctx context.Context, artistID int64, date string, fn func(ctx context.Context) error) error

	GetByID(ctx context.Context, id string) (*domain.DateEntry, error)
	GetSiblings(ctx context.Context, artistID int64, date string) ([]domain.DateEntry, error)
	CountConfirmed(ctx context.Context, artistID int64, date string, excludeID string) (int64, error)

	ListForArtist(ctx context.Context, artistID int64) ([]domain.DateEntry, error)
	ListForVenue(ctx context.Context, venueID int64) ([]domain.DateEntry, error)

	Create(ctx context.Context, e *domain.DateEntry) error
	Update(ctx context.Context, e *domain.DateEntry) error
	Delete(ctx context.Context, id string) error
}

// EventSender pushes negotiation events to interested parties. Delivery is
// best-effort; the engine never retries.
type EventSender interface {
	NotifyEntryChanged(ctx context.Context, e *domain.DateEntry, action Action) error
}
