package auth

import (
	"context"

	"gigboard/internal/domain"
)

type AccountRepository interface {
	Create(ctx context.Context, a *domain.Account) error
	GetByEmail(ctx context.Context, email string) (*domain.Account, error)
}

type ArtistRepository interface {
	Create(ctx context.Context, a *domain.Artist) error
}

type VenueRepository interface {
	Create(ctx context.Context, v *domain.Venue) error
}

type TokenIssuer interface {
	GenerateToken(accountID int64, role string, partyID int64) (string, error)
}
