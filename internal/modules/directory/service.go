package directory

import (
	"context"

	"gigboard/internal/domain"
)

type ArtistRepository interface {
	GetByID(ctx context.Context, id int64) (*domain.Artist, error)
	List(ctx context.Context, limit, offset int) ([]domain.Artist, error)
}

type VenueRepository interface {
	GetByID(ctx context.Context, id int64) (*domain.Venue, error)
	List(ctx context.Context, limit, offset int) ([]domain.Venue, error)
}

// Service is the read-only directory the negotiation surfaces link out to.
// Profile editing and media live elsewhere.
type Service struct {
	artists ArtistRepository
	venues  VenueRepository
}

func NewService(artists ArtistRepository, venues VenueRepository) *Service {
	return &Service{artists: artists, venues: venues}
}

func (s *Service) ListArtists(ctx context.Context, limit, offset int) ([]domain.Artist, error) {
	return s.artists.List(ctx, limit, offset)
}

func (s *Service) GetArtist(ctx context.Context, id int64) (*domain.Artist, error) {
	return s.artists.GetByID(ctx, id)
}

func (s *Service) ListVenues(ctx context.Context, limit, offset int) ([]domain.Venue, error) {
	return s.venues.List(ctx, limit, offset)
}

func (s *Service) GetVenue(ctx context.Context, id int64) (*domain.Venue, error) {
	return s.venues.GetByID(ctx, id)
}
