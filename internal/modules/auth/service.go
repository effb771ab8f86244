package auth

import (
	"context"
	"strings"

	"gigboard/internal/domain"

	"golang.org/x/crypto/bcrypt"
)

type Service struct {
	accounts AccountRepository
	artists  ArtistRepository
	venues   VenueRepository
	tokens   TokenIssuer
}

func NewService(accounts AccountRepository, artists ArtistRepository, venues VenueRepository, tokens TokenIssuer) *Service {
	return &Service{
		accounts: accounts,
		artists:  artists,
		venues:   venues,
		tokens:   tokens,
	}
}

// Register creates a party record for one side of the marketplace and an
// account bound to it. The rest of the system only ever sees the resulting
// (role, party_id) capability.
func (s *Service) Register(ctx context.Context, req RegisterRequest) (*domain.Account, string, error) {
	email := strings.ToLower(strings.TrimSpace(req.Email))
	if email == "" || len(req.Password) < 8 || strings.TrimSpace(req.Name) == "" {
		return nil, "", ErrValidation
	}
	role := domain.Role(req.Role)
	if role != domain.RoleArtist && role != domain.RoleVenue {
		return nil, "", ErrValidation
	}

	if existing, err := s.accounts.GetByEmail(ctx, email); err == nil && existing != nil {
		return nil, "", ErrEmailTaken
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)
	if err != nil {
		return nil, "", err
	}

	var partyID int64
	switch role {
	case domain.RoleArtist:
		a := &domain.Artist{Name: req.Name, Hometown: req.City, Genre: req.Genre}
		if err := s.artists.Create(ctx, a); err != nil {
			return nil, "", err
		}
		partyID = a.ID
	case domain.RoleVenue:
		v := &domain.Venue{Name: req.Name, City: req.City, Capacity: req.Capacity}
		if err := s.venues.Create(ctx, v); err != nil {
			return nil, "", err
		}
		partyID = v.ID
	}

	account := &domain.Account{
		Email:        email,
		PasswordHash: string(hash),
		Role:         role,
		PartyID:      partyID,
	}
	if err := s.accounts.Create(ctx, account); err != nil {
		return nil, "", err
	}

	token, err := s.tokens.GenerateToken(account.ID, string(account.Role), account.PartyID)
	if err != nil {
		return nil, "", err
	}
	return account, token, nil
}

func (s *Service) Login(ctx context.Context, email, password string) (*domain.Account, string, error) {
	email = strings.ToLower(strings.TrimSpace(email))
	account, err := s.accounts.GetByEmail(ctx, email)
	if err != nil || account == nil {
		return nil, "", ErrInvalidCredentials
	}
	if bcrypt.CompareHashAndPassword([]byte(account.PasswordHash), []byte(password)) != nil {
		return nil, "", ErrInvalidCredentials
	}
	token, err := s.tokens.GenerateToken(account.ID, string(account.Role), account.PartyID)
	if err != nil {
		return nil, "", err
	}
	return account, token, nil
}
