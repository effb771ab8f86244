package auth

import (
	"context"
	"testing"

	"gigboard/internal/domain"
	"gigboard/internal/repository"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
)

type MockAccountRepo struct {
	mock.Mock
}

func (m *MockAccountRepo) Create(ctx context.Context, a *domain.Account) error {
	args := m.Called(ctx, a)
	return args.Error(0)
}

func (m *MockAccountRepo) GetByEmail(ctx context.Context, email string) (*domain.Account, error) {
	args := m.Called(ctx, email)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Account), args.Error(1)
}

type MockArtistRepo struct {
	mock.Mock
}

func (m *MockArtistRepo) Create(ctx context.Context, a *domain.Artist) error {
	args := m.Called(ctx, a)
	a.ID = 42
	return args.Error(0)
}

type MockVenueRepo struct {
	mock.Mock
}

func (m *MockVenueRepo) Create(ctx context.Context, v *domain.Venue) error {
	args := m.Called(ctx, v)
	v.ID = 17
	return args.Error(0)
}

type MockTokenIssuer struct {
	mock.Mock
}

func (m *MockTokenIssuer) GenerateToken(accountID int64, role string, partyID int64) (string, error) {
	args := m.Called(accountID, role, partyID)
	return args.String(0), args.Error(1)
}

func TestRegisterArtist(t *testing.T) {
	accounts := new(MockAccountRepo)
	artists := new(MockArtistRepo)
	venues := new(MockVenueRepo)
	tokens := new(MockTokenIssuer)
	svc := NewService(accounts, artists, venues, tokens)

	accounts.On("GetByEmail", mock.Anything, "band@example.com").Return(nil, repository.ErrNotFound)
	artists.On("Create", mock.Anything, mock.Anything).Return(nil)
	accounts.On("Create", mock.Anything, mock.Anything).Return(nil)
	tokens.On("GenerateToken", mock.Anything, "artist", int64(42)).Return("tok", nil)

	account, token, err := svc.Register(context.Background(), RegisterRequest{
		Email:    "Band@Example.com",
		Password: "hunter2hunter2",
		Role:     "artist",
		Name:     "The Locals",
		City:     "Chicago",
		Genre:    "indie rock",
	})
	require.NoError(t, err)
	assert.Equal(t, "tok", token)
	assert.Equal(t, "band@example.com", account.Email)
	assert.Equal(t, domain.RoleArtist, account.Role)
	assert.Equal(t, int64(42), account.PartyID)
	assert.NotEqual(t, "hunter2hunter2", account.PasswordHash)

	accounts.AssertExpectations(t)
	artists.AssertExpectations(t)
	venues.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
}

func TestRegisterVenueBindsVenueParty(t *testing.T) {
	accounts := new(MockAccountRepo)
	artists := new(MockArtistRepo)
	venues := new(MockVenueRepo)
	tokens := new(MockTokenIssuer)
	svc := NewService(accounts, artists, venues, tokens)

	accounts.On("GetByEmail", mock.Anything, mock.Anything).Return(nil, repository.ErrNotFound)
	venues.On("Create", mock.Anything, mock.Anything).Return(nil)
	accounts.On("Create", mock.Anything, mock.Anything).Return(nil)
	tokens.On("GenerateToken", mock.Anything, "venue", int64(17)).Return("tok", nil)

	account, _, err := svc.Register(context.Background(), RegisterRequest{
		Email:    "booker@example.com",
		Password: "hunter2hunter2",
		Role:     "venue",
		Name:     "Mercury Lounge",
		City:     "New York",
		Capacity: 250,
	})
	require.NoError(t, err)
	assert.Equal(t, domain.RoleVenue, account.Role)
	assert.Equal(t, int64(17), account.PartyID)
}

func TestRegisterValidation(t *testing.T) {
	svc := NewService(new(MockAccountRepo), new(MockArtistRepo), new(MockVenueRepo), new(MockTokenIssuer))

	cases := []struct {
		name string
		req  RegisterRequest
	}{
		{"short password", RegisterRequest{Email: "a@b.c", Password: "short", Role: "artist", Name: "X"}},
		{"bad role", RegisterRequest{Email: "a@b.c", Password: "hunter2hunter2", Role: "promoter", Name: "X"}},
		{"empty name", RegisterRequest{Email: "a@b.c", Password: "hunter2hunter2", Role: "artist", Name: "  "}},
		{"empty email", RegisterRequest{Password: "hunter2hunter2", Role: "artist", Name: "X"}},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			_, _, err := svc.Register(context.Background(), tc.req)
			assert.ErrorIs(t, err, ErrValidation)
		})
	}
}

func TestRegisterDuplicateEmail(t *testing.T) {
	accounts := new(MockAccountRepo)
	svc := NewService(accounts, new(MockArtistRepo), new(MockVenueRepo), new(MockTokenIssuer))

	accounts.On("GetByEmail", mock.Anything, "band@example.com").Return(&domain.Account{ID: 1}, nil)

	_, _, err := svc.Register(context.Background(), RegisterRequest{
		Email:    "band@example.com",
		Password: "hunter2hunter2",
		Role:     "artist",
		Name:     "The Locals",
	})
	assert.ErrorIs(t, err, ErrEmailTaken)
}

func TestLogin(t *testing.T) {
	hash, err := bcrypt.GenerateFromPassword([]byte("hunter2hunter2"), bcrypt.MinCost)
	require.NoError(t, err)
	stored := &domain.Account{
		ID:           9,
		Email:        "band@example.com",
		PasswordHash: string(hash),
		Role:         domain.RoleArtist,
		PartyID:      42,
	}

	accounts := new(MockAccountRepo)
	tokens := new(MockTokenIssuer)
	svc := NewService(accounts, new(MockArtistRepo), new(MockVenueRepo), tokens)

	accounts.On("GetByEmail", mock.Anything, "band@example.com").Return(stored, nil)
	tokens.On("GenerateToken", int64(9), "artist", int64(42)).Return("tok", nil)

	account, token, err := svc.Login(context.Background(), " Band@example.com ", "hunter2hunter2")
	require.NoError(t, err)
	assert.Equal(t, "tok", token)
	assert.Equal(t, int64(9), account.ID)

	_, _, err = svc.Login(context.Background(), "band@example.com", "wrong-password")
	assert.ErrorIs(t, err, ErrInvalidCredentials)
}

func TestLoginUnknownEmail(t *testing.T) {
	accounts := new(MockAccountRepo)
	svc := NewService(accounts, new(MockArtistRepo), new(MockVenueRepo), new(MockTokenIssuer))

	accounts.On("GetByEmail", mock.Anything, "nobody@example.com").Return(nil, repository.ErrNotFound)

	_, _, err := svc.Login(context.Background(), "nobody@example.com", "whatever")
	assert.ErrorIs(t, err, ErrInvalidCredentials)
}
