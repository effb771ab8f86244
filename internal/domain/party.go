package domain

import "time"

// Artist and Venue are the two sides of a negotiation. Profile management
// is owned elsewhere; the engine only needs identity and a display name.

type Artist struct {
	ID        int64     `json:"id"`
	Name      string    `json:"name" validate:"required"`
	Hometown  string    `json:"hometown,omitempty"`
	Genre     string    `json:"genre,omitempty"`
	Contact   string    `json:"contact,omitempty"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

type Venue struct {
	ID        int64     `json:"id"`
	Name      string    `json:"name" validate:"required"`
	City      string    `json:"city,omitempty"`
	Capacity  int       `json:"capacity,omitempty"`
	Contact   string    `json:"contact,omitempty"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// Account is a login bound to one side of the marketplace. PartyID points
// at the artist or venue row depending on Role.
type Account struct {
	ID           int64     `json:"id"`
	Email        string    `json:"email"`
	PasswordHash string    `json:"-"`
	Role         Role      `json:"role"`
	PartyID      int64     `json:"party_id"`
	CreatedAt    time.Time `json:"created_at"`
}
