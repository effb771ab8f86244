package feed

import (
	"testing"

	"gigboard/internal/domain"

	"github.com/stretchr/testify/assert"
)

func TestHubPresence(t *testing.T) {
	hub := NewHub()

	assert.False(t, hub.IsOnline(domain.RoleArtist, 1))
	assert.Zero(t, hub.OnlineCount())

	hub.Register(domain.RoleArtist, 1, nil)
	assert.True(t, hub.IsOnline(domain.RoleArtist, 1))
	assert.Equal(t, 1, hub.OnlineCount())

	// Same numeric id on the other side is a different party.
	hub.Register(domain.RoleVenue, 1, nil)
	assert.Equal(t, 2, hub.OnlineCount())
	assert.True(t, hub.IsOnline(domain.RoleVenue, 1))

	hub.Unregister(domain.RoleArtist, 1)
	assert.False(t, hub.IsOnline(domain.RoleArtist, 1))
	assert.Equal(t, 1, hub.OnlineCount())

	hub.Close()
	assert.Zero(t, hub.OnlineCount())
}

func TestSendToOfflinePartyIsDropped(t *testing.T) {
	hub := NewHub()
	assert.False(t, hub.SendToParty(domain.RoleVenue, 7, EntryEvent{Type: "entry_changed"}))
}
