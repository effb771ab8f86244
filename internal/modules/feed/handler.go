package feed

import (
	"net/http"

	"gigboard/internal/domain"
	"gigboard/internal/pkg/response"

	"github.com/gin-gonic/gin"
	"github.com/gorilla/websocket"
)

var upgrader = websocket.Upgrader{
	ReadBufferSize:  1024,
	WriteBufferSize: 1024,
	// Origin filtering happens in the CORS middleware before the upgrade.
	CheckOrigin: func(r *http.Request) bool { return true },
}

type Handler struct {
	hub *Hub
}

func NewHandler(hub *Hub) *Handler {
	return &Handler{hub: hub}
}

func (h *Handler) RegisterRoutes(rg *gin.RouterGroup) {
	rg.GET("/ws/feed", h.Subscribe)
	rg.GET("/feed/status", h.Status)
}

// Status reports whether the caller's own feed connection is live, plus how
// many parties are connected overall. Clients poll it to decide between the
// push feed and plain refetching.
func (h *Handler) Status(c *gin.Context) {
	role := domain.Role(c.GetString("role"))
	partyID := c.GetInt64("party_id")
	if (role != domain.RoleArtist && role != domain.RoleVenue) || partyID == 0 {
		response.Error(c, http.StatusForbidden, "FORBIDDEN", "Viewer is not an artist or venue")
		return
	}

	response.Success(c, http.StatusOK, gin.H{
		"connected": h.hub.IsOnline(role, partyID),
		"online":    h.hub.OnlineCount(),
	})
}

// Subscribe upgrades the connection and parks it in the hub until the
// client goes away. The feed is push-only; inbound frames are drained and
// discarded.
func (h *Handler) Subscribe(c *gin.Context) {
	role := domain.Role(c.GetString("role"))
	partyID := c.GetInt64("party_id")
	if (role != domain.RoleArtist && role != domain.RoleVenue) || partyID == 0 {
		response.Error(c, http.StatusForbidden, "FORBIDDEN", "Viewer is not an artist or venue")
		return
	}

	conn, err := upgrader.Upgrade(c.Writer, c.Request, nil)
	if err != nil {
		return
	}

	h.hub.Register(role, partyID, conn)
	defer h.hub.Unregister(role, partyID)

	for {
		if _, _, err := conn.ReadMessage(); err != nil {
			return
		}
	}
}
