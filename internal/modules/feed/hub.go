package feed

import (
	"fmt"
	"sync"

	"gigboard/internal/domain"

	"github.com/gorilla/websocket"
)

// Hub tracks one live connection per party. Keys combine role and party id
// so an artist and a venue with the same numeric id never collide.
type Hub struct {
	connections map[string]*websocket.Conn
	mutex       sync.RWMutex
}

func NewHub() *Hub {
	return &Hub{
		connections: make(map[string]*websocket.Conn),
	}
}

func partyKey(role domain.Role, partyID int64) string {
	return fmt.Sprintf("%s:%d", role, partyID)
}

func (h *Hub) Register(role domain.Role, partyID int64, conn *websocket.Conn) {
	h.mutex.Lock()
	defer h.mutex.Unlock()

	key := partyKey(role, partyID)
	if oldConn, exists := h.connections[key]; exists && oldConn != nil {
		_ = oldConn.Close()
	}
	h.connections[key] = conn
}

func (h *Hub) Unregister(role domain.Role, partyID int64) {
	h.mutex.Lock()
	defer h.mutex.Unlock()

	key := partyKey(role, partyID)
	if conn, exists := h.connections[key]; exists {
		if conn != nil {
			_ = conn.Close()
		}
		delete(h.connections, key)
	}
}

func (h *Hub) SendToParty(role domain.Role, partyID int64, message interface{}) bool {
	key := partyKey(role, partyID)

	h.mutex.RLock()
	conn, exists := h.connections[key]
	h.mutex.RUnlock()

	if !exists || conn == nil {
		return false
	}

	if err := conn.WriteJSON(message); err != nil {
		h.Unregister(role, partyID)
		return false
	}
	return true
}

func (h *Hub) IsOnline(role domain.Role, partyID int64) bool {
	h.mutex.RLock()
	defer h.mutex.RUnlock()

	_, exists := h.connections[partyKey(role, partyID)]
	return exists
}

func (h *Hub) OnlineCount() int {
	h.mutex.RLock()
	defer h.mutex.RUnlock()

	return len(h.connections)
}

func (h *Hub) Close() {
	h.mutex.Lock()
	defer h.mutex.Unlock()

	for key, conn := range h.connections {
		if conn != nil {
			_ = conn.Close()
		}
		delete(h.connections, key)
	}
}
