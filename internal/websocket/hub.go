package websocket

import (
	"encoding/json"
	"sync"
	"time"

	"github.com/rs/zerolog/log"
)

type Hub struct {
	rooms map[string]map[*Client]struct{}
	mu    sync.RWMutex

	stats   HubStats
	statsMu sync.RWMutex
}

type HubStats struct {
	TotalRooms       int       `json:"total_rooms"`
	TotalClients     int       `json:"total_clients"`
	TotalConnections int64     `json:"total_connections"`
	EventsSent       int64     `json:"events_sent"`
	LastReset        time.Time `json:"last_reset"`
}

func NewHub() *Hub {
	return &Hub{
		rooms: make(map[string]map[*Client]struct{}),
		stats: HubStats{
			LastReset: time.Now(),
		},
	}
}

// Register adds a client to a room and starts its pumps.
func (h *Hub) Register(roomId string, client *Client) {
	h.mu.Lock()
	if h.rooms[roomId] == nil {
		h.rooms[roomId] = make(map[*Client]struct{})
	}
	h.rooms[roomId][client] = struct{}{}
	roomSize := len(h.rooms[roomId])
	h.mu.Unlock()

	h.updateStats(func(stats *HubStats) {
		stats.TotalConnections++
	})

	go client.writePump()
	go client.readPump(h)

	log.Info().Str("roomID", roomId).Str("clientID", client.ID).Str("userID", client.UserID).Int("roomSize", roomSize).Msg("ws: client registered to room")
}

// Unregister removes a client from a room.
func (h *Hub) Unregister(roomId string, client *Client) {
	h.mu.Lock()
	if clients, ok := h.rooms[roomId]; ok {
		delete(clients, client)

		if len(clients) == 0 {
			delete(h.rooms, roomId)
		}
	}
	h.mu.Unlock()

	log.Info().Str("roomID", roomId).Str("clientID", client.ID).Str("userID", client.UserID).Msg("ws: client unregistered from room")
}

// BroadcastToRoom fans an event out to every subscriber of the room.
// Slow consumers get the event dropped rather than blocking the send.
func (h *Hub) BroadcastToRoom(roomID string, event Event) {
	event.RoomID = roomID

	data, err := json.Marshal(event)
	if err != nil {
		log.Error().Err(err).Str("roomID", roomID).Msg("ws: failed to marshal broadcast event")
		return
	}

	h.mu.RLock()
	var targets []*Client
	if clients, ok := h.rooms[roomID]; ok {
		targets = make([]*Client, 0, len(clients))
		for client := range clients {
			targets = append(targets, client)
		}
	}
	h.mu.RUnlock()

	if len(targets) == 0 {
		return
	}

	for _, client := range targets {
		select {
		case client.Send <- data:
		default:
			log.Warn().Str("roomID", roomID).Str("clientID", client.ID).Msg("ws: slow consumer, dropping event")
		}
	}

	h.updateStats(func(stats *HubStats) {
		stats.EventsSent += int64(len(targets))
	})
}

func (h *Hub) Stats() HubStats {
	h.statsMu.RLock()
	defer h.statsMu.RUnlock()

	h.mu.RLock()
	totalClients := 0
	for _, clients := range h.rooms {
		totalClients += len(clients)
	}
	stats := h.stats
	stats.TotalRooms = len(h.rooms)
	stats.TotalClients = totalClients
	h.mu.RUnlock()

	return stats
}

func (h *Hub) updateStats(fn func(stats *HubStats)) {
	h.statsMu.Lock()
	defer h.statsMu.Unlock()
	fn(&h.stats)
}
