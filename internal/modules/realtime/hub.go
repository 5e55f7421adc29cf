package realtime

import (
	"encoding/json"
	"sync"
	"time"

	"github.com/gorilla/websocket"

	"shrikemedia/internal/domain"
)

const (
	writeWait  = 10 * time.Second
	pongWait   = 60 * time.Second
	pingPeriod = (pongWait * 9) / 10

	// The feed is push-only; inbound frames carry nothing of interest.
	maxMsgSize = 512
)

// viewer is one open gallery tab. All frames go through send so the write
// pump is the only goroutine touching the connection.
type viewer struct {
	conn *websocket.Conn
	send chan []byte
}

// Hub fans gallery activity out to every open viewer of an event. Viewers
// are anonymous, so connections are tracked per event rather than per user.
type Hub struct {
	viewers map[string]map[*viewer]bool
	mutex   sync.RWMutex
}

func NewHub() *Hub {
	return &Hub{
		viewers: make(map[string]map[*viewer]bool),
	}
}

// Serve registers the connection and blocks until the viewer disconnects.
func (h *Hub) Serve(eventID string, conn *websocket.Conn) {
	v := &viewer{
		conn: conn,
		send: make(chan []byte, 256),
	}

	h.register(eventID, v)

	go h.writePump(v)
	h.readPump(eventID, v) // blocks until disconnect
}

func (h *Hub) register(eventID string, v *viewer) {
	h.mutex.Lock()
	defer h.mutex.Unlock()

	if h.viewers[eventID] == nil {
		h.viewers[eventID] = make(map[*viewer]bool)
	}
	h.viewers[eventID][v] = true
}

func (h *Hub) unregister(eventID string, v *viewer) {
	h.mutex.Lock()
	defer h.mutex.Unlock()

	viewers, exists := h.viewers[eventID]
	if !exists || !viewers[v] {
		return
	}
	delete(viewers, v)
	close(v.send)
	if len(viewers) == 0 {
		delete(h.viewers, eventID)
	}
}

func (h *Hub) readPump(eventID string, v *viewer) {
	defer func() {
		h.unregister(eventID, v)
		v.conn.Close()
	}()

	v.conn.SetReadLimit(maxMsgSize)
	v.conn.SetReadDeadline(time.Now().Add(pongWait))
	v.conn.SetPongHandler(func(string) error {
		v.conn.SetReadDeadline(time.Now().Add(pongWait))
		return nil
	})

	for {
		if _, _, err := v.conn.ReadMessage(); err != nil {
			return
		}
	}
}

func (h *Hub) writePump(v *viewer) {
	ticker := time.NewTicker(pingPeriod)
	defer func() {
		ticker.Stop()
		v.conn.Close()
	}()

	for {
		select {
		case msg, ok := <-v.send:
			v.conn.SetWriteDeadline(time.Now().Add(writeWait))
			if !ok {
				v.conn.WriteMessage(websocket.CloseMessage, []byte{})
				return
			}
			if err := v.conn.WriteMessage(websocket.TextMessage, msg); err != nil {
				return
			}
		case <-ticker.C:
			v.conn.SetWriteDeadline(time.Now().Add(writeWait))
			if err := v.conn.WriteMessage(websocket.PingMessage, nil); err != nil {
				return
			}
		}
	}
}

func (h *Hub) broadcast(eventID string, message interface{}) {
	data, err := json.Marshal(message)
	if err != nil {
		return
	}

	h.mutex.RLock()
	defer h.mutex.RUnlock()

	for v := range h.viewers[eventID] {
		select {
		case v.send <- data:
		default:
			// Viewer too slow; drop the frame rather than block the hub.
		}
	}
}

// ViewerCount reports how many connections watch an event.
func (h *Hub) ViewerCount(eventID string) int {
	h.mutex.RLock()
	defer h.mutex.RUnlock()

	return len(h.viewers[eventID])
}

// NotifyLikeChanged implements the like module's Notifier.
func (h *Hub) NotifyLikeChanged(eventID, photoID string, likeCount int64) {
	h.broadcast(eventID, likeMessage{
		Type:      "like",
		PhotoID:   photoID,
		LikeCount: likeCount,
	})
}

// NotifyCommentPosted implements the comment module's Notifier.
func (h *Hub) NotifyCommentPosted(eventID string, comment *domain.PhotoComment) {
	h.broadcast(eventID, commentMessage{
		Type:    "comment",
		Comment: comment,
	})
}

func (h *Hub) Close() {
	h.mutex.Lock()
	defer h.mutex.Unlock()

	for eventID, viewers := range h.viewers {
		for v := range viewers {
			close(v.send)
		}
		delete(h.viewers, eventID)
	}
}

type likeMessage struct {
	Type      string `json:"type"`
	PhotoID   string `json:"photo_id"`
	LikeCount int64  `json:"like_count"`
}

type commentMessage struct {
	Type    string               `json:"type"`
	Comment *domain.PhotoComment `json:"comment"`
}
