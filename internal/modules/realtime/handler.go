package realtime

import (
	"context"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/gorilla/websocket"

	"shrikemedia/internal/domain"
	"shrikemedia/internal/pkg/response"
)

// EventGate resolves the event a viewer subscribes to.
type EventGate interface {
	GetEvent(ctx context.Context, slug string) (*domain.Event, error)
}

var upgrader = websocket.Upgrader{
	ReadBufferSize:  1024,
	WriteBufferSize: 1024,
	// The feed is public read-only data; origin checks add nothing here.
	CheckOrigin: func(r *http.Request) bool { return true },
}

type Handler struct {
	hub    *Hub
	events EventGate
}

func NewHandler(hub *Hub, events EventGate) *Handler {
	return &Handler{hub: hub, events: events}
}

func (h *Handler) RegisterRoutes(rg *gin.RouterGroup) {
	rg.GET("/ws/events/:slug", h.Subscribe)
}

// Subscribe upgrades the connection and streams like/comment activity for
// the event until the viewer disconnects. The feed is push-only; inbound
// frames are drained and dropped.
func (h *Handler) Subscribe(c *gin.Context) {
	event, err := h.events.GetEvent(c.Request.Context(), c.Param("slug"))
	if err != nil {
		response.Error(c, http.StatusNotFound, "NOT_FOUND", "Event not found")
		return
	}

	conn, err := upgrader.Upgrade(c.Writer, c.Request, nil)
	if err != nil {
		return
	}

	h.hub.Serve(event.ID, conn)
}
