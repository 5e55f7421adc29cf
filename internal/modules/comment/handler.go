package comment

import (
	"context"
	"net/http"

	"github.com/gin-gonic/gin"

	"shrikemedia/internal/domain"
	"shrikemedia/internal/pkg/response"
)

// EventGate resolves the event a guestbook belongs to.
type EventGate interface {
	GetEvent(ctx context.Context, slug string) (*domain.Event, error)
}

type Handler struct {
	svc    *Service
	events EventGate
}

func NewHandler(svc *Service, events EventGate) *Handler {
	return &Handler{svc: svc, events: events}
}

func (h *Handler) RegisterRoutes(rg *gin.RouterGroup) {
	rg.GET("/events/:slug/comments", h.List)
	rg.POST("/events/:slug/comments", h.Submit)
}

// Submit posts a guestbook entry. Bot-gated submissions come back as a
// success with null data, indistinguishable from a real post to the sender.
func (h *Handler) Submit(c *gin.Context) {
	event, err := h.events.GetEvent(c.Request.Context(), c.Param("slug"))
	if err != nil {
		response.Error(c, http.StatusNotFound, "NOT_FOUND", "Event not found")
		return
	}

	var req SubmitCommentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, http.StatusBadRequest, "INVALID_REQUEST", "Invalid request body")
		return
	}

	cm, err := h.svc.Submit(c.Request.Context(), event.ID, req)
	if err != nil {
		switch err {
		case ErrInvalidRequest:
			response.Error(c, http.StatusBadRequest, "INVALID_REQUEST", "Invalid input")
		case ErrDeviceMissing:
			response.Error(c, http.StatusBadRequest, "DEVICE_MISSING", "Unable to post — please try refreshing")
		case ErrProfanity:
			response.Error(c, http.StatusBadRequest, "PROFANITY", "Please rephrase your message — some words aren't allowed")
		case ErrRateLimited:
			response.Error(c, http.StatusTooManyRequests, "RATE_LIMITED", "Too many comments — please wait a few minutes")
		default:
			response.Error(c, http.StatusInternalServerError, "INTERNAL", "Something went wrong — please try again")
		}
		return
	}

	if cm == nil {
		// Silent no-op for bot signatures.
		response.Success(c, http.StatusCreated, nil)
		return
	}

	response.Success(c, http.StatusCreated, cm)
}

// List returns the visible guestbook, newest first.
func (h *Handler) List(c *gin.Context) {
	event, err := h.events.GetEvent(c.Request.Context(), c.Param("slug"))
	if err != nil {
		response.Error(c, http.StatusNotFound, "NOT_FOUND", "Event not found")
		return
	}

	comments, err := h.svc.List(c.Request.Context(), event.ID)
	if err != nil {
		response.Error(c, http.StatusInternalServerError, "INTERNAL", "Internal error")
		return
	}

	response.Success(c, http.StatusOK, comments)
}
