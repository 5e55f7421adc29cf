package download

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"shrikemedia/internal/pkg/response"
)

type Handler struct {
	svc *Service
}

func NewHandler(svc *Service) *Handler {
	return &Handler{svc: svc}
}

func (h *Handler) RegisterRoutes(rg *gin.RouterGroup) {
	downloads := rg.Group("/downloads")
	{
		downloads.POST("", h.CreateSession)
		downloads.GET("/:token", h.Resolve)
	}
}

// CreateSession turns a submitted download queue into a token link.
func (h *Handler) CreateSession(c *gin.Context) {
	var req CreateSessionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, http.StatusBadRequest, "INVALID_REQUEST", "Invalid request body")
		return
	}

	session, err := h.svc.CreateSession(c.Request.Context(), req)
	if err != nil {
		switch err {
		case ErrInvalidRequest:
			response.Error(c, http.StatusBadRequest, "INVALID_REQUEST", "Invalid input")
		case ErrNotFound:
			response.Error(c, http.StatusNotFound, "NOT_FOUND", "Event not found")
		default:
			response.Error(c, http.StatusInternalServerError, "INTERNAL", "Internal error")
		}
		return
	}

	response.Success(c, http.StatusCreated, gin.H{"token": session.Token})
}

// Resolve renders the token page payload. Expired links get their own state so
// the user must request a new export, there is nothing to retry.
func (h *Handler) Resolve(c *gin.Context) {
	view, err := h.svc.Visit(c.Request.Context(), c.Param("token"))
	if err != nil {
		switch err {
		case ErrNotFound, ErrInvalidRequest:
			response.Error(c, http.StatusNotFound, "NOT_FOUND", "Download link not found")
		case ErrExpired:
			response.Error(c, http.StatusGone, "EXPIRED", "This download link has expired")
		default:
			response.Error(c, http.StatusInternalServerError, "INTERNAL", "Internal error")
		}
		return
	}

	response.Success(c, http.StatusOK, view)
}
