package like

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"shrikemedia/internal/pkg/response"
)

type Handler struct {
	svc    *Service
	events EventGate
}

func NewHandler(svc *Service, events EventGate) *Handler {
	return &Handler{svc: svc, events: events}
}

func (h *Handler) RegisterRoutes(rg *gin.RouterGroup) {
	rg.GET("/events/:slug/likes", h.ListLiked)
	rg.POST("/photos/:id/likes", h.Like)
	rg.DELETE("/photos/:id/likes/:deviceID", h.Unlike)
}

type likeRequest struct {
	DeviceID string `json:"device_id" binding:"required"`
}

// Like creates the (photo, device) relation. 201 on a fresh like, 200 when
// the device had already liked the photo.
func (h *Handler) Like(c *gin.Context) {
	var req likeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, http.StatusBadRequest, "INVALID_REQUEST", "Invalid request body")
		return
	}

	result, err := h.svc.Like(c.Request.Context(), c.Param("id"), req.DeviceID)
	if err != nil {
		switch err {
		case ErrInvalidRequest:
			response.Error(c, http.StatusBadRequest, "INVALID_REQUEST", "Invalid input")
		case ErrNotFound:
			response.Error(c, http.StatusNotFound, "NOT_FOUND", "Photo not found")
		default:
			response.Error(c, http.StatusInternalServerError, "INTERNAL", "Internal error")
		}
		return
	}

	status := http.StatusCreated
	if result.AlreadyLiked {
		status = http.StatusOK
	}
	response.Success(c, status, result)
}

// Unlike removes the relation.
func (h *Handler) Unlike(c *gin.Context) {
	result, err := h.svc.Unlike(c.Request.Context(), c.Param("id"), c.Param("deviceID"))
	if err != nil {
		switch err {
		case ErrInvalidRequest:
			response.Error(c, http.StatusBadRequest, "INVALID_REQUEST", "Invalid input")
		case ErrNotFound:
			response.Error(c, http.StatusNotFound, "NOT_FOUND", "Like not found")
		default:
			response.Error(c, http.StatusInternalServerError, "INTERNAL", "Internal error")
		}
		return
	}

	response.Success(c, http.StatusOK, result)
}

// ListLiked returns the photo ids this device has liked within the event, so
// a reload restores the device's own liked state.
func (h *Handler) ListLiked(c *gin.Context) {
	deviceID := c.Query("device_id")
	if deviceID == "" {
		response.Error(c, http.StatusBadRequest, "INVALID_REQUEST", "device_id is required")
		return
	}

	event, err := h.events.GetEvent(c.Request.Context(), c.Param("slug"))
	if err != nil {
		response.Error(c, http.StatusNotFound, "NOT_FOUND", "Event not found")
		return
	}

	ids, err := h.svc.LikedPhotoIDs(c.Request.Context(), event.ID, deviceID)
	if err != nil {
		response.Error(c, http.StatusInternalServerError, "INTERNAL", "Internal error")
		return
	}

	response.Success(c, http.StatusOK, gin.H{"photo_ids": ids})
}
