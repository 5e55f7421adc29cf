package gallery

import (
	"net/http"
	"strconv"

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
	events := rg.Group("/events")
	{
		events.GET("/:slug", h.GetEvent)
		events.GET("/:slug/photos", h.ListPhotos)
	}
}

// GetEvent returns a published event by slug. Unpublished events look exactly
// like missing ones so draft galleries never leak.
func (h *Handler) GetEvent(c *gin.Context) {
	event, err := h.svc.GetEvent(c.Request.Context(), c.Param("slug"))
	if err != nil {
		switch err {
		case ErrInvalidRequest:
			response.Error(c, http.StatusBadRequest, "INVALID_REQUEST", "Invalid event slug")
		case ErrNotFound:
			response.Error(c, http.StatusNotFound, "NOT_FOUND", "Event not found")
		default:
			response.Error(c, http.StatusInternalServerError, "INTERNAL", "Internal error")
		}
		return
	}

	response.Success(c, http.StatusOK, ToEventResponse(event))
}

// ListPhotos returns one pagination batch for the event resolved by slug.
func (h *Handler) ListPhotos(c *gin.Context) {
	event, err := h.svc.GetEvent(c.Request.Context(), c.Param("slug"))
	if err != nil {
		if err == ErrNotFound {
			response.Error(c, http.StatusNotFound, "NOT_FOUND", "Event not found")
			return
		}
		response.Error(c, http.StatusInternalServerError, "INTERNAL", "Internal error")
		return
	}

	offset, _ := strconv.Atoi(c.DefaultQuery("offset", "0"))
	limit, _ := strconv.Atoi(c.DefaultQuery("limit", strconv.Itoa(PageSize)))

	page, err := h.svc.ListPhotos(c.Request.Context(), event.ID, offset, limit)
	if err != nil {
		if err == ErrInvalidRequest {
			response.Error(c, http.StatusBadRequest, "INVALID_REQUEST", "Invalid pagination parameters")
			return
		}
		response.Error(c, http.StatusInternalServerError, "INTERNAL", "Internal error")
		return
	}

	response.Success(c, http.StatusOK, page)
}
