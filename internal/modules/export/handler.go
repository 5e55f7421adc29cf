package export

import (
	"context"
	"fmt"
	"net/http"

	"github.com/gin-gonic/gin"

	"shrikemedia/internal/domain"
	"shrikemedia/internal/modules/download"
	"shrikemedia/internal/pkg/response"
	"shrikemedia/internal/pkg/utils"
)

// SessionGate resolves a download token without counting a page visit.
type SessionGate interface {
	Get(ctx context.Context, token string) (*domain.DownloadSession, error)
}

// PhotoGate is the slice of the photo repository exports need.
type PhotoGate interface {
	GetByID(ctx context.Context, id string) (*domain.Photo, error)
	GetByIDs(ctx context.Context, ids []string) ([]domain.Photo, error)
}

type Handler struct {
	svc      *Service
	sessions SessionGate
	photos   PhotoGate
}

func NewHandler(svc *Service, sessions SessionGate, photos PhotoGate) *Handler {
	return &Handler{svc: svc, sessions: sessions, photos: photos}
}

func (h *Handler) RegisterRoutes(rg *gin.RouterGroup) {
	rg.GET("/photos/:id/web", h.InstantDownload)
	rg.GET("/downloads/:token/photos/:photoID", h.SessionPhoto)
	rg.GET("/downloads/:token/zip", h.SessionZip)
}

// InstantDownload serves the web-size rendition. Any transcode failure
// degrades to a redirect at the original object, so the button never dies.
func (h *Handler) InstantDownload(c *gin.Context) {
	photo, err := h.photos.GetByID(c.Request.Context(), c.Param("id"))
	if err != nil {
		response.Error(c, http.StatusNotFound, "NOT_FOUND", "Photo not found")
		return
	}

	data, err := h.svc.WebSize(c.Request.Context(), photo)
	if err != nil {
		c.Redirect(http.StatusFound, h.svc.SourceURL(photo))
		return
	}

	serveJPEG(c, JPEGFilename(photo.Filename), data)
}

// SessionPhoto serves one full-resolution photo from a download session,
// re-encoded to JPEG when the source is another format.
func (h *Handler) SessionPhoto(c *gin.Context) {
	session, ok := h.resolveSession(c)
	if !ok {
		return
	}

	photoID := c.Param("photoID")
	if !sessionContains(session, photoID) {
		response.Error(c, http.StatusNotFound, "NOT_FOUND", "Photo is not part of this download")
		return
	}

	photo, err := h.photos.GetByID(c.Request.Context(), photoID)
	if err != nil {
		response.Error(c, http.StatusNotFound, "NOT_FOUND", "Photo not found")
		return
	}

	data, err := h.svc.FullRes(c.Request.Context(), photo)
	if err != nil {
		c.Redirect(http.StatusFound, h.svc.SourceURL(photo))
		return
	}

	serveJPEG(c, JPEGFilename(photo.Filename), data)
}

// SessionZip streams every session photo as a single archive.
func (h *Handler) SessionZip(c *gin.Context) {
	session, ok := h.resolveSession(c)
	if !ok {
		return
	}

	photos, err := h.photos.GetByIDs(c.Request.Context(), utils.StringToIDs(session.PhotoIDs))
	if err != nil {
		response.Error(c, http.StatusInternalServerError, "INTERNAL", "Internal error")
		return
	}

	c.Header("Content-Type", "application/zip")
	c.Header("Content-Disposition", fmt.Sprintf("attachment; filename=%q", zipName(session)))
	c.Status(http.StatusOK)

	if err := h.svc.WriteZip(c.Request.Context(), photos, c.Writer); err != nil {
		// Headers are gone; all we can do is cut the stream.
		c.Abort()
	}
}

func (h *Handler) resolveSession(c *gin.Context) (*domain.DownloadSession, bool) {
	session, err := h.sessions.Get(c.Request.Context(), c.Param("token"))
	if err != nil {
		switch err {
		case download.ErrExpired:
			response.Error(c, http.StatusGone, "EXPIRED", "This download link has expired")
		default:
			response.Error(c, http.StatusNotFound, "NOT_FOUND", "Download link not found")
		}
		return nil, false
	}
	return session, true
}

func sessionContains(session *domain.DownloadSession, photoID string) bool {
	for _, id := range utils.StringToIDs(session.PhotoIDs) {
		if id == photoID {
			return true
		}
	}
	return false
}

func serveJPEG(c *gin.Context, filename string, data []byte) {
	c.Header("Content-Disposition", fmt.Sprintf("attachment; filename=%q", filename))
	c.Data(http.StatusOK, "image/jpeg", data)
}

func zipName(session *domain.DownloadSession) string {
	if session.Event != nil && session.Event.Title != "" {
		return sanitizeName(session.Event.Title) + "-photos.zip"
	}
	return "photos.zip"
}

func sanitizeName(s string) string {
	out := make([]rune, 0, len(s))
	for _, r := range s {
		switch {
		case r >= 'a' && r <= 'z', r >= 'A' && r <= 'Z', r >= '0' && r <= '9':
			out = append(out, r)
		default:
			out = append(out, '-')
		}
	}
	return string(out)
}
