package download

import (
	"time"

	"shrikemedia/internal/domain"
)

// CreateSessionRequest mints a full-resolution download session from the
// client's queue.
type CreateSessionRequest struct {
	EventID  string   `json:"event_id" validate:"required"`
	Email    string   `json:"email" validate:"required,email"`
	PhotoIDs []string `json:"photo_ids" validate:"required,min=1"`
}

// SessionPhoto is one downloadable photo on the token page.
type SessionPhoto struct {
	ID       string `json:"id"`
	Filename string `json:"filename"`
	Width    int    `json:"width"`
	Height   int    `json:"height"`
	ThumbURL string `json:"thumb_url"`
	FullURL  string `json:"full_url"`
}

// SessionView is the resolved token page payload.
type SessionView struct {
	Token         string         `json:"token"`
	EventTitle    string         `json:"event_title"`
	EventSlug     string         `json:"event_slug"`
	Email         string         `json:"email"`
	ExpiresAt     time.Time      `json:"expires_at"`
	DownloadCount int64          `json:"download_count"`
	Photos        []SessionPhoto `json:"photos"`
}

func (s *Service) toSessionPhoto(p *domain.Photo) SessionPhoto {
	return SessionPhoto{
		ID:       p.ID,
		Filename: p.Filename,
		Width:    p.Width,
		Height:   p.Height,
		ThumbURL: s.urls.PublicURL(p.ThumbPath),
		FullURL:  s.urls.PublicURL(p.StoragePath),
	}
}
