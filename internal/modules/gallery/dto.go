package gallery

import (
	"time"

	"shrikemedia/internal/domain"
)

// EventResponse is the public shape of an event.
type EventResponse struct {
	ID          string    `json:"id"`
	Slug        string    `json:"slug"`
	Title       string    `json:"title"`
	Date        time.Time `json:"date"`
	Description *string   `json:"description,omitempty"`
	CoverPhoto  *string   `json:"cover_photo_url,omitempty"`
}

// PhotoResponse carries everything a tile needs to lay out before the image
// arrives: natural dimensions for reflow-free sizing, the blurhash for the
// placeholder, and ready-built public URLs.
type PhotoResponse struct {
	ID        string  `json:"id"`
	EventID   string  `json:"event_id"`
	Filename  string  `json:"filename"`
	Width     int     `json:"width"`
	Height    int     `json:"height"`
	Blurhash  *string `json:"blurhash,omitempty"`
	LikeCount int64   `json:"like_count"`
	SortOrder int     `json:"sort_order"`
	ThumbURL  string  `json:"thumb_url"`
	FullURL   string  `json:"full_url"`
}

// PhotoPageResponse is one pagination batch.
type PhotoPageResponse struct {
	Photos     []PhotoResponse `json:"photos"`
	TotalCount int64           `json:"total_count"`
	HasMore    bool            `json:"has_more"`
}

func ToEventResponse(e *domain.Event) EventResponse {
	return EventResponse{
		ID:          e.ID,
		Slug:        e.Slug,
		Title:       e.Title,
		Date:        e.Date,
		Description: e.Description,
		CoverPhoto:  e.CoverPhoto,
	}
}

func (s *Service) toPhotoResponse(p *domain.Photo) PhotoResponse {
	return PhotoResponse{
		ID:        p.ID,
		EventID:   p.EventID,
		Filename:  p.Filename,
		Width:     p.Width,
		Height:    p.Height,
		Blurhash:  p.Blurhash,
		LikeCount: p.LikeCount,
		SortOrder: p.SortOrder,
		ThumbURL:  s.urls.PublicURL(p.ThumbPath),
		FullURL:   s.urls.PublicURL(p.StoragePath),
	}
}
