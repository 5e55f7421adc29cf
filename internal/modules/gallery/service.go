package gallery

import (
	"context"
	"errors"

	"gorm.io/gorm"

	"shrikemedia/internal/domain"
	"shrikemedia/internal/repository"
)

// PageSize is the fixed pagination window. The client's load-more asks for it
// explicitly, but the server clamps to it regardless.
const PageSize = 50

// URLBuilder turns a stored relative path into a public object URL.
type URLBuilder interface {
	PublicURL(path string) string
}

type Service struct {
	events repository.EventRepository
	photos repository.PhotoRepository
	urls   URLBuilder
}

func NewService(events repository.EventRepository, photos repository.PhotoRepository, urls URLBuilder) *Service {
	return &Service{events: events, photos: photos, urls: urls}
}

// GetEvent resolves a published event by slug. Unpublished and missing events
// both surface as ErrNotFound.
func (s *Service) GetEvent(ctx context.Context, slug string) (*domain.Event, error) {
	if slug == "" {
		return nil, ErrInvalidRequest
	}
	event, err := s.events.GetPublishedBySlug(ctx, slug)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return event, nil
}

// ListPhotos returns one page ordered by sort_order ascending. has_more is
// recomputed from offset + limit against the total on every call.
func (s *Service) ListPhotos(ctx context.Context, eventID string, offset, limit int) (*PhotoPageResponse, error) {
	if eventID == "" || offset < 0 {
		return nil, ErrInvalidRequest
	}
	if limit <= 0 || limit > PageSize {
		limit = PageSize
	}

	photos, total, err := s.photos.ListByEvent(ctx, eventID, offset, limit)
	if err != nil {
		return nil, err
	}

	page := &PhotoPageResponse{
		Photos:     make([]PhotoResponse, len(photos)),
		TotalCount: total,
		HasMore:    int64(offset+limit) < total,
	}
	for i := range photos {
		page.Photos[i] = s.toPhotoResponse(&photos[i])
	}
	return page, nil
}
