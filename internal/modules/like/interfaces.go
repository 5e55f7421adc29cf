package like

import (
	"context"

	"shrikemedia/internal/domain"
)

// Notifier pushes live like-count updates to gallery viewers. A nil notifier
// is fine; likes work without the websocket feed.
type Notifier interface {
	NotifyLikeChanged(eventID, photoID string, likeCount int64)
}

// PhotoGate is the slice of the photo repository the like engine needs.
type PhotoGate interface {
	GetByID(ctx context.Context, id string) (*domain.Photo, error)
}

// EventGate resolves the event a likes lookup is scoped to.
type EventGate interface {
	GetEvent(ctx context.Context, slug string) (*domain.Event, error)
}
