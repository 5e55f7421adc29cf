package repository

import (
	"context"

	"gorm.io/gorm"

	"shrikemedia/internal/domain"
)

// EventRepository defines read access to gallery events plus the create path
// used by the tooling.
type EventRepository interface {
	GetPublishedBySlug(ctx context.Context, slug string) (*domain.Event, error)
	GetBySlug(ctx context.Context, slug string) (*domain.Event, error)
	GetByID(ctx context.Context, id string) (*domain.Event, error)
	Create(ctx context.Context, event *domain.Event) error
}

type eventRepository struct {
	db *gorm.DB
}

func NewEventRepository(db *gorm.DB) EventRepository {
	return &eventRepository{db: db}
}

// GetPublishedBySlug is the only lookup the gallery uses; unpublished events
// are indistinguishable from missing ones.
func (r *eventRepository) GetPublishedBySlug(ctx context.Context, slug string) (*domain.Event, error) {
	var event domain.Event
	err := r.db.WithContext(ctx).
		Where("slug = ? AND is_published = ?", slug, true).
		First(&event).Error
	if err != nil {
		return nil, err
	}
	return &event, nil
}

func (r *eventRepository) GetBySlug(ctx context.Context, slug string) (*domain.Event, error) {
	var event domain.Event
	if err := r.db.WithContext(ctx).Where("slug = ?", slug).First(&event).Error; err != nil {
		return nil, err
	}
	return &event, nil
}

func (r *eventRepository) GetByID(ctx context.Context, id string) (*domain.Event, error) {
	var event domain.Event
	if err := r.db.WithContext(ctx).First(&event, "id = ?", id).Error; err != nil {
		return nil, err
	}
	return &event, nil
}

func (r *eventRepository) Create(ctx context.Context, event *domain.Event) error {
	return r.db.WithContext(ctx).Create(event).Error
}
