package repository

import (
	"context"

	"gorm.io/gorm"

	"shrikemedia/internal/domain"
)

// PhotoRepository defines photo reads for the gallery and the write paths used
// by the ingest/cull tooling.
type PhotoRepository interface {
	ListByEvent(ctx context.Context, eventID string, offset, limit int) ([]domain.Photo, int64, error)
	GetByID(ctx context.Context, id string) (*domain.Photo, error)
	GetByIDs(ctx context.Context, ids []string) ([]domain.Photo, error)
	FirstByEvent(ctx context.Context, eventID string) (*domain.Photo, error)
	ListAllByEvent(ctx context.Context, eventID string) ([]domain.Photo, error)
	MaxSortOrder(ctx context.Context, eventID string) (int, error)
	Create(ctx context.Context, photo *domain.Photo) error
	Delete(ctx context.Context, id string) error
}

type photoRepository struct {
	db *gorm.DB
}

func NewPhotoRepository(db *gorm.DB) PhotoRepository {
	return &photoRepository{db: db}
}

// ListByEvent returns one page ordered by sort_order ascending plus the total
// count for the event. sort_order is a stable total order within an event, so
// successive offset pages never duplicate or skip photos.
func (r *photoRepository) ListByEvent(ctx context.Context, eventID string, offset, limit int) ([]domain.Photo, int64, error) {
	var total int64
	if err := r.db.WithContext(ctx).Model(&domain.Photo{}).
		Where("event_id = ?", eventID).
		Count(&total).Error; err != nil {
		return nil, 0, err
	}

	var photos []domain.Photo
	query := r.db.WithContext(ctx).
		Where("event_id = ?", eventID).
		Order("sort_order ASC")

	if limit > 0 {
		query = query.Limit(limit).Offset(offset)
	}

	if err := query.Find(&photos).Error; err != nil {
		return nil, 0, err
	}

	return photos, total, nil
}

func (r *photoRepository) GetByID(ctx context.Context, id string) (*domain.Photo, error) {
	var photo domain.Photo
	if err := r.db.WithContext(ctx).First(&photo, "id = ?", id).Error; err != nil {
		return nil, err
	}
	return &photo, nil
}

func (r *photoRepository) GetByIDs(ctx context.Context, ids []string) ([]domain.Photo, error) {
	if len(ids) == 0 {
		return []domain.Photo{}, nil
	}
	var photos []domain.Photo
	err := r.db.WithContext(ctx).
		Where("id IN ?", ids).
		Order("sort_order ASC").
		Find(&photos).Error
	if err != nil {
		return nil, err
	}
	return photos, nil
}

// FirstByEvent returns the photo with the lowest sort_order, used as the
// legacy guestbook anchor.
func (r *photoRepository) FirstByEvent(ctx context.Context, eventID string) (*domain.Photo, error) {
	var photo domain.Photo
	err := r.db.WithContext(ctx).
		Where("event_id = ?", eventID).
		Order("sort_order ASC").
		First(&photo).Error
	if err != nil {
		return nil, err
	}
	return &photo, nil
}

func (r *photoRepository) ListAllByEvent(ctx context.Context, eventID string) ([]domain.Photo, error) {
	var photos []domain.Photo
	err := r.db.WithContext(ctx).
		Where("event_id = ?", eventID).
		Order("sort_order ASC").
		Find(&photos).Error
	if err != nil {
		return nil, err
	}
	return photos, nil
}

func (r *photoRepository) MaxSortOrder(ctx context.Context, eventID string) (int, error) {
	var max *int
	err := r.db.WithContext(ctx).Model(&domain.Photo{}).
		Where("event_id = ?", eventID).
		Select("MAX(sort_order)").
		Scan(&max).Error
	if err != nil {
		return 0, err
	}
	if max == nil {
		return -1, nil
	}
	return *max, nil
}

func (r *photoRepository) Create(ctx context.Context, photo *domain.Photo) error {
	return r.db.WithContext(ctx).Create(photo).Error
}

func (r *photoRepository) Delete(ctx context.Context, id string) error {
	return r.db.WithContext(ctx).Delete(&domain.Photo{}, "id = ?", id).Error
}
