package repository

import (
	"context"
	"errors"

	"gorm.io/gorm"

	"shrikemedia/internal/domain"
)

// ErrCommentNotFound means no comment row matched the given id.
var ErrCommentNotFound = errors.New("comment not found")

// PhotoCommentRepository manages the append-only guestbook. Clients never
// update or delete; moderation only flips visibility.
type PhotoCommentRepository interface {
	Create(ctx context.Context, comment *domain.PhotoComment) error
	ListVisibleByEvent(ctx context.Context, eventID string, limit int) ([]domain.PhotoComment, error)
	Hide(ctx context.Context, id string) error
}

type photoCommentRepository struct {
	db *gorm.DB
}

func NewPhotoCommentRepository(db *gorm.DB) PhotoCommentRepository {
	return &photoCommentRepository{db: db}
}

func (r *photoCommentRepository) Create(ctx context.Context, comment *domain.PhotoComment) error {
	return r.db.WithContext(ctx).Create(comment).Error
}

// ListVisibleByEvent returns visible comments newest first, capped at limit.
func (r *photoCommentRepository) ListVisibleByEvent(ctx context.Context, eventID string, limit int) ([]domain.PhotoComment, error) {
	var comments []domain.PhotoComment
	query := r.db.WithContext(ctx).
		Where("event_id = ? AND is_visible = ?", eventID, true).
		Order("created_at DESC")
	if limit > 0 {
		query = query.Limit(limit)
	}
	if err := query.Find(&comments).Error; err != nil {
		return nil, err
	}
	return comments, nil
}

func (r *photoCommentRepository) Hide(ctx context.Context, id string) error {
	result := r.db.WithContext(ctx).Model(&domain.PhotoComment{}).
		Where("id = ?", id).
		Update("is_visible", false)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return ErrCommentNotFound
	}
	return nil
}
