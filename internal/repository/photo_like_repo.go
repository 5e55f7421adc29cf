package repository

import (
	"context"
	"errors"
	"strings"

	"github.com/jackc/pgx/v5/pgconn"
	"gorm.io/gorm"

	"shrikemedia/internal/domain"
)

var (
	// ErrDuplicateLike means the (photo, device) pair already has a row. The
	// like engine treats this as "already liked, no-op".
	ErrDuplicateLike = errors.New("photo already liked by device")
	// ErrLikeNotFound means there was no row to delete.
	ErrLikeNotFound = errors.New("like not found")
)

// PhotoLikeRepository manages the (photo, device) like relation and keeps the
// denormalized photos.like_count in step inside the same transaction.
type PhotoLikeRepository interface {
	Create(ctx context.Context, photoID, deviceID string) (likeCount int64, err error)
	Delete(ctx context.Context, photoID, deviceID string) (likeCount int64, err error)
	ListPhotoIDsByDevice(ctx context.Context, eventID, deviceID string) ([]string, error)
	Exists(ctx context.Context, photoID, deviceID string) (bool, error)
}

type photoLikeRepository struct {
	db *gorm.DB
}

func NewPhotoLikeRepository(db *gorm.DB) PhotoLikeRepository {
	return &photoLikeRepository{db: db}
}

func (r *photoLikeRepository) Create(ctx context.Context, photoID, deviceID string) (int64, error) {
	var count int64
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		like := &domain.PhotoLike{PhotoID: photoID, DeviceID: deviceID}
		if err := tx.Create(like).Error; err != nil {
			if isUniqueViolation(err) {
				return ErrDuplicateLike
			}
			return err
		}

		if err := tx.Model(&domain.Photo{}).
			Where("id = ?", photoID).
			UpdateColumn("like_count", gorm.Expr("like_count + 1")).Error; err != nil {
			return err
		}

		return tx.Model(&domain.Photo{}).
			Where("id = ?", photoID).
			Select("like_count").
			Scan(&count).Error
	})
	return count, err
}

func (r *photoLikeRepository) Delete(ctx context.Context, photoID, deviceID string) (int64, error) {
	var count int64
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		result := tx.Where("photo_id = ? AND device_id = ?", photoID, deviceID).
			Delete(&domain.PhotoLike{})
		if result.Error != nil {
			return result.Error
		}
		if result.RowsAffected == 0 {
			return ErrLikeNotFound
		}

		// Floor at zero: the counter is display data, never negative.
		if err := tx.Model(&domain.Photo{}).
			Where("id = ? AND like_count > 0", photoID).
			UpdateColumn("like_count", gorm.Expr("like_count - 1")).Error; err != nil {
			return err
		}

		return tx.Model(&domain.Photo{}).
			Where("id = ?", photoID).
			Select("like_count").
			Scan(&count).Error
	})
	return count, err
}

// ListPhotoIDsByDevice returns the ids of photos in the event this device has
// liked. Used on page load so a reload shows the device's own likes.
func (r *photoLikeRepository) ListPhotoIDsByDevice(ctx context.Context, eventID, deviceID string) ([]string, error) {
	var ids []string
	err := r.db.WithContext(ctx).Model(&domain.PhotoLike{}).
		Joins("JOIN photos ON photos.id = photo_likes.photo_id").
		Where("photos.event_id = ? AND photo_likes.device_id = ?", eventID, deviceID).
		Pluck("photo_likes.photo_id", &ids).Error
	if err != nil {
		return nil, err
	}
	return ids, nil
}

func (r *photoLikeRepository) Exists(ctx context.Context, photoID, deviceID string) (bool, error) {
	var count int64
	err := r.db.WithContext(ctx).Model(&domain.PhotoLike{}).
		Where("photo_id = ? AND device_id = ?", photoID, deviceID).
		Count(&count).Error
	if err != nil {
		return false, err
	}
	return count > 0, nil
}

// isUniqueViolation recognises duplicate-key failures from both backends:
// pgx surfaces SQLSTATE 23505, the sqlite driver a plain message.
func isUniqueViolation(err error) bool {
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		return pgErr.Code == "23505"
	}
	s := err.Error()
	return strings.Contains(s, "UNIQUE constraint failed") ||
		strings.Contains(s, "duplicate key value violates unique constraint") ||
		strings.Contains(s, "23505")
}
