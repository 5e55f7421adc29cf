package like

import (
	"context"
	"errors"

	"gorm.io/gorm"

	"shrikemedia/internal/repository"
)

// LikeResult is what a toggle leg reports back: the authoritative counter and
// whether the relation already existed.
type LikeResult struct {
	PhotoID      string `json:"photo_id"`
	LikeCount    int64  `json:"like_count"`
	AlreadyLiked bool   `json:"already_liked,omitempty"`
}

type Service struct {
	likes    repository.PhotoLikeRepository
	photos   PhotoGate
	notifier Notifier
}

func NewService(likes repository.PhotoLikeRepository, photos PhotoGate, notifier Notifier) *Service {
	return &Service{likes: likes, photos: photos, notifier: notifier}
}

// Like records the (photo, device) relation. A duplicate create hits the
// unique constraint and is reported as "already liked", which the caller treats
// as a no-op rather than an error.
func (s *Service) Like(ctx context.Context, photoID, deviceID string) (*LikeResult, error) {
	if photoID == "" || deviceID == "" {
		return nil, ErrInvalidRequest
	}

	photo, err := s.photos.GetByID(ctx, photoID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}

	count, err := s.likes.Create(ctx, photoID, deviceID)
	if err != nil {
		if errors.Is(err, repository.ErrDuplicateLike) {
			return &LikeResult{PhotoID: photoID, LikeCount: photo.LikeCount, AlreadyLiked: true}, nil
		}
		return nil, err
	}

	if s.notifier != nil {
		s.notifier.NotifyLikeChanged(photo.EventID, photoID, count)
	}

	return &LikeResult{PhotoID: photoID, LikeCount: count}, nil
}

// Unlike deletes the relation. Deleting a like that does not exist is
// ErrNotFound; the client rolls its optimistic state back on that.
func (s *Service) Unlike(ctx context.Context, photoID, deviceID string) (*LikeResult, error) {
	if photoID == "" || deviceID == "" {
		return nil, ErrInvalidRequest
	}

	photo, err := s.photos.GetByID(ctx, photoID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}

	count, err := s.likes.Delete(ctx, photoID, deviceID)
	if err != nil {
		if errors.Is(err, repository.ErrLikeNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}

	if s.notifier != nil {
		s.notifier.NotifyLikeChanged(photo.EventID, photoID, count)
	}

	return &LikeResult{PhotoID: photoID, LikeCount: count}, nil
}

// LikedPhotoIDs returns which photos of an event this device has liked. The
// relation, not the denormalized counter, is the source of truth for "is
// this device's like counted".
func (s *Service) LikedPhotoIDs(ctx context.Context, eventID, deviceID string) ([]string, error) {
	if eventID == "" || deviceID == "" {
		return nil, ErrInvalidRequest
	}
	ids, err := s.likes.ListPhotoIDsByDevice(ctx, eventID, deviceID)
	if err != nil {
		return nil, err
	}
	if ids == nil {
		ids = []string{}
	}
	return ids, nil
}
