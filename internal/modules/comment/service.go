package comment

import (
	"context"
	"errors"
	"log"
	"strings"
	"unicode/utf8"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"shrikemedia/internal/domain"
	"shrikemedia/internal/pkg/ratelimit"
	"shrikemedia/internal/repository"
)

const (
	// MaxBodyLength caps a guestbook entry.
	MaxBodyLength = 500
	// FetchLimit caps how many comments a listing returns; the UI paginates
	// locally from there.
	FetchLimit = 100
	// MinDwellMS is the minimum time a human plausibly needs between seeing
	// the form and submitting it.
	MinDwellMS = 2000

	defaultAuthorName = "Guest"
)

// PhotoGate resolves the event's first photo, the legacy guestbook anchor.
type PhotoGate interface {
	FirstByEvent(ctx context.Context, eventID string) (*domain.Photo, error)
}

// Notifier pushes new comments to live gallery viewers. Optional.
type Notifier interface {
	NotifyCommentPosted(eventID string, comment *domain.PhotoComment)
}

type Service struct {
	comments repository.PhotoCommentRepository
	photos   PhotoGate
	limiter  ratelimit.Limiter
	notifier Notifier
}

func NewService(comments repository.PhotoCommentRepository, photos PhotoGate, limiter ratelimit.Limiter, notifier Notifier) *Service {
	if limiter == nil {
		limiter = ratelimit.Unlimited{}
	}
	return &Service{comments: comments, photos: photos, limiter: limiter, notifier: notifier}
}

// Submit runs the anti-spam gates and appends the comment.
//
// Bot signatures (filled honeypot, dwell under the threshold) return
// (nil, nil): the submitter sees success, nothing is stored, and bots get no
// signal to train against. Everything else that rejects does so visibly.
func (s *Service) Submit(ctx context.Context, eventID string, req SubmitCommentRequest) (*domain.PhotoComment, error) {
	if eventID == "" {
		return nil, ErrInvalidRequest
	}

	if strings.TrimSpace(req.Website) != "" {
		return nil, nil
	}
	if req.DwellMS < MinDwellMS {
		return nil, nil
	}

	if req.DeviceID == "" {
		return nil, ErrDeviceMissing
	}

	body := strings.TrimSpace(req.Body)
	if body == "" || utf8.RuneCountInString(body) > MaxBodyLength {
		return nil, ErrInvalidRequest
	}

	name := strings.TrimSpace(req.AuthorName)
	if !isClean(body) || (name != "" && !isClean(name)) {
		return nil, ErrProfanity
	}
	if name == "" {
		name = defaultAuthorName
	}

	allowed, err := s.limiter.Allow(ctx, "comments:"+req.DeviceID)
	if err != nil {
		// Fail open: a broken limiter should not take the guestbook down.
		log.Printf("comment_rate_limit_check_failed device_id=%s error=%q", req.DeviceID, err)
	} else if !allowed {
		return nil, ErrRateLimited
	}

	anchor, err := s.photos.FirstByEvent(ctx, eventID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrInvalidRequest
		}
		return nil, err
	}

	cm := &domain.PhotoComment{
		ID:         uuid.NewString(),
		EventID:    eventID,
		PhotoID:    anchor.ID,
		DeviceID:   req.DeviceID,
		AuthorName: name,
		Body:       body,
		IsVisible:  true,
	}
	if err := s.comments.Create(ctx, cm); err != nil {
		return nil, err
	}

	if s.notifier != nil {
		s.notifier.NotifyCommentPosted(eventID, cm)
	}

	return cm, nil
}

// List returns visible comments newest first, capped at FetchLimit.
func (s *Service) List(ctx context.Context, eventID string) ([]domain.PhotoComment, error) {
	if eventID == "" {
		return nil, ErrInvalidRequest
	}
	comments, err := s.comments.ListVisibleByEvent(ctx, eventID, FetchLimit)
	if err != nil {
		return nil, err
	}
	if comments == nil {
		comments = []domain.PhotoComment{}
	}
	return comments, nil
}
