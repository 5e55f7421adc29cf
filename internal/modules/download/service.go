package download

import (
	"context"
	"errors"
	"log"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"shrikemedia/internal/domain"
	"shrikemedia/internal/pkg/utils"
	"shrikemedia/internal/pkg/validator"
	"shrikemedia/internal/repository"
)

// SessionTTL is fixed at creation and never extended.
const SessionTTL = 72 * time.Hour

// URLBuilder turns a stored relative path into a public object URL.
type URLBuilder interface {
	PublicURL(path string) string
}

type Service struct {
	sessions repository.DownloadSessionRepository
	events   repository.EventRepository
	photos   repository.PhotoRepository
	urls     URLBuilder
	ttl      time.Duration
	now      func() time.Time
}

func NewService(sessions repository.DownloadSessionRepository, events repository.EventRepository, photos repository.PhotoRepository, urls URLBuilder) *Service {
	return &Service{
		sessions: sessions,
		events:   events,
		photos:   photos,
		urls:     urls,
		ttl:      SessionTTL,
		now:      time.Now,
	}
}

// CreateSession mints a token-addressed session for the selected photos.
func (s *Service) CreateSession(ctx context.Context, req CreateSessionRequest) (*domain.DownloadSession, error) {
	if fields := validator.Validate(req); fields != nil {
		return nil, ErrInvalidRequest
	}

	if _, err := s.events.GetByID(ctx, req.EventID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}

	session := &domain.DownloadSession{
		ID:        uuid.NewString(),
		Token:     uuid.NewString(),
		EventID:   req.EventID,
		Email:     req.Email,
		PhotoIDs:  utils.IDsToString(req.PhotoIDs),
		ExpiresAt: s.now().Add(s.ttl),
	}
	if err := s.sessions.Create(ctx, session); err != nil {
		return nil, err
	}
	return session, nil
}

// Get resolves a token without counting a visit. The expiry boundary counts
// as expired: a session whose expires_at equals "now" is already unusable.
func (s *Service) Get(ctx context.Context, token string) (*domain.DownloadSession, error) {
	if token == "" {
		return nil, ErrInvalidRequest
	}
	session, err := s.sessions.GetByToken(ctx, token)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	if session.ExpiredAt(s.now()) {
		return nil, ErrExpired
	}
	return session, nil
}

// Visit resolves a token for the download page: counts the visit and loads
// the event plus the session's photos.
func (s *Service) Visit(ctx context.Context, token string) (*SessionView, error) {
	session, err := s.Get(ctx, token)
	if err != nil {
		return nil, err
	}

	if err := s.sessions.IncrementDownloadCount(ctx, session.ID); err != nil {
		// The page still renders; the counter is best-effort bookkeeping.
		log.Printf("download_count_increment_failed session_id=%s error=%q", session.ID, err)
	}

	event, err := s.events.GetByID(ctx, session.EventID)
	if err != nil {
		return nil, err
	}

	photos, err := s.photos.GetByIDs(ctx, utils.StringToIDs(session.PhotoIDs))
	if err != nil {
		return nil, err
	}

	view := &SessionView{
		Token:         session.Token,
		EventTitle:    event.Title,
		EventSlug:     event.Slug,
		Email:         session.Email,
		ExpiresAt:     session.ExpiresAt,
		DownloadCount: session.DownloadCount + 1,
		Photos:        make([]SessionPhoto, len(photos)),
	}
	for i := range photos {
		view.Photos[i] = s.toSessionPhoto(&photos[i])
	}
	return view, nil
}
