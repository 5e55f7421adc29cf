package download

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"gorm.io/gorm"

	"shrikemedia/internal/domain"
)

type MockDownloadSessionRepository struct {
	mock.Mock
}

func (m *MockDownloadSessionRepository) Create(ctx context.Context, session *domain.DownloadSession) error {
	args := m.Called(ctx, session)
	return args.Error(0)
}

func (m *MockDownloadSessionRepository) GetByToken(ctx context.Context, token string) (*domain.DownloadSession, error) {
	args := m.Called(ctx, token)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.DownloadSession), args.Error(1)
}

func (m *MockDownloadSessionRepository) IncrementDownloadCount(ctx context.Context, id string) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

type MockEventRepository struct {
	mock.Mock
}

func (m *MockEventRepository) GetPublishedBySlug(ctx context.Context, slug string) (*domain.Event, error) {
	args := m.Called(ctx, slug)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Event), args.Error(1)
}

func (m *MockEventRepository) GetBySlug(ctx context.Context, slug string) (*domain.Event, error) {
	args := m.Called(ctx, slug)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Event), args.Error(1)
}

func (m *MockEventRepository) GetByID(ctx context.Context, id string) (*domain.Event, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Event), args.Error(1)
}

func (m *MockEventRepository) Create(ctx context.Context, event *domain.Event) error {
	args := m.Called(ctx, event)
	return args.Error(0)
}

type MockPhotoRepository struct {
	mock.Mock
}

func (m *MockPhotoRepository) ListByEvent(ctx context.Context, eventID string, offset, limit int) ([]domain.Photo, int64, error) {
	args := m.Called(ctx, eventID, offset, limit)
	return args.Get(0).([]domain.Photo), args.Get(1).(int64), args.Error(2)
}

func (m *MockPhotoRepository) GetByID(ctx context.Context, id string) (*domain.Photo, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Photo), args.Error(1)
}

func (m *MockPhotoRepository) GetByIDs(ctx context.Context, ids []string) ([]domain.Photo, error) {
	args := m.Called(ctx, ids)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Photo), args.Error(1)
}

func (m *MockPhotoRepository) FirstByEvent(ctx context.Context, eventID string) (*domain.Photo, error) {
	args := m.Called(ctx, eventID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Photo), args.Error(1)
}

func (m *MockPhotoRepository) ListAllByEvent(ctx context.Context, eventID string) ([]domain.Photo, error) {
	args := m.Called(ctx, eventID)
	return args.Get(0).([]domain.Photo), args.Error(1)
}

func (m *MockPhotoRepository) MaxSortOrder(ctx context.Context, eventID string) (int, error) {
	args := m.Called(ctx, eventID)
	return args.Int(0), args.Error(1)
}

func (m *MockPhotoRepository) Create(ctx context.Context, photo *domain.Photo) error {
	args := m.Called(ctx, photo)
	return args.Error(0)
}

func (m *MockPhotoRepository) Delete(ctx context.Context, id string) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

type staticURLs struct{}

func (staticURLs) PublicURL(path string) string {
	return "https://cdn.test/" + path
}

func newTestService(sessions *MockDownloadSessionRepository, events *MockEventRepository, photos *MockPhotoRepository, now time.Time) *Service {
	svc := NewService(sessions, events, photos, staticURLs{})
	svc.now = func() time.Time { return now }
	return svc
}

func TestService_CreateSession_SetsExpiry(t *testing.T) {
	mockSessions := new(MockDownloadSessionRepository)
	mockEvents := new(MockEventRepository)
	mockPhotos := new(MockPhotoRepository)

	now := time.Date(2026, 8, 1, 12, 0, 0, 0, time.UTC)

	mockEvents.On("GetByID", mock.Anything, "ev-1").
		Return(&domain.Event{ID: "ev-1", Slug: "spring-wedding", Title: "Spring Wedding"}, nil)
	mockSessions.On("Create", mock.Anything, mock.Anything).Return(nil)

	service := newTestService(mockSessions, mockEvents, mockPhotos, now)

	session, err := service.CreateSession(context.Background(), CreateSessionRequest{
		EventID:  "ev-1",
		Email:    "guest@example.com",
		PhotoIDs: []string{"photo-1", "photo-2"},
	})

	assert.NoError(t, err)
	assert.Equal(t, now.Add(72*time.Hour), session.ExpiresAt)
	assert.NotEmpty(t, session.Token)
	assert.NotEqual(t, session.ID, session.Token)
}

func TestService_CreateSession_RejectsBadEmail(t *testing.T) {
	service := newTestService(new(MockDownloadSessionRepository), new(MockEventRepository), new(MockPhotoRepository), time.Now())

	_, err := service.CreateSession(context.Background(), CreateSessionRequest{
		EventID:  "ev-1",
		Email:    "not-an-email",
		PhotoIDs: []string{"photo-1"},
	})
	assert.ErrorIs(t, err, ErrInvalidRequest)
}

func TestService_CreateSession_RejectsEmptySelection(t *testing.T) {
	service := newTestService(new(MockDownloadSessionRepository), new(MockEventRepository), new(MockPhotoRepository), time.Now())

	_, err := service.CreateSession(context.Background(), CreateSessionRequest{
		EventID: "ev-1",
		Email:   "guest@example.com",
	})
	assert.ErrorIs(t, err, ErrInvalidRequest)
}

func TestService_Get_UnknownToken(t *testing.T) {
	mockSessions := new(MockDownloadSessionRepository)
	mockSessions.On("GetByToken", mock.Anything, "ghost").Return(nil, gorm.ErrRecordNotFound)

	service := newTestService(mockSessions, new(MockEventRepository), new(MockPhotoRepository), time.Now())

	_, err := service.Get(context.Background(), "ghost")
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestService_Get_ExpiryBoundary(t *testing.T) {
	expiresAt := time.Date(2026, 8, 4, 12, 0, 0, 0, time.UTC)
	session := &domain.DownloadSession{ID: "s-1", Token: "tok", EventID: "ev-1", ExpiresAt: expiresAt}

	// One second before the boundary the link still works.
	mockSessions := new(MockDownloadSessionRepository)
	mockSessions.On("GetByToken", mock.Anything, "tok").Return(session, nil)
	service := newTestService(mockSessions, new(MockEventRepository), new(MockPhotoRepository), expiresAt.Add(-time.Second))

	got, err := service.Get(context.Background(), "tok")
	assert.NoError(t, err)
	assert.Equal(t, "s-1", got.ID)

	// At exactly expires_at the link is already dead.
	service = newTestService(mockSessions, new(MockEventRepository), new(MockPhotoRepository), expiresAt)

	_, err = service.Get(context.Background(), "tok")
	assert.ErrorIs(t, err, ErrExpired)
}

func TestService_Visit_IncrementsAndLoads(t *testing.T) {
	expiresAt := time.Date(2026, 8, 4, 12, 0, 0, 0, time.UTC)
	session := &domain.DownloadSession{
		ID:       "s-1",
		Token:    "tok",
		EventID:  "ev-1",
		Email:    "guest@example.com",
		PhotoIDs: `["photo-1","photo-2"]`,

		ExpiresAt:     expiresAt,
		DownloadCount: 2,
	}

	mockSessions := new(MockDownloadSessionRepository)
	mockEvents := new(MockEventRepository)
	mockPhotos := new(MockPhotoRepository)

	mockSessions.On("GetByToken", mock.Anything, "tok").Return(session, nil)
	mockSessions.On("IncrementDownloadCount", mock.Anything, "s-1").Return(nil)
	mockEvents.On("GetByID", mock.Anything, "ev-1").
		Return(&domain.Event{ID: "ev-1", Slug: "spring-wedding", Title: "Spring Wedding"}, nil)
	mockPhotos.On("GetByIDs", mock.Anything, []string{"photo-1", "photo-2"}).
		Return([]domain.Photo{
			{ID: "photo-1", Filename: "001.jpg", StoragePath: "sw/full/001.jpg", ThumbPath: "sw/thumb/001.webp"},
			{ID: "photo-2", Filename: "002.jpg", StoragePath: "sw/full/002.jpg", ThumbPath: "sw/thumb/002.webp"},
		}, nil)

	service := newTestService(mockSessions, mockEvents, mockPhotos, expiresAt.Add(-time.Hour))

	view, err := service.Visit(context.Background(), "tok")

	assert.NoError(t, err)
	assert.Equal(t, "Spring Wedding", view.EventTitle)
	assert.Equal(t, int64(3), view.DownloadCount)
	assert.Len(t, view.Photos, 2)
	assert.Equal(t, "https://cdn.test/sw/full/001.jpg", view.Photos[0].FullURL)
	mockSessions.AssertCalled(t, "IncrementDownloadCount", mock.Anything, "s-1")
}

func TestService_Visit_CounterFailureStillRenders(t *testing.T) {
	expiresAt := time.Now().Add(time.Hour)
	session := &domain.DownloadSession{ID: "s-1", Token: "tok", EventID: "ev-1", PhotoIDs: `["photo-1"]`, ExpiresAt: expiresAt}

	mockSessions := new(MockDownloadSessionRepository)
	mockEvents := new(MockEventRepository)
	mockPhotos := new(MockPhotoRepository)

	mockSessions.On("GetByToken", mock.Anything, "tok").Return(session, nil)
	mockSessions.On("IncrementDownloadCount", mock.Anything, "s-1").Return(gorm.ErrInvalidDB)
	mockEvents.On("GetByID", mock.Anything, "ev-1").Return(&domain.Event{ID: "ev-1", Title: "Ev"}, nil)
	mockPhotos.On("GetByIDs", mock.Anything, []string{"photo-1"}).
		Return([]domain.Photo{{ID: "photo-1"}}, nil)

	service := newTestService(mockSessions, mockEvents, mockPhotos, time.Now())

	view, err := service.Visit(context.Background(), "tok")

	assert.NoError(t, err)
	assert.Len(t, view.Photos, 1)
}
