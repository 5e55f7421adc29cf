package export

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"shrikemedia/internal/domain"
	"shrikemedia/internal/pkg/utils"
)

type stubPhotoGate struct {
	photo *domain.Photo
}

func (s stubPhotoGate) GetByID(ctx context.Context, id string) (*domain.Photo, error) {
	return s.photo, nil
}

func (s stubPhotoGate) GetByIDs(ctx context.Context, ids []string) ([]domain.Photo, error) {
	return []domain.Photo{*s.photo}, nil
}

type stubSessionGate struct {
	session *domain.DownloadSession
	err     error
}

func (s stubSessionGate) Get(ctx context.Context, token string) (*domain.DownloadSession, error) {
	return s.session, s.err
}

func exportRouter(svc *Service, sessions SessionGate, photos PhotoGate) *gin.Engine {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	NewHandler(svc, sessions, photos).RegisterRoutes(r.Group("/api/v1"))
	return r
}

func TestHandler_InstantDownload_RedirectsToSourceOnTranscodeFailure(t *testing.T) {
	// No object behind the path, so every transcode attempt fails.
	server := objectServer(nil)
	defer server.Close()

	urls := serverURLs{base: server.URL}
	photo := &domain.Photo{ID: "photo-1", Filename: "001.jpg", StoragePath: "ev/full/001.jpg"}
	router := exportRouter(NewService(urls), stubSessionGate{}, stubPhotoGate{photo: photo})

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/api/v1/photos/photo-1/web", nil)
	router.ServeHTTP(w, req)

	require.Equal(t, http.StatusFound, w.Code)
	assert.Equal(t, urls.PublicURL(photo.StoragePath), w.Header().Get("Location"))
}

func TestHandler_InstantDownload_ServesJPEGWhenTranscodeSucceeds(t *testing.T) {
	src := encodeJPEG(t, testImage(800, 600))
	server := objectServer(map[string][]byte{"/ev/full/001.jpg": src})
	defer server.Close()

	photo := &domain.Photo{ID: "photo-1", Filename: "001.jpg", StoragePath: "ev/full/001.jpg"}
	router := exportRouter(NewService(serverURLs{base: server.URL}), stubSessionGate{}, stubPhotoGate{photo: photo})

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/api/v1/photos/photo-1/web", nil)
	router.ServeHTTP(w, req)

	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "image/jpeg", w.Header().Get("Content-Type"))
	assert.Contains(t, w.Header().Get("Content-Disposition"), "001.jpg")
}

func TestHandler_SessionPhoto_RedirectsToSourceOnTranscodeFailure(t *testing.T) {
	server := objectServer(nil)
	defer server.Close()

	urls := serverURLs{base: server.URL}
	photo := &domain.Photo{ID: "photo-1", Filename: "001.jpg", StoragePath: "ev/full/001.jpg"}
	session := &domain.DownloadSession{
		ID:        "sess-1",
		Token:     "tok-1",
		PhotoIDs:  utils.IDsToString([]string{"photo-1"}),
		ExpiresAt: time.Now().Add(time.Hour),
	}
	router := exportRouter(NewService(urls), stubSessionGate{session: session}, stubPhotoGate{photo: photo})

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/api/v1/downloads/tok-1/photos/photo-1", nil)
	router.ServeHTTP(w, req)

	require.Equal(t, http.StatusFound, w.Code)
	assert.Equal(t, urls.PublicURL(photo.StoragePath), w.Header().Get("Location"))
}
