package client

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"shrikemedia/internal/modules/gallery"
)

// photoStoreServer serves paginated photos for one event the way the API
// does, so the pager is exercised against real envelope traffic.
func photoStoreServer(t *testing.T, total int, requests *atomic.Int64, failFirst *atomic.Bool) *httptest.Server {
	t.Helper()
	return httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if requests != nil {
			requests.Add(1)
		}
		if failFirst != nil && failFirst.CompareAndSwap(true, false) {
			w.WriteHeader(http.StatusInternalServerError)
			json.NewEncoder(w).Encode(map[string]any{
				"success": false,
				"error":   map[string]string{"code": "INTERNAL", "message": "boom"},
			})
			return
		}

		var offset, limit int
		fmt.Sscanf(r.URL.Query().Get("offset"), "%d", &offset)
		fmt.Sscanf(r.URL.Query().Get("limit"), "%d", &limit)
		if limit <= 0 || limit > gallery.PageSize {
			limit = gallery.PageSize
		}

		photos := make([]gallery.PhotoResponse, 0, limit)
		for i := offset; i < offset+limit && i < total; i++ {
			photos = append(photos, gallery.PhotoResponse{
				ID:        fmt.Sprintf("photo-%03d", i),
				SortOrder: i,
			})
		}

		json.NewEncoder(w).Encode(map[string]any{
			"success": true,
			"data": gallery.PhotoPageResponse{
				Photos:     photos,
				TotalCount: int64(total),
				HasMore:    offset+limit < total,
			},
		})
	}))
}

func TestPager_LoadsEveryPhotoExactlyOnce(t *testing.T) {
	// 120 photos load as 50 + 50 + 20.
	server := photoStoreServer(t, 120, nil, nil)
	defer server.Close()

	pager := NewPager(NewAPI(server.URL), "press-club")
	ctx := context.Background()

	added, err := pager.LoadMore(ctx)
	require.NoError(t, err)
	assert.Equal(t, 50, added)
	assert.True(t, pager.HasMore())

	added, err = pager.LoadMore(ctx)
	require.NoError(t, err)
	assert.Equal(t, 50, added)

	added, err = pager.LoadMore(ctx)
	require.NoError(t, err)
	assert.Equal(t, 20, added)
	assert.False(t, pager.HasMore())

	photos := pager.Photos()
	require.Len(t, photos, 120)
	seen := make(map[string]bool, len(photos))
	for i, p := range photos {
		assert.False(t, seen[p.ID], "duplicate %s", p.ID)
		seen[p.ID] = true
		assert.Equal(t, i, p.SortOrder)
	}
}

func TestPager_NoOpWhenExhausted(t *testing.T) {
	var requests atomic.Int64
	server := photoStoreServer(t, 30, &requests, nil)
	defer server.Close()

	pager := NewPager(NewAPI(server.URL), "small-event")
	ctx := context.Background()

	_, err := pager.LoadMore(ctx)
	require.NoError(t, err)
	assert.False(t, pager.HasMore())
	before := requests.Load()

	added, err := pager.LoadMore(ctx)
	require.NoError(t, err)
	assert.Zero(t, added)
	assert.Equal(t, before, requests.Load(), "exhausted pager must not hit the store")
}

func TestPager_OverlappingLoadsCollapse(t *testing.T) {
	arrived := make(chan struct{})
	release := make(chan struct{})
	var requests atomic.Int64

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		requests.Add(1)
		close(arrived)
		<-release
		json.NewEncoder(w).Encode(map[string]any{
			"success": true,
			"data": gallery.PhotoPageResponse{
				Photos:     []gallery.PhotoResponse{{ID: "photo-000"}},
				TotalCount: 1,
				HasMore:    false,
			},
		})
	}))
	defer server.Close()

	pager := NewPager(NewAPI(server.URL), "busy-event")
	ctx := context.Background()

	done := make(chan error, 1)
	go func() {
		_, err := pager.LoadMore(ctx)
		done <- err
	}()
	<-arrived

	// A second trigger while the first request is on the wire is dropped.
	added, err := pager.LoadMore(ctx)
	assert.NoError(t, err)
	assert.Zero(t, added)

	close(release)
	require.NoError(t, <-done)
	assert.Equal(t, int64(1), requests.Load())
	assert.Len(t, pager.Photos(), 1)
}

func TestPager_FailedLoadIsRetryable(t *testing.T) {
	var failFirst atomic.Bool
	failFirst.Store(true)
	server := photoStoreServer(t, 60, nil, &failFirst)
	defer server.Close()

	pager := NewPager(NewAPI(server.URL), "flaky-event")
	ctx := context.Background()

	_, err := pager.LoadMore(ctx)
	require.Error(t, err)
	assert.Zero(t, pager.Loaded())
	assert.True(t, pager.HasMore())

	// The retry asks for the same batch: nothing was skipped.
	added, err := pager.LoadMore(ctx)
	require.NoError(t, err)
	assert.Equal(t, 50, added)
	assert.Equal(t, "photo-000", pager.Photos()[0].ID)
}

func TestPager_SeedSkipsFirstFetch(t *testing.T) {
	var requests atomic.Int64
	server := photoStoreServer(t, 70, &requests, nil)
	defer server.Close()

	pager := NewPager(NewAPI(server.URL), "seeded-event")
	pager.Seed(&gallery.PhotoPageResponse{
		Photos:     []gallery.PhotoResponse{{ID: "photo-000"}, {ID: "photo-001"}},
		TotalCount: 70,
		HasMore:    true,
	})

	assert.Equal(t, 2, pager.Loaded())
	assert.Equal(t, int64(70), pager.TotalCount())

	// The next load continues from the seeded offset.
	_, err := pager.LoadMore(context.Background())
	require.NoError(t, err)
	assert.Equal(t, "photo-002", pager.Photos()[2].ID)
}
