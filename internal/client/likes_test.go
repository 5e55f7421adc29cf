package client

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"shrikemedia/internal/modules/gallery"
	"shrikemedia/internal/modules/like"
)

func likeServer(t *testing.T, fail *atomic.Bool, serverCount int64) *httptest.Server {
	t.Helper()
	return httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if fail != nil && fail.Load() {
			w.WriteHeader(http.StatusInternalServerError)
			json.NewEncoder(w).Encode(map[string]any{
				"success": false,
				"error":   map[string]string{"code": "INTERNAL", "message": "boom"},
			})
			return
		}
		status := http.StatusCreated
		if r.Method == http.MethodDelete {
			status = http.StatusOK
		}
		w.WriteHeader(status)
		json.NewEncoder(w).Encode(map[string]any{
			"success": true,
			"data":    like.LikeResult{PhotoID: "photo-1", LikeCount: serverCount},
		})
	}))
}

func seededEngine(api *API) *LikeEngine {
	engine := NewLikeEngine(api, "device-a")
	engine.Seed([]gallery.PhotoResponse{{ID: "photo-1", LikeCount: 3}}, nil)
	return engine
}

func TestLikeEngine_ToggleOnAdoptsServerCount(t *testing.T) {
	server := likeServer(t, nil, 4)
	defer server.Close()

	engine := seededEngine(NewAPI(server.URL))

	err := engine.Toggle(context.Background(), "photo-1")

	require.NoError(t, err)
	assert.True(t, engine.Liked("photo-1"))
	assert.Equal(t, int64(4), engine.Count("photo-1"))
}

func TestLikeEngine_FailedToggleRollsBack(t *testing.T) {
	var fail atomic.Bool
	fail.Store(true)
	server := likeServer(t, &fail, 0)
	defer server.Close()

	engine := seededEngine(NewAPI(server.URL))

	err := engine.Toggle(context.Background(), "photo-1")

	// The optimistic flip is reverted to the pre-toggle snapshot.
	require.Error(t, err)
	assert.False(t, engine.Liked("photo-1"))
	assert.Equal(t, int64(3), engine.Count("photo-1"))
}

func TestLikeEngine_ToggleOffDecrements(t *testing.T) {
	server := likeServer(t, nil, 2)
	defer server.Close()

	engine := seededEngine(NewAPI(server.URL))
	engine.Seed(nil, []string{"photo-1"})

	err := engine.Toggle(context.Background(), "photo-1")

	require.NoError(t, err)
	assert.False(t, engine.Liked("photo-1"))
	assert.Equal(t, int64(2), engine.Count("photo-1"))
}

func TestLikeEngine_UnlikeMissingRelationIsIdempotent(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNotFound)
		json.NewEncoder(w).Encode(map[string]any{
			"success": false,
			"error":   map[string]string{"code": "NOT_FOUND", "message": "Like not found"},
		})
	}))
	defer server.Close()

	engine := seededEngine(NewAPI(server.URL))
	engine.Seed(nil, []string{"photo-1"})

	// The relation is already gone server-side; the desired state holds.
	err := engine.Toggle(context.Background(), "photo-1")

	require.NoError(t, err)
	assert.False(t, engine.Liked("photo-1"))
}

func TestLikeEngine_InertWithoutDevice(t *testing.T) {
	var requests atomic.Int64
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		requests.Add(1)
	}))
	defer server.Close()

	engine := NewLikeEngine(NewAPI(server.URL), "")

	err := engine.Toggle(context.Background(), "photo-1")

	require.NoError(t, err)
	assert.False(t, engine.Liked("photo-1"))
	assert.Zero(t, requests.Load())
}

func TestLikeEngine_CountNeverNegative(t *testing.T) {
	server := likeServer(t, nil, 0)
	defer server.Close()

	engine := NewLikeEngine(NewAPI(server.URL), "device-a")
	engine.Seed([]gallery.PhotoResponse{{ID: "photo-1", LikeCount: 0}}, []string{"photo-1"})

	err := engine.Toggle(context.Background(), "photo-1")

	require.NoError(t, err)
	assert.Equal(t, int64(0), engine.Count("photo-1"))
}
