package client

import (
	"context"
	"errors"
	"sync"

	"shrikemedia/internal/modules/gallery"
)

// LikeEngine holds the device's like state for one event and applies toggles
// optimistically: the local state flips before the request goes out, and is
// rolled back to the pre-toggle snapshot if the request fails. Without a
// device identity the engine is inert.
type LikeEngine struct {
	api      *API
	deviceID string

	mu     sync.Mutex
	liked  map[string]bool
	counts map[string]int64
}

func NewLikeEngine(api *API, deviceID string) *LikeEngine {
	return &LikeEngine{
		api:      api,
		deviceID: deviceID,
		liked:    make(map[string]bool),
		counts:   make(map[string]int64),
	}
}

// Seed loads the counts from a photo batch and the device's own likes.
// Call it again as further batches arrive; known entries keep their state.
func (e *LikeEngine) Seed(photos []gallery.PhotoResponse, likedIDs []string) {
	e.mu.Lock()
	defer e.mu.Unlock()
	for _, p := range photos {
		if _, ok := e.counts[p.ID]; !ok {
			e.counts[p.ID] = p.LikeCount
		}
	}
	for _, id := range likedIDs {
		e.liked[id] = true
	}
}

// Liked reports whether this device has liked the photo.
func (e *LikeEngine) Liked(photoID string) bool {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.liked[photoID]
}

// Count returns the locally-known like count for the photo.
func (e *LikeEngine) Count(photoID string) int64 {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.counts[photoID]
}

// SetCount adopts an authoritative count, e.g. from the live activity feed.
func (e *LikeEngine) SetCount(photoID string, count int64) {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.counts[photoID] = count
}

// Toggle flips the like state optimistically and reconciles with the store.
// On failure the snapshot taken at toggle time is restored and the error
// returned; callers surface nothing to the viewer beyond the reverted state.
func (e *LikeEngine) Toggle(ctx context.Context, photoID string) error {
	if e.deviceID == "" {
		return nil
	}

	e.mu.Lock()
	wasLiked := e.liked[photoID]
	prevCount := e.counts[photoID]
	e.liked[photoID] = !wasLiked
	if wasLiked {
		if prevCount > 0 {
			e.counts[photoID] = prevCount - 1
		}
	} else {
		e.counts[photoID] = prevCount + 1
	}
	e.mu.Unlock()

	var err error
	if wasLiked {
		_, err = e.api.Unlike(ctx, photoID, e.deviceID)
		// The relation being gone already means the desired state holds.
		var apiErr *APIError
		if errors.As(err, &apiErr) && apiErr.Code == "NOT_FOUND" {
			err = nil
		}
	} else {
		res, likeErr := e.api.Like(ctx, photoID, e.deviceID)
		err = likeErr
		if likeErr == nil {
			e.mu.Lock()
			e.counts[photoID] = res.LikeCount
			e.mu.Unlock()
		}
	}

	if err != nil {
		e.mu.Lock()
		e.liked[photoID] = wasLiked
		e.counts[photoID] = prevCount
		e.mu.Unlock()
		return err
	}
	return nil
}
