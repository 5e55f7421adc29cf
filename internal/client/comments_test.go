package client

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"shrikemedia/internal/domain"
	"shrikemedia/internal/modules/comment"
)

func guestbookServer(t *testing.T, received *comment.SubmitCommentRequest, reply *domain.PhotoComment) *httptest.Server {
	t.Helper()
	return httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Method == http.MethodPost {
			require.NoError(t, json.NewDecoder(r.Body).Decode(received))
			w.WriteHeader(http.StatusCreated)
			json.NewEncoder(w).Encode(map[string]any{"success": true, "data": reply})
			return
		}
		json.NewEncoder(w).Encode(map[string]any{
			"success": true,
			"data":    []domain.PhotoComment{{ID: "c-old", Body: "earlier"}},
		})
	}))
}

func TestCommentForm_SubmitCarriesDwellTime(t *testing.T) {
	var received comment.SubmitCommentRequest
	server := guestbookServer(t, &received, &domain.PhotoComment{ID: "c-new", AuthorName: "Aisha", Body: "hi"})
	defer server.Close()

	form := NewCommentForm(NewAPI(server.URL), "ev-1", "device-a")

	// Simulate five seconds of reading before submitting.
	base := time.Now()
	form.renderedAt = base
	form.now = func() time.Time { return base.Add(5 * time.Second) }

	cm, err := form.Submit(context.Background(), "Aisha", "hi", "")

	require.NoError(t, err)
	require.NotNil(t, cm)
	assert.Equal(t, int64(5000), received.DwellMS)
	assert.Equal(t, "device-a", received.DeviceID)
	assert.Empty(t, received.Website)
}

func TestCommentForm_SuccessPrependsAndResetsClock(t *testing.T) {
	var received comment.SubmitCommentRequest
	server := guestbookServer(t, &received, &domain.PhotoComment{ID: "c-new", Body: "hi"})
	defer server.Close()

	form := NewCommentForm(NewAPI(server.URL), "ev-1", "device-a")
	require.NoError(t, form.Load(context.Background()))

	base := time.Now()
	form.renderedAt = base
	submitTime := base.Add(10 * time.Second)
	form.now = func() time.Time { return submitTime }

	_, err := form.Submit(context.Background(), "", "hi", "")
	require.NoError(t, err)

	list := form.Comments()
	require.Len(t, list, 2)
	assert.Equal(t, "c-new", list[0].ID)
	assert.Equal(t, "c-old", list[1].ID)

	// The dwell clock restarts after a successful post.
	assert.Equal(t, submitTime, form.renderedAt)
}

func TestCommentForm_GatedSubmissionLeavesListUntouched(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		// The store silently dropped the post: success with null data.
		w.WriteHeader(http.StatusCreated)
		json.NewEncoder(w).Encode(map[string]any{"success": true, "data": nil})
	}))
	defer server.Close()

	form := NewCommentForm(NewAPI(server.URL), "ev-1", "device-a")

	cm, err := form.Submit(context.Background(), "Bot", "buy things", "http://spam")

	require.NoError(t, err)
	assert.Nil(t, cm)
	assert.Empty(t, form.Comments())
}
