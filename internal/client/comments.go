package client

import (
	"context"
	"sync"
	"time"

	"shrikemedia/internal/domain"
	"shrikemedia/internal/modules/comment"
)

// CommentForm is the guestbook state for one event: the loaded entries plus
// the timing data the submit gates need. The form remembers when it was
// presented so dwell time rides along with each submission.
type CommentForm struct {
	api      *API
	slug     string
	deviceID string
	now      func() time.Time

	mu         sync.Mutex
	renderedAt time.Time
	list       []domain.PhotoComment
}

func NewCommentForm(api *API, slug, deviceID string) *CommentForm {
	f := &CommentForm{
		api:      api,
		slug:     slug,
		deviceID: deviceID,
		now:      time.Now,
	}
	f.renderedAt = f.now()
	return f
}

// Load fetches the visible guestbook, newest first.
func (f *CommentForm) Load(ctx context.Context) error {
	list, err := f.api.Comments(ctx, f.slug)
	if err != nil {
		return err
	}
	f.mu.Lock()
	f.list = list
	f.mu.Unlock()
	return nil
}

// Comments returns the loaded entries, newest first.
func (f *CommentForm) Comments() []domain.PhotoComment {
	f.mu.Lock()
	defer f.mu.Unlock()
	out := make([]domain.PhotoComment, len(f.list))
	copy(out, f.list)
	return out
}

// Submit posts an entry with the measured dwell time and the (normally
// empty) honeypot value. A nil comment with nil error means the store
// silently dropped the submission; the list is left untouched. On success
// the canonical row is prepended and the dwell clock restarts.
func (f *CommentForm) Submit(ctx context.Context, authorName, body, honeypot string) (*domain.PhotoComment, error) {
	f.mu.Lock()
	dwell := f.now().Sub(f.renderedAt).Milliseconds()
	f.mu.Unlock()

	cm, err := f.api.SubmitComment(ctx, f.slug, comment.SubmitCommentRequest{
		DeviceID:   f.deviceID,
		AuthorName: authorName,
		Body:       body,
		Website:    honeypot,
		DwellMS:    dwell,
	})
	if err != nil {
		return nil, err
	}
	if cm == nil {
		return nil, nil
	}

	f.mu.Lock()
	f.list = append([]domain.PhotoComment{*cm}, f.list...)
	f.renderedAt = f.now()
	f.mu.Unlock()
	return cm, nil
}
