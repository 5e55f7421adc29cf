package client

import (
	"context"
	"sync"

	"shrikemedia/internal/modules/gallery"
)

// Pager accumulates pagination batches for one event. The next offset is
// always the number of photos already held, so a failed fetch can be retried
// without gaps or duplicates. Overlapping LoadMore calls collapse into one
// request via the in-flight guard.
type Pager struct {
	api  *API
	slug string

	mu       sync.Mutex
	photos   []gallery.PhotoResponse
	total    int64
	hasMore  bool
	inFlight bool
}

// NewPager starts with an empty list; the first LoadMore fetches the first
// batch. Seed fills it from an already-fetched page instead.
func NewPager(api *API, slug string) *Pager {
	return &Pager{api: api, slug: slug, hasMore: true}
}

// Seed initializes the pager from a page fetched elsewhere, e.g. the first
// batch loaded alongside the event itself.
func (p *Pager) Seed(page *gallery.PhotoPageResponse) {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.photos = append(p.photos[:0], page.Photos...)
	p.total = page.TotalCount
	p.hasMore = page.HasMore
}

// LoadMore fetches the next batch and appends it. Returns the number of
// photos added. It is a no-op when the list is exhausted or another load is
// already running.
func (p *Pager) LoadMore(ctx context.Context) (int, error) {
	p.mu.Lock()
	if p.inFlight || !p.hasMore {
		p.mu.Unlock()
		return 0, nil
	}
	p.inFlight = true
	offset := len(p.photos)
	p.mu.Unlock()

	page, err := p.api.Photos(ctx, p.slug, offset, gallery.PageSize)

	p.mu.Lock()
	defer p.mu.Unlock()
	p.inFlight = false
	if err != nil {
		// Offset derives from the held list, so the retry re-requests the
		// same batch.
		return 0, err
	}

	p.photos = append(p.photos, page.Photos...)
	p.total = page.TotalCount
	p.hasMore = page.HasMore
	return len(page.Photos), nil
}

// Photos returns a copy of everything loaded so far, in sort order.
func (p *Pager) Photos() []gallery.PhotoResponse {
	p.mu.Lock()
	defer p.mu.Unlock()
	out := make([]gallery.PhotoResponse, len(p.photos))
	copy(out, p.photos)
	return out
}

// HasMore reports whether another batch remains.
func (p *Pager) HasMore() bool {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.hasMore
}

// TotalCount is the event's full photo count as of the last batch.
func (p *Pager) TotalCount() int64 {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.total
}

// Loaded returns how many photos are held locally.
func (p *Pager) Loaded() int {
	p.mu.Lock()
	defer p.mu.Unlock()
	return len(p.photos)
}
