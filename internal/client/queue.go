package client

import (
	"encoding/json"
	"os"
	"path/filepath"
	"sync"
)

// Queue is the per-event download selection. Every mutation is written back
// to disk immediately, and the backing file is removed when the selection
// empties, so an abandoned session leaves nothing behind.
type Queue struct {
	path string

	mu    sync.Mutex
	ids   []string
	index map[string]bool
}

func queuePath(dir, eventID string) string {
	return filepath.Join(dir, "download-queue-"+eventID+".json")
}

// OpenQueue loads the persisted selection for the event, or starts empty.
func OpenQueue(dir, eventID string) (*Queue, error) {
	q := &Queue{
		path:  queuePath(dir, eventID),
		index: make(map[string]bool),
	}

	data, err := os.ReadFile(q.path)
	if err != nil {
		if os.IsNotExist(err) {
			return q, nil
		}
		return nil, err
	}

	var ids []string
	if err := json.Unmarshal(data, &ids); err != nil {
		// A corrupt file just means the selection is lost, not an error the
		// viewer can act on.
		return q, nil
	}
	for _, id := range ids {
		if !q.index[id] {
			q.index[id] = true
			q.ids = append(q.ids, id)
		}
	}
	return q, nil
}

// Toggle adds the photo when absent and removes it when present. Returns
// whether the photo is queued after the call.
func (q *Queue) Toggle(photoID string) (bool, error) {
	q.mu.Lock()
	defer q.mu.Unlock()

	if q.index[photoID] {
		q.removeLocked(photoID)
		return false, q.persistLocked()
	}
	q.index[photoID] = true
	q.ids = append(q.ids, photoID)
	return true, q.persistLocked()
}

// Add queues the photo. Adding an already-queued photo is a no-op.
func (q *Queue) Add(photoID string) error {
	q.mu.Lock()
	defer q.mu.Unlock()

	if q.index[photoID] {
		return nil
	}
	q.index[photoID] = true
	q.ids = append(q.ids, photoID)
	return q.persistLocked()
}

// Remove drops the photo from the selection.
func (q *Queue) Remove(photoID string) error {
	q.mu.Lock()
	defer q.mu.Unlock()

	if !q.index[photoID] {
		return nil
	}
	q.removeLocked(photoID)
	return q.persistLocked()
}

// Clear empties the selection and removes the backing file.
func (q *Queue) Clear() error {
	q.mu.Lock()
	defer q.mu.Unlock()

	q.ids = nil
	q.index = make(map[string]bool)
	return q.persistLocked()
}

// Contains reports whether the photo is queued.
func (q *Queue) Contains(photoID string) bool {
	q.mu.Lock()
	defer q.mu.Unlock()
	return q.index[photoID]
}

// IDs returns the queued photo ids in insertion order.
func (q *Queue) IDs() []string {
	q.mu.Lock()
	defer q.mu.Unlock()
	out := make([]string, len(q.ids))
	copy(out, q.ids)
	return out
}

// Count returns the selection size.
func (q *Queue) Count() int {
	q.mu.Lock()
	defer q.mu.Unlock()
	return len(q.ids)
}

func (q *Queue) removeLocked(photoID string) {
	delete(q.index, photoID)
	for i, id := range q.ids {
		if id == photoID {
			q.ids = append(q.ids[:i], q.ids[i+1:]...)
			break
		}
	}
}

func (q *Queue) persistLocked() error {
	if len(q.ids) == 0 {
		if err := os.Remove(q.path); err != nil && !os.IsNotExist(err) {
			return err
		}
		return nil
	}

	data, err := json.Marshal(q.ids)
	if err != nil {
		return err
	}
	if err := os.MkdirAll(filepath.Dir(q.path), 0o755); err != nil {
		return err
	}
	return os.WriteFile(q.path, data, 0o644)
}
