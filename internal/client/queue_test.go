package client

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestQueue_ToggleAddsAndRemoves(t *testing.T) {
	dir := t.TempDir()

	q, err := OpenQueue(dir, "ev-1")
	require.NoError(t, err)

	queued, err := q.Toggle("photo-1")
	require.NoError(t, err)
	assert.True(t, queued)
	assert.True(t, q.Contains("photo-1"))
	assert.Equal(t, 1, q.Count())

	queued, err = q.Toggle("photo-1")
	require.NoError(t, err)
	assert.False(t, queued)
	assert.False(t, q.Contains("photo-1"))
	assert.Zero(t, q.Count())
}

func TestQueue_PersistsAcrossReopen(t *testing.T) {
	dir := t.TempDir()

	q, err := OpenQueue(dir, "ev-1")
	require.NoError(t, err)
	require.NoError(t, q.Add("photo-2"))
	require.NoError(t, q.Add("photo-1"))
	require.NoError(t, q.Add("photo-3"))

	reopened, err := OpenQueue(dir, "ev-1")
	require.NoError(t, err)
	// Insertion order survives the round-trip.
	assert.Equal(t, []string{"photo-2", "photo-1", "photo-3"}, reopened.IDs())
}

func TestQueue_FileRemovedWhenEmpty(t *testing.T) {
	dir := t.TempDir()
	path := queuePath(dir, "ev-1")

	q, err := OpenQueue(dir, "ev-1")
	require.NoError(t, err)
	require.NoError(t, q.Add("photo-1"))

	_, err = os.Stat(path)
	require.NoError(t, err, "file should exist while the queue holds photos")

	require.NoError(t, q.Remove("photo-1"))

	_, err = os.Stat(path)
	assert.True(t, os.IsNotExist(err), "empty queue must leave no file behind")
}

func TestQueue_ClearRemovesFile(t *testing.T) {
	dir := t.TempDir()

	q, err := OpenQueue(dir, "ev-1")
	require.NoError(t, err)
	require.NoError(t, q.Add("photo-1"))
	require.NoError(t, q.Add("photo-2"))
	require.NoError(t, q.Clear())

	assert.Zero(t, q.Count())
	_, err = os.Stat(queuePath(dir, "ev-1"))
	assert.True(t, os.IsNotExist(err))
}

func TestQueue_DuplicateAddIsNoOp(t *testing.T) {
	dir := t.TempDir()

	q, err := OpenQueue(dir, "ev-1")
	require.NoError(t, err)
	require.NoError(t, q.Add("photo-1"))
	require.NoError(t, q.Add("photo-1"))

	assert.Equal(t, 1, q.Count())
}

func TestQueue_EventsAreIsolated(t *testing.T) {
	dir := t.TempDir()

	a, err := OpenQueue(dir, "ev-a")
	require.NoError(t, err)
	require.NoError(t, a.Add("photo-1"))

	b, err := OpenQueue(dir, "ev-b")
	require.NoError(t, err)
	assert.Zero(t, b.Count())
}

func TestQueue_CorruptFileStartsEmpty(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, "download-queue-ev-1.json"), []byte("{{{"), 0o644))

	q, err := OpenQueue(dir, "ev-1")
	require.NoError(t, err)
	assert.Zero(t, q.Count())
}
