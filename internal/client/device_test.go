package client

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestIdentity_MintsOnceAndPersists(t *testing.T) {
	dir := t.TempDir()

	identity := NewIdentity(dir)
	first, err := identity.ID()
	require.NoError(t, err)
	_, err = uuid.Parse(first)
	require.NoError(t, err, "identifier must be a uuid")

	again, err := identity.ID()
	require.NoError(t, err)
	assert.Equal(t, first, again)

	// A fresh handle over the same directory reads the same identity.
	reopened := NewIdentity(dir)
	persisted, err := reopened.ID()
	require.NoError(t, err)
	assert.Equal(t, first, persisted)
}

func TestIdentity_LazyCreation(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, deviceFileName)

	identity := NewIdentity(dir)
	_, err := os.Stat(path)
	assert.True(t, os.IsNotExist(err), "no file until the identity is first used")

	_, err = identity.ID()
	require.NoError(t, err)

	_, err = os.Stat(path)
	assert.NoError(t, err)
}

func TestIdentity_CreatesMissingDirectory(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "nested", "config")

	identity := NewIdentity(dir)
	id, err := identity.ID()
	require.NoError(t, err)
	assert.NotEmpty(t, id)
}
