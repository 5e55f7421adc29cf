package client

import (
	"os"
	"path/filepath"
	"strings"
	"sync"

	"github.com/google/uuid"
)

const deviceFileName = "device_id"

// Identity is the anonymous per-device identifier backing likes and comment
// attribution. It is minted lazily on first use and persisted, so the same
// machine keeps the same identity across runs. No account, no PII.
type Identity struct {
	path string

	mu sync.Mutex
	id string
}

// NewIdentity stores the identifier under dir.
func NewIdentity(dir string) *Identity {
	return &Identity{path: filepath.Join(dir, deviceFileName)}
}

// DefaultIdentity uses the OS user config directory.
func DefaultIdentity() (*Identity, error) {
	base, err := os.UserConfigDir()
	if err != nil {
		return nil, err
	}
	return NewIdentity(filepath.Join(base, "shrikemedia")), nil
}

// ID returns the persisted identifier, minting one on first call.
func (i *Identity) ID() (string, error) {
	i.mu.Lock()
	defer i.mu.Unlock()

	if i.id != "" {
		return i.id, nil
	}

	data, err := os.ReadFile(i.path)
	if err == nil {
		if id := strings.TrimSpace(string(data)); id != "" {
			i.id = id
			return i.id, nil
		}
	} else if !os.IsNotExist(err) {
		return "", err
	}

	id := uuid.NewString()
	if err := os.MkdirAll(filepath.Dir(i.path), 0o755); err != nil {
		return "", err
	}
	if err := os.WriteFile(i.path, []byte(id+"\n"), 0o644); err != nil {
		return "", err
	}
	i.id = id
	return i.id, nil
}
