package crypto

import (
	"context"
	"fmt"
	"os"

	"github.com/mamacare/tracker-service/internal/core/domain"
	"github.com/mamacare/tracker-service/internal/core/ports"
)

// FileVault reads the encrypted blob the legacy client left on disk.
// The blob is never written or removed here: the import treats the
// vault as read-only so a failed run can always be retried.
type FileVault struct {
	path string
}

// NewFileVault creates a vault reader for the given path
func NewFileVault(path string) *FileVault {
	return &FileVault{path: path}
}

// Read returns the raw encrypted blob
func (v *FileVault) Read(ctx context.Context) ([]byte, error) {
	data, err := os.ReadFile(v.path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, domain.ErrStorageNotFound
		}
		return nil, fmt.Errorf("failed to read vault: %w", err)
	}
	return data, nil
}

// Exists reports whether a vault blob is present
func (v *FileVault) Exists(ctx context.Context) (bool, error) {
	if v.path == "" {
		return false, nil
	}
	_, err := os.Stat(v.path)
	if err != nil {
		if os.IsNotExist(err) {
			return false, nil
		}
		return false, fmt.Errorf("failed to stat vault: %w", err)
	}
	return true, nil
}

// Ensure FileVault implements the interface
var _ ports.LegacyVault = (*FileVault)(nil)
