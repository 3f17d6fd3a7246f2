// internal/store/filestore.go
package store

import (
	"encoding/json"
	"os"
	"path/filepath"
	"sync"

	appErrors "github.com/kisumu-health/sha-connect-backend/internal/errors"
)

// FileStore keeps each table as one JSON file under a data directory. The
// whole file is rewritten on every WriteTable, so the on-disk state always
// matches a single in-memory snapshot. This mirrors the local caching the
// campaign tool relies on in areas with intermittent internet.
type FileStore struct {
	dir string
	mu  sync.Mutex
}

func NewFileStore(dir string) (*FileStore, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, appErrors.NewStorageError("init", dir, err)
	}
	return &FileStore{dir: dir}, nil
}

func (s *FileStore) path(name string) string {
	return filepath.Join(s.dir, name+".json")
}

func (s *FileStore) ReadTable(name string, out any) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	data, err := os.ReadFile(s.path(name))
	if err != nil {
		if os.IsNotExist(err) {
			return nil // absent table reads as empty
		}
		return appErrors.NewStorageError("read", name, err)
	}
	if len(data) == 0 {
		return nil
	}
	if err := json.Unmarshal(data, out); err != nil {
		return appErrors.NewStorageError("read", name, err)
	}
	return nil
}

func (s *FileStore) WriteTable(name string, rows any) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	data, err := json.MarshalIndent(rows, "", "  ")
	if err != nil {
		return appErrors.NewStorageError("write", name, err)
	}
	// Write to a temp file and rename so a crash mid-write cannot leave a
	// truncated table behind.
	tmp := s.path(name) + ".tmp"
	if err := os.WriteFile(tmp, data, 0o644); err != nil {
		return appErrors.NewStorageError("write", name, err)
	}
	if err := os.Rename(tmp, s.path(name)); err != nil {
		return appErrors.NewStorageError("write", name, err)
	}
	return nil
}
