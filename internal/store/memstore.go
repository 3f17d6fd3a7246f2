// internal/store/memstore.go
package store

import (
	"encoding/json"
	"sync"

	appErrors "github.com/kisumu-health/sha-connect-backend/internal/errors"
)

// MemStore is an in-memory TableStore for tests and throwaway runs. Rows are
// stored as JSON so reads hand back copies, never aliases.
type MemStore struct {
	mu     sync.Mutex
	tables map[string][]byte
}

func NewMemStore() *MemStore {
	return &MemStore{tables: make(map[string][]byte)}
}

func (s *MemStore) ReadTable(name string, out any) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	data, ok := s.tables[name]
	if !ok {
		return nil
	}
	if err := json.Unmarshal(data, out); err != nil {
		return appErrors.NewStorageError("read", name, err)
	}
	return nil
}

func (s *MemStore) WriteTable(name string, rows any) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	data, err := json.Marshal(rows)
	if err != nil {
		return appErrors.NewStorageError("write", name, err)
	}
	s.tables[name] = data
	return nil
}
