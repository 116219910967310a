// Package registry persists the set of known remote-share connections.
package registry

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sync"

	"go.uber.org/zap"

	"github.com/tunebridge/tunebridge/internal/model"
)

// Store keeps connection descriptors in memory and mirrors every
// mutation to a JSON file. Reads are safe concurrently with writes; a
// lookup racing a delete simply reports "not found".
type Store struct {
	log  *zap.Logger
	path string

	mu    sync.RWMutex
	conns []model.Connection
}

// NewStore loads the registry from path. A missing file is an empty
// registry, not an error; a corrupt file is reported.
func NewStore(path string, log *zap.Logger) (*Store, error) {
	if log == nil {
		log = zap.NewNop()
	}
	s := &Store{log: log, path: path}

	data, err := os.ReadFile(path)
	if errors.Is(err, os.ErrNotExist) {
		return s, nil
	}
	if err != nil {
		return nil, fmt.Errorf("registry: read %s: %w", path, err)
	}
	if len(data) == 0 {
		return s, nil
	}
	if err := json.Unmarshal(data, &s.conns); err != nil {
		return nil, fmt.Errorf("registry: parse %s: %w", path, err)
	}
	return s, nil
}

// GetByID returns the descriptor for an id, reflecting the latest edit.
func (s *Store) GetByID(id string) (model.Connection, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	for _, conn := range s.conns {
		if conn.ID == id {
			return conn, true
		}
	}
	return model.Connection{}, false
}

// List returns a copy of the current descriptors.
func (s *Store) List() []model.Connection {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]model.Connection, len(s.conns))
	copy(out, s.conns)
	return out
}

// Save inserts a new descriptor or replaces the one with the same id.
func (s *Store) Save(conn model.Connection) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	replaced := false
	for i := range s.conns {
		if s.conns[i].ID == conn.ID {
			s.conns[i] = conn
			replaced = true
			break
		}
	}
	if !replaced {
		s.conns = append(s.conns, conn)
	}
	return s.persistLocked()
}

// Delete removes the descriptor with the given id, if present.
func (s *Store) Delete(id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	kept := s.conns[:0]
	for _, conn := range s.conns {
		if conn.ID != id {
			kept = append(kept, conn)
		}
	}
	s.conns = kept
	return s.persistLocked()
}

func (s *Store) persistLocked() error {
	data, err := json.MarshalIndent(s.conns, "", "  ")
	if err != nil {
		return err
	}
	if err := os.MkdirAll(filepath.Dir(s.path), 0o700); err != nil {
		return err
	}
	// credentials live in this file, keep it private to the user
	if err := os.WriteFile(s.path, data, 0o600); err != nil {
		return fmt.Errorf("registry: write %s: %w", s.path, err)
	}
	return nil
}
