package daemon

import (
	"encoding/json"
	"errors"
	"os"
	"path/filepath"
	"slices"
	"sync"

	"github.com/tunebridge/tunebridge/internal/browse"
)

// settingsFile is the persisted shape of user settings.
type settingsFile struct {
	Active         browse.ActiveSource `json:"activeSource"`
	LocalRoot      string              `json:"localRoot,omitempty"`
	DefaultFolders map[string]string   `json:"defaultFolders,omitempty"`
	Favorites      map[string][]string `json:"favorites,omitempty"`
}

// SettingsStore persists the active data source, per-source default
// start folders, and favorite folder paths. Reads are safe
// concurrently with writes.
type SettingsStore struct {
	path string

	mu   sync.RWMutex
	data settingsFile
}

// NewSettingsStore loads settings from path; a missing file means
// defaults (local source, no favorites).
func NewSettingsStore(path string) (*SettingsStore, error) {
	s := &SettingsStore{path: path}
	raw, err := os.ReadFile(path)
	if errors.Is(err, os.ErrNotExist) {
		return s, nil
	}
	if err != nil {
		return nil, err
	}
	if len(raw) > 0 {
		if err := json.Unmarshal(raw, &s.data); err != nil {
			return nil, err
		}
	}
	return s, nil
}

// SourceKey names a source for favorites and default folders.
func SourceKey(selection browse.ActiveSource) string {
	if selection.Kind == browse.SourceRemote {
		return string(browse.SourceRemote) + ":" + selection.ConnectionID
	}
	return string(browse.SourceLocal)
}

// ActiveSource returns the persisted selection, defaulting to local.
func (s *SettingsStore) ActiveSource() browse.ActiveSource {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if s.data.Active.Kind == "" {
		return browse.ActiveSource{Kind: browse.SourceLocal}
	}
	return s.data.Active
}

// SetActiveSource persists a new selection.
func (s *SettingsStore) SetActiveSource(selection browse.ActiveSource) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.data.Active = selection
	return s.persistLocked()
}

// LocalRoot returns the overridden local root, or fallback.
func (s *SettingsStore) LocalRoot(fallback string) string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if s.data.LocalRoot != "" {
		return s.data.LocalRoot
	}
	return fallback
}

// SetLocalRoot persists a local root override.
func (s *SettingsStore) SetLocalRoot(root string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.data.LocalRoot = root
	return s.persistLocked()
}

// DefaultFolder returns the start folder for a source key, if set.
func (s *SettingsStore) DefaultFolder(sourceKey string) (string, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	folder, ok := s.data.DefaultFolders[sourceKey]
	return folder, ok
}

// SetDefaultFolder persists the start folder for a source key.
func (s *SettingsStore) SetDefaultFolder(sourceKey, folder string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.data.DefaultFolders == nil {
		s.data.DefaultFolders = map[string]string{}
	}
	s.data.DefaultFolders[sourceKey] = folder
	return s.persistLocked()
}

// Favorites returns the favorite folders saved for a source key.
func (s *SettingsStore) Favorites(sourceKey string) []string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return slices.Clone(s.data.Favorites[sourceKey])
}

// AddFavorite saves a folder path; adding twice is a no-op.
func (s *SettingsStore) AddFavorite(sourceKey, folder string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if slices.Contains(s.data.Favorites[sourceKey], folder) {
		return nil
	}
	if s.data.Favorites == nil {
		s.data.Favorites = map[string][]string{}
	}
	s.data.Favorites[sourceKey] = append(s.data.Favorites[sourceKey], folder)
	return s.persistLocked()
}

// RemoveFavorite drops a folder path if present.
func (s *SettingsStore) RemoveFavorite(sourceKey, folder string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	kept := slices.DeleteFunc(slices.Clone(s.data.Favorites[sourceKey]), func(p string) bool {
		return p == folder
	})
	if len(kept) == len(s.data.Favorites[sourceKey]) {
		return nil
	}
	s.data.Favorites[sourceKey] = kept
	return s.persistLocked()
}

func (s *SettingsStore) persistLocked() error {
	data, err := json.MarshalIndent(s.data, "", "  ")
	if err != nil {
		return err
	}
	if err := os.MkdirAll(filepath.Dir(s.path), 0o700); err != nil {
		return err
	}
	return os.WriteFile(s.path, data, 0o600)
}
