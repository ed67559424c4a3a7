// Package session owns the session-cookie lifecycle and the access token
// mirror kept for callers that cannot rely on cookies.
package session

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"sync"
)

// Snapshot is the serialized form of the token mirror
type Snapshot struct {
	AccessToken string `json:"accessToken"`
}

// Store mirrors the most recent access token. Cookies remain authoritative
// for upstream calls; the mirror only backs requests that arrive without a
// cookie jar. State is persisted as a single JSON snapshot, so concurrent
// processes reconcile through last-write-wins on that file.
type Store struct {
	mu       sync.RWMutex
	token    string
	hydrated bool
	path     string
}

// NewStore creates a token store persisting to the given snapshot path.
// The store is not hydrated until Hydrate, Set, or Clear is called; Get
// falls back to reading the snapshot directly until then.
func NewStore(path string) *Store {
	return &Store{path: path}
}

// Hydrate loads the persisted snapshot into memory. A missing snapshot
// file hydrates to an empty token.
func (s *Store) Hydrate() error {
	snap, err := readSnapshot(s.path)
	if err != nil {
		return err
	}

	s.mu.Lock()
	s.token = snap.AccessToken
	s.hydrated = true
	s.mu.Unlock()

	return nil
}

// Set stores the token and persists the snapshot
func (s *Store) Set(token string) error {
	s.mu.Lock()
	s.token = token
	s.hydrated = true
	s.mu.Unlock()

	return writeSnapshot(s.path, Snapshot{AccessToken: token})
}

// Clear removes the token and persists the empty snapshot
func (s *Store) Clear() error {
	return s.Set("")
}

// Get returns the mirrored token synchronously. Before hydration it reads
// the snapshot directly, so the first request after a restart is not
// treated as unauthenticated. Read failures yield an empty token.
func (s *Store) Get() string {
	s.mu.RLock()
	if s.hydrated {
		token := s.token
		s.mu.RUnlock()
		return token
	}
	s.mu.RUnlock()

	snap, err := readSnapshot(s.path)
	if err != nil {
		return ""
	}
	return snap.AccessToken
}

func readSnapshot(path string) (Snapshot, error) {
	var snap Snapshot

	data, err := os.ReadFile(path)
	if os.IsNotExist(err) {
		return snap, nil
	}
	if err != nil {
		return snap, fmt.Errorf("failed to read session snapshot: %w", err)
	}

	if err := json.Unmarshal(data, &snap); err != nil {
		return snap, fmt.Errorf("failed to parse session snapshot: %w", err)
	}

	return snap, nil
}

func writeSnapshot(path string, snap Snapshot) error {
	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0755); err != nil {
			return fmt.Errorf("failed to create snapshot directory: %w", err)
		}
	}

	data, err := json.MarshalIndent(snap, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal session snapshot: %w", err)
	}

	if err := os.WriteFile(path, data, 0600); err != nil {
		return fmt.Errorf("failed to write session snapshot: %w", err)
	}

	return nil
}
