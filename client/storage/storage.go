// Package storage provides the durable client-side key/value store backing
// the session and theme stores. Values live in a single JSON state file; if
// the file cannot be read or written the store degrades to in-memory values
// for the remainder of the process lifetime, never failing the caller.
package storage

import (
	"encoding/json"
	"log/slog"
	"os"
	"path/filepath"
	"sync"
)

const stateFileName = "state.json"

type Store struct {
	mu       sync.Mutex
	path     string
	values   map[string]string
	degraded bool
}

// Open loads the state file under dir, creating the directory if needed.
// Any I/O problem is logged once and the store continues in memory only.
func Open(dir string) *Store {
	s := &Store{values: map[string]string{}}
	if dir == "" {
		s.degraded = true
		return s
	}
	if err := os.MkdirAll(dir, 0o700); err != nil {
		slog.Warn("state dir unavailable, continuing in memory", "dir", dir, "err", err)
		s.degraded = true
		return s
	}
	s.path = filepath.Join(dir, stateFileName)

	raw, err := os.ReadFile(s.path)
	if err != nil {
		if !os.IsNotExist(err) {
			slog.Warn("state file unreadable, continuing in memory", "err", err)
			s.degraded = true
		}
		return s
	}
	if err := json.Unmarshal(raw, &s.values); err != nil {
		// Corrupt state file: start clean rather than crash.
		slog.Warn("state file corrupt, starting clean", "err", err)
		s.values = map[string]string{}
	}
	return s
}

// InMemory returns a store that never touches disk. Used by tests and as the
// degraded mode.
func InMemory() *Store {
	return &Store{values: map[string]string{}, degraded: true}
}

func (s *Store) Get(key string) (string, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	value, ok := s.values[key]
	return value, ok
}

func (s *Store) Set(key, value string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.values[key] = value
	s.flushLocked()
}

func (s *Store) Delete(key string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.values[key]; !ok {
		return
	}
	delete(s.values, key)
	s.flushLocked()
}

// Degraded reports whether persistence is unavailable and values only live
// in memory.
func (s *Store) Degraded() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.degraded
}

func (s *Store) flushLocked() {
	if s.degraded || s.path == "" {
		return
	}
	raw, err := json.MarshalIndent(s.values, "", "  ")
	if err != nil {
		return
	}
	tmp := s.path + ".tmp"
	if err := os.WriteFile(tmp, raw, 0o600); err != nil {
		slog.Warn("state write failed, degrading to memory", "err", err)
		s.degraded = true
		return
	}
	if err := os.Rename(tmp, s.path); err != nil {
		slog.Warn("state rename failed, degrading to memory", "err", err)
		s.degraded = true
	}
}
