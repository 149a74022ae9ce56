// Package cache is an in-process TTL key-value store. The aggregator uses it
// to memoize composed responses; the source adapters use short-lived
// instances to absorb bursts of identical upstream calls.
package cache

import (
	"regexp"
	"strings"
	"sync"
	"time"
)

type entry struct {
	payload  any
	storedAt time.Time
}

// Store is a TTL map with lazy expiry: a stale entry is discarded on the
// next Get, never by a background sweep. Safe for concurrent use.
type Store struct {
	mu      sync.RWMutex
	entries map[string]entry
	ttl     time.Duration
	enabled bool

	// nowFn is swapped out in tests.
	nowFn func() time.Time
}

// New creates an enabled store with the given TTL.
func New(ttl time.Duration) *Store {
	return &Store{
		entries: make(map[string]entry),
		ttl:     ttl,
		enabled: true,
		nowFn:   time.Now,
	}
}

// Get returns the stored payload for key, or (nil, false) on a miss. A
// disabled store always misses but keeps its entries, so re-enabling does
// not start cold.
func (s *Store) Get(key string) (any, bool) {
	s.mu.RLock()
	enabled, ttl := s.enabled, s.ttl
	e, ok := s.entries[key]
	s.mu.RUnlock()

	if !enabled || !ok {
		return nil, false
	}
	if s.nowFn().Sub(e.storedAt) > ttl {
		s.mu.Lock()
		// Re-check under the write lock; a concurrent Set may have refreshed it.
		if cur, still := s.entries[key]; still && cur.storedAt.Equal(e.storedAt) {
			delete(s.entries, key)
		}
		s.mu.Unlock()
		return nil, false
	}
	return e.payload, true
}

// Set stores a payload under key, replacing any previous entry. A no-op when
// the store is disabled.
func (s *Store) Set(key string, payload any) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if !s.enabled {
		return
	}
	s.entries[key] = entry{payload: payload, storedAt: s.nowFn()}
}

// Invalidate removes entries. An empty pattern clears everything; otherwise
// the pattern is tried as a regular expression and falls back to a substring
// test when it does not compile. Returns the number of removed entries.
func (s *Store) Invalidate(pattern string) int {
	s.mu.Lock()
	defer s.mu.Unlock()

	if pattern == "" {
		n := len(s.entries)
		s.entries = make(map[string]entry)
		return n
	}

	match := func(key string) bool { return strings.Contains(key, pattern) }
	if re, err := regexp.Compile(pattern); err == nil {
		match = re.MatchString
	}

	n := 0
	for key := range s.entries {
		if match(key) {
			delete(s.entries, key)
			n++
		}
	}
	return n
}

// SetEnabled toggles the store without touching stored entries.
func (s *Store) SetEnabled(enabled bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.enabled = enabled
}

// SetTTL changes the expiry window for subsequent reads.
func (s *Store) SetTTL(ttl time.Duration) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.ttl = ttl
}

// Len reports the number of stored entries, stale ones included.
func (s *Store) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.entries)
}
