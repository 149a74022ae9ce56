package cache

import (
	"testing"
	"time"
)

func newTestStore(ttl time.Duration) (*Store, *time.Time) {
	s := New(ttl)
	now := time.Date(2024, 6, 15, 12, 0, 0, 0, time.UTC)
	s.nowFn = func() time.Time { return now }
	return s, &now
}

func TestGetSet(t *testing.T) {
	s, _ := newTestStore(time.Minute)

	if _, ok := s.Get("k"); ok {
		t.Fatal("empty store must miss")
	}
	s.Set("k", "v")
	got, ok := s.Get("k")
	if !ok || got != "v" {
		t.Fatalf("Get = (%v, %v), want (v, true)", got, ok)
	}
}

func TestLazyExpiry(t *testing.T) {
	s, now := newTestStore(time.Minute)
	s.Set("k", "v")

	// Fresh just inside the TTL window.
	*now = now.Add(time.Minute)
	if _, ok := s.Get("k"); !ok {
		t.Fatal("entry at exactly ttl must still be fresh")
	}

	// Stale once past it; the read itself evicts.
	*now = now.Add(time.Second)
	if _, ok := s.Get("k"); ok {
		t.Fatal("entry past ttl must miss")
	}
	if s.Len() != 0 {
		t.Errorf("stale entry not evicted on read, len = %d", s.Len())
	}
}

func TestInvalidateAll(t *testing.T) {
	s, _ := newTestStore(time.Minute)
	s.Set("a", 1)
	s.Set("b", 2)

	if n := s.Invalidate(""); n != 2 {
		t.Errorf("Invalidate(\"\") = %d, want 2", n)
	}
	if s.Len() != 0 {
		t.Errorf("len = %d after full invalidation", s.Len())
	}
}

func TestInvalidatePattern(t *testing.T) {
	s, _ := newTestStore(time.Minute)
	s.Set("trending:10", 1)
	s.Set("trending:20", 2)
	s.Set("search:q=x", 3)

	if n := s.Invalidate("trending"); n != 2 {
		t.Errorf("substring invalidation removed %d, want 2", n)
	}
	if _, ok := s.Get("search:q=x"); !ok {
		t.Error("non-matching entry was removed")
	}

	// Regex patterns work too.
	s.Set("video:abc", 4)
	s.Set("video:def", 5)
	if n := s.Invalidate(`^video:a`); n != 1 {
		t.Errorf("regex invalidation removed %d, want 1", n)
	}
}

func TestDisableKeepsEntries(t *testing.T) {
	s, _ := newTestStore(time.Minute)
	s.Set("k", "v")

	s.SetEnabled(false)
	if _, ok := s.Get("k"); ok {
		t.Fatal("disabled store must always miss")
	}
	s.Set("other", "x") // no-op while disabled
	if s.Len() != 1 {
		t.Errorf("disabled Set must not store, len = %d", s.Len())
	}

	// Re-enabling is not a cold start.
	s.SetEnabled(true)
	if got, ok := s.Get("k"); !ok || got != "v" {
		t.Fatalf("entry lost across disable/enable cycle: (%v, %v)", got, ok)
	}
}

func TestReplaceOnRefresh(t *testing.T) {
	s, _ := newTestStore(time.Minute)
	s.Set("k", "old")
	s.Set("k", "new")

	if got, _ := s.Get("k"); got != "new" {
		t.Errorf("Get = %v, want replacement to win", got)
	}
	if s.Len() != 1 {
		t.Errorf("len = %d, want 1", s.Len())
	}
}

func TestSetTTL(t *testing.T) {
	s, now := newTestStore(time.Hour)
	s.Set("k", "v")

	s.SetTTL(time.Second)
	*now = now.Add(2 * time.Second)
	if _, ok := s.Get("k"); ok {
		t.Error("shortened ttl must apply to existing entries")
	}
}
