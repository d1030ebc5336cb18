package memory

import (
	"context"
	"sync"
	"time"
)

const defaultIdempotencyTTL = 24 * time.Hour

type idempotencyEntry struct {
	donationID string
	expires    time.Time
}

// IdempotencyStore is the in-process fallback used when Redis is disabled.
type IdempotencyStore struct {
	mu      sync.Mutex
	entries map[string]idempotencyEntry
	ttl     time.Duration
	now     func() time.Time
}

func NewIdempotencyStore(ttl time.Duration) *IdempotencyStore {
	if ttl <= 0 {
		ttl = defaultIdempotencyTTL
	}
	return &IdempotencyStore{entries: make(map[string]idempotencyEntry), ttl: ttl, now: time.Now}
}

func (s *IdempotencyStore) Lookup(_ context.Context, key string) (string, bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	e, ok := s.entries[key]
	if !ok {
		return "", false, nil
	}
	if s.now().After(e.expires) {
		delete(s.entries, key)
		return "", false, nil
	}
	return e.donationID, true, nil
}

// Reserve stores key -> donationID unless a live entry already holds key.
func (s *IdempotencyStore) Reserve(_ context.Context, key, donationID string) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	now := s.now()
	if e, ok := s.entries[key]; ok && !now.After(e.expires) {
		return false, nil
	}
	s.entries[key] = idempotencyEntry{donationID: donationID, expires: now.Add(s.ttl)}
	return true, nil
}

func (s *IdempotencyStore) Release(_ context.Context, key string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.entries, key)
	return nil
}
