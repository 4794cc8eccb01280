// Package codes stores one-time verification codes keyed by phone identity.
// A code is single use: re-requesting overwrites it, a successful verify
// deletes it. A failed verify leaves the stored code in place.
package codes

import (
	"context"
	"crypto/subtle"
	"sync"
	"time"
)

type Store interface {
	// Set stores the code for the identity, replacing any previous one.
	Set(ctx context.Context, identity, code string) error
	// Verify atomically compares the candidate against the stored code and,
	// on match, deletes it. Returns false for a mismatch or a missing code.
	Verify(ctx context.Context, identity, code string) (bool, error)
}

// MemoryStore keeps codes in a process-local map. Suitable only for
// single-instance deployments and tests; codes are lost on restart.
type MemoryStore struct {
	mu    sync.Mutex
	ttl   time.Duration
	codes map[string]memoryEntry
}

type memoryEntry struct {
	code      string
	expiresAt time.Time
}

func NewMemoryStore(ttl time.Duration) *MemoryStore {
	return &MemoryStore{
		ttl:   ttl,
		codes: make(map[string]memoryEntry),
	}
}

func (s *MemoryStore) Set(ctx context.Context, identity, code string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	entry := memoryEntry{code: code}
	if s.ttl > 0 {
		entry.expiresAt = time.Now().Add(s.ttl)
	}
	s.codes[identity] = entry
	return nil
}

func (s *MemoryStore) Verify(ctx context.Context, identity, code string) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	entry, ok := s.codes[identity]
	if !ok {
		return false, nil
	}
	if !entry.expiresAt.IsZero() && time.Now().After(entry.expiresAt) {
		delete(s.codes, identity)
		return false, nil
	}
	if subtle.ConstantTimeCompare([]byte(entry.code), []byte(code)) != 1 {
		return false, nil
	}
	delete(s.codes, identity)
	return true, nil
}
