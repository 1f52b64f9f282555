package otp

import (
	"sync"
	"time"
)

// Entry is the volatile per-address verification state. At most one entry is
// active per address; issuing or resending replaces any prior one.
type Entry struct {
	Address   string
	Code      string
	ExpiresAt time.Time
	Attempts  int
	CreatedAt time.Time
}

// Store keeps active codes for the lifetime of the process. It is
// deliberately not durable: a restart invalidates every outstanding code.
// Operations are individually atomic; two concurrent flows for the same
// address are not serialized beyond that.
type Store interface {
	Get(address string) (Entry, bool)
	Put(entry Entry)
	Delete(address string)
	// IncrementAttempts bumps the attempt counter and returns the new value.
	// It reports false if no entry exists for the address.
	IncrementAttempts(address string) (int, bool)
}

type memoryStore struct {
	mu      sync.Mutex
	entries map[string]Entry
}

func NewMemoryStore() Store {
	return &memoryStore{entries: make(map[string]Entry)}
}

func (s *memoryStore) Get(address string) (Entry, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	entry, ok := s.entries[address]
	return entry, ok
}

func (s *memoryStore) Put(entry Entry) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.entries[entry.Address] = entry
}

func (s *memoryStore) Delete(address string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.entries, address)
}

func (s *memoryStore) IncrementAttempts(address string) (int, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	entry, ok := s.entries[address]
	if !ok {
		return 0, false
	}
	entry.Attempts++
	s.entries[address] = entry
	return entry.Attempts, true
}
