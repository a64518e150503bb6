package cache

import (
	"context"
	"sync"
	"time"

	"github.com/openmysteries/backend/internal/article"
)

// MemoryStore is an in-process Store with the same contract as the Redis
// implementation. Used by tests and by offline pre-generation runs.
type MemoryStore struct {
	mu    sync.Mutex
	docs  map[string]article.Document
	locks map[string]time.Time // lock key -> expiry
}

func NewMemoryStore() *MemoryStore {
	return &MemoryStore{
		docs:  map[string]article.Document{},
		locks: map[string]time.Time{},
	}
}

func (s *MemoryStore) GetDocument(_ context.Context, key string) (article.Document, bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	doc, ok := s.docs[key]
	if !ok {
		return article.Document{}, false, nil
	}
	return doc.EnsureDefaults(), true, nil
}

func (s *MemoryStore) SetDocument(_ context.Context, key string, doc article.Document) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.docs[key] = doc
	return nil
}

func (s *MemoryStore) AcquireLock(_ context.Context, key string, ttl time.Duration) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	now := time.Now()
	if exp, held := s.locks[key]; held && now.Before(exp) {
		return false, nil
	}
	s.locks[key] = now.Add(ttl)
	return true, nil
}

func (s *MemoryStore) ReleaseLock(_ context.Context, key string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.locks, key)
	return nil
}

// Len reports the number of stored documents.
func (s *MemoryStore) Len() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.docs)
}
