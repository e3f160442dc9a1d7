package ratelimit

import (
	"context"
	"sync"
	"time"
)

// MemoryStore guarda as janelas no processo. Serve apenas para uma única instância.
type MemoryStore struct {
	mu      sync.Mutex
	windows map[string]*Window
	now     func() time.Time
}

func NewMemoryStore() *MemoryStore {
	return &MemoryStore{
		windows: make(map[string]*Window),
		now:     time.Now,
	}
}

// NewMemoryStoreWithClock permite controlar o tempo nos testes
func NewMemoryStoreWithClock(now func() time.Time) *MemoryStore {
	s := NewMemoryStore()
	s.now = now
	return s
}

func (s *MemoryStore) Consume(_ context.Context, key string, limit int, window time.Duration) (Window, bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	now := s.now()

	w, ok := s.windows[key]
	if !ok || !now.Before(w.ResetAt) {
		w = &Window{Count: 1, ResetAt: now.Add(window)}
		s.windows[key] = w
		return *w, true, nil
	}

	if w.Count >= limit {
		return *w, false, nil
	}

	w.Count++
	return *w, true, nil
}

func (s *MemoryStore) Get(_ context.Context, key string) (*Window, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	w, ok := s.windows[key]
	if !ok {
		return nil, nil
	}

	copied := *w
	return &copied, nil
}

func (s *MemoryStore) Delete(_ context.Context, key string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	delete(s.windows, key)
	return nil
}
