package history

import (
	"context"
	"fmt"
	"sync"

	"github.com/ANIKETSHETTY47/smart-aquaculture-monitoring-system/internal/domain"
)

// Store keeps a bounded history per farm. Append returns the window after the
// new reading has been added, oldest first.
type Store interface {
	Append(ctx context.Context, r domain.Reading) ([]domain.Reading, error)
	Recent(ctx context.Context, farmID string, n int) ([]domain.Reading, error)
}

// MemoryStore holds one Window per farm in process memory.
type MemoryStore struct {
	capacity int

	mu      sync.Mutex
	windows map[string]*Window
}

func NewMemoryStore(capacity int) *MemoryStore {
	if capacity <= 0 {
		capacity = DefaultCapacity
	}
	return &MemoryStore{capacity: capacity, windows: make(map[string]*Window)}
}

func (s *MemoryStore) window(farmID string) *Window {
	s.mu.Lock()
	defer s.mu.Unlock()

	w, ok := s.windows[farmID]
	if !ok {
		w = NewWindow(s.capacity)
		s.windows[farmID] = w
	}
	return w
}

func (s *MemoryStore) Append(_ context.Context, r domain.Reading) ([]domain.Reading, error) {
	w := s.window(r.FarmID)
	w.Push(r)
	return w.Snapshot(), nil
}

// Recent never creates a window; unknown farms yield an empty slice.
func (s *MemoryStore) Recent(_ context.Context, farmID string, n int) ([]domain.Reading, error) {
	s.mu.Lock()
	w, ok := s.windows[farmID]
	s.mu.Unlock()
	if !ok {
		return []domain.Reading{}, nil
	}
	return w.Last(n), nil
}

// ReadingSource is the durable reading store a MemoryStore can be warmed from.
type ReadingSource interface {
	RecentReadings(ctx context.Context, farmID string, limit int) ([]domain.Reading, error)
}

// Warm loads the most recent readings of each farm from src, oldest first, so
// a restarted process does not start with empty windows.
func (s *MemoryStore) Warm(ctx context.Context, src ReadingSource, farmIDs ...string) error {
	for _, id := range farmIDs {
		readings, err := src.RecentReadings(ctx, id, s.capacity)
		if err != nil {
			return fmt.Errorf("warm history for %s: %w", id, err)
		}
		w := s.window(id)
		for _, r := range readings {
			w.Push(r)
		}
	}
	return nil
}
