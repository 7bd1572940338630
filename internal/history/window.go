// Package history keeps the bounded, per-farm window of recent readings the
// recommenders and the forecaster read from.
package history

import (
	"sync"

	"github.com/ANIKETSHETTY47/smart-aquaculture-monitoring-system/internal/domain"
)

// DefaultCapacity matches the forecast window.
const DefaultCapacity = 24

// Window is a fixed-capacity ring buffer of readings. Once full, every Push
// evicts the oldest reading. Readers always receive copies.
type Window struct {
	mu    sync.RWMutex
	buf   []domain.Reading
	start int
	size  int
}

func NewWindow(capacity int) *Window {
	if capacity <= 0 {
		capacity = DefaultCapacity
	}
	return &Window{buf: make([]domain.Reading, capacity)}
}

func (w *Window) Push(r domain.Reading) {
	w.mu.Lock()
	defer w.mu.Unlock()

	if w.size < len(w.buf) {
		w.buf[(w.start+w.size)%len(w.buf)] = r
		w.size++
		return
	}
	w.buf[w.start] = r
	w.start = (w.start + 1) % len(w.buf)
}

// Snapshot returns the buffered readings, oldest first.
func (w *Window) Snapshot() []domain.Reading {
	return w.Last(w.Cap())
}

// Last returns up to n of the most recent readings, oldest first.
func (w *Window) Last(n int) []domain.Reading {
	w.mu.RLock()
	defer w.mu.RUnlock()

	if n > w.size {
		n = w.size
	}
	if n <= 0 {
		return []domain.Reading{}
	}
	out := make([]domain.Reading, n)
	first := w.start + w.size - n
	for i := range out {
		out[i] = w.buf[(first+i)%len(w.buf)]
	}
	return out
}

func (w *Window) Len() int {
	w.mu.RLock()
	defer w.mu.RUnlock()
	return w.size
}

func (w *Window) Cap() int {
	return len(w.buf)
}
