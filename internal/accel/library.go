//go:build darwin || linux

package accel

import (
	"context"
	"fmt"
	"unsafe"

	"github.com/ebitengine/purego"
)

// Symbols exported by the native statistics library (see native/aquastat.c).
const (
	symAlloc    = "aqua_alloc"
	symFree     = "aqua_free"
	symTrend    = "aqua_calculate_trend"
	symVariance = "aqua_calculate_variance"
	symScore    = "aqua_calculate_environment_score"
)

type libraryModule struct {
	path     string
	alloc    func(n int32) *float64
	free     func(p *float64)
	trend    func(p *float64, n int32) float64
	variance func(p *float64, n int32) float64
}

// scoringLibrary is a libraryModule whose shared object also exports the scorer.
type scoringLibrary struct {
	*libraryModule
	score func(do, ph, turbidity, ammonia, temperature, activity float64, thresholds *float64, n int32) float64
}

func (m *libraryModule) Name() string { return "native:" + m.path }

// Alloc returns a view over memory owned by the native allocator.
func (m *libraryModule) Alloc(n int) []float64 {
	if n == 0 {
		return nil
	}
	p := m.alloc(int32(n))
	if p == nil {
		panic(fmt.Sprintf("accel: native allocation of %d values failed", n))
	}
	return unsafe.Slice(p, n)
}

func (m *libraryModule) Free(buf []float64) {
	if len(buf) == 0 {
		return
	}
	m.free(&buf[0])
}

func (m *libraryModule) Trend(buf []float64) float64 {
	return m.trend(first(buf), int32(len(buf)))
}

func (m *libraryModule) Variance(buf []float64) float64 {
	return m.variance(first(buf), int32(len(buf)))
}

func (m *scoringLibrary) EnvironmentScore(r [6]float64, thresholds []float64) float64 {
	return m.score(r[0], r[1], r[2], r[3], r[4], r[5], first(thresholds), int32(len(thresholds)))
}

func first(buf []float64) *float64 {
	if len(buf) == 0 {
		return nil
	}
	return &buf[0]
}

// LibraryLoader dlopens the shared object at path and binds its statistics
// entry points. The environment score symbol is optional.
func LibraryLoader(path string) Loader {
	return func(context.Context) (mod Module, err error) {
		if path == "" {
			return nil, fmt.Errorf("%w: no library path configured", ErrDisabled)
		}
		defer func() {
			if r := recover(); r != nil {
				mod, err = nil, fmt.Errorf("accel: bind %s: %v", path, r)
			}
		}()

		lib, err := purego.Dlopen(path, purego.RTLD_NOW|purego.RTLD_LOCAL)
		if err != nil {
			return nil, fmt.Errorf("accel: dlopen %s: %w", path, err)
		}

		m := &libraryModule{path: path}
		purego.RegisterLibFunc(&m.alloc, lib, symAlloc)
		purego.RegisterLibFunc(&m.free, lib, symFree)
		purego.RegisterLibFunc(&m.trend, lib, symTrend)
		purego.RegisterLibFunc(&m.variance, lib, symVariance)

		sym, err := purego.Dlsym(lib, symScore)
		if err != nil || sym == 0 {
			return m, nil
		}
		s := &scoringLibrary{libraryModule: m}
		purego.RegisterFunc(&s.score, sym)
		return s, nil
	}
}
