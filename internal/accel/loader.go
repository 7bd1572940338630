package accel

import (
	"context"
	"errors"
	"fmt"

	"github.com/ANIKETSHETTY47/smart-aquaculture-monitoring-system/internal/stats"
)

var ErrNoSIMD = errors.New("accel: CPU has no SIMD acceleration")

type vectorModule struct {
	stats.Vector
}

func (vectorModule) Name() string { return "vek-simd" }

func (vectorModule) Alloc(n int) []float64 { return make([]float64, n) }

func (vectorModule) Free(buf []float64) { clear(buf) }

// VectorLoader yields the vek kernel when the CPU exposes AVX2/NEON. Without
// hardware support vek would only run its own pure Go loops, which gains nothing
// over the portable kernel, so the load is reported as failed.
func VectorLoader() Loader {
	return func(context.Context) (Module, error) {
		info := stats.VectorInfo()
		if !info.Accelerated {
			return nil, fmt.Errorf("%w (arch=%s)", ErrNoSIMD, info.Architecture)
		}
		return vectorModule{}, nil
	}
}

// FirstOf tries loaders in order and returns the first module that loads.
func FirstOf(loaders ...Loader) Loader {
	return func(ctx context.Context) (Module, error) {
		var errs []error
		for _, l := range loaders {
			if l == nil {
				continue
			}
			mod, err := l(ctx)
			if err == nil && mod != nil {
				return mod, nil
			}
			errs = append(errs, err)
		}
		if len(errs) == 0 {
			return nil, ErrDisabled
		}
		return nil, errors.Join(errs...)
	}
}
