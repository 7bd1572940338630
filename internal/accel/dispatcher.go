// Package accel owns the optional native-accelerated statistics module.
//
// The module is loaded once, in the background, the first time any computation
// is requested. Until the load finishes, and forever if it fails, every call is
// answered by the portable kernels with identical results. Callers never wait
// on the load and never see its failure.
package accel

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"sync/atomic"

	"github.com/rs/zerolog"

	"github.com/ANIKETSHETTY47/smart-aquaculture-monitoring-system/internal/domain"
	"github.com/ANIKETSHETTY47/smart-aquaculture-monitoring-system/internal/metrics"
	"github.com/ANIKETSHETTY47/smart-aquaculture-monitoring-system/internal/scoring"
	"github.com/ANIKETSHETTY47/smart-aquaculture-monitoring-system/internal/stats"
)

// ErrDisabled is reported when the dispatcher was built without a loader.
var ErrDisabled = errors.New("accel: native acceleration disabled")

// Module is a loaded native implementation. Buffers passed to Trend and Variance
// are always obtained from the module's own Alloc and returned through Free.
type Module interface {
	Name() string
	Alloc(n int) []float64
	Free(buf []float64)
	Trend(buf []float64) float64
	Variance(buf []float64) float64
}

// NativeScorer is implemented by modules that also export the environment score.
type NativeScorer interface {
	EnvironmentScore(reading [6]float64, thresholds []float64) float64
}

// Loader produces the native module. It runs at most once per Dispatcher.
type Loader func(ctx context.Context) (Module, error)

type handle struct {
	mod Module
}

// Dispatcher routes kernel calls to the native module when it is ready and to the
// portable fallback otherwise. It implements stats.Kernel and scoring.Scorer.
type Dispatcher struct {
	loader   Loader
	fallback stats.Kernel
	scorer   scoring.Scorer
	logger   zerolog.Logger

	once    sync.Once
	done    chan struct{}
	current atomic.Pointer[handle]
	loadErr error
}

// New returns a dispatcher that will use loader on first use. A nil loader
// keeps the dispatcher permanently on the portable path.
func New(loader Loader, logger zerolog.Logger) *Dispatcher {
	return &Dispatcher{
		loader:   loader,
		fallback: stats.Portable{},
		scorer:   scoring.Portable{},
		logger:   logger.With().Str("component", "accel").Logger(),
		done:     make(chan struct{}),
	}
}

// Start begins the one-shot background load. It never blocks and is safe to
// call any number of times from any goroutine.
func (d *Dispatcher) Start() {
	d.once.Do(func() {
		go d.load()
	})
}

func (d *Dispatcher) load() {
	defer close(d.done)
	defer func() {
		if r := recover(); r != nil {
			d.loadErr = fmt.Errorf("accel: loader panicked: %v", r)
			d.logger.Warn().Err(d.loadErr).Msg("native acceleration unavailable, using portable kernels")
		}
	}()

	if d.loader == nil {
		d.loadErr = ErrDisabled
		d.logger.Info().Msg("native acceleration disabled, using portable kernels")
		return
	}

	mod, err := d.loader(context.Background())
	if err == nil && mod == nil {
		err = errors.New("accel: loader returned no module")
	}
	if err != nil {
		d.loadErr = err
		metrics.AccelerationReady.Set(0)
		d.logger.Warn().Err(err).Msg("native acceleration unavailable, using portable kernels")
		return
	}

	d.current.Store(&handle{mod: mod})
	metrics.AccelerationReady.Set(1)
	d.logger.Info().Str("module", mod.Name()).Msg("native acceleration ready")
}

// Preload starts the load if needed and waits for its outcome or for ctx to end.
// Every caller that waits for completion observes the same result.
func (d *Dispatcher) Preload(ctx context.Context) bool {
	d.Start()
	select {
	case <-d.done:
	case <-ctx.Done():
	}
	return d.Ready()
}

// Ready reports whether calls are currently routed to the native module.
func (d *Dispatcher) Ready() bool {
	return d.current.Load() != nil
}

// Err returns the load failure once the load has finished, nil otherwise.
func (d *Dispatcher) Err() error {
	select {
	case <-d.done:
		return d.loadErr
	default:
		return nil
	}
}

// Implementation names the active path.
func (d *Dispatcher) Implementation() string {
	if h := d.current.Load(); h != nil {
		return h.mod.Name()
	}
	return "portable"
}

func (d *Dispatcher) Trend(values []float64) float64 {
	d.Start()
	if h := d.current.Load(); h != nil {
		if v, ok := d.withBuffer(h.mod, "trend", values, h.mod.Trend); ok {
			return v
		}
	}
	metrics.KernelCalls.WithLabelValues("trend", "fallback").Inc()
	return d.fallback.Trend(values)
}

func (d *Dispatcher) Variance(values []float64) float64 {
	d.Start()
	if h := d.current.Load(); h != nil {
		if v, ok := d.withBuffer(h.mod, "variance", values, h.mod.Variance); ok {
			return v
		}
	}
	metrics.KernelCalls.WithLabelValues("variance", "fallback").Inc()
	return d.fallback.Variance(values)
}

func (d *Dispatcher) EnvironmentScore(r domain.Reading, t domain.ThresholdTable) float64 {
	d.Start()
	if h := d.current.Load(); h != nil {
		if ns, ok := h.mod.(NativeScorer); ok {
			reading := scoring.ReadingVector(r)
			score := func(buf []float64) float64 { return ns.EnvironmentScore(reading, buf) }
			thresholds := scoring.ThresholdVector(t)
			if v, ok := d.withBuffer(h.mod, "environment_score", thresholds[:], score); ok {
				return scoring.Clamp(v, 0, 1)
			}
		}
	}
	metrics.KernelCalls.WithLabelValues("environment_score", "fallback").Inc()
	return d.scorer.EnvironmentScore(r, t)
}

// withBuffer copies values into a scratch buffer sized exactly to the call,
// invokes fn on it and frees the buffer whatever fn does. A panic in Alloc or
// in the native call is reported as ok=false so the caller can fall back.
func (d *Dispatcher) withBuffer(mod Module, op string, values []float64, fn func([]float64) float64) (result float64, ok bool) {
	defer func() {
		if r := recover(); r != nil {
			d.logger.Error().Str("op", op).Interface("panic", r).Msg("native call failed, answering from fallback")
			result, ok = 0, false
		}
	}()

	buf := mod.Alloc(len(values))
	defer d.free(mod, op, buf)

	copy(buf, values)
	result = fn(buf)
	metrics.KernelCalls.WithLabelValues(op, "native").Inc()
	return result, true
}

// free releases a scratch buffer. A panicking Free is logged and swallowed;
// the result computed from the buffer stays valid.
func (d *Dispatcher) free(mod Module, op string, buf []float64) {
	defer func() {
		if r := recover(); r != nil {
			d.logger.Error().Str("op", op).Interface("panic", r).Msg("native free failed")
		}
	}()
	mod.Free(buf)
}
