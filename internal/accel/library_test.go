//go:build darwin || linux

package accel

import (
	"math"
	"math/rand"
	"os/exec"
	"path/filepath"
	"strings"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ANIKETSHETTY47/smart-aquaculture-monitoring-system/internal/domain"
	"github.com/ANIKETSHETTY47/smart-aquaculture-monitoring-system/internal/scoring"
	"github.com/ANIKETSHETTY47/smart-aquaculture-monitoring-system/internal/stats"
)

// buildNative compiles native/aquastat.c into a temporary shared object.
func buildNative(t *testing.T) string {
	t.Helper()
	cc, err := exec.LookPath("cc")
	if err != nil {
		t.Skip("no C compiler available")
	}
	src, err := filepath.Abs(filepath.Join("..", "..", "native", "aquastat.c"))
	require.NoError(t, err)
	lib := filepath.Join(t.TempDir(), "libaquastat.so")

	out, err := exec.Command(cc, "-O2", "-shared", "-fPIC", "-o", lib, src).CombinedOutput()
	require.NoError(t, err, string(out))
	return lib
}

func nativeDispatcher(t *testing.T) *Dispatcher {
	t.Helper()
	lib := buildNative(t)
	d := New(LibraryLoader(lib), zerolog.Nop())
	require.True(t, preload(t, d), "load failed: %v", d.Err())
	require.True(t, strings.HasPrefix(d.Implementation(), "native:"))
	return d
}

func relTol(want float64) float64 {
	return 1e-4 * math.Max(1, math.Abs(want))
}

func TestLibraryKernelsAgreeWithPortable(t *testing.T) {
	d := nativeDispatcher(t)
	rng := rand.New(rand.NewSource(7))

	for i := 0; i < 200; i++ {
		n := rng.Intn(48)
		values := make([]float64, n)
		for j := range values {
			values[j] = 3 + rng.Float64()*7
		}

		want := stats.Portable{}.Trend(values)
		assert.InDelta(t, want, d.Trend(values), relTol(want), "trend n=%d", n)
		want = stats.Portable{}.Variance(values)
		assert.InDelta(t, want, d.Variance(values), relTol(want), "variance n=%d", n)
	}
}

func TestLibraryEnvironmentScoreMatchesPortable(t *testing.T) {
	d := nativeDispatcher(t)
	table := domain.DefaultThresholds()

	for _, do := range []float64{4.5, 5.5, 7} {
		for _, ph := range []float64{6, 7, 8, 8.7, 9} {
			for _, turb := range []float64{10, 27, 35} {
				for _, ammo := range []float64{0.1, 0.3, 0.6} {
					for _, temp := range []float64{20, 27, 35} {
						for _, act := range []float64{0.4, 0.8} {
							r := domain.Reading{
								DissolvedOxygen: do, PH: ph, Turbidity: turb,
								Ammonia: ammo, TemperatureC: temp, FishActivity: act,
							}
							want := scoring.Portable{}.EnvironmentScore(r, table)
							assert.InDelta(t, want, d.EnvironmentScore(r, table), 1e-12, "%+v", r)
						}
					}
				}
			}
		}
	}

	// pH beyond both bounds stacks 0.15 and 0.25.
	r := domain.Reading{DissolvedOxygen: 7, PH: 9, Turbidity: 10, Ammonia: 0.1, TemperatureC: 27, FishActivity: 0.8}
	assert.InDelta(t, 0.6, d.EnvironmentScore(r, table), 1e-12)
}
