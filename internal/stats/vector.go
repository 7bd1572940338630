package stats

import "github.com/viterin/vek"

// Vector is the SIMD-accelerated kernel. On CPUs without AVX2/NEON vek runs its
// pure Go loops, so results stay correct but the speedup disappears.
type Vector struct{}

// Trend uses the closed-form sums of the index axis so only two vector passes
// (Sum and Dot) touch the data.
func (Vector) Trend(values []float64) float64 {
	n := len(values)
	if n < 2 {
		return 0
	}
	idx := make([]float64, n)
	for i := range idx {
		idx[i] = float64(i)
	}

	fn := float64(n)
	sumX := fn * (fn - 1) / 2
	sumX2 := (fn - 1) * fn * (2*fn - 1) / 6
	sumY := vek.Sum(values)
	sumXY := vek.Dot(idx, values)

	denom := fn*sumX2 - sumX*sumX
	if denom == 0 {
		return 0
	}
	return (fn*sumXY - sumX*sumY) / denom
}

func (Vector) Variance(values []float64) float64 {
	n := len(values)
	if n == 0 {
		return 0
	}
	mean := vek.Mean(values)
	diff := vek.SubNumber(values, mean)
	return vek.Dot(diff, diff) / float64(n)
}

// RuntimeInfo describes whether vek found SIMD support on this CPU.
type RuntimeInfo struct {
	Architecture string   `json:"architecture"`
	Features     []string `json:"features"`
	Accelerated  bool     `json:"accelerated"`
}

func VectorInfo() RuntimeInfo {
	info := vek.Info()
	return RuntimeInfo{
		Architecture: info.CPUArchitecture,
		Features:     info.CPUFeatures,
		Accelerated:  info.Acceleration,
	}
}
