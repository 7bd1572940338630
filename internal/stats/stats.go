package stats

import "gonum.org/v1/gonum/floats"

// Kernel computes trend and variance over an ordered window of samples.
// Implementations must be pure functions of their input.
type Kernel interface {
	Trend(values []float64) float64
	Variance(values []float64) float64
}

// Mean returns the arithmetic mean of values, or 0 when values is empty.
func Mean(values []float64) float64 {
	if len(values) == 0 {
		return 0
	}
	return floats.Sum(values) / float64(len(values))
}

// Last returns at most the n most recent values (the tail of the slice) without copying.
func Last[T any](values []T, n int) []T {
	if n <= 0 {
		return values[:0]
	}
	if len(values) <= n {
		return values
	}
	return values[len(values)-n:]
}
