// Package stats provides the numeric primitives behind the forecaster and the
// recommenders: least-squares trend and population variance over a bounded window.
//
// Two interchangeable kernels implement the same definitions:
//
//   - Portable: pure Go built on gonum/stat, available everywhere
//   - Vector: SIMD-accelerated through viterin/vek (AVX2 on amd64, NEON on arm64)
//
// Both agree within 1e-4 relative tolerance for the same input. Callers normally
// reach them through the accel dispatcher rather than directly.
//
// # Definitions
//
//   - Trend: slope of value against 0-based sample index; 0 for fewer than 2 points
//   - Variance: mean of squared deviations from the mean; 0 for empty input
//
// # Usage
//
//	k := stats.Portable{}
//	slope := k.Trend([]float64{6.8, 6.6, 6.5, 6.1})
//	v := k.Variance([]float64{6.8, 6.6, 6.5, 6.1})
package stats
