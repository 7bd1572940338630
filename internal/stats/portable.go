package stats

import "gonum.org/v1/gonum/stat"

// Portable is the reference kernel. It runs on every platform and is the
// fallback whenever acceleration is unavailable.
type Portable struct{}

// Trend returns the least-squares slope of values against their index.
//
// Example:
//
//	Portable{}.Trend([]float64{1, 3, 5, 7}) // 2
func (Portable) Trend(values []float64) float64 {
	n := len(values)
	if n < 2 {
		return 0
	}
	xs := make([]float64, n)
	for i := range xs {
		xs[i] = float64(i)
	}
	_, beta := stat.LinearRegression(xs, values, nil, false)
	return beta
}

// Variance returns the population variance of values.
//
// gonum reports the unbiased sample variance, so it is rescaled by (n-1)/n.
func (Portable) Variance(values []float64) float64 {
	n := len(values)
	if n < 2 {
		return 0
	}
	return stat.Variance(values, nil) * float64(n-1) / float64(n)
}
