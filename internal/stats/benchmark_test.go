package stats

import "testing"

func benchValues(n int) []float64 {
	v := make([]float64, n)
	for i := range v {
		v[i] = 6 + float64(i%17)*0.1
	}
	return v
}

func BenchmarkTrend(b *testing.B) {
	values := benchValues(1024)
	for name, k := range kernels {
		b.Run(name, func(b *testing.B) {
			for i := 0; i < b.N; i++ {
				k.Trend(values)
			}
		})
	}
}

func BenchmarkVariance(b *testing.B) {
	values := benchValues(1024)
	for name, k := range kernels {
		b.Run(name, func(b *testing.B) {
			for i := 0; i < b.N; i++ {
				k.Variance(values)
			}
		})
	}
}
