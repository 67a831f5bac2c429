package indicators

import "math"

// IsReady reports whether v is a computed value rather than the not-ready
// sentinel.
func IsReady(v float64) bool {
	return !math.IsNaN(v)
}

// CountNotReady returns how many values carry the not-ready sentinel.
func CountNotReady(values []float64) int {
	count := 0
	for _, v := range values {
		if !IsReady(v) {
			count++
		}
	}
	return count
}

func notReady(n int) []float64 {
	values := make([]float64, n)
	for i := range values {
		values[i] = math.NaN()
	}
	return values
}
