package indicators

// EMA returns the exponential moving average of values. The series is seeded
// with values[0] and defined at every index; the first ~period values are
// unreliable by convention only.
func EMA(values []float64, period int) []float64 {
	ema := make([]float64, len(values))
	if len(values) == 0 || period <= 0 {
		return ema
	}
	k := 2 / (float64(period) + 1)
	ema[0] = values[0]
	for i := 1; i < len(values); i++ {
		ema[i] = values[i]*k + ema[i-1]*(1-k)
	}
	return ema
}
