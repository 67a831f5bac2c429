package helpers

import "math"

// PositiveRatio returns the fraction of items strictly greater than zero.
func PositiveRatio(list []float64) float64 {
	if len(list) == 0 {
		return 0
	}
	countPositive := 0
	for _, item := range list {
		if item > 0 {
			countPositive++
		}
	}
	return float64(countPositive) / float64(len(list))
}

// StdDev is the sample standard deviation around mean. Fewer than two values
// have no dispersion.
func StdDev(numbers []float64, mean float64) float64 {
	if len(numbers) < 2 {
		return 0
	}
	total := 0.0
	for _, number := range numbers {
		total += math.Pow(number-mean, 2)
	}
	variance := total / float64(len(numbers)-1)
	return math.Sqrt(variance)
}

func Sum(numbers []float64) (total float64) {
	for _, x := range numbers {
		total += x
	}
	return total
}

func Mean(numbers []float64) float64 {
	if len(numbers) == 0 {
		return 0
	}
	return Sum(numbers) / float64(len(numbers))
}

func Max(numbers []float64) float64 {
	if len(numbers) == 0 {
		return 0
	}
	max := numbers[0]
	for _, x := range numbers[1:] {
		if x > max {
			max = x
		}
	}
	return max
}

func Min(numbers []float64) float64 {
	if len(numbers) == 0 {
		return 0
	}
	min := numbers[0]
	for _, x := range numbers[1:] {
		if x < min {
			min = x
		}
	}
	return min
}

// MaxDrawdownPct returns the largest peak-to-trough drop of an equity series,
// in percent of the running peak.
func MaxDrawdownPct(equity []float64) float64 {
	maxDrawdown := 0.0
	peak := math.Inf(-1)
	for _, value := range equity {
		if value > peak {
			peak = value
		}
		if peak > 0 {
			if drawdown := (peak - value) / peak * 100; drawdown > maxDrawdown {
				maxDrawdown = drawdown
			}
		}
	}
	return maxDrawdown
}

// AllValuesPositive reports whether the list is non-empty and every item is
// strictly greater than zero.
func AllValuesPositive(list []float64) bool {
	if len(list) == 0 {
		return false
	}
	for _, item := range list {
		if item <= 0.0 {
			return false
		}
	}
	return true
}
