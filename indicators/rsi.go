package indicators

// RSI is Wilder's relative strength index over closes. The first period
// differences seed the averages; indices below period are NaN. A zero
// average loss gives 100.
func RSI(closes []float64, period int) []float64 {
	rsi := notReady(len(closes))
	if period <= 0 || len(closes) <= period {
		return rsi
	}

	gain, loss := 0.0, 0.0
	for i := 1; i <= period; i++ {
		g, l := change(closes[i-1], closes[i])
		gain += g
		loss += l
	}
	avgGain := gain / float64(period)
	avgLoss := loss / float64(period)
	rsi[period] = relativeStrength(avgGain, avgLoss)

	for i := period + 1; i < len(closes); i++ {
		g, l := change(closes[i-1], closes[i])
		avgGain = (avgGain*float64(period-1) + g) / float64(period)
		avgLoss = (avgLoss*float64(period-1) + l) / float64(period)
		rsi[i] = relativeStrength(avgGain, avgLoss)
	}
	return rsi
}

func change(prev float64, current float64) (gain float64, loss float64) {
	diff := current - prev
	if diff > 0 {
		return diff, 0
	}
	return 0, -diff
}

func relativeStrength(avgGain float64, avgLoss float64) float64 {
	if avgLoss == 0 {
		return 100
	}
	return 100 - 100/(1+avgGain/avgLoss)
}
