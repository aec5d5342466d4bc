package recurring

import "math"

// amountVariancePercent measures the amount spread of a series as
// (max-min)/mean*100. Degenerate inputs (fewer than two amounts, zero mean)
// short-circuit to 0 rather than erroring.
func amountVariancePercent(amounts []float64) float64 {
	if len(amounts) < 2 {
		return 0
	}

	minAmount, maxAmount := amounts[0], amounts[0]
	var sum float64
	for _, a := range amounts {
		if a < minAmount {
			minAmount = a
		}
		if a > maxAmount {
			maxAmount = a
		}
		sum += a
	}
	mean := sum / float64(len(amounts))
	if mean == 0 {
		return 0
	}

	return (maxAmount - minAmount) / mean * 100
}

// stdDev is the population standard deviation. Zero or one values have zero
// spread by definition.
func stdDev(values []float64) float64 {
	if len(values) < 2 {
		return 0
	}

	var sum float64
	for _, v := range values {
		sum += v
	}
	mean := sum / float64(len(values))

	var sumSq float64
	for _, v := range values {
		d := v - mean
		sumSq += d * d
	}
	return math.Sqrt(sumSq / float64(len(values)))
}

func mean(values []float64) float64 {
	if len(values) == 0 {
		return 0
	}
	var sum float64
	for _, v := range values {
		sum += v
	}
	return sum / float64(len(values))
}
