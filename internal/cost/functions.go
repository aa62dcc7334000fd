package cost

import "math"

// Rolling cost functions over a net electricity consumption series. Each
// returns a series the same length as its input; entries before a window's
// minimum period are NaN. The final entry is the score for the whole horizon.

// Ramping returns the cumulative sum of absolute step-to-step changes. The
// first entry is NaN since no prior step exists.
func Ramping(net []float64) []float64 {
	out := make([]float64, len(net))
	sum := 0.0
	for i := range net {
		if i == 0 {
			out[i] = math.NaN()
			continue
		}
		sum += math.Abs(net[i] - net[i-1])
		out[i] = sum
	}
	return out
}

// LoadFactor returns the cumulative mean of (1 - rolling mean / rolling max)
// over the given window. Entries are NaN until a full window is available.
func LoadFactor(net []float64, window int) []float64 {
	out := make([]float64, len(net))
	sum := 0.0
	count := 0
	for i := range net {
		if window <= 0 || i < window-1 {
			out[i] = math.NaN()
			continue
		}
		mean := meanOf(net[i-window+1 : i+1])
		max := maxOf(net[i-window+1 : i+1])
		if max == 0 {
			out[i] = math.NaN()
			continue
		}
		sum += 1 - mean/max
		count++
		out[i] = sum / float64(count)
	}
	return out
}

// AverageDailyPeak returns the cumulative mean of the rolling daily maximum.
func AverageDailyPeak(net []float64, dailyTimeSteps int) []float64 {
	out := make([]float64, len(net))
	sum := 0.0
	count := 0
	for i := range net {
		if dailyTimeSteps <= 0 || i < dailyTimeSteps-1 {
			out[i] = math.NaN()
			continue
		}
		sum += maxOf(net[i-dailyTimeSteps+1 : i+1])
		count++
		out[i] = sum / float64(count)
	}
	return out
}

// PeakDemand returns the rolling maximum over the given window, NaN until a
// full window is available.
func PeakDemand(net []float64, window int) []float64 {
	out := make([]float64, len(net))
	for i := range net {
		if window <= 0 || i < window-1 {
			out[i] = math.NaN()
			continue
		}
		out[i] = maxOf(net[i-window+1 : i+1])
	}
	return out
}

// NetElectricityConsumption returns the cumulative sum of consumption clipped
// at zero, so exports do not offset imports.
func NetElectricityConsumption(net []float64) []float64 {
	out := make([]float64, len(net))
	sum := 0.0
	for i, value := range net {
		if value > 0 {
			sum += value
		}
		out[i] = sum
	}
	return out
}

// CarbonEmissions returns the cumulative sum of an emission series.
func CarbonEmissions(emissions []float64) []float64 {
	return cumulativeSum(emissions)
}

// Price returns the cumulative sum of a cost series.
func Price(price []float64) []float64 {
	return cumulativeSum(price)
}

// Quadratic returns the cumulative sum of squared consumption clipped at zero.
func Quadratic(net []float64) []float64 {
	out := make([]float64, len(net))
	sum := 0.0
	for i, value := range net {
		if value > 0 {
			sum += value * value
		}
		out[i] = sum
	}
	return out
}

func cumulativeSum(values []float64) []float64 {
	out := make([]float64, len(values))
	sum := 0.0
	for i, value := range values {
		sum += value
		out[i] = sum
	}
	return out
}

func meanOf(values []float64) float64 {
	if len(values) == 0 {
		return math.NaN()
	}
	sum := 0.0
	for _, value := range values {
		sum += value
	}
	return sum / float64(len(values))
}

func maxOf(values []float64) float64 {
	if len(values) == 0 {
		return math.NaN()
	}
	max := values[0]
	for _, value := range values[1:] {
		if value > max {
			max = value
		}
	}
	return max
}
