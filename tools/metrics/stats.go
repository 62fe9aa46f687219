package metrics

import (
	"sort"

	"gonum.org/v1/gonum/stat"
)

// Stats 一组采样值的描述性统计
type Stats struct {
	Count  int
	Mean   float64
	StdDev float64
	Min    float64
	Max    float64
	P50    float64
	P90    float64
}

// Summarize computes descriptive statistics over values. The input is not modified.
func Summarize(values []float64) Stats {
	if len(values) == 0 {
		return Stats{}
	}

	sorted := make([]float64, len(values))
	copy(sorted, values)
	sort.Float64s(sorted)

	mean, std := stat.MeanStdDev(sorted, nil)
	if len(sorted) == 1 {
		std = 0
	}

	return Stats{
		Count:  len(sorted),
		Mean:   mean,
		StdDev: std,
		Min:    sorted[0],
		Max:    sorted[len(sorted)-1],
		P50:    stat.Quantile(0.5, stat.Empirical, sorted, nil),
		P90:    stat.Quantile(0.9, stat.Empirical, sorted, nil),
	}
}

// TimeAbove 返回不低于阈值的采样占比
func TimeAbove(values []float64, threshold float64) float64 {
	if len(values) == 0 {
		return 0
	}
	above := 0
	for _, value := range values {
		if value >= threshold {
			above++
		}
	}
	return float64(above) / float64(len(values))
}
