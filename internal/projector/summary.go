package projector

import (
	"prodstats/domain/chart"

	"github.com/montanaflynn/stats"
	"gonum.org/v1/gonum/stat"
)

// Summarize computes summary statistics over plotted values in plot order.
// It returns nil when there is nothing to summarize.
func Summarize(values []float64) *chart.SummaryStats {
	if len(values) == 0 {
		return nil
	}

	total, _ := stats.Sum(values)
	mean, _ := stats.Mean(values)
	max, _ := stats.Max(values)
	min, _ := stats.Min(values)
	median, _ := stats.Median(values)
	_, stdDev := stat.PopMeanStdDev(values, nil)

	return &chart.SummaryStats{
		Total:  total,
		Avg:    mean,
		Max:    max,
		Min:    min,
		Count:  len(values),
		Median: median,
		StdDev: stdDev,
	}
}
