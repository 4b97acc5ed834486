package simulation

import (
	"math"
	"sort"

	"github.com/fr4nk3nst1ner/salarysim/internal/models"
)

const (
	IntervalLowPercentile  = 2.5
	IntervalHighPercentile = 97.5
)

// Summary holds the point estimates and percentile interval of a sample
type Summary struct {
	Mean     float64
	Median   float64
	Interval models.Interval
}

// Summarize computes mean, median and the 2.5/97.5 percentile interval of
// values. The interval is empirical, read off the sorted sample; no
// distribution is assumed. values is left untouched.
func Summarize(values []float64) (Summary, error) {
	if len(values) == 0 {
		return Summary{}, ErrEmptyInput
	}

	sorted := make([]float64, len(values))
	copy(sorted, values)
	sort.Float64s(sorted)

	return Summary{
		Mean:   Mean(values),
		Median: median(sorted),
		Interval: models.Interval{
			Low:  Percentile(sorted, IntervalLowPercentile),
			High: Percentile(sorted, IntervalHighPercentile),
		},
	}, nil
}

// Mean returns the arithmetic mean, 0 for an empty slice
func Mean(values []float64) float64 {
	if len(values) == 0 {
		return 0
	}
	var sum float64
	for _, v := range values {
		sum += v
	}
	return sum / float64(len(values))
}

func median(sorted []float64) float64 {
	n := len(sorted)
	if n%2 == 1 {
		return sorted[n/2]
	}
	return (sorted[n/2-1] + sorted[n/2]) / 2
}

// Percentile returns the p-th percentile (0..100) of an ascending slice.
// The rank p/100*(n-1) is linearly interpolated between the two nearest
// order statistics. Returns NaN for an empty slice.
func Percentile(sorted []float64, p float64) float64 {
	n := len(sorted)
	if n == 0 {
		return math.NaN()
	}
	p = math.Max(0, math.Min(100, p))

	rank := p / 100 * float64(n-1)
	lo := int(math.Floor(rank))
	hi := int(math.Ceil(rank))
	if lo == hi {
		return sorted[lo]
	}
	frac := rank - float64(lo)
	return sorted[lo] + frac*(sorted[hi]-sorted[lo])
}
