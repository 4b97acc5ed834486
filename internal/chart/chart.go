package chart

import (
	"errors"
	"math"
	"sort"

	"github.com/fr4nk3nst1ner/salarysim/internal/simulation"
)

// DefaultBins matches the histogram resolution of the report
const DefaultBins = 30

// whiskerIQR is the Tukey fence multiplier for box plot whiskers
const whiskerIQR = 1.5

var ErrNoValues = errors.New("no values to chart")

// Bin is one histogram bucket. Every bin is half open [Low, High) except
// the last one, which also includes High.
type Bin struct {
	Low   float64 `json:"low" yaml:"low"`
	High  float64 `json:"high" yaml:"high"`
	Count int     `json:"count" yaml:"count"`
}

// Histogram is the frequency distribution of a sample with mean and median
// markers.
type Histogram struct {
	Bins      []Bin   `json:"bins" yaml:"bins"`
	Mean      float64 `json:"mean" yaml:"mean"`
	Median    float64 `json:"median" yaml:"median"`
	MeanBin   int     `json:"meanBin" yaml:"mean_bin"`
	MedianBin int     `json:"medianBin" yaml:"median_bin"`
}

// BoxPlot is the five-number summary of a sample with Tukey whiskers
type BoxPlot struct {
	Min          float64   `json:"min" yaml:"min"`
	LowerWhisker float64   `json:"lowerWhisker" yaml:"lower_whisker"`
	Q1           float64   `json:"q1" yaml:"q1"`
	Median       float64   `json:"median" yaml:"median"`
	Q3           float64   `json:"q3" yaml:"q3"`
	UpperWhisker float64   `json:"upperWhisker" yaml:"upper_whisker"`
	Max          float64   `json:"max" yaml:"max"`
	Outliers     []float64 `json:"outliers" yaml:"outliers"`
}

// NewHistogram buckets values into bins of equal width spanning the sample
// range. A constant sample gets a unit-wide range centred on its value.
func NewHistogram(values []float64, bins int, mean, median float64) (*Histogram, error) {
	if len(values) == 0 {
		return nil, ErrNoValues
	}
	if bins <= 0 {
		bins = DefaultBins
	}

	lo, hi := values[0], values[0]
	for _, v := range values[1:] {
		lo = math.Min(lo, v)
		hi = math.Max(hi, v)
	}
	if lo == hi {
		lo -= 0.5
		hi += 0.5
	}
	width := (hi - lo) / float64(bins)

	h := &Histogram{
		Bins:   make([]Bin, bins),
		Mean:   mean,
		Median: median,
	}
	for i := range h.Bins {
		h.Bins[i].Low = lo + float64(i)*width
		h.Bins[i].High = lo + float64(i+1)*width
	}
	h.Bins[bins-1].High = hi

	locate := func(v float64) int {
		i := int((v - lo) / width)
		if i < 0 {
			return 0
		}
		if i >= bins {
			return bins - 1
		}
		return i
	}

	for _, v := range values {
		h.Bins[locate(v)].Count++
	}
	h.MeanBin = locate(mean)
	h.MedianBin = locate(median)

	return h, nil
}

// MaxCount returns the tallest bin count
func (h *Histogram) MaxCount() int {
	top := 0
	for _, b := range h.Bins {
		if b.Count > top {
			top = b.Count
		}
	}
	return top
}

// NewBoxPlot computes quartiles with linear interpolation and whiskers at
// the most extreme values within 1.5 IQR of the box.
func NewBoxPlot(values []float64) (*BoxPlot, error) {
	if len(values) == 0 {
		return nil, ErrNoValues
	}

	sorted := make([]float64, len(values))
	copy(sorted, values)
	sort.Float64s(sorted)

	bp := &BoxPlot{
		Min:    sorted[0],
		Q1:     simulation.Percentile(sorted, 25),
		Median: simulation.Percentile(sorted, 50),
		Q3:     simulation.Percentile(sorted, 75),
		Max:    sorted[len(sorted)-1],
	}

	iqr := bp.Q3 - bp.Q1
	lowFence := bp.Q1 - whiskerIQR*iqr
	highFence := bp.Q3 + whiskerIQR*iqr

	bp.LowerWhisker = bp.Q1
	bp.UpperWhisker = bp.Q3
	for _, v := range sorted {
		if v >= lowFence {
			bp.LowerWhisker = math.Min(v, bp.Q1)
			break
		}
	}
	for i := len(sorted) - 1; i >= 0; i-- {
		if sorted[i] <= highFence {
			bp.UpperWhisker = math.Max(sorted[i], bp.Q3)
			break
		}
	}

	bp.Outliers = make([]float64, 0)
	for _, v := range sorted {
		if v < lowFence || v > highFence {
			bp.Outliers = append(bp.Outliers, v)
		}
	}

	return bp, nil
}
