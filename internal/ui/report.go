package ui

import (
	"encoding/json"
	"fmt"
	"io"
	"strings"

	"github.com/pterm/pterm"
	"gopkg.in/yaml.v3"

	"github.com/fr4nk3nst1ner/salarysim/internal/chart"
	"github.com/fr4nk3nst1ner/salarysim/internal/models"
	"github.com/fr4nk3nst1ner/salarysim/internal/utils"
)

// NoDataMessage is shown when the filter matches no records
const NoDataMessage = "No data available for the selected parameters."

// IntervalLabel is the label the report has always used for the
// 2.5th to 97.5th percentile range of the resampled values
const IntervalLabel = "95% Confidence Interval"

const (
	histogramWidth = 60
	boxPlotWidth   = 60
)

// Report is a simulation result together with its chart data
type Report struct {
	models.SimulationResult `yaml:",inline"`
	Histogram               *chart.Histogram `json:"histogram" yaml:"histogram"`
	BoxPlot                 *chart.BoxPlot   `json:"boxPlot" yaml:"box_plot"`
}

// NewReport builds the histogram and box plot for a result
func NewReport(result *models.SimulationResult, bins int) (*Report, error) {
	hist, err := chart.NewHistogram(result.Values, bins, result.Mean, result.Median)
	if err != nil {
		return nil, fmt.Errorf("histogram: %w", err)
	}
	box, err := chart.NewBoxPlot(result.Values)
	if err != nil {
		return nil, fmt.Errorf("box plot: %w", err)
	}
	return &Report{SimulationResult: *result, Histogram: hist, BoxPlot: box}, nil
}

// Write renders the report in the given output format
func Write(w io.Writer, format string, r *Report) error {
	switch strings.ToLower(format) {
	case utils.FormatJSON:
		return WriteJSON(w, r)
	case utils.FormatYAML:
		return WriteYAML(w, r)
	default:
		return RenderText(w, r)
	}
}

func WriteJSON(w io.Writer, v interface{}) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}

func WriteYAML(w io.Writer, v interface{}) error {
	enc := yaml.NewEncoder(w)
	enc.SetIndent(2)
	if err := enc.Encode(v); err != nil {
		return err
	}
	return enc.Close()
}

// RenderText writes the human readable report: criteria, summary
// statistics, the histogram and the box plot
func RenderText(w io.Writer, r *Report) error {
	criteria, err := pterm.DefaultTable.WithData(pterm.TableData{
		{"Job Title", r.Criteria.JobTitle},
		{"Experience Level", r.Criteria.ExperienceLevel},
		{"Remote", string(r.Criteria.RemoteCategory)},
		{"Simulations", fmt.Sprintf("%d", r.Simulations)},
	}).Srender()
	if err != nil {
		return err
	}

	histogram, err := renderHistogram(r.Histogram)
	if err != nil {
		return err
	}

	var b strings.Builder
	b.WriteString(pterm.DefaultSection.Sprint("Salary Simulation"))
	b.WriteString(criteria)
	b.WriteString("\n\n")
	fmt.Fprintf(&b, "Results for %s (%s):\n", r.Criteria.JobTitle, r.Criteria.ExperienceLevel)
	fmt.Fprintf(&b, "Mean Salary: %s\n", ColorizeSalary(r.Mean))
	fmt.Fprintf(&b, "Median Salary: %s\n", ColorizeSalary(r.Median))
	fmt.Fprintf(&b, "%s: %s - %s\n", IntervalLabel,
		utils.FormatSalary(r.Interval.Low), utils.FormatSalary(r.Interval.High))

	b.WriteString(pterm.DefaultSection.Sprint("Simulation Histogram"))
	b.WriteString(histogram)
	b.WriteString("\n")

	b.WriteString(pterm.DefaultSection.Sprint("Salary Distribution Box Plot"))
	b.WriteString(renderBoxPlot(r.BoxPlot))

	_, err = io.WriteString(w, b.String())
	return err
}

func renderHistogram(h *chart.Histogram) (string, error) {
	bars := make(pterm.Bars, 0, len(h.Bins))
	for i, bin := range h.Bins {
		bars = append(bars, pterm.Bar{
			Label: histogramLabel(h, i),
			Value: bin.Count,
		})
	}

	return pterm.DefaultBarChart.
		WithBars(bars).
		WithHorizontal().
		WithShowValue().
		WithWidth(histogramBarWidth(h)).
		Srender()
}

// histogramBarWidth caps the bar width at the tallest bin so small samples
// draw one cell per draw instead of being stretched
func histogramBarWidth(h *chart.Histogram) int {
	return min(histogramWidth, max(h.MaxCount(), 1))
}

func histogramLabel(h *chart.Histogram, i int) string {
	bin := h.Bins[i]
	label := fmt.Sprintf("%s-%s", utils.FormatSalaryShort(bin.Low), utils.FormatSalaryShort(bin.High))

	var markers []string
	if i == h.MeanBin {
		markers = append(markers, "mean")
	}
	if i == h.MedianBin {
		markers = append(markers, "median")
	}
	if len(markers) > 0 {
		label += " <" + strings.Join(markers, ",")
	}
	return label
}

func renderBoxPlot(bp *chart.BoxPlot) string {
	var b strings.Builder
	b.WriteString(boxPlotLine(bp, boxPlotWidth))
	b.WriteString("\n")
	fmt.Fprintf(&b, "%s%s%s\n",
		utils.FormatSalaryShort(bp.Min),
		strings.Repeat(" ", max(1, boxPlotWidth-len(utils.FormatSalaryShort(bp.Min))-len(utils.FormatSalaryShort(bp.Max)))),
		utils.FormatSalaryShort(bp.Max))
	b.WriteString("\n")

	rows := [][2]string{
		{"Lower Whisker", utils.FormatSalary(bp.LowerWhisker)},
		{"Q1", utils.FormatSalary(bp.Q1)},
		{"Median", utils.FormatSalary(bp.Median)},
		{"Q3", utils.FormatSalary(bp.Q3)},
		{"Upper Whisker", utils.FormatSalary(bp.UpperWhisker)},
	}
	for _, row := range rows {
		fmt.Fprintf(&b, "%-14s %s\n", row[0]+":", row[1])
	}
	fmt.Fprintf(&b, "%-14s %d\n", "Outliers:", len(bp.Outliers))
	return b.String()
}

// boxPlotLine draws a box plot on a single line scaled from Min to Max:
// whiskers as '|', the box as '[==|==]' with the median inside and
// outliers as 'o'
func boxPlotLine(bp *chart.BoxPlot, width int) string {
	if width < 5 {
		width = 5
	}
	span := bp.Max - bp.Min
	pos := func(v float64) int {
		if span == 0 {
			return width / 2
		}
		p := int((v-bp.Min)/span*float64(width-1) + 0.5)
		return min(max(p, 0), width-1)
	}

	line := []rune(strings.Repeat(" ", width))
	for _, v := range bp.Outliers {
		line[pos(v)] = 'o'
	}
	for i := pos(bp.LowerWhisker); i <= pos(bp.UpperWhisker); i++ {
		line[i] = '-'
	}
	for i := pos(bp.Q1); i <= pos(bp.Q3); i++ {
		line[i] = '='
	}
	line[pos(bp.LowerWhisker)] = '|'
	line[pos(bp.UpperWhisker)] = '|'
	line[pos(bp.Q1)] = '['
	line[pos(bp.Q3)] = ']'
	line[pos(bp.Median)] = '|'
	return strings.TrimRight(string(line), " ")
}
