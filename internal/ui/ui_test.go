package ui

import (
	"bytes"
	"encoding/json"
	"os"
	"strings"
	"testing"

	"github.com/pterm/pterm"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gopkg.in/yaml.v3"

	"github.com/fr4nk3nst1ner/salarysim/internal/chart"
	"github.com/fr4nk3nst1ner/salarysim/internal/dataset"
	"github.com/fr4nk3nst1ner/salarysim/internal/models"
)

func TestMain(m *testing.M) {
	pterm.DisableStyling()
	os.Exit(m.Run())
}

func sampleResult() *models.SimulationResult {
	return &models.SimulationResult{
		Criteria: models.FilterCriteria{
			JobTitle:        "Data Scientist",
			ExperienceLevel: "SE",
			RemoteCategory:  models.FullRemote,
		},
		Simulations: 5,
		Values:      []float64{70000, 50000, 90000, 70000, 60000},
		Mean:        68000,
		Median:      70000,
		Interval:    models.Interval{Low: 51000, High: 88000},
	}
}

func sampleReport(t *testing.T) *Report {
	t.Helper()
	r, err := NewReport(sampleResult(), 4)
	require.NoError(t, err)
	return r
}

func TestNewReport(t *testing.T) {
	r := sampleReport(t)

	require.Len(t, r.Histogram.Bins, 4)
	assert.Equal(t, 68000.0, r.Histogram.Mean)
	assert.Equal(t, 70000.0, r.BoxPlot.Median)
	assert.Equal(t, sampleResult().Values, r.Values)
}

func TestNewReport_NoValues(t *testing.T) {
	result := sampleResult()
	result.Values = nil

	_, err := NewReport(result, 30)
	assert.ErrorIs(t, err, chart.ErrNoValues)
}

func TestRenderText(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, RenderText(&buf, sampleReport(t)))
	out := buf.String()

	assert.Contains(t, out, "Data Scientist")
	assert.Contains(t, out, "Full remote")
	assert.Contains(t, out, "Mean Salary: $68,000.00")
	assert.Contains(t, out, "Median Salary: $70,000.00")
	assert.Contains(t, out, "95% Confidence Interval: $51,000.00 - $88,000.00")
	assert.Contains(t, out, "Results for Data Scientist (SE):")
	assert.Contains(t, out, "Simulation Histogram")
	assert.Contains(t, out, "<mean")
	assert.Contains(t, out, "Salary Distribution Box Plot")
	assert.Contains(t, out, "Outliers:")
}

func TestWrite_JSON(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, Write(&buf, "json", sampleReport(t)))

	var decoded map[string]interface{}
	require.NoError(t, json.Unmarshal(buf.Bytes(), &decoded))
	assert.Equal(t, 68000.0, decoded["mean"])
	assert.Equal(t, map[string]interface{}{"low": 51000.0, "high": 88000.0}, decoded["interval"])
	assert.Contains(t, decoded, "histogram")
	assert.Contains(t, decoded, "boxPlot")
	assert.Equal(t, "Full remote", decoded["criteria"].(map[string]interface{})["remoteCategory"])
}

func TestWrite_YAML(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, Write(&buf, "yaml", sampleReport(t)))

	var decoded map[string]interface{}
	require.NoError(t, yaml.Unmarshal(buf.Bytes(), &decoded))
	assert.Equal(t, 70000, decoded["median"])
	assert.Contains(t, decoded, "box_plot")
	assert.Equal(t, "Full remote", decoded["criteria"].(map[string]interface{})["remote_category"])
}

func TestHistogramLabel(t *testing.T) {
	h := &chart.Histogram{
		Bins: []chart.Bin{
			{Low: 50000, High: 60000, Count: 1},
			{Low: 60000, High: 70000, Count: 1},
			{Low: 70000, High: 80000, Count: 2},
		},
		MeanBin:   1,
		MedianBin: 2,
	}

	assert.Equal(t, "$50K-$60K", histogramLabel(h, 0))
	assert.Equal(t, "$60K-$70K <mean", histogramLabel(h, 1))
	assert.Equal(t, "$70K-$80K <median", histogramLabel(h, 2))

	h.MedianBin = 1
	assert.Equal(t, "$60K-$70K <mean,median", histogramLabel(h, 1))
}

func TestHistogramBarWidth(t *testing.T) {
	small := &chart.Histogram{Bins: []chart.Bin{{Count: 3}, {Count: 7}, {Count: 1}}}
	assert.Equal(t, 7, histogramBarWidth(small))

	large := &chart.Histogram{Bins: []chart.Bin{{Count: 400}, {Count: 900}}}
	assert.Equal(t, histogramWidth, histogramBarWidth(large))

	empty := &chart.Histogram{Bins: []chart.Bin{{Count: 0}}}
	assert.Equal(t, 1, histogramBarWidth(empty))
}

func TestBoxPlotLine(t *testing.T) {
	bp := &chart.BoxPlot{Min: 0, LowerWhisker: 0, Q1: 25, Median: 50, Q3: 75, UpperWhisker: 100, Max: 100}
	assert.Equal(t, "|----[====|====]----|", boxPlotLine(bp, 21))

	bp = &chart.BoxPlot{Min: 0, LowerWhisker: 10, Q1: 25, Median: 50, Q3: 75, UpperWhisker: 90, Max: 100, Outliers: []float64{0, 100}}
	assert.Equal(t, "o |--[====|====]--| o", boxPlotLine(bp, 21))
}

func TestBoxPlotLine_Constant(t *testing.T) {
	bp := &chart.BoxPlot{Min: 5, LowerWhisker: 5, Q1: 5, Median: 5, Q3: 5, UpperWhisker: 5, Max: 5}
	assert.Equal(t, strings.Repeat(" ", 10)+"|", boxPlotLine(bp, 21))
}

func TestColorizeSalary(t *testing.T) {
	assert.Equal(t, "$250,000.00", ColorizeSalary(250000))
	assert.Equal(t, "$90,000.00", ColorizeSalary(90000))
}

func TestPrintBanner(t *testing.T) {
	var buf bytes.Buffer
	PrintBanner(&buf, true)
	assert.Empty(t, buf.String())

	PrintBanner(&buf, false)
	assert.NotEmpty(t, buf.String())
}

func TestOptions(t *testing.T) {
	idx, err := dataset.NewIndex([]models.SalaryRecord{
		{JobTitle: "Data Scientist", ExperienceLevel: "SE", RemoteRatio: 100, Salary: 1},
		{JobTitle: "Data Scientist", ExperienceLevel: "SE", RemoteRatio: 0, Salary: 2},
		{JobTitle: "Data Engineer", ExperienceLevel: "MI", RemoteRatio: 50, Salary: 3},
	})
	require.NoError(t, err)

	opts := NewOptions(idx, 2)
	assert.Equal(t, []dataset.CategoryCount{{Value: "Data Scientist", Count: 2}}, opts.JobTitles)
	assert.Equal(t, []dataset.CategoryCount{{Value: "SE", Count: 2}}, opts.ExperienceLevels)
	assert.Equal(t, models.RemoteCategories, opts.RemoteCategories)

	var buf bytes.Buffer
	require.NoError(t, WriteOptions(&buf, "text", opts))
	out := buf.String()
	assert.Contains(t, out, "Data Scientist")
	assert.NotContains(t, out, "Data Engineer")
	assert.Contains(t, out, "Hybrid")

	buf.Reset()
	require.NoError(t, WriteOptions(&buf, "json", opts))
	assert.Contains(t, buf.String(), `"jobTitles"`)
}

func TestPrintNoData(t *testing.T) {
	var buf bytes.Buffer
	PrintNoData(&buf)
	assert.Contains(t, buf.String(), NoDataMessage)
}
