package main

import (
	"bytes"
	"context"
	"encoding/json"
	"flag"
	"io"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/pterm/pterm"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/fr4nk3nst1ner/salarysim/internal/cache"
	"github.com/fr4nk3nst1ner/salarysim/internal/config"
	"github.com/fr4nk3nst1ner/salarysim/internal/dataset"
	"github.com/fr4nk3nst1ner/salarysim/internal/logger"
	"github.com/fr4nk3nst1ner/salarysim/internal/simulation"
	"github.com/fr4nk3nst1ner/salarysim/internal/ui"
	"github.com/fr4nk3nst1ner/salarysim/internal/utils"
)

const datasetCSV = `work_year,experience_level,job_title,salary,remote_ratio
2023,SE,Data Scientist,50000,100
2023,SE,Data Scientist,60000,100
2023,SE,Data Scientist,70000,100
2023,SE,Data Scientist,80000,100
2023,SE,Data Scientist,90000,100
2023,MI,Data Engineer,120000,0
`

func TestMain(m *testing.M) {
	pterm.DisableStyling()
	os.Exit(m.Run())
}

func newFlagSet() *flag.FlagSet {
	fs := flag.NewFlagSet("salarysim", flag.ContinueOnError)
	fs.SetOutput(io.Discard)
	return fs
}

func testConfig(t *testing.T) *config.Config {
	t.Helper()
	path := filepath.Join(t.TempDir(), "salaries.csv")
	require.NoError(t, os.WriteFile(path, []byte(datasetCSV), 0o600))
	return &config.Config{
		Data:       config.DataConfig{Path: path, Source: dataset.SourceCSV},
		Simulation: config.SimulationConfig{Min: 100, Max: 10000, Default: 1000, MinCategoryCount: 1, Seed: 3, Bins: 10},
		Cache:      config.CacheConfig{Driver: cache.DriverMemory, TTL: time.Hour},
		Server:     config.ServerConfig{Port: 8080},
	}
}

func TestParseFlags(t *testing.T) {
	opts, err := parseFlags(newFlagSet(), []string{
		"-job-title", "Data Scientist", "-experience", "SE", "-remote", "full remote",
		"-simulations", "500", "-format", "JSON", "-nobanner",
	})
	require.NoError(t, err)

	assert.Equal(t, "Data Scientist", opts.jobTitle)
	assert.Equal(t, 500, opts.simulations)
	assert.Equal(t, utils.FormatJSON, opts.format)
	assert.True(t, opts.silence)
	assert.True(t, opts.set["simulations"])
	assert.False(t, opts.set["seed"])
}

func TestParseFlags_InvalidFormat(t *testing.T) {
	_, err := parseFlags(newFlagSet(), []string{"-format", "xml"})
	assert.Error(t, err)
}

func TestApplyOverrides(t *testing.T) {
	cfg := testConfig(t)
	opts, err := parseFlags(newFlagSet(), []string{"-seed", "99", "-bins", "20", "-source", "HTML", "-debug", "-port", "9090"})
	require.NoError(t, err)

	require.NoError(t, opts.applyOverrides(cfg))
	assert.Equal(t, int64(99), cfg.Simulation.Seed)
	assert.Equal(t, 20, cfg.Simulation.Bins)
	assert.Equal(t, dataset.SourceHTML, cfg.Data.Source)
	assert.Equal(t, "debug", cfg.Logging.Level)
	assert.Equal(t, 9090, cfg.Server.Port)
}

func TestApplyOverrides_Invalid(t *testing.T) {
	cfg := testConfig(t)
	opts, err := parseFlags(newFlagSet(), []string{"-bins", "-1"})
	require.NoError(t, err)

	assert.Error(t, opts.applyOverrides(cfg))
}

func runWith(t *testing.T, args ...string) (string, error) {
	t.Helper()
	cfg := testConfig(t)
	opts, err := parseFlags(newFlagSet(), args)
	require.NoError(t, err)
	require.NoError(t, opts.applyOverrides(cfg))

	log := logger.NewTestLogger(t)
	records, err := loadRecords(context.Background(), cfg.Data, false, log)
	require.NoError(t, err)
	idx, err := dataset.NewIndex(records)
	require.NoError(t, err)
	sim := simulation.NewSimulator(idx, simulation.NewSource(cfg.Simulation.Seed), log)

	var buf bytes.Buffer
	err = runOnce(context.Background(), &buf, opts, cfg, sim, cache.NewMemoryStore(time.Hour), log)
	return buf.String(), err
}

func TestRunOnce_Text(t *testing.T) {
	out, err := runWith(t, "-job-title", "Data Scientist", "-experience", "SE", "-remote", "Full remote")
	require.NoError(t, err)

	assert.Contains(t, out, "Mean Salary: $")
	assert.Contains(t, out, "Median Salary: $")
	assert.Contains(t, out, ui.IntervalLabel)
}

func TestRunOnce_JSON(t *testing.T) {
	out, err := runWith(t, "-job-title", "Data Scientist", "-experience", "SE", "-remote", "full remote",
		"-simulations", "250", "-format", "json")
	require.NoError(t, err)

	var decoded struct {
		Simulations int       `json:"simulations"`
		Values      []float64 `json:"values"`
	}
	require.NoError(t, json.Unmarshal([]byte(out), &decoded))
	assert.Equal(t, 250, decoded.Simulations)
	assert.Len(t, decoded.Values, 250)
	for _, v := range decoded.Values {
		assert.Contains(t, []float64{50000, 60000, 70000, 80000, 90000}, v)
	}
}

func TestRunOnce_NoData(t *testing.T) {
	out, err := runWith(t, "-job-title", "Data Scientist", "-experience", "EX", "-remote", "Hybrid")
	require.NoError(t, err)
	assert.Contains(t, out, ui.NoDataMessage)
}

func TestRunOnce_Errors(t *testing.T) {
	tests := []struct {
		name string
		args []string
	}{
		{"missing criteria", []string{"-job-title", "Data Scientist"}},
		{"bad remote", []string{"-job-title", "Data Scientist", "-experience", "SE", "-remote", "sometimes"}},
		{"count out of range", []string{"-job-title", "Data Scientist", "-experience", "SE", "-remote", "Hybrid", "-simulations", "50"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := runWith(t, tt.args...)
			assert.Error(t, err)
		})
	}
}

func TestNewCacheStore(t *testing.T) {
	ctx := context.Background()
	log := logger.NewNoOpLogger()

	store, err := newCacheStore(ctx, config.CacheConfig{Driver: cache.DriverMemory, TTL: time.Minute}, log)
	require.NoError(t, err)
	assert.Equal(t, cache.DriverMemory, store.Name())

	store, err = newCacheStore(ctx, config.CacheConfig{Driver: cache.DriverNone}, log)
	require.NoError(t, err)
	assert.Equal(t, cache.DriverNone, store.Name())

	mr := miniredis.RunT(t)
	store, err = newCacheStore(ctx, config.CacheConfig{
		Driver: cache.DriverRedis, TTL: time.Minute, Redis: config.RedisConfig{Address: mr.Addr()},
	}, log)
	require.NoError(t, err)
	assert.Equal(t, cache.DriverRedis, store.Name())
}

func TestPrintExamples(t *testing.T) {
	var buf bytes.Buffer
	printExamples(&buf)
	assert.Contains(t, buf.String(), "salarysim -list")
}
