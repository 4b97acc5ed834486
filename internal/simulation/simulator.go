package simulation

import (
	"context"
	"fmt"
	"time"

	"github.com/fr4nk3nst1ner/salarysim/internal/dataset"
	"github.com/fr4nk3nst1ner/salarysim/internal/logger"
	"github.com/fr4nk3nst1ner/salarysim/internal/metrics"
	"github.com/fr4nk3nst1ner/salarysim/internal/models"
)

// Simulator runs the filter, resample and summarize pipeline against one
// dataset. It is safe for concurrent use; every call returns a fresh result.
type Simulator struct {
	index  *dataset.Index
	source Source
	logger logger.Logger
}

// NewSimulator wires a simulator to an index and a random source
func NewSimulator(idx *dataset.Index, src Source, log logger.Logger) *Simulator {
	return &Simulator{
		index:  idx,
		source: &lockedSource{src: src},
		logger: log.WithFields(map[string]interface{}{"component": "simulator"}),
	}
}

// Index returns the dataset the simulator reads from
func (s *Simulator) Index() *dataset.Index {
	return s.index
}

// Run resamples n salaries for the criteria and summarizes them.
// It returns ErrNoData when no record matches.
func (s *Simulator) Run(ctx context.Context, c models.FilterCriteria, n int) (*models.SimulationResult, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	start := time.Now()
	fields := map[string]interface{}{
		"jobTitle":        c.JobTitle,
		"experienceLevel": c.ExperienceLevel,
		"remoteCategory":  c.RemoteCategory,
		"simulations":     n,
	}

	salaries := Resolve(s.index, c)
	if len(salaries) == 0 {
		metrics.SimulationsTotal.WithLabelValues(metrics.OutcomeNoData).Inc()
		s.logger.Info("no matching records", fields)
		return nil, ErrNoData
	}
	s.logger.Debug("filter resolved", map[string]interface{}{"matches": len(salaries)})

	values, err := Resample(s.source, salaries, n)
	if err != nil {
		metrics.SimulationsTotal.WithLabelValues(metrics.OutcomeError).Inc()
		return nil, fmt.Errorf("resample: %w", err)
	}

	summary, err := Summarize(values)
	if err != nil {
		metrics.SimulationsTotal.WithLabelValues(metrics.OutcomeError).Inc()
		return nil, fmt.Errorf("summarize: %w", err)
	}

	elapsed := time.Since(start)
	metrics.SimulationsTotal.WithLabelValues(metrics.OutcomeOK).Inc()
	metrics.SimulationDuration.Observe(elapsed.Seconds())

	fields["matches"] = len(salaries)
	fields["mean"] = summary.Mean
	fields["median"] = summary.Median
	fields["duration"] = elapsed.String()
	s.logger.Debug("simulation complete", fields)

	return &models.SimulationResult{
		Criteria:    c,
		Simulations: n,
		Values:      values,
		Mean:        summary.Mean,
		Median:      summary.Median,
		Interval:    summary.Interval,
	}, nil
}
