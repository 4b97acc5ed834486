package dataset

import (
	"errors"
	"fmt"
	"math"
	"strconv"
	"strings"

	"github.com/fr4nk3nst1ner/salarysim/internal/logger"
	"github.com/fr4nk3nst1ner/salarysim/internal/models"
	"github.com/fr4nk3nst1ner/salarysim/internal/utils"
)

const (
	ColumnJobTitle        = "job_title"
	ColumnExperienceLevel = "experience_level"
	ColumnRemoteRatio     = "remote_ratio"
	ColumnSalary          = "salary"
)

var (
	ErrMissingColumn = errors.New("missing required column")
	ErrNoTable       = errors.New("no table found")
	ErrInvalidRow    = errors.New("invalid row")
)

// columnIndex maps the required columns to their position in a row
type columnIndex struct {
	jobTitle        int
	experienceLevel int
	remoteRatio     int
	salary          int
}

func newColumnIndex(headers []string) (columnIndex, error) {
	positions := make(map[string]int, len(headers))
	for i, h := range headers {
		key := strings.ToLower(strings.TrimSpace(h))
		if _, seen := positions[key]; !seen {
			positions[key] = i
		}
	}

	lookup := func(name string) (int, error) {
		pos, ok := positions[name]
		if !ok {
			return 0, fmt.Errorf("%w: %s", ErrMissingColumn, name)
		}
		return pos, nil
	}

	var idx columnIndex
	var err error
	if idx.jobTitle, err = lookup(ColumnJobTitle); err != nil {
		return idx, err
	}
	if idx.experienceLevel, err = lookup(ColumnExperienceLevel); err != nil {
		return idx, err
	}
	if idx.remoteRatio, err = lookup(ColumnRemoteRatio); err != nil {
		return idx, err
	}
	if idx.salary, err = lookup(ColumnSalary); err != nil {
		return idx, err
	}
	return idx, nil
}

func (c columnIndex) width() int {
	return max(c.jobTitle, c.experienceLevel, c.remoteRatio, c.salary) + 1
}

// record converts a raw row into a SalaryRecord
func (c columnIndex) record(row []string) (models.SalaryRecord, error) {
	if len(row) < c.width() {
		return models.SalaryRecord{}, fmt.Errorf("%w: expected at least %d fields, got %d", ErrInvalidRow, c.width(), len(row))
	}

	salary, err := utils.ParseSalary(row[c.salary])
	if err != nil {
		return models.SalaryRecord{}, fmt.Errorf("%w: %v", ErrInvalidRow, err)
	}

	ratio, err := parseRatio(row[c.remoteRatio])
	if err != nil {
		return models.SalaryRecord{}, err
	}
	if _, err := models.RemoteCategoryFromRatio(ratio); err != nil {
		return models.SalaryRecord{}, err
	}

	return models.SalaryRecord{
		JobTitle:        strings.TrimSpace(row[c.jobTitle]),
		ExperienceLevel: strings.TrimSpace(row[c.experienceLevel]),
		RemoteRatio:     ratio,
		Salary:          salary,
	}, nil
}

// parseRatio accepts "50" as well as the float rendering "50.0"
func parseRatio(raw string) (int, error) {
	raw = strings.TrimSpace(raw)
	if v, err := strconv.Atoi(raw); err == nil {
		return v, nil
	}
	f, err := strconv.ParseFloat(raw, 64)
	if err != nil || f != math.Trunc(f) {
		return 0, fmt.Errorf("%w: remote_ratio %q", ErrInvalidRow, raw)
	}
	return int(f), nil
}

// rowCollector accumulates records, skipping and counting bad rows
type rowCollector struct {
	columns columnIndex
	log     logger.Logger
	records []models.SalaryRecord
	skipped int
}

func (rc *rowCollector) add(line int, row []string) {
	rec, err := rc.columns.record(row)
	if err != nil {
		rc.skipped++
		rc.log.Debug("skipping row", map[string]interface{}{
			"line":  line,
			"error": err,
		})
		return
	}
	rc.records = append(rc.records, rec)
}

func (rc *rowCollector) finish(source string) []models.SalaryRecord {
	if rc.skipped > 0 {
		rc.log.Warn("skipped malformed rows", map[string]interface{}{
			"source":  source,
			"skipped": rc.skipped,
		})
	}
	rc.log.Info("dataset parsed", map[string]interface{}{
		"source":  source,
		"records": len(rc.records),
	})
	return rc.records
}
