package models

import (
	"errors"
	"fmt"
	"strings"
)

var (
	ErrUnknownRemoteRatio    = errors.New("unknown remote ratio")
	ErrUnknownRemoteCategory = errors.New("unknown remote category")
)

// RemoteCategory is the work arrangement derived from a record's remote ratio
type RemoteCategory string

const (
	NonRemote  RemoteCategory = "Non remote"
	Hybrid     RemoteCategory = "Hybrid"
	FullRemote RemoteCategory = "Full remote"
)

// RemoteCategories lists the categories in remote ratio order
var RemoteCategories = []RemoteCategory{NonRemote, Hybrid, FullRemote}

// RemoteCategoryFromRatio maps a remote_ratio percentage (0, 50 or 100) to its category
func RemoteCategoryFromRatio(ratio int) (RemoteCategory, error) {
	switch ratio {
	case 0:
		return NonRemote, nil
	case 50:
		return Hybrid, nil
	case 100:
		return FullRemote, nil
	}
	return "", fmt.Errorf("%w: %d", ErrUnknownRemoteRatio, ratio)
}

// ParseRemoteCategory resolves a user supplied label to its canonical category.
// Matching ignores case and surrounding whitespace, so "full remote" works too.
func ParseRemoteCategory(label string) (RemoteCategory, error) {
	normalized := strings.ToLower(strings.TrimSpace(label))
	for _, c := range RemoteCategories {
		if strings.ToLower(string(c)) == normalized {
			return c, nil
		}
	}
	return "", fmt.Errorf("%w: %q", ErrUnknownRemoteCategory, label)
}

// SalaryRecord represents a single historical salary observation
type SalaryRecord struct {
	JobTitle        string  `json:"job_title"`
	ExperienceLevel string  `json:"experience_level"`
	RemoteRatio     int     `json:"remote_ratio"`
	Salary          float64 `json:"salary"`
}

// FilterCriteria selects the records a simulation resamples from
type FilterCriteria struct {
	JobTitle        string         `json:"jobTitle" yaml:"job_title"`
	ExperienceLevel string         `json:"experienceLevel" yaml:"experience_level"`
	RemoteCategory  RemoteCategory `json:"remoteCategory" yaml:"remote_category"`
}

// Key renders the memoization key for a simulation of n draws. Fields are
// quoted so a separator inside a title cannot collide with another tuple.
func (c FilterCriteria) Key(n int) string {
	return fmt.Sprintf("%q|%q|%q|%d", c.JobTitle, c.ExperienceLevel, string(c.RemoteCategory), n)
}

// Interval is an empirical percentile interval
type Interval struct {
	Low  float64 `json:"low" yaml:"low"`
	High float64 `json:"high" yaml:"high"`
}

// SimulationResult holds the resampled salaries and their summary statistics
type SimulationResult struct {
	Criteria    FilterCriteria `json:"criteria" yaml:"criteria"`
	Simulations int            `json:"simulations" yaml:"simulations"`
	Values      []float64      `json:"values" yaml:"values"`
	Mean        float64        `json:"mean" yaml:"mean"`
	Median      float64        `json:"median" yaml:"median"`
	Interval    Interval       `json:"interval" yaml:"interval"`
}
