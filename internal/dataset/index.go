package dataset

import (
	"fmt"
	"sort"

	"github.com/fr4nk3nst1ner/salarysim/internal/models"
)

// Index is the read-only in-memory table of salary records. Each record is
// tagged with its remote category once, at construction.
type Index struct {
	records    []models.SalaryRecord
	categories []models.RemoteCategory
}

// NewIndex builds an Index from loaded records. A record with a remote ratio
// outside 0/50/100 is rejected instead of being left uncategorised.
func NewIndex(records []models.SalaryRecord) (*Index, error) {
	idx := &Index{
		records:    make([]models.SalaryRecord, len(records)),
		categories: make([]models.RemoteCategory, len(records)),
	}
	copy(idx.records, records)

	for i, rec := range idx.records {
		category, err := models.RemoteCategoryFromRatio(rec.RemoteRatio)
		if err != nil {
			return nil, fmt.Errorf("record %d (%s): %w", i, rec.JobTitle, err)
		}
		idx.categories[i] = category
	}

	return idx, nil
}

// Len returns the number of records
func (idx *Index) Len() int {
	return len(idx.records)
}

// At returns the record at position i and its remote category
func (idx *Index) At(i int) (models.SalaryRecord, models.RemoteCategory) {
	return idx.records[i], idx.categories[i]
}

// CategoryCount is a distinct value and how often it occurs
type CategoryCount struct {
	Value string `json:"value" yaml:"value"`
	Count int    `json:"count" yaml:"count"`
}

// JobTitles returns job titles occurring at least minCount times, most frequent first.
func (idx *Index) JobTitles(minCount int) []CategoryCount {
	return idx.valueCounts(minCount, func(r models.SalaryRecord) string { return r.JobTitle })
}

// ExperienceLevels returns experience levels occurring at least minCount times, most frequent first.
func (idx *Index) ExperienceLevels(minCount int) []CategoryCount {
	return idx.valueCounts(minCount, func(r models.SalaryRecord) string { return r.ExperienceLevel })
}

func (idx *Index) valueCounts(minCount int, field func(models.SalaryRecord) string) []CategoryCount {
	counts := make(map[string]int)
	for _, rec := range idx.records {
		counts[field(rec)]++
	}

	result := make([]CategoryCount, 0, len(counts))
	for value, count := range counts {
		if count >= minCount {
			result = append(result, CategoryCount{Value: value, Count: count})
		}
	}

	sort.Slice(result, func(i, j int) bool {
		if result[i].Count != result[j].Count {
			return result[i].Count > result[j].Count
		}
		return result[i].Value < result[j].Value
	})
	return result
}
