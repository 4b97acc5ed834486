package simulation

import (
	"github.com/fr4nk3nst1ner/salarysim/internal/dataset"
	"github.com/fr4nk3nst1ner/salarysim/internal/models"
)

// Resolve returns the salaries of all records matching every field of the
// criteria exactly (case-sensitive). No match yields an empty slice.
func Resolve(idx *dataset.Index, c models.FilterCriteria) []float64 {
	salaries := make([]float64, 0)
	for i := 0; i < idx.Len(); i++ {
		rec, category := idx.At(i)
		if rec.JobTitle == c.JobTitle &&
			rec.ExperienceLevel == c.ExperienceLevel &&
			category == c.RemoteCategory {
			salaries = append(salaries, rec.Salary)
		}
	}
	return salaries
}
