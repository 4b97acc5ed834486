package ui

import (
	"fmt"
	"io"
	"strings"

	"github.com/pterm/pterm"

	"github.com/fr4nk3nst1ner/salarysim/internal/dataset"
	"github.com/fr4nk3nst1ner/salarysim/internal/models"
	"github.com/fr4nk3nst1ner/salarysim/internal/utils"
)

// Options are the selectable filter values offered to the user
type Options struct {
	JobTitles        []dataset.CategoryCount `json:"jobTitles" yaml:"job_titles"`
	ExperienceLevels []dataset.CategoryCount `json:"experienceLevels" yaml:"experience_levels"`
	RemoteCategories []models.RemoteCategory `json:"remoteCategories" yaml:"remote_categories"`
	MinCount         int                     `json:"minCount" yaml:"min_count"`
}

// NewOptions lists job titles and experience levels that occur at least
// minCount times in the index
func NewOptions(idx *dataset.Index, minCount int) Options {
	return Options{
		JobTitles:        idx.JobTitles(minCount),
		ExperienceLevels: idx.ExperienceLevels(minCount),
		RemoteCategories: models.RemoteCategories,
		MinCount:         minCount,
	}
}

// WriteOptions renders the options in the given output format
func WriteOptions(w io.Writer, format string, o Options) error {
	switch strings.ToLower(format) {
	case utils.FormatJSON:
		return WriteJSON(w, o)
	case utils.FormatYAML:
		return WriteYAML(w, o)
	default:
		return RenderOptions(w, o)
	}
}

// RenderOptions prints the options as tables
func RenderOptions(w io.Writer, o Options) error {
	var b strings.Builder

	sections := []struct {
		title  string
		header string
		counts []dataset.CategoryCount
	}{
		{"Job Titles", "Job Title", o.JobTitles},
		{"Experience Levels", "Experience Level", o.ExperienceLevels},
	}
	for _, s := range sections {
		b.WriteString(pterm.DefaultSection.Sprint(s.title))
		if len(s.counts) == 0 {
			fmt.Fprintf(&b, "None with at least %d records\n", o.MinCount)
			continue
		}
		data := pterm.TableData{{s.header, "Records"}}
		for _, c := range s.counts {
			data = append(data, []string{c.Value, fmt.Sprintf("%d", c.Count)})
		}
		table, err := pterm.DefaultTable.WithHasHeader().WithData(data).Srender()
		if err != nil {
			return err
		}
		b.WriteString(table)
		b.WriteString("\n")
	}

	b.WriteString(pterm.DefaultSection.Sprint("Remote Categories"))
	for _, c := range o.RemoteCategories {
		fmt.Fprintf(&b, "  %s\n", c)
	}

	_, err := io.WriteString(w, b.String())
	return err
}

// PrintNoData writes the no-data warning
func PrintNoData(w io.Writer) {
	fmt.Fprint(w, pterm.Warning.Sprintln(NoDataMessage))
}
