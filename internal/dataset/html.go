package dataset

import (
	"fmt"
	"io"
	"strings"

	"github.com/PuerkitoBio/goquery"

	"github.com/fr4nk3nst1ner/salarysim/internal/logger"
	"github.com/fr4nk3nst1ner/salarysim/internal/models"
)

// ParseHTML reads salary records from the first <table> of an HTML document,
// e.g. a salary report saved from a browser. The header row is the first row
// containing <th> cells, or the first row when the table has none.
func ParseHTML(r io.Reader, log logger.Logger) ([]models.SalaryRecord, error) {
	doc, err := goquery.NewDocumentFromReader(r)
	if err != nil {
		return nil, fmt.Errorf("failed to parse HTML: %w", err)
	}

	table := doc.Find("table").First()
	if table.Length() == 0 {
		return nil, ErrNoTable
	}

	rows := table.Find("tr")
	if rows.Length() == 0 {
		return nil, fmt.Errorf("%w: table has no rows", ErrNoTable)
	}

	headerRow := rows.FilterFunction(func(_ int, s *goquery.Selection) bool {
		return s.Find("th").Length() > 0
	}).First()
	if headerRow.Length() == 0 {
		headerRow = rows.First()
	}

	columns, err := newColumnIndex(cellTexts(headerRow))
	if err != nil {
		return nil, err
	}

	rc := &rowCollector{columns: columns, log: log}
	rows.Each(func(i int, s *goquery.Selection) {
		if s.IsSelection(headerRow) {
			return
		}
		cells := s.Find("td")
		if cells.Length() == 0 {
			return
		}
		rc.add(i+1, cellTexts(s))
	})

	return rc.finish("html"), nil
}

func cellTexts(row *goquery.Selection) []string {
	var out []string
	row.Find("th, td").Each(func(_ int, cell *goquery.Selection) {
		out = append(out, strings.TrimSpace(cell.Text()))
	})
	return out
}
