package dataset

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/fr4nk3nst1ner/salarysim/internal/logger"
	"github.com/fr4nk3nst1ner/salarysim/internal/models"
)

// ParseCSV reads salary records from CSV with a header row. Extra columns are
// ignored; rows that fail to parse are skipped and counted.
func ParseCSV(r io.Reader, log logger.Logger) ([]models.SalaryRecord, error) {
	reader := csv.NewReader(r)
	reader.FieldsPerRecord = -1
	reader.TrimLeadingSpace = true

	headers, err := reader.Read()
	if err != nil {
		return nil, fmt.Errorf("failed to read CSV headers: %w", err)
	}
	if len(headers) > 0 {
		// strip a UTF-8 BOM left by spreadsheet exports
		headers[0] = trimBOM(headers[0])
	}

	columns, err := newColumnIndex(headers)
	if err != nil {
		return nil, err
	}

	rc := &rowCollector{columns: columns, log: log}
	line := 1
	for {
		row, err := reader.Read()
		if errors.Is(err, io.EOF) {
			break
		}
		line++
		if err != nil {
			rc.skipped++
			log.Debug("skipping malformed CSV line", map[string]interface{}{"line": line, "error": err})
			continue
		}
		rc.add(line, row)
	}

	return rc.finish("csv"), nil
}

func trimBOM(s string) string {
	return strings.TrimPrefix(s, "\ufeff")
}
