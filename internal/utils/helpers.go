package utils

import (
	"errors"
	"fmt"
	"math"
	"strconv"
	"strings"

	"github.com/dustin/go-humanize"
)

const (
	FormatText = "text"
	FormatJSON = "json"
	FormatYAML = "yaml"
)

var (
	ErrSimulationCountOutOfRange = errors.New("number of simulations out of range")
	ErrInvalidSalary             = errors.New("invalid salary")
)

// ParseSalary converts a salary cell into a number. It accepts plain numbers
// as well as display forms such as "$120,000" and "85K".
func ParseSalary(raw string) (float64, error) {
	s := strings.TrimSpace(raw)
	s = strings.ReplaceAll(s, "$", "")
	s = strings.ReplaceAll(s, ",", "")
	s = strings.TrimSpace(s)

	multiplier := 1.0
	if strings.HasSuffix(strings.ToUpper(s), "K") {
		multiplier = 1000
		s = s[:len(s)-1]
	}

	value, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return 0, fmt.Errorf("%w: %q", ErrInvalidSalary, raw)
	}
	value *= multiplier
	if value < 0 || math.IsNaN(value) || math.IsInf(value, 0) {
		return 0, fmt.Errorf("%w: %q", ErrInvalidSalary, raw)
	}
	return value, nil
}

// FormatSalary renders an amount as dollars with thousands separators and
// two decimals, e.g. $68,000.00
func FormatSalary(value float64) string {
	return "$" + humanize.FormatFloat("#,###.##", value)
}

// FormatSalaryShort renders an amount in thousands for axis labels, e.g. $68K
func FormatSalaryShort(value float64) string {
	return fmt.Sprintf("$%sK", humanize.Comma(int64(math.Round(value/1000))))
}

// ValidateSimulationCount enforces the caller-side bounds on the number of
// resampling draws
func ValidateSimulationCount(n, minCount, maxCount int) error {
	if n < minCount || n > maxCount {
		return fmt.Errorf("%w: %d is not within [%d, %d]", ErrSimulationCountOutOfRange, n, minCount, maxCount)
	}
	return nil
}

// IsValidFormat checks if the output format is supported
func IsValidFormat(format string) bool {
	switch strings.ToLower(format) {
	case FormatText, FormatJSON, FormatYAML:
		return true
	}
	return false
}
