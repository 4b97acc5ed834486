package simulation

import "errors"

var (
	// ErrNoData signals that no record matches the filter criteria. It is an
	// expected outcome the caller reports to the user, not a failure.
	ErrNoData = errors.New("no data available for the selected parameters")

	// ErrEmptyInput is a contract violation: resampling or summarizing
	// was attempted on an empty sequence.
	ErrEmptyInput = errors.New("empty input")

	// ErrInvalidCount is a contract violation: a non-positive draw count.
	ErrInvalidCount = errors.New("simulation count must be positive")
)
