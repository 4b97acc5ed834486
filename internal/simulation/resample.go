package simulation

import (
	"fmt"
	"math/rand"
	"sync"
	"time"
)

// Source is the randomness a resample draws from. *rand.Rand satisfies it.
type Source interface {
	Intn(n int) int
}

// NewSource returns a seeded source. A zero seed seeds from the clock, so
// repeated runs differ.
func NewSource(seed int64) Source {
	if seed == 0 {
		seed = time.Now().UnixNano()
	}
	return rand.New(rand.NewSource(seed))
}

// lockedSource serialises access to a Source shared between goroutines
type lockedSource struct {
	mu  sync.Mutex
	src Source
}

func (l *lockedSource) Intn(n int) int {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.src.Intn(n)
}

// Resample draws n values from values uniformly and with replacement.
// The output always has length n, whatever the input size.
func Resample(src Source, values []float64, n int) ([]float64, error) {
	if len(values) == 0 {
		return nil, ErrEmptyInput
	}
	if n <= 0 {
		return nil, fmt.Errorf("%w: %d", ErrInvalidCount, n)
	}

	out := make([]float64, n)
	for i := range out {
		out[i] = values[src.Intn(len(values))]
	}
	return out, nil
}
