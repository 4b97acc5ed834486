package cache

import (
	"context"

	"github.com/fr4nk3nst1ner/salarysim/internal/logger"
	"github.com/fr4nk3nst1ner/salarysim/internal/metrics"
	"github.com/fr4nk3nst1ner/salarysim/internal/models"
)

const (
	DriverMemory = "memory"
	DriverRedis  = "redis"
	DriverNone   = "none"
)

// Store memoizes simulation results by their exact input key
type Store interface {
	Get(ctx context.Context, key string) (*models.SimulationResult, bool, error)
	Set(ctx context.Context, key string, result *models.SimulationResult) error
	Name() string
}

// Memoize returns the cached result for key or computes and stores it.
// Cache failures are logged and never fail the request. Errors from compute
// (including no-data) are returned as-is and not cached.
func Memoize(
	ctx context.Context,
	store Store,
	key string,
	log logger.Logger,
	compute func(ctx context.Context) (*models.SimulationResult, error),
) (*models.SimulationResult, bool, error) {
	result, found, err := store.Get(ctx, key)
	switch {
	case err != nil:
		log.Warn("cache lookup failed", map[string]interface{}{"backend": store.Name(), "key": key, "error": err})
		metrics.CacheLookups.WithLabelValues(store.Name(), "error").Inc()
	case found:
		metrics.CacheLookups.WithLabelValues(store.Name(), "hit").Inc()
		log.Debug("cache hit", map[string]interface{}{"backend": store.Name(), "key": key})
		return result, true, nil
	default:
		metrics.CacheLookups.WithLabelValues(store.Name(), "miss").Inc()
	}

	result, err = compute(ctx)
	if err != nil {
		return nil, false, err
	}

	if err := store.Set(ctx, key, result); err != nil {
		log.Warn("cache store failed", map[string]interface{}{"backend": store.Name(), "key": key, "error": err})
	}
	return result, false, nil
}

// NoopStore never caches; every request recomputes
type NoopStore struct{}

func (NoopStore) Get(context.Context, string) (*models.SimulationResult, bool, error) {
	return nil, false, nil
}

func (NoopStore) Set(context.Context, string, *models.SimulationResult) error {
	return nil
}

func (NoopStore) Name() string {
	return DriverNone
}
