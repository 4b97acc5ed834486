package cache

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/fr4nk3nst1ner/salarysim/internal/logger"
	"github.com/fr4nk3nst1ner/salarysim/internal/metrics"
	"github.com/fr4nk3nst1ner/salarysim/internal/models"
)

func sampleResult() *models.SimulationResult {
	return &models.SimulationResult{
		Criteria: models.FilterCriteria{
			JobTitle:        "Data Scientist",
			ExperienceLevel: "SE",
			RemoteCategory:  models.FullRemote,
		},
		Simulations: 5,
		Values:      []float64{70000, 50000, 90000, 70000, 60000},
		Mean:        68000,
		Median:      70000,
		Interval:    models.Interval{Low: 51000, High: 88000},
	}
}

func TestMemoryStore_SetGet(t *testing.T) {
	store := NewMemoryStore(time.Hour)
	ctx := context.Background()

	_, found, err := store.Get(ctx, "missing")
	require.NoError(t, err)
	assert.False(t, found)

	require.NoError(t, store.Set(ctx, "k", sampleResult()))
	got, found, err := store.Get(ctx, "k")
	require.NoError(t, err)
	assert.True(t, found)
	assert.Equal(t, sampleResult(), got)
	assert.Equal(t, DriverMemory, store.Name())
}

func TestMemoryStore_Expiry(t *testing.T) {
	store := NewMemoryStore(time.Minute)
	now := time.Date(2024, 1, 1, 12, 0, 0, 0, time.UTC)
	store.now = func() time.Time { return now }
	ctx := context.Background()

	require.NoError(t, store.Set(ctx, "k", sampleResult()))

	now = now.Add(30 * time.Second)
	_, found, _ := store.Get(ctx, "k")
	assert.True(t, found)

	now = now.Add(time.Minute)
	_, found, _ = store.Get(ctx, "k")
	assert.False(t, found)
	assert.Equal(t, 0, store.Len())
}

func TestMemoryStore_ZeroTTLNeverExpires(t *testing.T) {
	store := NewMemoryStore(0)
	now := time.Now()
	store.now = func() time.Time { return now }
	ctx := context.Background()

	require.NoError(t, store.Set(ctx, "k", sampleResult()))
	now = now.Add(24 * 365 * time.Hour)

	_, found, _ := store.Get(ctx, "k")
	assert.True(t, found)
}

func newRedisStore(t *testing.T, ttl time.Duration) (*RedisStore, *miniredis.Miniredis) {
	t.Helper()
	mr := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { client.Close() })
	return NewRedisStore(client, ttl), mr
}

func TestRedisStore_SetGet(t *testing.T) {
	store, mr := newRedisStore(t, time.Hour)
	ctx := context.Background()

	_, found, err := store.Get(ctx, "k")
	require.NoError(t, err)
	assert.False(t, found)

	require.NoError(t, store.Set(ctx, "k", sampleResult()))
	assert.True(t, mr.Exists(redisKeyPrefix+"k"))
	assert.Equal(t, time.Hour, mr.TTL(redisKeyPrefix+"k"))

	got, found, err := store.Get(ctx, "k")
	require.NoError(t, err)
	assert.True(t, found)
	assert.Equal(t, sampleResult(), got)
}

func TestRedisStore_Expiry(t *testing.T) {
	store, mr := newRedisStore(t, time.Minute)
	ctx := context.Background()

	require.NoError(t, store.Set(ctx, "k", sampleResult()))
	mr.FastForward(2 * time.Minute)

	_, found, err := store.Get(ctx, "k")
	require.NoError(t, err)
	assert.False(t, found)
}

func TestRedisStore_CorruptEntry(t *testing.T) {
	store, mr := newRedisStore(t, time.Minute)
	require.NoError(t, mr.Set(redisKeyPrefix+"k", "not json"))

	_, found, err := store.Get(context.Background(), "k")
	assert.Error(t, err)
	assert.False(t, found)
}

func TestNewRedisClient_Unreachable(t *testing.T) {
	mr := miniredis.RunT(t)
	addr := mr.Addr()
	mr.Close()

	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
	defer cancel()
	_, err := NewRedisClient(ctx, addr, "", 0)
	assert.Error(t, err)
}

func TestMemoize(t *testing.T) {
	store := NewMemoryStore(time.Hour)
	log := logger.NewNoOpLogger()
	ctx := context.Background()
	calls := 0
	compute := func(context.Context) (*models.SimulationResult, error) {
		calls++
		return sampleResult(), nil
	}
	hitsBefore := testutil.ToFloat64(metrics.CacheLookups.WithLabelValues(DriverMemory, "hit"))

	first, cached, err := Memoize(ctx, store, "k", log, compute)
	require.NoError(t, err)
	assert.False(t, cached)

	second, cached, err := Memoize(ctx, store, "k", log, compute)
	require.NoError(t, err)
	assert.True(t, cached)

	assert.Same(t, first, second)
	assert.Equal(t, 1, calls)
	assert.Equal(t, hitsBefore+1, testutil.ToFloat64(metrics.CacheLookups.WithLabelValues(DriverMemory, "hit")))
}

func TestMemoize_DistinctCriteriaDoNotShareEntries(t *testing.T) {
	store := NewMemoryStore(time.Hour)
	log := logger.NewNoOpLogger()
	ctx := context.Background()

	a := models.FilterCriteria{JobTitle: "R&D|Lead", ExperienceLevel: "SE", RemoteCategory: models.Hybrid}
	b := models.FilterCriteria{JobTitle: "R&D", ExperienceLevel: "Lead|SE", RemoteCategory: models.Hybrid}
	computeFor := func(c models.FilterCriteria, mean float64) func(context.Context) (*models.SimulationResult, error) {
		return func(context.Context) (*models.SimulationResult, error) {
			return &models.SimulationResult{Criteria: c, Simulations: 100, Mean: mean}, nil
		}
	}

	_, cached, err := Memoize(ctx, store, a.Key(100), log, computeFor(a, 1))
	require.NoError(t, err)
	assert.False(t, cached)

	got, cached, err := Memoize(ctx, store, b.Key(100), log, computeFor(b, 2))
	require.NoError(t, err)
	assert.False(t, cached)
	assert.Equal(t, b, got.Criteria)
	assert.Equal(t, 2.0, got.Mean)
	assert.Equal(t, 2, store.Len())
}

func TestMemoize_ErrorsAreNotCached(t *testing.T) {
	store := NewMemoryStore(time.Hour)
	errNoData := errors.New("no data")

	_, _, err := Memoize(context.Background(), store, "k", logger.NewNoOpLogger(),
		func(context.Context) (*models.SimulationResult, error) { return nil, errNoData })

	assert.ErrorIs(t, err, errNoData)
	assert.Equal(t, 0, store.Len())
}

func TestMemoize_BackendFailureFallsThrough(t *testing.T) {
	store, mr := newRedisStore(t, time.Minute)
	mr.Close()

	result, cached, err := Memoize(context.Background(), store, "k", logger.NewNoOpLogger(),
		func(context.Context) (*models.SimulationResult, error) { return sampleResult(), nil })

	require.NoError(t, err)
	assert.False(t, cached)
	assert.Equal(t, sampleResult(), result)
}

func TestNoopStore(t *testing.T) {
	var store Store = NoopStore{}
	ctx := context.Background()

	require.NoError(t, store.Set(ctx, "k", sampleResult()))
	_, found, err := store.Get(ctx, "k")
	require.NoError(t, err)
	assert.False(t, found)
}
