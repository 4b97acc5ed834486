package server

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/fr4nk3nst1ner/salarysim/internal/cache"
	"github.com/fr4nk3nst1ner/salarysim/internal/config"
	"github.com/fr4nk3nst1ner/salarysim/internal/dataset"
	"github.com/fr4nk3nst1ner/salarysim/internal/logger"
	"github.com/fr4nk3nst1ner/salarysim/internal/models"
)

const maxRequestBodySize = 1 << 20

// Simulator runs one simulation for a set of criteria
type Simulator interface {
	Run(ctx context.Context, c models.FilterCriteria, n int) (*models.SimulationResult, error)
}

type ServiceDeps struct {
	Server config.ServerConfig
	Policy config.SimulationConfig

	Index     *dataset.Index
	Simulator Simulator
	Cache     cache.Store
	Logger    logger.Logger
}

// Service is the HTTP API in front of the simulator
type Service struct {
	mux     *http.ServeMux
	handler http.Handler
	cfg     config.ServerConfig
	policy  config.SimulationConfig

	index     *dataset.Index
	simulator Simulator
	cache     cache.Store
	log       logger.Logger
}

func NewService(d ServiceDeps) *Service {
	store := d.Cache
	if store == nil {
		store = cache.NoopStore{}
	}
	log := d.Logger
	if log == nil {
		log = logger.NewNoOpLogger()
	}

	s := &Service{
		mux:       http.NewServeMux(),
		cfg:       d.Server,
		policy:    d.Policy,
		index:     d.Index,
		simulator: d.Simulator,
		cache:     store,
		log:       log.WithFields(map[string]interface{}{"component": "http"}),
	}
	s.mountRoutes()
	s.handler = RecoveryMiddleware(s.log, RequestIDMiddleware(LoggingMiddleware(s.log, s.mux)))
	return s
}

func (s *Service) mountRoutes() {
	s.mux.HandleFunc("GET /{$}", s.indexHandler)
	s.mux.HandleFunc("GET /health", s.healthHandler)
	s.mux.HandleFunc("GET /api/options", s.optionsHandler)
	s.mux.HandleFunc("POST /api/simulate", s.simulateHandler)
	s.mux.Handle("GET /metrics", promhttp.Handler())
}

// Handler returns the fully wrapped HTTP handler
func (s *Service) Handler() http.Handler {
	return s.handler
}

// Start serves until ctx is cancelled, then shuts down gracefully
func (s *Service) Start(ctx context.Context) error {
	server := &http.Server{
		Addr:              s.cfg.Addr(),
		Handler:           s.handler,
		ReadTimeout:       s.cfg.ReadTimeout,
		ReadHeaderTimeout: s.cfg.ReadTimeout,
		WriteTimeout:      s.cfg.WriteTimeout,
	}

	s.log.Info("starting salary simulation API", map[string]interface{}{"addr": server.Addr})

	emergencyShutdown := make(chan error, 1)
	go func() {
		emergencyShutdown <- server.ListenAndServe()
	}()

	select {
	case <-ctx.Done():
		timeout := s.cfg.ShutdownTimeout
		if timeout <= 0 {
			timeout = 10 * time.Second
		}
		shutdownCtx, cancel := context.WithTimeout(context.Background(), timeout)
		defer cancel()
		s.log.Info("shutting down", nil)
		if err := server.Shutdown(shutdownCtx); err != nil {
			return fmt.Errorf("shutdown: %w", err)
		}
		return nil
	case err := <-emergencyShutdown:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return err
	}
}
