package server

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strings"

	"github.com/fr4nk3nst1ner/salarysim/internal/cache"
	"github.com/fr4nk3nst1ner/salarysim/internal/models"
	"github.com/fr4nk3nst1ner/salarysim/internal/simulation"
	"github.com/fr4nk3nst1ner/salarysim/internal/ui"
	"github.com/fr4nk3nst1ner/salarysim/internal/utils"
)

const CacheHeader = "X-Cache"

type simulateRequest struct {
	JobTitle        string `json:"jobTitle"`
	ExperienceLevel string `json:"experienceLevel"`
	RemoteCategory  string `json:"remoteCategory"`
	Simulations     int    `json:"simulations"`
}

func (s *Service) healthHandler(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusOK, okResponse{Status: "ok", Msg: "OK", Records: s.index.Len()})
}

func (s *Service) optionsHandler(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusOK, ui.NewOptions(s.index, s.policy.MinCategoryCount))
}

func (s *Service) simulateHandler(w http.ResponseWriter, r *http.Request) {
	var req simulateRequest
	if err := json.NewDecoder(http.MaxBytesReader(w, r.Body, maxRequestBodySize)).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, CodeInvalidRequest, fmt.Sprintf("invalid request body: %v", err))
		return
	}

	criteria, n, code, err := s.parseSimulateRequest(req)
	if err != nil {
		writeError(w, http.StatusBadRequest, code, err.Error())
		return
	}

	log := s.log.WithFields(map[string]interface{}{"request_id": RequestIDFromContext(r.Context())})
	result, cached, err := cache.Memoize(r.Context(), s.cache, criteria.Key(n), log,
		func(ctx context.Context) (*models.SimulationResult, error) {
			return s.simulator.Run(ctx, criteria, n)
		})
	switch {
	case errors.Is(err, simulation.ErrNoData):
		writeError(w, http.StatusNotFound, CodeNoData, ui.NoDataMessage)
		return
	case err != nil:
		log.WithError(err).Error("simulation failed", nil)
		writeError(w, http.StatusInternalServerError, CodeInternal, "simulation failed")
		return
	}

	report, err := ui.NewReport(result, s.policy.Bins)
	if err != nil {
		log.WithError(err).Error("building report failed", nil)
		writeError(w, http.StatusInternalServerError, CodeInternal, "building report failed")
		return
	}

	if cached {
		w.Header().Set(CacheHeader, "HIT")
	} else {
		w.Header().Set(CacheHeader, "MISS")
	}
	writeJSON(w, http.StatusOK, report)
}

// parseSimulateRequest validates the request and applies the default
// simulation count. The returned code identifies the failure.
func (s *Service) parseSimulateRequest(req simulateRequest) (models.FilterCriteria, int, string, error) {
	if strings.TrimSpace(req.JobTitle) == "" {
		return models.FilterCriteria{}, 0, CodeInvalidRequest, errors.New("jobTitle is required")
	}
	if strings.TrimSpace(req.ExperienceLevel) == "" {
		return models.FilterCriteria{}, 0, CodeInvalidRequest, errors.New("experienceLevel is required")
	}

	category, err := models.ParseRemoteCategory(req.RemoteCategory)
	if err != nil {
		return models.FilterCriteria{}, 0, CodeInvalidRemote, err
	}

	n := req.Simulations
	if n == 0 {
		n = s.policy.Default
	}
	if err := utils.ValidateSimulationCount(n, s.policy.Min, s.policy.Max); err != nil {
		return models.FilterCriteria{}, 0, CodeCountOutOfRange, err
	}

	return models.FilterCriteria{
		JobTitle:        req.JobTitle,
		ExperienceLevel: req.ExperienceLevel,
		RemoteCategory:  category,
	}, n, "", nil
}
