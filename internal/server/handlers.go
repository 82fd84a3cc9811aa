package server

import (
	"context"
	"encoding/json"
	"math"
	"net/http"
	"strconv"

	"github.com/SANJANA-DHAGE05/job-market-analysis/internal/cache"
	"github.com/SANJANA-DHAGE05/job-market-analysis/internal/dashboard"
	"github.com/SANJANA-DHAGE05/job-market-analysis/internal/dataset"
	"github.com/SANJANA-DHAGE05/job-market-analysis/internal/errors"
	"github.com/SANJANA-DHAGE05/job-market-analysis/internal/query"
	"github.com/SANJANA-DHAGE05/job-market-analysis/internal/telemetry"

	"go.uber.org/zap"
)

func (s *Server) handleUSADashboard(w http.ResponseWriter, r *http.Request) {
	s.serveDashboard(w, r, dataset.KeyUSA, func(ctx context.Context, ds *dataset.Dataset, p query.Params) interface{} {
		return dashboard.BuildUSA(ctx, ds, p)
	})
}

func (s *Server) handleCompareDashboard(w http.ResponseWriter, r *http.Request) {
	s.serveDashboard(w, r, dataset.KeyCompare, func(ctx context.Context, ds *dataset.Dataset, p query.Params) interface{} {
		return dashboard.BuildCompare(ctx, ds, p)
	})
}

type buildFunc func(ctx context.Context, ds *dataset.Dataset, p query.Params) interface{}

func (s *Server) serveDashboard(w http.ResponseWriter, r *http.Request, key dataset.Key, build buildFunc) {
	ctx, span := tracer.Start(r.Context(), "serveDashboard")
	defer span.End()

	params := parseParams(r)
	cacheKey := "dash:" + string(key) + ":" + params.CacheKey()
	span.SetAttributes(
		telemetry.String("dataset.key", string(key)),
		telemetry.String("cache.key", cacheKey),
	)

	var cached []byte
	err := s.cache.Get(ctx, cacheKey, &cached)
	span.SetAttributes(telemetry.Bool("cache.hit", err == nil))
	if err == nil {
		writeJSONBytes(w, cached)
		return
	}
	if err != cache.ErrNotFound {
		span.RecordError(err)
		s.logger.Warn("response cache error", zap.Error(err))
	}

	ds, err := s.store.Dataset(ctx, key)
	if err != nil {
		s.writeError(w, err)
		return
	}

	payload := build(ctx, ds, params)
	body, err := json.Marshal(payload)
	if err != nil {
		s.writeError(w, errors.Internal("encoding dashboard payload", err))
		return
	}

	if err := s.cache.Set(ctx, cacheKey, body, s.cacheTTL); err != nil {
		s.logger.Warn("failed to cache dashboard payload", zap.Error(err))
	}

	writeJSONBytes(w, body)
}

func (s *Server) handleFilters(key dataset.Key) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx, span := tracer.Start(r.Context(), "handleFilters")
		defer span.End()
		span.SetAttributes(telemetry.String("dataset.key", string(key)))

		ds, err := s.store.Dataset(ctx, key)
		if err != nil {
			s.writeError(w, err)
			return
		}
		s.writeJSON(w, dashboard.Filters(ds))
	}
}

func (s *Server) handleReload(w http.ResponseWriter, r *http.Request) {
	ctx, span := tracer.Start(r.Context(), "handleReload")
	defer span.End()

	s.store.Invalidate()
	if err := s.cache.Clear(ctx); err != nil {
		span.RecordError(err)
		s.logger.Warn("failed to clear response cache", zap.Error(err))
	}
	if err := s.bus.PublishReload(ctx); err != nil {
		span.RecordError(err)
		s.logger.Error("failed to broadcast reload", zap.Error(err))
	}

	s.logger.Info("datasets reloaded")
	s.writeJSON(w, map[string]string{"status": "reloaded"})
}

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	s.writeJSON(w, map[string]string{"status": "ok"})
}

// parseParams maps query string values onto filter parameters.
// A present-but-valueless category parameter is an explicit empty
// selection; unparsable salary bounds fall back to "no restriction".
func parseParams(r *http.Request) query.Params {
	q := r.URL.Query()

	var params query.Params
	if raw, ok := q["category"]; ok {
		categories := make([]string, 0, len(raw))
		for _, c := range raw {
			if c != "" {
				categories = append(categories, c)
			}
		}
		params.Categories = categories
	}

	params.Seniority = q.Get("seniority")
	params.State = q.Get("state")
	params.Country = q.Get("country")

	min, minOK := parseBound(q.Get("salary_min"))
	max, maxOK := parseBound(q.Get("salary_max"))
	if minOK || maxOK {
		if !minOK {
			min = math.Inf(-1)
		}
		if !maxOK {
			max = math.Inf(1)
		}
		params.Salary = &query.Range{Min: min, Max: max}
	}

	return params
}

func parseBound(raw string) (float64, bool) {
	if raw == "" {
		return 0, false
	}
	v, err := strconv.ParseFloat(raw, 64)
	if err != nil || math.IsNaN(v) {
		return 0, false
	}
	return v, true
}

func (s *Server) writeJSON(w http.ResponseWriter, payload interface{}) {
	body, err := json.Marshal(payload)
	if err != nil {
		s.writeError(w, errors.Internal("encoding response", err))
		return
	}
	writeJSONBytes(w, body)
}

func writeJSONBytes(w http.ResponseWriter, body []byte) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write(body)
}

func (s *Server) writeError(w http.ResponseWriter, err error) {
	status := http.StatusInternalServerError
	errType := errors.ErrTypeInternal
	if domainErr, ok := err.(*errors.DomainError); ok {
		errType = domainErr.Type
		switch domainErr.Type {
		case errors.ErrTypeNotFound:
			status = http.StatusNotFound
		case errors.ErrTypeInvalidInput:
			status = http.StatusInternalServerError
		case errors.ErrTypeUnavailable:
			status = http.StatusServiceUnavailable
		}
	}

	s.logger.Error("request failed", zap.Error(err))

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(map[string]string{
		"error": err.Error(),
		"type":  string(errType),
	})
}
