package server

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/SANJANA-DHAGE05/job-market-analysis/internal/cache"
	"github.com/SANJANA-DHAGE05/job-market-analysis/internal/cache/memory"
	"github.com/SANJANA-DHAGE05/job-market-analysis/internal/config"
	"github.com/SANJANA-DHAGE05/job-market-analysis/internal/dashboard"
	"github.com/SANJANA-DHAGE05/job-market-analysis/internal/dataset"
	"github.com/SANJANA-DHAGE05/job-market-analysis/internal/query"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap/zaptest"
)

func testServer(t *testing.T) (*Server, *dataset.Store) {
	t.Helper()

	logger := zaptest.NewLogger(t)
	cfg := &config.Config{
		HTTPAddr:           ":0",
		DataDir:            "testdata",
		USADatasetFile:     "jobs_usa.csv",
		CompareDatasetFile: "jobs_usa_india.csv",
		CacheTTL:           time.Minute,
	}

	c := memory.New(cache.Options{DefaultTTL: time.Minute})
	t.Cleanup(func() { _ = c.Close() })

	store := dataset.NewStore(cfg, logger)
	return New(cfg, logger, store, c, nil), store
}

func get(t *testing.T, h http.Handler, target string) *httptest.ResponseRecorder {
	t.Helper()
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, target, nil))
	return rec
}

func TestUSADashboardEndpoint(t *testing.T) {
	srv, _ := testServer(t)
	h := srv.Handler()

	t.Run("unfiltered", func(t *testing.T) {
		rec := get(t, h, "/api/usa/dashboard")
		require.Equal(t, http.StatusOK, rec.Code)
		assert.Equal(t, "application/json", rec.Header().Get("Content-Type"))

		var d dashboard.USADashboard
		require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &d))
		assert.Equal(t, 10, d.MatchingJobs)
		assert.Equal(t, 95.0, d.Metrics.MedianSalary.Value)
	})

	t.Run("seniority filter", func(t *testing.T) {
		rec := get(t, h, "/api/usa/dashboard?seniority=Senior")
		require.Equal(t, http.StatusOK, rec.Code)

		var d dashboard.USADashboard
		require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &d))
		assert.Equal(t, 4, d.MatchingJobs)
		assert.Equal(t, 115.0, d.Metrics.MedianSalary.Value)
	})

	t.Run("salary range filter", func(t *testing.T) {
		rec := get(t, h, "/api/usa/dashboard?salary_min=100&salary_max=120")
		require.Equal(t, http.StatusOK, rec.Code)

		var d dashboard.USADashboard
		require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &d))
		assert.Equal(t, 3, d.MatchingJobs)
	})

	t.Run("empty category selection", func(t *testing.T) {
		rec := get(t, h, "/api/usa/dashboard?category=")
		require.Equal(t, http.StatusOK, rec.Code)

		var d dashboard.USADashboard
		require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &d))
		assert.Equal(t, 0, d.MatchingJobs)
		assert.False(t, d.Metrics.MedianSalary.Available)
	})

	t.Run("second request is served from cache", func(t *testing.T) {
		first := get(t, h, "/api/usa/dashboard?state=California")
		second := get(t, h, "/api/usa/dashboard?state=California")
		require.Equal(t, http.StatusOK, second.Code)
		assert.Equal(t, first.Body.String(), second.Body.String())
	})
}

func TestCompareDashboardEndpoint(t *testing.T) {
	srv, _ := testServer(t)
	h := srv.Handler()

	t.Run("both countries", func(t *testing.T) {
		rec := get(t, h, "/api/compare/dashboard")
		require.Equal(t, http.StatusOK, rec.Code)

		var d dashboard.CompareDashboard
		require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &d))
		assert.Equal(t, 3, d.USA.MatchingJobs)
		assert.Equal(t, 3, d.India.MatchingJobs)
		assert.Equal(t, "USA", d.USA.Country)
		assert.Equal(t, "India", d.India.Country)
		require.NotNil(t, d.Ratios)
	})

	t.Run("country parameter narrows the view", func(t *testing.T) {
		rec := get(t, h, "/api/compare/dashboard?country=India")
		require.Equal(t, http.StatusOK, rec.Code)

		var d dashboard.CompareDashboard
		require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &d))
		assert.Equal(t, 0, d.USA.MatchingJobs)
		assert.Equal(t, 3, d.India.MatchingJobs)
		assert.Nil(t, d.Ratios)
	})
}

func TestFiltersEndpoint(t *testing.T) {
	srv, _ := testServer(t)

	rec := get(t, srv.Handler(), "/api/usa/filters")
	require.Equal(t, http.StatusOK, rec.Code)

	var opts dashboard.FilterOptions
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &opts))
	assert.Equal(t, query.Wildcard, opts.Seniorities[0])
	assert.Contains(t, opts.States, "California")
	assert.Equal(t, 50.0, opts.SalaryMin)
	assert.Equal(t, 140.0, opts.SalaryMax)
}

func TestChartEndpoints(t *testing.T) {
	srv, _ := testServer(t)
	h := srv.Handler()

	t.Run("usa chart renders a PNG", func(t *testing.T) {
		rec := get(t, h, "/charts/usa/salary-by-seniority.png")
		require.Equal(t, http.StatusOK, rec.Code)
		assert.Equal(t, "image/png", rec.Header().Get("Content-Type"))
		require.Greater(t, rec.Body.Len(), 8)
		assert.Equal(t, []byte("\x89PNG"), rec.Body.Bytes()[:4])
	})

	t.Run("compare chart renders a PNG", func(t *testing.T) {
		rec := get(t, h, "/charts/compare/skills.png")
		require.Equal(t, http.StatusOK, rec.Code)
		assert.Equal(t, "image/png", rec.Header().Get("Content-Type"))
	})

	t.Run("category comparison chart renders a PNG", func(t *testing.T) {
		rec := get(t, h, "/charts/compare/salary-by-category.png")
		require.Equal(t, http.StatusOK, rec.Code)
		assert.Equal(t, "image/png", rec.Header().Get("Content-Type"))
	})

	t.Run("unknown chart name", func(t *testing.T) {
		rec := get(t, h, "/charts/usa/nope.png")
		assert.Equal(t, http.StatusNotFound, rec.Code)
	})
}

func TestReloadEndpoint(t *testing.T) {
	srv, store := testServer(t)
	h := srv.Handler()

	require.Equal(t, http.StatusOK, get(t, h, "/api/usa/dashboard").Code)
	before, err := store.Dataset(httptest.NewRequest(http.MethodGet, "/", nil).Context(), dataset.KeyUSA)
	require.NoError(t, err)

	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, httptest.NewRequest(http.MethodPost, "/admin/reload", nil))
	require.Equal(t, http.StatusOK, rec.Code)

	var body map[string]string
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	assert.Equal(t, "reloaded", body["status"])

	after, err := store.Dataset(httptest.NewRequest(http.MethodGet, "/", nil).Context(), dataset.KeyUSA)
	require.NoError(t, err)
	assert.NotSame(t, before, after)
}

func TestHealthEndpoint(t *testing.T) {
	srv, _ := testServer(t)

	rec := get(t, srv.Handler(), "/healthz")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, `{"status":"ok"}`, rec.Body.String())
}

func TestParseParams(t *testing.T) {
	t.Run("absent category leaves the filter open", func(t *testing.T) {
		p := parseParams(httptest.NewRequest(http.MethodGet, "/?seniority=Senior", nil))
		assert.Nil(t, p.Categories)
		assert.Equal(t, "Senior", p.Seniority)
	})

	t.Run("repeated categories", func(t *testing.T) {
		p := parseParams(httptest.NewRequest(http.MethodGet, "/?category=a&category=b", nil))
		assert.Equal(t, []string{"a", "b"}, p.Categories)
	})

	t.Run("one-sided salary bound", func(t *testing.T) {
		p := parseParams(httptest.NewRequest(http.MethodGet, "/?salary_min=80", nil))
		require.NotNil(t, p.Salary)
		assert.Equal(t, 80.0, p.Salary.Min)
		assert.True(t, p.Salary.Max > 1e300)
	})

	t.Run("unparsable bound is ignored", func(t *testing.T) {
		p := parseParams(httptest.NewRequest(http.MethodGet, "/?salary_min=abc", nil))
		assert.Nil(t, p.Salary)
	})
}
