package query

import (
	"testing"

	"github.com/SANJANA-DHAGE05/job-market-analysis/internal/dataset"
	"github.com/SANJANA-DHAGE05/job-market-analysis/internal/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func fixtureDataset() *dataset.Dataset {
	return &dataset.Dataset{
		Name: "fixture",
		Rows: []models.JobRecord{
			{Category: "Data Analyst", Seniority: models.SeniorityJunior, State: "California", Country: "USA", Salary: 60},
			{Category: "Data Analyst", Seniority: models.SenioritySenior, State: "California", Country: "USA", Salary: 130},
			{Category: "Data Scientist", Seniority: models.SeniorityMid, State: "New York", Country: "USA", Salary: 110},
			{Category: "Data Scientist", Seniority: models.SenioritySenior, State: "Texas", Country: "USA", Salary: 150},
			{Category: "Data Engineer", Seniority: models.SeniorityJunior, State: "Texas", Country: "USA", Salary: 80},
		},
	}
}

func TestApply(t *testing.T) {
	ds := fixtureDataset()

	t.Run("no restrictions returns all rows", func(t *testing.T) {
		view := Apply(ds, Params{})
		assert.Equal(t, ds.Len(), view.Len())
	})

	t.Run("result never exceeds source", func(t *testing.T) {
		params := []Params{
			{},
			{Seniority: models.SenioritySenior},
			{State: "Texas"},
			{Categories: []string{"Data Analyst"}},
			{Salary: &Range{Min: 100, Max: 200}},
			{Seniority: models.SeniorityJunior, State: "California", Salary: &Range{Min: 0, Max: 70}},
		}
		for _, p := range params {
			assert.LessOrEqual(t, Apply(ds, p).Len(), ds.Len())
		}
	})

	t.Run("wildcard is idempotent", func(t *testing.T) {
		restricted := Apply(ds, Params{Seniority: models.SenioritySenior})
		require.Equal(t, 2, restricted.Len())

		assert.Equal(t, ds.Len(), Apply(ds, Params{Seniority: Wildcard}).Len())
		assert.Equal(t, ds.Len(), Apply(ds, Params{Seniority: ""}).Len())
	})

	t.Run("predicates are conjoined", func(t *testing.T) {
		view := Apply(ds, Params{
			Categories: []string{"Data Scientist"},
			Seniority:  models.SenioritySenior,
		})
		require.Equal(t, 1, view.Len())
		assert.Equal(t, "Texas", view.Record(0).State)
	})

	t.Run("category values are OR-combined", func(t *testing.T) {
		view := Apply(ds, Params{Categories: []string{"Data Analyst", "Data Engineer"}})
		assert.Equal(t, 3, view.Len())
	})

	t.Run("explicit empty category selection matches nothing", func(t *testing.T) {
		view := Apply(ds, Params{Categories: []string{}})
		assert.Equal(t, 0, view.Len())
	})

	t.Run("nil categories mean no restriction", func(t *testing.T) {
		view := Apply(ds, Params{Categories: nil})
		assert.Equal(t, ds.Len(), view.Len())
	})

	t.Run("salary range is inclusive", func(t *testing.T) {
		view := Apply(ds, Params{Salary: &Range{Min: 80, Max: 130}})
		assert.Equal(t, 3, view.Len())
	})

	t.Run("inverted salary range matches nothing", func(t *testing.T) {
		view := Apply(ds, Params{Salary: &Range{Min: 200, Max: 100}})
		assert.Equal(t, 0, view.Len())
	})

	t.Run("matching is case-insensitive", func(t *testing.T) {
		view := Apply(ds, Params{State: "texas", Categories: []string{"data engineer"}})
		assert.Equal(t, 1, view.Len())
	})

	t.Run("unknown values match nothing", func(t *testing.T) {
		view := Apply(ds, Params{State: "Atlantis"})
		assert.Equal(t, 0, view.Len())
	})
}

func TestViewWhere(t *testing.T) {
	ds := fixtureDataset()
	view := Full(ds)

	seniors := view.Where(func(r *models.JobRecord) bool {
		return r.Seniority == models.SenioritySenior
	})
	require.Equal(t, 2, seniors.Len())

	// Chained narrowing keeps indexing into the original rows.
	texas := seniors.Where(func(r *models.JobRecord) bool { return r.State == "Texas" })
	require.Equal(t, 1, texas.Len())
	assert.Equal(t, 150.0, texas.Record(0).Salary)
}

func TestCacheKey(t *testing.T) {
	t.Run("equal filter states produce equal keys", func(t *testing.T) {
		a := Params{Categories: []string{"B", "a"}, Seniority: "Senior"}
		b := Params{Categories: []string{"A", "b"}, Seniority: "senior"}
		assert.Equal(t, a.CacheKey(), b.CacheKey())
	})

	t.Run("nil and empty categories differ", func(t *testing.T) {
		assert.NotEqual(t,
			Params{Categories: nil}.CacheKey(),
			Params{Categories: []string{}}.CacheKey())
	})

	t.Run("wildcard and empty are equivalent", func(t *testing.T) {
		assert.Equal(t,
			Params{Seniority: Wildcard}.CacheKey(),
			Params{Seniority: ""}.CacheKey())
	})

	t.Run("salary range is part of the key", func(t *testing.T) {
		assert.NotEqual(t,
			Params{Salary: &Range{Min: 50, Max: 100}}.CacheKey(),
			Params{Salary: &Range{Min: 50, Max: 120}}.CacheKey())
	})
}
