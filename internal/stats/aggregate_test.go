package stats

import (
	"testing"

	"github.com/SANJANA-DHAGE05/job-market-analysis/internal/dataset"
	"github.com/SANJANA-DHAGE05/job-market-analysis/internal/models"
	"github.com/SANJANA-DHAGE05/job-market-analysis/internal/query"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func fixtureView(t *testing.T) query.View {
	t.Helper()

	salaries := []float64{50, 60, 70, 80, 90, 100, 110, 120, 130, 140}
	seniorities := []string{
		models.SeniorityJunior, models.SeniorityJunior, models.SeniorityJunior,
		models.SeniorityMid, models.SeniorityMid,
		models.SenioritySenior, models.SenioritySenior, models.SenioritySenior,
		models.SeniorityMid, models.SenioritySenior,
	}

	ds := &dataset.Dataset{Name: "fixture"}
	for i, salary := range salaries {
		ds.Rows = append(ds.Rows, models.JobRecord{
			Seniority: seniorities[i],
			State:     "California",
			Salary:    salary,
		})
	}
	return query.Full(ds)
}

func TestMedian(t *testing.T) {
	t.Run("empty input reports unavailable", func(t *testing.T) {
		_, ok := Median(nil)
		assert.False(t, ok)
	})

	t.Run("odd length picks middle value", func(t *testing.T) {
		med, ok := Median([]float64{3, 1, 2})
		require.True(t, ok)
		assert.Equal(t, 2.0, med)
	})

	t.Run("even length interpolates", func(t *testing.T) {
		med, ok := Median([]float64{100, 110, 120, 140})
		require.True(t, ok)
		assert.Equal(t, 115.0, med)
	})

	t.Run("does not mutate input", func(t *testing.T) {
		values := []float64{3, 1, 2}
		_, _ = Median(values)
		assert.Equal(t, []float64{3, 1, 2}, values)
	})
}

func TestMedianSalaryWithSeniorityFilter(t *testing.T) {
	view := fixtureView(t)

	seniors := view.Where(func(r *models.JobRecord) bool {
		return r.Seniority == models.SenioritySenior
	})
	require.Equal(t, 4, seniors.Len())

	med, ok := MedianSalary(seniors)
	require.True(t, ok)
	assert.Equal(t, 115.0, med)
}

func TestMedianBy(t *testing.T) {
	view := fixtureView(t)

	groups := MedianBy(view, func(r *models.JobRecord) string { return r.Seniority })
	require.Len(t, groups, 3)

	// Sorted by median ascending.
	assert.Equal(t, models.SeniorityJunior, groups[0].Key)
	assert.Equal(t, 60.0, groups[0].Median)
	assert.Equal(t, 3, groups[0].Count)

	assert.Equal(t, models.SeniorityMid, groups[1].Key)
	assert.Equal(t, 90.0, groups[1].Median)

	assert.Equal(t, models.SenioritySenior, groups[2].Key)
	assert.Equal(t, 115.0, groups[2].Median)
	assert.Equal(t, 4, groups[2].Count)
}

func TestTopN(t *testing.T) {
	ds := &dataset.Dataset{Rows: []models.JobRecord{
		{Company: "Acme"}, {Company: "Acme"}, {Company: "Acme"},
		{Company: "Globex"}, {Company: "Globex"},
		{Company: "Initech"}, {Company: "Hooli"},
	}}
	view := query.Full(ds)

	t.Run("orders by count descending", func(t *testing.T) {
		ranked := TopN(view, func(r *models.JobRecord) string { return r.Company }, 2)
		require.Len(t, ranked, 2)
		assert.Equal(t, RankedValue{Key: "Acme", Count: 3}, ranked[0])
		assert.Equal(t, RankedValue{Key: "Globex", Count: 2}, ranked[1])
	})

	t.Run("ties break alphabetically", func(t *testing.T) {
		ranked := TopN(view, func(r *models.JobRecord) string { return r.Company }, 4)
		require.Len(t, ranked, 4)
		assert.Equal(t, "Hooli", ranked[2].Key)
		assert.Equal(t, "Initech", ranked[3].Key)
	})

	t.Run("zero limit returns all", func(t *testing.T) {
		ranked := TopN(view, func(r *models.JobRecord) string { return r.Company }, 0)
		assert.Len(t, ranked, 4)
	})
}

func TestHistogram(t *testing.T) {
	t.Run("empty input yields no buckets", func(t *testing.T) {
		assert.Nil(t, Histogram(nil, 30))
	})

	t.Run("single value collapses to one bucket", func(t *testing.T) {
		buckets := Histogram([]float64{42, 42, 42}, 10)
		require.Len(t, buckets, 1)
		assert.Equal(t, 3, buckets[0].Count)
	})

	t.Run("counts sum to input size", func(t *testing.T) {
		values := []float64{50, 60, 70, 80, 90, 100, 110, 120, 130, 140}
		buckets := Histogram(values, 5)
		require.Len(t, buckets, 5)

		total := 0
		for _, b := range buckets {
			total += b.Count
		}
		assert.Equal(t, len(values), total)
	})

	t.Run("max value lands in last bucket", func(t *testing.T) {
		buckets := Histogram([]float64{0, 5, 10}, 2)
		require.Len(t, buckets, 2)
		assert.Equal(t, 1, buckets[1].Count)
	})
}

func TestUniqueCount(t *testing.T) {
	ds := &dataset.Dataset{Rows: []models.JobRecord{
		{Company: "Acme"}, {Company: "Acme"}, {Company: "Globex"}, {Company: ""},
	}}
	assert.Equal(t, 2, UniqueCount(query.Full(ds), func(r *models.JobRecord) string { return r.Company }))
}
