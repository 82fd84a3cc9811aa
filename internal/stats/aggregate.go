package stats

import (
	"sort"

	"github.com/SANJANA-DHAGE05/job-market-analysis/internal/models"
	"github.com/SANJANA-DHAGE05/job-market-analysis/internal/query"
)

// GroupStat is the aggregate for one group of a categorical grouping.
type GroupStat struct {
	Key    string  `json:"key"`
	Median float64 `json:"median"`
	Count  int     `json:"count"`
}

// RankedValue is one entry of a frequency ranking.
type RankedValue struct {
	Key   string `json:"key"`
	Count int    `json:"count"`
}

// Bucket is one bin of a histogram.
type Bucket struct {
	Lo    float64 `json:"lo"`
	Hi    float64 `json:"hi"`
	Count int     `json:"count"`
}

// Median returns the interpolated median of values: the mean of the
// two middle values for even lengths. ok is false for empty input;
// callers must render "no data" rather than a number.
func Median(values []float64) (float64, bool) {
	n := len(values)
	if n == 0 {
		return 0, false
	}
	sorted := append([]float64(nil), values...)
	sort.Float64s(sorted)
	if n%2 == 1 {
		return sorted[n/2], true
	}
	return (sorted[n/2-1] + sorted[n/2]) / 2, true
}

// MedianSalary returns the median salary of a view.
func MedianSalary(view query.View) (float64, bool) {
	return Median(view.Salaries())
}

// MedianBy groups the view by keyFn and computes the median salary and
// row count per group. Rows with an empty key are skipped. Groups come
// back sorted by median ascending.
func MedianBy(view query.View, keyFn func(*models.JobRecord) string) []GroupStat {
	salaries := make(map[string][]float64)
	for i := 0; i < view.Len(); i++ {
		r := view.Record(i)
		key := keyFn(r)
		if key == "" {
			continue
		}
		salaries[key] = append(salaries[key], r.Salary)
	}

	groups := make([]GroupStat, 0, len(salaries))
	for key, vals := range salaries {
		med, _ := Median(vals)
		groups = append(groups, GroupStat{Key: key, Median: med, Count: len(vals)})
	}
	sort.Slice(groups, func(i, j int) bool {
		if groups[i].Median != groups[j].Median {
			return groups[i].Median < groups[j].Median
		}
		return groups[i].Key < groups[j].Key
	})
	return groups
}

// CountBy tallies view rows per keyFn value, skipping empty keys.
func CountBy(view query.View, keyFn func(*models.JobRecord) string) map[string]int {
	counts := make(map[string]int)
	for i := 0; i < view.Len(); i++ {
		if key := keyFn(view.Record(i)); key != "" {
			counts[key]++
		}
	}
	return counts
}

// TopN returns the n most frequent keyFn values with their counts,
// highest first. Ties break alphabetically so output is deterministic.
func TopN(view query.View, keyFn func(*models.JobRecord) string, n int) []RankedValue {
	counts := CountBy(view, keyFn)
	ranked := make([]RankedValue, 0, len(counts))
	for key, count := range counts {
		ranked = append(ranked, RankedValue{Key: key, Count: count})
	}
	sort.Slice(ranked, func(i, j int) bool {
		if ranked[i].Count != ranked[j].Count {
			return ranked[i].Count > ranked[j].Count
		}
		return ranked[i].Key < ranked[j].Key
	})
	if n > 0 && len(ranked) > n {
		ranked = ranked[:n]
	}
	return ranked
}

// UniqueCount returns the number of distinct non-empty keyFn values.
func UniqueCount(view query.View, keyFn func(*models.JobRecord) string) int {
	return len(CountBy(view, keyFn))
}

// Histogram bins values into bins equal-width buckets across
// [min, max]. Empty input yields no buckets.
func Histogram(values []float64, bins int) []Bucket {
	if len(values) == 0 || bins <= 0 {
		return nil
	}

	min, max := values[0], values[0]
	for _, v := range values[1:] {
		if v < min {
			min = v
		}
		if v > max {
			max = v
		}
	}

	if min == max {
		return []Bucket{{Lo: min, Hi: max, Count: len(values)}}
	}

	width := (max - min) / float64(bins)
	buckets := make([]Bucket, bins)
	for i := range buckets {
		buckets[i].Lo = min + float64(i)*width
		buckets[i].Hi = min + float64(i+1)*width
	}
	buckets[bins-1].Hi = max

	for _, v := range values {
		i := int((v - min) / width)
		if i >= bins {
			i = bins - 1
		}
		buckets[i].Count++
	}
	return buckets
}
