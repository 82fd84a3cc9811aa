package dashboard

import (
	"sort"

	"github.com/SANJANA-DHAGE05/job-market-analysis/internal/dataset"
	"github.com/SANJANA-DHAGE05/job-market-analysis/internal/models"
	"github.com/SANJANA-DHAGE05/job-market-analysis/internal/query"
	"github.com/SANJANA-DHAGE05/job-market-analysis/internal/stats"
)

// Filters enumerates the selectable options for a dataset. Single
// select lists lead with the wildcard.
func Filters(ds *dataset.Dataset) FilterOptions {
	view := query.Full(ds)

	opts := FilterOptions{
		Seniorities: withWildcard(uniqueSorted(view, func(r *models.JobRecord) string { return r.Seniority })),
		Categories:  uniqueSorted(view, func(r *models.JobRecord) string { return r.Category }),
	}

	if states := uniqueSorted(view, func(r *models.JobRecord) string { return r.State }); len(states) > 0 {
		opts.States = withWildcard(states)
	}
	if countries := uniqueSorted(view, func(r *models.JobRecord) string { return r.Country }); len(countries) > 1 {
		opts.Countries = withWildcard(countries)
	}

	if min, max, ok := ds.SalaryBounds(); ok {
		opts.SalaryMin = min
		opts.SalaryMax = max
	}

	return opts
}

func uniqueSorted(view query.View, keyFn func(*models.JobRecord) string) []string {
	counts := stats.CountBy(view, keyFn)
	out := make([]string, 0, len(counts))
	for key := range counts {
		out = append(out, key)
	}
	sort.Strings(out)
	return out
}

func withWildcard(values []string) []string {
	return append([]string{query.Wildcard}, values...)
}
