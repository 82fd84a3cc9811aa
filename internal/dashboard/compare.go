package dashboard

import (
	"context"
	"fmt"
	"sort"

	"github.com/SANJANA-DHAGE05/job-market-analysis/internal/dataset"
	"github.com/SANJANA-DHAGE05/job-market-analysis/internal/models"
	"github.com/SANJANA-DHAGE05/job-market-analysis/internal/query"
	"github.com/SANJANA-DHAGE05/job-market-analysis/internal/stats"
	"github.com/SANJANA-DHAGE05/job-market-analysis/internal/telemetry"
)

const (
	topCategoriesLimit    = 10
	topLocationsLimit     = 10
	topCompareSkillsLimit = 15
)

// CompareDashboard is the render payload for the USA-vs-India page.
// Cross-country series share a USD axis: the category chart converts
// India medians to nominal USD thousands, the seniority chart puts
// both countries on the PPP basis.
type CompareDashboard struct {
	USA    CountrySummary `json:"usa"`
	India  CountrySummary `json:"india"`
	Ratios *RatioMetrics  `json:"ratios,omitempty"`

	USASalaryHistogram   *ChartConfig            `json:"usa_salary_histogram,omitempty"`
	IndiaSalaryHistogram *ChartConfig            `json:"india_salary_histogram,omitempty"`
	SalaryByCategory     *ChartConfig            `json:"salary_by_category,omitempty"`
	SalaryBySeniority    *ChartConfig            `json:"salary_by_seniority,omitempty"`
	Skills               []stats.SkillComparison `json:"skills,omitempty"`
	SkillChart           *ChartConfig            `json:"skill_chart,omitempty"`
	TopCategoriesUSA     *ChartConfig            `json:"top_categories_usa,omitempty"`
	TopCategoriesIndia   *ChartConfig            `json:"top_categories_india,omitempty"`
	TopLocationsUSA      *ChartConfig            `json:"top_locations_usa,omitempty"`
	TopLocationsIndia    *ChartConfig            `json:"top_locations_india,omitempty"`
	Insights             CompareInsights         `json:"insights"`
}

type CountrySummary struct {
	Country      string `json:"country"`
	MatchingJobs int    `json:"matching_jobs"`
	MedianNative Metric `json:"median_native"`
	MedianUSDK   Metric `json:"median_usdk"`
	MedianPPP    Metric `json:"median_ppp"`
}

// RatioMetrics is the cross-country salary ratio pair: the raw
// USD-equivalent multiple and the same multiple divided by the PPP
// factor. Present only when both countries have matching rows.
type RatioMetrics struct {
	Salary Metric `json:"salary"`
	PPP    Metric `json:"ppp"`
}

type CompareInsights struct {
	TopRoleUSA   string   `json:"top_role_usa,omitempty"`
	TopRoleIndia string   `json:"top_role_india,omitempty"`
	CommonSkills []string `json:"common_skills,omitempty"`
}

// BuildCompare recomputes the comparison dashboard for the given
// filter state. A country filter restricts the summarized rows to
// that country; the other country's sections come back empty.
func BuildCompare(ctx context.Context, ds *dataset.Dataset, params query.Params) *CompareDashboard {
	_, span := tracer.Start(ctx, "BuildCompare")
	defer span.End()

	view := query.Apply(ds, params)
	span.SetAttributes(telemetry.Int("view.rows", view.Len()))

	usaView := view.Where(func(r *models.JobRecord) bool { return r.Country == models.CountryUSA })
	indiaView := view.Where(func(r *models.JobRecord) bool { return r.Country == models.CountryIndia })

	d := &CompareDashboard{
		USA:   countrySummary(models.CountryUSA, usaView),
		India: countrySummary(models.CountryIndia, indiaView),
	}
	if view.Len() == 0 {
		return d
	}

	usaMed, usaOK := stats.MedianSalary(usaView)
	indiaMed, indiaOK := stats.MedianSalary(indiaView)
	if usaOK && indiaOK {
		if indiaUSD := stats.LPAToUSDK(indiaMed); indiaUSD > 0 {
			ratio := usaMed / indiaUSD
			span.SetAttributes(telemetry.Float("salary.ratio", ratio))
			d.Ratios = &RatioMetrics{
				Salary: ratioMetric("USA/India Salary Ratio", ratio, "absolute terms"),
				PPP:    ratioMetric("PPP Adjusted Ratio", stats.PPPAdjust(ratio), "real purchasing power"),
			}
		}
	}

	if usaOK {
		d.USASalaryHistogram = histogramChart(
			"USA Salary Distribution ($K)", "Salary ($K USD)",
			stats.Histogram(usaView.Salaries(), histogramBins),
			fmt.Sprintf("Median: %s", formatUSDK(usaMed)),
		)
	}
	if indiaOK {
		d.IndiaSalaryHistogram = histogramChart(
			"India Salary Distribution (LPA)", "Salary (LPA)",
			stats.Histogram(indiaView.Salaries(), histogramBins),
			fmt.Sprintf("Median: %s", formatLPA(indiaMed)),
		)
	}

	d.SalaryByCategory = categoryComparisonChart(usaView, indiaView)
	d.SalaryBySeniority = seniorityComparisonChart(usaView, indiaView)

	usaSkills := stats.SkillPrevalence(usaView, ds.Skills)
	indiaSkills := stats.SkillPrevalence(indiaView, ds.Skills)
	skills := stats.CompareSkills(usaSkills, indiaSkills)
	if len(skills) > topCompareSkillsLimit {
		skills = skills[:topCompareSkillsLimit]
	}
	d.Skills = skills
	d.SkillChart = skillComparisonChart(skills)

	if usaView.Len() > 0 {
		d.TopCategoriesUSA = barChart(
			fmt.Sprintf("Top %d Job Categories: USA", topCategoriesLimit), "Jobs", "Category",
			rankedPoints(stats.TopN(usaView, func(r *models.JobRecord) string { return r.Category }, topCategoriesLimit)),
		)
		d.TopLocationsUSA = barChart(
			fmt.Sprintf("USA: Top %d Hiring Locations", topLocationsLimit), "Jobs", "Location",
			rankedPoints(stats.TopN(usaView, locationOf, topLocationsLimit)),
		)
	}
	if indiaView.Len() > 0 {
		d.TopCategoriesIndia = barChart(
			fmt.Sprintf("Top %d Job Categories: India", topCategoriesLimit), "Jobs", "Category",
			rankedPoints(stats.TopN(indiaView, func(r *models.JobRecord) string { return r.Category }, topCategoriesLimit)),
		)
		d.TopLocationsIndia = barChart(
			fmt.Sprintf("India: Top %d Hiring Locations", topLocationsLimit), "Jobs", "Location",
			rankedPoints(stats.TopN(indiaView, locationOf, topLocationsLimit)),
		)
	}

	d.Insights = compareInsights(usaView, indiaView, skills)
	return d
}

// locationOf prefers the state when the dataset carries one and falls
// back to the city otherwise.
func locationOf(r *models.JobRecord) string {
	if r.State != "" {
		return r.State
	}
	return r.City
}

func countrySummary(country string, view query.View) CountrySummary {
	s := CountrySummary{
		Country:      country,
		MatchingJobs: view.Len(),
	}

	med, ok := stats.MedianSalary(view)
	if !ok {
		s.MedianNative = metricUnavailable("Median Salary")
		s.MedianUSDK = metricUnavailable("Median Salary (USD)")
		s.MedianPPP = metricUnavailable("Median Salary (PPP)")
		return s
	}

	if country == models.CountryIndia {
		usdk := stats.LPAToUSDK(med)
		s.MedianNative = Metric{Label: "Median Salary", Value: med, Display: formatLPA(med), Available: true}
		s.MedianUSDK = usdkMetric("Median Salary (USD)", usdk, "")
		s.MedianPPP = usdkMetric("Median Salary (PPP)", usdk, "")
		return s
	}

	s.MedianNative = usdkMetric("Median Salary", med, "")
	s.MedianUSDK = usdkMetric("Median Salary (USD)", med, "")
	s.MedianPPP = usdkMetric("Median Salary (PPP)", stats.PPPAdjust(med), "")
	return s
}

// categoryComparisonChart pairs per-category medians across countries
// on a nominal USD basis. A category present in only one country gets
// a zero bar on the other side.
func categoryComparisonChart(usaView, indiaView query.View) *ChartConfig {
	usaGroups := stats.MedianBy(usaView, func(r *models.JobRecord) string { return r.Category })
	indiaGroups := stats.MedianBy(indiaView, func(r *models.JobRecord) string { return r.Category })
	if len(usaGroups) == 0 && len(indiaGroups) == 0 {
		return nil
	}

	usaByCat := make(map[string]float64, len(usaGroups))
	for _, g := range usaGroups {
		usaByCat[g.Key] = g.Median
	}
	indiaByCat := make(map[string]float64, len(indiaGroups))
	for _, g := range indiaGroups {
		indiaByCat[g.Key] = stats.LPAToUSDK(g.Median)
	}

	seen := make(map[string]bool)
	var categories []string
	for cat := range usaByCat {
		seen[cat] = true
		categories = append(categories, cat)
	}
	for cat := range indiaByCat {
		if !seen[cat] {
			categories = append(categories, cat)
		}
	}
	sort.Strings(categories)

	usaPoints := make([]ChartPoint, len(categories))
	indiaPoints := make([]ChartPoint, len(categories))
	for i, cat := range categories {
		usaPoints[i] = ChartPoint{Label: cat, Value: usaByCat[cat]}
		indiaPoints[i] = ChartPoint{Label: cat, Value: indiaByCat[cat]}
	}

	return groupedBarChart(
		"Median Salary Comparison by Role (USD)",
		"Job Category", "Salary ($K USD)",
		[]ChartSeries{
			{Name: "USA", Data: usaPoints},
			{Name: "India (USD equivalent)", Data: indiaPoints},
		},
	)
}

// seniorityComparisonChart plots median salaries per level with both
// countries on the common PPP basis.
func seniorityComparisonChart(usaView, indiaView query.View) *ChartConfig {
	usaPoints := make([]ChartPoint, 0, len(models.SeniorityLevels))
	indiaPoints := make([]ChartPoint, 0, len(models.SeniorityLevels))

	for _, level := range models.SeniorityLevels {
		if med, ok := stats.MedianSalary(usaView.Where(func(r *models.JobRecord) bool { return r.Seniority == level })); ok {
			usaPoints = append(usaPoints, ChartPoint{Label: level, Value: stats.PPPAdjust(med)})
		}
		if med, ok := stats.MedianSalary(indiaView.Where(func(r *models.JobRecord) bool { return r.Seniority == level })); ok {
			indiaPoints = append(indiaPoints, ChartPoint{Label: level, Value: stats.LPAToUSDK(med)})
		}
	}

	if len(usaPoints) == 0 && len(indiaPoints) == 0 {
		return nil
	}

	return groupedBarChart(
		"Median Salary by Seniority (PPP-adjusted $K)",
		"Seniority Level", "Median Salary ($K, PPP basis)",
		[]ChartSeries{
			{Name: "USA", Data: usaPoints},
			{Name: "India", Data: indiaPoints},
		},
	)
}

func skillComparisonChart(skills []stats.SkillComparison) *ChartConfig {
	if len(skills) == 0 {
		return nil
	}

	usaPoints := make([]ChartPoint, len(skills))
	indiaPoints := make([]ChartPoint, len(skills))
	for i, s := range skills {
		usaPoints[i] = ChartPoint{Label: s.Skill, Value: s.USAPct}
		indiaPoints[i] = ChartPoint{Label: s.Skill, Value: s.IndiaPct}
	}

	return groupedBarChart(
		fmt.Sprintf("Top %d Skills: USA vs India (%% of jobs)", topCompareSkillsLimit),
		"Skill", "% of Jobs",
		[]ChartSeries{
			{Name: "USA", Data: usaPoints},
			{Name: "India", Data: indiaPoints},
		},
	)
}

func compareInsights(usaView, indiaView query.View, skills []stats.SkillComparison) CompareInsights {
	var ins CompareInsights

	if top := stats.TopN(usaView, func(r *models.JobRecord) string { return r.Category }, 1); len(top) > 0 {
		ins.TopRoleUSA = top[0].Key
	}
	if top := stats.TopN(indiaView, func(r *models.JobRecord) string { return r.Category }, 1); len(top) > 0 {
		ins.TopRoleIndia = top[0].Key
	}

	for i, s := range skills {
		if i == 3 {
			break
		}
		ins.CommonSkills = append(ins.CommonSkills, fmt.Sprintf("%s (%s)", s.Skill, formatPct(s.Combined)))
	}

	return ins
}
