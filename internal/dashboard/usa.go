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

var tracer = telemetry.GetTracer("jobmarket/dashboard")

const (
	histogramBins     = 30
	stateMinJobs      = 10
	topSkillsLimit    = 15
	topStatesLimit    = 10
	topCitiesLimit    = 10
	topCompaniesLimit = 15
	topIndustryLimit  = 10
	stateSalaryLimit  = 15
)

// USADashboard is the complete render payload for the USA page.
type USADashboard struct {
	MatchingJobs      int               `json:"matching_jobs"`
	Metrics           USAMetrics        `json:"metrics"`
	SalaryHistogram   *ChartConfig      `json:"salary_histogram,omitempty"`
	SalaryBySeniority *ChartConfig      `json:"salary_by_seniority,omitempty"`
	SalaryByState     *ChartConfig      `json:"salary_by_state,omitempty"`
	TopSkills         *ChartConfig      `json:"top_skills,omitempty"`
	SkillsTable       []stats.SkillStat `json:"skills_table,omitempty"`
	TopStates         *ChartConfig      `json:"top_states,omitempty"`
	TopCities         *ChartConfig      `json:"top_cities,omitempty"`
	TopCompanies      *ChartConfig      `json:"top_companies,omitempty"`
	Industries        *ChartConfig      `json:"industries,omitempty"`
	Insights          USAInsights       `json:"insights"`
}

type USAMetrics struct {
	TotalJobs       Metric `json:"total_jobs"`
	MedianSalary    Metric `json:"median_salary"`
	UniqueCompanies Metric `json:"unique_companies"`
	States          Metric `json:"states"`
}

type USAInsights struct {
	SalaryByLevel  []LevelInsight        `json:"salary_by_level"`
	MustHaveSkills []stats.SkillStat     `json:"must_have_skills"`
	TopLocation    *LocationInsight      `json:"top_location,omitempty"`
	Growth         *GrowthInsight        `json:"growth,omitempty"`
	Concentration  *ConcentrationInsight `json:"concentration,omitempty"`
}

type LevelInsight struct {
	Level  string `json:"level"`
	Median Metric `json:"median"`
}

type LocationInsight struct {
	State        string `json:"state"`
	Jobs         int    `json:"jobs"`
	MedianSalary Metric `json:"median_salary"`
}

type GrowthInsight struct {
	JuniorMedian float64 `json:"junior_median"`
	SeniorMedian float64 `json:"senior_median"`
	GrowthPct    float64 `json:"growth_pct"`
	IncreaseK    float64 `json:"increase_k"`
}

type ConcentrationInsight struct {
	Top3Pct float64      `json:"top3_pct"`
	States  []StateShare `json:"states"`
}

type StateShare struct {
	State string  `json:"state"`
	Jobs  int     `json:"jobs"`
	Pct   float64 `json:"pct"`
}

// BuildUSA recomputes the full USA dashboard for the given filter
// state. Everything derives from the view; nothing is persisted.
func BuildUSA(ctx context.Context, ds *dataset.Dataset, params query.Params) *USADashboard {
	_, span := tracer.Start(ctx, "BuildUSA")
	defer span.End()

	view := query.Apply(ds, params)
	span.SetAttributes(
		telemetry.Int("view.rows", view.Len()),
		telemetry.Int("dataset.rows", ds.Len()),
	)

	d := &USADashboard{MatchingJobs: view.Len()}
	d.Metrics = usaMetrics(view)
	if view.Len() == 0 {
		return d
	}

	salaries := view.Salaries()
	median, _ := stats.Median(salaries)
	span.SetAttributes(telemetry.Float("salary.median", median))

	d.SalaryHistogram = histogramChart(
		"Salary Distribution", "Annual Salary ($K USD)",
		stats.Histogram(salaries, histogramBins),
		fmt.Sprintf("Median: %s", formatUSDK(median)),
	)

	d.SalaryBySeniority = barChart(
		"Median Salary by Seniority Level", "Median Salary ($K)", "Seniority Level",
		groupPoints(stats.MedianBy(view, func(r *models.JobRecord) string { return r.Seniority })),
	)

	d.SalaryByState = barChart(
		fmt.Sprintf("Median Salary by Top %d States (minimum %d jobs)", stateSalaryLimit, stateMinJobs),
		"Median Salary ($K)", "State",
		groupPoints(topStatesBySalary(view)),
	)

	skills := stats.SkillPrevalence(view, ds.Skills)
	if len(skills) > topSkillsLimit {
		skills = skills[:topSkillsLimit]
	}
	d.SkillsTable = skills
	d.TopSkills = barChart(
		fmt.Sprintf("Top %d Most In-Demand Skills", topSkillsLimit),
		"Number of Jobs", "Skill",
		skillPoints(skills),
	)

	d.TopStates = barChart(
		fmt.Sprintf("Top %d States by Job Count", topStatesLimit), "Jobs", "State",
		rankedPoints(stats.TopN(view, func(r *models.JobRecord) string { return r.State }, topStatesLimit)),
	)
	d.TopCities = barChart(
		fmt.Sprintf("Top %d Cities by Job Count", topCitiesLimit), "Jobs", "City",
		rankedPoints(stats.TopN(view, func(r *models.JobRecord) string { return r.City }, topCitiesLimit)),
	)
	d.TopCompanies = barChart(
		fmt.Sprintf("Top %d Hiring Companies", topCompaniesLimit), "Jobs", "Company",
		rankedPoints(stats.TopN(view, func(r *models.JobRecord) string { return r.Company }, topCompaniesLimit)),
	)
	d.Industries = pieChart(
		fmt.Sprintf("Top %d Industries Hiring", topIndustryLimit),
		rankedPoints(stats.TopN(view, func(r *models.JobRecord) string { return r.Industry }, topIndustryLimit)),
	)

	d.Insights = usaInsights(view, skills)
	return d
}

func usaMetrics(view query.View) USAMetrics {
	m := USAMetrics{
		TotalJobs: countMetric("Total Jobs", view.Len()),
	}
	if med, ok := stats.MedianSalary(view); ok {
		m.MedianSalary = usdkMetric("Median Salary", med, "")
	} else {
		m.MedianSalary = metricUnavailable("Median Salary")
	}
	if view.Len() == 0 {
		m.UniqueCompanies = metricUnavailable("Unique Companies")
		m.States = metricUnavailable("States")
		return m
	}
	m.UniqueCompanies = countMetric("Unique Companies",
		stats.UniqueCount(view, func(r *models.JobRecord) string { return r.Company }))
	m.States = countMetric("States",
		stats.UniqueCount(view, func(r *models.JobRecord) string { return r.State }))
	return m
}

// topStatesBySalary keeps states with at least stateMinJobs matching
// rows, ordered by median descending, capped at stateSalaryLimit.
func topStatesBySalary(view query.View) []stats.GroupStat {
	groups := stats.MedianBy(view, func(r *models.JobRecord) string { return r.State })
	filtered := groups[:0]
	for _, g := range groups {
		if g.Count >= stateMinJobs {
			filtered = append(filtered, g)
		}
	}
	sort.Slice(filtered, func(i, j int) bool {
		if filtered[i].Median != filtered[j].Median {
			return filtered[i].Median > filtered[j].Median
		}
		return filtered[i].Key < filtered[j].Key
	})
	if len(filtered) > stateSalaryLimit {
		filtered = filtered[:stateSalaryLimit]
	}
	return filtered
}

func skillPoints(skills []stats.SkillStat) []ChartPoint {
	points := make([]ChartPoint, len(skills))
	for i, s := range skills {
		points[i] = ChartPoint{Label: s.Skill, Value: float64(s.Count)}
	}
	return points
}

func usaInsights(view query.View, topSkills []stats.SkillStat) USAInsights {
	var ins USAInsights

	for _, level := range models.SeniorityLevels {
		levelView := view.Where(func(r *models.JobRecord) bool { return r.Seniority == level })
		if med, ok := stats.MedianSalary(levelView); ok {
			ins.SalaryByLevel = append(ins.SalaryByLevel, LevelInsight{
				Level:  level,
				Median: usdkMetric(level, med, fmt.Sprintf("%d jobs", levelView.Len())),
			})
		}
	}

	if len(topSkills) > 3 {
		ins.MustHaveSkills = topSkills[:3]
	} else {
		ins.MustHaveSkills = topSkills
	}

	topStates := stats.TopN(view, func(r *models.JobRecord) string { return r.State }, 3)
	if len(topStates) > 0 {
		top := topStates[0]
		stateView := view.Where(func(r *models.JobRecord) bool { return r.State == top.Key })
		loc := &LocationInsight{State: top.Key, Jobs: top.Count}
		if med, ok := stats.MedianSalary(stateView); ok {
			loc.MedianSalary = usdkMetric("Median Salary", med, "")
		} else {
			loc.MedianSalary = metricUnavailable("Median Salary")
		}
		ins.TopLocation = loc

		total := view.Len()
		conc := &ConcentrationInsight{}
		sum := 0
		for _, s := range topStates {
			sum += s.Count
			conc.States = append(conc.States, StateShare{
				State: s.Key,
				Jobs:  s.Count,
				Pct:   float64(s.Count) / float64(total) * 100,
			})
		}
		conc.Top3Pct = float64(sum) / float64(total) * 100
		ins.Concentration = conc
	}

	juniorMed, jok := stats.MedianSalary(view.Where(func(r *models.JobRecord) bool { return r.Seniority == models.SeniorityJunior }))
	seniorMed, sok := stats.MedianSalary(view.Where(func(r *models.JobRecord) bool { return r.Seniority == models.SenioritySenior }))
	if jok && sok && juniorMed > 0 {
		ins.Growth = &GrowthInsight{
			JuniorMedian: juniorMed,
			SeniorMedian: seniorMed,
			GrowthPct:    (seniorMed - juniorMed) / juniorMed * 100,
			IncreaseK:    seniorMed - juniorMed,
		}
	}

	return ins
}
