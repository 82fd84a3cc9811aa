package dashboard

import (
	"fmt"

	"github.com/SANJANA-DHAGE05/job-market-analysis/internal/stats"
)

// Metric is a headline figure. Available is false when the filtered
// view had no data for it; Display is then "N/A" and Value must not
// be rendered as a real number.
type Metric struct {
	Label     string  `json:"label"`
	Value     float64 `json:"value"`
	Display   string  `json:"display"`
	Detail    string  `json:"detail,omitempty"`
	Available bool    `json:"available"`
}

// ChartConfig is a render-ready chart description. Frontends plot it
// directly; the PNG endpoints rasterize the same structure.
type ChartConfig struct {
	ChartType  string        `json:"chartType"`
	Title      string        `json:"title"`
	XAxis      string        `json:"xAxis,omitempty"`
	YAxis      string        `json:"yAxis,omitempty"`
	Series     []ChartSeries `json:"series"`
	Colors     []string      `json:"colors,omitempty"`
	ShowLegend bool          `json:"showLegend"`
	ShowGrid   bool          `json:"showGrid"`
	Annotation string        `json:"annotation,omitempty"`
}

type ChartSeries struct {
	Name  string       `json:"name"`
	Data  []ChartPoint `json:"data"`
	Color string       `json:"color,omitempty"`
}

type ChartPoint struct {
	Label string  `json:"label"`
	Value float64 `json:"value"`
}

// FilterOptions enumerates the selectable filter values for a dataset.
type FilterOptions struct {
	Seniorities []string `json:"seniorities"`
	States      []string `json:"states,omitempty"`
	Categories  []string `json:"categories,omitempty"`
	Countries   []string `json:"countries,omitempty"`
	SalaryMin   float64  `json:"salary_min"`
	SalaryMax   float64  `json:"salary_max"`
}

func metricUnavailable(label string) Metric {
	return Metric{Label: label, Display: "N/A"}
}

func countMetric(label string, count int) Metric {
	return Metric{
		Label:     label,
		Value:     float64(count),
		Display:   fmt.Sprintf("%d", count),
		Available: true,
	}
}

func usdkMetric(label string, value float64, detail string) Metric {
	return Metric{
		Label:     label,
		Value:     value,
		Display:   formatUSDK(value),
		Detail:    detail,
		Available: true,
	}
}

func ratioMetric(label string, value float64, detail string) Metric {
	return Metric{
		Label:     label,
		Value:     value,
		Display:   fmt.Sprintf("%.1fx", value),
		Detail:    detail,
		Available: true,
	}
}

func formatUSDK(v float64) string {
	return fmt.Sprintf("$%.0fK", v)
}

func formatLPA(v float64) string {
	return fmt.Sprintf("%.1f LPA", v)
}

func formatPct(v float64) string {
	return fmt.Sprintf("%.1f%%", v)
}

func rankedPoints(ranked []stats.RankedValue) []ChartPoint {
	points := make([]ChartPoint, len(ranked))
	for i, r := range ranked {
		points[i] = ChartPoint{Label: r.Key, Value: float64(r.Count)}
	}
	return points
}

func groupPoints(groups []stats.GroupStat) []ChartPoint {
	points := make([]ChartPoint, len(groups))
	for i, g := range groups {
		points[i] = ChartPoint{Label: g.Key, Value: g.Median}
	}
	return points
}
