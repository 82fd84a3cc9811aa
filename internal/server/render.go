package server

import (
	"net/http"

	"github.com/SANJANA-DHAGE05/job-market-analysis/internal/dashboard"
	"github.com/SANJANA-DHAGE05/job-market-analysis/internal/dataset"
	"github.com/SANJANA-DHAGE05/job-market-analysis/internal/errors"
	"github.com/SANJANA-DHAGE05/job-market-analysis/internal/telemetry"

	chart "github.com/wcharczuk/go-chart/v2"
	"github.com/wcharczuk/go-chart/v2/drawing"
	"go.uber.org/zap"
)

const (
	chartWidth  = 1024
	chartHeight = 512
)

func (s *Server) handleUSAChart(w http.ResponseWriter, r *http.Request) {
	s.serveChart(w, r, dataset.KeyUSA, func(d interface{}, name string) (*dashboard.ChartConfig, bool) {
		usa := d.(*dashboard.USADashboard)
		switch name {
		case "salary-distribution.png":
			return usa.SalaryHistogram, true
		case "salary-by-seniority.png":
			return usa.SalaryBySeniority, true
		case "salary-by-state.png":
			return usa.SalaryByState, true
		case "top-skills.png":
			return usa.TopSkills, true
		case "top-states.png":
			return usa.TopStates, true
		case "top-cities.png":
			return usa.TopCities, true
		case "top-companies.png":
			return usa.TopCompanies, true
		case "industries.png":
			return usa.Industries, true
		}
		return nil, false
	})
}

func (s *Server) handleCompareChart(w http.ResponseWriter, r *http.Request) {
	s.serveChart(w, r, dataset.KeyCompare, func(d interface{}, name string) (*dashboard.ChartConfig, bool) {
		cmp := d.(*dashboard.CompareDashboard)
		switch name {
		case "salary-distribution-usa.png":
			return cmp.USASalaryHistogram, true
		case "salary-distribution-india.png":
			return cmp.IndiaSalaryHistogram, true
		case "salary-by-category.png":
			return cmp.SalaryByCategory, true
		case "salary-by-seniority.png":
			return cmp.SalaryBySeniority, true
		case "skills.png":
			return cmp.SkillChart, true
		case "categories-usa.png":
			return cmp.TopCategoriesUSA, true
		case "categories-india.png":
			return cmp.TopCategoriesIndia, true
		case "locations-usa.png":
			return cmp.TopLocationsUSA, true
		case "locations-india.png":
			return cmp.TopLocationsIndia, true
		}
		return nil, false
	})
}

func (s *Server) serveChart(w http.ResponseWriter, r *http.Request, key dataset.Key, pick func(interface{}, string) (*dashboard.ChartConfig, bool)) {
	ctx, span := tracer.Start(r.Context(), "serveChart")
	defer span.End()

	name := r.PathValue("chart")
	span.SetAttributes(
		telemetry.String("dataset.key", string(key)),
		telemetry.String("chart.name", name),
	)

	ds, err := s.store.Dataset(ctx, key)
	if err != nil {
		s.writeError(w, err)
		return
	}

	params := parseParams(r)
	var payload interface{}
	if key == dataset.KeyCompare {
		payload = dashboard.BuildCompare(ctx, ds, params)
	} else {
		payload = dashboard.BuildUSA(ctx, ds, params)
	}

	cfg, known := pick(payload, name)
	if !known {
		s.writeError(w, errors.NotFound("unknown chart "+name, nil))
		return
	}

	w.Header().Set("Content-Type", "image/png")
	if err := renderChart(w, cfg); err != nil {
		span.RecordError(err)
		s.logger.Error("failed to render chart",
			zap.String("chart", name),
			zap.Error(err))
	}
}

// renderChart rasterizes a ChartConfig. A nil config or one with no
// data points renders a "no data" placeholder instead of failing.
func renderChart(w http.ResponseWriter, cfg *dashboard.ChartConfig) error {
	if cfg == nil || !hasPoints(cfg) {
		return renderPlaceholder(w, cfg)
	}

	if cfg.ChartType == "pie" {
		return renderPie(w, cfg)
	}
	return renderBars(w, cfg)
}

func hasPoints(cfg *dashboard.ChartConfig) bool {
	for _, s := range cfg.Series {
		if len(s.Data) > 0 {
			return true
		}
	}
	return false
}

func renderBars(w http.ResponseWriter, cfg *dashboard.ChartConfig) error {
	var bars []chart.Value
	for i, series := range cfg.Series {
		color := seriesColor(cfg, i)
		for _, p := range series.Data {
			label := p.Label
			if len(cfg.Series) > 1 {
				label = series.Name + " " + p.Label
			}
			bars = append(bars, chart.Value{
				Label: label,
				Value: p.Value,
				Style: chart.Style{FillColor: color, StrokeColor: color},
			})
		}
	}

	graph := chart.BarChart{
		Title:    chartTitle(cfg),
		Width:    chartWidth,
		Height:   chartHeight,
		BarWidth: 40,
		Bars:     bars,
	}
	return graph.Render(chart.PNG, w)
}

func renderPie(w http.ResponseWriter, cfg *dashboard.ChartConfig) error {
	var values []chart.Value
	for _, series := range cfg.Series {
		for _, p := range series.Data {
			values = append(values, chart.Value{Label: p.Label, Value: p.Value})
		}
	}

	graph := chart.DonutChart{
		Title:  chartTitle(cfg),
		Width:  chartHeight,
		Height: chartHeight,
		Values: values,
	}
	return graph.Render(chart.PNG, w)
}

func renderPlaceholder(w http.ResponseWriter, cfg *dashboard.ChartConfig) error {
	title := "No data for the selected filters"
	if cfg != nil && cfg.Title != "" {
		title = cfg.Title + " (no data)"
	}

	gray := drawing.Color{R: 0xd1, G: 0xd5, B: 0xdb, A: 0xff}
	graph := chart.BarChart{
		Title:    title,
		Width:    chartWidth,
		Height:   chartHeight,
		BarWidth: 40,
		Bars: []chart.Value{{
			Label: "no data",
			Value: 1,
			Style: chart.Style{FillColor: gray, StrokeColor: gray},
		}},
	}
	return graph.Render(chart.PNG, w)
}

func chartTitle(cfg *dashboard.ChartConfig) string {
	if cfg.Annotation != "" {
		return cfg.Title + " (" + cfg.Annotation + ")"
	}
	return cfg.Title
}

func seriesColor(cfg *dashboard.ChartConfig, i int) drawing.Color {
	if len(cfg.Colors) > 0 {
		return colorFromHex(cfg.Colors[i%len(cfg.Colors)])
	}
	return chart.ColorBlue
}

func colorFromHex(hex string) drawing.Color {
	if len(hex) > 0 && hex[0] == '#' {
		hex = hex[1:]
	}
	return drawing.ColorFromHex(hex)
}
