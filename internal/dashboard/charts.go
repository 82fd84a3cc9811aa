package dashboard

import (
	"fmt"

	"github.com/SANJANA-DHAGE05/job-market-analysis/internal/stats"
)

var defaultColors = []string{
	"#4F46E5", "#10B981", "#F59E0B", "#EF4444", "#8B5CF6",
	"#06B6D4", "#EC4899", "#84CC16", "#F97316", "#6366F1",
}

func barChart(title, xAxis, yAxis string, points []ChartPoint) *ChartConfig {
	return &ChartConfig{
		ChartType: "bar",
		Title:     title,
		XAxis:     xAxis,
		YAxis:     yAxis,
		Series:    []ChartSeries{{Name: title, Data: points}},
		Colors:    assignColors(1),
		ShowGrid:  true,
	}
}

func pieChart(title string, points []ChartPoint) *ChartConfig {
	return &ChartConfig{
		ChartType:  "pie",
		Title:      title,
		Series:     []ChartSeries{{Name: title, Data: points}},
		Colors:     assignColors(len(points)),
		ShowLegend: true,
	}
}

func groupedBarChart(title, xAxis, yAxis string, series []ChartSeries) *ChartConfig {
	for i := range series {
		series[i].Color = defaultColors[i%len(defaultColors)]
	}
	return &ChartConfig{
		ChartType:  "bar",
		Title:      title,
		XAxis:      xAxis,
		YAxis:      yAxis,
		Series:     series,
		Colors:     assignColors(len(series)),
		ShowLegend: true,
		ShowGrid:   true,
	}
}

func histogramChart(title, xAxis string, buckets []stats.Bucket, annotation string) *ChartConfig {
	points := make([]ChartPoint, len(buckets))
	for i, b := range buckets {
		points[i] = ChartPoint{
			Label: fmt.Sprintf("%.0f–%.0f", b.Lo, b.Hi),
			Value: float64(b.Count),
		}
	}
	return &ChartConfig{
		ChartType:  "histogram",
		Title:      title,
		XAxis:      xAxis,
		YAxis:      "Number of Jobs",
		Series:     []ChartSeries{{Name: title, Data: points}},
		Colors:     assignColors(1),
		ShowGrid:   true,
		Annotation: annotation,
	}
}

func assignColors(count int) []string {
	colors := make([]string, count)
	for i := 0; i < count; i++ {
		colors[i] = defaultColors[i%len(defaultColors)]
	}
	return colors
}
