package report

import (
	"bytes"
	"context"
	"fmt"
	"sort"
	"time"

	chart "github.com/wcharczuk/go-chart/v2"
)

const (
	chartWidth  = 1024
	chartHeight = 600
)

// BarChart renders file counts per category as a PNG.
func (r *Reporter) BarChart(ctx context.Context) ([]byte, error) {
	categories, err := r.store.ListCategories()
	if err != nil {
		return nil, err
	}

	var bars []chart.Value
	total := 0
	for _, cat := range categories {
		files, err := r.store.ListFiles(cat)
		if err != nil {
			continue
		}
		total += len(files)
		bars = append(bars, chart.Value{
			Label: cat,
			Value: float64(len(files)),
		})
	}
	if len(bars) == 0 || total == 0 {
		return nil, ErrNoData
	}

	graph := chart.BarChart{
		Title:    "Número de Arquivos por Categoria",
		Width:    chartWidth,
		Height:   chartHeight,
		BarWidth: 60,
		XAxis: chart.Style{
			TextRotationDegrees: 45,
		},
		YAxis: chart.YAxis{
			ValueFormatter: chart.IntValueFormatter,
		},
		Bars: bars,
	}

	var buf bytes.Buffer
	if err := graph.Render(chart.PNG, &buf); err != nil {
		return nil, fmt.Errorf("report: render barras: %w", err)
	}
	return buf.Bytes(), nil
}

// PieChart renders the file distribution across categories as a PNG.
// Empty categories are left out.
func (r *Reporter) PieChart(ctx context.Context) ([]byte, error) {
	categories, err := r.store.ListCategories()
	if err != nil {
		return nil, err
	}

	var values []chart.Value
	for _, cat := range categories {
		files, err := r.store.ListFiles(cat)
		if err != nil || len(files) == 0 {
			continue
		}
		values = append(values, chart.Value{
			Label: fmt.Sprintf("%s (%d)", cat, len(files)),
			Value: float64(len(files)),
		})
	}
	if len(values) == 0 {
		return nil, ErrNoData
	}

	graph := chart.PieChart{
		Title:  "Distribuição de Arquivos por Categoria",
		Width:  chartHeight,
		Height: chartHeight,
		Values: values,
	}

	var buf bytes.Buffer
	if err := graph.Render(chart.PNG, &buf); err != nil {
		return nil, fmt.Errorf("report: render pizza: %w", err)
	}
	return buf.Bytes(), nil
}

// GrowthChart renders cumulative file counts over time, one series per
// category.
func (r *Reporter) GrowthChart(ctx context.Context) ([]byte, error) {
	categories, err := r.store.ListCategories()
	if err != nil {
		return nil, err
	}

	var series []chart.Series
	for _, cat := range categories {
		counts, err := r.growthByDay(ctx, cat)
		if err != nil || len(counts) == 0 {
			continue
		}

		days := make([]time.Time, 0, len(counts))
		for day := range counts {
			days = append(days, day)
		}
		sort.Slice(days, func(i, j int) bool { return days[i].Before(days[j]) })

		xs := make([]time.Time, 0, len(days)+1)
		ys := make([]float64, 0, len(days)+1)

		// A single-day series cannot be plotted as a line, so anchor
		// it with a zero the day before.
		if len(days) == 1 {
			xs = append(xs, days[0].AddDate(0, 0, -1))
			ys = append(ys, 0)
		}

		cumulative := 0
		for _, day := range days {
			cumulative += counts[day]
			xs = append(xs, day)
			ys = append(ys, float64(cumulative))
		}

		series = append(series, chart.TimeSeries{
			Name:    cat,
			XValues: xs,
			YValues: ys,
		})
	}
	if len(series) == 0 {
		return nil, ErrNoData
	}

	graph := chart.Chart{
		Title:  "Crescimento de Arquivos por Categoria",
		Width:  chartWidth,
		Height: chartHeight,
		XAxis: chart.XAxis{
			ValueFormatter: chart.TimeValueFormatterWithFormat("02/01"),
		},
		YAxis: chart.YAxis{
			ValueFormatter: chart.IntValueFormatter,
		},
		Series: series,
	}
	graph.Elements = []chart.Renderable{chart.Legend(&graph)}

	var buf bytes.Buffer
	if err := graph.Render(chart.PNG, &buf); err != nil {
		return nil, fmt.Errorf("report: render crescimento: %w", err)
	}
	return buf.Bytes(), nil
}
