// Package chart renders analysis series as PNG line charts.
package chart

import (
	"bytes"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/wcharczuk/go-chart/v2"
	"github.com/wcharczuk/go-chart/v2/drawing"

	"tradegains"
)

// File names under the output directory.
const (
	EquityCurveFile = "equity_curve.png"
	VsBenchmarkFile = "portfolio_vs_benchmark.png"
)

// WriteAll renders the run's charts into dir and returns the written
// paths: the mark-to-market equity curve against net invested cash, and
// the cumulative return curve against the benchmark when one was compared.
func WriteAll(dir string, a *tradegains.Analysis) ([]string, error) {
	if err := os.MkdirAll(dir, 0755); err != nil {
		return nil, fmt.Errorf("creating chart dir %q: %w", dir, err)
	}

	invested := a.Valuations
	if !a.CashBasis {
		invested = tradegains.CashBasisValuations(a.Trades, a.Window)
	}
	var written []string
	png, err := RenderEquityCurve(a.Valuations, invested)
	if err != nil {
		return written, err
	}
	path := filepath.Join(dir, EquityCurveFile)
	if err := os.WriteFile(path, png, 0644); err != nil {
		return written, fmt.Errorf("writing %q: %w", path, err)
	}
	written = append(written, path)

	png, err = RenderVsBenchmark(a.Growth, a.BenchmarkSymbol, a.Benchmark)
	if err != nil {
		return written, err
	}
	path = filepath.Join(dir, VsBenchmarkFile)
	if err := os.WriteFile(path, png, 0644); err != nil {
		return written, fmt.Errorf("writing %q: %w", path, err)
	}
	return append(written, path), nil
}

// RenderEquityCurve renders the portfolio's mark-to-market value over time
// as a PNG. A distinct invested series is drawn dashed behind it so gains
// stand apart from contributions. Returns raw PNG bytes.
func RenderEquityCurve(vals, invested []tradegains.ValuationPoint) ([]byte, error) {
	if len(vals) < 2 {
		return nil, fmt.Errorf("need at least 2 data points, got %d", len(vals))
	}

	series := []chart.Series{valuationSeries("Portfolio Value", "2563eb", 2.5, nil, vals)}
	if len(invested) >= 2 && !sameSeries(vals, invested) {
		series = append(series, valuationSeries("Net Invested", "9ca3af", 1.5, []float64{5.0, 3.0}, invested))
	}

	graph := newTimeChart("Portfolio Equity Curve", series, func(v interface{}) string {
		if f, ok := v.(float64); ok {
			return fmt.Sprintf("$%.0f", f)
		}
		return ""
	})
	return render(graph)
}

// RenderVsBenchmark renders the portfolio's flow-adjusted cumulative
// return beside the benchmark's buy-and-hold curve. An empty benchmark
// series leaves the portfolio alone on the chart.
func RenderVsBenchmark(growth []tradegains.ReturnPoint, benchmarkSymbol string, benchmark []tradegains.ReturnPoint) ([]byte, error) {
	if len(growth) < 2 {
		return nil, fmt.Errorf("need at least 2 data points, got %d", len(growth))
	}

	series := []chart.Series{returnSeries("Portfolio", "2563eb", 2.5, growth)}
	if len(benchmark) >= 2 {
		name := benchmarkSymbol
		if name == "" {
			name = "Benchmark"
		}
		series = append(series, returnSeries(name, "f59e0b", 1.5, benchmark))
	}

	graph := newTimeChart("Portfolio vs Benchmark (Cum %)", series, func(v interface{}) string {
		if f, ok := v.(float64); ok {
			return fmt.Sprintf("%.0f%%", f)
		}
		return ""
	})
	return render(graph)
}

func valuationSeries(name, hex string, width float64, dashes []float64, points []tradegains.ValuationPoint) chart.TimeSeries {
	xs := make([]time.Time, len(points))
	ys := make([]float64, len(points))
	for i, p := range points {
		xs[i] = p.Date.Time()
		ys[i] = p.Value.InexactFloat64()
	}
	return chart.TimeSeries{
		Name: name,
		Style: chart.Style{
			StrokeColor:     drawing.ColorFromHex(hex),
			StrokeWidth:     width,
			StrokeDashArray: dashes,
		},
		XValues: xs,
		YValues: ys,
	}
}

func returnSeries(name, hex string, width float64, points []tradegains.ReturnPoint) chart.TimeSeries {
	xs := make([]time.Time, len(points))
	ys := make([]float64, len(points))
	for i, p := range points {
		xs[i] = p.Date.Time()
		ys[i] = float64(p.Return)
	}
	return chart.TimeSeries{
		Name: name,
		Style: chart.Style{
			StrokeColor: drawing.ColorFromHex(hex),
			StrokeWidth: width,
		},
		XValues: xs,
		YValues: ys,
	}
}

func newTimeChart(title string, series []chart.Series, yFormatter chart.ValueFormatter) chart.Chart {
	graph := chart.Chart{
		Title:  title,
		Width:  900,
		Height: 400,
		Background: chart.Style{
			Padding: chart.Box{Top: 40, Left: 10, Right: 20, Bottom: 10},
		},
		XAxis: chart.XAxis{
			TickPosition: chart.TickPositionBetweenTicks,
			ValueFormatter: func(v interface{}) string {
				if t, ok := v.(float64); ok {
					return chart.TimeFromFloat64(t).Format("Jan 06")
				}
				return ""
			},
		},
		YAxis: chart.YAxis{
			ValueFormatter: yFormatter,
		},
		Series: series,
	}
	graph.Elements = []chart.Renderable{
		chart.LegendLeft(&graph),
	}
	return graph
}

func render(graph chart.Chart) ([]byte, error) {
	var buf bytes.Buffer
	if err := graph.Render(chart.PNG, &buf); err != nil {
		return nil, fmt.Errorf("chart render failed: %w", err)
	}
	return buf.Bytes(), nil
}

// sameSeries reports whether two valuation series are the same points, as
// when the equity curve itself degraded to mark-to-cost.
func sameSeries(a, b []tradegains.ValuationPoint) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if a[i].Date != b[i].Date || !a[i].Value.Equal(b[i].Value) {
			return false
		}
	}
	return true
}
