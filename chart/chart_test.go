package chart

import (
	"bytes"
	"image/png"
	"os"
	"path/filepath"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/require"

	"tradegains"
	"tradegains/date"
)

func vpoint(on string, value int64) tradegains.ValuationPoint {
	return tradegains.ValuationPoint{Date: date.MustParse(on), Value: decimal.NewFromInt(value), Held: 1}
}

func rpoint(on string, ret float64) tradegains.ReturnPoint {
	return tradegains.ReturnPoint{Date: date.MustParse(on), Return: tradegains.Percent(ret)}
}

func requirePNG(t *testing.T, data []byte) {
	t.Helper()
	cfg, err := png.DecodeConfig(bytes.NewReader(data))
	require.NoError(t, err)
	require.Equal(t, 900, cfg.Width)
	require.Equal(t, 400, cfg.Height)
}

func TestRenderEquityCurve(t *testing.T) {
	vals := []tradegains.ValuationPoint{
		vpoint("2025-01-02", 1000),
		vpoint("2025-02-03", 1050),
		vpoint("2025-03-03", 1150),
	}
	invested := []tradegains.ValuationPoint{
		vpoint("2025-01-02", 1000),
		vpoint("2025-03-03", 1000),
	}

	data, err := RenderEquityCurve(vals, invested)
	require.NoError(t, err)
	requirePNG(t, data)
}

func TestRenderEquityCurve_tooFewPoints(t *testing.T) {
	_, err := RenderEquityCurve([]tradegains.ValuationPoint{vpoint("2025-01-02", 1000)}, nil)
	require.Error(t, err)
	require.Contains(t, err.Error(), "at least 2")
}

func TestRenderVsBenchmark(t *testing.T) {
	growth := []tradegains.ReturnPoint{
		rpoint("2025-01-02", 0),
		rpoint("2025-02-03", 5),
		rpoint("2025-03-03", 15),
	}
	benchmark := []tradegains.ReturnPoint{
		rpoint("2025-01-02", 0),
		rpoint("2025-03-03", 8),
	}

	data, err := RenderVsBenchmark(growth, "VTI", benchmark)
	require.NoError(t, err)
	requirePNG(t, data)

	// Without a benchmark the portfolio still charts alone.
	data, err = RenderVsBenchmark(growth, "", nil)
	require.NoError(t, err)
	requirePNG(t, data)
}

func TestWriteAll(t *testing.T) {
	day := date.MustParse("2025-01-02")
	a := &tradegains.Analysis{
		Window: date.NewRange(day, date.MustParse("2025-03-03")),
		Trades: []tradegains.Trade{
			tradegains.NormalizeTrade(day, "AAPL", "Buy", decimal.NewFromInt(10), decimal.NewFromInt(100), decimal.Zero),
		},
		Valuations: []tradegains.ValuationPoint{
			vpoint("2025-01-02", 1000),
			vpoint("2025-02-03", 1050),
			vpoint("2025-03-03", 1150),
		},
		Growth: []tradegains.ReturnPoint{
			rpoint("2025-01-02", 0),
			rpoint("2025-02-03", 5),
			rpoint("2025-03-03", 15),
		},
		BenchmarkSymbol: "VTI",
		Benchmark: []tradegains.ReturnPoint{
			rpoint("2025-01-02", 0),
			rpoint("2025-03-03", 8),
		},
	}

	dir := filepath.Join(t.TempDir(), "out")
	written, err := WriteAll(dir, a)
	require.NoError(t, err)
	require.Len(t, written, 2)
	for _, path := range written {
		data, err := os.ReadFile(path)
		require.NoError(t, err)
		requirePNG(t, data)
	}
}
