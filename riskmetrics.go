package tradegains

import (
	"fmt"
	"math"

	"github.com/montanaflynn/stats"
)

// RiskMetrics are supplementary risk figures derived from the valuation
// series. They are computed on flow-adjusted daily returns, so deposits
// and withdrawals do not masquerade as performance.
type RiskMetrics struct {
	AnnualizedVolatility Percent
	SharpeRatio          float64
	MaxDrawdown          Percent // most negative peak-to-trough move
}

// tradingDaysPerYear scales daily volatility to an annual figure.
const tradingDaysPerYear = 252

// ComputeRiskMetrics derives volatility, Sharpe ratio (risk-free rate
// zero) and maximum drawdown from the valuation series and its external
// flows.
func ComputeRiskMetrics(vals []ValuationPoint, flows []CashFlow) (RiskMetrics, error) {
	if len(vals) < 3 {
		return RiskMetrics{}, &DataError{Op: "risk", Msg: "need at least three valuation points"}
	}

	flowAt := assignFlows(vals, flows)
	returns := make([]float64, 0, len(vals)-1)
	prev := vals[0]
	for _, p := range vals[1:] {
		if prev.Value.IsZero() {
			prev = p
			continue
		}
		end := p.Value.Add(flowAt[p.Date])
		r, _ := end.Sub(prev.Value).Div(prev.Value).Float64()
		returns = append(returns, r)
		prev = p
	}
	if len(returns) < 2 {
		return RiskMetrics{}, &DataError{Op: "risk", Msg: "not enough measurable periods"}
	}

	stdev, err := stats.StandardDeviationSample(returns)
	if err != nil {
		return RiskMetrics{}, fmt.Errorf("computing volatility: %w", err)
	}
	annualizedVol := stdev * math.Sqrt(tradingDaysPerYear)

	// Chain the adjusted returns into a growth index; the drawdown and the
	// Sharpe numerator both come from it.
	index, peak := 1.0, 1.0
	maxDrawdown := 0.0
	for _, r := range returns {
		index *= 1 + r
		if index > peak {
			peak = index
		}
		if dd := index/peak - 1; dd < maxDrawdown {
			maxDrawdown = dd
		}
	}

	days := vals[len(vals)-1].Date.Sub(vals[0].Date)
	annualized := float64(Annualize(Percent(100*(index-1)), days)) / 100

	sharpe := 0.0
	if annualizedVol > 0 {
		sharpe = annualized / annualizedVol
	}

	return RiskMetrics{
		AnnualizedVolatility: Percent(100 * annualizedVol),
		SharpeRatio:          sharpe,
		MaxDrawdown:          Percent(100 * maxDrawdown),
	}, nil
}
