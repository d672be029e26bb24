package tradegains

import (
	"math"
	"sort"

	"github.com/shopspring/decimal"

	"tradegains/date"
)

// Method names a return-calculation methodology.
type Method string

const (
	TimeWeighted  Method = "time_weighted"
	MoneyWeighted Method = "money_weighted"
)

// ReturnResult is one computed performance figure. TimeWeighted values are
// cumulative over the analysis window; MoneyWeighted values are annual
// rates by construction.
type ReturnResult struct {
	Method Method
	Value  Percent
}

// daysPerYear is the day-count convention of the rate solver.
const daysPerYear = 365.0

// ComputeTWR computes the time-weighted return of a valuation series: the
// series is split into sub-periods at external cash-flow dates, a flow is
// attributed to the start of the sub-period that follows it, and the
// sub-period growth factors are chained.
//
// Flows use the account convention (money in negative, money out
// positive). Flows dated on or before the first valuation point are the
// initial funding, already reflected in that point. A sub-period starting
// at zero value with open positions is unmeasurable and returns a
// *DataError; one starting at zero with nothing held is skipped.
func ComputeTWR(vals []ValuationPoint, flows []CashFlow) (ReturnResult, error) {
	if len(vals) < 2 {
		return ReturnResult{}, &DataError{Op: "twr", Msg: "need at least two valuation points"}
	}

	flowAt := assignFlows(vals, flows)

	growth := 1.0
	base := vals[0]
	for i := 1; i < len(vals); i++ {
		p := vals[i]
		net, boundary := flowAt[p.Date]
		if !boundary && i != len(vals)-1 {
			continue
		}
		if base.Value.IsZero() {
			if base.Held > 0 {
				return ReturnResult{}, &DataError{
					Op:   "twr",
					Date: base.Date,
					Msg:  "portfolio value is zero while positions are open",
				}
			}
			// Nothing was held: no growth to measure, restart here.
			base = p
			continue
		}
		// net is account-signed; the contribution to portfolio value is
		// its opposite.
		end := p.Value.Add(net)
		r, _ := end.Sub(base.Value).Div(base.Value).Float64()
		growth *= 1 + r
		base = p
	}
	return ReturnResult{Method: TimeWeighted, Value: Percent(100 * (growth - 1))}, nil
}

// assignFlows keys each flow by the first valuation date on or after it,
// summing, so that flows landing on dates dropped from the series still
// count against the following sub-period. Flows beyond the series are
// discarded.
func assignFlows(vals []ValuationPoint, flows []CashFlow) map[date.Date]decimal.Decimal {
	flowAt := make(map[date.Date]decimal.Decimal, len(flows))
	for _, f := range flows {
		i := sort.Search(len(vals), func(i int) bool { return !vals[i].Date.Before(f.Date) })
		if i == len(vals) {
			continue
		}
		on := vals[i].Date
		flowAt[on] = flowAt[on].Add(f.Amount)
	}
	return flowAt
}

// CumulativeReturns charts the portfolio's flow-adjusted growth: the
// chained sub-period returns of ComputeTWR evaluated at every valuation
// date, as cumulative percentages starting at zero. Where ComputeTWR would
// fail on a zero-value base the series stays flat instead, so a chart can
// still be drawn; the last point equals the time-weighted return whenever
// that computation succeeds.
func CumulativeReturns(vals []ValuationPoint, flows []CashFlow) []ReturnPoint {
	if len(vals) == 0 {
		return nil
	}
	flowAt := assignFlows(vals, flows)
	points := make([]ReturnPoint, 0, len(vals))
	points = append(points, ReturnPoint{Date: vals[0].Date})
	growth := 1.0
	base := vals[0]
	for _, p := range vals[1:] {
		if !base.Value.IsZero() {
			end := p.Value.Add(flowAt[p.Date])
			r, _ := end.Sub(base.Value).Div(base.Value).Float64()
			growth *= 1 + r
		}
		points = append(points, ReturnPoint{Date: p.Date, Return: Percent(100 * (growth - 1))})
		base = p
	}
	return points
}

// IRRParams bound the money-weighted rate solver.
type IRRParams struct {
	MinRate       float64 // lower bracket, must stay above -1
	MaxRate       float64 // upper bracket
	Tolerance     float64 // bracket width at which the rate is accepted
	MaxIterations int
}

// DefaultIRRParams are the solver settings used when the configuration
// does not override them.
func DefaultIRRParams() IRRParams {
	return IRRParams{MinRate: -0.9999, MaxRate: 10.0, Tolerance: 1e-6, MaxIterations: 100}
}

// ComputeMWR computes the money-weighted (internal) rate of return: the
// annual rate at which the external flows plus a terminal inflow of the
// final portfolio value discount to zero. Flows use the account convention
// (money in negative, money out positive), which is the usual sign setup
// for this equation.
//
// The rate is found by bisection within p's bracket. When no sign change
// exists in the bracket or the iteration budget runs out first, a
// *ConvergenceError reports the bracket and iteration count; no default
// rate is ever substituted.
func ComputeMWR(vals []ValuationPoint, flows []CashFlow, p IRRParams) (ReturnResult, error) {
	if len(vals) == 0 {
		return ReturnResult{}, &DataError{Op: "mwr", Msg: "no valuation points"}
	}
	if len(flows) == 0 {
		return ReturnResult{}, &DataError{Op: "mwr", Msg: "no cash flows"}
	}

	type entry struct {
		years  float64
		amount float64
	}
	t0 := flows[0].Date
	entries := make([]entry, 0, len(flows)+1)
	for _, f := range flows {
		amount, _ := f.Amount.Float64()
		entries = append(entries, entry{years: float64(f.Date.Sub(t0)) / daysPerYear, amount: amount})
	}
	final := vals[len(vals)-1]
	terminal, _ := final.Value.Float64()
	entries = append(entries, entry{years: float64(final.Date.Sub(t0)) / daysPerYear, amount: terminal})

	npv := func(rate float64) float64 {
		var sum float64
		for _, e := range entries {
			sum += e.amount / math.Pow(1+rate, e.years)
		}
		return sum
	}

	lo, hi := p.MinRate, p.MaxRate
	flo := npv(lo)
	if flo*npv(hi) > 0 {
		return ReturnResult{}, &ConvergenceError{Lo: lo, Hi: hi, Msg: "no sign change in bracket"}
	}
	iterations := 0
	for hi-lo > p.Tolerance {
		if iterations >= p.MaxIterations {
			return ReturnResult{}, &ConvergenceError{
				Lo: lo, Hi: hi, Iterations: iterations,
				Msg: "bracket did not shrink below tolerance",
			}
		}
		mid := (lo + hi) / 2
		fmid := npv(mid)
		if fmid == 0 {
			lo, hi = mid, mid
			break
		}
		if (fmid < 0) == (flo < 0) {
			lo, flo = mid, fmid
		} else {
			hi = mid
		}
		iterations++
	}
	rate := (lo + hi) / 2
	return ReturnResult{Method: MoneyWeighted, Value: Percent(100 * rate)}, nil
}

// Annualize converts a cumulative return over the given number of days to
// an annual rate. Windows of a day or less are returned unchanged.
func Annualize(p Percent, days int) Percent {
	if days <= 1 {
		return p
	}
	ratio := 1 + float64(p)/100
	if ratio <= 0 {
		return Percent(-100)
	}
	return Percent(100 * (math.Pow(ratio, daysPerYear/float64(days)) - 1))
}
