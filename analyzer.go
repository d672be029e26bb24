package tradegains

import (
	"fmt"

	"tradegains/date"
)

// Request bundles everything one analysis run needs. Trades are mandatory;
// everything else has a usable zero value.
type Request struct {
	Trades    []Trade
	Transfers []CashFlow // external deposits/withdrawals; replaces trade-implied flows for the money-weighted rate

	Prices          PriceSource
	Benchmark       string      // benchmark symbol, empty disables the comparison
	BenchmarkPrices PriceSource // defaults to Prices

	Window     date.Range // zero From: first trade date; zero To: today
	Methods    []Method   // empty means all methods
	AllowShort bool
	IRR        IRRParams // zero value means DefaultIRRParams
}

// Analysis is the outcome of one run. The run itself either succeeds or
// fails as a whole on bad input; the individual metrics inside succeed or
// fail independently, each carrying its own error.
type Analysis struct {
	Window    date.Range
	Trades    []Trade
	Positions map[string]*Position

	Flows    []CashFlow // trade-implied, clipped to the window
	External []CashFlow // flows used for the money-weighted rate

	Valuations []ValuationPoint
	CashBasis  bool          // true when the series is mark-to-cost, no prices available
	Growth     []ReturnPoint // flow-adjusted cumulative % at each valuation date

	TWR    ReturnResult
	TWRErr error
	MWR    ReturnResult
	MWRErr error

	Risk    RiskMetrics
	RiskErr error

	BenchmarkSymbol string
	Benchmark       []ReturnPoint
	BenchmarkErr    error

	Warnings []PriceGapWarning
}

// Analyze runs the full pipeline: aggregate trades, build the valuation
// series, compute the requested return metrics, compare against the
// benchmark. Input and pricing failures abort the run; metric failures do
// not, they are recorded on the result so one diverging rate never hides
// the other.
func Analyze(req Request) (*Analysis, error) {
	if len(req.Trades) == 0 {
		return nil, &DataError{Op: "analyze", Msg: "no trades"}
	}
	if req.Prices == nil {
		return nil, &DataError{Op: "analyze", Msg: "no price source"}
	}

	window, err := resolveWindow(req.Trades, req.Window)
	if err != nil {
		return nil, err
	}

	positions, tradeFlows, err := Aggregate(req.Trades, req.AllowShort)
	if err != nil {
		return nil, err
	}

	vals, warnings, err := BuildValuations(req.Trades, req.Prices, window)
	if err != nil {
		return nil, err
	}
	cashBasis := false
	if len(vals) == 0 {
		vals = CashBasisValuations(req.Trades, window)
		cashBasis = true
	}

	flows := ClipFlows(tradeFlows, window)
	external := flows
	if len(req.Transfers) > 0 {
		external = ClipFlows(MergeFlows(req.Transfers), window)
	}

	a := &Analysis{
		Window:     window,
		Trades:     req.Trades,
		Positions:  positions,
		Flows:      flows,
		External:   external,
		Valuations: vals,
		CashBasis:  cashBasis,
		Growth:     CumulativeReturns(vals, flows),
	}

	irr := req.IRR
	if irr == (IRRParams{}) {
		irr = DefaultIRRParams()
	}
	if wantsMethod(req.Methods, TimeWeighted) {
		a.TWR, a.TWRErr = ComputeTWR(vals, flows)
	}
	if wantsMethod(req.Methods, MoneyWeighted) {
		a.MWR, a.MWRErr = ComputeMWR(vals, external, irr)
	}
	a.Risk, a.RiskErr = ComputeRiskMetrics(vals, flows)

	if req.Benchmark != "" {
		src := req.BenchmarkPrices
		if src == nil {
			src = req.Prices
		}
		symbol := NormalizeSymbol(req.Benchmark)
		a.BenchmarkSymbol = symbol
		prices, err := src.Prices(symbol, window)
		switch {
		case err != nil:
			a.BenchmarkErr = fmt.Errorf("fetching benchmark %q: %w", symbol, err)
		case prices.Len() == 0:
			a.BenchmarkErr = fmt.Errorf("no price data for benchmark %q", symbol)
		default:
			points, w := CompareBenchmark(symbol, prices, ValuationDates(vals))
			a.Benchmark = points
			warnings = append(warnings, w...)
		}
	}

	a.Warnings = warnings
	return a, nil
}

// resolveWindow fills the open ends of the requested window: the start
// defaults to the first trade date and the end to today.
func resolveWindow(trades []Trade, window date.Range) (date.Range, error) {
	first := trades[0].Date
	for _, t := range trades[1:] {
		if t.Date.Before(first) {
			first = t.Date
		}
	}
	if window.From.IsZero() {
		window.From = first
	}
	if window.To.IsZero() {
		window.To = date.Today()
	}
	if window.To.Before(window.From) {
		return date.Range{}, &DataError{
			Op:   "analyze",
			Date: window.To,
			Msg:  fmt.Sprintf("analysis window ends before it starts (%s)", window),
		}
	}
	return window, nil
}

func wantsMethod(methods []Method, m Method) bool {
	if len(methods) == 0 {
		return true
	}
	for _, want := range methods {
		if want == m {
			return true
		}
	}
	return false
}
