package tradegains

import (
	"fmt"

	"tradegains/date"
)

// DataError reports invalid or insufficient input data: a sell exceeding
// the held quantity, a valuation that cannot be computed, an empty trade
// set. It names the operation and, when known, the symbol and date so the
// offending input row can be found.
type DataError struct {
	Op     string    // failing operation, e.g. "aggregate" or "twr"
	Symbol string    // affected symbol, if any
	Date   date.Date // affected date, if any
	Msg    string
}

func (e *DataError) Error() string {
	msg := fmt.Sprintf("%s: %s", e.Op, e.Msg)
	if e.Symbol != "" {
		msg += fmt.Sprintf(" (symbol %q)", e.Symbol)
	}
	if !e.Date.IsZero() {
		msg += fmt.Sprintf(" on %s", e.Date)
	}
	return msg
}

// ConvergenceError reports that the rate solver found no answer: either no
// sign change exists within the bracket, or the iteration budget ran out
// before the interval shrank below tolerance. The result is unusable and is
// never replaced with a default.
type ConvergenceError struct {
	Lo, Hi     float64 // search bracket
	Iterations int     // iterations performed
	Msg        string
}

func (e *ConvergenceError) Error() string {
	return fmt.Sprintf("irr: %s after %d iterations in [%g, %g]", e.Msg, e.Iterations, e.Lo, e.Hi)
}

// PriceGapWarning flags a hole in price coverage. It is a value, not an
// error: the analysis continues and callers decide whether to surface it.
//
// Filled false means the date was dropped from the valuation series because
// it precedes the symbol's first known price. Filled true means the date was
// kept but the symbol's price was carried forward from well before, which
// usually indicates a delisted or halted instrument.
type PriceGapWarning struct {
	Symbol string
	Date   date.Date
	Filled bool
}

func (w PriceGapWarning) String() string {
	if w.Date.IsZero() {
		return fmt.Sprintf("no price data for %q, symbol excluded from valuation", w.Symbol)
	}
	if w.Filled {
		return fmt.Sprintf("stale price for %q on %s, last known value carried forward", w.Symbol, w.Date)
	}
	return fmt.Sprintf("%s precedes the first known price for %q, date excluded", w.Date, w.Symbol)
}
