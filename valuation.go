package tradegains

import (
	"fmt"
	"regexp"

	"github.com/shopspring/decimal"

	"tradegains/date"
)

// ValuationPoint is the portfolio marked to market at one date's close.
// Held counts the open positions contributing to Value that day, so that a
// zero Value can be told apart from an empty portfolio.
type ValuationPoint struct {
	Date  date.Date
	Value decimal.Decimal
	Held  int
}

// occPattern matches OCC-style option symbols like AAPL250117C00150000,
// which have no quotable end-of-day price series.
var occPattern = regexp.MustCompile(`\d{6}[CP]\d{8}$`)

// Unpriceable reports whether a symbol has no market price history to
// fetch. Such symbols are excluded from valuation with a warning.
func Unpriceable(symbol string) bool { return occPattern.MatchString(symbol) }

// staleFillDays is how far a forward-filled price may lag the valuation
// date before it is flagged as stale. Weekends and market holidays stay
// below it.
const staleFillDays = 7

// BuildValuations marks the portfolio implied by trades to market on every
// date where a price or a trade occurs within the window. Prices are
// fetched once per symbol and carried forward between quotes, never
// backward: a date preceding a held symbol's first known price is dropped
// from the series and reported as a PriceGapWarning.
//
// Symbols with no obtainable prices are excluded from the valuation and
// reported; when no symbol is priceable at all the returned series is
// empty and the caller decides how to degrade.
func BuildValuations(trades []Trade, src PriceSource, window date.Range) ([]ValuationPoint, []PriceGapWarning, error) {
	if len(trades) == 0 {
		return nil, nil, &DataError{Op: "valuation", Msg: "no trades to value"}
	}

	ordered := make([]Trade, len(trades))
	copy(ordered, trades)
	SortTrades(ordered)

	var warnings []PriceGapWarning
	symbols := Symbols(ordered)
	prices := make(map[string]*date.History[float64])
	for _, symbol := range symbols {
		if Unpriceable(symbol) {
			warnings = append(warnings, PriceGapWarning{Symbol: symbol})
			continue
		}
		history, err := src.Prices(symbol, window)
		if err != nil {
			return nil, warnings, fmt.Errorf("fetching prices for %q: %w", symbol, err)
		}
		if history.Len() == 0 {
			warnings = append(warnings, PriceGapWarning{Symbol: symbol})
			continue
		}
		prices[symbol] = history
	}
	if len(prices) == 0 {
		return nil, warnings, nil
	}

	// The valuation grid is the union of all price dates and all trade
	// dates within the window.
	grid := make([][]date.Date, 0, len(prices)+1)
	for _, history := range prices {
		grid = append(grid, history.Days())
	}
	var tradeDates []date.Date
	for _, t := range ordered {
		if !window.Contains(t.Date) {
			continue
		}
		if n := len(tradeDates); n == 0 || tradeDates[n-1] != t.Date {
			tradeDates = append(tradeDates, t.Date)
		}
	}
	grid = append(grid, tradeDates)

	var points []ValuationPoint
	warnedStale := make(map[string]bool)
	quantities := make(map[string]decimal.Decimal)
	cursor := 0
	for on := range date.Merge(grid...) {
		if on.After(window.To) {
			break
		}
		// Apply all trades up to and including this date: a valuation at
		// the close reflects the day's fills.
		for cursor < len(ordered) && !ordered[cursor].Date.After(on) {
			t := ordered[cursor]
			quantities[t.Symbol] = quantities[t.Symbol].Add(t.Quantity)
			cursor++
		}
		if on.Before(window.From) {
			continue
		}

		var value decimal.Decimal
		held := 0
		gap := false
		for _, symbol := range symbols {
			quantity := quantities[symbol]
			if quantity.IsZero() {
				continue
			}
			history, ok := prices[symbol]
			if !ok {
				continue // unpriceable, already warned
			}
			quoted, price, found := history.AsOf(on)
			if !found {
				warnings = append(warnings, PriceGapWarning{Symbol: symbol, Date: on})
				gap = true
				continue
			}
			if on.Sub(quoted) > staleFillDays && !warnedStale[symbol] {
				warnings = append(warnings, PriceGapWarning{Symbol: symbol, Date: on, Filled: true})
				warnedStale[symbol] = true
			}
			value = value.Add(quantity.Mul(decimal.NewFromFloat(price)))
			held++
		}
		if gap {
			continue
		}
		points = append(points, ValuationPoint{Date: on, Value: value, Held: held})
	}
	return points, warnings, nil
}

// CashBasisValuations builds the degraded valuation series used when no
// symbol can be priced: the running sum of net cash invested, one point
// per trade date within the window. It marks holdings at cost, so gains
// only appear when realized.
func CashBasisValuations(trades []Trade, window date.Range) []ValuationPoint {
	ordered := make([]Trade, len(trades))
	copy(ordered, trades)
	SortTrades(ordered)

	var points []ValuationPoint
	var invested decimal.Decimal
	quantities := make(map[string]decimal.Decimal)
	for i, t := range ordered {
		invested = invested.Sub(t.CashFlow)
		quantities[t.Symbol] = quantities[t.Symbol].Add(t.Quantity)
		if i+1 < len(ordered) && ordered[i+1].Date == t.Date {
			continue // fold the whole day into one point
		}
		if !window.Contains(t.Date) {
			continue
		}
		held := 0
		for _, q := range quantities {
			if !q.IsZero() {
				held++
			}
		}
		points = append(points, ValuationPoint{Date: t.Date, Value: invested, Held: held})
	}
	return points
}

// ValuationDates returns the dates of the series, in order.
func ValuationDates(points []ValuationPoint) []date.Date {
	dates := make([]date.Date, len(points))
	for i, p := range points {
		dates[i] = p.Date
	}
	return dates
}
