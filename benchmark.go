package tradegains

import (
	"tradegains/date"
)

// ReturnPoint is a cumulative return at one grid date, in percent since
// the start of the series.
type ReturnPoint struct {
	Date   date.Date
	Return Percent
}

// CompareBenchmark projects a benchmark price history onto the portfolio's
// valuation grid. The curve is plain buy-and-hold, not flow-weighted:
// cumulative price change from the first grid date the benchmark covers.
// Grid dates preceding coverage are dropped and reported, mirroring the
// portfolio's own price-gap policy.
func CompareBenchmark(symbol string, prices *date.History[float64], grid []date.Date) ([]ReturnPoint, []PriceGapWarning) {
	var points []ReturnPoint
	var warnings []PriceGapWarning
	base := 0.0
	for _, on := range grid {
		price, ok := prices.ValueAsOf(on)
		if !ok || (base == 0 && price == 0) {
			warnings = append(warnings, PriceGapWarning{Symbol: symbol, Date: on})
			continue
		}
		if base == 0 {
			base = price
		}
		points = append(points, ReturnPoint{Date: on, Return: Percent(100 * (price - base) / base)})
	}
	return points, warnings
}
