package tradegains

import (
	"sort"

	"github.com/shopspring/decimal"

	"tradegains/date"
)

// CashFlow is money crossing the portfolio boundary on a given date,
// negative for money put in (buys, deposits) and positive for money taken
// out (sells, withdrawals). A flow series holds at most one entry per date,
// in ascending order.
type CashFlow struct {
	Date   date.Date
	Amount decimal.Decimal
}

// MergeFlows sums same-date entries and returns the series sorted by date.
func MergeFlows(flows []CashFlow) []CashFlow {
	byDate := make(map[date.Date]decimal.Decimal)
	for _, f := range flows {
		byDate[f.Date] = byDate[f.Date].Add(f.Amount)
	}
	merged := make([]CashFlow, 0, len(byDate))
	for on, amount := range byDate {
		merged = append(merged, CashFlow{Date: on, Amount: amount})
	}
	sort.Slice(merged, func(i, j int) bool { return merged[i].Date.Before(merged[j].Date) })
	return merged
}

// FlowDates returns the dates of the series, in order.
func FlowDates(flows []CashFlow) []date.Date {
	dates := make([]date.Date, len(flows))
	for i, f := range flows {
		dates[i] = f.Date
	}
	return dates
}

// SumFlows returns the total of all amounts in the series.
func SumFlows(flows []CashFlow) decimal.Decimal {
	var total decimal.Decimal
	for _, f := range flows {
		total = total.Add(f.Amount)
	}
	return total
}

// ClipFlows returns the entries falling within r, boundaries included.
func ClipFlows(flows []CashFlow, r date.Range) []CashFlow {
	clipped := make([]CashFlow, 0, len(flows))
	for _, f := range flows {
		if r.Contains(f.Date) {
			clipped = append(clipped, f)
		}
	}
	return clipped
}
