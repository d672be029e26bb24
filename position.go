package tradegains

import (
	"github.com/shopspring/decimal"
)

// Position is the net holding of one symbol after folding all its trades.
// AvgCost is the weighted-average acquisition price: buys reweight it,
// sells never touch it.
type Position struct {
	Symbol   string
	Quantity decimal.Decimal
	AvgCost  decimal.Decimal
}

// CostBasis returns the remaining invested amount, Quantity times AvgCost.
func (p *Position) CostBasis() decimal.Decimal { return p.Quantity.Mul(p.AvgCost) }

// Open reports whether the position still holds a nonzero quantity.
func (p *Position) Open() bool { return !p.Quantity.IsZero() }

// Aggregate folds trades chronologically into per-symbol positions and a
// dated series of cash flows. Trades on the same date are applied in input
// order. A sell that would drive a position negative returns a *DataError
// unless allowShort is set. Fully closed positions stay in the result with
// a zero quantity.
//
// The returned flows have one entry per date carrying at least one trade,
// amounts summed, dates strictly ascending.
func Aggregate(trades []Trade, allowShort bool) (map[string]*Position, []CashFlow, error) {
	ordered := make([]Trade, len(trades))
	copy(ordered, trades)
	SortTrades(ordered)

	positions := make(map[string]*Position)
	flows := make([]CashFlow, 0, len(ordered))
	for _, t := range ordered {
		pos, ok := positions[t.Symbol]
		if !ok {
			pos = &Position{Symbol: t.Symbol}
			positions[t.Symbol] = pos
		}
		newQty := pos.Quantity.Add(t.Quantity)
		switch {
		case t.Quantity.IsPositive():
			if newQty.IsZero() {
				// A buy that exactly covers a short leaves no holding to price.
				pos.AvgCost = decimal.Zero
			} else {
				invested := pos.Quantity.Mul(pos.AvgCost).Add(t.Quantity.Mul(t.Price))
				pos.AvgCost = invested.Div(newQty)
			}
		case newQty.IsNegative() && !allowShort:
			return nil, nil, &DataError{
				Op:     "aggregate",
				Symbol: t.Symbol,
				Date:   t.Date,
				Msg:    "sell exceeds held quantity",
			}
		}
		pos.Quantity = newQty
		flows = append(flows, CashFlow{Date: t.Date, Amount: t.CashFlow})
	}
	return positions, MergeFlows(flows), nil
}
