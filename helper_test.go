package tradegains

import (
	"github.com/shopspring/decimal"

	"tradegains/date"
)

// day is a shorthand for date literals in tests.
func day(s string) date.Date { return date.MustParse(s) }

// dec builds a decimal from a float constant.
func dec(v float64) decimal.Decimal { return decimal.NewFromFloat(v) }

// buy and sell build normalized fee-free trades.
func buy(on, symbol string, qty, price float64) Trade {
	return NormalizeTrade(day(on), symbol, "Buy", dec(qty), dec(price), decimal.Zero)
}

func sell(on, symbol string, qty, price float64) Trade {
	return NormalizeTrade(day(on), symbol, "Sell", dec(qty), dec(price), decimal.Zero)
}

// flow builds a cash-flow entry, account-signed.
func flow(on string, amount float64) CashFlow {
	return CashFlow{Date: day(on), Amount: dec(amount)}
}

// point builds a valuation point with open positions.
func point(on string, value float64, held int) ValuationPoint {
	return ValuationPoint{Date: day(on), Value: dec(value), Held: held}
}

// stubSource serves prices from fixed in-memory histories and counts the
// calls per symbol, so tests can assert on batching.
type stubSource struct {
	histories map[string]*date.History[float64]
	calls     map[string]int
	err       error
}

func newStubSource() *stubSource {
	return &stubSource{
		histories: make(map[string]*date.History[float64]),
		calls:     make(map[string]int),
	}
}

func (s *stubSource) set(symbol string, prices map[string]float64) *stubSource {
	h := &date.History[float64]{}
	for on, p := range prices {
		h.Append(date.MustParse(on), p)
	}
	s.histories[symbol] = h
	return s
}

func (s *stubSource) Prices(symbol string, r date.Range) (*date.History[float64], error) {
	s.calls[symbol]++
	if s.err != nil {
		return nil, s.err
	}
	h, ok := s.histories[symbol]
	if !ok {
		return &date.History[float64]{}, nil
	}
	return h, nil
}
