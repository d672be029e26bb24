// Package yahoo provides daily close prices from the Yahoo Finance chart
// API.
package yahoo

import (
	"fmt"
	"time"

	"github.com/piquette/finance-go/chart"
	"github.com/piquette/finance-go/datetime"

	"tradegains"
	"tradegains/date"
)

// cryptoTickers maps the bare pairs Webull reports to the dashed tickers
// Yahoo quotes them under.
var cryptoTickers = map[string]string{
	"BTCUSD":  "BTC-USD",
	"ETHUSD":  "ETH-USD",
	"SHIBUSD": "SHIB-USD",
	"DOGEUSD": "DOGE-USD",
}

// Source fetches daily closes from Yahoo Finance, remembering each
// symbol's series for the duration of the run.
type Source struct {
	cache map[string]*date.History[float64]
}

var _ tradegains.PriceSource = (*Source)(nil)

func New() *Source {
	return &Source{cache: make(map[string]*date.History[float64])}
}

// Prices returns the daily close history for symbol over r. Option symbols
// and symbols Yahoo has no bars for yield an empty history.
func (s *Source) Prices(symbol string, r date.Range) (*date.History[float64], error) {
	if h, ok := s.cache[symbol]; ok {
		return h, nil
	}
	h := &date.History[float64]{}
	if !tradegains.Unpriceable(symbol) {
		ticker := yahooTicker(symbol)
		start := r.From.Time()
		// The chart API treats the end bound as exclusive.
		end := r.To.Add(1).Time()
		iter := chart.Get(&chart.Params{
			Symbol:   ticker,
			Start:    datetime.New(&start),
			End:      datetime.New(&end),
			Interval: datetime.OneDay,
		})
		for iter.Next() {
			bar := iter.Bar()
			day := date.FromTime(time.Unix(int64(bar.Timestamp), 0).UTC())
			h.Append(day, bar.Close.InexactFloat64())
		}
		if err := iter.Err(); err != nil {
			return nil, fmt.Errorf("yahoo history for %q: %w", ticker, err)
		}
	}
	s.cache[symbol] = h
	return h, nil
}

// yahooTicker translates a normalized Webull symbol to the ticker Yahoo
// quotes it under.
func yahooTicker(symbol string) string {
	if mapped, ok := cryptoTickers[symbol]; ok {
		return mapped
	}
	return symbol
}
