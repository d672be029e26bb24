// Package eodhd provides daily close prices from the EODHD API.
package eodhd

import (
	"fmt"

	"tradegains"
	"tradegains/date"
)

// baseURL is the EODHD endpoint, a variable so tests can point the source
// at a local server.
var baseURL = "https://eodhd.com"

// cryptoTickers maps the bare pairs Webull reports to EODHD's crypto
// exchange tickers.
var cryptoTickers = map[string]string{
	"BTCUSD":  "BTC-USD.CC",
	"ETHUSD":  "ETH-USD.CC",
	"SHIBUSD": "SHIB-USD.CC",
	"DOGEUSD": "DOGE-USD.CC",
}

// Source fetches daily closes from EODHD, remembering each symbol's series
// for the duration of the run. Raw HTTP responses are additionally cached
// on disk with a daily expiry, so repeated runs on the same day stay
// offline.
type Source struct {
	key   string
	cache map[string]*date.History[float64]
}

var _ tradegains.PriceSource = (*Source)(nil)

func New(apiKey string) *Source {
	return &Source{key: apiKey, cache: make(map[string]*date.History[float64])}
}

// Prices returns the daily close history for symbol over r. Option symbols
// yield an empty history without a fetch.
func (s *Source) Prices(symbol string, r date.Range) (*date.History[float64], error) {
	if h, ok := s.cache[symbol]; ok {
		return h, nil
	}
	h := &date.History[float64]{}
	if !tradegains.Unpriceable(symbol) {
		if err := fetchDaily(s.key, eodhdTicker(symbol), r, h); err != nil {
			return nil, err
		}
	}
	s.cache[symbol] = h
	return h, nil
}

// fetchDaily fills h with the end-of-day closes for an EODHD ticker. The
// ticker format is "SYMBOL.EXCHANGECODE"; bounds are included in the
// response.
func fetchDaily(apiKey, ticker string, r date.Range, h *date.History[float64]) error {
	// https://eodhd.com/api/eod/MCD.US?api_token=demo&fmt=json
	// [
	//	{
	//		"date": "2024-02-13",
	//		"open": 675.066,
	//		"high": 684.219,
	//		"low": 648.659,
	//		"close": 668.445,
	//		"adjusted_close": 67.705,
	//		"volume": 0
	//	  },
	addr := fmt.Sprintf("%s/api/eod/%s?fmt=json&api_token=%s&from=%s&to=%s", baseURL, ticker, apiKey, r.From, r.To)
	type info struct {
		Date  date.Date `json:"date"`
		Close float64   `json:"close"`
	}
	content := make([]info, 0)
	// query that endpoint at most once a day
	if err := jwget(newDailyCachingClient(), addr, &content); err != nil {
		return fmt.Errorf("eodhd history for %q: %w", ticker, err)
	}
	for _, i := range content {
		h.Append(i.Date, i.Close)
	}
	return nil
}

// eodhdTicker translates a normalized Webull symbol to an EODHD ticker.
// Equities trade on the virtual US exchange, crypto pairs on CC.
func eodhdTicker(symbol string) string {
	if mapped, ok := cryptoTickers[symbol]; ok {
		return mapped
	}
	return symbol + ".US"
}
