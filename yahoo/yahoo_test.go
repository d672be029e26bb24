package yahoo

import (
	"testing"

	"github.com/stretchr/testify/require"

	"tradegains/date"
)

func TestYahooTicker(t *testing.T) {
	require.Equal(t, "BTC-USD", yahooTicker("BTCUSD"))
	require.Equal(t, "DOGE-USD", yahooTicker("DOGEUSD"))
	require.Equal(t, "AAPL", yahooTicker("AAPL"))
}

func TestPrices_optionSymbolSkipsFetch(t *testing.T) {
	// Option symbols have no Yahoo series. The source must answer with an
	// empty history without going to the network.
	s := New()
	window := date.NewRange(date.MustParse("2025-01-01"), date.MustParse("2025-02-01"))

	h, err := s.Prices("TSLA250613P00360000", window)
	require.NoError(t, err)
	require.Equal(t, 0, h.Len())
}
