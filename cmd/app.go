// Package cmd implements the CLI application analyzing brokerage trade
// exports.
package cmd

import (
	"errors"
	"flag"
	"fmt"
	"io/fs"
	"sync"

	"github.com/google/subcommands"
	"go.uber.org/zap"

	"tradegains"
	"tradegains/config"
	"tradegains/eodhd"
	"tradegains/webull"
	"tradegains/yahoo"
)

// Register registers every subcommand on the commander. A main package
// calls Register() and then Execute() on the user-selected one.
func Register(c *subcommands.Commander) {
	c.Register(c.HelpCommand(), "")
	c.Register(c.FlagsCommand(), "")
	c.Register(c.CommandsCommand(), "")

	c.Register(&analyzeCmd{}, "analysis")
	c.Register(&holdingsCmd{}, "analysis")
	c.Register(&flowsCmd{}, "analysis")

	c.Register(&topicCmd{}, "documentation")
	c.Register(&assistCmd{}, "assistant")
}

// as a CLI application it is short lived, so global flags are fine.

var configPath = flag.String("config", "tradegains.yaml", "Path to the configuration file")

// loadConfig reads the -config file. A missing file yields the default
// configuration, so the tool runs without any setup.
func loadConfig() (*config.Config, error) {
	cfg, err := config.Load(*configPath)
	if err != nil && errors.Is(err, fs.ErrNotExist) {
		return config.Default(), nil
	}
	return cfg, err
}

var registerOnce sync.Once

// registerSources wires the known price sources with their configured
// credentials. The registry panics on duplicates, so this runs once per
// process no matter how many commands execute.
func registerSources(cfg *config.Config) {
	registerOnce.Do(func() {
		tradegains.RegisterSource("yahoo", func() (tradegains.PriceSource, error) {
			return yahoo.New(), nil
		})
		key := cfg.EODHDKey()
		tradegains.RegisterSource("eodhd", func() (tradegains.PriceSource, error) {
			if key == "" {
				return nil, fmt.Errorf("eodhd needs an API key: set eodhd.api_key or EODHD_API_KEY")
			}
			return eodhd.New(key), nil
		})
	})
}

// runAnalysis executes the whole pipeline the configuration describes:
// load exports, resolve price sources, analyze.
func runAnalysis(cfg *config.Config, logger *zap.SugaredLogger) (*tradegains.Analysis, error) {
	registerSources(cfg)

	trades, err := webull.LoadOrders(cfg.Trades.Folder, cfg.Trades.Patterns)
	if err != nil {
		return nil, err
	}
	logger.Infow("orders loaded", "trades", len(trades), "symbols", len(tradegains.Symbols(trades)))

	var transfers []tradegains.CashFlow
	if cfg.Transfers.Enabled() {
		transfers, err = webull.LoadTransfers(cfg.Transfers.Folder, cfg.Transfers.Patterns)
		if err != nil {
			return nil, err
		}
		logger.Infow("transfers loaded", "flows", len(transfers))
	}

	prices, err := tradegains.NewSource(cfg.Provider)
	if err != nil {
		return nil, err
	}
	var benchmarkPrices tradegains.PriceSource
	if name := cfg.BenchmarkProvider(); name != cfg.Provider {
		if benchmarkPrices, err = tradegains.NewSource(name); err != nil {
			return nil, err
		}
	}

	window, err := cfg.Window()
	if err != nil {
		return nil, err
	}

	a, err := tradegains.Analyze(tradegains.Request{
		Trades:          trades,
		Transfers:       transfers,
		Prices:          prices,
		Benchmark:       cfg.Benchmark.Symbol,
		BenchmarkPrices: benchmarkPrices,
		Window:          window,
		Methods:         cfg.Methods(),
		AllowShort:      cfg.Analysis.AllowShortSelling,
		IRR:             cfg.IRRParams(),
	})
	if err != nil {
		return nil, err
	}

	for _, w := range a.Warnings {
		logger.Warnw("price gap", "symbol", w.Symbol, "detail", w.String())
	}
	if a.TWRErr != nil {
		logger.Warnw("time-weighted return failed", "error", a.TWRErr)
	}
	if a.MWRErr != nil {
		logger.Warnw("money-weighted return failed", "error", a.MWRErr)
	}
	if a.RiskErr != nil {
		logger.Warnw("risk metrics failed", "error", a.RiskErr)
	}
	if a.BenchmarkErr != nil {
		logger.Warnw("benchmark comparison failed", "error", a.BenchmarkErr)
	}
	return a, nil
}
