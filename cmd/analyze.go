package cmd

import (
	"context"
	"flag"
	"fmt"
	"os"
	"path/filepath"

	"github.com/google/subcommands"

	"tradegains/chart"
	"tradegains/config"
	"tradegains/logging"
	"tradegains/report"
)

// analyzeCmd holds the flags for the 'analyze' subcommand.
type analyzeCmd struct {
	start    string
	end      string
	method   string
	output   string
	noCharts bool
}

func (*analyzeCmd) Name() string     { return "analyze" }
func (*analyzeCmd) Synopsis() string { return "analyze the trade exports and write the report" }
func (*analyzeCmd) Usage() string {
	return `tg analyze [-start <date>] [-end <date>] [-method <method>] [-o <dir>]

  Load the configured Webull exports, value the portfolio day by day,
  compute returns against the benchmark and write the markdown report
  and charts to the output directory.
`
}

func (c *analyzeCmd) SetFlags(f *flag.FlagSet) {
	f.StringVar(&c.start, "start", "", "Analysis start date (YYYY-MM-DD). Overrides the configuration.")
	f.StringVar(&c.end, "end", "", "Analysis end date (YYYY-MM-DD). Overrides the configuration.")
	f.StringVar(&c.method, "method", "", "Return method: time_weighted, money_weighted or both. Overrides the configuration.")
	f.StringVar(&c.output, "o", "", "Output directory. Overrides the configuration.")
	f.BoolVar(&c.noCharts, "no-charts", false, "Skip chart rendering.")
}

// apply folds the command-line overrides into the configuration and
// re-validates it.
func (c *analyzeCmd) apply(cfg *config.Config) error {
	if c.start != "" {
		cfg.Analysis.Start = c.start
	}
	if c.end != "" {
		cfg.Analysis.End = c.end
	}
	if c.method != "" {
		cfg.Analysis.Method = c.method
	}
	if c.output != "" {
		cfg.Output.Dir = c.output
	}
	return cfg.Validate()
}

func (c *analyzeCmd) Execute(_ context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	cfg, err := loadConfig()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return subcommands.ExitUsageError
	}
	if err := c.apply(cfg); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return subcommands.ExitUsageError
	}

	logger, closeLog, err := logging.New(cfg.Logging.Level, cfg.Logging.File)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return subcommands.ExitUsageError
	}
	defer closeLog()

	a, err := runAnalysis(cfg, logger)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return subcommands.ExitFailure
	}

	md := report.Markdown(a)
	if err := os.MkdirAll(cfg.Output.Dir, 0755); err != nil {
		fmt.Fprintf(os.Stderr, "Error: creating output dir %q: %v\n", cfg.Output.Dir, err)
		return subcommands.ExitFailure
	}
	path := filepath.Join(cfg.Output.Dir, report.Filename)
	if err := os.WriteFile(path, []byte(md), 0644); err != nil {
		fmt.Fprintf(os.Stderr, "Error: writing report: %v\n", err)
		return subcommands.ExitFailure
	}
	logger.Infow("report written", "path", path)

	// Charts are best effort: a rendering failure never sinks a computed
	// analysis.
	if cfg.ChartsEnabled() && !c.noCharts {
		if paths, err := chart.WriteAll(cfg.Output.Dir, a); err != nil {
			logger.Warnw("chart rendering failed", "error", err)
		} else {
			logger.Infow("charts written", "paths", paths)
		}
	}

	printMarkdown(md)
	return subcommands.ExitSuccess
}
