// Command tg turns Webull trade exports into a performance report:
// positions, a daily valuation series, time- and money-weighted returns
// and a benchmark comparison.
package main

import (
	"context"
	"flag"
	"os"
	"path"

	"github.com/google/subcommands"
	"github.com/posener/complete/v2"
	"github.com/posener/complete/v2/predict"

	"tradegains/cmd"
)

// completion describes the command tree for the shell. When the shell asks
// for completions the process answers and exits, so this runs before any
// flag parsing.
func completion() {
	tg := &complete.Command{
		Flags: map[string]complete.Predictor{
			"config": predict.Files("*.yaml"),
		},
		Sub: map[string]*complete.Command{
			"analyze": {
				Flags: map[string]complete.Predictor{
					"start":     predict.Something,
					"end":       predict.Something,
					"method":    predict.Set{"time_weighted", "money_weighted", "both"},
					"o":         predict.Dirs("*"),
					"no-charts": predict.Nothing,
				},
			},
			"holdings": {},
			"flows":    {},
			"topic": {
				Args: predict.Set{"readme", "returns", "webull", "config", "charts", "*"},
			},
			"assist":   {},
			"help":     {},
			"flags":    {},
			"commands": {},
		},
	}
	tg.Complete("tg")
}

func main() {
	completion()

	commander := subcommands.NewCommander(flag.CommandLine, path.Base(os.Args[0]))
	cmd.Register(commander)

	flag.Parse()
	os.Exit(int(commander.Execute(context.Background())))
}
