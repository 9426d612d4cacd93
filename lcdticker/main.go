// Command lcdticker runs and manages a two-row stock ticker.
package main

import (
	"context"
	"flag"
	"os"
	"path"

	"github.com/etnz/ticker/cmd"
	"github.com/google/subcommands"
	"github.com/posener/complete/v2"
	"github.com/posener/complete/v2/predict"
)

func main() {
	completion().Complete("lcdticker")

	commander := subcommands.NewCommander(flag.CommandLine, path.Base(os.Args[0]))
	commander.Register(commander.HelpCommand(), "")
	commander.Register(commander.FlagsCommand(), "")
	commander.Register(commander.CommandsCommand(), "")
	cmd.Register(commander)

	flag.Parse()
	os.Exit(int(commander.Execute(context.Background())))
}

// completion describes the command line for shell completion. It is only
// active when the shell calls the binary with COMP_LINE set.
func completion() *complete.Command {
	root := &complete.Command{
		Sub: map[string]*complete.Command{},
		Flags: map[string]complete.Predictor{
			"region-file": predict.Files("*"),
			"moex-url":    predict.Something,
			"currency":    predict.Set{"RUB", "USD", "EUR"},
			"v":           predict.Nothing,
		},
	}
	for _, c := range cmd.Commands() {
		f := flag.NewFlagSet(c.Name(), flag.ContinueOnError)
		c.SetFlags(f)
		sub := &complete.Command{Flags: map[string]complete.Predictor{}}
		f.VisitAll(func(fl *flag.Flag) {
			if b, ok := fl.Value.(interface{ IsBoolFlag() bool }); ok && b.IsBoolFlag() {
				sub.Flags[fl.Name] = predict.Nothing
				return
			}
			sub.Flags[fl.Name] = predict.Something
		})
		root.Sub[c.Name()] = sub
	}
	return root
}
