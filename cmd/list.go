package cmd

import (
	"context"
	"flag"
	"fmt"
	"os"

	"github.com/etnz/ticker/renderer"
	"github.com/google/subcommands"
)

type listCmd struct {
	raw     bool
	refresh bool
	width   int
}

func (*listCmd) Name() string     { return "list" }
func (*listCmd) Synopsis() string { return "display the watch list and the settings" }
func (*listCmd) Usage() string {
	return `lcdticker list [-raw] [-refresh] [-width N]

Displays the watch list as a markdown report. Prices are unknown unless
-refresh fetches them first.
`
}

func (c *listCmd) SetFlags(f *flag.FlagSet) {
	f.BoolVar(&c.raw, "raw", false, "Print the raw markdown instead of rendering it.")
	f.BoolVar(&c.refresh, "refresh", false, "Fetch every price before printing the report.")
	f.IntVar(&c.width, "width", 100, "Word wrap width of the rendered report.")
}

func (c *listCmd) Execute(ctx context.Context, _ *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	board, err := OpenBoard(nil)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: could not open board: %v\n", err)
		return subcommands.ExitFailure
	}
	if c.refresh {
		if err := board.RefreshAll(ctx); err != nil {
			fmt.Fprintf(os.Stderr, "Warning: %v\n", err)
		}
	}

	md := renderer.RenderWatchlist(renderer.NewWatchlist(board.Entries(), board.Settings(), *currency))
	if c.raw {
		fmt.Print(md)
		return subcommands.ExitSuccess
	}
	out, err := renderer.Terminal(md, c.width)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return subcommands.ExitFailure
	}
	fmt.Print(out)
	return subcommands.ExitSuccess
}
