package cmd

import (
	"context"
	"flag"
	"fmt"
	"io"
	"log"
	"os"

	"github.com/etnz/ticker"
	"github.com/google/subcommands"
)

type showCmd struct{}

func (*showCmd) Name() string     { return "show" }
func (*showCmd) Synopsis() string { return "refresh every price once and print the display" }
func (*showCmd) Usage() string {
	return `lcdticker show

Runs a single refresh cycle and prints the two rows the display would show.
`
}
func (*showCmd) SetFlags(*flag.FlagSet) {}

func (*showCmd) Execute(ctx context.Context, _ *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	console := ticker.NewConsole(io.Discard)
	board, err := OpenBoard(console)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: could not open board: %v\n", err)
		return subcommands.ExitFailure
	}
	if err := board.RefreshAll(ctx); err != nil {
		log.Printf("refresh: %v", err)
	}
	fmt.Print(console.String())
	return subcommands.ExitSuccess
}
