package cmd

import (
	"context"
	"flag"
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/etnz/ticker"
	"github.com/google/subcommands"
)

// parseRecord reads the SYMBOL THRESHOLD positional arguments.
func parseRecord(f *flag.FlagSet) (symbol string, threshold float32, err error) {
	if f.NArg() != 2 {
		return "", 0, fmt.Errorf("expected SYMBOL THRESHOLD, got %d argument(s)", f.NArg())
	}
	symbol = strings.ToUpper(strings.TrimSpace(f.Arg(0)))
	t, err := strconv.ParseFloat(f.Arg(1), 32)
	if err != nil {
		return "", 0, fmt.Errorf("invalid threshold %q: %w", f.Arg(1), err)
	}
	if err := ticker.ValidateThreshold(float32(t)); err != nil {
		return "", 0, err
	}
	return symbol, float32(t), nil
}

type addCmd struct {
	buy bool
}

func (*addCmd) Name() string     { return "add" }
func (*addCmd) Synopsis() string { return "add a ticker to the watch list" }
func (*addCmd) Usage() string {
	return `lcdticker add [-buy] <SYMBOL> <THRESHOLD>

Appends a ticker to the watch list. SYMBOL is 1 to 4 uppercase letters or
digits. With -buy, the display marks the ticker with a star when its price
falls below THRESHOLD.
`
}

func (c *addCmd) SetFlags(f *flag.FlagSet) {
	f.BoolVar(&c.buy, "buy", false, "Signal a buying opportunity below the threshold instead of a sell signal.")
}

func (c *addCmd) Execute(_ context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	symbol, threshold, err := parseRecord(f)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return subcommands.ExitUsageError
	}
	board, err := OpenBoard(nil)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: could not open board: %v\n", err)
		return subcommands.ExitFailure
	}
	if err := board.Add(symbol, threshold, c.buy); err != nil {
		fmt.Fprintf(os.Stderr, "Error: cannot add %q: %v\n", symbol, err)
		return subcommands.ExitFailure
	}
	fmt.Printf("Added %s to %s\n", symbol, *regionFile)
	return subcommands.ExitSuccess
}

type removeCmd struct{}

func (*removeCmd) Name() string     { return "remove" }
func (*removeCmd) Synopsis() string { return "remove a ticker from the watch list" }
func (*removeCmd) Usage() string {
	return `lcdticker remove <SYMBOL>
`
}
func (*removeCmd) SetFlags(*flag.FlagSet) {}

func (*removeCmd) Execute(_ context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	if f.NArg() != 1 {
		fmt.Fprintln(os.Stderr, "Error: expected exactly one SYMBOL")
		return subcommands.ExitUsageError
	}
	symbol := strings.ToUpper(strings.TrimSpace(f.Arg(0)))
	board, err := OpenBoard(nil)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: could not open board: %v\n", err)
		return subcommands.ExitFailure
	}
	if err := board.Remove(symbol); err != nil {
		fmt.Fprintf(os.Stderr, "Error: cannot remove %q: %v\n", symbol, err)
		return subcommands.ExitFailure
	}
	fmt.Printf("Removed %s from %s\n", symbol, *regionFile)
	return subcommands.ExitSuccess
}

type updateCmd struct {
	buy bool
}

func (*updateCmd) Name() string     { return "update" }
func (*updateCmd) Synopsis() string { return "change the threshold and signal of a ticker" }
func (*updateCmd) Usage() string {
	return `lcdticker update [-buy] <SYMBOL> <THRESHOLD>

Replaces the threshold and the signal direction of an existing ticker, then
fetches its price once.
`
}

func (c *updateCmd) SetFlags(f *flag.FlagSet) {
	f.BoolVar(&c.buy, "buy", false, "Signal a buying opportunity below the threshold instead of a sell signal.")
}

func (c *updateCmd) Execute(ctx context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	symbol, threshold, err := parseRecord(f)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return subcommands.ExitUsageError
	}
	board, err := OpenBoard(nil)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: could not open board: %v\n", err)
		return subcommands.ExitFailure
	}
	if err := board.Update(ctx, symbol, threshold, c.buy); err != nil {
		fmt.Fprintf(os.Stderr, "Error: cannot update %q: %v\n", symbol, err)
		return subcommands.ExitFailure
	}
	for _, e := range board.Entries() {
		if e.Symbol == symbol {
			fmt.Printf("Updated %s: price %q (%s)\n", symbol, e.Price, e.Status)
		}
	}
	return subcommands.ExitSuccess
}

type settingsCmd struct {
	updateMinutes  int
	displaySeconds int
}

func (*settingsCmd) Name() string     { return "settings" }
func (*settingsCmd) Synopsis() string { return "change the refresh and rotation intervals" }
func (*settingsCmd) Usage() string {
	return `lcdticker settings [-update-minutes N] [-display-seconds N]

Changes both intervals at once. A flag left out keeps its current value.
The refresh interval is at least 1 minute and the rotation interval at least
1 second; an invalid value rejects the whole change.
`
}

func (c *settingsCmd) SetFlags(f *flag.FlagSet) {
	f.IntVar(&c.updateMinutes, "update-minutes", 0, "Price refresh interval in minutes.")
	f.IntVar(&c.displaySeconds, "display-seconds", 0, "Display rotation interval in seconds.")
}

func (c *settingsCmd) Execute(_ context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	board, err := OpenBoard(nil)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: could not open board: %v\n", err)
		return subcommands.ExitFailure
	}
	s := board.Settings()
	set := make(map[string]bool)
	f.Visit(func(fl *flag.Flag) { set[fl.Name] = true })
	if set["update-minutes"] {
		if s.UpdateInterval, err = ticker.Interval(int64(c.updateMinutes), time.Minute); err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			return subcommands.ExitFailure
		}
	}
	if set["display-seconds"] {
		if s.DisplayInterval, err = ticker.Interval(int64(c.displaySeconds), time.Second); err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			return subcommands.ExitFailure
		}
	}
	if err := board.SetIntervals(s.UpdateInterval, s.DisplayInterval); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return subcommands.ExitFailure
	}
	fmt.Printf("Refresh every %v, rotate every %v\n", s.UpdateInterval, s.DisplayInterval)
	return subcommands.ExitSuccess
}

type clearCmd struct{}

func (*clearCmd) Name() string     { return "clear" }
func (*clearCmd) Synopsis() string { return "remove all tickers and restore default settings" }
func (*clearCmd) Usage() string {
	return `lcdticker clear
`
}
func (*clearCmd) SetFlags(*flag.FlagSet) {}

func (*clearCmd) Execute(_ context.Context, _ *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	board, err := OpenBoard(nil)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: could not open board: %v\n", err)
		return subcommands.ExitFailure
	}
	if err := board.Clear(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return subcommands.ExitFailure
	}
	fmt.Printf("Cleared %s\n", *regionFile)
	return subcommands.ExitSuccess
}
