package cmd

import (
	"context"
	"encoding/hex"
	"flag"
	"fmt"
	"os"

	"github.com/etnz/ticker"
	"github.com/google/subcommands"
)

type dumpCmd struct{}

func (*dumpCmd) Name() string     { return "dump" }
func (*dumpCmd) Synopsis() string { return "print a hex dump of the region file" }
func (*dumpCmd) Usage() string {
	return `lcdticker dump

Prints the persisted region as the device stores it: the record count, the
records, and both intervals at the end of the region.
`
}
func (*dumpCmd) SetFlags(*flag.FlagSet) {}

func (*dumpCmd) Execute(_ context.Context, _ *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	b, err := ticker.FileRegion(*regionFile).ReadRegion()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return subcommands.ExitFailure
	}
	fmt.Print(hex.Dump(b))
	return subcommands.ExitSuccess
}
