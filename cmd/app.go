// Package cmd implements the CLI application to run and manage a stock ticker.
package cmd

import (
	"errors"
	"flag"
	"io/fs"
	"log"
	"os"
	"strconv"

	"github.com/etnz/ticker"
	"github.com/etnz/ticker/moex"
	"github.com/google/subcommands"
)

// Register the subcommands.
// A main package will call Register() to allow subcommands, and Execute() on the user-selected one.
func Register(c *subcommands.Commander) {
	c.Register(&runCmd{}, "device")
	c.Register(&showCmd{}, "device")
	c.Register(&dumpCmd{}, "device")

	c.Register(&addCmd{}, "watch list")
	c.Register(&removeCmd{}, "watch list")
	c.Register(&updateCmd{}, "watch list")
	c.Register(&settingsCmd{}, "watch list")
	c.Register(&clearCmd{}, "watch list")
	c.Register(&listCmd{}, "watch list")

	c.Register(&topicCmd{}, "help")
}

// Commands lists every subcommand, in registration order.
func Commands() []subcommands.Command {
	return []subcommands.Command{
		&runCmd{}, &showCmd{}, &dumpCmd{},
		&addCmd{}, &removeCmd{}, &updateCmd{}, &settingsCmd{}, &clearCmd{}, &listCmd{},
		&topicCmd{},
	}
}

const (
	EnvRegionFile = "TICKER_REGION_FILE"
	EnvMoexURL    = "TICKER_MOEX_URL"
	EnvCurrency   = "TICKER_CURRENCY"
	EnvAddr       = "TICKER_ADDR"
	EnvVerbose    = "TICKER_VERBOSE"
)

// as a CLI application, it has a very short lived lifecycle, so it is ok to use global variables.

var regionFile = flag.String("region-file", env(EnvRegionFile, "ticker.eeprom"), "Path to the persisted region image (1024 bytes)")
var moexURL = flag.String("moex-url", env(EnvMoexURL, moex.DefaultBaseURL), "Base URL of the quote service")
var currency = flag.String("currency", env(EnvCurrency, "RUB"), "Currency of thresholds and prices in reports")
var Verbose = flag.Bool("v", envBool(EnvVerbose), "Log every quote request and web request")

func env(key, fallback string) string {
	if v, ok := os.LookupEnv(key); ok && v != "" {
		return v
	}
	return fallback
}

func envBool(key string) bool {
	v, err := strconv.ParseBool(os.Getenv(key))
	return err == nil && v
}

// newFetcher returns the quote client configured by the global flags.
func newFetcher() *moex.Client {
	return &moex.Client{BaseURL: *moexURL, Verbose: *Verbose}
}

// OpenBoard is the central function to open the ticker board from the region file.
//
// A missing region file opens an empty board with default settings.
func OpenBoard(display ticker.Display) (*ticker.Board, error) {
	region := ticker.FileRegion(*regionFile)
	if _, err := os.Stat(*regionFile); errors.Is(err, fs.ErrNotExist) {
		log.Printf("warning, region file %q does not exist, starting from a blank region", *regionFile)
	}
	return ticker.Open(region, newFetcher(), display)
}
