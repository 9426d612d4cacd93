package cmd

import (
	"context"
	"flag"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/etnz/ticker"
	"github.com/google/subcommands"
)

// withRegion points the global flags to a fresh region file and a fake quote
// service answering 42.5 for SBER.
func withRegion(t *testing.T) string {
	t.Helper()
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/SBER.json" {
			http.NotFound(w, r)
			return
		}
		w.Write([]byte(`{"marketdata": {"columns": ["SECID", "BOARDID", "LAST"], "data": [["SBER", "TQBR", 42.5]]}}`))
	}))
	t.Cleanup(srv.Close)

	path := filepath.Join(t.TempDir(), "ticker.eeprom")
	oldRegion, oldURL := *regionFile, *moexURL
	*regionFile, *moexURL = path, srv.URL
	t.Cleanup(func() { *regionFile, *moexURL = oldRegion, oldURL })
	return path
}

// execute runs c as the commander would, with args on its own flag set.
func execute(t *testing.T, c subcommands.Command, args ...string) subcommands.ExitStatus {
	t.Helper()
	f := flag.NewFlagSet(c.Name(), flag.ContinueOnError)
	c.SetFlags(f)
	if err := f.Parse(args); err != nil {
		t.Fatalf("%s: invalid args %v: %v", c.Name(), args, err)
	}
	return c.Execute(context.Background(), f)
}

func load(t *testing.T, path string) ([]ticker.Record, ticker.Settings) {
	t.Helper()
	b, err := ticker.FileRegion(path).ReadRegion()
	if err != nil {
		t.Fatal(err)
	}
	return ticker.Decode(b)
}

func TestCommands(t *testing.T) {
	path := withRegion(t)

	steps := []struct {
		name string
		cmd  subcommands.Command
		args []string
		want subcommands.ExitStatus
	}{
		{"add sber", &addCmd{}, []string{"-buy", "sber", "250"}, subcommands.ExitSuccess},
		{"add gazp", &addCmd{}, []string{"GAZP", "150.5"}, subcommands.ExitSuccess},
		{"add duplicate", &addCmd{}, []string{"SBER", "1"}, subcommands.ExitFailure},
		{"add invalid symbol", &addCmd{}, []string{"TOOLONG", "1"}, subcommands.ExitFailure},
		{"add missing threshold", &addCmd{}, []string{"VTBR"}, subcommands.ExitUsageError},
		{"add nan threshold", &addCmd{}, []string{"VTBR", "NaN"}, subcommands.ExitUsageError},
		{"update sber", &updateCmd{}, []string{"SBER", "40"}, subcommands.ExitSuccess},
		{"update absent", &updateCmd{}, []string{"VTBR", "40"}, subcommands.ExitFailure},
		{"remove gazp", &removeCmd{}, []string{"gazp"}, subcommands.ExitSuccess},
		{"remove absent", &removeCmd{}, []string{"GAZP"}, subcommands.ExitFailure},
		{"settings", &settingsCmd{}, []string{"-update-minutes", "5"}, subcommands.ExitSuccess},
		{"settings too short", &settingsCmd{}, []string{"-display-seconds", "0"}, subcommands.ExitFailure},
		{"settings too long", &settingsCmd{}, []string{"-update-minutes", "40000"}, subcommands.ExitFailure},
		{"settings overflow", &settingsCmd{}, []string{"-update-minutes", "2000000000"}, subcommands.ExitFailure},
	}
	for _, step := range steps {
		if got := execute(t, step.cmd, step.args...); got != step.want {
			t.Errorf("%s: Execute() = %v, want %v", step.name, got, step.want)
		}
	}

	records, settings := load(t, path)
	want := []ticker.Record{{Symbol: "SBER", Threshold: 40, IsBuySignal: false}}
	if len(records) != len(want) || records[0] != want[0] {
		t.Errorf("records = %v, want %v", records, want)
	}
	if got, want := settings, (ticker.Settings{UpdateInterval: 5 * time.Minute, DisplayInterval: ticker.DefaultDisplayInterval}); got != want {
		t.Errorf("settings = %v, want %v", got, want)
	}

	reports := []struct {
		cmd  subcommands.Command
		args []string
	}{
		{&listCmd{}, []string{"-raw", "-refresh"}},
		{&showCmd{}, nil},
		{&dumpCmd{}, nil},
		{&topicCmd{}, []string{"-raw", "*"}},
	}
	for _, r := range reports {
		if got := execute(t, r.cmd, r.args...); got != subcommands.ExitSuccess {
			t.Errorf("%s: Execute() = %v, want success", r.cmd.Name(), got)
		}
	}

	if got := execute(t, &clearCmd{}); got != subcommands.ExitSuccess {
		t.Errorf("clear: Execute() = %v, want success", got)
	}
	records, settings = load(t, path)
	if len(records) != 0 || settings != ticker.DefaultSettings() {
		t.Errorf("after clear: %v %v, want empty and default settings", records, settings)
	}
}

func TestOpenBoard_MissingFile(t *testing.T) {
	path := withRegion(t)
	board, err := OpenBoard(nil)
	if err != nil {
		t.Fatalf("OpenBoard() error = %v", err)
	}
	if got := board.Len(); got != 0 {
		t.Errorf("Len() = %d, want 0", got)
	}
	if _, err := os.Stat(path); err == nil {
		t.Errorf("OpenBoard() created %q, want no write before a mutation", path)
	}
}

func TestEnv(t *testing.T) {
	t.Setenv(EnvCurrency, "EUR")
	if got := env(EnvCurrency, "RUB"); got != "EUR" {
		t.Errorf("env() = %q, want EUR", got)
	}
	t.Setenv(EnvCurrency, "")
	if got := env(EnvCurrency, "RUB"); got != "RUB" {
		t.Errorf("env() = %q, want RUB", got)
	}
	t.Setenv(EnvVerbose, "true")
	if !envBool(EnvVerbose) {
		t.Errorf("envBool(%q) = false, want true", EnvVerbose)
	}
}
