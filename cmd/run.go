package cmd

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/etnz/ticker"
	"github.com/etnz/ticker/web"
	"github.com/gin-gonic/gin"
	"github.com/google/subcommands"
)

type runCmd struct {
	addr string
}

func (*runCmd) Name() string     { return "run" }
func (*runCmd) Synopsis() string { return "run the ticker: display, refresh cycle and web setup page" }
func (*runCmd) Usage() string {
	return `lcdticker run [-addr <host:port>]

Opens the board from the region file and runs it until interrupted:
  - the two display rows are printed on the terminal every time they change,
  - prices are refreshed every update interval,
  - rows rotate every display interval,
  - the setup page is served on -addr.
`
}

func (c *runCmd) SetFlags(f *flag.FlagSet) {
	f.StringVar(&c.addr, "addr", env(EnvAddr, ":8080"), "Address of the web setup page.")
}

func (c *runCmd) Execute(ctx context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	board, err := OpenBoard(ticker.NewConsole(os.Stdout))
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: could not open board: %v\n", err)
		return subcommands.ExitFailure
	}

	ctx, stop := signal.NotifyContext(ctx, os.Interrupt, syscall.SIGTERM)
	defer stop()

	scheduler := ticker.NewScheduler(board)
	if !*Verbose {
		gin.SetMode(gin.ReleaseMode)
	}
	srv := &http.Server{
		Addr:    c.addr,
		Handler: web.NewRouter(web.NewHandler(board, scheduler), *Verbose),
	}

	errc := make(chan error, 1)
	go func() {
		log.Printf("setup page listening on %s", c.addr)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errc <- err
			stop()
		}
	}()

	scheduler.Run(ctx)

	shutdown, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdown); err != nil {
		log.Printf("web server shutdown: %v", err)
	}

	select {
	case err := <-errc:
		fmt.Fprintf(os.Stderr, "Error: web server: %v\n", err)
		return subcommands.ExitFailure
	default:
	}
	return subcommands.ExitSuccess
}
