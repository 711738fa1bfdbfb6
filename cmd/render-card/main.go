package main

import (
	"context"
	"flag"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/okian/pitchcard/internal/rendercard"
	"github.com/okian/pitchcard/pkg/logger"
)

// defaultTimeout bounds one render including all provider calls.
const defaultTimeout = 5 * time.Minute

func main() {
	var (
		pitcher = flag.Int("pitcher", 0, "MLBAM id of the pitcher")
		start   = flag.String("start", "", "First game date YYYY-MM-DD (default: season start)")
		end     = flag.String("end", "", "Last game date YYYY-MM-DD (default: season end)")
		out     = flag.String("out", "", "Output file, - for stdout (default: pitcher_ID_card.FORMAT)")
		format  = flag.String("format", rendercard.FormatSVG, "Output format: svg or json")
		help    = flag.Bool("help", false, "Show help")
	)
	flag.Parse()

	if *help {
		rendercard.ShowHelp(os.Stdout)
		return
	}

	if err := logger.InitWithWriter(os.Stderr); err != nil {
		os.Stderr.WriteString("failed to initialize logging: " + err.Error() + "\n")
		os.Exit(1)
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	cfg := &rendercard.Config{
		PitcherID: *pitcher,
		Start:     *start,
		End:       *end,
		Out:       *out,
		Format:    *format,
	}
	if err := rendercard.Run(ctx, cfg, os.Stdout); err != nil {
		logger.Get().Error(ctx, "render failed", logger.Error(err))
		cancel()
		stop()
		os.Exit(1)
	}
}
