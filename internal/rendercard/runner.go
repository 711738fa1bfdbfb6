package rendercard

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"time"

	service "github.com/okian/pitchcard/internal/app"
	"github.com/okian/pitchcard/internal/config"
	"github.com/okian/pitchcard/internal/domain/types"
	"github.com/okian/pitchcard/pkg/logger"
)

// File permission constants.
const (
	outputPermission = 0o644
)

// Run builds the card described by cfg and writes it. opts are appended to
// the service options, after the loaded configuration.
func Run(ctx context.Context, cfg *Config, stdout io.Writer, opts ...service.Option) error {
	if err := cfg.Validate(); err != nil {
		return err
	}
	log := logger.Get().Named("render-card")

	appCfg, err := config.Load(ctx)
	if err != nil {
		return fmt.Errorf("load config: %w", err)
	}

	// the roster is only needed by the server
	base := []service.Option{
		service.WithConfig(appCfg),
		service.WithLogger(log),
		service.WithRegister(nil),
		service.WithRefreshInterval(0),
	}
	svc := service.New(append(base, opts...)...)
	if err := svc.Start(ctx); err != nil {
		return fmt.Errorf("start: %w", err)
	}
	defer svc.Stop()

	begin := time.Now()
	req := types.CardRequest{PitcherID: cfg.PitcherID, Start: cfg.Start, End: cfg.End}

	var out []byte
	var card *types.Card
	switch cfg.Format {
	case FormatJSON:
		card, err = svc.Summary(ctx, req)
		if err == nil {
			out, err = json.MarshalIndent(card, "", "  ")
		}
	default:
		out, card, err = svc.CardSVG(ctx, req)
	}
	if err != nil {
		return fmt.Errorf("pitcher %d: %w", cfg.PitcherID, err)
	}

	if err := write(cfg.Out, stdout, out); err != nil {
		return err
	}
	log.Info(ctx, "card written",
		logger.String("out", cfg.Out),
		logger.String("pitcher", card.Bio.FullName),
		logger.Int("pitches", card.Pitches),
		logger.Duration("took", time.Since(begin)),
	)
	return nil
}

func write(path string, stdout io.Writer, b []byte) error {
	if path == "-" {
		if _, err := stdout.Write(b); err != nil {
			return fmt.Errorf("write stdout: %w", err)
		}
		return nil
	}
	if err := os.WriteFile(path, b, outputPermission); err != nil {
		return fmt.Errorf("write %s: %w", path, err)
	}
	return nil
}
