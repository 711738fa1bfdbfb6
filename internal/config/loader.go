package config

import (
	"context"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/knadh/koanf/parsers/yaml"
	"github.com/knadh/koanf/providers/env"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/v2"
)

const (
	envPrefix  = "PITCHCARD_"
	envFile    = "PITCHCARD_CONFIG"
	dateLayout = "2006-01-02"
)

// Load builds a Config by layering defaults, optional file, and env vars.
// Order of precedence (low -> high):
//  1. defaults (New(ctx))
//  2. file (YAML) if PITCHCARD_CONFIG is set
//  3. env (prefix PITCHCARD_)
func Load(ctx context.Context) (*Config, error) {
	base := New(ctx)

	k := koanf.New(".")

	if path := os.Getenv(envFile); path != "" {
		if err := k.Load(file.Provider(path), yaml.Parser()); err != nil {
			return nil, fmt.Errorf("%w: %s: %w", ErrLoadConfig, path, err)
		}
	}

	// PITCHCARD_ENRICH_BATCH_SIZE -> enrich_batch_size (flat keys).
	envProvider := env.Provider(envPrefix, ".", func(s string) string {
		s = strings.ToLower(s)
		s = strings.TrimPrefix(s, strings.ToLower(envPrefix))
		return s
	})
	if err := k.Load(envProvider, nil); err != nil {
		return nil, fmt.Errorf("%w: env: %w", ErrLoadConfig, err)
	}
	// the config file path itself is not a setting
	k.Delete("config")

	cfg := *base
	if k.Exists("season_stats") {
		cfg.SeasonStats = nil
	}
	if err := k.UnmarshalWithConf("", &cfg, koanf.UnmarshalConf{Tag: "koanf"}); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrLoadConfig, err)
	}
	cfg.SeasonStats = splitList(cfg.SeasonStats)

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// Validate reports the first invalid setting wrapped in ErrInvalidConfig.
func (c *Config) Validate() error {
	if c.Addr == "" {
		return fmt.Errorf("%w: addr must not be empty", ErrInvalidConfig)
	}
	start, err := time.Parse(dateLayout, c.SeasonStart)
	if err != nil {
		return fmt.Errorf("%w: season_start %q: %w", ErrInvalidConfig, c.SeasonStart, err)
	}
	end, err := time.Parse(dateLayout, c.SeasonEnd)
	if err != nil {
		return fmt.Errorf("%w: season_end %q: %w", ErrInvalidConfig, c.SeasonEnd, err)
	}
	if end.Before(start) {
		return fmt.Errorf("%w: season_end %s is before season_start %s", ErrInvalidConfig, c.SeasonEnd, c.SeasonStart)
	}
	if c.EnrichBatchSize <= 0 {
		return fmt.Errorf("%w: enrich_batch_size must be positive", ErrInvalidConfig)
	}
	if c.EnrichWorkers <= 0 {
		return fmt.Errorf("%w: enrich_workers must be positive", ErrInvalidConfig)
	}
	if c.CachePath == "" {
		return fmt.Errorf("%w: cache_path must not be empty", ErrInvalidConfig)
	}
	return nil
}

// splitList expands comma separated entries coming from env vars.
func splitList(in []string) []string {
	out := make([]string, 0, len(in))
	for _, s := range in {
		for _, part := range strings.Split(s, ",") {
			if part = strings.TrimSpace(part); part != "" {
				out = append(out, part)
			}
		}
	}
	return out
}
