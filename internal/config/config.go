// Package config defines service configuration structures and loading hooks.
//
// Conventions:
// - Provide New(ctx) initializer to build a Config with defaults.
// - Load layers a YAML file and PITCHCARD_* environment variables on top.
// - External errors are wrapped with ErrLoadConfig or ErrInvalidConfig.
package config

import (
	"context"
	"runtime"
	"time"
)

// Config contains process configuration.
type Config struct {
	// LogLevel controls verbosity: debug, info, warn, error.
	LogLevel string `koanf:"log_level"`

	// Addr configures the HTTP listen address, e.g. ":9080".
	Addr string `koanf:"addr"`

	// Season is the year shown on the card and used for the leaderboard.
	Season int `koanf:"season"`

	// SeasonStart and SeasonEnd bound the pitch event query (YYYY-MM-DD).
	SeasonStart string `koanf:"season_start"`
	SeasonEnd   string `koanf:"season_end"`

	// RegularSeasonOnly keeps only game_type "R" events.
	RegularSeasonOnly bool `koanf:"regular_season_only"`

	// Upstream endpoints.
	StatcastURL  string `koanf:"statcast_url"`
	StatsAPIURL  string `koanf:"stats_api_url"`
	FangraphsURL string `koanf:"fangraphs_url"`
	HeadshotURL  string `koanf:"headshot_url"`

	// HTTPTimeoutMS bounds every outbound request.
	HTTPTimeoutMS int `koanf:"http_timeout_ms"`

	// Roster enrichment knobs.
	EnrichBatchSize      int     `koanf:"enrich_batch_size"`
	EnrichWorkers        int     `koanf:"enrich_workers"`
	EnrichBatchTimeoutMS int     `koanf:"enrich_batch_timeout_ms"`
	EnrichRatePerSec     float64 `koanf:"enrich_rate_per_sec"`
	RosterRefreshMinutes int     `koanf:"roster_refresh_minutes"`

	// RegisterPath is the people register CSV (key_mlbam, name_first,
	// name_last, mlb_played_last) that seeds the roster directory.
	RegisterPath string `koanf:"register_path"`

	// CachePath is the sqlite database file; ":memory:" keeps it in process.
	CachePath       string `koanf:"cache_path"`
	CacheTTLMinutes int    `koanf:"cache_ttl_minutes"`

	// League reference tables (CSV or parquet, chosen by extension).
	LeagueReferencePath string `koanf:"league_reference_path"`
	LeagueMovementPath  string `koanf:"league_movement_path"`

	// SeasonStats lists the leaderboard columns shown in the season table.
	SeasonStats []string `koanf:"season_stats"`
}

// New creates a Config populated with defaults.
func New(_ context.Context) *Config {
	return &Config{
		LogLevel:             "info",
		Addr:                 ":9080",
		Season:               2025,
		SeasonStart:          "2025-03-15",
		SeasonEnd:            "2025-10-01",
		RegularSeasonOnly:    true,
		StatcastURL:          "https://baseballsavant.mlb.com/statcast_search/csv",
		StatsAPIURL:          "https://statsapi.mlb.com",
		FangraphsURL:         "https://www.fangraphs.com/api/leaders/major-league/data",
		HeadshotURL:          "https://img.mlbstatic.com/mlb-photos/image/upload/d_people:generic:headshot:67:current.png/w_640,q_auto:best/v1/people/%d/headshot/silo/current.png",
		HTTPTimeoutMS:        10_000,
		EnrichBatchSize:      200,
		EnrichWorkers:        runtime.NumCPU(),
		EnrichBatchTimeoutMS: 5_000,
		EnrichRatePerSec:     5,
		RosterRefreshMinutes: 24 * 60,
		RegisterPath:         "data/people.csv",
		CachePath:            ":memory:",
		CacheTTLMinutes:      60,
		LeagueReferencePath:  "data/statcast_2025_grouped.csv",
		LeagueMovementPath:   "data/statcast_2025_pitch_movement.csv",
		SeasonStats:          []string{"G", "GS", "IP", "TBF", "WHIP", "ERA", "FIP", "K%", "BB%", "GB%"},
	}
}

// HTTPTimeout returns the outbound request timeout.
func (c *Config) HTTPTimeout() time.Duration {
	return time.Duration(c.HTTPTimeoutMS) * time.Millisecond
}

// EnrichBatchTimeout returns the per-batch enrichment timeout.
func (c *Config) EnrichBatchTimeout() time.Duration {
	return time.Duration(c.EnrichBatchTimeoutMS) * time.Millisecond
}

// CacheTTL returns how long cached pitch events stay fresh.
func (c *Config) CacheTTL() time.Duration {
	return time.Duration(c.CacheTTLMinutes) * time.Minute
}

// RosterRefresh returns the background roster refresh interval.
func (c *Config) RosterRefresh() time.Duration {
	return time.Duration(c.RosterRefreshMinutes) * time.Minute
}
