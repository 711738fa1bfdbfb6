// Package service provides the core business service that implements
// the dependencies required by the HTTP API.
package service

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/okian/pitchcard/internal/adapters/provider"
	"github.com/okian/pitchcard/internal/adapters/provider/fangraphs"
	"github.com/okian/pitchcard/internal/adapters/provider/images"
	"github.com/okian/pitchcard/internal/adapters/provider/mlbstats"
	"github.com/okian/pitchcard/internal/adapters/provider/statcast"
	"github.com/okian/pitchcard/internal/adapters/reference"
	"github.com/okian/pitchcard/internal/adapters/repository"
	"github.com/okian/pitchcard/internal/config"
	"github.com/okian/pitchcard/internal/domain/dedupe"
	"github.com/okian/pitchcard/internal/domain/model"
	"github.com/okian/pitchcard/internal/domain/normalize"
	"github.com/okian/pitchcard/internal/domain/types"
	"github.com/okian/pitchcard/pkg/logger"
	"github.com/okian/pitchcard/pkg/metrics"
)

// EventSource downloads the pitch events of one pitcher.
type EventSource interface {
	PitcherEvents(ctx context.Context, pitcherID int, start, end string) ([]model.PitchEvent, error)
}

// PeopleSource resolves person and team records.
type PeopleSource interface {
	People(ctx context.Context, ids []int) ([]model.Bio, error)
	Person(ctx context.Context, id int) (model.Bio, error)
	Team(ctx context.Context, id int) (model.Team, error)
}

// LeaderboardSource downloads the season leaderboard.
type LeaderboardSource interface {
	Leaderboard(ctx context.Context, season int) ([]model.LeaderboardRow, error)
}

// ImageSource downloads header pictures; nil means unavailable.
type ImageSource interface {
	Headshot(ctx context.Context, playerID int) *types.Image
	Logo(ctx context.Context, abbreviation string) *types.Image
}

// Service implements the API dependencies for the pitcher card.
type Service struct {
	mu sync.RWMutex

	cfg *config.Config

	// Collaborators; the ones left nil are built from cfg on Start.
	events  EventSource
	people  PeopleSource
	leaders LeaderboardSource
	images  ImageSource
	store   repository.Store

	// Reference data
	register      []model.Player
	registerSet   bool
	league        *normalize.Reference
	leagueSet     bool
	movement      []model.MovementRow
	movementSet   bool
	teamLevels    dedupe.Deduper
	teamsMu       sync.RWMutex
	teams         map[int]model.Team
	refreshPeriod time.Duration
	dedupeSize    int

	sessions *tracker
	dir      *directory

	// State
	started bool
	cancel  context.CancelFunc
	wg      sync.WaitGroup

	logger logger.Logger
}

// Option applies a configuration option to the Service.
type Option func(*Service)

// WithConfig sets the configuration; defaults come from config.New.
func WithConfig(cfg *config.Config) Option {
	return func(s *Service) {
		if cfg != nil {
			s.cfg = cfg
		}
	}
}

// WithEventSource overrides the pitch event provider.
func WithEventSource(src EventSource) Option {
	return func(s *Service) { s.events = src }
}

// WithPeopleSource overrides the person and team provider.
func WithPeopleSource(src PeopleSource) Option {
	return func(s *Service) { s.people = src }
}

// WithLeaderboardSource overrides the leaderboard provider.
func WithLeaderboardSource(src LeaderboardSource) Option {
	return func(s *Service) { s.leaders = src }
}

// WithImageSource overrides the image fetcher.
func WithImageSource(src ImageSource) Option {
	return func(s *Service) { s.images = src }
}

// WithStore sets the cache store. The service closes it on Stop.
func WithStore(store repository.Store) Option {
	return func(s *Service) { s.store = store }
}

// WithRegister seeds the roster with players instead of reading the
// register file.
func WithRegister(players []model.Player) Option {
	return func(s *Service) {
		s.register = players
		s.registerSet = true
	}
}

// WithLeagueReference sets the league average table used for cell colors.
func WithLeagueReference(rows []model.LeagueRow) Option {
	return func(s *Service) {
		s.league = normalize.NewReference(rows)
		s.leagueSet = true
	}
}

// WithLeagueMovement sets the league average movement table.
func WithLeagueMovement(rows []model.MovementRow) Option {
	return func(s *Service) {
		s.movement = rows
		s.movementSet = true
	}
}

// WithRefreshInterval sets how often the roster is rebuilt in the
// background. Zero disables the background refresh.
func WithRefreshInterval(d time.Duration) Option {
	return func(s *Service) {
		if d >= 0 {
			s.refreshPeriod = d
		}
	}
}

// WithDedupeSize bounds how many resolved team ids are remembered.
func WithDedupeSize(size int) Option {
	return func(s *Service) {
		if size > 0 {
			s.dedupeSize = size
		}
	}
}

// WithLogger sets a custom logger for the service.
func WithLogger(l logger.Logger) Option {
	return func(s *Service) {
		if l != nil {
			s.logger = l
		}
	}
}

// New constructs a new Service with default configuration.
func New(opts ...Option) *Service {
	s := &Service{
		cfg:           config.New(context.Background()),
		refreshPeriod: -1,
		dedupeSize:    1024,
		teams:         make(map[int]model.Team),
		sessions:      newTracker(),
		dir:           newDirectory(nil),
	}
	for _, opt := range opts {
		opt(s)
	}
	if s.refreshPeriod < 0 {
		s.refreshPeriod = s.cfg.RosterRefresh()
	}
	return s
}

// Start builds missing collaborators, loads reference data and starts the
// background roster refresh.
func (s *Service) Start(ctx context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.started {
		return nil
	}
	if s.logger == nil {
		s.logger = logger.Get().Named("service")
	}
	s.logger.Info(ctx, "starting pitch card service...")

	if s.store == nil {
		store, err := repository.NewSQLiteStore(ctx, s.cfg.CachePath, repository.WithTTL(s.cfg.CacheTTL()))
		if err != nil {
			return fmt.Errorf("open cache: %w", err)
		}
		s.store = store
		s.logger.Info(ctx, "using sqlite cache", logger.String("path", s.cfg.CachePath))
	}
	s.buildProviders()
	s.loadReference(ctx)

	s.teamLevels = dedupe.NewInMemoryDeduper(dedupe.WithMaxSize(s.dedupeSize))
	s.sessions = newTracker()
	if roster, err := s.store.Roster(ctx); err == nil && len(roster) > 0 {
		s.dir.replace(roster)
		metrics.UpdateRosterSize(len(roster))
		s.logger.Info(ctx, "roster restored from cache", logger.Int("pitchers", len(roster)))
	}

	runCtx, cancel := context.WithCancel(ctx)
	s.cancel = cancel
	if s.refreshPeriod > 0 {
		s.wg.Add(1)
		go s.refreshLoop(runCtx)
	}

	s.started = true
	s.logger.Info(ctx, "pitch card service started",
		logger.Int("season", s.cfg.Season),
		logger.Int("register", len(s.register)),
		logger.Int("leagueRows", s.league.Len()),
		logger.Duration("rosterRefresh", s.refreshPeriod),
	)
	return nil
}

func (s *Service) buildProviders() {
	httpOpts := []provider.Option{provider.WithTimeout(s.cfg.HTTPTimeout())}
	if s.events == nil {
		s.events = statcast.New(s.cfg.StatcastURL,
			statcast.WithRegularSeasonOnly(s.cfg.RegularSeasonOnly),
			statcast.WithHTTP(httpOpts...),
		)
	}
	if s.people == nil {
		s.people = mlbstats.New(s.cfg.StatsAPIURL,
			append(httpOpts, provider.WithRateLimit(s.cfg.EnrichRatePerSec, 1))...)
	}
	if s.leaders == nil {
		s.leaders = fangraphs.New(s.cfg.FangraphsURL, httpOpts...)
	}
	if s.images == nil {
		s.images = images.New(s.cfg.HeadshotURL, httpOpts...)
	}
}

// loadReference reads the files named in the configuration for whatever
// was not injected. Missing files only cost the card its colors.
func (s *Service) loadReference(ctx context.Context) {
	if !s.leagueSet {
		rows, err := reference.LoadLeague(s.cfg.LeagueReferencePath)
		if err != nil {
			s.logger.Warn(ctx, "league reference unavailable, table stays uncolored",
				logger.String("path", s.cfg.LeagueReferencePath), logger.Error(err))
		}
		s.league = normalize.NewReference(rows)
	}
	if !s.movementSet {
		rows, err := reference.LoadMovement(s.cfg.LeagueMovementPath)
		if err != nil {
			s.logger.Warn(ctx, "league movement unavailable",
				logger.String("path", s.cfg.LeagueMovementPath), logger.Error(err))
		}
		s.movement = rows
	}
	if !s.registerSet {
		players, err := reference.LoadRegister(s.cfg.RegisterPath, s.cfg.Season)
		if err != nil {
			s.logger.Error(ctx, "player register unavailable, roster stays empty",
				logger.String("path", s.cfg.RegisterPath), logger.Error(err))
		}
		s.register = players
	}
}

func (s *Service) refreshLoop(ctx context.Context) {
	defer s.wg.Done()

	ticker := time.NewTicker(s.refreshPeriod)
	defer ticker.Stop()

	for {
		if err := s.RefreshRoster(ctx); err != nil {
			s.logger.Error(ctx, "roster refresh failed", logger.Error(err))
		}
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
		}
	}
}

// Stop gracefully shuts down the service.
func (s *Service) Stop() {
	s.mu.Lock()
	if !s.started {
		s.mu.Unlock()
		return
	}
	s.logger.Info(context.Background(), "stopping pitch card service...")

	s.cancel()
	s.sessions.close()
	s.mu.Unlock()

	// in-flight refreshes and renders read service state and the cache,
	// so wait for them outside the lock before closing the store
	s.wg.Wait()
	s.sessions.wait()

	s.mu.Lock()
	defer s.mu.Unlock()
	if s.store != nil {
		if err := s.store.Close(); err != nil {
			s.logger.Warn(context.Background(), "closing cache", logger.Error(err))
		}
	}
	s.started = false
	s.logger.Info(context.Background(), "pitch card service stopped")
}

// Ready reports whether the service is started and has a roster.
func (s *Service) Ready() bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.started && s.dir.size() > 0
}

// GetStats returns service statistics for monitoring.
func (s *Service) GetStats() map[string]interface{} {
	s.mu.RLock()
	defer s.mu.RUnlock()

	stats := map[string]interface{}{
		"started":     s.started,
		"season":      s.cfg.Season,
		"seasonStart": s.cfg.SeasonStart,
		"seasonEnd":   s.cfg.SeasonEnd,
		"workerCount": s.cfg.EnrichWorkers,
		"batchSize":   s.cfg.EnrichBatchSize,
		"register":    len(s.register),
		"leagueRows":  s.league.Len(),
		"inFlight":    s.sessions.size(),
	}
	if s.started {
		pitchers := s.dir.size()
		stats["pitchers"] = pitchers
		stats["storedRoster"] = s.store.Count(context.Background())
		stats["resolvedTeams"] = s.teamLevels.Size()
		metrics.UpdateRosterSize(pitchers)
	}
	return stats
}
