package service

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/okian/pitchcard/internal/adapters/repository"
	"github.com/okian/pitchcard/internal/domain/aggregate"
	"github.com/okian/pitchcard/internal/domain/classify"
	"github.com/okian/pitchcard/internal/domain/model"
	"github.com/okian/pitchcard/internal/domain/movement"
	"github.com/okian/pitchcard/internal/domain/normalize"
	"github.com/okian/pitchcard/internal/domain/percentile"
	"github.com/okian/pitchcard/internal/domain/seasonstats"
	"github.com/okian/pitchcard/internal/domain/table"
	"github.com/okian/pitchcard/internal/domain/types"
	"github.com/okian/pitchcard/internal/domain/velocity"
	"github.com/okian/pitchcard/internal/render"
	"github.com/okian/pitchcard/pkg/logger"
	"github.com/okian/pitchcard/pkg/metrics"
)

// Summary builds the card of one pitcher without drawing it.
func (s *Service) Summary(ctx context.Context, req types.CardRequest) (*types.Card, error) {
	card, err := s.build(ctx, req)
	if err != nil {
		return nil, err
	}
	metrics.RecordCardRendered("json")
	return card, nil
}

// CardSVG builds and draws the card of one pitcher.
func (s *Service) CardSVG(ctx context.Context, req types.CardRequest) ([]byte, *types.Card, error) {
	card, err := s.build(ctx, req)
	if err != nil {
		return nil, nil, err
	}
	var buf bytes.Buffer
	if err := render.Card(&buf, card); err != nil {
		metrics.RecordErrorByComponent("render", "svg")
		return nil, nil, fmt.Errorf("draw card: %w", err)
	}
	metrics.RecordCardRendered("svg")
	return buf.Bytes(), card, nil
}

// NormalizeRequest fills the date window from the configured season and
// validates the request.
func (s *Service) NormalizeRequest(req types.CardRequest) (types.CardRequest, error) {
	if req.PitcherID <= 0 {
		return req, fmt.Errorf("%w: pitcher id %d", ErrInvalidRequest, req.PitcherID)
	}
	if req.Start == "" {
		req.Start = s.cfg.SeasonStart
	}
	if req.End == "" {
		req.End = s.cfg.SeasonEnd
	}
	start, err := time.Parse(time.DateOnly, req.Start)
	if err != nil {
		return req, fmt.Errorf("%w: start date %q", ErrInvalidRequest, req.Start)
	}
	end, err := time.Parse(time.DateOnly, req.End)
	if err != nil {
		return req, fmt.Errorf("%w: end date %q", ErrInvalidRequest, req.End)
	}
	if end.Before(start) {
		return req, fmt.Errorf("%w: window %s..%s", ErrInvalidRequest, req.Start, req.End)
	}
	return req, nil
}

// build runs fetch, filter, aggregate and normalize for one pitcher and
// gathers the auxiliary header data. Only a failed pitch event fetch is an
// error; every other lookup degrades to a blank part of the card.
func (s *Service) build(ctx context.Context, req types.CardRequest) (*types.Card, error) {
	s.mu.RLock()
	started, sessions := s.started, s.sessions
	s.mu.RUnlock()
	if !started {
		return nil, ErrNotStarted
	}

	req, err := s.NormalizeRequest(req)
	if err != nil {
		return nil, err
	}

	ctx, renderID, done := sessions.begin(ctx, req.Session)
	defer done()
	metrics.AddRendersInFlight(1)
	defer metrics.AddRendersInFlight(-1)
	begin := time.Now()

	events, err := s.pitchEvents(ctx, req)
	if err != nil {
		return nil, interrupted(ctx, err)
	}
	if len(events) == 0 {
		return nil, fmt.Errorf("%w: pitcher %d %s..%s", ErrNoPitches, req.PitcherID, req.Start, req.End)
	}

	events = classify.Annotate(events)
	summaries := aggregate.Summarize(events)
	metrics.RecordPitchesAggregated(len(events))

	var (
		wg       sync.WaitGroup
		bio      model.Bio
		abbr     string
		logo     *types.Image
		headshot *types.Image
		rows     []model.LeaderboardRow
	)
	wg.Add(3)
	go func() {
		defer wg.Done()
		bio = s.bio(ctx, req.PitcherID)
		if team, ok := s.team(ctx, bio.TeamID); ok {
			abbr = team.Abbreviation
		}
		if abbr != "" {
			logo = s.images.Logo(ctx, abbr)
		}
	}()
	go func() {
		defer wg.Done()
		headshot = s.images.Headshot(ctx, req.PitcherID)
	}()
	go func() {
		defer wg.Done()
		rows = s.leaderboard(ctx)
	}()
	wg.Wait()

	if ctx.Err() != nil {
		return nil, interrupted(ctx, ctx.Err())
	}

	hand := throwingHand(events, bio)
	var row model.LeaderboardRow
	if r, ok := model.FindPlayer(rows, req.PitcherID); ok {
		row = r
	}
	rankings, ok := percentile.Rank(rows, req.PitcherID)
	if !ok {
		rankings = []percentile.Ranking{}
	}

	card := &types.Card{
		RenderID:    renderID,
		Season:      s.cfg.Season,
		Bio:         bio,
		TeamAbbr:    abbr,
		Pitches:     len(events),
		Table:       table.Build(summaries, normalize.CellColors(summaries, s.league, hand)),
		SeasonStats: seasonstats.Build(row, s.cfg.SeasonStats),
		Percentiles: rankings,
		Velocity: velocity.Build(events, func(pitchType string) float64 {
			return s.league.Mean(model.StatReleaseSpeed, pitchType, "")
		}),
		Movement: movement.Build(events, hand, s.movement),
		Headshot: headshot,
		Logo:     logo,
	}

	metrics.RecordRenderLatency(float64(time.Since(begin).Milliseconds()))
	s.logger.Debug(ctx, "card built",
		logger.String("render_id", renderID),
		logger.Int("pitcher_id", req.PitcherID),
		logger.Int("pitches", len(events)),
		logger.Int("pitch_types", len(summaries)),
	)
	return card, nil
}

// pitchEvents serves events from the cache, falling back to the provider.
func (s *Service) pitchEvents(ctx context.Context, req types.CardRequest) ([]model.PitchEvent, error) {
	events, err := s.store.Events(ctx, req.PitcherID, req.Start, req.End)
	if err == nil {
		return events, nil
	}
	if !errors.Is(err, repository.ErrNotFound) {
		s.logger.Warn(ctx, "event cache unavailable", logger.Error(err))
	}

	events, err = s.events.PitcherEvents(ctx, req.PitcherID, req.Start, req.End)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrUpstream, err)
	}
	if err := s.store.PutEvents(ctx, req.PitcherID, req.Start, req.End, events); err != nil {
		s.logger.Warn(ctx, "events not cached", logger.Int("pitcher_id", req.PitcherID), logger.Error(err))
	}
	return events, nil
}

// leaderboard returns the season leaderboard or nil when unavailable.
func (s *Service) leaderboard(ctx context.Context) []model.LeaderboardRow {
	season := s.cfg.Season
	rows, err := s.store.Leaderboard(ctx, season)
	if err == nil {
		return rows
	}
	rows, err = s.leaders.Leaderboard(ctx, season)
	if err != nil {
		s.logger.Warn(ctx, "leaderboard unavailable", logger.Int("season", season), logger.Error(err))
		return nil
	}
	if err := s.store.PutLeaderboard(ctx, season, rows); err != nil {
		s.logger.Warn(ctx, "leaderboard not cached", logger.Error(err))
	}
	return rows
}

// bio returns the person record, or what the roster knows when the lookup
// fails.
func (s *Service) bio(ctx context.Context, id int) model.Bio {
	bio, err := s.people.Person(ctx, id)
	if err == nil {
		return bio
	}
	s.logger.Warn(ctx, "bio unavailable", logger.Int("pitcher_id", id), logger.Error(err))
	bio = model.Bio{ID: id}
	if p, ok := s.dir.find(id); ok {
		bio.FullName = p.FullName()
		bio.TeamID = p.TeamID
	}
	return bio
}

// throwingHand takes the hand from the first event that carries one,
// otherwise from the bio.
func throwingHand(events []model.PitchEvent, bio model.Bio) string {
	for _, e := range events {
		if e.PThrows != "" {
			return e.PThrows
		}
	}
	return bio.PitchHand
}

func interrupted(ctx context.Context, err error) error {
	if errors.Is(context.Cause(ctx), ErrSuperseded) {
		return ErrSuperseded
	}
	return err
}
