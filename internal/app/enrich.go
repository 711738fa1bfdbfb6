package service

import (
	"cmp"
	"context"
	"fmt"
	"slices"
	"strconv"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/samber/lo"

	"github.com/okian/pitchcard/internal/adapters/mq/queue"
	"github.com/okian/pitchcard/internal/adapters/mq/worker"
	"github.com/okian/pitchcard/internal/domain/catalog"
	"github.com/okian/pitchcard/internal/domain/model"
	"github.com/okian/pitchcard/pkg/logger"
	"github.com/okian/pitchcard/pkg/metrics"
)

// collector gathers enriched players from concurrent workers.
type collector struct {
	mu      sync.Mutex
	players []model.Player
}

func (c *collector) Collect(_ context.Context, players []model.Player) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.players = append(c.players, players...)
}

// PlanBatches splits players into batches of at most size players.
func PlanBatches(players []model.Player, size int) []model.EnrichBatch {
	if size < 1 {
		size = 1
	}
	run := uuid.NewString()
	return lo.Map(lo.Chunk(players, size), func(chunk []model.Player, i int) model.EnrichBatch {
		return model.EnrichBatch{ID: run + "-" + strconv.Itoa(i), Seq: i, Players: chunk}
	})
}

// RefreshRoster rebuilds the pitcher directory: register players are
// looked up in batches on the worker pool, their team levels resolved,
// non-pitchers dropped and the rest sorted by last name. Lookup failures
// only turn the affected fields into Unknown.
func (s *Service) RefreshRoster(ctx context.Context) error {
	if len(s.register) == 0 {
		return ErrEmptyRegister
	}
	started := time.Now()
	log := s.logger.Named("enrich")

	batches := PlanBatches(s.register, s.cfg.EnrichBatchSize)
	q := queue.NewInMemoryQueue(queue.WithCapacity(len(batches)))
	sink := &collector{}
	pool := worker.NewPool(s.cfg.EnrichWorkers, q, s.people, sink,
		worker.WithBatchTimeout(s.cfg.EnrichBatchTimeout()),
		worker.WithLogger(log),
	)
	pool.Start(ctx)

	for _, b := range batches {
		if !q.Enqueue(ctx, b) {
			_ = pool.Shutdown(context.Background())
			return fmt.Errorf("enqueue batch %d: %w", b.Seq, ctx.Err())
		}
	}
	_ = q.Close()
	if err := pool.Wait(ctx); err != nil {
		_ = pool.Shutdown(context.Background())
		return err
	}

	players := s.resolveLevels(ctx, sink.players)
	pitchers := lo.Filter(players, func(p model.Player, _ int) bool { return p.IsPitcher() })
	SortByLastName(pitchers)

	if err := s.store.ReplaceRoster(ctx, pitchers); err != nil {
		// the in-memory directory still serves the fresh roster
		log.Warn(ctx, "roster not persisted", logger.Error(err))
	}
	s.dir.replace(pitchers)
	metrics.UpdateRosterSize(len(pitchers))

	log.Info(ctx, "roster refreshed",
		logger.Int("register", len(s.register)),
		logger.Int("batches", len(batches)),
		logger.Int("workers", pool.Size()),
		logger.Int("pitchers", len(pitchers)),
		logger.Duration("took", time.Since(started)),
	)
	return nil
}

// resolveLevels fills Level from each player's team. Every team id is
// looked up once; a failed lookup is retried on the next refresh.
func (s *Service) resolveLevels(ctx context.Context, players []model.Player) []model.Player {
	ids := lo.Uniq(lo.FilterMap(players, func(p model.Player, _ int) (int, bool) {
		return p.TeamID, p.TeamID > 0
	}))
	for _, id := range ids {
		key := strconv.Itoa(id)
		if s.teamLevels.SeenAndRecord(ctx, key) {
			continue
		}
		team, err := s.people.Team(ctx, id)
		if err != nil {
			s.teamLevels.Unrecord(ctx, key)
			metrics.RecordErrorByComponent("enrich", "team_lookup")
			s.logger.Warn(ctx, "team level unknown", logger.Int("team_id", id), logger.Error(err))
			continue
		}
		s.teamsMu.Lock()
		s.teams[id] = team
		s.teamsMu.Unlock()
	}

	s.teamsMu.RLock()
	defer s.teamsMu.RUnlock()
	return lo.Map(players, func(p model.Player, _ int) model.Player {
		p.Level = model.Unknown
		if team, ok := s.teams[p.TeamID]; ok && team.Sport != "" {
			p.Level = catalog.Level(team.Sport)
		}
		return p
	})
}

// team returns the cached team record of id, looking it up when needed.
func (s *Service) team(ctx context.Context, id int) (model.Team, bool) {
	if id <= 0 {
		return model.Team{}, false
	}
	s.teamsMu.RLock()
	team, ok := s.teams[id]
	s.teamsMu.RUnlock()
	if ok {
		return team, true
	}

	team, err := s.people.Team(ctx, id)
	if err != nil {
		s.logger.Warn(ctx, "team unavailable", logger.Int("team_id", id), logger.Error(err))
		return model.Team{}, false
	}
	s.teamsMu.Lock()
	s.teams[id] = team
	s.teamsMu.Unlock()
	return team, true
}

// SortByLastName orders players by last name, then first name, then id.
func SortByLastName(players []model.Player) {
	slices.SortStableFunc(players, func(a, b model.Player) int {
		return cmp.Or(
			cmp.Compare(a.LastName, b.LastName),
			cmp.Compare(a.FirstName, b.FirstName),
			cmp.Compare(a.ID, b.ID),
		)
	})
}
