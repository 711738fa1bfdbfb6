package service

import (
	"context"
	"slices"
	"sync"

	"github.com/samber/lo"

	"github.com/okian/pitchcard/internal/domain/model"
	"github.com/okian/pitchcard/internal/domain/types"
)

// directory is the in-memory view of the enriched pitcher roster behind
// the level, team and pitcher dropdowns.
type directory struct {
	mu      sync.RWMutex
	players []model.Player
	byID    map[int]model.Player
}

func newDirectory(players []model.Player) *directory {
	d := &directory{}
	d.replace(players)
	return d
}

func (d *directory) replace(players []model.Player) {
	byID := lo.SliceToMap(players, func(p model.Player) (int, model.Player) { return p.ID, p })
	d.mu.Lock()
	defer d.mu.Unlock()
	d.players = players
	d.byID = byID
}

func (d *directory) size() int {
	d.mu.RLock()
	defer d.mu.RUnlock()
	return len(d.players)
}

func (d *directory) find(id int) (model.Player, bool) {
	d.mu.RLock()
	defer d.mu.RUnlock()
	p, ok := d.byID[id]
	return p, ok
}

func (d *directory) levels() []string {
	d.mu.RLock()
	defer d.mu.RUnlock()
	levels := lo.Uniq(lo.FilterMap(d.players, func(p model.Player, _ int) (string, bool) {
		return p.Level, p.Level != ""
	}))
	slices.Sort(levels)
	return levels
}

func (d *directory) teams(level string) []string {
	d.mu.RLock()
	defer d.mu.RUnlock()
	teams := lo.Uniq(lo.FilterMap(d.players, func(p model.Player, _ int) (string, bool) {
		return p.Team, p.Level == level && p.Team != ""
	}))
	slices.Sort(teams)
	return teams
}

func (d *directory) pitchers(team string) []model.Player {
	d.mu.RLock()
	defer d.mu.RUnlock()
	return lo.Filter(d.players, func(p model.Player, _ int) bool { return p.Team == team })
}

func stringOptions(values []string) []types.Option {
	return lo.Map(values, func(v string, _ int) types.Option { return types.Option{Label: v, Value: v} })
}

// Levels returns the level dropdown, sorted.
func (s *Service) Levels(_ context.Context) []types.Option {
	return stringOptions(s.dir.levels())
}

// Teams returns the teams playing at level, sorted. An empty level yields
// no options.
func (s *Service) Teams(_ context.Context, level string) []types.Option {
	if level == "" {
		return []types.Option{}
	}
	return stringOptions(s.dir.teams(level))
}

// Pitchers returns the pitchers of team in roster order (by last name).
func (s *Service) Pitchers(_ context.Context, team string) []types.PitcherOption {
	if team == "" {
		return []types.PitcherOption{}
	}
	return lo.Map(s.dir.pitchers(team), func(p model.Player, _ int) types.PitcherOption {
		return types.PitcherOption{Label: p.FullName(), Value: p.ID}
	})
}

// Pitcher returns the roster entry of id.
func (s *Service) Pitcher(_ context.Context, id int) (model.Player, bool) {
	return s.dir.find(id)
}
