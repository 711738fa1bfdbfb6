package service_test

import (
	"context"
	"errors"
	"sync"

	"github.com/okian/pitchcard/internal/config"
	"github.com/okian/pitchcard/internal/domain/model"
	"github.com/okian/pitchcard/internal/domain/types"
	"github.com/okian/pitchcard/pkg/logger"
)

func init() {
	// Initialize logging for tests
	if err := logger.Init(); err != nil {
		panic(err)
	}
}

var errUpstream = errors.New("upstream down")

const (
	pitcherCole    = 1
	batterJudge    = 2
	pitcherSkubal  = 3
	pitcherAlvarez = 4
	nobody         = 5
	pitcherBaz     = 6

	pitcherNoPitches = 9
	pitcherBroken    = 13
	pitcherSlow      = 77

	teamYankees = 147
	teamTigers  = 116
	teamDurham  = 234
	teamFlaky   = 999
)

func register() []model.Player {
	seed := func(id int, first, last string) model.Player {
		return model.Player{ID: id, FirstName: first, LastName: last,
			Team: model.Unknown, Position: model.Unknown, Level: model.Unknown}
	}
	return []model.Player{
		seed(pitcherCole, "Gerrit", "Cole"),
		seed(batterJudge, "Aaron", "Judge"),
		seed(pitcherSkubal, "Tarik", "Skubal"),
		seed(pitcherAlvarez, "Jose", "Alvarez"),
		seed(nobody, "No", "Body"),
		seed(pitcherBaz, "Shane", "Baz"),
	}
}

func testConfig() *config.Config {
	cfg := config.New(context.Background())
	cfg.CachePath = ":memory:"
	cfg.EnrichBatchSize = 2
	cfg.EnrichWorkers = 3
	cfg.EnrichBatchTimeoutMS = 1000
	return cfg
}

// fakePeople serves bios and teams from maps.
type fakePeople struct {
	mu         sync.Mutex
	bios       map[int]model.Bio
	teams      map[int]model.Team
	teamFails  map[int]int
	teamCalls  map[int]int
	batchCalls int
}

func newFakePeople() *fakePeople {
	bio := func(id int, name, pos string, team int, teamName string) model.Bio {
		return model.Bio{ID: id, FullName: name, PitchHand: "R", Age: 30, Height: "6' 4\"", Weight: 220,
			Position: pos, TeamID: team, TeamName: teamName}
	}
	return &fakePeople{
		bios: map[int]model.Bio{
			pitcherCole:    bio(pitcherCole, "Gerrit Cole", "Pitcher", teamYankees, "New York Yankees"),
			batterJudge:    bio(batterJudge, "Aaron Judge", "Outfielder", teamYankees, "New York Yankees"),
			pitcherSkubal:  bio(pitcherSkubal, "Tarik Skubal", "Pitcher", teamTigers, "Detroit Tigers"),
			pitcherAlvarez: bio(pitcherAlvarez, "Jose Alvarez", "Pitcher", teamDurham, "Durham Bulls"),
			pitcherBaz:     bio(pitcherBaz, "Shane Baz", "Pitcher", teamFlaky, "Flaky Club"),
		},
		teams: map[int]model.Team{
			teamYankees: {ID: teamYankees, Name: "New York Yankees", Abbreviation: "NYY", Sport: "Major League Baseball"},
			teamTigers:  {ID: teamTigers, Name: "Detroit Tigers", Abbreviation: "DET", Sport: "Major League Baseball"},
			teamDurham:  {ID: teamDurham, Name: "Durham Bulls", Abbreviation: "DUR", Sport: "Triple-A"},
			teamFlaky:   {ID: teamFlaky, Name: "Flaky Club", Abbreviation: "FLK", Sport: "Double-A"},
		},
		teamFails: map[int]int{teamFlaky: 1},
		teamCalls: map[int]int{},
	}
}

func (f *fakePeople) People(_ context.Context, ids []int) ([]model.Bio, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.batchCalls++
	var out []model.Bio
	for _, id := range ids {
		if b, ok := f.bios[id]; ok {
			out = append(out, b)
		}
	}
	return out, nil
}

func (f *fakePeople) Person(_ context.Context, id int) (model.Bio, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if id == pitcherSkubal {
		return model.Bio{}, errUpstream
	}
	b, ok := f.bios[id]
	if !ok {
		return model.Bio{}, errUpstream
	}
	return b, nil
}

func (f *fakePeople) Team(_ context.Context, id int) (model.Team, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.teamCalls[id]++
	if f.teamFails[id] > 0 {
		f.teamFails[id]--
		return model.Team{}, errUpstream
	}
	t, ok := f.teams[id]
	if !ok {
		return model.Team{}, errUpstream
	}
	return t, nil
}

func (f *fakePeople) calls(team int) int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.teamCalls[team]
}

// fakeEvents returns a small arsenal for every pitcher except the special
// ids above.
type fakeEvents struct {
	mu      sync.Mutex
	calls   int
	entered chan struct{}
}

func newFakeEvents() *fakeEvents {
	return &fakeEvents{entered: make(chan struct{}, 1)}
}

func arsenal() []model.PitchEvent {
	pitch := func(pt, desc string, zone, speed, pfxX, pfxZ float64) model.PitchEvent {
		e := model.NewPitchEvent(pt, desc)
		e.PThrows, e.GameType, e.Type = "R", "R", "S"
		e.Zone, e.ReleaseSpeed, e.PfxX, e.PfxZ = zone, speed, pfxX, pfxZ
		e.ReleaseExtension, e.DeltaRunExp, e.ArmAngle = 6.5, 0.01, 40
		return e
	}
	inPlay := pitch("SL", "hit_into_play", 12, 86.0, 4.8, 1.1)
	inPlay.Type, inPlay.EstimatedWOBA = "X", 0.300
	return []model.PitchEvent{
		pitch("FF", "called_strike", 5, 96.1, -8.1, 16.0),
		pitch("FF", "swinging_strike", 11, 97.0, -7.7, 15.2),
		pitch("FF", "ball", 14, 95.4, -8.6, 16.8),
		pitch("SL", "swinging_strike", 13, 85.2, 5.1, 0.4),
		inPlay,
	}
}

func (f *fakeEvents) PitcherEvents(ctx context.Context, pitcherID int, _, _ string) ([]model.PitchEvent, error) {
	f.mu.Lock()
	f.calls++
	f.mu.Unlock()

	switch pitcherID {
	case pitcherNoPitches:
		return nil, nil
	case pitcherBroken:
		return nil, errUpstream
	case pitcherSlow:
		f.entered <- struct{}{}
		<-ctx.Done()
		return nil, ctx.Err()
	}
	return arsenal(), nil
}

func (f *fakeEvents) count() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.calls
}

type fakeLeaders struct {
	fail bool
}

func (f fakeLeaders) Leaderboard(_ context.Context, _ int) ([]model.LeaderboardRow, error) {
	if f.fail {
		return nil, errUpstream
	}
	row := func(id int, era, k float64) model.LeaderboardRow {
		return model.LeaderboardRow{
			"xMLBAMID": float64(id), "G": 30.0, "GS": 30.0, "IP": 180.1, "TBF": 720.0, "WHIP": 1.01,
			"ERA": era, "FIP": 2.9, "K%": k, "BB%": 0.06, "GB%": 0.44,
			"xERA": era, "EV": 88.0, "pfxZone%": 0.5, "pfxO-Swing%": 0.31,
			"Barrel%": 0.07, "HardHit%": 0.38,
		}
	}
	return []model.LeaderboardRow{
		row(pitcherCole, 2.75, 0.29),
		row(pitcherSkubal, 2.21, 0.32),
		row(pitcherAlvarez, 4.10, 0.20),
	}, nil
}

type fakeImages struct{}

func (fakeImages) Headshot(_ context.Context, _ int) *types.Image {
	return &types.Image{ContentType: "image/png", Data: []byte("\x89PNG\r\n\x1a\n")}
}

func (fakeImages) Logo(_ context.Context, abbreviation string) *types.Image {
	if abbreviation != "NYY" {
		return nil
	}
	return &types.Image{ContentType: "image/png", Data: []byte("\x89PNG\r\n\x1a\n")}
}
