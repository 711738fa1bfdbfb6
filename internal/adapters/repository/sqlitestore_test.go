package repository_test

import (
	"context"
	"errors"
	"math"
	"path/filepath"
	"sync"
	"testing"
	"time"

	"github.com/okian/pitchcard/internal/adapters/repository"
	"github.com/okian/pitchcard/internal/domain/model"
	. "github.com/smartystreets/goconvey/convey"
)

type clock struct {
	mu  sync.Mutex
	now time.Time
}

func (c *clock) Now() time.Time {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.now
}

func (c *clock) Advance(d time.Duration) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.now = c.now.Add(d)
}

func newStore(t *testing.T, opts ...repository.Option) *repository.SQLiteStore {
	t.Helper()
	s, err := repository.NewSQLiteStore(context.Background(), ":memory:", opts...)
	if err != nil {
		t.Fatalf("open store: %v", err)
	}
	t.Cleanup(func() { _ = s.Close() })
	return s
}

func events() []model.PitchEvent {
	ff := model.NewPitchEvent("FF", "swinging_strike")
	ff.Type, ff.PThrows, ff.GameType, ff.GameDate = "S", "R", "R", "2025-04-01"
	ff.ReleaseSpeed, ff.PfxX, ff.PfxZ, ff.Zone = 96.1, -8.4, 16.2, 5

	sl := model.NewPitchEvent("SL", "hit_into_play")
	sl.Type, sl.PThrows = "X", "R"
	sl.ReleaseSpeed, sl.EstimatedWOBA = 85.3, 0.412

	return []model.PitchEvent{ff, sl}
}

func TestEvents(t *testing.T) {
	Convey("Given an empty store", t, func() {
		ctx := context.Background()
		clk := &clock{now: time.Unix(1_750_000_000, 0)}
		s := newStore(t, repository.WithTTL(time.Hour), repository.WithClock(clk.Now))

		Convey("When nothing is cached", func() {
			_, err := s.Events(ctx, 1, "2025-03-15", "2025-10-01")
			So(errors.Is(err, repository.ErrNotFound), ShouldBeTrue)
		})

		Convey("When events are stored", func() {
			So(s.PutEvents(ctx, 1, "2025-03-15", "2025-10-01", events()), ShouldBeNil)

			Convey("Then they are read back in order with NaN preserved", func() {
				got, err := s.Events(ctx, 1, "2025-03-15", "2025-10-01")
				So(err, ShouldBeNil)
				So(len(got), ShouldEqual, 2)
				So(got[0].PitchType, ShouldEqual, "FF")
				So(got[0].Description, ShouldEqual, "swinging_strike")
				So(got[0].GameDate, ShouldEqual, "2025-04-01")
				So(got[0].ReleaseSpeed, ShouldEqual, 96.1)
				So(got[0].PfxX, ShouldEqual, -8.4)
				So(got[0].Zone, ShouldEqual, 5)
				So(math.IsNaN(got[0].EstimatedWOBA), ShouldBeTrue)
				So(got[1].BattedBall(), ShouldBeTrue)
				So(got[1].EstimatedWOBA, ShouldEqual, 0.412)
				So(math.IsNaN(got[1].ArmAngle), ShouldBeTrue)
			})

			Convey("Then another window is still a miss", func() {
				_, err := s.Events(ctx, 1, "2025-04-01", "2025-10-01")
				So(errors.Is(err, repository.ErrNotFound), ShouldBeTrue)
			})

			Convey("Then a second put replaces the first", func() {
				So(s.PutEvents(ctx, 1, "2025-03-15", "2025-10-01", events()[:1]), ShouldBeNil)
				got, err := s.Events(ctx, 1, "2025-03-15", "2025-10-01")
				So(err, ShouldBeNil)
				So(len(got), ShouldEqual, 1)
			})

			Convey("Then they expire after the TTL", func() {
				clk.Advance(2 * time.Hour)
				_, err := s.Events(ctx, 1, "2025-03-15", "2025-10-01")
				So(errors.Is(err, repository.ErrNotFound), ShouldBeTrue)
			})
		})

		Convey("When an empty result is stored", func() {
			So(s.PutEvents(ctx, 2, "2025-03-15", "2025-10-01", nil), ShouldBeNil)
			got, err := s.Events(ctx, 2, "2025-03-15", "2025-10-01")
			So(err, ShouldBeNil)
			So(got, ShouldBeEmpty)
		})
	})
}

func TestLeaderboard(t *testing.T) {
	Convey("Given a store without expiry", t, func() {
		ctx := context.Background()
		s := newStore(t)

		_, err := s.Leaderboard(ctx, 2025)
		So(errors.Is(err, repository.ErrNotFound), ShouldBeTrue)

		rows := []model.LeaderboardRow{
			{"xMLBAMID": 669373, "ERA": 2.21, "Name": "Tarik Skubal"},
			{"xMLBAMID": 543037, "ERA": 3.41},
		}
		So(s.PutLeaderboard(ctx, 2025, rows), ShouldBeNil)

		got, err := s.Leaderboard(ctx, 2025)
		So(err, ShouldBeNil)
		So(len(got), ShouldEqual, 2)
		row, ok := model.FindPlayer(got, 669373)
		So(ok, ShouldBeTrue)
		era, ok := row.Float("ERA")
		So(ok, ShouldBeTrue)
		So(era, ShouldEqual, 2.21)
		So(row["Name"], ShouldEqual, "Tarik Skubal")
	})
}

func TestRoster(t *testing.T) {
	Convey("Given a file backed store", t, func() {
		ctx := context.Background()
		path := filepath.Join(t.TempDir(), "cache.db")
		s, err := repository.NewSQLiteStore(ctx, path)
		So(err, ShouldBeNil)

		So(s.Count(ctx), ShouldEqual, 0)
		players := []model.Player{
			{ID: 2, FirstName: "Gerrit", LastName: "Cole", Team: "New York Yankees", TeamID: 147, Position: "Pitcher", Level: "MLB"},
			{ID: 1, FirstName: "Tarik", LastName: "Skubal", Team: model.Unknown, Position: model.Unknown, Level: model.Unknown},
		}
		So(s.ReplaceRoster(ctx, players), ShouldBeNil)
		So(s.Count(ctx), ShouldEqual, 2)

		Convey("Then the roster survives a reopen in stored order", func() {
			So(s.Close(), ShouldBeNil)
			s, err = repository.NewSQLiteStore(ctx, path)
			So(err, ShouldBeNil)
			defer s.Close()

			got, err := s.Roster(ctx)
			So(err, ShouldBeNil)
			So(got, ShouldResemble, players)
		})

		Convey("Then replacing it drops the previous entries", func() {
			So(s.ReplaceRoster(ctx, players[:1]), ShouldBeNil)
			got, err := s.Roster(ctx)
			So(err, ShouldBeNil)
			So(len(got), ShouldEqual, 1)
			So(got[0].LastName, ShouldEqual, "Cole")
			So(s.Close(), ShouldBeNil)
		})
	})
}
