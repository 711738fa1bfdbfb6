package statcast_test

import (
	"context"
	"errors"
	"math"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/okian/pitchcard/internal/adapters/provider"
	"github.com/okian/pitchcard/internal/adapters/provider/statcast"
	"github.com/okian/pitchcard/pkg/logger"
	. "github.com/smartystreets/goconvey/convey"
)

const export = `pitch_type,game_date,release_speed,release_pos_x,release_pos_z,description,zone,type,pfx_x,pfx_z,release_spin_rate,release_extension,game_type,p_throws,estimated_woba_using_speedangle,delta_run_exp,arm_angle
FF,2025-04-02,96.1,-1.9,5.8,swinging_strike,5,S,-0.75,1.5,2400,6.6,R,R,,0.05,41.2
SL,2025-04-02,86.0,-2.0,5.7,hit_into_play,12,X,0.25,0.1,2600,6.4,R,R,0.412,-0.3,40.8
FF,2025-03-01,95.0,-1.9,5.8,ball,11,B,,,2390,6.5,S,R,,0.02,
`

func TestParse(t *testing.T) {
	Convey("Given a Savant export", t, func() {
		Convey("When all game types are kept", func() {
			events, err := statcast.Parse([]byte(export), false)
			So(err, ShouldBeNil)
			So(len(events), ShouldEqual, 3)

			Convey("Then movement is converted to inches once", func() {
				So(events[0].PfxX, ShouldAlmostEqual, -9.0, 1e-9)
				So(events[0].PfxZ, ShouldAlmostEqual, 18.0, 1e-9)
				So(events[1].PfxX, ShouldAlmostEqual, 3.0, 1e-9)
			})

			Convey("Then blank cells are NaN", func() {
				So(math.IsNaN(events[0].EstimatedWOBA), ShouldBeTrue)
				So(math.IsNaN(events[2].PfxX), ShouldBeTrue)
				So(math.IsNaN(events[2].ArmAngle), ShouldBeTrue)
			})

			Convey("Then the remaining columns map across", func() {
				e := events[1]
				So(e.PitchType, ShouldEqual, "SL")
				So(e.Description, ShouldEqual, "hit_into_play")
				So(e.Type, ShouldEqual, "X")
				So(e.BattedBall(), ShouldBeTrue)
				So(e.Zone, ShouldEqual, 12)
				So(e.ReleaseSpeed, ShouldEqual, 86.0)
				So(e.ReleaseSpinRate, ShouldEqual, 2600)
				So(e.ReleaseExtension, ShouldEqual, 6.4)
				So(e.EstimatedWOBA, ShouldEqual, 0.412)
				So(e.DeltaRunExp, ShouldEqual, -0.3)
				So(e.PThrows, ShouldEqual, "R")
				So(e.GameDate, ShouldEqual, "2025-04-02")
				So(e.ArmAngle, ShouldEqual, 40.8)
			})
		})

		Convey("When only the regular season is kept", func() {
			events, err := statcast.Parse([]byte(export), true)
			So(err, ShouldBeNil)
			So(len(events), ShouldEqual, 2)
			for _, e := range events {
				So(e.GameType, ShouldEqual, statcast.RegularSeason)
			}
		})
	})

	Convey("Given an empty export", t, func() {
		events, err := statcast.Parse(nil, true)
		So(err, ShouldBeNil)
		So(events, ShouldBeEmpty)

		events, err = statcast.Parse([]byte("pitch_type,description\n"), true)
		So(err, ShouldBeNil)
		So(events, ShouldBeEmpty)
	})

	Convey("Given an export without descriptions", t, func() {
		_, err := statcast.Parse([]byte("pitch_type,zone\nFF,5\n"), false)
		So(errors.Is(err, statcast.ErrMissingColumn), ShouldBeTrue)
	})
}

func TestPitcherEvents(t *testing.T) {
	_ = logger.Init()

	var gotQuery map[string][]string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotQuery = r.URL.Query()
		w.Header().Set("Content-Type", "text/csv")
		_, _ = w.Write([]byte(export))
	}))
	defer srv.Close()

	Convey("Given a client against a fake Savant", t, func() {
		c := statcast.New(srv.URL, statcast.WithRegularSeasonOnly(true), statcast.WithHTTP(provider.WithUserAgent("test")))
		ctx := context.Background()

		Convey("When events are requested", func() {
			events, err := c.PitcherEvents(ctx, 669373, "2025-03-15", "2025-10-01")

			Convey("Then the query names the pitcher and window", func() {
				So(err, ShouldBeNil)
				So(len(events), ShouldEqual, 2)
				So(gotQuery["pitchers_lookup[]"], ShouldResemble, []string{"669373"})
				So(gotQuery["game_date_gt"], ShouldResemble, []string{"2025-03-15"})
				So(gotQuery["game_date_lt"], ShouldResemble, []string{"2025-10-01"})
				So(gotQuery["player_type"], ShouldResemble, []string{"pitcher"})
			})
		})

		Convey("When the query is invalid", func() {
			_, err := c.PitcherEvents(ctx, 0, "2025-03-15", "2025-10-01")
			So(errors.Is(err, statcast.ErrInvalidQuery), ShouldBeTrue)
			_, err = c.PitcherEvents(ctx, 1, "03/15/2025", "2025-10-01")
			So(errors.Is(err, statcast.ErrInvalidQuery), ShouldBeTrue)
			_, err = c.PitcherEvents(ctx, 1, "2025-10-01", "2025-03-15")
			So(errors.Is(err, statcast.ErrInvalidQuery), ShouldBeTrue)
		})
	})
}
