package reference_test

import (
	"errors"
	"math"
	"os"
	"path/filepath"
	"testing"

	"github.com/parquet-go/parquet-go"

	"github.com/okian/pitchcard/internal/adapters/reference"
	"github.com/okian/pitchcard/internal/domain/model"
	. "github.com/smartystreets/goconvey/convey"
)

const leagueCSV = `pitch_type,p_throws,release_speed,release_extension,whiff_rate,xwobacon
FF,R,94.3,6.5,0.21,0.371
FF,L,93.1,6.4,0.22,
SL,R,85.6,6.3,0.33,0.312
,R,1,1,1,1
`

const movementCSV = `pitch_type,p_throws,pfx_x,pfx_z
FF,R,-7.1,16.2
FF,L,7.3,15.8
SL,R,4.5,
`

const registerCSV = `key_person,key_mlbam,name_last,name_first,mlb_played_last
a,669373,Skubal,Tarik,2025
b,543037,Cole,Gerrit,2024
c,,Nobody,No,2025
d,-1,Bad,Id,2025
e,669373.0,Skubal,Tarik,2025
f,592450,Judge,Aaron,2025
`

func TestLeague(t *testing.T) {
	Convey("Given a league CSV", t, func() {
		rows, err := reference.ParseLeagueCSV([]byte(leagueCSV))
		So(err, ShouldBeNil)

		Convey("Then rows without a pitch type are dropped", func() {
			So(len(rows), ShouldEqual, 3)
		})

		Convey("Then every other column is a statistic", func() {
			So(rows[0].PitchType, ShouldEqual, "FF")
			So(rows[0].PThrows, ShouldEqual, "R")
			So(rows[0].Value(model.StatReleaseSpeed), ShouldEqual, 94.3)
			So(rows[0].Value(model.StatWhiffRate), ShouldEqual, 0.21)
			So(math.IsNaN(rows[1].Value(model.StatXwOBACon)), ShouldBeTrue)
			So(math.IsNaN(rows[0].Value(model.StatChaseRate)), ShouldBeTrue)
		})
	})

	Convey("Given a table without pitch types", t, func() {
		_, err := reference.ParseLeagueCSV([]byte("release_speed\n94\n"))
		So(errors.Is(err, reference.ErrMissingColumn), ShouldBeTrue)
	})

	Convey("Given files on disk", t, func() {
		dir := t.TempDir()

		Convey("When the league table is a CSV file", func() {
			path := filepath.Join(dir, "league.csv")
			So(os.WriteFile(path, []byte(leagueCSV), 0o600), ShouldBeNil)
			rows, err := reference.LoadLeague(path)
			So(err, ShouldBeNil)
			So(len(rows), ShouldEqual, 3)
		})

		Convey("When the league table is a parquet file", func() {
			path := filepath.Join(dir, "league.parquet")
			speed, hand := 94.3, "R"
			type rec struct {
				PitchType    string   `parquet:"pitch_type"`
				PThrows      *string  `parquet:"p_throws,optional"`
				ReleaseSpeed *float64 `parquet:"release_speed,optional"`
				WhiffRate    *float64 `parquet:"whiff_rate,optional"`
			}
			So(parquet.WriteFile(path, []rec{
				{PitchType: "FF", PThrows: &hand, ReleaseSpeed: &speed},
				{PitchType: "CU"},
			}), ShouldBeNil)

			rows, err := reference.LoadLeague(path)
			So(err, ShouldBeNil)
			So(len(rows), ShouldEqual, 2)
			So(rows[0].PThrows, ShouldEqual, "R")
			So(rows[0].Value(model.StatReleaseSpeed), ShouldEqual, 94.3)
			So(math.IsNaN(rows[0].Value(model.StatWhiffRate)), ShouldBeTrue)
			So(rows[1].PThrows, ShouldEqual, "")
		})

		Convey("When the movement table is a parquet file", func() {
			path := filepath.Join(dir, "movement.parquet")
			x, z := -7.1, 16.2
			type rec struct {
				PitchType string   `parquet:"pitch_type"`
				PThrows   string   `parquet:"p_throws"`
				PfxX      *float64 `parquet:"pfx_x,optional"`
				PfxZ      *float64 `parquet:"pfx_z,optional"`
			}
			So(parquet.WriteFile(path, []rec{{PitchType: "FF", PThrows: "R", PfxX: &x, PfxZ: &z}}), ShouldBeNil)

			rows, err := reference.LoadMovement(path)
			So(err, ShouldBeNil)
			So(rows, ShouldResemble, []model.MovementRow{{PitchType: "FF", PThrows: "R", PfxX: -7.1, PfxZ: 16.2}})
		})

		Convey("When the extension is unknown", func() {
			_, err := reference.LoadLeague(filepath.Join(dir, "league.xlsx"))
			So(errors.Is(err, reference.ErrUnsupportedFormat), ShouldBeTrue)
		})

		Convey("When the file is missing", func() {
			_, err := reference.LoadMovement(filepath.Join(dir, "missing.csv"))
			So(errors.Is(err, os.ErrNotExist), ShouldBeTrue)
		})
	})
}

func TestMovement(t *testing.T) {
	Convey("Given a movement CSV", t, func() {
		rows, err := reference.ParseMovementCSV([]byte(movementCSV))
		So(err, ShouldBeNil)
		So(len(rows), ShouldEqual, 3)
		So(rows[1].PfxX, ShouldEqual, 7.3)
		So(math.IsNaN(rows[2].PfxZ), ShouldBeTrue)
	})

	Convey("Given a movement CSV without hands", t, func() {
		_, err := reference.ParseMovementCSV([]byte("pitch_type,pfx_x,pfx_z\nFF,1,2\n"))
		So(errors.Is(err, reference.ErrMissingColumn), ShouldBeTrue)
	})
}

func TestRegister(t *testing.T) {
	Convey("Given a people register", t, func() {
		Convey("When filtered to the 2025 season", func() {
			players, err := reference.ParseRegisterCSV([]byte(registerCSV), 2025)
			So(err, ShouldBeNil)

			Convey("Then only valid, unique, current ids remain", func() {
				So(len(players), ShouldEqual, 2)
				So(players[0].ID, ShouldEqual, 669373)
				So(players[0].FullName(), ShouldEqual, "Tarik Skubal")
				So(players[1].ID, ShouldEqual, 592450)
			})

			Convey("Then enrichment fields start Unknown", func() {
				So(players[0].Team, ShouldEqual, model.Unknown)
				So(players[0].Position, ShouldEqual, model.Unknown)
				So(players[0].Level, ShouldEqual, model.Unknown)
			})
		})

		Convey("When every season is kept", func() {
			players, err := reference.ParseRegisterCSV([]byte(registerCSV), 0)
			So(err, ShouldBeNil)
			So(len(players), ShouldEqual, 3)
		})
	})

	Convey("Given a register without ids", t, func() {
		_, err := reference.ParseRegisterCSV([]byte("name_first\nX\n"), 2025)
		So(errors.Is(err, reference.ErrMissingColumn), ShouldBeTrue)
	})
}
