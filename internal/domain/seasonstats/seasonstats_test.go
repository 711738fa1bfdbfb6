package seasonstats_test

import (
	"encoding/json"
	"testing"

	"github.com/okian/pitchcard/internal/domain/model"
	"github.com/okian/pitchcard/internal/domain/seasonstats"
	. "github.com/smartystreets/goconvey/convey"
)

func TestBuild(t *testing.T) {
	Convey("Given a leaderboard line", t, func() {
		row := model.LeaderboardRow{
			"xMLBAMID": 694973.0,
			"G":        23.0,
			"GS":       23.0,
			"IP":       133.2,
			"TBF":      json.Number("530"),
			"WHIP":     0.951,
			"ERA":      "1.96",
			"K%":       0.301,
			"BB%":      0.062,
			"GB%":      "---",
			"Team":     "PIT",
		}

		tbl := seasonstats.Build(row, []string{"G", "GS", "IP", "TBF", "WHIP", "ERA", "K%", "BB%", "GB%", "FIP", "Team"})

		Convey("Then headers use display names", func() {
			So(tbl.Headers, ShouldResemble, []string{"G", "GS", "IP", "PA", "WHIP", "ERA", "K%", "BB%", "GB%", "FIP", "Team"})
		})

		Convey("Then values use the per stat formats", func() {
			So(tbl.Values, ShouldResemble, []string{"23", "23", "133.2", "530", "0.95", "1.96", "30.1%", "6.2%", "---", "---", "PIT"})
		})
	})

	Convey("Given a pitcher missing from the leaderboard", t, func() {
		tbl := seasonstats.Build(nil, []string{"IP", "ERA"})
		So(tbl.Values, ShouldResemble, []string{"---", "---"})
	})

	Convey("Given the format table", t, func() {
		So(seasonstats.Known("xFIP"), ShouldBeTrue)
		So(seasonstats.Known("Stuff+"), ShouldBeFalse)
	})
}

func TestLeaderboardRow(t *testing.T) {
	Convey("Given leaderboard rows", t, func() {
		rows := []model.LeaderboardRow{
			{"xMLBAMID": 1.0, "ERA": 3.1},
			{"xMLBAMID": json.Number("2"), "ERA": 4.2},
		}

		Convey("Then players are found by id", func() {
			r, ok := model.FindPlayer(rows, 2)
			So(ok, ShouldBeTrue)
			era, _ := r.Float("ERA")
			So(era, ShouldEqual, 4.2)

			_, ok = model.FindPlayer(rows, 3)
			So(ok, ShouldBeFalse)
		})
	})
}
