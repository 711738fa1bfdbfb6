package table_test

import (
	"math"
	"testing"

	"github.com/okian/pitchcard/internal/domain/model"
	"github.com/okian/pitchcard/internal/domain/normalize"
	"github.com/okian/pitchcard/internal/domain/table"
	. "github.com/smartystreets/goconvey/convey"
)

func TestFormat(t *testing.T) {
	Convey("Given value formats", t, func() {
		So(table.Format{Digits: 1}.Apply(95.34), ShouldEqual, "95.3")
		So(table.Format{Digits: 0}.Apply(2412.6), ShouldEqual, "2413")
		So(table.Format{Digits: 3}.Apply(0.3457), ShouldEqual, "0.346")
		So(table.Format{Digits: 1, Percent: true}.Apply(0.4567), ShouldEqual, "45.7%")
		So(table.Format{Digits: 1, Percent: true}.Apply(1), ShouldEqual, "100.0%")
		So(table.Format{Digits: 1}.Apply(math.NaN()), ShouldEqual, table.Placeholder)
	})
}

func TestBuild(t *testing.T) {
	Convey("Given a slider row and the All row", t, func() {
		nan := math.NaN()
		rows := []model.PitchTypeSummary{
			{
				PitchType: "SL", Count: 40, PitchUsage: 0.4, ReleaseSpeed: 86.04, PfxZ: 1.26, PfxX: -5.5,
				ReleaseSpinRate: 2501.4, ReleasePosX: -1.92, ReleasePosZ: 5.81, ReleaseExtension: 6.44,
				DeltaRunExpPer100: -1.234, InZoneRate: 0.45, ChaseRate: nan, WhiffRate: 0.381, XwOBACon: 0.2914,
			},
			{
				PitchType: model.AllPitchType, Count: 100, PitchUsage: 1, ReleaseSpeed: nan, PfxZ: nan, PfxX: nan,
				ReleaseSpinRate: nan, ReleasePosX: nan, ReleasePosZ: nan, ReleaseExtension: 6.5,
				DeltaRunExpPer100: 0.5, InZoneRate: 0.5, ChaseRate: 0.3, WhiffRate: 0.25, XwOBACon: 0.35,
			},
		}
		colors := [][]string{make([]string, len(model.TableColumns))}
		for i := range colors[0] {
			colors[0][i] = "#abcdef"
		}

		tbl := table.Build(rows, colors)

		Convey("Then headers follow the table column order", func() {
			So(tbl.Headers, ShouldResemble, []string{
				"Pitch Name", "Count", "Pitch%", "Velocity", "iVB", "HB", "Spin", "hRel", "vRel",
				"Ext.", "RV/100", "Zone%", "Chase%", "Whiff%", "xwOBAcon",
			})
		})

		Convey("Then the slider row is formatted", func() {
			texts := make([]string, 0, len(tbl.Rows[0].Cells))
			for _, c := range tbl.Rows[0].Cells {
				texts = append(texts, c.Text)
			}
			So(texts, ShouldResemble, []string{
				"Slider", "40", "40.0%", "86.0", "1.3", "-5.5", "2501", "-1.9", "5.8",
				"6.4", "-1.2", "45.0%", "—", "38.1%", "0.291",
			})
			So(tbl.Rows[0].Swatch, ShouldEqual, "#FFCC00")
			So(tbl.Rows[0].Label, ShouldEqual, "#000000")
			So(tbl.Rows[0].Cells[3].Background, ShouldEqual, "#abcdef")
		})

		Convey("Then the All row shows placeholders and neutral cells", func() {
			all := tbl.Rows[1]
			So(all.Cells[0].Text, ShouldEqual, "All")
			So(all.Cells[2].Text, ShouldEqual, "100.0%")
			So(all.Cells[3].Text, ShouldEqual, table.Placeholder)
			So(all.Cells[9].Text, ShouldEqual, "6.5")
			for _, c := range all.Cells {
				So(c.Background, ShouldEqual, normalize.Neutral)
			}
		})
	})

	Convey("Given an unknown pitch code", t, func() {
		tbl := table.Build([]model.PitchTypeSummary{{PitchType: "ZZ", Count: 1, PitchUsage: 1}}, nil)
		So(tbl.Rows[0].Cells[0].Text, ShouldEqual, "ZZ")
		So(tbl.Rows[0].Swatch, ShouldEqual, "#808080")
	})
}
