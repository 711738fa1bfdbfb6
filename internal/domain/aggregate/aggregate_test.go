package aggregate_test

import (
	"math"
	"testing"

	"github.com/okian/pitchcard/internal/domain/aggregate"
	"github.com/okian/pitchcard/internal/domain/classify"
	"github.com/okian/pitchcard/internal/domain/model"
	. "github.com/smartystreets/goconvey/convey"
)

type pitch struct {
	pitchType string
	desc      string
	zone      float64
	speed     float64
	ext       float64
	dre       float64
	typ       string
	woba      float64
}

func build(ps ...pitch) []model.PitchEvent {
	out := make([]model.PitchEvent, 0, len(ps))
	for _, p := range ps {
		e := model.NewPitchEvent(p.pitchType, p.desc)
		e.Zone = p.zone
		e.ReleaseSpeed = p.speed
		e.ReleaseExtension = p.ext
		e.DeltaRunExp = p.dre
		e.Type = p.typ
		e.EstimatedWOBA = p.woba
		out = append(out, e)
	}
	return classify.Annotate(out)
}

func find(rows []model.PitchTypeSummary, pitchType string) model.PitchTypeSummary {
	for _, r := range rows {
		if r.PitchType == pitchType {
			return r
		}
	}
	return model.PitchTypeSummary{}
}

func TestSummarize(t *testing.T) {
	nan := math.NaN()

	Convey("Given three fastballs in zones 5, 11 and 14", t, func() {
		rows := aggregate.Summarize(build(
			pitch{"FF", "called_strike", 5, 95, 6.5, 0.01, "S", nan},
			pitch{"FF", "swinging_strike", 11, 96, 6.7, -0.05, "S", nan},
			pitch{"FF", "ball", 14, 97, 6.6, 0.03, "B", nan},
		))

		Convey("Then there is one FF row and the All row", func() {
			So(len(rows), ShouldEqual, 2)
			So(rows[0].PitchType, ShouldEqual, "FF")
			So(rows[1].PitchType, ShouldEqual, model.AllPitchType)
		})

		Convey("Then the FF rates match", func() {
			ff := rows[0]
			So(ff.Count, ShouldEqual, 3)
			So(ff.WhiffRate, ShouldEqual, 1.0)
			So(ff.ChaseRate, ShouldEqual, 0.5)
			So(ff.InZoneRate, ShouldAlmostEqual, 1.0/3.0, 1e-12)
			So(ff.PitchUsage, ShouldEqual, 1.0)
			So(ff.ReleaseSpeed, ShouldAlmostEqual, 96, 1e-12)
			So(ff.DeltaRunExpPer100, ShouldAlmostEqual, 1/3.0, 1e-9)
		})

		Convey("Then xwOBA on contact is NaN without batted balls", func() {
			So(math.IsNaN(rows[0].XwOBACon), ShouldBeTrue)
			So(math.IsNaN(rows[1].XwOBACon), ShouldBeTrue)
		})
	})

	Convey("Given a mixed arsenal", t, func() {
		events := build(
			pitch{"FF", "called_strike", 5, 95, 6.5, 0.02, "S", nan},
			pitch{"FF", "hit_into_play", 4, 96, 6.5, 0.10, "X", 0.400},
			pitch{"FF", "foul", 12, 95, 6.4, 0.00, "S", nan},
			pitch{"FF", "ball", 13, 94, 6.6, 0.01, "B", nan},
			pitch{"SL", "swinging_strike", 14, 85, 6.2, -0.06, "S", nan},
			pitch{"SL", "hit_into_play", 7, 86, 6.1, -0.20, "X", 0.200},
			pitch{"SL", "hit_into_play", 8, 86, 6.1, 0.30, "X", nan},
			pitch{"CH", "ball", 11, 88, 6.3, 0.02, "B", nan},
			pitch{"XX", "ball", 11, nan, nan, nan, "B", nan},
		)
		rows := aggregate.Summarize(events)

		Convey("Then rows are ordered by usage with ties broken by pitch type", func() {
			order := make([]string, len(rows))
			for i, r := range rows {
				order[i] = r.PitchType
			}
			So(order, ShouldResemble, []string{"FF", "SL", "CH", "XX", "All"})
		})

		Convey("Then usage of the real rows sums to one", func() {
			var sum float64
			for _, r := range rows[:len(rows)-1] {
				sum += r.PitchUsage
			}
			So(sum, ShouldAlmostEqual, 1.0, 1e-9)
		})

		Convey("Then usage can be re-derived from raw counts", func() {
			total := 0
			for _, r := range rows[:len(rows)-1] {
				total += r.Count
			}
			for _, r := range rows[:len(rows)-1] {
				So(math.Abs(float64(r.Count)/float64(total)-r.PitchUsage), ShouldBeLessThan, 1e-9)
			}
		})

		Convey("Then xwOBA on contact skips missing values", func() {
			So(find(rows, "FF").XwOBACon, ShouldAlmostEqual, 0.400, 1e-12)
			So(find(rows, "SL").XwOBACon, ShouldAlmostEqual, 0.200, 1e-12)
			So(find(rows, model.AllPitchType).XwOBACon, ShouldAlmostEqual, 0.300, 1e-12)
		})

		Convey("Then a rate with no swings is NaN while a zero chase count is zero", func() {
			ch := find(rows, "CH")
			So(ch.ChaseRate, ShouldEqual, 0)
			So(math.IsNaN(ch.WhiffRate), ShouldBeTrue)
		})

		Convey("Then unknown codes keep their own group", func() {
			xx := find(rows, "XX")
			So(xx.Count, ShouldEqual, 1)
			So(math.IsNaN(xx.ReleaseSpeed), ShouldBeTrue)
			So(xx.DeltaRunExpPer100, ShouldEqual, 0)
		})

		Convey("Then the All row is computed from the raw events", func() {
			all := rows[len(rows)-1]
			So(all.Count, ShouldEqual, 9)
			So(all.PitchUsage, ShouldEqual, 1.0)
			So(math.IsNaN(all.ReleaseSpeed), ShouldBeTrue)
			So(math.IsNaN(all.PfxX), ShouldBeTrue)
			So(math.IsNaN(all.ReleaseSpinRate), ShouldBeTrue)
			So(all.Swings, ShouldEqual, 5)
			So(all.Whiffs, ShouldEqual, 1)
			So(all.WhiffRate, ShouldAlmostEqual, 0.2, 1e-12)
			So(all.InZoneRate, ShouldAlmostEqual, 4.0/9.0, 1e-12)
			So(all.ChaseRate, ShouldAlmostEqual, 2.0/5.0, 1e-12)
			So(all.ReleaseExtension, ShouldAlmostEqual, (6.5+6.5+6.4+6.6+6.2+6.1+6.1+6.3)/8, 1e-12)
			So(all.DeltaRunExpPer100, ShouldAlmostEqual, -0.19/9*100, 1e-9)
		})
	})

	Convey("Given a pitch type with no out-of-zone pitches", t, func() {
		rows := aggregate.Summarize(build(
			pitch{"CU", "swinging_strike", 3, 80, 6, 0, "S", nan},
			pitch{"CU", "called_strike", 10, 79, 6, 0, "S", nan},
		))

		Convey("Then chase rate is NaN and nothing panics", func() {
			So(math.IsNaN(rows[0].ChaseRate), ShouldBeTrue)
			So(rows[0].WhiffRate, ShouldEqual, 1.0)
		})
	})

	Convey("Given a skewed distribution", t, func() {
		var ps []pitch
		for i := 0; i < 97; i++ {
			ps = append(ps, pitch{"SI", "ball", 12, 93, 6, 0, "B", nan})
		}
		ps = append(ps, pitch{"FS", "ball", 12, 86, 6, 0, "B", nan}, pitch{"FS", "ball", 12, 86, 6, 0, "B", nan}, pitch{"KN", "ball", 12, 70, 6, 0, "B", nan})
		rows := aggregate.Summarize(build(ps...))

		Convey("Then the All row usage is still exactly one", func() {
			So(rows[len(rows)-1].PitchUsage, ShouldEqual, 1.0)
			So(rows[0].PitchType, ShouldEqual, "SI")
		})
	})

	Convey("Given no events", t, func() {
		var rows []model.PitchTypeSummary
		So(func() { rows = aggregate.Summarize(nil) }, ShouldNotPanic)

		Convey("Then the result is empty with no All row", func() {
			So(rows, ShouldNotBeNil)
			So(len(rows), ShouldEqual, 0)
		})
	})

	Convey("Given typed fastballs mixed with pitches of no type", t, func() {
		rows := aggregate.Summarize(build(
			pitch{"FF", "called_strike", 5, 95, 6.5, 0.02, "S", nan},
			pitch{"FF", "ball", 13, 96, 6.5, 0.01, "B", nan},
			pitch{"", "swinging_strike", 12, nan, 6.0, 0.03, "S", nan},
			pitch{"", "hit_into_play", 5, nan, 6.0, -0.10, "X", 0.9},
		))

		Convey("Then untyped pitches get no row and no usage share", func() {
			So(len(rows), ShouldEqual, 2)
			So(rows[0].PitchType, ShouldEqual, "FF")
			So(rows[0].PitchUsage, ShouldEqual, 1.0)
			So(rows[0].Swings, ShouldEqual, 0)
		})

		Convey("Then the All row counts typed pitches but tallies every event", func() {
			all := rows[1]
			So(all.PitchType, ShouldEqual, model.AllPitchType)
			So(all.Count, ShouldEqual, 2)
			So(all.Swings, ShouldEqual, 2)
			So(all.Whiffs, ShouldEqual, 1)
			So(all.WhiffRate, ShouldAlmostEqual, 0.5, 1e-12)
			So(all.InZoneRate, ShouldAlmostEqual, 1.0, 1e-12)
			So(all.ChaseRate, ShouldAlmostEqual, 0.5, 1e-12)
			So(all.XwOBACon, ShouldAlmostEqual, 0.9, 1e-12)
			So(all.ReleaseExtension, ShouldAlmostEqual, 6.25, 1e-12)
			So(all.DeltaRunExpPer100, ShouldAlmostEqual, 2.0, 1e-9)
		})
	})

	Convey("Given only events without a pitch type", t, func() {
		rows := aggregate.Summarize(build(pitch{"", "ball", 12, 90, 6, 0, "B", nan}))
		So(len(rows), ShouldEqual, 0)
	})
}
