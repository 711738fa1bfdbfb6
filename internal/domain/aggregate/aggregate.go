// Package aggregate turns annotated pitch events into per-pitch-type summaries.
package aggregate

import (
	"cmp"
	"math"
	"slices"

	"github.com/samber/lo"

	"github.com/okian/pitchcard/internal/domain/model"
)

// Summarize groups events by pitch type and appends the "All" row.
//
// Events must already carry their facets (see classify.Annotate). Events
// without a pitch type get no row of their own and are left out of pitch
// counts, but their swings, zone facets, run value and batted balls still
// feed the "All" row. Rows are ordered by usage, highest first, ties broken
// by pitch type; the "All" row is always last. An input with no typed pitch
// yields an empty result.
func Summarize(events []model.PitchEvent) []model.PitchTypeSummary {
	typed := lo.Filter(events, func(e model.PitchEvent, _ int) bool { return e.PitchType != "" })
	if len(typed) == 0 {
		return []model.PitchTypeSummary{}
	}

	total := len(typed)
	groups := lo.GroupBy(typed, func(e model.PitchEvent) string { return e.PitchType })

	rows := make([]model.PitchTypeSummary, 0, len(groups)+1)
	for pitchType, group := range groups {
		rows = append(rows, summarizeGroup(pitchType, group, total))
	}
	slices.SortFunc(rows, func(a, b model.PitchTypeSummary) int {
		if c := cmp.Compare(b.PitchUsage, a.PitchUsage); c != 0 {
			return c
		}
		return cmp.Compare(a.PitchType, b.PitchType)
	})

	return append(rows, summarizeAll(events, total))
}

func summarizeGroup(pitchType string, group []model.PitchEvent, total int) model.PitchTypeSummary {
	t := tally(group)
	n := len(group)
	return model.PitchTypeSummary{
		PitchType:         pitchType,
		Count:             n,
		ReleaseSpeed:      mean(group, func(e model.PitchEvent) float64 { return e.ReleaseSpeed }),
		PfxZ:              mean(group, func(e model.PitchEvent) float64 { return e.PfxZ }),
		PfxX:              mean(group, func(e model.PitchEvent) float64 { return e.PfxX }),
		ReleaseSpinRate:   mean(group, func(e model.PitchEvent) float64 { return e.ReleaseSpinRate }),
		ReleasePosX:       mean(group, func(e model.PitchEvent) float64 { return e.ReleasePosX }),
		ReleasePosZ:       mean(group, func(e model.PitchEvent) float64 { return e.ReleasePosZ }),
		ReleaseExtension:  mean(group, func(e model.PitchEvent) float64 { return e.ReleaseExtension }),
		DeltaRunExp:       t.deltaRunExp,
		Swings:            t.swings,
		Whiffs:            t.whiffs,
		InZone:            t.inZone,
		OutZone:           t.outZone,
		Chases:            t.chases,
		XwOBACon:          xwOBACon(group),
		PitchUsage:        float64(n) / float64(total),
		WhiffRate:         ratio(t.whiffs, t.swings),
		InZoneRate:        ratio(t.inZone, n),
		ChaseRate:         ratio(t.chases, t.outZone),
		DeltaRunExpPer100: -t.deltaRunExp / float64(n) * 100,
	}
}

// summarizeAll computes the "All" row from the whole event set so that no
// per-type weighting leaks into the rates. n is the typed pitch count.
func summarizeAll(events []model.PitchEvent, n int) model.PitchTypeSummary {
	t := tally(events)
	nan := math.NaN()
	return model.PitchTypeSummary{
		PitchType:         model.AllPitchType,
		Count:             n,
		ReleaseSpeed:      nan,
		PfxZ:              nan,
		PfxX:              nan,
		ReleaseSpinRate:   nan,
		ReleasePosX:       nan,
		ReleasePosZ:       nan,
		ReleaseExtension:  mean(events, func(e model.PitchEvent) float64 { return e.ReleaseExtension }),
		DeltaRunExp:       t.deltaRunExp,
		Swings:            t.swings,
		Whiffs:            t.whiffs,
		InZone:            t.inZone,
		OutZone:           t.outZone,
		Chases:            t.chases,
		XwOBACon:          xwOBACon(events),
		PitchUsage:        1.0,
		WhiffRate:         ratio(t.whiffs, t.swings),
		InZoneRate:        ratio(t.inZone, n),
		ChaseRate:         ratio(t.chases, t.outZone),
		DeltaRunExpPer100: -t.deltaRunExp / float64(n) * 100,
	}
}

type counts struct {
	swings, whiffs, inZone, outZone, chases int
	deltaRunExp                             float64
}

func tally(events []model.PitchEvent) counts {
	var c counts
	for _, e := range events {
		if e.Swing {
			c.swings++
		}
		if e.Whiff {
			c.whiffs++
		}
		if e.InZone {
			c.inZone++
		}
		if e.OutZone {
			c.outZone++
		}
		if e.Chase {
			c.chases++
		}
		if !math.IsNaN(e.DeltaRunExp) {
			c.deltaRunExp += e.DeltaRunExp
		}
	}
	return c
}

// xwOBACon averages expected wOBA over batted balls, NaN when there are none.
func xwOBACon(events []model.PitchEvent) float64 {
	batted := lo.Filter(events, func(e model.PitchEvent, _ int) bool { return e.BattedBall() })
	return mean(batted, func(e model.PitchEvent) float64 { return e.EstimatedWOBA })
}

// mean skips NaN values and returns NaN when nothing is left.
func mean(events []model.PitchEvent, field func(model.PitchEvent) float64) float64 {
	var sum float64
	var n int
	for _, e := range events {
		v := field(e)
		if math.IsNaN(v) {
			continue
		}
		sum += v
		n++
	}
	if n == 0 {
		return math.NaN()
	}
	return sum / float64(n)
}

func ratio(num, den int) float64 {
	if den == 0 {
		return math.NaN()
	}
	return float64(num) / float64(den)
}
