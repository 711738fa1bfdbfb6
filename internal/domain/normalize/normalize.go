// Package normalize colors pitch statistics relative to league averages.
package normalize

import (
	"math"

	"github.com/okian/pitchcard/internal/domain/model"
)

// Neutral is the color of cells that are not compared to the league.
const Neutral = "#ffffff"

// Ramps used by the pitch table and the percentile panel.
var (
	Diverging = NewRamp("#648FFF", "#FFFFFF", "#FFB000")
	Coolwarm  = NewRamp("#3B4CC0", "#DDDDDD", "#B40426")
)

// runValueBand is the fixed band for run value per 100 pitches.
const runValueBand = 1.5

// ColoredStats lists the statistics that receive a league-relative color.
var ColoredStats = []string{
	model.StatReleaseSpeed,
	model.StatReleaseExtension,
	model.StatDeltaRunExpPer100,
	model.StatWhiffRate,
	model.StatInZoneRate,
	model.StatChaseRate,
	model.StatXwOBACon,
}

// IsColored reports whether stat is in ColoredStats.
func IsColored(stat string) bool {
	for _, s := range ColoredStats {
		if s == stat {
			return true
		}
	}
	return false
}

// Band returns the normalization range for stat given the league mean.
func Band(stat string, leagueMean float64) (lo, hi float64) {
	switch stat {
	case model.StatDeltaRunExpPer100:
		return -runValueBand, runValueBand
	case model.StatReleaseSpeed:
		return leagueMean * 0.95, leagueMean * 1.05
	default:
		return leagueMean * 0.7, leagueMean * 1.3
	}
}

// Color maps value onto the diverging ramp for stat. leagueMean is ignored
// for run value, which uses a fixed band. A NaN value, or a NaN league mean
// where one is needed, yields Neutral.
func Color(stat string, value, leagueMean float64) string {
	if math.IsNaN(value) {
		return Neutral
	}
	if stat != model.StatDeltaRunExpPer100 && math.IsNaN(leagueMean) {
		return Neutral
	}
	lo, hi := Band(stat, leagueMean)

	var x float64
	if hi != lo {
		x = (value - lo) / (hi - lo)
	}

	ramp := Diverging
	if stat == model.StatXwOBACon {
		ramp = Diverging.Reversed()
	}
	return ramp.At(x)
}

// Reference is the league-average lookup keyed by pitch type and, where the
// table carries it, pitcher handedness.
type Reference struct {
	byType map[string][]model.LeagueRow
}

// NewReference indexes rows by pitch type.
func NewReference(rows []model.LeagueRow) *Reference {
	r := &Reference{byType: make(map[string][]model.LeagueRow)}
	for _, row := range rows {
		r.byType[row.PitchType] = append(r.byType[row.PitchType], row)
	}
	return r
}

// Len returns the number of reference rows.
func (r *Reference) Len() int {
	if r == nil {
		return 0
	}
	n := 0
	for _, rows := range r.byType {
		n += len(rows)
	}
	return n
}

// Mean returns the league mean of stat for pitchType. When hand is set and
// the matching rows carry a handedness split, only rows for that hand count.
// The result is NaN when no row matches.
func (r *Reference) Mean(stat, pitchType, hand string) float64 {
	if r == nil {
		return math.NaN()
	}
	rows := r.byType[pitchType]
	if hand != "" && split(rows) {
		var narrowed []model.LeagueRow
		for _, row := range rows {
			if row.PThrows == hand {
				narrowed = append(narrowed, row)
			}
		}
		rows = narrowed
	}

	var sum float64
	var n int
	for _, row := range rows {
		v := row.Value(stat)
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

func split(rows []model.LeagueRow) bool {
	for _, row := range rows {
		if row.PThrows != "" {
			return true
		}
	}
	return false
}

// CellColor colors one statistic of a summary row.
func (r *Reference) CellColor(row model.PitchTypeSummary, stat, hand string) string {
	if !IsColored(stat) {
		return Neutral
	}
	v, ok := row.Stat(stat)
	if !ok {
		return Neutral
	}
	return Color(stat, v, r.Mean(stat, row.PitchType, hand))
}

// CellColors returns one color per model.TableColumns entry for every row.
func CellColors(rows []model.PitchTypeSummary, ref *Reference, hand string) [][]string {
	out := make([][]string, len(rows))
	for i, row := range rows {
		cells := make([]string, len(model.TableColumns))
		for j, col := range model.TableColumns {
			cells[j] = ref.CellColor(row, col, hand)
		}
		out[i] = cells
	}
	return out
}
