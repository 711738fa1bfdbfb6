package model

import "math"

// AllPitchType labels the synthetic row summarizing every pitch.
const AllPitchType = "All"

// Statistic names shared by summaries, league reference rows and tables.
const (
	StatPitch             = "pitch"
	StatPitchUsage        = "pitch_usage"
	StatReleaseSpeed      = "release_speed"
	StatPfxZ              = "pfx_z"
	StatPfxX              = "pfx_x"
	StatReleaseSpinRate   = "release_spin_rate"
	StatReleasePosX       = "release_pos_x"
	StatReleasePosZ       = "release_pos_z"
	StatReleaseExtension  = "release_extension"
	StatDeltaRunExpPer100 = "delta_run_exp_per_100"
	StatInZoneRate        = "in_zone_rate"
	StatChaseRate         = "chase_rate"
	StatWhiffRate         = "whiff_rate"
	StatXwOBACon          = "xwobacon"
	StatPitchDescription  = "pitch_description"
)

// TableColumns is the column order of the pitch table.
var TableColumns = []string{
	StatPitchDescription,
	StatPitch,
	StatPitchUsage,
	StatReleaseSpeed,
	StatPfxZ,
	StatPfxX,
	StatReleaseSpinRate,
	StatReleasePosX,
	StatReleasePosZ,
	StatReleaseExtension,
	StatDeltaRunExpPer100,
	StatInZoneRate,
	StatChaseRate,
	StatWhiffRate,
	StatXwOBACon,
}

// PitchTypeSummary is one aggregated row per pitch type, or the "All" row.
// Ratios are NaN when their denominator is zero.
type PitchTypeSummary struct {
	PitchType string
	Count     int

	ReleaseSpeed     float64
	PfxZ             float64
	PfxX             float64
	ReleaseSpinRate  float64
	ReleasePosX      float64
	ReleasePosZ      float64
	ReleaseExtension float64

	DeltaRunExp float64
	Swings      int
	Whiffs      int
	InZone      int
	OutZone     int
	Chases      int

	XwOBACon          float64
	PitchUsage        float64
	WhiffRate         float64
	InZoneRate        float64
	ChaseRate         float64
	DeltaRunExpPer100 float64
}

// IsAll reports whether s is the synthetic all-pitches row.
func (s PitchTypeSummary) IsAll() bool { return s.PitchType == AllPitchType }

// Stat returns the numeric statistic called name. ok is false for names
// that are not numeric summary columns.
func (s PitchTypeSummary) Stat(name string) (float64, bool) {
	switch name {
	case StatPitch:
		return float64(s.Count), true
	case StatPitchUsage:
		return s.PitchUsage, true
	case StatReleaseSpeed:
		return s.ReleaseSpeed, true
	case StatPfxZ:
		return s.PfxZ, true
	case StatPfxX:
		return s.PfxX, true
	case StatReleaseSpinRate:
		return s.ReleaseSpinRate, true
	case StatReleasePosX:
		return s.ReleasePosX, true
	case StatReleasePosZ:
		return s.ReleasePosZ, true
	case StatReleaseExtension:
		return s.ReleaseExtension, true
	case StatDeltaRunExpPer100:
		return s.DeltaRunExpPer100, true
	case StatInZoneRate:
		return s.InZoneRate, true
	case StatChaseRate:
		return s.ChaseRate, true
	case StatWhiffRate:
		return s.WhiffRate, true
	case StatXwOBACon:
		return s.XwOBACon, true
	}
	return math.NaN(), false
}

// LeagueRow is one row of the league-average reference table. PThrows is
// empty when the table carries no handedness split.
type LeagueRow struct {
	PitchType string
	PThrows   string
	Values    map[string]float64
}

// Value returns the league value for stat, NaN when absent.
func (r LeagueRow) Value(stat string) float64 {
	if v, ok := r.Values[stat]; ok {
		return v
	}
	return math.NaN()
}

// MovementRow is the league-average movement for a pitch type and hand.
type MovementRow struct {
	PitchType string
	PThrows   string
	PfxX      float64
	PfxZ      float64
}
