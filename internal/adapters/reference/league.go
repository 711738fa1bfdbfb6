// Package reference loads the static tables the card compares against: the
// league averages per pitch type, league movement, and the people register
// that seeds the roster.
package reference

import (
	"fmt"
	"math"
	"os"
	"path/filepath"
	"strings"

	"github.com/parquet-go/parquet-go"

	"github.com/okian/pitchcard/internal/adapters/csvrows"
	"github.com/okian/pitchcard/internal/domain/model"
)

const (
	colPitchType = "pitch_type"
	colPThrows   = "p_throws"
)

// leagueRecord is the parquet layout of the league average table.
type leagueRecord struct {
	PitchType         string   `parquet:"pitch_type"`
	PThrows           *string  `parquet:"p_throws,optional"`
	Pitch             *float64 `parquet:"pitch,optional"`
	PitchUsage        *float64 `parquet:"pitch_usage,optional"`
	ReleaseSpeed      *float64 `parquet:"release_speed,optional"`
	PfxZ              *float64 `parquet:"pfx_z,optional"`
	PfxX              *float64 `parquet:"pfx_x,optional"`
	ReleaseSpinRate   *float64 `parquet:"release_spin_rate,optional"`
	ReleasePosX       *float64 `parquet:"release_pos_x,optional"`
	ReleasePosZ       *float64 `parquet:"release_pos_z,optional"`
	ReleaseExtension  *float64 `parquet:"release_extension,optional"`
	DeltaRunExpPer100 *float64 `parquet:"delta_run_exp_per_100,optional"`
	InZoneRate        *float64 `parquet:"in_zone_rate,optional"`
	ChaseRate         *float64 `parquet:"chase_rate,optional"`
	WhiffRate         *float64 `parquet:"whiff_rate,optional"`
	XwOBACon          *float64 `parquet:"xwobacon,optional"`
}

// movementRecord is the parquet layout of the league movement table.
type movementRecord struct {
	PitchType string   `parquet:"pitch_type"`
	PThrows   string   `parquet:"p_throws"`
	PfxX      *float64 `parquet:"pfx_x,optional"`
	PfxZ      *float64 `parquet:"pfx_z,optional"`
}

// LoadLeague reads the league average table from a .csv or .parquet file.
func LoadLeague(path string) ([]model.LeagueRow, error) {
	switch ext(path) {
	case ".csv":
		b, err := os.ReadFile(path)
		if err != nil {
			return nil, fmt.Errorf("league reference: %w", err)
		}
		return ParseLeagueCSV(b)
	case ".parquet":
		recs, err := parquet.ReadFile[leagueRecord](path)
		if err != nil {
			return nil, fmt.Errorf("league reference %s: %w", path, err)
		}
		out := make([]model.LeagueRow, 0, len(recs))
		for _, r := range recs {
			out = append(out, r.row())
		}
		return out, nil
	default:
		return nil, fmt.Errorf("%w: %s", ErrUnsupportedFormat, path)
	}
}

// ParseLeagueCSV reads a league average CSV. Every column other than
// pitch_type and p_throws is taken as a statistic; blank cells are NaN.
func ParseLeagueCSV(b []byte) ([]model.LeagueRow, error) {
	tbl, err := csvrows.Read(b)
	if err != nil {
		return nil, fmt.Errorf("league reference: %w", err)
	}
	iType := tbl.Index(colPitchType)
	if iType < 0 {
		return nil, fmt.Errorf("%w: %s", ErrMissingColumn, colPitchType)
	}
	iHand := tbl.Index(colPThrows)

	statCols := map[string]int{}
	for _, name := range tbl.Columns() {
		if name != colPitchType && name != colPThrows && name != "" {
			statCols[name] = tbl.Index(name)
		}
	}

	out := make([]model.LeagueRow, 0, len(tbl.Rows))
	for _, rec := range tbl.Rows {
		pt := csvrows.Get(rec, iType)
		if pt == "" {
			continue
		}
		row := model.LeagueRow{PitchType: pt, PThrows: csvrows.Get(rec, iHand), Values: make(map[string]float64, len(statCols))}
		for name, i := range statCols {
			row.Values[name] = csvrows.Float(rec, i)
		}
		out = append(out, row)
	}
	return out, nil
}

// LoadMovement reads the league movement table from a .csv or .parquet file.
func LoadMovement(path string) ([]model.MovementRow, error) {
	switch ext(path) {
	case ".csv":
		b, err := os.ReadFile(path)
		if err != nil {
			return nil, fmt.Errorf("league movement: %w", err)
		}
		return ParseMovementCSV(b)
	case ".parquet":
		recs, err := parquet.ReadFile[movementRecord](path)
		if err != nil {
			return nil, fmt.Errorf("league movement %s: %w", path, err)
		}
		out := make([]model.MovementRow, 0, len(recs))
		for _, r := range recs {
			out = append(out, model.MovementRow{PitchType: r.PitchType, PThrows: r.PThrows, PfxX: deref(r.PfxX), PfxZ: deref(r.PfxZ)})
		}
		return out, nil
	default:
		return nil, fmt.Errorf("%w: %s", ErrUnsupportedFormat, path)
	}
}

// ParseMovementCSV reads pitch_type, p_throws, pfx_x and pfx_z (inches).
func ParseMovementCSV(b []byte) ([]model.MovementRow, error) {
	tbl, err := csvrows.Read(b)
	if err != nil {
		return nil, fmt.Errorf("league movement: %w", err)
	}
	for _, col := range []string{colPitchType, colPThrows, model.StatPfxX, model.StatPfxZ} {
		if !tbl.Has(col) {
			return nil, fmt.Errorf("%w: %s", ErrMissingColumn, col)
		}
	}
	iType, iHand := tbl.Index(colPitchType), tbl.Index(colPThrows)
	iX, iZ := tbl.Index(model.StatPfxX), tbl.Index(model.StatPfxZ)

	out := make([]model.MovementRow, 0, len(tbl.Rows))
	for _, rec := range tbl.Rows {
		out = append(out, model.MovementRow{
			PitchType: csvrows.Get(rec, iType),
			PThrows:   csvrows.Get(rec, iHand),
			PfxX:      csvrows.Float(rec, iX),
			PfxZ:      csvrows.Float(rec, iZ),
		})
	}
	return out, nil
}

func (r leagueRecord) row() model.LeagueRow {
	hand := ""
	if r.PThrows != nil {
		hand = *r.PThrows
	}
	return model.LeagueRow{
		PitchType: r.PitchType,
		PThrows:   hand,
		Values: map[string]float64{
			model.StatPitch:             deref(r.Pitch),
			model.StatPitchUsage:        deref(r.PitchUsage),
			model.StatReleaseSpeed:      deref(r.ReleaseSpeed),
			model.StatPfxZ:              deref(r.PfxZ),
			model.StatPfxX:              deref(r.PfxX),
			model.StatReleaseSpinRate:   deref(r.ReleaseSpinRate),
			model.StatReleasePosX:       deref(r.ReleasePosX),
			model.StatReleasePosZ:       deref(r.ReleasePosZ),
			model.StatReleaseExtension:  deref(r.ReleaseExtension),
			model.StatDeltaRunExpPer100: deref(r.DeltaRunExpPer100),
			model.StatInZoneRate:        deref(r.InZoneRate),
			model.StatChaseRate:         deref(r.ChaseRate),
			model.StatWhiffRate:         deref(r.WhiffRate),
			model.StatXwOBACon:          deref(r.XwOBACon),
		},
	}
}

func deref(f *float64) float64 {
	if f == nil {
		return math.NaN()
	}
	return *f
}

func ext(path string) string {
	return strings.ToLower(filepath.Ext(path))
}
