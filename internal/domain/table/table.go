// Package table formats pitch summaries into the card's pitch table.
package table

import (
	"math"
	"strconv"

	"github.com/okian/pitchcard/internal/domain/catalog"
	"github.com/okian/pitchcard/internal/domain/model"
	"github.com/okian/pitchcard/internal/domain/normalize"
)

// Placeholder is shown for undefined values.
const Placeholder = "—"

// Format is a printf-like verb: digits after the point, and whether the
// value is a share rendered as a percentage.
type Format struct {
	Digits  int
	Percent bool
}

// Column describes how a statistic is labeled and formatted.
type Column struct {
	Key    string
	Header string
	Format Format
}

var columns = map[string]Column{
	model.StatPitchDescription:  {model.StatPitchDescription, "Pitch Name", Format{}},
	model.StatPitch:             {model.StatPitch, "Count", Format{Digits: 0}},
	model.StatReleaseSpeed:      {model.StatReleaseSpeed, "Velocity", Format{Digits: 1}},
	model.StatPfxZ:              {model.StatPfxZ, "iVB", Format{Digits: 1}},
	model.StatPfxX:              {model.StatPfxX, "HB", Format{Digits: 1}},
	model.StatReleaseSpinRate:   {model.StatReleaseSpinRate, "Spin", Format{Digits: 0}},
	model.StatReleasePosX:       {model.StatReleasePosX, "hRel", Format{Digits: 1}},
	model.StatReleasePosZ:       {model.StatReleasePosZ, "vRel", Format{Digits: 1}},
	model.StatReleaseExtension:  {model.StatReleaseExtension, "Ext.", Format{Digits: 1}},
	model.StatXwOBACon:          {model.StatXwOBACon, "xwOBAcon", Format{Digits: 3}},
	model.StatPitchUsage:        {model.StatPitchUsage, "Pitch%", Format{Digits: 1, Percent: true}},
	model.StatWhiffRate:         {model.StatWhiffRate, "Whiff%", Format{Digits: 1, Percent: true}},
	model.StatInZoneRate:        {model.StatInZoneRate, "Zone%", Format{Digits: 1, Percent: true}},
	model.StatChaseRate:         {model.StatChaseRate, "Chase%", Format{Digits: 1, Percent: true}},
	model.StatDeltaRunExpPer100: {model.StatDeltaRunExpPer100, "RV/100", Format{Digits: 1}},
}

// Apply renders v with f, Placeholder for NaN.
func (f Format) Apply(v float64) string {
	if math.IsNaN(v) {
		return Placeholder
	}
	if f.Percent {
		return strconv.FormatFloat(v*100, 'f', f.Digits, 64) + "%"
	}
	return strconv.FormatFloat(v, 'f', f.Digits, 64)
}

// Cell is one formatted value with its background color.
type Cell struct {
	Text       string `json:"text"`
	Background string `json:"background"`
}

// Row is one formatted table row.
type Row struct {
	PitchType string `json:"pitch_type"`
	// Swatch and Label color the pitch name cell.
	Swatch string `json:"swatch"`
	Label  string `json:"label"`
	Cells  []Cell `json:"cells"`
}

// Table is the formatted pitch table.
type Table struct {
	Headers []string `json:"headers"`
	Rows    []Row    `json:"rows"`
}

// Headers returns the display headers in model.TableColumns order.
func Headers() []string {
	out := make([]string, len(model.TableColumns))
	for i, key := range model.TableColumns {
		out[i] = columns[key].Header
	}
	return out
}

// Build formats rows; colors holds one color per column per row as
// returned by normalize.CellColors and may be nil.
func Build(rows []model.PitchTypeSummary, colors [][]string) Table {
	t := Table{Headers: Headers(), Rows: make([]Row, 0, len(rows))}
	for i, s := range rows {
		var rowColors []string
		if i < len(colors) {
			rowColors = colors[i]
		}
		t.Rows = append(t.Rows, buildRow(s, rowColors))
	}
	return t
}

func buildRow(s model.PitchTypeSummary, colors []string) Row {
	r := Row{PitchType: s.PitchType, Cells: make([]Cell, len(model.TableColumns))}
	if s.IsAll() {
		r.Swatch, r.Label = normalize.Neutral, "#000000"
	} else {
		r.Swatch, r.Label = catalog.PitchColor(s.PitchType), catalog.LabelColor(s.PitchType)
	}

	for j, key := range model.TableColumns {
		bg := normalize.Neutral
		if j < len(colors) {
			bg = colors[j]
		}
		r.Cells[j] = Cell{Text: FormatStat(s, key), Background: bg}
	}
	return r
}

// FormatStat renders one statistic of s the way the table shows it.
func FormatStat(s model.PitchTypeSummary, key string) string {
	if key == model.StatPitchDescription {
		if s.IsAll() {
			return model.AllPitchType
		}
		return catalog.PitchName(s.PitchType)
	}
	v, ok := s.Stat(key)
	if !ok {
		return Placeholder
	}
	return columns[key].Format.Apply(v)
}
