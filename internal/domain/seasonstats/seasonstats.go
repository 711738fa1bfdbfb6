// Package seasonstats formats a pitcher's leaderboard line for the season table.
package seasonstats

import (
	"fmt"

	"github.com/okian/pitchcard/internal/domain/model"
	"github.com/okian/pitchcard/internal/domain/table"
)

// Missing is shown for absent leaderboard values.
const Missing = "---"

var formats = map[string]table.Format{
	"IP":    {Digits: 1},
	"TBF":   {Digits: 0},
	"AVG":   {Digits: 3},
	"K/9":   {Digits: 2},
	"BB/9":  {Digits: 2},
	"K/BB":  {Digits: 2},
	"HR/9":  {Digits: 2},
	"K%":    {Digits: 1, Percent: true},
	"BB%":   {Digits: 1, Percent: true},
	"K-BB%": {Digits: 1, Percent: true},
	"WHIP":  {Digits: 2},
	"BABIP": {Digits: 3},
	"GB%":   {Digits: 1, Percent: true},
	"LOB%":  {Digits: 1, Percent: true},
	"xFIP":  {Digits: 2},
	"FIP":   {Digits: 2},
	"H":     {Digits: 0},
	"2B":    {Digits: 0},
	"3B":    {Digits: 0},
	"R":     {Digits: 0},
	"ER":    {Digits: 0},
	"HR":    {Digits: 0},
	"BB":    {Digits: 0},
	"IBB":   {Digits: 0},
	"HBP":   {Digits: 0},
	"SO":    {Digits: 0},
	"OBP":   {Digits: 3},
	"SLG":   {Digits: 3},
	"ERA":   {Digits: 2},
	"wOBA":  {Digits: 3},
	"G":     {Digits: 0},
	"GS":    {Digits: 0},
}

var headers = map[string]string{"TBF": "PA"}

// Table is the formatted season line.
type Table struct {
	Headers []string `json:"headers"`
	Values  []string `json:"values"`
}

// Known reports whether stat has a display format.
func Known(stat string) bool {
	_, ok := formats[stat]
	return ok
}

// Build formats the requested stats from row. A nil row (pitcher missing from
// the leaderboard) yields Missing for every value.
func Build(row model.LeaderboardRow, stats []string) Table {
	t := Table{Headers: make([]string, len(stats)), Values: make([]string, len(stats))}
	for i, stat := range stats {
		t.Headers[i] = header(stat)
		t.Values[i] = value(row, stat)
	}
	return t
}

func header(stat string) string {
	if h, ok := headers[stat]; ok {
		return h
	}
	return stat
}

func value(row model.LeaderboardRow, stat string) string {
	raw, present := row[stat]
	if !present || raw == nil {
		return Missing
	}
	if s, ok := raw.(string); ok && s == Missing {
		return Missing
	}
	f, ok := row.Float(stat)
	if !ok {
		return fmt.Sprint(raw)
	}
	format, known := formats[stat]
	if !known {
		format = table.Format{Digits: 2}
	}
	return format.Apply(f)
}
