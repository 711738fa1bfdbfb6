package model

import (
	"encoding/json"
	"math"
	"strconv"
)

// LeaderboardIDColumn identifies the player in a leaderboard row.
const LeaderboardIDColumn = "xMLBAMID"

// LeaderboardRow is one pitcher's season line keyed by leaderboard column.
type LeaderboardRow map[string]any

// Float returns the numeric value of key. ok is false when the column is
// absent or not numeric.
func (r LeaderboardRow) Float(key string) (float64, bool) {
	v, present := r[key]
	if !present {
		return math.NaN(), false
	}
	switch x := v.(type) {
	case float64:
		return x, !math.IsNaN(x)
	case float32:
		return float64(x), true
	case int:
		return float64(x), true
	case int64:
		return float64(x), true
	case json.Number:
		f, err := x.Float64()
		return f, err == nil
	case string:
		f, err := strconv.ParseFloat(x, 64)
		return f, err == nil
	}
	return math.NaN(), false
}

// PlayerID returns the MLBAM id of the row, 0 when missing.
func (r LeaderboardRow) PlayerID() int {
	f, ok := r.Float(LeaderboardIDColumn)
	if !ok {
		return 0
	}
	return int(f)
}

// FindPlayer returns the first row for id.
func FindPlayer(rows []LeaderboardRow, id int) (LeaderboardRow, bool) {
	for _, r := range rows {
		if r.PlayerID() == id {
			return r, true
		}
	}
	return nil, false
}
