// Package percentile ranks a pitcher against the league leaderboard.
package percentile

import (
	"fmt"
	"math"
	"strings"

	"github.com/samber/lo"

	"github.com/okian/pitchcard/internal/domain/model"
	"github.com/okian/pitchcard/internal/domain/normalize"
)

// Metric is one ranked leaderboard column.
type Metric struct {
	Key   string
	Label string
	// LowerIsBetter flips the percentile so that 100 is always good.
	LowerIsBetter bool
}

// Metrics are ranked in this order.
var Metrics = []Metric{
	{Key: "xERA", Label: "xERA", LowerIsBetter: true},
	{Key: "EV", Label: "Avg Exit Velocity", LowerIsBetter: true},
	{Key: "pfxZone%", Label: "Zone%"},
	{Key: "pfxO-Swing%", Label: "O-Swing%"},
	{Key: "K%", Label: "K%"},
	{Key: "BB%", Label: "BB%", LowerIsBetter: true},
	{Key: "Barrel%", Label: "Barrel%", LowerIsBetter: true},
	{Key: "HardHit%", Label: "Hard-Hit%", LowerIsBetter: true},
	{Key: "GB%", Label: "GB%"},
}

// Ranking is a pitcher's standing on one metric.
type Ranking struct {
	Key        string  `json:"key"`
	Label      string  `json:"label"`
	Percentile float64 `json:"percentile"`
	// Value is the pitcher's own number, rounded for display.
	Value float64 `json:"value"`
	// Text is Value formatted for the bar label.
	Text  string `json:"text"`
	Color string `json:"color"`
	// Missing is set when the pitcher has no value for the metric; the bar
	// is then drawn empty.
	Missing bool `json:"missing,omitempty"`
}

// MissingText labels a metric the pitcher has no value for.
const MissingText = "---"

// Rank computes the pitcher's percentile on every metric. ok is false when
// the pitcher is not on the leaderboard.
func Rank(rows []model.LeaderboardRow, pitcherID int) ([]Ranking, bool) {
	pitcher, ok := model.FindPlayer(rows, pitcherID)
	if !ok {
		return nil, false
	}
	return lo.Map(Metrics, func(m Metric, _ int) Ranking {
		return rank(rows, pitcher, m)
	}), true
}

func rank(rows []model.LeaderboardRow, pitcher model.LeaderboardRow, m Metric) Ranking {
	own, ok := pitcher.Float(m.Key)
	if !ok {
		return Ranking{Key: m.Key, Label: m.Label, Text: MissingText, Color: normalize.Coolwarm.At(0.5), Missing: true}
	}
	p := Of(rows, m.Key, own)
	if m.LowerIsBetter {
		p = 100 - p
	}

	var value float64
	if strings.Contains(m.Key, "%") {
		value = roundTo(own*100, 1)
	} else {
		value = roundTo(own, 2)
	}
	text := fmt.Sprintf("%.1f", value)
	if m.Key == "xERA" {
		text = fmt.Sprintf("%.2f", value)
	}

	return Ranking{
		Key:        m.Key,
		Label:      m.Label,
		Percentile: p,
		Value:      value,
		Text:       text,
		Color:      normalize.Coolwarm.At(p / 100),
	}
}

// Of returns the share of rows whose key is strictly below value, times
// 100. Rows without the column count in the denominator only.
func Of(rows []model.LeaderboardRow, key string, value float64) float64 {
	if len(rows) == 0 {
		return 0
	}
	below := lo.CountBy(rows, func(r model.LeaderboardRow) bool {
		v, ok := r.Float(key)
		return ok && v < value
	})
	return float64(below) / float64(len(rows)) * 100
}

func roundTo(v float64, digits int) float64 {
	pow := math.Pow(10, float64(digits))
	return math.Round(v*pow) / pow
}
