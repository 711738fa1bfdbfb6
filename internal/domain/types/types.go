// Package types contains the request and response shapes shared by the
// service and its HTTP adapter.
package types

import (
	"github.com/okian/pitchcard/internal/domain/model"
	"github.com/okian/pitchcard/internal/domain/movement"
	"github.com/okian/pitchcard/internal/domain/percentile"
	"github.com/okian/pitchcard/internal/domain/seasonstats"
	"github.com/okian/pitchcard/internal/domain/table"
	"github.com/okian/pitchcard/internal/domain/velocity"
)

// Option is one dropdown entry.
type Option struct {
	Label string `json:"label"`
	Value string `json:"value"`
}

// PitcherOption is a dropdown entry keyed by MLBAM id.
type PitcherOption struct {
	Label string `json:"label"`
	Value int    `json:"value"`
}

// CardRequest selects one card. Empty dates fall back to the configured
// season window.
type CardRequest struct {
	PitcherID int
	Start     string
	End       string
	// Session groups requests from one viewer; a newer request cancels an
	// older one still rendering for the same session.
	Session string
}

// Image is a fetched picture ready to embed.
type Image struct {
	ContentType string
	Data        []byte
}

// Card is everything the card shows, pre-formatted.
type Card struct {
	RenderID    string               `json:"render_id"`
	Season      int                  `json:"season"`
	Bio         model.Bio            `json:"bio"`
	TeamAbbr    string               `json:"team_abbreviation,omitempty"`
	Pitches     int                  `json:"pitches"`
	Table       table.Table          `json:"table"`
	SeasonStats seasonstats.Table    `json:"season_stats"`
	Percentiles []percentile.Ranking `json:"percentiles"`
	Velocity    velocity.Panel       `json:"velocity"`
	Movement    movement.Plot        `json:"movement"`

	Headshot *Image `json:"-"`
	Logo     *Image `json:"-"`
}
