// Package classify derives the per-pitch swing, whiff and zone facets.
package classify

import "github.com/okian/pitchcard/internal/domain/model"

var swingDescriptions = map[string]struct{}{
	"foul_bunt":               {},
	"foul":                    {},
	"hit_into_play":           {},
	"swinging_strike":         {},
	"foul_tip":                {},
	"swinging_strike_blocked": {},
	"missed_bunt":             {},
	"bunt_foul_tip":           {},
}

var whiffDescriptions = map[string]struct{}{
	"swinging_strike":         {},
	"foul_tip":                {},
	"swinging_strike_blocked": {},
}

// Annotate returns a copy of events with the five facets set.
//
// Zone 10 is neither in nor out of the zone, and a missing (NaN) zone is
// treated the same way.
func Annotate(events []model.PitchEvent) []model.PitchEvent {
	out := make([]model.PitchEvent, len(events))
	for i, e := range events {
		out[i] = annotate(e)
	}
	return out
}

func annotate(e model.PitchEvent) model.PitchEvent {
	_, e.Swing = swingDescriptions[e.Description]
	_, whiff := whiffDescriptions[e.Description]
	e.Whiff = whiff && e.Swing
	e.InZone = e.Zone < 10
	e.OutZone = e.Zone > 10
	e.Chase = e.Swing && !e.InZone
	return e
}

// IsSwing reports whether description counts as a swing.
func IsSwing(description string) bool {
	_, ok := swingDescriptions[description]
	return ok
}

// IsWhiff reports whether description counts as a whiff.
func IsWhiff(description string) bool {
	_, ok := whiffDescriptions[description]
	return ok
}
