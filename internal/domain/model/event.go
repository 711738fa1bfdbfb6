// Package model contains domain models passed between layers.
package model

import "math"

// PitchEvent is one pitched ball as delivered by the pitch-event provider.
// Numeric fields hold NaN when the provider left the cell empty. PfxX and
// PfxZ are already expressed in inches.
type PitchEvent struct {
	PitchType   string
	Description string
	// Type is the ball-in-play flag; "X" marks a batted ball.
	Type     string
	PThrows  string
	GameType string
	GameDate string

	Zone             float64
	ReleaseSpeed     float64
	PfxX             float64
	PfxZ             float64
	ReleaseSpinRate  float64
	ReleasePosX      float64
	ReleasePosZ      float64
	ReleaseExtension float64
	DeltaRunExp      float64
	EstimatedWOBA    float64 // estimated_woba_using_speedangle
	ArmAngle         float64

	// Facets set by classify.Annotate.
	Swing   bool
	Whiff   bool
	InZone  bool
	OutZone bool
	Chase   bool
}

// NewPitchEvent returns an event with every numeric field set to NaN.
func NewPitchEvent(pitchType, description string) PitchEvent {
	nan := math.NaN()
	return PitchEvent{
		PitchType:        pitchType,
		Description:      description,
		Zone:             nan,
		ReleaseSpeed:     nan,
		PfxX:             nan,
		PfxZ:             nan,
		ReleaseSpinRate:  nan,
		ReleasePosX:      nan,
		ReleasePosZ:      nan,
		ReleaseExtension: nan,
		DeltaRunExp:      nan,
		EstimatedWOBA:    nan,
		ArmAngle:         nan,
	}
}

// BattedBall reports whether the event put the ball in play.
func (e PitchEvent) BattedBall() bool { return e.Type == "X" }
