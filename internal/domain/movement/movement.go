// Package movement prepares the pitch break panel: per pitch points, spread
// ellipses, league average markers and the arm angle.
package movement

import (
	"math"
	"slices"

	"github.com/samber/lo"

	"github.com/okian/pitchcard/internal/domain/catalog"
	"github.com/okian/pitchcard/internal/domain/model"
)

const (
	// LeagueDiameter is the size of the league average marker in inches.
	LeagueDiameter = 7.0
	// sigmaScale turns the square root of an eigenvalue into a full axis
	// length covering two standard deviations each side.
	sigmaScale = 4.0
	// ArmLineLength is the length of the arm angle guide in inches.
	ArmLineLength = 35.0
	// AxisLimit bounds both axes of the panel.
	AxisLimit = 25.0
)

// Point is one pitch in arm-side oriented coordinates.
type Point struct {
	PitchType string  `json:"pitch_type"`
	X         float64 `json:"x"`
	Y         float64 `json:"y"`
	Color     string  `json:"color"`
}

// Ellipse is centered at (CX, CY); Angle is in degrees counter-clockwise.
type Ellipse struct {
	PitchType string  `json:"pitch_type"`
	CX        float64 `json:"cx"`
	CY        float64 `json:"cy"`
	Width     float64 `json:"width"`
	Height    float64 `json:"height"`
	Angle     float64 `json:"angle"`
	Color     string  `json:"color"`
}

// Plot is everything the movement panel draws.
type Plot struct {
	Hand     string    `json:"hand"`
	Points   []Point   `json:"points"`
	Spread   []Ellipse `json:"spread"`
	League   []Ellipse `json:"league"`
	ArmAngle float64   `json:"arm_angle"`
	HasArm   bool      `json:"has_arm"`
	ArmEndX  float64   `json:"arm_end_x"`
	ArmEndY  float64   `json:"arm_end_y"`
}

// Build lays out the movement panel for events thrown with hand ("R"/"L").
// Right-handers have horizontal break mirrored so arm side is positive.
func Build(events []model.PitchEvent, hand string, league []model.MovementRow) Plot {
	p := Plot{Hand: hand}
	flip := 1.0
	if hand == "R" {
		flip = -1.0
	}

	valid := lo.Filter(events, func(e model.PitchEvent, _ int) bool {
		return e.PitchType != "" && !math.IsNaN(e.PfxX) && !math.IsNaN(e.PfxZ)
	})
	for _, e := range valid {
		p.Points = append(p.Points, Point{
			PitchType: e.PitchType,
			X:         e.PfxX * flip,
			Y:         e.PfxZ,
			Color:     catalog.PitchColor(e.PitchType),
		})
	}

	byType := lo.GroupBy(p.Points, func(pt Point) string { return pt.PitchType })
	types := lo.Keys(byType)
	slices.Sort(types)
	for _, pt := range types {
		if ell, ok := spread(pt, byType[pt]); ok {
			p.Spread = append(p.Spread, ell)
		}
	}

	for _, pt := range types {
		row, ok := lo.Find(league, func(r model.MovementRow) bool {
			return r.PitchType == pt && r.PThrows == hand
		})
		if !ok || math.IsNaN(row.PfxX) || math.IsNaN(row.PfxZ) {
			continue
		}
		p.League = append(p.League, Ellipse{
			PitchType: pt,
			CX:        row.PfxX * flip,
			CY:        row.PfxZ,
			Width:     LeagueDiameter,
			Height:    LeagueDiameter,
			Color:     catalog.PitchColor(pt),
		})
	}

	if angle, ok := meanArmAngle(events); ok {
		rad := angle * math.Pi / 180
		p.ArmAngle = angle
		p.HasArm = true
		p.ArmEndX = ArmLineLength * math.Cos(rad)
		p.ArmEndY = ArmLineLength * math.Sin(rad)
	}
	return p
}

// spread fits the covariance ellipse of one pitch type; it needs two points.
func spread(pitchType string, pts []Point) (Ellipse, bool) {
	if len(pts) < 2 {
		return Ellipse{}, false
	}
	xs := lo.Map(pts, func(p Point, _ int) float64 { return p.X })
	ys := lo.Map(pts, func(p Point, _ int) float64 { return p.Y })
	mx, my := lo.Mean(xs), lo.Mean(ys)

	var sxx, syy, sxy float64
	for i := range xs {
		dx, dy := xs[i]-mx, ys[i]-my
		sxx += dx * dx
		syy += dy * dy
		sxy += dx * dy
	}
	n := float64(len(xs) - 1)
	l1, l2, angle := Eigen(sxx/n, sxy/n, syy/n)

	return Ellipse{
		PitchType: pitchType,
		CX:        mx,
		CY:        my,
		Width:     math.Sqrt(math.Max(l1, 0)) * sigmaScale,
		Height:    math.Sqrt(math.Max(l2, 0)) * sigmaScale,
		Angle:     angle,
		Color:     catalog.PitchColor(pitchType),
	}, true
}

// Eigen decomposes the symmetric matrix [[a b] [b d]]. It returns the larger
// eigenvalue, the smaller one and the angle in degrees of the eigenvector of
// the larger one.
func Eigen(a, b, d float64) (l1, l2, angleDeg float64) {
	tr := a + d
	disc := math.Sqrt(math.Max((a-d)*(a-d)/4+b*b, 0))
	l1 = tr/2 + disc
	l2 = tr/2 - disc

	var vx, vy float64
	switch {
	case b != 0:
		vx, vy = l1-d, b
	case a >= d:
		vx, vy = 1, 0
	default:
		vx, vy = 0, 1
	}
	return l1, l2, math.Atan2(vy, vx) * 180 / math.Pi
}

func meanArmAngle(events []model.PitchEvent) (float64, bool) {
	angles := lo.FilterMap(events, func(e model.PitchEvent, _ int) (float64, bool) {
		return e.ArmAngle, !math.IsNaN(e.ArmAngle)
	})
	if len(angles) == 0 {
		return 0, false
	}
	return lo.Mean(angles), true
}
