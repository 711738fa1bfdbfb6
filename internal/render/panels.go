package render

import (
	"fmt"
	"math"

	svg "github.com/ajstarks/svgo"

	"github.com/okian/pitchcard/internal/domain/movement"
	"github.com/okian/pitchcard/internal/domain/percentile"
)

// Percentile guide lines.
var percentileGuides = []float64{33, 67}

func drawPercentiles(canvas *svg.SVG, b box, rankings []percentile.Ranking) {
	panelTitle(canvas, b, "Percentile Rankings (Fangraphs)")
	if len(rankings) == 0 {
		return
	}

	const (
		labelW = 150
		valueW = 60
		top    = 48
		bottom = 40
	)
	area := box{X: b.X + labelW, Y: b.Y + top, W: b.W - labelW - valueW, H: b.H - top - bottom}
	rowH := area.H / len(rankings)
	scale := func(p float64) int { return area.X + int(math.Round(p/100*float64(area.W))) }

	for _, g := range percentileGuides {
		x := scale(g)
		canvas.Line(x, area.Y, x, area.Y+area.H, "stroke:lightgray;stroke-width:1;stroke-dasharray:6,4")
	}
	canvas.Line(area.X, area.Y+area.H, area.X+area.W, area.Y+area.H, "stroke:black;stroke-width:1")
	for _, t := range []float64{0, 20, 40, 60, 80, 100} {
		canvas.Text(scale(t), area.Y+area.H+18, fmt.Sprintf("%.0f", t), "text-anchor:middle;font-size:13px")
	}
	canvas.Text(area.X+area.W/2, area.Y+area.H+36, "Percentile", "text-anchor:middle;font-size:14px")

	for i, r := range rankings {
		y := area.Y + i*rowH
		mid := y + rowH/2
		canvas.Text(area.X-8, mid+5, r.Label, "text-anchor:end;font-size:14px")
		canvas.Text(area.X+area.W+8, mid+5, r.Text, "text-anchor:start;font-size:14px")
		if r.Missing {
			continue
		}

		barH := rowH * 7 / 10
		end := scale(r.Percentile)
		canvas.Rect(area.X, mid-barH/2, end-area.X, barH, "fill:"+r.Color)

		label := fmt.Sprintf("%d", int(r.Percentile))
		if r.Percentile > 90 {
			canvas.Text(scale(r.Percentile-5), mid+5, label, "text-anchor:end;font-size:13px;fill:white")
		} else {
			canvas.Text(scale(r.Percentile+1), mid+5, label, "text-anchor:start;font-size:13px;fill:black")
		}
	}
}

// Movement panel tick marks in inches.
var movementTicks = []float64{-20, -10, 0, 10, 20}

func drawMovement(canvas *svg.SVG, b box, p movement.Plot) {
	title := "Pitch Breaks"
	if p.HasArm {
		title = fmt.Sprintf("Pitch Breaks - Arm Angle: %.0f°", p.ArmAngle)
	}
	panelTitle(canvas, b, title)
	canvas.Text(b.cx(), b.Y+46, "Note: Ellipses = League average pitch movement",
		"text-anchor:middle;font-size:13px;font-style:italic;fill:dimgray")

	const (
		top    = 60
		margin = 56
	)
	side := b.W - 2*margin
	if h := b.H - top - margin; h < side {
		side = h
	}
	if side <= 0 {
		return
	}
	area := box{X: b.X + (b.W-side)/2, Y: b.Y + top, W: side, H: side}
	limit := movement.AxisLimit
	sx := func(v float64) int { return area.X + int(math.Round((v+limit)/(2*limit)*float64(area.W))) }
	sy := func(v float64) int { return area.Y + int(math.Round((limit-v)/(2*limit)*float64(area.H))) }
	px := func(v float64) int { return int(math.Round(v / (2 * limit) * float64(area.W))) }

	canvas.Rect(area.X, area.Y, area.W, area.H, "fill:white;stroke:black;stroke-width:1")
	for _, t := range movementTicks {
		label := fmt.Sprintf("%.0f", t)
		canvas.Line(sx(t), area.Y, sx(t), area.Y+area.H, "stroke:#dddddd;stroke-width:1")
		canvas.Line(area.X, sy(t), area.X+area.W, sy(t), "stroke:#dddddd;stroke-width:1")
		canvas.Text(sx(t), area.Y+area.H+16, label, "text-anchor:middle;font-size:12px")
		canvas.Text(area.X-6, sy(t)+4, label, "text-anchor:end;font-size:12px")
	}
	canvas.Line(sx(0), area.Y, sx(0), area.Y+area.H, "stroke:#808080;stroke-width:1;stroke-dasharray:4,4")
	canvas.Line(area.X, sy(0), area.X+area.W, sy(0), "stroke:#808080;stroke-width:1;stroke-dasharray:4,4")
	canvas.Text(area.X+area.W/2, area.Y+area.H+36, "Horizontal Break (in)", "text-anchor:middle;font-size:14px")
	canvas.TranslateRotate(area.X-34, area.Y+area.H/2, -90)
	canvas.Text(0, 0, "Induced Vertical Break (in)", "text-anchor:middle;font-size:14px")
	canvas.Gend()

	for _, e := range p.League {
		drawEllipse(canvas, sx(e.CX), sy(e.CY), px(e.Width/2), px(e.Height/2), e.Angle,
			"fill:"+e.Color+";fill-opacity:0.3;stroke:"+e.Color+";stroke-dasharray:3,3")
	}
	for _, e := range p.Spread {
		drawEllipse(canvas, sx(e.CX), sy(e.CY), px(e.Width/2), px(e.Height/2), e.Angle,
			"fill:none;stroke:"+e.Color+";stroke-width:2")
	}
	for _, pt := range p.Points {
		if math.Abs(pt.X) > limit || math.Abs(pt.Y) > limit {
			continue
		}
		canvas.Circle(sx(pt.X), sy(pt.Y), 4, "fill:"+pt.Color+";fill-opacity:0.7;stroke:black;stroke-width:0.5")
	}

	if p.HasArm {
		x, y := clip(p.ArmEndX, p.ArmEndY, limit)
		canvas.Line(sx(0), sy(0), sx(x), sy(y), "stroke:black;stroke-width:2;stroke-opacity:0.7;stroke-dasharray:8,5")
	}

	canvas.Text(area.X+6, area.Y+area.H-8, "← Glove Side", "text-anchor:start;font-size:12px;font-style:italic")
	canvas.Text(area.X+area.W-6, area.Y+area.H-8, "Arm Side →", "text-anchor:end;font-size:12px;font-style:italic")
}

// drawEllipse draws an ellipse rotated counter-clockwise by angle degrees.
func drawEllipse(canvas *svg.SVG, cx, cy, rx, ry int, angle float64, style string) {
	if rx <= 0 || ry <= 0 {
		return
	}
	canvas.Gtransform(fmt.Sprintf("rotate(%.2f %d %d)", -angle, cx, cy))
	canvas.Ellipse(cx, cy, rx, ry, style)
	canvas.Gend()
}

// clip shortens the segment from the origin to (x, y) so it stays inside
// the square of half side limit.
func clip(x, y, limit float64) (float64, float64) {
	m := math.Max(math.Abs(x), math.Abs(y))
	if m <= limit || m == 0 {
		return x, y
	}
	return x * limit / m, y * limit / m
}
