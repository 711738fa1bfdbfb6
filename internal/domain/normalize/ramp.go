package normalize

import (
	"fmt"
	"math"
	"strings"

	"github.com/wcharczuk/go-chart/v2/drawing"
)

// rampLevels is the number of discrete colors a ramp resolves to.
const rampLevels = 256

// Ramp is a three stop diverging color scale sampled into rampLevels colors.
type Ramp struct {
	low, mid, high drawing.Color
}

// NewRamp builds a ramp from three hex colors ("#RRGGBB").
func NewRamp(low, mid, high string) Ramp {
	return Ramp{low: parseHex(low), mid: parseHex(mid), high: parseHex(high)}
}

// Reversed returns the ramp running high to low.
func (r Ramp) Reversed() Ramp {
	return Ramp{low: r.high, mid: r.mid, high: r.low}
}

// At returns the hex color at position x in [0, 1]. Positions outside the
// range clamp to the endpoints; NaN yields Neutral.
func (r Ramp) At(x float64) string {
	if math.IsNaN(x) {
		return Neutral
	}
	idx := int(math.Floor(x * rampLevels))
	if idx < 0 {
		idx = 0
	}
	if idx > rampLevels-1 {
		idx = rampLevels - 1
	}
	t := float64(idx) / float64(rampLevels-1)

	var c drawing.Color
	if t <= 0.5 {
		c = lerp(r.low, r.mid, t/0.5)
	} else {
		c = lerp(r.mid, r.high, (t-0.5)/0.5)
	}
	return toHex(c)
}

// Color returns the drawing color at x, for chart renderers.
func (r Ramp) Color(x float64) drawing.Color {
	return parseHex(r.At(x))
}

func lerp(a, b drawing.Color, t float64) drawing.Color {
	mix := func(x, y uint8) uint8 {
		return uint8(math.Round(float64(x) + (float64(y)-float64(x))*t))
	}
	return drawing.Color{R: mix(a.R, b.R), G: mix(a.G, b.G), B: mix(a.B, b.B), A: 255}
}

func parseHex(s string) drawing.Color {
	return drawing.ColorFromHex(strings.TrimPrefix(s, "#"))
}

func toHex(c drawing.Color) string {
	return fmt.Sprintf("#%02x%02x%02x", c.R, c.G, c.B)
}
