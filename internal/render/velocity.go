package render

import (
	"bytes"
	"fmt"
	"math"
	"strings"

	svg "github.com/ajstarks/svgo"
	"github.com/wcharczuk/go-chart/v2"
	"github.com/wcharczuk/go-chart/v2/drawing"

	"github.com/okian/pitchcard/internal/domain/types"
	"github.com/okian/pitchcard/internal/domain/velocity"
	"github.com/okian/pitchcard/pkg/metrics"
)

const velocityLabelW = 44

func drawVelocity(canvas *svg.SVG, b box, p velocity.Panel) {
	panelTitle(canvas, b, "Pitch Velocity Distribution")
	n := len(p.Distributions)
	if n == 0 {
		return
	}

	const top = 40
	rowH := (b.H - top) / n
	chartW := b.W - velocityLabelW
	for i, d := range p.Distributions {
		y := b.Y + top + i*rowH
		last := i == n-1
		canvas.Text(b.X+velocityLabelW-6, y+rowH/2+6, d.PitchType, "text-anchor:end;font-size:16px")

		png, err := VelocityPNG(d, p, chartW, rowH, last)
		if err != nil {
			metrics.RecordErrorByComponent("render", "velocity")
			continue
		}
		canvas.Image(b.X+velocityLabelW, y, chartW, rowH, DataURI(&types.Image{ContentType: "image/png", Data: png}))
	}
}

// VelocityPNG draws one pitch type's density row of the velocity panel.
// The x axis is only labelled on the last row.
func VelocityPNG(d velocity.Distribution, p velocity.Panel, width, height int, last bool) ([]byte, error) {
	color := drawing.ColorFromHex(strings.TrimPrefix(d.Color, "#"))

	xs, ys := d.X, d.Y
	if d.Spike {
		xs, ys = []float64{d.X[0], d.X[0]}, []float64{0, 1}
	}
	top := 0.0
	for _, y := range ys {
		top = math.Max(top, y)
	}
	if top == 0 {
		return nil, fmt.Errorf("render: empty density for %s", d.PitchType)
	}
	top *= 1.05

	series := []chart.Series{
		chart.ContinuousSeries{
			Name:    d.PitchType,
			XValues: xs,
			YValues: ys,
			Style: chart.Style{
				StrokeColor: color,
				StrokeWidth: 3,
				FillColor:   color.WithAlpha(110),
			},
		},
		meanLine(d.Mean, top, color, []float64{8, 5}),
	}
	if !math.IsNaN(d.LeagueMean) {
		series = append(series, meanLine(d.LeagueMean, top, color, []float64{2, 4}))
	}

	ticks := make([]chart.Tick, 0, len(p.Ticks))
	for _, t := range p.Ticks {
		ticks = append(ticks, chart.Tick{Value: t, Label: fmt.Sprintf("%.0f", t)})
	}

	xAxis := chart.XAxis{
		Range: &chart.ContinuousRange{Min: p.AxisMin, Max: p.AxisMax},
		Ticks: ticks,
	}
	padBottom := 4
	if last {
		xAxis.Name = "Velocity (mph)"
		padBottom = 36
	} else {
		xAxis.Style = chart.Style{Hidden: true}
	}

	ch := chart.Chart{
		Width:      width,
		Height:     height,
		Background: chart.Style{Padding: chart.Box{Top: 4, Left: 4, Right: 12, Bottom: padBottom}},
		XAxis:      xAxis,
		YAxis: chart.YAxis{
			Style: chart.Style{Hidden: true},
			Range: &chart.ContinuousRange{Min: 0, Max: top},
		},
		Series: series,
	}

	var buf bytes.Buffer
	if err := ch.Render(chart.PNG, &buf); err != nil {
		return nil, fmt.Errorf("render velocity %s: %w", d.PitchType, err)
	}
	return buf.Bytes(), nil
}

func meanLine(x, top float64, color drawing.Color, dash []float64) chart.ContinuousSeries {
	return chart.ContinuousSeries{
		XValues: []float64{x, x},
		YValues: []float64{0, top},
		Style: chart.Style{
			StrokeColor:     color,
			StrokeWidth:     2,
			StrokeDashArray: dash,
		},
	}
}
