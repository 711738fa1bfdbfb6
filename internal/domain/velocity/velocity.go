// Package velocity builds per pitch type release speed distributions.
package velocity

import (
	"cmp"
	"math"
	"slices"

	"github.com/samber/lo"

	"github.com/okian/pitchcard/internal/domain/catalog"
	"github.com/okian/pitchcard/internal/domain/model"
)

// GridSize is the number of points each density curve is sampled at.
const GridSize = 200

// Distribution is one pitch type's velocity curve.
type Distribution struct {
	PitchType string `json:"pitch_type"`
	Color     string `json:"color"`
	Count     int    `json:"count"`
	// Spike is set when every pitch was thrown at the same speed; X then
	// holds that single speed and Y is empty.
	Spike bool      `json:"spike"`
	X     []float64 `json:"x"`
	Y     []float64 `json:"y"`
	Mean  float64   `json:"mean"`
	// LeagueMean is NaN when the reference has no such pitch type.
	LeagueMean float64 `json:"-"`
}

// Panel is the full velocity panel: one distribution per pitch type ordered
// by usage, plus a shared axis.
type Panel struct {
	Distributions []Distribution `json:"distributions"`
	AxisMin       float64        `json:"axis_min"`
	AxisMax       float64        `json:"axis_max"`
	Ticks         []float64      `json:"ticks"`
}

// LeagueMeans returns the league average release speed of a pitch type.
type LeagueMeans func(pitchType string) float64

// Build computes the panel. Pitch types without any recorded speed are left
// out. league may be nil.
func Build(events []model.PitchEvent, league LeagueMeans) Panel {
	speeds := lo.Filter(events, func(e model.PitchEvent, _ int) bool {
		return e.PitchType != "" && !math.IsNaN(e.ReleaseSpeed)
	})
	if len(speeds) == 0 {
		return Panel{}
	}

	byType := lo.GroupBy(speeds, func(e model.PitchEvent) string { return e.PitchType })
	types := lo.Keys(byType)
	slices.SortFunc(types, func(a, b string) int {
		if c := cmp.Compare(len(byType[b]), len(byType[a])); c != 0 {
			return c
		}
		return cmp.Compare(a, b)
	})

	all := lo.Map(speeds, func(e model.PitchEvent, _ int) float64 { return e.ReleaseSpeed })
	p := Panel{
		AxisMin: math.Floor(lo.Min(all)/5) * 5,
		AxisMax: math.Ceil(lo.Max(all)/5) * 5,
	}
	if p.AxisMax == p.AxisMin {
		p.AxisMax += 5
	}
	for t := p.AxisMin; t < p.AxisMax; t += 5 {
		p.Ticks = append(p.Ticks, t)
	}

	for _, pt := range types {
		values := lo.Map(byType[pt], func(e model.PitchEvent, _ int) float64 { return e.ReleaseSpeed })
		d := Distribution{
			PitchType:  pt,
			Color:      catalog.PitchColor(pt),
			Count:      len(values),
			Mean:       lo.Mean(values),
			LeagueMean: math.NaN(),
		}
		if league != nil {
			d.LeagueMean = league(pt)
		}
		if len(lo.Uniq(values)) == 1 {
			d.Spike = true
			d.X = []float64{values[0]}
		} else {
			d.X, d.Y = KDE(values, GridSize)
		}
		p.Distributions = append(p.Distributions, d)
	}
	return p
}

// KDE evaluates a Gaussian kernel density estimate of values on n evenly
// spaced points between their minimum and maximum, using Scott's rule for
// the bandwidth.
func KDE(values []float64, n int) (xs, ys []float64) {
	if len(values) < 2 || n < 2 {
		return nil, nil
	}
	bw := ScottBandwidth(values)
	low, hi := minMax(values)
	if bw == 0 || hi == low {
		return nil, nil
	}

	xs = make([]float64, n)
	ys = make([]float64, n)
	step := (hi - low) / float64(n-1)
	norm := 1 / (float64(len(values)) * bw * math.Sqrt(2*math.Pi))
	for i := 0; i < n; i++ {
		x := low + float64(i)*step
		var sum float64
		for _, v := range values {
			z := (x - v) / bw
			sum += math.Exp(-0.5 * z * z)
		}
		xs[i] = x
		ys[i] = sum * norm
	}
	return xs, ys
}

// ScottBandwidth is the sample standard deviation times n^(-1/5).
func ScottBandwidth(values []float64) float64 {
	n := float64(len(values))
	if n < 2 {
		return 0
	}
	mean := lo.Mean(values)
	var ss float64
	for _, v := range values {
		ss += (v - mean) * (v - mean)
	}
	std := math.Sqrt(ss / (n - 1))
	return std * math.Pow(n, -0.2)
}

func minMax(values []float64) (float64, float64) {
	return lo.Min(values), lo.Max(values)
}
