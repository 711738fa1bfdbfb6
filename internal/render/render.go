// Package render draws a pitcher card as a single SVG document.
package render

import (
	"encoding/base64"
	"fmt"
	"io"
	"math"

	svg "github.com/ajstarks/svgo"

	"github.com/okian/pitchcard/internal/domain/types"
)

const (
	// Width and Height are the card size in pixels.
	Width  = 1760
	Height = 1600

	fontFamily = "font-family:Helvetica,Arial,sans-serif"
)

var (
	colRatios = []float64{1, 22, 22, 18, 18, 28, 28, 1}
	rowRatios = []float64{2, 20, 9, 36, 36, 7}
)

// Footer lines, left to right.
var (
	FooterCenter = "Color Coding Compares to League Average By Pitch"
	FooterRight  = []string{"Data: MLB, Fangraphs", "Images: MLB, ESPN, Fandom"}
)

// box is a pixel rectangle on the card.
type box struct {
	X, Y, W, H int
}

func (b box) cx() int { return b.X + b.W/2 }

func (b box) inset(px int) box {
	return box{X: b.X + px, Y: b.Y + px, W: b.W - 2*px, H: b.H - 2*px}
}

// grid splits the card into proportional rows and columns.
type grid struct {
	xs, ys []int
}

func newGrid(width, height int, cols, rows []float64) grid {
	return grid{xs: offsets(width, cols), ys: offsets(height, rows)}
}

func offsets(total int, ratios []float64) []int {
	var sum float64
	for _, r := range ratios {
		sum += r
	}
	out := make([]int, len(ratios)+1)
	var acc float64
	for i, r := range ratios {
		acc += r
		out[i+1] = int(math.Round(acc / sum * float64(total)))
	}
	return out
}

// cell spans rows [r0, r1) and columns [c0, c1).
func (g grid) cell(r0, r1, c0, c1 int) box {
	return box{X: g.xs[c0], Y: g.ys[r0], W: g.xs[c1] - g.xs[c0], H: g.ys[r1] - g.ys[r0]}
}

// Card writes the SVG rendering of c to w. Parts of the card without data
// are left blank.
func Card(w io.Writer, c *types.Card) error {
	if c == nil {
		return fmt.Errorf("render: nil card")
	}
	g := newGrid(Width, Height, colRatios, rowRatios)

	canvas := svg.New(w)
	canvas.Start(Width, Height)
	canvas.Title(fmt.Sprintf("%s %d pitching summary", c.Bio.FullName, c.Season))
	canvas.Rect(0, 0, Width, Height, "fill:white")
	canvas.Gstyle(fontFamily + ";fill:black")

	drawImage(canvas, g.cell(1, 2, 1, 3).inset(8), c.Headshot)
	drawBio(canvas, g.cell(1, 2, 3, 5), c)
	drawImage(canvas, g.cell(1, 2, 5, 7).inset(16), c.Logo)

	drawSeasonTable(canvas, g.cell(2, 3, 1, 7).inset(8), c.SeasonStats)

	drawVelocity(canvas, g.cell(3, 4, 1, 3).inset(8), c.Velocity)
	drawPercentiles(canvas, g.cell(3, 4, 3, 5).inset(8), c.Percentiles)
	drawMovement(canvas, g.cell(3, 4, 5, 7).inset(8), c.Movement)

	drawPitchTable(canvas, g.cell(4, 5, 1, 7).inset(8), c.Table)

	drawFooter(canvas, g.cell(5, 6, 1, 7))

	canvas.Gend()
	canvas.End()
	return nil
}

func drawImage(canvas *svg.SVG, b box, img *types.Image) {
	if img == nil || len(img.Data) == 0 {
		return
	}
	canvas.Image(b.X, b.Y, b.W, b.H, DataURI(img))
}

// DataURI inlines an image as a base64 data URI.
func DataURI(img *types.Image) string {
	return "data:" + img.ContentType + ";base64," + base64.StdEncoding.EncodeToString(img.Data)
}

func drawBio(canvas *svg.SVG, b box, c *types.Card) {
	x := b.cx()
	name := c.Bio.FullName
	if name == "" {
		name = fmt.Sprintf("Pitcher %d", c.Bio.ID)
	}
	canvas.Text(x, b.Y+b.H*22/100, name, "text-anchor:middle;font-size:52px")
	canvas.Text(x, b.Y+b.H*45/100, BioLine(c), "text-anchor:middle;font-size:28px")
	canvas.Text(x, b.Y+b.H*70/100, "Season Pitching Summary", "text-anchor:middle;font-size:38px")
	canvas.Text(x, b.Y+b.H*90/100, fmt.Sprintf("%d MLB Season", c.Season), "text-anchor:middle;font-size:28px;font-style:italic")
}

// BioLine is the hand, age and size line under the name. Unknown parts are
// left out.
func BioLine(c *types.Card) string {
	hand := c.Bio.PitchHand
	if hand == "" {
		hand = c.Movement.Hand
	}
	line := ""
	if hand != "" {
		line = hand + "HP"
	}
	if c.Bio.Age > 0 {
		line = join(line, fmt.Sprintf("Age:%d", c.Bio.Age))
	}
	if c.Bio.Height != "" || c.Bio.Weight > 0 {
		line = join(line, fmt.Sprintf("%s/%d", c.Bio.Height, c.Bio.Weight))
	}
	return line
}

func join(a, b string) string {
	if a == "" {
		return b
	}
	return a + ", " + b
}

func drawFooter(canvas *svg.SVG, b box) {
	canvas.Text(b.cx(), b.Y+28, FooterCenter, "text-anchor:middle;font-size:20px")
	for i, line := range FooterRight {
		canvas.Text(b.X+b.W, b.Y+28+i*30, line, "text-anchor:end;font-size:24px")
	}
}

func panelTitle(canvas *svg.SVG, b box, title string) {
	canvas.Text(b.cx(), b.Y+24, title, "text-anchor:middle;font-size:22px")
}
