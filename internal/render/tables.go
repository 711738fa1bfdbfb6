package render

import (
	svg "github.com/ajstarks/svgo"

	"github.com/okian/pitchcard/internal/domain/seasonstats"
	"github.com/okian/pitchcard/internal/domain/table"
)

const (
	headerFill = "#f2f2f2"
	gridStroke = "stroke:#444444;stroke-width:1"
)

func cellText(canvas *svg.SVG, b box, text, style string) {
	canvas.Text(b.cx(), b.Y+b.H/2+b.H/6, text, "text-anchor:middle;"+style)
}

func drawSeasonTable(canvas *svg.SVG, b box, t seasonstats.Table) {
	n := len(t.Headers)
	if n == 0 {
		return
	}
	colW := b.W / n
	rowH := b.H / 2
	for i := range t.Headers {
		x := b.X + i*colW
		head := box{X: x, Y: b.Y, W: colW, H: rowH}
		val := box{X: x, Y: b.Y + rowH, W: colW, H: rowH}
		canvas.Rect(head.X, head.Y, head.W, head.H, "fill:"+headerFill+";"+gridStroke)
		canvas.Rect(val.X, val.Y, val.W, val.H, "fill:white;"+gridStroke)
		cellText(canvas, head, t.Headers[i], "font-size:22px;font-weight:bold")
		if i < len(t.Values) {
			cellText(canvas, val, t.Values[i], "font-size:22px")
		}
	}
}

func drawPitchTable(canvas *svg.SVG, b box, t table.Table) {
	cols := len(t.Headers)
	if cols == 0 || len(t.Rows) == 0 {
		return
	}
	// the pitch name column is twice as wide as the others
	unit := b.W / (cols + 1)
	widths := make([]int, cols)
	for i := range widths {
		widths[i] = unit
	}
	widths[0] = b.W - unit*(cols-1)

	rowH := b.H / (len(t.Rows) + 1)
	if rowH > 48 {
		rowH = 48
	}

	x := b.X
	for i, h := range t.Headers {
		head := box{X: x, Y: b.Y, W: widths[i], H: rowH}
		canvas.Rect(head.X, head.Y, head.W, head.H, "fill:"+headerFill+";"+gridStroke)
		cellText(canvas, head, h, "font-size:16px;font-weight:bold")
		x += widths[i]
	}

	for r, row := range t.Rows {
		y := b.Y + (r+1)*rowH
		x := b.X
		for i, cell := range row.Cells {
			if i >= cols {
				break
			}
			c := box{X: x, Y: y, W: widths[i], H: rowH}
			fill, text := cell.Background, "fill:black"
			style := "font-size:16px"
			if i == 0 {
				fill, text = row.Swatch, "fill:"+row.Label
				style += ";font-weight:bold"
			}
			if fill == "" {
				fill = "white"
			}
			canvas.Rect(c.X, c.Y, c.W, c.H, "fill:"+fill+";"+gridStroke)
			cellText(canvas, c, cell.Text, style+";"+text)
			x += widths[i]
		}
	}
}
