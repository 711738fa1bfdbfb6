package rendercard

import (
	"io"
)

// ShowHelp prints usage information for the render-card tool.
func ShowHelp(w io.Writer) {
	_, _ = io.WriteString(w, `Pitch Card Renderer
===================

Renders one pitcher's season card without starting the server. Settings such
as the season window, provider URLs and reference tables come from the same
PITCHCARD_* environment and PITCHCARD_CONFIG file as the server.

Usage:
  go run ./cmd/render-card -pitcher ID [options]

Options:
  -pitcher int
        MLBAM id of the pitcher (required)
  -start string
        First game date YYYY-MM-DD (default: season start)
  -end string
        Last game date YYYY-MM-DD (default: season end)
  -format string
        svg or json (default "svg")
  -out string
        Output file, "-" for stdout (default: pitcher_ID_card.FORMAT)
  -help
        Show this help message

Examples:
  # Tarik Skubal's season card
  go run ./cmd/render-card -pitcher 669373

  # April only, as JSON on stdout
  go run ./cmd/render-card -pitcher 669373 -start 2025-04-01 -end 2025-04-30 -format json -out -
`)
}
