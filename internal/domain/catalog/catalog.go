// Package catalog holds the static reference data the card is drawn with:
// pitch names and colors, team logos and level names.
package catalog

import "sort"

// FallbackColor is used for pitch codes missing from the catalog.
const FallbackColor = "#808080"

// Pitch describes a pitch code.
type Pitch struct {
	Code  string
	Name  string
	Color string
}

var pitches = map[string]Pitch{
	// fastballs
	"FF": {"FF", "4-Seam Fastball", "#C21014"},
	"FA": {"FA", "Fastball", "#C21014"},
	"SI": {"SI", "Sinker", "#F4B400"},
	"FC": {"FC", "Cutter", "#993300"},

	// offspeed
	"CH": {"CH", "Changeup", "#00B386"},
	"FS": {"FS", "Splitter", "#66CCCC"},
	"SC": {"SC", "Screwball", "#33CC99"},
	"FO": {"FO", "Forkball", "#339966"},

	// sliders
	"SL": {"SL", "Slider", "#FFCC00"},
	"ST": {"ST", "Sweeper", "#CCCC66"},
	"SV": {"SV", "Slurve", "#9999FF"},

	// curveballs
	"KC": {"KC", "Knuckle Curve", "#0000CC"},
	"CU": {"CU", "Curveball", "#3399FF"},
	"CS": {"CS", "Slow Curve", "#66CCFF"},

	"KN": {"KN", "Knuckleball", "#3333CC"},

	"EP": {"EP", "Eephus", "#999966"},
	"PO": {"PO", "Pitchout", "#CCCCCC"},
	"UN": {"UN", "Unknown", "#9C8975"},
}

// darkTextPitches are drawn with black labels on their swatch.
var darkTextPitches = map[string]bool{"Splitter": true, "Slider": true, "Changeup": true}

// LookupPitch returns the catalog entry for code.
func LookupPitch(code string) (Pitch, bool) {
	p, ok := pitches[code]
	return p, ok
}

// PitchName returns the display name for code, or code itself when unknown.
func PitchName(code string) string {
	if p, ok := pitches[code]; ok {
		return p.Name
	}
	return code
}

// PitchColor returns the swatch color for code, gray when unknown.
func PitchColor(code string) string {
	if p, ok := pitches[code]; ok {
		return p.Color
	}
	return FallbackColor
}

// LabelColor returns the text color used on top of the pitch swatch.
func LabelColor(code string) string {
	if darkTextPitches[PitchName(code)] {
		return "#000000"
	}
	return "#FFFFFF"
}

// PitchCodes returns every known pitch code in sorted order.
func PitchCodes() []string {
	codes := make([]string, 0, len(pitches))
	for c := range pitches {
		codes = append(codes, c)
	}
	sort.Strings(codes)
	return codes
}
