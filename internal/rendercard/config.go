// Package rendercard renders one pitcher card from the command line without
// the HTTP server.
package rendercard

import (
	"errors"
	"fmt"
	"strconv"
)

// Output formats.
const (
	FormatSVG  = "svg"
	FormatJSON = "json"
)

// ErrUsage reports bad command line input.
var ErrUsage = errors.New("invalid usage")

// Config holds one render-card invocation
type Config struct {
	PitcherID int    // MLBAM id of the pitcher
	Start     string // first game date, empty for season start
	End       string // last game date, empty for season end
	Out       string // output file, "-" for stdout
	Format    string // svg or json
}

// Validate checks the flags and fills the default output name.
func (c *Config) Validate() error {
	if c.PitcherID <= 0 {
		return fmt.Errorf("%w: -pitcher is required", ErrUsage)
	}
	switch c.Format {
	case FormatSVG, FormatJSON:
	default:
		return fmt.Errorf("%w: -format must be svg or json, got %q", ErrUsage, c.Format)
	}
	if c.Out == "" {
		c.Out = "pitcher_" + strconv.Itoa(c.PitcherID) + "_card." + c.Format
	}
	return nil
}
