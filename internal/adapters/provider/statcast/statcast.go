// Package statcast downloads a pitcher's pitch-by-pitch events from Baseball
// Savant's search CSV export.
package statcast

import (
	"context"
	"errors"
	"fmt"
	"math"
	"net/url"
	"strconv"
	"time"

	"github.com/okian/pitchcard/internal/adapters/csvrows"
	"github.com/okian/pitchcard/internal/adapters/provider"
	"github.com/okian/pitchcard/internal/domain/model"
	"github.com/okian/pitchcard/pkg/logger"
)

// ProviderName labels Statcast requests in metrics and logs.
const ProviderName = "statcast"

// feetToInches converts Savant's pfx columns to inches.
const feetToInches = 12.0

// RegularSeason is the game_type of regular season games.
const RegularSeason = "R"

const dateLayout = "2006-01-02"

// Client fetches pitch events.
type Client struct {
	http              *provider.Client
	baseURL           string
	regularSeasonOnly bool
}

// New creates a client for the Savant CSV endpoint at baseURL.
func New(baseURL string, opts ...Option) *Client {
	c := &Client{baseURL: baseURL}
	var popts []provider.Option
	for _, opt := range opts {
		opt(c, &popts)
	}
	c.http = provider.NewClient(ProviderName, popts...)
	return c
}

// QueryURL builds the export URL for one pitcher and date window.
func (c *Client) QueryURL(pitcherID int, start, end string) string {
	q := url.Values{}
	q.Set("all", "true")
	q.Set("player_type", "pitcher")
	q.Set("pitchers_lookup[]", strconv.Itoa(pitcherID))
	q.Set("game_date_gt", start)
	q.Set("game_date_lt", end)
	q.Set("hfGT", "R|PO|S|")
	q.Set("min_pitches", "0")
	q.Set("min_results", "0")
	q.Set("group_by", "name")
	q.Set("sort_col", "pitches")
	q.Set("sort_order", "desc")
	q.Set("type", "details")
	return c.baseURL + "?" + q.Encode()
}

// PitcherEvents downloads and parses the events of pitcherID between start
// and end (inclusive, YYYY-MM-DD).
func (c *Client) PitcherEvents(ctx context.Context, pitcherID int, start, end string) ([]model.PitchEvent, error) {
	if pitcherID <= 0 {
		return nil, fmt.Errorf("%w: pitcher id %d", ErrInvalidQuery, pitcherID)
	}
	from, err := time.Parse(dateLayout, start)
	if err != nil {
		return nil, fmt.Errorf("%w: start %q", ErrInvalidQuery, start)
	}
	to, err := time.Parse(dateLayout, end)
	if err != nil {
		return nil, fmt.Errorf("%w: end %q", ErrInvalidQuery, end)
	}
	if to.Before(from) {
		return nil, fmt.Errorf("%w: end %s before start %s", ErrInvalidQuery, end, start)
	}

	body, _, err := c.http.Get(ctx, c.QueryURL(pitcherID, start, end))
	if err != nil {
		return nil, fmt.Errorf("statcast pitcher %d: %w", pitcherID, err)
	}
	events, err := Parse(body, c.regularSeasonOnly)
	if err != nil {
		return nil, fmt.Errorf("statcast pitcher %d: %w", pitcherID, err)
	}
	c.http.Logger().Debug(ctx, "statcast events loaded",
		logger.Int("pitcher_id", pitcherID),
		logger.Int("events", len(events)),
	)
	return events, nil
}

// Parse converts a Savant CSV export into events. Movement columns are
// scaled from feet to inches here and nowhere else. With regularOnly set,
// rows whose game_type is not "R" are dropped. An empty body is no events.
func Parse(b []byte, regularOnly bool) ([]model.PitchEvent, error) {
	tbl, err := csvrows.Read(b)
	if errors.Is(err, csvrows.ErrEmpty) {
		return []model.PitchEvent{}, nil
	}
	if err != nil {
		return nil, err
	}
	for _, col := range []string{"pitch_type", "description"} {
		if !tbl.Has(col) {
			return nil, fmt.Errorf("%w: %s", ErrMissingColumn, col)
		}
	}

	ix := tbl.Index
	var (
		iType, iDesc, iBIP    = ix("pitch_type"), ix("description"), ix("type")
		iThrows, iGame, iDate = ix("p_throws"), ix("game_type"), ix("game_date")
		iZone, iSpeed         = ix("zone"), ix("release_speed")
		iPfxX, iPfxZ, iSpin   = ix("pfx_x"), ix("pfx_z"), ix("release_spin_rate")
		iPosX, iPosZ, iExt    = ix("release_pos_x"), ix("release_pos_z"), ix("release_extension")
		iRun, iWOBA, iArm     = ix("delta_run_exp"), ix("estimated_woba_using_speedangle"), ix("arm_angle")
	)

	out := make([]model.PitchEvent, 0, len(tbl.Rows))
	for _, rec := range tbl.Rows {
		gameType := csvrows.Get(rec, iGame)
		if regularOnly && iGame >= 0 && gameType != RegularSeason {
			continue
		}
		e := model.NewPitchEvent(csvrows.Get(rec, iType), csvrows.Get(rec, iDesc))
		e.Type = csvrows.Get(rec, iBIP)
		e.PThrows = csvrows.Get(rec, iThrows)
		e.GameType = gameType
		e.GameDate = csvrows.Get(rec, iDate)
		e.Zone = csvrows.Float(rec, iZone)
		e.ReleaseSpeed = csvrows.Float(rec, iSpeed)
		e.PfxX = scale(csvrows.Float(rec, iPfxX))
		e.PfxZ = scale(csvrows.Float(rec, iPfxZ))
		e.ReleaseSpinRate = csvrows.Float(rec, iSpin)
		e.ReleasePosX = csvrows.Float(rec, iPosX)
		e.ReleasePosZ = csvrows.Float(rec, iPosZ)
		e.ReleaseExtension = csvrows.Float(rec, iExt)
		e.DeltaRunExp = csvrows.Float(rec, iRun)
		e.EstimatedWOBA = csvrows.Float(rec, iWOBA)
		e.ArmAngle = csvrows.Float(rec, iArm)
		out = append(out, e)
	}
	return out, nil
}

func scale(v float64) float64 {
	if math.IsNaN(v) {
		return v
	}
	return v * feetToInches
}
