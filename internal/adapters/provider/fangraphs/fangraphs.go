// Package fangraphs downloads the season pitching leaderboard.
package fangraphs

import (
	"context"
	"fmt"
	"net/url"
	"strconv"

	"github.com/okian/pitchcard/internal/adapters/provider"
	"github.com/okian/pitchcard/internal/domain/model"
)

// ProviderName labels leaderboard requests in metrics and logs.
const ProviderName = "fangraphs"

type leaderboardResponse struct {
	Data []model.LeaderboardRow `json:"data"`
}

// Client fetches leaderboards from baseURL.
type Client struct {
	http    *provider.Client
	baseURL string
}

// New creates a leaderboard client.
func New(baseURL string, opts ...provider.Option) *Client {
	return &Client{http: provider.NewClient(ProviderName, opts...), baseURL: baseURL}
}

// QueryURL returns the leaderboard URL for season: every pitcher, no
// qualification threshold, advanced stat type.
func (c *Client) QueryURL(season int) string {
	s := strconv.Itoa(season)
	q := url.Values{}
	q.Set("age", "")
	q.Set("pos", "all")
	q.Set("stats", "pit")
	q.Set("lg", "all")
	q.Set("season", s)
	q.Set("season1", s)
	q.Set("ind", "0")
	q.Set("qual", "0")
	q.Set("type", "8")
	q.Set("month", "0")
	q.Set("pageitems", "500000")
	return c.baseURL + "?" + q.Encode()
}

// Leaderboard returns every row of the season leaderboard.
func (c *Client) Leaderboard(ctx context.Context, season int) ([]model.LeaderboardRow, error) {
	var resp leaderboardResponse
	if err := c.http.GetJSON(ctx, c.QueryURL(season), &resp); err != nil {
		return nil, fmt.Errorf("leaderboard %d: %w", season, err)
	}
	if resp.Data == nil {
		resp.Data = []model.LeaderboardRow{}
	}
	return resp.Data, nil
}
