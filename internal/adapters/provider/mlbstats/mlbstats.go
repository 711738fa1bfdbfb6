// Package mlbstats is a client for the public MLB Stats API: person bios,
// batched roster lookups and team records.
package mlbstats

import (
	"context"
	"fmt"
	"net/url"
	"strconv"
	"strings"

	"github.com/okian/pitchcard/internal/adapters/provider"
	"github.com/okian/pitchcard/internal/domain/model"
)

// ProviderName labels Stats API requests in metrics and logs.
const ProviderName = "mlbstats"

type person struct {
	ID         int    `json:"id"`
	FullName   string `json:"fullName"`
	FirstName  string `json:"firstName"`
	LastName   string `json:"lastName"`
	CurrentAge int    `json:"currentAge"`
	Height     string `json:"height"`
	Weight     int    `json:"weight"`
	PitchHand  struct {
		Code string `json:"code"`
	} `json:"pitchHand"`
	PrimaryPosition struct {
		Name string `json:"name"`
	} `json:"primaryPosition"`
	CurrentTeam struct {
		ID   int    `json:"id"`
		Name string `json:"name"`
		Link string `json:"link"`
	} `json:"currentTeam"`
}

type peopleResponse struct {
	People []person `json:"people"`
}

type teamsResponse struct {
	Teams []struct {
		ID           int    `json:"id"`
		Name         string `json:"name"`
		Abbreviation string `json:"abbreviation"`
		Sport        struct {
			Name string `json:"name"`
		} `json:"sport"`
	} `json:"teams"`
}

// Client talks to the Stats API at baseURL.
type Client struct {
	http    *provider.Client
	baseURL string
}

// New creates a Stats API client; opts configure the HTTP layer, including
// provider.WithRateLimit for pacing batch lookups.
func New(baseURL string, opts ...provider.Option) *Client {
	return &Client{
		http:    provider.NewClient(ProviderName, opts...),
		baseURL: strings.TrimRight(baseURL, "/"),
	}
}

// People looks up ids in one request with the current team hydrated. Ids the
// API does not know are simply absent from the result.
func (c *Client) People(ctx context.Context, ids []int) ([]model.Bio, error) {
	if len(ids) == 0 {
		return []model.Bio{}, nil
	}
	parts := make([]string, len(ids))
	for i, id := range ids {
		parts[i] = strconv.Itoa(id)
	}
	q := url.Values{}
	q.Set("personIds", strings.Join(parts, ","))
	q.Set("hydrate", "currentTeam")

	var resp peopleResponse
	if err := c.http.GetJSON(ctx, c.baseURL+"/api/v1/people?"+q.Encode(), &resp); err != nil {
		return nil, fmt.Errorf("people lookup (%d ids): %w", len(ids), err)
	}
	out := make([]model.Bio, 0, len(resp.People))
	for _, p := range resp.People {
		out = append(out, p.bio())
	}
	return out, nil
}

// Person returns the bio of one player.
func (c *Client) Person(ctx context.Context, id int) (model.Bio, error) {
	bios, err := c.People(ctx, []int{id})
	if err != nil {
		return model.Bio{}, err
	}
	for _, b := range bios {
		if b.ID == id {
			return b, nil
		}
	}
	return model.Bio{}, fmt.Errorf("%w: person %d", ErrNotFound, id)
}

// Team returns the team record, including the sport (level) name.
func (c *Client) Team(ctx context.Context, id int) (model.Team, error) {
	var resp teamsResponse
	if err := c.http.GetJSON(ctx, c.baseURL+"/api/v1/teams/"+strconv.Itoa(id), &resp); err != nil {
		return model.Team{}, fmt.Errorf("team %d: %w", id, err)
	}
	if len(resp.Teams) == 0 {
		return model.Team{}, fmt.Errorf("%w: team %d", ErrNotFound, id)
	}
	t := resp.Teams[0]
	sport := t.Sport.Name
	if sport == "" {
		sport = model.Unknown
	}
	return model.Team{ID: t.ID, Name: t.Name, Abbreviation: t.Abbreviation, Sport: sport}, nil
}

func (p person) bio() model.Bio {
	name := p.FullName
	if name == "" {
		name = strings.TrimSpace(p.FirstName + " " + p.LastName)
	}
	return model.Bio{
		ID:        p.ID,
		FullName:  name,
		PitchHand: p.PitchHand.Code,
		Age:       p.CurrentAge,
		Height:    p.Height,
		Weight:    p.Weight,
		Position:  p.PrimaryPosition.Name,
		TeamID:    p.CurrentTeam.ID,
		TeamName:  p.CurrentTeam.Name,
		TeamLink:  p.CurrentTeam.Link,
	}
}
