package model

import "strings"

// Unknown fills roster fields the enrichment could not resolve.
const Unknown = "Unknown"

// Player is one entry of the roster directory.
type Player struct {
	ID        int    `json:"id"`
	FirstName string `json:"first_name"`
	LastName  string `json:"last_name"`
	Team      string `json:"team"`
	TeamID    int    `json:"team_id,omitempty"`
	Position  string `json:"position"`
	Level     string `json:"level"`
}

// FullName joins first and last name the way the register spells them.
func (p Player) FullName() string {
	return strings.TrimSpace(p.FirstName + " " + p.LastName)
}

// IsPitcher reports whether the primary position names a pitcher.
func (p Player) IsPitcher() bool {
	return strings.Contains(p.Position, "Pitcher")
}

// Bio is the person record shown in the card header.
type Bio struct {
	ID        int    `json:"id"`
	FullName  string `json:"full_name"`
	PitchHand string `json:"pitch_hand"`
	Age       int    `json:"age"`
	Height    string `json:"height"`
	Weight    int    `json:"weight"`
	Position  string `json:"position"`
	TeamID    int    `json:"team_id,omitempty"`
	TeamName  string `json:"team_name,omitempty"`
	TeamLink  string `json:"-"`
}

// Team is the subset of a team record the card uses.
type Team struct {
	ID           int    `json:"id"`
	Name         string `json:"name"`
	Abbreviation string `json:"abbreviation"`
	Sport        string `json:"sport"`
}

// EnrichBatch is a slice of the register handed to one enrichment worker.
type EnrichBatch struct {
	ID      string
	Seq     int
	Players []Player
}

// IDs returns the MLBAM ids of the batch in order.
func (b EnrichBatch) IDs() []int {
	ids := make([]int, len(b.Players))
	for i, p := range b.Players {
		ids[i] = p.ID
	}
	return ids
}
