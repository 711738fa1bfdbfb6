// Package repository caches upstream data (pitch events, leaderboards and
// the enriched roster) between requests.
package repository

import (
	"context"

	"github.com/okian/pitchcard/internal/domain/model"
)

// Store provides read/write access to cached upstream data.
type Store interface {
	// PutEvents replaces the cached events of one pitcher and date window.
	PutEvents(ctx context.Context, pitcherID int, start, end string, events []model.PitchEvent) error
	// Events returns cached events. It returns ErrNotFound when nothing is
	// cached or the entry is older than the store's TTL.
	Events(ctx context.Context, pitcherID int, start, end string) ([]model.PitchEvent, error)

	// PutLeaderboard replaces the cached leaderboard of a season.
	PutLeaderboard(ctx context.Context, season int, rows []model.LeaderboardRow) error
	// Leaderboard returns the cached leaderboard or ErrNotFound.
	Leaderboard(ctx context.Context, season int) ([]model.LeaderboardRow, error)

	// ReplaceRoster swaps the whole roster directory, keeping its order.
	ReplaceRoster(ctx context.Context, players []model.Player) error
	// Roster returns the roster in stored order.
	Roster(ctx context.Context) ([]model.Player, error)

	// Count returns the number of players in the roster.
	Count(ctx context.Context) int

	Close() error
}
