package repository

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"math"
	"time"

	_ "github.com/glebarez/go-sqlite" // registers the "sqlite" driver

	"github.com/okian/pitchcard/internal/domain/model"
	"github.com/okian/pitchcard/pkg/metrics"
)

const (
	tableEvents      = "pitch_events"
	tableLeaderboard = "leaderboards"
	tableRoster      = "roster"
)

var schema = []string{
	`CREATE TABLE IF NOT EXISTS event_fetches (
		pitcher_id INTEGER NOT NULL,
		start_date TEXT NOT NULL,
		end_date   TEXT NOT NULL,
		fetched_at INTEGER NOT NULL,
		PRIMARY KEY (pitcher_id, start_date, end_date)
	)`,
	`CREATE TABLE IF NOT EXISTS pitch_events (
		pitcher_id  INTEGER NOT NULL,
		start_date  TEXT NOT NULL,
		end_date    TEXT NOT NULL,
		seq         INTEGER NOT NULL,
		pitch_type  TEXT,
		description TEXT,
		type        TEXT,
		p_throws    TEXT,
		game_type   TEXT,
		game_date   TEXT,
		zone REAL, release_speed REAL, pfx_x REAL, pfx_z REAL,
		release_spin_rate REAL, release_pos_x REAL, release_pos_z REAL,
		release_extension REAL, delta_run_exp REAL,
		estimated_woba_using_speedangle REAL, arm_angle REAL,
		PRIMARY KEY (pitcher_id, start_date, end_date, seq)
	)`,
	`CREATE TABLE IF NOT EXISTS leaderboards (
		season     INTEGER PRIMARY KEY,
		payload    TEXT NOT NULL,
		fetched_at INTEGER NOT NULL
	)`,
	`CREATE TABLE IF NOT EXISTS roster (
		seq        INTEGER PRIMARY KEY,
		id         INTEGER NOT NULL,
		first_name TEXT,
		last_name  TEXT,
		team       TEXT,
		team_id    INTEGER,
		position   TEXT,
		level      TEXT
	)`,
}

// SQLiteStore implements Store on a pure-Go sqlite database.
type SQLiteStore struct {
	db  *sql.DB
	ttl time.Duration
	now func() time.Time
}

// NewSQLiteStore opens (or creates) the database at path. ":memory:" keeps
// everything in process.
func NewSQLiteStore(ctx context.Context, path string, opts ...Option) (*SQLiteStore, error) {
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("%w: open %s: %w", ErrStorage, path, err)
	}
	// one connection: an in-memory database is private to its connection,
	// and sqlite serializes writers anyway
	db.SetMaxOpenConns(1)

	for _, stmt := range schema {
		if _, err := db.ExecContext(ctx, stmt); err != nil {
			_ = db.Close()
			return nil, fmt.Errorf("%w: schema: %w", ErrStorage, err)
		}
	}

	s := &SQLiteStore{db: db, now: time.Now}
	for _, opt := range opts {
		opt(s)
	}
	return s, nil
}

// Close closes the database.
func (s *SQLiteStore) Close() error {
	return s.db.Close()
}

func (s *SQLiteStore) fresh(fetchedAt int64) bool {
	if s.ttl <= 0 {
		return true
	}
	return s.now().Sub(time.Unix(fetchedAt, 0)) < s.ttl
}

// PutEvents replaces the cached events of one pitcher and window.
func (s *SQLiteStore) PutEvents(ctx context.Context, pitcherID int, start, end string, events []model.PitchEvent) error {
	return s.tx(ctx, func(tx *sql.Tx) error {
		if _, err := tx.ExecContext(ctx,
			`DELETE FROM pitch_events WHERE pitcher_id = ? AND start_date = ? AND end_date = ?`,
			pitcherID, start, end); err != nil {
			return err
		}
		stmt, err := tx.PrepareContext(ctx, `INSERT INTO pitch_events (
			pitcher_id, start_date, end_date, seq, pitch_type, description, type, p_throws,
			game_type, game_date, zone, release_speed, pfx_x, pfx_z, release_spin_rate,
			release_pos_x, release_pos_z, release_extension, delta_run_exp,
			estimated_woba_using_speedangle, arm_angle
		) VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`)
		if err != nil {
			return err
		}
		defer stmt.Close()

		for i, e := range events {
			if _, err := stmt.ExecContext(ctx,
				pitcherID, start, end, i, e.PitchType, e.Description, e.Type, e.PThrows,
				e.GameType, e.GameDate, nullable(e.Zone), nullable(e.ReleaseSpeed),
				nullable(e.PfxX), nullable(e.PfxZ), nullable(e.ReleaseSpinRate),
				nullable(e.ReleasePosX), nullable(e.ReleasePosZ), nullable(e.ReleaseExtension),
				nullable(e.DeltaRunExp), nullable(e.EstimatedWOBA), nullable(e.ArmAngle),
			); err != nil {
				return err
			}
		}
		_, err = tx.ExecContext(ctx,
			`INSERT OR REPLACE INTO event_fetches (pitcher_id, start_date, end_date, fetched_at) VALUES (?, ?, ?, ?)`,
			pitcherID, start, end, s.now().Unix())
		return err
	})
}

// Events returns the cached events of one pitcher and window.
func (s *SQLiteStore) Events(ctx context.Context, pitcherID int, start, end string) ([]model.PitchEvent, error) {
	var fetchedAt int64
	err := s.db.QueryRowContext(ctx,
		`SELECT fetched_at FROM event_fetches WHERE pitcher_id = ? AND start_date = ? AND end_date = ?`,
		pitcherID, start, end).Scan(&fetchedAt)
	if errors.Is(err, sql.ErrNoRows) || (err == nil && !s.fresh(fetchedAt)) {
		metrics.RecordCacheMiss(tableEvents)
		return nil, fmt.Errorf("%w: pitcher %d %s..%s", ErrNotFound, pitcherID, start, end)
	}
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrStorage, err)
	}

	rows, err := s.db.QueryContext(ctx, `SELECT
			pitch_type, description, type, p_throws, game_type, game_date, zone, release_speed,
			pfx_x, pfx_z, release_spin_rate, release_pos_x, release_pos_z, release_extension,
			delta_run_exp, estimated_woba_using_speedangle, arm_angle
		FROM pitch_events WHERE pitcher_id = ? AND start_date = ? AND end_date = ?
		ORDER BY seq`, pitcherID, start, end)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrStorage, err)
	}
	defer rows.Close()

	out := []model.PitchEvent{}
	for rows.Next() {
		var (
			text [6]sql.NullString
			num  [11]sql.NullFloat64
		)
		if err := rows.Scan(&text[0], &text[1], &text[2], &text[3], &text[4], &text[5],
			&num[0], &num[1], &num[2], &num[3], &num[4], &num[5], &num[6], &num[7], &num[8], &num[9], &num[10],
		); err != nil {
			return nil, fmt.Errorf("%w: %w", ErrStorage, err)
		}
		e := model.NewPitchEvent(text[0].String, text[1].String)
		e.Type, e.PThrows, e.GameType, e.GameDate = text[2].String, text[3].String, text[4].String, text[5].String
		e.Zone, e.ReleaseSpeed = nan(num[0]), nan(num[1])
		e.PfxX, e.PfxZ, e.ReleaseSpinRate = nan(num[2]), nan(num[3]), nan(num[4])
		e.ReleasePosX, e.ReleasePosZ, e.ReleaseExtension = nan(num[5]), nan(num[6]), nan(num[7])
		e.DeltaRunExp, e.EstimatedWOBA, e.ArmAngle = nan(num[8]), nan(num[9]), nan(num[10])
		out = append(out, e)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrStorage, err)
	}
	metrics.RecordCacheHit(tableEvents)
	return out, nil
}

// PutLeaderboard replaces the cached leaderboard of a season.
func (s *SQLiteStore) PutLeaderboard(ctx context.Context, season int, rows []model.LeaderboardRow) error {
	payload, err := json.Marshal(rows)
	if err != nil {
		return fmt.Errorf("%w: encode leaderboard: %w", ErrStorage, err)
	}
	if _, err := s.db.ExecContext(ctx,
		`INSERT OR REPLACE INTO leaderboards (season, payload, fetched_at) VALUES (?, ?, ?)`,
		season, string(payload), s.now().Unix()); err != nil {
		return fmt.Errorf("%w: %w", ErrStorage, err)
	}
	return nil
}

// Leaderboard returns the cached leaderboard of a season.
func (s *SQLiteStore) Leaderboard(ctx context.Context, season int) ([]model.LeaderboardRow, error) {
	var (
		payload   string
		fetchedAt int64
	)
	err := s.db.QueryRowContext(ctx,
		`SELECT payload, fetched_at FROM leaderboards WHERE season = ?`, season).Scan(&payload, &fetchedAt)
	if errors.Is(err, sql.ErrNoRows) || (err == nil && !s.fresh(fetchedAt)) {
		metrics.RecordCacheMiss(tableLeaderboard)
		return nil, fmt.Errorf("%w: leaderboard %d", ErrNotFound, season)
	}
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrStorage, err)
	}
	var rows []model.LeaderboardRow
	if err := json.Unmarshal([]byte(payload), &rows); err != nil {
		return nil, fmt.Errorf("%w: decode leaderboard: %w", ErrStorage, err)
	}
	metrics.RecordCacheHit(tableLeaderboard)
	return rows, nil
}

// ReplaceRoster swaps the roster directory.
func (s *SQLiteStore) ReplaceRoster(ctx context.Context, players []model.Player) error {
	return s.tx(ctx, func(tx *sql.Tx) error {
		if _, err := tx.ExecContext(ctx, `DELETE FROM roster`); err != nil {
			return err
		}
		stmt, err := tx.PrepareContext(ctx, `INSERT INTO roster
			(seq, id, first_name, last_name, team, team_id, position, level)
			VALUES (?, ?, ?, ?, ?, ?, ?, ?)`)
		if err != nil {
			return err
		}
		defer stmt.Close()
		for i, p := range players {
			if _, err := stmt.ExecContext(ctx, i, p.ID, p.FirstName, p.LastName, p.Team, p.TeamID, p.Position, p.Level); err != nil {
				return err
			}
		}
		return nil
	})
}

// Roster returns the roster in stored order.
func (s *SQLiteStore) Roster(ctx context.Context) ([]model.Player, error) {
	rows, err := s.db.QueryContext(ctx,
		`SELECT id, first_name, last_name, team, team_id, position, level FROM roster ORDER BY seq`)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrStorage, err)
	}
	defer rows.Close()

	out := []model.Player{}
	for rows.Next() {
		var p model.Player
		if err := rows.Scan(&p.ID, &p.FirstName, &p.LastName, &p.Team, &p.TeamID, &p.Position, &p.Level); err != nil {
			return nil, fmt.Errorf("%w: %w", ErrStorage, err)
		}
		out = append(out, p)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrStorage, err)
	}
	return out, nil
}

// Count returns the number of players in the roster; 0 on error.
func (s *SQLiteStore) Count(ctx context.Context) int {
	var n int
	if err := s.db.QueryRowContext(ctx, `SELECT COUNT(*) FROM `+tableRoster).Scan(&n); err != nil {
		metrics.RecordErrorByComponent("repository", "count")
		return 0
	}
	return n
}

func (s *SQLiteStore) tx(ctx context.Context, fn func(*sql.Tx) error) error {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("%w: begin: %w", ErrStorage, err)
	}
	if err := fn(tx); err != nil {
		_ = tx.Rollback()
		return fmt.Errorf("%w: %w", ErrStorage, err)
	}
	if err := tx.Commit(); err != nil {
		return fmt.Errorf("%w: commit: %w", ErrStorage, err)
	}
	return nil
}

func nullable(f float64) any {
	if math.IsNaN(f) {
		return nil
	}
	return f
}

func nan(v sql.NullFloat64) float64 {
	if !v.Valid {
		return math.NaN()
	}
	return v.Float64
}
