package reference

import (
	"fmt"
	"os"

	"github.com/okian/pitchcard/internal/adapters/csvrows"
	"github.com/okian/pitchcard/internal/domain/model"
)

// LoadRegister reads the people register CSV and keeps players with an MLBAM
// id whose last MLB season is season. season <= 0 keeps every season.
func LoadRegister(path string, season int) ([]model.Player, error) {
	b, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("register: %w", err)
	}
	return ParseRegisterCSV(b, season)
}

// ParseRegisterCSV is LoadRegister over an in-memory file. Team, position
// and level start as Unknown until enrichment fills them.
func ParseRegisterCSV(b []byte, season int) ([]model.Player, error) {
	tbl, err := csvrows.Read(b)
	if err != nil {
		return nil, fmt.Errorf("register: %w", err)
	}
	iID := tbl.Index("key_mlbam")
	if iID < 0 {
		return nil, fmt.Errorf("%w: key_mlbam", ErrMissingColumn)
	}
	iFirst, iLast, iPlayed := tbl.Index("name_first"), tbl.Index("name_last"), tbl.Index("mlb_played_last")

	seen := make(map[int]struct{}, len(tbl.Rows))
	out := make([]model.Player, 0, len(tbl.Rows))
	for _, rec := range tbl.Rows {
		id, ok := csvrows.Int(rec, iID)
		if !ok || id <= 0 {
			continue
		}
		if season > 0 && iPlayed >= 0 {
			played, ok := csvrows.Int(rec, iPlayed)
			if !ok || played != season {
				continue
			}
		}
		if _, dup := seen[id]; dup {
			continue
		}
		seen[id] = struct{}{}
		out = append(out, model.Player{
			ID:        id,
			FirstName: csvrows.Get(rec, iFirst),
			LastName:  csvrows.Get(rec, iLast),
			Team:      model.Unknown,
			Position:  model.Unknown,
			Level:     model.Unknown,
		})
	}
	return out, nil
}
