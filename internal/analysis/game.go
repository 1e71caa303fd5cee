package analysis

import (
	"encoding/json"
	"fmt"
	"math"
	"time"
)

// GameRecord is one game's box score for a single player.
// A field missing from Values was not reported; it is not a zero.
type GameRecord struct {
	GameID int               `json:"game_id"`
	Date   time.Time         `json:"game_date"`
	Values map[Field]float64 `json:"-"`
}

// Value returns the recorded value for f and whether it was present.
func (g GameRecord) Value(f Field) (float64, bool) {
	v, ok := g.Values[f]
	return v, ok
}

// Resolve returns the game's value for spec: the sum of every field it names.
func Resolve(game GameRecord, spec StatSpec) (float64, error) {
	var total float64
	for _, f := range spec.Fields {
		v, ok := game.Values[f]
		if !ok {
			return 0, &FieldDataError{GameID: game.GameID, Field: f, Reason: "not reported"}
		}
		if v < 0 || math.IsNaN(v) || math.IsInf(v, 0) {
			return 0, &FieldDataError{GameID: game.GameID, Field: f, Reason: "invalid value"}
		}
		total += v
	}
	return total, nil
}

const gameDateLayout = "2006-01-02"

type gameRecordJSON struct {
	GameID int                `json:"game_id"`
	Date   string             `json:"game_date"`
	Stats  map[string]float64 `json:"stats"`
}

// MarshalJSON writes values keyed by field token, e.g. {"pts": 31}.
func (g GameRecord) MarshalJSON() ([]byte, error) {
	out := gameRecordJSON{
		GameID: g.GameID,
		Date:   g.Date.Format(gameDateLayout),
		Stats:  make(map[string]float64, len(g.Values)),
	}
	for f, v := range g.Values {
		out.Stats[f.Token()] = v
	}
	return json.Marshal(out)
}

// UnmarshalJSON reads the form written by MarshalJSON. Unknown stat keys
// are ignored so newer producers can add fields.
func (g *GameRecord) UnmarshalJSON(data []byte) error {
	var in gameRecordJSON
	if err := json.Unmarshal(data, &in); err != nil {
		return err
	}

	date, err := time.Parse(gameDateLayout, in.Date)
	if err != nil {
		return fmt.Errorf("parsing game_date: %w", err)
	}

	values := make(map[Field]float64, len(in.Stats))
	for token, v := range in.Stats {
		if f, ok := FieldFromToken(token); ok {
			values[f] = v
		}
	}

	*g = GameRecord{GameID: in.GameID, Date: date, Values: values}
	return nil
}
