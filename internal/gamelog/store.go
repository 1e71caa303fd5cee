package gamelog

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	_ "github.com/mattn/go-sqlite3"

	"nba-prop-checker/internal/analysis"
)

const dateLayout = "2006-01-02"

// Store persists box scores per player in SQLite.
type Store struct {
	db *sql.DB
}

// NewStore opens (or creates) the game log database at path.
func NewStore(path string) (*Store, error) {
	db, err := sql.Open("sqlite3", path)
	if err != nil {
		return nil, fmt.Errorf("opening database: %w", err)
	}

	if err := createTables(db); err != nil {
		db.Close()
		return nil, err
	}

	return &Store{db: db}, nil
}

func createTables(db *sql.DB) error {
	schema := `
	CREATE TABLE IF NOT EXISTS games (
		player_id INTEGER NOT NULL,
		game_id INTEGER NOT NULL,
		game_date TEXT NOT NULL,
		PRIMARY KEY (player_id, game_id)
	);

	CREATE TABLE IF NOT EXISTS game_stats (
		player_id INTEGER NOT NULL,
		game_id INTEGER NOT NULL,
		field TEXT NOT NULL,
		value REAL NOT NULL,
		PRIMARY KEY (player_id, game_id, field)
	);

	CREATE TABLE IF NOT EXISTS fetches (
		player_id INTEGER PRIMARY KEY,
		fetched_at DATETIME NOT NULL
	);

	CREATE INDEX IF NOT EXISTS idx_games_date ON games(player_id, game_date);
	`

	_, err := db.Exec(schema)
	if err != nil {
		return fmt.Errorf("creating tables: %w", err)
	}
	return nil
}

// Close closes the database connection
func (s *Store) Close() error {
	return s.db.Close()
}

// SaveGames replaces everything stored for playerID with games and stamps
// the fetch time.
func (s *Store) SaveGames(ctx context.Context, playerID int, games []analysis.GameRecord, fetchedAt time.Time) (err error) {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("beginning transaction: %w", err)
	}
	defer func() {
		if err != nil {
			tx.Rollback()
		}
	}()

	if _, err = tx.ExecContext(ctx, "DELETE FROM game_stats WHERE player_id = ?", playerID); err != nil {
		return fmt.Errorf("clearing stats: %w", err)
	}
	if _, err = tx.ExecContext(ctx, "DELETE FROM games WHERE player_id = ?", playerID); err != nil {
		return fmt.Errorf("clearing games: %w", err)
	}

	for _, g := range games {
		if _, err = tx.ExecContext(ctx, `
			INSERT INTO games (player_id, game_id, game_date) VALUES (?, ?, ?)
		`, playerID, g.GameID, g.Date.UTC().Format(dateLayout)); err != nil {
			return fmt.Errorf("inserting game %d: %w", g.GameID, err)
		}
		for f, v := range g.Values {
			if !f.Valid() {
				continue
			}
			if _, err = tx.ExecContext(ctx, `
				INSERT INTO game_stats (player_id, game_id, field, value) VALUES (?, ?, ?, ?)
			`, playerID, g.GameID, f.Token(), v); err != nil {
				return fmt.Errorf("inserting %s for game %d: %w", f, g.GameID, err)
			}
		}
	}

	if _, err = tx.ExecContext(ctx, `
		INSERT INTO fetches (player_id, fetched_at) VALUES (?, ?)
		ON CONFLICT(player_id) DO UPDATE SET fetched_at = excluded.fetched_at
	`, playerID, fetchedAt.UTC()); err != nil {
		return fmt.Errorf("stamping fetch: %w", err)
	}

	if err = tx.Commit(); err != nil {
		return fmt.Errorf("committing games: %w", err)
	}
	return nil
}

// LoadGames returns the stored games for playerID, newest first, and when
// they were fetched. A player that was never saved yields no games and a
// zero time.
func (s *Store) LoadGames(ctx context.Context, playerID int) ([]analysis.GameRecord, time.Time, error) {
	var fetchedAt time.Time
	err := s.db.QueryRowContext(ctx, "SELECT fetched_at FROM fetches WHERE player_id = ?", playerID).Scan(&fetchedAt)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, time.Time{}, nil
	}
	if err != nil {
		return nil, time.Time{}, fmt.Errorf("querying fetch time: %w", err)
	}

	rows, err := s.db.QueryContext(ctx, `
		SELECT g.game_id, g.game_date, s.field, s.value
		FROM games g
		LEFT JOIN game_stats s ON s.player_id = g.player_id AND s.game_id = g.game_id
		WHERE g.player_id = ?
		ORDER BY g.game_date DESC, g.game_id DESC
	`, playerID)
	if err != nil {
		return nil, time.Time{}, fmt.Errorf("querying games: %w", err)
	}
	defer rows.Close()

	var games []analysis.GameRecord
	index := make(map[int]int)
	for rows.Next() {
		var (
			gameID int
			date   string
			field  sql.NullString
			value  sql.NullFloat64
		)
		if err := rows.Scan(&gameID, &date, &field, &value); err != nil {
			return nil, time.Time{}, fmt.Errorf("scanning game row: %w", err)
		}

		i, ok := index[gameID]
		if !ok {
			d, err := time.Parse(dateLayout, date)
			if err != nil {
				return nil, time.Time{}, fmt.Errorf("parsing date of game %d: %w", gameID, err)
			}
			games = append(games, analysis.GameRecord{
				GameID: gameID,
				Date:   d,
				Values: make(map[analysis.Field]float64),
			})
			i = len(games) - 1
			index[gameID] = i
		}

		if !field.Valid || !value.Valid {
			continue
		}
		f, ok := analysis.FieldFromToken(field.String)
		if !ok {
			continue
		}
		games[i].Values[f] = value.Float64
	}
	if err := rows.Err(); err != nil {
		return nil, time.Time{}, fmt.Errorf("reading game rows: %w", err)
	}

	return games, fetchedAt, nil
}
