package content

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"strings"

	_ "github.com/lib/pq" // PostgreSQL driver

	"github.com/Garsondee/Quiz-Pursuit/internal/game"
)

// PostgresSource stores levels in a quiz_levels table. Placements are kept
// as JSONB columns next to the text layout.
type PostgresSource struct {
	db *sql.DB
}

// NewPostgresSource connects, pings and makes sure the schema exists.
func NewPostgresSource(ctx context.Context, dsn string) (*PostgresSource, error) {
	db, err := sql.Open("postgres", dsn)
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}
	if err := db.PingContext(ctx); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to ping database: %w", err)
	}
	s := &PostgresSource{db: db}
	if err := s.initSchema(ctx); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to initialize schema: %w", err)
	}
	return s, nil
}

func (s *PostgresSource) initSchema(ctx context.Context) error {
	schema := `
	CREATE TABLE IF NOT EXISTS quiz_levels (
		position INTEGER PRIMARY KEY,
		name TEXT NOT NULL,
		question TEXT NOT NULL,
		layout TEXT NOT NULL,
		start_x INTEGER NOT NULL,
		start_y INTEGER NOT NULL,
		options JSONB NOT NULL,
		enemies JSONB NOT NULL,
		power_ups JSONB NOT NULL,
		updated_at TIMESTAMP WITH TIME ZONE DEFAULT NOW()
	);
	`
	_, err := s.db.ExecContext(ctx, schema)
	return err
}

// Close releases the connection pool.
func (s *PostgresSource) Close() error {
	return s.db.Close()
}

// Levels implements Source. Rows are returned by position.
func (s *PostgresSource) Levels(ctx context.Context) ([]game.LevelDescriptor, error) {
	query := `SELECT position, name, question, layout, start_x, start_y, options, enemies, power_ups
	FROM quiz_levels ORDER BY position`
	rows, err := s.db.QueryContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("failed to query levels: %w", err)
	}
	defer rows.Close()

	var out []game.LevelDescriptor
	for rows.Next() {
		var (
			pos                      int
			layout                   string
			optsJSON, enJSON, puJSON []byte
			d                        game.LevelDescriptor
		)
		if err := rows.Scan(&pos, &d.Name, &d.Question, &layout, &d.Start.X, &d.Start.Y,
			&optsJSON, &enJSON, &puJSON); err != nil {
			return nil, fmt.Errorf("failed to scan level: %w", err)
		}
		d.Grid, err = game.ParseLayout(strings.Split(layout, "\n")...)
		if err != nil {
			return nil, fmt.Errorf("level at position %d: %w", pos, err)
		}
		if err := json.Unmarshal(optsJSON, &d.Options); err != nil {
			return nil, fmt.Errorf("failed to unmarshal options of level %d: %w", pos, err)
		}
		if err := json.Unmarshal(enJSON, &d.Enemies); err != nil {
			return nil, fmt.Errorf("failed to unmarshal enemies of level %d: %w", pos, err)
		}
		if err := json.Unmarshal(puJSON, &d.PowerUps); err != nil {
			return nil, fmt.Errorf("failed to unmarshal power-ups of level %d: %w", pos, err)
		}
		if err := d.Validate(); err != nil {
			return nil, fmt.Errorf("level at position %d: %w: %w", pos, ErrInvalidLevel, err)
		}
		out = append(out, d)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to read levels: %w", err)
	}
	if len(out) == 0 {
		return nil, ErrNoLevels
	}
	return out, nil
}

// Import replaces the stored levels with levels, in one transaction.
func (s *PostgresSource) Import(ctx context.Context, levels []game.LevelDescriptor) error {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin import: %w", err)
	}
	defer tx.Rollback() //nolint:errcheck // no-op after commit

	if _, err := tx.ExecContext(ctx, `DELETE FROM quiz_levels`); err != nil {
		return fmt.Errorf("failed to clear levels: %w", err)
	}
	query := `
	INSERT INTO quiz_levels (position, name, question, layout, start_x, start_y, options, enemies, power_ups)
	VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)
	`
	for i, d := range levels {
		optsJSON, err := json.Marshal(nonNil(d.Options))
		if err != nil {
			return fmt.Errorf("failed to marshal options: %w", err)
		}
		enJSON, err := json.Marshal(nonNil(d.Enemies))
		if err != nil {
			return fmt.Errorf("failed to marshal enemies: %w", err)
		}
		puJSON, err := json.Marshal(nonNil(d.PowerUps))
		if err != nil {
			return fmt.Errorf("failed to marshal power-ups: %w", err)
		}
		layout := strings.Join(FormatLayout(d.Grid), "\n")
		if _, err := tx.ExecContext(ctx, query, i+1, d.Name, d.Question, layout,
			d.Start.X, d.Start.Y, string(optsJSON), string(enJSON), string(puJSON)); err != nil {
			return fmt.Errorf("failed to save level %q: %w", d.Name, err)
		}
	}
	if err := tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit import: %w", err)
	}
	return nil
}

func nonNil[T any](s []T) []T {
	if s == nil {
		return []T{}
	}
	return s
}
