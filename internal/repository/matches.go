package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"
	"github.com/lib/pq"
	"github.com/lk16/desdemona/internal/arena"
	"github.com/lk16/desdemona/internal/services"
)

const (
	// DefaultListLimit is used when List is called without a positive limit.
	DefaultListLimit = 50

	// MaxListLimit caps the number of matches returned by List.
	MaxListLimit = 1000
)

// ErrMatchNotFound is returned when a match id is not in the database.
var ErrMatchNotFound = errors.New("match not found")

// ErrNoDatabase is returned when Postgres is not configured.
var ErrNoDatabase = errors.New("postgres is not configured")

const schema = `
	CREATE TABLE IF NOT EXISTS matches (
		id          UUID PRIMARY KEY,
		black       TEXT NOT NULL,
		white       TEXT NOT NULL,
		black_discs INTEGER NOT NULL,
		white_discs INTEGER NOT NULL,
		outcome     TEXT NOT NULL,
		forfeit     TEXT NOT NULL DEFAULT '',
		transcript  TEXT NOT NULL,
		duration    BIGINT NOT NULL,
		created_at  TIMESTAMPTZ NOT NULL
	);
	CREATE INDEX IF NOT EXISTS matches_created_at_idx ON matches (created_at DESC);
`

// MatchRepository stores match results in Postgres.
type MatchRepository struct {
	db *sqlx.DB
}

var _ arena.ResultSink = (*MatchRepository)(nil)

// NewMatchRepository creates a new MatchRepository from the services stored in the fiber context.
func NewMatchRepository(c *fiber.Ctx) *MatchRepository {
	services := c.Locals("services").(*services.Services) //nolint: errcheck
	return NewMatchRepositoryFromServices(services)
}

// NewMatchRepositoryFromServices creates a new MatchRepository.
func NewMatchRepositoryFromServices(services *services.Services) *MatchRepository {
	return &MatchRepository{db: services.Postgres}
}

// Enabled returns whether a database is configured.
func (repo *MatchRepository) Enabled() bool {
	return repo.db != nil
}

// EnsureSchema creates the tables if they don't exist yet.
func (repo *MatchRepository) EnsureSchema(ctx context.Context) error {
	if !repo.Enabled() {
		return ErrNoDatabase
	}

	if _, err := repo.db.ExecContext(ctx, schema); err != nil {
		return fmt.Errorf("error creating schema: %w", err)
	}

	return nil
}

// Save stores a match result.
func (repo *MatchRepository) Save(ctx context.Context, result *arena.Result) error {
	if !repo.Enabled() {
		return ErrNoDatabase
	}

	query := `
		INSERT INTO matches (
			id, black, white, black_discs, white_discs, outcome, forfeit, transcript, duration, created_at
		) VALUES (
			:id, :black, :white, :black_discs, :white_discs, :outcome, :forfeit, :transcript, :duration, :created_at
		)
	`

	if _, err := repo.db.NamedExecContext(ctx, query, result); err != nil {
		return fmt.Errorf("error saving match: %w", err)
	}

	return nil
}

// Get loads a single match result.
func (repo *MatchRepository) Get(ctx context.Context, id uuid.UUID) (*arena.Result, error) {
	if !repo.Enabled() {
		return nil, ErrNoDatabase
	}

	query := `
		SELECT id, black, white, black_discs, white_discs, outcome, forfeit, transcript, duration, created_at
		FROM matches
		WHERE id = $1
	`

	var result arena.Result
	if err := repo.db.GetContext(ctx, &result, query, id); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrMatchNotFound
		}
		return nil, fmt.Errorf("error getting match: %w", err)
	}

	return &result, nil
}

// List returns the most recent match results, newest first.
// When players is not empty, only matches where one of them played are returned.
func (repo *MatchRepository) List(ctx context.Context, limit int, players []string) ([]arena.Result, error) {
	if !repo.Enabled() {
		return nil, ErrNoDatabase
	}

	if limit <= 0 {
		limit = DefaultListLimit
	}
	limit = min(limit, MaxListLimit)

	query := `
		SELECT id, black, white, black_discs, white_discs, outcome, forfeit, transcript, duration, created_at
		FROM matches
		WHERE cardinality($2::text[]) = 0 OR black = ANY($2) OR white = ANY($2)
		ORDER BY created_at DESC
		LIMIT $1
	`

	if players == nil {
		players = []string{}
	}

	results := make([]arena.Result, 0)
	if err := repo.db.SelectContext(ctx, &results, query, limit, pq.Array(players)); err != nil {
		return nil, fmt.Errorf("error listing matches: %w", err)
	}

	return results, nil
}

// Standings aggregates all stored results per player configuration, best first.
func (repo *MatchRepository) Standings(ctx context.Context) ([]arena.Standing, error) {
	if !repo.Enabled() {
		return nil, ErrNoDatabase
	}

	query := `
		WITH sides AS (
			SELECT
				black AS player,
				black_discs AS discs_for,
				white_discs AS discs_against,
				outcome = 'black' AS won,
				outcome = 'white' AS lost,
				outcome = 'white' AND forfeit <> '' AS forfeited
			FROM matches
			UNION ALL
			SELECT
				white,
				white_discs,
				black_discs,
				outcome = 'white',
				outcome = 'black',
				outcome = 'black' AND forfeit <> ''
			FROM matches
		)
		SELECT
			player,
			COUNT(*) AS played,
			COUNT(*) FILTER (WHERE won) AS wins,
			COUNT(*) FILTER (WHERE lost) AS losses,
			COUNT(*) FILTER (WHERE NOT won AND NOT lost) AS draws,
			COUNT(*) FILTER (WHERE forfeited) AS forfeits,
			SUM(discs_for) AS discs_for,
			SUM(discs_against) AS discs_against
		FROM sides
		GROUP BY player
	`

	standings := make([]arena.Standing, 0)
	if err := repo.db.SelectContext(ctx, &standings, query); err != nil {
		return nil, fmt.Errorf("error loading standings: %w", err)
	}

	arena.SortStandings(standings)
	return standings, nil
}
