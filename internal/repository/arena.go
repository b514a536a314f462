package repository

import (
	"context"
	"fmt"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"
	"github.com/lib/pq"
	"github.com/lk16/reversi/internal/models"
)

const ResultsLocal = "results"

const arenaSchema = `
	CREATE TABLE IF NOT EXISTS arena_results (
		id UUID PRIMARY KEY,
		player TEXT NOT NULL,
		depth INTEGER NOT NULL,
		games INTEGER NOT NULL,
		wins INTEGER NOT NULL,
		losses INTEGER NOT NULL,
		ties INTEGER NOT NULL,
		performance DOUBLE PRECISION NOT NULL,
		created_at TIMESTAMPTZ NOT NULL
	);
	CREATE INDEX IF NOT EXISTS arena_results_created_at ON arena_results (created_at DESC);
`

// ResultStore keeps arena results.
type ResultStore interface {
	// SaveResult stores a result and sets its ID and creation time.
	SaveResult(ctx context.Context, result *models.ArenaResult) error

	// ListResults returns the latest results, newest first. An empty players list means all players.
	ListResults(ctx context.Context, players []string, limit int) ([]models.ArenaResult, error)
}

// NewResultStore returns the result store registered in the fiber context.
func NewResultStore(c *fiber.Ctx) ResultStore {
	return c.Locals(ResultsLocal).(ResultStore) //nolint: errcheck
}

// ArenaRepository stores arena results in Postgres.
type ArenaRepository struct {
	db *sqlx.DB
}

func NewArenaRepository(db *sqlx.DB) *ArenaRepository {
	return &ArenaRepository{db: db}
}

// EnsureSchema creates the results table if it does not exist.
func (repo *ArenaRepository) EnsureSchema(ctx context.Context) error {
	if _, err := repo.db.ExecContext(ctx, arenaSchema); err != nil {
		return fmt.Errorf("error creating arena schema: %w", err)
	}
	return nil
}

func (repo *ArenaRepository) SaveResult(ctx context.Context, result *models.ArenaResult) error {
	result.ID = uuid.New().String()
	result.CreatedAt = time.Now().UTC()

	query := `
		INSERT INTO arena_results (id, player, depth, games, wins, losses, ties, performance, created_at)
		VALUES (:id, :player, :depth, :games, :wins, :losses, :ties, :performance, :created_at)
	`

	if _, err := repo.db.NamedExecContext(ctx, query, result); err != nil {
		return fmt.Errorf("error saving arena result: %w", err)
	}

	return nil
}

func (repo *ArenaRepository) ListResults(ctx context.Context, players []string, limit int) ([]models.ArenaResult, error) {
	results := make([]models.ArenaResult, 0)

	var err error
	if len(players) == 0 {
		err = repo.db.SelectContext(ctx, &results, `
			SELECT id, player, depth, games, wins, losses, ties, performance, created_at
			FROM arena_results
			ORDER BY created_at DESC
			LIMIT $1
		`, limit)
	} else {
		err = repo.db.SelectContext(ctx, &results, `
			SELECT id, player, depth, games, wins, losses, ties, performance, created_at
			FROM arena_results
			WHERE player = ANY($1)
			ORDER BY created_at DESC
			LIMIT $2
		`, pq.Array(players), limit)
	}

	if err != nil {
		return nil, fmt.Errorf("error listing arena results: %w", err)
	}

	return results, nil
}
