package repository

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"github.com/lk16/reversi/internal/models"
	"github.com/redis/go-redis/v9"
)

const (
	GamesLocal    = "games"
	gameKeyPrefix = "game:"
	GameTTL       = 24 * time.Hour
)

var ErrGameNotFound = errors.New("game not found")

// GameStore keeps live game sessions.
type GameStore interface {
	// CreateGame stores a new session and sets its ID.
	CreateGame(ctx context.Context, session *models.GameSession) error
	GetGame(ctx context.Context, id string) (*models.GameSession, error)
	UpdateGame(ctx context.Context, session *models.GameSession) error
}

// NewGameStore returns the game store registered in the fiber context.
func NewGameStore(c *fiber.Ctx) GameStore {
	return c.Locals(GamesLocal).(GameStore) //nolint: errcheck
}

// GameRepository stores game sessions in Redis. Sessions expire GameTTL after their last update.
type GameRepository struct {
	redis *redis.Client
}

func NewGameRepository(client *redis.Client) *GameRepository {
	return &GameRepository{redis: client}
}

func gameKey(id string) string {
	return gameKeyPrefix + id
}

// CreateGame stores a new session under a fresh ID.
func (repo *GameRepository) CreateGame(ctx context.Context, session *models.GameSession) error {
	session.ID = uuid.New().String()

	jsonData, err := json.Marshal(session)
	if err != nil {
		return fmt.Errorf("error marshaling game: %w", err)
	}

	if err = repo.redis.Set(ctx, gameKey(session.ID), jsonData, GameTTL).Err(); err != nil {
		return fmt.Errorf("error storing game: %w", err)
	}

	return nil
}

// GetGame loads a session.
func (repo *GameRepository) GetGame(ctx context.Context, id string) (*models.GameSession, error) {
	if _, err := uuid.Parse(id); err != nil {
		return nil, fmt.Errorf("%w: %s", ErrGameNotFound, id)
	}

	jsonData, err := repo.redis.Get(ctx, gameKey(id)).Bytes()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return nil, fmt.Errorf("%w: %s", ErrGameNotFound, id)
		}
		return nil, fmt.Errorf("error getting game: %w", err)
	}

	var session models.GameSession
	if err = json.Unmarshal(jsonData, &session); err != nil {
		return nil, fmt.Errorf("error unmarshaling game: %w", err)
	}

	return &session, nil
}

// UpdateGame overwrites an existing session and resets its TTL.
func (repo *GameRepository) UpdateGame(ctx context.Context, session *models.GameSession) error {
	jsonData, err := json.Marshal(session)
	if err != nil {
		return fmt.Errorf("error marshaling game: %w", err)
	}

	updated, err := repo.redis.SetXX(ctx, gameKey(session.ID), jsonData, GameTTL).Result()
	if err != nil {
		return fmt.Errorf("error updating game: %w", err)
	}

	if !updated {
		return fmt.Errorf("%w: %s", ErrGameNotFound, session.ID)
	}

	return nil
}
