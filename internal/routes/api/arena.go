package api

import (
	"fmt"
	"strings"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/lk16/reversi/internal/config"
	"github.com/lk16/reversi/internal/match"
	"github.com/lk16/reversi/internal/models"
	"github.com/lk16/reversi/internal/player"
	"github.com/lk16/reversi/internal/repository"
)

const defaultResultsLimit = 20

// RunArena plays a computer player against the random player and stores the result.
func RunArena(c *fiber.Ctx) error {
	var payload models.ArenaRequest
	if err := c.BodyParser(&payload); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Invalid request body",
		})
	}

	if err := payload.Validate(); err != nil {
		return errorJSON(c, fiber.StatusBadRequest, err)
	}

	cfg := c.Locals("config").(*config.ServerConfig) //nolint: errcheck
	seed := uint64(time.Now().UnixNano())

	candidate, err := player.New(payload.Player, payload.Depth, cfg.Search.ThinkTime, seed)
	if err != nil {
		return errorJSON(c, fiber.StatusBadRequest, err)
	}

	summary, err := match.NewArena(payload.Games, seed+1).Performance(c.Context(), candidate)
	if err != nil {
		return handleError(c, err)
	}

	result := models.NewArenaResult(payload, summary)
	if err = repository.NewResultStore(c).SaveResult(c.Context(), &result); err != nil {
		return handleError(c, err)
	}

	return c.Status(fiber.StatusCreated).JSON(result)
}

// GetArenaResults returns the latest arena results, optionally filtered by a comma separated player list.
func GetArenaResults(c *fiber.Ctx) error {
	limit := c.QueryInt("limit", defaultResultsLimit)
	if limit < 1 || limit > models.MaxResultsLimit {
		return errorJSON(c, fiber.StatusBadRequest,
			fmt.Errorf("limit must be between 1 and %d", models.MaxResultsLimit))
	}

	var players []string
	if query := c.Query("player"); query != "" {
		for _, name := range strings.Split(query, ",") {
			kind, err := player.ParseKind(strings.TrimSpace(name))
			if err != nil {
				return errorJSON(c, fiber.StatusBadRequest, err)
			}
			players = append(players, string(kind))
		}
	}

	results, err := repository.NewResultStore(c).ListResults(c.Context(), players, limit)
	if err != nil {
		return handleError(c, err)
	}

	if results == nil {
		results = []models.ArenaResult{}
	}

	return c.Status(fiber.StatusOK).JSON(results)
}
