package api

import (
	"errors"
	"log/slog"

	"github.com/gofiber/fiber/v2"
	"github.com/lk16/reversi/internal/othello"
	"github.com/lk16/reversi/internal/repository"
)

var (
	errGameOver     = errors.New("game is over")
	errNotHumanTurn = errors.New("it is not a human player's turn")
	errNotComputer  = errors.New("it is not a computer player's turn")
)

func errorJSON(c *fiber.Ctx, status int, err error) error {
	return c.Status(status).JSON(fiber.Map{
		"error": err.Error(),
	})
}

// handleError maps known errors to a status code.
func handleError(c *fiber.Ctx, err error) error {
	switch {
	case errors.Is(err, repository.ErrGameNotFound):
		return errorJSON(c, fiber.StatusNotFound, err)
	case errors.Is(err, othello.ErrInvalidMove), errors.Is(err, othello.ErrInvalidField):
		return errorJSON(c, fiber.StatusBadRequest, err)
	case errors.Is(err, errGameOver), errors.Is(err, errNotHumanTurn), errors.Is(err, errNotComputer):
		return errorJSON(c, fiber.StatusConflict, err)
	default:
		slog.Error("Request failed", "path", c.Path(), "error", err)
		return errorJSON(c, fiber.StatusInternalServerError, err)
	}
}
