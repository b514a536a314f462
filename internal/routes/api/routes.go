package api

import (
	"github.com/gofiber/fiber/v2"
	"github.com/lk16/reversi/internal/middleware"
)

func SetupRoutes(app *fiber.App) {
	apiGroup := app.Group("/api")

	games := apiGroup.Group("/games")
	games.Post("/", CreateGame)
	games.Get("/:id", GetGame)
	games.Post("/:id/moves", PlayMove)
	games.Post("/:id/think", Think)
	games.Get("/:id/analysis", AnalyzeGame)

	arena := apiGroup.Group("/arena")
	arena.Post("/", middleware.AuthOrToken(), RunArena)
	arena.Get("/results", GetArenaResults)
}
