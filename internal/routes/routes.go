package routes

import (
	"github.com/gofiber/fiber/v2"
	"github.com/lk16/reversi/internal/routes/api"
	"github.com/lk16/reversi/internal/routes/version"
)

func SetupRoutes(app *fiber.App) {
	// Serve API routes
	api.SetupRoutes(app)

	// Serve version info
	version.SetupRoutes(app)
}
