package version

import (
	"os/exec"
	"strings"

	"github.com/gofiber/fiber/v2"
	"github.com/lk16/reversi/internal/evaluate"
	"github.com/lk16/reversi/internal/player"
)

type VersionResponse struct {
	Commit      string   `json:"commit"`
	Players     []string `json:"players"`
	Evaluations []string `json:"evaluations"`
}

var Version VersionResponse

func init() {
	Version.Commit = "unknown"
	if output, err := exec.Command("git", "rev-parse", "HEAD").Output(); err == nil {
		Version.Commit = strings.TrimSpace(string(output))
	}

	for _, kind := range player.Kinds {
		Version.Players = append(Version.Players, string(kind))
	}
	Version.Evaluations = evaluate.Names()
}

func SetupRoutes(app *fiber.App) {
	versionGroup := app.Group("/version")
	versionGroup.Get("/", versionHandler)
}

func versionHandler(c *fiber.Ctx) error {
	return c.JSON(Version)
}
