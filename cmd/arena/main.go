package main

import (
	"context"
	"flag"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"time"

	"github.com/lk16/reversi/internal/config"
	"github.com/lk16/reversi/internal/match"
	"github.com/lk16/reversi/internal/models"
	"github.com/lk16/reversi/internal/player"
	"github.com/lk16/reversi/internal/repository"
	"github.com/lk16/reversi/internal/services"
)

func main() {
	config.SetLogLevel()

	cfg := config.LoadArenaConfig()

	playerFlag := flag.String("player", string(player.KindSimple), "player to measure: random, simple or complex")
	depth := flag.Int("depth", cfg.Search.Depth, "search depth, or the maximum depth with -sweep")
	games := flag.Int("n", 10, "number of games per player")
	sweep := flag.Bool("sweep", false, "measure every player at every depth from 1 to -depth")
	seed := flag.Uint64("seed", uint64(time.Now().UnixNano()), "random seed")
	flag.Parse()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	arena := match.NewArena(*games, *seed)

	if *sweep {
		if err := runSweep(ctx, arena, *depth, cfg.Search.ThinkTime); err != nil {
			slog.Error("Sweep failed", "error", err)
			os.Exit(1)
		}
		return
	}

	request := models.ArenaRequest{
		Player: player.Kind(*playerFlag),
		Depth:  *depth,
		Games:  *games,
	}

	if err := request.Validate(); err != nil {
		slog.Error("Invalid arena settings", "error", err)
		os.Exit(1)
	}

	candidate, err := player.New(request.Player, request.Depth, cfg.Search.ThinkTime, *seed+1)
	if err != nil {
		slog.Error("Failed to create player", "error", err)
		os.Exit(1)
	}

	summary, err := arena.Performance(ctx, candidate)
	if err != nil {
		slog.Error("Arena failed", "error", err)
		os.Exit(1)
	}

	fmt.Printf("%s: %d wins, %d losses, %d ties, performance %.3f\n",
		summary.Player, summary.Wins, summary.Losses, summary.Ties, summary.Performance())

	if cfg.PostgresURL == "" {
		return
	}

	if err = saveResult(ctx, cfg.PostgresURL, models.NewArenaResult(request, summary)); err != nil {
		slog.Error("Failed to save result", "error", err)
		os.Exit(1)
	}
}

func runSweep(ctx context.Context, arena *match.Arena, maxDepth int, thinkTime time.Duration) error {
	if maxDepth < 1 || maxDepth > config.MaxSearchDepth {
		return fmt.Errorf("depth must be between 1 and %d", config.MaxSearchDepth)
	}

	rows, err := arena.Sweep(ctx, maxDepth, thinkTime)
	if err != nil {
		return err
	}

	fmt.Println("depth | random | simple | complex")
	for _, row := range rows {
		fmt.Printf("%5d | %6.3f | %6.3f | %7.3f\n", row.Depth, row.Random, row.Simple, row.Complex)
	}

	return nil
}

func saveResult(ctx context.Context, postgresURL string, result models.ArenaResult) error {
	db, err := services.InitPostgres(postgresURL)
	if err != nil {
		return err
	}
	defer db.Close()

	repo := repository.NewArenaRepository(db)

	if err = repo.EnsureSchema(ctx); err != nil {
		return err
	}

	if err = repo.SaveResult(ctx, &result); err != nil {
		return err
	}

	slog.Info("Arena result saved", "id", result.ID)
	return nil
}
