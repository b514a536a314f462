package match

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/lk16/reversi/internal/othello"
	"github.com/lk16/reversi/internal/player"
	"golang.org/x/exp/rand"
)

// Summary holds the results of one player against the arena opponent.
type Summary struct {
	Player string
	Games  int
	Wins   int
	Losses int
	Ties   int
}

// Performance returns (wins + ties/2) / games.
func (s Summary) Performance() float64 {
	if s.Games == 0 {
		return 0
	}
	return (float64(s.Wins) + float64(s.Ties)/2) / float64(s.Games)
}

// Arena plays a number of games between a candidate and a random opponent,
// shuffling colors before every game.
type Arena struct {
	games    int
	rng      *rand.Rand
	opponent player.Player
}

// NewArena creates an arena playing games games per candidate.
func NewArena(games int, seed uint64) *Arena {
	rng := rand.New(rand.NewSource(seed))
	return &Arena{
		games:    games,
		rng:      rng,
		opponent: player.NewRandom(rng.Uint64()),
	}
}

// Performance plays the arena games for candidate.
func (a *Arena) Performance(ctx context.Context, candidate player.Player) (Summary, error) {
	summary := Summary{Player: candidate.Name()}

	for i := range a.games {
		candidateColor := othello.Black
		black, white := candidate, a.opponent
		if a.rng.Intn(2) == 1 {
			candidateColor = othello.White
			black, white = a.opponent, candidate
		}

		result, err := Play(ctx, othello.NewBoardStart(), black, white, nil)
		if err != nil {
			return summary, fmt.Errorf("game %d failed: %w", i+1, err)
		}

		summary.Games++
		switch {
		case result == othello.Tie:
			summary.Ties++
		case (result == othello.BlackWins) == (candidateColor == othello.Black):
			summary.Wins++
		default:
			summary.Losses++
		}

		slog.Debug("Arena game finished", "player", summary.Player, "game", i+1, "result", result.String())
	}

	slog.Info(
		"Arena finished",
		"player", summary.Player,
		"games", summary.Games,
		"wins", summary.Wins,
		"losses", summary.Losses,
		"ties", summary.Ties,
		"performance", fmt.Sprintf("%.3f", summary.Performance()),
	)

	return summary, nil
}

// SweepRow holds the performance of every computer kind at one search depth.
type SweepRow struct {
	Depth   int
	Random  float64
	Simple  float64
	Complex float64
}

// Sweep measures the performance of the random, simple and complex players for every depth
// from 1 to maxDepth.
func (a *Arena) Sweep(ctx context.Context, maxDepth int, timeBudget time.Duration) ([]SweepRow, error) {
	rows := make([]SweepRow, 0, maxDepth)

	for depth := 1; depth <= maxDepth; depth++ {
		row := SweepRow{Depth: depth}

		targets := []struct {
			kind  player.Kind
			value *float64
		}{
			{player.KindRandom, &row.Random},
			{player.KindSimple, &row.Simple},
			{player.KindComplex, &row.Complex},
		}

		for _, target := range targets {
			candidate, err := player.New(target.kind, depth, timeBudget, a.rng.Uint64())
			if err != nil {
				return nil, err
			}

			summary, err := a.Performance(ctx, candidate)
			if err != nil {
				return nil, err
			}
			*target.value = summary.Performance()
		}

		rows = append(rows, row)
	}

	return rows, nil
}
