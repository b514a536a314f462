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
	"github.com/lk16/reversi/internal/othello"
	"github.com/lk16/reversi/internal/player"
)

func main() {
	config.SetLogLevel()

	defaults := config.LoadSearchConfig()

	blackFlag := flag.String("black", string(player.KindHuman), "black player: human, random, simple or complex")
	whiteFlag := flag.String("white", string(player.KindSimple), "white player: human, random, simple or complex")
	depth := flag.Int("depth", defaults.Depth, "search depth of computer players")
	thinkTime := flag.Duration("think-time", defaults.ThinkTime, "time budget per computer move")
	seed := flag.Uint64("seed", uint64(time.Now().UnixNano()), "random seed")
	flag.Parse()

	if *depth < 1 || *depth > config.MaxSearchDepth {
		slog.Error("Depth out of range", "min", 1, "max", config.MaxSearchDepth, "got", *depth)
		os.Exit(1)
	}

	black, err := newPlayer(*blackFlag, *depth, *thinkTime, *seed)
	if err != nil {
		slog.Error("Failed to create black player", "error", err)
		os.Exit(1)
	}

	white, err := newPlayer(*whiteFlag, *depth, *thinkTime, *seed+1)
	if err != nil {
		slog.Error("Failed to create white player", "error", err)
		os.Exit(1)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	board := othello.NewBoardStart()
	board.Print()

	printMove := func(board *othello.Board, move othello.Move) {
		fmt.Printf("\n%s played %s\n", board.Mover().Opponent(), move)
		board.Print()
	}

	result, err := match.Play(ctx, board, black, white, printMove)
	if err != nil {
		slog.Error("Game aborted", "error", err)
		os.Exit(1)
	}

	fmt.Printf("\nWinner: %s (black %d, white %d)\n", result, board.BlackCount(), board.WhiteCount())
}

func newPlayer(name string, depth int, thinkTime time.Duration, seed uint64) (player.Player, error) {
	kind, err := player.ParseKind(name)
	if err != nil {
		return nil, err
	}

	if kind == player.KindHuman {
		return player.NewConsole(os.Stdin, os.Stdout), nil
	}

	return player.New(kind, depth, thinkTime, seed)
}
