package match

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/lk16/reversi/internal/othello"
	"github.com/lk16/reversi/internal/player"
)

var ErrIllegalMove = errors.New("player returned an illegal move")

// MoveHook is called after every applied move.
type MoveHook func(board *othello.Board, move othello.Move)

// Play lets black and white alternate on board until the game is over.
// The board is modified in place.
func Play(ctx context.Context, board *othello.Board, black, white player.Player, hook MoveHook) (othello.Result, error) {
	for board.Winner() == othello.NoResult {
		if err := ctx.Err(); err != nil {
			return othello.NoResult, err
		}

		current := black
		if board.Mover() == othello.White {
			current = white
		}

		move, err := current.Think(board)
		if err != nil {
			return othello.NoResult, fmt.Errorf("%s failed to think: %w", current.Name(), err)
		}

		if _, err = board.ApplyMove(move); err != nil {
			return othello.NoResult, fmt.Errorf("%w: %s played %s: %w", ErrIllegalMove, current.Name(), move, err)
		}

		slog.Debug("Move played", "player", current.Name(), "move", move.String(), "board", board.String())

		if hook != nil {
			hook(board, move)
		}
	}

	return board.Winner(), nil
}
