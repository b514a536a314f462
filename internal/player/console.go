package player

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/lk16/reversi/internal/othello"
)

var ErrNoInput = errors.New("no more input")

// Console lets a human pick moves by typing field notation, such as "e3".
type Console struct {
	scanner *bufio.Scanner
	out     io.Writer
}

func NewConsole(in io.Reader, out io.Writer) *Console {
	return &Console{
		scanner: bufio.NewScanner(in),
		out:     out,
	}
}

// Think prompts until a legal move is entered.
func (p *Console) Think(board *othello.Board) (othello.Move, error) {
	if !board.HasMoves() {
		return othello.Move{}, fmt.Errorf("%w: %s", ErrEmptyMoveSet, board)
	}

	for {
		fmt.Fprintf(p.out, "%s to move: ", board.Mover())

		if !p.scanner.Scan() {
			if err := p.scanner.Err(); err != nil {
				return othello.Move{}, fmt.Errorf("error reading move: %w", err)
			}
			return othello.Move{}, ErrNoInput
		}

		move, err := othello.ParseMove(strings.TrimSpace(p.scanner.Text()))
		if err != nil {
			fmt.Fprintln(p.out, "Invalid field, use a letter a-h followed by a digit 1-8.")
			continue
		}

		if !board.IsValidMove(move.Row, move.Col) {
			fmt.Fprintf(p.out, "%s is not a legal move.\n", move)
			continue
		}

		return move, nil
	}
}

func (p *Console) Name() string {
	return string(KindHuman)
}
