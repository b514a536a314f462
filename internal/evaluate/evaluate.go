package evaluate

import (
	"errors"
	"fmt"
	"sort"

	"github.com/lk16/reversi/internal/othello"
)

var ErrUnknownEvaluation = errors.New("unknown evaluation function")

// Func scores a board for one side, independent of whose turn it is.
// Higher is better for the evaluated side.
type Func func(board *othello.Board, forBlack bool) int

// Weights holds a score per cell.
type Weights [othello.Size][othello.Size]int

// DefaultWeights favours corners and some edge cells.
var DefaultWeights = Weights{
	{5, 1, 2, 2, 2, 2, 1, 5},
	{1, 1, 1, 1, 1, 1, 1, 1},
	{2, 1, 2, 1, 1, 2, 1, 2},
	{2, 1, 1, 1, 1, 1, 1, 2},
	{2, 1, 1, 1, 1, 1, 1, 2},
	{2, 1, 2, 1, 1, 2, 1, 2},
	{1, 1, 1, 1, 1, 1, 1, 1},
	{5, 1, 2, 2, 2, 2, 1, 5},
}

// IsSymmetric checks that the table is invariant under all 8 symmetries of the board.
func (w Weights) IsSymmetric() bool {
	const last = othello.Size - 1

	for row := range othello.Size {
		for col := range othello.Size {
			v := w[row][col]
			mirrors := []int{
				w[row][last-col],
				w[last-row][col],
				w[last-row][last-col],
				w[col][row],
				w[last-col][row],
				w[col][last-row],
				w[last-col][last-row],
			}
			for _, m := range mirrors {
				if m != v {
					return false
				}
			}
		}
	}
	return true
}

func signed(black, white int, forBlack bool) int {
	if forBlack {
		return black - white
	}
	return white - black
}

// ByPieceCount returns the disc count difference.
func ByPieceCount(board *othello.Board, forBlack bool) int {
	return signed(board.BlackCount(), board.WhiteCount(), forBlack)
}

// ByWeightedPosition returns an evaluation summing the weight of every occupied cell per color.
func ByWeightedPosition(weights Weights) Func {
	// weights is a copy, later changes by the caller do not leak in
	return func(board *othello.Board, forBlack bool) int {
		black, white := 0, 0
		for row := range othello.Size {
			for col := range othello.Size {
				switch board.Square(row, col) {
				case othello.Black:
					black += weights[row][col]
				case othello.White:
					white += weights[row][col]
				}
			}
		}
		return signed(black, white, forBlack)
	}
}

const (
	PieceCountName = "piece"
	PositionName   = "position"
)

var (
	PieceCount Func = ByPieceCount
	Position        = ByWeightedPosition(DefaultWeights)
)

var registry = map[string]Func{
	PieceCountName: PieceCount,
	PositionName:   Position,
}

// Lookup returns the evaluation function registered under name.
func Lookup(name string) (Func, error) {
	f, ok := registry[name]
	if !ok {
		return nil, fmt.Errorf("%w: %q", ErrUnknownEvaluation, name)
	}
	return f, nil
}

// Names returns the registered evaluation names, sorted.
func Names() []string {
	names := make([]string, 0, len(registry))
	for name := range registry {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}
