package player

import (
	"testing"
	"time"

	"github.com/lk16/reversi/internal/evaluate"
	"github.com/lk16/reversi/internal/othello"
	"github.com/stretchr/testify/require"
)

func terminalBoard() *othello.Board {
	var grid [othello.Size][othello.Size]othello.Square
	grid[0][0], grid[0][1] = othello.White, othello.Black
	return othello.NewBoardFromGridMust(grid, othello.Black)
}

func TestRandom_ThinkReturnsLegalMove(t *testing.T) {
	p := NewRandom(42)
	board := othello.NewBoardStart()

	seen := make(map[othello.Move]bool)
	for board.Winner() == othello.NoResult {
		move, err := p.Think(board)
		require.NoError(t, err)
		require.Contains(t, board.LegalMoves(), move)

		seen[move] = true
		_, err = board.ApplyMove(move)
		require.NoError(t, err)
	}

	require.Greater(t, len(seen), 1)
}

func TestRandom_ThinkCoversAllMoves(t *testing.T) {
	p := NewRandom(7)
	board := othello.NewBoardStart()

	seen := make(map[othello.Move]bool)
	for range 200 {
		move, err := p.Think(board)
		require.NoError(t, err)
		seen[move] = true
	}

	require.Len(t, seen, len(board.LegalMoves()))
}

func TestRandom_ThinkEmptyMoveSet(t *testing.T) {
	_, err := NewRandom(1).Think(terminalBoard())
	require.ErrorIs(t, err, ErrEmptyMoveSet)
}

func TestMinimax_Think(t *testing.T) {
	p := NewMinimax("simple", 1, time.Minute, evaluate.PieceCount, 1)

	move, err := p.Think(othello.NewBoardStart())
	require.NoError(t, err)
	require.Equal(t, othello.Move{Row: 2, Col: 4}, move)
	require.Equal(t, "simple (depth 1)", p.Name())

	scores := p.Analyze(othello.NewBoardStart())
	require.Len(t, scores, 4)
}

func TestMinimax_ThinkTerminal(t *testing.T) {
	p := NewMinimax("complex", 2, time.Minute, evaluate.Position, 1)

	_, err := p.Think(terminalBoard())
	require.Error(t, err)
}

func TestParseKind(t *testing.T) {
	for _, kind := range Kinds {
		parsed, err := ParseKind(string(kind))
		require.NoError(t, err)
		require.Equal(t, kind, parsed)
	}

	_, err := ParseKind("alphabeta")
	require.ErrorIs(t, err, ErrUnknownKind)
}

func TestNew(t *testing.T) {
	tests := []struct {
		kind     Kind
		expected string
		err      error
	}{
		{KindRandom, "random", nil},
		{KindSimple, "simple (depth 2)", nil},
		{KindComplex, "complex (depth 2)", nil},
		{KindHuman, "", ErrNotComputer},
		{Kind("other"), "", ErrUnknownKind},
	}

	for _, tt := range tests {
		t.Run(string(tt.kind), func(t *testing.T) {
			p, err := New(tt.kind, 2, time.Minute, 3)
			if tt.err != nil {
				require.ErrorIs(t, err, tt.err)
				require.False(t, tt.kind.IsComputer())
				return
			}

			require.NoError(t, err)
			require.True(t, tt.kind.IsComputer())
			require.Equal(t, tt.expected, p.Name())

			move, err := p.Think(othello.NewBoardStart())
			require.NoError(t, err)
			require.Contains(t, othello.NewBoardStart().LegalMoves(), move)
		})
	}
}
