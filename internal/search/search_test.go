package search

import (
	"testing"
	"time"

	"github.com/lk16/reversi/internal/evaluate"
	"github.com/lk16/reversi/internal/othello"
	"github.com/stretchr/testify/require"
	"golang.org/x/exp/rand"
)

var farDeadline = time.Now().Add(time.Hour)

// captureGrid gives mover two moves: c1 flips one disc, d3 flips two.
func captureGrid(mover, other othello.Square) [othello.Size][othello.Size]othello.Square {
	var grid [othello.Size][othello.Size]othello.Square
	grid[0][0], grid[0][1] = mover, other
	grid[2][0], grid[2][1], grid[2][2] = mover, other, other
	return grid
}

// fakeClock returns a time before the deadline for the first calls calls, after it afterwards.
func fakeClock(deadline time.Time, calls int) Clock {
	count := 0
	return func() time.Time {
		count++
		if count <= calls {
			return deadline.Add(-time.Second)
		}
		return deadline
	}
}

func TestBuildTree_DepthBound(t *testing.T) {
	board := othello.NewBoardStart()

	for depth := range 4 {
		root := BuildTree(othello.RootMove, board, depth, farDeadline, true, evaluate.PieceCount)
		require.Equal(t, depth, root.Height(), "depth %d", depth)
	}
}

func TestBuildTree_Root(t *testing.T) {
	board := othello.NewBoardStart()
	root := BuildTree(othello.RootMove, board, 1, farDeadline, true, evaluate.PieceCount)

	require.Equal(t, othello.RootMove, root.Move)
	require.Equal(t, othello.Black, root.Mover)
	require.Equal(t, 0, root.Score)
	require.Len(t, root.Children, 4)

	moves := make([]othello.Move, len(root.Children))
	for i, child := range root.Children {
		moves[i] = child.Move
		require.Equal(t, othello.White, child.Mover)
		require.Equal(t, 3, child.Score)
		require.True(t, child.IsLeaf())
	}
	require.Equal(t, board.LegalMoves(), moves)

	// The source board is never modified.
	require.True(t, othello.NewBoardStart().Equal(board))
}

func TestBuildTree_ScoresFromMaximizingSide(t *testing.T) {
	board := othello.NewBoardStart()
	root := BuildTree(othello.RootMove, board, 2, farDeadline, false, evaluate.PieceCount)

	for _, child := range root.Children {
		// White evaluates after Black flipped one disc.
		require.Equal(t, -3, child.Score)
		for _, grandChild := range child.Children {
			require.Equal(t, othello.Black, grandChild.Mover)
		}
	}
}

func TestBuildTree_ExpiredDeadline(t *testing.T) {
	board := othello.NewBoardStart()
	root := BuildTree(othello.RootMove, board, 3, time.Now().Add(-time.Second), true, evaluate.PieceCount)

	require.True(t, root.IsLeaf())
	require.Equal(t, 0, root.Score)
}

func TestBuildTree_CooperativeCutoff(t *testing.T) {
	board := othello.NewBoardStart()
	deadline := time.Unix(1000, 0)

	// The root and its first child see time left, every later node does not.
	root := BuildTreeWithClock(othello.RootMove, board, 3, deadline, true, evaluate.PieceCount, fakeClock(deadline, 2))

	require.Len(t, root.Children, 4)
	require.Len(t, root.Children[0].Children, 3)
	for _, grandChild := range root.Children[0].Children {
		require.True(t, grandChild.IsLeaf())
	}
	for _, child := range root.Children[1:] {
		require.True(t, child.IsLeaf())
	}
	require.Equal(t, 2, root.Height())
}

func TestBuildTree_GameOverIsLeaf(t *testing.T) {
	var grid [othello.Size][othello.Size]othello.Square
	grid[0][0], grid[0][1] = othello.White, othello.Black
	board := othello.NewBoardFromGridMust(grid, othello.Black)

	root := BuildTree(othello.RootMove, board, 3, farDeadline, true, evaluate.PieceCount)
	require.True(t, root.IsLeaf())
}

func TestPropagateMinimax(t *testing.T) {
	leaf := func(score int, mover othello.Square) *Node {
		return &Node{Mover: mover, Score: score}
	}

	root := &Node{
		Move:  othello.RootMove,
		Mover: othello.Black,
		Score: 100,
		Children: []*Node{
			{
				Mover:    othello.White,
				Score:    100,
				Children: []*Node{leaf(3, othello.Black), leaf(-2, othello.Black), leaf(7, othello.Black)},
			},
			{
				Mover:    othello.White,
				Score:    -100,
				Children: []*Node{leaf(1, othello.Black), leaf(4, othello.Black)},
			},
			// Black moves twice in a row here, so it maximizes again.
			{
				Mover:    othello.Black,
				Score:    -100,
				Children: []*Node{leaf(-5, othello.White), leaf(0, othello.White)},
			},
			leaf(-1, othello.White),
		},
	}

	PropagateMinimax(root, true)

	require.Equal(t, -2, root.Children[0].Score)
	require.Equal(t, 1, root.Children[1].Score)
	require.Equal(t, 0, root.Children[2].Score)
	require.Equal(t, -1, root.Children[3].Score)
	require.Equal(t, 1, root.Score)

	// Leaves keep their heuristic value.
	require.Equal(t, 3, root.Children[0].Children[0].Score)
}

func TestPropagateMinimax_MinimizingRoot(t *testing.T) {
	root := &Node{
		Mover: othello.White,
		Children: []*Node{
			{Mover: othello.Black, Score: 4},
			{Mover: othello.Black, Score: -6},
		},
	}

	PropagateMinimax(root, true)
	require.Equal(t, -6, root.Score)

	PropagateMinimax(root, false)
	require.Equal(t, 4, root.Score)
}

func TestPropagateMinimax_Leaf(t *testing.T) {
	node := &Node{Mover: othello.Black, Score: 12}
	PropagateMinimax(node, false)
	require.Equal(t, 12, node.Score)
}

func TestSearcher_ChooseTieBreak(t *testing.T) {
	searcher := NewSearcher(WithDepth(1), WithEvaluation(evaluate.PieceCount))

	move, err := searcher.Choose(othello.NewBoardStart())
	require.NoError(t, err)
	require.Equal(t, othello.Move{Row: 2, Col: 4}, move)

	for _, score := range searcher.Analyze(othello.NewBoardStart()) {
		require.Equal(t, 3, score.Score)
	}
}

func TestSearcher_ChooseBestMove(t *testing.T) {
	searcher := NewSearcher(WithDepth(1), WithEvaluation(evaluate.PieceCount))

	black := othello.NewBoardFromGridMust(captureGrid(othello.Black, othello.White), othello.Black)
	require.Equal(t, []othello.Move{{Row: 0, Col: 2}, {Row: 2, Col: 3}}, black.LegalMoves())

	move, err := searcher.Choose(black)
	require.NoError(t, err)
	require.Equal(t, othello.Move{Row: 2, Col: 3}, move)

	// The maximizing side follows the mover.
	white := othello.NewBoardFromGridMust(captureGrid(othello.White, othello.Black), othello.White)
	move, err = searcher.Choose(white)
	require.NoError(t, err)
	require.Equal(t, othello.Move{Row: 2, Col: 3}, move)

	require.Equal(t, []MoveScore{
		{Move: othello.Move{Row: 0, Col: 2}, Score: 2},
		{Move: othello.Move{Row: 2, Col: 3}, Score: 4},
	}, searcher.Analyze(white))
}

func TestSearcher_ChooseIsDeterministic(t *testing.T) {
	board := othello.NewBoardStart()
	for _, move := range []othello.Move{{Row: 2, Col: 4}, {Row: 2, Col: 5}} {
		_, err := board.ApplyMove(move)
		require.NoError(t, err)
	}

	searcher := NewSearcher(WithDepth(3), WithEvaluation(evaluate.Position))

	first, err := searcher.Choose(board)
	require.NoError(t, err)
	require.Contains(t, board.LegalMoves(), first)

	for range 3 {
		move, err := searcher.Choose(board)
		require.NoError(t, err)
		require.Equal(t, first, move)
	}
}

func TestSearcher_Tree(t *testing.T) {
	searcher := NewSearcher(WithDepth(2))
	root := searcher.Tree(othello.NewBoardStart())

	require.Equal(t, 2, root.Height())
	require.Equal(t, 1+4+12, root.Size())

	child := root.FindChild(othello.Move{Row: 2, Col: 4})
	require.NotNil(t, child)
	require.Len(t, child.Children, 3)
	require.Nil(t, root.FindChild(othello.Move{Row: 0, Col: 0}))
}

func TestSearcher_FallbackToRandom(t *testing.T) {
	board := othello.NewBoardStart()

	searchers := []*Searcher{
		NewSearcher(WithDepth(0), WithRand(rand.New(rand.NewSource(1)))),
		NewSearcher(WithTimeBudget(0), WithRand(rand.New(rand.NewSource(2)))),
	}

	for _, searcher := range searchers {
		require.True(t, searcher.Tree(board).IsLeaf())

		for range 20 {
			move, err := searcher.Choose(board)
			require.NoError(t, err)
			require.Contains(t, board.LegalMoves(), move)
		}
	}
}

func TestSearcher_NoLegalMoves(t *testing.T) {
	var grid [othello.Size][othello.Size]othello.Square
	grid[0][0], grid[0][1] = othello.White, othello.Black
	board := othello.NewBoardFromGridMust(grid, othello.Black)

	_, err := NewSearcher().Choose(board)
	require.ErrorIs(t, err, ErrNoLegalMoves)
	require.Empty(t, NewSearcher().Analyze(board))
}

func TestNewSearcher_Defaults(t *testing.T) {
	searcher := NewSearcher(WithDepth(-1), WithTimeBudget(-time.Second), WithEvaluation(nil), WithClock(nil))

	require.Equal(t, DefaultDepth, searcher.Depth())
	require.Equal(t, DefaultTimeBudget, searcher.TimeBudget())
}

func TestNode_String(t *testing.T) {
	root := &Node{
		Move:  othello.RootMove,
		Mover: othello.Black,
		Score: 3,
		Children: []*Node{
			{Move: othello.Move{Row: 2, Col: 4}, Mover: othello.White, Score: 3},
		},
	}

	require.Equal(t, "* [3] -> Black\n  e3 [3] -> White\n", root.String())
}
