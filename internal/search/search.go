package search

import (
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/lk16/reversi/internal/evaluate"
	"github.com/lk16/reversi/internal/othello"
	"golang.org/x/exp/rand"
)

const (
	DefaultDepth      = 3
	DefaultTimeBudget = 99 * time.Second

	// MaxDepth is the deepest search that finishes in reasonable time without pruning.
	MaxDepth = 5
)

var ErrNoLegalMoves = errors.New("no legal moves")

// Clock returns the current time.
type Clock func() time.Time

// BuildTree builds the game tree of board up to depth moves deep. Children are only expanded
// while the deadline has not passed, which is checked once per node. Every node is scored by
// evaluate from the point of view of the maximizing color, regardless of whose turn it is.
func BuildTree(
	move othello.Move,
	board *othello.Board,
	depth int,
	deadline time.Time,
	maximizingIsBlack bool,
	evaluate evaluate.Func,
) *Node {
	return BuildTreeWithClock(move, board, depth, deadline, maximizingIsBlack, evaluate, time.Now)
}

// BuildTreeWithClock is BuildTree with a custom clock.
func BuildTreeWithClock(
	move othello.Move,
	board *othello.Board,
	depth int,
	deadline time.Time,
	maximizingIsBlack bool,
	evaluate evaluate.Func,
	now Clock,
) *Node {
	node := &Node{
		Move:  move,
		Mover: board.Mover(),
		Score: evaluate(board, maximizingIsBlack),
	}

	if !now().Before(deadline) || depth <= 0 {
		return node
	}

	for _, childMove := range board.LegalMoves() {
		childBoard := board.Clone()
		if _, err := childBoard.ApplyMove(childMove); err != nil {
			panic(fmt.Sprintf("legal move %s rejected: %v", childMove, err))
		}

		child := BuildTreeWithClock(childMove, childBoard, depth-1, deadline, maximizingIsBlack, evaluate, now)
		node.Children = append(node.Children, child)
	}

	return node
}

// PropagateMinimax replaces the score of every node with children by the best child score
// for the side to move: the maximum where the maximizing color moves, the minimum otherwise.
// Leaves keep their heuristic score.
func PropagateMinimax(node *Node, maximizingIsBlack bool) {
	if node.IsLeaf() {
		return
	}

	for _, child := range node.Children {
		PropagateMinimax(child, maximizingIsBlack)
	}

	maximizing := (node.Mover == othello.Black) == maximizingIsBlack

	score := node.Children[0].Score
	for _, child := range node.Children[1:] {
		if maximizing {
			score = max(score, child.Score)
		} else {
			score = min(score, child.Score)
		}
	}
	node.Score = score
}

// MoveScore is the minimax score of a move at the root.
type MoveScore struct {
	Move  othello.Move `json:"move"`
	Score int          `json:"score"`
}

type Option func(s *Searcher)

func WithDepth(depth int) Option {
	return func(s *Searcher) {
		if depth >= 0 {
			s.depth = depth
		}
	}
}

func WithTimeBudget(budget time.Duration) Option {
	return func(s *Searcher) {
		if budget >= 0 {
			s.timeBudget = budget
		}
	}
}

func WithEvaluation(evaluate evaluate.Func) Option {
	return func(s *Searcher) {
		if evaluate != nil {
			s.evaluate = evaluate
		}
	}
}

func WithRand(rng *rand.Rand) Option {
	return func(s *Searcher) {
		if rng != nil {
			s.rng = rng
		}
	}
}

func WithClock(now Clock) Option {
	return func(s *Searcher) {
		if now != nil {
			s.now = now
		}
	}
}

// Searcher chooses moves with a minimax search of bounded depth and time.
// It is not safe for concurrent use.
type Searcher struct {
	depth      int
	timeBudget time.Duration
	evaluate   evaluate.Func
	rng        *rand.Rand
	now        Clock
}

func NewSearcher(options ...Option) *Searcher {
	s := &Searcher{ // Default values
		depth:      DefaultDepth,
		timeBudget: DefaultTimeBudget,
		evaluate:   evaluate.PieceCount,
		now:        time.Now,
	}
	for _, option := range options {
		option(s)
	}
	if s.rng == nil {
		s.rng = rand.New(rand.NewSource(uint64(s.now().UnixNano())))
	}
	return s
}

// Depth returns the maximum search depth.
func (s *Searcher) Depth() int {
	return s.depth
}

// TimeBudget returns the time allowed for building the tree.
func (s *Searcher) TimeBudget() time.Duration {
	return s.timeBudget
}

// Tree builds the minimax tree for the side to move on board.
func (s *Searcher) Tree(board *othello.Board) *Node {
	maximizingIsBlack := board.Mover() == othello.Black
	deadline := s.now().Add(s.timeBudget)

	root := BuildTreeWithClock(othello.RootMove, board, s.depth, deadline, maximizingIsBlack, s.evaluate, s.now)
	PropagateMinimax(root, maximizingIsBlack)
	return root
}

// Choose returns the best move for the side to move. Among equally scored moves the first in
// row-major order wins. When no tree could be built below the root, a random legal move is
// returned instead.
func (s *Searcher) Choose(board *othello.Board) (othello.Move, error) {
	root := s.Tree(board)

	for _, child := range root.Children {
		if child.Score == root.Score {
			return child.Move, nil
		}
	}

	moves := board.LegalMoves()
	if len(moves) == 0 {
		return othello.Move{}, fmt.Errorf("%w: cannot choose a move on %s", ErrNoLegalMoves, board)
	}

	slog.Debug("Search produced no children, choosing a random move", "board", board.String(), "moves", len(moves))
	return moves[s.rng.Intn(len(moves))], nil
}

// Analyze returns the minimax score of every legal move, in row-major order.
func (s *Searcher) Analyze(board *othello.Board) []MoveScore {
	root := s.Tree(board)

	scores := make([]MoveScore, len(root.Children))
	for i, child := range root.Children {
		scores[i] = MoveScore{Move: child.Move, Score: child.Score}
	}
	return scores
}
