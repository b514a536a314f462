package player

import (
	"errors"
	"fmt"
	"time"

	"github.com/lk16/reversi/internal/evaluate"
	"github.com/lk16/reversi/internal/othello"
	"github.com/lk16/reversi/internal/search"
	"golang.org/x/exp/rand"
)

var (
	ErrEmptyMoveSet = errors.New("no legal moves to choose from")
	ErrUnknownKind  = errors.New("unknown player kind")
	ErrNotComputer  = errors.New("player kind has no computer player")
)

// Player picks the next move for the side to move on a board.
type Player interface {
	Think(board *othello.Board) (othello.Move, error)
	Name() string
}

// Random picks a uniformly random legal move.
type Random struct {
	rng *rand.Rand
}

// NewRandom creates a random player with its own seeded source.
func NewRandom(seed uint64) *Random {
	return &Random{rng: rand.New(rand.NewSource(seed))}
}

func (p *Random) Think(board *othello.Board) (othello.Move, error) {
	moves := board.LegalMoves()
	if len(moves) == 0 {
		return othello.Move{}, fmt.Errorf("%w: %s", ErrEmptyMoveSet, board)
	}
	return moves[p.rng.Intn(len(moves))], nil
}

func (p *Random) Name() string {
	return string(KindRandom)
}

// Minimax picks moves with a fixed depth, time budget and evaluation function.
type Minimax struct {
	name     string
	searcher *search.Searcher
}

// NewMinimax creates a minimax player. The name is only used for display.
func NewMinimax(name string, depth int, timeBudget time.Duration, evaluate evaluate.Func, seed uint64) *Minimax {
	return &Minimax{
		name: name,
		searcher: search.NewSearcher(
			search.WithDepth(depth),
			search.WithTimeBudget(timeBudget),
			search.WithEvaluation(evaluate),
			search.WithRand(rand.New(rand.NewSource(seed))),
		),
	}
}

func (p *Minimax) Think(board *othello.Board) (othello.Move, error) {
	return p.searcher.Choose(board)
}

func (p *Minimax) Name() string {
	return fmt.Sprintf("%s (depth %d)", p.name, p.searcher.Depth())
}

// Analyze returns the minimax score of every legal move.
func (p *Minimax) Analyze(board *othello.Board) []search.MoveScore {
	return p.searcher.Analyze(board)
}

// Kind names a player configuration.
type Kind string

const (
	KindHuman   Kind = "human"
	KindRandom  Kind = "random"
	KindSimple  Kind = "simple"
	KindComplex Kind = "complex"
)

// Kinds lists all kinds.
var Kinds = []Kind{KindHuman, KindRandom, KindSimple, KindComplex}

// ParseKind parses a kind name.
func ParseKind(s string) (Kind, error) {
	for _, kind := range Kinds {
		if string(kind) == s {
			return kind, nil
		}
	}
	return "", fmt.Errorf("%w: %q", ErrUnknownKind, s)
}

// IsComputer checks if the kind is played by the program.
func (k Kind) IsComputer() bool {
	return k == KindRandom || k == KindSimple || k == KindComplex
}

// New creates the computer player for a kind. Human players have no computer player.
func New(kind Kind, depth int, timeBudget time.Duration, seed uint64) (Player, error) {
	switch kind {
	case KindRandom:
		return NewRandom(seed), nil
	case KindSimple:
		return NewMinimax("simple", depth, timeBudget, evaluate.PieceCount, seed), nil
	case KindComplex:
		return NewMinimax("complex", depth, timeBudget, evaluate.Position, seed), nil
	case KindHuman:
		return nil, fmt.Errorf("%w: %s", ErrNotComputer, kind)
	default:
		return nil, fmt.Errorf("%w: %q", ErrUnknownKind, kind)
	}
}
