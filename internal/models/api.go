package models

import (
	"errors"
	"fmt"
	"time"

	"github.com/lk16/reversi/internal/config"
	"github.com/lk16/reversi/internal/match"
	"github.com/lk16/reversi/internal/othello"
	"github.com/lk16/reversi/internal/player"
	"github.com/lk16/reversi/internal/search"
)

const (
	MaxArenaGames   = 100
	MaxResultsLimit = 100
)

// NewGameRequest represents the payload for starting a game.
// Zero depth or think time means the server default.
type NewGameRequest struct {
	Black       player.Kind `json:"black"`
	White       player.Kind `json:"white"`
	Depth       int         `json:"depth"`
	ThinkTimeMs int64       `json:"think_time_ms"`
}

func (r *NewGameRequest) Validate() error {
	if _, err := player.ParseKind(string(r.Black)); err != nil {
		return fmt.Errorf("black: %w", err)
	}

	if _, err := player.ParseKind(string(r.White)); err != nil {
		return fmt.Errorf("white: %w", err)
	}

	if r.Depth < 0 || r.Depth > config.MaxSearchDepth {
		return fmt.Errorf("depth must be between 0 (server default) and %d", config.MaxSearchDepth)
	}

	if r.ThinkTimeMs < 0 {
		return errors.New("think time cannot be negative")
	}

	return nil
}

// GameSession is a live game as kept in the session store. Only the current board is kept.
type GameSession struct {
	ID          string      `json:"id"`
	Board       string      `json:"board"`
	Black       player.Kind `json:"black"`
	White       player.Kind `json:"white"`
	Depth       int         `json:"depth"`
	ThinkTimeMs int64       `json:"think_time_ms"`
	UpdatedAt   time.Time   `json:"updated_at"`
}

// NewGameSession creates a session at the start position, filling in defaults.
func NewGameSession(req NewGameRequest, defaults config.SearchConfig) *GameSession {
	session := &GameSession{
		Board:       othello.NewBoardStart().String(),
		Black:       req.Black,
		White:       req.White,
		Depth:       req.Depth,
		ThinkTimeMs: req.ThinkTimeMs,
		UpdatedAt:   time.Now().UTC(),
	}

	if session.Depth == 0 {
		session.Depth = defaults.Depth
	}

	if session.ThinkTimeMs == 0 {
		session.ThinkTimeMs = defaults.ThinkTime.Milliseconds()
	}

	return session
}

// LoadBoard parses the stored board.
func (s *GameSession) LoadBoard() (*othello.Board, error) {
	board, err := othello.NewBoardFromString(s.Board)
	if err != nil {
		return nil, fmt.Errorf("corrupt game %s: %w", s.ID, err)
	}
	return board, nil
}

// StoreBoard replaces the stored board.
func (s *GameSession) StoreBoard(board *othello.Board) {
	s.Board = board.String()
	s.UpdatedAt = time.Now().UTC()
}

// Kind returns the player kind of a color.
func (s *GameSession) Kind(color othello.Square) player.Kind {
	if color == othello.White {
		return s.White
	}
	return s.Black
}

func (s *GameSession) ThinkTime() time.Duration {
	return time.Duration(s.ThinkTimeMs) * time.Millisecond
}

// GameResponse represents a game as returned by the API.
type GameResponse struct {
	ID         string                                     `json:"id"`
	Board      string                                     `json:"board"`
	Grid       [othello.Size][othello.Size]othello.Square `json:"grid"`
	Mover      string                                     `json:"mover"`
	LegalMoves []othello.Move                             `json:"legal_moves"`
	BlackCount int                                        `json:"black_count"`
	WhiteCount int                                        `json:"white_count"`
	Winner     string                                     `json:"winner,omitempty"`
	Black      player.Kind                                `json:"black"`
	White      player.Kind                                `json:"white"`
	Depth      int                                        `json:"depth"`
	LastMove   *othello.Move                              `json:"last_move,omitempty"`
}

// NewGameResponse creates the response for a session and its parsed board.
func NewGameResponse(session *GameSession, board *othello.Board, lastMove *othello.Move) GameResponse {
	response := GameResponse{
		ID:         session.ID,
		Board:      board.String(),
		Grid:       board.Grid(),
		Mover:      board.Mover().String(),
		LegalMoves: board.LegalMoves(),
		BlackCount: board.BlackCount(),
		WhiteCount: board.WhiteCount(),
		Black:      session.Black,
		White:      session.White,
		Depth:      session.Depth,
		LastMove:   lastMove,
	}

	if winner := board.Winner(); winner != othello.NoResult {
		response.Winner = winner.String()
	}

	return response
}

// MoveRequest represents the payload for a human move in field notation.
type MoveRequest struct {
	Move string `json:"move"`
}

// AnalysisResponse holds the minimax score of every legal move.
type AnalysisResponse struct {
	Depth      int                `json:"depth"`
	Evaluation string             `json:"evaluation"`
	Scores     []search.MoveScore `json:"scores"`
}

// ArenaRequest represents the payload for an arena run against a random player.
type ArenaRequest struct {
	Player player.Kind `json:"player"`
	Depth  int         `json:"depth"`
	Games  int         `json:"games"`
}

func (r *ArenaRequest) Validate() error {
	if !r.Player.IsComputer() {
		return fmt.Errorf("player must be a computer player, got %q", r.Player)
	}

	if r.Depth < 1 || r.Depth > config.MaxSearchDepth {
		return fmt.Errorf("depth must be between 1 and %d", config.MaxSearchDepth)
	}

	if r.Games < 1 || r.Games > MaxArenaGames {
		return fmt.Errorf("games must be between 1 and %d", MaxArenaGames)
	}

	return nil
}

// ArenaResult is a stored arena run.
type ArenaResult struct {
	ID          string    `json:"id"          db:"id"`
	Player      string    `json:"player"      db:"player"`
	Depth       int       `json:"depth"       db:"depth"`
	Games       int       `json:"games"       db:"games"`
	Wins        int       `json:"wins"        db:"wins"`
	Losses      int       `json:"losses"      db:"losses"`
	Ties        int       `json:"ties"        db:"ties"`
	Performance float64   `json:"performance" db:"performance"`
	CreatedAt   time.Time `json:"created_at"  db:"created_at"`
}

// NewArenaResult creates an unsaved result from an arena summary.
func NewArenaResult(req ArenaRequest, summary match.Summary) ArenaResult {
	return ArenaResult{
		Player:      string(req.Player),
		Depth:       req.Depth,
		Games:       summary.Games,
		Wins:        summary.Wins,
		Losses:      summary.Losses,
		Ties:        summary.Ties,
		Performance: summary.Performance(),
	}
}
