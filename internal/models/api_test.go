package models

import (
	"encoding/json"
	"testing"
	"time"

	"github.com/lk16/reversi/internal/config"
	"github.com/lk16/reversi/internal/match"
	"github.com/lk16/reversi/internal/othello"
	"github.com/lk16/reversi/internal/player"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var defaults = config.SearchConfig{Depth: 3, ThinkTime: 99 * time.Second}

func TestNewGameRequest_Validate(t *testing.T) {
	tests := []struct {
		name    string
		req     NewGameRequest
		wantErr bool
	}{
		{"OK", NewGameRequest{Black: player.KindHuman, White: player.KindComplex, Depth: 3}, false},
		{"DefaultDepth", NewGameRequest{Black: player.KindRandom, White: player.KindSimple}, false},
		{"UnknownBlack", NewGameRequest{Black: "robot", White: player.KindHuman}, true},
		{"MissingWhite", NewGameRequest{Black: player.KindHuman}, true},
		{"DepthTooHigh", NewGameRequest{Black: player.KindHuman, White: player.KindHuman, Depth: 6}, true},
		{"NegativeThinkTime", NewGameRequest{Black: player.KindHuman, White: player.KindHuman, ThinkTimeMs: -1}, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.req.Validate()
			if tt.wantErr {
				assert.Error(t, err)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}

func TestNewGameSession(t *testing.T) {
	session := NewGameSession(NewGameRequest{Black: player.KindHuman, White: player.KindSimple}, defaults)

	require.Equal(t, othello.NewBoardStart().String(), session.Board)
	require.Equal(t, 3, session.Depth)
	require.Equal(t, 99*time.Second, session.ThinkTime())
	require.Equal(t, player.KindHuman, session.Kind(othello.Black))
	require.Equal(t, player.KindSimple, session.Kind(othello.White))

	session = NewGameSession(NewGameRequest{Depth: 1, ThinkTimeMs: 250}, defaults)
	require.Equal(t, 1, session.Depth)
	require.Equal(t, 250*time.Millisecond, session.ThinkTime())
}

func TestGameSession_Board(t *testing.T) {
	session := NewGameSession(NewGameRequest{}, defaults)

	board, err := session.LoadBoard()
	require.NoError(t, err)

	_, err = board.ApplyMove(othello.Move{Row: 2, Col: 4})
	require.NoError(t, err)
	session.StoreBoard(board)

	loaded, err := session.LoadBoard()
	require.NoError(t, err)
	require.True(t, board.Equal(loaded))

	session.Board = "broken"
	_, err = session.LoadBoard()
	require.Error(t, err)
}

func TestNewGameResponse(t *testing.T) {
	session := NewGameSession(NewGameRequest{Black: player.KindHuman, White: player.KindRandom}, defaults)
	session.ID = "abc"
	board := othello.NewBoardStart()

	response := NewGameResponse(session, board, nil)

	data, err := json.Marshal(response)
	require.NoError(t, err)

	var decoded map[string]any
	require.NoError(t, json.Unmarshal(data, &decoded))

	require.Equal(t, "abc", decoded["id"])
	require.Equal(t, "Black", decoded["mover"])
	require.Equal(t, []any{"e3", "f4", "c5", "d6"}, decoded["legal_moves"])
	require.InDelta(t, 2, decoded["black_count"], 0)
	require.NotContains(t, decoded, "winner")
	require.NotContains(t, decoded, "last_move")

	grid := decoded["grid"].([]any)
	require.Len(t, grid, othello.Size)
	require.InDelta(t, float64(othello.Black), grid[3].([]any)[3], 0)
	require.InDelta(t, float64(othello.White), grid[3].([]any)[4], 0)
}

func TestNewGameResponse_Finished(t *testing.T) {
	var grid [othello.Size][othello.Size]othello.Square
	grid[0][0], grid[0][1] = othello.White, othello.Black
	grid[7][7] = othello.White
	board := othello.NewBoardFromGridMust(grid, othello.Black)

	last := othello.Move{Row: 7, Col: 7}
	response := NewGameResponse(&GameSession{ID: "x"}, board, &last)

	require.Equal(t, "WHITE PLAYER", response.Winner)
	require.Empty(t, response.LegalMoves)
	require.Equal(t, &last, response.LastMove)
}

func TestArenaRequest_Validate(t *testing.T) {
	require.NoError(t, (&ArenaRequest{Player: player.KindSimple, Depth: 2, Games: 10}).Validate())
	require.Error(t, (&ArenaRequest{Player: player.KindHuman, Depth: 2, Games: 10}).Validate())
	require.Error(t, (&ArenaRequest{Player: player.KindRandom, Depth: 0, Games: 10}).Validate())
	require.Error(t, (&ArenaRequest{Player: player.KindRandom, Depth: 1, Games: 0}).Validate())
	require.Error(t, (&ArenaRequest{Player: player.KindRandom, Depth: 1, Games: MaxArenaGames + 1}).Validate())
}

func TestNewArenaResult(t *testing.T) {
	req := ArenaRequest{Player: player.KindComplex, Depth: 2, Games: 4}
	result := NewArenaResult(req, match.Summary{Player: "complex (depth 2)", Games: 4, Wins: 2, Losses: 1, Ties: 1})

	require.Equal(t, "complex", result.Player)
	require.Equal(t, 2, result.Depth)
	require.Equal(t, 4, result.Games)
	require.InDelta(t, 0.625, result.Performance, 1e-9)
	require.Empty(t, result.ID)
}
