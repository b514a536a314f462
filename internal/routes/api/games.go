package api

import (
	"fmt"
	"log/slog"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/lk16/reversi/internal/config"
	"github.com/lk16/reversi/internal/evaluate"
	"github.com/lk16/reversi/internal/models"
	"github.com/lk16/reversi/internal/othello"
	"github.com/lk16/reversi/internal/player"
	"github.com/lk16/reversi/internal/repository"
	"github.com/lk16/reversi/internal/search"
)

// loadGame loads the session of the :id parameter and its board.
func loadGame(c *fiber.Ctx) (*models.GameSession, *othello.Board, error) {
	store := repository.NewGameStore(c)

	session, err := store.GetGame(c.Context(), c.Params("id"))
	if err != nil {
		return nil, nil, err
	}

	board, err := session.LoadBoard()
	if err != nil {
		return nil, nil, err
	}

	return session, board, nil
}

// saveMove stores the board after move and responds with the new game state.
func saveMove(c *fiber.Ctx, session *models.GameSession, board *othello.Board, move othello.Move) error {
	session.StoreBoard(board)

	if err := repository.NewGameStore(c).UpdateGame(c.Context(), session); err != nil {
		return handleError(c, err)
	}

	if winner := board.Winner(); winner != othello.NoResult {
		slog.Info("Game finished", "id", session.ID, "winner", winner.String(),
			"black", board.BlackCount(), "white", board.WhiteCount())
	}

	return c.Status(fiber.StatusOK).JSON(models.NewGameResponse(session, board, &move))
}

// CreateGame starts a new game at the start position.
func CreateGame(c *fiber.Ctx) error {
	var payload models.NewGameRequest
	if err := c.BodyParser(&payload); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Invalid request body",
		})
	}

	if err := payload.Validate(); err != nil {
		return errorJSON(c, fiber.StatusBadRequest, err)
	}

	cfg := c.Locals("config").(*config.ServerConfig) //nolint: errcheck
	session := models.NewGameSession(payload, cfg.Search)

	if err := repository.NewGameStore(c).CreateGame(c.Context(), session); err != nil {
		return handleError(c, err)
	}

	board, err := session.LoadBoard()
	if err != nil {
		return handleError(c, err)
	}

	slog.Info("Game created", "id", session.ID, "black", session.Black, "white", session.White, "depth", session.Depth)

	return c.Status(fiber.StatusCreated).JSON(models.NewGameResponse(session, board, nil))
}

// GetGame returns the current state of a game.
func GetGame(c *fiber.Ctx) error {
	session, board, err := loadGame(c)
	if err != nil {
		return handleError(c, err)
	}

	return c.Status(fiber.StatusOK).JSON(models.NewGameResponse(session, board, nil))
}

// PlayMove applies a move of a human player.
func PlayMove(c *fiber.Ctx) error {
	var payload models.MoveRequest
	if err := c.BodyParser(&payload); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Invalid request body",
		})
	}

	move, err := othello.ParseMove(payload.Move)
	if err != nil {
		return handleError(c, err)
	}

	session, board, err := loadGame(c)
	if err != nil {
		return handleError(c, err)
	}

	if board.Winner() != othello.NoResult {
		return handleError(c, errGameOver)
	}

	if session.Kind(board.Mover()) != player.KindHuman {
		return handleError(c, errNotHumanTurn)
	}

	if _, err = board.ApplyMove(move); err != nil {
		return handleError(c, err)
	}

	return saveMove(c, session, board, move)
}

// Think lets the computer player of the side to move pick and play a move.
func Think(c *fiber.Ctx) error {
	session, board, err := loadGame(c)
	if err != nil {
		return handleError(c, err)
	}

	if board.Winner() != othello.NoResult {
		return handleError(c, errGameOver)
	}

	kind := session.Kind(board.Mover())
	if !kind.IsComputer() {
		return handleError(c, errNotComputer)
	}

	computer, err := player.New(kind, session.Depth, session.ThinkTime(), uint64(time.Now().UnixNano()))
	if err != nil {
		return handleError(c, err)
	}

	before := time.Now()
	move, err := computer.Think(board)
	if err != nil {
		return handleError(c, err)
	}

	slog.Debug("Computer moved", "id", session.ID, "player", computer.Name(), "move", move.String(),
		"seconds", time.Since(before).Seconds())

	if _, err = board.ApplyMove(move); err != nil {
		return handleError(c, fmt.Errorf("computer played an invalid move: %w", err))
	}

	return saveMove(c, session, board, move)
}

// maxAnalysisTime caps the search budget of a single analysis request.
const maxAnalysisTime = 5 * time.Second

func analysisTimeBudget(thinkTime time.Duration) time.Duration {
	return min(thinkTime, maxAnalysisTime)
}

// AnalyzeGame returns the minimax score of every legal move of the side to move.
func AnalyzeGame(c *fiber.Ctx) error {
	depth := c.QueryInt("depth", config.DefaultSearchDepth)
	if depth < 1 || depth > config.MaxSearchDepth {
		return errorJSON(c, fiber.StatusBadRequest,
			fmt.Errorf("depth must be between 1 and %d", config.MaxSearchDepth))
	}

	evaluationName := c.Query("evaluation", evaluate.PieceCountName)
	evaluation, err := evaluate.Lookup(evaluationName)
	if err != nil {
		return errorJSON(c, fiber.StatusBadRequest, err)
	}

	session, board, err := loadGame(c)
	if err != nil {
		return handleError(c, err)
	}

	searcher := search.NewSearcher(
		search.WithDepth(depth),
		search.WithTimeBudget(analysisTimeBudget(session.ThinkTime())),
		search.WithEvaluation(evaluation),
	)

	return c.Status(fiber.StatusOK).JSON(models.AnalysisResponse{
		Depth:      depth,
		Evaluation: evaluationName,
		Scores:     searcher.Analyze(board),
	})
}
