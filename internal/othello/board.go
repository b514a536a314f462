package othello

import (
	"errors"
	"fmt"
	"slices"
	"strconv"
)

const (
	Size    = 8
	Squares = Size * Size
)

// Square is the content of a cell. The values match the external grid format.
type Square int

const (
	Empty Square = 0
	White Square = 1
	Black Square = 2
)

// Opponent returns the other color. Only meaningful for Black and White.
func (s Square) Opponent() Square {
	return Black + White - s
}

func (s Square) String() string {
	switch s {
	case Black:
		return "Black"
	case White:
		return "White"
	case Empty:
		return "Empty"
	default:
		return "Square(" + strconv.Itoa(int(s)) + ")"
	}
}

// Result is the outcome of a game, or NoResult while it is in progress.
type Result int

const (
	NoResult Result = iota
	BlackWins
	WhiteWins
	Tie
)

func (r Result) String() string {
	switch r {
	case BlackWins:
		return "BLACK PLAYER"
	case WhiteWins:
		return "WHITE PLAYER"
	case Tie:
		return "TIE"
	default:
		return "NONE"
	}
}

var (
	ErrInvalidMove  = errors.New("invalid move")
	ErrInvalidBoard = errors.New("invalid board")
)

var directions = [8][2]int{
	{1, 0}, {-1, 0}, {0, 1}, {0, -1},
	{1, 1}, {1, -1}, {-1, 1}, {-1, -1},
}

// Board represents a Reversi board with the side to move, its legal moves and disc counts.
// Legal moves and counts are recomputed on construction and after every move.
type Board struct {
	grid       [Size][Size]Square
	mover      Square
	legalMoves []Move
	blackCount int
	whiteCount int
}

// NewBoardStart creates a new board with the starting position.
func NewBoardStart() *Board {
	var grid [Size][Size]Square
	grid[3][3], grid[4][4] = Black, Black
	grid[3][4], grid[4][3] = White, White

	return newBoard(grid, Black)
}

// NewBoardFromGrid creates a board from an arbitrary grid and side to move.
func NewBoardFromGrid(grid [Size][Size]Square, mover Square) (*Board, error) {
	if mover != Black && mover != White {
		return nil, fmt.Errorf("%w: mover must be Black or White, got %s", ErrInvalidBoard, mover)
	}

	for row := range Size {
		for col := range Size {
			switch grid[row][col] {
			case Empty, White, Black:
			default:
				return nil, fmt.Errorf("%w: cell (%d,%d) holds %d", ErrInvalidBoard, row, col, grid[row][col])
			}
		}
	}

	return newBoard(grid, mover), nil
}

// NewBoardFromGridMust creates a board from a grid and panics if it is invalid.
func NewBoardFromGridMust(grid [Size][Size]Square, mover Square) *Board {
	b, err := NewBoardFromGrid(grid, mover)
	if err != nil {
		panic(err)
	}
	return b
}

// NewBoardFromString creates a new board from its string representation, see Board.String.
func NewBoardFromString(s string) (*Board, error) {
	if len(s) != 34 {
		return nil, fmt.Errorf("board string must be 34 characters long, got %d", len(s))
	}

	black, err := strconv.ParseUint(s[:16], 16, 64)
	if err != nil {
		return nil, fmt.Errorf("invalid black discs: %w", err)
	}

	white, err := strconv.ParseUint(s[16:32], 16, 64)
	if err != nil {
		return nil, fmt.Errorf("invalid white discs: %w", err)
	}

	if black&white != 0 {
		return nil, fmt.Errorf("%w: black and white discs cannot overlap", ErrInvalidBoard)
	}

	var mover Square
	switch s[32:34] {
	case "-w":
		mover = White
	case "-b":
		mover = Black
	default:
		return nil, fmt.Errorf("invalid turn: %s", s[32:34])
	}

	var grid [Size][Size]Square
	for index := range Squares {
		mask := uint64(1) << index
		switch {
		case black&mask != 0:
			grid[index/Size][index%Size] = Black
		case white&mask != 0:
			grid[index/Size][index%Size] = White
		}
	}

	return newBoard(grid, mover), nil
}

func newBoard(grid [Size][Size]Square, mover Square) *Board {
	b := &Board{
		grid:  grid,
		mover: mover,
	}
	b.updateCounts()
	b.legalMoves = b.computeLegalMoves()
	return b
}

// Mover returns the color that moves next.
func (b *Board) Mover() Square {
	return b.mover
}

// Square returns the content of a cell.
func (b *Board) Square(row, col int) Square {
	return b.grid[row][col]
}

// Grid returns a copy of the grid.
func (b *Board) Grid() [Size][Size]Square {
	return b.grid
}

// BlackCount returns the number of black discs.
func (b *Board) BlackCount() int {
	return b.blackCount
}

// WhiteCount returns the number of white discs.
func (b *Board) WhiteCount() int {
	return b.whiteCount
}

// EmptyCount returns the number of empty cells.
func (b *Board) EmptyCount() int {
	return Squares - b.blackCount - b.whiteCount
}

// LegalMoves returns the legal moves of the mover in row-major order.
func (b *Board) LegalMoves() []Move {
	return slices.Clone(b.legalMoves)
}

// HasMoves checks if the mover has any legal move.
func (b *Board) HasMoves() bool {
	return len(b.legalMoves) > 0
}

// IsValidMove checks if a disc placed on an empty cell would flip at least one disc.
func (b *Board) IsValidMove(row, col int) bool {
	if b.grid[row][col] != Empty {
		return false
	}
	return b.captures(row, col, false) > 0
}

func (b *Board) computeLegalMoves() []Move {
	moves := make([]Move, 0)
	for row := range Size {
		for col := range Size {
			if b.IsValidMove(row, col) {
				moves = append(moves, Move{Row: row, Col: col})
			}
		}
	}
	return moves
}

// captures walks outward from (row, col) in every direction and counts the opponent discs
// bounded by a disc of the mover. When apply is set those discs are flipped.
func (b *Board) captures(row, col int, apply bool) int {
	opponent := b.mover.Opponent()
	total := 0

	for _, dir := range directions {
		dr, dc := dir[0], dir[1]
		r, c := row+dr, col+dc
		run := 0

		for inBounds(r, c) && b.grid[r][c] == opponent {
			r += dr
			c += dc
			run++
		}

		// A run ending at an empty cell or the edge flips nothing.
		if run == 0 || !inBounds(r, c) || b.grid[r][c] != b.mover {
			continue
		}

		if apply {
			for dist := 1; dist <= run; dist++ {
				b.grid[row+dist*dr][col+dist*dc] = b.mover
			}
		}

		total += run
	}

	return total
}

func inBounds(row, col int) bool {
	return row >= 0 && row < Size && col >= 0 && col < Size
}

// ApplyMove places a disc of the mover, flips the captured discs and passes the turn.
// It returns the number of flipped discs. An illegal move leaves the board untouched.
func (b *Board) ApplyMove(move Move) (int, error) {
	if !slices.Contains(b.legalMoves, move) {
		return 0, fmt.Errorf("%w: %s", ErrInvalidMove, move)
	}

	b.grid[move.Row][move.Col] = b.mover
	flipped := b.captures(move.Row, move.Col, true)

	b.updateCounts()
	b.mover = b.mover.Opponent()
	b.legalMoves = b.computeLegalMoves()

	return flipped, nil
}

func (b *Board) updateCounts() {
	b.blackCount = 0
	b.whiteCount = 0
	for row := range Size {
		for col := range Size {
			switch b.grid[row][col] {
			case Black:
				b.blackCount++
			case White:
				b.whiteCount++
			}
		}
	}
}

// Winner returns the result of the game. The game is over as soon as the mover has no legal
// move; the turn is never passed to the opponent.
func (b *Board) Winner() Result {
	if len(b.legalMoves) > 0 {
		return NoResult
	}

	switch {
	case b.blackCount > b.whiteCount:
		return BlackWins
	case b.blackCount < b.whiteCount:
		return WhiteWins
	default:
		return Tie
	}
}

// Clone returns a deep copy of the board.
func (b *Board) Clone() *Board {
	return b.CloneWithMover(b.mover)
}

// CloneWithMover returns a deep copy of the grid with the given side to move.
func (b *Board) CloneWithMover(mover Square) *Board {
	if mover == b.mover {
		return &Board{
			grid:       b.grid,
			mover:      b.mover,
			legalMoves: slices.Clone(b.legalMoves),
			blackCount: b.blackCount,
			whiteCount: b.whiteCount,
		}
	}
	return newBoard(b.grid, mover)
}

// Equal checks if two boards have the same grid and mover.
func (b *Board) Equal(other *Board) bool {
	return b.grid == other.grid && b.mover == other.mover
}

// bitboards returns the black and white discs as bitsets with bit index row*8+col.
func (b *Board) bitboards() (black, white uint64) {
	for row := range Size {
		for col := range Size {
			mask := uint64(1) << Move{Row: row, Col: col}.index()
			switch b.grid[row][col] {
			case Black:
				black |= mask
			case White:
				white |= mask
			}
		}
	}
	return black, white
}

// ASCIIArtLines returns the ascii art lines for the board. Legal moves are marked with a dot.
func (b *Board) ASCIIArtLines() []string {
	lines := make([]string, Size+2)

	lines[0] = "+-a-b-c-d-e-f-g-h-+"
	for row := range Size {
		line := fmt.Sprintf("%d ", row+1)

		for col := range Size {
			switch {
			case b.grid[row][col] == White:
				line += "○ "
			case b.grid[row][col] == Black:
				line += "● "
			case slices.Contains(b.legalMoves, Move{Row: row, Col: col}):
				line += "· "
			default:
				line += "  "
			}
		}

		lines[row+1] = line + "|"
	}

	lines[Size+1] = "+-----------------+"

	return lines
}

// Print prints the board to the console. This is used for debugging.
func (b *Board) Print() {
	for _, line := range b.ASCIIArtLines() {
		fmt.Println(line)
	}
}

// String returns the string representation of the board: black and white discs as
// hexadecimal bitsets followed by the side to move.
func (b *Board) String() string {
	black, white := b.bitboards()

	turnString := "-b"
	if b.mover == White {
		turnString = "-w"
	}

	return fmt.Sprintf("%016x%016x%s", black, white, turnString)
}
