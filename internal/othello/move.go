package othello

import (
	"errors"
	"fmt"
	"strings"
)

var ErrInvalidField = errors.New("invalid field")

// Move is a board coordinate. Row 0 is the top row, Col 0 the leftmost column.
type Move struct {
	Row int
	Col int
}

// RootMove is the sentinel move of a synthetic search root.
var RootMove = Move{Row: -1, Col: -1}

// IsRoot checks if the move is the root sentinel.
func (m Move) IsRoot() bool {
	return m == RootMove
}

// index returns the bit index of the move, as used by the serialized board.
func (m Move) index() int {
	return m.Row*Size + m.Col
}

// String returns the field notation of the move, for example "e3" for row 2, column 4.
func (m Move) String() string {
	if m.IsRoot() {
		return "*"
	}
	return fmt.Sprintf("%c%d", 'a'+m.Col, m.Row+1)
}

// MarshalText encodes the move in field notation.
func (m Move) MarshalText() ([]byte, error) {
	return []byte(m.String()), nil
}

// UnmarshalText decodes a move from field notation.
func (m *Move) UnmarshalText(text []byte) error {
	move, err := ParseMove(string(text))
	if err != nil {
		return err
	}
	*m = move
	return nil
}

// ParseMove converts a field notation (e.g. "a1", "h8") to a move.
func ParseMove(field string) (Move, error) {
	if len(field) != 2 {
		return Move{}, fmt.Errorf("%w: %q has length %d", ErrInvalidField, field, len(field))
	}

	field = strings.ToLower(field)

	if !('a' <= field[0] && field[0] <= 'h' && '1' <= field[1] && field[1] <= '8') {
		return Move{}, fmt.Errorf("%w: %q", ErrInvalidField, field)
	}

	return Move{
		Row: int(field[1] - '1'),
		Col: int(field[0] - 'a'),
	}, nil
}
