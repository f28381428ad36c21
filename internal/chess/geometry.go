package chess

import (
	"fmt"

	"github.com/lgbarn/chessrules-go/internal/errors"
)

// Constants for board dimensions.
const (
	BoardSize  = 64
	NumColumns = 8
	NumRows    = 8
)

// Position is a row-major board index. Row 0 is the black back rank,
// so a8 = 0, h8 = 7, a1 = 56 and h1 = 63.
type Position int

// Movement vectors relative to the row-major index.
var (
	KnightVectors = []int{6, 10, 15, 17, -6, -10, -15, -17}
	BishopVectors = []int{7, 9, -7, -9}
	RookVectors   = []int{1, 8, -1, -8}
	QueenVectors  = []int{1, 7, 8, 9, -1, -7, -8, -9}
	KingVectors   = []int{1, 7, 8, 9, -1, -7, -8, -9}

	// PawnVectors are multiplied by Colour.Direction.
	PawnVectors = []int{8, 16, 7, 9}
)

// IsValid reports whether p is a board index in [0, 64).
func IsValid(p int) bool {
	return p >= 0 && p < BoardSize
}

// Valid reports whether the position is on the board.
func (p Position) Valid() bool {
	return IsValid(int(p))
}

// Row returns the row index, 0 being the black back rank.
func (p Position) Row() int {
	return int(p) / NumColumns
}

// Column returns the column index, 0 being the a-file.
func (p Position) Column() int {
	return int(p) % NumColumns
}

// IsFirstColumn reports whether p is on the a-file.
func IsFirstColumn(p Position) bool {
	return p%NumColumns == 0
}

// IsSecondColumn reports whether p is on the b-file.
func IsSecondColumn(p Position) bool {
	return p%NumColumns == 1
}

// IsSeventhColumn reports whether p is on the g-file.
func IsSeventhColumn(p Position) bool {
	return p%NumColumns == 6
}

// IsEighthColumn reports whether p is on the h-file.
func IsEighthColumn(p Position) bool {
	return p%NumColumns == 7
}

// IsSecondRow reports whether p is on the black pawn home rank (indices 8..15).
func IsSecondRow(p Position) bool {
	return p >= 8 && p < 16
}

// IsSeventhRow reports whether p is on the white pawn home rank (indices 48..55).
func IsSeventhRow(p Position) bool {
	return p >= 48 && p < 56
}

// String returns the algebraic name of the square, e.g. "e2" for 52.
func (p Position) String() string {
	if !p.Valid() {
		return fmt.Sprintf("?%d", int(p))
	}
	return string([]byte{byte('a' + p.Column()), byte('8' - p.Row())})
}

// ParsePosition converts an algebraic square name ("e2") to a Position.
func ParsePosition(s string) (Position, error) {
	if len(s) != 2 {
		return 0, errors.Wrapf(errors.ErrInvalidPosition, "square %q", s)
	}
	col, rank := s[0], s[1]
	if col >= 'A' && col <= 'H' {
		col += 'a' - 'A'
	}
	if col < 'a' || col > 'h' || rank < '1' || rank > '8' {
		return 0, errors.Wrapf(errors.ErrInvalidPosition, "square %q", s)
	}
	return Position(int('8'-rank)*NumColumns + int(col-'a')), nil
}

// knightWraps reports whether a knight offset from p would wrap across the
// left or right edge of the board.
func knightWraps(p Position, v int) bool {
	switch {
	case IsFirstColumn(p) && (v == -10 || v == -17 || v == 6 || v == 15):
		return true
	case IsSecondColumn(p) && (v == -10 || v == 6):
		return true
	case IsSeventhColumn(p) && (v == -6 || v == 10):
		return true
	case IsEighthColumn(p) && (v == 10 || v == 17 || v == -6 || v == -15):
		return true
	}
	return false
}

// kingWraps is used for both the king step and the queen ray.
func kingWraps(p Position, v int) bool {
	if IsFirstColumn(p) && (v == -9 || v == -1 || v == 7) {
		return true
	}
	return IsEighthColumn(p) && (v == -7 || v == 1 || v == 9)
}

func rookWraps(p Position, v int) bool {
	return (IsFirstColumn(p) && v == -1) || (IsEighthColumn(p) && v == 1)
}

func bishopWraps(p Position, v int) bool {
	if IsFirstColumn(p) && (v == -9 || v == 7) {
		return true
	}
	return IsEighthColumn(p) && (v == -7 || v == 9)
}

// pawnDiagonalWraps reports whether the diagonal capture along vector
// (7 or 9, before direction is applied) leaves the board sideways.
func pawnDiagonalWraps(p Position, c Colour, vector int) bool {
	switch vector {
	case 7:
		if c == White {
			return IsEighthColumn(p)
		}
		return IsFirstColumn(p)
	case 9:
		if c == White {
			return IsFirstColumn(p)
		}
		return IsEighthColumn(p)
	}
	return true
}
