package chess

import (
	"github.com/lgbarn/chessrules-go/internal/errors"
)

// Builder accumulates a placement for NewBoard. Setters chain; the first
// invalid setter call is remembered and returned by Build.
type Builder struct {
	placement map[Position]Piece
	turn      Colour
	enPassant *Piece
	err       error
}

// NewBuilder returns an empty builder with White to move.
func NewBuilder() *Builder {
	return &Builder{
		placement: make(map[Position]Piece),
		turn:      White,
	}
}

// SetPiece places p on its own position, replacing any earlier piece there.
func (bl *Builder) SetPiece(p Piece) *Builder {
	if !p.Position.Valid() {
		if bl.err == nil {
			bl.err = errors.Wrapf(errors.ErrInvalidPosition, "%s %s at index %d", p.Colour, p.Kind, int(p.Position))
		}
		return bl
	}
	bl.placement[p.Position] = p
	return bl
}

// Place is SetPiece for a piece that has not moved.
func (bl *Builder) Place(kind Kind, colour Colour, pos Position) *Builder {
	return bl.SetPiece(NewPiece(kind, colour, pos))
}

// SetTurn sets the side to move.
func (bl *Builder) SetTurn(c Colour) *Builder {
	bl.turn = c
	return bl
}

// SetEnPassant registers p as the pawn that has just made a double step.
// p must also be placed on the builder.
func (bl *Builder) SetEnPassant(p Piece) *Builder {
	bl.enPassant = &p
	return bl
}

// Build creates the board.
func (bl *Builder) Build() (*Board, error) {
	if bl.err != nil {
		return nil, bl.err
	}
	placement := make(map[Position]Piece, len(bl.placement))
	for pos, p := range bl.placement {
		placement[pos] = p
	}
	return NewBoard(placement, bl.turn, bl.enPassant)
}
