package chess

import (
	"github.com/lgbarn/chessrules-go/internal/errors"
)

// executors holds the board-building rule of each move kind.
var executors = [numMoveKinds]func(Move, *Board) (*Board, error){
	NullMove:                executeNull,
	NormalMove:              executeStandard,
	AttackMove:              executeStandard,
	PawnMove:                executeStandard,
	PawnJump:                executeJump,
	PawnAttackMove:          executeStandard,
	PawnEnPassantAttackMove: executeStandard,
	KingSideCastleMove:      executeCastle,
	QueenSideCastleMove:     executeCastle,
}

func executeNull(Move, *Board) (*Board, error) {
	return nil, errors.ErrNullMove
}

func executeStandard(m Move, b *Board) (*Board, error) {
	placement := retainedPieces(m, b)
	moved := m.Piece.MovedCopy(m)
	placement[moved.Position] = moved
	return NewBoard(placement, m.Piece.Colour.Opposite(), nil)
}

func executeJump(m Move, b *Board) (*Board, error) {
	placement := retainedPieces(m, b)
	moved := m.Piece.MovedCopy(m)
	placement[moved.Position] = moved
	return NewBoard(placement, m.Piece.Colour.Opposite(), &moved)
}

func executeCastle(m Move, b *Board) (*Board, error) {
	placement := retainedPieces(m, b)
	delete(placement, m.Rook.Position)
	king := m.Piece.MovedCopy(m)
	rook := m.Rook.MovedTo(m.RookDestination)
	placement[king.Position] = king
	placement[rook.Position] = rook
	return NewBoard(placement, m.Piece.Colour.Opposite(), nil)
}

// retainedPieces returns every piece of b except the moving piece and the
// captured piece, keyed by position.
func retainedPieces(m Move, b *Board) map[Position]Piece {
	mover := m.Piece.Colour
	placement := make(map[Position]Piece, len(b.sides[White].pieces)+len(b.sides[Black].pieces))
	for _, p := range b.sides[mover].pieces {
		if !p.Equal(m.Piece) {
			placement[p.Position] = p
		}
	}
	for _, p := range b.sides[mover.Opposite()].pieces {
		if m.IsAttack() && p.Equal(m.Captured) {
			continue
		}
		placement[p.Position] = p
	}
	return placement
}
