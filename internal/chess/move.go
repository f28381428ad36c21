package chess

import (
	"github.com/lgbarn/chessrules-go/internal/errors"
)

// MoveKind tags the variant of a Move.
type MoveKind int

const (
	NullMove MoveKind = iota
	NormalMove
	AttackMove
	PawnMove
	PawnJump
	PawnAttackMove
	PawnEnPassantAttackMove
	KingSideCastleMove
	QueenSideCastleMove
	numMoveKinds
)

var moveKindNames = [numMoveKinds]string{
	NullMove:                "null",
	NormalMove:              "normal",
	AttackMove:              "attack",
	PawnMove:                "pawn",
	PawnJump:                "pawn-jump",
	PawnAttackMove:          "pawn-attack",
	PawnEnPassantAttackMove: "en-passant",
	KingSideCastleMove:      "king-side-castle",
	QueenSideCastleMove:     "queen-side-castle",
}

// String returns a short lowercase name of the kind.
func (k MoveKind) String() string {
	if k < 0 || k >= numMoveKinds {
		return "unknown"
	}
	return moveKindNames[k]
}

// Move describes one move as a value. It does not reference the board it was
// generated on; Execute is given that board explicitly.
type Move struct {
	Kind        MoveKind
	Piece       Piece    // the moving piece, as it stood before the move
	Destination Position // where Piece ends up

	// Captured is set for the attack kinds. For en passant it is the
	// passant pawn, which does not stand on Destination.
	Captured Piece

	// Rook and RookDestination are set for the castle kinds.
	Rook            Piece
	RookDestination Position
}

// NoMove is returned by CreateMove when no available move matches.
var NoMove = Move{Kind: NullMove, Destination: -1}

// Source returns the position the moving piece starts from.
func (m Move) Source() Position {
	return m.Piece.Position
}

// IsNull reports whether m is the null sentinel.
func (m Move) IsNull() bool {
	return m.Kind == NullMove
}

// IsAttack reports whether m captures a piece.
func (m Move) IsAttack() bool {
	switch m.Kind {
	case AttackMove, PawnAttackMove, PawnEnPassantAttackMove:
		return true
	}
	return false
}

// IsCastle reports whether m is either castle.
func (m Move) IsCastle() bool {
	return m.Kind == KingSideCastleMove || m.Kind == QueenSideCastleMove
}

// RookOrigin returns the castling rook's starting square.
func (m Move) RookOrigin() Position {
	return m.Rook.Position
}

// Equal reports whether both moves take the same piece to the same square.
// The board they came from plays no part.
func (m Move) Equal(other Move) bool {
	return m.Destination == other.Destination && m.Piece.Equal(other.Piece)
}

// String returns the move in long algebraic form ("e2e4"), "O-O" or "O-O-O"
// for castles and "--" for the null move.
func (m Move) String() string {
	switch m.Kind {
	case NullMove:
		return "--"
	case KingSideCastleMove:
		return "O-O"
	case QueenSideCastleMove:
		return "O-O-O"
	}
	return m.Source().String() + m.Destination.String()
}

// UCI returns the move in from-to coordinates for every kind, castles
// included ("e1g1").
func (m Move) UCI() string {
	if m.IsNull() {
		return "0000"
	}
	return m.Source().String() + m.Destination.String()
}

// Execute builds the board that results from playing m on b. b is not
// modified. Executing the null move returns ErrNullMove.
func (m Move) Execute(b *Board) (*Board, error) {
	if m.Kind < 0 || m.Kind >= numMoveKinds {
		return nil, errors.Wrapf(errors.ErrNullMove, "unknown move kind %d", int(m.Kind))
	}
	return executors[m.Kind](m, b)
}

// CreateMove finds the available move on b that takes the piece on source
// to destination. It searches both sides' moves and returns NoMove when none
// matches.
func CreateMove(b *Board, source, destination Position) Move {
	for _, m := range b.AllAvailableMoves() {
		if m.Source() == source && m.Destination == destination {
			return m
		}
	}
	return NoMove
}
