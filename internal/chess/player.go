package chess

import (
	"golang.org/x/exp/slices"
)

// MoveStatus is the outcome of Player.MakeMove.
type MoveStatus int

const (
	MoveDone MoveStatus = iota
	IllegalMove
	LeavesPlayerInCheck
)

// String returns the string representation of a move status.
func (s MoveStatus) String() string {
	switch s {
	case MoveDone:
		return "done"
	case IllegalMove:
		return "illegal move"
	case LeavesPlayerInCheck:
		return "leaves player in check"
	default:
		return "unknown"
	}
}

// Transition is the result of attempting a move. On failure Board is the
// unchanged board the move was attempted on.
type Transition struct {
	Board  *Board
	Move   Move
	Status MoveStatus
}

// Succeeded reports whether the move was made.
func (t Transition) Succeeded() bool {
	return t.Status == MoveDone
}

// Player is one side of a board. It is a lightweight view; the per-side
// state it reports is computed once when the board is built.
type Player struct {
	board  *Board
	colour Colour
}

// Board returns the board the player belongs to.
func (p Player) Board() *Board {
	return p.board
}

// Colour returns the player's colour.
func (p Player) Colour() Colour {
	return p.colour
}

// IsWhitePlayer reports whether the player plays White.
func (p Player) IsWhitePlayer() bool {
	return p.colour == White
}

// String returns the colour name.
func (p Player) String() string {
	return p.colour.String()
}

// King returns the player's king.
func (p Player) King() Piece {
	return p.board.sides[p.colour].king
}

// AlivePieces returns the player's pieces on the board.
func (p Player) AlivePieces() []Piece {
	return p.board.Pieces(p.colour)
}

// AvailableMoves returns the candidate moves of every piece plus the legal
// castles. Moves that would leave the king attacked are still included.
func (p Player) AvailableMoves() []Move {
	return slices.Clone(p.board.sides[p.colour].available)
}

// Opponent returns the other side of the same board.
func (p Player) Opponent() Player {
	return p.board.Player(p.colour.Opposite())
}

// IsInCheck reports whether any opponent move lands on the player's king.
func (p Player) IsInCheck() bool {
	return p.board.sides[p.colour].inCheck
}

// IsMoveLegal reports whether m is one of the player's available moves.
func (p Player) IsMoveLegal(m Move) bool {
	return slices.ContainsFunc(p.board.sides[p.colour].available, m.Equal)
}

// MakeMove plays m if it is available and does not leave the player's own
// king attacked. A rejected move yields the current board and a failure
// status with a nil error; an error is returned only for fatal conditions.
func (p Player) MakeMove(m Move) (Transition, error) {
	idx := slices.IndexFunc(p.board.sides[p.colour].available, m.Equal)
	if idx < 0 {
		return Transition{Board: p.board, Move: m, Status: IllegalMove}, nil
	}
	m = p.board.sides[p.colour].available[idx]

	next, err := m.Execute(p.board)
	if err != nil {
		return Transition{Board: p.board, Move: m, Status: IllegalMove}, err
	}
	if next.sides[p.colour].inCheck {
		return Transition{Board: p.board, Move: m, Status: LeavesPlayerInCheck}, nil
	}
	return Transition{Board: next, Move: m, Status: MoveDone}, nil
}

// LegalMoves returns the available moves that MakeMove accepts, in
// generation order.
func (p Player) LegalMoves() ([]Move, error) {
	var legal []Move
	for _, m := range p.board.sides[p.colour].available {
		t, err := p.MakeMove(m)
		if err != nil {
			return nil, err
		}
		if t.Succeeded() {
			legal = append(legal, m)
		}
	}
	return legal, nil
}

func (p Player) hasEscapeMoves() (bool, error) {
	for _, m := range p.board.sides[p.colour].available {
		t, err := p.MakeMove(m)
		if err != nil {
			return false, err
		}
		if t.Succeeded() {
			return true, nil
		}
	}
	return false, nil
}

// IsInCheckMate reports whether the player is in check with no legal move.
func (p Player) IsInCheckMate() (bool, error) {
	if !p.IsInCheck() {
		return false, nil
	}
	escape, err := p.hasEscapeMoves()
	return !escape && err == nil, err
}

// IsInStaleMate reports whether the player is not in check and has no legal
// move.
func (p Player) IsInStaleMate() (bool, error) {
	if p.IsInCheck() {
		return false, nil
	}
	escape, err := p.hasEscapeMoves()
	return !escape && err == nil, err
}
