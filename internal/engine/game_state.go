package engine

import "github.com/lgbarn/chessrules-go/internal/chess"

// GameStatus describes the position from the side to move's point of view.
type GameStatus int

const (
	Ongoing GameStatus = iota
	Check
	Checkmate
	Stalemate
)

// String returns the string representation of a status.
func (s GameStatus) String() string {
	switch s {
	case Ongoing:
		return "ongoing"
	case Check:
		return "check"
	case Checkmate:
		return "checkmate"
	case Stalemate:
		return "stalemate"
	default:
		return "unknown"
	}
}

// IsTerminal reports whether no further move can be played.
func (s GameStatus) IsTerminal() bool {
	return s == Checkmate || s == Stalemate
}

// Status returns the status of the side to move on board.
func Status(board *chess.Board) (GameStatus, error) {
	player := board.CurrentPlayer()
	legal, err := player.LegalMoves()
	if err != nil {
		return Ongoing, err
	}
	switch {
	case len(legal) == 0 && player.IsInCheck():
		return Checkmate, nil
	case len(legal) == 0:
		return Stalemate, nil
	case player.IsInCheck():
		return Check, nil
	}
	return Ongoing, nil
}

// IsCheckmate returns true if the position is checkmate for the side to move.
func IsCheckmate(board *chess.Board) (bool, error) {
	return board.CurrentPlayer().IsInCheckMate()
}

// IsStalemate returns true if the position is stalemate for the side to move.
func IsStalemate(board *chess.Board) (bool, error) {
	return board.CurrentPlayer().IsInStaleMate()
}
