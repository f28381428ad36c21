package chess

// Square is one of the 64 board cells, either empty or holding a piece.
type Square struct {
	index    Position
	piece    Piece
	occupied bool
}

// EmptySquare returns the empty square at index.
func EmptySquare(index Position) Square {
	return Square{index: index}
}

// OccupiedSquare returns the square holding p at p's position.
func OccupiedSquare(p Piece) Square {
	return Square{index: p.Position, piece: p, occupied: true}
}

// Index returns the board index of the square.
func (s Square) Index() Position {
	return s.index
}

// Occupied reports whether a piece stands on the square.
func (s Square) Occupied() bool {
	return s.occupied
}

// Piece returns the occupant, if any.
func (s Square) Piece() (Piece, bool) {
	return s.piece, s.occupied
}

// String returns "-" for an empty square, otherwise the piece letter.
func (s Square) String() string {
	if !s.occupied {
		return "-"
	}
	return s.piece.String()
}
