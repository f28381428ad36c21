package chess

// Piece is one chess piece instance. It is a value: moving a piece yields a
// new Piece at the destination.
type Piece struct {
	Kind     Kind
	Colour   Colour
	Position Position

	// Moved is true once the piece has made any move. Castling and the
	// pawn double step require it to be false.
	Moved bool
}

// NewPiece creates a piece that has not moved yet.
func NewPiece(kind Kind, colour Colour, position Position) Piece {
	return Piece{Kind: kind, Colour: colour, Position: position}
}

// IsZero reports whether p is the absent piece.
func (p Piece) IsZero() bool {
	return p.Kind == NoKind
}

// Equal reports whether two pieces have the same colour, position and kind.
// The Moved flag does not take part in identity.
func (p Piece) Equal(other Piece) bool {
	return p.Colour == other.Colour && p.Position == other.Position && p.Kind == other.Kind
}

// IsKing reports whether p is a king.
func (p Piece) IsKing() bool {
	return p.Kind == King
}

// IsRook reports whether p is a rook.
func (p Piece) IsRook() bool {
	return p.Kind == Rook
}

// MovedTo returns the piece relocated to dest with Moved set.
func (p Piece) MovedTo(dest Position) Piece {
	p.Position = dest
	p.Moved = true
	return p
}

// MovedCopy returns the piece as it stands after m.
func (p Piece) MovedCopy(m Move) Piece {
	return p.MovedTo(m.Destination)
}

// CandidateMoves returns the moves this piece's movement rule allows on b,
// before castling is added and before self-check filtering. Order follows the
// vector table and, for sliding pieces, increasing distance along each vector.
func (p Piece) CandidateMoves(b *Board) []Move {
	if p.Kind <= NoKind || p.Kind >= numKinds {
		return nil
	}
	return generators[p.Kind](p, b)
}

// Letter returns the board letter: uppercase for White, lowercase for Black.
func (p Piece) Letter() byte {
	l := p.Kind.Letter()
	if p.Colour == Black && l >= 'A' && l <= 'Z' {
		l += 'a' - 'A'
	}
	return l
}

// String returns the board letter of the piece.
func (p Piece) String() string {
	return string(p.Letter())
}
