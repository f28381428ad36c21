package chess

import (
	"fmt"
	"strings"

	"golang.org/x/exp/slices"

	"github.com/lgbarn/chessrules-go/internal/errors"
)

// side holds everything derived for one colour when a board is built.
type side struct {
	pieces     []Piece
	candidates []Move // raw movement-rule moves
	available  []Move // candidates plus legal castles
	king       Piece
	inCheck    bool
}

// Board is an immutable snapshot of the 64 squares, whose turn it is, and the
// pawn (if any) that may be captured en passant. Boards are created by NewBoard
// or a Builder and never change afterwards.
type Board struct {
	squares [BoardSize]Square
	sides   [2]side // indexed by Colour
	turn    Colour

	enPassant    Piece
	hasEnPassant bool
}

// NewBoard builds a board from a complete placement and the side to move.
// enPassant, if non-nil, registers the pawn that has just made a double step.
// The map key is authoritative for each piece's position.
//
// A placement without a king for either side is rejected with ErrNoKing.
func NewBoard(placement map[Position]Piece, turn Colour, enPassant *Piece) (*Board, error) {
	if !turn.valid() {
		return nil, errors.Wrapf(errors.ErrInvalidPosition, "unknown colour %d to move", int(turn))
	}
	b := &Board{turn: turn}

	for i := range b.squares {
		b.squares[i] = EmptySquare(Position(i))
	}
	for pos, piece := range placement {
		if !pos.Valid() {
			return nil, errors.Wrapf(errors.ErrInvalidPosition, "piece at index %d", int(pos))
		}
		if piece.Kind <= NoKind || piece.Kind >= numKinds {
			return nil, fmt.Errorf("unknown piece kind %d at %s", int(piece.Kind), pos)
		}
		if !piece.Colour.valid() {
			return nil, errors.Wrapf(errors.ErrInvalidPosition, "unknown colour %d at %s", int(piece.Colour), pos)
		}
		piece.Position = pos
		b.squares[pos] = OccupiedSquare(piece)
	}

	if enPassant != nil {
		if !enPassant.Position.Valid() {
			return nil, errors.Wrapf(errors.ErrInvalidPosition, "en-passant pawn at index %d", int(enPassant.Position))
		}
		sq := b.squares[enPassant.Position]
		if !sq.occupied || sq.piece.Kind != Pawn || !sq.piece.Equal(*enPassant) {
			return nil, errors.Wrapf(errors.ErrInvalidPosition, "en-passant pawn %s not on board", enPassant.Position)
		}
		b.enPassant = sq.piece
		b.hasEnPassant = true
	}

	for _, sq := range b.squares {
		if sq.occupied {
			s := &b.sides[sq.piece.Colour]
			s.pieces = append(s.pieces, sq.piece)
		}
	}

	for _, c := range []Colour{White, Black} {
		s := &b.sides[c]
		for _, p := range s.pieces {
			s.candidates = append(s.candidates, p.CandidateMoves(b)...)
		}
	}

	for _, c := range []Colour{White, Black} {
		king, ok := trackKing(b.sides[c].pieces)
		if !ok {
			return nil, errors.Wrapf(errors.ErrNoKing, "%s", c)
		}
		b.sides[c].king = king
	}

	for _, c := range []Colour{White, Black} {
		s := &b.sides[c]
		s.inCheck = attacksSquare(b.sides[c.Opposite()].candidates, s.king.Position)
	}

	for _, c := range []Colour{White, Black} {
		s := &b.sides[c]
		s.available = append(slices.Clone(s.candidates), b.calculateKingCastles(c)...)
	}

	return b, nil
}

// NewStandardBoard returns the standard starting position with White to move.
func NewStandardBoard() *Board {
	b, err := NewBoard(standardPlacement(), White, nil)
	if err != nil {
		// The standard placement always has both kings.
		panic(err)
	}
	return b
}

func standardPlacement() map[Position]Piece {
	backRank := []Kind{Rook, Knight, Bishop, Queen, King, Bishop, Knight, Rook}
	placement := make(map[Position]Piece, 32)
	for col, kind := range backRank {
		black, white := Position(col), Position(56+col)
		placement[black] = NewPiece(kind, Black, black)
		placement[black+8] = NewPiece(Pawn, Black, black+8)
		placement[white-8] = NewPiece(Pawn, White, white-8)
		placement[white] = NewPiece(kind, White, white)
	}
	return placement
}

func trackKing(pieces []Piece) (Piece, bool) {
	for _, p := range pieces {
		if p.IsKing() {
			return p, true
		}
	}
	return Piece{}, false
}

// attacksSquare reports whether any move lands on pos.
func attacksSquare(moves []Move, pos Position) bool {
	for _, m := range moves {
		if m.Destination == pos {
			return true
		}
	}
	return false
}

// Box returns the square at index i. ok is false for off-board indices.
func (b *Board) Box(i Position) (sq Square, ok bool) {
	if !i.Valid() {
		return Square{}, false
	}
	return b.squares[i], true
}

// PieceAt returns the piece standing on pos, if any.
func (b *Board) PieceAt(pos Position) (Piece, bool) {
	if !pos.Valid() {
		return Piece{}, false
	}
	return b.squares[pos].Piece()
}

// Turn returns the colour to move.
func (b *Board) Turn() Colour {
	return b.turn
}

// Player returns the player of the given colour.
func (b *Board) Player(c Colour) Player {
	return Player{board: b, colour: c}
}

// CurrentPlayer returns the player to move.
func (b *Board) CurrentPlayer() Player {
	return b.Player(b.turn)
}

// WhitePlayer returns the white player.
func (b *Board) WhitePlayer() Player {
	return b.Player(White)
}

// BlackPlayer returns the black player.
func (b *Board) BlackPlayer() Player {
	return b.Player(Black)
}

// Pieces returns the alive pieces of colour c in board order.
func (b *Board) Pieces(c Colour) []Piece {
	return slices.Clone(b.sides[c].pieces)
}

// WhitePieces returns the alive white pieces.
func (b *Board) WhitePieces() []Piece {
	return b.Pieces(White)
}

// BlackPieces returns the alive black pieces.
func (b *Board) BlackPieces() []Piece {
	return b.Pieces(Black)
}

// AllAvailableMoves returns the available moves of White followed by those
// of Black. This is the set CreateMove searches.
func (b *Board) AllAvailableMoves() []Move {
	all := make([]Move, 0, len(b.sides[White].available)+len(b.sides[Black].available))
	all = append(all, b.sides[White].available...)
	return append(all, b.sides[Black].available...)
}

// EnPassantPawn returns the pawn that made a double step on the previous
// move, if any.
func (b *Board) EnPassantPawn() (Piece, bool) {
	return b.enPassant, b.hasEnPassant
}

// String renders the board as an 8x8 grid, black side first, each square
// right-aligned in a 3-character column and each row ending in a newline.
func (b *Board) String() string {
	var sb strings.Builder
	sb.Grow(BoardSize*3 + NumRows)
	for i, sq := range b.squares {
		fmt.Fprintf(&sb, "%3s", sq.String())
		if (i+1)%NumColumns == 0 {
			sb.WriteByte('\n')
		}
	}
	return sb.String()
}
