// Package hashing provides position keys and repetition tracking for chess
// boards.
package hashing

import (
	"math/rand"

	"github.com/lgbarn/chessrules-go/internal/chess"
)

// zobristSeed fixes the key table so keys are stable across runs.
const zobristSeed = 0x5eed_c4e55

var (
	pieceKeys     [2][7][chess.BoardSize]uint64 // [colour][kind][position]
	sideKey       uint64                        // xored in when Black is to move
	castleKeys    [4]uint64
	enPassantKeys [chess.NumColumns]uint64
)

var castleOrder = [4]struct {
	colour chess.Colour
	kind   chess.MoveKind
}{
	{chess.White, chess.KingSideCastleMove},
	{chess.White, chess.QueenSideCastleMove},
	{chess.Black, chess.KingSideCastleMove},
	{chess.Black, chess.QueenSideCastleMove},
}

func init() {
	r := rand.New(rand.NewSource(zobristSeed))
	for c := range pieceKeys {
		for k := range pieceKeys[c] {
			for p := range pieceKeys[c][k] {
				pieceKeys[c][k][p] = r.Uint64()
			}
		}
	}
	sideKey = r.Uint64()
	for i := range castleKeys {
		castleKeys[i] = r.Uint64()
	}
	for i := range enPassantKeys {
		enPassantKeys[i] = r.Uint64()
	}
}

// Key returns the Zobrist key of board. Two boards share a key when they
// have the same placement, side to move, castling rights, and en passant
// capture possibility.
func Key(board *chess.Board) uint64 {
	var key uint64
	for _, p := range append(board.WhitePieces(), board.BlackPieces()...) {
		key ^= pieceKeys[p.Colour][p.Kind][p.Position]
	}
	if board.Turn() == chess.Black {
		key ^= sideKey
	}
	for i, c := range castleOrder {
		if board.HasCastlingRights(c.colour, c.kind) {
			key ^= castleKeys[i]
		}
	}
	if pawn, ok := capturableEnPassant(board); ok {
		key ^= enPassantKeys[pawn.Position.Column()]
	}
	return key
}

// capturableEnPassant returns the registered en passant pawn when the side
// to move can actually capture it.
func capturableEnPassant(board *chess.Board) (chess.Piece, bool) {
	pawn, ok := board.EnPassantPawn()
	if !ok {
		return chess.Piece{}, false
	}
	for _, m := range board.CurrentPlayer().AvailableMoves() {
		if m.Kind == chess.PawnEnPassantAttackMove {
			return pawn, true
		}
	}
	return chess.Piece{}, false
}
