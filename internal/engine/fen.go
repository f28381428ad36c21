// Package engine builds on the chess rules: FEN import and export, game
// status, draw rules, and perft move-path counting.
package engine

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/lgbarn/chessrules-go/internal/chess"
	"github.com/lgbarn/chessrules-go/internal/errors"
)

// InitialFEN is the FEN string for the standard starting position.
const InitialFEN = "rnbqkbnr/pppppppp/8/8/8/8/PPPPPPPP/RNBQKBNR w KQkq - 0 1"

// Clocks holds the two move counters of a FEN record.
type Clocks struct {
	HalfmoveClock  int // plies since the last pawn move or capture
	FullmoveNumber int // starts at 1, incremented after each Black move
}

// InitialClocks returns the counters of a new game.
func InitialClocks() Clocks {
	return Clocks{HalfmoveClock: 0, FullmoveNumber: 1}
}

// Advance returns the counters after m has been played.
func (c Clocks) Advance(m chess.Move) Clocks {
	if m.Piece.Kind == chess.Pawn || m.IsAttack() {
		c.HalfmoveClock = 0
	} else {
		c.HalfmoveClock++
	}
	if m.Piece.Colour == chess.Black {
		c.FullmoveNumber++
	}
	return c
}

// castlingFlags maps FEN castling letters to the castle they allow.
var castlingFlags = []struct {
	letter byte
	colour chess.Colour
	kind   chess.MoveKind
	king   chess.Position
	rook   chess.Position
}{
	{'K', chess.White, chess.KingSideCastleMove, 60, 63},
	{'Q', chess.White, chess.QueenSideCastleMove, 60, 56},
	{'k', chess.Black, chess.KingSideCastleMove, 4, 7},
	{'q', chess.Black, chess.QueenSideCastleMove, 4, 0},
}

// NewBoardFromFEN creates a board from a FEN string, discarding the clocks.
func NewBoardFromFEN(fen string) (*chess.Board, error) {
	board, _, err := ParseFEN(fen)
	return board, err
}

// NewInitialBoard creates a board with the standard starting position.
func NewInitialBoard() *chess.Board {
	return chess.NewStandardBoard()
}

// ParseFEN creates a board and its move counters from a FEN string. Missing
// trailing fields take their initial-position defaults.
//
// The Moved flag of each piece is derived from the record: kings and rooks
// count as unmoved only where a castling right keeps them so, and pawns off
// their home rank count as moved.
func ParseFEN(fen string) (*chess.Board, Clocks, error) {
	clocks := InitialClocks()
	parts := strings.Fields(fen)
	if len(parts) < 1 {
		return nil, clocks, fmt.Errorf("empty FEN string: %w", errors.ErrInvalidFEN)
	}

	placement, err := parsePiecePositions(parts[0])
	if err != nil {
		return nil, clocks, err
	}

	turn, err := parseSideToMove(parts)
	if err != nil {
		return nil, clocks, err
	}

	if err := parseCastlingRights(placement, parts); err != nil {
		return nil, clocks, err
	}

	enPassant, err := parseEnPassant(placement, turn, parts)
	if err != nil {
		return nil, clocks, err
	}

	if clocks, err = parseClocks(parts); err != nil {
		return nil, clocks, err
	}

	board, err := chess.NewBoard(placement, turn, enPassant)
	if err != nil {
		return nil, clocks, fmt.Errorf("FEN %q: %w", fen, err)
	}
	// The side that just moved cannot have left its own king attacked.
	if board.Player(turn.Opposite()).IsInCheck() {
		return nil, clocks, &errors.FENError{
			Err:   errors.ErrInvalidFEN,
			Field: "side to move",
			Got:   turn.Opposite().String() + " in check",
		}
	}
	return board, clocks, nil
}

// parsePiecePositions parses the piece placement field of a FEN string.
func parsePiecePositions(field string) (map[chess.Position]chess.Piece, error) {
	ranks := strings.Split(field, "/")
	if len(ranks) != chess.NumRows {
		return nil, &errors.FENError{Err: errors.ErrInvalidFEN, Field: "placement", Got: field}
	}

	placement := make(map[chess.Position]chess.Piece, 32)
	for row, rank := range ranks {
		col := 0
		for i := 0; i < len(rank); i++ {
			c := rank[i]
			if c >= '1' && c <= '8' {
				col += int(c - '0')
				continue
			}
			kind := chess.KindFromLetter(c)
			if kind == chess.NoKind {
				return nil, &errors.FENError{Err: errors.ErrInvalidFEN, Field: "placement", Got: fmt.Sprintf("piece character %c", c)}
			}
			if col >= chess.NumColumns {
				return nil, &errors.FENError{Err: errors.ErrInvalidFEN, Field: "placement", Got: rank}
			}
			colour := chess.White
			if c >= 'a' && c <= 'z' {
				colour = chess.Black
			}
			pos := chess.Position(row*chess.NumColumns + col)
			piece := chess.NewPiece(kind, colour, pos)
			switch kind {
			case chess.Pawn:
				piece.Moved = !onHomeRank(piece)
			case chess.King, chess.Rook:
				// Cleared by the castling field.
				piece.Moved = true
			}
			placement[pos] = piece
			col++
		}
		if col != chess.NumColumns {
			return nil, &errors.FENError{Err: errors.ErrInvalidFEN, Field: "placement", Got: rank}
		}
	}
	return placement, nil
}

func onHomeRank(p chess.Piece) bool {
	if p.Colour == chess.White {
		return chess.IsSeventhRow(p.Position)
	}
	return chess.IsSecondRow(p.Position)
}

// parseSideToMove parses the side to move field.
func parseSideToMove(parts []string) (chess.Colour, error) {
	if len(parts) < 2 {
		return chess.White, nil
	}
	switch parts[1] {
	case "w":
		return chess.White, nil
	case "b":
		return chess.Black, nil
	default:
		return chess.White, &errors.FENError{Err: errors.ErrInvalidFEN, Field: "side to move", Got: parts[1]}
	}
}

// parseCastlingRights clears the Moved flag of each king and rook a castling
// letter names. Letters whose king or rook is missing are ignored.
func parseCastlingRights(placement map[chess.Position]chess.Piece, parts []string) error {
	if len(parts) < 3 || parts[2] == "-" {
		return nil
	}
	for i := 0; i < len(parts[2]); i++ {
		c := parts[2][i]
		found := false
		for _, f := range castlingFlags {
			if f.letter != c {
				continue
			}
			found = true
			king, kok := placement[f.king]
			rook, rok := placement[f.rook]
			if !kok || !rok || !king.IsKing() || !rook.IsRook() || king.Colour != f.colour || rook.Colour != f.colour {
				continue
			}
			king.Moved, rook.Moved = false, false
			placement[f.king], placement[f.rook] = king, rook
		}
		if !found {
			return &errors.FENError{Err: errors.ErrInvalidFEN, Field: "castling", Got: parts[2]}
		}
	}
	return nil
}

// parseEnPassant parses the en passant target square and returns the pawn
// that skipped over it.
func parseEnPassant(placement map[chess.Position]chess.Piece, turn chess.Colour, parts []string) (*chess.Piece, error) {
	if len(parts) < 4 || parts[3] == "-" {
		return nil, nil
	}
	target, err := chess.ParsePosition(parts[3])
	if err != nil {
		return nil, &errors.FENError{Err: errors.ErrInvalidFEN, Field: "en passant", Got: parts[3]}
	}
	pawnAt := target - chess.Position(8*turn.Direction())
	pawn, ok := placement[pawnAt]
	if !pawnAt.Valid() || !ok || pawn.Kind != chess.Pawn || pawn.Colour == turn {
		return nil, &errors.FENError{Err: errors.ErrInvalidFEN, Field: "en passant", Got: parts[3]}
	}
	return &pawn, nil
}

// parseClocks parses the halfmove clock and fullmove number fields.
func parseClocks(parts []string) (Clocks, error) {
	clocks := InitialClocks()
	if len(parts) >= 5 {
		n, err := strconv.Atoi(parts[4])
		if err != nil || n < 0 {
			return clocks, &errors.FENError{Err: errors.ErrInvalidFEN, Field: "halfmove clock", Got: parts[4]}
		}
		clocks.HalfmoveClock = n
	}
	if len(parts) >= 6 {
		n, err := strconv.Atoi(parts[5])
		if err != nil || n < 1 {
			return clocks, &errors.FENError{Err: errors.ErrInvalidFEN, Field: "fullmove number", Got: parts[5]}
		}
		clocks.FullmoveNumber = n
	}
	return clocks, nil
}

// BoardToFEN converts a board and its counters to a FEN string.
func BoardToFEN(board *chess.Board, clocks Clocks) string {
	var sb strings.Builder

	writePiecePositions(&sb, board)
	sb.WriteByte(' ')
	writeSideToMove(&sb, board)
	sb.WriteByte(' ')
	writeCastlingRights(&sb, board)
	sb.WriteByte(' ')
	writeEnPassant(&sb, board)
	sb.WriteByte(' ')
	fmt.Fprintf(&sb, "%d %d", clocks.HalfmoveClock, clocks.FullmoveNumber)

	return sb.String()
}

// writePiecePositions writes the piece placement to the builder.
func writePiecePositions(sb *strings.Builder, board *chess.Board) {
	for row := 0; row < chess.NumRows; row++ {
		emptyCount := 0
		for col := 0; col < chess.NumColumns; col++ {
			piece, ok := board.PieceAt(chess.Position(row*chess.NumColumns + col))
			if !ok {
				emptyCount++
				continue
			}
			if emptyCount > 0 {
				sb.WriteByte(byte('0' + emptyCount))
				emptyCount = 0
			}
			sb.WriteByte(piece.Letter())
		}
		if emptyCount > 0 {
			sb.WriteByte(byte('0' + emptyCount))
		}
		if row < chess.NumRows-1 {
			sb.WriteByte('/')
		}
	}
}

// writeSideToMove writes the side to move to the builder.
func writeSideToMove(sb *strings.Builder, board *chess.Board) {
	if board.Turn() == chess.White {
		sb.WriteByte('w')
	} else {
		sb.WriteByte('b')
	}
}

// writeCastlingRights writes the castling availability to the builder.
func writeCastlingRights(sb *strings.Builder, board *chess.Board) {
	hasCastling := false
	for _, f := range castlingFlags {
		if board.HasCastlingRights(f.colour, f.kind) {
			sb.WriteByte(f.letter)
			hasCastling = true
		}
	}
	if !hasCastling {
		sb.WriteByte('-')
	}
}

// writeEnPassant writes the en passant target square to the builder.
func writeEnPassant(sb *strings.Builder, board *chess.Board) {
	pawn, ok := board.EnPassantPawn()
	if !ok {
		sb.WriteByte('-')
		return
	}
	// The square the pawn skipped.
	sb.WriteString((pawn.Position - chess.Position(8*pawn.Colour.Direction())).String())
}
