package engine

import (
	"context"
	"testing"

	"github.com/lgbarn/chessrules-go/internal/chess"
)

var benchFENs = map[string]string{
	"Initial":   "rnbqkbnr/pppppppp/8/8/8/8/PPPPPPPP/RNBQKBNR w KQkq - 0 1",
	"Midgame":   "r1bqkb1r/pppp1ppp/2n2n2/4p3/2B1P3/5N2/PPPP1PPP/RNBQK2R w KQkq - 4 4",
	"Endgame":   "8/5k2/8/8/8/8/5K2/4R3 w - - 0 1",
	"Complex":   "r3k2r/p1ppqpb1/bn2pnp1/3PN3/1p2P3/2N2Q1p/PPPBBPPP/R3K2R w KQkq - 0 1",
	"EnPassant": "rnbqkbnr/pppp1ppp/8/4pP2/8/8/PPPPP1PP/RNBQKBNR w KQkq e6 0 3",
	"Castling":  "r3k2r/pppppppp/8/8/8/8/PPPPPPPP/R3K2R w KQkq - 0 1",
}

func BenchmarkNewBoardFromFEN(b *testing.B) {
	for name, fen := range benchFENs {
		b.Run(name, func(b *testing.B) {
			for i := 0; i < b.N; i++ {
				NewBoardFromFEN(fen)
			}
		})
	}
}

func BenchmarkBoardToFEN(b *testing.B) {
	for name, fen := range benchFENs {
		b.Run(name, func(b *testing.B) {
			board, clocks, _ := ParseFEN(fen)
			b.ResetTimer()
			for i := 0; i < b.N; i++ {
				BoardToFEN(board, clocks)
			}
		})
	}
}

func BenchmarkMakeMove(b *testing.B) {
	cases := []struct {
		name     string
		fen      string
		from, to chess.Position
	}{
		{"PawnMove", benchFENs["Initial"], 52, 36},
		{"PieceMove", benchFENs["Initial"], 62, 45},
		{"KingsideCastle", benchFENs["Castling"], 60, 62},
		{"QueensideCastle", benchFENs["Castling"], 60, 58},
		{"EnPassant", benchFENs["EnPassant"], 29, 20},
	}

	for _, tt := range cases {
		b.Run(tt.name, func(b *testing.B) {
			board, _ := NewBoardFromFEN(tt.fen)
			m := chess.CreateMove(board, tt.from, tt.to)
			if m.IsNull() {
				b.Fatalf("no move %s%s", tt.from, tt.to)
			}
			b.ResetTimer()
			for i := 0; i < b.N; i++ {
				board.CurrentPlayer().MakeMove(m)
			}
		})
	}
}

func BenchmarkLegalMoves(b *testing.B) {
	positions := []string{"Initial", "Midgame", "Endgame", "Complex"}
	for _, name := range positions {
		b.Run(name, func(b *testing.B) {
			board, _ := NewBoardFromFEN(benchFENs[name])
			b.ResetTimer()
			for i := 0; i < b.N; i++ {
				board.CurrentPlayer().LegalMoves()
			}
		})
	}
}

func BenchmarkPerft(b *testing.B) {
	board := NewInitialBoard()
	for i := 0; i < b.N; i++ {
		Perft(board, 2)
	}
}

func BenchmarkDivide(b *testing.B) {
	board := NewInitialBoard()
	for i := 0; i < b.N; i++ {
		Divide(context.Background(), board, 2, 4)
	}
}
