package hashing

import (
	"testing"

	"github.com/lgbarn/chessrules-go/internal/chess"
	"github.com/lgbarn/chessrules-go/internal/engine"
)

func mustFEN(t *testing.T, fen string) *chess.Board {
	t.Helper()
	board, err := engine.NewBoardFromFEN(fen)
	if err != nil {
		t.Fatalf("NewBoardFromFEN(%q) error = %v", fen, err)
	}
	return board
}

// shuffle plays source/destination pairs from board and returns each board
// reached, the starting one first.
func shuffle(t *testing.T, board *chess.Board, moves ...[2]chess.Position) []*chess.Board {
	t.Helper()
	boards := []*chess.Board{board}
	for _, mv := range moves {
		m := chess.CreateMove(board, mv[0], mv[1])
		tr, err := board.CurrentPlayer().MakeMove(m)
		if err != nil || !tr.Succeeded() {
			t.Fatalf("MakeMove(%s%s) = %v, %v", mv[0], mv[1], tr.Status, err)
		}
		board = tr.Board
		boards = append(boards, board)
	}
	return boards
}

// Nf3 Nf6 Ng1 Ng8
var knightDance = [][2]chess.Position{{62, 45}, {6, 21}, {45, 62}, {21, 6}}

func TestKeyConsistency(t *testing.T) {
	a := chess.NewStandardBoard()
	b := mustFEN(t, engine.InitialFEN)
	if Key(a) != Key(b) {
		t.Errorf("Key() differs for identical boards: %x != %x", Key(a), Key(b))
	}
}

func TestKeyDistinguishes(t *testing.T) {
	tests := []struct {
		name string
		a, b string
	}{
		{
			"placement",
			engine.InitialFEN,
			"rnbqkbnr/pppppppp/8/8/4P3/8/PPPP1PPP/RNBQKBNR w KQkq - 0 1",
		},
		{
			"side to move",
			"4k3/8/8/8/8/8/8/4K3 w - - 0 1",
			"4k3/8/8/8/8/8/8/4K3 b - - 0 1",
		},
		{
			"castling rights",
			"r3k2r/8/8/8/8/8/8/R3K2R w KQkq - 0 1",
			"r3k2r/8/8/8/8/8/8/R3K2R w Kkq - 0 1",
		},
		{
			"capturable en passant",
			"rnbqkbnr/pppp1ppp/8/4pP2/8/8/PPPPP1PP/RNBQKBNR w KQkq e6 0 3",
			"rnbqkbnr/pppp1ppp/8/4pP2/8/8/PPPPP1PP/RNBQKBNR w KQkq - 0 3",
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if Key(mustFEN(t, tt.a)) == Key(mustFEN(t, tt.b)) {
				t.Errorf("Key() equal for %q and %q", tt.a, tt.b)
			}
		})
	}
}

func TestKeyIgnoresUncapturableEnPassant(t *testing.T) {
	with := mustFEN(t, "rnbqkbnr/pppppppp/8/8/4P3/8/PPPP1PPP/RNBQKBNR b KQkq e3 0 1")
	without := mustFEN(t, "rnbqkbnr/pppppppp/8/8/4P3/8/PPPP1PPP/RNBQKBNR b KQkq - 0 1")
	if Key(with) != Key(without) {
		t.Errorf("Key() differs on an en passant square nobody can use")
	}
}

func TestKeyAfterMoveMatchesFEN(t *testing.T) {
	boards := shuffle(t, chess.NewStandardBoard(), [2]chess.Position{52, 36})
	want := mustFEN(t, "rnbqkbnr/pppppppp/8/8/4P3/8/PPPP1PPP/RNBQKBNR b KQkq - 0 1")
	if Key(boards[1]) != Key(want) {
		t.Errorf("Key() after e4 = %x; want %x", Key(boards[1]), Key(want))
	}
}

func TestKeyAfterKingMoveDropsCastling(t *testing.T) {
	start := mustFEN(t, "r3k2r/8/8/8/8/8/8/R3K2R w KQkq - 0 1")
	// Kf1 Kf8 Ke1 Ke8 restores the placement but not the rights.
	boards := shuffle(t, start, [2]chess.Position{60, 61}, [2]chess.Position{4, 5},
		[2]chess.Position{61, 60}, [2]chess.Position{5, 4})
	if Key(boards[0]) == Key(boards[4]) {
		t.Errorf("Key() equal after both kings moved and returned")
	}
	want := mustFEN(t, "r3k2r/8/8/8/8/8/8/R3K2R w - - 4 3")
	if Key(boards[4]) != Key(want) {
		t.Errorf("Key() = %x; want %x", Key(boards[4]), Key(want))
	}
}

func TestRepetitionTracker(t *testing.T) {
	boards := shuffle(t, chess.NewStandardBoard(), append(knightDance, knightDance...)...)

	r := NewRepetitionTracker()
	var counts []int
	for _, b := range boards {
		counts = append(counts, r.Add(b))
	}

	want := []int{1, 1, 1, 1, 2, 2, 2, 2, 3}
	for i := range want {
		if counts[i] != want[i] {
			t.Errorf("Add() #%d = %d; want %d", i, counts[i], want[i])
		}
	}
	if !r.IsThreefold() {
		t.Error("IsThreefold() = false; want true")
	}
	if got := r.Len(); got != 9 {
		t.Errorf("Len() = %d; want 9", got)
	}
	if got := r.UniqueCount(); got != 4 {
		t.Errorf("UniqueCount() = %d; want 4", got)
	}
	if got := r.Count(boards[0]); got != 3 {
		t.Errorf("Count(start) = %d; want 3", got)
	}

	r.Pop()
	if r.IsThreefold() {
		t.Error("IsThreefold() after Pop = true; want false")
	}
	if got := r.Count(boards[0]); got != 2 {
		t.Errorf("Count(start) after Pop = %d; want 2", got)
	}

	r.Reset()
	if r.Len() != 0 || r.UniqueCount() != 0 {
		t.Errorf("after Reset Len() = %d, UniqueCount() = %d; want 0, 0", r.Len(), r.UniqueCount())
	}
}

func TestRepetitionTrackerEmpty(t *testing.T) {
	r := NewRepetitionTracker()
	r.Pop()
	if r.IsThreefold() {
		t.Error("IsThreefold() on empty tracker = true")
	}
	if got := r.Count(chess.NewStandardBoard()); got != 0 {
		t.Errorf("Count() = %d; want 0", got)
	}
}

func TestPopRemovesUniqueEntry(t *testing.T) {
	r := NewRepetitionTracker()
	r.Add(chess.NewStandardBoard())
	r.Pop()
	if got := r.UniqueCount(); got != 0 {
		t.Errorf("UniqueCount() = %d; want 0", got)
	}
}
