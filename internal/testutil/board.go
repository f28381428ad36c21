package testutil

import (
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/google/go-cmp/cmp/cmpopts"
	"golang.org/x/exp/slices"

	"github.com/lgbarn/chessrules-go/internal/chess"
	"github.com/lgbarn/chessrules-go/internal/engine"
)

// MustBoard parses a FEN string and returns its board.
// It calls t.Fatal if the FEN is rejected.
func MustBoard(t *testing.T, fen string) *chess.Board {
	t.Helper()
	board, err := engine.NewBoardFromFEN(fen)
	if err != nil {
		t.Fatalf("failed to parse FEN %q: %v", fen, err)
	}
	return board
}

// MustPlay plays moves written as square pairs ("e2e4") from board and
// returns the final board. It calls t.Fatal on a malformed or illegal move.
func MustPlay(t *testing.T, board *chess.Board, moves ...string) *chess.Board {
	t.Helper()
	for _, text := range moves {
		if len(text) != 4 {
			t.Fatalf("malformed move %q", text)
		}
		from, err := chess.ParsePosition(text[:2])
		if err != nil {
			t.Fatalf("move %q: %v", text, err)
		}
		to, err := chess.ParsePosition(text[2:])
		if err != nil {
			t.Fatalf("move %q: %v", text, err)
		}
		tr, err := board.CurrentPlayer().MakeMove(chess.CreateMove(board, from, to))
		if err != nil {
			t.Fatalf("move %q: %v", text, err)
		}
		if !tr.Succeeded() {
			t.Fatalf("move %q: %v", text, tr.Status)
		}
		board = tr.Board
	}
	return board
}

// AssertMoves compares the moves against want as sorted square-pair text
// ("e1g1" for a king-side castle), ignoring generation order.
func AssertMoves(t *testing.T, moves []chess.Move, want ...string) {
	t.Helper()
	got := make([]string, len(moves))
	for i, m := range moves {
		got[i] = m.UCI()
	}
	slices.Sort(got)
	want = slices.Clone(want)
	slices.Sort(want)
	if diff := cmp.Diff(want, got, cmpopts.EquateEmpty()); diff != "" {
		t.Errorf("moves mismatch (-want +got):\n%s", diff)
	}
}

// AssertFEN fails unless board and clocks encode to want.
func AssertFEN(t *testing.T, board *chess.Board, clocks engine.Clocks, want string) {
	t.Helper()
	if got := engine.BoardToFEN(board, clocks); got != want {
		t.Errorf("FEN = %q; want %q", got, want)
	}
}
