package engine

import (
	"testing"

	"github.com/google/go-cmp/cmp"
	nchess "github.com/notnil/chess"
	"golang.org/x/exp/slices"
)

var oracleFENs = []string{
	InitialFEN,
	"r3k2r/p1ppqpb1/bn2pnp1/3PN3/1p2P3/2N2Q1p/PPPBBPPP/R3K2R w KQkq - 0 1",
	"r3k2r/p1ppqpb1/bn2pnp1/3PN3/1p2P3/2N2Q1p/PPPBBPPP/R3K2R b KQkq - 0 1",
	"8/2p5/3p4/KP5r/1R3p1k/8/4P1P1/8 w - - 0 1",
	"rnbqkbnr/ppp1p1pp/8/3pPp2/8/8/PPPP1PPP/RNBQKBNR w KQkq f6 0 3",
	"r3k2r/8/8/8/8/8/8/R3K2R w KQkq - 0 1",
	"r3k2r/8/8/8/8/8/5n2/R3K2R w KQkq - 0 1",
	"r3k2r/8/8/8/8/8/3p4/R3K2R w KQkq - 0 1",
	"4k3/8/8/8/8/8/4r3/R3K2R w KQ - 0 1",
	"4k3/4r3/8/8/8/8/3B4/4K3 w - - 0 1",
	"rnb1kbnr/pppp1ppp/8/4p3/6Pq/5P2/PPPPP2P/RNBQKBNR w KQkq - 1 3",
	"k7/8/1Q6/8/8/8/8/7K b - - 0 1",
	"7k/5Q2/6K1/8/8/8/8/8 b - - 0 1",
	"8/8/8/8/k2Pp2Q/8/8/3K4 b - d3 0 1",
}

// oracleMoves returns the non-promotion legal moves notnil/chess finds, in
// from-to coordinates.
func oracleMoves(t *testing.T, fen string) ([]string, nchess.Method) {
	t.Helper()
	opt, err := nchess.FEN(fen)
	if err != nil {
		t.Fatalf("notnil FEN(%q) error = %v", fen, err)
	}
	game := nchess.NewGame(opt)
	var moves []string
	for _, m := range game.ValidMoves() {
		if m.Promo() != nchess.NoPieceType {
			continue
		}
		moves = append(moves, m.S1().String()+m.S2().String())
	}
	slices.Sort(moves)
	return moves, game.Position().Status()
}

func TestLegalMovesMatchOracle(t *testing.T) {
	for _, fen := range oracleFENs {
		t.Run(fen, func(t *testing.T) {
			board, err := NewBoardFromFEN(fen)
			if err != nil {
				t.Fatalf("NewBoardFromFEN() error = %v", err)
			}
			legal, err := board.CurrentPlayer().LegalMoves()
			if err != nil {
				t.Fatalf("LegalMoves() error = %v", err)
			}
			var got []string
			for _, m := range legal {
				got = append(got, m.UCI())
			}
			slices.Sort(got)

			want, method := oracleMoves(t, fen)
			if diff := cmp.Diff(want, got); diff != "" {
				t.Errorf("legal moves mismatch (-want +got):\n%s", diff)
			}

			status, err := Status(board)
			if err != nil {
				t.Fatalf("Status() error = %v", err)
			}
			if (status == Checkmate) != (method == nchess.Checkmate) {
				t.Errorf("Status() = %v; oracle says %v", status, method)
			}
			if (status == Stalemate) != (method == nchess.Stalemate) {
				t.Errorf("Status() = %v; oracle says %v", status, method)
			}
		})
	}
}
