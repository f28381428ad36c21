package game

import (
	stderrors "errors"
	"testing"
	"time"

	"github.com/lgbarn/chessrules-go/internal/chess"
	"github.com/lgbarn/chessrules-go/internal/engine"
	"github.com/lgbarn/chessrules-go/internal/errors"
	"github.com/lgbarn/chessrules-go/internal/testutil"
)

func play(t *testing.T, g *Game, moves ...string) {
	t.Helper()
	for _, mv := range moves {
		if _, err := g.MoveAlgebraic(mv); err != nil {
			t.Fatalf("MoveAlgebraic(%q) error = %v", mv, err)
		}
	}
}

func outcome(t *testing.T, g *Game) Outcome {
	t.Helper()
	o, err := g.Outcome()
	if err != nil {
		t.Fatalf("Outcome() error = %v", err)
	}
	return o
}

func mustFromFEN(t *testing.T, fen string, opts ...Option) *Game {
	t.Helper()
	g, err := FromFEN(fen, opts...)
	if err != nil {
		t.Fatalf("FromFEN(%q) error = %v", fen, err)
	}
	return g
}

func TestNewGame(t *testing.T) {
	g := New()
	testutil.AssertEqual(t, g.Ply(), 0)
	testutil.AssertEqual(t, g.FEN(), engine.InitialFEN)
	testutil.AssertEqual(t, g.StartFEN(), engine.InitialFEN)
	testutil.AssertEqual(t, outcome(t, g), Outcome{Result: Ongoing, Reason: NotOver})
	testutil.AssertTrue(t, g.Clock(chess.White) == nil, "untimed game has a clock")

	legal, err := g.LegalMoves()
	testutil.AssertNoError(t, err)
	testutil.AssertEqual(t, len(legal), 20)
}

func TestLegalMovesFromFEN(t *testing.T) {
	g := mustFromFEN(t, "4k3/8/8/3pP3/8/8/8/4K3 w - d6 0 1")
	legal, err := g.LegalMoves()
	testutil.AssertNoError(t, err)
	testutil.AssertMoves(t, legal, "e1d1", "e1d2", "e1e2", "e1f1", "e1f2", "e5e6", "e5d6")
}

func TestFromFENInvalid(t *testing.T) {
	_, err := FromFEN("not a fen")
	testutil.AssertErrorIs(t, err, errors.ErrInvalidFEN)
}

func TestMoveUpdatesState(t *testing.T) {
	g := New()
	m, err := g.MoveAlgebraic("e2e4")
	testutil.AssertNoError(t, err)
	testutil.AssertEqual(t, m.Kind, chess.PawnJump)
	testutil.AssertEqual(t, g.Ply(), 1)
	testutil.AssertEqual(t, g.FEN(), "rnbqkbnr/pppppppp/8/8/4P3/8/PPPP1PPP/RNBQKBNR b KQkq e3 0 1")

	play(t, g, "e7-e5", "g1f3")
	testutil.AssertEqual(t, g.Counters(), engine.Clocks{HalfmoveClock: 1, FullmoveNumber: 2})
	testutil.AssertEqual(t, len(g.Moves()), 3)
	testutil.AssertEqual(t, g.StartFEN(), engine.InitialFEN)
}

func TestIllegalMoves(t *testing.T) {
	tests := []struct {
		name     string
		fen      string
		move     string
		wantErr  error
		wantFrom string
		wantTo   string
	}{
		{"pawn three squares", engine.InitialFEN, "e2e5", errors.ErrIllegalMove, "e2", "e5"},
		{"empty square", engine.InitialFEN, "e4e5", errors.ErrIllegalMove, "e4", "e5"},
		{"opponent piece", engine.InitialFEN, "e7e5", errors.ErrIllegalMove, "e7", "e5"},
		{"pinned bishop", "4k3/4r3/8/8/8/8/4B3/4K3 w - - 0 1", "e2d3", errors.ErrIllegalMove, "e2", "d3"},
		{"king into check", "4k3/8/8/8/8/8/3r4/7K w - - 0 1", "h1h2", errors.ErrIllegalMove, "h1", "h2"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			g := mustFromFEN(t, tt.fen)
			before := g.FEN()
			_, err := g.MoveAlgebraic(tt.move)
			if !stderrors.Is(err, tt.wantErr) {
				t.Fatalf("MoveAlgebraic(%q) error = %v; want %v", tt.move, err, tt.wantErr)
			}
			var me *errors.MoveError
			if !stderrors.As(err, &me) {
				t.Fatalf("error %v is not a MoveError", err)
			}
			testutil.AssertEqual(t, me.Ply, 1)
			testutil.AssertEqual(t, me.From, tt.wantFrom)
			testutil.AssertEqual(t, me.To, tt.wantTo)
			testutil.AssertEqual(t, g.FEN(), before, "board must not change")
			testutil.AssertEqual(t, g.Ply(), 0)
		})
	}
}

func TestMoveOffBoard(t *testing.T) {
	g := New()
	_, err := g.Move(52, 64)
	testutil.AssertErrorIs(t, err, errors.ErrInvalidPosition)
}

func TestMoveAlgebraicMalformed(t *testing.T) {
	g := New()
	for _, text := range []string{"", "e2", "e2e4e6", "i2e4", "e9e4"} {
		_, err := g.MoveAlgebraic(text)
		testutil.AssertErrorIs(t, err, errors.ErrInvalidPosition)
	}
}

func TestParseSquares(t *testing.T) {
	tests := []struct {
		text     string
		from, to chess.Position
	}{
		{"e2e4", 52, 36},
		{"e2-e4", 52, 36},
		{" a8h1 ", 0, 63},
		{"G1F3", 62, 45},
	}
	for _, tt := range tests {
		t.Run(tt.text, func(t *testing.T) {
			from, to, err := ParseSquares(tt.text)
			testutil.AssertNoError(t, err)
			if from != tt.from || to != tt.to {
				t.Errorf("ParseSquares(%q) = %d, %d; want %d, %d", tt.text, from, to, tt.from, tt.to)
			}
		})
	}
}

func TestCheckmateEndsGame(t *testing.T) {
	g := New()
	play(t, g, "f2f3", "e7e5", "g2g4", "d8h4")

	testutil.AssertEqual(t, outcome(t, g), Outcome{Result: BlackWins, Reason: ByCheckmate})
	status, err := g.Status()
	testutil.AssertNoError(t, err)
	testutil.AssertEqual(t, status, engine.Checkmate)

	_, err = g.MoveAlgebraic("a2a3")
	testutil.AssertErrorIs(t, err, errors.ErrGameOver)
}

func TestUndo(t *testing.T) {
	g := New()
	if _, err := g.Undo(); !stderrors.Is(err, errors.ErrNothingToUndo) {
		t.Fatalf("Undo() at start error = %v; want ErrNothingToUndo", err)
	}

	play(t, g, "f2f3", "e7e5", "g2g4", "d8h4")
	m, err := g.Undo()
	testutil.AssertNoError(t, err)
	testutil.AssertEqual(t, m.UCI(), "d8h4")
	testutil.AssertEqual(t, outcome(t, g).Result, Ongoing)
	testutil.AssertEqual(t, g.FEN(), "rnbqkbnr/pppp1ppp/8/4p3/6P1/5P2/PPPPP2P/RNBQKBNR b KQkq g3 0 2")

	for g.Ply() > 0 {
		if _, err := g.Undo(); err != nil {
			t.Fatalf("Undo() error = %v", err)
		}
	}
	testutil.AssertEqual(t, g.FEN(), engine.InitialFEN)
}

func TestThreefoldRepetition(t *testing.T) {
	dance := []string{"g1f3", "g8f6", "f3g1", "f6g8"}
	g := New()
	play(t, g, dance...)
	play(t, g, dance[:3]...)
	testutil.AssertEqual(t, outcome(t, g).Result, Ongoing)

	play(t, g, dance[3])
	testutil.AssertEqual(t, outcome(t, g), Outcome{Result: Draw, Reason: ByRepetition})
	_, err := g.MoveAlgebraic("e2e4")
	testutil.AssertErrorIs(t, err, errors.ErrGameOver)

	if _, err := g.Undo(); err != nil {
		t.Fatalf("Undo() error = %v", err)
	}
	testutil.AssertEqual(t, outcome(t, g).Result, Ongoing)
}

func TestDrawOutcomes(t *testing.T) {
	tests := []struct {
		name  string
		fen   string
		moves []string
		want  Outcome
	}{
		{"stalemate", "k7/8/1Q6/8/8/8/8/7K b - - 0 1", nil, Outcome{Draw, ByStalemate}},
		{"bare kings", "4k3/8/8/8/8/8/8/4K3 w - - 0 1", nil, Outcome{Draw, ByInsufficientMaterial}},
		{"capture leaves bare kings", "4k3/8/8/8/8/8/3r4/4K3 w - - 0 1", []string{"e1d2"}, Outcome{Draw, ByInsufficientMaterial}},
		{"rook still on", "4k3/8/8/8/8/8/3r4/4K3 w - - 0 1", nil, Outcome{Ongoing, NotOver}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			g := mustFromFEN(t, tt.fen)
			play(t, g, tt.moves...)
			testutil.AssertEqual(t, outcome(t, g), tt.want)
		})
	}
}

func TestFiftyMoveClaimable(t *testing.T) {
	g := mustFromFEN(t, "4k3/8/8/8/8/8/8/R3K3 w - - 98 80")
	testutil.AssertFalse(t, g.FiftyMoveClaimable())

	play(t, g, "a1a2")
	testutil.AssertFalse(t, g.FiftyMoveClaimable())
	play(t, g, "e8d8")
	testutil.AssertTrue(t, g.FiftyMoveClaimable(), "halfmove clock %d", g.Counters().HalfmoveClock)
	testutil.AssertEqual(t, outcome(t, g).Result, Ongoing)

	play(t, g, "a2d2")
	testutil.AssertTrue(t, g.FiftyMoveClaimable())

	_, err := g.Undo()
	testutil.AssertNoError(t, err)
	_, err = g.Undo()
	testutil.AssertNoError(t, err)
	testutil.AssertFalse(t, g.FiftyMoveClaimable())
}

func TestResultTokens(t *testing.T) {
	g := New()
	r, err := g.Result()
	testutil.AssertNoError(t, err)
	testutil.AssertEqual(t, r, Ongoing)
	testutil.AssertEqual(t, string(r), "*")

	play(t, g, "f2f3", "e7e5", "g2g4", "d8h4")
	r, err = g.Result()
	testutil.AssertNoError(t, err)
	testutil.AssertEqual(t, string(r), "0-1")
}

func TestReasonString(t *testing.T) {
	testutil.AssertEqual(t, ByRepetition.String(), "threefold repetition")
	testutil.AssertEqual(t, Reason(99).String(), "unknown")
}

type fakeTime struct{ t time.Time }

func (f *fakeTime) now() time.Time { return f.t }

func (f *fakeTime) advance(d time.Duration) { f.t = f.t.Add(d) }

func TestClocks(t *testing.T) {
	ft := &fakeTime{t: time.Date(2024, 1, 1, 12, 0, 0, 0, time.UTC)}
	g := New(withTimeSource(ft.now), WithClock(10*time.Second, 2*time.Second))
	white, black := g.Clock(chess.White), g.Clock(chess.Black)

	ft.advance(3 * time.Second)
	play(t, g, "e2e4")
	testutil.AssertEqual(t, white.Remaining(), 12*time.Second)
	testutil.AssertTrue(t, black.Running(), "black clock runs after white moves")

	ft.advance(4 * time.Second)
	testutil.AssertEqual(t, black.Remaining(), 6*time.Second)
	play(t, g, "e7e5")
	testutil.AssertEqual(t, black.Remaining(), 8*time.Second)
	testutil.AssertFalse(t, black.Running())

	ft.advance(13 * time.Second)
	testutil.AssertTrue(t, white.Flagged())
	testutil.AssertEqual(t, outcome(t, g), Outcome{Result: BlackWins, Reason: ByTimeout})
	_, err := g.MoveAlgebraic("g1f3")
	testutil.AssertErrorIs(t, err, errors.ErrGameOver)
}

func TestClockStartStop(t *testing.T) {
	ft := &fakeTime{t: time.Unix(0, 0)}
	c := newClock(time.Minute, ft.now)

	c.Stop()
	testutil.AssertEqual(t, c.Remaining(), time.Minute)

	c.Start()
	ft.advance(10 * time.Second)
	c.Start()
	ft.advance(5 * time.Second)
	c.Stop()
	testutil.AssertEqual(t, c.Remaining(), 45*time.Second)

	c.Add(5 * time.Second)
	testutil.AssertEqual(t, c.Remaining(), 50*time.Second)
	testutil.AssertFalse(t, c.Flagged())
}
