// Package game keeps a chess game session: the board history, move list,
// move counters, repetition counts and optional clocks, on top of the
// immutable boards of package chess.
//
// A Game is not safe for concurrent use.
package game

import (
	"strings"
	"time"

	"golang.org/x/exp/slices"

	"github.com/lgbarn/chessrules-go/internal/chess"
	"github.com/lgbarn/chessrules-go/internal/engine"
	"github.com/lgbarn/chessrules-go/internal/errors"
	"github.com/lgbarn/chessrules-go/internal/hashing"
)

// Game is a sequence of boards linked by legal moves.
type Game struct {
	boards     []*chess.Board // boards[0] is the start position
	moves      []chess.Move   // moves[i] leads from boards[i] to boards[i+1]
	counters   []engine.Clocks
	repetition *hashing.RepetitionTracker

	clocks    [2]*Clock // indexed by chess.Colour; nil when untimed
	increment time.Duration
	now       func() time.Time
}

// Option configures a Game.
type Option func(*Game)

// WithClock gives both sides a clock with initial time, credited with
// increment after each of their moves.
func WithClock(initial, increment time.Duration) Option {
	return func(g *Game) {
		g.clocks[chess.White] = newClock(initial, g.now)
		g.clocks[chess.Black] = newClock(initial, g.now)
		g.increment = increment
	}
}

// withTimeSource replaces time.Now for the clocks. It must precede WithClock.
func withTimeSource(now func() time.Time) Option {
	return func(g *Game) { g.now = now }
}

// New starts a game from the standard position.
func New(opts ...Option) *Game {
	return start(chess.NewStandardBoard(), engine.InitialClocks(), opts)
}

// FromFEN starts a game from a FEN position.
func FromFEN(fen string, opts ...Option) (*Game, error) {
	board, counters, err := engine.ParseFEN(fen)
	if err != nil {
		return nil, err
	}
	return start(board, counters, opts), nil
}

func start(board *chess.Board, counters engine.Clocks, opts []Option) *Game {
	g := &Game{
		boards:     []*chess.Board{board},
		counters:   []engine.Clocks{counters},
		repetition: hashing.NewRepetitionTracker(),
		now:        time.Now,
	}
	for _, opt := range opts {
		opt(g)
	}
	g.repetition.Add(board)
	return g
}

// Board returns the current board.
func (g *Game) Board() *chess.Board {
	return g.boards[len(g.boards)-1]
}

// StartBoard returns the board the game started from.
func (g *Game) StartBoard() *chess.Board {
	return g.boards[0]
}

// Moves returns the moves played so far.
func (g *Game) Moves() []chess.Move {
	return slices.Clone(g.moves)
}

// Ply returns the number of half-moves played.
func (g *Game) Ply() int {
	return len(g.moves)
}

// Counters returns the FEN halfmove clock and fullmove number.
func (g *Game) Counters() engine.Clocks {
	return g.counters[len(g.counters)-1]
}

// FiftyMoveClaimable reports whether the side to move may claim a draw under
// the fifty-move rule. The claim never ends the game by itself.
func (g *Game) FiftyMoveClaimable() bool {
	return engine.CanClaimFiftyMoves(g.Counters())
}

// StartCounters returns the move counters of the start position.
func (g *Game) StartCounters() engine.Clocks {
	return g.counters[0]
}

// FEN returns the current position in FEN.
func (g *Game) FEN() string {
	return engine.BoardToFEN(g.Board(), g.Counters())
}

// StartFEN returns the start position in FEN.
func (g *Game) StartFEN() string {
	return engine.BoardToFEN(g.boards[0], g.counters[0])
}

// Clock returns the clock of colour c, or nil for an untimed game.
func (g *Game) Clock(c chess.Colour) *Clock {
	return g.clocks[c]
}

// LegalMoves returns the legal moves of the side to move.
func (g *Game) LegalMoves() ([]chess.Move, error) {
	return g.Board().CurrentPlayer().LegalMoves()
}

// Status returns the check/mate/stalemate state of the side to move.
func (g *Game) Status() (engine.GameStatus, error) {
	return engine.Status(g.Board())
}

// Outcome decides whether the game is over. Checkmate and stalemate come
// first, then threefold repetition, insufficient material and the clock of
// the side to move.
func (g *Game) Outcome() (Outcome, error) {
	board := g.Board()
	status, err := engine.Status(board)
	if err != nil {
		return Outcome{}, err
	}
	switch {
	case status == engine.Checkmate:
		return winFor(board.Turn().Opposite(), ByCheckmate), nil
	case status == engine.Stalemate:
		return Outcome{Result: Draw, Reason: ByStalemate}, nil
	case g.repetition.IsThreefold():
		return Outcome{Result: Draw, Reason: ByRepetition}, nil
	case engine.HasInsufficientMaterial(board):
		return Outcome{Result: Draw, Reason: ByInsufficientMaterial}, nil
	}
	if c := g.clocks[board.Turn()]; c != nil && c.Flagged() {
		return winFor(board.Turn().Opposite(), ByTimeout), nil
	}
	return Outcome{Result: Ongoing, Reason: NotOver}, nil
}

// Result returns the PGN result token.
func (g *Game) Result() (Result, error) {
	o, err := g.Outcome()
	if err != nil {
		return Ongoing, err
	}
	return o.Result, nil
}

// Move plays the move of the piece on from to to. An unavailable move or one
// that leaves the mover in check fails with ErrIllegalMove inside a
// MoveError; moving after the end fails with ErrGameOver.
func (g *Game) Move(from, to chess.Position) (chess.Move, error) {
	moveErr := func(err error) error {
		return &errors.MoveError{Err: err, Ply: g.Ply() + 1, From: from.String(), To: to.String()}
	}
	if !from.Valid() || !to.Valid() {
		return chess.NoMove, moveErr(errors.ErrInvalidPosition)
	}

	outcome, err := g.Outcome()
	if err != nil {
		return chess.NoMove, err
	}
	if outcome.IsOver() {
		return chess.NoMove, moveErr(errors.ErrGameOver)
	}

	board := g.Board()
	m := chess.CreateMove(board, from, to)
	if m.IsNull() {
		return chess.NoMove, moveErr(errors.ErrIllegalMove)
	}
	t, err := board.CurrentPlayer().MakeMove(m)
	if err != nil {
		return chess.NoMove, err
	}
	if !t.Succeeded() {
		return chess.NoMove, moveErr(errors.Wrap(errors.ErrIllegalMove, t.Status.String()))
	}

	g.boards = append(g.boards, t.Board)
	g.moves = append(g.moves, t.Move)
	g.counters = append(g.counters, g.Counters().Advance(t.Move))
	g.repetition.Add(t.Board)
	g.pressClock(board.Turn())
	return t.Move, nil
}

// MoveAlgebraic plays a move written as two square names, "e2e4" or "e2-e4".
func (g *Game) MoveAlgebraic(text string) (chess.Move, error) {
	from, to, err := ParseSquares(text)
	if err != nil {
		return chess.NoMove, &errors.MoveError{Err: err, Ply: g.Ply() + 1, Move: text}
	}
	return g.Move(from, to)
}

// Undo takes back the last move. Clock time is not given back.
func (g *Game) Undo() (chess.Move, error) {
	if len(g.moves) == 0 {
		return chess.NoMove, errors.ErrNothingToUndo
	}
	last := g.moves[len(g.moves)-1]
	g.boards = g.boards[:len(g.boards)-1]
	g.moves = g.moves[:len(g.moves)-1]
	g.counters = g.counters[:len(g.counters)-1]
	g.repetition.Pop()
	if c := g.clocks[last.Piece.Colour]; c != nil {
		g.clocks[last.Piece.Colour.Opposite()].Stop()
		c.Start()
	}
	return last, nil
}

// pressClock stops the mover's clock, credits the increment and starts the
// opponent's clock.
func (g *Game) pressClock(mover chess.Colour) {
	c := g.clocks[mover]
	if c == nil {
		return
	}
	c.Stop()
	c.Add(g.increment)
	g.clocks[mover.Opposite()].Start()
}

// ParseSquares reads "e2e4" or "e2-e4" into two positions.
func ParseSquares(text string) (chess.Position, chess.Position, error) {
	s := strings.ReplaceAll(strings.TrimSpace(text), "-", "")
	if len(s) != 4 {
		return 0, 0, errors.Wrapf(errors.ErrInvalidPosition, "move %q", text)
	}
	from, err := chess.ParsePosition(s[:2])
	if err != nil {
		return 0, 0, err
	}
	to, err := chess.ParsePosition(s[2:])
	if err != nil {
		return 0, 0, err
	}
	return from, to, nil
}
