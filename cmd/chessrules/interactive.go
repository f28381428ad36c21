package main

import (
	"bufio"
	stderrors "errors"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/google/uuid"

	"github.com/lgbarn/chessrules-go/internal/chess"
	"github.com/lgbarn/chessrules-go/internal/config"
	"github.com/lgbarn/chessrules-go/internal/errors"
	"github.com/lgbarn/chessrules-go/internal/game"
	"github.com/lgbarn/chessrules-go/internal/output"
	"github.com/lgbarn/chessrules-go/internal/storage"
)

// session is the state of the interactive loop.
type session struct {
	cfg     *config.Config
	id      string
	game    *game.Game
	writer  output.GameWriter
	saver   *storage.FileSaver
	archive *storage.Archive // nil without -db
}

func gameOptions(cfg *config.Config) []game.Option {
	if !cfg.Game.Timed() {
		return nil
	}
	return []game.Option{game.WithClock(cfg.Game.ClockTime, cfg.Game.Increment)}
}

// newGame starts a game from the configured position.
func newGame(cfg *config.Config) (*game.Game, error) {
	if cfg.Game.StartFEN == "" {
		return game.New(gameOptions(cfg)...), nil
	}
	return game.FromFEN(cfg.Game.StartFEN, gameOptions(cfg)...)
}

// runInteractive reads commands from r until quit or end of input, printing
// the game after every change.
func runInteractive(r io.Reader, cfg *config.Config, archive *storage.Archive) error {
	g, err := newGame(cfg)
	if err != nil {
		return err
	}
	writer, err := output.NewGameWriter(cfg.Output.Format, cfg.OutputFile, cfg.Output.MaxLineLength)
	if err != nil {
		return err
	}
	defer writer.Close()

	s := &session{
		cfg:     cfg,
		id:      uuid.New().String(),
		game:    g,
		writer:  writer,
		saver:   storage.NewFileSaver(cfg.Storage.SaveFile),
		archive: archive,
	}
	if err := s.show(); err != nil {
		return err
	}

	scanner := bufio.NewScanner(r)
	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		if line == "" {
			continue
		}
		quit, err := s.execute(line)
		if err != nil {
			if errors.IsFatal(err) {
				return err
			}
			fmt.Fprintf(cfg.OutputFile, "Error: %v\n", err)
			continue
		}
		if quit {
			break
		}
	}
	return scanner.Err()
}

// execute runs one command line and reports whether to stop.
func (s *session) execute(line string) (bool, error) {
	fields := strings.Fields(line)
	switch strings.ToLower(fields[0]) {
	case "quit", "exit", "q":
		return true, nil
	case "undo":
		if _, err := s.game.Undo(); err != nil {
			return false, err
		}
		return false, s.show()
	case "moves":
		return false, s.listMoves()
	case "fen":
		fmt.Fprintln(s.cfg.OutputFile, s.game.FEN())
		return false, nil
	case "save":
		return false, s.save()
	case "load":
		if len(fields) != 2 {
			return false, fmt.Errorf("usage: load ID")
		}
		return false, s.load(fields[1])
	case "new":
		g, err := newGame(s.cfg)
		if err != nil {
			return false, err
		}
		s.game, s.id = g, uuid.New().String()
		return false, s.show()
	}

	from, to, err := parseMoveCommand(fields)
	if err != nil {
		return false, err
	}
	if _, err := s.game.Move(from, to); err != nil {
		return false, err
	}
	return false, s.show()
}

// parseMoveCommand reads "e2e4", "e2-e4", "e2 e4" or "52 36".
func parseMoveCommand(fields []string) (chess.Position, chess.Position, error) {
	switch len(fields) {
	case 1:
		return game.ParseSquares(fields[0])
	case 2:
		from, ferr := strconv.Atoi(fields[0])
		to, terr := strconv.Atoi(fields[1])
		if ferr == nil && terr == nil {
			if !chess.IsValid(from) || !chess.IsValid(to) {
				return 0, 0, errors.Wrapf(errors.ErrInvalidPosition, "indices %d, %d", from, to)
			}
			return chess.Position(from), chess.Position(to), nil
		}
		return game.ParseSquares(fields[0] + fields[1])
	default:
		return 0, 0, fmt.Errorf("unknown command %q", strings.Join(fields, " "))
	}
}

// show prints the game and, once it is over, how it ended.
func (s *session) show() error {
	if err := s.writer.WriteGame("", s.game); err != nil {
		return err
	}
	if err := s.writer.Flush(); err != nil {
		return err
	}
	outcome, err := s.game.Outcome()
	if err != nil {
		return err
	}
	switch {
	case outcome.IsOver():
		fmt.Fprintf(s.cfg.OutputFile, "Game over: %s (%s)\n", outcome.Result, outcome.Reason)
	case s.game.FiftyMoveClaimable():
		fmt.Fprintf(s.cfg.OutputFile, "%s may claim a draw by the fifty-move rule\n", s.game.Board().Turn())
	}
	return nil
}

func (s *session) listMoves() error {
	moves, err := s.game.LegalMoves()
	if err != nil {
		return err
	}
	texts := make([]string, len(moves))
	for i, m := range moves {
		texts[i] = m.String()
	}
	fmt.Fprintln(s.cfg.OutputFile, strings.Join(texts, " "))
	return nil
}

func (s *session) save() error {
	if err := s.saver.Save(s.game.Board()); err != nil {
		return err
	}
	fmt.Fprintf(s.cfg.OutputFile, "Saved board to %s\n", s.saver.Path)
	if s.archive == nil {
		return nil
	}
	if err := s.archive.Save(s.id, s.game); err != nil {
		return err
	}
	fmt.Fprintf(s.cfg.OutputFile, "Archived game %s\n", s.id)
	return nil
}

func (s *session) load(id string) error {
	if s.archive == nil {
		return stderrors.New("no archive configured (use -db)")
	}
	g, err := s.archive.Load(id, gameOptions(s.cfg)...)
	if err != nil {
		return err
	}
	s.game, s.id = g, id
	return s.show()
}
