package server

import (
	"encoding/json"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/utils"
	"golang.org/x/exp/slices"

	"github.com/lgbarn/chessrules-go/internal/chess"
	"github.com/lgbarn/chessrules-go/internal/errors"
	"github.com/lgbarn/chessrules-go/internal/game"
	"github.com/lgbarn/chessrules-go/internal/output"
)

func badRequest(c *fiber.Ctx, err error) error {
	return c.Status(fiber.StatusBadRequest).JSON(errorPayload{Error: err.Error()})
}

func (s *Server) createGame(c *fiber.Ctx) error {
	var req NewGameRequest
	if len(c.Body()) > 0 {
		if err := json.Unmarshal(c.Body(), &req); err != nil {
			return badRequest(c, err)
		}
	}
	fen := req.FEN
	if fen == "" {
		fen = s.cfg.Game.StartFEN
	}

	var g *game.Game
	if fen == "" {
		g = game.New(s.gameOptions()...)
	} else {
		var err error
		if g, err = game.FromFEN(fen, s.gameOptions()...); err != nil {
			return badRequest(c, err)
		}
	}

	if _, err := g.Outcome(); err != nil {
		return badRequest(c, err)
	}

	id := s.games.Add(g)
	snap, err := output.NewSnapshot(id, g)
	if err != nil {
		s.games.Delete(id)
		return s.fail(c, err)
	}
	if s.cfg.Verbosity > 1 {
		s.logger.Printf("game %s created", id)
	}
	return c.Status(fiber.StatusCreated).JSON(snap)
}

func (s *Server) listGames(c *fiber.Ctx) error {
	return c.JSON(fiber.Map{"games": s.games.IDs()})
}

func (s *Server) snapshot(id string) (*output.Snapshot, error) {
	var snap *output.Snapshot
	err := s.games.With(id, func(g *game.Game) error {
		var err error
		snap, err = output.NewSnapshot(id, g)
		return err
	})
	return snap, err
}

func (s *Server) getGame(c *fiber.Ctx) error {
	snap, err := s.snapshot(c.Params("id"))
	if err != nil {
		return s.fail(c, err)
	}
	return c.JSON(snap)
}

func (s *Server) deleteGame(c *fiber.Ctx) error {
	if err := s.games.Delete(c.Params("id")); err != nil {
		return s.fail(c, err)
	}
	return c.SendStatus(fiber.StatusNoContent)
}

func (s *Server) getBoard(c *fiber.Ctx) error {
	var text string
	err := s.games.With(c.Params("id"), func(g *game.Game) error {
		text = g.Board().String()
		return nil
	})
	if err != nil {
		return s.fail(c, err)
	}
	return c.SendString(text)
}

func (s *Server) getLegalMoves(c *fiber.Ctx) error {
	var moves []chess.Move
	err := s.games.With(c.Params("id"), func(g *game.Game) error {
		var err error
		moves, err = g.LegalMoves()
		return err
	})
	if err != nil {
		return s.fail(c, err)
	}
	return c.JSON(fiber.Map{"moves": legalMoveList(moves)})
}

// legalMoveList describes moves sorted by their coordinates.
func legalMoveList(moves []chess.Move) []LegalMove {
	byUCI := make(map[string]chess.Move, len(moves))
	keys := make([]string, 0, len(moves))
	for _, m := range moves {
		byUCI[m.UCI()] = m
		keys = append(keys, m.UCI())
	}
	slices.Sort(keys)

	list := make([]LegalMove, 0, len(keys))
	for _, k := range keys {
		m := byUCI[k]
		list = append(list, LegalMove{
			From: m.Source().String(),
			To:   m.Destination.String(),
			UCI:  k,
			Text: m.String(),
			Kind: m.Kind.String(),
		})
	}
	return list
}

// resolve turns a move request into source and destination squares.
func (r MoveRequest) resolve() (chess.Position, chess.Position, error) {
	switch {
	case r.Move != "":
		return game.ParseSquares(r.Move)
	case r.FromIndex != nil && r.ToIndex != nil:
		from, to := chess.Position(*r.FromIndex), chess.Position(*r.ToIndex)
		if !from.Valid() || !to.Valid() {
			return 0, 0, errors.Wrapf(errors.ErrInvalidPosition, "indices %d, %d", *r.FromIndex, *r.ToIndex)
		}
		return from, to, nil
	default:
		return game.ParseSquares(r.From + r.To)
	}
}

// applyMove plays req on the game under id, pushes the new state to the
// game's websocket watchers and returns it.
func (s *Server) applyMove(id string, req MoveRequest) (*output.Snapshot, error) {
	from, to, err := req.resolve()
	if err != nil {
		return nil, err
	}
	return s.update(id, func(g *game.Game) error {
		_, err := g.Move(from, to)
		return err
	})
}

// applyUndo takes back the last move of the game under id.
func (s *Server) applyUndo(id string) (*output.Snapshot, error) {
	return s.update(id, func(g *game.Game) error {
		_, err := g.Undo()
		return err
	})
}

// update runs fn under the game lock and broadcasts the resulting snapshot.
func (s *Server) update(id string, fn func(g *game.Game) error) (*output.Snapshot, error) {
	sess, err := s.games.get(id)
	if err != nil {
		return nil, err
	}
	sess.mu.Lock()
	defer sess.mu.Unlock()

	if err := fn(sess.game); err != nil {
		return nil, err
	}
	snap, err := output.NewSnapshot(id, sess.game)
	if err != nil {
		return nil, err
	}
	s.broadcast(sess, snap)
	return snap, nil
}

func (s *Server) postMove(c *fiber.Ctx) error {
	var req MoveRequest
	if err := json.Unmarshal(c.Body(), &req); err != nil {
		return badRequest(c, err)
	}
	snap, err := s.applyMove(c.Params("id"), req)
	if err != nil {
		return s.fail(c, err)
	}
	return c.JSON(snap)
}

func (s *Server) postUndo(c *fiber.Ctx) error {
	snap, err := s.applyUndo(c.Params("id"))
	if err != nil {
		return s.fail(c, err)
	}
	return c.JSON(snap)
}

func (s *Server) postSave(c *fiber.Ctx) error {
	id := c.Params("id")
	archived := false
	err := s.games.With(id, func(g *game.Game) error {
		if err := s.saver.Save(g.Board()); err != nil {
			return err
		}
		if s.archive != nil {
			if err := s.archive.Save(id, g); err != nil {
				return err
			}
			archived = true
		}
		return nil
	})
	if err != nil {
		return s.fail(c, err)
	}
	return c.JSON(fiber.Map{"id": id, "file": s.saver.Path, "archived": archived})
}

func (s *Server) archiveDisabled(c *fiber.Ctx) error {
	return c.Status(fiber.StatusNotImplemented).JSON(errorPayload{Error: "archive disabled"})
}

func (s *Server) listArchive(c *fiber.Ctx) error {
	if s.archive == nil {
		return s.archiveDisabled(c)
	}
	ids, err := s.archive.List()
	if err != nil {
		return s.fail(c, err)
	}
	return c.JSON(fiber.Map{"games": ids})
}

func (s *Server) restoreGame(c *fiber.Ctx) error {
	if s.archive == nil {
		return s.archiveDisabled(c)
	}
	// Params aliases the request buffer; the id outlives this request as a map key.
	id := utils.CopyString(c.Params("id"))
	g, err := s.archive.Load(id, s.gameOptions()...)
	if err != nil {
		return s.fail(c, err)
	}
	s.games.Put(id, g)
	snap, err := output.NewSnapshot(id, g)
	if err != nil {
		return s.fail(c, err)
	}
	return c.JSON(snap)
}
