// Package server exposes game sessions over REST and websockets.
package server

import (
	stderrors "errors"
	"log"
	"strings"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/gofiber/fiber/v2/middleware/logger"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"github.com/gofiber/websocket/v2"

	"github.com/lgbarn/chessrules-go/internal/config"
	"github.com/lgbarn/chessrules-go/internal/errors"
	"github.com/lgbarn/chessrules-go/internal/game"
	"github.com/lgbarn/chessrules-go/internal/storage"
)

// Server wires the game manager, storage and routes into a fiber app.
type Server struct {
	cfg     *config.Config
	app     *fiber.App
	games   *GameManager
	archive *storage.Archive // nil when archiving is disabled
	saver   *storage.FileSaver
	logger  *log.Logger
}

// New builds a server. archive may be nil.
func New(cfg *config.Config, archive *storage.Archive) *Server {
	s := &Server{
		cfg:     cfg,
		app:     fiber.New(fiber.Config{DisableStartupMessage: cfg.Verbosity < 1}),
		games:   NewGameManager(),
		archive: archive,
		saver:   storage.NewFileSaver(cfg.Storage.SaveFile),
		logger:  log.New(cfg.LogFile, "chessrules: ", log.LstdFlags),
	}
	s.routes()
	return s
}

// App returns the fiber app, for tests and embedding.
func (s *Server) App() *fiber.App {
	return s.app
}

// Games returns the live game manager.
func (s *Server) Games() *GameManager {
	return s.games
}

// Listen serves on the configured address until Shutdown.
func (s *Server) Listen() error {
	s.logger.Printf("listening on %s", s.cfg.Server.Addr)
	return s.app.Listen(s.cfg.Server.Addr)
}

// Shutdown stops the server.
func (s *Server) Shutdown() error {
	return s.app.Shutdown()
}

func (s *Server) routes() {
	s.app.Use(recover.New())
	s.app.Use(cors.New(cors.Config{
		AllowOrigins: s.cfg.Server.AllowOrigins,
		AllowHeaders: "Origin, Content-Type, Accept",
		AllowMethods: "GET, POST, DELETE, OPTIONS",
	}))
	if s.cfg.Verbosity > 1 {
		s.app.Use(logger.New(logger.Config{Output: s.cfg.LogFile}))
	}

	s.app.Get("/ws/games/:id", s.upgradeGame, websocket.New(s.handleConnection, websocket.Config{
		ReadBufferSize:  s.cfg.Server.ReadBufferSize,
		WriteBufferSize: s.cfg.Server.WriteBufferSize,
		Origins:         splitOrigins(s.cfg.Server.AllowOrigins),
	}))

	api := s.app.Group("/api")

	games := api.Group("/games")
	games.Post("/", s.createGame)
	games.Get("/", s.listGames)
	games.Get("/:id", s.getGame)
	games.Delete("/:id", s.deleteGame)
	games.Get("/:id/board", s.getBoard)
	games.Get("/:id/moves", s.getLegalMoves)
	games.Post("/:id/moves", s.postMove)
	games.Post("/:id/undo", s.postUndo)
	games.Post("/:id/save", s.postSave)

	archive := api.Group("/archive")
	archive.Get("/", s.listArchive)
	archive.Post("/:id/restore", s.restoreGame)
}

func splitOrigins(origins string) []string {
	var out []string
	for _, o := range strings.Split(origins, ",") {
		if o = strings.TrimSpace(o); o != "" {
			out = append(out, o)
		}
	}
	return out
}

// gameOptions returns the options new games get from the configuration.
func (s *Server) gameOptions() []game.Option {
	if !s.cfg.Game.Timed() {
		return nil
	}
	return []game.Option{game.WithClock(s.cfg.Game.ClockTime, s.cfg.Game.Increment)}
}

// statusFor maps an error to its HTTP status.
func statusFor(err error) int {
	switch {
	case stderrors.Is(err, errors.ErrGameNotFound):
		return fiber.StatusNotFound
	case stderrors.Is(err, errors.ErrIllegalMove), stderrors.Is(err, errors.ErrGameOver):
		return fiber.StatusUnprocessableEntity
	case stderrors.Is(err, errors.ErrNothingToUndo):
		return fiber.StatusConflict
	case stderrors.Is(err, errors.ErrInvalidFEN), stderrors.Is(err, errors.ErrInvalidPosition):
		return fiber.StatusBadRequest
	default:
		return fiber.StatusInternalServerError
	}
}

func (s *Server) fail(c *fiber.Ctx, err error) error {
	status := statusFor(err)
	if status == fiber.StatusInternalServerError {
		s.logger.Printf("internal error on %s %s: %v", c.Method(), c.Path(), err)
	}
	return c.Status(status).JSON(errorPayload{Error: err.Error()})
}
