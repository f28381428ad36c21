package server

import (
	"sync"

	"github.com/gofiber/websocket/v2"
	"github.com/google/uuid"
	"golang.org/x/exp/maps"
	"golang.org/x/exp/slices"

	"github.com/lgbarn/chessrules-go/internal/errors"
	"github.com/lgbarn/chessrules-go/internal/game"
)

// session is one live game and the websocket connections watching it.
// mu guards the game and every write to the connections.
type session struct {
	mu    sync.Mutex
	game  *game.Game
	conns map[*websocket.Conn]struct{}
}

// GameManager holds the live games by id.
type GameManager struct {
	games map[string]*session
	mu    sync.RWMutex
}

// NewGameManager creates an empty manager.
func NewGameManager() *GameManager {
	return &GameManager{games: make(map[string]*session)}
}

// Add registers g under a fresh id and returns the id.
func (gm *GameManager) Add(g *game.Game) string {
	id := uuid.New().String()
	gm.Put(id, g)
	return id
}

// Put registers g under id, replacing any game already there.
func (gm *GameManager) Put(id string, g *game.Game) {
	gm.mu.Lock()
	defer gm.mu.Unlock()
	gm.games[id] = &session{game: g, conns: make(map[*websocket.Conn]struct{})}
}

func (gm *GameManager) get(id string) (*session, error) {
	gm.mu.RLock()
	defer gm.mu.RUnlock()
	s, ok := gm.games[id]
	if !ok {
		return nil, errors.Wrapf(errors.ErrGameNotFound, "%s", id)
	}
	return s, nil
}

// With runs fn on the game under id while holding the game's lock.
func (gm *GameManager) With(id string, fn func(g *game.Game) error) error {
	s, err := gm.get(id)
	if err != nil {
		return err
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	return fn(s.game)
}

// Delete drops the game under id.
func (gm *GameManager) Delete(id string) error {
	gm.mu.Lock()
	defer gm.mu.Unlock()
	if _, ok := gm.games[id]; !ok {
		return errors.Wrapf(errors.ErrGameNotFound, "%s", id)
	}
	delete(gm.games, id)
	return nil
}

// IDs returns the live game ids in sorted order.
func (gm *GameManager) IDs() []string {
	gm.mu.RLock()
	ids := maps.Keys(gm.games)
	gm.mu.RUnlock()
	slices.Sort(ids)
	return ids
}
