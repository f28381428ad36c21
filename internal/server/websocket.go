package server

import (
	"encoding/json"
	"fmt"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/websocket/v2"

	"github.com/lgbarn/chessrules-go/internal/output"
)

// upgradeGame ensures requests to the websocket endpoint are upgrade
// attempts for a live game.
func (s *Server) upgradeGame(c *fiber.Ctx) error {
	if _, err := s.games.get(c.Params("id")); err != nil {
		return s.fail(c, err)
	}
	if !websocket.IsWebSocketUpgrade(c) {
		return fiber.ErrUpgradeRequired
	}
	return c.Next()
}

// handleConnection registers the connection with its game, sends the
// current state and then serves move and undo messages until the peer
// goes away.
func (s *Server) handleConnection(c *websocket.Conn) {
	id := c.Params("id")
	sess, err := s.games.get(id)
	if err != nil {
		s.sendError(c, err)
		c.Close()
		return
	}

	sess.mu.Lock()
	sess.conns[c] = struct{}{}
	snap, err := output.NewSnapshot(id, sess.game)
	if err == nil {
		err = writeState(c, snap)
	}
	sess.mu.Unlock()
	if err != nil {
		s.logger.Printf("game %s: initial state: %v", id, err)
	}

	defer func() {
		sess.mu.Lock()
		delete(sess.conns, c)
		sess.mu.Unlock()
	}()

	for {
		messageType, data, err := c.ReadMessage()
		if err != nil {
			if s.cfg.Verbosity > 1 {
				s.logger.Printf("game %s: read error: %v", id, err)
			}
			return
		}
		if messageType != websocket.TextMessage {
			continue
		}

		var msg Message
		if err := json.Unmarshal(data, &msg); err != nil {
			s.replyError(sess, c, err)
			continue
		}
		if _, err := s.handleMessage(id, msg); err != nil {
			s.replyError(sess, c, err)
		}
	}
}

// handleMessage applies one client message. The resulting state reaches
// every watcher through the broadcast in update.
func (s *Server) handleMessage(id string, msg Message) (*output.Snapshot, error) {
	switch msg.Type {
	case MessageTypeMove:
		var req MoveRequest
		if err := json.Unmarshal(msg.Payload, &req); err != nil {
			return nil, err
		}
		return s.applyMove(id, req)
	case MessageTypeUndo:
		return s.applyUndo(id)
	default:
		return nil, fmt.Errorf("unknown message type: %q", msg.Type)
	}
}

// broadcast pushes snap to every connection of sess. The caller holds sess.mu.
func (s *Server) broadcast(sess *session, snap *output.Snapshot) {
	for conn := range sess.conns {
		if err := writeState(conn, snap); err != nil {
			s.logger.Printf("game %s: write error: %v", snap.ID, err)
		}
	}
}

func writeState(c *websocket.Conn, snap *output.Snapshot) error {
	payload, err := json.Marshal(snap)
	if err != nil {
		return err
	}
	return c.WriteJSON(Message{Type: MessageTypeGameState, Payload: payload})
}

func (s *Server) replyError(sess *session, c *websocket.Conn, err error) {
	sess.mu.Lock()
	defer sess.mu.Unlock()
	s.sendError(c, err)
}

// sendError writes an error message to one connection.
func (s *Server) sendError(c *websocket.Conn, err error) {
	payload, _ := json.Marshal(errorPayload{Error: err.Error()})
	if werr := c.WriteJSON(Message{Type: MessageTypeError, Payload: payload}); werr != nil {
		s.logger.Printf("write error: %v", werr)
	}
}
