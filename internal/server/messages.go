package server

import "encoding/json"

// MessageType represents the different kinds of websocket messages.
type MessageType string

const (
	MessageTypeMove      MessageType = "move"
	MessageTypeUndo      MessageType = "undo"
	MessageTypeGameState MessageType = "gameState"
	MessageTypeError     MessageType = "error"
)

// Message is the websocket envelope in both directions.
type Message struct {
	Type    MessageType     `json:"type"`
	Payload json.RawMessage `json:"payload,omitempty"`
}

// MoveRequest names a move by square names or by board indices.
type MoveRequest struct {
	Move      string `json:"move,omitempty"` // "e2e4"
	From      string `json:"from,omitempty"`
	To        string `json:"to,omitempty"`
	FromIndex *int   `json:"fromIndex,omitempty"`
	ToIndex   *int   `json:"toIndex,omitempty"`
}

// NewGameRequest is the optional body of a game creation request.
type NewGameRequest struct {
	FEN string `json:"fen,omitempty"`
}

// LegalMove describes one legal move of the side to move.
type LegalMove struct {
	From string `json:"from"`
	To   string `json:"to"`
	UCI  string `json:"uci"`
	Text string `json:"text"`
	Kind string `json:"kind"`
}

type errorPayload struct {
	Error string `json:"error"`
}
