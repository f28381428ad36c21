package output

import (
	"encoding/json"
	"io"
	"strings"

	"github.com/lgbarn/chessrules-go/internal/chess"
	"github.com/lgbarn/chessrules-go/internal/game"
)

// Snapshot is the JSON view of a game session.
type Snapshot struct {
	ID                 string         `json:"id,omitempty"`
	FEN                string         `json:"fen"`
	StartFEN           string         `json:"startFEN"`
	Board              string         `json:"board"`
	Turn               string         `json:"turn"` // "white" or "black"
	Status             string         `json:"status"`
	Result             string         `json:"result"`
	Reason             string         `json:"reason,omitempty"`
	FiftyMoveClaimable bool           `json:"fiftyMoveClaimable,omitempty"`
	Ply                int            `json:"ply"`
	Moves              []SnapshotMove `json:"moves"`
	Clocks             *ClockState    `json:"clocks,omitempty"`
}

// SnapshotMove represents a played move in JSON format.
type SnapshotMove struct {
	MoveNumber int    `json:"moveNumber,omitempty"`
	Color      string `json:"color"`
	Text       string `json:"text"`
	UCI        string `json:"uci"`
	Kind       string `json:"kind"`
	From       string `json:"from"`
	To         string `json:"to"`
	Piece      string `json:"piece"`
	Captured   string `json:"captured,omitempty"`
}

// ClockState holds the remaining time of both sides in milliseconds.
type ClockState struct {
	White int64 `json:"white"`
	Black int64 `json:"black"`
}

// SnapshotList holds multiple snapshots for array output.
type SnapshotList struct {
	Games []*Snapshot `json:"games"`
}

// NewSnapshot builds the JSON view of g under the given id.
func NewSnapshot(id string, g *game.Game) (*Snapshot, error) {
	status, err := g.Status()
	if err != nil {
		return nil, err
	}
	outcome, err := g.Outcome()
	if err != nil {
		return nil, err
	}

	board := g.Board()
	s := &Snapshot{
		ID:       id,
		FEN:      g.FEN(),
		StartFEN: g.StartFEN(),
		Board:    board.String(),
		Turn:     colorName(board.Turn()),
		Status:   status.String(),
		Result:   string(outcome.Result),
		Ply:      g.Ply(),
		Moves:    convertMoveList(g),
	}
	if outcome.IsOver() {
		s.Reason = outcome.Reason.String()
	} else {
		s.FiftyMoveClaimable = g.FiftyMoveClaimable()
	}
	if white, black := g.Clock(chess.White), g.Clock(chess.Black); white != nil && black != nil {
		s.Clocks = &ClockState{
			White: white.Remaining().Milliseconds(),
			Black: black.Remaining().Milliseconds(),
		}
	}
	return s, nil
}

// convertMoveList converts the played moves to JSON format.
func convertMoveList(g *game.Game) []SnapshotMove {
	moves := g.Moves()
	result := make([]SnapshotMove, 0, len(moves))

	moveNum := g.StartCounters().FullmoveNumber
	for _, m := range moves {
		sm := SnapshotMove{
			Color: colorName(m.Piece.Colour),
			Text:  m.String(),
			UCI:   m.UCI(),
			Kind:  m.Kind.String(),
			From:  m.Source().String(),
			To:    m.Destination.String(),
			Piece: pieceTypeName(m.Piece.Kind),
		}
		if m.IsAttack() {
			sm.Captured = pieceTypeName(m.Captured.Kind)
		}
		if m.Piece.Colour == chess.White {
			sm.MoveNumber = moveNum
		} else {
			moveNum++
		}
		result = append(result, sm)
	}
	return result
}

// WriteSnapshotJSON writes one snapshot as indented JSON.
func WriteSnapshotJSON(w io.Writer, s *Snapshot) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(s)
}

func colorName(c chess.Colour) string {
	return strings.ToLower(c.String())
}

func pieceTypeName(k chess.Kind) string {
	return strings.ToLower(k.String())
}
