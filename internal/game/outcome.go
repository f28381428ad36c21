package game

import "github.com/lgbarn/chessrules-go/internal/chess"

// Result is the PGN result token of a game.
type Result string

const (
	Ongoing   Result = "*"
	WhiteWins Result = "1-0"
	BlackWins Result = "0-1"
	Draw      Result = "1/2-1/2"
)

// Reason explains how a game ended.
type Reason int

const (
	NotOver Reason = iota
	ByCheckmate
	ByStalemate
	ByRepetition
	ByInsufficientMaterial
	ByTimeout
)

var reasonNames = []string{
	NotOver:                "not over",
	ByCheckmate:            "checkmate",
	ByStalemate:            "stalemate",
	ByRepetition:           "threefold repetition",
	ByInsufficientMaterial: "insufficient material",
	ByTimeout:              "timeout",
}

// String returns the reason in words.
func (r Reason) String() string {
	if r < 0 || int(r) >= len(reasonNames) {
		return "unknown"
	}
	return reasonNames[r]
}

// Outcome is the result of a game together with its reason.
type Outcome struct {
	Result Result
	Reason Reason
}

// IsOver reports whether the game has ended.
func (o Outcome) IsOver() bool {
	return o.Result != Ongoing
}

func winFor(c chess.Colour, reason Reason) Outcome {
	if c == chess.White {
		return Outcome{Result: WhiteWins, Reason: reason}
	}
	return Outcome{Result: BlackWins, Reason: reason}
}
