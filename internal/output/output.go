// Package output renders boards and game sessions as text and JSON.
package output

import (
	"fmt"
	"io"
	"strconv"

	"github.com/lgbarn/chessrules-go/internal/chess"
	"github.com/lgbarn/chessrules-go/internal/game"
)

// WriteBoard writes the text grid of board exactly as Board.String renders it.
func WriteBoard(w io.Writer, board *chess.Board) error {
	_, err := io.WriteString(w, board.String())
	return err
}

// OutputWriter handles formatted output with line length control.
type OutputWriter struct {
	w             io.Writer
	lineLength    int
	maxLineLength int
	needsSpace    bool
}

// NewOutputWriter creates a new output writer.
func NewOutputWriter(w io.Writer, maxLineLength int) *OutputWriter {
	if maxLineLength <= 0 {
		maxLineLength = 80
	}
	return &OutputWriter{
		w:             w,
		maxLineLength: maxLineLength,
	}
}

// Write writes a string, adding a space separator if needed.
func (o *OutputWriter) Write(s string) {
	if o.needsSpace && len(s) > 0 {
		// Check if we need a new line
		if o.lineLength+1+len(s) > o.maxLineLength {
			fmt.Fprintln(o.w)
			o.lineLength = 0
			o.needsSpace = false
		} else {
			fmt.Fprint(o.w, " ")
			o.lineLength++
		}
	}

	fmt.Fprint(o.w, s)
	o.lineLength += len(s)
	o.needsSpace = true
}

// NewLine starts a new line.
func (o *OutputWriter) NewLine() {
	fmt.Fprintln(o.w)
	o.lineLength = 0
	o.needsSpace = false
}

// WriteMoveList writes the moves of g as numbered move text followed by the
// result token, wrapping lines at maxLineLength.
// A game starting with Black to move opens with "N...".
func WriteMoveList(w io.Writer, g *game.Game, maxLineLength int) error {
	result, err := g.Result()
	if err != nil {
		return err
	}

	o := NewOutputWriter(w, maxLineLength)
	number := g.StartCounters().FullmoveNumber
	for i, m := range g.Moves() {
		if m.Piece.Colour == chess.White {
			o.Write(strconv.Itoa(number) + ".")
		} else if i == 0 {
			o.Write(strconv.Itoa(number) + "...")
		}
		o.Write(m.String())
		if m.Piece.Colour == chess.Black {
			number++
		}
	}
	o.Write(string(result))
	o.NewLine()
	return nil
}
