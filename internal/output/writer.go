package output

import (
	"encoding/json"
	"fmt"
	"io"

	"github.com/lgbarn/chessrules-go/internal/errors"
	"github.com/lgbarn/chessrules-go/internal/game"
)

// Output formats accepted by NewGameWriter.
const (
	FormatText = "text"
	FormatJSON = "json"
)

// GameWriter is the interface for writing game sessions to output.
// Different implementations handle different output formats (text, JSON).
type GameWriter interface {
	// WriteGame writes the current state of a game.
	WriteGame(id string, g *game.Game) error

	// Flush flushes any buffered data to the underlying writer.
	Flush() error

	// Close closes the writer and releases any resources.
	// For batch writers (like JSON), this also writes any pending output.
	Close() error
}

// NewGameWriter returns the writer for format.
func NewGameWriter(format string, w io.Writer, maxLineLength int) (GameWriter, error) {
	switch format {
	case FormatText, "":
		return NewTextWriter(w, maxLineLength), nil
	case FormatJSON:
		return NewJSONWriterSingle(w), nil
	default:
		return nil, errors.Wrapf(errors.ErrInvalidConfig, "unknown output format %q", format)
	}
}

// TextWriter writes the board grid followed by the move text.
type TextWriter struct {
	w             io.Writer
	maxLineLength int
}

// NewTextWriter creates a new text writer.
func NewTextWriter(w io.Writer, maxLineLength int) *TextWriter {
	return &TextWriter{
		w:             w,
		maxLineLength: maxLineLength,
	}
}

// WriteGame writes the board and move list of g.
func (tw *TextWriter) WriteGame(id string, g *game.Game) error {
	if id != "" {
		if _, err := fmt.Fprintf(tw.w, "[%s]\n", id); err != nil {
			return err
		}
	}
	if err := WriteBoard(tw.w, g.Board()); err != nil {
		return err
	}
	return WriteMoveList(tw.w, g, tw.maxLineLength)
}

// Flush flushes the text writer (no-op as it writes immediately).
func (tw *TextWriter) Flush() error {
	return nil
}

// Close closes the text writer.
func (tw *TextWriter) Close() error {
	return nil
}

// JSONWriter writes game snapshots in JSON format.
// It buffers snapshots and writes them as a JSON array on Close or Flush.
type JSONWriter struct {
	w         io.Writer
	snapshots []*Snapshot
	single    bool // If true, write each snapshot immediately instead of batching
}

// NewJSONWriter creates a new JSON writer.
// By default, it batches snapshots and writes them as an array on Close().
func NewJSONWriter(w io.Writer) *JSONWriter {
	return &JSONWriter{
		w:         w,
		snapshots: make([]*Snapshot, 0),
		single:    false,
	}
}

// NewJSONWriterSingle creates a JSON writer that writes each snapshot immediately.
func NewJSONWriterSingle(w io.Writer) *JSONWriter {
	return &JSONWriter{
		w:      w,
		single: true,
	}
}

// WriteGame snapshots g and buffers it (or writes it immediately in single mode).
// The snapshot is taken at call time, so later moves do not leak into it.
func (jw *JSONWriter) WriteGame(id string, g *game.Game) error {
	s, err := NewSnapshot(id, g)
	if err != nil {
		return err
	}
	if jw.single {
		return WriteSnapshotJSON(jw.w, s)
	}

	jw.snapshots = append(jw.snapshots, s)
	return nil
}

// Flush writes all buffered snapshots as a JSON array.
func (jw *JSONWriter) Flush() error {
	if jw.single || len(jw.snapshots) == 0 {
		return nil
	}

	enc := json.NewEncoder(jw.w)
	enc.SetIndent("", "  ")
	err := enc.Encode(&SnapshotList{Games: jw.snapshots})

	// Clear buffer after writing
	jw.snapshots = jw.snapshots[:0]

	return err
}

// Close flushes and closes the JSON writer.
func (jw *JSONWriter) Close() error {
	return jw.Flush()
}
