// Package storage persists games: a plain text save file holding the board
// grid, and a badger-backed archive of game records that can be replayed.
package storage

import (
	"os"
	"path/filepath"

	"github.com/lgbarn/chessrules-go/internal/chess"
	"github.com/lgbarn/chessrules-go/internal/output"
)

// DefaultSaveFile is the file FileSaver writes when no path is given.
const DefaultSaveFile = "save.txt"

// FileSaver writes the board grid to a text file.
type FileSaver struct {
	Path string
}

// NewFileSaver creates a saver for path, or DefaultSaveFile when path is empty.
func NewFileSaver(path string) *FileSaver {
	if path == "" {
		path = DefaultSaveFile
	}
	return &FileSaver{Path: path}
}

// Save replaces the file contents with the grid of board followed by a line
// terminator, creating the file and its directory if needed.
func (s *FileSaver) Save(board *chess.Board) error {
	if dir := filepath.Dir(s.Path); dir != "." {
		if err := os.MkdirAll(dir, 0755); err != nil {
			return err
		}
	}
	f, err := os.Create(s.Path)
	if err != nil {
		return err
	}
	if err := output.WriteBoard(f, board); err != nil {
		f.Close()
		return err
	}
	if _, err := f.WriteString("\n"); err != nil {
		f.Close()
		return err
	}
	return f.Close()
}
