package config

import (
	"fmt"
	"time"

	"github.com/lgbarn/chessrules-go/internal/errors"
)

// OutputConfig holds settings related to output formatting.
type OutputConfig struct {
	// Format is "text" (board grid and move list) or "json" (snapshots)
	Format string

	// MaxLineLength is the maximum line length for move text
	MaxLineLength int
}

// NewOutputConfig creates an OutputConfig with default values.
func NewOutputConfig() *OutputConfig {
	return &OutputConfig{
		Format:        "text",
		MaxLineLength: 80,
	}
}

// Validate checks that the output configuration is valid.
func (o *OutputConfig) Validate() error {
	if o.Format != "text" && o.Format != "json" {
		return fmt.Errorf("output format %q: %w", o.Format, errors.ErrInvalidConfig)
	}
	if o.MaxLineLength < 0 {
		return fmt.Errorf("max line length %d: %w", o.MaxLineLength, errors.ErrInvalidConfig)
	}
	return nil
}

// ServerConfig holds settings for the HTTP and websocket server.
type ServerConfig struct {
	// Addr is the listen address; empty disables the server
	Addr string

	// AllowOrigins is the CORS origin list, comma separated
	AllowOrigins string

	// Websocket buffer sizes in bytes
	ReadBufferSize  int
	WriteBufferSize int
}

// NewServerConfig creates a ServerConfig with default values.
func NewServerConfig() *ServerConfig {
	return &ServerConfig{
		AllowOrigins:    "*",
		ReadBufferSize:  1024,
		WriteBufferSize: 1024,
	}
}

// Validate checks that the server configuration is valid.
func (s *ServerConfig) Validate() error {
	if s.ReadBufferSize <= 0 || s.WriteBufferSize <= 0 {
		return fmt.Errorf("websocket buffer sizes (%d, %d): %w",
			s.ReadBufferSize, s.WriteBufferSize, errors.ErrInvalidConfig)
	}
	return nil
}

// StorageConfig holds settings for saved games.
type StorageConfig struct {
	// DataDir is the badger archive directory; empty disables the archive
	// unless InMemory is set
	DataDir string

	// SaveFile is where the board grid is saved
	SaveFile string

	// InMemory keeps the archive in memory only
	InMemory bool
}

// NewStorageConfig creates a StorageConfig with default values.
func NewStorageConfig() *StorageConfig {
	return &StorageConfig{
		SaveFile: "save.txt",
	}
}

// ArchiveEnabled reports whether a game archive should be opened.
func (s *StorageConfig) ArchiveEnabled() bool {
	return s.DataDir != "" || s.InMemory
}

// Validate checks that the storage configuration is valid.
func (s *StorageConfig) Validate() error {
	if s.SaveFile == "" {
		return fmt.Errorf("empty save file: %w", errors.ErrInvalidConfig)
	}
	return nil
}

// GameConfig holds settings for new games.
type GameConfig struct {
	// StartFEN is the start position; empty means the standard one
	StartFEN string

	// ClockTime is each side's initial time; zero means untimed
	ClockTime time.Duration

	// Increment is added to a side's clock after each of its moves
	Increment time.Duration
}

// NewGameConfig creates a GameConfig with default values.
// All fields use Go zero values: standard start, no clock.
func NewGameConfig() *GameConfig {
	return &GameConfig{}
}

// Timed reports whether games get clocks.
func (g *GameConfig) Timed() bool {
	return g.ClockTime > 0
}

// Validate checks that the game configuration is valid.
func (g *GameConfig) Validate() error {
	if g.ClockTime < 0 || g.Increment < 0 {
		return fmt.Errorf("clock time %v, increment %v: %w", g.ClockTime, g.Increment, errors.ErrInvalidConfig)
	}
	if g.Increment > 0 && g.ClockTime == 0 {
		return fmt.Errorf("increment %v without clock time: %w", g.Increment, errors.ErrInvalidConfig)
	}
	return nil
}

// PerftConfig holds settings for move path counting.
type PerftConfig struct {
	// Depth is the perft depth; zero disables perft
	Depth int

	// Divide reports per root move counts
	Divide bool

	// Workers is the number of goroutines for divide
	Workers int
}

// NewPerftConfig creates a PerftConfig with default values.
func NewPerftConfig() *PerftConfig {
	return &PerftConfig{
		Workers: 4,
	}
}

// Validate checks that the perft configuration is valid.
func (p *PerftConfig) Validate() error {
	if p.Depth < 0 {
		return fmt.Errorf("perft depth %d: %w", p.Depth, errors.ErrInvalidConfig)
	}
	if p.Workers < 1 {
		return fmt.Errorf("perft workers %d: %w", p.Workers, errors.ErrInvalidConfig)
	}
	return nil
}
