// Package config provides configuration for the chessrules tools.
package config

import (
	"io"
	"os"
)

// Config holds all program configuration.
type Config struct {
	Verbosity int // 0=nothing, 1=summary, 2=running commentary

	// Output streams
	OutputFile io.Writer
	LogFile    io.Writer

	Output  OutputConfig
	Server  ServerConfig
	Storage StorageConfig
	Game    GameConfig
	Perft   PerftConfig
}

// NewConfig creates a new Config with default values.
func NewConfig() *Config {
	return &Config{
		Verbosity:  1,
		OutputFile: os.Stdout,
		LogFile:    os.Stderr,
		Output:     *NewOutputConfig(),
		Server:     *NewServerConfig(),
		Storage:    *NewStorageConfig(),
		Game:       *NewGameConfig(),
		Perft:      *NewPerftConfig(),
	}
}

// SetOutput sets the output writer.
func (c *Config) SetOutput(w io.Writer) {
	c.OutputFile = w
}

// SetLog sets the log writer.
func (c *Config) SetLog(w io.Writer) {
	c.LogFile = w
}

// Validate checks every section of the configuration.
func (c *Config) Validate() error {
	validators := []interface{ Validate() error }{
		&c.Output, &c.Server, &c.Storage, &c.Game, &c.Perft,
	}
	for _, v := range validators {
		if err := v.Validate(); err != nil {
			return err
		}
	}
	return nil
}
