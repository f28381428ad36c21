// flags.go - Command-line flag definitions and configuration
package main

import (
	"flag"

	"github.com/lgbarn/chessrules-go/internal/config"
)

var (
	// Position
	startFEN = flag.String("fen", "", "Start position in FEN (default: standard position)")

	// Perft
	perftDepth = flag.Int("perft", 0, "Count move paths to depth N and exit")
	divide     = flag.Bool("divide", false, "With -perft, report counts per root move")
	workers    = flag.Int("workers", 4, "Goroutines used by -divide")

	// Server
	serveAddr    = flag.String("serve", "", "Serve the REST/websocket API on this address (e.g. :3000)")
	allowOrigins = flag.String("origins", "*", "Allowed CORS origins, comma separated")

	// Storage
	dataDir  = flag.String("db", "", "Game archive directory (badger)")
	saveFile = flag.String("save", "save.txt", "File written by the save command")

	// Clock
	clockTime = flag.Duration("clock", 0, "Initial time per side (e.g. 5m); 0 = untimed")
	increment = flag.Duration("inc", 0, "Increment per move (e.g. 2s)")

	// Output options
	outputFile = flag.String("o", "", "Output file (default: stdout)")
	jsonOutput = flag.Bool("J", false, "Output game state as JSON")
	lineLength = flag.Int("w", 80, "Maximum line length of move text")

	// General
	verbosity = flag.Int("v", 1, "Verbosity: 0=quiet, 1=normal, 2=running commentary")
	quiet     = flag.Bool("s", false, "Silent mode (same as -v 0)")
	help      = flag.Bool("h", false, "Show help")
	version   = flag.Bool("version", false, "Show version")
)

// applyFlags applies command-line flags to the configuration.
func applyFlags(cfg *config.Config) {
	applyOutputFlags(cfg)
	applyGameFlags(cfg)
	applyPerftFlags(cfg)
	applyServerFlags(cfg)
	applyStorageFlags(cfg)

	cfg.Verbosity = *verbosity
	if *quiet {
		cfg.Verbosity = 0
	}
}

// applyOutputFlags configures output format settings.
func applyOutputFlags(cfg *config.Config) {
	if *jsonOutput {
		cfg.Output.Format = "json"
	}
	cfg.Output.MaxLineLength = *lineLength
}

// applyGameFlags configures new games.
func applyGameFlags(cfg *config.Config) {
	cfg.Game.StartFEN = *startFEN
	cfg.Game.ClockTime = *clockTime
	cfg.Game.Increment = *increment
}

// applyPerftFlags configures move path counting.
func applyPerftFlags(cfg *config.Config) {
	cfg.Perft.Depth = *perftDepth
	cfg.Perft.Divide = *divide
	cfg.Perft.Workers = *workers
}

// applyServerFlags configures the API server.
func applyServerFlags(cfg *config.Config) {
	cfg.Server.Addr = *serveAddr
	cfg.Server.AllowOrigins = *allowOrigins
}

// applyStorageFlags configures saving.
func applyStorageFlags(cfg *config.Config) {
	cfg.Storage.DataDir = *dataDir
	cfg.Storage.SaveFile = *saveFile
}
