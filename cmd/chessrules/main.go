// chessrules plays, counts and serves chess games under the standard rules.
package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"os/signal"

	"github.com/lgbarn/chessrules-go/internal/config"
	"github.com/lgbarn/chessrules-go/internal/server"
	"github.com/lgbarn/chessrules-go/internal/storage"
)

const programVersion = "0.1.0"

func main() {
	flag.Usage = usage
	flag.Parse()

	if *help {
		usage()
		os.Exit(0)
	}

	if *version {
		fmt.Printf("chessrules version %s\n", programVersion)
		os.Exit(0)
	}

	cfg := config.NewConfig()
	applyFlags(cfg)
	if err := cfg.Validate(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(2)
	}

	os.Exit(run(cfg))
}

// run executes the selected mode and returns the exit code.
func run(cfg *config.Config) int {
	if err := setupOutputFile(cfg); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return 1
	}

	archive, err := openArchive(cfg)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error opening archive %s: %v\n", cfg.Storage.DataDir, err)
		return 1
	}
	if archive != nil {
		defer archive.Close()
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	switch {
	case cfg.Perft.Depth > 0:
		err = runPerft(ctx, cfg)
	case cfg.Server.Addr != "":
		err = runServer(ctx, cfg, archive)
	default:
		err = runInteractive(os.Stdin, cfg, archive)
	}
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return 1
	}
	return 0
}

// setupOutputFile configures the output file based on command-line flags.
func setupOutputFile(cfg *config.Config) error {
	if *outputFile == "" {
		return nil
	}
	file, err := os.Create(*outputFile)
	if err != nil {
		return fmt.Errorf("creating output file %s: %w", *outputFile, err)
	}
	cfg.OutputFile = file
	return nil
}

// openArchive opens the game archive when one is configured.
func openArchive(cfg *config.Config) (*storage.Archive, error) {
	if !cfg.Storage.ArchiveEnabled() {
		return nil, nil
	}
	archive, err := storage.OpenArchive(cfg.Storage.DataDir, cfg.Storage.InMemory)
	if err != nil {
		return nil, err
	}
	if cfg.Verbosity > 1 {
		fmt.Fprintf(cfg.LogFile, "Opened archive %s\n", cfg.Storage.DataDir)
	}
	return archive, nil
}

// runServer serves the API until ctx is cancelled.
func runServer(ctx context.Context, cfg *config.Config, archive *storage.Archive) error {
	srv := server.New(cfg, archive)
	go func() {
		<-ctx.Done()
		srv.Shutdown()
	}()
	return srv.Listen()
}

func usage() {
	fmt.Fprintf(os.Stderr, "Usage: chessrules [options]\n\n")
	fmt.Fprintf(os.Stderr, "Plays chess interactively, counts move paths, or serves games over HTTP.\n\n")
	fmt.Fprintf(os.Stderr, "Options:\n")
	flag.PrintDefaults()
	fmt.Fprintf(os.Stderr, "\nInteractive commands:\n")
	fmt.Fprintf(os.Stderr, "  e2e4, e2-e4  Move by square names\n")
	fmt.Fprintf(os.Stderr, "  52 36        Move by board indices (a8=0, h1=63)\n")
	fmt.Fprintf(os.Stderr, "  undo         Take back the last move\n")
	fmt.Fprintf(os.Stderr, "  moves        List legal moves\n")
	fmt.Fprintf(os.Stderr, "  fen          Print the position in FEN\n")
	fmt.Fprintf(os.Stderr, "  save         Save the board (and archive the game with -db)\n")
	fmt.Fprintf(os.Stderr, "  load ID      Restore an archived game\n")
	fmt.Fprintf(os.Stderr, "  new          Start over\n")
	fmt.Fprintf(os.Stderr, "  quit         Leave\n")
}
