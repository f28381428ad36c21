package main

import (
	"context"
	"fmt"
	"time"

	"github.com/lgbarn/chessrules-go/internal/chess"
	"github.com/lgbarn/chessrules-go/internal/config"
	"github.com/lgbarn/chessrules-go/internal/engine"
)

// startBoard returns the configured start position.
func startBoard(cfg *config.Config) (*chess.Board, error) {
	if cfg.Game.StartFEN == "" {
		return engine.NewInitialBoard(), nil
	}
	return engine.NewBoardFromFEN(cfg.Game.StartFEN)
}

// runPerft counts move paths from the start position.
func runPerft(ctx context.Context, cfg *config.Config) error {
	board, err := startBoard(cfg)
	if err != nil {
		return err
	}
	depth := cfg.Perft.Depth
	start := time.Now()

	var nodes uint64
	if cfg.Perft.Divide {
		results, err := engine.Divide(ctx, board, depth, cfg.Perft.Workers)
		if err != nil {
			return err
		}
		for _, r := range results {
			fmt.Fprintf(cfg.OutputFile, "%s: %d\n", r.Move.UCI(), r.Nodes)
		}
		nodes = engine.DivideTotal(results)
		fmt.Fprintf(cfg.OutputFile, "\nNodes searched: %d\n", nodes)
	} else {
		if nodes, err = engine.Perft(board, depth); err != nil {
			return err
		}
		fmt.Fprintf(cfg.OutputFile, "perft(%d) = %d\n", depth, nodes)
	}

	if cfg.Verbosity > 1 {
		elapsed := time.Since(start)
		fmt.Fprintf(cfg.LogFile, "%d nodes in %v (%.0f nodes/s)\n", nodes, elapsed, float64(nodes)/elapsed.Seconds())
	}
	return nil
}
