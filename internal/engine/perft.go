package engine

import (
	"context"

	"golang.org/x/exp/maps"
	"golang.org/x/exp/slices"

	"github.com/lgbarn/chessrules-go/internal/chess"
	"github.com/lgbarn/chessrules-go/internal/worker"
)

// Perft counts the legal move paths of the given depth from board. Depth 0
// counts the board itself.
func Perft(board *chess.Board, depth int) (uint64, error) {
	if depth <= 0 {
		return 1, nil
	}
	player := board.CurrentPlayer()
	var nodes uint64
	for _, m := range player.AvailableMoves() {
		t, err := player.MakeMove(m)
		if err != nil {
			return 0, err
		}
		if !t.Succeeded() {
			continue
		}
		if depth == 1 {
			nodes++
			continue
		}
		n, err := Perft(t.Board, depth-1)
		if err != nil {
			return 0, err
		}
		nodes += n
	}
	return nodes, nil
}

// DivideResult is the perft count below one root move.
type DivideResult struct {
	Move  chess.Move
	Nodes uint64
}

// Divide runs Perft below each legal root move, spreading the root moves
// over workers goroutines. Results are sorted by move text.
func Divide(ctx context.Context, board *chess.Board, depth, workers int) ([]DivideResult, error) {
	if depth <= 0 {
		return nil, nil
	}

	player := board.CurrentPlayer()
	var items []worker.WorkItem
	for _, m := range player.AvailableMoves() {
		t, err := player.MakeMove(m)
		if err != nil {
			return nil, err
		}
		if t.Succeeded() {
			items = append(items, worker.WorkItem{Board: t.Board, Move: t.Move, Depth: depth - 1})
		}
	}

	results, err := worker.Run(ctx, items, perftItem, worker.WithWorkers(workers), worker.WithBufferSize(len(items)))
	if err != nil {
		return nil, err
	}

	byText := make(map[string]DivideResult, len(results))
	for _, r := range results {
		if r.Error != nil {
			return nil, r.Error
		}
		byText[r.Move.String()] = DivideResult{Move: r.Move, Nodes: r.Nodes}
	}
	keys := maps.Keys(byText)
	slices.Sort(keys)

	out := make([]DivideResult, 0, len(keys))
	for _, k := range keys {
		out = append(out, byText[k])
	}
	return out, nil
}

// DivideTotal sums the node counts of a Divide result.
func DivideTotal(results []DivideResult) uint64 {
	var total uint64
	for _, r := range results {
		total += r.Nodes
	}
	return total
}

func perftItem(item worker.WorkItem) worker.ProcessResult {
	n, err := Perft(item.Board, item.Depth)
	return worker.ProcessResult{Move: item.Move, Nodes: n, Board: item.Board, Error: err}
}
