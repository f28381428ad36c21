package hashing

import (
	"github.com/lgbarn/chessrules-go/internal/chess"
)

// ThreefoldRepetition is the occurrence count that ends a game as a draw.
const ThreefoldRepetition = 3

// RepetitionTracker counts how often each position has occurred in a game.
// Positions are pushed in game order so the last one can be popped on undo.
type RepetitionTracker struct {
	counts  map[uint64]int
	history []uint64
}

// NewRepetitionTracker creates an empty tracker.
func NewRepetitionTracker() *RepetitionTracker {
	return &RepetitionTracker{counts: make(map[uint64]int)}
}

// Add records board and returns how many times its position has now occurred.
func (r *RepetitionTracker) Add(board *chess.Board) int {
	key := Key(board)
	r.history = append(r.history, key)
	r.counts[key]++
	return r.counts[key]
}

// Pop forgets the most recently added position. It is a no-op on an empty
// tracker.
func (r *RepetitionTracker) Pop() {
	if len(r.history) == 0 {
		return
	}
	key := r.history[len(r.history)-1]
	r.history = r.history[:len(r.history)-1]
	if r.counts[key]--; r.counts[key] <= 0 {
		delete(r.counts, key)
	}
}

// Count returns how many times board's position has occurred.
func (r *RepetitionTracker) Count(board *chess.Board) int {
	return r.counts[Key(board)]
}

// IsThreefold reports whether the most recent position has occurred at least
// three times.
func (r *RepetitionTracker) IsThreefold() bool {
	if len(r.history) == 0 {
		return false
	}
	return r.counts[r.history[len(r.history)-1]] >= ThreefoldRepetition
}

// Len returns the number of positions added.
func (r *RepetitionTracker) Len() int {
	return len(r.history)
}

// UniqueCount returns the number of distinct positions.
func (r *RepetitionTracker) UniqueCount() int {
	return len(r.counts)
}

// Reset clears the tracker.
func (r *RepetitionTracker) Reset() {
	r.counts = make(map[uint64]int)
	r.history = nil
}
