// Package errors provides sentinel errors and error types for the chess rules engine.
// Expected rule outcomes (an illegal destination, a move into check) are reported
// through these values; structurally impossible boards are reported through the
// fatal sentinels ErrNoKing and ErrNullMove, which callers must not recover from.
package errors

import (
	"errors"
	"fmt"
	"strings"
)

// Sentinel errors for common failure conditions.
// Use these with errors.Is() to check for specific error types.
var (
	// ErrInvalidFEN indicates a malformed FEN string.
	ErrInvalidFEN = errors.New("invalid FEN string")

	// ErrIllegalMove indicates a move that violates chess rules.
	ErrIllegalMove = errors.New("illegal move")

	// ErrInvalidPosition indicates a board index outside 0..63 or a bad square name.
	ErrInvalidPosition = errors.New("invalid board position")

	// ErrNoKing indicates a board without a king for one side. Fatal.
	ErrNoKing = errors.New("no king on the board")

	// ErrNullMove indicates an attempt to execute the null move. Fatal.
	ErrNullMove = errors.New("cannot execute the null move")

	// ErrInvalidConfig indicates invalid configuration values.
	ErrInvalidConfig = errors.New("invalid configuration")

	// ErrGameNotFound indicates an unknown game id.
	ErrGameNotFound = errors.New("game not found")

	// ErrGameOver indicates a move attempted after the game has ended.
	ErrGameOver = errors.New("game is over")

	// ErrNothingToUndo indicates an undo request at the start of a game.
	ErrNothingToUndo = errors.New("nothing to undo")
)

// IsFatal reports whether err signals a corrupted board or a programming error
// rather than an ordinary rule violation.
func IsFatal(err error) bool {
	return errors.Is(err, ErrNoKing) || errors.Is(err, ErrNullMove)
}

// MoveError wraps errors with move context: the ply at which the move was
// attempted and the squares or text the user supplied.
type MoveError struct {
	Err  error  // The underlying error
	Ply  int    // Ply number where the error occurred (0 if not applicable)
	From string // Source square (if known)
	To   string // Destination square (if known)
	Move string // The move text as entered (if applicable)
}

// Error returns a formatted error message including all available context.
func (e *MoveError) Error() string {
	var parts []string

	if e.Ply > 0 {
		parts = append(parts, fmt.Sprintf("ply %d", e.Ply))
	}

	if e.From != "" || e.To != "" {
		parts = append(parts, fmt.Sprintf("%s-%s", e.From, e.To))
	}

	if e.Move != "" {
		parts = append(parts, fmt.Sprintf("move %q", e.Move))
	}

	context := strings.Join(parts, ", ")
	if context == "" {
		if e.Err != nil {
			return e.Err.Error()
		}
		return "move error"
	}

	if e.Err != nil {
		return fmt.Sprintf("%s: %v", context, e.Err)
	}
	return context
}

// Unwrap returns the underlying error, enabling errors.Is() and errors.As()
// to work through the MoveError wrapper.
func (e *MoveError) Unwrap() error {
	return e.Err
}

// FENError represents a FEN parsing error with the offending field.
type FENError struct {
	Err   error  // The underlying error
	Field string // FEN field name (placement, side, castling, en passant, clocks)
	Got   string // What was found instead
}

// Error returns a formatted error message with field context.
func (e *FENError) Error() string {
	var parts []string
	if e.Field != "" {
		parts = append(parts, e.Field)
	}
	if e.Got != "" {
		parts = append(parts, fmt.Sprintf("unexpected %q", e.Got))
	}

	if e.Err != nil {
		if len(parts) > 0 {
			return fmt.Sprintf("%s: %v", strings.Join(parts, ": "), e.Err)
		}
		return e.Err.Error()
	}

	if len(parts) > 0 {
		return strings.Join(parts, ": ")
	}
	return "FEN error"
}

// Unwrap returns the underlying error.
func (e *FENError) Unwrap() error {
	return e.Err
}

// Wrap adds context to an error while preserving the underlying error
// for inspection with errors.Is() and errors.As().
func Wrap(err error, context string) error {
	if err == nil {
		return nil
	}
	return fmt.Errorf("%s: %w", context, err)
}

// Wrapf adds formatted context to an error while preserving the underlying
// error for inspection with errors.Is() and errors.As().
func Wrapf(err error, format string, args ...interface{}) error {
	if err == nil {
		return nil
	}
	return Wrap(err, fmt.Sprintf(format, args...))
}
