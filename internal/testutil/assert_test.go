package testutil

import (
	"fmt"
	"testing"

	"github.com/lgbarn/chessrules-go/internal/errors"
)

func TestAssertEqual(t *testing.T) {
	AssertEqual(t, "e2e4", "e2e4")
	AssertEqual(t, []string{"O-O", "O-O-O"}, []string{"O-O", "O-O-O"})
	AssertEqual(t, 20, 20, "legal moves from %s", "the initial position")
}

func TestAssertErrors(t *testing.T) {
	AssertNoError(t, nil)
	AssertError(t, errors.ErrIllegalMove, "illegal move")

	wrapped := &errors.MoveError{Err: errors.ErrIllegalMove, From: "e2", To: "e5"}
	AssertErrorIs(t, wrapped, errors.ErrIllegalMove)
	AssertErrorIs(t, fmt.Errorf("replay: %w", errors.ErrGameNotFound), errors.ErrGameNotFound)
}

func TestAssertBool(t *testing.T) {
	AssertTrue(t, true)
	AssertFalse(t, false, "board %d", 1)
}

func TestFormatMessage(t *testing.T) {
	tests := []struct {
		name string
		args []interface{}
		want string
	}{
		{"none", nil, ""},
		{"plain", []interface{}{"after e2e4"}, "after e2e4"},
		{"format", []interface{}{"ply %d", 3}, "ply 3"},
		{"non-string", []interface{}{42}, "42"},
		{"non-string with extra args", []interface{}{42, "x"}, "42"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := formatMessage(tt.args...); got != tt.want {
				t.Errorf("formatMessage(%v) = %q; want %q", tt.args, got, tt.want)
			}
		})
	}
}
