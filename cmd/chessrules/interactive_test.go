package main

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/lgbarn/chessrules-go/internal/chess"
	"github.com/lgbarn/chessrules-go/internal/config"
	"github.com/lgbarn/chessrules-go/internal/storage"
	"github.com/lgbarn/chessrules-go/internal/testutil"
)

func interactiveConfig(t *testing.T) (*config.Config, *bytes.Buffer) {
	t.Helper()
	var out bytes.Buffer
	cfg := config.NewConfig()
	cfg.SetOutput(&out)
	cfg.SetLog(&out)
	cfg.Storage.SaveFile = filepath.Join(t.TempDir(), "save.txt")
	return cfg, &out
}

func play(t *testing.T, cfg *config.Config, archive *storage.Archive, input string) {
	t.Helper()
	if err := runInteractive(strings.NewReader(input), cfg, archive); err != nil {
		t.Fatalf("runInteractive() error = %v", err)
	}
}

func TestInteractiveMoves(t *testing.T) {
	cfg, out := interactiveConfig(t)
	play(t, cfg, nil, "e2e4\n12 28\nfen\nquit\n")

	want := "rnbqkbnr/pppp1ppp/8/4p3/4P3/8/PPPP1PPP/RNBQKBNR w KQkq e6 0 2"
	if !strings.Contains(out.String(), want) {
		t.Errorf("output missing FEN %q:\n%s", want, out)
	}
	if !strings.Contains(out.String(), "1. e2e4 e7e5 *") {
		t.Errorf("output missing move list:\n%s", out)
	}
}

func TestInteractiveErrorsKeepGoing(t *testing.T) {
	cfg, out := interactiveConfig(t)
	play(t, cfg, nil, "e2e5\nz9z9\nundo\n99 0\nhello world again\ne2-e4\nfen\n")

	if got := strings.Count(out.String(), "Error: "); got != 5 {
		t.Errorf("error lines = %d; want 5:\n%s", got, out)
	}
	if !strings.Contains(out.String(), "b KQkq e3 0 1") {
		t.Errorf("move after errors was not played:\n%s", out)
	}
}

func TestInteractiveUndoAndNew(t *testing.T) {
	cfg, out := interactiveConfig(t)
	play(t, cfg, nil, "g1f3\nundo\nfen\ne2e4\nnew\nfen\n")

	initial := "rnbqkbnr/pppppppp/8/8/8/8/PPPPPPPP/RNBQKBNR w KQkq - 0 1"
	if got := strings.Count(out.String(), initial); got != 2 {
		t.Errorf("initial FEN printed %d times; want 2:\n%s", got, out)
	}
}

func TestInteractiveCheckmate(t *testing.T) {
	cfg, out := interactiveConfig(t)
	play(t, cfg, nil, "f2f3\ne7e5\ng2g4\nd8h4\na2a3\n")

	if !strings.Contains(out.String(), "Game over: 0-1 (checkmate)") {
		t.Errorf("missing game over line:\n%s", out)
	}
	if !strings.Contains(out.String(), "Error: ") {
		t.Errorf("move after mate was accepted:\n%s", out)
	}
}

func TestInteractiveFiftyMoveClaim(t *testing.T) {
	cfg, out := interactiveConfig(t)
	cfg.Game.StartFEN = "4k3/8/8/8/8/8/8/R3K3 w - - 99 80"
	play(t, cfg, nil, "a1a2\n")

	if got := strings.Count(out.String(), "White may claim"); got != 0 {
		t.Errorf("White offered a claim:\n%s", out)
	}
	if !strings.Contains(out.String(), "Black may claim a draw by the fifty-move rule") {
		t.Errorf("missing fifty-move claim:\n%s", out)
	}
}

func TestInteractiveLegalMoves(t *testing.T) {
	cfg, out := interactiveConfig(t)
	cfg.Game.StartFEN = "4k3/8/8/8/8/8/8/4K2R w K - 0 1"
	play(t, cfg, nil, "moves\n")

	for _, m := range []string{"O-O", "h1h8", "e1d1"} {
		if !strings.Contains(out.String(), m) {
			t.Errorf("moves output missing %s:\n%s", m, out)
		}
	}
}

func TestInteractiveSaveWritesBoard(t *testing.T) {
	cfg, _ := interactiveConfig(t)
	play(t, cfg, nil, "e2e4\nsave\n")

	got, err := os.ReadFile(cfg.Storage.SaveFile)
	if err != nil {
		t.Fatalf("ReadFile() error = %v", err)
	}
	board := testutil.MustPlay(t, testutil.MustBoard(t, "rnbqkbnr/pppppppp/8/8/8/8/PPPPPPPP/RNBQKBNR w KQkq - 0 1"), "e2e4")
	if string(got) != board.String()+"\n" {
		t.Errorf("save file =\n%s\nwant\n%s", got, board.String())
	}
}

func TestInteractiveArchiveRoundTrip(t *testing.T) {
	archive, err := storage.OpenArchive("", true)
	if err != nil {
		t.Fatalf("OpenArchive() error = %v", err)
	}
	defer archive.Close()

	cfg, _ := interactiveConfig(t)
	play(t, cfg, archive, "d2d4\nd7d5\nsave\n")

	ids, err := archive.List()
	if err != nil {
		t.Fatalf("List() error = %v", err)
	}
	if len(ids) != 1 {
		t.Fatalf("List() = %v; want one game", ids)
	}

	cfg2, out := interactiveConfig(t)
	play(t, cfg2, archive, "load "+ids[0]+"\nfen\n")
	want := "rnbqkbnr/ppp1pppp/8/3p4/3P4/8/PPP1PPPP/RNBQKBNR w KQkq d6 0 2"
	if !strings.Contains(out.String(), want) {
		t.Errorf("restored game FEN missing %q:\n%s", want, out)
	}
}

func TestInteractiveLoadWithoutArchive(t *testing.T) {
	cfg, out := interactiveConfig(t)
	play(t, cfg, nil, "load abc\n")
	if !strings.Contains(out.String(), "Error: no archive configured") {
		t.Errorf("output = %s", out)
	}
}

func TestInteractiveJSONOutput(t *testing.T) {
	cfg, out := interactiveConfig(t)
	cfg.Output.Format = "json"
	play(t, cfg, nil, "e2e4\n")
	if !strings.Contains(out.String(), `"uci": "e2e4"`) {
		t.Errorf("JSON output missing move:\n%s", out)
	}
}

func TestParseMoveCommand(t *testing.T) {
	tests := []struct {
		fields   []string
		from, to chess.Position
		wantErr  bool
	}{
		{[]string{"e2e4"}, 52, 36, false},
		{[]string{"e2-e4"}, 52, 36, false},
		{[]string{"52", "36"}, 52, 36, false},
		{[]string{"e2", "e4"}, 52, 36, false},
		{[]string{"64", "0"}, 0, 0, true},
		{[]string{"-1", "0"}, 0, 0, true},
		{[]string{"a", "b", "c"}, 0, 0, true},
	}
	for _, tt := range tests {
		t.Run(strings.Join(tt.fields, " "), func(t *testing.T) {
			from, to, err := parseMoveCommand(tt.fields)
			if (err != nil) != tt.wantErr {
				t.Fatalf("parseMoveCommand() error = %v, wantErr %v", err, tt.wantErr)
			}
			if !tt.wantErr && (from != tt.from || to != tt.to) {
				t.Errorf("parseMoveCommand() = %d, %d; want %d, %d", from, to, tt.from, tt.to)
			}
		})
	}
}
