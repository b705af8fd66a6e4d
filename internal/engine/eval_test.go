package engine

import (
	"testing"

	"github.com/hailam/chesscore/internal/board"
)

func TestEvaluateStartingPosition(t *testing.T) {
	if got := Evaluate(board.NewPosition(), 0); got != 0 {
		t.Errorf("Evaluate(start) = %d, want 0", got)
	}
}

func TestEvaluateSymmetry(t *testing.T) {
	fens := []string{
		board.StartFEN,
		"r3k2r/p1ppqpb1/bn2pnp1/3PN3/1p2P3/2N2Q1p/PPPBBPPP/R3K2R w KQkq - 0 1",
		"8/2p5/3p4/KP5r/1R3p1k/8/4P1P1/8 w - - 0 1",
		"rnbqkbnr/ppp1p1pp/8/3pPp2/8/8/PPPP1PPP/RNBQKBNR w KQkq f6 0 3",
		"r1bq1rk1/pp2bppp/2n1pn2/3p4/2PP4/2N2N2/PP2BPPP/R2QKB1R w KQ - 0 8",
		"R6k/6pp/8/8/8/8/8/K7 b - - 0 1",
		"7k/5Q2/6K1/8/8/8/8/8 b - - 0 1",
		"r7/8/8/8/8/8/8/4K2R b - - 0 1",
	}

	for _, fen := range fens {
		pos := board.MustParseFEN(fen)
		for _, depth := range []int{0, 3} {
			got := Evaluate(pos, depth)
			mirrored := Evaluate(pos.Mirror(), depth)
			if got != -mirrored {
				t.Errorf("%s depth %d: eval %d, mirrored %d", fen, depth, got, mirrored)
			}
		}
	}
}

func TestEvaluateTerminal(t *testing.T) {
	tests := []struct {
		name  string
		fen   string
		depth int
		want  int
	}{
		{"black mated", "R6k/6pp/8/8/8/8/8/K7 b - - 0 1", 2, MateScore + 2},
		{"white mated", "7q/8/8/8/8/5k2/6r1/7K w - - 0 1", 1, -(MateScore + 1)},
		{"stalemate", "7k/5Q2/6K1/8/8/8/8/8 b - - 0 1", 4, 0},
		{"white stalemated, black to move", "k5r1/8/8/8/8/7p/7P/7K b - - 0 1", 0, 0},
		{"black stalemated, white to move", "7k/5Q2/6K1/8/8/8/8/8 w - - 0 1", 2, 0},
		{"white mated, black to move", "7q/8/8/8/8/5k2/6r1/7K b - - 0 1", 3, -(MateScore + 3)},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			if got := Evaluate(board.MustParseFEN(tc.fen), tc.depth); got != tc.want {
				t.Errorf("Evaluate = %d, want %d", got, tc.want)
			}
		})
	}
}

func TestGameOverEitherSide(t *testing.T) {
	pos := board.MustParseFEN("k5r1/8/8/8/8/7p/7P/7K b - - 0 1")
	for _, p := range []*board.Position{pos, pos.Mirror()} {
		score, over := GameOver(p, 2)
		if !over || score != 0 {
			t.Errorf("%s: GameOver = %d, %v; want 0, true", p.ToFEN(), score, over)
		}
	}

	if _, over := GameOver(board.NewPosition(), 2); over {
		t.Error("starting position reported as finished")
	}
}

func TestEvaluateMaterial(t *testing.T) {
	// Same structure, white has an extra knight on a quiet square.
	base := board.MustParseFEN("4k3/pppp4/8/8/8/8/PPPP4/4K3 w - - 0 1")
	extra := board.MustParseFEN("4k3/pppp4/8/8/8/8/PPPP4/4K1N1 w - - 0 1")
	if Evaluate(extra, 0) <= Evaluate(base, 0)+200 {
		t.Errorf("extra knight worth %d", Evaluate(extra, 0)-Evaluate(base, 0))
	}
}

func TestPawnStructure(t *testing.T) {
	tests := []struct {
		name  string
		files [8]int
		want  int
	}{
		{"none", [8]int{}, 0},
		{"full row", [8]int{1, 1, 1, 1, 1, 1, 1, 1}, -10},
		{"doubled isolated", [8]int{0, 0, 2, 0, 0, 0, 0, 0}, -30 - 30 - 10},
		{"edge isolated", [8]int{1, 0, 0, 0, 0, 0, 0, 0}, -30 - 10},
		{"two islands", [8]int{1, 1, 0, 0, 1, 1, 1, 0}, -20},
		{"tripled pair", [8]int{3, 1, 0, 0, 0, 0, 0, 0}, -45 - 10},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			if got := pawnStructure(&tc.files); got != tc.want {
				t.Errorf("pawnStructure(%v) = %d, want %d", tc.files, got, tc.want)
			}
		})
	}
}

func TestKingTableByPhase(t *testing.T) {
	// Without queens the king is scored with the endgame table: a centralized
	// king beats one on its home square.
	home := board.MustParseFEN("4k3/8/8/8/8/8/8/4K3 w - - 0 1")
	central := board.MustParseFEN("4k3/8/8/8/4K3/8/8/8 w - - 0 1")
	if Evaluate(central, 0) <= Evaluate(home, 0) {
		t.Errorf("endgame: central %d, home %d", Evaluate(central, 0), Evaluate(home, 0))
	}

	// With queens and plenty of pieces the middlegame table rewards shelter.
	sheltered := board.MustParseFEN("r1bqkb1r/8/8/8/8/8/8/R1BQ1RK1 w - - 0 1")
	exposed := board.MustParseFEN("r1bqkb1r/8/8/8/4K3/8/8/R1BQ1R2 w - - 0 1")
	if pieceSquare(&kingMiddleTable, board.G1, board.White) <= pieceSquare(&kingMiddleTable, board.E4, board.White) {
		t.Fatal("middlegame table does not favor g1 over e4")
	}
	if Evaluate(sheltered, 0) <= Evaluate(exposed, 0) {
		t.Errorf("middlegame: sheltered %d, exposed %d", Evaluate(sheltered, 0), Evaluate(exposed, 0))
	}
}

func TestScoreToString(t *testing.T) {
	tests := []struct {
		score int
		want  string
	}{
		{0, "0.00"},
		{125, "1.25"},
		{-50, "-0.50"},
		{MateScore + 3, "Mate"},
		{-MateScore - 1, "-Mate"},
	}
	for _, tc := range tests {
		if got := ScoreToString(tc.score); got != tc.want {
			t.Errorf("ScoreToString(%d) = %q, want %q", tc.score, got, tc.want)
		}
	}
}
