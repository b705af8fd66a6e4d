package engine

import (
	"testing"

	"github.com/hailam/chesscore/internal/board"
)

func testEngine(depth, workers int) *Engine {
	opts := DefaultOptions()
	opts.Depth = depth
	opts.Workers = workers
	return New(opts)
}

func TestSearchBasic(t *testing.T) {
	pos := board.NewPosition()
	eng := testEngine(2, 1)

	move, ok := eng.BestMove(pos)
	if !ok || move.Move == board.NoMove {
		t.Fatal("BestMove returned no move for starting position")
	}
	if !pos.IsLegal(move.Move) {
		t.Errorf("BestMove returned illegal move %v", move.Move)
	}
	if move.Nodes == 0 {
		t.Error("node count not reported")
	}
	if move.From != move.Move.From() || move.To != move.Move.To() || move.Notation == "" {
		t.Errorf("incomplete result %+v", move)
	}
	t.Logf("Best move: %s nodes=%d", move, move.Nodes)
}

func TestNodeCounterResetsPerSearch(t *testing.T) {
	pos := board.MustParseFEN("8/2p5/3p4/KP5r/1R3p1k/8/4P1P1/8 w - - 0 1")
	eng := testEngine(2, 1)

	first, _ := eng.BestMove(pos)
	second, _ := eng.BestMove(pos)
	if first.Nodes != second.Nodes {
		t.Errorf("nodes differ between identical searches: %d vs %d", first.Nodes, second.Nodes)
	}
}

func TestMateInOne(t *testing.T) {
	tests := []struct {
		name string
		fen  string
		want string
	}{
		{"white back rank", "6k1/5ppp/8/8/8/8/8/R5K1 w - - 0 1", "a1a8"},
		{"black back rank", "r5k1/8/8/8/8/8/5PPP/6K1 b - - 0 1", "a8a1"},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			pos := board.MustParseFEN(tc.fen)
			move, ok := testEngine(2, 1).BestMove(pos)
			if !ok {
				t.Fatal("no move")
			}
			if move.Move.String() != tc.want {
				t.Errorf("BestMove = %v, want %s", move.Move, tc.want)
			}
			want := Pawns(MateScore + 1)
			if pos.SideToMove == board.Black {
				want = -want
			}
			if move.Score != want {
				t.Errorf("score = %v, want %v", move.Score, want)
			}
			if move.Notation[len(move.Notation)-1] != '#' {
				t.Errorf("notation %q lacks mate marker", move.Notation)
			}
		})
	}
}

func TestPreferFasterMate(t *testing.T) {
	// Both Ra8# and slower lines win; the immediate mate must score higher.
	pos := board.MustParseFEN("6k1/5ppp/8/8/8/8/1Q6/R5K1 w - - 0 1")
	move, _ := testEngine(3, 1).BestMove(pos)
	if move.Score < Pawns(MateScore+2) {
		t.Errorf("score = %v, want mate with depth bonus 2", move.Score)
	}
}

// fullMinimax is minimax without pruning.
func fullMinimax(pos *board.Position, depth int, maximizing bool) int {
	if depth == 0 {
		return Evaluate(pos, 0)
	}
	if score, over := GameOver(pos, depth); over {
		return score
	}
	moves := pos.GenerateLegalMoves()
	best := Infinity
	if maximizing {
		best = -Infinity
	}
	for _, m := range moves.Slice() {
		child := *pos
		child.MakeMove(m)
		score := fullMinimax(&child, depth-1, !maximizing)
		if maximizing && score > best || !maximizing && score < best {
			best = score
		}
	}
	return best
}

func TestAlphaBetaMatchesMinimax(t *testing.T) {
	tests := []struct {
		fen   string
		depth int
	}{
		{"8/2p5/3p4/KP5r/1R3p1k/8/4P1P1/8 w - - 0 1", 3},
		{"8/2p5/3p4/KP5r/1R3p1k/8/4P1P1/8 b - - 0 1", 3},
		{"6k1/5ppp/8/8/8/8/8/R5K1 w - - 0 1", 3},
		{"4k3/8/8/3q4/8/2N5/8/4K3 w - - 0 1", 3},
		{"7k/3P4/8/8/8/8/8/K7 w - - 0 1", 3},
	}

	for _, tc := range tests {
		t.Run(tc.fen, func(t *testing.T) {
			pos := board.MustParseFEN(tc.fen)
			maximizing := pos.SideToMove == board.White

			var s Searcher
			got := s.Minimax(pos, tc.depth, -Infinity, Infinity, maximizing)
			want := fullMinimax(pos, tc.depth, maximizing)
			if got != want {
				t.Errorf("alpha-beta = %d, minimax = %d", got, want)
			}
			if s.Nodes() == 0 {
				t.Error("no nodes counted")
			}
		})
	}
}

func TestPromotionBranches(t *testing.T) {
	pos := board.MustParseFEN("7k/3P4/8/8/8/8/8/K7 w - - 0 1")
	eng := testEngine(1, 1)

	results := eng.searchRoot(pos, 1)
	promos := map[board.PieceType]bool{}
	for _, r := range results {
		if r.move.From() == board.D7 && r.move.To() == board.D8 {
			promos[r.move.Promotion()] = true
		}
	}
	for _, pt := range []board.PieceType{board.Queen, board.Rook, board.Bishop, board.Knight} {
		if !promos[pt] {
			t.Errorf("missing promotion branch %v", pt)
		}
	}
	if len(promos) != 4 {
		t.Errorf("promotion branches = %d, want 4", len(promos))
	}

	best, _ := eng.BestMove(pos)
	if best.Move.Promotion() != board.Queen {
		t.Errorf("depth 1 best = %v, want queen promotion", best.Move)
	}
}

func TestParallelMatchesSequential(t *testing.T) {
	fens := []string{
		board.StartFEN,
		"r3k2r/p1ppqpb1/bn2pnp1/3PN3/1p2P3/2N2Q1p/PPPBBPPP/R3K2R w KQkq - 0 1",
		"8/2p5/3p4/KP5r/1R3p1k/8/4P1P1/8 b - - 0 1",
	}
	for _, fen := range fens {
		pos := board.MustParseFEN(fen)
		seq, ok1 := testEngine(2, 1).BestMove(pos)
		par, ok2 := testEngine(2, 4).BestMove(pos)
		if ok1 != ok2 || seq.Move != par.Move || seq.Score != par.Score || seq.Nodes != par.Nodes {
			t.Errorf("%s: sequential %v/%d, parallel %v/%d", fen, seq, seq.Nodes, par, par.Nodes)
		}
	}
}

func TestTopMoves(t *testing.T) {
	pos := board.NewPosition()
	eng := testEngine(2, 2)

	top := eng.TopMoves(pos)
	if len(top) == 0 || len(top) > 3 {
		t.Fatalf("TopMoves returned %d moves", len(top))
	}
	for i, m := range top {
		if m.Score < -0.5 {
			t.Errorf("move %v below cutoff", m)
		}
		if i > 0 && m.Score > top[i-1].Score {
			t.Errorf("moves not sorted: %v after %v", m, top[i-1])
		}
	}

	pos.SideToMove = board.Black
	if got := eng.TopMoves(pos); got != nil {
		t.Errorf("TopMoves for black = %v, want nil", got)
	}
}

func TestTopMovesFallback(t *testing.T) {
	// White is hopelessly behind, so nothing clears the cutoff.
	pos := board.MustParseFEN("kqq5/8/8/8/8/8/8/7K w - - 0 1")
	top := testEngine(2, 1).TopMoves(pos)
	if len(top) != 1 {
		t.Fatalf("TopMoves returned %d moves, want the single best", len(top))
	}
	if top[0].Score >= -0.5 {
		t.Errorf("fallback score %v unexpectedly above cutoff", top[0].Score)
	}
}

func TestNoLegalMoves(t *testing.T) {
	pos := board.MustParseFEN("R6k/6pp/8/8/8/8/8/K7 b - - 0 1")
	if _, ok := testEngine(2, 1).BestMove(pos); ok {
		t.Error("BestMove returned a move from a mated position")
	}
}

func TestSearchStopsWhenOpponentStalemated(t *testing.T) {
	// White is stalemated although black is to move.
	pos := board.MustParseFEN("k5r1/8/8/8/8/7p/7P/7K b - - 0 1")

	var s Searcher
	if got := s.Minimax(pos, 3, -Infinity, Infinity, false); got != 0 {
		t.Errorf("Minimax = %d, want 0", got)
	}
	if s.Nodes() != 1 {
		t.Errorf("searched %d nodes, want 1", s.Nodes())
	}
}

func TestKinglessSearch(t *testing.T) {
	pos := board.MustParseFEN("r7/8/8/8/8/8/8/4K2R b - - 0 1")
	move, ok := testEngine(2, 1).BestMove(pos)
	if !ok {
		t.Fatal("king-less side with a rook should still move")
	}
	t.Logf("best move without a king: %s", move)
}

func TestOptionsFallback(t *testing.T) {
	eng := New(Options{Depth: 0, TopCount: -1, Workers: 0})
	if got := eng.Options(); got.Depth != 4 || got.TopCount != 3 || got.Workers != 1 {
		t.Errorf("Options = %+v", got)
	}
	if err := (Options{Depth: 0, Workers: 1}).Validate(); err == nil {
		t.Error("depth 0 should not validate")
	}
	if err := DefaultOptions().Validate(); err != nil {
		t.Errorf("DefaultOptions invalid: %v", err)
	}
}
