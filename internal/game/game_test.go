package game

import (
	"errors"
	"testing"

	"github.com/notnil/chess"

	"github.com/hailam/chesscore/internal/board"
	"github.com/hailam/chesscore/internal/engine"
)

func TestHandleMove(t *testing.T) {
	g := New()

	if san := g.HandleMove(board.E2, board.E4); san != "e4" {
		t.Fatalf("e2e4 = %q, want e4", san)
	}
	if san := g.HandleMove(board.E4, board.E5); san != "" {
		t.Errorf("white moved twice: %q", san)
	}
	if san := g.HandleMove(board.E7, board.E4); san != "" {
		t.Errorf("illegal pawn move accepted: %q", san)
	}
	if san := g.HandleMove(board.G8, board.F6); san != "Nf6" {
		t.Errorf("g8f6 = %q, want Nf6", san)
	}

	if got := g.History(); len(got) != 2 || got[0] != "e4" || got[1] != "Nf6" {
		t.Errorf("History = %v", got)
	}
	if g.SideToMove() != board.White {
		t.Error("white should be to move")
	}
}

func TestHandleMoveCastlingOntoRook(t *testing.T) {
	g, err := NewFromFEN("r3k2r/8/8/8/8/8/8/R3K2R w KQkq - 0 1")
	if err != nil {
		t.Fatal(err)
	}
	if san := g.HandleMove(board.E1, board.H1); san != "O-O" {
		t.Fatalf("king onto h1 rook = %q, want O-O", san)
	}
	if san := g.HandleMove(board.E8, board.C8); san != "O-O-O" {
		t.Fatalf("e8c8 = %q, want O-O-O", san)
	}
	pos := g.Position()
	if pos.At(board.G1) != board.WhiteKing || pos.At(board.F1) != board.WhiteRook {
		t.Errorf("white did not castle:\n%v", pos)
	}
	if pos.At(board.C8) != board.BlackKing || pos.At(board.D8) != board.BlackRook {
		t.Errorf("black did not castle:\n%v", pos)
	}
}

type countingChooser struct {
	piece board.PieceType
	calls int
	sides []board.Color
}

func (c *countingChooser) ChoosePromotion(side board.Color) board.PieceType {
	c.calls++
	c.sides = append(c.sides, side)
	return c.piece
}

func TestPromotionChooser(t *testing.T) {
	tests := []struct {
		name   string
		choice board.PieceType
		want   board.Piece
		san    string
	}{
		{"knight", board.Knight, board.WhiteKnight, "d8=N"},
		{"rook", board.Rook, board.WhiteRook, "d8=R+"},
		{"invalid falls back to queen", board.King, board.WhiteQueen, "d8=Q+"},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			chooser := &countingChooser{piece: tc.choice}
			g, err := NewFromFEN("7k/3P4/8/8/8/8/8/K7 w - - 0 1", WithPromotionChooser(chooser))
			if err != nil {
				t.Fatal(err)
			}

			// An illegal request never reaches the chooser.
			if san := g.HandleMove(board.D7, board.C8); san != "" {
				t.Fatalf("capture onto empty square accepted: %q", san)
			}
			if chooser.calls != 0 {
				t.Fatalf("chooser called %d times for an illegal move", chooser.calls)
			}

			san := g.HandleMove(board.D7, board.D8)
			if san != tc.san {
				t.Errorf("SAN = %q, want %q", san, tc.san)
			}
			if chooser.calls != 1 || chooser.sides[0] != board.White {
				t.Errorf("chooser calls = %d sides = %v", chooser.calls, chooser.sides)
			}
			if got := g.Position().At(board.D8); got != tc.want {
				t.Errorf("d8 = %v, want %v", got, tc.want)
			}
		})
	}
}

func TestPlayMoveIsTrusted(t *testing.T) {
	g := New()

	// Trusted replay does not check legality: a knight jump to e4 is fine here.
	if err := g.PlayMove("g1e4"); err != nil {
		t.Fatalf("PlayMove: %v", err)
	}
	if g.Position().At(board.E4) != board.WhiteKnight {
		t.Error("trusted move not applied")
	}

	for _, bad := range []string{"", "e2", "e2e4e5", "i1a1", "e5e6"} {
		if err := g.PlayMove(bad); !errors.Is(err, board.ErrInvalidMove) {
			t.Errorf("PlayMove(%q) err = %v, want ErrInvalidMove", bad, err)
		}
	}
}

func TestPlayMovePromotionDefaultsToQueen(t *testing.T) {
	chooser := &countingChooser{piece: board.Knight}
	g, _ := NewFromFEN("7k/3P4/8/8/8/8/8/K7 w - - 0 1", WithPromotionChooser(chooser))

	if err := g.PlayMove("d7d8"); err != nil {
		t.Fatal(err)
	}
	if g.Position().At(board.D8) != board.WhiteQueen {
		t.Errorf("d8 = %v, want queen", g.Position().At(board.D8))
	}
	if chooser.calls != 0 {
		t.Error("trusted replay consulted the chooser")
	}

	g, _ = NewFromFEN("7k/3P4/8/8/8/8/8/K7 w - - 0 1")
	if err := g.PlayMove("d7d8b"); err != nil {
		t.Fatal(err)
	}
	if g.Position().At(board.D8) != board.WhiteBishop {
		t.Errorf("d8 = %v, want bishop", g.Position().At(board.D8))
	}
}

func TestPuzzleReplay(t *testing.T) {
	// Scholar's mate replayed through the trusted entry point.
	g := New()
	for _, m := range []string{"e2e4", "e7e5", "f1c4", "b8c6", "d1h5", "g8f6", "h5f7"} {
		if err := g.PlayMove(m); err != nil {
			t.Fatalf("PlayMove(%s): %v", m, err)
		}
	}
	if g.Status() != board.Checkmate || !g.GameOver() || g.Result() != "1-0" {
		t.Errorf("status = %v result = %s", g.Status(), g.Result())
	}
	h := g.History()
	if h[len(h)-1] != "Qxf7#" {
		t.Errorf("last SAN = %q, want Qxf7#", h[len(h)-1])
	}
}

func TestEngineMove(t *testing.T) {
	g, _ := NewFromFEN("6k1/5ppp/8/8/8/8/8/R5K1 w - - 0 1")
	opts := engine.DefaultOptions()
	opts.Depth = 2

	res, ok := g.EngineMove(engine.New(opts))
	if !ok {
		t.Fatal("engine found no move")
	}
	if res.Notation != "Ra8#" {
		t.Errorf("engine played %q, want Ra8#", res.Notation)
	}
	if g.Result() != "1-0" {
		t.Errorf("Result = %s", g.Result())
	}
	if _, ok := g.EngineMove(engine.New(opts)); ok {
		t.Error("engine moved in a finished game")
	}
}

type fixedFinder struct{ move board.Move }

func (f fixedFinder) BestMove(pos *board.Position) (engine.EngineMove, bool) {
	return engine.EngineMove{Move: f.move, From: f.move.From(), To: f.move.To()}, true
}

func TestEngineMovePromotionUsesChooser(t *testing.T) {
	chooser := &countingChooser{piece: board.Rook}
	g, _ := NewFromFEN("7k/3P4/8/8/8/8/8/K7 w - - 0 1", WithPromotionChooser(chooser))

	res, ok := g.EngineMove(fixedFinder{board.NewPromotion(board.D7, board.D8, board.Queen)})
	if !ok {
		t.Fatal("no move")
	}
	if chooser.calls != 1 || res.Move.Promotion() != board.Rook {
		t.Errorf("calls = %d promotion = %v", chooser.calls, res.Move.Promotion())
	}
}

func TestStalemateResult(t *testing.T) {
	g, _ := NewFromFEN("7k/5Q2/6K1/8/8/8/8/8 b - - 0 1")
	if g.Status() != board.Stalemate || g.Result() != "1/2-1/2" {
		t.Errorf("status = %v result = %s", g.Status(), g.Result())
	}
}

func TestNewFromFENError(t *testing.T) {
	if _, err := NewFromFEN("not a fen"); !errors.Is(err, board.ErrInvalidFEN) {
		t.Errorf("err = %v, want ErrInvalidFEN", err)
	}
}

// TestSANMatchesReference compares the SAN of every legal move with an
// independent notation encoder.
func TestSANMatchesReference(t *testing.T) {
	fens := []string{
		board.StartFEN,
		"r3k2r/p1ppqpb1/bn2pnp1/3PN3/1p2P3/2N2Q1p/PPPBBPPP/R3K2R w KQkq - 0 1",
		"r3k2r/Pppp1ppp/1b3nbN/nP6/BBP1P3/q4N2/Pp1P2PP/R2Q1RK1 w kq - 0 1",
		"rnbqkbnr/ppp1p1pp/8/3pPp2/8/8/PPPP1PPP/RNBQKBNR w KQkq f6 0 3",
		"6k1/5ppp/8/8/8/8/1Q6/R5K1 w - - 0 1",
		"1k6/8/8/8/8/8/8/R3K2R w KQ - 0 1",
		"4k3/8/8/8/8/8/8/N3K2N w - - 0 1",
		"8/8/6k1/8/Q6Q/8/8/Q3K3 w - - 0 1",
	}

	for _, fen := range fens {
		pos := board.MustParseFEN(fen)
		opt, err := chess.FEN(fen)
		if err != nil {
			t.Fatalf("reference FEN %q: %v", fen, err)
		}
		ref := chess.NewGame(opt).Position()

		for _, m := range pos.GenerateLegalMoves().Slice() {
			rm, err := chess.UCINotation{}.Decode(ref, m.String())
			if err != nil {
				t.Errorf("%s: reference rejects %v: %v", fen, m, err)
				continue
			}
			want := chess.AlgebraicNotation{}.Encode(ref, rm)
			if got := m.ToSAN(pos); got != want {
				t.Errorf("%s: SAN(%v) = %q, reference %q", fen, m, got, want)
			}
		}
	}
}
