package engine

import (
	"fmt"
	"time"

	"github.com/rs/zerolog"
	"golang.org/x/exp/slices"
	"golang.org/x/sync/errgroup"

	"github.com/hailam/chesscore/internal/board"
)

// Options configures the search.
type Options struct {
	Depth     int     // plies searched from the root
	TopCount  int     // maximum number of advisory moves
	TopCutoff float64 // advisory moves scoring below this (in pawns) are dropped
	Workers   int     // root moves searched concurrently; 1 is sequential
}

// DefaultOptions returns depth 4, three advisory moves with a -0.5 pawn
// cutoff, and a sequential search.
func DefaultOptions() Options {
	return Options{
		Depth:     4,
		TopCount:  3,
		TopCutoff: -0.5,
		Workers:   1,
	}
}

// Validate reports the first invalid field.
func (o Options) Validate() error {
	if o.Depth < 1 {
		return fmt.Errorf("depth must be at least 1, got %d", o.Depth)
	}
	if o.TopCount < 0 {
		return fmt.Errorf("top move count must not be negative, got %d", o.TopCount)
	}
	if o.Workers < 1 {
		return fmt.Errorf("workers must be at least 1, got %d", o.Workers)
	}
	return nil
}

// EngineMove is the result of a search for one move.
type EngineMove struct {
	Move     board.Move
	Notation string // SAN
	From     board.Square
	To       board.Square
	Score    float64 // pawns, positive favors white
	Nodes    uint64
}

// String returns the notation and score.
func (m EngineMove) String() string {
	return fmt.Sprintf("%s (%.2f)", m.Notation, m.Score)
}

// Engine is the chess AI engine.
type Engine struct {
	opts Options
	log  zerolog.Logger
}

// Option customizes an Engine.
type Option func(*Engine)

// WithLogger sets the logger used to report completed searches.
func WithLogger(l zerolog.Logger) Option {
	return func(e *Engine) {
		e.log = l
	}
}

// New creates an engine. Invalid option fields fall back to their defaults.
func New(opts Options, options ...Option) *Engine {
	def := DefaultOptions()
	if opts.Depth < 1 {
		opts.Depth = def.Depth
	}
	if opts.TopCount < 0 {
		opts.TopCount = def.TopCount
	}
	if opts.Workers < 1 {
		opts.Workers = def.Workers
	}

	e := &Engine{opts: opts, log: zerolog.Nop()}
	for _, o := range options {
		o(e)
	}
	return e
}

// Options returns the engine's effective options.
func (e *Engine) Options() Options {
	return e.opts
}

// BestMove searches every legal move of the side to move and returns the one
// with the best score: highest for white, lowest for black. The first move
// found wins among equal scores. ok is false when there is no legal move.
func (e *Engine) BestMove(pos *board.Position) (EngineMove, bool) {
	start := time.Now()
	results := e.searchRoot(pos, e.opts.Depth)

	idx := pickBest(results, pos.SideToMove)
	if idx < 0 {
		e.log.Debug().Int("depth", e.opts.Depth).Msg("no legal moves")
		return EngineMove{}, false
	}

	nodes := uint64(1)
	for _, r := range results {
		nodes += r.nodes
	}

	best := e.engineMove(pos, results[idx])
	best.Nodes = nodes

	e.log.Debug().
		Int("depth", e.opts.Depth).
		Uint64("nodes", nodes).
		Str("move", best.Notation).
		Str("score", ScoreToString(results[idx].score)).
		Dur("elapsed", time.Since(start)).
		Msg("search complete")

	return best, true
}

// TopMoves ranks white's legal moves for advisory display. Each move is
// scored by a full-window search one ply shallower than the configured depth,
// the list is sorted best first, and up to TopCount moves scoring at least
// TopCutoff pawns are kept. When none qualifies the single best move is
// returned. Black to move yields nil.
func (e *Engine) TopMoves(pos *board.Position) []EngineMove {
	if pos.SideToMove != board.White {
		return nil
	}

	results := e.searchRoot(pos, e.opts.Depth)
	if len(results) == 0 {
		return nil
	}

	moves := make([]EngineMove, len(results))
	for i, r := range results {
		moves[i] = e.engineMove(pos, r)
	}
	slices.SortStableFunc(moves, func(a, b EngineMove) int {
		switch {
		case a.Score > b.Score:
			return -1
		case a.Score < b.Score:
			return 1
		}
		return 0
	})

	var top []EngineMove
	for _, m := range moves {
		if len(top) >= e.opts.TopCount {
			break
		}
		if m.Score >= e.opts.TopCutoff {
			top = append(top, m)
		}
	}
	if len(top) == 0 {
		top = moves[:1]
	}

	e.log.Debug().Int("candidates", len(moves)).Int("kept", len(top)).Msg("top moves")
	return top
}

// searchRoot scores every legal root move with a full window. With more than
// one worker the root moves are spread over an errgroup; results keep the
// generation order either way.
func (e *Engine) searchRoot(pos *board.Position, depth int) []rootResult {
	moves := pos.GenerateLegalMoves().Slice()
	results := make([]rootResult, len(moves))

	if e.opts.Workers <= 1 || len(moves) < 2 {
		for i, m := range moves {
			results[i] = searchRootMove(pos, m, depth)
		}
		return results
	}

	var g errgroup.Group
	g.SetLimit(e.opts.Workers)
	for i, m := range moves {
		g.Go(func() error {
			results[i] = searchRootMove(pos, m, depth)
			return nil
		})
	}
	_ = g.Wait()

	return results
}

func (e *Engine) engineMove(pos *board.Position, r rootResult) EngineMove {
	return EngineMove{
		Move:     r.move,
		Notation: r.move.ToSAN(pos),
		From:     r.move.From(),
		To:       r.move.To(),
		Score:    Pawns(r.score),
		Nodes:    r.nodes,
	}
}

// Evaluate returns the static evaluation of a position.
func (e *Engine) Evaluate(pos *board.Position) int {
	return Evaluate(pos, 0)
}

// Perft counts the leaf nodes of the legal move tree (for debugging move generation).
func (e *Engine) Perft(pos *board.Position, depth int) uint64 {
	return pos.Perft(depth)
}
