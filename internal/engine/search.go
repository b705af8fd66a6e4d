package engine

import (
	"github.com/hailam/chesscore/internal/board"
)

// Infinity bounds every reachable score, mates included.
const Infinity = MateScore + 1000

// Searcher runs one fixed-depth minimax search. It carries its own node
// counter, so separate searchers can run on separate goroutines.
type Searcher struct {
	nodes   uint64
	killers killers
}

// Nodes returns the number of positions visited since the last Reset.
func (s *Searcher) Nodes() uint64 {
	return s.nodes
}

// Reset clears the node counter and the killer moves.
func (s *Searcher) Reset() {
	s.nodes = 0
	s.killers = killers{}
}

// Minimax returns the alpha-beta score of pos searched depth plies deep.
// White maximizes and black minimizes; maximizing tells which one moves at
// this node.
func (s *Searcher) Minimax(pos *board.Position, depth, alpha, beta int, maximizing bool) int {
	return s.minimax(pos, depth, 0, alpha, beta, maximizing)
}

func (s *Searcher) minimax(pos *board.Position, depth, ply, alpha, beta int, maximizing bool) int {
	s.nodes++

	if depth <= 0 {
		return Evaluate(pos, depth)
	}
	if score, over := GameOver(pos, depth); over {
		return score
	}

	us := pos.SideToMove
	var ml board.MoveList
	pos.GenerateMoves(us, &ml)

	var scores [board.MaxMoves]int
	scoreMoves(pos, &ml, &scores, &s.killers, ply)

	best := Infinity
	if maximizing {
		best = -Infinity
	}

	for i := 0; i < ml.Len(); i++ {
		pickMove(&ml, &scores, i)
		m := ml.Get(i)
		child := *pos
		child.MakeMove(m)
		if child.InCheck(us) {
			continue
		}

		score := s.minimax(&child, depth-1, ply+1, alpha, beta, !maximizing)

		if maximizing {
			if score > best {
				best = score
			}
			if best > alpha {
				alpha = best
			}
		} else {
			if score < best {
				best = score
			}
			if best < beta {
				beta = best
			}
		}

		if beta <= alpha {
			if !m.IsCapture(pos) && !m.IsPromotion() {
				s.killers.update(m, ply)
			}
			break
		}
	}

	return best
}

// rootResult is the full-window score of one root move.
type rootResult struct {
	move  board.Move
	score int
	nodes uint64
}

// searchRootMove scores m, played from pos, with a full-window search of
// depth-1 plies below it.
func searchRootMove(pos *board.Position, m board.Move, depth int) rootResult {
	var s Searcher
	child := *pos
	child.MakeMove(m)
	score := s.minimax(&child, depth-1, 1, -Infinity, Infinity, child.SideToMove == board.White)
	return rootResult{move: m, score: score, nodes: s.nodes}
}

// pickBest returns the index of the best result for side, keeping the first
// one found among equal scores. It returns -1 for an empty slice.
func pickBest(results []rootResult, side board.Color) int {
	best := -1
	for i, r := range results {
		if best < 0 {
			best = i
			continue
		}
		if side == board.White && r.score > results[best].score {
			best = i
		}
		if side == board.Black && r.score < results[best].score {
			best = i
		}
	}
	return best
}
