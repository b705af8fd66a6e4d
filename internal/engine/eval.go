// Package engine implements the static evaluator and the fixed-depth
// minimax search with alpha-beta pruning.
package engine

import (
	"fmt"

	"github.com/hailam/chesscore/internal/board"
)

// MateScore is the magnitude of a checkmate score before the depth bonus.
const MateScore = 100000

// Evaluation weights
const (
	mobilityWeight   = 10
	doubledPawnCost  = 15 // per pawn on a doubled file
	isolatedPawnCost = 30
	pawnIslandCost   = 10
)

// Piece-square tables from white's point of view, indexed by square (a1 = 0).
// Black reads the same tables through Square.Mirror.
var pawnTable = [64]int{
	0, 0, 0, 0, 0, 0, 0, 0,
	5, 10, 10, -20, -20, 10, 10, 5,
	5, -5, -10, 0, 0, -10, -5, 5,
	0, 0, 0, 20, 20, 0, 0, 0,
	5, 5, 10, 25, 25, 10, 5, 5,
	10, 10, 20, 30, 30, 20, 10, 10,
	50, 50, 50, 50, 50, 50, 50, 50,
	0, 0, 0, 0, 0, 0, 0, 0,
}

var knightTable = [64]int{
	-50, -40, -30, -30, -30, -30, -40, -50,
	-40, -20, 0, 5, 5, 0, -20, -40,
	-30, 5, 10, 15, 15, 10, 5, -30,
	-30, 0, 15, 20, 20, 15, 0, -30,
	-30, 5, 15, 20, 20, 15, 5, -30,
	-30, 0, 10, 15, 15, 10, 0, -30,
	-40, -20, 0, 0, 0, 0, -20, -40,
	-50, -40, -30, -30, -30, -30, -40, -50,
}

var bishopTable = [64]int{
	-20, -10, -10, -10, -10, -10, -10, -20,
	-10, 5, 0, 0, 0, 0, 5, -10,
	-10, 10, 10, 10, 10, 10, 10, -10,
	-10, 0, 10, 10, 10, 10, 0, -10,
	-10, 5, 5, 10, 10, 5, 5, -10,
	-10, 0, 5, 10, 10, 5, 0, -10,
	-10, 0, 0, 0, 0, 0, 0, -10,
	-20, -10, -10, -10, -10, -10, -10, -20,
}

var rookTable = [64]int{
	0, 0, 0, 5, 5, 3, 0, 0,
	-5, 0, 0, 0, 0, 0, 0, -5,
	-5, 0, 0, 0, 0, 0, 0, -5,
	-5, 0, 0, 0, 0, 0, 0, -5,
	-5, 0, 0, 0, 0, 0, 0, -5,
	-5, 0, 0, 0, 0, 0, 0, -5,
	5, 10, 10, 10, 10, 10, 10, 5,
	0, 0, 0, 0, 0, 0, 0, 0,
}

var queenTable = [64]int{
	-20, -10, -10, -5, -5, -10, -10, -20,
	-10, 0, 5, 0, 0, 0, 0, -10,
	-10, 5, 5, 5, 5, 5, 0, -10,
	0, 0, 5, 5, 5, 5, 0, -5,
	-5, 0, 5, 5, 5, 5, 0, -5,
	-10, 0, 5, 5, 5, 5, 0, -10,
	-10, 0, 0, 0, 0, 0, 0, -10,
	-20, -10, -10, -5, -5, -10, -10, -20,
}

var kingMiddleTable = [64]int{
	20, 30, 10, 0, 0, 10, 30, 20,
	20, 20, 0, 0, 0, 0, 20, 20,
	-10, -20, -20, -20, -20, -20, -20, -10,
	-20, -30, -30, -40, -40, -30, -30, -20,
	-30, -40, -40, -50, -50, -40, -40, -30,
	-30, -40, -40, -50, -50, -40, -40, -30,
	-30, -40, -40, -50, -50, -40, -40, -30,
	-30, -40, -40, -50, -50, -40, -40, -30,
}

var kingEndTable = [64]int{
	-50, -30, -30, -30, -30, -30, -30, -50,
	-30, -30, 0, 0, 0, 0, -30, -30,
	-30, -10, 20, 30, 30, 20, -10, -30,
	-30, -10, 30, 40, 40, 30, -10, -30,
	-30, -10, 30, 40, 40, 30, -10, -30,
	-30, -10, 20, 30, 30, 20, -10, -30,
	-30, -20, -10, 0, 0, -10, -20, -30,
	-50, -40, -30, -20, -20, -30, -40, -50,
}

var pieceTables = [7]*[64]int{
	board.Pawn:   &pawnTable,
	board.Knight: &knightTable,
	board.Bishop: &bishopTable,
	board.Rook:   &rookTable,
	board.Queen:  &queenTable,
}

// pieceSquare reads table for a piece of color c standing on sq.
func pieceSquare(table *[64]int, sq board.Square, c board.Color) int {
	if c == board.Black {
		sq = sq.Mirror()
	}
	return table[sq]
}

// Evaluate returns the static score of pos in centipawns, positive favoring
// white. depth is the remaining search depth; it only shifts mate scores so
// that a faster mate scores higher.
//
// A finished game, for either side, overrides the static terms; see
// GameOver.
func Evaluate(pos *board.Position, depth int) int {
	if score, over := GameOver(pos, depth); over {
		return score
	}

	score := 0
	var pawnFiles [2][8]int
	var hasQueen [2]bool
	var pieces [2]int // knights, bishops and rooks
	kingSq := [2]board.Square{board.NoSquare, board.NoSquare}

	for r := 0; r < 8; r++ {
		for f := 0; f < 8; f++ {
			pc := pos.Cells[r][f]
			if pc == board.Empty {
				continue
			}
			sq := board.NewSquare(f, r)
			c := pc.Color()
			sign := c.Sign()

			score += sign * pc.Value()

			switch pc.Type() {
			case board.King:
				kingSq[c] = sq
				continue
			case board.Pawn:
				pawnFiles[c][f]++
			case board.Queen:
				hasQueen[c] = true
			default:
				pieces[c]++
			}
			score += sign * pieceSquare(pieceTables[pc.Type()], sq, c)
		}
	}

	score += mobilityWeight * (pos.Mobility(board.White) - pos.Mobility(board.Black))

	endgame := (!hasQueen[board.White] && !hasQueen[board.Black]) ||
		(hasQueen[board.White] && pieces[board.White] <= 1) ||
		(hasQueen[board.Black] && pieces[board.Black] <= 1)

	kingTable := &kingMiddleTable
	if endgame {
		kingTable = &kingEndTable
	}
	for c := board.White; c <= board.Black; c++ {
		if kingSq[c] != board.NoSquare {
			score += c.Sign() * pieceSquare(kingTable, kingSq[c], c)
		}
	}

	score += pawnStructure(&pawnFiles[board.White]) - pawnStructure(&pawnFiles[board.Black])

	return score
}

// GameOver reports whether either side is checkmated or stalemated, and the
// score of the finished game. Stalemate of either side is checked first and
// scores 0; then a mated white scores -(MateScore+depth) and a mated black
// MateScore+depth.
func GameOver(pos *board.Position, depth int) (int, bool) {
	white := pos.Status(board.White)
	black := pos.Status(board.Black)

	switch {
	case white == board.Stalemate || black == board.Stalemate:
		return 0, true
	case white == board.Checkmate:
		return -(MateScore + depth), true
	case black == board.Checkmate:
		return MateScore + depth, true
	}
	return 0, false
}

// pawnStructure returns the (non-positive) structure score of one side from
// its pawn count per file.
func pawnStructure(files *[8]int) int {
	score := 0
	islands := 0
	inIsland := false

	for f := 0; f < 8; f++ {
		n := files[f]
		if n > 1 {
			score -= doubledPawnCost * n
		}

		if n > 0 && !inIsland {
			islands++
		}
		inIsland = n > 0

		if n > 0 {
			left := f > 0 && files[f-1] > 0
			right := f < 7 && files[f+1] > 0
			if !left && !right {
				score -= isolatedPawnCost
			}
		}
	}

	return score - pawnIslandCost*islands
}

// ScoreToString converts a score to a human-readable string in pawns.
func ScoreToString(score int) string {
	if score >= MateScore {
		return "Mate"
	}
	if score <= -MateScore {
		return "-Mate"
	}
	return fmt.Sprintf("%.2f", Pawns(score))
}

// Pawns converts centipawns to pawns.
func Pawns(score int) float64 {
	return float64(score) / 100
}
