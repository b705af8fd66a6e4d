package engine

import (
	"github.com/hailam/chesscore/internal/board"
)

// MaxPly bounds the search ply for per-ply tables.
const MaxPly = 64

// Move ordering priorities
const (
	PromotionBase = 2000000
	CaptureBase   = 1000000
	KillerScore1  = 900000
	KillerScore2  = 800000
)

// MVV-LVA (Most Valuable Victim - Least Valuable Attacker) scores, indexed
// by [victim][attacker] piece type.
// Score = victimValue * 10 - attackerValue
var mvvLva = [7][7]int{
	//          -  P   N   B   R   Q   K  (attacker)
	/* - */ {0, 0, 0, 0, 0, 0, 0},
	/* P */ {0, 15, 14, 14, 13, 12, 11},
	/* N */ {0, 25, 24, 24, 23, 22, 21},
	/* B */ {0, 35, 34, 34, 33, 32, 31},
	/* R */ {0, 45, 44, 44, 43, 42, 41},
	/* Q */ {0, 55, 54, 54, 53, 52, 51},
	/* K */ {0, 0, 0, 0, 0, 0, 0},
}

// killers holds two quiet moves per ply that caused a cutoff.
type killers [MaxPly][2]board.Move

func (k *killers) update(m board.Move, ply int) {
	if ply >= MaxPly || k[ply][0] == m {
		return
	}
	k[ply][1] = k[ply][0]
	k[ply][0] = m
}

// scoreMoves fills scores with the ordering score of each move in ml.
// Ordering changes only the amount of pruning, never a node's value.
func scoreMoves(pos *board.Position, ml *board.MoveList, scores *[board.MaxMoves]int, k *killers, ply int) {
	for i := 0; i < ml.Len(); i++ {
		m := ml.Get(i)
		switch {
		case m.IsPromotion():
			scores[i] = PromotionBase + board.PieceValue[m.Promotion()]
		case m.IsEnPassant():
			scores[i] = CaptureBase + mvvLva[board.Pawn][board.Pawn]
		case m.IsCapture(pos):
			victim := pos.At(m.To()).Type()
			attacker := pos.At(m.From()).Type()
			scores[i] = CaptureBase + mvvLva[victim][attacker]
		case ply < MaxPly && m == k[ply][0]:
			scores[i] = KillerScore1
		case ply < MaxPly && m == k[ply][1]:
			scores[i] = KillerScore2
		default:
			scores[i] = 0
		}
	}
}

// pickMove selects the best remaining move and moves it to position index.
// Earlier moves win ties, so equal scores keep generation order.
func pickMove(ml *board.MoveList, scores *[board.MaxMoves]int, index int) {
	best := index
	for j := index + 1; j < ml.Len(); j++ {
		if scores[j] > scores[best] {
			best = j
		}
	}
	for j := best; j > index; j-- {
		ml.Swap(j, j-1)
		scores[j], scores[j-1] = scores[j-1], scores[j]
	}
}
