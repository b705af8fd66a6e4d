package board

// ValidateMove checks a from/to request for the side to move and returns the
// encoded move when it is legal. It applies the per-piece board rules first
// and then rejects any move that leaves the mover's king attacked.
//
// promo is only consulted when a pawn reaches the last rank; anything other
// than a knight, bishop, rook or queen falls back to a queen.
func (p *Position) ValidateMove(from, to Square, promo PieceType) (Move, bool) {
	if !from.IsValid() || !to.IsValid() || from == to {
		return NoMove, false
	}
	us := p.SideToMove
	piece := p.At(from)
	if !piece.Is(us) || p.At(to).Is(us) {
		return NoMove, false
	}

	var m Move
	switch piece.Type() {
	case Pawn:
		var ok bool
		if m, ok = p.validatePawn(from, to, us, promo); !ok {
			return NoMove, false
		}
	case Knight:
		if !KnightControls(from, to) {
			return NoMove, false
		}
		m = NewMove(from, to)
	case Bishop, Rook, Queen:
		if !p.Controls(from, to) {
			return NoMove, false
		}
		m = NewMove(from, to)
	case King:
		switch {
		case KingControls(from, to):
			m = NewMove(from, to)
		case to.Rank() == from.Rank() && to.File()-from.File() == 2 && p.canCastle(from, us, KingSide):
			m = NewCastling(from, to)
		case to.Rank() == from.Rank() && from.File()-to.File() == 2 && p.canCastle(from, us, QueenSide):
			m = NewCastling(from, to)
		default:
			return NoMove, false
		}
	default:
		return NoMove, false
	}

	if !p.leavesKingSafe(m, us) {
		return NoMove, false
	}
	return m, true
}

func (p *Position) validatePawn(from, to Square, us Color, promo PieceType) (Move, bool) {
	dir := pawnDir(us)
	dr := to.Rank() - from.Rank()
	df := to.File() - from.File()
	target := p.At(to)

	switch {
	case df == 0 && dr == dir:
		if target != Empty {
			return NoMove, false
		}
	case df == 0 && dr == 2*dir:
		mid := NewSquare(from.File(), from.Rank()+dir)
		if from.RelativeRank(us) != 1 || target != Empty || !p.IsEmpty(mid) {
			return NoMove, false
		}
		return NewMove(from, to), true
	case abs(df) == 1 && dr == dir:
		if target == Empty {
			if !p.canEnPassant(from, to.File(), us) {
				return NoMove, false
			}
			return NewEnPassant(from, to), true
		}
		if !target.Is(us.Other()) {
			return NoMove, false
		}
	default:
		return NoMove, false
	}

	if to.RelativeRank(us) == 7 {
		if !promo.IsPromotion() {
			promo = Queen
		}
		return NewPromotion(from, to, promo), true
	}
	return NewMove(from, to), true
}
