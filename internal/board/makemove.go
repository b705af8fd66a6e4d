package board

// cornerRight maps a rook home square to the castling right it guards.
func cornerRight(sq Square) (c Color, side int, ok bool) {
	switch sq {
	case H1:
		return White, KingSide, true
	case A1:
		return White, QueenSide, true
	case H8:
		return Black, KingSide, true
	case A8:
		return Black, QueenSide, true
	}
	return White, 0, false
}

// MakeMove applies m in place without checking legality. The mover is the
// color of the piece on the origin square; an empty origin is a no-op.
//
// Every en passant flag is cleared first, so a window opened by a double
// push survives exactly one reply. Castling rights are revoked when the king
// moves, and whenever a move starts from or lands on a rook corner.
func (p *Position) MakeMove(m Move) {
	from, to := m.From(), m.To()
	piece := p.At(from)
	if piece == Empty {
		return
	}
	us := piece.Color()
	captured := p.At(to)

	if piece.Type() == Pawn || captured != Empty || m.IsEnPassant() {
		p.HalfMoveClock = 0
	} else {
		p.HalfMoveClock++
	}

	switch {
	case m.IsEnPassant():
		// The captured pawn stands beside the origin, on the destination file.
		p.Set(NewSquare(to.File(), from.Rank()), Empty)
		p.MovePiece(from, to)

	case m.IsCastling():
		side := KingSide
		if to.File() < from.File() {
			side = QueenSide
		}
		rookFrom, rookTo := castleRookSquares(us, side)
		p.MovePiece(from, to)
		p.MovePiece(rookFrom, rookTo)

	case m.IsPromotion():
		promo := m.Promotion()
		if !promo.IsPromotion() {
			promo = Queen
		}
		p.Set(from, Empty)
		p.Set(to, NewPiece(promo, us))

	default:
		p.MovePiece(from, to)
		// A pawn reaching the last rank without a promotion piece becomes a queen.
		if piece.Type() == Pawn && to.RelativeRank(us) == 7 {
			p.Set(to, NewPiece(Queen, us))
		}
	}

	if piece.Type() == King {
		p.Castling[us] = [2]bool{}
	}
	if c, side, ok := cornerRight(from); ok {
		p.Castling[c][side] = false
	}
	if c, side, ok := cornerRight(to); ok {
		p.Castling[c][side] = false
	}

	p.ClearEnPassant(White)
	p.ClearEnPassant(Black)
	if piece.Type() == Pawn && abs(to.Rank()-from.Rank()) == 2 {
		p.EnPassant[us][from.File()] = true
	}

	if us == Black {
		p.FullMoveNumber++
	}
	p.SideToMove = us.Other()
}
