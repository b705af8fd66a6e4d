package board

// Direction tables as {rank delta, file delta}. The order is also the
// enumeration order used by move generation.
var (
	knightOffsets = [8][2]int{{-1, -2}, {-1, 2}, {1, -2}, {1, 2}, {-2, -1}, {-2, 1}, {2, -1}, {2, 1}}
	bishopDirs    = [4][2]int{{1, 1}, {-1, 1}, {1, -1}, {-1, -1}}
	rookDirs      = [4][2]int{{1, 0}, {-1, 0}, {0, 1}, {0, -1}}
	queenDirs     = [8][2]int{{1, 1}, {-1, 1}, {1, -1}, {-1, -1}, {0, 1}, {1, 0}, {-1, 0}, {0, -1}}
)

// pawnDir returns the rank step of a pawn of color c.
func pawnDir(c Color) int {
	if c == White {
		return 1
	}
	return -1
}

func sign(x int) int {
	if x > 0 {
		return 1
	}
	if x < 0 {
		return -1
	}
	return 0
}

func abs(x int) int {
	if x < 0 {
		return -x
	}
	return x
}

// PawnControls reports whether the pawn standing on from attacks to.
// Pawns only attack diagonally forward; the direction comes from the pawn's color.
func (p *Position) PawnControls(from, to Square) bool {
	pawn := p.At(from)
	if pawn == Empty {
		return false
	}
	return to.Rank()-from.Rank() == pawnDir(pawn.Color()) && abs(to.File()-from.File()) == 1
}

// KnightControls reports whether a knight on from attacks to.
func KnightControls(from, to Square) bool {
	dr := abs(to.Rank() - from.Rank())
	df := abs(to.File() - from.File())
	return (dr == 1 && df == 2) || (dr == 2 && df == 1)
}

// KingControls reports whether a king on from attacks to.
func KingControls(from, to Square) bool {
	if from == to {
		return false
	}
	return abs(to.Rank()-from.Rank()) <= 1 && abs(to.File()-from.File()) <= 1
}

// slides reports whether to is reachable from from along (dr, df) with every
// intermediate square empty. The destination itself may be occupied.
func (p *Position) slides(from, to Square, dr, df int) bool {
	r, f := from.Rank()+dr, from.File()+df
	tr, tf := to.Rank(), to.File()
	for onBoard(f, r) {
		if r == tr && f == tf {
			return true
		}
		if p.Cells[r][f] != Empty {
			return false
		}
		r += dr
		f += df
	}
	return false
}

// BishopControls reports whether a bishop on from attacks to.
func (p *Position) BishopControls(from, to Square) bool {
	dr := to.Rank() - from.Rank()
	df := to.File() - from.File()
	if dr == 0 || abs(dr) != abs(df) {
		return false
	}
	return p.slides(from, to, sign(dr), sign(df))
}

// RookControls reports whether a rook on from attacks to.
func (p *Position) RookControls(from, to Square) bool {
	dr := to.Rank() - from.Rank()
	df := to.File() - from.File()
	if (dr == 0) == (df == 0) {
		return false
	}
	return p.slides(from, to, sign(dr), sign(df))
}

// QueenControls reports whether a queen on from attacks to.
func (p *Position) QueenControls(from, to Square) bool {
	return p.BishopControls(from, to) || p.RookControls(from, to)
}

// Controls reports whether the piece standing on from attacks to, using the
// predicate for its type.
func (p *Position) Controls(from, to Square) bool {
	switch p.At(from).Type() {
	case Pawn:
		return p.PawnControls(from, to)
	case Knight:
		return KnightControls(from, to)
	case Bishop:
		return p.BishopControls(from, to)
	case Rook:
		return p.RookControls(from, to)
	case Queen:
		return p.QueenControls(from, to)
	case King:
		return KingControls(from, to)
	}
	return false
}

// UnderControl reports whether any piece of color by attacks sq.
// It looks outward from sq instead of scanning every enemy piece, and never allocates.
func (p *Position) UnderControl(sq Square, by Color) bool {
	r, f := sq.Rank(), sq.File()

	// Pawns of color by attack from one rank behind them.
	pr := r - pawnDir(by)
	pawn := NewPiece(Pawn, by)
	if onBoard(f-1, pr) && p.Cells[pr][f-1] == pawn {
		return true
	}
	if onBoard(f+1, pr) && p.Cells[pr][f+1] == pawn {
		return true
	}

	knight := NewPiece(Knight, by)
	for _, o := range knightOffsets {
		nr, nf := r+o[0], f+o[1]
		if onBoard(nf, nr) && p.Cells[nr][nf] == knight {
			return true
		}
	}

	king := NewPiece(King, by)
	for _, d := range queenDirs {
		nr, nf := r+d[0], f+d[1]
		if onBoard(nf, nr) && p.Cells[nr][nf] == king {
			return true
		}
	}

	bishop, rook, queen := NewPiece(Bishop, by), NewPiece(Rook, by), NewPiece(Queen, by)
	for _, d := range bishopDirs {
		if hit := p.firstOnRay(r, f, d[0], d[1]); hit == bishop || hit == queen {
			return true
		}
	}
	for _, d := range rookDirs {
		if hit := p.firstOnRay(r, f, d[0], d[1]); hit == rook || hit == queen {
			return true
		}
	}

	return false
}

// firstOnRay returns the first piece met walking from (r, f) along (dr, df).
func (p *Position) firstOnRay(r, f, dr, df int) Piece {
	r += dr
	f += df
	for onBoard(f, r) {
		if pc := p.Cells[r][f]; pc != Empty {
			return pc
		}
		r += dr
		f += df
	}
	return Empty
}

// InCheck reports whether the king of color c is attacked.
// A side without exactly one king is never in check.
func (p *Position) InCheck(c Color) bool {
	ksq := p.KingSquare(c)
	if ksq == NoSquare {
		return false
	}
	return p.UnderControl(ksq, c.Other())
}
