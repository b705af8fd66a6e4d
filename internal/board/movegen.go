package board

// Moves are enumerated row-major from rank 8 down to rank 1, file a to h, and
// per piece in the order of its direction table. Search relies on this order
// for first-found tie-breaking.

// GenerateMoves appends every pseudo-legal move of color c to ml. Castling is
// only emitted when it is fully legal; other moves may leave the king in check.
func (p *Position) GenerateMoves(c Color, ml *MoveList) {
	for r := 7; r >= 0; r-- {
		for f := 0; f < 8; f++ {
			pc := p.Cells[r][f]
			if !pc.Is(c) {
				continue
			}
			from := NewSquare(f, r)
			switch pc.Type() {
			case Pawn:
				p.generatePawnMoves(ml, from, c)
			case Knight:
				p.generateLeaperMoves(ml, from, c, knightOffsets[:])
			case Bishop:
				p.generateSliderMoves(ml, from, c, bishopDirs[:])
			case Rook:
				p.generateSliderMoves(ml, from, c, rookDirs[:])
			case Queen:
				p.generateSliderMoves(ml, from, c, queenDirs[:])
			case King:
				p.generateLeaperMoves(ml, from, c, queenDirs[:])
				p.generateCastlingMoves(ml, from, c)
			}
		}
	}
}

// GenerateLegalMoves generates all legal moves for the side to move.
func (p *Position) GenerateLegalMoves() *MoveList {
	return p.LegalMovesFor(p.SideToMove)
}

// LegalMovesFor generates all legal moves for color c, whoever is to move.
func (p *Position) LegalMovesFor(c Color) *MoveList {
	pseudo := NewMoveList()
	p.GenerateMoves(c, pseudo)

	legal := NewMoveList()
	for i := 0; i < pseudo.Len(); i++ {
		m := pseudo.Get(i)
		if p.leavesKingSafe(m, c) {
			legal.Add(m)
		}
	}
	return legal
}

// HasLegalMoves reports whether color c has at least one legal move.
// It stops at the first move that does not leave the king in check.
func (p *Position) HasLegalMoves(c Color) bool {
	var ml MoveList
	p.GenerateMoves(c, &ml)
	for i := 0; i < ml.Len(); i++ {
		if p.leavesKingSafe(ml.Get(i), c) {
			return true
		}
	}
	return false
}

// leavesKingSafe applies m to a copy and reports whether c's king is unattacked.
func (p *Position) leavesKingSafe(m Move, c Color) bool {
	next := *p
	next.MakeMove(m)
	return !next.InCheck(c)
}

// IsLegal reports whether m is among the legal moves of the side to move.
func (p *Position) IsLegal(m Move) bool {
	return p.GenerateLegalMoves().Contains(m)
}

func (p *Position) generatePawnMoves(ml *MoveList, from Square, c Color) {
	dir := pawnDir(c)
	r, f := from.Rank(), from.File()
	nr := r + dir
	if nr < 0 || nr > 7 {
		return
	}
	promoting := NewSquare(f, nr).RelativeRank(c) == 7

	// Pushes
	if p.Cells[nr][f] == Empty {
		to := NewSquare(f, nr)
		if promoting {
			addPromotions(ml, from, to)
		} else {
			ml.Add(NewMove(from, to))
			if from.RelativeRank(c) == 1 && p.Cells[nr+dir][f] == Empty {
				ml.Add(NewMove(from, NewSquare(f, nr+dir)))
			}
		}
	}

	// Captures
	for _, df := range [2]int{-1, 1} {
		nf := f + df
		if nf < 0 || nf > 7 {
			continue
		}
		to := NewSquare(nf, nr)
		if p.Cells[nr][nf].Is(c.Other()) {
			if promoting {
				addPromotions(ml, from, to)
			} else {
				ml.Add(NewMove(from, to))
			}
			continue
		}
		if p.canEnPassant(from, nf, c) {
			ml.Add(NewEnPassant(from, to))
		}
	}
}

// canEnPassant reports whether the pawn of color c on from may capture en
// passant toward file nf. The opponent's flag for that file must be set, the
// capturing pawn must stand on its fifth rank next to the enemy pawn, and the
// square behind the enemy pawn must be empty.
func (p *Position) canEnPassant(from Square, nf int, c Color) bool {
	them := c.Other()
	if !p.EnPassant[them][nf] || from.RelativeRank(c) != 4 {
		return false
	}
	r := from.Rank()
	if p.Cells[r][nf] != NewPiece(Pawn, them) {
		return false
	}
	return p.Cells[r+pawnDir(c)][nf] == Empty
}

func addPromotions(ml *MoveList, from, to Square) {
	ml.Add(NewPromotion(from, to, Queen))
	ml.Add(NewPromotion(from, to, Rook))
	ml.Add(NewPromotion(from, to, Bishop))
	ml.Add(NewPromotion(from, to, Knight))
}

// generateLeaperMoves handles knights and the king's single steps.
func (p *Position) generateLeaperMoves(ml *MoveList, from Square, c Color, offsets [][2]int) {
	r, f := from.Rank(), from.File()
	for _, o := range offsets {
		nr, nf := r+o[0], f+o[1]
		if !onBoard(nf, nr) || p.Cells[nr][nf].Is(c) {
			continue
		}
		ml.Add(NewMove(from, NewSquare(nf, nr)))
	}
}

func (p *Position) generateSliderMoves(ml *MoveList, from Square, c Color, dirs [][2]int) {
	for _, d := range dirs {
		r, f := from.Rank()+d[0], from.File()+d[1]
		for onBoard(f, r) {
			pc := p.Cells[r][f]
			if pc.Is(c) {
				break
			}
			ml.Add(NewMove(from, NewSquare(f, r)))
			if pc != Empty {
				break
			}
			r += d[0]
			f += d[1]
		}
	}
}

// generateCastlingMoves emits O-O then O-O-O when the right is held, the king
// and rook are on their home squares, the squares between them are empty and
// the king's start, transit and landing squares are not attacked.
func (p *Position) generateCastlingMoves(ml *MoveList, from Square, c Color) {
	if p.canCastle(from, c, KingSide) {
		ml.Add(NewCastling(from, castleKingTarget(c, KingSide)))
	}
	if p.canCastle(from, c, QueenSide) {
		ml.Add(NewCastling(from, castleKingTarget(c, QueenSide)))
	}
}

// backRank returns the home rank index of color c.
func backRank(c Color) int {
	if c == White {
		return 0
	}
	return 7
}

func castleKingTarget(c Color, side int) Square {
	if side == KingSide {
		return NewSquare(6, backRank(c))
	}
	return NewSquare(2, backRank(c))
}

// castleRookSquares returns the rook's home and landing squares.
func castleRookSquares(c Color, side int) (from, to Square) {
	r := backRank(c)
	if side == KingSide {
		return NewSquare(7, r), NewSquare(5, r)
	}
	return NewSquare(0, r), NewSquare(3, r)
}

func (p *Position) canCastle(from Square, c Color, side int) bool {
	if !p.Castling[c][side] {
		return false
	}
	r := backRank(c)
	if from != NewSquare(4, r) {
		return false
	}
	rookFrom, _ := castleRookSquares(c, side)
	if p.At(rookFrom) != NewPiece(Rook, c) {
		return false
	}

	// Squares between king and rook must be empty.
	lo, hi := 5, 6
	if side == QueenSide {
		lo, hi = 1, 3
	}
	for f := lo; f <= hi; f++ {
		if p.Cells[r][f] != Empty {
			return false
		}
	}

	// King start, transit and landing squares.
	them := c.Other()
	step := 1
	if side == QueenSide {
		step = -1
	}
	for i := 0; i <= 2; i++ {
		if p.UnderControl(NewSquare(4+i*step, r), them) {
			return false
		}
	}
	return true
}

// Mobility counts the destination squares available to the pieces of color c:
// pawn pushes, double pushes, captures and en passant; knight and slider moves
// onto empty or enemy squares; king steps onto squares the opponent does not
// control. Castling is not counted and promotions count once per square.
func (p *Position) Mobility(c Color) int {
	n := 0
	for r := 0; r < 8; r++ {
		for f := 0; f < 8; f++ {
			pc := p.Cells[r][f]
			if !pc.Is(c) {
				continue
			}
			from := NewSquare(f, r)
			switch pc.Type() {
			case Pawn:
				n += p.pawnMobility(from, c)
			case Knight:
				n += p.leaperMobility(from, c, knightOffsets[:], false)
			case Bishop:
				n += p.sliderMobility(from, c, bishopDirs[:])
			case Rook:
				n += p.sliderMobility(from, c, rookDirs[:])
			case Queen:
				n += p.sliderMobility(from, c, queenDirs[:])
			case King:
				n += p.leaperMobility(from, c, queenDirs[:], true)
			}
		}
	}
	return n
}

func (p *Position) pawnMobility(from Square, c Color) int {
	dir := pawnDir(c)
	r, f := from.Rank(), from.File()
	nr := r + dir
	if nr < 0 || nr > 7 {
		return 0
	}
	n := 0
	if p.Cells[nr][f] == Empty {
		n++
		if from.RelativeRank(c) == 1 && p.Cells[nr+dir][f] == Empty {
			n++
		}
	}
	for _, df := range [2]int{-1, 1} {
		nf := f + df
		if nf < 0 || nf > 7 {
			continue
		}
		if p.Cells[nr][nf].Is(c.Other()) || p.canEnPassant(from, nf, c) {
			n++
		}
	}
	return n
}

func (p *Position) leaperMobility(from Square, c Color, offsets [][2]int, safeOnly bool) int {
	n := 0
	r, f := from.Rank(), from.File()
	for _, o := range offsets {
		nr, nf := r+o[0], f+o[1]
		if !onBoard(nf, nr) || p.Cells[nr][nf].Is(c) {
			continue
		}
		if safeOnly && p.UnderControl(NewSquare(nf, nr), c.Other()) {
			continue
		}
		n++
	}
	return n
}

func (p *Position) sliderMobility(from Square, c Color, dirs [][2]int) int {
	n := 0
	for _, d := range dirs {
		r, f := from.Rank()+d[0], from.File()+d[1]
		for onBoard(f, r) {
			pc := p.Cells[r][f]
			if pc.Is(c) {
				break
			}
			n++
			if pc != Empty {
				break
			}
			r += d[0]
			f += d[1]
		}
	}
	return n
}

// Perft counts the leaf nodes of the legal move tree of the given depth from
// the side to move.
func (p *Position) Perft(depth int) uint64 {
	if depth == 0 {
		return 1
	}
	moves := p.GenerateLegalMoves()
	if depth == 1 {
		return uint64(moves.Len())
	}
	var nodes uint64
	for i := 0; i < moves.Len(); i++ {
		next := *p
		next.MakeMove(moves.Get(i))
		nodes += next.Perft(depth - 1)
	}
	return nodes
}

// Divide returns the perft count below each legal root move.
func (p *Position) Divide(depth int) map[string]uint64 {
	out := make(map[string]uint64)
	if depth < 1 {
		return out
	}
	moves := p.GenerateLegalMoves()
	for i := 0; i < moves.Len(); i++ {
		m := moves.Get(i)
		next := *p
		next.MakeMove(m)
		out[m.String()] = next.Perft(depth - 1)
	}
	return out
}
