package board

import (
	"fmt"
	"strings"
)

// Castling sides, used as the second index of Position.Castling.
const (
	KingSide  = 0
	QueenSide = 1
)

// Position represents a complete chess position on an 8x8 mailbox grid.
// It is a plain value: assigning or copying it never aliases board state.
type Position struct {
	// Cells is indexed [rank][file]; Cells[0][0] is a1.
	Cells [8][8]Piece

	// EnPassant[c][f] is true when a pawn of color c just advanced two
	// squares on file f and may be captured en passant on the next ply.
	EnPassant [2][8]bool

	// Castling[c][KingSide|QueenSide] holds the remaining castling rights.
	Castling [2][2]bool

	SideToMove     Color
	HalfMoveClock  int // Moves since last pawn move or capture (for 50-move rule)
	FullMoveNumber int // Full move counter, starts at 1
}

var startingRank = [8]PieceType{Rook, Knight, Bishop, Queen, King, Bishop, Knight, Rook}

// NewPosition creates the starting position.
func NewPosition() *Position {
	p := &Position{FullMoveNumber: 1}
	for f := 0; f < 8; f++ {
		p.Cells[0][f] = NewPiece(startingRank[f], White)
		p.Cells[1][f] = WhitePawn
		p.Cells[6][f] = BlackPawn
		p.Cells[7][f] = NewPiece(startingRank[f], Black)
	}
	p.Castling = [2][2]bool{{true, true}, {true, true}}
	return p
}

// Copy creates a deep copy of the position.
func (p *Position) Copy() *Position {
	newPos := *p
	return &newPos
}

// At returns the piece at the given square, or Empty.
func (p *Position) At(sq Square) Piece {
	return p.Cells[sq.Rank()][sq.File()]
}

// Set places a piece (or Empty) on a square.
func (p *Position) Set(sq Square, piece Piece) {
	p.Cells[sq.Rank()][sq.File()] = piece
}

// IsEmpty returns true if the square is empty.
func (p *Position) IsEmpty(sq Square) bool {
	return p.At(sq) == Empty
}

// OccupiedBy reports whether the square holds a piece of color c.
func (p *Position) OccupiedBy(sq Square, c Color) bool {
	return p.At(sq).Is(c)
}

// IsWhite reports whether the square holds a white piece.
func (p *Position) IsWhite(sq Square) bool { return p.At(sq) > 0 }

// IsBlack reports whether the square holds a black piece.
func (p *Position) IsBlack(sq Square) bool { return p.At(sq) < 0 }

// MovePiece overwrites the destination with the piece on from and clears from.
// No rule is checked here.
func (p *Position) MovePiece(from, to Square) {
	p.Set(to, p.At(from))
	p.Set(from, Empty)
}

// KingCount returns the number of kings of color c on the board.
func (p *Position) KingCount(c Color) int {
	king := NewPiece(King, c)
	n := 0
	for r := 0; r < 8; r++ {
		for f := 0; f < 8; f++ {
			if p.Cells[r][f] == king {
				n++
			}
		}
	}
	return n
}

// KingSquare returns the square of the king of color c, or NoSquare when the
// side has no king or more than one.
func (p *Position) KingSquare(c Color) Square {
	king := NewPiece(King, c)
	found := NoSquare
	for r := 0; r < 8; r++ {
		for f := 0; f < 8; f++ {
			if p.Cells[r][f] != king {
				continue
			}
			if found != NoSquare {
				return NoSquare
			}
			found = NewSquare(f, r)
		}
	}
	return found
}

// ClearEnPassant drops every en passant window of color c.
func (p *Position) ClearEnPassant(c Color) {
	p.EnPassant[c] = [8]bool{}
}

// EnPassantSquare returns the capture target square implied by the flags of
// the side that just moved, or NoSquare.
func (p *Position) EnPassantSquare() Square {
	mover := p.SideToMove.Other()
	for f := 0; f < 8; f++ {
		if !p.EnPassant[mover][f] {
			continue
		}
		if mover == White {
			return NewSquare(f, 2)
		}
		return NewSquare(f, 5)
	}
	return NoSquare
}

// Material returns the material balance (positive favors white).
func (p *Position) Material() int {
	score := 0
	for r := 0; r < 8; r++ {
		for f := 0; f < 8; f++ {
			pc := p.Cells[r][f]
			if pc == Empty {
				continue
			}
			score += pc.Value() * pc.Color().Sign()
		}
	}
	return score
}

// Mirror returns the color-flipped, rank-mirrored counterpart of the position:
// every white piece becomes a black piece on the mirrored square and vice versa,
// with flags and side to move swapped accordingly.
func (p *Position) Mirror() *Position {
	m := &Position{
		SideToMove:     p.SideToMove.Other(),
		HalfMoveClock:  p.HalfMoveClock,
		FullMoveNumber: p.FullMoveNumber,
	}
	for r := 0; r < 8; r++ {
		for f := 0; f < 8; f++ {
			m.Cells[7-r][f] = -p.Cells[r][f]
		}
	}
	m.EnPassant[White], m.EnPassant[Black] = p.EnPassant[Black], p.EnPassant[White]
	m.Castling[White], m.Castling[Black] = p.Castling[Black], p.Castling[White]
	return m
}

// String returns a visual representation of the position.
func (p *Position) String() string {
	var sb strings.Builder
	sb.WriteString("\n")
	for rank := 7; rank >= 0; rank-- {
		fmt.Fprintf(&sb, "%d  ", rank+1)
		for file := 0; file < 8; file++ {
			piece := p.Cells[rank][file]
			if piece == Empty {
				sb.WriteString(". ")
			} else {
				sb.WriteString(piece.String() + " ")
			}
		}
		sb.WriteString("\n")
	}
	sb.WriteString("\n   a b c d e f g h\n\n")
	fmt.Fprintf(&sb, "Side to move: %s\n", p.SideToMove)
	fmt.Fprintf(&sb, "Castling: %s\n", p.castlingString())
	fmt.Fprintf(&sb, "En passant: %s\n", p.EnPassantSquare())
	fmt.Fprintf(&sb, "Half-move clock: %d\n", p.HalfMoveClock)
	fmt.Fprintf(&sb, "Full move: %d\n", p.FullMoveNumber)
	return sb.String()
}

// castlingString returns the FEN castling rights string.
func (p *Position) castlingString() string {
	s := ""
	if p.Castling[White][KingSide] {
		s += "K"
	}
	if p.Castling[White][QueenSide] {
		s += "Q"
	}
	if p.Castling[Black][KingSide] {
		s += "k"
	}
	if p.Castling[Black][QueenSide] {
		s += "q"
	}
	if s == "" {
		return "-"
	}
	return s
}

// Validate checks that the position is usable for legality queries.
func (p *Position) Validate() error {
	if p.KingCount(White) != 1 {
		return fmt.Errorf("white must have exactly one king")
	}
	if p.KingCount(Black) != 1 {
		return fmt.Errorf("black must have exactly one king")
	}
	for f := 0; f < 8; f++ {
		if p.Cells[0][f].Type() == Pawn || p.Cells[7][f].Type() == Pawn {
			return fmt.Errorf("pawns cannot be on rank 1 or 8")
		}
	}
	if p.InCheck(p.SideToMove.Other()) {
		return fmt.Errorf("side not to move is in check")
	}
	return nil
}
