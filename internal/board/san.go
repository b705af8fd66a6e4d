package board

import (
	"fmt"
	"strings"
)

const sanLetters = " PNBRQK"

// ToSAN converts a move to Standard Algebraic Notation.
func (m Move) ToSAN(pos *Position) string {
	if m == NoMove {
		return "-"
	}

	from := m.From()
	to := m.To()
	piece := pos.At(from)

	if piece == Empty {
		return m.String()
	}

	var sb strings.Builder

	if m.IsCastling() {
		if to > from {
			sb.WriteString("O-O")
		} else {
			sb.WriteString("O-O-O")
		}
	} else {
		pt := piece.Type()

		if pt != Pawn {
			sb.WriteByte(sanLetters[pt])
			sb.WriteString(disambiguation(pos, m, piece))
		}

		if m.IsCapture(pos) {
			if pt == Pawn {
				// Pawn captures include the file of origin
				sb.WriteByte('a' + byte(from.File()))
			}
			sb.WriteByte('x')
		}

		sb.WriteString(to.String())

		if m.IsPromotion() {
			sb.WriteByte('=')
			sb.WriteByte(sanLetters[m.Promotion()])
		}
	}

	next := *pos
	next.MakeMove(m)
	them := piece.Color().Other()
	if next.InCheck(them) {
		if next.HasLegalMoves(them) {
			sb.WriteByte('+')
		} else {
			sb.WriteByte('#')
		}
	}

	return sb.String()
}

// disambiguation returns the origin file, rank, or square needed to tell m
// apart from other legal moves of the same piece kind to the same square.
func disambiguation(pos *Position, m Move, piece Piece) string {
	from := m.From()
	to := m.To()

	sameFile, sameRank, ambiguous := false, false, false
	moves := pos.LegalMovesFor(piece.Color())
	for i := 0; i < moves.Len(); i++ {
		other := moves.Get(i)
		if other.To() != to || other.From() == from || pos.At(other.From()) != piece {
			continue
		}
		ambiguous = true
		if other.From().File() == from.File() {
			sameFile = true
		}
		if other.From().Rank() == from.Rank() {
			sameRank = true
		}
	}

	switch {
	case !ambiguous:
		return ""
	case !sameFile:
		return string(rune('a' + from.File()))
	case !sameRank:
		return string(rune('1' + from.Rank()))
	default:
		return from.String()
	}
}

// ParseSAN parses a SAN string against the legal moves of the side to move.
func ParseSAN(s string, pos *Position) (Move, error) {
	s = strings.TrimSpace(s)
	s = strings.TrimRight(s, "+#!?")

	if s == "O-O" || s == "0-0" || s == "O-O-O" || s == "0-0-0" {
		side := KingSide
		if len(s) == 5 {
			side = QueenSide
		}
		r := backRank(pos.SideToMove)
		m := NewCastling(NewSquare(4, r), castleKingTarget(pos.SideToMove, side))
		if !pos.IsLegal(m) {
			return NoMove, fmt.Errorf("%w: %s", ErrInvalidMove, s)
		}
		return m, nil
	}

	promo := NoPieceType
	if idx := strings.Index(s, "="); idx >= 0 && idx+1 < len(s) {
		promo = PromotionFromChar(s[idx+1])
		s = s[:idx]
	}

	isCapture := strings.Contains(s, "x")
	s = strings.ReplaceAll(s, "x", "")

	pt := Pawn
	if len(s) > 0 && s[0] >= 'A' && s[0] <= 'Z' {
		idx := strings.IndexByte(sanLetters, s[0])
		if idx < int(Knight) {
			return NoMove, fmt.Errorf("%w: %s", ErrInvalidMove, s)
		}
		pt = PieceType(idx)
		s = s[1:]
	}

	if len(s) < 2 {
		return NoMove, fmt.Errorf("%w: %s", ErrInvalidMove, s)
	}
	dest, err := ParseSquare(s[len(s)-2:])
	if err != nil {
		return NoMove, fmt.Errorf("%w: %v", ErrInvalidMove, err)
	}
	s = s[:len(s)-2]

	fileHint, rankHint := -1, -1
	for _, c := range s {
		switch {
		case c >= 'a' && c <= 'h':
			fileHint = int(c - 'a')
		case c >= '1' && c <= '8':
			rankHint = int(c - '1')
		}
	}

	moves := pos.GenerateLegalMoves()
	for i := 0; i < moves.Len(); i++ {
		m := moves.Get(i)
		if m.To() != dest || m.IsCastling() {
			continue
		}
		from := m.From()
		if pos.At(from).Type() != pt {
			continue
		}
		if fileHint >= 0 && from.File() != fileHint {
			continue
		}
		if rankHint >= 0 && from.Rank() != rankHint {
			continue
		}
		if isCapture && !m.IsCapture(pos) {
			continue
		}
		if m.IsPromotion() {
			want := promo
			if want == NoPieceType {
				want = Queen
			}
			if m.Promotion() != want {
				continue
			}
		}
		return m, nil
	}

	return NoMove, fmt.Errorf("%w: no legal move matches %q", ErrInvalidMove, s)
}
