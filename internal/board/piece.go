package board

// Color represents the color of a piece or player.
type Color uint8

const (
	White Color = iota
	Black
)

// Other returns the opposite color.
func (c Color) Other() Color {
	return c ^ 1
}

// Sign returns +1 for White and -1 for Black.
func (c Color) Sign() int {
	if c == White {
		return 1
	}
	return -1
}

// String returns the color name.
func (c Color) String() string {
	switch c {
	case White:
		return "White"
	case Black:
		return "Black"
	default:
		return "NoColor"
	}
}

// PieceType is the unsigned kind of a piece (1-6).
type PieceType int8

const (
	NoPieceType PieceType = iota
	Pawn
	Knight
	Bishop
	Rook
	Queen
	King
)

// String returns the piece type name.
func (pt PieceType) String() string {
	switch pt {
	case Pawn:
		return "Pawn"
	case Knight:
		return "Knight"
	case Bishop:
		return "Bishop"
	case Rook:
		return "Rook"
	case Queen:
		return "Queen"
	case King:
		return "King"
	default:
		return "None"
	}
}

// Char returns the FEN character for the piece type (lowercase).
func (pt PieceType) Char() byte {
	if pt < NoPieceType || pt > King {
		return ' '
	}
	return " pnbrqk"[pt]
}

// IsPromotion reports whether pt is a legal promotion target.
func (pt PieceType) IsPromotion() bool {
	return pt >= Knight && pt <= Queen
}

// PieceValue returns the material value of a piece type in centipawns.
var PieceValue = [7]int{0, 100, 320, 330, 500, 900, 0}

// Piece is a signed cell value: the magnitude is the PieceType and the
// sign is the side (positive white, negative black). Zero is an empty cell.
type Piece int8

const (
	Empty       Piece = 0
	WhitePawn   Piece = Piece(Pawn)
	WhiteKnight Piece = Piece(Knight)
	WhiteBishop Piece = Piece(Bishop)
	WhiteRook   Piece = Piece(Rook)
	WhiteQueen  Piece = Piece(Queen)
	WhiteKing   Piece = Piece(King)
	BlackPawn   Piece = -Piece(Pawn)
	BlackKnight Piece = -Piece(Knight)
	BlackBishop Piece = -Piece(Bishop)
	BlackRook   Piece = -Piece(Rook)
	BlackQueen  Piece = -Piece(Queen)
	BlackKing   Piece = -Piece(King)
)

// NewPiece creates a Piece from PieceType and Color.
func NewPiece(pt PieceType, c Color) Piece {
	if pt <= NoPieceType || pt > King {
		return Empty
	}
	if c == Black {
		return -Piece(pt)
	}
	return Piece(pt)
}

// Type returns the PieceType of the piece.
func (p Piece) Type() PieceType {
	if p < 0 {
		return PieceType(-p)
	}
	return PieceType(p)
}

// Color returns the Color of the piece. Only meaningful for non-empty pieces.
func (p Piece) Color() Color {
	if p < 0 {
		return Black
	}
	return White
}

// IsWhite reports whether the piece belongs to White.
func (p Piece) IsWhite() bool { return p > 0 }

// IsBlack reports whether the piece belongs to Black.
func (p Piece) IsBlack() bool { return p < 0 }

// Is reports whether the piece is non-empty and belongs to c.
func (p Piece) Is(c Color) bool {
	if c == White {
		return p > 0
	}
	return p < 0
}

// String returns the FEN character for the piece.
// Uppercase for white, lowercase for black.
func (p Piece) String() string {
	if p == Empty || p.Type() > King {
		return " "
	}
	if p > 0 {
		return string("PNBRQK"[p-1])
	}
	return string("pnbrqk"[-p-1])
}

// PieceFromChar converts a FEN character to a Piece.
func PieceFromChar(c byte) Piece {
	switch c {
	case 'P':
		return WhitePawn
	case 'N':
		return WhiteKnight
	case 'B':
		return WhiteBishop
	case 'R':
		return WhiteRook
	case 'Q':
		return WhiteQueen
	case 'K':
		return WhiteKing
	case 'p':
		return BlackPawn
	case 'n':
		return BlackKnight
	case 'b':
		return BlackBishop
	case 'r':
		return BlackRook
	case 'q':
		return BlackQueen
	case 'k':
		return BlackKing
	default:
		return Empty
	}
}

// PromotionFromChar maps a promotion letter (either case) to a PieceType.
func PromotionFromChar(c byte) PieceType {
	switch c {
	case 'n', 'N':
		return Knight
	case 'b', 'B':
		return Bishop
	case 'r', 'R':
		return Rook
	case 'q', 'Q':
		return Queen
	default:
		return NoPieceType
	}
}

// Value returns the material value of the piece in centipawns.
func (p Piece) Value() int {
	return PieceValue[p.Type()]
}
