// Package board implements the chess position model, the attack and legality
// engine, move generation and the checkmate/stalemate detector.
package board

import "fmt"

// Square is a board index from a1 = 0 through h8 = 63, rank-major.
type Square uint8

// Named squares for the back ranks and common test positions.
const (
	A1 Square = 0
	C1 Square = 2
	D1 Square = 3
	E1 Square = 4
	F1 Square = 5
	G1 Square = 6
	H1 Square = 7

	E2 Square = 12
	F2 Square = 13

	C3 Square = 18
	E3 Square = 20

	E4 Square = 28

	E5 Square = 36
	F5 Square = 37

	D6 Square = 43
	F6 Square = 45

	D7 Square = 51
	E7 Square = 52

	A8 Square = 56
	C8 Square = 58
	D8 Square = 59
	E8 Square = 60
	G8 Square = 62
	H8 Square = 63

	NoSquare Square = 64
)

// File is 0 for the a-file through 7 for the h-file.
func (sq Square) File() int {
	return int(sq) & 7
}

// Rank is 0 for the first rank through 7 for the eighth.
func (sq Square) Rank() int {
	return int(sq) >> 3
}

// String returns the coordinate name, or "-" for NoSquare.
func (sq Square) String() string {
	if sq >= NoSquare {
		return "-"
	}
	return fmt.Sprintf("%c%c", 'a'+sq.File(), '1'+sq.Rank())
}

// NewSquare combines a file and a rank.
func NewSquare(file, rank int) Square {
	return Square(rank*8 + file)
}

// onBoard reports whether a file/rank pair lies on the board.
func onBoard(file, rank int) bool {
	return file >= 0 && file < 8 && rank >= 0 && rank < 8
}

// ParseSquare reads a coordinate name such as "e4".
func ParseSquare(s string) (Square, error) {
	if len(s) != 2 {
		return NoSquare, fmt.Errorf("invalid square: %s", s)
	}

	file := int(s[0]) - 'a'
	rank := int(s[1]) - '1'

	if !onBoard(file, rank) {
		return NoSquare, fmt.Errorf("invalid square: %s", s)
	}

	return NewSquare(file, rank), nil
}

// IsValid reports whether sq is on the board.
func (sq Square) IsValid() bool {
	return sq < NoSquare
}

// Mirror flips the rank, keeping the file.
func (sq Square) Mirror() Square {
	return sq ^ 56
}

// RelativeRank counts ranks from c's own back rank.
func (sq Square) RelativeRank(c Color) int {
	if c == White {
		return sq.Rank()
	}
	return 7 - sq.Rank()
}
