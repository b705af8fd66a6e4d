package board

// Status is the terminal state of a position for one side.
type Status uint8

const (
	Ongoing Status = iota
	Checkmate
	Stalemate
)

// String returns the status name.
func (s Status) String() string {
	switch s {
	case Checkmate:
		return "checkmate"
	case Stalemate:
		return "stalemate"
	default:
		return "ongoing"
	}
}

// IsCheckmate reports whether c is in check with no legal reply.
func (p *Position) IsCheckmate(c Color) bool {
	return p.InCheck(c) && !p.HasLegalMoves(c)
}

// IsStalemate reports whether c is not in check and has no legal move.
func (p *Position) IsStalemate(c Color) bool {
	return !p.InCheck(c) && !p.HasLegalMoves(c)
}

// Status classifies the position for c, generating moves at most once.
func (p *Position) Status(c Color) Status {
	if p.HasLegalMoves(c) {
		return Ongoing
	}
	if p.InCheck(c) {
		return Checkmate
	}
	return Stalemate
}
