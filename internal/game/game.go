// Package game holds an interactive chess session: validated moves from a
// player, trusted moves replayed from known-good notation, and engine moves.
package game

import (
	"fmt"

	"github.com/rs/zerolog"

	"github.com/hailam/chesscore/internal/board"
	"github.com/hailam/chesscore/internal/engine"
)

// PromotionChooser supplies the piece a pawn promotes to in real play.
// It is asked exactly once per promoting move.
type PromotionChooser interface {
	ChoosePromotion(side board.Color) board.PieceType
}

// PromotionFunc adapts a function to PromotionChooser.
type PromotionFunc func(side board.Color) board.PieceType

// ChoosePromotion calls f.
func (f PromotionFunc) ChoosePromotion(side board.Color) board.PieceType {
	return f(side)
}

// AlwaysQueen promotes every pawn to a queen.
var AlwaysQueen PromotionChooser = PromotionFunc(func(board.Color) board.PieceType {
	return board.Queen
})

// MoveFinder picks a move for the side to move.
type MoveFinder interface {
	BestMove(pos *board.Position) (engine.EngineMove, bool)
}

// Game is a single chess game.
type Game struct {
	position    *board.Position
	moveHistory []board.Move
	sanHistory  []string

	promoter PromotionChooser
	log      zerolog.Logger
}

// Option customizes a Game.
type Option func(*Game)

// WithPromotionChooser sets the promotion-choice source. The default is AlwaysQueen.
func WithPromotionChooser(pc PromotionChooser) Option {
	return func(g *Game) {
		if pc != nil {
			g.promoter = pc
		}
	}
}

// WithLogger sets the logger used to trace moves.
func WithLogger(l zerolog.Logger) Option {
	return func(g *Game) {
		g.log = l
	}
}

// New creates a game from the standard starting position.
func New(opts ...Option) *Game {
	g := &Game{
		position: board.NewPosition(),
		promoter: AlwaysQueen,
		log:      zerolog.Nop(),
	}
	for _, o := range opts {
		o(g)
	}
	return g
}

// NewFromFEN creates a game from a FEN string.
func NewFromFEN(fen string, opts ...Option) (*Game, error) {
	pos, err := board.ParseFEN(fen)
	if err != nil {
		return nil, fmt.Errorf("new game: %w", err)
	}
	g := New(opts...)
	g.position = pos
	return g, nil
}

// HandleMove validates and plays a move of the side to move from one square
// to another. It returns the move in SAN, or "" when the move is illegal.
//
// Dropping the king on its own castling rook is read as castling toward
// that rook.
func (g *Game) HandleMove(from, to board.Square) string {
	to = g.castlingTarget(from, to)

	m, ok := g.position.ValidateMove(from, to, board.Queen)
	if !ok {
		g.log.Debug().Stringer("from", from).Stringer("to", to).Msg("move rejected")
		return ""
	}
	if m.IsPromotion() {
		m = board.NewPromotion(from, to, g.choosePromotion())
	}
	return g.apply(m)
}

// castlingTarget maps a king-onto-own-rook request to the king's castling square.
func (g *Game) castlingTarget(from, to board.Square) board.Square {
	pos := g.position
	king := pos.At(from)
	if king.Type() != board.King || pos.At(to) != board.NewPiece(board.Rook, king.Color()) {
		return to
	}
	switch {
	case from == board.E1 && to == board.H1:
		return board.G1
	case from == board.E1 && to == board.A1:
		return board.C1
	case from == board.E8 && to == board.H8:
		return board.G8
	case from == board.E8 && to == board.A8:
		return board.C8
	}
	return to
}

func (g *Game) choosePromotion() board.PieceType {
	pt := g.promoter.ChoosePromotion(g.position.SideToMove)
	if !pt.IsPromotion() {
		return board.Queen
	}
	return pt
}

// PlayMove applies a 4 or 5 character coordinate move without checking
// legality. A missing promotion letter on a last-rank pawn move promotes to
// a queen. It fails only when the string cannot be decoded or names an
// empty origin square.
func (g *Game) PlayMove(s string) error {
	m, err := board.ParseMove(s, g.position)
	if err != nil {
		return fmt.Errorf("play move: %w", err)
	}
	g.apply(m)
	return nil
}

// EngineMove asks finder for a move for the side to move and plays it.
// A promoting move takes its piece from the promotion-choice source.
func (g *Game) EngineMove(finder MoveFinder) (engine.EngineMove, bool) {
	best, ok := finder.BestMove(g.position)
	if !ok {
		return best, false
	}
	m := best.Move
	if m.IsPromotion() {
		m = board.NewPromotion(m.From(), m.To(), g.choosePromotion())
		best.Move = m
	}
	best.Notation = g.apply(m)
	return best, true
}

// apply records and plays m, returning its SAN.
func (g *Game) apply(m board.Move) string {
	san := m.ToSAN(g.position)
	g.position.MakeMove(m)
	g.moveHistory = append(g.moveHistory, m)
	g.sanHistory = append(g.sanHistory, san)

	g.log.Debug().Str("move", m.String()).Str("san", san).Msg("move played")
	return san
}

// Status returns the state of the game for the side to move.
func (g *Game) Status() board.Status {
	return g.position.Status(g.position.SideToMove)
}

// GameOver returns true if the side to move is checkmated or stalemated.
func (g *Game) GameOver() bool {
	return g.Status() != board.Ongoing
}

// Result returns the PGN result string.
func (g *Game) Result() string {
	switch g.Status() {
	case board.Checkmate:
		if g.position.SideToMove == board.White {
			return "0-1"
		}
		return "1-0"
	case board.Stalemate:
		return "1/2-1/2"
	}
	return "*"
}

// Position returns a copy of the current position.
func (g *Game) Position() *board.Position {
	return g.position.Copy()
}

// SideToMove returns the color to move.
func (g *Game) SideToMove() board.Color {
	return g.position.SideToMove
}

// Moves returns the moves played so far.
func (g *Game) Moves() []board.Move {
	return append([]board.Move(nil), g.moveHistory...)
}

// History returns the SAN of the moves played so far.
func (g *Game) History() []string {
	return append([]string(nil), g.sanHistory...)
}
