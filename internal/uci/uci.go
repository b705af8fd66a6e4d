// Package uci drives a game and the engine over a UCI-style line protocol.
package uci

import (
	"bufio"
	"fmt"
	"io"
	"math"
	"strconv"
	"strings"
	"time"

	"github.com/rs/zerolog"
	"golang.org/x/exp/slices"

	"github.com/hailam/chesscore/internal/board"
	"github.com/hailam/chesscore/internal/engine"
	"github.com/hailam/chesscore/internal/game"
	"github.com/hailam/chesscore/internal/storage"
)

// RushStore records puzzle-rush results.
type RushStore interface {
	SubmitRush(score int, elapsed time.Duration) (bool, storage.RushRecord, error)
}

// UCI implements the protocol loop.
type UCI struct {
	opts   engine.Options
	engine *engine.Engine
	game   *game.Game

	// promotion piece for the next "move" command
	promo board.PieceType

	store RushStore
	in    io.Reader
	out   io.Writer
	log   zerolog.Logger
}

// Option customizes a UCI handler.
type Option func(*UCI)

// WithLogger sets the logger shared with the engine and the game.
func WithLogger(l zerolog.Logger) Option {
	return func(u *UCI) {
		u.log = l
	}
}

// WithStore attaches the puzzle-rush record store.
func WithStore(s RushStore) Option {
	return func(u *UCI) {
		u.store = s
	}
}

// New creates a protocol handler reading commands from in and writing
// responses to out.
func New(opts engine.Options, in io.Reader, out io.Writer, options ...Option) *UCI {
	u := &UCI{
		in:    in,
		out:   out,
		log:   zerolog.Nop(),
		promo: board.Queen,
	}
	for _, o := range options {
		o(u)
	}
	u.setOptions(opts)
	u.game = u.newGame()
	return u
}

func (u *UCI) setOptions(opts engine.Options) {
	u.engine = engine.New(opts, engine.WithLogger(u.log))
	u.opts = u.engine.Options()
}

func (u *UCI) gameOptions() []game.Option {
	return []game.Option{
		game.WithLogger(u.log),
		game.WithPromotionChooser(game.PromotionFunc(u.choosePromotion)),
	}
}

func (u *UCI) newGame() *game.Game {
	return game.New(u.gameOptions()...)
}

func (u *UCI) choosePromotion(board.Color) board.PieceType {
	return u.promo
}

func (u *UCI) printf(format string, args ...any) {
	fmt.Fprintf(u.out, format, args...)
}

// Run processes commands until "quit" or the end of input.
func (u *UCI) Run() error {
	scanner := bufio.NewScanner(u.in)

	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		if line == "" {
			continue
		}

		parts := strings.Fields(line)
		cmd := parts[0]
		args := parts[1:]

		switch cmd {
		case "uci":
			u.handleUCI()
		case "isready":
			u.printf("readyok\n")
		case "ucinewgame":
			u.game = u.newGame()
		case "position":
			u.handlePosition(args)
		case "setoption":
			u.handleSetOption(args)
		case "go":
			u.handleGo(args)
		case "top":
			u.handleTop()
		case "move":
			u.handleMove(args)
		case "play":
			u.handlePlay()
		case "eval":
			u.handleEval()
		case "status":
			u.handleStatus()
		case "rush":
			u.handleRush(args)
		// Debug commands
		case "d":
			pos := u.game.Position()
			u.printf("%s\nFen: %s\n", pos, pos.ToFEN())
		case "perft":
			u.handlePerft(args, false)
		case "divide":
			u.handlePerft(args, true)
		case "quit":
			return nil
		default:
			u.log.Warn().Str("command", cmd).Msg("unknown command")
			u.printf("info string unknown command %s\n", cmd)
		}
	}

	return scanner.Err()
}

// handleUCI responds to the "uci" command.
func (u *UCI) handleUCI() {
	u.printf("id name ChessCore\n")
	u.printf("id author ChessCore Team\n")
	u.printf("\n")
	u.printf("option name Depth type spin default %d min 1 max 8\n", u.opts.Depth)
	u.printf("option name Workers type spin default %d min 1 max 64\n", u.opts.Workers)
	u.printf("option name TopMoves type spin default %d min 0 max 20\n", u.opts.TopCount)
	u.printf("uciok\n")
}

// handlePosition parses and sets up a position.
// Formats:
//   - position startpos
//   - position startpos moves e2e4 e7e5
//   - position fen <fen>
//   - position fen <fen> moves e2e4
//
// Moves are replayed without legality checks.
func (u *UCI) handlePosition(args []string) {
	if len(args) == 0 {
		return
	}

	movesAt := slices.Index(args, "moves")
	end := len(args)
	if movesAt >= 0 {
		end = movesAt
	}

	var g *game.Game
	switch args[0] {
	case "startpos":
		g = u.newGame()
	case "fen":
		var err error
		g, err = game.NewFromFEN(strings.Join(args[1:end], " "), u.gameOptions()...)
		if err != nil {
			u.printf("info string %v\n", err)
			return
		}
	default:
		return
	}

	if movesAt >= 0 {
		for _, m := range args[movesAt+1:] {
			if err := g.PlayMove(m); err != nil {
				u.printf("info string invalid move %s: %v\n", m, err)
				break
			}
		}
	}
	u.game = g
}

// handleSetOption processes "setoption name <name> value <value>".
func (u *UCI) handleSetOption(args []string) {
	var name, value string
	if i := slices.Index(args, "name"); i >= 0 && i+1 < len(args) {
		name = args[i+1]
	}
	if i := slices.Index(args, "value"); i >= 0 && i+1 < len(args) {
		value = args[i+1]
	}

	n, err := strconv.Atoi(value)
	if err != nil {
		u.printf("info string invalid value %q for %s\n", value, name)
		return
	}

	opts := u.opts
	switch strings.ToLower(name) {
	case "depth":
		opts.Depth = n
	case "workers":
		opts.Workers = n
	case "topmoves":
		opts.TopCount = n
	default:
		u.printf("info string unknown option %s\n", name)
		return
	}
	if err := opts.Validate(); err != nil {
		u.printf("info string %v\n", err)
		return
	}
	u.setOptions(opts)
}

// handleGo searches the current position and reports the best move.
// Only "go depth N" is honoured; other limits are ignored.
func (u *UCI) handleGo(args []string) {
	eng := u.engine
	if i := slices.Index(args, "depth"); i >= 0 && i+1 < len(args) {
		if d, err := strconv.Atoi(args[i+1]); err == nil && d > 0 {
			opts := u.opts
			opts.Depth = d
			eng = engine.New(opts, engine.WithLogger(u.log))
		}
	}

	pos := u.game.Position()
	start := time.Now()
	best, ok := eng.BestMove(pos)
	elapsed := time.Since(start)
	if !ok {
		u.printf("bestmove 0000\n")
		return
	}

	u.printf("info depth %d score %s nodes %d time %d\n",
		eng.Options().Depth, uciScore(best.Score, pos.SideToMove, eng.Options().Depth),
		best.Nodes, elapsed.Milliseconds())
	u.printf("bestmove %s\n", best.Move)
}

// uciScore converts a white-relative score in pawns to the side-to-move
// relative "cp" or "mate" form.
func uciScore(pawns float64, side board.Color, depth int) string {
	cp := int(math.Round(pawns * 100))
	if side == board.Black {
		cp = -cp
	}

	mate := cp
	if mate < 0 {
		mate = -mate
	}
	if mate < engine.MateScore {
		return fmt.Sprintf("cp %d", cp)
	}

	// a mate found with r plies of search left was delivered after depth-r plies
	plies := depth - (mate - engine.MateScore)
	moves := (plies + 1) / 2
	if cp < 0 {
		moves = -moves
	}
	return fmt.Sprintf("mate %d", moves)
}

// handleTop lists the advisory moves for white.
func (u *UCI) handleTop() {
	pos := u.game.Position()
	if pos.SideToMove != board.White {
		u.printf("top none\n")
		return
	}
	top := u.engine.TopMoves(pos)
	if len(top) == 0 {
		u.printf("top none\n")
		return
	}
	for i, m := range top {
		u.printf("top %d %s %s %.2f\n", i+1, m.Move, m.Notation, m.Score)
	}
}

// handleMove validates and plays "move <from><to>[promotion]" or "move <san>".
func (u *UCI) handleMove(args []string) {
	if len(args) == 0 {
		u.printf("illegal move\n")
		return
	}
	s := args[0]

	from, to, promo, ok := parseCoordinates(s)
	if !ok {
		m, err := board.ParseSAN(s, u.game.Position())
		if err != nil {
			u.printf("illegal move %s\n", s)
			return
		}
		from, to, promo = m.From(), m.To(), board.Queen
		if m.IsPromotion() {
			promo = m.Promotion()
		}
	}

	u.promo = promo
	san := u.game.HandleMove(from, to)
	if san == "" {
		u.printf("illegal move %s\n", s)
		return
	}
	u.printf("played %s\n", san)
	u.reportGameEnd()
}

// parseCoordinates splits "e7e8q" into its squares and promotion piece,
// defaulting to a queen.
func parseCoordinates(s string) (from, to board.Square, promo board.PieceType, ok bool) {
	if len(s) < 4 || len(s) > 5 {
		return board.NoSquare, board.NoSquare, board.NoPieceType, false
	}
	from, err1 := board.ParseSquare(s[0:2])
	to, err2 := board.ParseSquare(s[2:4])
	if err1 != nil || err2 != nil {
		return board.NoSquare, board.NoSquare, board.NoPieceType, false
	}
	promo = board.Queen
	if len(s) == 5 {
		if pt := board.PromotionFromChar(s[4]); pt != board.NoPieceType {
			promo = pt
		}
	}
	return from, to, promo, true
}

// handlePlay lets the engine move for the side to move.
func (u *UCI) handlePlay() {
	u.promo = board.Queen
	best, ok := u.game.EngineMove(u.engine)
	if !ok {
		u.printf("no move\n")
		return
	}
	u.printf("played %s %.2f\n", best.Notation, best.Score)
	u.reportGameEnd()
}

func (u *UCI) reportGameEnd() {
	if u.game.GameOver() {
		u.printf("game over %s %s\n", u.game.Status(), u.game.Result())
	}
}

// handleEval prints the static evaluation and the material balance in pawns.
func (u *UCI) handleEval() {
	pos := u.game.Position()
	u.printf("eval %s material %.2f\n",
		engine.ScoreToString(u.engine.Evaluate(pos)), engine.Pawns(pos.Material()))
}

func (u *UCI) handleStatus() {
	pos := u.game.Position()
	u.printf("status %s %s check %t\n", u.game.Status(), u.game.Result(), pos.InCheck(pos.SideToMove))
}

// handleRush records "rush <score> <seconds>".
func (u *UCI) handleRush(args []string) {
	if u.store == nil {
		u.printf("info string no record store\n")
		return
	}
	if len(args) != 2 {
		u.printf("info string usage: rush <score> <seconds>\n")
		return
	}
	score, err1 := strconv.Atoi(args[0])
	secs, err2 := strconv.ParseFloat(args[1], 64)
	if err1 != nil || err2 != nil {
		u.printf("info string usage: rush <score> <seconds>\n")
		return
	}

	elapsed := time.Duration(secs * float64(time.Second))
	isNew, best, err := u.store.SubmitRush(score, elapsed)
	if err != nil {
		u.log.Error().Err(err).Msg("rush not recorded")
		u.printf("info string %v\n", err)
		return
	}
	if isNew {
		u.printf("rush new record %d in %v\n", best.Score, best.Elapsed)
		return
	}
	u.printf("rush best %d in %v\n", best.Score, best.Elapsed)
}

// handlePerft runs a perft test, optionally split by root move.
func (u *UCI) handlePerft(args []string, divide bool) {
	depth := 3
	if len(args) > 0 {
		if d, err := strconv.Atoi(args[0]); err == nil && d >= 0 {
			depth = d
		}
	}
	pos := u.game.Position()

	start := time.Now()
	var nodes uint64
	if divide {
		counts := pos.Divide(depth)
		keys := make([]string, 0, len(counts))
		for k := range counts {
			keys = append(keys, k)
		}
		slices.Sort(keys)
		for _, k := range keys {
			u.printf("%s: %d\n", k, counts[k])
			nodes += counts[k]
		}
	} else {
		nodes = u.engine.Perft(pos, depth)
	}
	elapsed := time.Since(start)

	u.printf("Nodes: %d\n", nodes)
	u.printf("Time: %v\n", elapsed)
	if elapsed > 0 {
		u.printf("NPS: %.0f\n", float64(nodes)/elapsed.Seconds())
	}
}
