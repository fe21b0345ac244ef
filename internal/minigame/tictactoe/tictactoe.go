// Package tictactoe implements the short tic-tac-toe played after round 2.
//
// X always belongs to the humans (player1, joined by player2 in coop) and
// moves first. O is player2 in PvP and the bot otherwise. Each side has a
// limited number of moves; running out without a line is a draw.
package tictactoe

import (
	"errors"
	"fmt"
	"math/rand"

	"github.com/vovakirdan/cyberjump/internal/core"
	"github.com/vovakirdan/cyberjump/internal/match"
	"github.com/vovakirdan/cyberjump/internal/minigame"
	"github.com/vovakirdan/cyberjump/internal/registry"
)

func init() {
	registry.Register(match.ActivityTicTacToe.String(), "Tic-Tac-Toe", func(p minigame.Params) minigame.Provider {
		return New(p)
	})
}

// Mark is the content of a cell.
type Mark int

const (
	Empty Mark = iota
	X
	O
)

func (m Mark) String() string {
	switch m {
	case X:
		return "X"
	case O:
		return "O"
	default:
		return " "
	}
}

var (
	ErrGameOver     = errors.New("tictactoe: game is over")
	ErrNotYourTurn  = errors.New("tictactoe: not your turn")
	ErrCellTaken    = errors.New("tictactoe: cell already occupied")
	ErrCellOutRange = errors.New("tictactoe: cell out of range")
)

var winLines = [][3]int{
	{0, 1, 2}, {3, 4, 5}, {6, 7, 8}, // rows
	{0, 3, 6}, {1, 4, 7}, {2, 5, 8}, // cols
	{0, 4, 8}, {2, 4, 6}, // diags
}

// Game is a single tic-tac-toe game.
type Game struct {
	mode     match.GameMode
	rng      *rand.Rand
	clock    minigame.Clock
	maxMoves int
	botDelay int

	board   [9]Mark
	moves   map[Mark]int
	turn    Mark
	cursor  int
	waited  int // ticks the bot has waited this turn
	winner  match.PlayerID
	done    bool
	botSide bool
}

// New creates a game for the params' mode.
func New(p minigame.Params) *Game {
	g := &Game{
		mode:     p.Mode,
		rng:      p.RNG(),
		clock:    minigame.NewClock(p.Runtime, 0),
		maxMoves: p.Config.TicTacToe.MaxMovesPerSide,
		moves:    map[Mark]int{X: 0, O: 0},
		turn:     X,
		cursor:   4,
		botSide:  p.Mode.HasBot(),
	}
	g.botDelay = g.clock.Ticks(p.Config.TicTacToe.BotDelaySeconds)
	if g.maxMoves <= 0 {
		g.maxMoves = 3
	}
	return g
}

// Kind implements minigame.Provider.
func (g *Game) Kind() string { return match.ActivityTicTacToe.String() }

// Step implements minigame.Provider.
func (g *Game) Step(in core.MultiInputFrame) {
	if g.done {
		return
	}
	g.clock.Advance()

	if g.turn == O && g.botSide {
		g.waited++
		if g.waited >= g.botDelay {
			// A full board ends the game in Place, so an unfinished game
			// always leaves botMove a free cell. Should that ever break,
			// the game ends as a draw instead of waiting forever.
			if err := g.Place(match.Bot, g.botMove()); err != nil {
				g.finish(match.NoPlayer)
			}
		}
		return
	}

	// The cursor is shared, so one controller drives it per tick.
	id, frame, ok := g.activeController(in)
	if !ok {
		return
	}
	g.moveCursor(frame)
	if frame.Any(core.ActionConfirm, core.ActionJump) {
		_ = g.Place(id, g.cursor) // taken cells are ignored; the player moves on
	}
}

// activeController returns the first controller of the side to move that
// pressed anything this tick.
func (g *Game) activeController(in core.MultiInputFrame) (match.PlayerID, core.InputFrame, bool) {
	for _, id := range g.controllers(g.turn) {
		frame := in.Player(id)
		if frame.Any(core.ActionUp, core.ActionDown, core.ActionLeft, core.ActionRight,
			core.ActionConfirm, core.ActionJump) {
			return id, frame, true
		}
	}
	return match.NoPlayer, core.InputFrame{}, false
}

// controllers returns the humans allowed to play side.
func (g *Game) controllers(side Mark) []match.PlayerID {
	switch {
	case side == X && g.mode == match.ModeCoopVsBot:
		return []match.PlayerID{match.Player1, match.Player2}
	case side == X:
		return []match.PlayerID{match.Player1}
	case g.mode == match.ModePlayerVsPlayer:
		return []match.PlayerID{match.Player2}
	default:
		return nil
	}
}

func (g *Game) moveCursor(f core.InputFrame) {
	row, col := g.cursor/3, g.cursor%3
	switch {
	case f.Has(core.ActionUp) && row > 0:
		row--
	case f.Has(core.ActionDown) && row < 2:
		row++
	case f.Has(core.ActionLeft) && col > 0:
		col--
	case f.Has(core.ActionRight) && col < 2:
		col++
	}
	g.cursor = row*3 + col
}

// Place puts the mark of id's side on cell.
func (g *Game) Place(id match.PlayerID, cell int) error {
	if g.done {
		return ErrGameOver
	}
	if !g.controls(id, g.turn) {
		return fmt.Errorf("%w: %s", ErrNotYourTurn, id)
	}
	if cell < 0 || cell > 8 {
		return fmt.Errorf("%w: %d", ErrCellOutRange, cell)
	}
	if g.board[cell] != Empty {
		return fmt.Errorf("%w: %d", ErrCellTaken, cell)
	}

	g.board[cell] = g.turn
	g.moves[g.turn]++

	switch {
	case lineOf(g.board, g.turn):
		g.finish(id)
	case g.moves[X] >= g.maxMoves && g.moves[O] >= g.maxMoves, full(g.board):
		g.finish(match.NoPlayer)
	default:
		g.turn = other(g.turn)
		g.waited = 0
	}
	return nil
}

func (g *Game) controls(id match.PlayerID, side Mark) bool {
	if side == O && g.botSide {
		return id == match.Bot
	}
	for _, c := range g.controllers(side) {
		if c == id {
			return true
		}
	}
	return false
}

// botMove wins if it can, blocks otherwise, else plays a random free cell.
func (g *Game) botMove() int {
	if cell, ok := completing(g.board, O); ok {
		return cell
	}
	if cell, ok := completing(g.board, X); ok {
		return cell
	}
	var free []int
	for i, m := range g.board {
		if m == Empty {
			free = append(free, i)
		}
	}
	if len(free) == 0 {
		return -1
	}
	return free[g.rng.Intn(len(free))]
}

// completing finds a free cell that gives mark a line.
func completing(board [9]Mark, mark Mark) (int, bool) {
	for _, line := range winLines {
		count, free := 0, -1
		for _, c := range line {
			switch board[c] {
			case mark:
				count++
			case Empty:
				free = c
			}
		}
		if count == 2 && free >= 0 {
			return free, true
		}
	}
	return -1, false
}

func lineOf(board [9]Mark, mark Mark) bool {
	for _, line := range winLines {
		if board[line[0]] == mark && board[line[1]] == mark && board[line[2]] == mark {
			return true
		}
	}
	return false
}

func full(board [9]Mark) bool {
	for _, m := range board {
		if m == Empty {
			return false
		}
	}
	return true
}

func other(m Mark) Mark {
	if m == X {
		return O
	}
	return X
}

func (g *Game) finish(winner match.PlayerID) {
	g.winner = winner
	g.done = true
}

// Done implements minigame.Provider.
func (g *Game) Done() bool { return g.done }

// Winner implements minigame.Provider.
func (g *Game) Winner() (match.PlayerID, bool) { return g.winner, g.done }

// Elapsed implements minigame.Provider.
func (g *Game) Elapsed() float64 { return g.clock.Elapsed() }

// Board returns a copy of the board.
func (g *Game) Board() [9]Mark { return g.board }

// Cursor returns the highlighted cell.
func (g *Game) Cursor() int { return g.cursor }

// Turn returns the side to move.
func (g *Game) Turn() Mark { return g.turn }

// MovesLeft returns how many marks side may still place.
func (g *Game) MovesLeft(side Mark) int { return g.maxMoves - g.moves[side] }
