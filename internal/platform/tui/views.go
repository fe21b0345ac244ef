package tui

import (
	"fmt"
	"math"
	"strings"

	"github.com/vovakirdan/cyberjump/internal/core"
	"github.com/vovakirdan/cyberjump/internal/match"
	"github.com/vovakirdan/cyberjump/internal/minigame"
	"github.com/vovakirdan/cyberjump/internal/minigame/combat"
	"github.com/vovakirdan/cyberjump/internal/minigame/lava"
	"github.com/vovakirdan/cyberjump/internal/minigame/race"
	"github.com/vovakirdan/cyberjump/internal/minigame/tictactoe"
	"github.com/vovakirdan/cyberjump/internal/registry"
	"github.com/vovakirdan/cyberjump/internal/session"
)

// label returns the short on-screen name of a contestant.
func label(id match.PlayerID) string {
	switch id {
	case match.Player1:
		return "P1"
	case match.Player2:
		return "P2"
	case match.Bot:
		return "BOT"
	}
	return "--"
}

func activityTitle(a match.Activity) string {
	switch a {
	case match.ActivityNone:
		return "straight to the next round"
	case match.ActivityFinal:
		return "final results"
	}
	return registry.Title(a.String())
}

func clock(seconds float64) string {
	if seconds < 0 {
		seconds = 0
	}
	s := int(math.Ceil(seconds))
	return fmt.Sprintf("%02d:%02d", s/60, s%60)
}

func drawIntro(s *core.Screen, snap match.Snapshot, remaining float64) {
	mid := s.Height() / 2
	s.DrawTextCentered(mid-2, fmt.Sprintf("R O U N D   %d  /  %d", snap.Round, snap.TotalRounds))
	if match.IsBossRound(snap.Round, snap.TotalRounds) {
		s.DrawTextCentered(mid, "BOSS RACE: reach the finish before the time runs out")
	} else {
		s.DrawTextCentered(mid, "after the race: "+activityTitle(snap.Activity))
	}
	s.DrawTextCentered(mid+2, fmt.Sprintf("starting in %.0f", math.Ceil(remaining)))
}

func drawRace(s *core.Screen, r *race.Race, mode match.GameMode, bossLeft float64) {
	w := core.Max(s.Width()-22, 10)
	y := 2
	for _, id := range mode.Humans() {
		runner, _ := r.Runner(id)
		s.DrawText(2, y, label(id))
		s.DrawHLine(6, y, w, glyphTrack)
		pos := int(core.ClampF(r.Progress(id), 0, 1)*float64(w-1) + 0.5)
		s.Set(6+pos, y, glyphRunner)
		s.Set(6+w, y, glyphFinish)

		t := r.Elapsed()
		if runner.Finished() {
			t = runner.Time
		}
		s.DrawText(8+w, y, race.FormatTime(t))
		y += 2
	}
	if mode.HasBot() {
		s.DrawText(2, y, "BOT")
		s.DrawText(6, y, "racing the shadow track...")
		y += 2
	}

	if bossLeft > 0 {
		s.DrawTextCentered(y+1, "BOSS LIMIT "+race.FormatTime(bossLeft))
	} else if left := r.Remaining(); left > 0 {
		s.DrawTextCentered(y+1, "time "+clock(left))
	}
	hint := "mash SPACE to run"
	if mode.HasPlayer2() {
		hint = "mash SPACE (P1) and E (P2) to run"
	}
	s.DrawTextCentered(s.Height()-1, hint)
}

func drawRewards(s *core.Screen, snap match.Snapshot, remaining float64) {
	y := 1
	if lr := snap.LastRace; lr != nil {
		if lr.Winner == match.NoPlayer {
			s.DrawTextCentered(y, "RACE TIED")
		} else {
			s.DrawTextCentered(y, "RACE WON BY "+label(lr.Winner))
		}
		y += 2

		times := []string{"P1 " + race.FormatTime(lr.Times.Player1)}
		if snap.Mode.HasPlayer2() {
			times = append(times, "P2 "+race.FormatTime(lr.Times.Player2))
		}
		if snap.Mode.HasBot() && lr.Times.Bot > 0 {
			times = append(times, "BOT "+race.FormatTime(lr.Times.Bot))
		}
		s.DrawTextCentered(y, strings.Join(times, "   "))
		y += 2
	}

	for _, id := range snap.Mode.Humans() {
		r := snap.Rewards[id]
		line := fmt.Sprintf("%-3s +%d coins", label(id), r.Coins)
		for _, item := range r.Items {
			line += "  [" + string(item) + "]"
		}
		s.DrawText(4, y, line)
		y++
	}

	s.DrawTextCentered(s.Height()-2, "next: "+activityTitle(snap.Activity))
	s.DrawTextCentered(s.Height()-1, fmt.Sprintf("continuing in %.0f", math.Ceil(remaining)))
}

func drawCombat(s *core.Screen, c *combat.Combat, snap match.Snapshot) {
	mode := snap.Mode
	w := core.Max(s.Width()-24, 10)
	y := 2
	for _, id := range minigame.Contestants(mode) {
		f, ok := c.Fighter(id)
		if !ok {
			continue
		}
		full := glyphHealth
		if snap.Rewards[id].Has(match.ItemShield) {
			full = glyphShield
		}
		s.DrawText(2, y, label(id))
		frac := 0.0
		if f.MaxHealth > 0 {
			frac = float64(f.Health) / float64(f.MaxHealth)
		}
		s.DrawBar(6, y, w, frac, full, glyphEmpty)
		s.DrawText(8+w, y, fmt.Sprintf("%3d/%d", f.Health, f.MaxHealth))
		y += 2
	}
	s.DrawTextCentered(y+1, "time "+clock(c.Remaining()))

	hint := "M to attack"
	if mode.HasPlayer2() {
		hint = "M (P1) and F (P2) to attack"
	}
	s.DrawTextCentered(s.Height()-1, hint)
}

func drawBoard(s *core.Screen, g *tictactoe.Game, mode match.GameMode) {
	board := g.Board()
	top := (s.Height() - 5) / 2
	left := (s.Width() - 11) / 2

	for row := 0; row < 3; row++ {
		y := top + row*2
		for col := 0; col < 3; col++ {
			cell := row*3 + col
			x := left + col*4
			switch board[cell] {
			case tictactoe.X:
				s.Set(x+1, y, glyphX)
			case tictactoe.O:
				s.Set(x+1, y, glyphO)
			}
			if cell == g.Cursor() && !g.Done() {
				s.Set(x, y, '[')
				s.Set(x+2, y, ']')
			}
			if col < 2 {
				s.Set(x+3, y, '│')
			}
		}
		if row < 2 {
			s.DrawText(left, y+1, "───┼───┼───")
		}
	}

	x, o := "P1", "BOT"
	switch mode {
	case match.ModeCoopVsBot:
		x = "P1+P2"
	case match.ModePlayerVsPlayer:
		o = "P2"
	}
	turn := x
	if g.Turn() == tictactoe.O {
		turn = o
	}
	s.DrawTextCentered(1, fmt.Sprintf("%s plays ×  |  %s plays ø", x, o))
	s.DrawTextCentered(top+6, fmt.Sprintf("turn: %s   moves left: × %d  ø %d",
		turn, g.MovesLeft(tictactoe.X), g.MovesLeft(tictactoe.O)))
	s.DrawTextCentered(s.Height()-1, "arrows/WASD move, ENTER/R place")
}

func drawLava(s *core.Screen, l *lava.Survival, mode match.GameMode) {
	ids := minigame.Contestants(mode)
	bottom := s.Height() - 3
	height := core.Max(bottom-1, 1)
	spacing := s.Width() / (len(ids) + 1)

	for i, id := range ids {
		c, _ := l.Climber(id)
		x := spacing * (i + 1)
		frac := 0.0
		if l.MaxAltitude() > 0 {
			frac = c.Altitude / l.MaxAltitude()
		}
		y := bottom - int(core.ClampF(frac, 0, 1)*float64(height-1)+0.5)
		s.Set(x, y, glyphBody)
		s.DrawText(x-1, s.Height()-1, fmt.Sprintf("%s %d", label(id), c.JumpsLeft))
	}
	s.DrawHLine(0, s.Height()-2, s.Width(), glyphLava)
	s.DrawText(1, 0, "time "+clock(l.Remaining()))
	s.DrawText(s.Width()-22, 0, "jumps left under names")
}

func drawEnd(s *core.Screen, r session.MatchResult) {
	mid := s.Height()/2 - 3
	var headline string
	switch r.Winner {
	case session.WinnerLost:
		headline = "TIME'S UP: THE BOSS ESCAPED"
	case match.WinnerPlayer1.String():
		headline = "PLAYER 1 WINS THE MATCH"
	case match.WinnerPlayer2.String():
		headline = "PLAYER 2 WINS THE MATCH"
	case match.WinnerPlayers.String():
		headline = "THE TEAM WINS THE MATCH"
	case match.WinnerBot.String():
		headline = "THE BOT WINS THE MATCH"
	default:
		headline = "THE MATCH IS A DRAW"
	}
	s.DrawTextCentered(mid, headline)

	y := mid + 2
	for _, id := range match.Contestants {
		if !r.Mode.Participates(id) {
			continue
		}
		s.DrawTextCentered(y, fmt.Sprintf("%-3s  score %3d   rounds won %2d", label(id), r.Scores[id], r.Wins[id]))
		y++
	}
	if r.BossTime > 0 && !r.Lost {
		s.DrawTextCentered(y+1, "boss race "+race.FormatTime(r.BossTime))
	}
	s.DrawTextCentered(s.Height()-1, "ESC/B: menu   Q: quit")
}
