package tui

import (
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/vovakirdan/cyberjump/internal/core"
)

// Glyphs drawn by the match views. RenderScreen colors them.
const (
	glyphTrack  = '·'
	glyphRunner = '»'
	glyphFinish = '┃'
	glyphHealth = '█'
	glyphShield = '▓'
	glyphEmpty  = '░'
	glyphLava   = '~'
	glyphBody   = '▲'
	glyphX      = '×'
	glyphO      = 'ø'
)

type runeClass int

const (
	classDefault runeClass = iota
	classTrack
	classRunner
	classHealth
	classShield
	classLava
	classX
	classO
)

// classStyles maps rune classes to lipgloss styles.
var classStyles = map[runeClass]lipgloss.Style{
	classDefault: lipgloss.NewStyle(),
	classTrack:   lipgloss.NewStyle().Foreground(lipgloss.Color("240")),
	classRunner:  lipgloss.NewStyle().Foreground(lipgloss.Color("14")).Bold(true),
	classHealth:  lipgloss.NewStyle().Foreground(lipgloss.Color("10")),
	classShield:  lipgloss.NewStyle().Foreground(lipgloss.Color("12")),
	classLava:    lipgloss.NewStyle().Foreground(lipgloss.Color("208")),
	classX:       lipgloss.NewStyle().Foreground(lipgloss.Color("13")).Bold(true),
	classO:       lipgloss.NewStyle().Foreground(lipgloss.Color("11")).Bold(true),
}

func classOf(r rune) runeClass {
	switch r {
	case glyphTrack, glyphEmpty, glyphFinish:
		return classTrack
	case glyphRunner, glyphBody:
		return classRunner
	case glyphHealth:
		return classHealth
	case glyphShield:
		return classShield
	case glyphLava:
		return classLava
	case glyphX:
		return classX
	case glyphO:
		return classO
	}
	return classDefault
}

// RenderScreen converts a Screen buffer to a styled string for display.
// Groups adjacent cells with the same class to minimize ANSI escape sequences.
func RenderScreen(s *core.Screen) string {
	var sb strings.Builder
	// Pre-allocate with extra space for ANSI codes
	sb.Grow(s.Width()*s.Height()*2 + s.Height())

	for y, h := 0, s.Height(); y < h; y++ {
		if y > 0 {
			sb.WriteRune('\n')
		}

		x := 0
		for x < s.Width() {
			start := classOf(s.Get(x, y))

			// Collect consecutive cells with the same class
			var run strings.Builder
			for x < s.Width() {
				r := s.Get(x, y)
				if classOf(r) != start {
					break
				}
				run.WriteRune(r)
				x++
			}

			if start == classDefault {
				sb.WriteString(run.String())
				continue
			}
			sb.WriteString(classStyles[start].Render(run.String()))
		}
	}
	return sb.String()
}
