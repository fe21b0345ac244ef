package core

import (
	"strings"
	"unicode/utf8"
)

// Screen is a fixed-size rune buffer used to draw activity views (race
// lanes, lava columns, boards) before the TUI styles them.
type Screen struct {
	width  int
	height int
	cells  [][]rune
}

// NewScreen creates a blank screen. Non-positive sizes yield an empty screen.
func NewScreen(width, height int) *Screen {
	s := &Screen{
		width:  Max(width, 0),
		height: Max(height, 0),
	}
	s.cells = make([][]rune, s.height)
	for y := range s.cells {
		s.cells[y] = make([]rune, s.width)
	}
	s.Clear()
	return s
}

// Width returns the screen width in characters.
func (s *Screen) Width() int { return s.width }

// Height returns the screen height in characters.
func (s *Screen) Height() int { return s.height }

// Clear fills the screen with spaces.
func (s *Screen) Clear() {
	for y := range s.cells {
		for x := range s.cells[y] {
			s.cells[y][x] = ' '
		}
	}
}

// Set places a rune; out-of-bounds writes are dropped.
func (s *Screen) Set(x, y int, r rune) {
	if x < 0 || x >= s.width || y < 0 || y >= s.height {
		return
	}
	s.cells[y][x] = r
}

// Get returns the rune at (x, y), or a space when out of bounds.
func (s *Screen) Get(x, y int) rune {
	if x < 0 || x >= s.width || y < 0 || y >= s.height {
		return ' '
	}
	return s.cells[y][x]
}

// DrawText writes text starting at (x, y), clipped to the screen.
func (s *Screen) DrawText(x, y int, text string) {
	i := 0
	for _, r := range text {
		s.Set(x+i, y, r)
		i++
	}
}

// DrawTextCentered writes text centered on row y.
func (s *Screen) DrawTextCentered(y int, text string) {
	s.DrawText((s.width-utf8.RuneCountInString(text))/2, y, text)
}

// DrawHLine draws a horizontal run of r.
func (s *Screen) DrawHLine(x, y, length int, r rune) {
	for i := 0; i < length; i++ {
		s.Set(x+i, y, r)
	}
}

// DrawVLine draws a vertical run of r.
func (s *Screen) DrawVLine(x, y, length int, r rune) {
	for i := 0; i < length; i++ {
		s.Set(x, y+i, r)
	}
}

// DrawBar draws a horizontal gauge of the given width filled to frac.
func (s *Screen) DrawBar(x, y, width int, frac float64, full, empty rune) {
	filled := int(ClampF(frac, 0, 1)*float64(width) + 0.5)
	for i := 0; i < width; i++ {
		r := empty
		if i < filled {
			r = full
		}
		s.Set(x+i, y, r)
	}
}

// DrawColumn draws a vertical gauge of the given height filled from the
// bottom to frac.
func (s *Screen) DrawColumn(x, bottom, height int, frac float64, full, empty rune) {
	filled := int(ClampF(frac, 0, 1)*float64(height) + 0.5)
	for i := 0; i < height; i++ {
		r := empty
		if i < filled {
			r = full
		}
		s.Set(x, bottom-i, r)
	}
}

// String joins the rows with newlines.
func (s *Screen) String() string {
	var sb strings.Builder
	sb.Grow(s.width*s.height + s.height)
	for y := 0; y < s.height; y++ {
		if y > 0 {
			sb.WriteRune('\n')
		}
		sb.WriteString(string(s.cells[y]))
	}
	return sb.String()
}

// ClampF restricts a float64 value to be within [min, max].
func ClampF(val, min, max float64) float64 {
	if val < min {
		return min
	}
	if val > max {
		return max
	}
	return val
}

// Max returns the larger of two integers.
func Max(a, b int) int {
	if a > b {
		return a
	}
	return b
}
