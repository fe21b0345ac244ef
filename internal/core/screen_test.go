package core

import (
	"strings"
	"testing"
)

func TestNewScreen(t *testing.T) {
	s := NewScreen(20, 4)
	if s.Width() != 20 || s.Height() != 4 {
		t.Fatalf("Expected 20x4, got %dx%d", s.Width(), s.Height())
	}
	for y := 0; y < s.Height(); y++ {
		for x := 0; x < s.Width(); x++ {
			if s.Get(x, y) != ' ' {
				t.Fatalf("New screen should be blank, got %q at (%d, %d)", s.Get(x, y), x, y)
			}
		}
	}

	empty := NewScreen(-3, 2)
	if empty.Width() != 0 || empty.String() != "\n" {
		t.Errorf("Expected empty rows, got %q", empty.String())
	}
}

func TestScreenSetOutOfBounds(t *testing.T) {
	s := NewScreen(5, 5)
	s.Set(-1, 0, 'A')
	s.Set(5, 0, 'A')
	s.Set(0, 5, 'A')
	if strings.ContainsRune(s.String(), 'A') {
		t.Error("Out of bounds writes should be dropped")
	}
	if s.Get(9, 9) != ' ' {
		t.Error("Out of bounds Get should return space")
	}
}

func TestScreenDrawText(t *testing.T) {
	s := NewScreen(10, 1)
	s.DrawText(7, 0, "abcdef")
	if got := s.String(); got != "       abc" {
		t.Errorf("Expected clipped text, got %q", got)
	}

	s.Clear()
	s.DrawTextCentered(0, "éé")
	if got := s.String(); got != "    éé    " {
		t.Errorf("Expected centered multibyte text, got %q", got)
	}
}

func TestScreenGauges(t *testing.T) {
	tests := []struct {
		frac float64
		want string
	}{
		{0, "....."},
		{0.4, "##..."},
		{1, "#####"},
		{2, "#####"},
		{-1, "....."},
	}
	for _, tt := range tests {
		s := NewScreen(5, 1)
		s.DrawBar(0, 0, 5, tt.frac, '#', '.')
		if got := s.String(); got != tt.want {
			t.Errorf("DrawBar(%v) = %q, want %q", tt.frac, got, tt.want)
		}
	}

	col := NewScreen(1, 4)
	col.DrawColumn(0, 3, 4, 0.5, '#', '.')
	if got := col.String(); got != ".\n.\n#\n#" {
		t.Errorf("DrawColumn = %q", got)
	}
}

func TestScreenLines(t *testing.T) {
	s := NewScreen(3, 3)
	s.DrawHLine(0, 1, 3, '-')
	s.DrawVLine(1, 0, 3, '|')
	if got := s.String(); got != " | \n-|-\n | " {
		t.Errorf("Unexpected lines %q", got)
	}
}
