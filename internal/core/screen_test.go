package core

import (
	"strings"
	"testing"
)

func TestNewScreenIsBlank(t *testing.T) {
	s := NewScreen(4, 3)

	if s.Width() != 4 || s.Height() != 3 {
		t.Fatalf("size = %dx%d, expected 4x3", s.Width(), s.Height())
	}
	if got := s.String(); got != "    \n    \n    " {
		t.Errorf("String() = %q, expected three blank rows", got)
	}
}

func TestScreenPutAt(t *testing.T) {
	s := NewScreen(5, 5)
	s.Put(2, 3, '#', ColorRed)

	tests := []struct {
		name string
		x, y int
		want Cell
	}{
		{"written", 2, 3, Cell{'#', ColorRed}},
		{"untouched", 3, 2, Cell{' ', ColorDefault}},
		{"left of screen", -1, 0, Cell{' ', ColorDefault}},
		{"below screen", 0, 5, Cell{' ', ColorDefault}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := s.At(tt.x, tt.y); got != tt.want {
				t.Errorf("At(%d, %d) = %+v, expected %+v", tt.x, tt.y, got, tt.want)
			}
		})
	}

	// Off-screen writes are dropped.
	s.Put(5, 0, 'x', ColorRed)
	s.Put(0, -1, 'x', ColorRed)
	if strings.ContainsRune(s.String(), 'x') {
		t.Error("off-screen Put() changed the screen")
	}
}

func TestScreenText(t *testing.T) {
	tests := []struct {
		name string
		draw func(s *Screen)
		row  string
	}{
		{"plain", func(s *Screen) { s.Text(1, 0, "ab", ColorDefault) }, " ab     "},
		{"clipped right", func(s *Screen) { s.Text(6, 0, "abcd", ColorDefault) }, "      ab"},
		{"clipped left", func(s *Screen) { s.Text(-2, 0, "abcd", ColorDefault) }, "cd      "},
		{"centered", func(s *Screen) { s.TextCentered(0, "hi", ColorDefault) }, "   hi   "},
		{"centered runes", func(s *Screen) { s.TextCentered(0, "●●", ColorDefault) }, "   ●●   "},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s := NewScreen(8, 1)
			tt.draw(s)
			if got := s.Row(0); got != tt.row {
				t.Errorf("Row(0) = %q, expected %q", got, tt.row)
			}
		})
	}
}

func TestScreenFillAndFrame(t *testing.T) {
	s := NewScreen(6, 4)
	s.Fill(NewRect(0, 0, 6, 4), '.', ColorGray)
	s.Frame(NewRect(1, 0, 4, 3), ColorBrightCyan)

	expected := ".┌──┐.\n.│..│.\n.└──┘.\n......"
	if got := s.String(); got != expected {
		t.Errorf("String() = %q, expected %q", got, expected)
	}
	if c := s.At(2, 0); c.Color != ColorBrightCyan {
		t.Errorf("frame color = %v, expected %v", c.Color, ColorBrightCyan)
	}
	if c := s.At(2, 1); c.Color != ColorGray {
		t.Errorf("inner color = %v, expected %v", c.Color, ColorGray)
	}

	// A rectangle too thin for a border draws nothing.
	s.Clear()
	s.Frame(NewRect(0, 0, 1, 4), ColorDefault)
	if strings.TrimSpace(strings.ReplaceAll(s.String(), "\n", "")) != "" {
		t.Errorf("thin Frame() drew %q", s.String())
	}
}

func TestScreenResizeBlanks(t *testing.T) {
	s := NewScreen(4, 2)
	s.Text(0, 0, "old", ColorRed)

	s.Resize(3, 3)
	if s.Width() != 3 || s.Height() != 3 {
		t.Fatalf("size = %dx%d, expected 3x3", s.Width(), s.Height())
	}
	if got := s.At(0, 0); got != (Cell{' ', ColorDefault}) {
		t.Errorf("At(0, 0) after Resize() = %+v, expected blank", got)
	}

	s.Resize(-1, 2)
	if s.Width() != 0 || s.String() != "\n" {
		t.Errorf("negative Resize() gave width %d and %q", s.Width(), s.String())
	}
}

func TestScreenRowOffScreen(t *testing.T) {
	s := NewScreen(3, 1)
	if got := s.Row(4); got != "   " {
		t.Errorf("Row(4) = %q, expected blanks", got)
	}
}

func TestColorANSI(t *testing.T) {
	tests := []struct {
		c    Color
		want string
	}{
		{ColorDefault, ""},
		{ColorRed, "1"},
		{ColorBrightCyan, "14"},
		{ColorGray, "245"},
		{Color(200), ""},
	}
	for _, tt := range tests {
		if got := tt.c.ANSI(); got != tt.want {
			t.Errorf("Color(%d).ANSI() = %q, expected %q", tt.c, got, tt.want)
		}
	}
}
