// Package ui provides the terminal front end: rendering with tcell, a
// Presenter that plays moves and battles on screen, and keyboard and mouse
// input.
package ui

import "github.com/gdamore/tcell/v2"

// Screen is the terminal the board is drawn on.
type Screen struct {
	screen tcell.Screen
}

// NewScreen opens the real terminal.
func NewScreen() (*Screen, error) {
	s, err := tcell.NewScreen()
	if err != nil {
		return nil, err
	}
	return WrapScreen(s)
}

// WrapScreen initializes s with mouse reporting on. Tests pass a
// tcell.NewSimulationScreen here.
func WrapScreen(s tcell.Screen) (*Screen, error) {
	if err := s.Init(); err != nil {
		return nil, err
	}
	s.SetStyle(tcell.StyleDefault.Background(tcell.ColorBlack).Foreground(tcell.ColorWhite))
	s.EnableMouse()
	s.Clear()
	return &Screen{screen: s}, nil
}

// Close restores the terminal.
func (s *Screen) Close() { s.screen.Fini() }

// PollEvent blocks for the next key, mouse or resize event. It returns nil
// once the screen is closed.
func (s *Screen) PollEvent() tcell.Event { return s.screen.PollEvent() }

// Clear blanks the back buffer; Show flushes it.
func (s *Screen) Clear() { s.screen.Clear() }
func (s *Screen) Show()  { s.screen.Show() }

// Resized redraws everything after the terminal changed size.
func (s *Screen) Resized() { s.screen.Sync() }

// Size returns the terminal size in cells.
func (s *Screen) Size() (width, height int) { return s.screen.Size() }

// SetContent puts r at x, y.
func (s *Screen) SetContent(x, y int, r rune, style tcell.Style) {
	s.screen.SetContent(x, y, r, nil, style)
}

// Content returns the rune and style drawn at x, y.
func (s *Screen) Content(x, y int) (rune, tcell.Style) {
	r, _, style, _ := s.screen.GetContent(x, y)
	return r, style
}

// DrawText writes text from x, y rightwards and returns the column after it.
func (s *Screen) DrawText(x, y int, text string, style tcell.Style) int {
	for _, ch := range text {
		s.screen.SetContent(x, y, ch, nil, style)
		x++
	}
	return x
}
