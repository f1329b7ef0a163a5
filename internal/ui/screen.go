// Package ui draws the client on a tcell terminal and turns terminal input
// into keys for the event loop.
package ui

import (
	"context"
	"sync"
	"time"

	"github.com/gdamore/tcell/v2"

	"github.com/samdwyer/mun/internal/input"
)

// Screen wraps tcell.Screen with a simplified interface. A reader goroutine
// drains terminal events so PollKey can wait with a timeout.
type Screen struct {
	screen tcell.Screen
	keys   chan *tcell.EventKey
	quit   chan struct{}
	once   sync.Once
}

// NewScreen creates and initializes a new terminal screen.
func NewScreen() (*Screen, error) {
	s, err := tcell.NewScreen()
	if err != nil {
		return nil, err
	}
	return newScreen(s)
}

func newScreen(s tcell.Screen) (*Screen, error) {
	if err := s.Init(); err != nil {
		return nil, err
	}
	s.SetStyle(tcell.StyleDefault)
	s.HideCursor()
	s.Clear()

	scr := &Screen{
		screen: s,
		keys:   make(chan *tcell.EventKey, 32),
		quit:   make(chan struct{}),
	}
	go scr.read()
	return scr, nil
}

// read forwards key events until the screen is finalized.
func (s *Screen) read() {
	defer close(s.keys)
	for {
		ev := s.screen.PollEvent()
		if ev == nil {
			return
		}
		switch ev := ev.(type) {
		case *tcell.EventResize:
			s.screen.Sync()
		case *tcell.EventKey:
			select {
			case s.keys <- ev:
			case <-s.quit:
				return
			}
		}
	}
}

// PollKey waits up to timeout for the next key press.
func (s *Screen) PollKey(ctx context.Context, timeout time.Duration) (input.Key, bool) {
	timer := time.NewTimer(timeout)
	defer timer.Stop()

	select {
	case ev, ok := <-s.keys:
		if ok {
			return input.FromEvent(ev), true
		}
	case <-timer.C:
		return input.Key{}, false
	case <-ctx.Done():
		return input.Key{}, false
	}

	// Finalized: behave like an idle terminal.
	select {
	case <-timer.C:
	case <-ctx.Done():
	}
	return input.Key{}, false
}

// Close finalizes the screen and restores terminal state. It is safe to call
// more than once.
func (s *Screen) Close() {
	s.once.Do(func() {
		close(s.quit)
		s.screen.Fini()
	})
}

// Clear clears the screen buffer.
func (s *Screen) Clear() {
	s.screen.Clear()
}

// Show flushes the screen buffer to the terminal.
func (s *Screen) Show() {
	s.screen.Show()
}

// SetContent sets a single cell's content at the given position.
func (s *Screen) SetContent(x, y int, r rune, style tcell.Style) {
	s.screen.SetContent(x, y, r, nil, style)
}

// Size returns the current terminal dimensions.
func (s *Screen) Size() (width, height int) {
	return s.screen.Size()
}
