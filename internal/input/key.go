// Package input holds the terminal-neutral key value shared by the event loop,
// the popup and the tcell adapter.
package input

import (
	"fmt"

	"github.com/gdamore/tcell/v2"
)

// Code identifies a key. Printable characters use KeyRune.
type Code uint8

const (
	KeyOther Code = iota
	KeyRune
	KeyUp
	KeyDown
	KeyLeft
	KeyRight
	KeyEnter
	KeyEscape
)

var codeNames = map[Code]string{
	KeyOther:  "Other",
	KeyRune:   "Rune",
	KeyUp:     "Up",
	KeyDown:   "Down",
	KeyLeft:   "Left",
	KeyRight:  "Right",
	KeyEnter:  "Enter",
	KeyEscape: "Escape",
}

// Key is one key press.
type Key struct {
	Code Code
	Rune rune
}

// Rune builds a printable key.
func Rune(r rune) Key {
	return Key{Code: KeyRune, Rune: r}
}

// Named builds a non-printable key.
func Named(c Code) Key {
	return Key{Code: c}
}

// Is reports whether k is the printable character r.
func (k Key) Is(r rune) bool {
	return k.Code == KeyRune && k.Rune == r
}

func (k Key) String() string {
	if k.Code == KeyRune {
		return fmt.Sprintf("%q", k.Rune)
	}
	if name, ok := codeNames[k.Code]; ok {
		return name
	}
	return fmt.Sprintf("Code(%d)", k.Code)
}

// FromEvent maps a tcell key event to a Key.
func FromEvent(ev *tcell.EventKey) Key {
	switch ev.Key() {
	case tcell.KeyUp:
		return Named(KeyUp)
	case tcell.KeyDown:
		return Named(KeyDown)
	case tcell.KeyLeft:
		return Named(KeyLeft)
	case tcell.KeyRight:
		return Named(KeyRight)
	case tcell.KeyEnter:
		return Named(KeyEnter)
	case tcell.KeyEscape:
		return Named(KeyEscape)
	case tcell.KeyRune:
		return Rune(ev.Rune())
	}
	return Named(KeyOther)
}
