// Package popup implements the modal overlay: hidden, an informational
// message, or a selection list of room occupants.
package popup

import (
	"context"
	"fmt"

	"github.com/samdwyer/mun/internal/input"
	"github.com/samdwyer/mun/internal/logging/events"
	"github.com/samdwyer/mun/internal/model"
)

// State is the popup's mode.
type State int

const (
	Hidden State = iota
	Info
	SelectList
)

func (s State) String() string {
	switch s {
	case Hidden:
		return "Hidden"
	case Info:
		return "Info"
	case SelectList:
		return "SelectList"
	default:
		return "unknown"
	}
}

// Mode is the action a selection list leads to.
type Mode int

const (
	ModeAttack Mode = iota
	ModeLook
)

func (m Mode) String() string {
	if m == ModeLook {
		return "look"
	}
	return "attack"
}

// Title returns the heading shown above the list.
func (m Mode) Title() string {
	if m == ModeLook {
		return TitleLook
	}
	return TitleAttack
}

const (
	TitleError  = "Error"
	TitleFight  = "Fight result"
	TitleEntity = "Entity info"
	TitleHelp   = "Keybinds"
	TitleAttack = "Attack who"
	TitleLook   = "Look who"
)

// Source is the session state the popup reports on.
type Source interface {
	Err() *model.Error
	LastFight() (model.Fight, bool)
	LastEntity() (model.Entity, bool)
}

// Target receives the commands a popup confirms.
type Target interface {
	Attack(ctx context.Context, key int)
	LookEntity(ctx context.Context, key int)
	ClearInfo()
}

// View is a snapshot for rendering.
type View struct {
	State  State
	Title  string
	Lines  []string
	Items  []string
	Cursor int
}

// NoSelection is the cursor of a freshly opened selection list.
const NoSelection = -1

// Machine is the popup state machine.
type Machine struct {
	state  State
	title  string
	lines  []string
	mode   Mode
	keys   []int
	cursor int
}

// New returns a hidden popup.
func New() *Machine {
	return &Machine{cursor: NoSelection}
}

// Active reports whether the popup captures input.
func (m *Machine) Active() bool {
	return m.state != Hidden
}

// State returns the current mode.
func (m *Machine) State() State {
	return m.state
}

// Cursor returns the selection index, or NoSelection. It is meaningful in
// SelectList only.
func (m *Machine) Cursor() int {
	return m.cursor
}

// Sync opens an Info popup for the most important pending result. An error
// takes priority over a fight, which takes priority over an entity. Sync is
// a no-op unless the popup is hidden.
func (m *Machine) Sync(src Source) {
	if m.state != Hidden {
		return
	}
	if err := src.Err(); err != nil {
		m.showInfo(TitleError, ErrorLines(err))
		return
	}
	if fight, ok := src.LastFight(); ok {
		m.showInfo(TitleFight, FightLines(fight))
		return
	}
	if entity, ok := src.LastEntity(); ok {
		m.showInfo(TitleEntity, EntityLines(entity))
	}
}

// OpenSelect shows a selection list of registry keys with nothing selected.
// It does nothing unless the popup is hidden.
func (m *Machine) OpenSelect(mode Mode, keys []int) {
	if m.state != Hidden {
		return
	}
	m.mode = mode
	m.keys = append([]int(nil), keys...)
	m.cursor = NoSelection
	m.transition(SelectList, mode.Title())
}

// ShowInfo shows an arbitrary informational popup when hidden.
func (m *Machine) ShowInfo(title string, lines []string) {
	if m.state != Hidden {
		return
	}
	m.showInfo(title, lines)
}

// HandleKey processes a key while the popup is active and reports whether it
// was consumed.
func (m *Machine) HandleKey(ctx context.Context, key input.Key, target Target) bool {
	switch m.state {
	case Info:
		if key.Code != input.KeyEnter {
			return false
		}
		target.ClearInfo()
		m.hide()
		return true
	case SelectList:
		return m.handleSelect(ctx, key, target)
	}
	return false
}

func (m *Machine) handleSelect(ctx context.Context, key input.Key, target Target) bool {
	n := len(m.keys)
	switch key.Code {
	case input.KeyUp:
		if n > 0 {
			if m.cursor == NoSelection {
				m.cursor = 0
			}
			m.cursor = (m.cursor - 1 + n) % n
			events.Popup.Cursor(m.mode.String(), m.cursor)
		}
		return true
	case input.KeyDown:
		if n > 0 {
			m.cursor = (m.cursor + 1) % n
			events.Popup.Cursor(m.mode.String(), m.cursor)
		}
		return true
	case input.KeyEnter:
		if n == 0 || m.cursor == NoSelection {
			return true
		}
		selected := m.keys[m.cursor]
		events.Popup.Select(m.mode.String(), selected)
		m.hide()
		if m.mode == ModeLook {
			target.LookEntity(ctx, selected)
		} else {
			target.Attack(ctx, selected)
		}
		return true
	}
	return false
}

// View returns a rendering snapshot.
func (m *Machine) View() View {
	v := View{State: m.state, Title: m.title}
	switch m.state {
	case Info:
		v.Lines = append([]string(nil), m.lines...)
	case SelectList:
		v.Cursor = m.cursor
		v.Items = make([]string, len(m.keys))
		for i, k := range m.keys {
			v.Items[i] = fmt.Sprint(k)
		}
	}
	return v
}

func (m *Machine) showInfo(title string, lines []string) {
	m.lines = append([]string(nil), lines...)
	m.transition(Info, title)
}

func (m *Machine) hide() {
	m.lines = nil
	m.keys = nil
	m.cursor = NoSelection
	m.transition(Hidden, "")
}

func (m *Machine) transition(to State, title string) {
	events.Popup.Transition(m.state.String(), to.String(), title)
	m.state = to
	m.title = title
}
