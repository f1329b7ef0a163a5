package ui

import (
	"errors"
	"strconv"
	"strings"

	"github.com/gdamore/tcell/v2"
	"github.com/mattn/go-runewidth"
	"github.com/muesli/reflow/wordwrap"

	"github.com/samdwyer/mun/internal/model"
	"github.com/samdwyer/mun/internal/popup"
	"github.com/samdwyer/mun/internal/runner"
)

// ErrClosed is returned by Render after Close.
var ErrClosed = errors.New("ui: screen closed")

const (
	leftPct    = 30
	netPct     = 30
	popupPct   = 60
	entPct     = 80
	cursorMark = "> "
)

// Renderer draws runner views. It implements runner.Presenter.
type Renderer struct {
	screen *Screen
	theme  Theme
	closed bool
}

// NewRenderer creates a new renderer for the given screen.
func NewRenderer(screen *Screen, theme Theme) *Renderer {
	return &Renderer{screen: screen, theme: theme}
}

// Render draws one frame.
func (r *Renderer) Render(v runner.View) error {
	if r.closed {
		return ErrClosed
	}
	r.screen.Clear()
	w, h := r.screen.Size()
	full := rect{w: w, h: h}
	r.fill(full, r.theme.Base)

	left, right := full.splitH(leftPct)
	netArea, statusArea := left.splitV(netPct)

	r.drawNet(netArea, v)
	r.drawStatus(statusArea, v)
	r.drawDungeon(right, v)
	if v.Popup.State != popup.Hidden {
		r.drawPopup(full.centered(popupPct, popupPct), v.Popup)
	}

	r.screen.Show()
	return nil
}

// Close restores the terminal.
func (r *Renderer) Close() {
	r.closed = true
	r.screen.Close()
}

func (r *Renderer) drawNet(area rect, v runner.View) {
	r.box(area, "Net", r.theme.Border)
	in := area.inner()
	row := r.wrapped(in, in.y, v.BaseURL, r.theme.Base)
	if row >= in.y+in.h {
		return
	}
	if v.Connected {
		r.text(in.x, row, in.w, "CONNECTED", r.theme.Connected)
	} else {
		r.text(in.x, row, in.w, "DISCONNECTED", r.theme.Disconnected)
	}
}

func (r *Renderer) drawStatus(area rect, v runner.View) {
	r.box(area, "Status", r.theme.Border)
	in := area.inner()
	row := in.y
	for i, line := range v.Status {
		if i > 0 {
			row++
		}
		if row >= in.y+in.h {
			return
		}
		col := r.text(in.x, row, in.w, line.Label, r.theme.Label)
		rest := in.w - (col - in.x) - 1
		if rest <= 0 {
			row++
			continue
		}
		// The first line shares the label's row; continuations start at the left edge.
		lines := strings.Split(wordwrap.String(line.Value, rest), "\n")
		r.text(col+1, row, rest, lines[0], r.theme.Base)
		row++
		for _, cont := range lines[1:] {
			if row >= in.y+in.h {
				return
			}
			r.text(in.x, row, in.w, cont, r.theme.Base)
			row++
		}
	}
}

func (r *Renderer) drawDungeon(area rect, v runner.View) {
	style := r.theme.Base
	if v.Connected {
		style = r.theme.Dungeon
	}
	r.fill(area, style)
	r.box(area, "Dungeon", style)
	in := area.inner()
	if in.w <= 0 || in.h <= 0 {
		return
	}

	for _, d := range v.Paths {
		switch d {
		case model.North:
			r.text(in.x+in.w/2, in.y, 1, "N", style)
		case model.South:
			r.text(in.x+in.w/2, in.y+in.h-1, 1, "S", style)
		case model.West:
			r.text(in.x, in.y+in.h/2, 1, "W", style)
		case model.East:
			r.text(in.x+in.w-1, in.y+in.h/2, 1, "E", style)
		}
	}

	if len(v.Entities) == 0 {
		return
	}
	keys := make([]string, len(v.Entities))
	for i, k := range v.Entities {
		keys[i] = strconv.Itoa(k)
	}
	ents := in.centered(entPct, entPct)
	r.wrapped(ents, ents.y, strings.Join(keys, "   "), style)
}

func (r *Renderer) drawPopup(area rect, pv popup.View) {
	r.fill(area, r.theme.Popup)
	r.box(area, pv.Title, r.theme.Popup)
	in := area.inner()
	row := in.y

	switch pv.State {
	case popup.Info:
		for _, line := range pv.Lines {
			if row >= in.y+in.h {
				return
			}
			row = r.wrapped(rect{in.x, row, in.w, in.y + in.h - row}, row, line, r.theme.Popup)
		}
	case popup.SelectList:
		for i, item := range pv.Items {
			if row >= in.y+in.h {
				return
			}
			if i == pv.Cursor {
				r.text(in.x, row, in.w, cursorMark+item, r.theme.Selected)
			} else {
				r.text(in.x, row, in.w, strings.Repeat(" ", len(cursorMark))+item, r.theme.Popup)
			}
			row++
		}
	}
}

// box draws a single-line border with an optional title on the top edge.
func (r *Renderer) box(area rect, title string, style tcell.Style) {
	if area.w < 2 || area.h < 2 {
		return
	}
	x2, y2 := area.x+area.w-1, area.y+area.h-1
	for x := area.x + 1; x < x2; x++ {
		r.screen.SetContent(x, area.y, tcell.RuneHLine, style)
		r.screen.SetContent(x, y2, tcell.RuneHLine, style)
	}
	for y := area.y + 1; y < y2; y++ {
		r.screen.SetContent(area.x, y, tcell.RuneVLine, style)
		r.screen.SetContent(x2, y, tcell.RuneVLine, style)
	}
	r.screen.SetContent(area.x, area.y, tcell.RuneULCorner, style)
	r.screen.SetContent(x2, area.y, tcell.RuneURCorner, style)
	r.screen.SetContent(area.x, y2, tcell.RuneLLCorner, style)
	r.screen.SetContent(x2, y2, tcell.RuneLRCorner, style)
	if title != "" {
		r.text(area.x+1, area.y, area.w-2, title, r.theme.Title)
	}
}

func (r *Renderer) fill(area rect, style tcell.Style) {
	for y := area.y; y < area.y+area.h; y++ {
		for x := area.x; x < area.x+area.w; x++ {
			r.screen.SetContent(x, y, ' ', style)
		}
	}
}

// text draws s from (x, y), clipped to maxW columns, and returns the column
// after the last cell drawn.
func (r *Renderer) text(x, y, maxW int, s string, style tcell.Style) int {
	col := x
	for _, ch := range s {
		cw := runewidth.RuneWidth(ch)
		if cw == 0 {
			continue
		}
		if col+cw > x+maxW {
			break
		}
		r.screen.SetContent(col, y, ch, style)
		col += cw
	}
	return col
}

// wrapped word-wraps s to area's width starting at row and returns the row
// after the last one drawn.
func (r *Renderer) wrapped(area rect, row int, s string, style tcell.Style) int {
	if area.w <= 0 {
		return row
	}
	for _, line := range strings.Split(wordwrap.String(s, area.w), "\n") {
		if row >= area.y+area.h {
			break
		}
		r.text(area.x, row, area.w, line, style)
		row++
	}
	return row
}
