package runner

import (
	"fmt"

	"github.com/samdwyer/mun/internal/model"
	"github.com/samdwyer/mun/internal/popup"
)

// StatusLine is a labelled value in the Status panel.
type StatusLine struct {
	Label string
	Value string
}

// View is everything a Presenter needs to draw one frame.
type View struct {
	BaseURL   string
	Connected bool
	Status    []StatusLine
	Paths     []model.Direction
	Entities  []int
	Popup     popup.View
}

// Presenter draws frames and owns the terminal.
type Presenter interface {
	Render(View) error
	// Close restores the terminal.
	Close()
}

func (r *Runner) view() View {
	v := View{
		BaseURL:   r.cfg.BaseURL,
		Connected: r.session.Connected(),
		Entities:  r.session.Registry().Keys(),
		Popup:     r.popup.View(),
	}
	if status, ok := r.session.Status(); ok {
		v.Status = []StatusLine{
			{Label: "LIFE", Value: fmt.Sprint(status.TotalLife)},
			{Label: "ROOM", Value: status.Room.Description},
			{Label: "PATHS", Value: status.Room.PathsString()},
		}
		v.Paths = append([]model.Direction(nil), status.Room.Paths...)
	}
	return v
}
