package ui

import (
	"github.com/gdamore/tcell/v2"

	"github.com/samdwyer/mun/internal/gamedata"
)

// Theme holds every style the renderer uses. It is a value; the renderer
// never changes it after construction.
type Theme struct {
	Base         tcell.Style
	Border       tcell.Style
	Title        tcell.Style
	Label        tcell.Style
	Connected    tcell.Style
	Disconnected tcell.Style
	Dungeon      tcell.Style
	Popup        tcell.Style
	Selected     tcell.Style
}

var themeRoles = []string{
	"base", "border", "title", "label", "connected", "disconnected", "dungeon", "popup", "selected",
}

// LoadTheme builds the theme from the embedded theme.json.
func LoadTheme() (Theme, error) {
	def, err := gamedata.LoadTheme()
	if err != nil {
		return Theme{}, err
	}
	return NewTheme(def)
}

// NewTheme builds a theme from a definition that names every role.
func NewTheme(def gamedata.ThemeDef) (Theme, error) {
	styles, err := def.Styles(themeRoles...)
	if err != nil {
		return Theme{}, err
	}
	return Theme{
		Base:         styles["base"],
		Border:       styles["border"],
		Title:        styles["title"],
		Label:        styles["label"],
		Connected:    styles["connected"],
		Disconnected: styles["disconnected"],
		Dungeon:      styles["dungeon"],
		Popup:        styles["popup"],
		Selected:     styles["selected"],
	}, nil
}
