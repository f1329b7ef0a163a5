package gamedata

import (
	"fmt"

	"github.com/gdamore/tcell/v2"
)

// StyleDef is one style role as written in theme.json.
type StyleDef struct {
	Fg   string `json:"fg"`
	Bg   string `json:"bg"`
	Bold bool   `json:"bold"`
}

// Style converts the definition to a tcell.Style.
func (d StyleDef) Style() (tcell.Style, error) {
	fg, err := ParseHexColor(d.Fg)
	if err != nil {
		return tcell.StyleDefault, err
	}
	bg, err := ParseHexColor(d.Bg)
	if err != nil {
		return tcell.StyleDefault, err
	}
	return tcell.StyleDefault.Foreground(fg).Background(bg).Bold(d.Bold), nil
}

// ThemeDef maps style roles to their definitions.
type ThemeDef map[string]StyleDef

// Styles converts every role, failing on the first missing or invalid one.
func (t ThemeDef) Styles(roles ...string) (map[string]tcell.Style, error) {
	styles := make(map[string]tcell.Style, len(roles))
	for _, role := range roles {
		def, ok := t[role]
		if !ok {
			return nil, fmt.Errorf("theme role %q is not defined", role)
		}
		style, err := def.Style()
		if err != nil {
			return nil, fmt.Errorf("theme role %q: %w", role, err)
		}
		styles[role] = style
	}
	return styles, nil
}

// LoadTheme loads the embedded theme.json.
func LoadTheme() (ThemeDef, error) {
	return Load[ThemeDef]("theme.json")
}
