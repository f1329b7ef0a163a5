package gamedata

import (
	"testing"

	"github.com/gdamore/tcell/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestHelpLines(t *testing.T) {
	binds, err := LoadKeybinds()
	require.NoError(t, err)

	assert.Equal(t, []string{
		"[c]        (re)connect",
		"[d]        disconnect",
		"[l]        look around",
		"[e]        look entity",
		"[a]        attack",
		"[arrows]   move",
		"[q]        quit",
	}, HelpLines(binds))
}

func TestLoadTheme(t *testing.T) {
	theme, err := LoadTheme()
	require.NoError(t, err)

	styles, err := theme.Styles("connected", "disconnected", "title", "dungeon")
	require.NoError(t, err)

	fg, bg, attrs := styles["connected"].Decompose()
	assert.Equal(t, tcell.NewRGBColor(0, 0, 0), fg)
	assert.Equal(t, tcell.NewRGBColor(0, 0xAA, 0), bg)
	assert.NotZero(t, attrs&tcell.AttrBold)
}

func TestThemeMissingRole(t *testing.T) {
	_, err := ThemeDef{}.Styles("base")
	assert.ErrorContains(t, err, `"base"`)
}

func TestThemeInvalidColor(t *testing.T) {
	_, err := ThemeDef{"base": {Fg: "#12", Bg: "#000000"}}.Styles("base")
	assert.Error(t, err)
}

func TestParseHexColor(t *testing.T) {
	tests := []struct {
		in      string
		want    tcell.Color
		wantErr bool
	}{
		{"#FF0000", tcell.NewRGBColor(255, 0, 0), false},
		{"00ff00", tcell.NewRGBColor(0, 255, 0), false},
		{"#GG0000", tcell.ColorDefault, true},
		{"#FFF", tcell.ColorDefault, true},
	}
	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			got, err := ParseHexColor(tt.in)
			if tt.wantErr {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestLoadMissingFile(t *testing.T) {
	_, err := Load[ThemeDef]("nope.json")
	assert.Error(t, err)
}
