package gamedata

import "fmt"

// Keybind documents one key of the main screen.
type Keybind struct {
	Key    string `json:"key"`
	Action string `json:"action"`
}

// LoadKeybinds loads the embedded keybinds.json.
func LoadKeybinds() ([]Keybind, error) {
	return Load[[]Keybind]("keybinds.json")
}

// HelpLines formats keybinds as aligned "[key]   action" lines.
func HelpLines(binds []Keybind) []string {
	lines := make([]string, len(binds))
	for i, b := range binds {
		lines[i] = fmt.Sprintf("%-11s%s", "["+b.Key+"]", b.Action)
	}
	return lines
}
