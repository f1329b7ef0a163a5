// Package model holds the data shapes exchanged with the MUN game server and
// the error taxonomy surfaced to the player.
package model

import (
	"encoding/json"
	"fmt"
	"strings"
)

// Direction is one of the four exits a room can have.
type Direction int

const (
	North Direction = iota
	East
	South
	West
)

var directionCodes = [...]string{
	North: "N",
	East:  "E",
	South: "S",
	West:  "W",
}

// String returns the single-letter wire code.
func (d Direction) String() string {
	if d < North || d > West {
		return "unknown"
	}
	return directionCodes[d]
}

// ParseDirection maps a wire code back to a Direction.
func ParseDirection(code string) (Direction, error) {
	for d, c := range directionCodes {
		if c == code {
			return Direction(d), nil
		}
	}
	return 0, fmt.Errorf("unknown direction %q", code)
}

// MarshalJSON encodes the direction as its letter.
func (d Direction) MarshalJSON() ([]byte, error) {
	if d < North || d > West {
		return nil, fmt.Errorf("invalid direction %d", int(d))
	}
	return json.Marshal(d.String())
}

// UnmarshalJSON rejects anything but the four known letters.
func (d *Direction) UnmarshalJSON(data []byte) error {
	var code string
	if err := json.Unmarshal(data, &code); err != nil {
		return err
	}
	parsed, err := ParseDirection(code)
	if err != nil {
		return err
	}
	*d = parsed
	return nil
}

// JoinDirections renders exits as "N, E" or "None" when there are none.
func JoinDirections(dirs []Direction) string {
	if len(dirs) == 0 {
		return "None"
	}
	codes := make([]string, len(dirs))
	for i, d := range dirs {
		codes[i] = d.String()
	}
	return strings.Join(codes, ", ")
}

// MoveRequest is the body of a move command.
type MoveRequest struct {
	Direction Direction `json:"direction"`
}
