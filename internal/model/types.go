package model

import (
	"encoding/json"
	"fmt"
)

// Room is the server's snapshot of the player's current location.
type Room struct {
	Description string
	Paths       []Direction
	// Entities lists every occupant guid, the player's own included.
	Entities []string
}

// PathsString renders the exits for the status panel.
func (r Room) PathsString() string {
	return JoinDirections(r.Paths)
}

// Status is the session identity handed out by a successful connect.
type Status struct {
	GUID      string
	TotalLife uint32
	Room      Room
}

// EntityKind distinguishes monsters from other players.
type EntityKind int

const (
	KindMonster EntityKind = iota
	KindPlayer
)

// String returns a human-readable kind.
func (k EntityKind) String() string {
	switch k {
	case KindMonster:
		return "Monster"
	case KindPlayer:
		return "Player"
	default:
		return "unknown"
	}
}

// UnmarshalJSON accepts the server codes MONSTRE and JOUEUR.
func (k *EntityKind) UnmarshalJSON(data []byte) error {
	var code string
	if err := json.Unmarshal(data, &code); err != nil {
		return err
	}
	switch code {
	case "MONSTRE":
		*k = KindMonster
	case "JOUEUR":
		*k = KindPlayer
	default:
		return fmt.Errorf("unknown entity type %q", code)
	}
	return nil
}

// Entity is a read-only snapshot returned by a look-entity request.
type Entity struct {
	Description string
	Kind        EntityKind
	Life        uint32
	TotalLife   uint32
}

// Fighter is one side of a combat exchange.
type Fighter struct {
	GUID   string
	Damage uint32
	Life   uint32
}

// Fight is the outcome of a single attack.
type Fight struct {
	Attacker Fighter
	Defender Fighter
}
