package model

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
)

// ErrMissingField reports a required field absent from a server payload.
var ErrMissingField = errors.New("missing field")

type roomWire struct {
	Description *string      `json:"description"`
	Paths       *[]Direction `json:"passages"`
	Entities    *[]string    `json:"entites"`
}

type statusWire struct {
	GUID      *string   `json:"guid"`
	TotalLife *uint32   `json:"totalvie"`
	Room      *roomWire `json:"salle"`
}

type entityWire struct {
	Description *string     `json:"description"`
	Kind        *EntityKind `json:"type"`
	Life        *uint32     `json:"vie"`
	TotalLife   *uint32     `json:"totalvie"`
}

type fighterWire struct {
	GUID   *string `json:"guid"`
	Damage *uint32 `json:"degats"`
	Life   *uint32 `json:"vie"`
}

type fightWire struct {
	Attacker *fighterWire `json:"attaquant"`
	Defender *fighterWire `json:"attaque"`
}

type errorDetailWire struct {
	Kind    *ConflictKind `json:"type"`
	Message *string       `json:"message"`
}

// ParseStatus decodes a connect response.
func ParseStatus(data []byte) (Status, error) {
	var w statusWire
	if err := decode(data, &w); err != nil {
		return Status{}, fmt.Errorf("status: %w", err)
	}
	if err := requireFields("guid", w.GUID != nil, "totalvie", w.TotalLife != nil, "salle", w.Room != nil); err != nil {
		return Status{}, fmt.Errorf("status: %w", err)
	}
	room, err := w.Room.room()
	if err != nil {
		return Status{}, fmt.Errorf("status: salle: %w", err)
	}
	return Status{GUID: *w.GUID, TotalLife: *w.TotalLife, Room: room}, nil
}

// ParseRoom decodes a look or move response.
func ParseRoom(data []byte) (Room, error) {
	var w roomWire
	if err := decode(data, &w); err != nil {
		return Room{}, fmt.Errorf("room: %w", err)
	}
	room, err := w.room()
	if err != nil {
		return Room{}, fmt.Errorf("room: %w", err)
	}
	return room, nil
}

// ParseEntity decodes a look-entity response.
func ParseEntity(data []byte) (Entity, error) {
	var w entityWire
	if err := decode(data, &w); err != nil {
		return Entity{}, fmt.Errorf("entity: %w", err)
	}
	if err := requireFields("description", w.Description != nil, "type", w.Kind != nil,
		"vie", w.Life != nil, "totalvie", w.TotalLife != nil); err != nil {
		return Entity{}, fmt.Errorf("entity: %w", err)
	}
	return Entity{
		Description: *w.Description,
		Kind:        *w.Kind,
		Life:        *w.Life,
		TotalLife:   *w.TotalLife,
	}, nil
}

// ParseFight decodes an attack response.
func ParseFight(data []byte) (Fight, error) {
	var w fightWire
	if err := decode(data, &w); err != nil {
		return Fight{}, fmt.Errorf("fight: %w", err)
	}
	if err := requireFields("attaquant", w.Attacker != nil, "attaque", w.Defender != nil); err != nil {
		return Fight{}, fmt.Errorf("fight: %w", err)
	}
	attacker, err := w.Attacker.fighter()
	if err != nil {
		return Fight{}, fmt.Errorf("fight: attaquant: %w", err)
	}
	defender, err := w.Defender.fighter()
	if err != nil {
		return Fight{}, fmt.Errorf("fight: attaque: %w", err)
	}
	return Fight{Attacker: attacker, Defender: defender}, nil
}

// ParseErrorDetail decodes the body of a 409 response. The type is optional.
func ParseErrorDetail(data []byte) (ErrorDetail, error) {
	var w errorDetailWire
	if err := decode(data, &w); err != nil {
		return ErrorDetail{}, fmt.Errorf("error detail: %w", err)
	}
	if err := requireFields("message", w.Message != nil); err != nil {
		return ErrorDetail{}, fmt.Errorf("error detail: %w", err)
	}
	return ErrorDetail{Kind: w.Kind, Message: *w.Message}, nil
}

func (w *roomWire) room() (Room, error) {
	if err := requireFields("description", w.Description != nil, "passages", w.Paths != nil,
		"entites", w.Entities != nil); err != nil {
		return Room{}, err
	}
	return Room{Description: *w.Description, Paths: *w.Paths, Entities: *w.Entities}, nil
}

func (w *fighterWire) fighter() (Fighter, error) {
	if err := requireFields("guid", w.GUID != nil, "degats", w.Damage != nil, "vie", w.Life != nil); err != nil {
		return Fighter{}, err
	}
	return Fighter{GUID: *w.GUID, Damage: *w.Damage, Life: *w.Life}, nil
}

// decode rejects empty bodies and JSON null, which would otherwise decode
// silently into an all-nil wire struct.
func decode(data []byte, v any) error {
	trimmed := bytes.TrimSpace(data)
	if len(trimmed) == 0 {
		return errors.New("empty body")
	}
	if bytes.Equal(trimmed, []byte("null")) {
		return errors.New("null body")
	}
	return json.Unmarshal(trimmed, v)
}

// requireFields takes name/present pairs and reports the first absent field.
func requireFields(pairs ...any) error {
	for i := 0; i+1 < len(pairs); i += 2 {
		name, _ := pairs[i].(string)
		present, _ := pairs[i+1].(bool)
		if !present {
			return fmt.Errorf("%w %q", ErrMissingField, name)
		}
	}
	return nil
}
