// Package session turns server responses into the player's local state: the
// active status, the last error, the last look/attack results and the
// numbering of the room's occupants.
package session

import (
	"context"

	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"

	"github.com/samdwyer/mun/internal/logging/events"
	"github.com/samdwyer/mun/internal/model"
	"github.com/samdwyer/mun/internal/telemetry"
)

// API is the set of game operations the session drives.
type API interface {
	Connect(ctx context.Context) (model.Status, error)
	LookRoom(ctx context.Context, guid string) (model.Room, error)
	Move(ctx context.Context, guid string, dir model.Direction) (model.Room, error)
	LookEntity(ctx context.Context, guid, target string) (model.Entity, error)
	Attack(ctx context.Context, guid, target string) (model.Fight, error)
}

// Session owns all game state of the single active player. It is not safe
// for concurrent use; the runner's consumer goroutine is its only caller.
type Session struct {
	api      API
	tracer   trace.Tracer
	status   *model.Status
	err      *model.Error
	entity   *model.Entity
	fight    *model.Fight
	registry *Registry
}

// New creates a disconnected session.
func New(api API) *Session {
	return &Session{
		api:      api,
		tracer:   telemetry.Tracer("session"),
		registry: NewRegistry(),
	}
}

// Connect opens a new server session. On failure the previous status, if
// any, is dropped along with its registry.
func (s *Session) Connect(ctx context.Context) {
	ctx, span := s.tracer.Start(ctx, "session.connect")
	defer span.End()

	status, err := s.api.Connect(ctx)
	if err != nil {
		s.status = nil
		s.registry.Reset()
		s.fail(span, "connect", err)
		return
	}
	s.status = &status
	s.err = nil
	s.registry.Rebuild(status.Room, status.GUID)
	span.SetAttributes(attribute.Int("room.entities", s.registry.Len()))
	events.Session.Connect(status.GUID, s.registry.Len())
}

// Disconnect forgets everything without contacting the server.
func (s *Session) Disconnect() {
	s.status = nil
	s.registry.Reset()
	s.err = nil
	s.entity = nil
	s.fight = nil
	events.Session.Disconnect()
}

// LookRoom refreshes the current room.
func (s *Session) LookRoom(ctx context.Context) {
	ctx, span := s.tracer.Start(ctx, "session.look_room")
	defer span.End()

	guid, ok := s.requireStatus(span, "look_room")
	if !ok {
		return
	}
	room, err := s.api.LookRoom(ctx, guid)
	if err != nil {
		s.fail(span, "look_room", err)
		return
	}
	s.setRoom("look_room", room)
}

// Move walks through an exit.
func (s *Session) Move(ctx context.Context, dir model.Direction) {
	ctx, span := s.tracer.Start(ctx, "session.move", trace.WithAttributes(attribute.String("direction", dir.String())))
	defer span.End()

	guid, ok := s.requireStatus(span, "move")
	if !ok {
		return
	}
	room, err := s.api.Move(ctx, guid, dir)
	if err != nil {
		s.fail(span, "move", err)
		return
	}
	s.setRoom("move", room)
}

// LookEntity examines the occupant numbered key. Unknown keys are ignored.
func (s *Session) LookEntity(ctx context.Context, key int) {
	ctx, span := s.tracer.Start(ctx, "session.look_entity", trace.WithAttributes(attribute.Int("key", key)))
	defer span.End()

	guid, target, ok := s.resolve(span, "look_entity", key)
	if !ok {
		return
	}
	entity, err := s.api.LookEntity(ctx, guid, target)
	if err != nil {
		s.fail(span, "look_entity", err)
		return
	}
	s.entity = &entity
}

// Attack strikes the occupant numbered key. Unknown keys are ignored.
func (s *Session) Attack(ctx context.Context, key int) {
	ctx, span := s.tracer.Start(ctx, "session.attack", trace.WithAttributes(attribute.Int("key", key)))
	defer span.End()

	guid, target, ok := s.resolve(span, "attack", key)
	if !ok {
		return
	}
	fight, err := s.api.Attack(ctx, guid, target)
	if err != nil {
		s.fail(span, "attack", err)
		return
	}
	s.fight = &fight
}

// ClearInfo dismisses the last error and results, keeping the status.
func (s *Session) ClearInfo() {
	s.err = nil
	s.entity = nil
	s.fight = nil
	events.Session.ClearInfo()
}

// Status returns the active status.
func (s *Session) Status() (model.Status, bool) {
	if s.status == nil {
		return model.Status{}, false
	}
	return *s.status, true
}

// Connected reports whether a status is active.
func (s *Session) Connected() bool {
	return s.status != nil
}

// Err returns the last error, or nil.
func (s *Session) Err() *model.Error {
	return s.err
}

// LastEntity returns the result of the last successful look-entity.
func (s *Session) LastEntity() (model.Entity, bool) {
	if s.entity == nil {
		return model.Entity{}, false
	}
	return *s.entity, true
}

// LastFight returns the result of the last successful attack.
func (s *Session) LastFight() (model.Fight, bool) {
	if s.fight == nil {
		return model.Fight{}, false
	}
	return *s.fight, true
}

// Registry exposes the occupant numbering of the current room.
func (s *Session) Registry() *Registry {
	return s.registry
}

func (s *Session) requireStatus(span trace.Span, command string) (string, bool) {
	if s.status == nil {
		s.fail(span, command, model.NewSessionUninitialized())
		return "", false
	}
	return s.status.GUID, true
}

func (s *Session) resolve(span trace.Span, command string, key int) (guid, target string, ok bool) {
	guid, ok = s.requireStatus(span, command)
	if !ok {
		return "", "", false
	}
	target, ok = s.registry.Lookup(key)
	if !ok {
		events.Session.UnknownKey(command, key)
		return "", "", false
	}
	events.Session.Target(command, key, target)
	return guid, target, true
}

func (s *Session) setRoom(command string, room model.Room) {
	s.status.Room = room
	s.registry.Rebuild(room, s.status.GUID)
	events.Session.Room(command, s.registry.Len())
}

func (s *Session) fail(span trace.Span, command string, err error) {
	s.err = model.AsError(err)
	span.RecordError(s.err)
	span.SetStatus(codes.Error, s.err.Kind.String())
	events.Session.Error(command, s.err)
}
