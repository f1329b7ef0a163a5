package model

import (
	"encoding/json"
	"errors"
	"fmt"
	"strings"
)

// ErrorKind classifies a non-fatal failure of a game command.
type ErrorKind int

const (
	KindTransport ErrorKind = iota + 1
	KindBadRequest
	KindNotFound
	KindConflict
	KindDeserialization
	KindSessionUninitialized
)

// String returns the taxonomy name of the kind.
func (k ErrorKind) String() string {
	switch k {
	case KindTransport:
		return "TransportError"
	case KindBadRequest:
		return "BadRequest"
	case KindNotFound:
		return "NotFound"
	case KindConflict:
		return "Conflict"
	case KindDeserialization:
		return "DeserializationError"
	case KindSessionUninitialized:
		return "SessionUninitialized"
	default:
		return "unknown"
	}
}

// ConflictKind is the reason the server attached to a 409 response.
type ConflictKind int

const (
	ConflictDead ConflictKind = iota
	ConflictWall
	ConflictDifferentRoom
)

// String returns a human-readable reason.
func (c ConflictKind) String() string {
	switch c {
	case ConflictDead:
		return "Dead"
	case ConflictWall:
		return "Wall"
	case ConflictDifferentRoom:
		return "DifferentRoom"
	default:
		return "unknown"
	}
}

// UnmarshalJSON accepts the server codes MORT, MUR and DIFFSALLE.
func (c *ConflictKind) UnmarshalJSON(data []byte) error {
	var code string
	if err := json.Unmarshal(data, &code); err != nil {
		return err
	}
	switch code {
	case "MORT":
		*c = ConflictDead
	case "MUR":
		*c = ConflictWall
	case "DIFFSALLE":
		*c = ConflictDifferentRoom
	default:
		return fmt.Errorf("unknown error type %q", code)
	}
	return nil
}

// ErrorDetail is the message part of an Error.
type ErrorDetail struct {
	Kind    *ConflictKind
	Message string
}

const (
	MessageTransport            = "A network error has occured"
	MessageBadRequest           = "Bad request"
	MessageNotFound             = "URL not found"
	MessageDeserialization      = "Error while parsing JSON response"
	MessageSessionUninitialized = "Error while accessing player status, status is uninitialized"
)

// Error is the last failure of a game command. Code is zero when no HTTP
// status was received.
type Error struct {
	Kind   ErrorKind
	Code   int
	Detail ErrorDetail
	cause  error
}

func (e *Error) Error() string {
	var b strings.Builder
	b.WriteString(e.Kind.String())
	if e.Code != 0 {
		fmt.Fprintf(&b, " (%d)", e.Code)
	}
	if e.Detail.Kind != nil {
		fmt.Fprintf(&b, " [%s]", e.Detail.Kind)
	}
	if e.Detail.Message != "" {
		b.WriteString(": ")
		b.WriteString(e.Detail.Message)
	}
	return b.String()
}

// Unwrap exposes the underlying transport or decoding failure, if any.
func (e *Error) Unwrap() error { return e.cause }

// HasCode reports whether an HTTP status was received.
func (e *Error) HasCode() bool { return e.Code != 0 }

// NewTransportError wraps a failure that produced no HTTP response.
func NewTransportError(cause error) *Error {
	return &Error{Kind: KindTransport, Detail: ErrorDetail{Message: MessageTransport}, cause: cause}
}

func NewBadRequest() *Error {
	return &Error{Kind: KindBadRequest, Code: 400, Detail: ErrorDetail{Message: MessageBadRequest}}
}

func NewNotFound() *Error {
	return &Error{Kind: KindNotFound, Code: 404, Detail: ErrorDetail{Message: MessageNotFound}}
}

// NewConflict carries the detail the server sent with a 409.
func NewConflict(detail ErrorDetail) *Error {
	return &Error{Kind: KindConflict, Code: 409, Detail: detail}
}

// NewDeserializationError wraps a body that did not match the expected shape.
func NewDeserializationError(code int, cause error) *Error {
	return &Error{Kind: KindDeserialization, Code: code, Detail: ErrorDetail{Message: MessageDeserialization}, cause: cause}
}

func NewSessionUninitialized() *Error {
	return &Error{Kind: KindSessionUninitialized, Detail: ErrorDetail{Message: MessageSessionUninitialized}}
}

// IsKind reports whether err is an *Error of the given kind.
func IsKind(err error, kind ErrorKind) bool {
	var e *Error
	return errors.As(err, &e) && e.Kind == kind
}

// AsError converts any error into an *Error. Errors of other types are
// treated as transport failures.
func AsError(err error) *Error {
	if err == nil {
		return nil
	}
	var e *Error
	if errors.As(err, &e) {
		return e
	}
	return NewTransportError(err)
}
