package client

import (
	"context"
	"encoding/json"
	"net/http"
	"net/url"

	"github.com/samdwyer/mun/internal/model"
)

// Connect allocates a new server-side session.
func (c *Client) Connect(ctx context.Context) (model.Status, error) {
	return call(ctx, c, request{op: "connect", method: http.MethodPost, path: "/connect"}, model.ParseStatus)
}

// LookRoom describes the room the player stands in.
func (c *Client) LookRoom(ctx context.Context, guid string) (model.Room, error) {
	req := request{op: "look_room", method: http.MethodGet, path: "/" + url.PathEscape(guid) + "/regarder"}
	return call(ctx, c, req, model.ParseRoom)
}

// Move walks through an exit and returns the new room.
func (c *Client) Move(ctx context.Context, guid string, dir model.Direction) (model.Room, error) {
	body, err := json.Marshal(model.MoveRequest{Direction: dir})
	if err != nil {
		return model.Room{}, model.NewDeserializationError(0, err)
	}
	req := request{op: "move", method: http.MethodPost, path: "/" + url.PathEscape(guid) + "/deplacement", body: body}
	return call(ctx, c, req, model.ParseRoom)
}

// LookEntity describes another occupant of the room.
func (c *Client) LookEntity(ctx context.Context, guid, target string) (model.Entity, error) {
	req := request{
		op:     "look_entity",
		method: http.MethodGet,
		path:   "/" + url.PathEscape(guid) + "/examiner/" + url.PathEscape(target),
	}
	return call(ctx, c, req, model.ParseEntity)
}

// Attack strikes another occupant of the room.
func (c *Client) Attack(ctx context.Context, guid, target string) (model.Fight, error) {
	req := request{
		op:     "attack",
		method: http.MethodPost,
		path:   "/" + url.PathEscape(guid) + "/taper/" + url.PathEscape(target),
	}
	return call(ctx, c, req, model.ParseFight)
}

// call runs req and classifies the response. Errors are always *model.Error.
func call[T any](ctx context.Context, c *Client, req request, parse func([]byte) (T, error)) (T, error) {
	var zero T
	resp, err := c.do(ctx, req)
	if err != nil {
		return zero, model.NewTransportError(err)
	}
	return classify(resp, parse)
}

// classify maps a status code onto the taxonomy. Only 400, 404 and 409 are
// errors by status; everything else is decoded as the expected result.
func classify[T any](resp response, parse func([]byte) (T, error)) (T, error) {
	var zero T
	switch resp.status {
	case http.StatusBadRequest:
		return zero, model.NewBadRequest()
	case http.StatusNotFound:
		return zero, model.NewNotFound()
	case http.StatusConflict:
		detail, err := model.ParseErrorDetail(resp.body)
		if err != nil {
			return zero, model.NewDeserializationError(resp.status, err)
		}
		return zero, model.NewConflict(detail)
	}
	v, err := parse(resp.body)
	if err != nil {
		return zero, model.NewDeserializationError(resp.status, err)
	}
	return v, nil
}
