package client

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.opentelemetry.io/otel/attribute"
	sdktrace "go.opentelemetry.io/otel/sdk/trace"
	"go.opentelemetry.io/otel/sdk/trace/tracetest"

	"github.com/samdwyer/mun/internal/model"
	"github.com/samdwyer/mun/internal/telemetry"
)

const roomBody = `{"description":"a hall","passages":["S"],"entites":["g1","g9"]}`

// seen records the last request a test server handled.
type seen struct {
	method, path, body, requestID, contentType string
}

type recorder struct {
	mu   sync.Mutex
	last seen
}

func (r *recorder) record(req *http.Request) {
	body, _ := io.ReadAll(req.Body)
	r.mu.Lock()
	defer r.mu.Unlock()
	r.last = seen{
		method:      req.Method,
		path:        req.URL.EscapedPath(),
		body:        string(body),
		requestID:   req.Header.Get(headerRequestID),
		contentType: req.Header.Get("Content-Type"),
	}
}

func (r *recorder) get() seen {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.last
}

func newTestClient(t *testing.T, h http.HandlerFunc) *Client {
	t.Helper()
	srv := httptest.NewServer(h)
	t.Cleanup(srv.Close)
	return New(srv.URL+"/", WithTimeout(2*time.Second), WithTracer(telemetry.NoopTracer()))
}

func TestConnect(t *testing.T) {
	var rec recorder
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		rec.record(r)
		io.WriteString(w, `{"guid":"g1","totalvie":20,"salle":`+roomBody+`}`)
	})

	status, err := c.Connect(context.Background())
	require.NoError(t, err)
	got := rec.get()
	assert.Equal(t, http.MethodPost, got.method)
	assert.Equal(t, "/connect", got.path)
	assert.NotEmpty(t, got.requestID)
	assert.Equal(t, "g1", status.GUID)
	assert.Equal(t, []string{"g1", "g9"}, status.Room.Entities)
}

func TestEndpoints(t *testing.T) {
	var rec recorder
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		rec.record(r)
		switch {
		case r.URL.Path == "/g1/examiner/g2":
			io.WriteString(w, `{"description":"a rat","type":"MONSTRE","vie":1,"totalvie":3}`)
		case r.URL.Path == "/g1/taper/g2":
			io.WriteString(w, `{"attaquant":{"guid":"g1","degats":1,"vie":9},"attaque":{"guid":"g2","degats":0,"vie":0}}`)
		default:
			io.WriteString(w, roomBody)
		}
	})
	ctx := context.Background()

	_, err := c.LookRoom(ctx, "g1")
	require.NoError(t, err)
	got := rec.get()
	assert.Equal(t, http.MethodGet, got.method)
	assert.Equal(t, "/g1/regarder", got.path)
	assert.Empty(t, got.body)

	room, err := c.Move(ctx, "g1", model.South)
	require.NoError(t, err)
	got = rec.get()
	assert.Equal(t, http.MethodPost, got.method)
	assert.Equal(t, "/g1/deplacement", got.path)
	assert.JSONEq(t, `{"direction":"S"}`, got.body)
	assert.Equal(t, "a hall", room.Description)

	entity, err := c.LookEntity(ctx, "g1", "g2")
	require.NoError(t, err)
	got = rec.get()
	assert.Equal(t, http.MethodGet, got.method)
	assert.Equal(t, "/g1/examiner/g2", got.path)
	assert.Equal(t, model.KindMonster, entity.Kind)

	fight, err := c.Attack(ctx, "g1", "g2")
	require.NoError(t, err)
	got = rec.get()
	assert.Equal(t, http.MethodPost, got.method)
	assert.Equal(t, "/g1/taper/g2", got.path)
	assert.Equal(t, uint32(9), fight.Attacker.Life)
}

func TestStatusMapping(t *testing.T) {
	tests := []struct {
		name     string
		status   int
		body     string
		wantKind model.ErrorKind
		wantCode int
		wantMsg  string
	}{
		{"bad request", http.StatusBadRequest, "whatever", model.KindBadRequest, 400, model.MessageBadRequest},
		{"not found", http.StatusNotFound, "", model.KindNotFound, 404, model.MessageNotFound},
		{"conflict", http.StatusConflict, `{"type":"MUR","message":"a wall"}`, model.KindConflict, 409, "a wall"},
		{"conflict bad body", http.StatusConflict, `<html>`, model.KindDeserialization, 409, model.MessageDeserialization},
		{"ok bad body", http.StatusOK, `{"description":"x"}`, model.KindDeserialization, 200, model.MessageDeserialization},
		{"server error bad body", http.StatusInternalServerError, "oops", model.KindDeserialization, 500, model.MessageDeserialization},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var hits atomic.Int32
			c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
				hits.Add(1)
				w.WriteHeader(tt.status)
				io.WriteString(w, tt.body)
			})

			_, err := c.LookRoom(context.Background(), "g1")
			require.Error(t, err)
			e := model.AsError(err)
			assert.Equal(t, tt.wantKind, e.Kind)
			assert.Equal(t, tt.wantCode, e.Code)
			assert.Equal(t, tt.wantMsg, e.Detail.Message)
			assert.Equal(t, int32(1), hits.Load(), "responses are never retried")
		})
	}
}

func TestConflictKind(t *testing.T) {
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusConflict)
		io.WriteString(w, `{"type":"MORT","message":"you are dead"}`)
	})
	_, err := c.Attack(context.Background(), "g1", "g2")
	e := model.AsError(err)
	require.NotNil(t, e.Detail.Kind)
	assert.Equal(t, model.ConflictDead, *e.Detail.Kind)
}

// A server that drops every connection produces exactly two attempts with
// the same request id.
func TestTransportRetriesOnce(t *testing.T) {
	var mu sync.Mutex
	var ids []string
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		mu.Lock()
		ids = append(ids, r.Header.Get(headerRequestID))
		mu.Unlock()
		conn, _, err := w.(http.Hijacker).Hijack()
		if err == nil {
			conn.Close()
		}
	})

	_, err := c.Connect(context.Background())
	require.Error(t, err)
	e := model.AsError(err)
	assert.Equal(t, model.KindTransport, e.Kind)
	assert.False(t, e.HasCode())
	assert.Equal(t, model.MessageTransport, e.Detail.Message)

	mu.Lock()
	defer mu.Unlock()
	require.Len(t, ids, 2)
	assert.Equal(t, ids[0], ids[1])
}

func TestTransportRecoversOnRetry(t *testing.T) {
	var hits atomic.Int32
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		if hits.Add(1) == 1 {
			conn, _, _ := w.(http.Hijacker).Hijack()
			conn.Close()
			return
		}
		io.WriteString(w, roomBody)
	})

	room, err := c.LookRoom(context.Background(), "g1")
	require.NoError(t, err)
	assert.Equal(t, "a hall", room.Description)
	assert.Equal(t, int32(2), hits.Load())
}

func TestUnreachableServer(t *testing.T) {
	srv := httptest.NewServer(http.NotFoundHandler())
	url := srv.URL
	srv.Close()

	_, err := New(url).Connect(context.Background())
	assert.True(t, model.IsKind(err, model.KindTransport))
}

func TestTimeoutIsTransport(t *testing.T) {
	release := make(chan struct{})
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		<-release
	}))
	t.Cleanup(srv.Close)
	t.Cleanup(func() { close(release) })

	c := New(srv.URL, WithTimeout(20*time.Millisecond))
	_, err := c.LookRoom(context.Background(), "g1")
	assert.True(t, model.IsKind(err, model.KindTransport))
}

func TestPathEscaping(t *testing.T) {
	var rec recorder
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		rec.record(r)
		io.WriteString(w, roomBody)
	})
	_, err := c.LookRoom(context.Background(), "a/b")
	require.NoError(t, err)
	assert.Equal(t, "/a%2Fb/regarder", rec.get().path)
}

func TestNewTrimsSlashAndKeepsTimeout(t *testing.T) {
	c := New("http://mun.test/", WithHTTPClient(&http.Client{Timeout: time.Hour}))
	assert.Equal(t, "http://mun.test", c.BaseURL())
	assert.Equal(t, DefaultTimeout, c.http.Timeout)
}

func TestMoveBodyIsJSON(t *testing.T) {
	var rec recorder
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		rec.record(r)
		io.WriteString(w, roomBody)
	})
	_, err := c.Move(context.Background(), "g1", model.North)
	require.NoError(t, err)

	got := rec.get()
	assert.Equal(t, "application/json", got.contentType)
	var req model.MoveRequest
	require.NoError(t, json.Unmarshal([]byte(got.body), &req))
	assert.Equal(t, model.North, req.Direction)
}

func TestSpanRecordsAttempts(t *testing.T) {
	rec := tracetest.NewSpanRecorder()
	tp := sdktrace.NewTracerProvider(sdktrace.WithSpanProcessor(rec))
	t.Cleanup(func() { _ = tp.Shutdown(context.Background()) })

	var hits atomic.Int32
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if hits.Add(1) == 1 {
			conn, _, _ := w.(http.Hijacker).Hijack()
			conn.Close()
			return
		}
		w.WriteHeader(http.StatusNotFound)
	}))
	t.Cleanup(srv.Close)

	c := New(srv.URL, WithTracer(tp.Tracer("test")))
	_, err := c.LookRoom(context.Background(), "g1")
	require.True(t, model.IsKind(err, model.KindNotFound))

	spans := rec.Ended()
	require.Len(t, spans, 1)
	assert.Equal(t, "client.look_room", spans[0].Name())
	attrs := map[attribute.Key]attribute.Value{}
	for _, kv := range spans[0].Attributes() {
		attrs[kv.Key] = kv.Value
	}
	assert.Equal(t, int64(2), attrs["request.attempts"].AsInt64())
	assert.Equal(t, int64(404), attrs["http.status_code"].AsInt64())
	assert.Equal(t, "GET", attrs["http.method"].AsString())
}
