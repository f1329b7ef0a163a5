// Package runner drives the client: a producer goroutine turns terminal input
// into events, and the consumer applies them to the session and popup and
// redraws after each one.
package runner

import (
	"context"
	"time"

	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"
	"golang.org/x/sync/errgroup"

	"github.com/samdwyer/mun/internal/input"
	"github.com/samdwyer/mun/internal/logging"
	"github.com/samdwyer/mun/internal/logging/events"
	"github.com/samdwyer/mun/internal/model"
	"github.com/samdwyer/mun/internal/popup"
	"github.com/samdwyer/mun/internal/session"
	"github.com/samdwyer/mun/internal/telemetry"
)

const queueSize = 64

// Config holds runner settings.
type Config struct {
	BaseURL string
	Tick    time.Duration
	// Help is shown by the help key.
	Help []string
}

// Runner owns the session and popup for the lifetime of Run.
type Runner struct {
	cfg       Config
	session   *session.Session
	popup     *popup.Machine
	keys      KeySource
	presenter Presenter
	tracer    trace.Tracer
}

// New creates a runner.
func New(cfg Config, sess *session.Session, keys KeySource, presenter Presenter) *Runner {
	if cfg.Tick <= 0 {
		cfg.Tick = DefaultTick
	}
	return &Runner{
		cfg:       cfg,
		session:   sess,
		popup:     popup.New(),
		keys:      keys,
		presenter: presenter,
		tracer:    telemetry.Tracer("runner"),
	}
}

// Run processes events until the quit key is pressed or ctx is cancelled.
// The presenter is closed before Run returns, whatever the outcome.
func (r *Runner) Run(ctx context.Context) error {
	defer r.presenter.Close()
	events.Runner.Start(r.cfg.BaseURL, r.cfg.Tick.Milliseconds())

	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	queue := make(chan Event, queueSize)
	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		return Produce(gctx, r.keys, queue, r.cfg.Tick)
	})
	g.Go(func() error {
		defer cancel()
		return r.consume(gctx, queue)
	})

	return g.Wait()
}

func (r *Runner) consume(ctx context.Context, queue <-chan Event) error {
	for {
		r.popup.Sync(r.session)
		if err := r.presenter.Render(r.view()); err != nil {
			return err
		}

		var ev Event
		select {
		case <-ctx.Done():
			return nil
		case ev = <-queue:
		}
		if ev.Kind == EventTick {
			continue
		}
		if ev.Key.Is('q') {
			events.Runner.Quit()
			return nil
		}
		// Commands run to completion even if the loop is being cancelled.
		r.dispatch(context.WithoutCancel(ctx), ev.Key)
	}
}

func (r *Runner) dispatch(ctx context.Context, key input.Key) {
	active := r.popup.Active()
	ctx, span := r.tracer.Start(ctx, "runner.dispatch", trace.WithAttributes(
		attribute.String("key", key.String()),
		attribute.Bool("popup", active),
	))
	defer span.End()
	events.Runner.Input(key.String(), active)

	if active {
		r.popup.HandleKey(ctx, key, r.session)
		return
	}

	switch key.Code {
	case input.KeyUp:
		r.session.Move(ctx, model.North)
	case input.KeyDown:
		r.session.Move(ctx, model.South)
	case input.KeyRight:
		r.session.Move(ctx, model.East)
	case input.KeyLeft:
		r.session.Move(ctx, model.West)
	case input.KeyRune:
		r.dispatchRune(ctx, key.Rune)
	}
}

func (r *Runner) dispatchRune(ctx context.Context, ch rune) {
	switch ch {
	case 'c':
		r.session.Connect(ctx)
	case 'd':
		r.session.Disconnect()
	case 'l':
		r.session.LookRoom(ctx)
	case 'h':
		r.popup.ShowInfo(popup.TitleHelp, r.cfg.Help)
	case 'a':
		r.popup.OpenSelect(popup.ModeAttack, r.session.Registry().Keys())
	case 'e':
		r.popup.OpenSelect(popup.ModeLook, r.session.Registry().Keys())
	default:
		logging.L().Debugw("unbound key", "key", string(ch))
	}
}
