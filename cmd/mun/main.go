// Package main is the entry point for mun, a terminal client for the MUN
// dungeon server.
package main

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"os/signal"
	"runtime"
	"syscall"

	"github.com/joho/godotenv"

	"github.com/samdwyer/mun/internal/client"
	"github.com/samdwyer/mun/internal/config"
	"github.com/samdwyer/mun/internal/gamedata"
	"github.com/samdwyer/mun/internal/logging"
	"github.com/samdwyer/mun/internal/logging/events"
	"github.com/samdwyer/mun/internal/runner"
	"github.com/samdwyer/mun/internal/session"
	"github.com/samdwyer/mun/internal/telemetry"
	"github.com/samdwyer/mun/internal/ui"
)

func main() {
	os.Exit(start())
}

// start runs the client and returns the process exit status.
func start() int {
	// .env is optional; variables may be set directly.
	if err := godotenv.Load(); err != nil && !errors.Is(err, fs.ErrNotExist) {
		fmt.Fprintf(os.Stderr, "Note: .env file not loaded: %v\n", err)
	}

	cfg := config.MustLoad()
	if err := logging.Configure(cfg.Logging); err != nil {
		fmt.Fprintf(os.Stderr, "Logging error: %v\n", err)
		return 2
	}
	defer logging.Sync()
	events.App.Start(startupPayload(cfg))

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if cfg.Telemetry {
		shutdown, err := telemetry.Setup(ctx)
		if err != nil {
			logging.L().Warnw("telemetry setup failed, continuing without traces", "error", err)
		} else {
			defer func() {
				if err := shutdown(context.WithoutCancel(ctx)); err != nil {
					logging.L().Warnw("telemetry shutdown failed", "error", err)
				}
			}()
		}
	}

	if err := run(ctx, cfg); err != nil {
		logging.Error(err)
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return 1
	}
	return 0
}

func run(ctx context.Context, cfg config.Config) error {
	theme, err := ui.LoadTheme()
	if err != nil {
		return fmt.Errorf("load theme: %w", err)
	}
	keybinds, err := gamedata.LoadKeybinds()
	if err != nil {
		return fmt.Errorf("load keybinds: %w", err)
	}

	screen, err := ui.NewScreen()
	if err != nil {
		return fmt.Errorf("init terminal: %w", err)
	}
	renderer := ui.NewRenderer(screen, theme)

	sess := session.New(client.New(cfg.URL))
	r := runner.New(runner.Config{
		BaseURL: cfg.URL,
		Tick:    runner.DefaultTick,
		Help:    gamedata.HelpLines(keybinds),
	}, sess, screen, renderer)
	return r.Run(ctx)
}

func startupPayload(cfg config.Config) map[string]interface{} {
	payload := map[string]interface{}{
		"url":       cfg.URL,
		"logFile":   cfg.Logging.FilePath,
		"logLevel":  cfg.Logging.Level,
		"trace":     cfg.Logging.Trace,
		"telemetry": cfg.Telemetry,
		"goos":      runtime.GOOS,
	}
	if cwd, err := os.Getwd(); err == nil {
		payload["cwd"] = cwd
	}
	return payload
}
