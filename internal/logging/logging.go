// Package logging configures the process-wide zap logger. The terminal is
// owned by the renderer, so every entry goes to a rotated file.
package logging

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"sync"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"gopkg.in/natefinch/lumberjack.v2"
)

const DefaultFile = "mun.log"

// Config selects the log destination and verbosity.
type Config struct {
	FilePath string
	Level    string
	Trace    bool
}

var (
	mu           sync.RWMutex
	log          = zap.NewNop().Sugar()
	traceEnabled bool
)

// Configure replaces the global logger. Empty paths fall back to DefaultFile;
// missing directories are created.
func Configure(cfg Config) error {
	path := strings.TrimSpace(cfg.FilePath)
	if path == "" {
		path = DefaultFile
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("create log directory: %w", err)
	}
	level, err := zapcore.ParseLevel(strings.TrimSpace(cfg.Level))
	if err != nil {
		return fmt.Errorf("parse log level: %w", err)
	}

	lj := &lumberjack.Logger{
		Filename:   path,
		MaxSize:    10, // MB
		MaxBackups: 3,
		MaxAge:     7, // days
	}
	encCfg := zapcore.EncoderConfig{
		TimeKey:       "ts",
		LevelKey:      "level",
		NameKey:       "logger",
		CallerKey:     "caller",
		MessageKey:    "msg",
		StacktraceKey: "stack",
		LineEnding:    zapcore.DefaultLineEnding,
		EncodeLevel:   zapcore.CapitalLevelEncoder,
		EncodeTime:    zapcore.ISO8601TimeEncoder,
		EncodeCaller:  zapcore.ShortCallerEncoder,
	}
	core := zapcore.NewCore(zapcore.NewConsoleEncoder(encCfg), zapcore.AddSync(lj), level)

	mu.Lock()
	defer mu.Unlock()
	log = zap.New(core, zap.AddCaller()).Sugar()
	traceEnabled = cfg.Trace
	return nil
}

// L returns the current logger.
func L() *zap.SugaredLogger {
	mu.RLock()
	defer mu.RUnlock()
	return log
}

// Sync flushes buffered entries.
func Sync() {
	_ = L().Sync()
}

// Error logs a non-nil error.
func Error(err error) {
	if err == nil {
		return
	}
	L().Error(err)
}

// SetTraceEnabled toggles emission of trace entries.
func SetTraceEnabled(enabled bool) {
	mu.Lock()
	traceEnabled = enabled
	mu.Unlock()
}

// Trace writes a structured entry when tracing is enabled. Trace entries are
// logged at info level under the "trace" name so they survive the default level.
func Trace(event string, payload map[string]interface{}) {
	mu.RLock()
	enabled, logger := traceEnabled, log
	mu.RUnlock()
	if !enabled {
		return
	}
	logger.Desugar().Named("trace").Info(event, zap.Any("payload", payload))
}
