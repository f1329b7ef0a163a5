// Package config resolves the client's startup configuration from the command
// line and the environment.
package config

import (
	"errors"
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/samdwyer/mun/internal/logging"
)

// Config captures runtime configuration for the client.
type Config struct {
	URL       string
	Logging   logging.Config
	Telemetry bool
}

const (
	envLogFile   = "MUN_LOG_FILE"
	envLogLevel  = "MUN_LOG_LEVEL"
	envTrace     = "MUN_TRACE"
	envTelemetry = "MUN_TELEMETRY"

	urlPrefix = "url="
)

// ErrMissingURL is returned when no non-empty url= argument was given.
var ErrMissingURL = errors.New("No URL was specified")

// ArgumentError reports a command-line argument that is not of the form
// url=<value>.
type ArgumentError struct {
	Arg string
}

func (e *ArgumentError) Error() string {
	return "Could not parse argument " + e.Arg
}

// Load parses configuration from CLI arguments and environment variables.
func Load() (Config, error) {
	return LoadArgs(os.Args[1:], os.Environ())
}

// LoadArgs allows tests to supply specific args/environment. When url= is
// repeated the last value wins. A trailing slash on the URL is dropped.
func LoadArgs(args []string, environ []string) (Config, error) {
	env := parseEnv(environ)

	var url string
	for _, arg := range args {
		if !strings.HasPrefix(arg, urlPrefix) {
			return Config{}, &ArgumentError{Arg: arg}
		}
		url = strings.TrimPrefix(arg, urlPrefix)
	}
	url = strings.TrimRight(url, "/")
	if url == "" {
		return Config{}, ErrMissingURL
	}

	return Config{
		URL: url,
		Logging: logging.Config{
			FilePath: envOrDefault(env, envLogFile, logging.DefaultFile),
			Level:    envOrDefault(env, envLogLevel, "info"),
			Trace:    envOrBool(env, envTrace, false),
		},
		Telemetry: envOrBool(env, envTelemetry, false),
	}, nil
}

func parseEnv(environ []string) map[string]string {
	values := make(map[string]string, len(environ))
	for _, entry := range environ {
		key, value, ok := strings.Cut(entry, "=")
		if !ok || key == "" {
			continue
		}
		values[key] = value
	}
	return values
}

func envOrDefault(env map[string]string, key, fallback string) string {
	if v, ok := env[key]; ok && strings.TrimSpace(v) != "" {
		return v
	}
	return fallback
}

func envOrBool(env map[string]string, key string, fallback bool) bool {
	v, ok := env[key]
	if !ok || strings.TrimSpace(v) == "" {
		return fallback
	}
	parsed, err := strconv.ParseBool(v)
	if err != nil {
		return fallback
	}
	return parsed
}

// MustLoad returns configuration or exits with status 2.
func MustLoad() Config {
	cfg, err := Load()
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(2)
	}
	return cfg
}
