package config

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/samdwyer/mun/internal/logging"
)

func TestLoadArgsDefaults(t *testing.T) {
	cfg, err := LoadArgs([]string{"url=http://localhost:8080/"}, nil)
	require.NoError(t, err)

	assert.Equal(t, "http://localhost:8080", cfg.URL)
	assert.Equal(t, logging.DefaultFile, cfg.Logging.FilePath)
	assert.Equal(t, "info", cfg.Logging.Level)
	assert.False(t, cfg.Logging.Trace)
	assert.False(t, cfg.Telemetry)
}

func TestLoadArgsEnvironment(t *testing.T) {
	env := []string{
		"MUN_LOG_FILE=/tmp/mun-test.log",
		"MUN_LOG_LEVEL=debug",
		"MUN_TRACE=true",
		"MUN_TELEMETRY=1",
		"MALFORMED",
	}
	cfg, err := LoadArgs([]string{"url=http://mun.test"}, env)
	require.NoError(t, err)

	assert.Equal(t, "/tmp/mun-test.log", cfg.Logging.FilePath)
	assert.Equal(t, "debug", cfg.Logging.Level)
	assert.True(t, cfg.Logging.Trace)
	assert.True(t, cfg.Telemetry)
}

func TestLoadArgsInvalidBool(t *testing.T) {
	cfg, err := LoadArgs([]string{"url=http://mun.test"}, []string{"MUN_TRACE=maybe"})
	require.NoError(t, err)
	assert.False(t, cfg.Logging.Trace)
}

func TestLoadArgsLastURLWins(t *testing.T) {
	cfg, err := LoadArgs([]string{"url=http://a.test", "url=http://b.test"}, nil)
	require.NoError(t, err)
	assert.Equal(t, "http://b.test", cfg.URL)
}

func TestLoadArgsErrors(t *testing.T) {
	tests := []struct {
		name    string
		args    []string
		wantArg string
	}{
		{name: "no args"},
		{name: "empty url", args: []string{"url="}},
		{name: "only slash", args: []string{"url=/"}},
		{name: "flag", args: []string{"--url", "http://mun.test"}, wantArg: "--url"},
		{name: "bare value", args: []string{"http://mun.test"}, wantArg: "http://mun.test"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := LoadArgs(tt.args, nil)
			require.Error(t, err)

			if tt.wantArg == "" {
				assert.ErrorIs(t, err, ErrMissingURL)
				assert.Equal(t, "No URL was specified", err.Error())
				return
			}
			var argErr *ArgumentError
			require.True(t, errors.As(err, &argErr))
			assert.Equal(t, tt.wantArg, argErr.Arg)
			assert.Equal(t, "Could not parse argument "+tt.wantArg, err.Error())
		})
	}
}
