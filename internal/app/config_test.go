package app

import (
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/require"
	"github.com/vk/sweepdeck/internal/runconfig"
)

func TestDefaultConfig(t *testing.T) {
	t.Parallel()

	cfg := DefaultConfig()

	require.Equal(t, "info", cfg.LogLevel)
	require.Equal(t, "text", cfg.LogFormat)
	if diff := cmp.Diff(runconfig.Default(), cfg.Run); diff != "" {
		t.Errorf("DefaultConfig().Run mismatch (-want +got):\n%s", diff)
	}
}

func TestNewConfig(t *testing.T) {
	t.Parallel()

	testCases := []struct {
		name     string
		mutate   func(*Config)
		contains string
	}{
		{name: "defaults", mutate: func(*Config) {}},
		{name: "json debug", mutate: func(c *Config) { c.LogFormat, c.LogLevel = "json", "debug" }},
		{name: "bad level", mutate: func(c *Config) { c.LogLevel = "loud" }, contains: "unknown log level"},
		{name: "bad format", mutate: func(c *Config) { c.LogFormat = "xml" }, contains: "unknown log format"},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()

			cfg := *DefaultConfig()
			tc.mutate(&cfg)

			got, err := NewConfig(cfg)
			if tc.contains != "" {
				require.ErrorContains(t, err, tc.contains)
				require.Nil(t, got)
				return
			}
			require.NoError(t, err)
			require.Equal(t, cfg.LogLevel, got.LogLevel)
		})
	}
}

func TestNewLogger_Format(t *testing.T) {
	t.Parallel()

	var text, json SafeBuffer
	newLogger("info", "text", &text).Info("hello")
	newLogger("info", "json", &json).Info("hello")
	newLogger("warn", "text", &text).Info("filtered")

	require.Contains(t, text.String(), "msg=hello")
	require.NotContains(t, text.String(), "filtered")
	require.Contains(t, json.String(), `"msg":"hello"`)
}
