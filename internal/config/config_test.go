package config

import (
	"bytes"
	"context"
	"log/slog"
	"strings"
	"testing"

	"github.com/ironsheep/image-halftone-mcp/internal/halftone"
)

func TestDefault_IsValid(t *testing.T) {
	c := Default()
	if err := Validate(c); err != nil {
		t.Fatalf("Default config is invalid: %v", err)
	}
	if c.HashSize != 8 || c.Resampler != "lanczos" || c.Dither != halftone.FloydSteinberg || c.Levels != 2 {
		t.Errorf("unexpected defaults %+v", c)
	}
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*Config)
		errMsg string
	}{
		{"bad log level", func(c *Config) { c.LogLevel = "loud" }, "log level"},
		{"hash size zero", func(c *Config) { c.HashSize = 0 }, "HashSize"},
		{"hash size too big", func(c *Config) { c.HashSize = 65 }, "HashSize"},
		{"unknown resampler", func(c *Config) { c.Resampler = "sinc" }, "resampler"},
		{"unknown dither", func(c *Config) { c.Dither = "rasterize" }, "dither"},
		{"one level", func(c *Config) { c.Levels = 1 }, "Levels"},
		{"too many levels", func(c *Config) { c.Levels = MaxLevels + 1 }, "Levels"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c := Default()
			tt.mutate(&c)
			err := Validate(c)
			if err == nil || !strings.Contains(err.Error(), tt.errMsg) {
				t.Errorf("err = %v, want mention of %q", err, tt.errMsg)
			}
		})
	}
}

func TestFromEnv(t *testing.T) {
	t.Setenv(EnvLogLevel, "DEBUG")
	t.Setenv(EnvHashSize, "16")
	t.Setenv(EnvResampler, "Box")
	t.Setenv(EnvDither, "Stucki")
	t.Setenv(EnvLevels, "4")

	c, err := FromEnv()
	if err != nil {
		t.Fatalf("FromEnv failed: %v", err)
	}
	want := Config{LogLevel: "debug", HashSize: 16, Resampler: "box", Dither: halftone.Stucki, Levels: 4}
	if c != want {
		t.Errorf("FromEnv = %+v, want %+v", c, want)
	}
}

func TestFromEnv_Invalid(t *testing.T) {
	tests := []struct {
		key, value string
	}{
		{EnvHashSize, "eight"},
		{EnvHashSize, "100"},
		{EnvLevels, "1"},
		{EnvLevels, "x"},
		{EnvResampler, "sinc"},
		{EnvLogLevel, "chatty"},
	}
	for _, tt := range tests {
		t.Run(tt.key+"="+tt.value, func(t *testing.T) {
			t.Setenv(tt.key, tt.value)
			if _, err := FromEnv(); err == nil {
				t.Errorf("FromEnv accepted %s=%s", tt.key, tt.value)
			}
		})
	}
}

func TestFromLookup_Unset(t *testing.T) {
	c, err := fromLookup(func(string) (string, bool) { return "", false })
	if err != nil {
		t.Fatalf("fromLookup failed: %v", err)
	}
	if c != Default() {
		t.Errorf("unset environment = %+v, want defaults", c)
	}
}

func TestNewLogger(t *testing.T) {
	var buf bytes.Buffer
	c := Default()
	c.LogLevel = "warn"
	logger := c.NewLogger(&buf)

	if logger.Enabled(context.Background(), slog.LevelInfo) {
		t.Error("info should be disabled at warn level")
	}
	logger.Warn("hello", "k", "v")
	if !strings.Contains(buf.String(), "msg=hello") || !strings.Contains(buf.String(), "k=v") {
		t.Errorf("unexpected log output %q", buf.String())
	}
}
