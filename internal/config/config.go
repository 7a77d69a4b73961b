// Package config holds the server's environment-driven defaults.
package config

import (
	"fmt"
	"io"
	"log/slog"
	"os"
	"strconv"
	"strings"

	"github.com/ironsheep/image-halftone-mcp/internal/halftone"
	"github.com/ironsheep/image-halftone-mcp/internal/phash"
)

// Environment variables read by FromEnv.
const (
	EnvLogLevel  = "IMAGE_HALFTONE_LOG_LEVEL"
	EnvHashSize  = "IMAGE_HALFTONE_HASH_SIZE"
	EnvResampler = "IMAGE_HALFTONE_RESAMPLER"
	EnvDither    = "IMAGE_HALFTONE_DITHER"
	EnvLevels    = "IMAGE_HALFTONE_LEVELS"
)

// MaxHashSize bounds HashSize; a 64x64 hash already has 4096 bits.
const MaxHashSize = 64

// MaxLevels bounds Levels to what uint16 level indices can hold.
const MaxLevels = 65536

// Config is the server configuration. Tool arguments override the defaults
// per call.
type Config struct {
	LogLevel string // "debug", "info", "warn", "error"

	// Defaults for tools that hash images.
	HashSize  int    // default 8
	Resampler string // default "lanczos"

	// Defaults for tools that dither or quantize.
	Dither halftone.Method // default floyd-steinberg
	Levels int             // default 2
}

// Default returns a Config populated with the built-in defaults.
func Default() Config {
	return Config{
		LogLevel:  "info",
		HashSize:  phash.DefaultSize,
		Resampler: phash.DefaultResampler,
		Dither:    halftone.FloydSteinberg,
		Levels:    2,
	}
}

// Validate returns an error if the configuration is inconsistent.
func Validate(c Config) error {
	if _, err := ParseLevel(c.LogLevel); err != nil {
		return err
	}
	if c.HashSize < 1 || c.HashSize > MaxHashSize {
		return fmt.Errorf("config: HashSize must be between 1 and %d, got %d", MaxHashSize, c.HashSize)
	}
	if _, err := phash.LookupResampler(c.Resampler); err != nil {
		return fmt.Errorf("config: %w", err)
	}
	if !c.Dither.Known() {
		return fmt.Errorf("config: unknown dither method %q", c.Dither)
	}
	if c.Levels < 2 || c.Levels > MaxLevels {
		return fmt.Errorf("config: Levels must be between 2 and %d, got %d", MaxLevels, c.Levels)
	}
	return nil
}

// FromEnv starts from Default, applies any IMAGE_HALFTONE_* variables that
// are set and validates the result.
func FromEnv() (Config, error) {
	return fromLookup(os.LookupEnv)
}

func fromLookup(lookup func(string) (string, bool)) (Config, error) {
	c := Default()

	if v, ok := lookup(EnvLogLevel); ok && v != "" {
		c.LogLevel = strings.ToLower(strings.TrimSpace(v))
	}
	if v, ok := lookup(EnvHashSize); ok && v != "" {
		n, err := strconv.Atoi(strings.TrimSpace(v))
		if err != nil {
			return Config{}, fmt.Errorf("config: %s: %w", EnvHashSize, err)
		}
		c.HashSize = n
	}
	if v, ok := lookup(EnvResampler); ok && v != "" {
		c.Resampler = strings.ToLower(strings.TrimSpace(v))
	}
	if v, ok := lookup(EnvDither); ok && v != "" {
		c.Dither = halftone.ParseMethod(v)
	}
	if v, ok := lookup(EnvLevels); ok && v != "" {
		n, err := strconv.Atoi(strings.TrimSpace(v))
		if err != nil {
			return Config{}, fmt.Errorf("config: %s: %w", EnvLevels, err)
		}
		c.Levels = n
	}

	if err := Validate(c); err != nil {
		return Config{}, err
	}
	return c, nil
}

// ParseLevel maps a level name to a slog.Level. "warning" is accepted as an
// alias for "warn".
func ParseLevel(s string) (slog.Level, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "debug":
		return slog.LevelDebug, nil
	case "", "info":
		return slog.LevelInfo, nil
	case "warn", "warning":
		return slog.LevelWarn, nil
	case "error":
		return slog.LevelError, nil
	}
	return slog.LevelInfo, fmt.Errorf("config: unknown log level %q", s)
}

// NewLogger returns a text slog.Logger writing to w at c.LogLevel.
// Unknown levels fall back to info.
func (c Config) NewLogger(w io.Writer) *slog.Logger {
	level, _ := ParseLevel(c.LogLevel)
	return slog.New(slog.NewTextHandler(w, &slog.HandlerOptions{Level: level}))
}
