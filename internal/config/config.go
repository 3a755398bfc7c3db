// Package config loads codefield settings from a TOML file and CODEFIELD_*
// environment variables, and watches the file for changes.
//
// Precedence, lowest first: built-in defaults, the file, the environment.
package config

import (
	"bytes"
	"errors"
	"fmt"
	"os"
	"slices"
	"strconv"
	"strings"

	"github.com/alecthomas/chroma/v2/styles"
	"github.com/pelletier/go-toml/v2"
	"go.uber.org/zap/zapcore"
)

// EnvPrefix prefixes every environment variable the loader reads.
const EnvPrefix = "CODEFIELD_"

var (
	// ErrInvalid wraps every parse and validation failure.
	ErrInvalid = errors.New("invalid config")
)

type Config struct {
	// Mode is the language mode of the element. Unknown modes are allowed
	// and edit as plain text.
	Mode     string `toml:"mode"`
	Disabled bool   `toml:"disabled"`
	// Style is a chroma style name for syntax highlighting.
	Style    string `toml:"style"`
	TabWidth int    `toml:"tab_width"`

	Log Log `toml:"log"`
}

type Log struct {
	// Path is the log file. Empty disables logging.
	Path  string `toml:"path"`
	Level string `toml:"level"`
}

func Default() Config {
	return Config{
		Mode:     "javascript",
		Style:    "monokai",
		TabWidth: 4,
		Log:      Log{Level: "info"},
	}
}

// Load reads path over the defaults, applies the environment and validates
// the result. A missing file is not an error. An empty path skips the file.
func Load(path string) (Config, error) {
	cfg := Default()
	if path != "" {
		data, err := os.ReadFile(path)
		switch {
		case errors.Is(err, os.ErrNotExist):
		case err != nil:
			return Config{}, fmt.Errorf("reading config file %s: %w", path, err)
		default:
			if err := decode(data, &cfg); err != nil {
				return Config{}, fmt.Errorf("%w: %s: %v", ErrInvalid, path, err)
			}
		}
	}
	if err := cfg.ApplyEnv(os.LookupEnv); err != nil {
		return Config{}, err
	}
	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

// Parse decodes TOML data over the defaults and validates the result. The
// environment is not consulted.
func Parse(data []byte) (Config, error) {
	cfg := Default()
	if err := decode(data, &cfg); err != nil {
		return Config{}, fmt.Errorf("%w: %v", ErrInvalid, err)
	}
	return cfg, cfg.Validate()
}

func decode(data []byte, cfg *Config) error {
	dec := toml.NewDecoder(bytes.NewReader(data))
	dec.DisallowUnknownFields()
	return dec.Decode(cfg)
}

// ApplyEnv overlays CODEFIELD_MODE, CODEFIELD_DISABLED, CODEFIELD_STYLE,
// CODEFIELD_TAB_WIDTH, CODEFIELD_LOG_PATH and CODEFIELD_LOG_LEVEL read
// through lookup.
func (c *Config) ApplyEnv(lookup func(string) (string, bool)) error {
	str := func(name string, dst *string) {
		if v, ok := lookup(EnvPrefix + name); ok {
			*dst = v
		}
	}
	str("MODE", &c.Mode)
	str("STYLE", &c.Style)
	str("LOG_PATH", &c.Log.Path)
	str("LOG_LEVEL", &c.Log.Level)

	if v, ok := lookup(EnvPrefix + "DISABLED"); ok {
		b, err := strconv.ParseBool(v)
		if err != nil {
			return fmt.Errorf("%w: %sDISABLED=%q: %v", ErrInvalid, EnvPrefix, v, err)
		}
		c.Disabled = b
	}
	if v, ok := lookup(EnvPrefix + "TAB_WIDTH"); ok {
		n, err := strconv.Atoi(v)
		if err != nil {
			return fmt.Errorf("%w: %sTAB_WIDTH=%q: %v", ErrInvalid, EnvPrefix, v, err)
		}
		c.TabWidth = n
	}
	return nil
}

func (c Config) Validate() error {
	if strings.TrimSpace(c.Mode) == "" {
		return fmt.Errorf("%w: mode is empty", ErrInvalid)
	}
	if c.TabWidth < 1 || c.TabWidth > 16 {
		return fmt.Errorf("%w: tab_width %d out of range [1, 16]", ErrInvalid, c.TabWidth)
	}
	if c.Style != "" && !slices.Contains(styles.Names(), c.Style) {
		return fmt.Errorf("%w: unknown style %q", ErrInvalid, c.Style)
	}
	if _, err := zapcore.ParseLevel(c.Log.Level); err != nil {
		return fmt.Errorf("%w: log level: %v", ErrInvalid, err)
	}
	return nil
}
