package config

import (
	"context"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func env(vars map[string]string) func(string) (string, bool) {
	return func(k string) (string, bool) {
		v, ok := vars[k]
		return v, ok
	}
}

func TestDefaultIsValid(t *testing.T) {
	require.NoError(t, Default().Validate())
}

func TestParse(t *testing.T) {
	cfg, err := Parse([]byte(`
mode = "json"
disabled = true
tab_width = 2

[log]
level = "debug"
`))
	require.NoError(t, err)
	assert.Equal(t, "json", cfg.Mode)
	assert.True(t, cfg.Disabled)
	assert.Equal(t, 2, cfg.TabWidth)
	assert.Equal(t, "monokai", cfg.Style, "unset keys keep their defaults")
	assert.Equal(t, "debug", cfg.Log.Level)
}

func TestParse_Invalid(t *testing.T) {
	cases := map[string]string{
		"syntax":        `mode = `,
		"unknown key":   `colour = "red"`,
		"wrong type":    `tab_width = "wide"`,
		"empty mode":    `mode = " "`,
		"tab range":     `tab_width = 0`,
		"unknown style": `style = "no-such-style"`,
		"log level":     "[log]\nlevel = \"loud\"",
	}
	for name, data := range cases {
		t.Run(name, func(t *testing.T) {
			_, err := Parse([]byte(data))
			require.ErrorIs(t, err, ErrInvalid)
		})
	}
}

func TestApplyEnv(t *testing.T) {
	cfg := Default()
	err := cfg.ApplyEnv(env(map[string]string{
		"CODEFIELD_MODE":      "tsx",
		"CODEFIELD_DISABLED":  "true",
		"CODEFIELD_TAB_WIDTH": "8",
		"CODEFIELD_LOG_PATH":  "/tmp/codefield.log",
		"OTHER_MODE":          "css",
	}))
	require.NoError(t, err)
	assert.Equal(t, "tsx", cfg.Mode)
	assert.True(t, cfg.Disabled)
	assert.Equal(t, 8, cfg.TabWidth)
	assert.Equal(t, "/tmp/codefield.log", cfg.Log.Path)

	bad := Default()
	require.ErrorIs(t, bad.ApplyEnv(env(map[string]string{"CODEFIELD_DISABLED": "maybe"})), ErrInvalid)
	require.ErrorIs(t, bad.ApplyEnv(env(map[string]string{"CODEFIELD_TAB_WIDTH": "x"})), ErrInvalid)
}

func TestLoad(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "codefield.toml")
	require.NoError(t, os.WriteFile(path, []byte(`mode = "css"`), 0o644))
	t.Setenv("CODEFIELD_DISABLED", "1")

	cfg, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, "css", cfg.Mode)
	assert.True(t, cfg.Disabled, "environment overrides the file")
}

func TestLoad_MissingFileUsesDefaults(t *testing.T) {
	cfg, err := Load(filepath.Join(t.TempDir(), "absent.toml"))
	require.NoError(t, err)
	assert.Equal(t, Default().Mode, cfg.Mode)
}

func TestLoad_BadFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "codefield.toml")
	require.NoError(t, os.WriteFile(path, []byte(`mode = [`), 0o644))
	_, err := Load(path)
	require.ErrorIs(t, err, ErrInvalid)
}

func TestWatch(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "codefield.toml")
	require.NoError(t, os.WriteFile(path, []byte(`mode = "js"`), 0o644))

	ctx, cancel := context.WithCancel(context.Background())
	got := make(chan Config, 16)
	done := make(chan error, 1)
	go func() {
		done <- Watch(ctx, path, func(cfg Config, err error) {
			if err != nil {
				return
			}
			select {
			case got <- cfg:
			default:
			}
		})
	}()

	// Keep rewriting until the watcher has started and reports the change.
	deadline := time.After(5 * time.Second)
	tick := time.NewTicker(50 * time.Millisecond)
	defer tick.Stop()
	for found := false; !found; {
		select {
		case cfg := <-got:
			found = cfg.Mode == "json"
		case <-tick.C:
			require.NoError(t, os.WriteFile(path, []byte("mode = \"json\"\n"), 0o644))
		case <-deadline:
			t.Fatalf("no change reported")
		}
	}

	cancel()
	select {
	case err := <-done:
		require.NoError(t, err)
	case <-time.After(5 * time.Second):
		t.Fatalf("Watch did not return after cancel")
	}
}
