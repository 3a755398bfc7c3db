// Command codefield edits one file in the terminal with a codefield element.
//
//	codefield [-config codefield.toml] [-mode json] [-disabled] [-log file] [file]
//
// ctrl+s saves, ctrl+q quits. When a config file is given it is watched and
// mode/disabled changes are applied to the running editor.
package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"go.uber.org/zap"

	"github.com/iw2rmb/codefield"
	"github.com/iw2rmb/codefield/editor"
	"github.com/iw2rmb/codefield/element"
	"github.com/iw2rmb/codefield/internal/config"
	"github.com/iw2rmb/codefield/lang"
)

const sample = `
	// Welcome to codefield.
	const greet = (name) => {
	  return "hello " + name;
	};
`

func main() {
	if err := run(); err != nil {
		_, _ = fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func run() error {
	fs := flag.NewFlagSet("codefield", flag.ExitOnError)
	configPath := fs.String("config", "", "TOML config `file`")
	mode := fs.String("mode", "", "language mode (default: from file extension or config)")
	disabled := fs.Bool("disabled", false, "open read-only")
	logPath := fs.String("log", "", "write logs to `file`")
	watch := fs.Bool("watch", true, "reload the config file when it changes")
	showVersion := fs.Bool("version", false, "print the version and exit")
	fs.Usage = func() {
		_, _ = fmt.Fprintln(os.Stderr, "Usage: codefield [flags] [file]")
		_, _ = fmt.Fprintf(os.Stderr, "\nModes: %s\n\nFlags:\n", strings.Join(lang.Modes(), ", "))
		fs.PrintDefaults()
	}
	_ = fs.Parse(os.Args[1:])

	if *showVersion {
		fmt.Println(codefield.VersionTag())
		return nil
	}

	cfg, err := config.Load(*configPath)
	if err != nil {
		return err
	}
	if *logPath != "" {
		cfg.Log.Path = *logPath
	}
	log, err := newLogger(cfg.Log)
	if err != nil {
		return err
	}
	defer func() { _ = log.Sync() }()
	editor.SetLogger(log)
	element.SetLogger(log)

	path := fs.Arg(0)
	elCfg := element.Config{
		Mode:     cfg.Mode,
		Disabled: cfg.Disabled || *disabled,
		Style:    cfg.Style,
		Extensions: []editor.Extension{
			editor.TabWidth(cfg.TabWidth),
			editor.WithClipboard(&editor.MemoryClipboard{}),
		},
	}
	if path != "" {
		data, err := os.ReadFile(path)
		if err != nil && !errors.Is(err, os.ErrNotExist) {
			return err
		}
		elCfg.Value = string(data)
		if l, ok := lang.Lookup(strings.TrimPrefix(filepath.Ext(path), ".")); ok {
			elCfg.Mode = l.Name
		}
	} else {
		elCfg.TextContent = sample
	}
	if *mode != "" {
		elCfg.Mode = *mode
	}

	m, err := newModel(path, cfg, element.New(elCfg))
	if err != nil {
		return err
	}
	p := tea.NewProgram(m, tea.WithAltScreen(), tea.WithMouseCellMotion())

	if *configPath != "" && *watch {
		ctx, cancel := context.WithCancel(context.Background())
		defer cancel()
		go func() {
			err := config.Watch(ctx, *configPath, func(c config.Config, err error) {
				p.Send(configMsg{cfg: c, err: err})
			})
			if err != nil {
				log.Warn("config watch stopped", zap.Error(err))
			}
		}()
	}

	_, err = p.Run()
	return err
}

func newLogger(c config.Log) (*zap.Logger, error) {
	if c.Path == "" {
		return zap.NewNop(), nil
	}
	zc := zap.NewProductionConfig()
	level, err := zap.ParseAtomicLevel(c.Level)
	if err != nil {
		return nil, fmt.Errorf("log level: %w", err)
	}
	zc.Level = level
	zc.OutputPaths = []string{c.Path}
	zc.ErrorOutputPaths = []string{c.Path}
	return zc.Build()
}
