package main

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/charmbracelet/log"
	"golang.org/x/term"

	"github.com/vovakirdan/tui-breakout/internal/config"
	"github.com/vovakirdan/tui-breakout/internal/registry"
)

// expandHome replaces a leading ~ with the user's home directory.
func expandHome(path string) (string, error) {
	if !strings.HasPrefix(path, "~") {
		return path, nil
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("cannot expand home directory: %w", err)
	}
	return filepath.Join(home, path[1:]), nil
}

// gameConfig loads the gameplay config, applies the difficulty preset and
// reports which file it came from.
func gameConfig() (config.BreakoutConfig, string, error) {
	preset, err := config.ParsePreset(flagDifficulty)
	if err != nil {
		return config.BreakoutConfig{}, "", err
	}
	cfg, source, err := config.LoadBreakout(flagConfig)
	if err != nil {
		return config.BreakoutConfig{}, "", err
	}
	config.ApplyBreakoutPreset(&cfg, preset)
	return cfg, source, nil
}

// selectedPack returns the pack named by --levels or --pack.
func selectedPack() (registry.Pack, error) {
	if flagLevels != "" {
		return registry.LoadFile(flagLevels)
	}
	return registry.Get(flagPack)
}

// packID is the pack whose scores the commands show.
func packID(args []string) (string, error) {
	if len(args) > 0 {
		return args[0], nil
	}
	if flagLevels == "" {
		return flagPack, nil
	}
	p, err := registry.LoadFile(flagLevels)
	if err != nil {
		return "", err
	}
	return p.ID, nil
}

// openLogger writes logs to a file, since the game owns the terminal.
// The returned closer must be called on exit.
func openLogger(path string) (*log.Logger, io.Closer, error) {
	path, err := expandHome(path)
	if err != nil {
		return nil, nil, err
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return nil, nil, fmt.Errorf("cannot create log directory: %w", err)
	}
	f, err := os.OpenFile(path, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o600)
	if err != nil {
		return nil, nil, fmt.Errorf("cannot open log file: %w", err)
	}
	logger := log.NewWithOptions(f, log.Options{
		ReportTimestamp: true,
		Prefix:          "breakout",
	})
	return logger, f, nil
}

// terminalSize returns the terminal size, or 80x24 when stdout is not a terminal.
func terminalSize() (int, int) {
	if w, h, err := term.GetSize(int(os.Stdout.Fd())); err == nil { //#nosec G115 -- file descriptors fit in int
		return w, h
	}
	return 80, 24
}
