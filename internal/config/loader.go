package config

import (
	"fmt"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"
)

// ConfigFile is the file name looked up in the config directories.
const ConfigFile = "breakout.yaml"

// SourceEmbedded is the source reported when no config file was used.
const SourceEmbedded = "embedded"

// searchPaths lists the optional config files, most specific first.
func searchPaths() []string {
	var paths []string
	if home, err := os.UserHomeDir(); err == nil {
		paths = append(paths, filepath.Join(home, ".arcade", "configs", ConfigFile))
	}
	return append(paths, filepath.Join("configs", ConfigFile))
}

// LoadBreakout returns the gameplay config and the file it came from.
//
// An explicit path must be readable and valid. Otherwise the first usable
// file of ~/.arcade/configs and ./configs wins, and unreadable or invalid
// files there are skipped. With no file the embedded default is used.
// Files are decoded over the defaults, so a partial file only changes the
// keys it sets.
func LoadBreakout(path string) (BreakoutConfig, string, error) {
	if path != "" {
		data, err := os.ReadFile(path)
		if err != nil {
			return BreakoutConfig{}, "", fmt.Errorf("config: read %s: %w", path, err)
		}
		cfg, err := parseBreakout(data)
		if err != nil {
			return BreakoutConfig{}, "", fmt.Errorf("config: parse %s: %w", path, err)
		}
		return cfg, path, nil
	}

	for _, candidate := range searchPaths() {
		data, err := os.ReadFile(candidate)
		if err != nil {
			continue
		}
		if cfg, err := parseBreakout(data); err == nil {
			return cfg, candidate, nil
		}
	}

	cfg, err := parseBreakout(defaultBreakoutYAML)
	if err != nil {
		return DefaultBreakoutConfig(), SourceEmbedded, nil
	}
	return cfg, SourceEmbedded, nil
}

// parseBreakout decodes data over the hardcoded defaults and validates the result.
func parseBreakout(data []byte) (BreakoutConfig, error) {
	cfg := DefaultBreakoutConfig()
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return BreakoutConfig{}, err
	}
	if err := cfg.Validate(); err != nil {
		return BreakoutConfig{}, err
	}
	return cfg, nil
}

// ApplyBreakoutPreset modifies the config based on a difficulty preset.
func ApplyBreakoutPreset(cfg *BreakoutConfig, preset DifficultyPreset) {
	if preset == "" {
		return
	}
	if preset == DifficultyFixed {
		cfg.Difficulty.Enabled = false
	} else {
		cfg.Difficulty.Enabled = true
		cfg.Difficulty.InitialLevel = InitialLevelForPreset(preset)
	}

	// Adjust gameplay based on difficulty
	switch preset {
	case DifficultyEasy:
		cfg.Gameplay.Lives = 5
		cfg.Paddle.Width = 100
		cfg.Ball.Speed = 0.25
	case DifficultyHard:
		cfg.Gameplay.Lives = 2
		cfg.Paddle.Width = 64
		cfg.Ball.Speed = 0.4
	}
}
