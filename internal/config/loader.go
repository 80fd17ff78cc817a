package config

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"
)

// EnvConfigDir overrides the user configuration directory.
const EnvConfigDir = "ARCADE_CONFIG_DIR"

// validator is implemented by every game config.
type validator interface {
	Validate() error
}

// LoadHigher loads Higher configuration.
// Search order: customPath -> $ARCADE_CONFIG_DIR/higher.yaml ->
// ~/.arcade/configs/higher.yaml -> ./configs/higher.yaml -> embedded default
func LoadHigher(customPath string) (HigherConfig, error) {
	cfg, err := load("higher", customPath, DefaultHigherConfig)
	if err != nil {
		return cfg, err
	}
	return cfg, cfg.Validate()
}

// LoadMatch loads Matchpepe configuration.
// Search order: customPath -> $ARCADE_CONFIG_DIR/matchpepe.yaml ->
// ~/.arcade/configs/matchpepe.yaml -> ./configs/matchpepe.yaml -> embedded default
func LoadMatch(customPath string) (MatchConfig, error) {
	cfg, err := load("matchpepe", customPath, DefaultMatchConfig)
	if err != nil {
		return cfg, err
	}
	return cfg, cfg.Validate()
}

// load decodes the first config found for a game on top of its defaults,
// so a file only needs the keys it changes.
func load[T validator](gameID, customPath string, defaults func() T) (T, error) {
	// Try custom path first
	if customPath != "" {
		data, err := os.ReadFile(customPath)
		if err != nil {
			return defaults(), fmt.Errorf("config: failed to read %s: %w", customPath, err)
		}
		cfg, err := decode(data, defaults())
		if err != nil {
			return defaults(), fmt.Errorf("config: failed to parse %s: %w", customPath, err)
		}
		return cfg, nil
	}

	// Search locations, an unreadable or broken file falls through
	for _, path := range searchPaths(gameID + ".yaml") {
		data, err := os.ReadFile(path)
		if err != nil {
			continue
		}
		if cfg, err := decode(data, defaults()); err == nil {
			return cfg, nil
		}
	}

	// Use embedded default YAML
	cfg, err := decode(GetDefaultYAML(gameID), defaults())
	if err != nil {
		return defaults(), nil // Fallback to hardcoded if embed fails
	}
	return cfg, nil
}

// decode unmarshals YAML over base. Unknown keys are rejected so typos in
// a config file do not go unnoticed.
func decode[T any](data []byte, base T) (T, error) {
	dec := yaml.NewDecoder(bytes.NewReader(data))
	dec.KnownFields(true)
	if err := dec.Decode(&base); err != nil && !errors.Is(err, io.EOF) {
		return base, err
	}
	return base, nil
}

// searchPaths lists the non-custom locations for a config file, in order.
func searchPaths(filename string) []string {
	var paths []string
	if dir := GetEnv(EnvConfigDir, ""); dir != "" {
		paths = append(paths, filepath.Join(dir, filename))
	}
	if userCfgPath := userConfigPath(filename); userCfgPath != "" {
		paths = append(paths, userCfgPath)
	}
	return append(paths, filepath.Join("configs", filename))
}

// userConfigPath returns the path to user config file, or empty if home is unavailable.
func userConfigPath(filename string) string {
	home, err := os.UserHomeDir()
	if err != nil {
		return ""
	}
	return filepath.Join(home, ".arcade", "configs", filename)
}
