package config

import (
	"os"
	"path/filepath"
	"reflect"
	"testing"
)

func TestEmbeddedDefaultsMatchCode(t *testing.T) {
	higher, err := decode(GetDefaultYAML("higher"), HigherConfig{})
	if err != nil {
		t.Fatalf("decode higher.yaml: %v", err)
	}
	if !reflect.DeepEqual(higher, DefaultHigherConfig()) {
		t.Errorf("embedded higher.yaml differs from DefaultHigherConfig()\n got: %+v\nwant: %+v", higher, DefaultHigherConfig())
	}

	match, err := decode(GetDefaultYAML("matchpepe"), MatchConfig{})
	if err != nil {
		t.Fatalf("decode matchpepe.yaml: %v", err)
	}
	if match != DefaultMatchConfig() {
		t.Errorf("embedded matchpepe.yaml differs from DefaultMatchConfig()\n got: %+v\nwant: %+v", match, DefaultMatchConfig())
	}
}

func TestDefaultsValidate(t *testing.T) {
	if err := DefaultHigherConfig().Validate(); err != nil {
		t.Errorf("DefaultHigherConfig().Validate() = %v", err)
	}
	if err := DefaultMatchConfig().Validate(); err != nil {
		t.Errorf("DefaultMatchConfig().Validate() = %v", err)
	}
}

func TestLoadHigherCustomPathPartial(t *testing.T) {
	path := filepath.Join(t.TempDir(), "higher.yaml")
	data := []byte("obstacles:\n  min_spacing: 150\ndifficulty:\n  obstacle_speed: { limit: 10 }\n")
	if err := os.WriteFile(path, data, 0o644); err != nil {
		t.Fatal(err)
	}

	cfg, err := LoadHigher(path)
	if err != nil {
		t.Fatalf("LoadHigher() failed: %v", err)
	}
	if cfg.Obstacles.MinSpacing != 150 {
		t.Errorf("MinSpacing = %v, want 150", cfg.Obstacles.MinSpacing)
	}
	// Untouched keys keep their defaults
	if cfg.Obstacles.PlacementAttempts != 10 {
		t.Errorf("PlacementAttempts = %d, want 10", cfg.Obstacles.PlacementAttempts)
	}
	if got := cfg.Difficulty.ObstacleSpeed; got.Base != 3 || got.Every != 800 || *got.Limit != 10 {
		t.Errorf("ObstacleSpeed = %+v, want base 3 every 800 limit 10", got)
	}
}

func TestLoadCustomPathErrors(t *testing.T) {
	dir := t.TempDir()

	if _, err := LoadHigher(filepath.Join(dir, "missing.yaml")); err == nil {
		t.Error("expected error for missing custom config")
	}

	unknown := filepath.Join(dir, "unknown.yaml")
	if err := os.WriteFile(unknown, []byte("player:\n  widht: 10\n"), 0o644); err != nil {
		t.Fatal(err)
	}
	if _, err := LoadHigher(unknown); err == nil {
		t.Error("expected error for unknown key")
	}

	invalid := filepath.Join(dir, "invalid.yaml")
	if err := os.WriteFile(invalid, []byte("player:\n  collision_radius: 50\n"), 0o644); err != nil {
		t.Fatal(err)
	}
	if _, err := LoadHigher(invalid); err == nil {
		t.Error("expected validation error for oversized collision radius")
	}
}

func TestLoadMatchFromConfigDir(t *testing.T) {
	dir := t.TempDir()
	t.Setenv(EnvConfigDir, dir)
	data := []byte("timing:\n  initial_max_time_ms: 4000\n")
	if err := os.WriteFile(filepath.Join(dir, "matchpepe.yaml"), data, 0o644); err != nil {
		t.Fatal(err)
	}

	cfg, err := LoadMatch("")
	if err != nil {
		t.Fatalf("LoadMatch() failed: %v", err)
	}
	if cfg.Timing.InitialMaxTimeMS != 4000 {
		t.Errorf("InitialMaxTimeMS = %d, want 4000", cfg.Timing.InitialMaxTimeMS)
	}
	if cfg.Board.InitialGrid != 2 {
		t.Errorf("InitialGrid = %d, want 2", cfg.Board.InitialGrid)
	}
}

func TestSearchPathsOrder(t *testing.T) {
	t.Setenv(EnvConfigDir, "/tmp/arcade-cfg")
	paths := searchPaths("higher.yaml")
	if len(paths) < 2 {
		t.Fatalf("searchPaths() = %v", paths)
	}
	if paths[0] != filepath.Join("/tmp/arcade-cfg", "higher.yaml") {
		t.Errorf("first path = %s, want the config dir", paths[0])
	}
	if last := paths[len(paths)-1]; last != filepath.Join("configs", "higher.yaml") {
		t.Errorf("last path = %s, want ./configs", last)
	}
}

func TestPresets(t *testing.T) {
	if _, err := ParsePreset("insane"); err == nil {
		t.Error("ParsePreset(insane) should fail")
	}

	h := DefaultHigherConfig()
	ApplyHigherPreset(&h, DifficultyFixed)
	if h.Difficulty.Progression {
		t.Error("fixed preset should disable progression")
	}
	ApplyHigherPreset(&h, DifficultyHard)
	if !h.Difficulty.Progression {
		t.Error("hard preset should enable progression")
	}

	for _, p := range []DifficultyPreset{DifficultyEasy, DifficultyNormal, DifficultyHard} {
		h := DefaultHigherConfig()
		ApplyHigherPreset(&h, p)
		if !reflect.DeepEqual(h, DefaultHigherConfig()) {
			t.Errorf("%s preset changed the Higher config", p)
		}
	}

	tests := []struct {
		preset DifficultyPreset
		wantMS int
	}{
		{DifficultyEasy, 15000},
		{DifficultyNormal, 10000},
		{DifficultyHard, 6000},
	}
	for _, tt := range tests {
		m := DefaultMatchConfig()
		ApplyMatchPreset(&m, tt.preset)
		if m.Timing.InitialMaxTimeMS != tt.wantMS {
			t.Errorf("%s: InitialMaxTimeMS = %d, want %d", tt.preset, m.Timing.InitialMaxTimeMS, tt.wantMS)
		}
	}

	m := DefaultMatchConfig()
	ApplyMatchPreset(&m, DifficultyFixed)
	if m.Timing.Decay != 1 || m.Timing.GrowFactor != 1 {
		t.Errorf("fixed preset: decay=%v grow=%v, want 1 and 1", m.Timing.Decay, m.Timing.GrowFactor)
	}
}
