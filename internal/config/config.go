// Package config provides YAML-based game configuration loading and
// difficulty curves for the arcade games.
package config

import (
	"errors"
	"fmt"
	"time"
)

// HigherConfig contains all configuration for the Higher arrow-dodging game.
type HigherConfig struct {
	Canvas     CanvasConfig     `yaml:"canvas"`
	Background BackgroundConfig `yaml:"background"`
	Player     PlayerConfig     `yaml:"player"`
	Obstacles  ObstacleConfig   `yaml:"obstacles"`
	Stars      StarConfig       `yaml:"stars"`
	Timing     TimingConfig     `yaml:"timing"`
	Difficulty HigherDifficulty `yaml:"difficulty"`
}

// CanvasConfig describes the logical pixel surface and how it maps to cells.
type CanvasConfig struct {
	MaxWidth    float64 `yaml:"max_width"`    // Surface width is min(viewport width, MaxWidth)
	HeightRatio float64 `yaml:"height_ratio"` // Surface height is HeightRatio * viewport height
	CellWidth   float64 `yaml:"cell_width"`   // Logical pixels per terminal column
	CellHeight  float64 `yaml:"cell_height"`  // Logical pixels per terminal row
}

// BackgroundConfig defines the sky gradient.
type BackgroundConfig struct {
	Top         string  `yaml:"top"`          // Top color, alpha follows the gradient curve
	Bottom      string  `yaml:"bottom"`       // Bottom color
	BottomAlpha float64 `yaml:"bottom_alpha"` // Opacity of the bottom color
	Base        string  `yaml:"base"`         // Color behind the gradient
	Star        string  `yaml:"star"`
}

// PlayerConfig defines the player arrow.
type PlayerConfig struct {
	Width           float64 `yaml:"width"`
	Height          float64 `yaml:"height"`
	BottomOffset    float64 `yaml:"bottom_offset"`    // Gap between the arrow and the surface bottom
	CollisionRadius float64 `yaml:"collision_radius"` // Must be smaller than the sprite
	RampFrames      int     `yaml:"ramp_frames"`      // Frames of holding before full speed
	Color           string  `yaml:"color"`
}

// ObstacleConfig defines falling arrows and how batches are placed.
type ObstacleConfig struct {
	Width             float64  `yaml:"width"`
	Height            float64  `yaml:"height"`
	CollisionRadius   float64  `yaml:"collision_radius"`
	SpawnY            float64  `yaml:"spawn_y"`
	SpawnMargin       float64  `yaml:"spawn_margin"` // x is drawn from [0, width - SpawnMargin)
	MinSpacing        float64  `yaml:"min_spacing"`
	PlacementAttempts int      `yaml:"placement_attempts"`
	ScorePerDodge     int      `yaml:"score_per_dodge"`
	Palette           []string `yaml:"palette"`
}

// StarConfig defines the decorative star field.
type StarConfig struct {
	PixelsPerStar float64 `yaml:"pixels_per_star"` // One star per this many pixels of height
	MinSize       float64 `yaml:"min_size"`
	MaxSize       float64 `yaml:"max_size"`
	MinSpeed      float64 `yaml:"min_speed"`
	MaxSpeed      float64 `yaml:"max_speed"`
	WrapY         float64 `yaml:"wrap_y"`
}

// TimingConfig holds the durations of the phase transitions.
type TimingConfig struct {
	StartAnimationMS int `yaml:"start_animation_ms"`
	GameOverMS       int `yaml:"game_over_ms"`
}

// StartAnimation returns the duration of the zoom before a run.
func (t TimingConfig) StartAnimation() time.Duration {
	return time.Duration(t.StartAnimationMS) * time.Millisecond
}

// GameOver returns the duration of the shake after a hit.
func (t TimingConfig) GameOver() time.Duration {
	return time.Duration(t.GameOverMS) * time.Millisecond
}

// HigherDifficulty holds every score-driven scalar of the game.
type HigherDifficulty struct {
	Progression   bool `yaml:"progression"` // false freezes every ramp at score 0
	SpawnInterval Ramp `yaml:"spawn_interval"`
	ObstacleSpeed Ramp `yaml:"obstacle_speed"`
	PlayerSpeed   Ramp `yaml:"player_speed"`
	Visibility    Ramp `yaml:"visibility"`
	GradientAlpha Ramp `yaml:"gradient_alpha"`
	Brightness    Ramp `yaml:"brightness"`
	BatchSize     Ramp `yaml:"batch_size"`
}

// MatchConfig contains all configuration for the Matchpepe tile puzzle.
type MatchConfig struct {
	Board  MatchBoard  `yaml:"board"`
	Timing MatchTiming `yaml:"timing"`
}

// MatchBoard defines the grid progression.
type MatchBoard struct {
	InitialGrid  int `yaml:"initial_grid"`
	LevelUpScore int `yaml:"level_up_score"` // Solved rounds per grid size increase
	MaxGrid      int `yaml:"max_grid"`       // Bounded by the tile set size
}

// MatchTiming defines the round timer.
type MatchTiming struct {
	InitialMaxTimeMS int     `yaml:"initial_max_time_ms"`
	Decay            float64 `yaml:"decay"`       // Max time factor per solved round
	GrowFactor       float64 `yaml:"grow_factor"` // Extra factor when the grid grows
	WinEffectMS      int     `yaml:"win_effect_ms"`
	ShakeMS          int     `yaml:"shake_ms"`
}

// InitialMaxTime returns the round time of a fresh run.
func (t MatchTiming) InitialMaxTime() time.Duration {
	return time.Duration(t.InitialMaxTimeMS) * time.Millisecond
}

// WinEffect returns how long a solved board is shown.
func (t MatchTiming) WinEffect() time.Duration {
	return time.Duration(t.WinEffectMS) * time.Millisecond
}

// Shake returns how long the board shakes when time runs out.
func (t MatchTiming) Shake() time.Duration {
	return time.Duration(t.ShakeMS) * time.Millisecond
}

// DifficultyPreset represents a named difficulty level.
type DifficultyPreset string

const (
	DifficultyEasy   DifficultyPreset = "easy"
	DifficultyNormal DifficultyPreset = "normal"
	DifficultyHard   DifficultyPreset = "hard"
	DifficultyFixed  DifficultyPreset = "fixed"
)

// ParsePreset converts a CLI value to a preset. Empty means "use the config".
func ParsePreset(s string) (DifficultyPreset, error) {
	switch p := DifficultyPreset(s); p {
	case "", DifficultyEasy, DifficultyNormal, DifficultyHard, DifficultyFixed:
		return p, nil
	default:
		return "", fmt.Errorf("config: unknown difficulty %q (want easy, normal, hard or fixed)", s)
	}
}

// IsFixedPreset returns true if the preset disables progression.
func IsFixedPreset(preset DifficultyPreset) bool {
	return preset == DifficultyFixed
}

// ApplyHigherPreset modifies the config based on a difficulty preset.
// Only fixed changes Higher: it freezes the curves at their starting values.
func ApplyHigherPreset(cfg *HigherConfig, preset DifficultyPreset) {
	if preset == "" {
		return
	}
	cfg.Difficulty.Progression = !IsFixedPreset(preset)
}

// ApplyMatchPreset modifies the config based on a difficulty preset.
func ApplyMatchPreset(cfg *MatchConfig, preset DifficultyPreset) {
	switch preset {
	case DifficultyEasy:
		cfg.Timing.InitialMaxTimeMS = 15000
	case DifficultyNormal:
		cfg.Timing.InitialMaxTimeMS = 10000
	case DifficultyHard:
		cfg.Timing.InitialMaxTimeMS = 6000
	case DifficultyFixed:
		cfg.Timing.Decay = 1
		cfg.Timing.GrowFactor = 1
	}
}

// Validate checks that a Higher config describes a playable game.
func (c HigherConfig) Validate() error {
	var errs []error
	if c.Canvas.MaxWidth <= 0 || c.Canvas.HeightRatio <= 0 {
		errs = append(errs, errors.New("canvas size must be positive"))
	}
	if c.Canvas.CellWidth <= 0 || c.Canvas.CellHeight <= 0 {
		errs = append(errs, errors.New("cell size must be positive"))
	}
	if c.Player.CollisionRadius <= 0 || 2*c.Player.CollisionRadius >= minF(c.Player.Width, c.Player.Height) {
		errs = append(errs, errors.New("player collision radius must be positive and smaller than the sprite"))
	}
	if c.Obstacles.CollisionRadius <= 0 || 2*c.Obstacles.CollisionRadius >= minF(c.Obstacles.Width, c.Obstacles.Height) {
		errs = append(errs, errors.New("obstacle collision radius must be positive and smaller than the sprite"))
	}
	if c.Player.RampFrames <= 0 {
		errs = append(errs, errors.New("player ramp_frames must be positive"))
	}
	if c.Timing.StartAnimationMS < 0 || c.Timing.GameOverMS < 0 {
		errs = append(errs, errors.New("timing durations must not be negative"))
	}
	if c.Obstacles.PlacementAttempts <= 0 {
		errs = append(errs, errors.New("obstacle placement_attempts must be positive"))
	}
	if len(c.Obstacles.Palette) == 0 {
		errs = append(errs, errors.New("obstacle palette must not be empty"))
	}
	if c.Stars.PixelsPerStar <= 0 {
		errs = append(errs, errors.New("stars pixels_per_star must be positive"))
	}
	for name, r := range map[string]Ramp{
		"spawn_interval": c.Difficulty.SpawnInterval,
		"obstacle_speed": c.Difficulty.ObstacleSpeed,
		"player_speed":   c.Difficulty.PlayerSpeed,
		"visibility":     c.Difficulty.Visibility,
		"gradient_alpha": c.Difficulty.GradientAlpha,
		"brightness":     c.Difficulty.Brightness,
		"batch_size":     c.Difficulty.BatchSize,
	} {
		if err := r.Validate(); err != nil {
			errs = append(errs, fmt.Errorf("difficulty.%s: %w", name, err))
		}
	}
	if c.Difficulty.SpawnInterval.At(0) < 1 {
		errs = append(errs, errors.New("difficulty.spawn_interval must start at 1 frame or more"))
	}
	if err := errors.Join(errs...); err != nil {
		return fmt.Errorf("config: invalid higher config: %w", err)
	}
	return nil
}

// Validate checks that a Matchpepe config describes a playable game.
func (c MatchConfig) Validate() error {
	var errs []error
	if c.Board.InitialGrid < 2 {
		errs = append(errs, errors.New("board initial_grid must be at least 2"))
	}
	if c.Board.LevelUpScore <= 0 {
		errs = append(errs, errors.New("board level_up_score must be positive"))
	}
	if c.Board.MaxGrid < c.Board.InitialGrid {
		errs = append(errs, errors.New("board max_grid must not be below initial_grid"))
	}
	if c.Timing.InitialMaxTimeMS <= 0 {
		errs = append(errs, errors.New("timing initial_max_time_ms must be positive"))
	}
	if c.Timing.WinEffectMS < 0 || c.Timing.ShakeMS < 0 {
		errs = append(errs, errors.New("timing effect durations must not be negative"))
	}
	if c.Timing.Decay <= 0 || c.Timing.GrowFactor <= 0 {
		errs = append(errs, errors.New("timing decay and grow_factor must be positive"))
	}
	if err := errors.Join(errs...); err != nil {
		return fmt.Errorf("config: invalid matchpepe config: %w", err)
	}
	return nil
}

func minF(a, b float64) float64 {
	if a < b {
		return a
	}
	return b
}
