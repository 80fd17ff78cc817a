package config

import (
	_ "embed"
)

//go:embed defaults/higher.yaml
var defaultHigherYAML []byte

//go:embed defaults/matchpepe.yaml
var defaultMatchYAML []byte

// DefaultHigherConfig returns the default Higher configuration.
func DefaultHigherConfig() HigherConfig {
	return HigherConfig{
		Canvas: CanvasConfig{
			MaxWidth:    500,
			HeightRatio: 0.8,
			CellWidth:   8,
			CellHeight:  16,
		},
		Background: BackgroundConfig{
			Top:         "#191970", // Midnight blue
			Bottom:      "#87ceeb", // Sky blue
			BottomAlpha: 0.7,
			Base:        "#000000",
			Star:        "#ffffff",
		},
		Player: PlayerConfig{
			Width:           80,
			Height:          80,
			BottomOffset:    20,
			CollisionRadius: 15,
			RampFrames:      10,
			Color:           "#000000",
		},
		Obstacles: ObstacleConfig{
			Width:             80,
			Height:            80,
			CollisionRadius:   15,
			SpawnY:            -80,
			SpawnMargin:       40,
			MinSpacing:        100,
			PlacementAttempts: 10,
			ScorePerDodge:     10,
			Palette: []string{
				"#e74c3c",
				"#d35f5f",
				"#ce4b4b",
				"#ce4b4b",
				"#b43131",
				"#8c2626",
				"#3c1010",
			},
		},
		Stars: StarConfig{
			PixelsPerStar: 8,
			MinSize:       0.5,
			MaxSize:       2.0,
			MinSpeed:      0.1,
			MaxSpeed:      0.6,
			WrapY:         -10,
		},
		Timing: TimingConfig{
			StartAnimationMS: 2000,
			GameOverMS:       500,
		},
		Difficulty: HigherDifficulty{
			Progression:   true,
			SpawnInterval: Ramp{Base: 120, Every: 500, Limit: Limited(60), Falling: true, Step: true},
			ObstacleSpeed: Ramp{Base: 3, Every: 800, Limit: Limited(8)},
			PlayerSpeed:   Ramp{Base: 5, Every: 1000, Limit: Limited(9)},
			Visibility:    Ramp{Base: 1, Every: 10000, Limit: Limited(0.3), Falling: true},
			GradientAlpha: Ramp{Base: 0.4, Every: 5000, Limit: Limited(0.8)},
			Brightness:    Ramp{Base: 0, Every: 500, Rate: 25, Limit: Limited(255), Step: true},
			BatchSize:     Ramp{Base: 1, Every: 1000, Step: true},
		},
	}
}

// DefaultMatchConfig returns the default Matchpepe configuration.
func DefaultMatchConfig() MatchConfig {
	return MatchConfig{
		Board: MatchBoard{
			InitialGrid:  2,
			LevelUpScore: 10,
			MaxGrid:      5,
		},
		Timing: MatchTiming{
			InitialMaxTimeMS: 10000,
			Decay:            0.99,
			GrowFactor:       2.5,
			WinEffectMS:      1000,
			ShakeMS:          500,
		},
	}
}

// GetDefaultYAML returns the embedded default YAML for a game.
func GetDefaultYAML(gameID string) []byte {
	switch gameID {
	case "higher":
		return defaultHigherYAML
	case "matchpepe":
		return defaultMatchYAML
	default:
		return nil
	}
}
