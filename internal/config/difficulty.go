package config

import (
	"errors"
	"math"
)

// Ramp is a difficulty scalar derived from the score.
//
// A rising ramp is Base + Rate*score/Every capped at Limit; a falling ramp
// subtracts instead and floors at Limit. With Step set, score/Every is
// floored first so the value changes in discrete increments.
type Ramp struct {
	Base    float64  `yaml:"base"`
	Every   float64  `yaml:"every"` // Score needed for one unit of change
	Rate    float64  `yaml:"rate"`  // Units of change per Every (0 means 1)
	Limit   *float64 `yaml:"limit"` // Cap (rising) or floor (falling); nil is unbounded
	Falling bool     `yaml:"falling"`
	Step    bool     `yaml:"step"`
}

// At evaluates the ramp for a score. Negative scores count as zero.
func (r Ramp) At(score int) float64 {
	if score < 0 {
		score = 0
	}
	progress := 0.0
	if r.Every > 0 {
		progress = float64(score) / r.Every
	}
	if r.Step {
		progress = math.Floor(progress)
	}
	rate := r.Rate
	if rate == 0 {
		rate = 1
	}

	if r.Falling {
		v := r.Base - rate*progress
		if r.Limit != nil {
			v = math.Max(*r.Limit, v)
		}
		return v
	}
	v := r.Base + rate*progress
	if r.Limit != nil {
		v = math.Min(*r.Limit, v)
	}
	return v
}

// Validate reports ramps that cannot be evaluated meaningfully.
func (r Ramp) Validate() error {
	if r.Every <= 0 {
		return errors.New("every must be positive")
	}
	if r.Rate < 0 {
		return errors.New("rate must not be negative")
	}
	if r.Limit != nil {
		if r.Falling && *r.Limit > r.Base {
			return errors.New("falling ramp limit must not exceed base")
		}
		if !r.Falling && *r.Limit < r.Base {
			return errors.New("rising ramp limit must not be below base")
		}
	}
	return nil
}

// Limited is a helper for building ramps in code.
func Limited(v float64) *float64 {
	return &v
}

// DifficultyManager evaluates the Higher difficulty scalars for a score.
// Every value is recomputed from the score on demand and never stored.
type DifficultyManager struct {
	cfg HigherDifficulty
}

// NewDifficultyManager creates a new difficulty manager.
func NewDifficultyManager(cfg HigherDifficulty) *DifficultyManager {
	return &DifficultyManager{cfg: cfg}
}

// effective returns the score the ramps are evaluated at.
func (d *DifficultyManager) effective(score int) int {
	if !d.cfg.Progression {
		return 0
	}
	return score
}

// SpawnInterval returns the number of frames between obstacle batches.
func (d *DifficultyManager) SpawnInterval(score int) int {
	n := int(d.cfg.SpawnInterval.At(d.effective(score)))
	if n < 1 {
		n = 1
	}
	return n
}

// ObstacleSpeed returns how far obstacles fall per frame.
func (d *DifficultyManager) ObstacleSpeed(score int) float64 {
	return d.cfg.ObstacleSpeed.At(d.effective(score))
}

// PlayerSpeed returns the player's full horizontal speed per frame.
func (d *DifficultyManager) PlayerSpeed(score int) float64 {
	return d.cfg.PlayerSpeed.At(d.effective(score))
}

// Visibility returns the opacity applied to obstacles and stars (0..1).
func (d *DifficultyManager) Visibility(score int) float64 {
	return clampF(d.cfg.Visibility.At(d.effective(score)), 0, 1)
}

// GradientAlpha returns the opacity of the dark top of the sky (0..1).
func (d *DifficultyManager) GradientAlpha(score int) float64 {
	return clampF(d.cfg.GradientAlpha.At(d.effective(score)), 0, 1)
}

// Brightness returns the player tint level (0..255).
func (d *DifficultyManager) Brightness(score int) int {
	return int(clampF(d.cfg.Brightness.At(d.effective(score)), 0, 255))
}

// BatchSize returns how many obstacles a spawn batch asks for.
func (d *DifficultyManager) BatchSize(score int) int {
	n := int(d.cfg.BatchSize.At(d.effective(score)))
	if n < 1 {
		n = 1
	}
	return n
}

// Level returns overall progress toward the hardest obstacle speed (0..1).
func (d *DifficultyManager) Level(score int) float64 {
	r := d.cfg.ObstacleSpeed
	if r.Limit == nil || *r.Limit == r.Base {
		return 0
	}
	return clampF((r.At(d.effective(score))-r.Base)/(*r.Limit-r.Base), 0, 1)
}

// clampF restricts a float64 to [min, max].
func clampF(val, min, max float64) float64 {
	return math.Max(min, math.Min(max, val))
}
