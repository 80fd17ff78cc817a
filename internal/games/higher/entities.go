package higher

import "github.com/vovakirdan/sky-arcade/internal/core"

// Player is the upward arrow steered along the bottom of the surface.
type Player struct {
	X, Y          float64 // Top-left corner in surface pixels
	Width, Height float64
	Speed         float64 // Full horizontal speed in pixels per frame
	Radius        float64 // Collision radius around the sprite center
	Brightness    int     // Tint level 0..255
}

// Box returns the sprite bounds.
func (p Player) Box() core.Box {
	return core.Box{X: p.X, Y: p.Y, W: p.Width, H: p.Height}
}

// Hitbox returns the collision circle.
func (p Player) Hitbox() core.Circle {
	return core.Circle{Center: p.Box().Center(), R: p.Radius}
}

// Obstacle is a falling arrow.
type Obstacle struct {
	X, Y          float64
	Width, Height float64
	Radius        float64
	Color         core.Color
}

// Box returns the sprite bounds.
func (o Obstacle) Box() core.Box {
	return core.Box{X: o.X, Y: o.Y, W: o.Width, H: o.Height}
}

// Hitbox returns the collision circle.
func (o Obstacle) Hitbox() core.Circle {
	return core.Circle{Center: o.Box().Center(), R: o.Radius}
}

// Star is a background dot drifting down the sky.
type Star struct {
	X, Y  float64
	Size  float64
	Speed float64
}

// Hold tracks one steering direction. Duration counts the frames the
// direction has been held and drives the acceleration ramp.
type Hold struct {
	Held     bool
	Duration int
}

// Set updates the held flag. Letting go resets the ramp.
func (h *Hold) Set(held bool) {
	h.Held = held
	if !held {
		h.Duration = 0
	}
}

// advance counts one more held frame and returns the fraction of full speed
// to move by, or 0 if the direction is not held.
func (h *Hold) advance(rampFrames int) float64 {
	if !h.Held {
		return 0
	}
	h.Duration++
	return core.ClampF(float64(h.Duration)/float64(rampFrames), 0, 1)
}

// Difficulty is the set of score-driven scalars in effect for a frame.
type Difficulty struct {
	SpawnInterval int     // Frames between batches
	ObstacleSpeed float64 // Pixels per frame
	PlayerSpeed   float64 // Pixels per frame at full ramp
	Visibility    float64 // Opacity of obstacles and stars
}
