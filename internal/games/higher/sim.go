package higher

import (
	"errors"
	"fmt"
	"math"
	"math/rand"

	"github.com/vovakirdan/sky-arcade/internal/config"
	"github.com/vovakirdan/sky-arcade/internal/core"
)

// Sim is the simulation context of one Higher surface. It owns every piece
// of mutable game state and is only touched by the controller that created it.
type Sim struct {
	cfg     config.HigherConfig
	curves  *config.DifficultyManager
	rng     *rand.Rand
	palette []core.Color

	width, height float64

	player     Player
	obstacles  []Obstacle
	stars      []Star
	left       Hold
	right      Hold
	difficulty Difficulty
	frameCount int
	score      int

	gradientAlpha float64 // Opacity of the dark top of the sky
}

// NewSim creates a simulation for a surface of the given size in pixels.
func NewSim(cfg config.HigherConfig, width, height float64, seed int64) (*Sim, error) {
	palette := make([]core.Color, 0, len(cfg.Obstacles.Palette))
	for _, hex := range cfg.Obstacles.Palette {
		c, err := core.ParseHex(hex)
		if err != nil {
			return nil, fmt.Errorf("higher: obstacle palette: %w", err)
		}
		palette = append(palette, c)
	}
	if len(palette) == 0 {
		return nil, errors.New("higher: obstacle palette is empty")
	}

	s := &Sim{
		cfg:     cfg,
		curves:  config.NewDifficultyManager(cfg.Difficulty),
		rng:     rand.New(rand.NewSource(seed)),
		palette: palette,
		player: Player{
			Width:  cfg.Player.Width,
			Height: cfg.Player.Height,
			Radius: cfg.Player.CollisionRadius,
		},
	}
	s.Resize(width, height)
	s.Reset()
	return s, nil
}

// Reset clears a finished run: no obstacles, score zero, difficulty back to
// its starting values, player centered.
func (s *Sim) Reset() {
	s.obstacles = s.obstacles[:0]
	s.frameCount = 0
	s.score = 0
	s.left.Set(false)
	s.right.Set(false)
	s.refreshLook()
	s.refreshDifficulty()
	s.placePlayer()
}

// Resize changes the surface size. The player is recentered and the star
// field regenerated; obstacles keep their positions.
func (s *Sim) Resize(width, height float64) {
	s.width = math.Max(0, width)
	s.height = math.Max(0, height)
	s.placePlayer()
	s.generateStars()
}

// SetHeld sets the steering intent for the next frame.
func (s *Sim) SetHeld(left, right bool) {
	s.left.Set(left)
	s.right.Set(right)
}

// Frame advances the simulation by one frame and reports whether the player
// was hit. A surface with no area skips the frame.
func (s *Sim) Frame() bool {
	if s.width <= 0 || s.height <= 0 {
		return false
	}

	s.refreshLook()
	s.moveStars()
	s.steer()

	s.frameCount++
	if s.frameCount%s.difficulty.SpawnInterval == 0 {
		s.spawnBatch()
	}

	s.fall()
	if s.collided() {
		return true
	}

	s.refreshDifficulty()
	return false
}

// refreshLook updates the cosmetic values derived from the score.
func (s *Sim) refreshLook() {
	s.gradientAlpha = s.curves.GradientAlpha(s.score)
	s.player.Brightness = s.curves.Brightness(s.score)
}

// refreshDifficulty recomputes the gameplay scalars from the score.
func (s *Sim) refreshDifficulty() {
	s.difficulty = Difficulty{
		SpawnInterval: s.curves.SpawnInterval(s.score),
		ObstacleSpeed: s.curves.ObstacleSpeed(s.score),
		PlayerSpeed:   s.curves.PlayerSpeed(s.score),
		Visibility:    s.curves.Visibility(s.score),
	}
	s.player.Speed = s.difficulty.PlayerSpeed
}

func (s *Sim) placePlayer() {
	s.player.X = s.width/2 - s.player.Width/2
	s.player.Y = s.height - s.player.Height - s.cfg.Player.BottomOffset
}

func (s *Sim) generateStars() {
	sc := s.cfg.Stars
	n := int(math.Floor(s.height / sc.PixelsPerStar))
	s.stars = s.stars[:0]
	for i := 0; i < n; i++ {
		s.stars = append(s.stars, Star{
			X:     s.rng.Float64() * s.width,
			Y:     s.rng.Float64() * s.height * 2,
			Size:  sc.MinSize + s.rng.Float64()*(sc.MaxSize-sc.MinSize),
			Speed: sc.MinSpeed + s.rng.Float64()*(sc.MaxSpeed-sc.MinSpeed),
		})
	}
}

func (s *Sim) moveStars() {
	for i := range s.stars {
		st := &s.stars[i]
		st.Y += st.Speed
		if st.Y > s.height {
			st.Y = s.cfg.Stars.WrapY
			st.X = s.rng.Float64() * s.width
		}
	}
}

// steer moves the player for each held direction, ramping up to full speed
// over the configured number of frames.
func (s *Sim) steer() {
	maxX := math.Max(0, s.width-s.player.Width)
	if f := s.left.advance(s.cfg.Player.RampFrames); f > 0 {
		s.player.X = core.ClampF(s.player.X-f*s.player.Speed, 0, maxX)
	}
	if f := s.right.advance(s.cfg.Player.RampFrames); f > 0 {
		s.player.X = core.ClampF(s.player.X+f*s.player.Speed, 0, maxX)
	}
}

func (s *Sim) spawnBatch() {
	oc := s.cfg.Obstacles
	xs := placeBatch(s.rng, s.curves.BatchSize(s.score), s.width-oc.SpawnMargin, oc.MinSpacing, oc.PlacementAttempts)
	for _, x := range xs {
		s.obstacles = append(s.obstacles, Obstacle{
			X:      x,
			Y:      oc.SpawnY,
			Width:  oc.Width,
			Height: oc.Height,
			Radius: oc.CollisionRadius,
			Color:  s.palette[s.rng.Intn(len(s.palette))],
		})
	}
}

// fall moves obstacles down and retires those below the surface, scoring
// each one as dodged.
func (s *Sim) fall() {
	kept := s.obstacles[:0]
	for _, o := range s.obstacles {
		o.Y += s.difficulty.ObstacleSpeed
		if o.Y > s.height {
			s.score += s.cfg.Obstacles.ScorePerDodge
			continue
		}
		kept = append(kept, o)
	}
	s.obstacles = kept
}

func (s *Sim) collided() bool {
	hit := s.player.Hitbox()
	for _, o := range s.obstacles {
		if hit.Overlaps(o.Hitbox()) {
			return true
		}
	}
	return false
}

// Score returns the current run score.
func (s *Sim) Score() int { return s.score }

// Player returns a copy of the player.
func (s *Sim) Player() Player { return s.player }

// Obstacles returns the live obstacles. The slice must not be modified.
func (s *Sim) Obstacles() []Obstacle { return s.obstacles }

// Stars returns the star field. The slice must not be modified.
func (s *Sim) Stars() []Star { return s.stars }

// Difficulty returns the scalars in effect for the next frame.
func (s *Sim) Difficulty() Difficulty { return s.difficulty }

// FrameCount returns the frames run since the last reset.
func (s *Sim) FrameCount() int { return s.frameCount }

// Level returns the HUD difficulty level, 1 at the start up to 10 once
// obstacles reach full speed.
func (s *Sim) Level() int {
	return 1 + int(s.curves.Level(s.score)*9)
}

// Size returns the surface size in pixels.
func (s *Sim) Size() (float64, float64) { return s.width, s.height }
