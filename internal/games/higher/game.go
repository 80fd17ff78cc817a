// Package higher implements Higher, an arrow-dodging game.
// The player steers an upward arrow left and right along the bottom of the
// sky while downward arrows fall from the top. Every arrow that leaves the
// bottom of the surface scores; the first one to touch the player ends the run.
package higher

import (
	"time"

	"github.com/charmbracelet/log"

	"github.com/vovakirdan/sky-arcade/internal/config"
	"github.com/vovakirdan/sky-arcade/internal/core"
	"github.com/vovakirdan/sky-arcade/internal/registry"
)

// GameID is the registry and score book key of the game.
const GameID = "higher"

// Phase is the run state of the game.
type Phase int

const (
	PhaseIdle           Phase = iota // Waiting for a start command
	PhaseStartAnimation              // One-shot zoom before the run
	PhaseRunning                     // One frame per tick until a hit
	PhaseGameOver                    // One-shot shake, then back to idle
)

// String returns a human-readable name for the phase.
func (p Phase) String() string {
	switch p {
	case PhaseIdle:
		return "idle"
	case PhaseStartAnimation:
		return "start-animation"
	case PhaseRunning:
		return "running"
	case PhaseGameOver:
		return "game-over"
	default:
		return "unknown"
	}
}

// configPath stores the custom config path set via CLI
var configPath string
var difficultyPreset config.DifficultyPreset

// SetConfigPath sets a custom config file path.
func SetConfigPath(path string) {
	configPath = path
}

// SetDifficultyPreset sets the difficulty preset. Unknown names fall back
// to the config as loaded.
func SetDifficultyPreset(preset string) {
	p, err := config.ParsePreset(preset)
	if err != nil {
		p = ""
	}
	difficultyPreset = p
}

// Game is the Higher controller. It owns the simulation, the phase machine
// and the transition timers; input only sets intent flags that are applied
// at the start of the next Step.
type Game struct {
	cfg      config.HigherConfig
	cfgFixed bool // cfg was injected and must not be reloaded

	runtime core.RuntimeConfig
	layout  layout
	sim     *Sim
	sched   *core.Scheduler
	raster  *raster
	theme   theme

	phase    Phase
	phaseAt  time.Duration // Scheduler time the current phase began
	paused   bool
	tornDown bool

	book      core.ScoreBook
	best      int
	lastScore int

	keyLeft, keyRight bool
	ptrLeft, ptrRight bool
}

// New creates a new Higher game instance. Configuration is loaded on Reset.
func New() *Game {
	return &Game{sched: core.NewScheduler()}
}

// NewWithConfig creates a game that always uses cfg.
func NewWithConfig(cfg config.HigherConfig) (*Game, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &Game{cfg: cfg, cfgFixed: true, sched: core.NewScheduler()}, nil
}

// ID returns the unique identifier for this game.
func (g *Game) ID() string {
	return GameID
}

// Title returns the display name for this game.
func (g *Game) Title() string {
	return "Higher"
}

// UseScoreBook binds the persistent best score. The stored best is read once
// here; a nil book keeps the best in memory only.
func (g *Game) UseScoreBook(book core.ScoreBook) {
	g.book = book
	if book == nil {
		return
	}
	best, err := book.BestScore(GameID)
	if err != nil {
		log.Warn("higher: cannot read best score", "err", err)
		return
	}
	if best > g.best {
		g.best = best
	}
}

// Reset initializes the game for a new session and leaves it idle.
func (g *Game) Reset(runtime core.RuntimeConfig) {
	g.runtime = runtime

	if !g.cfgFixed {
		cfg, err := config.LoadHigher(configPath)
		if err != nil {
			log.Warn("higher: using default config", "err", err)
			cfg = config.DefaultHigherConfig()
		}
		config.ApplyHigherPreset(&cfg, difficultyPreset)
		g.cfg = cfg
	}

	g.layout = newLayout(g.cfg.Canvas, runtime.ScreenW, runtime.ScreenH)
	sim, err := NewSim(g.cfg, g.layout.pxW, g.layout.pxH, runtime.Seed)
	if err != nil {
		log.Error("higher: invalid config, using defaults", "err", err)
		g.cfg = config.DefaultHigherConfig()
		g.layout = newLayout(g.cfg.Canvas, runtime.ScreenW, runtime.ScreenH)
		sim, _ = NewSim(g.cfg, g.layout.pxW, g.layout.pxH, runtime.Seed)
	}
	g.sim = sim
	g.theme = newTheme(g.cfg)

	if g.sched != nil {
		g.sched.CancelAll()
	}
	g.sched = core.NewScheduler()
	g.phase = PhaseIdle
	g.phaseAt = 0
	g.paused = false
	g.tornDown = false
	g.lastScore = 0
	g.clearIntent()
}

// Resize adapts the surface to a new terminal size without ending the run.
func (g *Game) Resize(width, height int) {
	g.runtime.ScreenW = width
	g.runtime.ScreenH = height
	g.layout = newLayout(g.cfg.Canvas, width, height)
	if g.sim != nil {
		g.sim.Resize(g.layout.pxW, g.layout.pxH)
	}
}

// Teardown cancels pending transitions. Later Steps do nothing.
func (g *Game) Teardown() {
	if g.tornDown {
		return
	}
	n := g.sched.CancelAll()
	g.tornDown = true
	log.Debug("higher: teardown", "cancelled", n, "phase", g.phase)
}

// Step advances the game by one tick.
func (g *Game) Step(in core.InputFrame) core.StepResult {
	if g.tornDown || g.sim == nil {
		return core.StepResult{State: g.State()}
	}

	// Handle pause toggle
	if g.phase == PhaseRunning && in.Has(core.ActionPause) {
		g.paused = !g.paused
	}
	if g.paused {
		// Releases still count so nothing stays held across the pause
		g.applyReleases(in)
		return core.StepResult{State: g.State()}
	}

	g.handleInput(in)
	g.sched.Advance(g.runtime.TickDuration())

	if g.phase == PhaseRunning && g.sim.Frame() {
		g.endRun()
	}

	return core.StepResult{State: g.State()}
}

// handleInput turns the frame's actions into intent for the current phase.
func (g *Game) handleInput(in core.InputFrame) {
	switch g.phase {
	case PhaseIdle:
		if in.Has(core.ActionJump) || in.Has(core.ActionConfirm) || in.Has(core.ActionRestart) || g.anyPress(in) {
			g.start()
		}

	case PhaseRunning:
		g.applyReleases(in)
		if in.Has(core.ActionLeft) {
			g.keyLeft = true
		}
		if in.Has(core.ActionRight) {
			g.keyRight = true
		}
		g.applyPointers(in.Pointers)
		g.sim.SetHeld(g.keyLeft || g.ptrLeft, g.keyRight || g.ptrRight)
	}
}

// applyPointers splits presses by the horizontal half of the surface they
// land on. A press restarts that side's ramp; a release lets go of both.
func (g *Game) applyPointers(events []core.PointerEvent) {
	mid := g.layout.left + g.layout.cols/2
	for _, ev := range events {
		if !ev.Down {
			g.ptrLeft, g.ptrRight = false, false
			continue
		}
		if ev.X < mid {
			g.ptrLeft = true
			g.sim.left.Set(false)
		} else {
			g.ptrRight = true
			g.sim.right.Set(false)
		}
	}
}

// applyReleases lets go of released keys and, on any pointer release, of
// both pointer halves.
func (g *Game) applyReleases(in core.InputFrame) {
	if in.Has(core.ActionReleaseLeft) {
		g.keyLeft = false
	}
	if in.Has(core.ActionReleaseRight) {
		g.keyRight = false
	}
	for _, ev := range in.Pointers {
		if !ev.Down {
			g.ptrLeft, g.ptrRight = false, false
		}
	}
	g.sim.SetHeld(g.keyLeft || g.ptrLeft, g.keyRight || g.ptrRight)
}

func (g *Game) anyPress(in core.InputFrame) bool {
	for _, ev := range in.Pointers {
		if ev.Down {
			return true
		}
	}
	return false
}

func (g *Game) clearIntent() {
	g.keyLeft, g.keyRight = false, false
	g.ptrLeft, g.ptrRight = false, false
	if g.sim != nil {
		g.sim.SetHeld(false, false)
	}
}

func (g *Game) setPhase(p Phase) {
	log.Debug("higher: phase", "from", g.phase, "to", p, "score", g.sim.Score())
	g.phase = p
	g.phaseAt = g.sched.Now()
}

// start plays the zoom animation and then begins the run.
func (g *Game) start() {
	g.clearIntent()
	g.setPhase(PhaseStartAnimation)
	g.sched.After(g.cfg.Timing.StartAnimation(), func() {
		g.setPhase(PhaseRunning)
	})
}

// endRun freezes the surface and shakes it before wrapping the run up.
func (g *Game) endRun() {
	g.lastScore = g.sim.Score()
	g.setPhase(PhaseGameOver)
	g.sched.After(g.cfg.Timing.GameOver(), g.finishRun)
}

// finishRun persists a beaten best score, resets the simulation and
// returns to idle.
func (g *Game) finishRun() {
	score := g.sim.Score()
	if score > g.best {
		g.best = score
		if g.book != nil {
			if _, err := g.book.RecordBest(GameID, score); err != nil {
				log.Warn("higher: cannot store best score", "score", score, "err", err)
			} else {
				log.Info("higher: new best score", "score", score)
			}
		}
	}
	g.sim.Reset()
	g.clearIntent()
	g.setPhase(PhaseIdle)
}

// Phase returns the current run state.
func (g *Game) Phase() Phase {
	return g.phase
}

// State returns the current game state.
func (g *Game) State() core.GameState {
	score := 0
	if g.sim != nil {
		score = g.sim.Score()
	}
	return core.GameState{
		Score:    score,
		Best:     g.best,
		GameOver: g.phase == PhaseGameOver,
		Paused:   g.paused,
	}
}

// phaseProgress returns how far the current phase is through a transition
// of length d, from 0 to 1.
func (g *Game) phaseProgress(d time.Duration) float64 {
	if d <= 0 {
		return 1
	}
	return core.ClampF(float64(g.sched.Now()-g.phaseAt)/float64(d), 0, 1)
}

var (
	_ registry.Game          = (*Game)(nil)
	_ registry.Resizer       = (*Game)(nil)
	_ registry.Teardowner    = (*Game)(nil)
	_ registry.ScoreBookUser = (*Game)(nil)
)

// Register the game with the registry
func init() {
	registry.Register(GameID, func() registry.Game {
		return New()
	})
}
