// Package matchpepe implements Matchpepe, a timed tile-matching puzzle.
// Every cell of the grid must be cycled until it shows the same tile as the
// fixed top-left anchor before the round timer runs out. Solved rounds make
// the next round shorter and, every few rounds, the grid larger.
package matchpepe

import (
	"math/rand"
	"time"

	"github.com/charmbracelet/log"

	"github.com/vovakirdan/sky-arcade/internal/config"
	"github.com/vovakirdan/sky-arcade/internal/core"
	"github.com/vovakirdan/sky-arcade/internal/registry"
)

// GameID is the registry and score book key of the game.
const GameID = "matchpepe"

// Phase is the run state of the game.
type Phase int

const (
	PhaseIdle      Phase = iota // Waiting for a start command
	PhasePlaying                // Timer running, cells selectable
	PhaseWinEffect              // Board solved, next round pending
	PhaseShake                  // Time ran out, run reset pending
)

// String returns a human-readable name for the phase.
func (p Phase) String() string {
	switch p {
	case PhaseIdle:
		return "idle"
	case PhasePlaying:
		return "playing"
	case PhaseWinEffect:
		return "win-effect"
	case PhaseShake:
		return "shake"
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

// SetDifficultyPreset sets the difficulty preset.
func SetDifficultyPreset(preset string) {
	p, err := config.ParsePreset(preset)
	if err != nil {
		p = ""
	}
	difficultyPreset = p
}

// Game implements the Matchpepe game logic.
type Game struct {
	cfg      config.MatchConfig
	cfgFixed bool

	runtime core.RuntimeConfig
	rng     *rand.Rand
	sched   *core.Scheduler
	board   *Board
	cursor  int // Selected cell index

	phase    Phase
	phaseAt  time.Duration
	paused   bool
	tornDown bool

	score    int
	gridSize int
	maxTime  time.Duration
	timer    time.Duration

	book      core.ScoreBook
	best      int
	lastScore int
}

// New creates a new Matchpepe game instance.
func New() *Game {
	return &Game{sched: core.NewScheduler()}
}

// NewWithConfig creates a game that always uses cfg.
func NewWithConfig(cfg config.MatchConfig) (*Game, error) {
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
	return "Matchpepe"
}

// UseScoreBook binds the persistent best score.
func (g *Game) UseScoreBook(book core.ScoreBook) {
	g.book = book
	if book == nil {
		return
	}
	best, err := book.BestScore(GameID)
	if err != nil {
		log.Warn("matchpepe: cannot read best score", "err", err)
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
		cfg, err := config.LoadMatch(configPath)
		if err != nil {
			log.Warn("matchpepe: using default config", "err", err)
			cfg = config.DefaultMatchConfig()
		}
		config.ApplyMatchPreset(&cfg, difficultyPreset)
		g.cfg = cfg
	}

	if g.sched != nil {
		g.sched.CancelAll()
	}
	g.sched = core.NewScheduler()
	g.rng = rand.New(rand.NewSource(runtime.Seed))
	g.phase = PhaseIdle
	g.phaseAt = 0
	g.paused = false
	g.tornDown = false
	g.lastScore = 0
	g.resetRun()
}

// Resize keeps the round; the board is laid out again on the next Render.
func (g *Game) Resize(width, height int) {
	g.runtime.ScreenW = width
	g.runtime.ScreenH = height
}

// Teardown cancels pending transitions. Later Steps do nothing.
func (g *Game) Teardown() {
	if g.tornDown {
		return
	}
	n := g.sched.CancelAll()
	g.tornDown = true
	log.Debug("matchpepe: teardown", "cancelled", n, "phase", g.phase)
}

// resetRun puts score, round time and grid size back to their starting
// values and deals a fresh round.
func (g *Game) resetRun() {
	g.score = 0
	g.gridSize = g.cfg.Board.InitialGrid
	g.maxTime = g.cfg.Timing.InitialMaxTime()
	g.newRound()
}

// newRound deals a board for the current grid size with a full timer.
func (g *Game) newRound() {
	g.board = NewBoard(g.rng, g.gridSize)
	g.gridSize = g.board.Size()
	g.timer = g.maxTime
	g.cursor = core.Min(1, g.board.Len()-1)
}

// Step advances the game by one tick.
func (g *Game) Step(in core.InputFrame) core.StepResult {
	if g.tornDown || g.board == nil {
		return core.StepResult{State: g.State()}
	}

	if g.phase != PhaseIdle && in.Has(core.ActionPause) {
		g.paused = !g.paused
	}
	if g.paused {
		return core.StepResult{State: g.State()}
	}

	dt := g.runtime.TickDuration()
	g.handleInput(in)
	g.sched.Advance(dt)

	if g.phase == PhasePlaying {
		g.timer -= dt
		if g.timer <= 0 {
			g.timer = 0
			g.timeUp()
		}
	}

	return core.StepResult{State: g.State()}
}

// handleInput applies the frame's actions for the current phase.
func (g *Game) handleInput(in core.InputFrame) {
	switch g.phase {
	case PhaseIdle:
		if in.Has(core.ActionJump) || in.Has(core.ActionConfirm) || in.Has(core.ActionRestart) || len(presses(in)) > 0 {
			g.resetRun()
			g.setPhase(PhasePlaying)
		}

	case PhasePlaying:
		if in.Has(core.ActionRestart) {
			g.resetRun()
			return
		}
		g.moveCursor(in)
		if in.Has(core.ActionJump) || in.Has(core.ActionConfirm) {
			g.selectCell(g.cursor)
		}
		for _, ev := range presses(in) {
			if i, ok := g.cellAt(ev.X, ev.Y); ok {
				g.cursor = i
				g.selectCell(i)
			}
		}
	}
}

func presses(in core.InputFrame) []core.PointerEvent {
	var out []core.PointerEvent
	for _, ev := range in.Pointers {
		if ev.Down {
			out = append(out, ev)
		}
	}
	return out
}

// moveCursor moves the selection one cell per action, wrapping at edges.
func (g *Game) moveCursor(in core.InputFrame) {
	n := g.board.Size()
	row, col := g.cursor/n, g.cursor%n
	if in.Has(core.ActionUp) {
		row = (row - 1 + n) % n
	}
	if in.Has(core.ActionDown) {
		row = (row + 1) % n
	}
	if in.Has(core.ActionLeft) {
		col = (col - 1 + n) % n
	}
	if in.Has(core.ActionRight) {
		col = (col + 1) % n
	}
	g.cursor = row*n + col
}

// selectCell cycles a cell and starts the win effect once the board matches.
func (g *Game) selectCell(i int) {
	if g.phase != PhasePlaying || !g.board.Select(i) {
		return
	}
	if g.board.Solved() {
		g.setPhase(PhaseWinEffect)
		g.sched.After(g.cfg.Timing.WinEffect(), g.nextRound)
	}
}

// nextRound scores the solved board, shortens the round time and grows the
// grid every LevelUpScore rounds.
func (g *Game) nextRound() {
	g.score++
	grid := g.score/g.cfg.Board.LevelUpScore + g.cfg.Board.InitialGrid
	grid = core.Min(grid, g.cfg.Board.MaxGrid)

	factor := g.cfg.Timing.Decay
	if grid > g.gridSize {
		factor *= g.cfg.Timing.GrowFactor
	}
	g.maxTime = time.Duration(float64(g.maxTime) * factor)
	g.gridSize = grid

	g.recordBest()
	g.newRound()
	g.setPhase(PhasePlaying)
}

// timeUp shakes the board, then starts the run over.
func (g *Game) timeUp() {
	g.lastScore = g.score
	g.setPhase(PhaseShake)
	g.sched.After(g.cfg.Timing.Shake(), func() {
		g.resetRun()
		g.setPhase(PhasePlaying)
	})
}

func (g *Game) recordBest() {
	if g.score <= g.best {
		return
	}
	g.best = g.score
	if g.book == nil {
		return
	}
	if _, err := g.book.RecordBest(GameID, g.score); err != nil {
		log.Warn("matchpepe: cannot store best score", "score", g.score, "err", err)
	}
}

func (g *Game) setPhase(p Phase) {
	log.Debug("matchpepe: phase", "from", g.phase, "to", p, "score", g.score, "grid", g.gridSize)
	g.phase = p
	g.phaseAt = g.sched.Now()
}

// phaseProgress returns how far the current phase is through a transition
// of length d, from 0 to 1.
func (g *Game) phaseProgress(d time.Duration) float64 {
	if d <= 0 {
		return 1
	}
	return core.ClampF(float64(g.sched.Now()-g.phaseAt)/float64(d), 0, 1)
}

// Phase returns the current run state.
func (g *Game) Phase() Phase {
	return g.phase
}

// State returns the current game state.
func (g *Game) State() core.GameState {
	return core.GameState{
		Score:    g.score,
		Best:     g.best,
		GameOver: g.phase == PhaseShake,
		Paused:   g.paused,
	}
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
