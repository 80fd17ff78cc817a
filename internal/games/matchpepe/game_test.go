package matchpepe

import (
	"strings"
	"testing"
	"time"

	"github.com/vovakirdan/sky-arcade/internal/config"
	"github.com/vovakirdan/sky-arcade/internal/core"
)

type memBook struct {
	best   int
	writes []int
}

func (b *memBook) BestScore(string) (int, error) {
	return b.best, nil
}

func (b *memBook) RecordBest(_ string, score int) (bool, error) {
	b.writes = append(b.writes, score)
	if score > b.best {
		b.best = score
		return true, nil
	}
	return false, nil
}

const tick = 20 * time.Millisecond

func newTestGame(t *testing.T, cfg config.MatchConfig, book core.ScoreBook) *Game {
	t.Helper()
	g, err := NewWithConfig(cfg)
	if err != nil {
		t.Fatalf("NewWithConfig() failed: %v", err)
	}
	if book != nil {
		g.UseScoreBook(book)
	}
	g.Reset(core.RuntimeConfig{ScreenW: 80, ScreenH: 30, TickRate: 50, Seed: 1})
	return g
}

func step(g *Game, actions ...core.Action) {
	in := core.NewInputFrame()
	for _, a := range actions {
		in.Set(a)
	}
	g.Step(in)
}

func steps(g *Game, n int) {
	for i := 0; i < n; i++ {
		step(g)
	}
}

func startGame(t *testing.T, g *Game) {
	t.Helper()
	step(g, core.ActionJump)
	if g.Phase() != PhasePlaying {
		t.Fatalf("phase after start = %v, want playing", g.Phase())
	}
}

// solve selects every cell until it matches the anchor.
func solve(g *Game) {
	for i := 1; i < g.board.Len(); i++ {
		for g.board.Tile(i) != g.board.Tile(0) {
			g.selectCell(i)
		}
	}
}

func TestGameStart(t *testing.T) {
	g := newTestGame(t, config.DefaultMatchConfig(), nil)
	if g.Phase() != PhaseIdle {
		t.Fatalf("phase = %v, want idle", g.Phase())
	}
	startGame(t, g)

	if g.board.Size() != 2 {
		t.Errorf("grid = %d, want 2", g.board.Size())
	}
	if g.maxTime != 10*time.Second {
		t.Errorf("maxTime = %v, want 10s", g.maxTime)
	}
	// The start tick already counts down
	if g.timer != 10*time.Second-tick {
		t.Errorf("timer = %v, want %v", g.timer, 10*time.Second-tick)
	}

	steps(g, 49)
	if g.timer != 9*time.Second {
		t.Errorf("timer after 1s = %v, want 9s", g.timer)
	}
}

func TestGameSolveRound(t *testing.T) {
	book := &memBook{}
	g := newTestGame(t, config.DefaultMatchConfig(), book)
	startGame(t, g)

	solve(g)
	if g.Phase() != PhaseWinEffect {
		t.Fatalf("phase after solving = %v, want win-effect", g.Phase())
	}
	timer := g.timer
	steps(g, 49)
	if g.Phase() != PhaseWinEffect {
		t.Fatalf("phase after 0.98s = %v, want win-effect", g.Phase())
	}
	if g.timer != timer {
		t.Error("timer ran during the win effect")
	}

	step(g)
	if g.Phase() != PhasePlaying {
		t.Fatalf("phase after 1s = %v, want playing", g.Phase())
	}
	if g.score != 1 {
		t.Errorf("score = %d, want 1", g.score)
	}
	if g.maxTime != 9900*time.Millisecond {
		t.Errorf("maxTime = %v, want 9.9s", g.maxTime)
	}
	if g.timer != g.maxTime-tick {
		t.Errorf("timer = %v, want %v", g.timer, g.maxTime-tick)
	}
	if g.board.Solved() {
		t.Error("a new round should be dealt")
	}
	if len(book.writes) != 1 || book.best != 1 {
		t.Errorf("best score writes = %v, want [1]", book.writes)
	}
}

func TestGameGridGrows(t *testing.T) {
	g := newTestGame(t, config.DefaultMatchConfig(), nil)
	startGame(t, g)
	g.score = 9
	g.maxTime = 8 * time.Second

	solve(g)
	steps(g, 50)

	if g.score != 10 {
		t.Fatalf("score = %d, want 10", g.score)
	}
	if g.board.Size() != 3 || g.gridSize != 3 {
		t.Errorf("grid = %d, want 3", g.board.Size())
	}
	want := time.Duration(float64(8*time.Second) * 0.99 * 2.5)
	if d := g.maxTime - want; d < -time.Microsecond || d > time.Microsecond {
		t.Errorf("maxTime = %v, want %v", g.maxTime, want)
	}
}

func TestGameGridCapped(t *testing.T) {
	g := newTestGame(t, config.DefaultMatchConfig(), nil)
	startGame(t, g)
	g.score = 59
	g.gridSize = 5
	g.board = NewBoard(g.rng, 5)

	solve(g)
	steps(g, 50)
	if g.board.Size() != 5 {
		t.Errorf("grid = %d, want capped at 5", g.board.Size())
	}
}

func TestGameTimeUp(t *testing.T) {
	book := &memBook{}
	g := newTestGame(t, config.DefaultMatchConfig(), book)
	startGame(t, g)
	g.score = 4
	g.gridSize = 3
	g.maxTime = 2 * time.Second
	g.timer = 2 * time.Second

	steps(g, 99)
	if g.Phase() != PhasePlaying {
		t.Fatalf("phase with time left = %v, want playing", g.Phase())
	}
	step(g)
	if g.Phase() != PhaseShake {
		t.Fatalf("phase at time up = %v, want shake", g.Phase())
	}
	if st := g.State(); !st.GameOver || st.Score != 4 {
		t.Errorf("state at time up = %+v, want game over with score 4", st)
	}

	steps(g, 24)
	if g.Phase() != PhaseShake {
		t.Fatalf("phase after 0.48s = %v, want shake", g.Phase())
	}
	step(g)
	if g.Phase() != PhasePlaying {
		t.Fatalf("phase after shake = %v, want playing", g.Phase())
	}
	if g.score != 0 || g.board.Size() != 2 || g.maxTime != 10*time.Second {
		t.Errorf("run not reset: score=%d grid=%d maxTime=%v", g.score, g.board.Size(), g.maxTime)
	}
	if g.State().GameOver {
		t.Error("GameOver should clear once the new run starts")
	}
}

func TestGameCursorAndSelect(t *testing.T) {
	g := newTestGame(t, config.DefaultMatchConfig(), nil)
	startGame(t, g)

	if g.cursor != 1 {
		t.Fatalf("cursor = %d, want 1", g.cursor)
	}
	step(g, core.ActionRight) // wraps to column 0
	if g.cursor != 0 {
		t.Errorf("cursor after right = %d, want 0", g.cursor)
	}
	step(g, core.ActionDown)
	if g.cursor != 2 {
		t.Errorf("cursor after down = %d, want 2", g.cursor)
	}

	before := g.board.Tile(2)
	step(g, core.ActionConfirm)
	if g.board.Tile(2) == before {
		t.Error("confirm should cycle the cell under the cursor")
	}

	// The anchor never changes
	step(g, core.ActionUp)
	anchor := g.board.Tile(0)
	step(g, core.ActionJump)
	if g.board.Tile(0) != anchor {
		t.Error("anchor changed")
	}
}

func TestGamePointerSelect(t *testing.T) {
	g := newTestGame(t, config.DefaultMatchConfig(), nil)
	startGame(t, g)

	l := layoutBoard(80, 30, g.board.Size())
	x, y := l.tileRect(3).Center()
	before := g.board.Tile(3)

	in := core.NewInputFrame()
	in.AddPointer(core.PointerEvent{X: x, Y: y, Down: true})
	g.Step(in)

	if g.board.Tile(3) == before {
		t.Error("click should cycle the tile under the pointer")
	}
	if g.cursor != 3 {
		t.Errorf("cursor = %d, want 3", g.cursor)
	}

	// Clicks between tiles do nothing
	if _, ok := g.cellAt(0, 0); ok {
		t.Error("cellAt(0, 0) should miss the board")
	}
}

func TestGamePauseStopsTimer(t *testing.T) {
	g := newTestGame(t, config.DefaultMatchConfig(), nil)
	startGame(t, g)

	step(g, core.ActionPause)
	timer := g.timer
	steps(g, 100)
	if g.timer != timer {
		t.Error("timer ran while paused")
	}
	step(g, core.ActionPause)
	if g.timer != timer-tick {
		t.Errorf("timer after resume = %v, want %v", g.timer, timer-tick)
	}
}

func TestGameTeardown(t *testing.T) {
	book := &memBook{}
	g := newTestGame(t, config.DefaultMatchConfig(), book)
	startGame(t, g)
	solve(g)
	g.Teardown()

	steps(g, 200)
	if g.Phase() != PhaseWinEffect || g.score != 0 {
		t.Errorf("state changed after teardown: phase=%v score=%d", g.Phase(), g.score)
	}
	if len(book.writes) != 0 {
		t.Errorf("best score written after teardown: %v", book.writes)
	}
}

func TestGamePresets(t *testing.T) {
	cfg := config.DefaultMatchConfig()
	config.ApplyMatchPreset(&cfg, config.DifficultyEasy)
	g := newTestGame(t, cfg, nil)
	startGame(t, g)
	if g.maxTime != 15*time.Second {
		t.Errorf("easy maxTime = %v, want 15s", g.maxTime)
	}

	cfg = config.DefaultMatchConfig()
	config.ApplyMatchPreset(&cfg, config.DifficultyFixed)
	g = newTestGame(t, cfg, nil)
	startGame(t, g)
	solve(g)
	steps(g, 50)
	if g.maxTime != 10*time.Second {
		t.Errorf("fixed maxTime after a round = %v, want 10s", g.maxTime)
	}
}

func TestGameRender(t *testing.T) {
	g := newTestGame(t, config.DefaultMatchConfig(), &memBook{best: 12})
	screen := core.NewScreen(80, 30)

	g.Render(screen)
	if out := screen.String(); !strings.Contains(out, "HIGHSCORE: 12") {
		t.Errorf("idle screen missing high score:\n%s", out)
	}

	startGame(t, g)
	g.Render(screen)
	out := screen.String()
	if !strings.Contains(out, "SCORE 0") || !strings.Contains(out, "BEST 12") {
		t.Errorf("playing screen missing HUD:\n%s", out)
	}
	if !strings.Contains(out, "MOVES 6") {
		t.Errorf("playing screen missing moves left:\n%s", out)
	}
	if !strings.ContainsRune(out, g.board.Tile(0).Glyph) {
		t.Error("anchor glyph not drawn")
	}
}
