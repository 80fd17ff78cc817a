package higher

import (
	"errors"
	"math"
	"strings"
	"testing"

	"github.com/vovakirdan/sky-arcade/internal/config"
	"github.com/vovakirdan/sky-arcade/internal/core"
)

// memBook is an in-memory score book that records every write.
type memBook struct {
	best    int
	writes  []int
	readErr error
}

func (b *memBook) BestScore(string) (int, error) {
	return b.best, b.readErr
}

func (b *memBook) RecordBest(_ string, score int) (bool, error) {
	b.writes = append(b.writes, score)
	if score > b.best {
		b.best = score
		return true, nil
	}
	return false, nil
}

// 63x31 cells make a 500x396.8 surface; 50 ticks per second make every
// transition a whole number of ticks.
func newTestGame(t *testing.T, book core.ScoreBook) *Game {
	t.Helper()
	g, err := NewWithConfig(config.DefaultHigherConfig())
	if err != nil {
		t.Fatalf("NewWithConfig() failed: %v", err)
	}
	if book != nil {
		g.UseScoreBook(book)
	}
	g.Reset(core.RuntimeConfig{ScreenW: 63, ScreenH: 31, TickRate: 50, Seed: 1})
	return g
}

func step(g *Game, actions ...core.Action) core.StepResult {
	in := core.NewInputFrame()
	for _, a := range actions {
		in.Set(a)
	}
	return g.Step(in)
}

func steps(g *Game, n int) {
	for i := 0; i < n; i++ {
		step(g)
	}
}

// startRun presses start and waits out the animation.
func startRun(t *testing.T, g *Game) {
	t.Helper()
	step(g, core.ActionJump)
	steps(g, 99)
	if g.Phase() != PhaseRunning {
		t.Fatalf("phase after start animation = %v, want running", g.Phase())
	}
}

// crash drops an obstacle onto the player so the next frame hits.
func crash(g *Game) {
	p := g.sim.Player()
	g.sim.obstacles = append(g.sim.obstacles, Obstacle{
		X: p.X, Y: p.Y, Width: 80, Height: 80, Radius: 15,
	})
	step(g)
}

func TestGameIdentity(t *testing.T) {
	g := New()
	if g.ID() != "higher" {
		t.Errorf("ID() = %q, want higher", g.ID())
	}
	if g.Title() != "Higher" {
		t.Errorf("Title() = %q, want Higher", g.Title())
	}
}

func TestGameIdleRunsNoFrames(t *testing.T) {
	g := newTestGame(t, nil)
	steps(g, 300)
	if g.Phase() != PhaseIdle {
		t.Errorf("phase = %v, want idle", g.Phase())
	}
	if g.sim.FrameCount() != 0 {
		t.Errorf("FrameCount() = %d while idle, want 0", g.sim.FrameCount())
	}
}

func TestGamePhaseTimings(t *testing.T) {
	g := newTestGame(t, nil)

	step(g, core.ActionJump)
	if g.Phase() != PhaseStartAnimation {
		t.Fatalf("phase after start = %v, want start-animation", g.Phase())
	}
	steps(g, 98)
	if g.Phase() != PhaseStartAnimation {
		t.Fatalf("phase after 1.98s = %v, want start-animation", g.Phase())
	}
	if g.sim.FrameCount() != 0 {
		t.Errorf("frames ran during the start animation: %d", g.sim.FrameCount())
	}
	step(g)
	if g.Phase() != PhaseRunning {
		t.Fatalf("phase after 2s = %v, want running", g.Phase())
	}

	crash(g)
	if g.Phase() != PhaseGameOver {
		t.Fatalf("phase after hit = %v, want game-over", g.Phase())
	}
	if !g.State().GameOver {
		t.Error("State().GameOver should be set during the shake")
	}
	frames := g.sim.FrameCount()
	steps(g, 24)
	if g.Phase() != PhaseGameOver {
		t.Fatalf("phase after 0.48s = %v, want game-over", g.Phase())
	}
	if g.sim.FrameCount() != frames {
		t.Error("frames ran during game over")
	}
	step(g)
	if g.Phase() != PhaseIdle {
		t.Fatalf("phase after 0.5s = %v, want idle", g.Phase())
	}
	if g.State().GameOver || g.State().Score != 0 {
		t.Errorf("state after game over = %+v", g.State())
	}
}

func TestGameBestScoreRule(t *testing.T) {
	book := &memBook{best: 50}
	g := newTestGame(t, book)
	if g.State().Best != 50 {
		t.Fatalf("Best = %d, want stored 50", g.State().Best)
	}

	tests := []struct {
		score      int
		wantBest   int
		wantWrites int
	}{
		{30, 50, 0}, // below best
		{50, 50, 0}, // tie
		{120, 120, 1},
		{80, 120, 1},
	}

	for _, tt := range tests {
		startRun(t, g)
		g.sim.score = tt.score
		crash(g)
		steps(g, 25)

		if g.Phase() != PhaseIdle {
			t.Fatalf("score %d: phase = %v, want idle", tt.score, g.Phase())
		}
		if got := g.State().Best; got != tt.wantBest {
			t.Errorf("score %d: Best = %d, want %d", tt.score, got, tt.wantBest)
		}
		if len(book.writes) != tt.wantWrites {
			t.Errorf("score %d: %d writes, want %d", tt.score, len(book.writes), tt.wantWrites)
		}
	}
	if book.best != 120 {
		t.Errorf("stored best = %d, want 120", book.best)
	}
}

func TestGameWithoutBookKeepsBestInMemory(t *testing.T) {
	g := newTestGame(t, nil)
	startRun(t, g)
	g.sim.score = 70
	crash(g)
	steps(g, 25)
	if g.State().Best != 70 {
		t.Errorf("Best = %d, want 70", g.State().Best)
	}
}

func TestGameBookReadError(t *testing.T) {
	g := newTestGame(t, &memBook{best: 999, readErr: errors.New("disk gone")})
	if g.State().Best != 0 {
		t.Errorf("Best = %d after failed read, want 0", g.State().Best)
	}
}

func TestGameTeardown(t *testing.T) {
	g := newTestGame(t, nil)
	step(g, core.ActionJump)
	g.Teardown()

	if n := g.sched.CancelAll(); n != 0 {
		t.Errorf("%d tasks still pending after teardown", n)
	}
	steps(g, 300)
	if g.Phase() != PhaseStartAnimation {
		t.Errorf("phase changed after teardown: %v", g.Phase())
	}
	if g.sim.FrameCount() != 0 {
		t.Errorf("frames ran after teardown: %d", g.sim.FrameCount())
	}

	// Teardown during game over must not persist anything later
	book := &memBook{}
	g = newTestGame(t, book)
	startRun(t, g)
	g.sim.score = 40
	crash(g)
	g.Teardown()
	steps(g, 100)
	if len(book.writes) != 0 {
		t.Errorf("best score written after teardown: %v", book.writes)
	}
}

func TestGamePause(t *testing.T) {
	g := newTestGame(t, nil)

	// Pause is ignored while idle
	step(g, core.ActionPause)
	if g.State().Paused {
		t.Error("pause should be ignored while idle")
	}

	startRun(t, g)
	step(g, core.ActionPause)
	if !g.State().Paused {
		t.Fatal("expected paused")
	}
	frames := g.sim.FrameCount()
	steps(g, 50)
	if g.sim.FrameCount() != frames {
		t.Error("frames ran while paused")
	}
	step(g, core.ActionPause)
	if g.State().Paused {
		t.Error("expected unpaused")
	}
	if g.sim.FrameCount() != frames+1 {
		t.Errorf("FrameCount() = %d, want %d", g.sim.FrameCount(), frames+1)
	}
}

func TestGameReleaseWhilePaused(t *testing.T) {
	g := newTestGame(t, nil)
	startRun(t, g)

	step(g, core.ActionLeft)
	steps(g, 3)
	step(g, core.ActionPause)
	step(g, core.ActionReleaseLeft)
	step(g, core.ActionPause)
	x0 := g.sim.Player().X
	steps(g, 10)
	if x := g.sim.Player().X; x != x0 {
		t.Errorf("key released during pause still steers: %v -> %v", x0, x)
	}
	if g.keyLeft || g.sim.left.Held {
		t.Error("left still held after release during pause")
	}

	in := core.NewInputFrame()
	in.AddPointer(core.PointerEvent{X: g.layout.left + g.layout.cols - 1, Y: 5, Down: true})
	g.Step(in)
	steps(g, 3)
	step(g, core.ActionPause)
	in = core.NewInputFrame()
	in.AddPointer(core.PointerEvent{X: g.layout.left + g.layout.cols - 1, Y: 5, Down: false})
	g.Step(in)
	step(g, core.ActionPause)
	x1 := g.sim.Player().X
	steps(g, 10)
	if x := g.sim.Player().X; x != x1 {
		t.Errorf("pointer released during pause still steers: %v -> %v", x1, x)
	}
	if g.ptrRight || g.sim.right.Held {
		t.Error("right still held after pointer release during pause")
	}
}

func TestGameKeyboardHold(t *testing.T) {
	g := newTestGame(t, nil)
	startRun(t, g)
	x0 := g.sim.Player().X

	step(g, core.ActionLeft)
	steps(g, 5) // still held until released
	if x := g.sim.Player().X; x >= x0 {
		t.Fatalf("player did not move left: %v -> %v", x0, x)
	}
	if d := g.sim.left.Duration; d != 6 {
		t.Errorf("left duration = %d, want 6", d)
	}

	step(g, core.ActionReleaseLeft)
	x1 := g.sim.Player().X
	steps(g, 5)
	if x := g.sim.Player().X; x != x1 {
		t.Errorf("player moved after release: %v -> %v", x1, x)
	}
	if d := g.sim.left.Duration; d != 0 {
		t.Errorf("left duration after release = %d, want 0", d)
	}
}

func TestGamePointerHalves(t *testing.T) {
	g := newTestGame(t, nil)
	startRun(t, g)
	x0 := g.sim.Player().X

	in := core.NewInputFrame()
	in.AddPointer(core.PointerEvent{X: g.layout.left + g.layout.cols - 1, Y: 5, Down: true})
	g.Step(in)
	steps(g, 10)
	x1 := g.sim.Player().X
	if x1 <= x0 {
		t.Fatalf("press on the right half did not move right: %v -> %v", x0, x1)
	}

	in = core.NewInputFrame()
	in.AddPointer(core.PointerEvent{X: g.layout.left + g.layout.cols - 1, Y: 5, Down: false})
	g.Step(in)
	x2 := g.sim.Player().X
	steps(g, 10)
	if x := g.sim.Player().X; x != x2 {
		t.Errorf("player moved after pointer release: %v -> %v", x2, x)
	}

	in = core.NewInputFrame()
	in.AddPointer(core.PointerEvent{X: g.layout.left, Y: 5, Down: true})
	g.Step(in)
	steps(g, 10)
	if x := g.sim.Player().X; x >= x2 {
		t.Errorf("press on the left half did not move left: %v -> %v", x2, x)
	}
}

func TestGamePointerStartsRun(t *testing.T) {
	g := newTestGame(t, nil)
	in := core.NewInputFrame()
	in.AddPointer(core.PointerEvent{X: 10, Y: 10, Down: true})
	g.Step(in)
	if g.Phase() != PhaseStartAnimation {
		t.Errorf("phase after click = %v, want start-animation", g.Phase())
	}
}

func TestGameResizeKeepsRun(t *testing.T) {
	g := newTestGame(t, nil)
	startRun(t, g)
	g.sim.score = 200
	g.sim.obstacles = append(g.sim.obstacles, Obstacle{X: 5, Y: 5, Width: 80, Height: 80, Radius: 15})

	g.Resize(40, 20)
	if g.Phase() != PhaseRunning || g.sim.Score() != 200 || len(g.sim.Obstacles()) != 1 {
		t.Errorf("resize lost the run: phase=%v score=%d", g.Phase(), g.sim.Score())
	}
	w, h := g.sim.Size()
	if w != 320 || h != 256 {
		t.Errorf("surface after resize = %vx%v, want 320x256", w, h)
	}
	if p := g.sim.Player(); p.X != 120 {
		t.Errorf("player x after resize = %v, want 120", p.X)
	}
}

func TestGameRender(t *testing.T) {
	g := newTestGame(t, &memBook{best: 340})
	screen := core.NewScreen(63, 31)

	g.Render(screen)
	if out := screen.String(); !strings.Contains(out, "HIGHSCORE: 340") {
		t.Errorf("idle screen missing high score:\n%s", out)
	}

	startRun(t, g)
	g.sim.score = 1230
	g.Render(screen)
	if out := screen.String(); !strings.Contains(out, "1230") {
		t.Errorf("running screen missing score:\n%s", out)
	}
	if out := screen.String(); !strings.Contains(out, "LV 3") {
		t.Errorf("running screen missing level:\n%s", out)
	}
	if strings.Contains(screen.String(), "HIGHSCORE") {
		t.Error("idle overlay drawn while running")
	}

	// The player arrow sits near the bottom center and is drawn in the
	// player color over the sky
	l := g.layout
	cell := screen.GetCell(l.left+l.cols/2, l.top+l.rows-3)
	if cell.Rune != halfBlock {
		t.Errorf("surface cell rune = %q, want half block", cell.Rune)
	}
}

func TestLayout(t *testing.T) {
	cc := config.DefaultHigherConfig().Canvas

	tests := []struct {
		name       string
		w, h       int
		pxW, pxH   float64
		cols, rows int
		left, top  int
	}{
		{"wide terminal caps width", 120, 40, 500, 512, 63, 32, 28, 4},
		{"narrow terminal", 40, 20, 320, 256, 40, 16, 0, 2},
		{"empty", 0, 0, 0, 0, 0, 0, 0, 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			l := newLayout(cc, tt.w, tt.h)
			if l.pxW != tt.pxW || l.pxH != tt.pxH {
				t.Errorf("surface = %vx%v, want %vx%v", l.pxW, l.pxH, tt.pxW, tt.pxH)
			}
			if l.cols != tt.cols || l.rows != tt.rows || l.left != tt.left || l.top != tt.top {
				t.Errorf("cells = %dx%d at (%d,%d), want %dx%d at (%d,%d)",
					l.cols, l.rows, l.left, l.top, tt.cols, tt.rows, tt.left, tt.top)
			}
		})
	}
}

func TestArrowMasks(t *testing.T) {
	if !arrowUp(0.5, 0.05) {
		t.Error("tip of the up arrow should be filled")
	}
	if arrowUp(0.05, 0.05) {
		t.Error("corner beside the tip should be empty")
	}
	if !arrowUp(0.5, 0.9) || arrowUp(0.05, 0.9) {
		t.Error("shaft should be narrow and centered")
	}
	if !arrowDown(0.5, 0.95) || arrowDown(0.05, 0.95) {
		t.Error("down arrow should point at the bottom")
	}
}

func TestShakeAndZoom(t *testing.T) {
	if shakeOffset(0) != 0 || shakeOffset(1) != 0 {
		t.Error("shake should rest at both ends")
	}
	if got := shakeOffset(0.3); math.Abs(got+6) > 1e-9 {
		t.Errorf("shakeOffset(0.3) = %v, want -6", got)
	}
	if got := shakeOffset(0.35); math.Abs(got) > 1e-9 {
		t.Errorf("shakeOffset(0.35) = %v, want 0", got)
	}

	s, a := zoomFrame(0.5)
	if math.Abs(a-1) > 1e-9 || math.Abs(s-3) > 1e-9 {
		t.Errorf("zoom at midpoint = scale %v opacity %v, want 3 and 1", s, a)
	}
	if _, a := zoomFrame(1); a != 0 {
		t.Errorf("zoom opacity at end = %v, want 0", a)
	}
}
