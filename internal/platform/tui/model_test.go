package tui

import (
	"path/filepath"
	"strings"
	"testing"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/vovakirdan/sky-arcade/internal/core"
	"github.com/vovakirdan/sky-arcade/internal/storage"
)

// stubGame records what the platform feeds it.
type stubGame struct {
	frames    []core.InputFrame
	state     core.GameState
	resets    int
	resized   [2]int
	torndown  int
	book      core.ScoreBook
	renderRow string
}

func (g *stubGame) ID() string { return "stub" }
func (g *stubGame) Title() string { return "Stub" }

func (g *stubGame) Reset(core.RuntimeConfig) { g.resets++ }

func (g *stubGame) Step(in core.InputFrame) core.StepResult {
	g.frames = append(g.frames, cloneFrame(in))
	return core.StepResult{State: g.state}
}

func (g *stubGame) Render(dst *core.Screen) {
	dst.Clear()
	dst.DrawText(0, 0, g.renderRow)
}

func (g *stubGame) State() core.GameState { return g.state }
func (g *stubGame) Resize(w, h int) { g.resized = [2]int{w, h} }
func (g *stubGame) Teardown() { g.torndown++ }
func (g *stubGame) UseScoreBook(b core.ScoreBook) { g.book = b }

func cloneFrame(in core.InputFrame) core.InputFrame {
	out := core.NewInputFrame()
	for a, v := range in.Actions {
		out.Actions[a] = v
	}
	out.Pointers = append([]core.PointerEvent(nil), in.Pointers...)
	return out
}

func emptyFrame(f core.InputFrame) bool {
	return len(f.Actions) == 0 && len(f.Pointers) == 0
}

func (g *stubGame) lastFrame() core.InputFrame {
	return g.frames[len(g.frames)-1]
}

// fakeClock is a settable time source for hold tracking.
type fakeClock struct{ t time.Time }

func (c *fakeClock) now() time.Time { return c.t }

func newTestModel(t *testing.T, g *stubGame, store *storage.Store, opts Options) (Model, *fakeClock) {
	t.Helper()
	m := NewModel(g, store, core.RuntimeConfig{ScreenW: 20, ScreenH: 5, TickRate: 50, Seed: 1}, opts)
	clock := &fakeClock{t: time.Unix(1000, 0)}
	m.now = clock.now
	m.Init()
	return m, clock
}

func update(t *testing.T, m Model, msg tea.Msg) Model {
	t.Helper()
	next, _ := m.Update(msg)
	model, ok := next.(Model)
	if !ok {
		t.Fatalf("Update returned %T, want Model", next)
	}
	return model
}

func tick(t *testing.T, m Model) Model {
	t.Helper()
	return update(t, m, TickMsg{Time: time.Now(), Loop: m.loop})
}

func TestModelInitResetsGame(t *testing.T) {
	g := &stubGame{}
	newTestModel(t, g, nil, Options{})
	if g.resets != 1 {
		t.Errorf("resets = %d, want 1", g.resets)
	}
	if g.book != nil {
		t.Error("a nil store must not be bound as a score book")
	}
}

func TestModelHoldsDirection(t *testing.T) {
	g := &stubGame{}
	m, clock := newTestModel(t, g, nil, Options{HoldWindow: 300 * time.Millisecond})

	m = update(t, m, tea.KeyMsg{Type: tea.KeyLeft})
	m = tick(t, m)
	if !g.lastFrame().Has(core.ActionLeft) {
		t.Fatal("left press not forwarded")
	}

	clock.t = clock.t.Add(200 * time.Millisecond)
	m = tick(t, m)
	if g.lastFrame().Has(core.ActionReleaseLeft) {
		t.Error("left released inside the hold window")
	}

	clock.t = clock.t.Add(200 * time.Millisecond)
	m = tick(t, m)
	if !g.lastFrame().Has(core.ActionReleaseLeft) {
		t.Error("left not released after the hold window")
	}

	// Down lets go immediately
	m = update(t, m, tea.KeyMsg{Type: tea.KeyRight})
	m = update(t, m, tea.KeyMsg{Type: tea.KeyDown})
	tick(t, m)
	last := g.lastFrame()
	if !last.Has(core.ActionDown) || !last.Has(core.ActionReleaseRight) {
		t.Errorf("down frame = %v, want down and release-right", last.Actions)
	}
}

func TestModelInputClearedEachTick(t *testing.T) {
	g := &stubGame{}
	m, _ := newTestModel(t, g, nil, Options{})

	m = update(t, m, tea.KeyMsg{Type: tea.KeySpace})
	m = tick(t, m)
	tick(t, m)
	if !g.frames[0].Has(core.ActionJump) {
		t.Error("jump not forwarded")
	}
	if !emptyFrame(g.frames[1]) {
		t.Errorf("second frame not empty: %v", g.frames[1].Actions)
	}
}

func TestModelForwardsRestart(t *testing.T) {
	g := &stubGame{}
	m, _ := newTestModel(t, g, nil, Options{})

	m = update(t, m, runeKey('r'))
	tick(t, m)
	if !g.lastFrame().Has(core.ActionRestart) {
		t.Error("restart not forwarded to the game")
	}
	if g.resets != 1 {
		t.Errorf("resets = %d, want 1", g.resets)
	}
}

func TestModelMouse(t *testing.T) {
	g := &stubGame{}
	m, _ := newTestModel(t, g, nil, Options{})

	m = update(t, m, tea.MouseMsg{X: 3, Y: 2, Action: tea.MouseActionPress, Button: tea.MouseButtonLeft})
	m = update(t, m, tea.MouseMsg{X: 4, Y: 2, Action: tea.MouseActionMotion})
	m = update(t, m, tea.MouseMsg{X: 5, Y: 2, Action: tea.MouseActionRelease})
	tick(t, m)

	want := []core.PointerEvent{{X: 3, Y: 2, Down: true}, {X: 5, Y: 2, Down: false}}
	got := g.lastFrame().Pointers
	if len(got) != len(want) {
		t.Fatalf("pointers = %v, want %v", got, want)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("pointer %d = %v, want %v", i, got[i], want[i])
		}
	}
}

func TestModelResize(t *testing.T) {
	g := &stubGame{}
	m, _ := newTestModel(t, g, nil, Options{})

	m = update(t, m, tea.WindowSizeMsg{Width: 100, Height: 40})
	if g.resized != [2]int{100, 40} {
		t.Errorf("resized = %v, want [100 40]", g.resized)
	}
	if g.resets != 1 {
		t.Error("resizable game should not be reset")
	}
	if m.screen.Width() != 100 || m.screen.Height() != 40 {
		t.Errorf("screen = %dx%d, want 100x40", m.screen.Width(), m.screen.Height())
	}
}

func TestModelQuitTearsDown(t *testing.T) {
	g := &stubGame{}
	m, _ := newTestModel(t, g, nil, Options{})

	next, cmd := m.Update(runeKey('q'))
	if cmd == nil {
		t.Fatal("quit should return a command")
	}
	if !next.(Model).IsQuitting() {
		t.Error("model not quitting")
	}
	if g.torndown != 1 {
		t.Errorf("teardowns = %d, want 1", g.torndown)
	}
	if next.View() != "" {
		t.Error("quitting model should render nothing")
	}
}

func TestModelBack(t *testing.T) {
	g := &stubGame{}
	m, _ := newTestModel(t, g, nil, Options{})
	m = update(t, m, runeKey('b'))
	if m.BackToMenu() || g.torndown != 0 {
		t.Error("back should be ignored when not allowed")
	}

	g = &stubGame{}
	m, _ = newTestModel(t, g, nil, Options{AllowBack: true})
	m = update(t, m, runeKey('b'))
	if !m.BackToMenu() || g.torndown != 1 {
		t.Errorf("back = %v, teardowns = %d; want true, 1", m.BackToMenu(), g.torndown)
	}

	// No more ticks once the game is left
	n := len(g.frames)
	tick(t, m)
	if len(g.frames) != n {
		t.Error("game stepped after leaving")
	}
}

func TestModelIgnoresStaleTicks(t *testing.T) {
	g := &stubGame{}
	m, _ := newTestModel(t, g, nil, Options{})

	next, cmd := m.Update(TickMsg{Time: time.Now(), Loop: m.loop + 1000})
	if cmd != nil || len(g.frames) != 0 {
		t.Error("tick from another loop drove the game")
	}
	_ = next
}

func TestModelSavesScoreOncePerGameOver(t *testing.T) {
	store, err := storage.Open(filepath.Join(t.TempDir(), "scores.db"))
	if err != nil {
		t.Fatalf("Open() failed: %v", err)
	}
	defer store.Close()

	g := &stubGame{}
	m, _ := newTestModel(t, g, store, Options{})
	if g.book == nil {
		t.Error("store not bound as score book")
	}

	g.state = core.GameState{Score: 70, GameOver: true}
	for i := 0; i < 5; i++ {
		m = tick(t, m)
	}
	g.state = core.GameState{Score: 0}
	m = tick(t, m)
	g.state = core.GameState{Score: 90, GameOver: true}
	m = tick(t, m)
	tick(t, m)

	scores, err := store.AllScores("stub")
	if err != nil {
		t.Fatalf("AllScores() failed: %v", err)
	}
	if len(scores) != 2 {
		t.Fatalf("saved %d scores, want 2", len(scores))
	}
}

func TestModelView(t *testing.T) {
	g := &stubGame{renderRow: "hello"}
	m, _ := newTestModel(t, g, nil, Options{})
	if v := m.View(); len(v) == 0 || v[:5] != "hello" {
		t.Errorf("View() = %q, want it to start with hello", v)
	}
}

func TestModelHelpFooter(t *testing.T) {
	g := &stubGame{renderRow: "hello"}
	m, _ := newTestModel(t, g, nil, Options{})
	m = update(t, m, tea.WindowSizeMsg{Width: 120, Height: 10})

	m = update(t, m, runeKey('?'))
	v := m.View()
	if !strings.HasPrefix(v, "hello") {
		t.Errorf("short help should keep the top of the frame: %q", v)
	}
	if !strings.Contains(v, "quit") || strings.Contains(v, "screenshot") {
		t.Errorf("short help footer = %q", v)
	}
	if n := strings.Count(v, "\n") + 1; n != 10 {
		t.Errorf("view has %d rows, want 10", n)
	}

	m = update(t, m, runeKey('?'))
	if v := m.View(); !strings.Contains(v, "screenshot") {
		t.Errorf("full help footer missing screenshot: %q", v)
	}

	m = update(t, m, runeKey('?'))
	if v := m.View(); strings.Contains(v, "quit") {
		t.Errorf("help still shown after third toggle: %q", v)
	}
	if len(g.frames) != 0 {
		t.Errorf("help toggles reached the game: %d frames", len(g.frames))
	}
}

func TestWithFooter(t *testing.T) {
	tests := []struct {
		frame, footer, want string
	}{
		{"a\nb\nc", "x", "a\nb\nx"},
		{"a\nb\nc", "x\ny", "a\nx\ny"},
		{"a", "x\ny", "x\ny"},
	}
	for _, tt := range tests {
		if got := withFooter(tt.frame, tt.footer); got != tt.want {
			t.Errorf("withFooter(%q, %q) = %q, want %q", tt.frame, tt.footer, got, tt.want)
		}
	}
}
