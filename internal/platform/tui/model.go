package tui

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/help"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/log"

	"github.com/vovakirdan/sky-arcade/internal/core"
	"github.com/vovakirdan/sky-arcade/internal/registry"
	"github.com/vovakirdan/sky-arcade/internal/storage"
)

// Options tunes how a game is hosted.
type Options struct {
	// HoldWindow is how long a direction key stays held after its last
	// press. Zero uses DefaultHoldWindow.
	HoldWindow time.Duration

	// Renderer styles the output. Nil uses the local terminal.
	Renderer *lipgloss.Renderer

	// AllowBack lets B leave the game instead of being ignored.
	AllowBack bool
}

// Model is the Bubble Tea model for running arcade games.
type Model struct {
	game       registry.Game
	screen     *core.Screen
	store      *storage.Store
	config     core.RuntimeConfig
	keys       *KeyMapper
	hold       HoldTracker
	painter    *Painter
	help       help.Model
	showHelp   bool
	inputFrame core.InputFrame
	gameState  core.GameState
	allowBack  bool
	quitting   bool
	backToMenu bool
	scoreSaved bool // Whether score has been saved for current game over
	loop       uint64
	now        func() time.Time
}

// NewModel creates a new Bubble Tea model for the given game and binds the
// game to the score store when it keeps a best score.
func NewModel(game registry.Game, store *storage.Store, cfg core.RuntimeConfig, opts Options) Model {
	// Use time-based seed if not specified
	if cfg.Seed == 0 {
		cfg.Seed = time.Now().UnixNano()
	}

	if u, ok := game.(registry.ScoreBookUser); ok && store != nil {
		u.UseScoreBook(store)
	}

	return Model{
		game:       game,
		screen:     core.NewScreen(cfg.ScreenW, cfg.ScreenH),
		store:      store,
		config:     cfg,
		keys:       NewKeyMapper(),
		hold:       NewHoldTracker(opts.HoldWindow),
		painter:    NewPainter(opts.Renderer),
		help:       newHelp(cfg.ScreenW),
		inputFrame: core.NewInputFrame(),
		allowBack:  opts.AllowBack,
		loop:       nextLoop(),
		now:        time.Now,
	}
}

// Init initializes the model and starts the game.
func (m Model) Init() tea.Cmd {
	m.game.Reset(m.config)
	// Note: gameState will be set on first tick (value receiver limitation)

	return tickCmd(m.config.TickRate, m.loop)
}

// Update handles messages and updates the model state.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		return m.handleKey(msg)

	case tea.MouseMsg:
		return m.handleMouse(msg)

	case tea.WindowSizeMsg:
		return m.handleResize(msg)

	case TickMsg:
		if msg.Loop != m.loop {
			return m, nil
		}
		return m.handleTick()
	}

	return m, nil
}

// handleKey processes keyboard input.
func (m Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if m.keys.IsHelp(msg) {
		m.toggleHelp()
		return m, nil
	}

	if m.keys.IsScreenshot(msg) {
		m.saveScreenshot()
		return m, nil
	}

	action, isQuit := m.keys.MapKey(msg)
	if isQuit {
		m.leave()
		m.quitting = true
		return m, tea.Quit
	}

	switch action {
	case core.ActionNone:
	case core.ActionLeft, core.ActionRight:
		m.hold.Press(action, m.now(), &m.inputFrame)
	case core.ActionDown:
		m.hold.ReleaseAll(&m.inputFrame)
		m.inputFrame.Set(action)
	case core.ActionBack:
		if m.allowBack {
			m.leave()
			m.backToMenu = true
		}
	default:
		m.inputFrame.Set(action)
	}

	return m, nil
}

// handleMouse forwards button presses and releases as pointer events.
func (m Model) handleMouse(msg tea.MouseMsg) (tea.Model, tea.Cmd) {
	switch msg.Action {
	case tea.MouseActionPress:
		if msg.Button == tea.MouseButtonLeft {
			m.inputFrame.AddPointer(core.PointerEvent{X: msg.X, Y: msg.Y, Down: true})
		}
	case tea.MouseActionRelease:
		m.inputFrame.AddPointer(core.PointerEvent{X: msg.X, Y: msg.Y, Down: false})
	}
	return m, nil
}

// handleResize processes window resize events.
func (m Model) handleResize(msg tea.WindowSizeMsg) (tea.Model, tea.Cmd) {
	m.config.ScreenW = msg.Width
	m.config.ScreenH = msg.Height
	m.screen.Resize(msg.Width, msg.Height)
	m.help.Width = msg.Width

	if r, ok := m.game.(registry.Resizer); ok {
		r.Resize(msg.Width, msg.Height)
		return m, nil
	}

	// Games without resize support start over at the new size
	if !m.gameState.GameOver {
		m.game.Reset(m.config)
	}

	return m, nil
}

// handleTick processes simulation ticks.
func (m Model) handleTick() (tea.Model, tea.Cmd) {
	if m.quitting || m.backToMenu {
		return m, nil
	}

	m.hold.Expire(m.now(), &m.inputFrame)

	result := m.game.Step(m.inputFrame)
	m.gameState = result.State

	// Save score on game over (once)
	if !m.gameState.GameOver {
		m.scoreSaved = false
	} else if !m.scoreSaved {
		if m.store != nil && m.gameState.Score > 0 {
			//nolint:errcheck // Best-effort save, game continues regardless
			m.store.SaveScore(m.game.ID(), m.gameState.Score)
		}
		m.scoreSaved = true
	}

	// Clear input for next frame
	m.inputFrame.Clear()

	return m, tickCmd(m.config.TickRate, m.loop)
}

// leave tears the game down so none of its pending transitions fire.
func (m Model) leave() {
	teardown(m.game)
}

func teardown(game registry.Game) {
	if t, ok := game.(registry.Teardowner); ok {
		t.Teardown()
	}
}

// saveScreenshot saves the current screen to a file.
func (m *Model) saveScreenshot() {
	// Render current state
	m.game.Render(m.screen)

	// Create screenshots directory
	dir := filepath.Join(os.Getenv("HOME"), ".arcade", "screenshots")
	//nolint:errcheck // Best-effort directory creation
	os.MkdirAll(dir, 0o755)

	// Generate filename with timestamp
	timestamp := time.Now().Format("20060102_150405")
	filename := fmt.Sprintf("%s_%s.txt", m.game.ID(), timestamp)
	path := filepath.Join(dir, filename)

	// Save screenshot
	//nolint:errcheck // Best-effort save, game continues regardless
	os.WriteFile(path, []byte(m.screen.String()), 0o600)
}

// View renders the current state to a string for display.
func (m Model) View() string {
	if m.quitting {
		return ""
	}

	// Render game to screen buffer
	m.game.Render(m.screen)

	frame := m.painter.Render(m.screen)
	if !m.showHelp {
		return frame
	}
	return withFooter(frame, m.help.View(m.keys.Keys()))
}

func newHelp(width int) help.Model {
	h := help.New()
	h.Width = width
	return h
}

// toggleHelp cycles the footer through short help, full help and off.
func (m *Model) toggleHelp() {
	switch {
	case !m.showHelp:
		m.showHelp = true
		m.help.ShowAll = false
	case !m.help.ShowAll:
		m.help.ShowAll = true
	default:
		m.showHelp = false
	}
}

// withFooter replaces the bottom rows of a rendered frame with footer.
func withFooter(frame, footer string) string {
	rows := strings.Split(frame, "\n")
	foot := strings.Split(footer, "\n")
	if len(foot) >= len(rows) {
		return footer
	}
	rows = append(rows[:len(rows)-len(foot)], foot...)
	return strings.Join(rows, "\n")
}

// GameState returns the state reported by the last tick.
func (m Model) GameState() core.GameState {
	return m.gameState
}

// IsQuitting returns true if user requested to quit entirely.
func (m Model) IsQuitting() bool {
	return m.quitting
}

// BackToMenu returns true if user requested to go back to menu.
func (m Model) BackToMenu() bool {
	return m.backToMenu
}

// Run starts the Bubble Tea program with the given game.
func Run(game registry.Game, store *storage.Store, cfg core.RuntimeConfig, opts Options) error {
	model := NewModel(game, store, cfg, opts)
	defer teardown(game)

	p := tea.NewProgram(
		model,
		tea.WithAltScreen(),       // Use alternate screen buffer
		tea.WithMouseCellMotion(), // Pointer presses and releases
	)

	log.Debug("starting game", "game", game.ID(), "tick_rate", cfg.TickRate, "hold_window", model.hold.Window())
	_, err := p.Run()
	return err
}
