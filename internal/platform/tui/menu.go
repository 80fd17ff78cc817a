package tui

import (
	"strings"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/log"
	"github.com/dustin/go-humanize"

	"github.com/vovakirdan/sky-arcade/internal/core"
	"github.com/vovakirdan/sky-arcade/internal/registry"
	"github.com/vovakirdan/sky-arcade/internal/storage"
)

// MenuItem is one game on the picker.
type MenuItem struct {
	GameID string
	Title  string
	Best   int // Stored best score, 0 when none
}

type menuStyles struct {
	title    lipgloss.Style
	subtitle lipgloss.Style
	row      lipgloss.Style
	cursor   lipgloss.Style
	best     lipgloss.Style
}

func newMenuStyles(r *lipgloss.Renderer) menuStyles {
	if r == nil {
		r = lipgloss.DefaultRenderer()
	}
	return menuStyles{
		title:    r.NewStyle().Bold(true).Foreground(lipgloss.Color("#7DD3FC")),
		subtitle: r.NewStyle().Foreground(lipgloss.Color("241")),
		row:      r.NewStyle().Width(14),
		cursor:   r.NewStyle().Width(14).Bold(true).Foreground(lipgloss.Color("#FACC15")),
		best:     r.NewStyle().Foreground(lipgloss.Color("#A3E635")),
	}
}

// MenuModel is the game picker.
type MenuModel struct {
	items  []MenuItem
	cursor int
	width  int
	height int
	config core.RuntimeConfig
	keys   MenuKeyMap
	help   help.Model
	styles menuStyles

	quitting       bool
	selected       *MenuItem
	openScoreboard bool
}

// NewMenuModel lists every registered game with its stored best score.
func NewMenuModel(store *storage.Store, cfg core.RuntimeConfig) MenuModel {
	games := registry.List()
	items := make([]MenuItem, 0, len(games))
	for _, g := range games {
		items = append(items, MenuItem{
			GameID: g.ID,
			Title:  g.Title,
			Best:   loadBest(store, g.ID),
		})
	}

	return MenuModel{
		items:  items,
		width:  cfg.ScreenW,
		height: cfg.ScreenH,
		config: cfg,
		keys:   DefaultMenuKeyMap(),
		help:   help.New(),
		styles: newMenuStyles(nil),
	}
}

func loadBest(store *storage.Store, gameID string) int {
	if store == nil {
		return 0
	}
	best, err := store.BestScore(gameID)
	if err != nil {
		log.Warn("menu: cannot read best score", "game", gameID, "err", err)
	}
	return best
}

// WithRenderer styles the menu for another output, such as an SSH session.
func (m MenuModel) WithRenderer(r *lipgloss.Renderer) MenuModel {
	m.styles = newMenuStyles(r)
	return m
}

// Init implements tea.Model.
func (m MenuModel) Init() tea.Cmd {
	return nil
}

// Update implements tea.Model.
func (m MenuModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		return m.handleKey(msg)
	case tea.WindowSizeMsg:
		m.width, m.height = msg.Width, msg.Height
		m.config.ScreenW, m.config.ScreenH = msg.Width, msg.Height
		m.help.Width = msg.Width
	}
	return m, nil
}

func (m MenuModel) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, m.keys.Quit):
		m.quitting = true
		return m, tea.Quit
	case key.Matches(msg, m.keys.Up):
		if m.cursor > 0 {
			m.cursor--
		}
	case key.Matches(msg, m.keys.Down):
		if m.cursor < len(m.items)-1 {
			m.cursor++
		}
	case key.Matches(msg, m.keys.Select):
		if len(m.items) == 0 {
			return m, nil
		}
		item := m.items[m.cursor]
		m.selected = &item
		return m, tea.Quit
	case key.Matches(msg, m.keys.Scores):
		m.openScoreboard = true
		return m, tea.Quit
	}
	return m, nil
}

// View implements tea.Model.
func (m MenuModel) View() string {
	if m.quitting {
		return ""
	}

	lines := []string{
		"",
		m.styles.title.Render("S K Y   A R C A D E"),
		m.styles.subtitle.Render("pick a game"),
		"",
	}
	for i, item := range m.items {
		name := m.styles.row.Render("  " + item.Title)
		if i == m.cursor {
			name = m.styles.cursor.Render("▸ " + item.Title)
		}
		best := m.styles.subtitle.Render("no runs yet")
		if item.Best > 0 {
			best = m.styles.best.Render("best " + humanize.Comma(int64(item.Best)))
		}
		lines = append(lines, name+"  "+best)
	}
	lines = append(lines, "", m.help.ShortHelpView(m.keys.ShortHelp()))

	var b strings.Builder
	for _, line := range lines {
		b.WriteString(centerText(line, m.width))
		b.WriteString("\n")
	}
	return b.String()
}

// Selected returns the chosen game, or nil.
func (m MenuModel) Selected() *MenuItem {
	return m.selected
}

// IsQuitting reports whether the player asked to quit.
func (m MenuModel) IsQuitting() bool {
	return m.quitting
}

// WantsScoreboard reports whether the player opened the scoreboard.
func (m MenuModel) WantsScoreboard() bool {
	return m.openScoreboard
}

// Config returns the runtime config, resized to the last window size.
func (m MenuModel) Config() core.RuntimeConfig {
	return m.config
}

// centerText pads styled text so it sits in the middle of width cells.
func centerText(text string, width int) string {
	w := lipgloss.Width(text)
	if w >= width {
		return text
	}
	return strings.Repeat(" ", (width-w)/2) + text
}

// MenuResult is what the standalone picker decided.
type MenuResult struct {
	GameID          string
	Config          core.RuntimeConfig
	WantsScoreboard bool
	Quit            bool
}

// RunMenu shows the picker on the local terminal.
func RunMenu(store *storage.Store, cfg core.RuntimeConfig) (MenuResult, error) {
	p := tea.NewProgram(NewMenuModel(store, cfg), tea.WithAltScreen())

	final, err := p.Run()
	if err != nil {
		return MenuResult{Config: cfg}, err
	}
	m, ok := final.(MenuModel)
	if !ok {
		return MenuResult{Config: cfg, Quit: true}, nil
	}

	result := MenuResult{Config: m.Config()}
	switch {
	case m.WantsScoreboard():
		result.WantsScoreboard = true
	case m.Selected() != nil:
		result.GameID = m.Selected().GameID
	default:
		result.Quit = true
	}
	return result, nil
}
