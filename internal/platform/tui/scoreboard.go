package tui

import (
	"strconv"
	"strings"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/table"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/log"
	"github.com/dustin/go-humanize"

	"github.com/vovakirdan/sky-arcade/internal/registry"
	"github.com/vovakirdan/sky-arcade/internal/storage"
)

const (
	scoreboardRuns = 50 // Runs listed per game
	runIDLen       = 8
)

type scoreboardStyles struct {
	tab       lipgloss.Style
	activeTab lipgloss.Style
	card      lipgloss.Style
	empty     lipgloss.Style
	frame     lipgloss.Style
}

func newScoreboardStyles(r *lipgloss.Renderer) scoreboardStyles {
	if r == nil {
		r = lipgloss.DefaultRenderer()
	}
	return scoreboardStyles{
		tab:       r.NewStyle().Foreground(lipgloss.Color("241")).Padding(0, 1),
		activeTab: r.NewStyle().Bold(true).Foreground(lipgloss.Color("229")).Background(lipgloss.Color("57")).Padding(0, 1),
		card:      r.NewStyle().Bold(true).Foreground(lipgloss.Color("#A3E635")),
		empty:     r.NewStyle().Italic(true).Foreground(lipgloss.Color("241")).Padding(1, 2),
		frame:     r.NewStyle().Border(lipgloss.RoundedBorder()).BorderForeground(lipgloss.Color("240")).Padding(0, 1),
	}
}

// ScoreboardModel shows recorded runs, one game at a time.
type ScoreboardModel struct {
	games  []registry.GameInfo
	game   int
	store  *storage.Store
	runs   []storage.ScoreEntry
	best   int
	table  table.Model
	help   help.Model
	keys   MenuKeyMap
	styles scoreboardStyles
	width  int
	height int

	quitting  bool
	goingBack bool
}

// NewScoreboardModel opens the scoreboard on the first registered game.
func NewScoreboardModel(store *storage.Store, width, height int) ScoreboardModel {
	m := ScoreboardModel{
		games:  registry.List(),
		store:  store,
		help:   help.New(),
		keys:   DefaultMenuKeyMap(),
		styles: newScoreboardStyles(nil),
		width:  width,
		height: height,
	}
	m.table = newRunTable(height)
	m.load()
	return m
}

// WithRenderer styles the scoreboard for another output.
func (m ScoreboardModel) WithRenderer(r *lipgloss.Renderer) ScoreboardModel {
	m.styles = newScoreboardStyles(r)
	return m
}

func newRunTable(height int) table.Model {
	t := table.New(
		table.WithColumns([]table.Column{
			{Title: "#", Width: 4},
			{Title: "Score", Width: 8},
			{Title: "Run", Width: runIDLen},
			{Title: "When", Width: 16},
		}),
		table.WithFocused(true),
		table.WithHeight(max(height-10, 3)),
	)
	s := table.DefaultStyles()
	s.Header = s.Header.
		BorderStyle(lipgloss.NormalBorder()).
		BorderForeground(lipgloss.Color("240")).
		BorderBottom(true).
		Bold(true)
	s.Selected = s.Selected.Foreground(lipgloss.Color("229")).Background(lipgloss.Color("57"))
	t.SetStyles(s)
	return t
}

// load reads the selected game's runs and best score.
func (m *ScoreboardModel) load() {
	m.runs, m.best = nil, 0
	if m.store != nil && len(m.games) > 0 {
		id := m.games[m.game].ID
		runs, err := m.store.TopScores(id, scoreboardRuns)
		if err != nil {
			log.Warn("scoreboard: cannot load scores", "game", id, "err", err)
		}
		m.runs = runs
		m.best = loadBest(m.store, id)
	}

	rows := make([]table.Row, len(m.runs))
	for i, r := range m.runs {
		rows[i] = table.Row{
			strconv.Itoa(i + 1),
			humanize.Comma(int64(r.Score)),
			shortRunID(r.RunID),
			humanize.Time(r.CreatedAt),
		}
	}
	m.table.SetRows(rows)
	m.table.GotoTop()
}

func shortRunID(id string) string {
	if len(id) > runIDLen {
		return id[:runIDLen]
	}
	return id
}

// Init implements tea.Model.
func (m ScoreboardModel) Init() tea.Cmd {
	return nil
}

// Update implements tea.Model.
func (m ScoreboardModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch {
		case key.Matches(msg, m.keys.Quit):
			m.quitting = true
			return m, tea.Quit
		case key.Matches(msg, m.keys.Back):
			m.goingBack = true
			return m, tea.Quit
		case key.Matches(msg, m.keys.Right, m.keys.Scores):
			m.cycle(1)
			return m, nil
		case key.Matches(msg, m.keys.Left):
			m.cycle(-1)
			return m, nil
		}
	case tea.WindowSizeMsg:
		m.width, m.height = msg.Width, msg.Height
		m.help.Width = msg.Width
		m.table.SetHeight(max(msg.Height-10, 3))
		return m, nil
	}

	var cmd tea.Cmd
	m.table, cmd = m.table.Update(msg)
	return m, cmd
}

func (m *ScoreboardModel) cycle(step int) {
	if len(m.games) == 0 {
		return
	}
	m.game = (m.game + step + len(m.games)) % len(m.games)
	m.load()
}

// View implements tea.Model.
func (m ScoreboardModel) View() string {
	if m.quitting || m.goingBack {
		return ""
	}

	tabs := make([]string, len(m.games))
	for i, g := range m.games {
		if i == m.game {
			tabs[i] = m.styles.activeTab.Render(g.Title)
		} else {
			tabs[i] = m.styles.tab.Render(g.Title)
		}
	}

	card := "no best yet"
	if m.best > 0 {
		card = "BEST " + humanize.Comma(int64(m.best))
	}

	body := m.styles.empty.Render("No runs recorded yet.")
	if len(m.runs) > 0 {
		body = m.table.View()
	}

	lines := []string{
		"",
		lipgloss.JoinHorizontal(lipgloss.Top, tabs...),
		"",
		m.styles.card.Render(card),
		m.styles.frame.Render(body),
		m.help.ShortHelpView([]key.Binding{m.keys.Left, m.keys.Right, m.keys.Up, m.keys.Down, m.keys.Back, m.keys.Quit}),
	}

	var b strings.Builder
	for _, line := range lines {
		for _, row := range strings.Split(line, "\n") {
			b.WriteString(centerText(row, m.width))
			b.WriteString("\n")
		}
	}
	return b.String()
}

// IsGoingBack reports whether the player returned to the menu.
func (m ScoreboardModel) IsGoingBack() bool {
	return m.goingBack
}

// IsQuitting reports whether the player asked to quit.
func (m ScoreboardModel) IsQuitting() bool {
	return m.quitting
}

// RunScoreboard shows the scoreboard on the local terminal and reports
// whether the player went back to the menu.
func RunScoreboard(store *storage.Store, width, height int) (goBack bool, err error) {
	final, err := tea.NewProgram(NewScoreboardModel(store, width, height), tea.WithAltScreen()).Run()
	if err != nil {
		return false, err
	}
	m, ok := final.(ScoreboardModel)
	return ok && m.IsGoingBack(), nil
}
