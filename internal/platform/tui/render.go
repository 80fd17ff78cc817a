package tui

import (
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/vovakirdan/sky-arcade/internal/core"
)

// cellColors is the pair of colors that decides how a run of cells is styled.
type cellColors struct {
	fg, bg core.Color
}

// Painter converts Screen buffers into styled strings. Styles are cached per
// color pair, so a Painter belongs to a single program.
type Painter struct {
	renderer *lipgloss.Renderer
	styles   map[cellColors]lipgloss.Style
}

// NewPainter creates a painter for the given renderer.
// A nil renderer uses the lipgloss default (the local terminal).
func NewPainter(r *lipgloss.Renderer) *Painter {
	if r == nil {
		r = lipgloss.DefaultRenderer()
	}
	return &Painter{
		renderer: r,
		styles:   make(map[cellColors]lipgloss.Style),
	}
}

func (p *Painter) style(c cellColors) lipgloss.Style {
	if s, ok := p.styles[c]; ok {
		return s
	}
	s := p.renderer.NewStyle()
	if !c.fg.IsDefault() {
		s = s.Foreground(lipgloss.Color(c.fg.Hex()))
	}
	if !c.bg.IsDefault() {
		s = s.Background(lipgloss.Color(c.bg.Hex()))
	}
	p.styles[c] = s
	return s
}

// Render converts a Screen buffer to a styled string for display.
// Groups adjacent cells with the same colors to minimize ANSI escape sequences.
func (p *Painter) Render(s *core.Screen) string {
	var sb strings.Builder
	// Pre-allocate with extra space for ANSI codes
	sb.Grow(s.Width()*s.Height()*4 + s.Height())

	var run strings.Builder
	for y := 0; y < s.Height(); y++ {
		if y > 0 {
			sb.WriteRune('\n')
		}

		x := 0
		for x < s.Width() {
			cell := s.GetCell(x, y)
			colors := cellColors{cell.Fg, cell.Bg}

			run.Reset()
			for x < s.Width() {
				cell = s.GetCell(x, y)
				if cell.Fg != colors.fg || cell.Bg != colors.bg {
					break
				}
				run.WriteRune(cell.Rune)
				x++
			}

			if colors.fg.IsDefault() && colors.bg.IsDefault() {
				sb.WriteString(run.String())
				continue
			}
			sb.WriteString(p.style(colors).Render(run.String()))
		}
	}
	return sb.String()
}

var defaultPainter = NewPainter(nil)

// RenderScreen renders with the local terminal's painter.
func RenderScreen(s *core.Screen) string {
	return defaultPainter.Render(s)
}
