package matchpepe

import (
	"fmt"
	"math"
	"strings"
	"time"

	"github.com/vovakirdan/sky-arcade/internal/core"
)

const (
	maxTileW = 9
	maxTileH = 4
	tileGap  = 1
	hudRows  = 3 // Title, timer bar, rule
)

var (
	textColor   = core.ColorBrightWhite
	dimColor    = core.ColorGray
	cursorColor = core.ColorBrightYellow
	anchorColor = core.ColorBrightWhite
	timerColor  = core.ColorBrightGreen
	urgentColor = core.ColorBrightRed
	panelColor  = core.RGB(20, 20, 20)
)

// shakeCells is the horizontal board offset over the time-up transition.
var shakeCells = []int{0, -1, 1, -2, 2, -2, 2, -2, 1, -1, 0}

// boardLayout places the grid of tiles on the screen.
type boardLayout struct {
	tileW, tileH int
	left, top    int
	n            int
}

// layoutBoard fits an n x n grid below the HUD, as large as the screen
// allows up to the maximum tile size.
func layoutBoard(screenW, screenH, n int) boardLayout {
	availW := screenW - 2
	availH := screenH - hudRows - 2
	tileW := core.Clamp((availW+tileGap)/n-tileGap, 3, maxTileW)
	tileH := core.Clamp((availH+tileGap)/n-tileGap, 1, maxTileH)

	w := n*(tileW+tileGap) - tileGap
	h := n*(tileH+tileGap) - tileGap
	return boardLayout{
		tileW: tileW,
		tileH: tileH,
		left:  (screenW - w) / 2,
		top:   hudRows + core.Max(0, (screenH-hudRows-h)/2),
		n:     n,
	}
}

// tileRect returns the screen rectangle of cell i.
func (l boardLayout) tileRect(i int) core.Rect {
	row, col := i/l.n, i%l.n
	return core.NewRect(l.left+col*(l.tileW+tileGap), l.top+row*(l.tileH+tileGap), l.tileW, l.tileH)
}

// cellAt maps a screen position to the cell under it.
func (g *Game) cellAt(x, y int) (int, bool) {
	if g.board == nil {
		return 0, false
	}
	l := layoutBoard(g.runtime.ScreenW, g.runtime.ScreenH, g.board.Size())
	for i := 0; i < g.board.Len(); i++ {
		if l.tileRect(i).Contains(x, y) {
			return i, true
		}
	}
	return 0, false
}

// Render draws the current game state to the screen.
func (g *Game) Render(dst *core.Screen) {
	dst.Clear()
	if g.board == nil {
		return
	}

	if g.phase == PhaseIdle {
		g.drawIdle(dst)
		return
	}

	l := layoutBoard(dst.Width(), dst.Height(), g.board.Size())
	if g.phase == PhaseShake {
		p := g.phaseProgress(g.cfg.Timing.Shake())
		l.left += shakeCells[int(math.Min(p*float64(len(shakeCells)-1), float64(len(shakeCells)-1)))]
	}

	g.drawHUD(dst)
	g.drawBoard(dst, l)

	if g.paused {
		drawCenteredMessage(dst, "PAUSED", "Press P to resume")
	}
}

// drawHUD writes score, moves left, best and the round timer above the board.
func (g *Game) drawHUD(dst *core.Screen) {
	w := dst.Width()
	dst.DrawTextFg(1, 0, fmt.Sprintf("SCORE %d", g.score), textColor)
	best := fmt.Sprintf("BEST %d", g.best)
	dst.DrawTextFg(w-len(best)-1, 0, best, dimColor)
	dst.DrawTextCentered(0, fmt.Sprintf("MOVES %d", g.board.MovesLeft()), dimColor)

	label := fmt.Sprintf("%4.1fs ", g.timer.Seconds())
	barW := core.Max(0, w-len(label)-2)
	frac := 0.0
	if g.maxTime > 0 {
		frac = core.ClampF(float64(g.timer)/float64(g.maxTime), 0, 1)
	}
	filled := int(math.Round(frac * float64(barW)))
	color := timerColor
	if g.timer < 3*time.Second {
		color = urgentColor
	}
	dst.DrawTextFg(1, 1, label, textColor)
	dst.DrawTextFg(1+len(label), 1, strings.Repeat("█", filled), color)
	dst.DrawTextFg(1+len(label)+filled, 1, strings.Repeat("░", barW-filled), dimColor)
	dst.DrawHLine(1, 2, w-2, '─')
}

// drawBoard paints every tile, marking the anchor and the cursor.
func (g *Game) drawBoard(dst *core.Screen, l boardLayout) {
	pulse := 0.0
	if g.phase == PhaseWinEffect {
		pulse = math.Sin(math.Pi * g.phaseProgress(g.cfg.Timing.WinEffect()))
	}

	for i := 0; i < g.board.Len(); i++ {
		t := g.board.Tile(i)
		r := l.tileRect(i)
		bg := t.Color.Blend(core.ColorBrightWhite, 0.5*pulse)
		dst.FillBg(r, bg)
		dst.DrawRect(r, ' ')

		cx, cy := r.Center()
		dst.SetFg(cx, cy, t.Glyph, textColor)

		if i == 0 {
			dst.SetFg(r.X, r.Y, '★', anchorColor)
		}
		if i == g.cursor && g.phase == PhasePlaying {
			dst.SetFg(r.X, cy, '▶', cursorColor)
			dst.SetFg(r.Right()-1, cy, '◀', cursorColor)
		}
	}

	hint := "←↑↓→ move · Space select · click a tile · P pause · Q quit"
	if y := l.top + l.n*(l.tileH+tileGap); y < dst.Height() {
		dst.DrawTextCentered(y, hint, dimColor)
	}
}

// drawIdle shows the start screen.
func (g *Game) drawIdle(dst *core.Screen) {
	dst.FillBg(core.NewRect(0, 0, dst.Width(), dst.Height()), panelColor)
	midY := dst.Height() / 2
	dst.DrawTextCentered(midY-3, "MATCHPEPE", textColor)
	dst.DrawTextCentered(midY-1, "Match every tile to the ★ tile before time runs out.", textColor)
	dst.DrawTextCentered(midY+1, fmt.Sprintf("HIGHSCORE: %d", g.best), textColor)
	dst.DrawTextCentered(midY+3, "Space to start · Q to quit", dimColor)
}

// drawCenteredMessage draws a message box in the center of the screen.
func drawCenteredMessage(dst *core.Screen, title, subtitle string) {
	w := dst.Width()
	h := dst.Height()

	boxW := core.Max(len(title), len(subtitle)) + 4
	boxH := 5
	boxX := (w - boxW) / 2
	boxY := (h - boxH) / 2

	box := core.NewRect(boxX, boxY, boxW, boxH)
	dst.FillBg(box, panelColor)
	dst.DrawRect(box, ' ')
	dst.DrawBox(box)

	dst.DrawTextFg(boxX+(boxW-len(title))/2, boxY+1, title, textColor)
	dst.DrawTextFg(boxX+(boxW-len(subtitle))/2, boxY+3, subtitle, dimColor)
}
