package higher

import (
	"fmt"
	"math"

	"github.com/vovakirdan/sky-arcade/internal/config"
	"github.com/vovakirdan/sky-arcade/internal/core"
)

// Cells are drawn as upper half blocks: the foreground paints the top
// half and the background the bottom half, so each cell holds two pixels
// of the raster.
const halfBlock = '▀'

var (
	textColor  = core.ColorBrightWhite
	dimColor   = core.ColorGray
	idleShade  = 0.75 // Darkening behind the idle overlay
	pauseShade = 0.5
)

// theme holds the parsed colors of the scene.
type theme struct {
	base, top, bottom core.Color
	star, player      core.Color
}

func newTheme(cfg config.HigherConfig) theme {
	bg := cfg.Background
	return theme{
		base:   hexOr(bg.Base, core.ColorBlack),
		top:    hexOr(bg.Top, core.ColorBlue),
		bottom: hexOr(bg.Bottom, core.ColorCyan),
		star:   hexOr(bg.Star, core.ColorBrightWhite),
		player: hexOr(cfg.Player.Color, core.ColorBlack),
	}
}

// layout places the logical pixel surface on the terminal.
type layout struct {
	pxW, pxH   float64 // Surface size in logical pixels
	cols, rows int     // Surface size in cells
	left, top  int     // Surface origin in cells
	cellW      float64 // Logical pixels per column
	cellH      float64 // Logical pixels per row
}

// newLayout derives the surface from the terminal size. The viewport is the
// terminal measured in logical pixels; the surface is capped in width and
// takes a fixed share of the height, centered on screen.
func newLayout(cc config.CanvasConfig, screenW, screenH int) layout {
	if screenW <= 0 || screenH <= 0 {
		return layout{cellW: cc.CellWidth, cellH: cc.CellHeight}
	}
	vpW := float64(screenW) * cc.CellWidth
	vpH := float64(screenH) * cc.CellHeight

	l := layout{
		pxW:   math.Min(vpW, cc.MaxWidth),
		pxH:   vpH * cc.HeightRatio,
		cellW: cc.CellWidth,
		cellH: cc.CellHeight,
	}
	l.cols = core.Min(screenW, int(math.Ceil(l.pxW/cc.CellWidth)))
	l.rows = core.Min(screenH, int(math.Ceil(l.pxH/cc.CellHeight)))
	l.left = (screenW - l.cols) / 2
	l.top = (screenH - l.rows) / 2
	return l
}

// raster is a pixel buffer at half-cell resolution.
type raster struct {
	w, h   int     // Size in raster pixels
	sx, sy float64 // Surface pixels per raster pixel
	px     []core.Color
}

func newRaster(l layout) *raster {
	r := &raster{w: l.cols, h: l.rows * 2, sx: l.cellW, sy: l.cellH / 2}
	r.px = make([]core.Color, r.w*r.h)
	return r
}

func (r *raster) fits(l layout) bool {
	return r.w == l.cols && r.h == l.rows*2 && r.sx == l.cellW && r.sy == l.cellH/2
}

// gradient fills the raster with a vertical gradient over base. Color and
// opacity both interpolate from top to bottom.
func (r *raster) gradient(base, top, bottom core.Color, topAlpha, bottomAlpha float64) {
	for j := 0; j < r.h; j++ {
		t := (float64(j) + 0.5) / float64(r.h)
		c := base.Blend(core.Lerp(top, bottom, t), topAlpha+(bottomAlpha-topAlpha)*t)
		row := r.px[j*r.w : (j+1)*r.w]
		for i := range row {
			row[i] = c
		}
	}
}

// dot blends a color into the raster pixel containing a surface point.
func (r *raster) dot(x, y float64, c core.Color, alpha float64) {
	i := int(math.Floor(x / r.sx))
	j := int(math.Floor(y / r.sy))
	if i < 0 || i >= r.w || j < 0 || j >= r.h {
		return
	}
	r.px[j*r.w+i] = r.px[j*r.w+i].Blend(c, alpha)
}

// sprite blends c into every raster pixel whose center falls inside b and
// on the mask, which is sampled in unit coordinates of b.
func (r *raster) sprite(b core.Box, mask func(u, v float64) bool, c core.Color, alpha float64) {
	if b.W <= 0 || b.H <= 0 {
		return
	}
	i0 := core.Max(0, int(math.Floor(b.X/r.sx)))
	i1 := core.Min(r.w-1, int(math.Ceil((b.X+b.W)/r.sx)))
	j0 := core.Max(0, int(math.Floor(b.Y/r.sy)))
	j1 := core.Min(r.h-1, int(math.Ceil((b.Y+b.H)/r.sy)))
	for j := j0; j <= j1; j++ {
		v := ((float64(j)+0.5)*r.sy - b.Y) / b.H
		for i := i0; i <= i1; i++ {
			u := ((float64(i)+0.5)*r.sx - b.X) / b.W
			if mask(u, v) {
				r.px[j*r.w+i] = r.px[j*r.w+i].Blend(c, alpha)
			}
		}
	}
}

// shade blends c over the whole raster.
func (r *raster) shade(c core.Color, alpha float64) {
	for i := range r.px {
		r.px[i] = r.px[i].Blend(c, alpha)
	}
}

// blit copies the raster to the screen at (x0, y0) in cells.
func (r *raster) blit(dst *core.Screen, x0, y0 int) {
	for row := 0; row < r.h/2; row++ {
		for col := 0; col < r.w; col++ {
			dst.SetCell(x0+col, y0+row, core.Cell{
				Rune: halfBlock,
				Fg:   r.px[(2*row)*r.w+col],
				Bg:   r.px[(2*row+1)*r.w+col],
			})
		}
	}
}

// Render draws the current game state to the screen.
func (g *Game) Render(dst *core.Screen) {
	dst.Clear()
	l := g.layout
	if g.sim == nil || l.cols <= 0 || l.rows <= 0 {
		return
	}
	if g.raster == nil || !g.raster.fits(l) {
		g.raster = newRaster(l)
	}
	r := g.raster

	g.drawScene(r)

	switch g.phase {
	case PhaseIdle:
		r.shade(core.ColorBlack, idleShade)
	case PhaseStartAnimation:
		r.shade(core.ColorBlack, idleShade)
		g.drawZoom(r)
	}
	if g.paused {
		r.shade(core.ColorBlack, pauseShade)
	}

	x0 := l.left
	if g.phase == PhaseGameOver {
		x0 += int(math.Round(shakeOffset(g.phaseProgress(g.cfg.Timing.GameOver())) / l.cellW))
	}
	r.blit(dst, x0, l.top)

	g.drawHUD(dst, x0)
}

// drawScene paints the sky, stars, obstacles and player, in that order.
func (g *Game) drawScene(r *raster) {
	s := g.sim
	vis := s.difficulty.Visibility

	r.gradient(g.theme.base, g.theme.top, g.theme.bottom, s.gradientAlpha, g.cfg.Background.BottomAlpha)

	for _, st := range s.stars {
		r.dot(st.X, st.Y, g.theme.star, vis*(0.4+st.Size/3))
	}

	for _, o := range s.obstacles {
		r.sprite(o.Box(), arrowDown, o.Color, vis)
	}

	r.sprite(s.player.Box(), arrowUp, g.playerColor(), 1)
}

// playerColor is the arrow color with the brightness tint laid over it at
// half opacity once the score has earned any.
func (g *Game) playerColor() core.Color {
	b := g.sim.player.Brightness
	if b <= 0 {
		return g.theme.player
	}
	return g.theme.player.Blend(core.RGB(uint8(b), uint8(b), uint8(b)), 0.5)
}

// drawZoom paints the start animation arrow in the middle of the surface.
func (g *Game) drawZoom(r *raster) {
	scale, alpha := zoomFrame(g.phaseProgress(g.cfg.Timing.StartAnimation()))
	if alpha <= 0 {
		return
	}
	w, h := g.sim.Size()
	size := g.cfg.Player.Width * scale
	box := core.Box{X: w/2 - size/2, Y: h/2 - size/2, W: size, H: size}
	r.sprite(box, arrowUp, g.theme.star, alpha)
}

// drawHUD writes text over the surface for the current phase.
func (g *Game) drawHUD(dst *core.Screen, x0 int) {
	l := g.layout
	midY := l.top + l.rows/2
	center := func(y int, text string, c core.Color) {
		x := x0 + (l.cols-len([]rune(text)))/2
		dst.DrawTextFg(x, y, text, c)
	}

	switch g.phase {
	case PhaseRunning, PhaseGameOver:
		score := fmt.Sprintf("%d", g.sim.Score())
		dst.DrawTextFg(x0+l.cols-len(score)-1, l.top, score, textColor)
		dst.DrawTextFg(x0+1, l.top, fmt.Sprintf("LV %d", g.sim.Level()), dimColor)
	case PhaseIdle:
		center(midY-3, "▶  PLAY", textColor)
		center(midY-1, fmt.Sprintf("HIGHSCORE: %d", g.best), textColor)
		if g.lastScore > 0 {
			center(midY, fmt.Sprintf("LAST: %d", g.lastScore), dimColor)
		}
		center(midY+2, "Hold ←/→ or click a side to move.", textColor)
		center(midY+3, "The longer you hold, the faster you move.", textColor)
		center(midY+5, "Space to start · Q to quit", dimColor)
	}

	if g.paused {
		center(midY, "PAUSED", textColor)
		center(midY+2, "Press P to resume", dimColor)
	}
}

// hexOr parses a config color, falling back when it is malformed.
func hexOr(s string, fallback core.Color) core.Color {
	c, err := core.ParseHex(s)
	if err != nil {
		return fallback
	}
	return c
}
