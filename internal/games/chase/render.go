package chase

import (
	"fmt"
	"math"
	"strings"

	"github.com/vovakirdan/mazechase/internal/core"
)

const (
	cellW     = 2 // screen columns per grid cell
	hudHeight = 2
)

// Render draws the maze, entities, HUD and any overlay.
func (g *Game) Render(dst *core.Screen) {
	dst.Clear()
	g.renderHUD(dst)

	mapW, mapH := g.grid.Width()*cellW, g.grid.Height()
	if dst.Width() < mapW || dst.Height() < mapH+hudHeight {
		g.renderOverlay(dst, "Window too small", fmt.Sprintf("Need %dx%d", mapW, mapH+hudHeight))
		return
	}
	ox := (dst.Width() - mapW) / 2
	oy := hudHeight

	g.renderMaze(dst, ox, oy)
	g.renderGhosts(dst, ox, oy)
	g.renderPlayer(dst, ox, oy)

	switch g.s.phase {
	case PhaseWon:
		g.renderOverlay(dst, "You Win!", fmt.Sprintf("Final Score: %d", g.s.score))
	case PhaseGameOver:
		g.renderOverlay(dst, "Game Over", "Press R to restart")
	case PhasePaused:
		if g.player.Dir == DirNone && g.player.Next == DirNone {
			g.renderOverlay(dst, "Ready!", "Press an arrow key to start")
		} else {
			g.renderOverlay(dst, "Paused", "Press P to continue")
		}
	}
}

// renderHUD draws the top status bar.
func (g *Game) renderHUD(dst *core.Screen) {
	name := "PAC"
	if g.playerName != "" {
		name = g.playerName
	}
	hud := fmt.Sprintf(" %s-MAN  Score: %d  Lives: %s", name, g.s.score, strings.Repeat("♥", g.s.lives))
	dst.DrawTextColored(0, 0, hud, core.ColorYellow)

	if g.s.power > 0 {
		status := fmt.Sprintf("POWER %.1fs ", g.seconds(g.s.power))
		if g.s.freeze > 0 {
			status = fmt.Sprintf("FREEZE %.1fs  ", g.seconds(g.s.freeze)) + status
		}
		dst.DrawTextColored(dst.Width()-len([]rune(status)), 0, status, core.ColorCyan)
	}

	for x := range dst.Width() {
		dst.Set(x, 1, '─')
	}
}

func (g *Game) seconds(ticks int) float64 {
	return float64(ticks) * g.tickDuration().Seconds()
}

func (g *Game) renderMaze(dst *core.Screen, ox, oy int) {
	for y := range g.grid.Height() {
		for x := range g.grid.Width() {
			sx, sy := ox+x*cellW, oy+y
			switch g.grid.TileAt(x, y) {
			case TileWall:
				dst.SetColored(sx, sy, '█', core.ColorBlue)
				dst.SetColored(sx+1, sy, '█', core.ColorBlue)
			case TilePellet:
				dst.SetColored(sx, sy, '·', core.ColorWhite)
			case TilePowerPellet:
				dst.SetColored(sx, sy, '●', core.ColorPink)
			case TileBonus:
				dst.SetColored(sx, sy, '$', core.ColorYellow)
			}
		}
	}
}

// screenPos maps a continuous position to a screen cell. Horizontal motion
// gets half-cell resolution from the doubled columns.
func screenPos(p Vec, ox, oy int) (int, int) {
	return ox + int(math.Round(p.X*cellW)), oy + int(math.Round(p.Y))
}

func (g *Game) renderGhosts(dst *core.Screen, ox, oy int) {
	for _, gh := range g.ghosts {
		x, y := screenPos(gh.Pos, ox, oy)
		switch {
		case gh.Eaten:
			dst.SetColored(x, y, '"', core.ColorGray)
		case gh.Scared:
			c := core.ColorBrightBlue
			// blink during the last two seconds
			if float64(g.s.power) < 2/g.tickDuration().Seconds() && g.tick%20 < 10 {
				c = core.ColorWhite
			}
			dst.SetColored(x, y, 'Ω', c)
		default:
			dst.SetColored(x, y, 'Ω', core.ParseColor(gh.Color))
		}
	}
}

func (g *Game) renderPlayer(dst *core.Screen, ox, oy int) {
	x, y := screenPos(g.player.Pos, ox, oy)
	glyph := 'O'
	switch g.player.Dir {
	case DirUp:
		glyph = 'V'
	case DirDown:
		glyph = 'Λ'
	case DirLeft:
		glyph = '>'
	case DirRight:
		glyph = '<'
	}
	dst.SetColored(x, y, glyph, core.ColorYellow)
}

// renderOverlay draws a centered two-line message box.
func (g *Game) renderOverlay(dst *core.Screen, title, subtitle string) {
	w := max(len([]rune(title)), len([]rune(subtitle))) + 4
	h := 4
	x := (dst.Width() - w) / 2
	y := (dst.Height() - h) / 2
	dst.DrawBox(x, y, w, h)
	dst.DrawTextCentered(y+1, title, core.ColorYellow)
	dst.DrawTextCentered(y+2, subtitle, core.ColorWhite)
}
