package knight

import (
	"fmt"
	"math"
	"strings"

	"github.com/vovakirdan/knight-runner/internal/core"
	"github.com/vovakirdan/knight-runner/internal/sim"
)

// Visual characters for rendering
const (
	KnightChar  = '█'
	HelmChar    = '▀'
	FireChar    = '▲'
	EmberChar   = '^'
	GroundChar  = '▒'
	TextureChar = '░'
	SurfaceChar = '═'
	HeartChar   = '♥'
	BarFull     = '■'
	BarEmpty    = '·'
)

// Render draws the current game state to the screen.
// Row 0 is the HUD, the bottom row is the charge bar and the world fills the rest.
func (g *Game) Render(dst *core.Screen) {
	dst.Clear()
	if g.sim == nil {
		return
	}

	snap := g.snap
	world := g.cfg.World
	area := core.NewRect(0, 1, dst.Width(), max(1, dst.Height()-2))
	vp := core.NewViewport(world.Width, world.Height, area)

	g.drawGround(dst, vp, snap)
	for _, o := range snap.Obstacles {
		if o.Kind == sim.Fire {
			g.drawFire(dst, vp, o, snap.Tick)
		}
	}
	g.drawKnight(dst, vp, snap.Player)

	g.drawHUD(dst, snap)
	g.drawChargeBar(dst, snap.Player)

	switch {
	case g.paused:
		drawCenteredMessage(dst, "PAUSED", "Press P to resume")
	case snap.Phase == sim.PhaseMenu:
		drawCenteredMessage(dst, "KNIGHT RUNNER", "Space: charge/jump  Up: quick jump  Enter: start")
	case snap.Phase == sim.PhaseLevelComplete:
		drawCenteredMessage(dst, fmt.Sprintf("LEVEL %d COMPLETE", snap.Level+1),
			fmt.Sprintf("Score: %d  |  Press Enter for %s", snap.TotalScore, g.cfg.Level(snap.Level+1).Name))
	case snap.Phase == sim.PhaseGameOver:
		drawCenteredMessage(dst, "GAME OVER", fmt.Sprintf("Score: %d  |  Press R to retry the level", snap.TotalScore))
	case snap.Phase == sim.PhaseAllComplete:
		drawCenteredMessage(dst, "ALL LEVELS COMPLETE", fmt.Sprintf("Total: %d  |  Press R to play again", snap.TotalScore))
	}
}

// drawGround fills everything below the ground line, leaving holes for pits.
// Texture marks scroll with the ground offset.
func (g *Game) drawGround(dst *core.Screen, vp core.Viewport, snap sim.Snapshot) {
	world := g.cfg.World
	ground := vp.Rect(0, world.GroundY, world.Width, world.Height-world.GroundY).Clip(vp.Area())
	dst.DrawRect(ground, GroundChar, core.ColorBrown)
	dst.DrawHLine(ground.X, ground.Y, ground.W, SurfaceChar, core.ColorBrown)

	if size := world.GroundTextureSize; size > 0 {
		for x := -snap.GroundOffset; x < world.Width; x += size {
			cx, _ := vp.Cell(x, world.GroundY)
			for y := ground.Y + 1; y < ground.Bottom(); y += 2 {
				dst.SetCell(cx, y, TextureChar, core.ColorBrown)
			}
		}
	}

	for _, o := range snap.Obstacles {
		if o.Kind != sim.Pit {
			continue
		}
		hole := vp.Rect(o.X, o.Y, o.Width, world.Height-o.Y).Clip(vp.Area())
		dst.DrawRect(hole, ' ', core.ColorDefault)
	}
}

func (g *Game) drawFire(dst *core.Screen, vp core.Viewport, o sim.Obstacle, tick uint64) {
	r := vp.Rect(o.X, o.Y, o.Width, o.Height).Clip(vp.Area())
	dst.DrawRect(r, FireChar, core.ColorOrange)

	// Flickering tips
	for x := r.X; x < r.Right(); x++ {
		if (uint64(x)+tick/6)%2 == 0 {
			dst.SetCell(x, r.Y, EmberChar, core.ColorBrightRed)
		} else {
			dst.SetCell(x, r.Y, FireChar, core.ColorBrightYellow)
		}
	}
}

// drawKnight renders the player box. The body glows while charging.
func (g *Game) drawKnight(dst *core.Screen, vp core.Viewport, p sim.PlayerView) {
	r := vp.Rect(p.X, p.Y-p.Height, p.Width, p.Height).Clip(vp.Area())
	if r.Empty() {
		return
	}

	color := core.ColorSilver
	if p.Charging {
		color = core.ColorYellow
	}
	dst.DrawRect(r, KnightChar, color)
	dst.DrawHLine(r.X, r.Y, r.W, HelmChar, core.ColorGray)
}

func (g *Game) drawHUD(dst *core.Screen, snap sim.Snapshot) {
	left := fmt.Sprintf(" L%d %s  Score: %d/%d  Total: %d ",
		snap.Level+1, snap.LevelName, snap.Score, snap.TargetScore, snap.TotalScore)
	dst.DrawTextColor(1, 0, left, core.ColorWhite)

	lives := strings.Repeat(string(HeartChar), max(0, snap.Lives))
	x := dst.Width() - snap.MaxLives - 2
	dst.DrawTextColor(x, 0, lives, core.ColorRed)
}

func (g *Game) drawChargeBar(dst *core.Screen, p sim.PlayerView) {
	y := dst.Height() - 1
	label := " Charge "
	dst.DrawTextColor(1, y, label, core.ColorGray)

	x := 1 + len(label)
	width := max(0, min(30, dst.Width()-x-2))
	filled := int(math.Round(p.ChargePower * float64(width)))
	for i := range width {
		if i < filled {
			dst.SetCell(x+i, y, BarFull, core.ColorYellow)
		} else {
			dst.SetCell(x+i, y, BarEmpty, core.ColorGray)
		}
	}
}

// drawCenteredMessage draws a message box in the center of the screen.
func drawCenteredMessage(dst *core.Screen, title, subtitle string) {
	w := dst.Width()
	h := dst.Height()

	boxW := max(len(title), len(subtitle)) + 4
	boxH := 5
	box := core.NewRect((w-boxW)/2, (h-boxH)/2, boxW, boxH)

	dst.DrawRect(box, ' ', core.ColorDefault)
	dst.DrawBox(box, core.ColorWhite)

	dst.DrawTextColor(box.X+(boxW-len(title))/2, box.Y+1, title, core.ColorBrightYellow)
	dst.DrawTextColor(box.X+(boxW-len(subtitle))/2, box.Y+3, subtitle, core.ColorWhite)
}
