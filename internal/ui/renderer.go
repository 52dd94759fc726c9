package ui

import (
	"fmt"

	"github.com/gdamore/tcell/v2"

	"github.com/samdwyer/skirmish/internal/entity"
	"github.com/samdwyer/skirmish/internal/game"
	"github.com/samdwyer/skirmish/internal/world"
)

// logLines is how many messages are shown under the map.
const logLines = 6

// HUD is the interface state drawn around the board.
type HUD struct {
	Cursor   world.Coord
	Forecast []string
	Log      *MessageLog
	Status   string
}

// Renderer handles drawing the board to the screen.
type Renderer struct {
	screen *Screen
}

// NewRenderer creates a new renderer for the given screen.
func NewRenderer(screen *Screen) *Renderer {
	return &Renderer{screen: screen}
}

// Render draws the map, units, highlights and side panel.
func (r *Renderer) Render(b *game.Board, hud HUD) {
	r.screen.Clear()

	highlight := world.NewCoordSet(b.Highlighted())
	hl := r.highlightColor(b)

	for _, tile := range b.Grid.Tiles() {
		style := r.getTileStyle(tile.Terrain)
		if highlight.Contains(tile.Pos) {
			style = style.Background(hl)
		}
		ch := tile.Terrain.Rune()
		if u := b.Units.Get(tile.Occupant); u != nil {
			ch = u.Symbol
			style = r.unitStyle(b, u, style)
		}
		if tile.Pos == hud.Cursor {
			style = style.Reverse(true)
		}
		r.screen.SetContent(tile.Pos.X, tile.Pos.Y, ch, style)
	}

	r.renderPanel(b, hud, b.Grid.Width+2)

	y := b.Grid.Height + 1
	if hud.Status != "" {
		r.RenderMessage(hud.Status, y)
	}
	if hud.Log != nil {
		for i, line := range hud.Log.Last(logLines) {
			r.RenderMessage(line, y+1+i)
		}
	}

	r.screen.Show()
}

// getTileStyle returns the appropriate style for a terrain type.
func (r *Renderer) getTileStyle(t world.Terrain) tcell.Style {
	switch t {
	case world.TerrainWall:
		return tcell.StyleDefault.Foreground(tcell.ColorDarkGray)
	case world.TerrainWater:
		return tcell.StyleDefault.Foreground(tcell.ColorBlue)
	case world.TerrainForest:
		return tcell.StyleDefault.Foreground(tcell.ColorGreen)
	case world.TerrainMountain:
		return tcell.StyleDefault.Foreground(tcell.ColorOlive)
	case world.TerrainFort:
		return tcell.StyleDefault.Foreground(tcell.ColorYellow)
	case world.TerrainPlain:
		return tcell.StyleDefault.Foreground(tcell.ColorGray)
	default:
		return tcell.StyleDefault
	}
}

func (r *Renderer) unitStyle(b *game.Board, u *entity.Unit, base tcell.Style) tcell.Style {
	side := b.Side(u.Player)
	style := base.Foreground(side.TCellColor()).Bold(true)
	if u == b.Selected() {
		style = style.Underline(true)
	}
	if u.Player == b.ActivePlayer().Number() && !u.CanMove() && !u.CanAct() {
		style = style.Foreground(tcell.ColorDarkGray).Bold(false)
	}
	return style
}

func (r *Renderer) highlightColor(b *game.Board) tcell.Color {
	a := b.ActiveAbility()
	if a == nil {
		return tcell.ColorDefault
	}
	switch a.Kind() {
	case entity.AbilityAttack, entity.AbilityDisplayAttackStats:
		return tcell.ColorMaroon
	case entity.AbilityHeal:
		return tcell.ColorDarkGreen
	default:
		return tcell.ColorNavy
	}
}

// renderPanel draws the turn header, the unit under the cursor and the
// forecast.
func (r *Renderer) renderPanel(b *game.Board, hud HUD, x int) {
	title := tcell.StyleDefault.Foreground(tcell.ColorWhite).Bold(true)
	text := tcell.StyleDefault.Foreground(tcell.ColorWhite)

	active := b.Side(b.ActivePlayer().Number())
	y := 0
	r.screen.DrawText(x, y, fmt.Sprintf("Round %d", b.Round()), title)
	y++
	r.screen.DrawText(x, y, active.Name+"'s turn", text.Foreground(active.TCellColor()))
	y += 2

	if u := b.UnitAt(hud.Cursor); u != nil {
		side := b.Side(u.Player)
		r.screen.DrawText(x, y, u.Name, title.Foreground(side.TCellColor()))
		y++
		r.screen.DrawText(x, y, fmt.Sprintf("%s  HP %d/%d", u.Class, u.HP, u.Total.HP), text)
		y++
		if w := u.EquippedWeapon(); w != nil {
			r.screen.DrawText(x, y, fmt.Sprintf("%s (%s)", w.Name, w.Type), text)
			y++
		}
		r.screen.DrawText(x, y, fmt.Sprintf("Mov %d  Act %d", u.Movement, u.Actions), text)
		y++
	} else if tile := b.Grid.Tile(hud.Cursor); tile != nil {
		r.screen.DrawText(x, y, tile.Terrain.String(), text)
		y++
		if tile.DefenseBoost > 0 || tile.AvoidBoost > 0 {
			r.screen.DrawText(x, y, fmt.Sprintf("Def +%d  Avo +%d", tile.DefenseBoost, tile.AvoidBoost), text)
			y++
		}
	}

	if a := b.ActiveAbility(); a != nil {
		y++
		r.screen.DrawText(x, y, "> "+a.Kind().String(), title)
		y++
	}

	if len(hud.Forecast) > 0 {
		y++
		for _, line := range hud.Forecast {
			r.screen.DrawText(x, y, line, text)
			y++
		}
	}
}

// RenderMessage displays a message on row y under the map.
func (r *Renderer) RenderMessage(msg string, y int) {
	style := tcell.StyleDefault.Foreground(tcell.ColorWhite)
	r.screen.DrawText(0, y, msg, style)
}
