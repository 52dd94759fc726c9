package ui

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/gdamore/tcell/v2"

	"github.com/samdwyer/skirmish/internal/combat"
	"github.com/samdwyer/skirmish/internal/entity"
	"github.com/samdwyer/skirmish/internal/game"
	"github.com/samdwyer/skirmish/internal/world"
)

const helpLine = "arrows/mouse move  enter select  esc cancel  w wait  1-9 weapon  e end turn  q quit"

// Controller turns terminal input into board commands and keeps the screen
// up to date.
type Controller struct {
	screen   *Screen
	renderer *Renderer
	board    *game.Board
	log      *MessageLog
	logger   *slog.Logger

	cursor   world.Coord
	forecast []string
	status   string
	pressed  bool
	running  bool
}

// NewController creates a controller for b drawing to screen. messages is
// the log the Presenter writes to.
func NewController(screen *Screen, b *game.Board, messages *MessageLog, logger *slog.Logger) *Controller {
	if logger == nil {
		logger = slog.Default()
	}
	c := &Controller{
		screen:   screen,
		renderer: NewRenderer(screen),
		board:    b,
		log:      messages,
		logger:   logger,
		status:   helpLine,
	}
	for _, u := range b.Units.All() {
		if pos, ok := b.Position(u); ok && u.Player == b.Players()[0].Number() {
			c.cursor = pos
			break
		}
	}
	return c
}

// Run starts the match and processes input until the player quits.
func (c *Controller) Run(ctx context.Context) error {
	if err := c.start(ctx); err != nil {
		return err
	}
	for c.running {
		c.Draw()
		if err := c.handleEvent(ctx, c.screen.PollEvent()); err != nil {
			return err
		}
	}
	return nil
}

func (c *Controller) start(ctx context.Context) error {
	c.running = true
	return c.advance(ctx)
}

// advance lets computer players take their turns.
func (c *Controller) advance(ctx context.Context) error {
	if err := c.board.Run(ctx); err != nil {
		return fmt.Errorf("running computer turn: %w", err)
	}
	c.collect()
	return nil
}

// Draw renders the current board. The Presenter calls it between steps.
func (c *Controller) Draw() {
	c.collect()
	c.renderer.Render(c.board, HUD{
		Cursor:   c.cursor,
		Forecast: c.forecast,
		Log:      c.log,
		Status:   c.status,
	})
}

// handleEvent processes a single input event.
func (c *Controller) handleEvent(ctx context.Context, ev tcell.Event) error {
	switch ev := ev.(type) {
	case *tcell.EventKey:
		return c.handleKeyEvent(ctx, ev)
	case *tcell.EventMouse:
		return c.handleMouseEvent(ctx, ev)
	case *tcell.EventResize:
		c.screen.Resized()
	case nil:
		// Screen finalized.
		c.running = false
	}
	return nil
}

// handleKeyEvent processes keyboard input.
func (c *Controller) handleKeyEvent(ctx context.Context, ev *tcell.EventKey) error {
	switch ev.Key() {
	case tcell.KeyCtrlC:
		c.running = false
		return nil
	case tcell.KeyUp:
		c.moveCursor(0, -1)
	case tcell.KeyDown:
		c.moveCursor(0, 1)
	case tcell.KeyLeft:
		c.moveCursor(-1, 0)
	case tcell.KeyRight:
		c.moveCursor(1, 0)
	case tcell.KeyEnter:
		return c.result(ctx, c.click(ctx, c.cursor))
	case tcell.KeyEscape:
		if c.board.Selected() == nil {
			return nil
		}
		return c.result(ctx, c.board.Cancel(ctx))

	case tcell.KeyRune:
		switch r := ev.Rune(); {
		case r == 'q' || r == 'Q':
			c.running = false
		case r == ' ':
			return c.result(ctx, c.click(ctx, c.cursor))
		case r == 'e' || r == 'E':
			return c.result(ctx, c.board.EndTurn(ctx))
		case r == 'w' || r == 'W':
			return c.result(ctx, c.board.UseAbility(ctx, entity.AbilityWait, game.Target{}))
		case r >= '1' && r <= '9':
			return c.result(ctx, c.board.SelectWeapon(ctx, int(r-'1')))
		}
	}
	return nil
}

// handleMouseEvent moves the cursor with the pointer and clicks on a
// button press.
func (c *Controller) handleMouseEvent(ctx context.Context, ev *tcell.EventMouse) error {
	x, y := ev.Position()
	pos := world.Coord{X: x, Y: y}
	down := ev.Buttons()&tcell.Button1 != 0
	defer func() { c.pressed = down }()

	if !c.board.Grid.InBounds(pos) {
		return nil
	}
	c.setCursor(pos)
	if down && !c.pressed {
		return c.result(ctx, c.click(ctx, pos))
	}
	return nil
}

func (c *Controller) click(ctx context.Context, pos world.Coord) error {
	if u := c.board.UnitAt(pos); u != nil {
		return c.board.HandleUnitClicked(ctx, u.ID)
	}
	return c.board.HandleTileClicked(ctx, pos)
}

func (c *Controller) moveCursor(dx, dy int) {
	next := c.cursor.Add(dx, dy)
	if c.board.Grid.InBounds(next) {
		c.setCursor(next)
	}
}

func (c *Controller) setCursor(pos world.Coord) {
	if pos == c.cursor {
		return
	}
	c.board.HandleTileDeselected(c.cursor)
	c.cursor = pos
	c.board.HandleTileSelected(pos)
}

// result reports rejected input on the status line and hands the board to
// computer players when their turn comes. Other errors end the game loop.
func (c *Controller) result(ctx context.Context, err error) error {
	switch {
	case err == nil:
		c.status = helpLine
		c.collect()
	case errors.Is(err, game.ErrInputBlocked), errors.Is(err, game.ErrGameOver):
		c.logger.Debug("input ignored", "error", err)
		return nil
	case errors.Is(err, game.ErrNotYourUnit),
		errors.Is(err, game.ErrNoSelection),
		errors.Is(err, game.ErrInvalidTarget),
		errors.Is(err, game.ErrCannotPerform):
		c.logger.Debug("input rejected", "error", err)
		c.status = "Can't do that: " + err.Error()
		return nil
	default:
		return err
	}
	if c.board.Is(game.StateAITurn) {
		return c.advance(ctx)
	}
	return nil
}

// collect turns queued board events into log lines and the forecast panel.
func (c *Controller) collect() {
	for _, e := range c.board.DrainEvents() {
		switch e := e.(type) {
		case game.TurnStarted:
			c.log.Add("Round %d: %s's turn", e.Round, c.board.Side(e.Player).Name)
		case game.WeaponEquipped:
			if u := c.board.Units.Get(e.Unit); u != nil {
				c.log.Add("%s equips %s.", u.Name, u.EquippedWeapon().Name)
			}
		case game.AttackForecast:
			c.forecast = attackForecast(e.Attack, e.Defense)
		case game.HealForecast:
			c.forecast = []string{fmt.Sprintf("Heal %d: HP %d -> %d", e.Heal.Amount, e.Heal.HP, e.Heal.ResultHP)}
		case game.ForecastCleared, game.UnitDeselected, game.UnitMoved, game.BattleResolved, game.UnitHealed:
			c.forecast = nil
		case game.GameOver:
			if e.Winner < 0 {
				c.status = fmt.Sprintf("Draw after %d rounds. Press q to quit.", e.Rounds)
			} else {
				c.status = fmt.Sprintf("%s wins! Press q to quit.", c.board.Side(e.Winner).Name)
			}
			c.log.Add("Game over.")
		}
	}
}

// attackForecast lays out both sides' numbers in two columns.
func attackForecast(atk, def combat.Stats) []string {
	col := func(s combat.Stats, v int) string {
		if !s.CanStrike {
			return "--"
		}
		return fmt.Sprint(v)
	}
	dmg := func(s combat.Stats) string {
		if !s.CanStrike {
			return "--"
		}
		if s.DoubleAttack {
			return fmt.Sprintf("%dx2", s.Damage)
		}
		return fmt.Sprint(s.Damage)
	}
	return []string{
		fmt.Sprintf("%-9s %9s", atk.Name, def.Name),
		fmt.Sprintf("HP   %4d %9d", atk.HP, def.HP),
		fmt.Sprintf("Dmg  %4s %9s", dmg(atk), dmg(def)),
		fmt.Sprintf("Hit  %4s %9s", col(atk, atk.HitChance), col(def, def.HitChance)),
		fmt.Sprintf("Crit %4s %9s", col(atk, atk.CritChance), col(def, def.CritChance)),
		fmt.Sprintf("Avo  %4d %9d", atk.Avoid, def.Avoid),
	}
}
