package ui

import (
	"context"
	"math/rand"
	"strings"
	"testing"
	"time"

	"github.com/gdamore/tcell/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/samdwyer/skirmish/internal/ai"
	"github.com/samdwyer/skirmish/internal/combat"
	"github.com/samdwyer/skirmish/internal/entity"
	"github.com/samdwyer/skirmish/internal/game"
	"github.com/samdwyer/skirmish/internal/gamedata"
	"github.com/samdwyer/skirmish/internal/world"
)

var catalog = gamedata.MustLoadCatalog()

type harness struct {
	screen *Screen
	board  *game.Board
	ctrl   *Controller
	log    *MessageLog
}

func newHarness(t *testing.T, players ...game.Player) *harness {
	t.Helper()
	sim := tcell.NewSimulationScreen("UTF-8")
	screen, err := WrapScreen(sim)
	require.NoError(t, err)
	sim.SetSize(100, 30)
	t.Cleanup(screen.Close)

	if len(players) == 0 {
		players = []game.Player{game.NewHuman(0), game.NewHuman(1)}
	}
	messages := NewMessageLog(20)
	pres := NewPresenter(messages, 0)
	b, err := game.New(catalog, "duel", players, game.Config{Seed: 1, Presenter: pres})
	require.NoError(t, err)

	ctrl := NewController(screen, b, messages, nil)
	pres.SetDraw(ctrl.Draw)
	require.NoError(t, ctrl.start(context.Background()))
	return &harness{screen: screen, board: b, ctrl: ctrl, log: messages}
}

func (h *harness) key(t *testing.T, k tcell.Key) {
	t.Helper()
	require.NoError(t, h.ctrl.handleEvent(context.Background(), tcell.NewEventKey(k, 0, tcell.ModNone)))
}

func (h *harness) rune(t *testing.T, r rune) {
	t.Helper()
	require.NoError(t, h.ctrl.handleEvent(context.Background(), tcell.NewEventKey(tcell.KeyRune, r, tcell.ModNone)))
}

func (h *harness) row(y int) string {
	var sb strings.Builder
	w, _ := h.screen.Size()
	for x := 0; x < w; x++ {
		r, _ := h.screen.Content(x, y)
		sb.WriteRune(r)
	}
	return sb.String()
}

func (h *harness) text() string {
	_, height := h.screen.Size()
	rows := make([]string, height)
	for y := range rows {
		rows[y] = h.row(y)
	}
	return strings.Join(rows, "\n")
}

func (h *harness) position(t *testing.T, id world.UnitID) world.Coord {
	t.Helper()
	pos, ok := h.board.Position(h.board.Units.Get(id))
	require.True(t, ok)
	return pos
}

func TestRenderDrawsMapAndUnits(t *testing.T) {
	h := newHarness(t)
	h.ctrl.Draw()

	assert.True(t, strings.HasPrefix(h.row(0), "#######"))
	assert.True(t, strings.HasPrefix(h.row(1), "#L...B#"))

	r, style := h.screen.Content(1, 1)
	assert.Equal(t, 'L', r)
	fg, _, attrs := style.Decompose()
	blue := h.board.Side(0)
	assert.Equal(t, blue.TCellColor(), fg)
	assert.NotZero(t, attrs&tcell.AttrReverse, "cursor starts on the first unit")

	screen := h.text()
	assert.Contains(t, screen, "Round 1")
	assert.Contains(t, screen, "Blue's turn")
	assert.Contains(t, screen, "Eliwood")
	assert.Contains(t, screen, "Round 1: Blue's turn")
}

func TestKeyboardMoveAndUndo(t *testing.T) {
	h := newHarness(t)

	h.key(t, tcell.KeyEnter)
	require.NotNil(t, h.board.Selected())
	assert.Equal(t, entity.AbilityMove, h.board.ActiveAbility().Kind())

	h.ctrl.Draw()
	_, style := h.screen.Content(2, 1)
	_, bg, _ := style.Decompose()
	assert.Equal(t, tcell.ColorNavy, bg, "reachable tiles are highlighted")

	h.key(t, tcell.KeyRight)
	h.key(t, tcell.KeyRight)
	h.key(t, tcell.KeyEnter)
	assert.Equal(t, world.Coord{X: 3, Y: 1}, h.position(t, 1))

	h.key(t, tcell.KeyEscape)
	assert.Equal(t, world.Coord{X: 1, Y: 1}, h.position(t, 1))
}

func TestHoverShowsForecast(t *testing.T) {
	h := newHarness(t)

	h.key(t, tcell.KeyEnter)
	for range 3 {
		h.key(t, tcell.KeyRight)
	}
	h.key(t, tcell.KeyEnter)
	require.Equal(t, world.Coord{X: 4, Y: 1}, h.position(t, 1))

	h.key(t, tcell.KeyRight)
	h.ctrl.Draw()
	require.NotEmpty(t, h.ctrl.forecast)
	assert.Contains(t, h.text(), "Hit")

	h.key(t, tcell.KeyLeft)
	h.ctrl.Draw()
	assert.Empty(t, h.ctrl.forecast)
}

func TestRejectedInputShowsStatus(t *testing.T) {
	h := newHarness(t)

	h.rune(t, 'w')
	assert.Contains(t, h.ctrl.status, "Can't do that")
	assert.True(t, h.ctrl.running)
}

func TestEndTurnAndQuit(t *testing.T) {
	h := newHarness(t)

	h.rune(t, 'e')
	assert.Equal(t, 1, h.board.ActivePlayer().Number())
	assert.Contains(t, h.log.Last(1)[0], "Red's turn")

	h.rune(t, 'q')
	assert.False(t, h.ctrl.running)
}

func TestEndTurnHandsOverToComputer(t *testing.T) {
	red := ai.NewPlayer(1, true, rand.New(rand.NewSource(2)), nil)
	h := newHarness(t, game.NewHuman(0), red)

	h.rune(t, 'e')
	assert.Contains(t, h.log.Last(20), "Batta attacks Eliwood!")
	if !h.board.IsOver() {
		assert.Equal(t, 0, h.board.ActivePlayer().Number())
		assert.Equal(t, 2, h.board.Round())
	}
}

func TestMouseClickSelects(t *testing.T) {
	h := newHarness(t)
	ctx := context.Background()

	require.NoError(t, h.ctrl.handleEvent(ctx, tcell.NewEventMouse(1, 1, tcell.Button1, tcell.ModNone)))
	require.NotNil(t, h.board.Selected())
	assert.Equal(t, world.UnitID(1), h.board.Selected().ID)

	// Holding the button does not click again.
	require.NoError(t, h.ctrl.handleEvent(ctx, tcell.NewEventMouse(1, 1, tcell.Button1, tcell.ModNone)))
	assert.NotNil(t, h.board.Selected())

	require.NoError(t, h.ctrl.handleEvent(ctx, tcell.NewEventMouse(1, 1, tcell.ButtonNone, tcell.ModNone)))
	require.NoError(t, h.ctrl.handleEvent(ctx, tcell.NewEventMouse(1, 1, tcell.Button1, tcell.ModNone)))
	assert.Nil(t, h.board.Selected(), "clicking the selected unit cancels")

	require.NoError(t, h.ctrl.handleEvent(ctx, tcell.NewEventMouse(60, 20, tcell.Button1, tcell.ModNone)))
	assert.Equal(t, world.Coord{X: 1, Y: 1}, h.ctrl.cursor)
}

func TestPresenterWritesBattleLog(t *testing.T) {
	messages := NewMessageLog(10)
	draws := 0
	p := NewPresenter(messages, 0)
	p.SetDraw(func() { draws++ })

	u := &entity.Unit{Name: "Eliwood", Total: entity.StatBlock{HP: 20}}
	v := &entity.Unit{Name: "Batta", Total: entity.StatBlock{HP: 24}}
	ctx := context.Background()

	require.NoError(t, p.BattleStart(ctx, u, v))
	require.NoError(t, p.PlayAttackAnimation(ctx, u, true))
	require.NoError(t, p.PlayHitAnimation(ctx, v, 1))
	require.NoError(t, p.UpdateHealthDisplay(ctx, v, 0))
	require.NoError(t, p.PlayDeathAnimation(ctx, v))

	assert.Equal(t, []string{
		"Eliwood attacks Batta!",
		"Eliwood lands a critical hit!",
		"Batta is hit. It's effective!",
		"Batta HP 0/24",
		"Batta falls.",
	}, messages.Last(10))
	assert.Equal(t, 5, draws)
}

func TestPresenterStopsWaitingOnCancel(t *testing.T) {
	p := NewPresenter(NewMessageLog(1), time.Hour)
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	err := p.PlayDodgeAnimation(ctx, &entity.Unit{Name: "Batta"})
	assert.ErrorIs(t, err, context.Canceled)
}

func TestMessageLogKeepsNewest(t *testing.T) {
	l := NewMessageLog(3)
	for i := range 5 {
		l.Add("line %d", i)
	}
	assert.Equal(t, []string{"line 2", "line 3", "line 4"}, l.Last(10))
	assert.Equal(t, []string{"line 4"}, l.Last(1))
}

func TestAttackForecastColumns(t *testing.T) {
	lines := attackForecast(
		statsFor("Eliwood", true, true),
		statsFor("Batta", false, false),
	)
	require.Len(t, lines, 6)
	assert.Contains(t, lines[2], "9x2")
	assert.Contains(t, lines[3], "--")
}

func statsFor(name string, strike, double bool) combat.Stats {
	return combat.Stats{Name: name, HP: 20, Damage: 9, HitChance: 90, CanStrike: strike, DoubleAttack: double}
}
