package ui

import (
	"context"
	"time"

	"github.com/samdwyer/skirmish/internal/entity"
	"github.com/samdwyer/skirmish/internal/game"
	"github.com/samdwyer/skirmish/internal/world"
)

// Presenter plays board sequences in the terminal. Each step writes to the
// message log, redraws and holds for the frame delay.
type Presenter struct {
	log   *MessageLog
	delay time.Duration
	draw  func()
}

// NewPresenter creates a presenter that logs to log and holds every step for
// delay. Call SetDraw before the board plays anything.
func NewPresenter(log *MessageLog, delay time.Duration) *Presenter {
	return &Presenter{log: log, delay: delay, draw: func() {}}
}

// SetDraw sets the function that redraws the screen after each step.
func (p *Presenter) SetDraw(draw func()) {
	p.draw = draw
}

// frame redraws and waits out the delay, or returns early if ctx ends.
func (p *Presenter) frame(ctx context.Context) error {
	p.draw()
	if p.delay <= 0 {
		return nil
	}
	t := time.NewTimer(p.delay)
	defer t.Stop()
	select {
	case <-t.C:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}

func (p *Presenter) MoveStep(ctx context.Context, _ *entity.Unit, _, _ world.Coord) error {
	return p.frame(ctx)
}

func (p *Presenter) BattleStart(ctx context.Context, attacker, defender *entity.Unit) error {
	p.log.Add("%s attacks %s!", attacker.Name, defender.Name)
	return p.frame(ctx)
}

func (p *Presenter) PlayAttackAnimation(ctx context.Context, u *entity.Unit, crit bool) error {
	if crit {
		p.log.Add("%s lands a critical hit!", u.Name)
	} else {
		p.log.Add("%s strikes.", u.Name)
	}
	return p.frame(ctx)
}

func (p *Presenter) PlayHitAnimation(ctx context.Context, target *entity.Unit, effectiveness int) error {
	switch {
	case effectiveness > 0:
		p.log.Add("%s is hit. It's effective!", target.Name)
	case effectiveness < 0:
		p.log.Add("%s is hit. Not very effective.", target.Name)
	default:
		p.log.Add("%s is hit.", target.Name)
	}
	return p.frame(ctx)
}

func (p *Presenter) PlayDodgeAnimation(ctx context.Context, u *entity.Unit) error {
	p.log.Add("%s dodges.", u.Name)
	return p.frame(ctx)
}

func (p *Presenter) PlayDeathAnimation(ctx context.Context, u *entity.Unit) error {
	p.log.Add("%s falls.", u.Name)
	return p.frame(ctx)
}

func (p *Presenter) UpdateHealthDisplay(ctx context.Context, u *entity.Unit, hp int) error {
	p.log.Add("%s HP %d/%d", u.Name, hp, u.Total.HP)
	return p.frame(ctx)
}

func (p *Presenter) PlayHealAnimation(ctx context.Context, healer, target *entity.Unit, amount int) error {
	p.log.Add("%s heals %s for %d.", healer.Name, target.Name, amount)
	return p.frame(ctx)
}

var _ game.Presenter = (*Presenter)(nil)
