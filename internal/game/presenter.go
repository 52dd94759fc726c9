package game

import (
	"context"

	"github.com/samdwyer/skirmish/internal/entity"
	"github.com/samdwyer/skirmish/internal/world"
)

// Presenter plays the visible side of movement and battles. Every method
// blocks until its step has finished playing; the board does not advance a
// sequence until the call returns.
type Presenter interface {
	MoveStep(ctx context.Context, u *entity.Unit, from, to world.Coord) error
	BattleStart(ctx context.Context, attacker, defender *entity.Unit) error
	PlayAttackAnimation(ctx context.Context, u *entity.Unit, crit bool) error
	// PlayHitAnimation shows target being struck. effectiveness is the
	// striker's weapon triangle bonus (-1, 0 or 1).
	PlayHitAnimation(ctx context.Context, target *entity.Unit, effectiveness int) error
	PlayDodgeAnimation(ctx context.Context, u *entity.Unit) error
	PlayDeathAnimation(ctx context.Context, u *entity.Unit) error
	UpdateHealthDisplay(ctx context.Context, u *entity.Unit, hp int) error
	PlayHealAnimation(ctx context.Context, healer, target *entity.Unit, amount int) error
}

// NopPresenter completes every step immediately. Headless matches use it.
type NopPresenter struct{}

func (NopPresenter) MoveStep(context.Context, *entity.Unit, world.Coord, world.Coord) error {
	return nil
}
func (NopPresenter) BattleStart(context.Context, *entity.Unit, *entity.Unit) error { return nil }
func (NopPresenter) PlayAttackAnimation(context.Context, *entity.Unit, bool) error { return nil }
func (NopPresenter) PlayHitAnimation(context.Context, *entity.Unit, int) error     { return nil }
func (NopPresenter) PlayDodgeAnimation(context.Context, *entity.Unit) error        { return nil }
func (NopPresenter) PlayDeathAnimation(context.Context, *entity.Unit) error        { return nil }
func (NopPresenter) UpdateHealthDisplay(context.Context, *entity.Unit, int) error  { return nil }
func (NopPresenter) PlayHealAnimation(context.Context, *entity.Unit, *entity.Unit, int) error {
	return nil
}

var _ Presenter = NopPresenter{}
