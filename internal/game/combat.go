package game

import (
	"context"
	"fmt"

	"go.opentelemetry.io/otel/attribute"

	"github.com/samdwyer/skirmish/internal/combat"
	"github.com/samdwyer/skirmish/internal/entity"
	"github.com/samdwyer/skirmish/internal/world"
)

// walk moves u along path one tile at a time, waiting on the presenter for
// every step.
func (b *Board) walk(ctx context.Context, u *entity.Unit, path []world.Coord) error {
	from := path[0]
	to := path[len(path)-1]
	if err := u.StartMove(ctx, from); err != nil {
		return err
	}
	for i := 1; i < len(path); i++ {
		if err := b.Grid.Move(u.ID, path[i]); err != nil {
			return err
		}
		b.warnStep("move_step", b.presenter.MoveStep(ctx, u, path[i-1], path[i]))
	}
	u.FinishMove()
	if err := u.Arrive(ctx); err != nil {
		return err
	}

	b.log.Debug("unit moved", "unit", u.Name, "from", from.String(), "to", to.String(), "cost", world.PathCost(b.Grid, path))
	b.emit(UnitMoved{Unit: u.ID, From: from, To: to, Path: path})
	return nil
}

// battle resolves attacker engaging defender and plays the exchange. The
// attacker switches to a weapon that reaches if the equipped one does not.
func (b *Board) battle(ctx context.Context, attacker, defender *entity.Unit) error {
	ctx, span := b.tracer.Start(ctx, "battle")
	defer span.End()

	apos, _ := b.Position(attacker)
	dpos, _ := b.Position(defender)
	distance := apos.Distance(dpos)
	if w := attacker.WeaponFor(distance); w != nil && w != attacker.EquippedWeapon() {
		if err := attacker.EquipWeapon(w); err != nil {
			return err
		}
		b.emit(WeaponEquipped{Unit: attacker.ID, Weapon: w.ID})
	}

	atkStats, defStats := b.Forecast(attacker, defender)
	actions := b.calc.Calculate(atkStats, defStats)
	attacker.SpendAction()

	span.SetAttributes(
		attribute.String("attacker", attacker.Name),
		attribute.String("defender", defender.Name),
		attribute.Int("distance", distance),
		attribute.Int("strikes", len(actions)),
	)

	b.warnStep("battle_start", b.presenter.BattleStart(ctx, attacker, defender))
	for _, a := range actions {
		striker, target := attacker, defender
		if !a.ByAttacker {
			striker, target = defender, attacker
		}
		b.warnStep("attack", b.presenter.PlayAttackAnimation(ctx, striker, a.Crit))
		if !a.Hit {
			b.warnStep("dodge", b.presenter.PlayDodgeAnimation(ctx, target))
			continue
		}
		b.warnStep("hit", b.presenter.PlayHitAnimation(ctx, target, effectiveness(striker, target)))
		target.ReceiveDamage(a.Damage)
		b.warnStep("health", b.presenter.UpdateHealthDisplay(ctx, target, target.HP))
		if a.Dead {
			b.warnStep("death", b.presenter.PlayDeathAnimation(ctx, target))
		}
	}

	attackerDied := attacker.HP == 0
	defenderDied := defender.HP == 0
	span.SetAttributes(
		attribute.Bool("attacker_died", attackerDied),
		attribute.Bool("defender_died", defenderDied),
	)
	b.emit(BattleResolved{
		Attacker:     attacker.ID,
		Defender:     defender.ID,
		Actions:      actions,
		AttackerDied: attackerDied,
		DefenderDied: defenderDied,
	})
	return b.EndBattle(ctx, attacker, defender, attackerDied, defenderDied)
}

// EndBattle removes the units that died and checks whether the match is
// decided.
func (b *Board) EndBattle(ctx context.Context, attacker, defender *entity.Unit, attackerDied, defenderDied bool) error {
	b.log.Info("battle resolved",
		"attacker", attacker.Name, "attacker_hp", attacker.HP,
		"defender", defender.Name, "defender_hp", defender.HP)

	if attackerDied {
		if err := b.destroyUnit(ctx, attacker); err != nil {
			return err
		}
	}
	if defenderDied {
		if err := b.destroyUnit(ctx, defender); err != nil {
			return err
		}
	}
	return b.checkVictory(ctx)
}

// heal plays a staff heal from healer onto target.
func (b *Board) heal(ctx context.Context, healer, target *entity.Unit) error {
	h := b.HealForecast(healer, target)
	healer.SpendAction()

	b.warnStep("heal", b.presenter.PlayHealAnimation(ctx, healer, target, h.Restored()))
	restored := target.ReceiveHealing(h.Amount)
	b.warnStep("health", b.presenter.UpdateHealthDisplay(ctx, target, target.HP))

	b.log.Info("unit healed", "healer", healer.Name, "target", target.Name, "restored", restored)
	b.emit(UnitHealed{Healer: healer.ID, Target: target.ID, Restored: restored, HP: target.HP})
	return nil
}

// destroyUnit finalizes a unit's death and vacates its tile.
func (b *Board) destroyUnit(ctx context.Context, u *entity.Unit) error {
	if err := u.Destroy(ctx); err != nil {
		return err
	}
	if _, ok := b.Grid.Position(u.ID); ok {
		if err := b.Grid.Remove(u.ID); err != nil {
			return fmt.Errorf("destroy unit %d: %w", u.ID, err)
		}
	}
	if b.selected == u {
		b.selected = nil
		b.ability = nil
	}
	b.log.Info("unit destroyed", "unit", u.Name, "player", u.Player)
	b.emit(UnitDestroyed{Unit: u.ID, Player: u.Player})
	return nil
}

// warnStep logs a presenter failure. Sequences are never cancelled once
// started, so the step is treated as finished.
func (b *Board) warnStep(step string, err error) {
	if err != nil {
		b.log.Warn("presenter step failed", "step", step, "error", err)
	}
}

func effectiveness(striker, target *entity.Unit) int {
	sw, tw := striker.EquippedWeapon(), target.EquippedWeapon()
	if sw == nil || tw == nil {
		return 0
	}
	return combat.Effectiveness(sw.Type, tw.Type)
}
