package game

import (
	"context"
	"fmt"

	"go.opentelemetry.io/otel/attribute"
)

// Start begins the first round. Run calls it if needed.
func (b *Board) Start(ctx context.Context) error {
	if b.started {
		return nil
	}
	b.started = true
	b.round = 1
	if err := b.checkVictory(ctx); err != nil || b.IsOver() {
		return err
	}
	return b.beginTurn(ctx)
}

// Run drives computer players until a human needs to give input or the
// match is over.
func (b *Board) Run(ctx context.Context) error {
	if err := b.Start(ctx); err != nil {
		return err
	}
	for b.Is(StateAITurn) {
		if err := ctx.Err(); err != nil {
			return err
		}
		p := b.ActivePlayer()
		turn := b.turns
		if err := p.Play(ctx, b); err != nil {
			return fmt.Errorf("player %d: %w", p.Number(), err)
		}
		// A player that forgot to end its turn still yields.
		if b.Is(StateAITurn) && b.turns == turn {
			if err := b.EndTurn(ctx); err != nil {
				return err
			}
		}
	}
	return nil
}

// EndTurn finishes the active player's turn: every unit runs its turn end,
// the dead leave the grid and the next player with units takes over.
func (b *Board) EndTurn(ctx context.Context) error {
	switch {
	case b.IsOver():
		return ErrGameOver
	case b.Is(StateBlockInput):
		return ErrInputBlocked
	}

	ctx, span := b.tracer.Start(ctx, "turn.end")
	defer span.End()
	span.SetAttributes(
		attribute.Int("player", b.ActivePlayer().Number()),
		attribute.Int("round", b.round),
	)

	if err := b.fire(ctx, evBlock); err != nil {
		return err
	}
	if err := b.clearSelection(ctx); err != nil {
		return err
	}

	for _, u := range b.Units.All() {
		destroyed, err := u.OnTurnEnd(ctx)
		if err != nil {
			return err
		}
		if destroyed {
			if err := b.destroyUnit(ctx, u); err != nil {
				return err
			}
		}
	}
	if err := b.checkVictory(ctx); err != nil || b.IsOver() {
		return err
	}

	b.advance()
	if b.turnLimit > 0 && b.round > b.turnLimit {
		b.log.Info("turn limit reached", "rounds", b.turnLimit)
		b.round = b.turnLimit
		return b.gameOver(ctx, -1)
	}
	return b.beginTurn(ctx)
}

// advance moves to the next player that still has units.
func (b *Board) advance() {
	for range b.players {
		b.active = (b.active + 1) % len(b.players)
		if b.active == 0 {
			b.round++
		}
		if len(b.Units.Alive(b.ActivePlayer().Number())) > 0 {
			return
		}
	}
}

// beginTurn stands by every unit that is not the active player's and hands
// control to the active player.
func (b *Board) beginTurn(ctx context.Context) error {
	b.turns++
	active := b.ActivePlayer()
	for _, u := range b.Units.All() {
		if !u.IsAlive() || u.Player == active.Number() {
			continue
		}
		if err := u.StandBy(ctx); err != nil {
			return err
		}
	}

	b.log.Info("turn started", "player", active.Number(), "round", b.round)
	b.emit(TurnStarted{Player: active.Number(), Round: b.round})
	if isHuman(active) {
		return b.fire(ctx, evAwaitInput)
	}
	return b.fire(ctx, evStartAI)
}

// checkVictory ends the match once at most one player has units left.
func (b *Board) checkVictory(ctx context.Context) error {
	if b.IsOver() {
		return nil
	}
	standing := -1
	count := 0
	for _, p := range b.players {
		if len(b.Units.Alive(p.Number())) > 0 {
			standing = p.Number()
			count++
		}
	}
	if count > 1 {
		return nil
	}
	return b.gameOver(ctx, standing)
}

func (b *Board) gameOver(ctx context.Context, winner int) error {
	b.winner = winner
	b.selected = nil
	b.ability = nil
	b.log.Info("match over", "winner", winner, "rounds", b.round)
	b.emit(GameOver{Winner: winner, Rounds: b.round})
	return b.fire(ctx, evFinish)
}
