package game

import (
	"context"
	"errors"
	"fmt"

	"github.com/looplab/fsm"
)

// State is the board's turn state.
type State string

const (
	// StateBlockInput is held while a sequence plays or a turn changes hands.
	StateBlockInput State = "block_input"
	// StateWaitingInput is a human turn with nothing selected.
	StateWaitingInput State = "waiting_input"
	// StateUnitSelected is a human turn with a unit selected.
	StateUnitSelected State = "unit_selected"
	// StateAITurn is a computer player's turn.
	StateAITurn State = "ai_turn"
	// StateGameOver is terminal.
	StateGameOver State = "game_over"
)

const (
	evBlock      = "block"
	evAwaitInput = "await_input"
	evSelectUnit = "select_unit"
	evStartAI    = "start_ai"
	evFinish     = "finish"
)

func (b *Board) newMachine() *fsm.FSM {
	block := string(StateBlockInput)
	waiting := string(StateWaitingInput)
	selected := string(StateUnitSelected)
	ai := string(StateAITurn)
	over := string(StateGameOver)

	return fsm.NewFSM(
		block,
		fsm.Events{
			{Name: evBlock, Src: []string{waiting, selected, ai}, Dst: block},
			{Name: evAwaitInput, Src: []string{block, selected}, Dst: waiting},
			{Name: evSelectUnit, Src: []string{block, waiting, selected}, Dst: selected},
			{Name: evStartAI, Src: []string{block}, Dst: ai},
			{Name: evFinish, Src: []string{block, waiting, selected, ai}, Dst: over},
		},
		fsm.Callbacks{
			"enter_state": func(_ context.Context, e *fsm.Event) {
				b.log.Debug("board state", "from", e.Src, "to", e.Dst, "event", e.Event)
			},
		},
	)
}

// State returns the board's turn state.
func (b *Board) State() State {
	return State(b.machine.Current())
}

// Is reports whether the board is in state s.
func (b *Board) Is(s State) bool {
	return b.machine.Is(string(s))
}

// IsOver returns true once the match has ended.
func (b *Board) IsOver() bool {
	return b.Is(StateGameOver)
}

func (b *Board) fire(ctx context.Context, event string) error {
	err := b.machine.Event(ctx, event)
	var noTransition fsm.NoTransitionError
	if errors.As(err, &noTransition) {
		return nil
	}
	if err != nil {
		return fmt.Errorf("board %s: %w", event, err)
	}
	return nil
}
