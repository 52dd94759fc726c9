package entity

import (
	"context"

	"github.com/looplab/fsm"
)

// State is a unit's lifecycle state.
type State string

const (
	// StateNormal is an idle unit of the active player.
	StateNormal State = "normal"
	// StateFriendly marks units of players waiting for their turn.
	StateFriendly State = "friendly"
	// StateSelected is the unit the active player is commanding.
	StateSelected State = "selected"
	// StateMoving is a unit walking a path.
	StateMoving State = "moving"
	// StateDestroyed is terminal.
	StateDestroyed State = "destroyed"
)

// Unit state machine events.
const (
	EventSelect   = "select"
	EventDeselect = "deselect"
	EventAct      = "act"
	EventMove     = "move"
	EventArrive   = "arrive"
	EventStandBy  = "stand_by"
	EventReset    = "reset"
	EventDestroy  = "destroy"
)

func newMachine(u *Unit) *fsm.FSM {
	normal := string(StateNormal)
	friendly := string(StateFriendly)
	selected := string(StateSelected)
	moving := string(StateMoving)
	destroyed := string(StateDestroyed)

	return fsm.NewFSM(
		normal,
		fsm.Events{
			{Name: EventSelect, Src: []string{normal, friendly}, Dst: selected},
			{Name: EventDeselect, Src: []string{selected}, Dst: normal},
			{Name: EventAct, Src: []string{selected}, Dst: normal},
			{Name: EventMove, Src: []string{normal, selected}, Dst: moving},
			{Name: EventArrive, Src: []string{moving}, Dst: normal},
			{Name: EventStandBy, Src: []string{normal}, Dst: friendly},
			{Name: EventReset, Src: []string{friendly, selected, moving}, Dst: normal},
			{Name: EventDestroy, Src: []string{normal, friendly, selected, moving}, Dst: destroyed},
		},
		fsm.Callbacks{
			"enter_" + destroyed: func(_ context.Context, _ *fsm.Event) {
				u.HP = 0
				u.Movement = 0
				u.Actions = 0
			},
		},
	)
}
