package game

import "context"

// Player controls one side of the board.
type Player interface {
	Number() int
	// Play takes the player's turn. Interactive players return at once and
	// drive the board through its input handlers instead.
	Play(ctx context.Context, b *Board) error
}

// Human is a player commanded through board input.
type Human struct {
	number int
}

// NewHuman creates an interactive player.
func NewHuman(number int) *Human {
	return &Human{number: number}
}

// Number returns the player number.
func (h *Human) Number() int { return h.number }

// Play returns immediately; the board waits for input.
func (h *Human) Play(context.Context, *Board) error { return nil }

func isHuman(p Player) bool {
	_, ok := p.(*Human)
	return ok
}
