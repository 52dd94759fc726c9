package game

import "log/slog"

// Config holds board options.
type Config struct {
	// Seed for random number generation. Used for reproducible battles.
	// A seed of 0 means a random seed will be generated.
	Seed int64

	// TurnLimit ends the match in a draw after this many rounds. A round is
	// one turn for every player. Zero means no limit.
	TurnLimit int

	// Presenter plays moves and battles. Defaults to NopPresenter.
	Presenter Presenter

	// Logger defaults to slog.Default().
	Logger *slog.Logger
}
