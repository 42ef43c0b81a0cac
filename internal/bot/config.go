package bot

import (
	"errors"
	"fmt"
)

const (
	DefaultPlyDepth   = 4
	DefaultOpeningEnd = 20
	DefaultMidgameEnd = 58

	// MaxPlyDepth bounds the search, the branching factor makes anything deeper impractical.
	MaxPlyDepth = 10
)

// Phase is a disc-count-defined stage of the game.
type Phase int

const (
	Opening Phase = iota
	Midgame
	Endgame
)

// String returns the phase name.
func (p Phase) String() string {
	switch p {
	case Opening:
		return "opening"
	case Midgame:
		return "midgame"
	default:
		return "endgame"
	}
}

// MarshalText implements encoding.TextMarshaler.
func (p Phase) MarshalText() ([]byte, error) {
	return []byte(p.String()), nil
}

// UnmarshalText implements encoding.TextUnmarshaler.
func (p *Phase) UnmarshalText(text []byte) error {
	switch string(text) {
	case "opening":
		*p = Opening
	case "midgame":
		*p = Midgame
	case "endgame":
		*p = Endgame
	default:
		return fmt.Errorf("unknown phase %q", text)
	}
	return nil
}

// Weights holds the multiplier of every heuristic term in one phase.
type Weights struct {
	Corner    int `json:"corner"`
	Mobility  int `json:"mobility"`
	Coins     int `json:"coins"`
	Parity    int `json:"parity"`
	Stability int `json:"stability"`
}

// Config holds the tunable parameters of the evaluator and the search.
type Config struct {
	// PlyDepth is the number of plies searched below each root move.
	PlyDepth int

	// OpeningEnd is the first disc count that is no longer opening.
	OpeningEnd int

	// MidgameEnd is the last disc count that is still midgame.
	MidgameEnd int

	// Weights per phase, indexed by Phase.
	Weights [3]Weights

	// Stability enables the stability term. The weights budget for it either way.
	Stability bool
}

// DefaultConfig returns the hand-tuned configuration.
func DefaultConfig() Config {
	return Config{
		PlyDepth:   DefaultPlyDepth,
		OpeningEnd: DefaultOpeningEnd,
		MidgameEnd: DefaultMidgameEnd,
		Weights: [3]Weights{
			Opening: {Corner: 1000, Mobility: 50, Coins: 0, Parity: 0, Stability: 5},
			Midgame: {Corner: 1000, Mobility: 20, Coins: 10, Parity: 100, Stability: 50},
			Endgame: {Corner: 1000, Mobility: 100, Coins: 500, Parity: 500, Stability: 500},
		},
		Stability: false,
	}
}

// Validate checks the configuration for values the search cannot work with.
func (c Config) Validate() error {
	if c.PlyDepth < 0 || c.PlyDepth > MaxPlyDepth {
		return fmt.Errorf("ply depth must be between 0 and %d, got %d", MaxPlyDepth, c.PlyDepth)
	}

	if c.OpeningEnd > c.MidgameEnd+1 {
		return errors.New("opening end cannot be after midgame end")
	}

	return nil
}

// Phase returns the game phase for a board holding discs discs.
func (c Config) Phase(discs int) Phase {
	switch {
	case discs < c.OpeningEnd:
		return Opening
	case discs <= c.MidgameEnd:
		return Midgame
	default:
		return Endgame
	}
}

// PhaseWeights returns the weights active for a board holding discs discs.
func (c Config) PhaseWeights(discs int) Weights {
	return c.Weights[c.Phase(discs)]
}
