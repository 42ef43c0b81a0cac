// Package players provides a factory of Othello players from configuration strings.
// Player implementations register themselves with RegisterModule.
package players

import (
	"context"
	"sort"
	"strings"
	"sync"

	"github.com/lk16/desdemona/internal/othello"
	"github.com/lk16/desdemona/internal/parameters"
	"github.com/pkg/errors"
)

// DefaultConfig is used when New is called with an empty configuration.
const DefaultConfig = "alphabeta"

// Player is anything that is able to play Othello.
type Player interface {
	// Play returns the move for the color the player was created for.
	// It returns othello.NoMove only when there is no legal move.
	// When ctx is done Play must return promptly, with a legal move if there is one.
	Play(ctx context.Context, board othello.Board) othello.Move

	// Close is called at the end of a match.
	Close()
}

// Module creates players. Unknown or invalid params must be rejected with an error.
type Module interface {
	NewPlayer(color othello.Color, params parameters.Params) (Player, error)
}

var (
	modulesLock sync.RWMutex
	modules     = make(map[string]Module)
)

// RegisterModule makes module available to New under name. Registering a name twice replaces the module.
func RegisterModule(name string, module Module) {
	modulesLock.Lock()
	defer modulesLock.Unlock()

	modules[name] = module
}

// Modules returns the names of all registered modules, sorted.
func Modules() []string {
	modulesLock.RLock()
	defer modulesLock.RUnlock()

	names := make([]string, 0, len(modules))
	for name := range modules {
		names = append(names, name)
	}
	sort.Strings(names)

	return names
}

// SplitConfig splits a configuration into the module name and its parameters.
func SplitConfig(config string) (string, parameters.Params) {
	if config == "" {
		config = DefaultConfig
	}

	name, params, _ := strings.Cut(config, ":")
	return strings.TrimSpace(name), parameters.NewFromConfigString(params)
}

// NormalizeConfig returns config in a canonical form, usable as cache key or for grouping results.
func NormalizeConfig(config string) string {
	name, params := SplitConfig(config)
	if len(params) == 0 {
		return name
	}
	return name + ":" + params.String()
}

// New creates a player for color given the configuration string.
//
// The config is the module name, optionally followed by a colon and a comma-separated list of
// parameters with optional values, for example "alphabeta:depth=3,stability".
// An empty config selects DefaultConfig.
func New(config string, color othello.Color) (Player, error) {
	name, params := SplitConfig(config)

	modulesLock.RLock()
	module, ok := modules[name]
	modulesLock.RUnlock()

	if !ok {
		return nil, errors.Errorf("unknown player %q", name)
	}

	player, err := module.NewPlayer(color, params)
	if err != nil {
		return nil, errors.WithMessagef(err, "failed to create player %q", name)
	}

	return player, nil
}
