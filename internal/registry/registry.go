// Package registry maps game IDs to factories. Games register in init(),
// so the platform layer and the replay verifier can build a fresh game by
// ID without importing its package directly.
package registry

import (
	"fmt"
	"sort"
	"strings"
	"sync"

	"github.com/vovakirdan/mazechase/internal/core"
)

// Game is what the platform drives: fixed-tick simulation behind
// platform-level actions, drawn into a character screen.
// Implementations must not import Bubble Tea or do I/O in Step.
type Game interface {
	// ID is the stable identifier used by the CLI and the replay store.
	ID() string

	// Title is the display name.
	Title() string

	// Reset rebuilds the session. RuntimeConfig.Seed seeds every random
	// decision of the session, so equal seeds and inputs replay equally.
	Reset(cfg core.RuntimeConfig)

	// Step advances one fixed tick with the actions pressed since the last one.
	Step(in core.InputFrame) core.StepResult

	// Render draws the current state into a pre-cleared screen.
	Render(dst *core.Screen)

	// State reports score, lives and phase flags.
	State() core.GameState
}

// Factory creates a new, not yet reset, game instance.
type Factory func() Game

type entry struct {
	factory Factory
	title   string
}

var (
	games = make(map[string]entry)
	mu    sync.RWMutex
)

// Register adds a game factory. Panics on a duplicate ID.
func Register(id string, f Factory) {
	mu.Lock()
	defer mu.Unlock()

	if _, exists := games[id]; exists {
		panic(fmt.Sprintf("registry: game %q already registered", id))
	}
	games[id] = entry{factory: f, title: f().Title()}
}

// IDs returns the registered IDs, sorted.
func IDs() []string {
	mu.RLock()
	defer mu.RUnlock()

	ids := make([]string, 0, len(games))
	for id := range games {
		ids = append(ids, id)
	}
	sort.Strings(ids)
	return ids
}

// Title returns the display name of a registered game, or "" if unknown.
func Title(id string) string {
	mu.RLock()
	defer mu.RUnlock()
	return games[id].title
}

// Create instantiates a new game by its ID.
func Create(id string) (Game, error) {
	mu.RLock()
	e, ok := games[id]
	mu.RUnlock()

	if !ok {
		return nil, fmt.Errorf("registry: unknown game %q (registered: %s)", id, strings.Join(IDs(), ", "))
	}
	return e.factory(), nil
}

// Exists checks if a game with the given ID is registered.
func Exists(id string) bool {
	mu.RLock()
	defer mu.RUnlock()

	_, ok := games[id]
	return ok
}
