// Package strategy provides the duel AI implementations. Strategies register
// themselves in init() functions, allowing the CLI and simulation runner to
// discover and instantiate them without hardcoded dependencies.
package strategy

import (
	"fmt"
	"math/rand"
	"sort"
	"sync"

	"github.com/vovakirdan/snake-duel/internal/game"
)

// Factory creates a new strategy instance owning the given RNG. Every
// instance gets its own generator so fixed seeds reproduce bit-for-bit even
// when games run on parallel workers.
type Factory func(rng *rand.Rand) game.Strategy

// Info contains metadata about a registered strategy.
type Info struct {
	ID          string
	Name        string
	Description string
}

var (
	mu        sync.RWMutex
	factories = make(map[string]Factory)
	infos     = make(map[string]Info)
)

// Register adds a strategy factory under the given ID.
// Panics if the ID is already taken.
func Register(info Info, f Factory) {
	mu.Lock()
	defer mu.Unlock()

	if _, exists := factories[info.ID]; exists {
		panic(fmt.Sprintf("strategy: %q already registered", info.ID))
	}
	factories[info.ID] = f
	infos[info.ID] = info
}

// List returns information about all registered strategies, sorted by ID.
func List() []Info {
	mu.RLock()
	defer mu.RUnlock()

	result := make([]Info, 0, len(infos))
	for _, info := range infos {
		result = append(result, info)
	}
	sort.Slice(result, func(i, j int) bool {
		return result[i].ID < result[j].ID
	})
	return result
}

// New instantiates a strategy by its ID with a dedicated RNG seed.
func New(id string, seed int64) (game.Strategy, error) {
	mu.RLock()
	f, ok := factories[id]
	mu.RUnlock()

	if !ok {
		return nil, fmt.Errorf("strategy: unknown strategy %q", id)
	}
	return f(rand.New(rand.NewSource(seed))), nil
}

// Exists checks whether a strategy ID is registered.
func Exists(id string) bool {
	mu.RLock()
	defer mu.RUnlock()

	_, ok := factories[id]
	return ok
}
