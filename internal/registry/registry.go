// Package registry provides a global registry of outcome provider
// factories. Providers register themselves in init() functions, allowing
// the session driver to build the race and round activities without
// hardcoded dependencies.
package registry

import (
	"fmt"
	"sort"
	"sync"

	"github.com/vovakirdan/cyberjump/internal/match"
	"github.com/vovakirdan/cyberjump/internal/minigame"
)

// KindRace is the registry key of the race provider. Activities register
// under match.Activity.String().
const KindRace = "race"

// Info contains metadata about a registered provider.
type Info struct {
	Kind  string
	Title string
}

// Factory creates a new provider instance.
type Factory func(p minigame.Params) minigame.Provider

var (
	factories = make(map[string]Factory)
	titles    = make(map[string]string)
	mu        sync.RWMutex
)

// Register adds a provider factory to the registry.
// Panics if a provider with the same kind is already registered.
func Register(kind, title string, f Factory) {
	mu.Lock()
	defer mu.Unlock()

	if _, exists := factories[kind]; exists {
		panic(fmt.Sprintf("registry: provider %q already registered", kind))
	}

	factories[kind] = f
	titles[kind] = title
}

// List returns information about all registered providers, sorted by kind.
func List() []Info {
	mu.RLock()
	defer mu.RUnlock()

	result := make([]Info, 0, len(factories))
	for kind := range factories {
		result = append(result, Info{
			Kind:  kind,
			Title: titles[kind],
		})
	}

	sort.Slice(result, func(i, j int) bool {
		return result[i].Kind < result[j].Kind
	})

	return result
}

// Create instantiates a provider by its kind.
func Create(kind string, p minigame.Params) (minigame.Provider, error) {
	mu.RLock()
	f, ok := factories[kind]
	mu.RUnlock()

	if !ok {
		return nil, fmt.Errorf("registry: unknown provider %q", kind)
	}
	return f(p), nil
}

// CreateActivity instantiates the provider for a round activity.
func CreateActivity(a match.Activity, p minigame.Params) (minigame.Provider, error) {
	switch a {
	case match.ActivityNone, match.ActivityFinal:
		return nil, fmt.Errorf("registry: activity %s has no provider", a)
	}
	return Create(a.String(), p)
}

// Title returns the display name of a provider kind.
func Title(kind string) string {
	mu.RLock()
	defer mu.RUnlock()

	if t, ok := titles[kind]; ok {
		return t
	}
	return kind
}

// Exists checks if a provider with the given kind is registered.
func Exists(kind string) bool {
	mu.RLock()
	defer mu.RUnlock()

	_, ok := factories[kind]
	return ok
}
