// Package registry provides a global registry of level packs.
// Packs register themselves in init() functions, allowing the platform
// to discover and load them without hardcoded dependencies.
package registry

import (
	"errors"
	"fmt"
	"sort"
	"sync"

	"github.com/vovakirdan/tui-breakout/internal/breakout"
)

// ErrUnknownPack is returned when no pack is registered under an id.
var ErrUnknownPack = errors.New("registry: unknown level pack")

// Pack is an ordered set of levels played in one game.
type Pack struct {
	ID     string
	Name   string
	Levels []breakout.Level
}

// Validate checks that the pack has an id and at least one valid level.
func (p Pack) Validate() error {
	if p.ID == "" {
		return errors.New("registry: pack has no id")
	}
	if len(p.Levels) == 0 {
		return fmt.Errorf("%w: pack %q has no levels", breakout.ErrNoLevel, p.ID)
	}
	for _, l := range p.Levels {
		if err := l.Validate(); err != nil {
			return fmt.Errorf("registry: pack %q: %w", p.ID, err)
		}
	}
	return nil
}

// PackInfo contains metadata about a registered pack.
type PackInfo struct {
	ID     string
	Name   string
	Levels int
}

// Factory creates a fresh copy of a pack.
type Factory func() Pack

var (
	factories = make(map[string]Factory)
	infos     = make(map[string]PackInfo)
	mu        sync.RWMutex
)

// Register adds a pack factory to the registry.
// Typically called from an init() function.
// Panics if a pack with the same ID is already registered.
func Register(id string, f Factory) {
	mu.Lock()
	defer mu.Unlock()

	if _, exists := factories[id]; exists {
		panic(fmt.Sprintf("registry: pack %q already registered", id))
	}

	factories[id] = f

	p := f()
	infos[id] = PackInfo{ID: id, Name: p.Name, Levels: len(p.Levels)}
}

// List returns information about all registered packs, sorted by ID.
func List() []PackInfo {
	mu.RLock()
	defer mu.RUnlock()

	result := make([]PackInfo, 0, len(infos))
	for _, info := range infos {
		result = append(result, info)
	}

	sort.Slice(result, func(i, j int) bool {
		return result[i].ID < result[j].ID
	})

	return result
}

// Get returns a fresh copy of the pack registered under id.
func Get(id string) (Pack, error) {
	mu.RLock()
	f, ok := factories[id]
	mu.RUnlock()

	if !ok {
		return Pack{}, fmt.Errorf("%w %q", ErrUnknownPack, id)
	}
	return f(), nil
}
