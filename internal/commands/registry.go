package commands

import (
	"cmp"
	"fmt"
	"slices"
	"sync"
)

// Registry maps command names and aliases to commands.
type Registry struct {
	mu      sync.RWMutex
	byName  map[string]Command
	primary []Command
}

func NewRegistry() *Registry {
	return &Registry{byName: make(map[string]Command)}
}

// Register fails if the name or any alias is taken; nothing is added then.
func (r *Registry) Register(c Command) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	keys := append([]string{c.Name()}, c.Aliases()...)
	for _, k := range keys {
		if _, taken := r.byName[k]; taken {
			return fmt.Errorf("command name or alias already registered: %s", k)
		}
	}
	for _, k := range keys {
		r.byName[k] = c
	}
	r.primary = append(r.primary, c)
	return nil
}

func (r *Registry) Find(name string) (Command, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	cmd, ok := r.byName[name]
	return cmd, ok
}

// All lists each command once, ordered by name.
func (r *Registry) All() []Command {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return slices.SortedFunc(slices.Values(r.primary), func(a, b Command) int {
		return cmp.Compare(a.Name(), b.Name())
	})
}

var DefaultRegistry = NewRegistry()

// Register adds c to DefaultRegistry and panics on a clash. Called from init.
func Register(c Command) {
	if err := DefaultRegistry.Register(c); err != nil {
		panic(err)
	}
}
