package generator

import (
	"fmt"
	"slices"
)

// Registry maps generator names to generator factory functions
var Registry = map[string]func() Generator{
	"tweets":  func() Generator { return &TweetGenerator{Authors: 100} },
	"orphans": func() Generator { return &TweetGenerator{Authors: 100, Orphans: 0.2} },
	"padded":  func() Generator { return &TweetGenerator{Authors: 20, Padding: 50} },
}

// Get returns a generator by name
func Get(name string) (Generator, error) {
	factory, exists := Registry[name]
	if !exists {
		return nil, fmt.Errorf("unknown generator: %s", name)
	}
	return factory(), nil
}

// List returns all available generator names, sorted
func List() []string {
	names := make([]string, 0, len(Registry))
	for name := range Registry {
		names = append(names, name)
	}
	slices.Sort(names)
	return names
}

// SetAuthorCount updates the number of distinct authors for name
func SetAuthorCount(name string, count int) {
	factory, exists := Registry[name]
	if !exists {
		return
	}
	Registry[name] = func() Generator {
		g := factory()
		if tg, ok := g.(*TweetGenerator); ok {
			tg.Authors = count
		}
		return g
	}
}
