package domain

import (
	"iter"
	"slices"
	"strings"

	"go.trai.ch/zerr"
)

// DependencyGraph maps a component name to the ordered names it depends on.
// Dependencies need not be registered components; missing nodes are leaves.
// It is not safe for concurrent use.
type DependencyGraph struct {
	deps map[InternedString][]InternedString
}

// NewDependencyGraph creates a new empty DependencyGraph.
func NewDependencyGraph() *DependencyGraph {
	return &DependencyGraph{
		deps: make(map[InternedString][]InternedString),
	}
}

// Set replaces the dependency list of name.
func (g *DependencyGraph) Set(name string, deps []string) {
	interned := make([]InternedString, len(deps))
	for i, d := range deps {
		interned[i] = NewInternedString(d)
	}
	g.deps[NewInternedString(name)] = interned
}

// Dependencies returns the declared dependencies of name in declaration order.
func (g *DependencyGraph) Dependencies(name string) []string {
	deps := g.deps[NewInternedString(name)]
	if len(deps) == 0 {
		return nil
	}
	out := make([]string, len(deps))
	for i, d := range deps {
		out[i] = d.String()
	}
	return out
}

// Len returns the number of components with declared dependencies.
func (g *DependencyGraph) Len() int {
	return len(g.deps)
}

// Names yields the components with declared dependencies in sorted order.
func (g *DependencyGraph) Names() iter.Seq[string] {
	names := make([]string, 0, len(g.deps))
	for name := range g.deps {
		names = append(names, name.String())
	}
	slices.Sort(names)
	return slices.Values(names)
}

// Validate checks the whole graph for cycles with a depth-first search.
func (g *DependencyGraph) Validate() error {
	visited := make(map[InternedString]int) // 0: unvisited, 1: visiting, 2: visited
	for name := range g.Names() {
		if _, err := g.visit(NewInternedString(name), visited, nil, nil); err != nil {
			return err
		}
	}
	return nil
}

// Order returns the transitive dependencies of name followed by name itself,
// each dependency listed after its own dependencies.
func (g *DependencyGraph) Order(name string) ([]string, error) {
	visited := make(map[InternedString]int)
	return g.visit(NewInternedString(name), visited, nil, nil)
}

func (g *DependencyGraph) visit(
	u InternedString,
	visited map[InternedString]int,
	path []InternedString,
	order []string,
) ([]string, error) {
	if visited[u] == 2 {
		return order, nil
	}
	visited[u] = 1
	path = append(path, u)

	for _, dep := range g.deps[u] {
		switch visited[dep] {
		case 1:
			return nil, buildCycleError(path, dep)
		case 0:
			var err error
			if order, err = g.visit(dep, visited, path, order); err != nil {
				return nil, err
			}
		}
	}

	visited[u] = 2
	return append(order, u.String()), nil
}

// buildCycleError constructs an error with cycle path metadata.
func buildCycleError(path []InternedString, dep InternedString) error {
	start := slices.Index(path, dep)
	parts := make([]string, 0, len(path)-start+1)
	for _, node := range path[start:] {
		parts = append(parts, node.String())
	}
	parts = append(parts, dep.String())
	return zerr.With(ErrCycleDetected, "cycle", strings.Join(parts, " -> "))
}
