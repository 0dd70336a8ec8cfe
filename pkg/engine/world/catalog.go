// Package world provides generic 2D grid-based primitives for
// constraint-propagation map generation: the state catalog with its
// adjacency rules, cells holding candidate state sets, and the grid
// that owns them.
package world

import (
	"fmt"

	"github.com/zyedidia/generic/mapset"
)

// State is one category from a Catalog, identified by its position in the
// catalog's declaration order. States are only meaningful together with the
// catalog that produced them.
type State int

// NeighborWeight is one entry of a compatibility rule: a state that is legal
// in an orthogonally adjacent cell, and how strongly a collapsed neighbor
// biases a random collapse toward it.
type NeighborWeight struct {
	State  State
	Weight int
}

// Rule lists the legal neighbor states for one catalog state, in declaration
// order, together with their bias weights.
type Rule struct {
	Neighbors []NeighborWeight
}

// States returns the legal neighbor states of the rule.
func (r Rule) States() []State {
	states := make([]State, len(r.Neighbors))
	for i, n := range r.Neighbors {
		states[i] = n.State
	}
	return states
}

// NeighborSpec names a legal neighbor and its bias weight while a catalog is
// being declared, before names have been resolved to states.
type NeighborSpec struct {
	Name   string
	Weight int
}

// Adj is a convenience for a neighbor entry with the default weight of 1.
func Adj(name string) NeighborSpec {
	return NeighborSpec{Name: name, Weight: 1}
}

// StateSpec declares one catalog state by name with its compatibility rule.
type StateSpec struct {
	Name      string
	Neighbors []NeighborSpec
}

// Catalog is a fixed enumeration of states with a compatibility rule per
// state. It is built once at startup and never mutated afterwards.
type Catalog struct {
	names []string
	index map[string]State
	rules []Rule
}

// NewCatalog resolves the given state specs into a catalog. It fails on an
// empty spec list, empty or duplicate state names, unknown neighbor names,
// and negative weights.
func NewCatalog(specs []StateSpec) (*Catalog, error) {
	if len(specs) == 0 {
		return nil, fmt.Errorf("catalog: no states declared")
	}

	c := &Catalog{
		names: make([]string, len(specs)),
		index: make(map[string]State, len(specs)),
		rules: make([]Rule, len(specs)),
	}

	for i, spec := range specs {
		if spec.Name == "" {
			return nil, fmt.Errorf("catalog: state %d has no name", i)
		}
		if _, exists := c.index[spec.Name]; exists {
			return nil, fmt.Errorf("catalog: duplicate state %q", spec.Name)
		}
		c.names[i] = spec.Name
		c.index[spec.Name] = State(i)
	}

	for i, spec := range specs {
		rule := Rule{Neighbors: make([]NeighborWeight, 0, len(spec.Neighbors))}
		for _, n := range spec.Neighbors {
			target, ok := c.index[n.Name]
			if !ok {
				return nil, fmt.Errorf("catalog: state %q names unknown neighbor %q", spec.Name, n.Name)
			}
			if n.Weight < 0 {
				return nil, fmt.Errorf("catalog: state %q neighbor %q has negative weight %d", spec.Name, n.Name, n.Weight)
			}
			rule.Neighbors = append(rule.Neighbors, NeighborWeight{State: target, Weight: n.Weight})
		}
		c.rules[i] = rule
	}

	return c, nil
}

// Size returns the number of states in the catalog.
func (c *Catalog) Size() int {
	return len(c.names)
}

// States returns all states in declaration order.
func (c *Catalog) States() []State {
	states := make([]State, len(c.names))
	for i := range c.names {
		states[i] = State(i)
	}
	return states
}

// Name returns the name of a state, or "unknown" for a state outside the
// catalog.
func (c *Catalog) Name(s State) string {
	if int(s) < 0 || int(s) >= len(c.names) {
		return "unknown"
	}
	return c.names[s]
}

// ByName looks up a state by its name.
func (c *Catalog) ByName(name string) (State, bool) {
	s, ok := c.index[name]
	return s, ok
}

// Rule returns the compatibility rule for a state. States outside the
// catalog get an empty rule.
func (c *Catalog) Rule(s State) Rule {
	if int(s) < 0 || int(s) >= len(c.rules) {
		return Rule{}
	}
	return c.rules[s]
}

// FullSet returns a fresh candidate set holding every catalog state.
func (c *Catalog) FullSet() mapset.Set[State] {
	set := mapset.New[State]()
	for i := range c.names {
		set.Put(State(i))
	}
	return set
}
