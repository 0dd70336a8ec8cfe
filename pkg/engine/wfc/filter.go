// Package wfc implements the wave function collapse engines: the filter
// algebra used to prune candidate sets, the propagation engine that keeps
// the grid consistent after a collapse, and the stepwise collapse driver.
package wfc

import (
	"github.com/zyedidia/generic/mapset"

	"wavemap/pkg/engine/world"
)

// Filter is an allowed-state set used to prune a cell's candidates by
// intersection. Filters are short-lived values created and discarded within
// a single step.
type Filter struct {
	allowed mapset.Set[world.State]
}

// NewFilter creates a filter allowing exactly the given states.
func NewFilter(states ...world.State) Filter {
	allowed := mapset.New[world.State]()
	for _, s := range states {
		allowed.Put(s)
	}
	return Filter{allowed: allowed}
}

// FilterOf creates a filter allowing the members of the given set. The set
// is copied; the filter never aliases it.
func FilterOf(states mapset.Set[world.State]) Filter {
	allowed := mapset.New[world.State]()
	states.Each(func(s world.State) {
		allowed.Put(s)
	})
	return Filter{allowed: allowed}
}

// Union returns a filter allowing the set union of all input state lists.
func Union(lists ...[]world.State) Filter {
	allowed := mapset.New[world.State]()
	for _, list := range lists {
		for _, s := range list {
			allowed.Put(s)
		}
	}
	return Filter{allowed: allowed}
}

// Intersect returns the running intersection of the filters, seeded from the
// first and narrowed by each subsequent one. An empty input list yields an
// empty filter.
func Intersect(filters []Filter) Filter {
	if len(filters) == 0 {
		return NewFilter()
	}

	combined := mapset.New[world.State]()
	filters[0].allowed.Each(func(s world.State) {
		combined.Put(s)
	})

	for _, f := range filters[1:] {
		var drop []world.State
		combined.Each(func(s world.State) {
			if !f.allowed.Has(s) {
				drop = append(drop, s)
			}
		})
		for _, s := range drop {
			combined.Remove(s)
		}
	}

	return Filter{allowed: combined}
}

// Size returns the number of allowed states.
func (f Filter) Size() int {
	return f.allowed.Size()
}

// Includes reports whether the state is allowed by the filter.
func (f Filter) Includes(s world.State) bool {
	return f.allowed.Has(s)
}

// Equals reports whether two filters allow exactly the same states.
func (f Filter) Equals(other Filter) bool {
	if f.allowed.Size() != other.allowed.Size() {
		return false
	}
	equal := true
	f.allowed.Each(func(s world.State) {
		if !other.allowed.Has(s) {
			equal = false
		}
	})
	return equal
}

// IsFull reports whether the filter allows every state of a catalog of the
// given size, in which case applying it cannot constrain anything.
func (f Filter) IsFull(catalogSize int) bool {
	return f.allowed.Size() == catalogSize
}

// Apply returns the intersection of the candidate set with the filter as a
// new set. Neither input is mutated.
func (f Filter) Apply(candidates mapset.Set[world.State]) mapset.Set[world.State] {
	narrowed := mapset.New[world.State]()
	candidates.Each(func(s world.State) {
		if f.allowed.Has(s) {
			narrowed.Put(s)
		}
	})
	return narrowed
}

// States returns the allowed states as a slice, in no particular order.
func (f Filter) States() []world.State {
	var states []world.State
	f.allowed.Each(func(s world.State) {
		states = append(states, s)
	})
	return states
}
