package model

import "sort"

// EntitySet is an unordered set of entity IDs.
//
// The set operations below never modify their receiver or argument; they
// return fresh sets so that cached sets can be shared safely.
type EntitySet map[EntityID]struct{}

// NewEntitySet returns a set holding ids.
func NewEntitySet(ids ...EntityID) EntitySet {
	s := make(EntitySet, len(ids))
	for _, id := range ids {
		s[id] = struct{}{}
	}
	return s
}

// Add inserts id into the set.
func (s EntitySet) Add(id EntityID) {
	s[id] = struct{}{}
}

// Has reports whether id is in the set.
func (s EntitySet) Has(id EntityID) bool {
	_, ok := s[id]
	return ok
}

// Len returns the number of entities in the set.
func (s EntitySet) Len() int { return len(s) }

// Clone returns a copy of the set.
func (s EntitySet) Clone() EntitySet {
	out := make(EntitySet, len(s))
	for id := range s {
		out[id] = struct{}{}
	}
	return out
}

// Union returns s ∪ other.
func (s EntitySet) Union(other EntitySet) EntitySet {
	out := make(EntitySet, len(s)+len(other))
	for id := range s {
		out[id] = struct{}{}
	}
	for id := range other {
		out[id] = struct{}{}
	}
	return out
}

// Intersect returns s ∩ other.
func (s EntitySet) Intersect(other EntitySet) EntitySet {
	small, large := s, other
	if len(large) < len(small) {
		small, large = large, small
	}
	out := make(EntitySet)
	for id := range small {
		if _, ok := large[id]; ok {
			out[id] = struct{}{}
		}
	}
	return out
}

// Difference returns s − other.
func (s EntitySet) Difference(other EntitySet) EntitySet {
	out := make(EntitySet, len(s))
	for id := range s {
		if _, ok := other[id]; !ok {
			out[id] = struct{}{}
		}
	}
	return out
}

// Equal reports whether both sets hold the same entities.
func (s EntitySet) Equal(other EntitySet) bool {
	if len(s) != len(other) {
		return false
	}
	for id := range s {
		if _, ok := other[id]; !ok {
			return false
		}
	}
	return true
}

// Sorted returns the set's members in ascending order.
func (s EntitySet) Sorted() []EntityID {
	out := make([]EntityID, 0, len(s))
	for id := range s {
		out = append(out, id)
	}
	sort.Slice(out, func(i, j int) bool { return out[i] < out[j] })
	return out
}
