package ir

import "sort"

// ReferencedScriptSet collects script GUIDs referenced by scenes.
//
// The set only grows: there is no Remove. A single set is shared by every
// scene processed in one run and read by the usage audit afterwards.
//
// The zero value is ready to use.
type ReferencedScriptSet struct {
	ids map[Identifier]struct{}
}

// NewReferencedScriptSet creates a set seeded with the given ids.
func NewReferencedScriptSet(ids ...Identifier) *ReferencedScriptSet {
	s := &ReferencedScriptSet{}
	for _, id := range ids {
		s.Add(id)
	}
	return s
}

// Add inserts id. Adding an id twice is a no-op.
func (s *ReferencedScriptSet) Add(id Identifier) {
	if s.ids == nil {
		s.ids = make(map[Identifier]struct{})
	}
	s.ids[id] = struct{}{}
}

// Contains reports whether id has been added.
func (s *ReferencedScriptSet) Contains(id Identifier) bool {
	if s == nil {
		return false
	}
	_, ok := s.ids[id]
	return ok
}

// Len returns the number of distinct ids.
func (s *ReferencedScriptSet) Len() int {
	if s == nil {
		return 0
	}
	return len(s.ids)
}

// Merge adds every id of other to s.
func (s *ReferencedScriptSet) Merge(other *ReferencedScriptSet) {
	if other == nil {
		return
	}
	for id := range other.ids {
		s.Add(id)
	}
}

// Sorted returns the ids in ascending order.
// Intended for diagnostics and JSON output; membership checks use Contains.
func (s *ReferencedScriptSet) Sorted() []Identifier {
	out := make([]Identifier, 0, s.Len())
	if s == nil {
		return out
	}
	for id := range s.ids {
		out = append(out, id)
	}
	sort.Slice(out, func(i, j int) bool { return out[i] < out[j] })
	return out
}
