package models

import "slices"

// ProfileSet is a name-keyed collection that remembers insertion order
type ProfileSet struct {
	order []string
	items map[string]Profile
}

// NewProfileSet creates a set holding the given profiles in order
func NewProfileSet(profiles ...Profile) *ProfileSet {
	s := &ProfileSet{items: make(map[string]Profile, len(profiles))}
	for _, p := range profiles {
		s.Put(p)
	}
	return s
}

// Put inserts p, or replaces the entry with the same name in place
func (s *ProfileSet) Put(p Profile) {
	if s.items == nil {
		s.items = make(map[string]Profile)
	}
	if _, ok := s.items[p.Name]; !ok {
		s.order = append(s.order, p.Name)
	}
	s.items[p.Name] = p.Clone()
}

// Delete removes the named entry and reports whether it existed
func (s *ProfileSet) Delete(name string) bool {
	if _, ok := s.items[name]; !ok {
		return false
	}
	delete(s.items, name)
	s.order = slices.DeleteFunc(s.order, func(n string) bool { return n == name })
	return true
}

// Get returns a copy of the named profile
func (s *ProfileSet) Get(name string) (Profile, bool) {
	p, ok := s.items[name]
	if !ok {
		return Profile{}, false
	}
	return p.Clone(), true
}

// Contains reports whether name is present
func (s *ProfileSet) Contains(name string) bool {
	_, ok := s.items[name]
	return ok
}

// Len returns the number of profiles
func (s *ProfileSet) Len() int {
	return len(s.order)
}

// Names returns the profile names in insertion order
func (s *ProfileSet) Names() []string {
	return slices.Clone(s.order)
}

// All returns copies of the profiles in insertion order
func (s *ProfileSet) All() []Profile {
	out := make([]Profile, 0, len(s.order))
	for _, name := range s.order {
		out = append(out, s.items[name].Clone())
	}
	return out
}

// Filter returns a new set with the profiles for which keep returns true
func (s *ProfileSet) Filter(keep func(Profile) bool) *ProfileSet {
	out := NewProfileSet()
	for _, p := range s.All() {
		if keep(p) {
			out.Put(p)
		}
	}
	return out
}

// ActiveOnly returns the enabled profiles
func (s *ProfileSet) ActiveOnly() *ProfileSet {
	return s.Filter(func(p Profile) bool { return p.IsActive })
}

// Copy returns an independent copy of the set
func (s *ProfileSet) Copy() *ProfileSet {
	return s.Filter(func(Profile) bool { return true })
}
