package throws

import "strings"

// Set is a deduplicated collection of canonical exception type names. It
// preserves insertion order for reporting and optionally remembers the first
// call chain that reached each type.
type Set struct {
	order  []string
	seen   map[string]bool
	chains map[string][]string
}

func NewSet() *Set {
	return &Set{seen: map[string]bool{}, chains: map[string][]string{}}
}

// Add records an exception type with the call chain that produced it. The
// chain of a repeated type is kept from its first sighting.
func (s *Set) Add(name string, chain []string) {
	if name == "" {
		return
	}
	key := strings.ToLower(name)
	if s.seen[key] {
		return
	}
	s.seen[key] = true
	s.order = append(s.order, name)
	if len(chain) > 0 {
		s.chains[key] = append([]string(nil), chain...)
	}
}

// Has reports membership, case-insensitively.
func (s *Set) Has(name string) bool {
	return s.seen[strings.ToLower(name)]
}

// Values returns the members in first-seen order.
func (s *Set) Values() []string {
	return s.order
}

// Chain returns the recorded call chain for a member, or nil.
func (s *Set) Chain(name string) []string {
	return s.chains[strings.ToLower(name)]
}

func (s *Set) Len() int {
	return len(s.order)
}
