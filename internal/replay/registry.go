package replay

import "github.com/yuri91/swaystart/internal/layout"

type registryEntry struct {
	id       int64
	matchers []layout.Matcher
}

// Registry holds one entry per outstanding placeholder: the placeholder
// container id and the matchers describing which window may fill it.
// Entries only ever leave the registry; replay is complete when it is
// empty.
type Registry struct {
	entries []registryEntry
}

func NewRegistry() *Registry {
	return &Registry{}
}

// Add appends an entry. The id must be unique among live entries; that
// is the caller's responsibility.
func (r *Registry) Add(id int64, matchers []layout.Matcher) {
	r.entries = append(r.entries, registryEntry{id: id, matchers: matchers})
}

// Consume scans entries in insertion order and removes the first one
// with a matcher accepting n, returning its placeholder id. When two
// pending placeholders overlap, the earliest-created one wins. A miss
// leaves the registry untouched.
func (r *Registry) Consume(n *layout.Node) (int64, bool) {
	for i, e := range r.entries {
		for _, m := range e.matchers {
			if m.Matches(n) {
				r.entries = append(r.entries[:i], r.entries[i+1:]...)
				return e.id, true
			}
		}
	}
	return 0, false
}

// Remove deletes the entry for id, used when a placeholder closes
// before being swallowed. It reports whether an entry was removed.
func (r *Registry) Remove(id int64) bool {
	for i, e := range r.entries {
		if e.id == id {
			r.entries = append(r.entries[:i], r.entries[i+1:]...)
			return true
		}
	}
	return false
}

// Empty reports whether no placeholders remain outstanding.
func (r *Registry) Empty() bool {
	return len(r.entries) == 0
}

// Len returns the number of outstanding placeholders.
func (r *Registry) Len() int {
	return len(r.entries)
}
