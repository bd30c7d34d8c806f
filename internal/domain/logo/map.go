// Package logo resolves club names to logo URLs.
package logo

import (
	"fmt"
	"strings"

	"github.com/okian/playercards/internal/domain/naming"
)

// Entry is one club name to logo URL pair. Several entries may share a URL
// (full name and common aliases).
type Entry struct {
	Club string `yaml:"club" json:"club"`
	Logo string `yaml:"logo" json:"logo"`
}

// Map is an ordered, immutable club name to logo URL table. Iteration order
// is definition order, which decides ties in the fuzzy tiers.
type Map struct {
	entries   []Entry
	canonical []string
	exact     map[string]int
}

// NewMap builds a Map from entries. A repeated club name keeps the position
// of its first occurrence and the URL of its last one.
func NewMap(entries []Entry) (*Map, error) {
	m := &Map{
		entries:   make([]Entry, 0, len(entries)),
		canonical: make([]string, 0, len(entries)),
		exact:     make(map[string]int, len(entries)),
	}
	for i, e := range entries {
		if strings.TrimSpace(e.Club) == "" {
			return nil, fmt.Errorf("entry %d: %w", i, ErrEmptyKey)
		}
		if strings.TrimSpace(e.Logo) == "" {
			return nil, fmt.Errorf("entry %d (%q): %w", i, e.Club, ErrEmptyURL)
		}
		if pos, ok := m.exact[e.Club]; ok {
			m.entries[pos].Logo = e.Logo
			continue
		}
		m.exact[e.Club] = len(m.entries)
		m.entries = append(m.entries, e)
		m.canonical = append(m.canonical, naming.CanonicalKey(e.Club))
	}
	return m, nil
}

// MustMap is NewMap for static tables; it panics on invalid entries.
func MustMap(entries []Entry) *Map {
	m, err := NewMap(entries)
	if err != nil {
		panic(err)
	}
	return m
}

// Len returns the number of distinct club names.
func (m *Map) Len() int { return len(m.entries) }

// Lookup returns the URL stored under exactly club.
func (m *Map) Lookup(club string) (string, bool) {
	i, ok := m.exact[club]
	if !ok {
		return "", false
	}
	return m.entries[i].Logo, true
}

// Entries returns a copy of the entries in definition order.
func (m *Map) Entries() []Entry {
	out := make([]Entry, len(m.entries))
	copy(out, m.entries)
	return out
}
