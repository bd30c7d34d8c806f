package logo

import (
	"strings"

	"github.com/okian/playercards/internal/domain/model"
	"github.com/okian/playercards/internal/domain/naming"
)

// Tier identifies which resolution strategy produced a match.
type Tier int

// Resolution tiers, tried in this order.
const (
	TierNone Tier = iota
	TierExact
	TierNormalized
	TierSubstring
)

func (t Tier) String() string {
	switch t {
	case TierExact:
		return "exact"
	case TierNormalized:
		return "normalized"
	case TierSubstring:
		return "substring"
	default:
		return "miss"
	}
}

// Match is a successful resolution.
type Match struct {
	URL  string `json:"url"`
	Key  string `json:"key"`
	Tier Tier   `json:"-"`
}

// Option configures a Resolver.
type Option func(*Resolver)

// WithLegacyEmptyMatch restores the historical behaviour where empty
// canonical keys take part in matching: a query whose key is empty ("!!!")
// matches the first map entry, and a map entry whose key is empty ("???")
// matches every query that reaches the substring tier. Off by default.
func WithLegacyEmptyMatch(enabled bool) Option {
	return func(r *Resolver) {
		r.legacyEmpty = enabled
	}
}

// Resolver maps free-text club names to logo URLs. It is stateless apart
// from its immutable Map and safe for concurrent use.
type Resolver struct {
	m           *Map
	legacyEmpty bool
}

// NewResolver creates a resolver over m.
func NewResolver(m *Map, opts ...Option) (*Resolver, error) {
	if m == nil {
		return nil, ErrNoMap
	}
	r := &Resolver{m: m}
	for _, opt := range opts {
		opt(r)
	}
	return r, nil
}

// Resolve finds the logo for query. First match wins:
//  1. query is literally a key
//  2. canonical keys are equal, in map order
//  3. either canonical key contains the other, in map order
//
// An empty query, or no match at any tier, reports false.
func (r *Resolver) Resolve(query string) (Match, bool) {
	if query == "" {
		return Match{}, false
	}

	if url, ok := r.m.Lookup(query); ok {
		return Match{URL: url, Key: query, Tier: TierExact}, true
	}

	q := naming.CanonicalKey(query)
	for i, k := range r.m.canonical {
		if k == q && (q != "" || r.legacyEmpty) {
			e := r.m.entries[i]
			return Match{URL: e.Logo, Key: e.Club, Tier: TierNormalized}, true
		}
	}

	contains := naming.Contains
	if r.legacyEmpty {
		contains = containsEither
	}
	for i, k := range r.m.canonical {
		if contains(q, k) {
			e := r.m.entries[i]
			return Match{URL: e.Logo, Key: e.Club, Tier: TierSubstring}, true
		}
	}

	return Match{}, false
}

// containsEither is naming.Contains without the empty-key guard.
func containsEither(a, b string) bool {
	return strings.Contains(a, b) || strings.Contains(b, a)
}

// ClubLogo returns the logo URL for club, or "" when nothing matches.
func (r *Resolver) ClubLogo(club string) string {
	m, _ := r.Resolve(club)
	return m.URL
}

// FallbackChain picks a team logo: the club map first, then the image that
// came with the player, then Placeholder. An empty Placeholder tells the
// caller to draw its own icon.
type FallbackChain struct {
	Resolver    *Resolver
	Placeholder string
}

// TeamLogo returns the chosen URL, the source it came from and the club map
// match (zero when the map missed).
func (c FallbackChain) TeamLogo(club, teamImage string) (string, string, Match) {
	if c.Resolver != nil {
		if m, ok := c.Resolver.Resolve(club); ok {
			return m.URL, model.LogoFromClubMap, m
		}
	}
	if teamImage != "" {
		return teamImage, model.LogoFromTeamImage, Match{}
	}
	return c.Placeholder, model.LogoPlaceholder, Match{}
}
