// Package pricing joins player records with a price table by player name.
package pricing

import (
	"fmt"
	"strings"

	"github.com/okian/playercards/internal/domain/model"
	"github.com/okian/playercards/internal/domain/naming"
)

// Mode selects where the final base price comes from.
type Mode string

const (
	// ModeCSV takes the matched price row as authoritative, falling back to
	// the player's own base_price, then to "N/A".
	ModeCSV Mode = "csv"
	// ModePlayerField ignores the matched row's price and always uses the
	// player's own base_price or "N/A". Matches are still computed and
	// reported.
	ModePlayerField Mode = "player"
)

// ParseMode parses a configured mode name.
func ParseMode(s string) (Mode, error) {
	switch Mode(strings.ToLower(strings.TrimSpace(s))) {
	case "", ModeCSV:
		return ModeCSV, nil
	case ModePlayerField:
		return ModePlayerField, nil
	default:
		return "", fmt.Errorf("%w: %q", ErrUnknownMode, s)
	}
}

// Option configures a Merger.
type Option func(*Merger)

// WithMode sets the price source mode.
func WithMode(mode Mode) Option {
	return func(m *Merger) {
		if mode != "" {
			m.mode = mode
		}
	}
}

// WithMatchObserver registers a callback invoked once per player with the
// join outcome.
func WithMatchObserver(fn func(matched bool)) Option {
	return func(m *Merger) {
		m.observe = fn
	}
}

// Merger attaches base prices to player records.
type Merger struct {
	mode    Mode
	observe func(matched bool)
}

// NewMerger creates a merger; the default mode is ModeCSV.
func NewMerger(opts ...Option) *Merger {
	m := &Merger{mode: ModeCSV}
	for _, opt := range opts {
		opt(m)
	}
	return m
}

// Mode returns the configured mode.
func (m *Merger) Mode() Mode { return m.mode }

// Result is the outcome of a merge.
type Result struct {
	Players   []model.Player
	Matched   int
	Unmatched int
}

// Merge returns a copy of players, in the same order, with BasePrice set on
// every record. A player matches the first row, in row order, whose loose
// name equals, contains or is contained by the player's loose name.
func (m *Merger) Merge(players []model.Player, rows []model.PriceRow) Result {
	keys := make([]string, len(rows))
	for i, row := range rows {
		keys[i] = naming.LooseKey(row.Name)
	}

	res := Result{Players: make([]model.Player, len(players))}
	for i, p := range players {
		row, ok := findRow(naming.LooseKey(p.Name), keys, rows)
		if ok {
			res.Matched++
		} else {
			res.Unmatched++
		}
		if m.observe != nil {
			m.observe(ok)
		}

		p.BasePrice = p.OwnPrice()
		if ok && m.mode == ModeCSV {
			if price := strings.TrimSpace(row.BasePrice); price != "" {
				p.BasePrice = price
			}
		}
		res.Players[i] = p
	}
	return res
}

// Unmerged sets BasePrice from each player's own field. Used when no price
// table is available.
func Unmerged(players []model.Player) []model.Player {
	out := make([]model.Player, len(players))
	for i, p := range players {
		p.BasePrice = p.OwnPrice()
		out[i] = p
	}
	return out
}

func findRow(name string, keys []string, rows []model.PriceRow) (model.PriceRow, bool) {
	for i, k := range keys {
		if naming.Contains(name, k) {
			return rows[i], true
		}
	}
	return model.PriceRow{}, false
}
