// Package types contains read shapes shared by the service and the HTTP feed.
package types

import (
	"time"

	"github.com/okian/playercards/internal/domain/model"
)

// DeckMeta describes the published deck.
type DeckMeta struct {
	SnapshotID   string    `json:"snapshot_id"`
	LoadedAt     time.Time `json:"loaded_at"`
	Count        int       `json:"count"`
	PricesMerged bool      `json:"prices_merged"`
	PriceSource  string    `json:"price_source"`
}

// CardView is one card with its slideshow neighbours (1-based numbers).
type CardView struct {
	Card model.Card `json:"card"`
	Prev int        `json:"prev"`
	Next int        `json:"next"`
}

// LogoLookup is the answer to a club logo query.
type LogoLookup struct {
	Club  string `json:"club"`
	URL   string `json:"url"`
	Key   string `json:"key,omitempty"`
	Tier  string `json:"tier"`
	Found bool   `json:"found"`
}
