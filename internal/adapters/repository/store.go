// Package repository holds the published deck.
package repository

import (
	"context"
	"time"

	"github.com/okian/playercards/internal/domain/model"
)

// Snapshot is one immutable published deck. Cards are numbered from 1 in
// Cards order.
type Snapshot struct {
	ID           string
	LoadedAt     time.Time
	Cards        []model.Card
	PricesMerged bool
	Mode         string
}

// Len returns the number of cards.
func (s *Snapshot) Len() int {
	if s == nil {
		return 0
	}
	return len(s.Cards)
}

// Store provides read/write access to the current deck.
type Store interface {
	// Publish replaces the current deck. ID and LoadedAt are filled in when
	// left blank.
	Publish(ctx context.Context, snap *Snapshot) (*Snapshot, error)

	// Current returns the latest deck, or ErrEmpty before the first publish.
	Current(ctx context.Context) (*Snapshot, error)

	// At returns the card at a 0-based index of the current deck.
	At(ctx context.Context, index int) (model.Card, error)

	// FindByName returns the first card whose name loosely equals name.
	FindByName(ctx context.Context, name string) (model.Card, error)

	// Count returns the number of cards in the current deck.
	Count(ctx context.Context) int
}
