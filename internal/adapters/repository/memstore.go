package repository

import (
	"context"
	"sync/atomic"
	"time"

	"github.com/google/uuid"

	"github.com/okian/playercards/internal/domain/model"
	"github.com/okian/playercards/internal/domain/naming"
	"github.com/okian/playercards/pkg/metrics"
)

// MemoryStore keeps the current deck behind an atomic pointer. Readers never
// lock; a publish swaps the whole snapshot.
type MemoryStore struct {
	current atomic.Pointer[Snapshot]
	now     func() time.Time
	newID   func() string
}

var _ Store = (*MemoryStore)(nil)

// NewMemoryStore creates an empty store.
func NewMemoryStore(opts ...Option) *MemoryStore {
	s := &MemoryStore{
		now:   time.Now,
		newID: uuid.NewString,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Publish stores a copy of snap as the current deck and returns it.
func (s *MemoryStore) Publish(_ context.Context, snap *Snapshot) (*Snapshot, error) {
	if snap == nil {
		return nil, ErrNilDeck
	}
	cp := *snap
	cp.Cards = make([]model.Card, len(snap.Cards))
	copy(cp.Cards, snap.Cards)
	if cp.ID == "" {
		cp.ID = s.newID()
	}
	if cp.LoadedAt.IsZero() {
		cp.LoadedAt = s.now()
	}

	s.current.Store(&cp)
	metrics.UpdateDeck(len(cp.Cards), cp.PricesMerged)
	return &cp, nil
}

// Current returns the latest deck.
func (s *MemoryStore) Current(_ context.Context) (*Snapshot, error) {
	snap := s.current.Load()
	if snap == nil {
		return nil, ErrEmpty
	}
	return snap, nil
}

// At returns the card at index.
func (s *MemoryStore) At(ctx context.Context, index int) (model.Card, error) {
	snap, err := s.Current(ctx)
	if err != nil {
		return model.Card{}, err
	}
	if index < 0 || index >= len(snap.Cards) {
		return model.Card{}, ErrNotFound
	}
	return snap.Cards[index], nil
}

// FindByName compares loose keys. An empty name never matches.
func (s *MemoryStore) FindByName(ctx context.Context, name string) (model.Card, error) {
	snap, err := s.Current(ctx)
	if err != nil {
		return model.Card{}, err
	}
	want := naming.LooseKey(name)
	if want == "" {
		return model.Card{}, ErrNotFound
	}
	for _, c := range snap.Cards {
		if naming.LooseKey(c.Name) == want {
			return c, nil
		}
	}
	return model.Card{}, ErrNotFound
}

// Count returns the number of cards, 0 before the first publish.
func (s *MemoryStore) Count(_ context.Context) int {
	return s.current.Load().Len()
}
