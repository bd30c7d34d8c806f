// Package service provides the core business service that implements
// the dependencies required by the HTTP API and the CLI.
package service

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"sync"
	"time"

	"github.com/okian/playercards/internal/adapters/repository"
	"github.com/okian/playercards/internal/adapters/source"
	"github.com/okian/playercards/internal/domain/deck"
	"github.com/okian/playercards/internal/domain/logo"
	"github.com/okian/playercards/internal/domain/model"
	"github.com/okian/playercards/internal/domain/pricing"
	"github.com/okian/playercards/internal/domain/rating"
	"github.com/okian/playercards/internal/domain/types"
	"github.com/okian/playercards/pkg/logger"
	"github.com/okian/playercards/pkg/metrics"
)

const (
	sourcePlayers = "players"
	sourcePrices  = "prices"
	sourceLogoMap = "logo_map"
)

// Service loads the deck and answers card and logo queries.
type Service struct {
	mu sync.RWMutex

	// Core components
	store    repository.Store
	resolver *logo.Resolver
	merger   *pricing.Merger

	// Configuration
	playersPath      string
	pricesPath       string
	logoMapPath      string
	logoMap          *logo.Map
	mode             pricing.Mode
	placeholder      string
	legacyEmptyMatch bool
	httpClient       *http.Client
	fetchTimeout     time.Duration

	// State
	loads    int
	lastLoad time.Time

	logger logger.Logger
}

// Option applies a configuration option to the Service.
type Option func(*Service)

// WithLogger sets a custom logger for the service.
func WithLogger(l logger.Logger) Option {
	return func(s *Service) {
		if l != nil {
			s.logger = l
		}
	}
}

// WithPlayersPath sets the player list location.
func WithPlayersPath(loc string) Option {
	return func(s *Service) { s.playersPath = loc }
}

// WithPricesPath sets the price table location. Empty skips the merge.
func WithPricesPath(loc string) Option {
	return func(s *Service) { s.pricesPath = loc }
}

// WithLogoMapPath loads the club logo map from loc instead of the built-in one.
func WithLogoMapPath(loc string) Option {
	return func(s *Service) { s.logoMapPath = loc }
}

// WithLogoMap sets the club logo map directly.
func WithLogoMap(m *logo.Map) Option {
	return func(s *Service) {
		if m != nil {
			s.logoMap = m
		}
	}
}

// WithPriceMode picks which base price wins.
func WithPriceMode(mode pricing.Mode) Option {
	return func(s *Service) {
		if mode != "" {
			s.mode = mode
		}
	}
}

// WithPlaceholderLogo sets the last-resort team logo URL.
func WithPlaceholderLogo(url string) Option {
	return func(s *Service) { s.placeholder = url }
}

// WithLegacyEmptyMatch lets punctuation-only club names match the first map entry.
func WithLegacyEmptyMatch(enabled bool) Option {
	return func(s *Service) { s.legacyEmptyMatch = enabled }
}

// WithHTTPClient sets the client used for remote sources.
func WithHTTPClient(c *http.Client) Option {
	return func(s *Service) {
		if c != nil {
			s.httpClient = c
		}
	}
}

// WithFetchTimeout bounds each remote source fetch.
func WithFetchTimeout(d time.Duration) Option {
	return func(s *Service) {
		if d > 0 {
			s.fetchTimeout = d
		}
	}
}

// WithStore sets the deck store.
func WithStore(st repository.Store) Option {
	return func(s *Service) {
		if st != nil {
			s.store = st
		}
	}
}

// New constructs a new Service with default configuration.
func New(opts ...Option) *Service {
	s := &Service{
		store:        repository.NewMemoryStore(),
		logoMap:      source.DefaultLogoMap(),
		mode:         pricing.ModeCSV,
		httpClient:   http.DefaultClient,
		fetchTimeout: 20 * time.Second,
	}

	for _, opt := range opts {
		opt(s)
	}

	if s.logger == nil {
		s.logger = logger.Nop()
	}
	s.logger = s.logger.Named("service")
	s.merger = pricing.NewMerger(
		pricing.WithMode(s.mode),
		pricing.WithMatchObserver(metrics.RecordPriceMatch),
	)
	// logoMap is never nil here, so the resolver cannot fail.
	s.resolver, _ = logo.NewResolver(s.logoMap, s.resolverOpts()...)

	return s
}

func (s *Service) resolverOpts() []logo.Option {
	return []logo.Option{logo.WithLegacyEmptyMatch(s.legacyEmptyMatch)}
}

func (s *Service) loader() *source.Loader {
	return source.New(
		source.WithHTTPClient(s.httpClient),
		source.WithTimeout(s.fetchTimeout),
	)
}

// Load reads the sources, merges prices, builds the cards and publishes
// them. A player list failure is returned; a price table failure only
// leaves the deck unmerged.
func (s *Service) Load(ctx context.Context) (*repository.Snapshot, error) {
	start := time.Now()
	defer func() {
		metrics.RecordLoadDuration(float64(time.Since(start).Milliseconds()))
	}()

	l := s.loader()

	if err := s.loadLogoMap(ctx, l); err != nil {
		return nil, err
	}

	players, err := l.LoadPlayers(ctx, s.playersPath)
	metrics.RecordSourceLoad(sourcePlayers, err)
	if err != nil {
		s.logger.Error(ctx, "player list load failed",
			logger.String("location", s.playersPath),
			logger.Error(err),
		)
		return nil, fmt.Errorf("players: %w", err)
	}
	s.logger.Info(ctx, "player list loaded",
		logger.String("location", s.playersPath),
		logger.Int("players", len(players)),
	)

	merged, ok := s.mergePrices(ctx, l, players)

	snap, err := s.store.Publish(ctx, &repository.Snapshot{
		Cards:        s.buildCards(ctx, merged),
		PricesMerged: ok,
		Mode:         string(s.merger.Mode()),
	})
	if err != nil {
		return nil, fmt.Errorf("publish deck: %w", err)
	}

	s.mu.Lock()
	s.loads++
	s.lastLoad = snap.LoadedAt
	s.mu.Unlock()

	s.logger.Info(ctx, "deck published",
		logger.String("snapshot", snap.ID),
		logger.Int("cards", snap.Len()),
		logger.Bool("pricesMerged", snap.PricesMerged),
		logger.String("priceSource", snap.Mode),
	)
	return snap, nil
}

// LoadLogoMap swaps in the configured logo map, if any. Load does this too.
func (s *Service) LoadLogoMap(ctx context.Context) error {
	return s.loadLogoMap(ctx, s.loader())
}

func (s *Service) loadLogoMap(ctx context.Context, l *source.Loader) error {
	if s.logoMapPath == "" {
		return nil
	}
	m, err := l.LoadLogoMap(ctx, s.logoMapPath)
	metrics.RecordSourceLoad(sourceLogoMap, err)
	if err != nil {
		return fmt.Errorf("logo map: %w", err)
	}
	r, err := logo.NewResolver(m, s.resolverOpts()...)
	if err != nil {
		return fmt.Errorf("logo map: %w", err)
	}
	s.mu.Lock()
	s.resolver = r
	s.mu.Unlock()
	s.logger.Info(ctx, "logo map loaded",
		logger.String("location", s.logoMapPath),
		logger.Int("clubs", m.Len()),
	)
	return nil
}

func (s *Service) mergePrices(ctx context.Context, l *source.Loader, players []model.Player) ([]model.Player, bool) {
	if s.pricesPath == "" {
		s.logger.Warn(ctx, "no price table configured, using player prices")
		return pricing.Unmerged(players), false
	}

	rows, err := l.LoadPrices(ctx, s.pricesPath)
	metrics.RecordSourceLoad(sourcePrices, err)
	if err != nil {
		s.logger.Warn(ctx, "price table load failed, using player prices",
			logger.String("location", s.pricesPath),
			logger.Error(err),
		)
		return pricing.Unmerged(players), false
	}

	res := s.merger.Merge(players, rows)
	s.logger.Info(ctx, "prices merged",
		logger.Int("rows", len(rows)),
		logger.Int("matched", res.Matched),
		logger.Int("unmatched", res.Unmatched),
	)
	return res.Players, true
}

func (s *Service) buildCards(ctx context.Context, players []model.Player) []model.Card {
	chain := logo.FallbackChain{Resolver: s.currentResolver(), Placeholder: s.placeholder}

	cards := make([]model.Card, len(players))
	for i, p := range players {
		url, from, match := chain.TeamLogo(p.Club, p.Images.Team)
		metrics.RecordLogoResolution(match.Tier.String())
		metrics.RecordLogoFallback(from)
		if from != model.LogoFromClubMap {
			s.logger.Debug(ctx, "club not in logo map",
				logger.String("club", p.Club),
				logger.String("logoSource", from),
			)
		}

		cards[i] = model.Card{
			Number:     i + 1,
			Player:     p,
			TeamLogo:   url,
			LogoSource: from,
			NationLogo: p.Images.Nation,
			Headshot:   p.Images.Headshot,
			StatLines:  rating.Lines(p.Stats),
		}
	}
	return cards
}

func (s *Service) currentResolver() *logo.Resolver {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.resolver
}

// Cards returns every card with the deck metadata.
func (s *Service) Cards(ctx context.Context) ([]model.Card, types.DeckMeta, error) {
	snap, err := s.store.Current(ctx)
	if err != nil {
		return nil, types.DeckMeta{}, err
	}
	return snap.Cards, meta(snap), nil
}

func meta(snap *repository.Snapshot) types.DeckMeta {
	return types.DeckMeta{
		SnapshotID:   snap.ID,
		LoadedAt:     snap.LoadedAt,
		Count:        snap.Len(),
		PricesMerged: snap.PricesMerged,
		PriceSource:  snap.Mode,
	}
}

// Card returns the card with the 1-based number and its neighbours.
func (s *Service) Card(ctx context.Context, number int) (types.CardView, error) {
	snap, err := s.store.Current(ctx)
	if err != nil {
		return types.CardView{}, err
	}
	idx, ok := deck.IndexOf(number, snap.Len())
	if !ok {
		return types.CardView{}, repository.ErrNotFound
	}
	prev, next := deck.Neighbors(number, snap.Len())
	return types.CardView{Card: snap.Cards[idx], Prev: prev, Next: next}, nil
}

// Neighbors returns the numbers before and after number, wrapping around.
func (s *Service) Neighbors(ctx context.Context, number int) (prev, next int, err error) {
	snap, err := s.store.Current(ctx)
	if err != nil {
		return 0, 0, err
	}
	if _, ok := deck.IndexOf(number, snap.Len()); !ok {
		return 0, 0, repository.ErrNotFound
	}
	prev, next = deck.Neighbors(number, snap.Len())
	return prev, next, nil
}

// FindCard returns the card whose player name loosely equals name.
func (s *Service) FindCard(ctx context.Context, name string) (model.Card, error) {
	return s.store.FindByName(ctx, name)
}

// ResolveLogo looks club up in the logo map. A miss is not an error.
func (s *Service) ResolveLogo(ctx context.Context, club string) types.LogoLookup {
	m, ok := s.currentResolver().Resolve(club)
	metrics.RecordLogoResolution(m.Tier.String())
	s.logger.Debug(ctx, "logo lookup",
		logger.String("club", club),
		logger.String("tier", m.Tier.String()),
	)
	return types.LogoLookup{
		Club:  club,
		URL:   m.URL,
		Key:   m.Key,
		Tier:  m.Tier.String(),
		Found: ok,
	}
}

// GetStats returns service statistics for monitoring.
func (s *Service) GetStats() map[string]interface{} {
	s.mu.RLock()
	defer s.mu.RUnlock()

	ctx := context.Background()
	stats := map[string]interface{}{
		"loads":       s.loads,
		"priceSource": string(s.merger.Mode()),
		"cards":       s.store.Count(ctx),
	}
	if s.loads > 0 {
		stats["lastLoad"] = s.lastLoad
	}
	if snap, err := s.store.Current(ctx); err == nil {
		stats["snapshot"] = snap.ID
		stats["pricesMerged"] = snap.PricesMerged
	} else if !errors.Is(err, repository.ErrEmpty) {
		stats["storeError"] = err.Error()
	}
	return stats
}
