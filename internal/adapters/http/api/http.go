// Package api declares HTTP contracts and route registration helpers.
package api

import (
	"context"
	"errors"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	jsoniter "github.com/json-iterator/go"
	"github.com/rs/cors"

	"github.com/okian/playercards/internal/adapters/repository"
	"github.com/okian/playercards/internal/domain/model"
	"github.com/okian/playercards/internal/domain/types"
	"github.com/okian/playercards/pkg/logger"
)

var json = jsoniter.ConfigCompatibleWithStandardLibrary

// Dependencies required by HTTP handlers. Using an interface bundle keeps
// the handler layer loosely coupled to implementations in other packages.
type Dependencies interface {
	StatsProvider

	// Cards returns the whole deck in card order.
	Cards(ctx context.Context) ([]model.Card, types.DeckMeta, error)
	// Card returns one card by its 1-based number.
	Card(ctx context.Context, number int) (types.CardView, error)
	// ResolveLogo looks a club up in the logo map.
	ResolveLogo(ctx context.Context, club string) types.LogoLookup
}

// Server wires HTTP routes for the card feed.
type Server struct {
	healthHandler  *HealthHandler
	statsHandler   *StatsHandler
	playersHandler *PlayersHandler
	logoHandler    *LogoHandler

	corsOrigins []string
	rateRPS     float64
	rateBurst   int
	mounts      []func(chi.Router)
	logger      logger.Logger
}

// Option configures a Server.
type Option func(*Server)

// WithCORSOrigins sets the browser origins allowed to read the feed.
func WithCORSOrigins(origins []string) Option {
	return func(s *Server) {
		if len(origins) > 0 {
			s.corsOrigins = origins
		}
	}
}

// WithRateLimit limits each client IP to rps requests per second with the
// given burst. A non-positive rps disables the limit.
func WithRateLimit(rps float64, burst int) Option {
	return func(s *Server) {
		s.rateRPS = rps
		s.rateBurst = burst
	}
}

// WithMount registers extra routes, such as the OpenAPI document.
func WithMount(fn func(chi.Router)) Option {
	return func(s *Server) {
		if fn != nil {
			s.mounts = append(s.mounts, fn)
		}
	}
}

// WithLogger sets the logger used for request failures.
func WithLogger(l logger.Logger) Option {
	return func(s *Server) {
		if l != nil {
			s.logger = l
		}
	}
}

// NewServer creates a new API server with all handlers.
func NewServer(deps Dependencies, opts ...Option) *Server {
	s := &Server{
		corsOrigins: []string{"*"},
		logger:      logger.Nop(),
	}
	for _, opt := range opts {
		opt(s)
	}
	s.healthHandler = NewHealthHandler()
	s.statsHandler = NewStatsHandler(deps)
	s.playersHandler = NewPlayersHandler(deps, s.logger)
	s.logoHandler = NewLogoHandler(deps)
	return s
}

// Router builds the chi router with middleware and all routes.
func (s *Server) Router(_ context.Context) http.Handler {
	r := chi.NewRouter()

	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(middleware.Recoverer)
	r.Use(middleware.GetHead)

	c := cors.New(cors.Options{
		AllowedOrigins:   s.corsOrigins,
		AllowedMethods:   []string{http.MethodGet, http.MethodHead, http.MethodOptions},
		AllowedHeaders:   []string{"Accept", "Content-Type", "Cache-Control"},
		AllowCredentials: false,
	})
	r.Use(c.Handler)

	if s.rateRPS > 0 {
		r.Use(RateLimitMiddleware(s.rateRPS, s.rateBurst))
	}

	r.Get("/healthz", MetricsMiddleware(s.healthHandler.HandleHealth, "healthz"))
	r.Get("/stats", MetricsMiddleware(s.statsHandler.HandleStats, "stats"))

	r.Route("/api/v1", func(r chi.Router) {
		r.Get("/players", MetricsMiddleware(s.playersHandler.HandleList, "players"))
		r.Get("/players/{number}", MetricsMiddleware(s.playersHandler.HandleGet, "player"))
		r.Get("/logo", MetricsMiddleware(s.logoHandler.HandleGet, "logo"))
	})

	for _, mount := range s.mounts {
		mount(r)
	}
	return r
}

type errorResponse struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func writeError(w http.ResponseWriter, status int, code string, err error) {
	msg := http.StatusText(status)
	if err != nil {
		msg = err.Error()
	}
	writeJSON(w, status, errorResponse{Code: code, Message: msg})
}

// writeStoreError maps deck store errors onto HTTP statuses.
func writeStoreError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, repository.ErrNotFound):
		writeError(w, http.StatusNotFound, "not_found", err)
	case errors.Is(err, repository.ErrEmpty):
		writeError(w, http.StatusServiceUnavailable, "deck_not_loaded", err)
	default:
		writeError(w, http.StatusInternalServerError, "internal", nil)
	}
}
