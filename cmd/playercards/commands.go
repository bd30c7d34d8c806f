package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strconv"
	"time"

	"github.com/go-chi/chi/v5"
	jsoniter "github.com/json-iterator/go"
	"github.com/spf13/cobra"

	"github.com/okian/playercards/internal/adapters/http/api"
	"github.com/okian/playercards/internal/adapters/http/site"
	"github.com/okian/playercards/internal/adapters/http/swagger"
	service "github.com/okian/playercards/internal/app"
	"github.com/okian/playercards/internal/config"
	"github.com/okian/playercards/internal/domain/model"
	"github.com/okian/playercards/internal/domain/pricing"
	"github.com/okian/playercards/pkg/logger"
)

// HTTP server timeout constants.
const (
	readTimeout       = 10 * time.Second
	writeTimeout      = 10 * time.Second
	idleTimeout       = 60 * time.Second
	readHeaderTimeout = 5 * time.Second
	shutdownTimeout   = 30 * time.Second
)

var json = jsoniter.ConfigCompatibleWithStandardLibrary

// flags override the matching config keys when set.
type flags struct {
	players     string
	prices      string
	logoMap     string
	priceSource string
}

// env is what every subcommand runs with.
type env struct {
	cfg *config.Config
	log logger.Logger
	out io.Writer
}

func newRootCmd(out io.Writer) *cobra.Command {
	var (
		f flags
		e = &env{out: out}
	)

	root := &cobra.Command{
		Use:           "playercards",
		Short:         "Player card deck builder and feed",
		SilenceUsage:  true,
		PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
			cfg, err := config.Load(cmd.Context())
			if err != nil {
				return err
			}
			f.apply(cmd, cfg)
			if err := cfg.Validate(); err != nil {
				return err
			}
			if err := logger.Init(logger.WithWriter(cmd.ErrOrStderr()), logger.WithFormat(cfg.LogFormat)); err != nil {
				return err
			}
			if err := logger.SetLevelString(cfg.LogLevel); err != nil {
				return err
			}
			e.cfg = cfg
			e.log = logger.Get()
			return nil
		},
	}
	root.SetOut(out)

	pf := root.PersistentFlags()
	pf.StringVar(&f.players, "players", "", "player list path or URL (overrides players_path)")
	pf.StringVar(&f.prices, "prices", "", "price table path or URL (overrides prices_path)")
	pf.StringVar(&f.logoMap, "logo-map", "", "club logo map YAML path or URL (overrides logo_map_path)")
	pf.StringVar(&f.priceSource, "price-source", "", "which base price wins: csv or player (overrides price_source)")

	root.AddCommand(serveCmd(e))
	root.AddCommand(resolveCmd(e))
	root.AddCommand(mergeCmd(e))
	root.AddCommand(cardCmd(e))
	return root
}

func (f flags) apply(cmd *cobra.Command, cfg *config.Config) {
	pf := cmd.Flags()
	if pf.Changed("players") {
		cfg.PlayersPath = f.players
	}
	if pf.Changed("prices") {
		cfg.PricesPath = f.prices
	}
	if pf.Changed("logo-map") {
		cfg.LogoMapPath = f.logoMap
	}
	if pf.Changed("price-source") {
		cfg.PriceSource = f.priceSource
	}
}

// newService builds the card service from config.
func newService(e *env) *service.Service {
	// Validate has already checked the mode.
	mode, _ := pricing.ParseMode(e.cfg.PriceSource)
	return service.New(
		service.WithLogger(e.log),
		service.WithPlayersPath(e.cfg.PlayersPath),
		service.WithPricesPath(e.cfg.PricesPath),
		service.WithLogoMapPath(e.cfg.LogoMapPath),
		service.WithPriceMode(mode),
		service.WithPlaceholderLogo(e.cfg.PlaceholderLogo),
		service.WithLegacyEmptyMatch(e.cfg.LegacyEmptyMatch),
		service.WithFetchTimeout(e.cfg.FetchTimeout()),
	)
}

func serveCmd(e *env) *cobra.Command {
	return &cobra.Command{
		Use:   "serve",
		Short: "Load the deck and serve the card feed over HTTP",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			ctx := cmd.Context()
			svc := newService(e)
			if _, err := svc.Load(ctx); err != nil {
				return fmt.Errorf("load deck: %w", err)
			}

			srv := &http.Server{
				Addr:              e.cfg.Addr,
				Handler:           newHandler(ctx, e, svc),
				ReadTimeout:       readTimeout,
				WriteTimeout:      writeTimeout,
				IdleTimeout:       idleTimeout,
				ReadHeaderTimeout: readHeaderTimeout,
			}
			return runServer(ctx, e.log, srv)
		},
	}
}

func newHandler(ctx context.Context, e *env, svc *service.Service) http.Handler {
	return api.NewServer(svc,
		api.WithLogger(e.log.Named("http")),
		api.WithCORSOrigins(e.cfg.CORSOrigins),
		api.WithRateLimit(e.cfg.RateLimitRPS, e.cfg.RateLimitBurst),
		api.WithMount(func(r chi.Router) { swagger.Register(ctx, r) }),
		api.WithMount(func(r chi.Router) { site.Register(ctx, r) }),
	).Router(ctx)
}

// runServer serves until ctx is done, then shuts down gracefully.
func runServer(ctx context.Context, log logger.Logger, srv *http.Server) error {
	errCh := make(chan error, 1)
	go func() {
		log.Info(ctx, "starting HTTP server", logger.String("addr", srv.Addr))
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	select {
	case err, ok := <-errCh:
		if ok {
			return fmt.Errorf("http server: %w", err)
		}
		return nil
	case <-ctx.Done():
	}
	log.Info(ctx, "shutting down server...")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Error(ctx, "server shutdown failed", logger.Error(err))
		return err
	}
	log.Info(ctx, "server stopped")
	return nil
}

func resolveCmd(e *env) *cobra.Command {
	return &cobra.Command{
		Use:   "resolve <club>...",
		Short: "Resolve club names to logo URLs",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			svc := newService(e)
			if err := svc.LoadLogoMap(cmd.Context()); err != nil {
				return err
			}
			for _, club := range args {
				res := svc.ResolveLogo(cmd.Context(), club)
				if !res.Found {
					fmt.Fprintf(e.out, "%s → not found\n", club)
					continue
				}
				fmt.Fprintf(e.out, "%s → %s (%s)\n", club, res.URL, res.Tier)
			}
			return nil
		},
	}
}

func mergeCmd(e *env) *cobra.Command {
	return &cobra.Command{
		Use:   "merge",
		Short: "Print the player list with merged base prices as JSON",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			svc := newService(e)
			snap, err := svc.Load(cmd.Context())
			if err != nil {
				return err
			}
			players := make([]model.Player, len(snap.Cards))
			for i, c := range snap.Cards {
				players[i] = c.Player
			}
			return writeOut(e.out, players)
		},
	}
}

func cardCmd(e *env) *cobra.Command {
	return &cobra.Command{
		Use:   "card <number|name>",
		Short: "Print one card as JSON, by 1-based number or player name",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			svc := newService(e)
			if _, err := svc.Load(ctx); err != nil {
				return err
			}

			number, err := strconv.Atoi(args[0])
			if err != nil {
				c, err := svc.FindCard(ctx, args[0])
				if err != nil {
					return fmt.Errorf("card %q: %w", args[0], err)
				}
				number = c.Number
			}
			view, err := svc.Card(ctx, number)
			if err != nil {
				return fmt.Errorf("card %d: %w", number, err)
			}
			return writeOut(e.out, view)
		},
	}
}

func writeOut(w io.Writer, v any) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}
