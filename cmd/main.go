package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/itbasis/go-clock"
	"golang.org/x/sync/errgroup"

	"github.com/Dosada05/sports-management/config"
	"github.com/Dosada05/sports-management/db"
	"github.com/Dosada05/sports-management/handlers"
	"github.com/Dosada05/sports-management/repositories"
	api "github.com/Dosada05/sports-management/routes"
	"github.com/Dosada05/sports-management/services"
	"github.com/Dosada05/sports-management/view"
)

const shutdownTimeout = 15 * time.Second

func main() {
	if err := run(); err != nil {
		slog.Error("application exited with error", slog.Any("error", err))
		os.Exit(1)
	}
}

func run() error {
	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("failed to load configuration: %w", err)
	}

	logger := slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{Level: cfg.LogLevel}))
	slog.SetDefault(logger)
	logger.Info("configuration loaded",
		slog.String("driver", string(cfg.StoreDriver)),
		slog.Any("services", cfg.Services),
	)

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	openCtx, cancelOpen := context.WithTimeout(ctx, cfg.ConnectTimeout+cfg.ServerSelectionTimeout)
	store, err := db.Open(openCtx, cfg.StoreOptions(), logger)
	cancelOpen()
	if err != nil {
		return fmt.Errorf("failed to open record store: %w", err)
	}
	defer func() {
		closeCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := store.Close(closeCtx); err != nil {
			logger.Error("failed to close record store", slog.Any("error", err))
		} else {
			logger.Info("record store closed")
		}
	}()
	logger.Info("record store ready")

	clk := clock.New()

	personRepo := repositories.NewPersonRepository(store.People)
	matchRepo := repositories.NewMatchRepository(store.Matches)
	reviewRepo := repositories.NewReviewRepository(store.Reviews)

	matchService := services.NewMatchService(matchRepo, clk, services.RandomID)
	reviewService := services.NewReviewService(reviewRepo, clk, services.RandomID)
	personService := services.NewPersonService(personRepo, clk)

	routeOpts := api.Options{Logger: logger, AllowedOrigins: cfg.AllowedOrigins}

	var servers []*http.Server
	if cfg.Runs(config.ServiceCoach) {
		pages := handlers.NewPages(view.New(view.CoachTheme), logger.With(slog.String("service", config.ServiceCoach)))
		coachHandler := handlers.NewCoachHandler(pages, matchService, reviewService, personService)
		servers = append(servers, newServer(cfg.CoachPort, api.CoachRoutes(coachHandler, routeOpts), logger))
	}
	if cfg.Runs(config.ServicePlayer) {
		pages := handlers.NewPages(view.New(view.PlayerTheme), logger.With(slog.String("service", config.ServicePlayer)))
		playerHandler := handlers.NewPlayerHandler(pages, matchService, reviewService, personService)
		servers = append(servers, newServer(cfg.PlayerPort, api.PlayerRoutes(playerHandler, routeOpts), logger))
	}

	return serve(ctx, servers, logger)
}

func newServer(port int, handler http.Handler, logger *slog.Logger) *http.Server {
	return &http.Server{
		Addr:         fmt.Sprintf(":%d", port),
		Handler:      handler,
		ReadTimeout:  10 * time.Second,
		WriteTimeout: 10 * time.Second,
		IdleTimeout:  120 * time.Second,
		ErrorLog:     slog.NewLogLogger(logger.Handler(), slog.LevelError),
	}
}

// serve runs every server until ctx is cancelled or one of them fails, then
// shuts them all down.
func serve(ctx context.Context, servers []*http.Server, logger *slog.Logger) error {
	g, gctx := errgroup.WithContext(ctx)

	for _, server := range servers {
		g.Go(func() error {
			logger.Info("starting server", slog.String("address", server.Addr))
			if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
				return fmt.Errorf("server %s: %w", server.Addr, err)
			}
			return nil
		})
	}

	g.Go(func() error {
		<-gctx.Done()
		logger.Info("shutting down servers", slog.Duration("timeout", shutdownTimeout))

		shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()

		var errs []error
		for _, server := range servers {
			if err := server.Shutdown(shutdownCtx); err != nil {
				logger.Error("graceful shutdown failed", slog.String("address", server.Addr), slog.Any("error", err))
				if closeErr := server.Close(); closeErr != nil {
					errs = append(errs, closeErr)
				}
				errs = append(errs, err)
			}
		}
		if len(errs) == 0 {
			logger.Info("server shutdown complete")
		}
		return errors.Join(errs...)
	})

	return g.Wait()
}
