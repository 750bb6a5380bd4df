// Package api implements the boost engine HTTP server process.
package api

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.uber.org/zap"

	apphttp "github.com/racetoliberty/boost-engine/pkg/app/http"
	boostservice "github.com/racetoliberty/boost-engine/pkg/boost/service"
	"github.com/racetoliberty/boost-engine/pkg/config"
	"github.com/racetoliberty/boost-engine/pkg/dispatch"
	dispatchservice "github.com/racetoliberty/boost-engine/pkg/dispatch/service"
	"github.com/racetoliberty/boost-engine/pkg/dispatchstore"
	"github.com/racetoliberty/boost-engine/pkg/leaderboard"
	"github.com/racetoliberty/boost-engine/pkg/ledgerstore"
	"github.com/racetoliberty/boost-engine/pkg/pgutil"
	winnerservice "github.com/racetoliberty/boost-engine/pkg/winner/service"
	"github.com/racetoliberty/boost-engine/pkg/winnerstore"
)

// Server holds configuration for the boost engine process.
type Server struct {
	cfg *config.Config
}

// NewServer initializes a new engine Server.
func NewServer(cfg *config.Config) *Server {
	return &Server{cfg: cfg}
}

// Run wires stores, services and the HTTP router, then blocks until an
// OS shutdown signal is received or a fatal server error occurs.
func (s *Server) Run() error {
	if s.cfg == nil {
		return fmt.Errorf("nil config")
	}
	cfg := s.cfg

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	logger, err := config.NewLogger(cfg.Logging)
	if err != nil {
		return fmt.Errorf("create logger: %w", err)
	}
	defer func() { _ = logger.Sync() }()

	logger.Info("Starting Race to Liberty boost engine")

	db, err := pgutil.ConnectDB(&cfg.Database)
	if err != nil {
		return fmt.Errorf("connect engine db: %w", err)
	}
	defer func() { _ = db.Close() }()
	logger.Info("Database connection established")

	ledger := ledgerstore.NewStore(db)
	winners := winnerstore.NewStore(db)
	dispatches := dispatchstore.NewStore(db)

	senders, podcast, err := s.newDispatchClients()
	if err != nil {
		return fmt.Errorf("initialize dispatch clients: %w", err)
	}

	boostSvc := boostservice.NewLog(
		boostservice.NewService(ledger, logger),
		logger,
	)
	leaderboardSvc := leaderboard.NewService(ledger, winners, logger)
	winnerSvc := winnerservice.NewService(winners, leaderboardSvc, logger)
	dispatchSvc := dispatchservice.NewLog(
		dispatchservice.NewService(dispatches, winners, ledger, leaderboardSvc, senders, podcast, cfg.Dispatch, logger),
		logger,
	)

	router := s.newRouter(boostSvc, leaderboardSvc, winnerSvc, dispatchSvc, logger)

	return apphttp.ServeAndWait(ctx, router, logger, &cfg.Server)
}

// newDispatchClients builds the platform senders and the podcast
// scheduler from configured webhook URLs. Unconfigured platforms are
// left out of the map; the sweep fails their items with a clear error
// instead of crashing at startup.
func (s *Server) newDispatchClients() (map[dispatch.Platform]dispatch.Sender, dispatch.PodcastScheduler, error) {
	cfg := s.cfg.Dispatch
	opts := dispatch.WebhookOptions{Timeout: cfg.SendTimeout}

	senders := make(map[dispatch.Platform]dispatch.Sender)
	if cfg.TwitterWebhookURL != "" {
		sender, err := dispatch.NewWebhookSender(dispatch.PlatformTwitter, cfg.TwitterWebhookURL, opts)
		if err != nil {
			return nil, nil, err
		}
		senders[dispatch.PlatformTwitter] = sender
	}
	if cfg.TelegramWebhookURL != "" {
		sender, err := dispatch.NewWebhookSender(dispatch.PlatformTelegram, cfg.TelegramWebhookURL, opts)
		if err != nil {
			return nil, nil, err
		}
		senders[dispatch.PlatformTelegram] = sender
	}

	var podcast dispatch.PodcastScheduler
	if cfg.PodcastURL != "" {
		scheduler, err := dispatch.NewWebhookPodcastScheduler(cfg.PodcastURL, opts)
		if err != nil {
			return nil, nil, err
		}
		podcast = scheduler
	}

	return senders, podcast, nil
}

func (s *Server) newRouter(
	boostSvc boostservice.Service,
	leaderboardSvc leaderboard.Service,
	winnerSvc winnerservice.Service,
	dispatchSvc dispatchservice.Service,
	logger *zap.Logger,
) http.Handler {
	cfg := s.cfg

	r := chi.NewRouter()
	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(middleware.Recoverer)
	r.Use(middleware.Timeout(cfg.Server.RequestTimeout))

	r.Get("/health", func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte("OK"))
	})

	if cfg.Monitoring.Enabled {
		r.Handle("/metrics", promhttp.Handler())
		logger.Info("Metrics enabled", zap.String("path", "/metrics"))
	}

	r.Route("/api/v1", func(r chi.Router) {
		boostservice.RegisterRoutes(r, boostSvc, logger)
		leaderboard.RegisterRoutes(r, leaderboardSvc, logger)
		winnerservice.RegisterRoutes(r, winnerSvc, logger)
		dispatchservice.RegisterRoutes(r, dispatchSvc, logger)
	})

	return r
}
