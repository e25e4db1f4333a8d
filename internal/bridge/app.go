package bridge

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

	"SquareBridge/config"
	"SquareBridge/internal/controller/rest"
	"SquareBridge/internal/controller/rest/handlers"
	"SquareBridge/internal/domain/oauth"
	"SquareBridge/internal/domain/ordersync"
	"SquareBridge/internal/external/ghl"
	"SquareBridge/internal/external/kafka"
	"SquareBridge/internal/external/opensearch"
	"SquareBridge/internal/external/square"
	"SquareBridge/internal/messaging"
	"SquareBridge/internal/repo/webhookevent"
	"SquareBridge/internal/webhook"
	"SquareBridge/pkg/health"
	"SquareBridge/pkg/logger"
	"SquareBridge/pkg/postgres"

	"github.com/gin-gonic/gin"
	"golang.org/x/sync/errgroup"
)

const shutdownTimeout = 5 * time.Second

// App is the wired bridge: HTTP engine plus, in kafka mode, the order consumer.
type App struct {
	Engine *gin.Engine

	runner  *messaging.Runner
	closers []func()
}

// New wires every component enabled by cfg.
func New(ctx context.Context, cfg config.Config) (*App, error) {
	app := &App{}

	httpClient := &http.Client{Timeout: cfg.HTTPClientTimeout}

	squareClient := square.New(square.Config{
		BaseURL:     cfg.SquareBaseURL,
		AppID:       cfg.SquareAppID,
		AppSecret:   cfg.SquareAppSecret,
		AccessToken: cfg.SquareAccessToken,
		Scope:       cfg.SquareOAuthScope,
		HTTPClient:  httpClient,
	})
	ghlClient := ghl.New(ghl.Config{
		BaseURL:       cfg.GHLBaseURL,
		RestBaseURL:   cfg.GHLRestBaseURL,
		Token:         cfg.GHLToken,
		APIKey:        cfg.GHLAPIKey,
		APIVersion:    cfg.GHLAPIVersion,
		LocationID:    cfg.GHLLocationID,
		AssociationID: cfg.GHLAssociationID,
		HTTPClient:    httpClient,
	})

	healthRegistry := health.NewRegistry()

	var syncOpts []ordersync.Option
	if cfg.IndexEnabled() {
		index, err := opensearch.NewOrderIndex(ctx, cfg.OpensearchUrls, cfg.OpensearchIndexOrders)
		if err != nil {
			return nil, fmt.Errorf("bridge - New - opensearch.NewOrderIndex: %w", err)
		}
		syncOpts = append(syncOpts, ordersync.WithIndex(index))
		healthRegistry.Register(health.NewPingChecker("opensearch", index))
	}

	syncService := ordersync.NewService(squareClient, ghlClient, cfg.GHLContactTag, syncOpts...)
	oauthService := oauth.NewService(squareClient)

	var (
		journal        webhook.Journal
		journalHandler *handlers.JournalHandler
	)
	if cfg.JournalEnabled() {
		if err := ApplyMigrations(cfg.PgURL, MigrationFS); err != nil {
			return nil, fmt.Errorf("bridge - New - ApplyMigrations: %w", err)
		}

		pool, err := postgres.New(cfg.PgURL, postgres.MaxPoolSize(cfg.PgPoolMax))
		if err != nil {
			return nil, fmt.Errorf("bridge - New - postgres.New: %w", err)
		}
		app.closers = append(app.closers, pool.Close)

		repo := webhookevent.NewPgWebhookEventRepo(pool.Pool, pool.Builder)
		journal = repo
		h := handlers.NewJournalHandler(repo)
		journalHandler = &h
		healthRegistry.Register(health.NewPingChecker("postgres", pool))
	}

	var processor webhook.Processor
	switch cfg.WebhookMode {
	case config.WebhookModeKafka:
		publisher := kafka.NewPublisher(cfg.KafkaBrokers, cfg.KafkaOrdersTopic)
		app.closers = append(app.closers, func() { _ = publisher.Close() })
		processor = webhook.NewAsyncProcessor(publisher)
		healthRegistry.Register(health.NewKafkaChecker(cfg.KafkaBrokers, cfg.KafkaOrdersTopic))

		runner, dlq := NewOrderRunner(cfg, syncService)
		app.runner = runner
		app.closers = append(app.closers, func() { _ = dlq.Close() })
	default:
		processor = webhook.NewSyncProcessor(syncService)
	}

	app.Engine = NewGinEngine()
	api := rest.NewRouter(
		handlers.NewOAuthHandler(oauthService),
		handlers.NewWebhookHandler(processor, journal),
		journalHandler,
	)
	NewRouter(api, healthRegistry).SetUp(app.Engine)

	return app, nil
}

// StartWorkers runs the order consumer until ctx is cancelled.
// Returns immediately in sync mode.
func (a *App) StartWorkers(ctx context.Context) error {
	if a.runner == nil {
		return nil
	}
	return a.runner.Start(ctx)
}

// Close releases resources in reverse order of acquisition.
func (a *App) Close() {
	for i := len(a.closers) - 1; i >= 0; i-- {
		a.closers[i]()
	}
}

// Run bootstraps the bridge and blocks until SIGINT/SIGTERM or a fatal error.
func Run(cfg config.Config) error {
	logger.Setup(logger.Options{Level: cfg.LogLevel, Format: cfg.LogFormat})

	ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer cancel()

	app, err := New(ctx, cfg)
	if err != nil {
		return err
	}
	defer app.Close()

	server := &http.Server{
		Addr:              fmt.Sprintf(":%d", cfg.Port),
		Handler:           app.Engine,
		ReadHeaderTimeout: 10 * time.Second,
	}

	g, gctx := errgroup.WithContext(ctx)

	g.Go(func() error {
		if cfg.WebhookMode == config.WebhookModeKafka {
			slog.Info("Starting order webhook consumer",
				"topic", cfg.KafkaOrdersTopic,
				"group", cfg.KafkaOrdersGroup)
		}
		return app.StartWorkers(gctx)
	})

	g.Go(func() error {
		slog.Info("Bridge started",
			"port", cfg.Port,
			"webhook_mode", cfg.WebhookMode,
			"journal", cfg.JournalEnabled(),
			"index", cfg.IndexEnabled())
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return fmt.Errorf("bridge - Run - ListenAndServe: %w", err)
		}
		return nil
	})

	g.Go(func() error {
		<-gctx.Done()
		slog.Info("Shutting down bridge...")

		shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer shutdownCancel()
		return server.Shutdown(shutdownCtx)
	})

	err = g.Wait()
	slog.Info("Bridge stopped")
	return err
}
