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

	"github.com/joho/godotenv"
	"golang.org/x/sync/errgroup"

	"ninlookup/internal/lookup/dispatcher"
	"ninlookup/internal/lookup/events"
	lookuphandler "ninlookup/internal/lookup/handler"
	lookupmetrics "ninlookup/internal/lookup/metrics"
	"ninlookup/internal/lookup/providers"
	"ninlookup/internal/lookup/providers/metamap"
	"ninlookup/internal/lookup/providers/mock"
	"ninlookup/internal/lookup/providers/mono"
	"ninlookup/internal/lookup/providers/seamfix"
	"ninlookup/internal/lookup/providers/verifyme"
	"ninlookup/internal/lookup/service"
	"ninlookup/internal/lookup/store"
	"ninlookup/internal/lookup/tracer"
	"ninlookup/internal/platform/config"
	"ninlookup/internal/platform/database"
	"ninlookup/internal/platform/health"
	"ninlookup/internal/platform/kafka"
	"ninlookup/internal/platform/kafka/producer"
	"ninlookup/internal/platform/logger"
	"ninlookup/internal/platform/metrics"
	"ninlookup/internal/platform/redis"
	httptransport "ninlookup/internal/transport/http"
	"ninlookup/migrations"
	"ninlookup/pkg/platform/middleware/metadata"
	request "ninlookup/pkg/platform/middleware/request"
)

const poolStatsInterval = 15 * time.Second

// main wires dependencies, serves HTTP and shuts down on SIGINT/SIGTERM.
// Business logic lives in internal/lookup.
func main() {
	// A missing .env is normal outside local development.
	_ = godotenv.Load()

	cfg, err := config.FromEnv()
	if err != nil {
		fmt.Fprintf(os.Stderr, "invalid configuration: %v\n", err)
		os.Exit(1)
	}
	log := logger.New(cfg.Server.LogLevel)

	if err := run(cfg, log); err != nil {
		log.Error("server exited with error", "error", err)
		os.Exit(1)
	}
	log.Info("server stopped")
}

func run(cfg config.Config, log *slog.Logger) error {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	reg := metrics.NewRegistry()
	healthHandler := health.New(cfg.Server.Environment)

	registry, err := buildProviders(cfg.Provider)
	if err != nil {
		return err
	}
	lookupMetrics := lookupmetrics.New(reg)
	d, err := dispatcher.New(registry, cfg.Provider.Active, log,
		dispatcher.WithTracer(tracer.NewOTel()),
		dispatcher.WithMetrics(lookupMetrics),
	)
	if err != nil {
		return fmt.Errorf("build dispatcher: %w", err)
	}

	opts := []service.Option{service.WithMetrics(lookupMetrics)}

	var recordStore service.Store
	pool, err := database.New(ctx, cfg.Database)
	if err != nil {
		return err
	}
	if pool != nil {
		defer pool.Close() //nolint:errcheck // shutdown path
		if cfg.Database.AutoMigrate {
			if err := migrations.Apply(ctx, pool.DB()); err != nil {
				return err
			}
			log.Info("database schema applied")
		}
		recordStore = store.NewPostgres(pool.DB())
		healthHandler.RegisterCheck("database", pool.Health)
		log.Info("using postgres record store")
	} else {
		recordStore = store.NewInMemory()
		log.Warn("DATABASE_URL not set, records are kept in memory")
	}

	redisClient, err := redis.New(cfg.Redis, redis.NewPoolMetrics(reg))
	if err != nil {
		return err
	}
	if redisClient != nil {
		defer redisClient.Close() //nolint:errcheck // shutdown path
		opts = append(opts, service.WithStatusCache(store.NewRedisStatusCache(redisClient, cfg.Redis.StatusCacheTTL)))
		healthHandler.RegisterCheck("redis", redisClient.Health)
		go redisClient.RunPoolStats(ctx, poolStatsInterval)
	}

	var publisher service.EventPublisher = events.NoopPublisher{}
	producerCfg := kafka.DefaultProducerConfig()
	producerCfg.Brokers = cfg.Kafka.Brokers
	if producerCfg.Enabled() {
		prod, err := producer.New(producerCfg, log)
		if err != nil {
			return err
		}
		defer prod.Close(5 * time.Second)
		publisher = events.NewKafkaPublisher(prod, cfg.Kafka.LookupTopic)
		healthHandler.RegisterCheck("kafka", prod.Check)
	}
	opts = append(opts, service.WithEventPublisher(publisher))

	trusted, err := metadata.ParseTrustedProxies(cfg.Server.TrustedProxies)
	if err != nil {
		return fmt.Errorf("TRUSTED_PROXIES: %w", err)
	}

	svc := service.New(recordStore, d, log, opts...)
	router := httptransport.NewRouter(httptransport.Deps{
		Logger:         log,
		Lookup:         lookuphandler.New(svc, log),
		Health:         healthHandler,
		Registry:       reg,
		RequestMetrics: request.NewMetrics(reg),
		Metadata:       metadata.NewMiddleware(metadata.Config{TrustedProxies: trusted}),
		RequestTimeout: cfg.Server.RequestTimeout,
	})

	srv := &http.Server{
		Addr:              cfg.Server.Addr,
		Handler:           router,
		ReadHeaderTimeout: 10 * time.Second,
		IdleTimeout:       60 * time.Second,
	}

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		log.Info("starting http server", "addr", cfg.Server.Addr, "provider", d.Provider())
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return err
		}
		return nil
	})
	g.Go(func() error {
		<-gctx.Done()
		log.Info("shutting down server gracefully")
		shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.Server.ShutdownTimeout)
		defer cancel()
		return srv.Shutdown(shutdownCtx)
	})
	return g.Wait()
}

// buildProviders registers every adapter; the dispatcher picks the active one.
func buildProviders(cfg config.ProviderConfig) (*providers.Registry, error) {
	registry := providers.NewRegistry()
	for _, p := range []providers.Provider{
		mock.New(),
		metamap.New(),
		seamfix.New(),
		mono.New(),
		verifyme.New(verifyme.Config{
			BaseURL: cfg.VerifyMeBaseURL,
			APIKey:  cfg.VerifyMeKey,
			Timeout: cfg.VerifyMeTimeout,
		}),
	} {
		if err := registry.Register(p); err != nil {
			return nil, fmt.Errorf("register provider: %w", err)
		}
	}
	return registry, nil
}
