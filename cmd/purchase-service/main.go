package main

import (
	"context"
	"net/http"
	"os"
	"time"

	"github.com/commercekit/purchase-service/pkg/config"
	"github.com/commercekit/purchase-service/pkg/httpmiddleware"
	"github.com/commercekit/purchase-service/pkg/idempotency"
	"github.com/commercekit/purchase-service/pkg/logging"
	"github.com/commercekit/purchase-service/pkg/outbox"
	"github.com/commercekit/purchase-service/pkg/postgres"
	"github.com/commercekit/purchase-service/pkg/shutdown"
	"github.com/commercekit/purchase-service/pkg/tracing"
	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"

	analyticsapp "github.com/commercekit/purchase-service/internal/analytics/application"
	analyticshttp "github.com/commercekit/purchase-service/internal/analytics/infrastructure/http"
	analyticspg "github.com/commercekit/purchase-service/internal/analytics/infrastructure/postgres"
	catalogapp "github.com/commercekit/purchase-service/internal/catalog/application"
	cataloghttp "github.com/commercekit/purchase-service/internal/catalog/infrastructure/http"
	catalogpg "github.com/commercekit/purchase-service/internal/catalog/infrastructure/postgres"
	customerapp "github.com/commercekit/purchase-service/internal/customer/application"
	customerhttp "github.com/commercekit/purchase-service/internal/customer/infrastructure/http"
	customerpg "github.com/commercekit/purchase-service/internal/customer/infrastructure/postgres"
	purchaseapp "github.com/commercekit/purchase-service/internal/purchase/application"
	purchasehttp "github.com/commercekit/purchase-service/internal/purchase/infrastructure/http"
	purchasekafka "github.com/commercekit/purchase-service/internal/purchase/infrastructure/kafka"
	purchasepg "github.com/commercekit/purchase-service/internal/purchase/infrastructure/postgres"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		panic(err)
	}
	log := logging.New(cfg.LogLevel)

	ctx, cancel := shutdown.WithSignals(context.Background())
	defer cancel()

	tp, err := tracing.Init(ctx, "purchase-service", cfg.OTLPEndpoint, log)
	if err != nil {
		log.Error("otel init failed", "err", err)
		os.Exit(1)
	}
	defer func() { _ = tp.Shutdown(context.Background()) }()

	pool, err := postgres.Connect(ctx, cfg.PGURL)
	if err != nil {
		log.Error("pg connect failed", "err", err)
		os.Exit(1)
	}
	defer pool.Close()

	if err := postgres.EnsureSchema(ctx, pool); err != nil {
		log.Error("schema setup failed", "err", err)
		os.Exit(1)
	}

	rdb := redis.NewClient(&redis.Options{Addr: cfg.RedisAddr})
	defer func() { _ = rdb.Close() }()
	idem := idempotency.NewStore(rdb, 24*time.Hour)

	writer := purchasekafka.NewWriter(cfg.KafkaBrokers)
	defer writer.Close()

	purchaseStore := purchasepg.NewStore(log, pool)
	outboxStore := purchasepg.NewOutboxStore(log, pool)
	dispatch := outbox.NewDispatcher(log, writer, cfg.OutboxTopic)
	relay := outbox.NewRelay(log, outboxStore, dispatch, "purchase-service-"+uuid.NewString())

	customerSvc := customerapp.NewService(log, customerpg.NewRepository(log, pool))
	catalogSvc := catalogapp.NewService(log, catalogpg.NewRepository(log, pool))
	purchaseSvc := purchaseapp.NewService(log, purchaseStore)
	analyticsSvc := analyticsapp.NewService(log, analyticspg.NewRepository(log, pool))

	r := chi.NewRouter()
	r.Use(httpmiddleware.RequestID)
	r.Get("/healthz", func(w http.ResponseWriter, _ *http.Request) {
		_, _ = w.Write([]byte(`{"ping":"pong"}`))
	})
	r.Mount("/customer", customerhttp.NewHandler(log, customerSvc).Routes())
	r.Mount("/product", cataloghttp.NewHandler(log, catalogSvc).Routes())
	r.With(idempotency.Middleware(log, idem)).Mount("/purchase", purchasehttp.NewHandler(log, purchaseSvc).Routes())
	r.Mount("/analytics", analyticshttp.NewHandler(log, analyticsSvc).Routes())

	srv := &http.Server{
		Addr:         cfg.HTTPAddr,
		Handler:      r,
		ReadTimeout:  5 * time.Second,
		WriteTimeout: 10 * time.Second,
	}

	go func() {
		if err := relay.Run(ctx); err != nil {
			log.Error("relay stopped with error", "err", err)
		}
	}()

	go func() {
		log.Info("http listening", "addr", cfg.HTTPAddr)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Error("http server error", "err", err)
			cancel()
		}
	}()

	<-ctx.Done()

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer shutdownCancel()

	_ = srv.Shutdown(shutdownCtx)
	log.Info("purchase-service shutdown complete")
}
