// main wires high-level dependencies, exposes the HTTP router, and keeps the
// server lifecycle small. Business logic lives in internal services packages.
package main

import (
	"context"
	"database/sql"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"github.com/jackc/pgx/v5/pgxpool"
	_ "github.com/lib/pq"
	"golang.org/x/sync/errgroup"

	"pawledger/internal/allocator"
	"pawledger/internal/identity"
	ledgerservice "pawledger/internal/ledger/service"
	"pawledger/internal/platform/config"
	"pawledger/internal/platform/httpserver"
	"pawledger/internal/platform/logger"
	"pawledger/internal/platform/metrics"
	platformredis "pawledger/internal/platform/redis"
	registryservice "pawledger/internal/registry/service"
	"pawledger/internal/stats"
	"pawledger/internal/storage"
	"pawledger/internal/storage/kv"
	"pawledger/internal/transfer"
	httptransport "pawledger/internal/transport/http"
	"pawledger/pkg/platform/audit"
	"pawledger/pkg/platform/tx"
)

func main() {
	cfg := config.FromEnv()
	log := logger.New()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	var (
		backend  kv.Store
		boundary tx.Boundary
	)
	switch cfg.Backend {
	case config.BackendPostgres:
		pool, err := pgxpool.New(ctx, cfg.PostgresDSN)
		if err != nil {
			log.Error("connect postgres", "error", err)
			os.Exit(1)
		}
		defer pool.Close()
		if err := kv.Migrate(ctx, pool); err != nil {
			log.Error("migrate postgres", "error", err)
			os.Exit(1)
		}
		backend = kv.NewPostgres(pool)
		boundary = tx.NewPgxBoundary(pool)
	case config.BackendRedis:
		client, err := platformredis.New(ctx, cfg.RedisURL)
		if err != nil {
			log.Error("connect redis", "error", err)
			os.Exit(1)
		}
		defer client.Close()
		backend = kv.NewRedis(client.Client)
		boundary = tx.NewMutexBoundary()
	default:
		backend = kv.NewMemory()
		boundary = tx.NewMutexBoundary()
	}

	store := storage.New(backend)
	ids := allocator.New(store)
	verifier := identity.NewContextVerifier()
	aggregator := stats.NewAggregator(store)
	m := metrics.New()

	group, ctx := errgroup.WithContext(ctx)

	var publisher audit.Publisher = audit.Nop{}
	if len(cfg.KafkaBrokers) > 0 {
		kafka, err := audit.NewKafkaPublisher(ctx, cfg.KafkaBrokers, cfg.KafkaTopic)
		if err != nil {
			log.Error("connect kafka", "error", err)
			os.Exit(1)
		}
		defer kafka.Close()
		publisher = kafka

		if cfg.Backend == config.BackendPostgres {
			// Outbox in front of Kafka: events survive restarts and are
			// drained in the background.
			db, err := sql.Open("postgres", cfg.PostgresDSN)
			if err != nil {
				log.Error("open postgres for outbox", "error", err)
				os.Exit(1)
			}
			defer db.Close()
			if err := audit.MigrateOutbox(ctx, db); err != nil {
				log.Error("migrate outbox", "error", err)
				os.Exit(1)
			}
			outbox := audit.NewOutbox(db)
			worker := audit.NewWorker(outbox, kafka, cfg.OutboxInterval, log)
			group.Go(func() error {
				err := worker.Run(ctx)
				if errors.Is(err, context.Canceled) {
					return nil
				}
				return err
			})
			publisher = outbox
		}
	}

	registrySvc := registryservice.New(store, ids, verifier, boundary, aggregator,
		registryservice.WithLogger(log),
		registryservice.WithAuditPublisher(publisher),
		registryservice.WithMetrics(m),
	)
	ledgerSvc := ledgerservice.New(store, ids, verifier, boundary, aggregator, transfer.NewBank(),
		ledgerservice.WithLogger(log),
		ledgerservice.WithAuditPublisher(publisher),
		ledgerservice.WithMetrics(m),
	)

	validator := identity.NewProofValidator([]byte(cfg.JWTSigningKey), cfg.JWTIssuer)
	router := httptransport.NewRouter(
		httptransport.NewRegistryHandler(registrySvc, log),
		httptransport.NewLedgerHandler(ledgerSvc, log),
		validator,
		log,
	)

	srv := httpserver.New(cfg.Addr, router)

	group.Go(func() error {
		log.Info("starting pawledger", "addr", cfg.Addr, "backend", string(cfg.Backend))
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return err
		}
		return nil
	})
	group.Go(func() error {
		<-ctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.ShutdownTimeout)
		defer cancel()
		return srv.Shutdown(shutdownCtx)
	})

	if err := group.Wait(); err != nil {
		log.Error("server error", "error", err)
		os.Exit(1)
	}
}
