package main

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/redis/go-redis/v9"
	"github.com/ticketlane/eventwizard/internal/auth"
	"github.com/ticketlane/eventwizard/internal/config"
	"github.com/ticketlane/eventwizard/internal/db"
	httpx "github.com/ticketlane/eventwizard/internal/http"
	"github.com/ticketlane/eventwizard/internal/observability"
	"github.com/ticketlane/eventwizard/internal/refdata"
	"github.com/ticketlane/eventwizard/internal/store"
	"github.com/ticketlane/eventwizard/internal/store/memory"
	"github.com/ticketlane/eventwizard/internal/store/postgres"
	"github.com/ticketlane/eventwizard/internal/upstream"
)

func main() {
	// .env is optional, real deployments set env vars directly
	_ = godotenv.Load()

	cfg := config.Load()

	log := observability.NewLogger(cfg.Env)

	if cfg.OtelEndpoint != "" {
		shutdownTracer, err := observability.InitTracer(context.Background(), "eventwizard", cfg.OtelEndpoint)
		if err != nil {
			log.Error("tracer init failed", "err", err)
			os.Exit(1)
		}
		defer func() {
			ctx, cancel := config.WithTimeout(5 * time.Second)
			defer cancel()
			if err := shutdownTracer(ctx); err != nil {
				log.Error("tracer shutdown failed", "err", err)
			}
		}()
	}

	registry := prometheus.NewRegistry()
	prom := observability.NewProm(registry)

	// session store: postgres when a database is configured, memory otherwise
	var sessions store.Sessions = memory.NewSessionsRepo()
	ping := func() error { return nil }

	if cfg.DBURL != "" {
		pool, err := db.NewPool(cfg.DBURL)
		if err != nil {
			log.Error("database connection failed", "err", err)
			os.Exit(1)
		}
		defer pool.Close()

		ctx, cancel := config.WithTimeout(10 * time.Second)
		if err := postgres.EnsureSchema(ctx, pool); err != nil {
			cancel()
			log.Error("schema setup failed", "err", err)
			os.Exit(1)
		}
		cancel()

		sessions = postgres.NewSessionsRepo(pool)
		ping = func() error {
			ctx, cancel := config.WithTimeout(1 * time.Second)
			defer cancel()

			return pool.Ping(ctx)
		}
	}

	var rdb *redis.Client
	if cfg.RedisAddr != "" {
		rdb = redis.NewClient(&redis.Options{
			Addr:     cfg.RedisAddr,
			Password: cfg.RedisPassword,
			DB:       cfg.RedisDB,
		})
		defer rdb.Close()
	}

	backend := upstream.New(cfg.UpstreamBaseURL, log).WithObserver(func(op, status string, seconds float64) {
		prom.UpstreamDuration.WithLabelValues(op, status).Observe(seconds)
	})
	loader := refdata.NewLoader(backend, rdb, cfg.RefdataTTL, log)

	router := httpx.NewRouter(httpx.Deps{
		Log:            log,
		Sessions:       sessions,
		Backend:        backend,
		Refdata:        loader,
		Verifier:       auth.NewVerifier(cfg.AuthSecret),
		Prom:           prom,
		Registry:       registry,
		Ping:           ping,
		AllowedOrigins: cfg.AllowedOrigins,
	})

	// server set up
	srv := &http.Server{
		Addr:              fmt.Sprintf(":%d", cfg.Port),
		Handler:           router,
		ReadHeaderTimeout: 5 * time.Second,
		ReadTimeout:       15 * time.Second,
		WriteTimeout:      15 * time.Second,
		IdleTimeout:       60 * time.Second,
	}

	go func() {
		log.Info("Server starting", "port", cfg.Port, "env", cfg.Env)
		err := srv.ListenAndServe()

		if err != nil && err != http.ErrServerClosed {
			log.Error("server failed", "err", err)
			os.Exit(1)
		}
	}()

	// Graceful shutdown

	stop := make(chan os.Signal, 1)
	signal.Notify(stop, syscall.SIGINT, syscall.SIGTERM)
	<-stop
	log.Info("server shutting down")

	shutdownCh := make(chan struct{})

	go func() {
		defer close(shutdownCh)

		ctx, cancel := config.WithTimeout(10 * time.Second)
		defer cancel()

		if err := srv.Shutdown(ctx); err != nil {
			log.Error("graceful shutdown failed", "err", err)

			return
		}
	}()

	select {
	case <-shutdownCh:
		log.Info("shutdown complete")

	case <-time.After(12 * time.Second):
		log.Error("shutdown timed out")
	}
}
