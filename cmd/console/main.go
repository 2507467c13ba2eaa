package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/propdesk/crm-console/internal/api"
	"github.com/propdesk/crm-console/internal/api/handler"
	"github.com/propdesk/crm-console/internal/api/middleware"
	"github.com/propdesk/crm-console/internal/core/service"
	"github.com/propdesk/crm-console/internal/infrastructure/config"
	redisdb "github.com/propdesk/crm-console/internal/infrastructure/db/redis"
	"github.com/propdesk/crm-console/internal/infrastructure/upstream"
	"github.com/propdesk/crm-console/pkg/logger"
)

func main() {
	if err := run(); err != nil {
		fmt.Fprintf(os.Stderr, "crm-console: %v\n", err)
		os.Exit(1)
	}
}

func run() error {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	cfg := config.Load()
	log := logger.Init(logger.Options{
		Level:  cfg.LogLevel,
		Pretty: cfg.Env == "development",
	})

	rdb, err := redisdb.Connect(ctx, redisdb.Config{Addr: cfg.Redis.Addr, DB: cfg.Redis.DB})
	if err != nil {
		return fmt.Errorf("connect redis: %w", err)
	}
	defer rdb.Close()

	client := upstream.NewClient(cfg.Upstream.BaseURL, cfg.Upstream.Timeout, log)

	authGateway := upstream.NewAuthGateway(client)
	sessionRepo := redisdb.NewSessionRepository(rdb, cfg.SessionTTL)
	sessions := service.NewSessionManager(sessionRepo, authGateway, cfg.RefreshInterval, log)

	cache := redisdb.NewQueryCache(rdb)
	inval := service.NewInvalidator(cache, log)

	leads := service.NewLeadService(upstream.NewLeadGateway(client), cache, inval, cfg.CacheTTL, log)
	projects := service.NewProjectService(upstream.NewProjectGateway(client), cache, inval, cfg.CacheTTL, log)
	units := service.NewUnitService(upstream.NewUnitGateway(client), cache, inval, cfg.CacheTTL, log)
	bookings := service.NewBookingService(upstream.NewBookingGateway(client), cache, inval, cfg.CacheTTL, log)
	watcher := service.NewImportWatcher(leads, cfg.ImportPollInterval, log)

	codec := middleware.NewCookieCodec(cfg.SessionSecret, cfg.SessionTTL)

	e := api.NewRouter(api.Dependencies{
		Sessions: sessions,
		Auth:     authGateway,
		Leads:    leads,
		Projects: projects,
		Units:    units,
		Bookings: bookings,
		Watcher:  watcher,
		Codec:    codec,
		StorePinger: handler.PingerFunc(func(ctx context.Context) error {
			return rdb.Ping(ctx).Err()
		}),
		UpstreamPinger: client,
		Logger:         log,
	})

	errCh := make(chan error, 1)
	go func() {
		errCh <- e.Start(":" + cfg.Port)
	}()
	log.Info().Str("port", cfg.Port).Str("env", cfg.Env).Msg("console gateway listening")

	select {
	case <-ctx.Done():
		log.Info().Msg("shutting down")
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		return e.Shutdown(shutdownCtx)
	case err := <-errCh:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return err
	}
}
