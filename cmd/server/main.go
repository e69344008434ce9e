package main

import (
	"context"
	"crypto/rsa"
	"errors"
	"flag"
	"fmt"
	"net"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"codehunt/internal/cch24/service"
	"codehunt/internal/common/cache"
	"codehunt/internal/common/clock"
	"codehunt/internal/common/db"
	"codehunt/internal/server"
	"codehunt/pkg/utils/logger"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

const defaultConfigPath = "configs/server.yaml"

func main() {
	configPath := flag.String("config", defaultConfigPath, "Path to config file")
	flag.Parse()

	appCfg, err := loadAppConfig(*configPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "load app config failed: %v\n", err)
		os.Exit(1)
	}

	if err := logger.Init(appCfg.Logger); err != nil {
		fmt.Fprintf(os.Stderr, "init logger failed: %v\n", err)
		os.Exit(1)
	}
	defer func() { _ = logger.Sync() }()

	if err := run(appCfg); err != nil {
		logger.Error(context.Background(), "server stopped", zap.Error(err))
		_ = logger.Sync()
		os.Exit(1)
	}
}

func run(appCfg *AppConfig) error {
	ctx := context.Background()

	store, err := cache.New(appCfg.Cache)
	if err != nil {
		return fmt.Errorf("init cache failed: %w", err)
	}
	defer func() { _ = store.Close() }()

	database, err := db.Open(appCfg.Database)
	if err != nil {
		return fmt.Errorf("init database failed: %w", err)
	}
	defer func() { _ = database.Close() }()

	santaKey, err := loadSantaKey(appCfg.Gift.SantaKeyPath)
	if err != nil {
		return err
	}
	if appCfg.Event == server.EventCCH24 && santaKey == nil {
		logger.Warn(ctx, "no santa key configured, /16/decode is disabled")
	}

	gin.SetMode(gin.ReleaseMode)
	router, err := server.NewRouter(ctx, server.Deps{
		Event:        appCfg.Event,
		Cache:        store,
		Database:     database,
		Clock:        clock.Real(),
		GiftSecret:   []byte(appCfg.Gift.Secret),
		SantaKey:     santaKey,
		PageTokenTTL: appCfg.Quotes.PageTokenTTL,
		Upstream:     appCfg.Lookups,
		CORS:         appCfg.CORS,
		Trace:        appCfg.Trace,
	})
	if err != nil {
		return fmt.Errorf("build router failed: %w", err)
	}

	httpServer := &http.Server{
		Addr:           appCfg.Server.Addr,
		Handler:        router,
		ReadTimeout:    appCfg.Server.ReadTimeout,
		WriteTimeout:   appCfg.Server.WriteTimeout,
		IdleTimeout:    appCfg.Server.IdleTimeout,
		MaxHeaderBytes: appCfg.Server.MaxHeaderBytes,
	}

	listener, err := net.Listen("tcp", appCfg.Server.Addr)
	if err != nil {
		return fmt.Errorf("init http listener failed: %w", err)
	}

	errCh := make(chan error, 1)
	go func() {
		logger.Info(ctx, "challenge server started",
			zap.String("addr", appCfg.Server.Addr),
			zap.String("event", appCfg.Event),
			zap.String("database", database.Driver()),
		)
		errCh <- httpServer.Serve(listener)
	}()

	shutdownCtx, stop := signal.NotifyContext(ctx, syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	select {
	case err := <-errCh:
		if err != nil && !errors.Is(err, http.ErrServerClosed) {
			return fmt.Errorf("http server stopped: %w", err)
		}
	case <-shutdownCtx.Done():
		logger.Info(ctx, "shutdown signal received")
	}

	timeoutCtx, cancel := context.WithTimeout(ctx, defaultShutdownTimeout)
	defer cancel()
	if err := httpServer.Shutdown(timeoutCtx); err != nil {
		logger.Error(ctx, "http server shutdown failed", zap.Error(err))
	}
	return nil
}

func loadSantaKey(path string) (*rsa.PublicKey, error) {
	if path == "" {
		return nil, nil
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read santa key failed: %w", err)
	}
	key, err := service.ParseSantaKey(data)
	if err != nil {
		return nil, fmt.Errorf("parse santa key failed: %w", err)
	}
	return key, nil
}
