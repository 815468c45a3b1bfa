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

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"

	"github.com/five82/petgallery/internal/devserver"
)

func main() {
	os.Exit(run())
}

func run() int {
	cfg := loadConfig()

	level, err := zapcore.ParseLevel(cfg.LogLevel)
	if err != nil {
		fmt.Fprintf(os.Stderr, "petstore-dev: %v\n", err)
		return 1
	}
	zcfg := zap.NewDevelopmentConfig()
	zcfg.Level = zap.NewAtomicLevelAt(level)
	log, err := zcfg.Build()
	if err != nil {
		fmt.Fprintf(os.Stderr, "petstore-dev: create logger: %v\n", err)
		return 1
	}
	defer func() { _ = log.Sync() }()

	repo := devserver.NewRepository()
	if cfg.Seed {
		repo = devserver.NewRepository(devserver.SeedPets()...)
	}

	srv := &http.Server{
		Addr: cfg.Host,
		Handler: devserver.New(devserver.Options{
			BasePath:   cfg.BasePath,
			Logger:     log,
			Repository: repo,
		}),
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 15 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	ctx, cancel := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer cancel()

	errc := make(chan error, 1)
	go func() {
		log.Info("petstore-dev listening",
			zap.String("addr", cfg.Host),
			zap.String("base_path", cfg.BasePath),
			zap.Int("pets", repo.Len()),
		)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errc <- err
		}
		close(errc)
	}()

	select {
	case err := <-errc:
		if err != nil {
			log.Error("http server error", zap.Error(err))
			return 1
		}
		return 0
	case <-ctx.Done():
	}

	log.Info("shutting down petstore-dev...")
	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer shutdownCancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Error("http server forced shutdown", zap.Error(err))
		return 1
	}
	return 0
}
