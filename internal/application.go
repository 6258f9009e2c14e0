package application

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/rocketscienceinc/pinellone-backend/internal/config"
	"github.com/rocketscienceinc/pinellone-backend/internal/pinellone"
	"github.com/rocketscienceinc/pinellone-backend/internal/repository"
	"github.com/rocketscienceinc/pinellone-backend/internal/repository/storage"
	"github.com/rocketscienceinc/pinellone-backend/internal/service"
	"github.com/rocketscienceinc/pinellone-backend/internal/usecase"
	"github.com/rocketscienceinc/pinellone-backend/transport/rest"
)

var ErrAddrNotFound = errors.New("redis address string is empty")

const shutdownTimeout = 10 * time.Second

// RunApp - runs the application.
func RunApp(logger *slog.Logger, conf *config.Config) error {
	log := logger.With("component", "app")

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	sigs := make(chan os.Signal, 1)
	signal.Notify(sigs, syscall.SIGINT, syscall.SIGTERM)
	go func() {
		sig := <-sigs
		log.Info("Received signal, shutting down", "signal", sig)
		cancel()
	}()

	redisAddrString := conf.Redis.GetRedisAddr()
	if redisAddrString == "" {
		return ErrAddrNotFound
	}

	redisStorage, err := storage.NewRedisStorage(ctx, redisAddrString)
	if err != nil {
		return fmt.Errorf("could not connect to redis storage: %w", err)
	}

	defer func() {
		if err = redisStorage.Close(); err != nil {
			log.Error("could not close redis storage", "error", err)
		}
	}()

	gameRepo := repository.NewGameRepository(redisStorage.Connection)
	playerRepo := repository.NewPlayerRepository(redisStorage.Connection)

	engine := pinellone.NewEngine(conf.Rules)
	gameService := service.NewGameService(engine, gameRepo, playerRepo)
	gamePlayService := service.NewGamePlayService(logger, engine, gameService)
	registry := usecase.NewSessionRegistry(logger, gameService, gamePlayService)

	server := rest.New(logger, registry)

	httpErrCh := make(chan error, 1)
	go func() {
		log.Info("Starting HTTP server", "port", conf.HTTPPort)
		if httpErr := server.Start(conf.HTTPPort); httpErr != nil {
			httpErrCh <- httpErr
		}
	}()

	select {
	case err = <-httpErrCh:
		return fmt.Errorf("HTTP server error: %w", err)
	case <-ctx.Done():
		log.Info("Application context canceled, shutting down")

		shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer shutdownCancel()

		if err = server.Shutdown(shutdownCtx); err != nil {
			return fmt.Errorf("failed to shut down HTTP server: %w", err)
		}

		return nil
	}
}
