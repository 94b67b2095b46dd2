package application

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/rocketscienceinc/hexapawn/internal/config"
	"github.com/rocketscienceinc/hexapawn/internal/hexapawn"
	"github.com/rocketscienceinc/hexapawn/internal/repository"
	"github.com/rocketscienceinc/hexapawn/internal/repository/storage"
	"github.com/rocketscienceinc/hexapawn/internal/transport/console"
	"github.com/rocketscienceinc/hexapawn/internal/usecase"
)

var ErrAddrNotFound = errors.New("redis address string is empty")

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

	gameRepo := repository.NewMemoryGameRepository()
	if conf.Redis.Enabled {
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

		gameRepo = repository.NewGameRepository(redisStorage.Connection, conf.Redis.GameTTL)
		log.Info("Archiving games in redis", "addr", redisAddrString, "ttl", conf.Redis.GameTTL)
	}

	engine := hexapawn.NewEngine(hexapawn.NewPositionBook(), hexapawn.NewRandom(conf.Seed))
	terminal := console.New(os.Stdin, os.Stdout, conf.Color)
	manager := usecase.NewGameManager(logger, terminal, engine, gameRepo)

	if err := manager.Introduce(ctx, conf.Instructions); err != nil {
		if errors.Is(err, context.Canceled) {
			return nil
		}

		return fmt.Errorf("introduction failed: %w", err)
	}

	// run the game session
	gameErrCh := make(chan error, 1)
	go func() {
		log.Info("Starting game session", "positions", engine.Book().Len())
		gameErrCh <- manager.Run(ctx)
	}()

	select {
	case err := <-gameErrCh:
		if err != nil {
			return fmt.Errorf("game session error: %w", err)
		}

		return nil
	case <-ctx.Done():
		log.Info("Application context canceled, shutting down")
		return nil
	}
}
