package application

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/rocketscienceinc/mnk-game/internal/config"
	"github.com/rocketscienceinc/mnk-game/internal/entity"
	"github.com/rocketscienceinc/mnk-game/internal/repository"
	"github.com/rocketscienceinc/mnk-game/internal/repository/storage"
	"github.com/rocketscienceinc/mnk-game/internal/tictactoe"
	"github.com/rocketscienceinc/mnk-game/internal/transport/console"
	"github.com/rocketscienceinc/mnk-game/internal/usecase"
)

var ErrAddrNotFound = errors.New("redis address string is empty")

// RunApp - runs the console game on stdin and stdout.
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

	return Run(ctx, logger, conf, os.Stdin, os.Stdout)
}

// Run wires storage, session and console and serves until in is exhausted or ctx is done.
func Run(ctx context.Context, logger *slog.Logger, conf *config.Config, in io.Reader, out io.Writer) error {
	log := logger.With("component", "app")

	repo, closeStorage, err := openStateRepository(ctx, conf)
	if err != nil {
		return err
	}

	defer func() {
		if closeErr := closeStorage(); closeErr != nil {
			log.Error("could not close storage", "error", closeErr)
		}
	}()

	settings, err := settingsFromConfig(conf.Game)
	if err != nil {
		return fmt.Errorf("invalid game config: %w", err)
	}

	session, err := usecase.NewGameSession(logger, repo, conf.Storage.Key, settings)
	if err != nil {
		return fmt.Errorf("could not create game session: %w", err)
	}

	loaded, err := session.LoadState(ctx)
	switch {
	case err != nil:
		log.Warn("saved game ignored, starting new game", "error", err)
	case loaded:
		log.Info("Game resumed from saved state")
	default:
		log.Info("Starting new game")
	}

	log.Info("Starting console", "storage", conf.Storage.Driver)

	if err = console.New(logger, session).Serve(ctx, in, out); err != nil {
		return fmt.Errorf("console error: %w", err)
	}

	return nil
}

func settingsFromConfig(conf config.Game) (tictactoe.Settings, error) {
	symbol, err := entity.ParseMark(conf.PlayerSymbol)
	if err != nil {
		return tictactoe.Settings{}, err
	}

	settings := tictactoe.Settings{
		GridSize:     conf.GridSize,
		KAlignment:   conf.KAlignment,
		PlayerSymbol: symbol,
	}

	if err = settings.Validate(); err != nil {
		return tictactoe.Settings{}, err
	}

	return settings, nil
}

func openStateRepository(ctx context.Context, conf *config.Config) (repository.StateRepository, func() error, error) {
	switch conf.Storage.Driver {
	case config.DriverRedis:
		redisAddrString := conf.Redis.GetRedisAddr()
		if redisAddrString == "" {
			return nil, nil, ErrAddrNotFound
		}

		redisStorage, err := storage.NewRedisStorage(ctx, redisAddrString)
		if err != nil {
			return nil, nil, fmt.Errorf("could not connect to redis storage: %w", err)
		}

		return repository.NewRedisStateRepository(redisStorage.Connection), redisStorage.Close, nil
	case config.DriverSQLite:
		sqliteStorage, err := storage.NewSQLiteStorage(conf.SQLiteStoragePath)
		if err != nil {
			return nil, nil, fmt.Errorf("could not open sqlite storage: %w", err)
		}

		if err = sqliteStorage.Init(ctx); err != nil {
			_ = sqliteStorage.Close()
			return nil, nil, fmt.Errorf("could not init sqlite storage: %w", err)
		}

		return repository.NewSQLiteStateRepository(sqliteStorage.Connection), sqliteStorage.Close, nil
	default:
		return repository.NewMemoryStateRepository(), func() error { return nil }, nil
	}
}
