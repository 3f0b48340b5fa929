package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"

	"github.com/MaxLezano/bang-online-sub000/internal/config"
	"github.com/MaxLezano/bang-online-sub000/internal/game"
	"github.com/MaxLezano/bang-online-sub000/internal/repository"
	"github.com/MaxLezano/bang-online-sub000/internal/room"
	"github.com/MaxLezano/bang-online-sub000/internal/server"
)

var (
	configPath = flag.String("config", "", "path to configuration file")
	version    = "dev" // set via ldflags during build
)

func main() {
	flag.Parse()

	cfg, err := config.Load(*configPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to load configuration: %v\n", err)
		os.Exit(1)
	}

	logger, err := initLogger(cfg.Logging)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to initialize logger: %v\n", err)
		os.Exit(1)
	}
	defer logger.Sync()

	logger.Info("starting bang server",
		zap.String("version", version),
		zap.String("config", *configPath),
	)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, os.Interrupt, syscall.SIGTERM)

	// Match persistence is optional: no database URL means in-memory only.
	var matches *repository.MatchRepository
	if cfg.Database.URL != "" {
		db, dbErr := repository.NewDB(ctx, cfg.Database, logger)
		if dbErr != nil {
			logger.Fatal("failed to connect to database", zap.Error(dbErr))
		}
		defer db.Close()
		matches = repository.NewMatchRepository(db)
	} else {
		logger.Info("no database configured; match results will not be persisted")
	}

	engine := game.NewBangEngine(logger)
	logger.Info("game engine initialized")

	roomMgr := room.NewManager(cfg.Server.MaxRooms, logger)
	logger.Info("room manager initialized", zap.Int("max_rooms", cfg.Server.MaxRooms))

	if cfg.Game.ReplayDir != "" {
		if mkErr := os.MkdirAll(cfg.Game.ReplayDir, 0o755); mkErr != nil {
			logger.Warn("replay directory unavailable", zap.Error(mkErr))
			cfg.Game.ReplayDir = ""
		}
	}

	srv := server.New(cfg.Server, cfg.Game, engine, roomMgr, matches, logger)

	errChan := make(chan error, 1)
	go func() {
		errChan <- srv.Start()
	}()

	select {
	case sig := <-sigChan:
		logger.Info("received shutdown signal", zap.String("signal", sig.String()))
	case srvErr := <-errChan:
		if srvErr != nil {
			logger.Error("server error", zap.Error(srvErr))
		}
	}

	logger.Info("shutting down gracefully...")
	cancel()

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), cfg.Server.ShutdownTimeout)
	defer shutdownCancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		logger.Error("shutdown error", zap.Error(err))
	}

	logger.Info("bang server stopped")
}

// initLogger initializes the zap logger based on configuration
func initLogger(cfg config.LoggingConfig) (*zap.Logger, error) {
	var level zapcore.Level
	switch cfg.Level {
	case "debug":
		level = zapcore.DebugLevel
	case "info":
		level = zapcore.InfoLevel
	case "warn":
		level = zapcore.WarnLevel
	case "error":
		level = zapcore.ErrorLevel
	default:
		level = zapcore.InfoLevel
	}

	var zapCfg zap.Config
	if cfg.Format == "json" {
		zapCfg = zap.NewProductionConfig()
	} else {
		zapCfg = zap.NewDevelopmentConfig()
		zapCfg.EncoderConfig.EncodeLevel = zapcore.CapitalColorLevelEncoder
	}

	zapCfg.Level = zap.NewAtomicLevelAt(level)

	return zapCfg.Build()
}
