package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"os"

	"go.uber.org/fx"
	"go.uber.org/fx/fxevent"

	"github.com/prompthist/prompthistd/internal/config"
	"github.com/prompthist/prompthistd/internal/handlers"
	"github.com/prompthist/prompthistd/internal/history"
	"github.com/prompthist/prompthistd/internal/logger"
	"github.com/prompthist/prompthistd/internal/pipeline"
	"github.com/prompthist/prompthistd/internal/server"
	"github.com/prompthist/prompthistd/internal/thumbnail"
	"github.com/prompthist/prompthistd/internal/version"
)

func main() {
	fx.New(
		fx.Provide(
			provideConfig,
			provideLogger,
			providePipelineDirs,
			provideHistoryStore,
			provideThumbnailStore,
			provideHistoryService,

			provideServerHandler(handlers.NewPingHandler),
			provideServerHandler(handlers.NewHistoryHandler),
			provideServerHandler(handlers.NewThumbnailHandler),

			provideServer,
		),
		fx.Invoke(startServer),
		fx.WithLogger(func(logger *slog.Logger) fxevent.Logger {
			return &fxevent.SlogLogger{Logger: logger.With(slog.String("component", "fx"))}
		}),
	).Run()
}

func provideConfig() (config.Config, error) {
	cfgPath := os.Getenv("CONFIG_PATH")
	cfg, err := config.Load(cfgPath)
	if err != nil {
		return config.Config{}, fmt.Errorf("load config: %w", err)
	}
	return cfg, nil
}

func provideLogger(cfg config.Config) *slog.Logger {
	logger.Init(cfg.Log.Level, cfg.Log.Format)
	return logger.L
}

func providePipelineDirs(cfg config.Config) pipeline.Dirs {
	return pipeline.Dirs{
		Output: cfg.Pipeline.OutputDir,
		Input:  cfg.Pipeline.InputDir,
		Temp:   cfg.Pipeline.TempDir,
	}
}

func provideHistoryStore(log *slog.Logger, cfg config.Config) (*history.Store, error) {
	log.Info("history directory", slog.String("path", cfg.Storage.DataDir))
	store, err := history.NewStore(log, cfg.Storage.DataDir)
	if err != nil {
		return nil, fmt.Errorf("history store: %w", err)
	}
	return store, nil
}

func provideThumbnailStore(log *slog.Logger, cfg config.Config) (*thumbnail.Store, error) {
	dir := cfg.Storage.ThumbnailDir()
	log.Info("thumbnail directory", slog.String("path", dir))
	store, err := thumbnail.NewStore(log, dir)
	if err != nil {
		return nil, fmt.Errorf("thumbnail store: %w", err)
	}
	return store, nil
}

func provideHistoryService(log *slog.Logger, store *history.Store, thumbs *thumbnail.Store) *history.Service {
	return history.NewService(log, store, thumbs)
}

func provideServerHandler(fn any) any {
	return fx.Annotate(
		fn,
		fx.As(new(server.Handler)),
		fx.ResultTags(`group:"server_handlers"`),
	)
}

type serverParams struct {
	fx.In

	Logger         *slog.Logger
	Config         config.Config
	ServerHandlers []server.Handler `group:"server_handlers"`
}

func provideServer(params serverParams) *server.Server {
	return server.NewServer(params.Logger, params.Config.Server.Addr, params.ServerHandlers...)
}

func startServer(lc fx.Lifecycle, logger *slog.Logger, srv *server.Server, shutdowner fx.Shutdowner) {
	fmt.Printf("Starting prompthistd %s\n", version.GetInfo())

	lc.Append(fx.Hook{
		OnStart: func(ctx context.Context) error {
			go func() {
				if err := srv.Start(); err != nil && !errors.Is(err, http.ErrServerClosed) {
					logger.Error("server failed", slog.Any("error", err))
					_ = shutdowner.Shutdown()
				}
			}()
			return nil
		},
		OnStop: func(ctx context.Context) error {
			if err := srv.Stop(ctx); err != nil && !errors.Is(err, http.ErrServerClosed) {
				return fmt.Errorf("server stop: %w", err)
			}
			return nil
		},
	})
}
