package main

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/rs/zerolog"
	"github.com/spf13/cobra"

	"github.com/Skufu/cardiorisk/internal/config"
	"github.com/Skufu/cardiorisk/internal/httpapi"
	"github.com/Skufu/cardiorisk/internal/model"
	"github.com/Skufu/cardiorisk/internal/risk"
	"github.com/Skufu/cardiorisk/internal/telemetry"
)

func main() {
	if err := rootCmd().Execute(); err != nil {
		os.Exit(1)
	}
}

func rootCmd() *cobra.Command {
	root := &cobra.Command{
		Use:          "cardiorisk",
		Short:        "Cardiovascular disease risk assessment",
		SilenceUsage: true,
	}
	root.AddCommand(serveCmd(), assessCmd(), inspectCmd())
	return root
}

func serveCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "serve",
		Short: "Start the assessment API server",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := config.Load()
			if err != nil {
				return fmt.Errorf("config error: %w", err)
			}
			return runServer(cmd.Context(), cfg)
		},
	}
}

func runServer(ctx context.Context, cfg *config.Config) error {
	logger := telemetry.NewLogger(cfg.LogLevel, cfg.IsDev())
	gin.SetMode(cfg.GinMode)

	handle, pool, err := openModel(ctx, cfg)
	if err != nil {
		logger.Error().Err(err).Msg("startup failed")
		return err
	}
	if pool != nil {
		defer pool.Close()
		logger.Info().Msg("connected to database")
	}

	art, err := handle.Get(ctx)
	if err != nil {
		logger.Error().Err(err).Msg("model artifact unavailable")
		return err
	}
	logger.Info().
		Str("source", art.Source).
		Str("kind", art.Classifier.Kind()).
		Int("columns", len(art.Columns)).
		Bool("metadata", art.Panels.Any()).
		Msg("model artifact loaded")

	metrics := telemetry.NewMetrics()
	metrics.SetModel(art.Source, art.Classifier.Kind())

	deps := httpapi.Deps{
		Service:      risk.NewService(handle),
		Metrics:      metrics,
		Logger:       logger,
		CORSOrigins:  cfg.CORSOrigins,
		MaxBodyBytes: cfg.MaxBodyBytes,
	}
	if cfg.EnableDB {
		deps.DB = pool
	}

	server := &http.Server{
		Addr:              ":" + cfg.Port,
		Handler:           httpapi.NewRouter(deps),
		ReadHeaderTimeout: 5 * time.Second,
		ReadTimeout:       10 * time.Second,
		WriteTimeout:      15 * time.Second,
		IdleTimeout:       60 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			errCh <- err
		}
		close(errCh)
	}()

	logger.Info().Str("port", cfg.Port).Msg("server listening")
	return waitForShutdown(server, errCh, logger)
}

// openModel builds the artifact handle, connecting to the database first
// when the configuration needs one. The returned pool is nil otherwise.
func openModel(ctx context.Context, cfg *config.Config) (*model.Handle, *pgxpool.Pool, error) {
	var pool *pgxpool.Pool
	if cfg.NeedsDB() {
		var err error
		if pool, err = connectDB(ctx, cfg.DatabaseURL); err != nil {
			return nil, nil, fmt.Errorf("database connection failed: %w", err)
		}
	}
	return model.NewHandle(modelSource(cfg, pool)), pool, nil
}

// modelSource picks where the artifact comes from. pool is only used for
// the postgres source.
func modelSource(cfg *config.Config, pool *pgxpool.Pool) model.Source {
	if cfg.ModelSource == config.SourcePostgres {
		return model.PostgresSource{DB: pool, ArtifactName: cfg.ModelName}
	}
	return model.FileSource{Path: cfg.ModelPath}
}

func connectDB(ctx context.Context, url string) (*pgxpool.Pool, error) {
	cfg, err := pgxpool.ParseConfig(url)
	if err != nil {
		return nil, fmt.Errorf("parse db url: %w", err)
	}

	pool, err := pgxpool.NewWithConfig(ctx, cfg)
	if err != nil {
		return nil, fmt.Errorf("create pool: %w", err)
	}

	pingCtx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	if err := pool.Ping(pingCtx); err != nil {
		pool.Close()
		return nil, fmt.Errorf("ping db: %w", err)
	}

	return pool, nil
}

func waitForShutdown(server *http.Server, errCh <-chan error, logger zerolog.Logger) error {
	stop := make(chan os.Signal, 1)
	signal.Notify(stop, syscall.SIGINT, syscall.SIGTERM)
	defer signal.Stop(stop)

	select {
	case err := <-errCh:
		if err != nil {
			logger.Error().Err(err).Msg("server error")
			return err
		}
		return nil
	case <-stop:
	}

	logger.Info().Msg("shutting down server...")
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := server.Shutdown(ctx); err != nil {
		logger.Error().Err(err).Msg("graceful shutdown failed")
		return err
	}
	return nil
}
