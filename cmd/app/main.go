package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"parcellocker/cmd"
	"parcellocker/internal/adapters/out/postgres"
	"parcellocker/internal/core/application/usecases/commands"

	"github.com/labstack/gommon/log"
	"github.com/spf13/cobra"
)

func main() {
	logger := slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{Level: slog.LevelInfo}))
	slog.SetDefault(logger)

	envFile := ".env"
	rootCmd := &cobra.Command{
		Use:           "parcellocker",
		Short:         "Parcel locker delivery engine",
		SilenceUsage:  true,
		SilenceErrors: true,
	}
	rootCmd.PersistentFlags().StringVar(&envFile, "env-file", envFile, "Optional .env file read before the environment")

	rootCmd.AddCommand(
		&cobra.Command{
			Use:   "serve",
			Short: "Start the HTTP API and the cleanup job",
			RunE: func(c *cobra.Command, _ []string) error {
				return withRoot(c.Context(), envFile, logger, serve)
			},
		},
		&cobra.Command{
			Use:   "migrate",
			Short: "Create or update the database schema",
			RunE: func(c *cobra.Command, _ []string) error {
				return withRoot(c.Context(), envFile, logger, func(ctx context.Context, cfg cmd.Config, store *postgres.Store, _ cmd.CompositionRoot) error {
					if err := store.Migrate(ctx); err != nil {
						return fmt.Errorf("migrate: %w", err)
					}
					logger.InfoContext(ctx, "Schema migrated", "driver", cfg.DBDriver)
					return nil
				})
			},
		},
		&cobra.Command{
			Use:   "purge-sync",
			Short: "Delete hardware sync records that were collected",
			RunE: func(c *cobra.Command, _ []string) error {
				return withRoot(c.Context(), envFile, logger, func(ctx context.Context, _ cmd.Config, _ *postgres.Store, app cmd.CompositionRoot) error {
					deleted, err := app.CreatePurgeCollectedSyncRecordsCommandHandler().
						Handle(ctx, commands.NewPurgeCollectedSyncRecordsCommand())
					if err != nil {
						return err
					}
					fmt.Fprintf(c.OutOrStdout(), "deleted %d sync records\n", deleted)
					return nil
				})
			},
		},
	)

	ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer cancel()

	if err := rootCmd.ExecuteContext(ctx); err != nil {
		log.Fatalf("parcellocker: %v", err)
	}
}

type action func(ctx context.Context, cfg cmd.Config, store *postgres.Store, app cmd.CompositionRoot) error

func withRoot(ctx context.Context, envFile string, logger *slog.Logger, run action) error {
	cfg, err := cmd.LoadConfig(envFile)
	if err != nil {
		return fmt.Errorf("config: %w", err)
	}

	store, err := postgres.OpenStore(ctx, cfg.StoreConfig())
	if err != nil {
		return fmt.Errorf("open store: %w", err)
	}
	defer func() {
		if closeErr := store.Close(); closeErr != nil {
			logger.Warn("Closing store failed", "error", closeErr)
		}
	}()

	return run(ctx, cfg, store, cmd.NewCompositionRoot(cfg, store, logger))
}

func serve(ctx context.Context, cfg cmd.Config, store *postgres.Store, app cmd.CompositionRoot) error {
	if err := store.Migrate(ctx); err != nil {
		return fmt.Errorf("migrate: %w", err)
	}

	jobManager := app.CreateJobManager()
	if err := jobManager.StartAll(); err != nil {
		return err
	}
	defer jobManager.StopAll()

	e, err := app.CreateRouter()
	if err != nil {
		return fmt.Errorf("build router: %w", err)
	}
	errCh := make(chan error, 1)
	go func() {
		errCh <- e.Start(fmt.Sprintf("0.0.0.0:%s", cfg.HTTPPort))
	}()

	select {
	case err := <-errCh:
		if !errors.Is(err, http.ErrServerClosed) {
			return err
		}
		return nil
	case <-ctx.Done():
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.ShutdownTimeout)
	defer cancel()
	return e.Shutdown(shutdownCtx)
}
