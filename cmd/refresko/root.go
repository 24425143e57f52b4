package main

import (
	"fmt"
	"log/slog"
	"net/http"

	"github.com/spf13/cobra"

	"github.com/skf-fest/refresko/internal/admin"
	"github.com/skf-fest/refresko/internal/config"
	"github.com/skf-fest/refresko/internal/metrics"
	"github.com/skf-fest/refresko/internal/notify"
	"github.com/skf-fest/refresko/internal/payments"
	"github.com/skf-fest/refresko/internal/session"
	"github.com/skf-fest/refresko/internal/storage"
	"github.com/skf-fest/refresko/internal/storage/sqlite"
	"github.com/skf-fest/refresko/pkg/logging"
)

// app holds the wiring every subcommand shares. Built in the root
// PersistentPreRunE, torn down in PersistentPostRunE.
type app struct {
	cfg      config.Config
	bus      *notify.Bus
	repo     *storage.Repository
	sessions *session.Manager
	workflow *payments.Workflow
	admin    *admin.ReadModel
}

var current *app

var rootCmd = &cobra.Command{
	Use:           "refresko",
	Short:         "Refresko festival registration state layer",
	SilenceUsage:  true,
	SilenceErrors: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := config.Load()
		if err != nil {
			return err
		}
		logging.SetupWithLevel(logging.LevelFromString(cfg.LogLevel))

		engine, err := sqlite.New(cfg.DBPath,
			sqlite.WithMaxValueBytes(cfg.StoreMaxValueBytes))
		if err != nil {
			return fmt.Errorf("open store: %w", err)
		}
		slog.Debug("store opened", "path", cfg.DBPath)

		bus := notify.NewBus()
		repo := storage.NewRepository(engine, bus)

		current = &app{
			cfg:      cfg,
			bus:      bus,
			repo:     repo,
			sessions: session.NewManager(repo, cfg.LoginDelay),
			workflow: payments.NewWorkflow(repo, cfg.ProcessingDelay),
			admin:    admin.NewReadModel(repo),
		}

		if cfg.MetricsAddr != "" {
			go func() {
				slog.Info("metrics listener starting", "address", cfg.MetricsAddr)
				if err := http.ListenAndServe(cfg.MetricsAddr, metrics.Handler()); err != nil {
					slog.Error("metrics listener failed", "error", err)
				}
			}()
		}
		return nil
	},
	PersistentPostRunE: func(cmd *cobra.Command, args []string) error {
		if current != nil {
			return current.repo.Close()
		}
		return nil
	},
}

func init() {
	rootCmd.AddCommand(loginCmd)
	rootCmd.AddCommand(logoutCmd)
	rootCmd.AddCommand(profileCmd)
	rootCmd.AddCommand(submitCmd)
	rootCmd.AddCommand(paymentsCmd)
	rootCmd.AddCommand(watchCmd)
}
