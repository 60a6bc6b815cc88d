package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"text/tabwriter"
	"time"

	"github.com/spf13/cobra"

	"invite-app-go/internal/app"
	"invite-app-go/internal/config"
	"invite-app-go/pkg/logger"
)

var httpPort string

func main() {
	log := logger.NewFromEnv()

	rootCmd := &cobra.Command{
		Use:           "invite-app",
		Short:         "Guest access and song suggestion service",
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runServer(cmd.Context(), log)
		},
	}
	rootCmd.PersistentFlags().StringVar(&httpPort, "port", "", "HTTP listen port (overrides HTTP_PORT)")

	rootCmd.AddCommand(
		&cobra.Command{
			Use:   "serve",
			Short: "Run the HTTP API (default)",
			RunE: func(cmd *cobra.Command, args []string) error {
				return runServer(cmd.Context(), log)
			},
		},
		&cobra.Command{
			Use:   "migrate",
			Short: "Apply pending database migrations and exit",
			RunE: func(cmd *cobra.Command, args []string) error {
				cfg, err := loadConfig(log)
				if err != nil {
					return err
				}
				applied, err := app.Migrate(cfg, log)
				if err != nil {
					return err
				}
				log.Info("db: migrations complete", "applied", applied)
				return nil
			},
		},
		&cobra.Command{
			Use:   "codes",
			Short: "Print the configured guest codes",
			RunE: func(cmd *cobra.Command, args []string) error {
				cfg, err := loadConfig(log)
				if err != nil {
					return err
				}
				directory, err := app.LoadDirectory(cfg)
				if err != nil {
					return err
				}

				out := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 4, 2, ' ', 0)
				fmt.Fprintln(out, "CODE\tFAMILY\tGUESTS")
				for _, guest := range directory.Guests() {
					fmt.Fprintf(out, "%s\t%s\t%d\n", guest.Code, guest.FamilyName, guest.PartySize)
				}
				return out.Flush()
			},
		},
	)

	if err := rootCmd.Execute(); err != nil {
		log.Critical("app: command failed", "err", err)
		os.Exit(1)
	}
}

func loadConfig(log logger.Logger) (config.Config, error) {
	cfg, err := config.Load(log)
	if err != nil {
		return config.Config{}, err
	}
	if httpPort != "" {
		cfg.HTTPPort = httpPort
	}
	return cfg, nil
}

func runServer(ctx context.Context, log logger.Logger) error {
	log.Info("app: starting")

	ctx, stop := signal.NotifyContext(ctx, os.Interrupt, syscall.SIGTERM)
	defer stop()

	cfg, err := loadConfig(log)
	if err != nil {
		return fmt.Errorf("config: %w", err)
	}

	application, err := app.NewWithConfig(cfg, log)
	if err != nil {
		return fmt.Errorf("init: %w", err)
	}

	srv := application.HTTPServer()
	log.Info("http: listening", "addr", srv.Addr)

	serverErrCh := make(chan error, 1)

	go func() {
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			serverErrCh <- err
		}
		close(serverErrCh)
	}()

	var runErr error
	select {
	case <-ctx.Done():
		log.Info("app: shutdown signal received")
	case err := <-serverErrCh:
		if err != nil {
			log.Critical("http: server failed", "addr", srv.Addr, "err", err)
			runErr = err
		}
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil && !errors.Is(err, http.ErrServerClosed) {
		log.Error("http: graceful shutdown failed", "err", err)
		runErr = errors.Join(runErr, err)
	}

	if err := application.Close(); err != nil {
		log.Error("app: close failed", "err", err)
		runErr = errors.Join(runErr, err)
	}

	if runErr == nil {
		log.Info("app: stopped")
	}
	return runErr
}
