package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/roomshare/e2e/internal/cliconfig"
	"github.com/roomshare/e2e/internal/logging"
	"github.com/roomshare/e2e/internal/roomshare"
)

func newServeCmd() *cobra.Command {
	var configPath string

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Run the Roomshare fixture server",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := loadConfig(configPath)
			if err != nil {
				return err
			}
			log, err := logging.New(cfg.LogLevel)
			if err != nil {
				return err
			}
			defer func() { _ = log.Sync() }()

			srv, err := roomshare.NewServer(roomshare.Config{
				Addr:          cfg.Addr,
				PageSize:      cfg.PageSize,
				TotalListings: cfg.TotalListings,
				JWTSecret:     cfg.JWTSecret,
				ReadTimeout:   30 * time.Second,
				WriteTimeout:  30 * time.Second,
				Logger:        log,
			})
			if err != nil {
				return err
			}
			addr, err := srv.Start()
			if err != nil {
				return err
			}
			log.Info("fixture ready", zap.String("url", "http://"+addr+"/search"))

			sigCh := make(chan os.Signal, 1)
			signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)
			sig := <-sigCh
			log.Info("shutting down", zap.String("signal", sig.String()))

			ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
			defer cancel()
			return srv.Shutdown(ctx)
		},
	}
	cmd.Flags().StringVarP(&configPath, "config", "c", "", "YAML config file")
	return cmd
}

// loadConfig reads the YAML file when given, otherwise the defaults.
func loadConfig(path string) (cliconfig.Config, error) {
	if path == "" {
		return cliconfig.Default(), nil
	}
	return cliconfig.Load(path)
}
