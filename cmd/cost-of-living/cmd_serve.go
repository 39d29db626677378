package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/iwvelando/cost-of-living/internal/config"
	"github.com/iwvelando/cost-of-living/internal/server"
	"github.com/iwvelando/cost-of-living/pkg/constants"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

const shutdownTimeout = 5 * time.Second

func newServeCmd(opts *globalOptions) *cobra.Command {
	var (
		serverConfig string
		address      string
	)

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Serve the dashboard JSON API over HTTP",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			srvConf, err := server.LoadConfig(serverConfig)
			if err != nil {
				return err
			}
			if address != "" {
				srvConf.Address = address
			}

			a, err := setup(cmd, opts)
			if err != nil {
				return err
			}
			defer func() { _ = a.logger.Sync() }()

			// Logging from the server config, when present, replaces the dashboard's.
			logger := a.logger
			if srvConf.Logging != (config.LoggingConfig{}) {
				logger, err = initializeLogger(srvConf.Logging, opts.logLevel)
				if err != nil {
					return err
				}
				defer func() { _ = logger.Sync() }()
			}

			ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
			defer stop()

			srv := server.NewServer(srvConf, server.NewHandler(logger, a.svc, version))
			return run(ctx, logger, srv)
		},
	}

	cmd.Flags().StringVar(&serverConfig, "server-config", constants.DefaultServerConfigFile, "path to server configuration file")
	cmd.Flags().StringVar(&address, "addr", "", "listen address override")
	return cmd
}

// run serves until ctx is done, then shuts the server down gracefully.
func run(ctx context.Context, logger *zap.Logger, srv *http.Server) error {
	errCh := make(chan error, 1)
	go func() {
		logger.Info("starting HTTP server",
			zap.String("op", "main.serve"),
			zap.String("address", srv.Addr),
		)
		errCh <- srv.ListenAndServe()
	}()

	select {
	case err := <-errCh:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return err
	case <-ctx.Done():
	}

	logger.Info("shutting down HTTP server", zap.String("op", "main.serve"))
	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	return srv.Shutdown(shutdownCtx)
}
