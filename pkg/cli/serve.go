package cli

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/m-mizutani/goerr/v2"

	"github.com/secmon-lab/aletheia/pkg/cli/config"
	httpctrl "github.com/secmon-lab/aletheia/pkg/controller/http"
	"github.com/secmon-lab/aletheia/pkg/usecase"
	"github.com/secmon-lab/aletheia/pkg/utils/logging"
	"github.com/urfave/cli/v3"
)

func cmdServe() *cli.Command {
	var addr string
	var appCfg config.AppConfig
	var repoCfg config.Repository
	var storageCfg config.Storage
	var authCfg config.Auth
	var notifyCfg config.Notify

	flags := []cli.Flag{
		&cli.StringFlag{
			Name:        "addr",
			Usage:       "HTTP server address",
			Value:       ":8080",
			Sources:     cli.EnvVars("ALETHEIA_ADDR"),
			Destination: &addr,
		},
	}

	// Add shared config flags
	flags = append(flags, appCfg.Flags()...)
	flags = append(flags, repoCfg.Flags()...)
	flags = append(flags, storageCfg.Flags()...)
	flags = append(flags, authCfg.Flags()...)
	flags = append(flags, notifyCfg.Flags()...)

	return &cli.Command{
		Name:    "serve",
		Aliases: []string{"s"},
		Usage:   "Start HTTP server",
		Flags:   flags,
		Action: func(ctx context.Context, c *cli.Command) error {
			// Load company configuration and build registry
			registry, err := appCfg.Configure()
			if err != nil {
				return goerr.Wrap(err, "failed to load company configuration")
			}

			// Initialize repository based on backend type
			repo, err := repoCfg.Configure(ctx)
			if err != nil {
				return goerr.Wrap(err, "failed to initialize repository")
			}
			defer func() {
				if err := repo.Close(); err != nil {
					logging.Default().Error("failed to close repository", "error", err.Error())
				}
			}()

			// Initialize attachment storage
			storageSvc, err := storageCfg.Configure(ctx)
			if err != nil {
				return goerr.Wrap(err, "failed to initialize attachment storage")
			}

			// Authentication mode
			if err := authCfg.Validate(); err != nil {
				return goerr.Wrap(err, "invalid authentication configuration")
			}
			if authCfg.IsNoAuthMode() {
				logging.Default().Warn("Running in no-auth mode (development only)", "company", authCfg.NoAuthCompany())
			}

			// Initialize use cases
			ucOpts := []usecase.Option{
				usecase.WithStorage(storageSvc),
			}
			if notifySvc := notifyCfg.Configure(registry); notifySvc != nil {
				ucOpts = append(ucOpts, usecase.WithNotify(notifySvc))
			}
			uc := usecase.New(repo, registry, ucOpts...)

			// Create HTTP server
			httpOpts := []httpctrl.Options{
				httpctrl.WithCompanyRegistry(registry),
			}
			if authCfg.IsNoAuthMode() {
				httpOpts = append(httpOpts, httpctrl.WithNoAuth(authCfg.NoAuthCompany()))
			} else {
				httpOpts = append(httpOpts, httpctrl.WithTokenSecret([]byte(authCfg.TokenSecret())))
			}

			server := &http.Server{
				Addr:              addr,
				Handler:           httpctrl.New(uc, httpOpts...),
				ReadHeaderTimeout: 30 * time.Second,
			}

			// Setup signal handling for graceful shutdown
			sigCh := make(chan os.Signal, 1)
			signal.Notify(sigCh, os.Interrupt, syscall.SIGTERM)

			errCh := make(chan error, 1)
			go func() {
				logging.Default().Info("Starting HTTP server", "addr", addr)
				if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
					errCh <- goerr.Wrap(err, "failed to start server")
				}
			}()

			select {
			case err := <-errCh:
				return err
			case sig := <-sigCh:
				logging.Default().Info("Received shutdown signal", "signal", sig)

				shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
				defer cancel()

				if err := server.Shutdown(shutdownCtx); err != nil {
					return goerr.Wrap(err, "failed to shutdown server gracefully")
				}

				logging.Default().Info("Server shutdown completed")
				return nil
			}
		},
	}
}
