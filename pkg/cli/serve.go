package cli

import (
	"context"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/m-mizutani/goerr/v2"
	"github.com/m-mizutani/releasepage/pkg/cli/config"
	controller "github.com/m-mizutani/releasepage/pkg/controller/http"
	"github.com/m-mizutani/releasepage/pkg/infra/memory"
	"github.com/m-mizutani/releasepage/pkg/usecase"
	"github.com/m-mizutani/releasepage/pkg/utils/async"
	"github.com/m-mizutani/releasepage/pkg/utils/logging"
	"github.com/urfave/cli/v3"
)

func cmdServe() *cli.Command {
	var (
		serverCfg    config.Server
		githubCfg    config.GitHub
		siteCfg      config.Site
		sentryCfg    config.Sentry
		firestoreCfg config.Firestore
	)

	var flags []cli.Flag
	flags = append(flags, serverCfg.Flags()...)
	flags = append(flags, githubCfg.Flags()...)
	flags = append(flags, siteCfg.Flags()...)
	flags = append(flags, sentryCfg.Flags()...)
	flags = append(flags, firestoreCfg.Flags()...)

	return &cli.Command{
		Name:    "serve",
		Aliases: []string{"s"},
		Usage:   "Start HTTP server",
		Flags:   flags,
		Action: func(ctx context.Context, c *cli.Command) error {
			logger := logging.From(ctx)

			if err := serverCfg.Validate(); err != nil {
				return err
			}
			site, err := siteCfg.Load()
			if err != nil {
				return err
			}

			flush, err := sentryCfg.Configure()
			if err != nil {
				return err
			}
			defer flush()

			logger.Info("Starting releasepage server",
				slog.String("addr", serverCfg.Addr),
				slog.String("repository", site.FullName()),
				slog.String("cache_scope", serverCfg.CacheScope),
				slog.Bool("github_token", githubCfg.Token != ""),
				slog.Bool("webhook", githubCfg.WebhookSecret != ""),
			)

			client, err := githubCfg.NewClient()
			if err != nil {
				return goerr.Wrap(err, "failed to create GitHub client")
			}

			sessions := memory.New()
			releaseUC := usecase.NewRelease(client, site)

			opts := []controller.Option{
				controller.WithAddr(serverCfg.Addr),
			}

			if serverCfg.Shared() {
				opts = append(opts, controller.WithSharedCache())
			}

			if firestoreCfg.Enabled() {
				fsClient, err := firestoreCfg.NewClient(ctx)
				if err != nil {
					return goerr.Wrap(err, "failed to create Firestore client")
				}
				defer func() {
					if err := fsClient.Close(); err != nil {
						logger.Warn("Failed to close Firestore client", "error", err)
					}
				}()
				opts = append(opts, controller.WithVisitorPreferences(fsClient.Visitor))
			}

			if githubCfg.WebhookSecret != "" {
				var webhookOpts []usecase.WebhookOption
				if serverCfg.Shared() {
					webhookOpts = append(webhookOpts,
						usecase.WithSharedCache(sessions.Namespace(controller.SharedSession)))
				}
				webhookUC := usecase.NewWebhook(releaseUC, site.FullName(), webhookOpts...)
				opts = append(opts, controller.WithWebhook(githubCfg.WebhookSecret, webhookUC))
			}

			if serverCfg.WarmUp {
				if serverCfg.Shared() {
					async.Dispatch(ctx, func(ctx context.Context) error {
						_, err := releaseUC.Refresh(ctx, sessions.Namespace(controller.SharedSession))
						return err
					})
				} else {
					logger.Warn("Warm-up ignored in session cache scope")
				}
			}

			server, err := controller.NewServer(ctx, site, releaseUC, sessions, opts...)
			if err != nil {
				return goerr.Wrap(err, "failed to create HTTP server")
			}

			// Start server in goroutine
			go func() {
				logger.Info("HTTP server starting", slog.String("addr", serverCfg.Addr))
				if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
					logger.Error("HTTP server error", slog.Any("error", err))
				}
			}()

			// Wait for interrupt signal
			sigChan := make(chan os.Signal, 1)
			signal.Notify(sigChan, os.Interrupt, syscall.SIGTERM)

			select {
			case <-ctx.Done():
				logger.Info("Context cancelled, shutting down...")
			case sig := <-sigChan:
				logger.Info("Signal received, shutting down...", slog.Any("signal", sig))
			}

			// Graceful shutdown
			shutdownCtx, cancel := context.WithTimeout(context.WithoutCancel(ctx), 10*time.Second)
			defer cancel()

			if err := server.Shutdown(shutdownCtx); err != nil {
				return goerr.Wrap(err, "failed to shutdown server gracefully")
			}

			logger.Info("Server shutdown complete")
			return nil
		},
	}
}
