package cli

import (
	"context"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/getsentry/sentry-go"
	"github.com/m-mizutani/ctxlog"
	"github.com/m-mizutani/goerr/v2"
	"github.com/m-mizutani/tailor/pkg/cli/config"
	controller "github.com/m-mizutani/tailor/pkg/controller/http"
	"github.com/m-mizutani/tailor/pkg/domain/interfaces"
	"github.com/m-mizutani/tailor/pkg/domain/types"
	"github.com/m-mizutani/tailor/pkg/infra/artifact"
	"github.com/m-mizutani/tailor/pkg/infra/formatter"
	githubinfra "github.com/m-mizutani/tailor/pkg/infra/github"
	"github.com/m-mizutani/tailor/pkg/infra/gitws"
	"github.com/m-mizutani/tailor/pkg/infra/notify"
	"github.com/m-mizutani/tailor/pkg/infra/repository"
	"github.com/m-mizutani/tailor/pkg/usecase"
	"github.com/urfave/cli/v3"
)

func cmdServe() *cli.Command {
	var (
		serverCfg    config.Server
		githubCfg    config.GitHub
		workflowCfg  config.Workflow
		storageCfg   config.Storage
		firestoreCfg config.Firestore
		sentryCfg    config.Sentry
		slackCfg     config.Slack
	)

	flags := append(serverCfg.Flags(), githubCfg.Flags()...)
	flags = append(flags, workflowCfg.Flags()...)
	flags = append(flags, storageCfg.Flags()...)
	flags = append(flags, firestoreCfg.Flags()...)
	flags = append(flags, sentryCfg.Flags()...)
	flags = append(flags, slackCfg.Flags()...)

	return &cli.Command{
		Name:    "serve",
		Aliases: []string{"s"},
		Usage:   "Start HTTP server",
		Flags:   flags,
		Action: func(ctx context.Context, c *cli.Command) error {
			logger := ctxlog.From(ctx)

			if err := githubCfg.Validate(); err != nil {
				return err
			}

			rules, err := workflowCfg.Load()
			if err != nil {
				return err
			}

			if sentryCfg.DSN != "" {
				if err := sentry.Init(sentry.ClientOptions{
					Dsn:         sentryCfg.DSN,
					Environment: sentryCfg.Env,
					Release:     types.Version,
				}); err != nil {
					return goerr.Wrap(err, "failed to initialize sentry")
				}
				defer sentry.Flush(2 * time.Second)
			}

			logger.Info("Starting tailor server",
				slog.String("addr", serverCfg.Addr),
				slog.String("trigger", rules.Trigger),
				slog.Int("categories", len(rules.Categories)),
			)

			// GitHub client: App installation or personal access token
			var githubClient interfaces.GitHubClient
			if githubCfg.UseApp() {
				key, err := githubCfg.PrivateKey()
				if err != nil {
					return err
				}
				githubClient, err = githubinfra.NewClient(githubCfg.AppID, githubCfg.InstallationID, key)
				if err != nil {
					return goerr.Wrap(err, "failed to create GitHub App client")
				}
				logger.Info("Authenticating as GitHub App",
					slog.Int64("app_id", githubCfg.AppID),
					slog.Int64("installation_id", githubCfg.InstallationID),
				)
			} else {
				githubClient = githubinfra.NewClientWithToken(ctx, githubCfg.Token)
				logger.Info("Authenticating with personal access token")
			}

			// Artifact store: GCS bucket or local directory
			var artifacts interfaces.ArtifactStore
			if storageCfg.Bucket != "" {
				gcs, err := artifact.NewGCS(ctx, storageCfg.Bucket)
				if err != nil {
					return goerr.Wrap(err, "failed to create artifact store")
				}
				defer func() {
					if err := gcs.Close(); err != nil {
						logger.Warn("Failed to close artifact store", slog.Any("error", err))
					}
				}()
				artifacts = gcs
				logger.Info("Using GCS artifact store", slog.String("bucket", storageCfg.Bucket))
			} else {
				retention := time.Duration(storageCfg.RetentionDays) * 24 * time.Hour
				artifacts = artifact.NewDir(storageCfg.Dir, retention)
				logger.Info("Using local artifact store",
					slog.String("dir", storageCfg.Dir),
					slog.Int64("retention_days", storageCfg.RetentionDays),
				)
			}

			// Run repository: Firestore or in-memory
			var repos interfaces.RunRepository
			if firestoreCfg.ProjectID != "" {
				fs, err := repository.NewFirestore(ctx, firestoreCfg.ProjectID, firestoreCfg.Collection)
				if err != nil {
					return goerr.Wrap(err, "failed to create run repository")
				}
				defer func() {
					if err := fs.Close(); err != nil {
						logger.Warn("Failed to close run repository", slog.Any("error", err))
					}
				}()
				repos = fs
				logger.Info("Using Firestore run repository",
					slog.String("project_id", firestoreCfg.ProjectID),
					slog.String("collection", firestoreCfg.Collection),
				)
			} else {
				repos = repository.NewMemory()
				logger.Warn("Using in-memory run repository, run records are lost on restart")
			}

			// Failure notifier
			var notifier interfaces.Notifier
			if slackCfg.WebhookURL != "" {
				notifier = notify.NewSlack(slackCfg.WebhookURL)
				logger.Info("Slack failure notifications enabled")
			} else {
				notifier = notify.NewNop()
			}

			workspaces := gitws.New(githubClient)

			// Create use cases
			workflowUC := usecase.NewWorkflow(
				rules, githubClient, workspaces, formatter.New(),
				artifacts, repos, notifier, serverCfg.BaseURL,
			)
			webhookUC := usecase.NewWebhook(
				rules, githubClient, repos, workflowUC, serverCfg.BaseURL,
			)
			runQueryUC := usecase.NewRunQuery(repos)

			// Create HTTP server with options
			server, err := controller.NewServer(
				ctx,
				webhookUC,
				runQueryUC,
				controller.WithAddr(serverCfg.Addr),
				controller.WithWebhookSecret(githubCfg.WebhookSecret),
			)
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
			shutdownCtx, cancel := context.WithTimeout(ctx, 10*time.Second)
			defer cancel()

			if err := server.Shutdown(shutdownCtx); err != nil {
				return goerr.Wrap(err, "failed to shutdown server gracefully")
			}

			logger.Info("Server shutdown complete")
			return nil
		},
	}
}
