package cli

import (
	"context"
	"log/slog"
	"os"

	"github.com/m-mizutani/goerr/v2"
	"github.com/m-mizutani/releasepage/pkg/cli/config"
	"github.com/m-mizutani/releasepage/pkg/domain/interfaces"
	"github.com/m-mizutani/releasepage/pkg/domain/model"
	"github.com/m-mizutani/releasepage/pkg/usecase"
	"github.com/m-mizutani/releasepage/pkg/utils/logging"
	"github.com/m-mizutani/releasepage/pkg/view"
	"github.com/urfave/cli/v3"
)

const pageObjectName = "index.html"

func cmdRender() *cli.Command {
	var (
		githubCfg  config.GitHub
		siteCfg    config.Site
		sentryCfg  config.Sentry
		storageCfg config.Storage
		output     string
		dark       bool
	)

	flags := []cli.Flag{
		&cli.StringFlag{
			Name:        "output",
			Aliases:     []string{"o"},
			Usage:       "Output file, - for stdout",
			Value:       pageObjectName,
			Destination: &output,
			Sources:     cli.EnvVars("RELEASEPAGE_OUTPUT"),
		},
		&cli.BoolFlag{
			Name:        "dark",
			Usage:       "Render with the dark theme",
			Destination: &dark,
			Sources:     cli.EnvVars("RELEASEPAGE_DARK"),
		},
	}
	flags = append(flags, githubCfg.Flags()...)
	flags = append(flags, siteCfg.Flags()...)
	flags = append(flags, sentryCfg.Flags()...)
	flags = append(flags, storageCfg.Flags()...)

	return &cli.Command{
		Name:    "render",
		Aliases: []string{"r"},
		Usage:   "Render the landing page once to a file or a Cloud Storage object",
		Flags:   flags,
		Action: func(ctx context.Context, c *cli.Command) error {
			logger := logging.From(ctx)

			site, err := siteCfg.Load()
			if err != nil {
				return err
			}

			flush, err := sentryCfg.Configure()
			if err != nil {
				return err
			}
			defer flush()

			client, err := githubCfg.NewClient()
			if err != nil {
				return goerr.Wrap(err, "failed to create GitHub client")
			}

			body, info, err := renderPage(ctx, usecase.NewRelease(client, site), site, dark)
			if err != nil {
				return err
			}
			logger.Info("Rendered landing page",
				slog.String("repository", site.FullName()),
				slog.String("version", info.Version()),
				slog.Bool("resolved", info != nil),
				slog.Int("bytes", len(body)),
			)

			if storageCfg.Enabled() {
				publisher, err := storageCfg.NewPublisher(ctx)
				if err != nil {
					return goerr.Wrap(err, "failed to create Cloud Storage publisher")
				}
				defer func() {
					if err := publisher.Close(); err != nil {
						logger.Warn("Failed to close Cloud Storage client", "error", err)
					}
				}()
				return publishPage(ctx, publisher, body)
			}

			if output == "-" {
				if _, err := os.Stdout.Write(body); err != nil {
					return goerr.Wrap(err, "failed to write page to stdout")
				}
				return nil
			}
			if err := os.WriteFile(output, body, 0o644); err != nil {
				return goerr.Wrap(err, "failed to write page", goerr.V("path", output))
			}
			logger.Info("Page written", slog.String("path", output))
			return nil
		},
	}
}

// renderPage resolves the release without a cache and renders the static
// page. Resolution failures still produce a page with the fallback link.
func renderPage(ctx context.Context, releaseUC interfaces.ReleaseUseCase, site model.Site, dark bool) ([]byte, *model.ReleaseInfo, error) {
	page := model.NewPage(model.DefaultElements...)
	page.Theme = usecase.NewTheme().Init(ctx, nil, dark)
	usecase.NewBackToTop(page.Classes(model.ElemBackToTop)).OnScroll(0)

	info := releaseUC.Load(ctx, nil, page)

	body, err := view.RenderBytes(&view.Data{
		Site: site,
		Page: page,
	})
	if err != nil {
		return nil, info, err
	}
	return body, info, nil
}

func publishPage(ctx context.Context, publisher interfaces.Publisher, body []byte) error {
	if err := publisher.Publish(ctx, pageObjectName, body, "text/html; charset=utf-8"); err != nil {
		return goerr.Wrap(err, "failed to publish page", goerr.V("object", pageObjectName))
	}
	logging.From(ctx).Info("Page published", slog.String("object", pageObjectName))
	return nil
}
