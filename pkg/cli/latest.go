package cli

import (
	"context"
	"fmt"
	"io"
	"os"

	"github.com/fatih/color"
	"github.com/m-mizutani/goerr/v2"
	"github.com/m-mizutani/releasepage/pkg/cli/config"
	"github.com/m-mizutani/releasepage/pkg/domain/model"
	"github.com/m-mizutani/releasepage/pkg/usecase"
	"github.com/urfave/cli/v3"
)

func cmdLatest() *cli.Command {
	var (
		githubCfg config.GitHub
		siteCfg   config.Site
		notes     bool
	)

	flags := []cli.Flag{
		&cli.BoolFlag{
			Name:        "notes",
			Usage:       "Also print the raw release notes",
			Destination: &notes,
		},
	}
	flags = append(flags, githubCfg.Flags()...)
	flags = append(flags, siteCfg.Flags()...)

	return &cli.Command{
		Name:    "latest",
		Aliases: []string{"l"},
		Usage:   "Print the latest release and its download target",
		Flags:   flags,
		Action: func(ctx context.Context, c *cli.Command) error {
			site, err := siteCfg.Load()
			if err != nil {
				return err
			}

			client, err := githubCfg.NewClient()
			if err != nil {
				return goerr.Wrap(err, "failed to create GitHub client")
			}

			info, err := client.LatestRelease(ctx, site.Owner, site.Repo)
			if err != nil {
				return err
			}

			printRelease(os.Stdout, site, info, notes)
			return nil
		},
	}
}

func printRelease(w io.Writer, site model.Site, info *model.ReleaseInfo, notes bool) {
	bold := color.New(color.Bold)
	green := color.New(color.FgGreen, color.Bold)
	faint := color.New(color.Faint)

	fmt.Fprintf(w, "%s %s\n", bold.Sprint(site.FullName()), green.Sprint(info.Version()))

	if date := usecase.FormatDate(info.PublishedAt, site.DateLayout); date != "" {
		fmt.Fprintf(w, "  published  %s\n", date)
	}

	target, isAsset := info.DownloadTarget(site.AssetExt, site.FallbackURL())
	if isAsset {
		fmt.Fprintf(w, "  download   %s\n", target)
	} else {
		fmt.Fprintf(w, "  download   %s %s\n", target,
			color.YellowString("(no %s asset)", site.AssetExt))
	}
	if site.MirrorURL != "" {
		fmt.Fprintf(w, "  mirror     %s\n", site.MirrorURL)
	}

	for _, asset := range info.Assets {
		fmt.Fprintf(w, "  %s %s\n", faint.Sprint("asset"), asset.Name)
	}

	if notes && info.Body != "" {
		fmt.Fprintf(w, "\n%s\n", info.Body)
	}
}
