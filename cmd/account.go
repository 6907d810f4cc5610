package cmd

import (
	"context"
	"strings"

	"github.com/bnema/aminoacids/internal/adapters/render/profile"
	"github.com/bnema/aminoacids/internal/application"
	"github.com/spf13/cobra"
)

const (
	defaultListLimit = 25
	hydrateLimit     = 4
)

func newAccountCmd(app *app) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "account",
		Short: "Read the logged-in account",
	}

	cmd.AddCommand(
		newAccountShowCmd(app),
		newAccountCommunitiesCmd(app),
	)

	return cmd
}

func newAccountShowCmd(app *app) *cobra.Command {
	var out outputOptions

	cmd := &cobra.Command{
		Use:   "show",
		Short: "Show the account profile",
		RunE: func(cmd *cobra.Command, _ []string) error {
			var view application.AccountView
			err := out.fetch(cmd, "Fetching account...", func(ctx context.Context) error {
				if err := app.login(ctx); err != nil {
					return err
				}

				var err error
				view, err = application.DescribeAccount(ctx, app.service.Account())
				return err
			})
			if err != nil {
				return err
			}

			return out.write(cmd, view, func() (string, error) {
				return profile.RenderAccount(view, profile.RenderOptions{Now: app.now()})
			})
		},
	}

	out.register(cmd)

	return cmd
}

func newAccountCommunitiesCmd(app *app) *cobra.Command {
	var (
		out   outputOptions
		limit int
		full  bool
	)

	cmd := &cobra.Command{
		Use:   "communities",
		Short: "List joined communities",
		RunE: func(cmd *cobra.Command, _ []string) error {
			if full {
				return writeFullCommunities(cmd, app, out, limit)
			}

			var summaries []application.CommunitySummary
			err := out.fetch(cmd, "Fetching communities...", func(ctx context.Context) error {
				if err := app.login(ctx); err != nil {
					return err
				}

				var err error
				feed := app.service.Account().JoinedCommunities(pageSize(limit))
				summaries, err = application.ListCommunities(ctx, feed, limit)
				return err
			})
			if err != nil {
				return err
			}

			return out.write(cmd, summaries, func() (string, error) {
				return profile.RenderCommunities("Joined communities", summaries)
			})
		},
	}

	out.register(cmd)
	cmd.Flags().IntVar(&limit, "limit", defaultListLimit, "Maximum number of communities (0 lists all)")
	cmd.Flags().BoolVar(&full, "full", false, "Fetch the full profile of every community")

	return cmd
}

func writeFullCommunities(cmd *cobra.Command, app *app, out outputOptions, limit int) error {
	var views []application.CommunityView
	err := out.fetch(cmd, "Fetching communities...", func(ctx context.Context) error {
		if err := app.login(ctx); err != nil {
			return err
		}

		communities, err := app.service.Account().JoinedCommunities(pageSize(limit)).Collect(ctx, limit)
		if err != nil {
			return err
		}

		entities := make([]application.Hydratable, 0, len(communities))
		for _, community := range communities {
			entities = append(entities, community.Refresh())
		}
		if err := app.service.Hydrate(ctx, entities, hydrateLimit); err != nil {
			return err
		}

		for _, community := range communities {
			view, err := application.DescribeCommunity(ctx, community)
			if err != nil {
				return err
			}
			views = append(views, view)
		}
		return nil
	})
	if err != nil {
		return err
	}

	return out.write(cmd, views, func() (string, error) {
		rendered := make([]string, 0, len(views))
		for _, view := range views {
			r, err := profile.RenderCommunity(view, profile.RenderOptions{Now: app.now()})
			if err != nil {
				return "", err
			}
			rendered = append(rendered, r)
		}
		return strings.Join(rendered, "\n\n"), nil
	})
}

// pageSize fits the page to small limits.
func pageSize(limit int) int {
	if limit > 0 && limit < defaultListLimit {
		return limit
	}
	return defaultListLimit
}
