package cmd

import (
	"context"
	"fmt"

	"github.com/bnema/aminoacids/internal/adapters/render/profile"
	"github.com/bnema/aminoacids/internal/amino"
	"github.com/bnema/aminoacids/internal/application"
	"github.com/bnema/aminoacids/internal/remote"
	"github.com/spf13/cobra"
)

func newCommunityCmd(app *app) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "community",
		Short: "Read communities",
	}

	cmd.AddCommand(
		newCommunityShowCmd(app),
		newCommunityKindredCmd(app),
		newCommunityMembersCmd(app),
		newCommunitySearchCmd(app),
	)

	return cmd
}

func newCommunityShowCmd(app *app) *cobra.Command {
	var (
		out outputOptions
		id  string
	)

	cmd := &cobra.Command{
		Use:   "show",
		Short: "Show a community",
		RunE: func(cmd *cobra.Command, _ []string) error {
			var view application.CommunityView
			err := out.fetch(cmd, "Fetching community...", func(ctx context.Context) error {
				var err error
				view, err = application.DescribeCommunity(ctx, app.service.Community(id))
				return err
			})
			if err != nil {
				return err
			}

			return out.write(cmd, view, func() (string, error) {
				return profile.RenderCommunity(view, profile.RenderOptions{Now: app.now()})
			})
		},
	}

	out.register(cmd)
	cmd.Flags().StringVar(&id, "id", "", "Community id (ndcId)")
	_ = cmd.MarkFlagRequired("id")

	return cmd
}

func newCommunityKindredCmd(app *app) *cobra.Command {
	var (
		out   outputOptions
		id    string
		limit int
	)

	cmd := &cobra.Command{
		Use:   "kindred",
		Short: "List communities related to a community",
		RunE: func(cmd *cobra.Command, _ []string) error {
			var summaries []application.CommunitySummary
			err := out.fetch(cmd, "Fetching related communities...", func(ctx context.Context) error {
				var err error
				feed := app.service.Community(id).Kindred(pageSize(limit))
				summaries, err = application.ListCommunities(ctx, feed, limit)
				return err
			})
			if err != nil {
				return err
			}

			return out.write(cmd, summaries, func() (string, error) {
				return profile.RenderCommunities(fmt.Sprintf("Related to community %s", id), summaries)
			})
		},
	}

	out.register(cmd)
	cmd.Flags().StringVar(&id, "id", "", "Community id (ndcId)")
	cmd.Flags().IntVar(&limit, "limit", defaultListLimit, "Maximum number of communities (0 lists all)")
	_ = cmd.MarkFlagRequired("id")

	return cmd
}

func newCommunityMembersCmd(app *app) *cobra.Command {
	var (
		out   outputOptions
		id    string
		limit int
	)

	cmd := &cobra.Command{
		Use:   "members",
		Short: "List recent members of a community",
		RunE: func(cmd *cobra.Command, _ []string) error {
			return writeUsers(cmd, app, out, limit, fmt.Sprintf("Members of community %s", id), func() *remote.Feed[*amino.User] {
				return app.service.Community(id).Members(pageSize(limit))
			})
		},
	}

	out.register(cmd)
	cmd.Flags().StringVar(&id, "id", "", "Community id (ndcId)")
	cmd.Flags().IntVar(&limit, "limit", defaultListLimit, "Maximum number of members (0 lists all)")
	_ = cmd.MarkFlagRequired("id")

	return cmd
}

func newCommunitySearchCmd(app *app) *cobra.Command {
	var (
		out   outputOptions
		id    string
		query string
		limit int
	)

	cmd := &cobra.Command{
		Use:   "search",
		Short: "Search the users of a community",
		RunE: func(cmd *cobra.Command, _ []string) error {
			return writeUsers(cmd, app, out, limit, fmt.Sprintf("Users matching %q", query), func() *remote.Feed[*amino.User] {
				return app.service.Community(id).SearchUsers(query, pageSize(limit))
			})
		},
	}

	out.register(cmd)
	cmd.Flags().StringVar(&id, "id", "", "Community id (ndcId)")
	cmd.Flags().StringVar(&query, "query", "", "Nickname to search for")
	cmd.Flags().IntVar(&limit, "limit", defaultListLimit, "Maximum number of users (0 lists all)")
	_ = cmd.MarkFlagRequired("id")
	_ = cmd.MarkFlagRequired("query")

	return cmd
}

func writeUsers(cmd *cobra.Command, app *app, out outputOptions, limit int, title string, feed func() *remote.Feed[*amino.User]) error {
	var summaries []application.UserSummary
	err := out.fetch(cmd, "Fetching users...", func(ctx context.Context) error {
		var err error
		summaries, err = application.ListUsers(ctx, feed(), limit)
		return err
	})
	if err != nil {
		return err
	}

	return out.write(cmd, summaries, func() (string, error) {
		return profile.RenderUsers(title, summaries)
	})
}
