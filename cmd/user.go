package cmd

import (
	"context"
	"fmt"

	"github.com/bnema/aminoacids/internal/adapters/render/profile"
	"github.com/bnema/aminoacids/internal/application"
	"github.com/spf13/cobra"
)

func newUserCmd(app *app) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "user",
		Short: "Read user profiles",
	}

	cmd.AddCommand(newUserShowCmd(app), newUserBlogsCmd(app))

	return cmd
}

func newUserShowCmd(app *app) *cobra.Command {
	var (
		out       outputOptions
		id        string
		community string
	)

	cmd := &cobra.Command{
		Use:   "show",
		Short: "Show a global or community profile",
		RunE: func(cmd *cobra.Command, _ []string) error {
			var view application.UserView
			err := out.fetch(cmd, "Fetching profile...", func(ctx context.Context) error {
				var err error
				view, err = application.DescribeUser(ctx, app.service.User(id, community))
				return err
			})
			if err != nil {
				return err
			}

			return out.write(cmd, view, func() (string, error) {
				return profile.RenderUser(view, profile.RenderOptions{Now: app.now()})
			})
		},
	}

	out.register(cmd)
	cmd.Flags().StringVar(&id, "id", "", "User id")
	cmd.Flags().StringVar(&community, "community", "", "Community id for a community profile (empty for the global profile)")
	_ = cmd.MarkFlagRequired("id")

	return cmd
}

func newUserBlogsCmd(app *app) *cobra.Command {
	var (
		out       outputOptions
		id        string
		community string
		limit     int
	)

	cmd := &cobra.Command{
		Use:   "blogs",
		Short: "List the blogs a user posted in a community",
		RunE: func(cmd *cobra.Command, _ []string) error {
			var blogs []application.BlogView
			err := out.fetch(cmd, "Fetching blogs...", func(ctx context.Context) error {
				var err error
				feed := app.service.User(id, community).Blogs(pageSize(limit))
				blogs, err = application.ListBlogs(ctx, feed, limit)
				return err
			})
			if err != nil {
				return err
			}

			return out.write(cmd, blogs, func() (string, error) {
				return profile.RenderBlogs(fmt.Sprintf("Blogs of %s in community %s", id, community), blogs, profile.RenderOptions{Now: app.now()})
			})
		},
	}

	out.register(cmd)
	cmd.Flags().StringVar(&id, "id", "", "User id")
	cmd.Flags().StringVar(&community, "community", "", "Community id")
	cmd.Flags().IntVar(&limit, "limit", defaultListLimit, "Maximum number of blogs (0 lists all)")
	_ = cmd.MarkFlagRequired("id")
	_ = cmd.MarkFlagRequired("community")

	return cmd
}
