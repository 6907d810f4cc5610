package cmd

import (
	"context"

	"github.com/bnema/aminoacids/internal/adapters/render/profile"
	"github.com/bnema/aminoacids/internal/application"
	"github.com/spf13/cobra"
)

func newBlogCmd(app *app) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "blog",
		Short: "Read blogs",
	}

	cmd.AddCommand(newBlogShowCmd(app))

	return cmd
}

func newBlogShowCmd(app *app) *cobra.Command {
	var (
		out       outputOptions
		id        string
		community string
	)

	cmd := &cobra.Command{
		Use:   "show",
		Short: "Show a blog",
		RunE: func(cmd *cobra.Command, _ []string) error {
			var view application.BlogView
			err := out.fetch(cmd, "Fetching blog...", func(ctx context.Context) error {
				var err error
				view, err = application.DescribeBlog(ctx, app.service.Blog(id, community))
				return err
			})
			if err != nil {
				return err
			}

			return out.write(cmd, view, func() (string, error) {
				return profile.RenderBlogs("Blog", []application.BlogView{view}, profile.RenderOptions{Now: app.now()})
			})
		},
	}

	out.register(cmd)
	cmd.Flags().StringVar(&id, "id", "", "Blog id")
	cmd.Flags().StringVar(&community, "community", "", "Community id")
	_ = cmd.MarkFlagRequired("id")
	_ = cmd.MarkFlagRequired("community")

	return cmd
}
