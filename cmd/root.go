package cmd

import (
	"github.com/spf13/cobra"
)

func Execute() error {
	return newRootCmd().Execute()
}

func newRootCmd() *cobra.Command {
	app := newApp()

	rootCmd := &cobra.Command{
		Use:           "aa",
		Short:         "aminoacids (aa): browse Amino accounts, communities and profiles",
		Long:          "aa logs in to the Amino service, keeps sessions in ~/.aminoacids/config.json and reads accounts, communities, user profiles, blogs and media from the terminal.",
		SilenceUsage:  true,
		SilenceErrors: false,
		PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
			app.configureLogging(cmd.ErrOrStderr())
			if cmd.Annotations[skipWireKey] == "true" {
				return nil
			}
			return app.wire(cmd.Context())
		},
	}

	rootCmd.PersistentFlags().BoolVarP(&app.verbose, "verbose", "v", false, "Log requests and decisions to stderr")
	rootCmd.PersistentFlags().StringVar(&app.email, "email", "", "Account email (defaults to account.email in settings.toml)")

	rootCmd.AddCommand(
		newVersionCmd(),
		newConfigCmd(app),
		newDeviceCmd(app),
		newLoginCmd(app),
		newLogoutCmd(app),
		newAccountCmd(app),
		newCommunityCmd(app),
		newUserCmd(app),
		newBlogCmd(app),
		newMediaCmd(app),
	)

	return rootCmd
}
