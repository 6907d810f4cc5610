package cmd

import (
	"fmt"
	"slices"

	"github.com/spf13/cobra"
)

func newConfigCmd(app *app) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "config",
		Short: "Inspect local configuration",
	}

	cmd.AddCommand(newConfigPathCmd(app), newConfigSessionsCmd(app))

	return cmd
}

func newConfigPathCmd(app *app) *cobra.Command {
	return &cobra.Command{
		Use:   "path",
		Short: "Print the session store and device profile paths",
		RunE: func(cmd *cobra.Command, _ []string) error {
			_, err := fmt.Fprintf(cmd.OutOrStdout(), "sessions\t%s\ndevice\t%s\n", app.sessions.Path(), app.devices.Path())
			return err
		},
	}
}

func newConfigSessionsCmd(app *app) *cobra.Command {
	return &cobra.Command{
		Use:   "sessions",
		Short: "List accounts with a stored session",
		RunE: func(cmd *cobra.Command, _ []string) error {
			records := app.sessions.Snapshot()
			emails := make([]string, 0, len(records))
			for email := range records {
				emails = append(emails, email)
			}
			slices.Sort(emails)

			for _, email := range emails {
				state := "active"
				if !records[email].Usable() {
					state = "cleared"
				}
				_, _ = fmt.Fprintf(cmd.OutOrStdout(), "%s\t%s\t%s\n", email, records[email].AccountID, state)
			}

			return nil
		},
	}
}
