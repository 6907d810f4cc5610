package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

func newMediaCmd(app *app) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "media",
		Short: "Download media",
	}

	cmd.AddCommand(newMediaGetCmd(app))

	return cmd
}

func newMediaGetCmd(app *app) *cobra.Command {
	var (
		rawURL string
		out    string
	)

	cmd := &cobra.Command{
		Use:   "get",
		Short: "Download a media URL to a file, or stdout with --out -",
		RunE: func(cmd *cobra.Command, _ []string) error {
			media := app.client.Media(rawURL)

			if out == "-" {
				data, err := media.Bytes(cmd.Context())
				if err != nil {
					return err
				}
				_, err = cmd.OutOrStdout().Write(data)
				return err
			}

			data, err := runFetchSpinner(cmd.Context(), cmd.ErrOrStderr(), "Downloading media...", media.Bytes, func(data []byte) string {
				return "Downloaded " + formatSize(len(data))
			})
			if err != nil {
				return err
			}
			if err := os.WriteFile(out, data, 0o644); err != nil {
				return fmt.Errorf("write media file: %w", err)
			}

			_, err = fmt.Fprintf(cmd.OutOrStdout(), "Saved %d bytes to %s\n", len(data), out)
			return err
		},
	}

	cmd.Flags().StringVar(&rawURL, "url", "", "Media URL")
	cmd.Flags().StringVar(&out, "out", "", "Output file, - for stdout")
	_ = cmd.MarkFlagRequired("url")
	_ = cmd.MarkFlagRequired("out")

	return cmd
}
