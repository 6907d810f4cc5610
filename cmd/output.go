package cmd

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/spf13/cobra"
)

type outputOptions struct {
	asJSON bool
}

func (o *outputOptions) register(cmd *cobra.Command) {
	cmd.Flags().BoolVar(&o.asJSON, "json", false, "Print JSON instead of the rendered view")
}

// fetch runs fn behind a spinner, or directly when the output is JSON.
func (o outputOptions) fetch(cmd *cobra.Command, label string, fn func(context.Context) error) error {
	if o.asJSON {
		return fn(cmd.Context())
	}
	_, err := runFetchSpinner(cmd.Context(), cmd.ErrOrStderr(), label, func(ctx context.Context) (struct{}, error) {
		return struct{}{}, fn(ctx)
	}, nil)
	return err
}

// write prints v as indented JSON or the output of render.
func (o outputOptions) write(cmd *cobra.Command, v any, render func() (string, error)) error {
	if o.asJSON {
		enc := json.NewEncoder(cmd.OutOrStdout())
		enc.SetIndent("", "  ")
		return enc.Encode(v)
	}

	rendered, err := render()
	if err != nil {
		return fmt.Errorf("render view: %w", err)
	}

	_, err = fmt.Fprintln(cmd.OutOrStdout(), rendered)
	return err
}
