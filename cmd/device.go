package cmd

import (
	"fmt"

	"github.com/spf13/cobra"
)

func newDeviceCmd(app *app) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "device",
		Short: "Manage the device identity presented to the service",
	}

	cmd.AddCommand(newDeviceShowCmd(app), newDeviceConfigureCmd(app))

	return cmd
}

func newDeviceShowCmd(app *app) *cobra.Command {
	return &cobra.Command{
		Use:   "show",
		Short: "Print the device profile",
		RunE: func(cmd *cobra.Command, _ []string) error {
			device := app.client.Session().Device()
			_, err := fmt.Fprintf(cmd.OutOrStdout(), "id\t%s\nuser agent\t%s\nfile\t%s\n", device.DeviceID, device.UserAgent, app.devices.Path())
			return err
		},
	}
}

func newDeviceConfigureCmd(app *app) *cobra.Command {
	return &cobra.Command{
		Use:   "configure",
		Short: "Register the device with the service",
		RunE: func(cmd *cobra.Command, _ []string) error {
			if err := app.service.ConfigureDevice(cmd.Context()); err != nil {
				return err
			}

			_, err := fmt.Fprintf(cmd.OutOrStdout(), "Device %s configured\n", app.client.Session().Device().DeviceID)
			return err
		},
	}
}
