package cmd

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/bnema/aminoacids/internal/application"
	"github.com/spf13/cobra"
)

func newLoginCmd(app *app) *cobra.Command {
	var (
		password      string
		passwordStdin bool
		force         bool
		remember      bool
	)

	cmd := &cobra.Command{
		Use:   "login",
		Short: "Log in, reusing the stored session when it is still valid",
		RunE: func(cmd *cobra.Command, _ []string) error {
			email, err := app.accountEmail()
			if err != nil {
				return err
			}

			if passwordStdin {
				if password != "" {
					return errors.New("--password and --password-stdin are mutually exclusive")
				}
				password, err = readPassword(cmd.InOrStdin())
				if err != nil {
					return err
				}
			}

			err = app.service.Login(cmd.Context(), application.LoginCommand{
				Email:    email,
				Password: password,
				Force:    force,
				Remember: remember,
			})
			if err != nil {
				return err
			}

			_, err = fmt.Fprintf(cmd.OutOrStdout(), "Logged in as %s (%s)\n", email, app.client.Session().Credentials().AccountID)
			return err
		},
	}

	cmd.Flags().StringVar(&password, "password", "", "Account password (only needed without a stored session)")
	cmd.Flags().BoolVar(&passwordStdin, "password-stdin", false, "Read the password from stdin")
	cmd.Flags().BoolVar(&force, "force", false, "Ignore the stored session and log in again")
	cmd.Flags().BoolVar(&remember, "remember", false, "Remember the password in pass, or a local file when pass is unavailable")

	return cmd
}

func newLogoutCmd(app *app) *cobra.Command {
	var forgetPassword bool

	cmd := &cobra.Command{
		Use:   "logout",
		Short: "Clear the stored session of an account",
		RunE: func(cmd *cobra.Command, _ []string) error {
			email, err := app.accountEmail()
			if err != nil {
				return err
			}

			app.service.Logout(cmd.Context())
			if err := app.service.Forget(cmd.Context(), application.ForgetCommand{Email: email, Password: forgetPassword}); err != nil {
				return err
			}

			_, err = fmt.Fprintf(cmd.OutOrStdout(), "Logged out %s\n", email)
			return err
		},
	}

	cmd.Flags().BoolVar(&forgetPassword, "forget-password", false, "Also delete the remembered password")

	return cmd
}

func readPassword(r io.Reader) (string, error) {
	line, err := bufio.NewReader(r).ReadString('\n')
	if err != nil && !errors.Is(err, io.EOF) {
		return "", fmt.Errorf("read password: %w", err)
	}

	password := strings.TrimRight(line, "\r\n")
	if password == "" {
		return "", application.ErrPasswordRequired
	}
	return password, nil
}
