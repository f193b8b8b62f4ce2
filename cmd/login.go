package cmd

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/bnema/riot-accounts-cli/internal/application"
)

func newLoginCmd(app *app) *cobra.Command {
	return &cobra.Command{
		Use:   "login <account>",
		Short: "Launch the client for an account and scrape its session logs",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			var result application.LoginResult

			err := runWithSpinner(cmd.Context(), cmd.ErrOrStderr(), "Launching client and watching logs...",
				func(ctx context.Context) error {
					var loginErr error
					result, loginErr = app.login.Login(ctx, args[0])
					return loginErr
				})
			if err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			if result.Detected {
				_, _ = fmt.Fprintf(out, "identified %s as %s (account id %s)\n",
					result.Account.Username, result.Account.FullRiotID(), result.Account.RiotAccountID)
			} else if result.Trace != "" {
				_, _ = fmt.Fprintf(out, "client launched for %s: %s\n", result.Account.Username, result.Trace)
			} else {
				_, _ = fmt.Fprintf(out, "client launched for %s\n", result.Account.Username)
			}

			return nil
		},
	}
}

func newLaunchCmd(app *app) *cobra.Command {
	return &cobra.Command{
		Use:   "launch",
		Short: "Start the client without selecting an account",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return app.login.LaunchClient(cmd.Context())
		},
	}
}
