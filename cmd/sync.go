package cmd

import (
	"context"

	"github.com/spf13/cobra"
)

func newSyncCmd(app *app) *cobra.Command {
	var asJSON bool

	cmd := &cobra.Command{
		Use:   "sync",
		Short: "Reconcile penalties from the launcher logs and show the result",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			reconcile := func(ctx context.Context) error {
				_, err := app.login.Sync(ctx)
				return err
			}

			if asJSON {
				if err := reconcile(cmd.Context()); err != nil {
					return err
				}
			} else {
				if err := runWithSpinner(cmd.Context(), cmd.ErrOrStderr(), "Scanning launcher logs...", reconcile); err != nil {
					return err
				}
			}

			statuses, err := app.accounts.ListStatuses(cmd.Context())
			if err != nil {
				return err
			}

			return writeStatusesOutput(cmd, app, statuses, asJSON)
		},
	}

	cmd.Flags().BoolVar(&asJSON, "json", false, "Render JSON output")

	return cmd
}
