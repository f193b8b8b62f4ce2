package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/bnema/riot-accounts-cli/internal/application"
)

func newExportCmd(app *app) *cobra.Command {
	var password string

	cmd := &cobra.Command{
		Use:   "export <file>",
		Short: "Export accounts to a password-sealed file",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			generated := false
			if password == "" {
				var err error
				password, err = application.GenerateExportPassword()
				if err != nil {
					return err
				}
				generated = true
			}

			count, err := app.transfer.Export(cmd.Context(), args[0], password)
			if err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			_, _ = fmt.Fprintf(out, "exported %d account(s) to %s\n", count, args[0])
			if generated {
				_, _ = fmt.Fprintf(out, "export password: %s\n", password)
			}
			return nil
		},
	}

	cmd.Flags().StringVar(&password, "password", "", "Seal password (generated and printed when omitted)")

	return cmd
}

func newImportCmd(app *app) *cobra.Command {
	var password string

	cmd := &cobra.Command{
		Use:   "import <file>",
		Short: "Import accounts from an export file",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			result, err := app.transfer.Import(cmd.Context(), args[0], password)
			if err != nil {
				return err
			}

			_, _ = fmt.Fprintf(cmd.OutOrStdout(), "imported %d account(s), skipped %d existing\n",
				result.Added, result.Skipped)
			return nil
		},
	}

	cmd.Flags().StringVar(&password, "password", "", "Seal password from the exporting side")
	_ = cmd.MarkFlagRequired("password")

	return cmd
}
