package cmd

import (
	"fmt"
	"strconv"

	"github.com/spf13/cobra"

	"github.com/bnema/riot-accounts-cli/internal/domain"
)

func newAccountCmd(app *app) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "account",
		Short: "Manage stored accounts",
	}

	cmd.AddCommand(
		newAccountListCmd(app),
		newAccountAddCmd(app),
		newAccountRemoveCmd(app),
		newAccountRenameCmd(app),
		newAccountPasswordCmd(app),
		newAccountTagCmd(app),
		newAccountMoveCmd(app),
	)

	return cmd
}

func newAccountListCmd(app *app) *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "List stored accounts",
		RunE: func(cmd *cobra.Command, _ []string) error {
			statuses, err := app.accounts.ListStatuses(cmd.Context())
			if err != nil {
				return err
			}

			for _, status := range statuses {
				riotID := status.RiotID
				if riotID == "" {
					riotID = "-"
				}
				_, _ = fmt.Fprintf(cmd.OutOrStdout(), "%s\t%s\t%s\n",
					status.Account.ID, status.Account.Username, riotID)
			}

			return nil
		},
	}
}

func newAccountAddCmd(app *app) *cobra.Command {
	var password string

	cmd := &cobra.Command{
		Use:   "add <username>",
		Short: "Store a new account",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			account, err := app.accounts.AddAccount(cmd.Context(), args[0], password)
			if err != nil {
				return err
			}

			_, _ = fmt.Fprintf(cmd.OutOrStdout(), "added %s (%s)\n", account.Username, account.ID)
			return nil
		},
	}

	cmd.Flags().StringVar(&password, "password", "", "Login password (stored encrypted)")

	return cmd
}

func newAccountRemoveCmd(app *app) *cobra.Command {
	return &cobra.Command{
		Use:   "remove <account>",
		Short: "Delete a stored account",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return app.accounts.RemoveAccount(cmd.Context(), args[0])
		},
	}
}

func newAccountRenameCmd(app *app) *cobra.Command {
	return &cobra.Command{
		Use:   "rename <account> <new-username>",
		Short: "Change the stored login username",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			return app.accounts.RenameAccount(cmd.Context(), args[0], args[1])
		},
	}
}

func newAccountPasswordCmd(app *app) *cobra.Command {
	var password string

	cmd := &cobra.Command{
		Use:   "password <account>",
		Short: "Replace the stored password",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return app.accounts.SetPassword(cmd.Context(), args[0], password)
		},
	}

	cmd.Flags().StringVar(&password, "password", "", "New login password")
	_ = cmd.MarkFlagRequired("password")

	return cmd
}

func newAccountTagCmd(app *app) *cobra.Command {
	return &cobra.Command{
		Use:   "tag <account> <none|star|warn|ok>",
		Short: "Set or clear the account's visual marker",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			tag := domain.AccountTag(args[1])
			if args[1] == "none" {
				tag = domain.TagNone
			}
			return app.accounts.SetTag(cmd.Context(), args[0], tag)
		},
	}
}

func newAccountMoveCmd(app *app) *cobra.Command {
	return &cobra.Command{
		Use:   "move <account> <position>",
		Short: "Reposition an account in the display order",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			position, err := strconv.Atoi(args[1])
			if err != nil {
				return fmt.Errorf("position must be a number: %w", err)
			}
			return app.accounts.MoveAccount(cmd.Context(), args[0], position)
		},
	}
}
