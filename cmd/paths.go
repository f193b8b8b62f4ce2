package cmd

import (
	"fmt"

	"github.com/spf13/cobra"
)

func newPathsCmd(app *app) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "paths",
		Short: "Show or change log and client locations",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			paths, err := app.accounts.Paths(cmd.Context())
			if err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			_, _ = fmt.Fprintf(out, "client-logs\t%s\n", orUnset(paths.ClientLogsDir))
			_, _ = fmt.Fprintf(out, "launcher-logs\t%s\n", orUnset(paths.LauncherLogsDir))
			_, _ = fmt.Fprintf(out, "client-exe\t%s\n", orUnset(paths.ClientExecutable))
			return nil
		},
	}

	cmd.AddCommand(newPathsSetCmd(app))

	return cmd
}

func newPathsSetCmd(app *app) *cobra.Command {
	var clientLogs, launcherLogs, clientExe string

	cmd := &cobra.Command{
		Use:   "set",
		Short: "Update log and client locations",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			if clientLogs == "" && launcherLogs == "" && clientExe == "" {
				return fmt.Errorf("nothing to set: pass at least one of --client-logs, --launcher-logs, --client-exe")
			}

			_, err := app.accounts.SetPaths(cmd.Context(), clientLogs, launcherLogs, clientExe)
			return err
		},
	}

	cmd.Flags().StringVar(&clientLogs, "client-logs", "", "Directory with the client's tracing files")
	cmd.Flags().StringVar(&launcherLogs, "launcher-logs", "", "Directory with the launcher's log files")
	cmd.Flags().StringVar(&clientExe, "client-exe", "", "Path to the client executable")

	return cmd
}

func orUnset(value string) string {
	if value == "" {
		return "(unset)"
	}
	return value
}
