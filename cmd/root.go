package cmd

import "github.com/spf13/cobra"

func Execute() error {
	return newRootCmd().Execute()
}

func newRootCmd() *cobra.Command {
	rootCmd := &cobra.Command{
		Use:           "ra",
		Short:         "Riot Accounts CLI (ra): stored logins with penalty tracking",
		Long:          "ra (Riot Accounts CLI) stores game accounts, launches the client for them, and keeps low priority queue and lockout penalties up to date by scraping the client's diagnostic logs.",
		SilenceUsage:  true,
		SilenceErrors: false,
	}

	app, err := wireApp()
	if err != nil {
		rootCmd.RunE = func(_ *cobra.Command, _ []string) error {
			return err
		}
		return rootCmd
	}

	rootCmd.AddCommand(
		newVersionCmd(),
		newAccountCmd(app),
		newLoginCmd(app),
		newLaunchCmd(app),
		newSyncCmd(app),
		newStatusCmd(app),
		newPathsCmd(app),
		newExportCmd(app),
		newImportCmd(app),
	)

	return rootCmd
}
