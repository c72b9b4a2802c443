package cmd

import "github.com/spf13/cobra"

func Execute() error {
	return newRootCmd().Execute()
}

func newRootCmd() *cobra.Command {
	rootCmd := &cobra.Command{
		Use:           "portal",
		Short:         "NyumbaNet customer portal: manage your plan, payments and support tickets",
		Long:          "portal is the NyumbaNet customer portal for the terminal: sign in, check your plan and data usage, top up via M-Pesa, switch packages and follow support tickets.",
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
		newLoginCmd(app),
		newLogoutCmd(app),
		newRegisterCmd(app),
		newResetCmd(app),
		newStatusCmd(app),
		newPlansCmd(app),
		newPayCmd(app),
		newHistoryCmd(app),
		newUsageCmd(app),
		newTicketsCmd(app),
		newUICmd(app),
	)

	return rootCmd
}
