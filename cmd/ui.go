package cmd

import (
	"github.com/spf13/cobra"

	"github.com/nyumbanet/portal-cli/internal/tui"
)

func newUICmd(app *app) *cobra.Command {
	return &cobra.Command{
		Use:   "ui",
		Short: "Open the interactive portal",
		Args:  cobra.NoArgs,
		RunE: func(_ *cobra.Command, _ []string) error {
			return tui.Run(app.service, app.logger)
		},
	}
}
