package cmd

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	render "github.com/nyumbanet/portal-cli/internal/adapters/render/portal"
	"github.com/nyumbanet/portal-cli/internal/domain"
)

func newHistoryCmd(app *app) *cobra.Command {
	return &cobra.Command{
		Use:   "history",
		Short: "Show your payment history",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			if err := requireSession(cmd, app); err != nil {
				return err
			}

			var payments []domain.Payment
			err := render.WithProgress(cmd.Context(), cmd.ErrOrStderr(), "Fetching payments", func(ctx context.Context) error {
				var fetchErr error
				payments, fetchErr = app.service.Payments(ctx)
				return fetchErr
			})
			if err != nil {
				return sessionExpired(err)
			}

			_, _ = fmt.Fprintln(cmd.OutOrStdout(), render.Payments(payments))
			return nil
		},
	}
}
